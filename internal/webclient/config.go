package webclient

import "time"

type Client string

const (
	ClientNetHTTP Client = "nethttp"
)

const (
	// DefaultUserAgent is the fixed browser-like agent presented to origins.
	DefaultUserAgent    = "Mozilla/5.0"
	DefaultTimeout      = 15 * time.Second
	DefaultMaxRedirects = 10
	DefaultMaxBodyBytes = 10 * 1024 * 1024
)

// Config controls how outbound requests are made.
type Config struct {
	Client       Client        `yaml:"client"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRedirects int           `yaml:"max_redirects"`
	// MaxBodyBytes caps how much of a response body is read. Zero means
	// DefaultMaxBodyBytes.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// DefaultConfig returns the nethttp backend with the fixed page-fetch settings.
func DefaultConfig() Config {
	return Config{
		Client:       ClientNetHTTP,
		UserAgent:    DefaultUserAgent,
		Timeout:      DefaultTimeout,
		MaxRedirects: DefaultMaxRedirects,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func (c Config) withDefaults() Config {
	if c.Client == "" {
		c.Client = ClientNetHTTP
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}
