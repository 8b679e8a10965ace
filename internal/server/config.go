package server

import "time"

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigin is sent as Access-Control-Allow-Origin. The browser
	// extension calls from a chrome-extension:// origin, hence "*".
	AllowedOrigin string `yaml:"allowed_origin"`

	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// WriteTimeout must stay above the fetch timeout or slow pages get cut
	// off before the error mapping runs.
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:        ":7860",
		AllowedOrigin:     "*",
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ShutdownTimeout:   15 * time.Second,
	}
}
