package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/raysh454/pagetext/internal/cli"
	"github.com/raysh454/pagetext/internal/fetcher"
	"github.com/raysh454/pagetext/internal/logging"
	"github.com/raysh454/pagetext/internal/server"
	"github.com/raysh454/pagetext/internal/webclient"
)

// Config is the full runtime configuration. Every field has a default; the
// service runs with no file, env or flags at all.
type Config struct {
	Server    server.Config    `yaml:"server"`
	Fetcher   fetcher.Config   `yaml:"fetcher"`
	WebClient webclient.Config `yaml:"webclient"`
	Logging   logging.Config   `yaml:"logging"`
}

// DefaultConfig returns a Config populated with the fixed service defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:    server.DefaultConfig(),
		Fetcher:   fetcher.DefaultConfig(),
		WebClient: webclient.DefaultConfig(),
		Logging:   logging.DefaultConfig(),
	}
}

// Load layers defaults, the optional YAML file, environment and flags, in
// that order.
func Load(args *cli.CLIArgs, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if args == nil {
		args = &cli.CLIArgs{}
	}
	cfg := DefaultConfig()

	path := args.ConfigPath
	if path == "" {
		path = getenv("PAGETEXT_CONFIG")
	}
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	ApplyArgs(cfg, args)

	if cfg.WebClient.Timeout < cfg.Fetcher.Timeout {
		cfg.WebClient.Timeout = cfg.Fetcher.Timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg. Unknown keys are an
// error; an empty file is not.
func LoadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv reads PAGETEXT_* overrides. PORT is honoured for hosts that only
// hand out a port number.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		cfg.Server.ListenAddr = ":" + v
	}
	if v := getenv("PAGETEXT_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := getenv("PAGETEXT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("PAGETEXT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = logging.Format(v)
	}
	if v := getenv("PAGETEXT_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PAGETEXT_FETCH_TIMEOUT: %w", err)
		}
		cfg.Fetcher.Timeout = d
	}
	return nil
}

// ApplyArgs copies non-zero flag values onto cfg.
func ApplyArgs(cfg *Config, args *cli.CLIArgs) {
	if args.ListenAddr != "" {
		cfg.Server.ListenAddr = args.ListenAddr
	}
	if args.LogLevel != "" {
		cfg.Logging.Level = args.LogLevel
	}
	if args.LogFormat != "" {
		cfg.Logging.Format = logging.Format(args.LogFormat)
	}
	if args.FetchTimeout > 0 {
		cfg.Fetcher.Timeout = args.FetchTimeout
	}
}

// Validate rejects combinations that cannot serve requests correctly.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr is required")
	}
	if c.Fetcher.Timeout <= 0 {
		return errors.New("fetcher.timeout must be positive")
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.Fetcher.Timeout {
		return fmt.Errorf("server.write_timeout (%s) must exceed fetcher.timeout (%s)",
			c.Server.WriteTimeout, c.Fetcher.Timeout)
	}
	return nil
}
