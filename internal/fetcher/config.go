package fetcher

import "time"

// DefaultTimeout bounds a single page fetch end to end.
const DefaultTimeout = 15 * time.Second

type Config struct {
	Timeout time.Duration `yaml:"timeout"`
}

func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout}
}
