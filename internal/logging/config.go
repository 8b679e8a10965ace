package logging

// Format selects the zerolog output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

type Config struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level  string `yaml:"level"`
	Format Format `yaml:"format"`
}

// DefaultConfig returns info-level JSON logging.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatJSON,
	}
}
