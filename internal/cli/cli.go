package cli

import (
	"flag"
	"io"
	"time"
)

// CLIArgs are the command-line arguments for a server run. Zero values mean
// "use the config file or default".
type CLIArgs struct {
	// ConfigPath is an optional YAML config file.
	ConfigPath string

	ListenAddr string
	LogLevel   string
	LogFormat  string

	// FetchTimeout overrides the per-page fetch timeout; 0 means default.
	FetchTimeout time.Duration

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("pagetext", flag.ContinueOnError)
	var (
		configPath   = fs.String("config", "", "Path to a YAML config file")
		listenAddr   = fs.String("addr", "", "HTTP listen address, e.g. :7860")
		logLevel     = fs.String("log-level", "", "Log level: debug|info|warn|error")
		logFormat    = fs.String("log-format", "", "Log format: json|console")
		fetchTimeout = fs.Duration("timeout", 0, "Per-page fetch timeout (0=use config)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}

	return &CLIArgs{
		ConfigPath:   *configPath,
		ListenAddr:   *listenAddr,
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
		FetchTimeout: *fetchTimeout,
		RawArgs:      args,
	}, nil
}
