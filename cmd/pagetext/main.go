// Command pagetext serves the page-text API.
// Usage: go run ./cmd/pagetext [-config pagetext.yaml] [-addr :7860]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raysh454/pagetext/internal/app"
	"github.com/raysh454/pagetext/internal/cli"
	"github.com/raysh454/pagetext/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pagetext: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	args, err := cli.ParseArgs(argv)
	if err != nil {
		return err
	}
	cfg, err := app.Load(args, os.Getenv)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.Logging, os.Stdout, "pagetext")
	if err != nil {
		return err
	}

	a, err := app.NewApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}
