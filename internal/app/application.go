package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/raysh454/pagetext/internal/extractor"
	"github.com/raysh454/pagetext/internal/fetcher"
	"github.com/raysh454/pagetext/internal/logging"
	"github.com/raysh454/pagetext/internal/server"
	"github.com/raysh454/pagetext/internal/webclient"
)

// Application holds the wired service: config, logger and the HTTP server
// with its collaborators.
type Application struct {
	Config *Config
	Logger logging.Logger
	Server *server.Server

	wc webclient.WebClient
}

// NewApplication builds the webclient, fetcher, extractor and server from cfg.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("application config is nil")
	}

	wc, err := webclient.New(cfg.WebClient, logger)
	if err != nil {
		return nil, fmt.Errorf("create webclient: %w", err)
	}
	f, err := fetcher.New(cfg.Fetcher, wc, logger)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("create fetcher: %w", err)
	}
	srv, err := server.NewServer(cfg.Server, f, extractor.New(), logger)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &Application{
		Config: cfg,
		Logger: logger,
		Server: srv,
		wc:     wc,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most Server.ShutdownTimeout.
func (a *Application) Run(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	httpSrv := a.Server.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("application starting", logging.Field{Key: "addr", Value: httpSrv.Addr})
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("application shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the outbound client.
func (a *Application) Close() error {
	if a == nil || a.wc == nil {
		return nil
	}
	return a.wc.Close()
}
