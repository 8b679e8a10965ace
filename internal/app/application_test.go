package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/raysh454/pagetext/internal/app"
	"github.com/raysh454/pagetext/internal/testutil"
)

func TestNewApplication_NilConfig(t *testing.T) {
	t.Parallel()
	if _, err := app.NewApplication(nil, &testutil.DummyLogger{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewApplication_UnknownBackend(t *testing.T) {
	t.Parallel()
	cfg := app.DefaultConfig()
	cfg.WebClient.Client = "chromedp"
	if _, err := app.NewApplication(cfg, &testutil.DummyLogger{}); err == nil {
		t.Fatal("expected error for unsupported webclient backend")
	}
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	cfg := app.DefaultConfig()
	cfg.Server.ListenAddr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second

	a, err := app.NewApplication(cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
