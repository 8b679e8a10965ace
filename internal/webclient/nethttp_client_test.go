package webclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raysh454/pagetext/internal/testutil"
	"github.com/raysh454/pagetext/internal/webclient"
)

func newClient(t *testing.T, cfg webclient.Config, httpClient *http.Client) *webclient.NetHTTPClient {
	t.Helper()
	client, err := webclient.NewNetHTTPClient(cfg, &testutil.DummyLogger{}, httpClient)
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// ─── Construction ──────────────────────────────────────────────────────

func TestNewNetHTTPClient_AppliesDefaults(t *testing.T) {
	t.Parallel()
	client := newClient(t, webclient.Config{}, nil)

	if got := client.HTTPClient().Timeout; got != webclient.DefaultTimeout {
		t.Errorf("expected default timeout %s, got %s", webclient.DefaultTimeout, got)
	}
	if client.HTTPClient().CheckRedirect == nil {
		t.Error("expected redirect policy to be installed")
	}
}

func TestNewNetHTTPClient_DoesNotMutateCallerClient(t *testing.T) {
	t.Parallel()
	custom := &http.Client{}
	_ = newClient(t, webclient.Config{}, custom)

	if custom.CheckRedirect != nil {
		t.Error("caller's http.Client was mutated")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()
	client, err := webclient.New(webclient.Config{Client: "chromedp"}, &testutil.DummyLogger{})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if client != nil {
		t.Fatal("expected nil client for unknown backend")
	}
}

func TestNew_DefaultBackend(t *testing.T) {
	t.Parallel()
	client, err := webclient.New(webclient.Config{}, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()
}

// ─── Do: real HTTP round-trip via httptest ──────────────────────────────

func TestNetHTTPClient_Get_ReturnsBodyAndHeaders(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom", "hello")
		_, _ = io.WriteString(w, "response body")
	}))
	defer ts.Close()

	client := newClient(t, webclient.Config{}, ts.Client())
	resp, err := client.Get(context.Background(), ts.URL+"/test")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "response body" {
		t.Errorf("expected 'response body', got %q", resp.Body)
	}
	if resp.Headers.Get("X-Custom") != "hello" {
		t.Errorf("expected X-Custom header 'hello', got %q", resp.Headers.Get("X-Custom"))
	}
	if resp.Truncated {
		t.Error("small body should not be truncated")
	}
}

func TestNetHTTPClient_Do_SendsUserAgent(t *testing.T) {
	t.Parallel()
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	client := newClient(t, webclient.Config{}, ts.Client())
	if _, err := client.Get(context.Background(), ts.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotUA != webclient.DefaultUserAgent {
		t.Errorf("expected User-Agent %q, got %q", webclient.DefaultUserAgent, gotUA)
	}
}

func TestNetHTTPClient_Do_ExplicitHeaderWins(t *testing.T) {
	t.Parallel()
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	client := newClient(t, webclient.Config{}, ts.Client())
	hdrs := http.Header{}
	hdrs.Set("User-Agent", "custom/1.0")
	if _, err := client.Do(context.Background(), &webclient.Request{URL: ts.URL, Headers: hdrs}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotUA != "custom/1.0" {
		t.Errorf("expected forwarded User-Agent, got %q", gotUA)
	}
}

func TestNetHTTPClient_Do_FollowsRedirects(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/middle", http.StatusFound)
	})
	mux.HandleFunc("/middle", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/end", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "arrived")
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newClient(t, webclient.Config{}, ts.Client())
	resp, err := client.Get(context.Background(), ts.URL+"/start")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(resp.Body) != "arrived" {
		t.Errorf("expected final body, got %q", resp.Body)
	}
	if !strings.HasSuffix(resp.FinalURL, "/end") {
		t.Errorf("expected FinalURL to end in /end, got %q", resp.FinalURL)
	}
}

func TestNetHTTPClient_Do_RedirectLoopStops(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer ts.Close()

	client := newClient(t, webclient.Config{MaxRedirects: 3}, ts.Client())
	_, err := client.Get(context.Background(), ts.URL)
	if !errors.Is(err, webclient.ErrTooManyRedirects) {
		t.Fatalf("expected ErrTooManyRedirects, got %v", err)
	}
}

func TestNetHTTPClient_Do_PropagatesStatusCode(t *testing.T) {
	t.Parallel()
	codes := []int{200, 404, 500}

	for _, code := range codes {
		code := code
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			}))
			defer ts.Close()

			client := newClient(t, webclient.Config{}, ts.Client())
			resp, err := client.Get(context.Background(), ts.URL)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if resp.StatusCode != code {
				t.Errorf("expected %d, got %d", code, resp.StatusCode)
			}
		})
	}
}

func TestNetHTTPClient_Do_TruncatesLargeBody(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("a", 100))
	}))
	defer ts.Close()

	client := newClient(t, webclient.Config{MaxBodyBytes: 10}, ts.Client())
	resp, err := client.Get(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(resp.Body) != 10 {
		t.Errorf("expected 10 bytes, got %d", len(resp.Body))
	}
	if !resp.Truncated {
		t.Error("expected Truncated to be set")
	}
}

func TestNetHTTPClient_Do_RejectsUnsupportedScheme(t *testing.T) {
	t.Parallel()
	client := newClient(t, webclient.Config{}, nil)

	_, err := client.Get(context.Background(), "ftp://example.com/file")
	if !errors.Is(err, webclient.ErrUnsupportedScheme) {
		t.Fatalf("expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestNetHTTPClient_Do_NilRequest_ReturnsError(t *testing.T) {
	t.Parallel()
	client := newClient(t, webclient.Config{}, nil)

	if _, err := client.Do(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}
}
