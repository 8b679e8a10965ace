package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"golang.org/x/net/html/charset"

	"github.com/raysh454/pagetext/internal/logging"
	"github.com/raysh454/pagetext/internal/webclient"
)

// Module: fetcher
// Retrieves a single page and classifies whatever goes wrong.
type Fetcher struct {
	cfg    Config
	wc     webclient.WebClient
	logger logging.Logger
}

// New creates a new Fetcher with the given webclient and logger.
func New(cfg Config, wc webclient.WebClient, logger logging.Logger) (*Fetcher, error) {
	if wc == nil {
		return nil, fmt.Errorf("fetcher: webclient is nil")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Fetcher{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "fetcher"}),
	}, nil
}

// Fetch GETs pageURL and returns the body decoded to UTF-8 text. Failures are
// always one of *RemoteError, *TimeoutError or *UnexpectedError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	f.logger.Info("fetching page", logging.Field{Key: "url", Value: pageURL})

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	resp, err := f.wc.Get(ctx, pageURL)
	if err != nil {
		cerr := f.classify(ctx, pageURL, err)
		f.logger.Error("fetch failed",
			logging.Field{Key: "url", Value: pageURL},
			logging.Field{Key: "error", Value: cerr.Error()})
		return "", cerr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &RemoteError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		f.logger.Error("fetch failed",
			logging.Field{Key: "url", Value: pageURL},
			logging.Field{Key: "status", Value: resp.StatusCode},
			logging.Field{Key: "error", Value: rerr.Error()})
		return "", rerr
	}

	text := decodeBody(resp)
	f.logger.Info("fetched page",
		logging.Field{Key: "url", Value: pageURL},
		logging.Field{Key: "final_url", Value: resp.FinalURL},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "bytes", Value: len(resp.Body)},
		logging.Field{Key: "truncated", Value: resp.Truncated})
	return text, nil
}

func (f *Fetcher) classify(ctx context.Context, pageURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{URL: pageURL, Timeout: f.cfg.Timeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: pageURL, Timeout: f.cfg.Timeout, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, webclient.ErrInvalidURL) {
		return &UnexpectedError{URL: pageURL, Err: err}
	}
	return &RemoteError{URL: pageURL, Err: err}
}

// decodeBody converts the body to UTF-8 using the charset from Content-Type
// or the document's <meta> tags. Bodies that cannot be decoded are returned
// as-is.
func decodeBody(resp *webclient.Response) string {
	contentType := ""
	if resp.Headers != nil {
		contentType = resp.Headers.Get("Content-Type")
	}
	r, err := charset.NewReader(bytes.NewReader(resp.Body), contentType)
	if err != nil {
		return string(resp.Body)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(resp.Body)
	}
	return string(decoded)
}
