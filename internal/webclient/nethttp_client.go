package webclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raysh454/pagetext/internal/logging"
)

// ErrUnsupportedScheme is returned for URLs, or redirect targets, that are
// not http or https.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// ErrInvalidURL marks requests that could not be built from the given URL.
var ErrInvalidURL = errors.New("invalid request URL")

// ErrTooManyRedirects is returned once a request exceeds Config.MaxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// net/http backed implementation of webclient.
type NetHTTPClient struct {
	client *http.Client
	cfg    Config
	logger logging.Logger
}

// NewNetHTTPClient wraps httpClient, or a fresh client when nil, with the
// redirect policy and limits from cfg. The caller's client is never mutated.
func NewNetHTTPClient(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPClient, error) {
	cfg = cfg.withDefaults()
	componentLogger := logger.With(logging.Field{Key: "backend", Value: "nethttp"})

	var c http.Client
	if httpClient != nil {
		c = *httpClient
	}
	if c.Timeout == 0 {
		c.Timeout = cfg.Timeout
	}
	c.CheckRedirect = checkRedirect(cfg.MaxRedirects)

	componentLogger.Debug("created nethttp webclient",
		logging.Field{Key: "timeout", Value: c.Timeout.String()},
		logging.Field{Key: "max_redirects", Value: cfg.MaxRedirects})

	return &NetHTTPClient{
		client: &c,
		cfg:    cfg,
		logger: componentLogger,
	}, nil
}

func checkRedirect(maxHops int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxHops {
			return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, len(via))
		}
		if !isHTTPScheme(req.URL) {
			return fmt.Errorf("redirect to %q: %w", req.URL.String(), ErrUnsupportedScheme)
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// Do implements the generic request execution using net/http.
func (nhc *NetHTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	nhc.logger.Debug("sending http request",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "url", Value: req.URL})

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if !isHTTPScheme(httpReq.URL) {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidURL, ErrUnsupportedScheme, req.URL)
	}

	for k, vs := range req.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", nhc.cfg.UserAgent)
	}

	resp, err := nhc.client.Do(httpReq)
	if err != nil {
		nhc.logger.Warn("http request failed",
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	// One byte past the cap tells us whether the body was cut.
	body, err := io.ReadAll(io.LimitReader(resp.Body, nhc.cfg.MaxBodyBytes+1))
	if err != nil {
		nhc.logger.Warn("failed to read response body",
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("read body: %w", err)
	}
	truncated := int64(len(body)) > nhc.cfg.MaxBodyBytes
	if truncated {
		body = body[:nhc.cfg.MaxBodyBytes]
		nhc.logger.Warn("response body truncated",
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "max_bytes", Value: nhc.cfg.MaxBodyBytes})
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		Request:    req,
		FinalURL:   finalURL,
		Body:       body,
		Headers:    resp.Header,
		StatusCode: resp.StatusCode,
		Truncated:  truncated,
		FetchedAt:  time.Now(),
	}, nil
}

// Get is a convenience method for simple GET requests
func (nhc *NetHTTPClient) Get(ctx context.Context, url string) (*Response, error) {
	req := &Request{
		Method: http.MethodGet,
		URL:    url,
	}
	return nhc.Do(ctx, req)
}

func (nhc *NetHTTPClient) Close() error {
	nhc.client.CloseIdleConnections()
	nhc.logger.Debug("closing nethttp webclient")
	return nil
}

// HTTPClient returns the underlying *http.Client
func (nhc *NetHTTPClient) HTTPClient() *http.Client {
	return nhc.client
}
