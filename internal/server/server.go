package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/raysh454/pagetext/docs/swagger" // registers the swagger spec

	"github.com/raysh454/pagetext/internal/extractor"
	"github.com/raysh454/pagetext/internal/fetcher"
	"github.com/raysh454/pagetext/internal/logging"
)

const maxRequestBody = 64 * 1024

// PageFetcher retrieves raw markup for a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// TextExtractor turns markup into normalized text.
type TextExtractor interface {
	Extract(markup string) (string, error)
}

// Server is the HTTP API surface: one fetch-and-extract operation plus
// health and docs.
type Server struct {
	cfg       Config
	fetcher   PageFetcher
	extractor TextExtractor
	router    chi.Router
	logger    logging.Logger
}

// NewServer wires the router around the given fetcher and extractor.
func NewServer(cfg Config, f PageFetcher, x TextExtractor, logger logging.Logger) (*Server, error) {
	if f == nil || x == nil {
		return nil, errors.New("server: fetcher and extractor are required")
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}

	s := &Server{
		cfg:       cfg,
		fetcher:   f,
		extractor: x,
		router:    chi.NewRouter(),
		logger:    logger.With(logging.Field{Key: "component", Value: "server"}),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.Recoverer)
	r.Use(s.requestIDMiddleware)
	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/", s.optionsHandler("POST"))
	r.Options("/fetch_text", s.optionsHandler("GET, POST"))

	r.Post("/", s.handleFetchText)
	r.Get("/fetch_text", s.handleFetchText)
	r.Post("/fetch_text", s.handleFetchText)

	r.Get("/healthz", s.handleHealth)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

type ctxKey int

const requestIDKey ctxKey = iota

// requestIDMiddleware echoes X-Request-ID or assigns a fresh one.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) requestLogger(r *http.Request) logging.Logger {
	id, _ := r.Context().Value(requestIDKey).(string)
	if id == "" {
		return s.logger
	}
	return s.logger.With(logging.Field{Key: "request_id", Value: id})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}
	s.logger.Debug("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Status: status})
}

// errorStatus maps a fetch or extraction failure to the response status and
// message. It is the only place errors become HTTP.
func errorStatus(pageURL string, err error) (int, string) {
	var remoteErr *fetcher.RemoteError
	var timeoutErr *fetcher.TimeoutError
	var parseErr *extractor.ParseError

	switch {
	case errors.As(err, &remoteErr):
		return http.StatusBadRequest, remoteErr.Error()
	case errors.As(err, &timeoutErr):
		return http.StatusRequestTimeout, timeoutErr.Error()
	case errors.As(err, &parseErr):
		return http.StatusInternalServerError, fmt.Sprintf("error processing URL %s: %v", pageURL, parseErr)
	default:
		return http.StatusInternalServerError, fmt.Sprintf("error processing URL %s: %v", pageURL, err)
	}
}

// --- HTTP handlers ---

// requestedURL reads the url query parameter, falling back to a JSON body on
// POST.
func requestedURL(r *http.Request) (string, error) {
	if u := r.URL.Query().Get("url"); u != "" {
		return u, nil
	}
	if r.Method != http.MethodPost || r.Body == nil {
		return "", nil
	}
	var body TextRequest
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("invalid JSON body: %w", err)
	}
	return body.URL, nil
}

// handleFetchText godoc
// @Summary Fetch a page and extract its text
// @Description Fetches the page at url, strips script, style, nav, footer and aside, and returns the remaining text with whitespace collapsed.
// @Tags text
// @Produce json
// @Param url query string true "Page URL"
// @Success 200 {object} TextResponse
// @Failure 400 {object} ErrorResponse "Remote fetch failed"
// @Failure 408 {object} ErrorResponse "Fetch timed out"
// @Failure 422 {object} ErrorResponse "Missing url"
// @Failure 500 {object} ErrorResponse "Unexpected failure"
// @Router / [post]
// @Router /fetch_text [get]
func (s *Server) handleFetchText(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	pageURL, err := requestedURL(r)
	if err != nil {
		logger.Warn("decoding fetch_text body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if pageURL == "" {
		logger.Warn("fetch_text: missing url query parameter")
		writeError(w, http.StatusUnprocessableEntity, "missing url query parameter")
		return
	}

	markup, err := s.fetcher.Fetch(r.Context(), pageURL)
	if err != nil {
		s.fail(w, logger, pageURL, err)
		return
	}

	logger.Info("parsing html", logging.Field{Key: "url", Value: pageURL})
	text, err := s.extractor.Extract(markup)
	if err != nil {
		s.fail(w, logger, pageURL, err)
		return
	}

	logger.Info("extracted text",
		logging.Field{Key: "url", Value: pageURL},
		logging.Field{Key: "length", Value: len(text)})
	writeJSON(w, http.StatusOK, TextResponse{Text: text})
}

func (s *Server) fail(w http.ResponseWriter, logger logging.Logger, pageURL string, err error) {
	status, msg := errorStatus(pageURL, err)
	logger.Error("fetch_text failed",
		logging.Field{Key: "url", Value: pageURL},
		logging.Field{Key: "status", Value: status},
		logging.Field{Key: "error", Value: err.Error()})
	writeError(w, status, msg)
}

// handleHealth godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
