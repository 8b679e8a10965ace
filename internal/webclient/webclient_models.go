package webclient

import (
	"net/http"
	"time"
)

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

type Response struct {
	Request *Request
	// FinalURL is the URL of the last hop after redirects.
	FinalURL   string
	Headers    http.Header
	Body       []byte
	StatusCode int
	// Truncated reports that the body hit MaxBodyBytes and was cut short.
	Truncated bool
	FetchedAt time.Time
}
