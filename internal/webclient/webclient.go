package webclient

import (
	"context"
)

// WebClient performs outbound HTTP requests on behalf of the fetcher.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}
