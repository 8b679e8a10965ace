package webclient

import (
	"fmt"
	"strings"

	"github.com/raysh454/pagetext/internal/logging"
)

// New constructs the configured WebClient backend.
func New(cfg Config, logger logging.Logger) (WebClient, error) {
	backend := Client(strings.ToLower(strings.TrimSpace(string(cfg.Client))))
	switch backend {
	case "", ClientNetHTTP:
		return NewNetHTTPClient(cfg, logger, nil)
	default:
		return nil, fmt.Errorf("webclient backend %q not supported", cfg.Client)
	}
}
