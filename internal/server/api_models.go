package server

// TextRequest is the optional JSON body for POST requests that do not carry
// the url query parameter.
type TextRequest struct {
	URL string `json:"url" example:"https://example.com/article"`
}

// TextResponse carries the extracted page text.
type TextResponse struct {
	Text string `json:"text" example:"Example Domain This domain is for use in illustrative examples."`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error  string `json:"error" example:"fetch error (status 404): unexpected status: 404 Not Found"`
	Status int    `json:"status" example:"400"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
