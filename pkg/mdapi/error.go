package mdapi

import (
	"fmt"
	"io"
)

// A RequestError represents an HTTP failure against a single endpoint.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func parseRequestError(endpoint string, r io.Reader, code int) error {
	body := make([]byte, 512)
	n, _ := io.ReadFull(r, body)
	return &RequestError{Endpoint: endpoint, StatusCode: code, Body: string(body[:n])}
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Endpoint, e.StatusCode)
}

// An EndpointsUnavailableError means the primary and the fallback
// endpoint both failed for the same logical operation.
type EndpointsUnavailableError struct {
	Primary  error
	Fallback error
}

func (e *EndpointsUnavailableError) Error() string {
	return fmt.Sprintf("all endpoints unavailable: primary: %s; fallback: %s", e.Primary, e.Fallback)
}

// IsEndpointsUnavailable returns true if err reports that both
// endpoints failed.
func IsEndpointsUnavailable(err error) bool {
	_, ok := err.(*EndpointsUnavailableError)
	return ok
}
