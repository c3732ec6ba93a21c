package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// Client abstracts access to the Mackerel API
type Client interface {
	// Do issues exactly one request and returns the raw JSON body of a 2xx response.
	// Failures are reported as *Error.
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

// Request describes a single call against the Mackerel API
type Request struct {
	Method string
	Path   string // relative to the API root, e.g. "/hosts/abc"
	Query  url.Values
	Body   any // encoded as JSON when non-nil
}
