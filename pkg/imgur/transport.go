package imgur

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Transport performs a single logical API call, including any retries.
// Implementations unwrap the {"data": ...} envelope and map failures onto
// the fault kinds in this package.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request represents an HTTP request to the API.
type Request struct {
	Method string
	URL    string
	// Params are sent as the query for GET and DELETE and as the body otherwise.
	Params url.Values
	// Files holds repeated fields that force a multipart body.
	Files url.Values
	// AsJSON sends Params as a JSON object instead of a form.
	AsJSON  bool
	Headers http.Header
}

// Response represents an HTTP response from the API.
type Response struct {
	StatusCode int
	Header     http.Header
	// Data is the payload with the envelope removed.
	Data json.RawMessage
	// RateLimit holds the x-ratelimit-* headers keyed like "ratelimit_userremaining".
	RateLimit map[string]int
}
