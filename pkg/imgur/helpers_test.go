package imgur_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.test"

// fakeTransport answers requests from a table keyed by "METHOD /path" and
// records every request it sees.
type fakeTransport struct {
	mu       sync.Mutex
	routes   map[string]string
	errs     map[string]error
	limits   map[string]int
	requests []*imgur.Request
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		routes: make(map[string]string),
		errs:   make(map[string]error),
	}
}

func (f *fakeTransport) on(method, path, data string) *fakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.routes[method+" "+path] = data

	return f
}

func (f *fakeTransport) fail(method, path string, err error) *fakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errs[method+" "+path] = err

	return f
}

func (f *fakeTransport) Do(_ context.Context, req *imgur.Request) (*imgur.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	key := req.Method + " " + strings.TrimPrefix(req.URL, testBaseURL)

	if err, ok := f.errs[key]; ok {
		return &imgur.Response{StatusCode: 500, RateLimit: f.limits}, err
	}

	data, ok := f.routes[key]
	if !ok {
		return &imgur.Response{StatusCode: 404}, &imgur.NotFoundError{URL: req.URL}
	}

	var payload json.RawMessage
	if data != "" {
		payload = json.RawMessage(data)
	}

	return &imgur.Response{StatusCode: 200, Data: payload, RateLimit: f.limits}, nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *fakeTransport) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	paths := make([]string, 0, len(f.requests))
	for _, req := range f.requests {
		paths = append(paths, req.Method+" "+strings.TrimPrefix(req.URL, testBaseURL))
	}

	return paths
}

func (f *fakeTransport) last() *imgur.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.requests) == 0 {
		return nil
	}

	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, accessToken string) (*imgur.Client, *fakeTransport) {
	t.Helper()

	transport := newFakeTransport()

	client, err := imgur.New(&imgur.Config{
		ClientID:    "test-client",
		AccessToken: accessToken,
		BaseURL:     testBaseURL,
	}, transport)
	require.NoError(t, err)

	return client, transport
}

// page builds a JSON array of n image payloads with ids prefixed by prefix.
func page(prefix string, n int) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, `{"id":"`+prefix+string(rune('a'+i))+`"}`)
	}

	return "[" + strings.Join(items, ",") + "]"
}
