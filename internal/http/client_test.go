package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	imgurhttp "github.com/fivetwenty-io/imgur-client/internal/http"
	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func fastRetries() imgurhttp.Option {
	return imgurhttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("unwraps the data envelope", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/3/image/abc", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Client-ID cid", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_, _ = io.WriteString(writer, `{"data":{"id":"abc","title":"cat"},"success":true,"status":200}`)
		}))
		defer server.Close()

		client := imgurhttp.NewClient()

		resp, err := client.Do(context.Background(), &imgur.Request{
			Method:  "GET",
			URL:     server.URL + "/3/image/abc",
			Headers: http.Header{"Authorization": {"Client-ID cid"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Data, &result)
		require.NoError(t, err)
		assert.Equal(t, "abc", result["id"])
		assert.Equal(t, "cat", result["title"])
	})

	t.Run("body without envelope is the payload", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = io.WriteString(writer, `{"access_token":"tok"}`)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{Method: http.MethodPost, URL: server.URL + "/oauth2/token"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"access_token":"tok"}`, string(resp.Data))
	})

	t.Run("GET params go into the query", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/3/gallery/search", request.URL.Path)
			assert.Equal(t, "q=cats", request.URL.RawQuery)
			_, _ = io.WriteString(writer, `{"data":[]}`)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL + "/3/gallery/search", Params: url.Values{"q": {"cats"}}})
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(resp.Data))
	})

	t.Run("form body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))
			assert.NoError(t, request.ParseForm())
			assert.Equal(t, "hello", request.PostForm.Get("comment"))
			_, _ = io.WriteString(writer, `{"data":{"id":1}}`)
		}))
		defer server.Close()

		_, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{Method: http.MethodPost, URL: server.URL + "/3/comment", Params: url.Values{"comment": {"hello"}}})
		require.NoError(t, err)
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "a,b", body["ids"])
			assert.Equal(t, "holiday", body["title"])

			_, _ = io.WriteString(writer, `{"data":true}`)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{
			Method: "PUT",
			URL:    server.URL + "/3/album/xyz",
			Params: url.Values{"ids": {"a,b"}, "title": {"holiday"}},
			AsJSON: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "true", string(resp.Data))
	})

	t.Run("files force a multipart body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data"))
			assert.NoError(t, request.ParseMultipartForm(1<<20))
			assert.Equal(t, []string{"a", "b"}, request.MultipartForm.Value["ids"])
			_, _ = io.WriteString(writer, `{"data":true}`)
		}))
		defer server.Close()

		_, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{
			Method: "POST",
			URL:    server.URL + "/3/album/xyz/remove_images",
			Files:  url.Values{"ids": {"a", "b"}},
			AsJSON: true,
		})
		require.NoError(t, err)
	})

	t.Run("captures rate-limit headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("X-RateLimit-ClientRemaining", "12500")
			writer.Header().Set("X-RateLimit-UserReset", "1700000000")
			writer.Header().Set("X-Other", "7")
			_, _ = io.WriteString(writer, `{"data":true}`)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{
			"ratelimit_clientremaining": 12500,
			"ratelimit_userreset":       1700000000,
		}, resp.RateLimit)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = io.WriteString(writer, `{"data":{"result":"ok"}}`)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := imgurhttp.NewClient(imgurhttp.WithLogger(logger), imgurhttp.WithDebug(true))

		_, err := client.Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "imgur-test/2.0", request.Header.Get("User-Agent"))
			_, _ = io.WriteString(writer, `{"data":true}`)
		}))
		defer server.Close()

		_, err := imgurhttp.NewClient(imgurhttp.WithUserAgent("imgur-test/2.0")).Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)
	})

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()

		_, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{Method: "GET"})
		require.Error(t, err)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"data":{"error":"Unable to find an image with the id, nope"},"success":false,"status":404}`,
			target:  imgur.ErrNotFound,
			message: "Unable to find an image with the id, nope",
		},
		{
			name:   "service unavailable",
			status: http.StatusServiceUnavailable,
			body:   `{"data":{"error":"Imgur is over capacity"}}`,
			target: imgur.ErrServiceUnavailable,
		},
		{
			name:   "gateway timeout",
			status: http.StatusGatewayTimeout,
			body:   ``,
			target: imgur.ErrServiceUnavailable,
		},
		{
			name:    "structured error message",
			status:  http.StatusBadRequest,
			body:    `{"data":{"error":{"code":1003,"message":"File type invalid"}}}`,
			target:  imgur.ErrUnexpectedResponse,
			message: "File type invalid",
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{"data":{"error":"Permission denied"}}`,
			target:  imgur.ErrUnexpectedResponse,
			message: "Permission denied",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(testCase.status)
				_, _ = io.WriteString(writer, testCase.body)
			}))
			defer server.Close()

			client := imgurhttp.NewClient(fastRetries())

			resp, err := client.Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL + "/3/image/nope"})
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, testCase.status, resp.StatusCode)
			require.ErrorIs(t, err, testCase.target)

			if testCase.message != "" {
				assert.Contains(t, err.Error(), testCase.message)
			}
		})
	}

	t.Run("unexpected response keeps the raw body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusTeapot)
			_, _ = io.WriteString(writer, `{"data":{"error":"short and stout"}}`)
		}))
		defer server.Close()

		_, err := imgurhttp.NewClient().Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})

		var unexpected *imgur.UnexpectedResponseError

		require.True(t, errors.As(err, &unexpected))
		assert.Equal(t, http.StatusTeapot, unexpected.StatusCode)
		assert.Equal(t, "short and stout", unexpected.Message)
		assert.Contains(t, string(unexpected.Body), "short and stout")
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)

				return
			}

			_, _ = io.WriteString(writer, `{"data":true}`)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := imgurhttp.NewClient(fastRetries(), imgurhttp.WithLogger(logger))

		resp, err := client.Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Retry", logger.logs[0]["msg"])
	})

	t.Run("retries an empty success body", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusOK)

				return
			}

			_, _ = io.WriteString(writer, `{"data":{"id":"abc"}}`)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient(fastRetries()).Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"abc"}`, string(resp.Data))
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("empty success body after the retry bound is unexpected", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := imgurhttp.NewClient(imgurhttp.WithRetryConfig(1, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL + "/3/image/abc"})
		require.ErrorIs(t, err, imgur.ErrUnexpectedResponse)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Nil(t, resp.Data)
		assert.Equal(t, int32(2), attempts.Load())

		var unexpected *imgur.UnexpectedResponseError
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, "empty response body", unexpected.Message)
	})

	t.Run("gives up after the retry bound", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient(fastRetries()).Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.ErrorIs(t, err, imgur.ErrUnexpectedResponse)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, int32(4), attempts.Load())
	})

	t.Run("does not retry service unavailable", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := imgurhttp.NewClient(fastRetries()).Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.ErrorIs(t, err, imgur.ErrServiceUnavailable)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not retry throttling", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(writer, `{"data":{"error":"slow down"},"status":429}`)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient(fastRetries()).Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.ErrorIs(t, err, imgur.ErrUnexpectedResponse)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient(fastRetries()).Do(context.Background(), &imgur.Request{Method: http.MethodGet, URL: server.URL})
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load()) // Should not retry
	})

	t.Run("does not retry no content", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		resp, err := imgurhttp.NewClient(fastRetries()).Do(context.Background(), &imgur.Request{Method: http.MethodDelete, URL: server.URL})
		require.NoError(t, err)
		assert.Nil(t, resp.Data)
		assert.Equal(t, int32(1), attempts.Load())
	})
}

func TestClient_StandardClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, "raw-bytes")
	}))
	defer server.Close()

	resp, err := imgurhttp.NewClient().StandardClient().Get(server.URL)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "raw-bytes", string(body))
}
