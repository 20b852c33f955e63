package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/fivetwenty-io/imgur-client/internal/encoding"
	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

var errEmptyURL = errors.New("request url is empty")

// Client is the HTTP transport for the imgur API. It implements
// imgur.Transport.
type Client struct {
	httpClient *retryablehttp.Client
	logger     imgur.Logger
	debug      bool
	userAgent  string
	limiter    *rate.Limiter
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger imgur.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets how often and how long to back off on retryable failures.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the timeout of each individual attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithSkipTLSVerify disables certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		transport, ok := c.httpClient.HTTPClient.Transport.(*http.Transport)
		if !ok || !skip {
			return
		}

		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via IMGUR_VERIFY_SSL=false
	}
}

// WithRateLimit spaces logical calls to at most perSecond per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), constants.DefaultRateLimitBurst)
		}
	}
}

// NewClient creates a new HTTP client.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Transport: cleanhttp.DefaultPooledTransport(),
		Timeout:   constants.DefaultHTTPTimeout,
	}
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry
	retryClient.Backoff = jitteredBackoff
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		httpClient: retryClient,
		userAgent:  "imgur-client/1.0",
	}

	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 && client.logger != nil {
			client.logger.Warn("HTTP Retry", map[string]interface{}{
				"method":  req.Method,
				"url":     req.URL.String(),
				"attempt": attempt,
			})
		}
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// StandardClient returns an *http.Client that shares the retry policy and
// connection pool, for OAuth exchanges and downloads.
func (c *Client) StandardClient() *http.Client {
	return c.httpClient.StandardClient()
}

// Do performs one logical API call.
func (c *Client) Do(ctx context.Context, req *imgur.Request) (*imgur.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"size":     len(body),
		})
	}

	resp := &imgur.Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		RateLimit:  rateLimits(httpResp.Header),
	}

	data, message, decodeErr := unwrap(body)
	resp.Data = data

	if httpResp.StatusCode >= constants.HTTPStatusMultipleChoices {
		return resp, statusError(httpReq.URL.String(), httpResp, message, body)
	}

	if len(bytes.TrimSpace(body)) == 0 && httpResp.StatusCode != constants.HTTPStatusNoContent {
		return resp, &imgur.UnexpectedResponseError{
			StatusCode: httpResp.StatusCode,
			Message:    "empty response body",
			Header:     httpResp.Header,
			Body:       body,
		}
	}

	if decodeErr != nil {
		return resp, &imgur.UnexpectedResponseError{
			StatusCode: httpResp.StatusCode,
			Message:    decodeErr.Error(),
			Header:     httpResp.Header,
			Body:       body,
		}
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req *imgur.Request) (*retryablehttp.Request, error) {
	if req.URL == "" {
		return nil, errEmptyURL
	}

	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing request url: %w", err)
	}

	var (
		body        []byte
		contentType string
	)

	switch {
	case req.Method == http.MethodGet || req.Method == http.MethodDelete:
		if len(req.Params) > 0 {
			query := target.Query()
			for key, values := range req.Params {
				for _, value := range values {
					query.Add(key, value)
				}
			}

			target.RawQuery = query.Encode()
		}
	case len(req.Files) > 0:
		body, contentType, err = multipartBody(req.Params, req.Files)
		if err != nil {
			return nil, err
		}
	case req.AsJSON:
		body, err = json.Marshal(encoding.Flatten(req.Params))
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		contentType = "application/json"
	case len(req.Params) > 0:
		body = []byte(req.Params.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target.String(), rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

func multipartBody(params, files url.Values) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, fields := range []url.Values{params, files} {
		for key, values := range fields {
			for _, value := range values {
				if err := writer.WriteField(key, value); err != nil {
					return nil, "", fmt.Errorf("writing multipart field %s: %w", key, err)
				}
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// checkRetry retries server errors and empty success bodies. 503 and 504
// mean imgur is down and 429 means throttled; both are returned at once.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	switch code := resp.StatusCode; {
	case code == constants.HTTPStatusServiceUnavailable || code == constants.HTTPStatusGatewayTimeout:
		return false, nil
	case code >= constants.HTTPStatusInternalServerError && code != http.StatusNotImplemented:
		return true, nil
	case code == constants.HTTPStatusNoContent || code >= constants.HTTPStatusMultipleChoices:
		return false, nil
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if readErr != nil {
		return true, nil //nolint:nilerr // a truncated body is retried like an empty one
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))

	return len(bytes.TrimSpace(body)) == 0, nil
}

// jitteredBackoff is the library's exponential backoff plus up to half
// again as random jitter, capped at waitMax.
func jitteredBackoff(waitMin, waitMax time.Duration, attempt int, resp *http.Response) time.Duration {
	wait := retryablehttp.DefaultBackoff(waitMin, waitMax, attempt, resp)
	if wait <= 0 {
		return 0
	}

	wait += time.Duration(rand.Int63n(int64(wait)/constants.ExponentialBackoffBase + 1)) //nolint:gosec // jitter only
	if wait > waitMax {
		wait = waitMax
	}

	return wait
}

// unwrap removes the {"data": ...} envelope and extracts data.error.
func unwrap(body []byte) (json.RawMessage, string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, "", nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		if json.Valid(body) {
			return body, "", nil
		}

		return nil, strings.TrimSpace(string(body)), fmt.Errorf("decoding response body: %w", err)
	}

	data, ok := envelope["data"]
	if !ok {
		return body, errorMessage(envelope), nil
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(data, &inner); err == nil {
		return data, errorMessage(inner), nil
	}

	return data, "", nil
}

// errorMessage reads an "error" field holding a string or an object with a
// message.
func errorMessage(fields map[string]json.RawMessage) string {
	raw, ok := fields["error"]
	if !ok {
		return ""
	}

	var message string
	if err := json.Unmarshal(raw, &message); err == nil {
		return message
	}

	var detail struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Message != "" {
		return detail.Message
	}

	return string(raw)
}

func statusError(target string, resp *http.Response, message string, body []byte) error {
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case constants.HTTPStatusNotFound:
		return &imgur.NotFoundError{URL: target, Message: message}
	case constants.HTTPStatusServiceUnavailable, constants.HTTPStatusGatewayTimeout:
		return &imgur.ServiceUnavailableError{StatusCode: resp.StatusCode, Message: message}
	default:
		return &imgur.UnexpectedResponseError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Header:     resp.Header,
			Body:       body,
		}
	}
}

// rateLimits captures the x-ratelimit-* headers keyed like
// "ratelimit_clientremaining". Non-numeric values are skipped.
func rateLimits(header http.Header) map[string]int {
	limits := make(map[string]int)

	for name, values := range header {
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, constants.RateLimitHeaderPrefix) || len(values) == 0 {
			continue
		}

		value, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			continue
		}

		key := strings.ReplaceAll(strings.TrimPrefix(lower, "x-"), "-", "_")
		limits[key] = value
	}

	return limits
}

var _ imgur.Transport = (*Client)(nil)
