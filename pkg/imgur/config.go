package imgur

import (
	"net/http"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents the client configuration.
type Config struct {
	// ClientID identifies the registered application. Required.
	ClientID string
	// ClientSecret is needed for OAuth code, pin and refresh exchanges.
	ClientSecret string
	// AccessToken authenticates as a user. When empty, calls are anonymous
	// and operations that need a user fail before any request is sent.
	AccessToken  string
	RefreshToken string
	// MashapeKey routes calls through the Mashape gateway and adds the
	// X-Mashape-Key header to every request.
	MashapeKey string

	// BaseURL overrides the API host, mostly for tests.
	BaseURL string
	// DefaultLimit is the result ceiling for paginated listings when the
	// caller passes zero or a negative limit. Defaults to 100.
	DefaultLimit int

	// Transport settings, consumed by imgurclient.New.
	UserAgent         string
	HTTPTimeout       time.Duration
	RetryMax          int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	SkipTLSVerify     bool
	RequestsPerSecond float64

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger

	// HTTPClient is used for OAuth token exchanges and image downloads.
	// nil means http.DefaultClient.
	HTTPClient *http.Client
}
