package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// DownloadFilePerm is the permission for downloaded images.
	DownloadFilePerm = 0644
)

// Upstream endpoints.
const (
	// DefaultBaseURL is the public Imgur API host.
	DefaultBaseURL = "https://api.imgur.com"

	// MashapeBaseURL is the alternate gateway used when a Mashape key is set.
	MashapeBaseURL = "https://imgur-apiv3.p.mashape.com"

	// MashapeKeyHeader carries the alternate gateway key.
	MashapeKeyHeader = "X-Mashape-Key"

	// WebBaseURL is the browser-facing site used for permalinks.
	WebBaseURL = "https://imgur.com"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the per-attempt timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the number of retries after the first attempt.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the base wait for exponential backoff.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax caps a single backoff wait.
	DefaultRetryWaitMax = 10 * time.Second

	// ExponentialBackoffBase is the base for exponential backoff.
	ExponentialBackoffBase = 2
)

// HTTP status codes with dedicated handling.
const (
	// HTTPStatusNoContent is a success without a body.
	HTTPStatusNoContent = 204

	// HTTPStatusMultipleChoices is the first non-success status.
	HTTPStatusMultipleChoices = 300

	// HTTPStatusNotFound maps to the not-found fault.
	HTTPStatusNotFound = 404

	// HTTPStatusInternalServerError is the first retryable status.
	HTTPStatusInternalServerError = 500

	// HTTPStatusServiceUnavailable maps to the service-down fault.
	HTTPStatusServiceUnavailable = 503

	// HTTPStatusGatewayTimeout maps to the service-down fault.
	HTTPStatusGatewayTimeout = 504
)

// Pagination.
const (
	// DefaultLimit is the result ceiling used when none is given.
	DefaultLimit = 100

	// PagePlaceholder is the binding name substituted with the page index.
	PagePlaceholder = "page"
)

// Rate limiting.
const (
	// RateLimitHeaderPrefix selects the headers captured after each request.
	RateLimitHeaderPrefix = "x-ratelimit-"

	// DefaultRateLimitBurst is the burst allowed by the optional client-side limiter.
	DefaultRateLimitBurst = 1
)

// Environment variables.
const (
	// EnvPrefix is the viper environment prefix.
	EnvPrefix = "IMGUR"

	// EnvVerifySSL toggles TLS certificate verification.
	EnvVerifySSL = "verify_ssl"

	// EnvTimeout overrides the per-attempt HTTP timeout.
	EnvTimeout = "timeout"
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Display constants.
const (
	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
