package imgur

import (
	"errors"
	"fmt"
	"net/http"
)

// Fault kinds. Every typed error below matches exactly one of these through
// errors.Is, so callers can branch on the kind without a type switch.
var (
	ErrAuthentication     = errors.New("authentication required")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrNotFound           = errors.New("resource not found")
	ErrServiceUnavailable = errors.New("imgur is temporarily unavailable")
	ErrUnexpectedResponse = errors.New("unexpected response from imgur")
	ErrUnknownAttribute   = errors.New("unknown attribute")
	ErrFileOverwrite      = errors.New("file already exists")
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrTransportRequired = errors.New("transport is required")
	ErrNotGalleryCapable = errors.New("resource cannot be submitted to or removed from the gallery")
)

// AuthenticationError reports a missing token or inconsistent credentials.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}

	return "authentication failed: " + e.Reason
}

func (e *AuthenticationError) Unwrap() error        { return e.Err }
func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// InvalidParameterError reports an argument rejected before any request is built.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// NotFoundError is returned when imgur reports the id or hash does not exist.
type NotFoundError struct {
	URL     string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "resource not found: " + e.URL
	}

	return fmt.Sprintf("resource not found: %s: %s", e.URL, e.Message)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ServiceUnavailableError is returned for infrastructure level outages.
// The transport never retries these.
type ServiceUnavailableError struct {
	StatusCode int
	Message    string
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("imgur is down (status %d): %s", e.StatusCode, e.Message)
}

func (e *ServiceUnavailableError) Is(target error) bool { return target == ErrServiceUnavailable }

// UnexpectedResponseError covers every other non-success response. It keeps
// the raw upstream message, headers and body for diagnostics.
type UnexpectedResponseError struct {
	StatusCode int
	Message    string
	Header     http.Header
	Body       []byte
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected imgur response (status %d): %s", e.StatusCode, e.Message)
}

func (e *UnexpectedResponseError) Is(target error) bool { return target == ErrUnexpectedResponse }

// UnknownAttributeError is returned when a field is still missing after the
// resource has been fully fetched.
type UnknownAttributeError struct {
	Kind  Kind
	Field string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.Kind, e.Field)
}

func (e *UnknownAttributeError) Is(target error) bool { return target == ErrUnknownAttribute }

// FileOverwriteError is returned by Download when the target exists.
type FileOverwriteError struct {
	Path string
}

func (e *FileOverwriteError) Error() string {
	return fmt.Sprintf("file already exists: %s", e.Path)
}

func (e *FileOverwriteError) Is(target error) bool { return target == ErrFileOverwrite }

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsServiceUnavailable checks if imgur reported itself as down.
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

// IsAuthentication checks if the error is an authentication fault.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsInvalidParameter checks if the error is a local precondition failure.
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
