package imgurclient

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	imgurhttp "github.com/fivetwenty-io/imgur-client/internal/http"
	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/viper"
)

// ErrInvalidTimeout is returned by ConfigFromEnv for an unparsable timeout.
var ErrInvalidTimeout = errors.New("invalid timeout")

// New creates an imgur client that talks HTTP with retries.
func New(config *imgur.Config) (*imgur.Client, error) {
	if config == nil {
		return nil, imgur.ErrConfigRequired
	}

	transport := newTransport(config)
	if config.HTTPClient == nil {
		config.HTTPClient = transport.StandardClient()
	}

	client, err := imgur.New(config, transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

func newTransport(config *imgur.Config) *imgurhttp.Client {
	opts := []imgurhttp.Option{
		imgurhttp.WithDebug(config.Debug),
		imgurhttp.WithTimeout(config.HTTPTimeout),
		imgurhttp.WithSkipTLSVerify(config.SkipTLSVerify),
		imgurhttp.WithRateLimit(config.RequestsPerSecond),
	}

	if config.Logger != nil {
		opts = append(opts, imgurhttp.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		opts = append(opts, imgurhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax
		if retryMax <= 0 {
			retryMax = constants.DefaultRetryMax
		}

		waitMin := config.RetryWaitMin
		if waitMin <= 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, imgurhttp.WithRetryConfig(retryMax, waitMin, waitMax))
	}

	return imgurhttp.NewClient(opts...)
}

// NewWithClientID creates an anonymous client.
func NewWithClientID(clientID string) (*imgur.Client, error) {
	return New(&imgur.Config{
		ClientID: clientID,
	})
}

// NewWithToken creates a client authenticated as a user.
func NewWithToken(clientID, accessToken string) (*imgur.Client, error) {
	return New(&imgur.Config{
		ClientID:    clientID,
		AccessToken: accessToken,
	})
}

// ConfigFromEnv builds a config from IMGUR_* environment variables.
func ConfigFromEnv() (*imgur.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(constants.EnvVerifySSL, true)

	timeout, err := ParseTimeout(v.GetString(constants.EnvTimeout))
	if err != nil {
		return nil, err
	}

	return &imgur.Config{
		ClientID:      v.GetString("client_id"),
		ClientSecret:  v.GetString("client_secret"),
		AccessToken:   v.GetString("access_token"),
		RefreshToken:  v.GetString("refresh_token"),
		MashapeKey:    v.GetString("mashape_key"),
		HTTPTimeout:   timeout,
		SkipTLSVerify: !v.GetBool(constants.EnvVerifySSL),
	}, nil
}

// ParseTimeout accepts a number of seconds ("45", "2.5") or a Go duration
// ("1m30s"). Empty means the default timeout.
func ParseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return constants.DefaultHTTPTimeout, nil
	}

	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, value)
		}

		return time.Duration(seconds * float64(time.Second)), nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, value)
	}

	return duration, nil
}
