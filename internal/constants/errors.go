package constants

import "errors"

// Configuration errors.
var (
	ErrNoClientID        = errors.New("no client id configured, set IMGUR_CLIENT_ID or run 'imgur config set client_id'")
	ErrNoClientSecret    = errors.New("no client secret configured, set IMGUR_CLIENT_SECRET or run 'imgur config set client_secret'")
	ErrNoRefreshToken    = errors.New("no refresh token available, please run 'imgur auth pin' again")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidOutputType = errors.New("invalid output format")
	ErrInvalidConfigVal  = errors.New("invalid configuration value")
)

// Required argument errors.
var (
	ErrPathOrURLRequired = errors.New("exactly one of --path or --url is required")
	ErrPinRequired       = errors.New("pin is required")
	ErrInvalidVote       = errors.New("vote must be 'up' or 'down'")
	ErrNotImgurResource  = errors.New("url does not point at an imgur resource")
)
