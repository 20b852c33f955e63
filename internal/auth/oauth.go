package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// Static errors for err113 compliance.
var (
	ErrNoClientSecret  = errors.New("client secret is required")
	ErrNoRefreshToken  = errors.New("refresh token is required")
	ErrNoCode          = errors.New("authorization code or pin is required")
	ErrBadResponseType = errors.New("response type must be code, pin or token")
)

// Config holds what the OAuth endpoints need.
type Config struct {
	ClientID     string
	ClientSecret string
	// BaseURL is the API host; the endpoints live under /oauth2.
	BaseURL string
	// HTTPClient carries the exchanges. nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Exchanger runs imgur's OAuth flows on top of x/oauth2.
type Exchanger struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewExchanger creates an exchanger for config.
func NewExchanger(config Config) *Exchanger {
	base := strings.TrimSuffix(config.BaseURL, "/")

	return &Exchanger{
		oauth: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth2/authorize",
				TokenURL:  base + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: config.HTTPClient,
	}
}

// AuthorizationURL returns the page where a user grants access. With
// responseType "code" imgur redirects back with a code, with "pin" it shows
// a pin to paste into the application.
func (e *Exchanger) AuthorizationURL(responseType, state string) (string, error) {
	switch responseType {
	case "code", "pin", "token":
	default:
		return "", fmt.Errorf("%w: %q", ErrBadResponseType, responseType)
	}

	authURL := e.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", responseType))

	// imgur always round-trips the state, even when empty.
	if state == "" {
		authURL += "&state="
	}

	return authURL, nil
}

// ExchangeCode trades a one-time authorization code for tokens.
func (e *Exchanger) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if code == "" {
		return nil, ErrNoCode
	}

	return e.exchange(ctx, code)
}

// ExchangePin trades a one-time pin for tokens.
func (e *Exchanger) ExchangePin(ctx context.Context, pin string) (*Token, error) {
	if pin == "" {
		return nil, ErrNoCode
	}

	return e.exchange(ctx, "",
		oauth2.SetAuthURLParam("grant_type", "pin"),
		oauth2.SetAuthURLParam("pin", pin),
	)
}

func (e *Exchanger) exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*Token, error) {
	if e.oauth.ClientSecret == "" {
		return nil, ErrNoClientSecret
	}

	token, err := e.oauth.Exchange(e.context(ctx), code, opts...)
	if err != nil {
		return nil, fmt.Errorf("exchanging for token: %w", describe(err))
	}

	return fromOAuth2(token), nil
}

// Refresh obtains a new access token. The refresh token itself does not
// expire and is carried over when imgur omits it.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if e.oauth.ClientSecret == "" {
		return nil, ErrNoClientSecret
	}

	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	source := e.oauth.TokenSource(e.context(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", describe(err))
	}

	result := fromOAuth2(token)
	if result.RefreshToken == "" {
		result.RefreshToken = refreshToken
	}

	return result, nil
}

func (e *Exchanger) context(ctx context.Context) context.Context {
	if e.httpClient == nil {
		return ctx
	}

	return context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
}

// describe folds the OAuth error body into the message.
func describe(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return err
	}

	detail := retrieveErr.ErrorDescription
	if detail == "" {
		detail = strings.TrimSpace(string(retrieveErr.Body))
	}

	status := 0
	if retrieveErr.Response != nil {
		status = retrieveErr.Response.StatusCode
	}

	return &ExchangeError{StatusCode: status, Code: retrieveErr.ErrorCode, Detail: detail, Err: err}
}

// ExchangeError is a token endpoint rejection.
type ExchangeError struct {
	StatusCode int
	Code       string
	Detail     string
	Err        error
}

func (e *ExchangeError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("token endpoint returned %d: %s", e.StatusCode, e.Detail)
	}

	return fmt.Sprintf("token endpoint returned %d: %s: %s", e.StatusCode, e.Code, e.Detail)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// ParseRedirect pulls the code, or the error imgur reported, from the URL a
// user was sent back to after authorizing.
func ParseRedirect(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing redirect url: %w", err)
	}

	query := parsed.Query()
	if reason := query.Get("error"); reason != "" {
		return "", fmt.Errorf("%w: %s", ErrNoCode, reason)
	}

	code := query.Get("code")
	if code == "" {
		return "", ErrNoCode
	}

	return code, nil
}
