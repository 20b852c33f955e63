package imgur

import (
	"context"
	"errors"

	"github.com/fivetwenty-io/imgur-client/internal/auth"
)

// Token is the outcome of an OAuth exchange.
type Token = auth.Token

func (c *Client) exchanger() *auth.Exchanger {
	return auth.NewExchanger(auth.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		BaseURL:      c.baseURL,
		HTTPClient:   c.httpClient,
	})
}

// AuthorizationURL returns the page where a user authorizes the
// application. responseType is "code" or "pin"; state is round-tripped.
func (c *Client) AuthorizationURL(responseType, state string) (string, error) {
	authURL, err := c.exchanger().AuthorizationURL(responseType, state)
	if err != nil {
		return "", &InvalidParameterError{Param: "response", Reason: err.Error()}
	}

	return authURL, nil
}

// ExchangeCode trades an authorization code for tokens and starts using them.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	token, err := c.exchanger().ExchangeCode(ctx, code)

	return c.adopt(token, err)
}

// ExchangePin trades a pin for tokens and starts using them.
func (c *Client) ExchangePin(ctx context.Context, pin string) (*Token, error) {
	token, err := c.exchanger().ExchangePin(ctx, pin)

	return c.adopt(token, err)
}

// RefreshAccessToken obtains a new access token from the refresh token.
// The client secret and refresh token must be set; otherwise it fails
// without contacting imgur.
func (c *Client) RefreshAccessToken(ctx context.Context) (*Token, error) {
	if c.clientSecret == "" {
		return nil, &AuthenticationError{Reason: "client secret must be set to refresh the access token"}
	}

	if c.refreshToken == "" {
		return nil, &AuthenticationError{Reason: "refresh token must be set to refresh the access token"}
	}

	token, err := c.exchanger().Refresh(ctx, c.refreshToken)

	return c.adopt(token, err)
}

func (c *Client) adopt(token *Token, err error) (*Token, error) {
	if err != nil {
		if errors.Is(err, auth.ErrNoCode) {
			return nil, &InvalidParameterError{Param: "code", Reason: err.Error()}
		}

		return nil, &AuthenticationError{Reason: "token exchange failed", Err: err}
	}

	c.accessToken = token.AccessToken
	if token.RefreshToken != "" {
		c.refreshToken = token.RefreshToken
	}

	c.debug("adopted access token", map[string]interface{}{"account": token.AccountUsername})

	return token, nil
}
