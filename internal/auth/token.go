package auth

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// expiryBuffer treats tokens about to expire as already expired.
const expiryBuffer = 30 * time.Second

// Token is the result of an OAuth exchange with imgur.
type Token struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	TokenType       string    `json:"token_type"`
	ExpiresAt       time.Time `json:"expires_at"`
	AccountUsername string    `json:"account_username"`
	AccountID       string    `json:"account_id"`
}

// Valid reports whether the token is set and not about to expire. A token
// without an expiry never expires.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// fromOAuth2 copies an oauth2 token along with imgur's account extras.
func fromOAuth2(token *oauth2.Token) *Token {
	result := &Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}

	if username, ok := token.Extra("account_username").(string); ok {
		result.AccountUsername = username
	}

	switch id := token.Extra("account_id").(type) {
	case string:
		result.AccountID = id
	case float64:
		result.AccountID = fmt.Sprintf("%.0f", id)
	}

	return result
}
