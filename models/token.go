package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens is the access/refresh credential pair issued on login.
type Tokens struct {
	// Access is the short-lived bearer credential attached to every
	// authenticated request.
	Access string `json:"access"`

	// Refresh is the longer-lived credential used only to mint new access
	// tokens via the token refresh endpoint.
	Refresh string `json:"refresh"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
	Tokens  Tokens `json:"tokens"`
}

// RefreshRequest is the token refresh payload.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is the body of a successful token refresh. Refresh is only
// present when the backend rotates refresh tokens.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// TokenClaims is the claim set carried by backend access tokens.
//
// It embeds [jwt.RegisteredClaims] for the standard claims (exp, iat, jti)
// and adds the user_id and token_type claims emitted by the backend.
type TokenClaims struct {
	jwt.RegisteredClaims

	// UserID is the account primary key.
	UserID FlexString `json:"user_id,omitempty"`

	// TokenType is "access" or "refresh".
	TokenType string `json:"token_type,omitempty"`
}

// GetUserID returns the user_id claim, falling back to the "sub" claim.
func (c *TokenClaims) GetUserID() (string, error) {
	if c.UserID != "" {
		return c.UserID.String(), nil
	}

	sub, err := c.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token carries no user id")
	}
	return sub, nil
}
