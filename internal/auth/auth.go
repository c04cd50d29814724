// Package auth inspects bearer tokens passed to the remote data service and
// issues/verifies Ed25519 signed tokens for the in-process fake service.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrTokenExpired is returned when bearer token expiry is in the past
var ErrTokenExpired = errors.New("bearer token expired")

// ErrInvalidAuthorizationHeader is returned when Authorization header is not Bearer {token}
var ErrInvalidAuthorizationHeader = errors.New("invalid Authorization header format")

// TokenInfo is what could be learned from bearer token without verifying it
type TokenInfo struct {
	Subject   string
	Audience  []string
	ExpiresAt time.Time
	// Opaque is true when token is not a JWT, nothing is known about it then
	Opaque bool
}

// Inspect parses token claims without signature verification, the remote service verifies it.
// Opaque tokens are accepted as is.
func Inspect(raw string, now time.Time) (TokenInfo, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return TokenInfo{Opaque: true}, nil
	}

	info := TokenInfo{Subject: claims.Subject, Audience: claims.Audience}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		if !now.Before(info.ExpiresAt) {
			return info, ErrTokenExpired
		}
	}
	return info, nil
}

// BearerToken extracts token from Authorization header value
func BearerToken(header string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
