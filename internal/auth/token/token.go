// Package token mints the JWT access tokens consumed by the auth middleware.
package token

import (
	"time"

	"campground_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// MintAccessToken creates a signed HS256 access token for the given user.
// The username claim lets handlers embed the author reference without an
// extra lookup.
func MintAccessToken(cfg config.AuthServiceConfig, userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID.String(),
		"username": username,
		"type":     accessTokenType,
		"iat":      now.Unix(),
		"exp":      now.Add(cfg.GetAccessTokenTTL()).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.GetJWTAccessSecret()))
}
