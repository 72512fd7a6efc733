package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of a device token minted by the CLI.
const DefaultTokenTTL = 30 * 24 * time.Hour

var ErrEmptySecret = errors.New("jwt secret is empty")

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for a device. Mutating endpoints require
// one in the Authorization header.
func IssueToken(secret, deviceID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
