package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL = 24 * time.Hour
	// RefreshTokenTTL is the lifetime of a refresh token.
	RefreshTokenTTL = 60 * 24 * time.Hour
)

// Claims carries the user identity inside both token kinds.
type Claims struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// GenerateAccessToken signs a short-lived access token for the user.
func GenerateAccessToken(userID string, isAdmin bool, secret []byte) (string, error) {
	return generateToken(userID, isAdmin, secret, AccessTokenTTL)
}

// GenerateRefreshToken signs a long-lived refresh token for the user.
func GenerateRefreshToken(userID string, isAdmin bool, secret []byte) (string, error) {
	return generateToken(userID, isAdmin, secret, RefreshTokenTTL)
}

func generateToken(userID string, isAdmin bool, secret []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		ID:      userID,
		IsAdmin: isAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a token against the given secret and returns its claims.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("token is invalid", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}

// IsExpiryError reports whether a verification failure was caused solely by
// token expiry, the one failure the middleware recovers from via refresh.
func IsExpiryError(err error) bool {
	ve, ok := err.(*jwt.ValidationError)
	return ok && ve.Errors&jwt.ValidationErrorExpired != 0
}
