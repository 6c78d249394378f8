package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, has a bad signature,
// is expired, or lacks a user_id claim.
var ErrInvalidToken = errors.New("token invalid")

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

// NewTokenService creates a TokenService signing with secret. Tokens expire
// after ttlHours.
func NewTokenService(secret string, ttlHours int) *TokenService {
	return &TokenService{
		Secret: []byte(secret),
		TTL:    time.Duration(ttlHours) * time.Hour,
	}
}

// Issue returns a signed HS256 token binding the user id and username.
func (s *TokenService) Issue(userID int, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(s.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Verify parses and validates tokenStr and returns the user id it carries.
// Any failure (signature, expiry, shape) collapses to ErrInvalidToken so the
// caller can map it to a single unauthorized response.
func (s *TokenService) Verify(tokenStr string) (int, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return int(id), nil
}
