package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer        = "envelope"
	tokenLifetime = 7 * 24 * time.Hour
)

var (
	ErrMissingSecret = errors.New("JWT_SECRET not set")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims identify the caller; UserID ends up on the request's audit record.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

func newClaims(userID, email string, isAdmin bool, now time.Time) Claims {
	return Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
}
