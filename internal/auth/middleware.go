package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/algopatterns/envelope/internal/audit"
	apperrors "codeberg.org/algopatterns/envelope/internal/errors"
	"codeberg.org/algopatterns/envelope/internal/response"
)

const (
	userIDKey  = "user_id"
	emailKey   = "user_email"
	isAdminKey = "is_admin"
)

// validates JWT if present but doesn't require it
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := ValidateJWT(token); err == nil {
				identify(c, claims)
			}
		}

		c.Next()
	}
}

// rejects requests without a valid bearer token
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, apperrors.NewClient(http.StatusUnauthorized, apperrors.MsgUnauthorized401,
				apperrors.WithDescription(apperrors.MsgAuthenticationRequired)))
			return
		}

		claims, err := ValidateJWT(token)
		if errors.Is(err, ErrMissingSecret) {
			response.Fail(c, apperrors.NewServer(apperrors.WithCause(err)))
			return
		}

		if err != nil {
			response.Fail(c, apperrors.NewClient(http.StatusUnauthorized, apperrors.MsgUnauthorized401,
				apperrors.WithDescription(apperrors.MsgInvalidToken),
				apperrors.WithCause(err)))
			return
		}

		identify(c, claims)
		c.Next()
	}
}

// rejects authenticated users without the admin flag; run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(isAdminKey) {
			response.Fail(c, apperrors.NewClient(http.StatusForbidden, apperrors.MsgForbidden403))
			return
		}

		c.Next()
	}
}

// extracts user_id from context after an auth middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDKey)
	return userID, userID != ""
}

func identify(c *gin.Context, claims *Claims) {
	c.Set(userIDKey, claims.UserID)
	c.Set(emailKey, claims.Email)
	c.Set(isAdminKey, claims.IsAdmin)

	audit.SetUser(c, claims.UserID)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
