package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photogram-api/apperrors"
	"photogram-api/services"
)

const (
	UserIDKey = "user_id"
	ClaimsKey = "claims"

	// AccessTokenCookie is set on login for clients that do not send an Authorization header.
	AccessTokenCookie = "access_token"
)

type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*services.Claims, error)
}

// AuthMiddleware accepts "Authorization: Bearer <token>" or the access_token cookie.
// Missing, invalid, expired and revoked tokens get 401.
func AuthMiddleware(parser TokenParser, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				token = cookie
			}
		}
		if token == "" {
			abortUnauthorized(c, "Authentication credentials were not provided")
			return
		}

		claims, err := parser.ParseToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUnauthorized) {
				log.Error("Failed to validate token", slog.String("error", err.Error()))
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID())
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims stored by AuthMiddleware.
func CurrentClaims(c *gin.Context) *services.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*services.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
		Code:    http.StatusUnauthorized,
	})
}
