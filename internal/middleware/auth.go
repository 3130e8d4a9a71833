package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DhavalSuthar-24/gridiron/pkg/responses"
	"github.com/DhavalSuthar-24/gridiron/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	AuthUserIDKey = "auth_user_id"
	AuthEmailKey  = "auth_email"
)

// AuthMiddleware accepts bearer tokens minted by the auth provider. Users are
// not stored locally, so the subject claim is trusted once the signature,
// expiry, issuer and audience check out.
func AuthMiddleware(verifier *token.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Unauthorized(c, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.Unauthorized(c, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := verifier.Validate(bearerToken[1])
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token: "+err.Error())
			return
		}

		c.Set(AuthUserIDKey, claims.Subject)
		c.Set(AuthEmailKey, claims.Email)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}

	uid, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	if uid == "" {
		return "", errors.New("user ID is empty")
	}

	return uid, nil
}
