package auth

import (
	"context"
	"net/http"
	"strings"

	"gamebase/backend/internal/models"
	"gamebase/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middlewares.
const (
	UserIDKey = "userID"
	ClaimsKey = "tokenClaims"
	UserKey   = "user"
)

// RevocationChecker reports whether a token id was revoked on logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Revoked is consulted for every bearer token when set. It stays nil when
// Redis is not configured.
var Revoked RevocationChecker

// AuthMiddleware rejects requests without a valid, unrevoked bearer token
// and stores the caller's id under UserIDKey.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}

		claims, err := jwt.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if isRevoked(c, claims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentUserID returns the id stored by AuthMiddleware or
// OptionalAuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentClaims returns the verified token claims.
func CurrentClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// CurrentUser returns the user loaded by RequireRole.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// isRevoked treats a failing revocation store as revoked.
func isRevoked(c *gin.Context, claims *jwt.Claims) bool {
	if Revoked == nil || claims.TokenID == "" {
		return false
	}
	revoked, err := Revoked.IsRevoked(c.Request.Context(), claims.TokenID)
	return err != nil || revoked
}
