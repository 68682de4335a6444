package auth

import (
	"gamebase/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := jwt.ParseToken(tokenString); err == nil && !isRevoked(c, claims) {
				c.Set(UserIDKey, claims.UserID)
				c.Set(ClaimsKey, claims)
			}
		}
		c.Next()
	}
}
