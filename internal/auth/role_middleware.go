package auth

import (
	"net/http"

	"gamebase/backend/internal/database"
	"gamebase/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireRole creates a gin middleware that loads the caller and checks they
// hold role. It must be used AFTER AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var user models.User
		if err := database.DB.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authenticated user not found"})
			return
		}

		if !user.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": string(role) + " access required"})
			return
		}

		c.Set(UserKey, &user)
		c.Next()
	}
}
