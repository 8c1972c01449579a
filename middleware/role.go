package middleware

import (
	"net/http"

	"globaled/models"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects requests whose session user does not have the given role.
// It must run after SessionMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := CurrentSession(c)
		if !ok || snap.User == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No active session"})
			return
		}
		if snap.User.Role() != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "This action requires the " + string(role) + " role",
			})
			return
		}
		c.Next()
	}
}
