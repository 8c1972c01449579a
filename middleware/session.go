package middleware

import (
	"net/http"

	"globaled/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionMiddleware places a snapshot of the demo session on the context.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := manager.Current(c.Request.Context())
		if err != nil {
			zap.L().Error("Failed to load session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Session unavailable"})
			return
		}
		c.Set(sessionKey, snap)
		c.Next()
	}
}

// CurrentSession returns the snapshot set by SessionMiddleware.
func CurrentSession(c *gin.Context) (session.Snapshot, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return session.Snapshot{}, false
	}
	snap, ok := v.(session.Snapshot)
	return snap, ok
}
