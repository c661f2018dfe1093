// internal/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopline/shopline-backend/internal/store"
)

// SessionRequired gates a route on the presence of the persisted login
// token. Presence is the entire check — the token is opaque and never
// verified locally. The redirect-to-login of the original UI becomes a 401
// here; the client decides where to send the user.
func SessionRequired(sessions store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists, err := sessions.Token(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to read session state",
			})
			c.Abort()
			return
		}

		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Please login first",
			})
			c.Abort()
			return
		}

		c.Set("session_token", token)
		c.Next()
	}
}
