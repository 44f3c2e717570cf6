package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginPath is where unauthenticated visitors of gated routes are sent.
const LoginPath = "/login"

// SessionGate only lets logged-in workspaces through. Everyone else is
// redirected to the login view. It must run after ClientMiddleware.
func SessionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := GetWorkspace(c)
		if ws == nil || !ws.Session.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
