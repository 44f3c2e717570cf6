package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/utils"
	"github.com/GTDGit/gtd_storefront/internal/workspace"
)

// ClientCookie holds the signed client id of a browser.
const ClientCookie = "sf_client"

const clientCookieMaxAge = 365 * 24 * 60 * 60

// ClientMiddleware identifies the browser from its signed cookie, issuing a
// new identity when the cookie is missing or invalid, and resolves its
// workspace. The cookie is identification only, not authentication.
type ClientMiddleware struct {
	secret   string
	secure   bool
	registry *workspace.Registry
}

// NewClientMiddleware constructs a ClientMiddleware.
func NewClientMiddleware(secret string, secure bool, registry *workspace.Registry) *ClientMiddleware {
	return &ClientMiddleware{secret: secret, secure: secure, registry: registry}
}

// Handle returns a Gin middleware function that attaches the workspace.
func (m *ClientMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := ""
		if raw, err := c.Cookie(ClientCookie); err == nil && raw != "" {
			if claims, err := utils.ParseClientToken(m.secret, raw); err == nil {
				clientID = claims.ClientID
			} else {
				log.Debug().Err(err).Msg("Discarding invalid client cookie")
			}
		}

		if clientID == "" {
			clientID = uuid.New().String()
			token, err := utils.GenerateClientToken(m.secret, clientID, 0)
			if err != nil {
				log.Error().Err(err).Msg("Failed to sign client cookie")
				utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to identify client")
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, token, clientCookieMaxAge, "/", "", m.secure, true)
		}

		ws := m.registry.Get(c.Request.Context(), clientID)
		c.Set("client_id", clientID)
		c.Set("workspace", ws)
		c.Next()
	}
}

// GetWorkspace returns the workspace attached by ClientMiddleware.
func GetWorkspace(c *gin.Context) *workspace.Workspace {
	ws, _ := c.Get("workspace")
	if ws == nil {
		return nil
	}
	return ws.(*workspace.Workspace)
}
