package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/middleware"
	"github.com/GTDGit/gtd_storefront/internal/service"
	"github.com/GTDGit/gtd_storefront/internal/utils"
)

// AuthHandler serves the mock login view.
type AuthHandler struct {
	authService *service.AuthService
	rateLimiter *middleware.InvalidLoginRateLimiter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, rateLimiter *middleware.InvalidLoginRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimiter: rateLimiter}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session handles GET /login.
func (h *AuthHandler) Session(c *gin.Context) {
	utils.Success(c, 200, "Session retrieved", middleware.GetWorkspace(c).Session.Current())
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	session := middleware.GetWorkspace(c).Session
	message, err := h.authService.Login(session, req.Username, req.Password)
	if err != nil {
		if !h.rateLimiter.Allow(c.ClientIP()) {
			log.Warn().Str("ip", c.ClientIP()).Msg("Too many invalid login attempts")
			utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid login attempts")
			return
		}
		if errors.Is(err, utils.ErrMissingCredentials) {
			utils.Error(c, 400, utils.ErrMissingCredentials.Error(), service.MissingCredentialsMessage)
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Login failed")
		return
	}

	utils.Success(c, 200, message, gin.H{
		"session":  session.Current(),
		"redirect": "/",
	})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.GetWorkspace(c).Session
	h.authService.Logout(session)
	utils.Success(c, 200, "Logged out", session.Current())
}
