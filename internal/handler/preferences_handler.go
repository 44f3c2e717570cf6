package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_storefront/internal/middleware"
	"github.com/GTDGit/gtd_storefront/internal/utils"
)

// PreferencesHandler exposes UI preferences.
type PreferencesHandler struct{}

func NewPreferencesHandler() *PreferencesHandler {
	return &PreferencesHandler{}
}

// Get handles GET /preferences.
func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs := middleware.GetWorkspace(c).Preferences
	utils.Success(c, 200, "Preferences retrieved", gin.H{"darkMode": prefs.DarkMode()})
}

// ToggleDarkMode handles POST /preferences/dark-mode.
func (h *PreferencesHandler) ToggleDarkMode(c *gin.Context) {
	dark := middleware.GetWorkspace(c).Preferences.ToggleDarkMode()
	utils.Success(c, 200, "Dark mode toggled", gin.H{"darkMode": dark})
}
