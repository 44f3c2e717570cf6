package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_storefront/internal/middleware"
	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/sse"
	"github.com/GTDGit/gtd_storefront/internal/utils"
)

// FavoritesHandler exposes the favorites set of the current workspace.
type FavoritesHandler struct{}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler() *FavoritesHandler {
	return &FavoritesHandler{}
}

// toggleFavoriteRequest takes ID by pointer so product 0 passes the required check.
type toggleFavoriteRequest struct {
	ID       *int    `json:"id" binding:"required"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

// List handles GET /favorites.
func (h *FavoritesHandler) List(c *gin.Context) {
	favorites := middleware.GetWorkspace(c).Favorites.List()
	utils.Success(c, 200, "Favorites retrieved successfully", gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// Toggle handles POST /favorites/toggle.
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	var req toggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "id is required")
		return
	}
	entry := models.FavoriteEntry{
		ID:       *req.ID,
		Title:    req.Title,
		Price:    req.Price,
		Image:    req.Image,
		Category: req.Category,
	}

	ws := middleware.GetWorkspace(c)
	member := ws.Favorites.Toggle(c.Request.Context(), entry)

	message := "Removed from favorites!"
	if member {
		message = "Added to favorites!"
	}
	ws.Toast(sse.ToastSuccess, message)

	utils.Success(c, 200, message, gin.H{
		"id":         entry.ID,
		"isFavorite": member,
		"favorites":  ws.Favorites.List(),
	})
}
