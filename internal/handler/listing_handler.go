package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_storefront/internal/middleware"
	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/utils"
	"github.com/GTDGit/gtd_storefront/internal/view"
	"github.com/GTDGit/gtd_storefront/internal/workspace"
)

// ListingHandler serves the product listing view and its filter controls.
type ListingHandler struct{}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler() *ListingHandler {
	return &ListingHandler{}
}

// ListingResponse is the rendered listing view.
type ListingResponse struct {
	Status     view.Status      `json:"status"`
	Filters    view.FilterState `json:"filters"`
	Products   []view.Card      `json:"products"`
	Total      int              `json:"total"`
	Categories []string         `json:"categories"`
	DarkMode   bool             `json:"darkMode"`
}

type searchRequest struct {
	Text string `json:"text"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type sortRequest struct {
	Key string `json:"key" binding:"required"`
}

type priceRequest struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Show handles GET /?category=. The first visit mounts the view and waits
// for the catalog; a failed load leaves the view loading.
func (h *ListingHandler) Show(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	engine := ws.View()

	var category *string
	if v, ok := c.GetQuery("category"); ok {
		category = &v
	}
	engine.SetURLCategory(category)

	// The load outlives a dropped request; Dispose is what cancels a view.
	// A failed or disposed load is already reflected in the snapshot.
	_ = engine.Mount(context.WithoutCancel(c.Request.Context()))

	snap := engine.Snapshot()
	message := "Products retrieved successfully"
	if snap.Status == view.StatusLoading {
		message = "Loading products..."
	}
	utils.Success(c, 200, message, h.render(ws, snap))
}

// Search handles POST /view/search.
func (h *ListingHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	h.dispatch(c, view.Search{Text: req.Text})
}

// SelectCategory handles POST /view/category.
func (h *ListingHandler) SelectCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	h.dispatch(c, view.SelectCategory{Category: req.Category})
}

// Sort handles POST /view/sort.
func (h *ListingHandler) Sort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "key is required")
		return
	}
	key, err := view.ParseSortKey(req.Key)
	if err != nil {
		utils.Error(c, 400, "INVALID_SORT_KEY", err.Error())
		return
	}
	h.dispatch(c, view.Sort{Key: key})
}

// PriceRange handles POST /view/price. A null bound is unset.
func (h *ListingHandler) PriceRange(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	h.dispatch(c, view.PriceRange{Min: req.Min, Max: req.Max})
}

// Clear handles POST /view/clear.
func (h *ListingHandler) Clear(c *gin.Context) {
	h.dispatch(c, view.ClearFilters{})
}

// Dispose handles DELETE /view. The next GET / mounts a fresh view.
func (h *ListingHandler) Dispose(c *gin.Context) {
	middleware.GetWorkspace(c).DisposeView()
	utils.Success(c, 200, "View disposed", nil)
}

func (h *ListingHandler) dispatch(c *gin.Context, cmd view.Command) {
	ws := middleware.GetWorkspace(c)
	snap, err := ws.View().Dispatch(cmd)
	if err != nil {
		// Disposed between lookup and dispatch.
		utils.Error(c, 409, utils.ErrViewDisposed.Error(), "View was closed, reload the listing")
		return
	}
	utils.Success(c, 200, "View updated", h.render(ws, snap))
}

func (h *ListingHandler) render(ws *workspace.Workspace, snap view.Snapshot) ListingResponse {
	return ListingResponse{
		Status:     snap.Status,
		Filters:    snap.Filters,
		Products:   view.Cards(snap.Products, ws.Favorites),
		Total:      snap.Total,
		Categories: models.ProductCategories,
		DarkMode:   ws.Preferences.DarkMode(),
	}
}
