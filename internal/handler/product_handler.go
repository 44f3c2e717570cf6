package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_storefront/internal/middleware"
	"github.com/GTDGit/gtd_storefront/internal/service"
	"github.com/GTDGit/gtd_storefront/internal/utils"
	"github.com/GTDGit/gtd_storefront/internal/view"
)

// ProductHandler serves the product detail view.
type ProductHandler struct {
	detailService *service.ProductDetailService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(detailService *service.ProductDetailService) *ProductHandler {
	return &ProductHandler{detailService: detailService}
}

// Get handles GET /product/:id. A failed fetch renders the loading state.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.detailService.Get(c.Request.Context(), id)
	if err != nil {
		utils.Success(c, 200, service.LoadingProductMessage, gin.H{
			"status": view.StatusLoading,
		})
		return
	}

	ws := middleware.GetWorkspace(c)
	utils.Success(c, 200, "Product retrieved successfully", gin.H{
		"status":     view.StatusReady,
		"product":    product,
		"image":      product.DisplayImage(),
		"isFavorite": ws.Favorites.IsFavorite(product.ID),
		"favorite":   product.FavoriteEntry(),
		"editPath":   "/edit-product/" + strconv.Itoa(product.ID),
	})
}

func parseProductID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, 400, utils.ErrInvalidProductID.Error(), "Invalid product ID")
		return 0, false
	}
	return id, true
}
