package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_storefront/internal/middleware"
	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/service"
	"github.com/GTDGit/gtd_storefront/internal/utils"
)

// ProductFormHandler serves the gated add and edit product forms.
type ProductFormHandler struct {
	formService *service.ProductFormService
}

// NewProductFormHandler creates a new ProductFormHandler.
func NewProductFormHandler(formService *service.ProductFormService) *ProductFormHandler {
	return &ProductFormHandler{formService: formService}
}

// NewForm handles GET /add-product.
func (h *ProductFormHandler) NewForm(c *gin.Context) {
	utils.Success(c, 200, "Add product", gin.H{
		"form":       models.ProductForm{},
		"categories": models.ProductCategories,
	})
}

// Create handles POST /add-product.
func (h *ProductFormHandler) Create(c *gin.Context) {
	var form models.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.ErrorWithData(c, 400, "VALIDATION_ERROR", "All fields except image are required", gin.H{"form": form})
		return
	}

	result, err := h.formService.Create(c.Request.Context(), middleware.GetWorkspace(c), form)
	if err != nil {
		h.submitError(c, err, form, service.MsgProductAddFailed)
		return
	}
	utils.Success(c, 201, result.Message, result)
}

// EditForm handles GET /edit-product/:id. When the product cannot be loaded
// the form is served empty.
func (h *ProductFormHandler) EditForm(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	form, err := h.formService.Prefill(c.Request.Context(), id)
	prefilled := err == nil
	if !prefilled {
		form = &models.ProductForm{}
	}
	utils.Success(c, 200, "Edit product", gin.H{
		"id":         id,
		"form":       form,
		"prefilled":  prefilled,
		"categories": models.ProductCategories,
	})
}

// Update handles POST /edit-product/:id.
func (h *ProductFormHandler) Update(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var form models.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.ErrorWithData(c, 400, "VALIDATION_ERROR", "All fields except image are required", gin.H{"form": form})
		return
	}

	result, err := h.formService.Update(c.Request.Context(), middleware.GetWorkspace(c), id, form)
	if err != nil {
		h.submitError(c, err, form, service.MsgProductUpdFailed)
		return
	}
	utils.Success(c, 200, result.Message, result)
}

func (h *ProductFormHandler) submitError(c *gin.Context, err error, form models.ProductForm, failed string) {
	data := gin.H{"form": form}
	switch {
	case errors.Is(err, utils.ErrInvalidNumber):
		utils.ErrorWithData(c, 400, utils.ErrInvalidNumber.Error(), "Price and stock must be numbers", data)
	case errors.Is(err, utils.ErrSubmitPending):
		utils.ErrorWithData(c, 409, utils.ErrSubmitPending.Error(), "A submission is already in progress", data)
	case errors.Is(err, utils.ErrSubmitFailed):
		utils.ErrorWithData(c, 502, utils.ErrSubmitFailed.Error(), failed, data)
	default:
		utils.ErrorWithData(c, 500, "INTERNAL_ERROR", failed, data)
	}
}
