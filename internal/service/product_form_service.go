package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/sse"
	"github.com/GTDGit/gtd_storefront/internal/utils"
)

// Toast messages for the product forms.
const (
	MsgProductAdded     = "Product added successfully!"
	MsgProductUpdated   = "Product updated successfully!"
	MsgProductAddFailed = "Failed to add product."
	MsgProductUpdFailed = "Failed to update product."
)

// ProductCatalog is the catalog surface used by the form flows.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, payload models.ProductPayload) (*models.Product, error)
}

// Submitter is the workspace side of a form submission.
type Submitter interface {
	BeginSubmit() bool
	EndSubmit()
	Toast(kind, message string)
}

// SubmitResult describes a successful submission.
type SubmitResult struct {
	Product  *models.Product `json:"product,omitempty"`
	Message  string          `json:"message"`
	Redirect string          `json:"redirect"`
}

// ProductFormService drives the add and edit product forms.
type ProductFormService struct {
	catalog ProductCatalog
}

// NewProductFormService constructs a ProductFormService.
func NewProductFormService(catalog ProductCatalog) *ProductFormService {
	return &ProductFormService{catalog: catalog}
}

// Create submits form as a new product.
func (s *ProductFormService) Create(ctx context.Context, ws Submitter, form models.ProductForm) (*SubmitResult, error) {
	payload, err := ToPayload(form)
	if err != nil {
		return nil, err
	}
	if !ws.BeginSubmit() {
		return nil, utils.ErrSubmitPending
	}
	defer ws.EndSubmit()

	product, err := s.catalog.CreateProduct(ctx, payload)
	if err != nil {
		log.Error().Err(err).Str("title", payload.Title).Msg("Failed to add product")
		ws.Toast(sse.ToastError, MsgProductAddFailed)
		return nil, fmt.Errorf("%w: %v", utils.ErrSubmitFailed, err)
	}

	log.Info().Str("title", payload.Title).Msg("Product added")
	ws.Toast(sse.ToastSuccess, MsgProductAdded)
	return &SubmitResult{Product: product, Message: MsgProductAdded, Redirect: "/"}, nil
}

// Update submits form as the new state of product id.
func (s *ProductFormService) Update(ctx context.Context, ws Submitter, id int, form models.ProductForm) (*SubmitResult, error) {
	payload, err := ToPayload(form)
	if err != nil {
		return nil, err
	}
	if !ws.BeginSubmit() {
		return nil, utils.ErrSubmitPending
	}
	defer ws.EndSubmit()

	product, err := s.catalog.UpdateProduct(ctx, id, payload)
	if err != nil {
		log.Error().Err(err).Int("product_id", id).Msg("Failed to update product")
		ws.Toast(sse.ToastError, MsgProductUpdFailed)
		return nil, fmt.Errorf("%w: %v", utils.ErrSubmitFailed, err)
	}

	log.Info().Int("product_id", id).Msg("Product updated")
	ws.Toast(sse.ToastSuccess, MsgProductUpdated)
	return &SubmitResult{
		Product:  product,
		Message:  MsgProductUpdated,
		Redirect: "/product/" + strconv.Itoa(id),
	}, nil
}

// Prefill loads product id into an edit form.
func (s *ProductFormService) Prefill(ctx context.Context, id int) (*models.ProductForm, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		log.Error().Err(err).Int("product_id", id).Msg("Failed to load product for edit")
		return nil, fmt.Errorf("%w: %v", utils.ErrProductUnavailable, err)
	}
	image := p.Thumbnail
	if image == "" {
		image = p.Image
	}
	return &models.ProductForm{
		Title:       p.Title,
		Description: p.Description,
		Price:       formatNumber(p.Price),
		Stock:       formatNumber(p.Stock),
		Brand:       p.Brand,
		Category:    p.Category,
		Image:       image,
	}, nil
}

// ToPayload coerces the form's numeric text and fills the image fallback.
func ToPayload(form models.ProductForm) (models.ProductPayload, error) {
	price, err := ParseNumber(form.Price)
	if err != nil {
		return models.ProductPayload{}, fmt.Errorf("price: %w", err)
	}
	stock, err := ParseNumber(form.Stock)
	if err != nil {
		return models.ProductPayload{}, fmt.Errorf("stock: %w", err)
	}
	thumbnail := strings.TrimSpace(form.Image)
	if thumbnail == "" {
		thumbnail = models.PlaceholderThumbnail
	}
	return models.ProductPayload{
		Title:       form.Title,
		Description: form.Description,
		Price:       price,
		Stock:       stock,
		Brand:       form.Brand,
		Category:    form.Category,
		Thumbnail:   thumbnail,
	}, nil
}

// ParseNumber converts typed text to a number. Blank text is 0; anything that
// is not a finite number is ErrInvalidNumber.
func ParseNumber(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", utils.ErrInvalidNumber, text)
	}
	return v, nil
}

func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
