package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_storefront/internal/models"
	"github.com/GTDGit/gtd_storefront/internal/utils"
)

// LoadingProductMessage is shown while, or instead of, a product detail load.
const LoadingProductMessage = "Loading product..."

// ProductDetailService loads single products for the detail view.
type ProductDetailService struct {
	catalog ProductCatalog
}

// NewProductDetailService constructs a ProductDetailService.
func NewProductDetailService(catalog ProductCatalog) *ProductDetailService {
	return &ProductDetailService{catalog: catalog}
}

// Get fetches product id. Failures are logged and reported as
// ErrProductUnavailable; they are not retried.
func (s *ProductDetailService) Get(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		log.Error().Err(err).Int("product_id", id).Msg("Failed to fetch product")
		return nil, fmt.Errorf("%w: %v", utils.ErrProductUnavailable, err)
	}
	return p, nil
}
