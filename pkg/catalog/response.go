package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/GTDGit/gtd_storefront/internal/models"
)

// ListResponse is the product list payload. Some catalogs wrap the list in
// {"products": [...]}, others return the bare array; both decode here.
type ListResponse struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total,omitempty"`
}

// UnmarshalJSON accepts the wrapped and the bare-array shapes.
func (r *ListResponse) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return err
		}
		*r = ListResponse{Products: products, Total: len(products)}
		return nil
	}
	type wrapped ListResponse
	var w wrapped
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = ListResponse(w)
	return nil
}

// APIError is returned when the catalog answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog responded with status %d", e.StatusCode)
}
