package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// PlaceholderImage is shown on cards for products without an image.
	PlaceholderImage = "https://via.placeholder.com/250"
	// PlaceholderThumbnail is submitted when a product form leaves the image empty.
	PlaceholderThumbnail = "https://via.placeholder.com/150"
)

// Rating is the aggregated review score of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// UnmarshalJSON accepts both the {rate,count} object and a bare number,
// which some catalog deployments return instead.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}
	if data[0] != '{' {
		var rate float64
		if err := json.Unmarshal(data, &rate); err != nil {
			return fmt.Errorf("rating: %w", err)
		}
		*r = Rating{Rate: rate}
		return nil
	}
	type plain Rating
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	*r = Rating(p)
	return nil
}

// Product represents a catalog product as delivered by the remote catalog.
// It is replaced wholesale by create/edit round-trips, never patched in place.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Rating      Rating  `json:"rating"`

	// Present on dummyjson-style catalogs; used to prefill the edit form.
	Stock     float64 `json:"stock,omitempty"`
	Brand     string  `json:"brand,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// DisplayImage returns the image to render for the product.
func (p Product) DisplayImage() string {
	switch {
	case p.Image != "":
		return p.Image
	case p.Thumbnail != "":
		return p.Thumbnail
	default:
		return PlaceholderImage
	}
}

// FavoriteEntry projects the product into the reduced shape kept in the favorites set.
func (p Product) FavoriteEntry() FavoriteEntry {
	return FavoriteEntry{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.DisplayImage(),
		Category: p.Category,
	}
}

// FavoriteEntry is the persisted projection of a favorited product. It is
// decoupled from Product so stored favorites stay readable if the catalog shape changes.
type FavoriteEntry struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}
