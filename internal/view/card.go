package view

import (
	"strconv"

	"github.com/GTDGit/gtd_storefront/internal/models"
)

const (
	titleLimit       = 25
	titleKeep        = 20
	descriptionLimit = 100
	descriptionKeep  = 80
	ellipsis         = "..."
)

// TruncateTitle shortens titles longer than 25 characters to 20 plus "...".
func TruncateTitle(title string) string {
	return truncate(title, titleLimit, titleKeep)
}

// TruncateDescription shortens descriptions longer than 100 characters to 80 plus "...".
func TruncateDescription(description string) string {
	return truncate(description, descriptionLimit, descriptionKeep)
}

func truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + ellipsis
}

// Card is a product as rendered in the listing grid.
type Card struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Category    string        `json:"category"`
	Image       string        `json:"image"`
	Rating      models.Rating `json:"rating"`
	IsFavorite  bool          `json:"isFavorite"`
	DetailPath  string        `json:"detailPath"`
	// Favorite is the entry to send back when toggling this card.
	Favorite models.FavoriteEntry `json:"favorite"`
}

// FavoriteChecker answers membership queries in constant time.
type FavoriteChecker interface {
	IsFavorite(id int) bool
}

// Cards projects products to cards in order.
func Cards(products []models.Product, favs FavoriteChecker) []Card {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewCard(p, favs))
	}
	return cards
}

// NewCard projects a single product.
func NewCard(p models.Product, favs FavoriteChecker) Card {
	return Card{
		ID:          p.ID,
		Title:       TruncateTitle(p.Title),
		Description: TruncateDescription(p.Description),
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.DisplayImage(),
		Rating:      p.Rating,
		IsFavorite:  favs != nil && favs.IsFavorite(p.ID),
		DetailPath:  "/product/" + strconv.Itoa(p.ID),
		Favorite:    p.FavoriteEntry(),
	}
}
