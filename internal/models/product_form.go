package models

// ProductForm is the add/edit form as typed by the user. Price and stock stay
// text until submission, when they are coerced to numbers.
type ProductForm struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Stock       string `json:"stock" binding:"required"`
	Brand       string `json:"brand" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Image       string `json:"image"`
}

// ProductPayload is the body sent to the catalog on create and update.
type ProductPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       float64 `json:"stock"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Thumbnail   string  `json:"thumbnail"`
}

// ProductCategories lists the categories offered by the form and listing selects.
// The view engine treats category values as opaque; this list only feeds the UI.
var ProductCategories = []string{"smartphones", "laptops", "fragrances", "skincare"}
