package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_storefront/internal/middleware"
)

// Handlers groups every HTTP handler of the storefront.
type Handlers struct {
	Health      *HealthHandler
	Listing     *ListingHandler
	Favorites   *FavoritesHandler
	Product     *ProductHandler
	ProductForm *ProductFormHandler
	Auth        *AuthHandler
	Preferences *PreferencesHandler
	SSE         *SSEHandler
}

// SetupRoutes registers all routes. Everything except /health runs inside
// a client workspace; the product forms also require a logged-in session.
func SetupRoutes(router *gin.Engine, handlers *Handlers, clientMw *middleware.ClientMiddleware) {
	router.GET("/health", handlers.Health.GetHealth)

	app := router.Group("/")
	app.Use(clientMw.Handle())
	{
		app.GET("/", handlers.Listing.Show)
		app.POST("/view/search", handlers.Listing.Search)
		app.POST("/view/category", handlers.Listing.SelectCategory)
		app.POST("/view/sort", handlers.Listing.Sort)
		app.POST("/view/price", handlers.Listing.PriceRange)
		app.POST("/view/clear", handlers.Listing.Clear)
		app.DELETE("/view", handlers.Listing.Dispose)

		app.GET("/favorites", handlers.Favorites.List)
		app.POST("/favorites/toggle", handlers.Favorites.Toggle)

		app.GET("/product/:id", handlers.Product.Get)

		app.GET("/login", handlers.Auth.Session)
		app.POST("/login", handlers.Auth.Login)
		app.POST("/logout", handlers.Auth.Logout)

		app.GET("/preferences", handlers.Preferences.Get)
		app.POST("/preferences/dark-mode", handlers.Preferences.ToggleDarkMode)

		app.GET("/events", handlers.SSE.Stream)
	}

	gated := app.Group("/")
	gated.Use(middleware.SessionGate())
	{
		gated.GET("/add-product", handlers.ProductForm.NewForm)
		gated.POST("/add-product", handlers.ProductForm.Create)
		gated.GET("/edit-product/:id", handlers.ProductForm.EditForm)
		gated.POST("/edit-product/:id", handlers.ProductForm.Update)
	}
}
