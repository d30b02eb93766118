// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/handler"
)

// Handlers bundles every handler the API mounts. All fields are
// required.
type Handlers struct {
	Item        *handler.ItemHandler
	Transaction *handler.TransactionHandler
	Catalog     *handler.CatalogHandler
	User        *handler.UserHandler
	Wishlist    *handler.WishlistHandler
	Chat        *handler.ChatHandler
}

// RegisterRoutes registers routes that live outside the /api prefix.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.Health)
}

// RegisterAPI mounts every marketplace endpoint under /api. cacheMW is
// applied only to the catalog reads (categories, events, product
// autocomplete); listing and transactional endpoints always hit the
// database so writes are visible immediately.
func RegisterAPI(e *echo.Echo, h Handlers, cacheMW echo.MiddlewareFunc) {
	api := e.Group("/api")

	// Items: search, detail, creation, status transitions.
	api.GET("/items", h.Item.List)
	api.POST("/items", h.Item.Create)
	api.GET("/items/:id", h.Item.Get)
	api.PATCH("/items/:id/status", h.Item.UpdateStatus)
	api.GET("/items/:id/wishlist-count", h.Wishlist.CountForItem)

	// Transactions and reviews.
	api.POST("/transactions", h.Transaction.Create)
	api.GET("/transactions/:id", h.Transaction.Get)
	api.POST("/transactions/:id/review", h.Transaction.CreateReview)

	// Catalog reference data, cached when Redis is available.
	api.GET("/categories", h.Catalog.ListCategories, cacheMW)
	api.GET("/events", h.Catalog.ListEvents, cacheMW)
	api.GET("/events/:id/options", h.Catalog.ListEventOptions, cacheMW)
	api.GET("/products/autocomplete", h.Catalog.AutocompleteProducts, cacheMW)

	// Users and their per-user views.
	api.GET("/users", h.User.List)
	api.GET("/users/:id", h.User.Get)
	api.GET("/users/:id/items", h.User.ListItems)
	api.GET("/users/:id/purchases", h.User.ListPurchases)
	api.GET("/users/:id/reviews", h.User.ListReviews)

	// Wishlist.
	api.GET("/users/:id/wishlist", h.Wishlist.List)
	api.POST("/users/:id/wishlist", h.Wishlist.Add)
	api.GET("/users/:id/wishlist/:itemId", h.Wishlist.Check)
	api.DELETE("/users/:id/wishlist/:itemId", h.Wishlist.Remove)

	// Chat.
	api.GET("/chat/rooms", h.Chat.ListRooms)
	api.POST("/chat/rooms", h.Chat.CreateRoom)
	api.GET("/chat/rooms/:id", h.Chat.GetRoom)
	api.POST("/chat/rooms/:id/messages", h.Chat.SendMessage)
}
