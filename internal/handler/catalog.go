package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/repository"
)

// CatalogHandler serves the reference data endpoints: category tree,
// events with their options, and standard product autocomplete.
type CatalogHandler struct {
	CategoryRepo *repository.CategoryRepo
	EventRepo    *repository.EventRepo
	ProductRepo  *repository.ProductRepo
}

// NewCatalogHandler constructs a CatalogHandler and panics if a
// dependency is nil.
func NewCatalogHandler(categoryRepo *repository.CategoryRepo, eventRepo *repository.EventRepo, productRepo *repository.ProductRepo) *CatalogHandler {
	if categoryRepo == nil || eventRepo == nil || productRepo == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{CategoryRepo: categoryRepo, EventRepo: eventRepo, ProductRepo: productRepo}
}

// ListCategories handles GET /api/categories and returns the flat
// category list with parent links; clients assemble the tree.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.CategoryRepo.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch categories: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch categories"})
	}
	out := make([]echo.Map, 0, len(cats))
	for _, cat := range cats {
		out = append(out, echo.Map{
			"category_id":        cat.ID,
			"category_name":      cat.Name,
			"parent_category_id": cat.ParentID,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ListEvents handles GET /api/events.
func (h *CatalogHandler) ListEvents(c echo.Context) error {
	events, err := h.EventRepo.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch events"})
	}
	out := make([]echo.Map, 0, len(events))
	for _, e := range events {
		out = append(out, echo.Map{
			"event_id":    e.ID,
			"event_name":  e.Name,
			"artist_name": e.ArtistName,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ListEventOptions handles GET /api/events/:id/options.
func (h *CatalogHandler) ListEventOptions(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid event id"})
	}
	opts, err := h.EventRepo.OptionsByEvent(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("fetch event %d options: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch event options"})
	}
	out := make([]echo.Map, 0, len(opts))
	for _, o := range opts {
		out = append(out, echo.Map{
			"event_option_id": o.ID,
			"event_id":        o.EventID,
			"venue":           o.Venue,
			"event_datetime":  o.DateTime,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// AutocompleteProducts handles GET /api/products/autocomplete?q=. The
// query string is required; matches are capped at five.
func (h *CatalogHandler) AutocompleteProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	products, err := h.ProductRepo.Autocomplete(c.Request().Context(), q)
	if err != nil {
		c.Logger().Errorf("autocomplete products: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch products"})
	}
	out := make([]echo.Map, 0, len(products))
	for _, p := range products {
		out = append(out, echo.Map{
			"std_id":       p.ID,
			"product_code": p.ProductCode,
			"brand_name":   p.BrandName,
			"model_name":   p.ModelName,
			"specs":        p.Specs,
		})
	}
	return c.JSON(http.StatusOK, out)
}
