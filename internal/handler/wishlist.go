package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/repository"
)

// WishlistHandler serves the per-user wishlist and the per-item wish
// count.
type WishlistHandler struct {
	WishlistRepo *repository.WishlistRepo
}

// NewWishlistHandler constructs a WishlistHandler and panics if the
// repository is nil.
func NewWishlistHandler(wishlistRepo *repository.WishlistRepo) *WishlistHandler {
	if wishlistRepo == nil {
		panic("nil repository passed to NewWishlistHandler")
	}
	return &WishlistHandler{WishlistRepo: wishlistRepo}
}

// List handles GET /api/users/:id/wishlist.
func (h *WishlistHandler) List(c echo.Context) error {
	userID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	items, err := h.WishlistRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("fetch user %d wishlist: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch wishlist"})
	}
	return c.JSON(http.StatusOK, items)
}

// Check handles GET /api/users/:id/wishlist/:itemId and reports whether
// the item is on the user's wishlist.
func (h *WishlistHandler) Check(c echo.Context) error {
	userID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	itemID, ok := parseID(c.Param("itemId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	wished, err := h.WishlistRepo.Contains(c.Request().Context(), userID, itemID)
	if err != nil {
		c.Logger().Errorf("check wishlist (%d, %d): %v", userID, itemID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to check wishlist"})
	}
	return c.JSON(http.StatusOK, echo.Map{"wished": wished})
}

// Add handles POST /api/users/:id/wishlist. Adding an item already on
// the wishlist succeeds and returns the existing entry.
func (h *WishlistHandler) Add(c echo.Context) error {
	userID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	var body struct {
		ItemID int64 `json:"item_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ItemID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}
	w, err := h.WishlistRepo.Add(c.Request().Context(), userID, body.ItemID)
	if err != nil {
		c.Logger().Errorf("add to wishlist (%d, %d): %v", userID, body.ItemID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add to wishlist"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"wishlist_id": w.ID,
		"user_id":     w.UserID,
		"item_id":     w.ItemID,
		"created_at":  w.CreatedAt,
	})
}

// Remove handles DELETE /api/users/:id/wishlist/:itemId. Removing an
// absent entry is a no-op.
func (h *WishlistHandler) Remove(c echo.Context) error {
	userID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	itemID, ok := parseID(c.Param("itemId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	if err := h.WishlistRepo.Remove(c.Request().Context(), userID, itemID); err != nil {
		c.Logger().Errorf("remove from wishlist (%d, %d): %v", userID, itemID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove from wishlist"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CountForItem handles GET /api/items/:id/wishlist-count.
func (h *WishlistHandler) CountForItem(c echo.Context) error {
	itemID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	n, err := h.WishlistRepo.CountForItem(c.Request().Context(), itemID)
	if err != nil {
		c.Logger().Errorf("count wishlist for item %d: %v", itemID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to count wishlist"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item_id": itemID, "count": n})
}
