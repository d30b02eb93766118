package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/repository"
)

// UserHandler serves user listings, reputation profiles and the
// per-user views: listed items, purchase history and received reviews.
type UserHandler struct {
	UserRepo        *repository.UserRepo
	ItemRepo        *repository.ItemRepo
	TransactionRepo *repository.TransactionRepo
	ReviewRepo      *repository.ReviewRepo
}

// NewUserHandler constructs a UserHandler and panics if a dependency is
// nil.
func NewUserHandler(userRepo *repository.UserRepo, itemRepo *repository.ItemRepo, transactionRepo *repository.TransactionRepo, reviewRepo *repository.ReviewRepo) *UserHandler {
	if userRepo == nil || itemRepo == nil || transactionRepo == nil || reviewRepo == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{
		UserRepo:        userRepo,
		ItemRepo:        itemRepo,
		TransactionRepo: transactionRepo,
		ReviewRepo:      reviewRepo,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.UserRepo.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetch users: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch users"})
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{
			"user_id":    u.ID,
			"username":   u.Username,
			"created_at": u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/users/:id and returns the user with their
// received-review aggregate.
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	profile, err := h.UserRepo.GetProfile(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("fetch user %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch user"})
	}
	return c.JSON(http.StatusOK, profile)
}

// ListItems handles GET /api/users/:id/items and returns the items the
// user has listed for sale, newest first.
func (h *UserHandler) ListItems(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	items, err := h.ItemRepo.ListBySeller(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("fetch user %d items: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch items"})
	}
	return c.JSON(http.StatusOK, items)
}

// ListPurchases handles GET /api/users/:id/purchases and returns the
// transactions where the user was the buyer, newest first.
func (h *UserHandler) ListPurchases(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	purchases, err := h.TransactionRepo.ListByBuyer(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("fetch user %d purchases: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch purchases"})
	}
	return c.JSON(http.StatusOK, purchases)
}

// ListReviews handles GET /api/users/:id/reviews and returns the
// reviews the user has received.
func (h *UserHandler) ListReviews(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}
	reviews, err := h.ReviewRepo.ListForUser(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("fetch user %d reviews: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch reviews"})
	}
	return c.JSON(http.StatusOK, reviews)
}
