package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/queue"
	"github.com/haein-dev/c2c-market/internal/repository"
	queuepub "github.com/haein-dev/c2c-market/internal/service"
)

// TransactionHandler serves purchase finalization, transaction detail
// and post-transaction reviews.
type TransactionHandler struct {
	TransactionRepo *repository.TransactionRepo
	ReviewRepo      *repository.ReviewRepo
}

// NewTransactionHandler constructs a TransactionHandler and panics if a
// dependency is nil.
func NewTransactionHandler(transactionRepo *repository.TransactionRepo, reviewRepo *repository.ReviewRepo) *TransactionHandler {
	if transactionRepo == nil || reviewRepo == nil {
		panic("nil repository passed to NewTransactionHandler")
	}
	return &TransactionHandler{TransactionRepo: transactionRepo, ReviewRepo: reviewRepo}
}

// Create handles POST /api/transactions. The purchase runs as one
// database transaction with an exclusive row lock on the item, so
// concurrent purchase attempts against the same item serialize and at
// most one succeeds; the rest see "not available". A committed sale
// additionally publishes an ItemSold event, best effort.
func (h *TransactionHandler) Create(c echo.Context) error {
	var body struct {
		ItemID     int64 `json:"item_id"`
		BuyerID    int64 `json:"buyer_id"`
		FinalPrice int64 `json:"final_price"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ItemID <= 0 || body.BuyerID <= 0 || body.FinalPrice <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id, buyer_id, and final_price are required"})
	}

	res, err := h.TransactionRepo.CreatePurchase(c.Request().Context(), body.ItemID, body.BuyerID, body.FinalPrice)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
		case errors.Is(err, repository.ErrItemUnavailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Item is not available for purchase"})
		case errors.Is(err, repository.ErrSelfPurchase):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot buy your own item"})
		}
		c.Logger().Errorf("create transaction: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create transaction"})
	}

	// The sale is committed; a publish failure only loses the event.
	_ = queuepub.PublishItemSold(c.Request().Context(), queue.ItemSoldEvent{
		TransactionID: res.Transaction.ID,
		ItemID:        res.Transaction.ItemID,
		SellerID:      res.SellerID,
		BuyerID:       res.Transaction.BuyerID,
		FinalPrice:    res.Transaction.FinalPrice,
		Title:         res.ItemTitle,
		SoldAt:        res.Transaction.TransDate.UTC().Format(time.RFC3339),
	})

	t := res.Transaction
	return c.JSON(http.StatusCreated, echo.Map{
		"trans_id":    t.ID,
		"item_id":     t.ItemID,
		"buyer_id":    t.BuyerID,
		"final_price": t.FinalPrice,
		"trans_date":  t.TransDate,
	})
}

// Get handles GET /api/transactions/:id.
func (h *TransactionHandler) Get(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid transaction id"})
	}
	detail, err := h.TransactionRepo.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Transaction not found"})
		}
		c.Logger().Errorf("fetch transaction %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch transaction"})
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateReview handles POST /api/transactions/:id/review. The reviewer
// must be the transaction's buyer or the item's seller; the reviewee is
// the other party. One review per (transaction, reviewer).
func (h *TransactionHandler) CreateReview(c echo.Context) error {
	transID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid transaction id"})
	}
	var body struct {
		ReviewerID int64   `json:"reviewer_id"`
		Rating     int     `json:"rating"`
		Comment    *string `json:"comment"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ReviewerID <= 0 || body.Rating == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reviewer_id and rating are required"})
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Rating must be between 1 and 5"})
	}

	rev, err := h.ReviewRepo.Create(c.Request().Context(), transID, body.ReviewerID, body.Rating, body.Comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Transaction not found"})
		case errors.Is(err, repository.ErrNotParticipant):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "You are not part of this transaction"})
		case errors.Is(err, repository.ErrDuplicateReview):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "You have already reviewed this transaction"})
		}
		c.Logger().Errorf("create review for transaction %d: %v", transID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create review"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"review_id":   rev.ID,
		"trans_id":    rev.TransID,
		"reviewer_id": rev.ReviewerID,
		"reviewee_id": rev.RevieweeID,
		"rating":      rev.Rating,
		"comment":     rev.Comment,
		"created_at":  rev.CreatedAt,
	})
}
