package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/model"
	"github.com/haein-dev/c2c-market/internal/repository"
)

// defaultSellerID is the fallback identity applied when a create
// payload omits seller_id. A demo convenience, not a security boundary.
const defaultSellerID = 1

// ItemHandler serves the listing endpoints: filtered search, detail,
// creation (with optional ticket block) and status updates.
type ItemHandler struct {
	ItemRepo     *repository.ItemRepo
	CategoryRepo *repository.CategoryRepo
}

// NewItemHandler constructs an ItemHandler and panics if a dependency
// is nil.
func NewItemHandler(itemRepo *repository.ItemRepo, categoryRepo *repository.CategoryRepo) *ItemHandler {
	if itemRepo == nil || categoryRepo == nil {
		panic("nil repository passed to NewItemHandler")
	}
	return &ItemHandler{ItemRepo: itemRepo, CategoryRepo: categoryRepo}
}

// List handles GET /api/items. Filters are optional and AND-combined:
// search, category (expanded to its descendant closure per request),
// event_option_id, seat_sector, seat_row, seat_number, type
// (ticket|product) and status. Malformed filter values are ignored
// rather than rejected. Pagination: page (>=1) and limit (1..100).
func (h *ItemHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	q := repository.ItemSearchQuery{
		Search:        c.QueryParam("search"),
		EventOptionID: c.QueryParam("event_option_id"),
		SeatSector:    c.QueryParam("seat_sector"),
		SeatRow:       c.QueryParam("seat_row"),
		SeatNumber:    c.QueryParam("seat_number"),
		Kind:          c.QueryParam("type"),
		Status:        c.QueryParam("status"),
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	// Resolve the category filter to its closure so listing under a
	// parent includes every descendant. A non-numeric value is ignored,
	// matching the permissive behavior of the other filters.
	if raw := c.QueryParam("category"); raw != "" {
		if id, ok := parseID(raw); ok {
			ids, err := h.CategoryRepo.Closure(ctx, id)
			if err != nil {
				c.Logger().Errorf("resolve category closure: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch items"})
			}
			q.CategoryIDs = ids
		}
	}

	page, err := h.ItemRepo.Search(ctx, q)
	if err != nil {
		c.Logger().Errorf("search items: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch items"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": page.Items,
		"pagination": echo.Map{
			"page":       page.Page,
			"limit":      page.Limit,
			"total":      page.Total,
			"totalPages": page.TotalPages,
			"hasMore":    page.HasMore,
		},
	})
}

// Get handles GET /api/items/:id and returns the full joined detail.
func (h *ItemHandler) Get(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	detail, err := h.ItemRepo.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
		}
		c.Logger().Errorf("fetch item %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch item"})
	}
	return c.JSON(http.StatusOK, detail)
}

type createItemRequest struct {
	SellerID    *int64  `json:"seller_id"`
	StdID       *int64  `json:"std_id"`
	Title       string  `json:"title"`
	Price       int64   `json:"price"`
	CategoryID  *int64  `json:"category_id"`
	Description *string `json:"description"`
	Ticket      *struct {
		EventOptionID int64          `json:"event_option_id"`
		SeatInfo      model.SeatInfo `json:"seat_info"`
		OriginalPrice int64          `json:"original_price"`
	} `json:"ticket"`
}

// Create handles POST /api/items. Title and a positive price are
// required; the seller falls back to the demo identity when omitted.
// When a ticket block is present the item and its ticket details are
// written in one transaction, and a rejection by the database-side
// anti-scalping rule is returned to the caller with the rule's own
// message.
func (h *ItemHandler) Create(c echo.Context) error {
	var body createItemRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title == "" || body.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and price are required fields"})
	}

	in := repository.NewItem{
		SellerID:    defaultSellerID,
		Title:       body.Title,
		Price:       body.Price,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		StdID:       body.StdID,
	}
	if body.SellerID != nil {
		in.SellerID = *body.SellerID
	}
	if body.Ticket != nil {
		in.Ticket = &repository.NewTicket{
			EventOptionID: body.Ticket.EventOptionID,
			SeatInfo:      body.Ticket.SeatInfo,
			OriginalPrice: body.Ticket.OriginalPrice,
		}
	}

	item, err := h.ItemRepo.Create(c.Request().Context(), in)
	if err != nil {
		if msg, ok := repository.ConstraintMessage(err); ok {
			// Integrity rule rejections (anti-scalping cap) carry the
			// business rule text; pass it through.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
		c.Logger().Errorf("insert item: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to insert item"})
	}

	if item.IsTicket() {
		return c.JSON(http.StatusCreated, echo.Map{"item_id": item.ID})
	}
	return c.JSON(http.StatusCreated, itemJSON(item))
}

// itemJSON shapes a model.Item for a response body.
func itemJSON(it *model.Item) echo.Map {
	return echo.Map{
		"item_id":     it.ID,
		"seller_id":   it.SellerID,
		"title":       it.Title,
		"price":       it.Price,
		"status":      it.Status,
		"description": it.Description,
		"category_id": it.CategoryID,
		"std_id":      it.StdID,
		"reg_date":    it.RegDate,
	}
}

// UpdateStatus handles PATCH /api/items/:id/status. The body must
// carry one of ON_SALE, RESERVED or SOLD.
func (h *ItemHandler) UpdateStatus(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be one of ON_SALE, RESERVED, SOLD"})
	}

	item, err := h.ItemRepo.UpdateStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
		}
		c.Logger().Errorf("update item %d status: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update item"})
	}
	return c.JSON(http.StatusOK, itemJSON(item))
}
