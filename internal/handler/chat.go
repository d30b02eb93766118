package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haein-dev/c2c-market/internal/repository"
)

// ChatHandler serves item-scoped chat rooms and their message logs.
type ChatHandler struct {
	ChatRepo *repository.ChatRepo
}

// NewChatHandler constructs a ChatHandler and panics if the repository
// is nil.
func NewChatHandler(chatRepo *repository.ChatRepo) *ChatHandler {
	if chatRepo == nil {
		panic("nil repository passed to NewChatHandler")
	}
	return &ChatHandler{ChatRepo: chatRepo}
}

// ListRooms handles GET /api/chat/rooms?user_id= and returns every room
// the user participates in, most recently active first.
func (h *ChatHandler) ListRooms(c echo.Context) error {
	userID, ok := parseID(c.QueryParam("user_id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	rooms, err := h.ChatRepo.RoomsForUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("fetch chat rooms for user %d: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch chat rooms"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// CreateRoom handles POST /api/chat/rooms. A room is keyed by (item,
// buyer); repeating the request returns the existing room with 200
// instead of 201.
func (h *ChatHandler) CreateRoom(c echo.Context) error {
	var body struct {
		ItemID  int64 `json:"item_id"`
		BuyerID int64 `json:"buyer_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ItemID <= 0 || body.BuyerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id and buyer_id are required"})
	}

	room, created, err := h.ChatRepo.GetOrCreateRoom(c.Request().Context(), body.ItemID, body.BuyerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
		case errors.Is(err, repository.ErrSelfChat):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot chat on your own item"})
		}
		c.Logger().Errorf("create chat room: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create chat room"})
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{
		"room_id":    room.ID,
		"item_id":    room.ItemID,
		"buyer_id":   room.BuyerID,
		"seller_id":  room.SellerID,
		"created_at": room.CreatedAt,
	})
}

// GetRoom handles GET /api/chat/rooms/:id and returns the room summary
// together with its messages in send order.
func (h *ChatHandler) GetRoom(c echo.Context) error {
	roomID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid room id"})
	}
	ctx := c.Request().Context()

	room, err := h.ChatRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Chat room not found"})
		}
		c.Logger().Errorf("fetch chat room %d: %v", roomID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch chat room"})
	}
	messages, err := h.ChatRepo.MessagesForRoom(ctx, roomID)
	if err != nil {
		c.Logger().Errorf("fetch messages for room %d: %v", roomID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room": room, "messages": messages})
}

// SendMessage handles POST /api/chat/rooms/:id/messages. Only the
// room's buyer or seller may post into it.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	roomID, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid room id"})
	}
	var body struct {
		SenderID int64  `json:"sender_id"`
		Content  string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SenderID <= 0 || body.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sender_id and content are required"})
	}
	ctx := c.Request().Context()

	room, err := h.ChatRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Chat room not found"})
		}
		c.Logger().Errorf("fetch chat room %d: %v", roomID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send message"})
	}
	if body.SenderID != room.BuyerID && body.SenderID != room.SellerID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Sender is not part of this chat room"})
	}

	msg, err := h.ChatRepo.AddMessage(ctx, roomID, body.SenderID, body.Content)
	if err != nil {
		c.Logger().Errorf("send message to room %d: %v", roomID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send message"})
	}
	return c.JSON(http.StatusCreated, msg)
}
