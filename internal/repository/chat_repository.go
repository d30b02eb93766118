package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/haein-dev/c2c-market/internal/model"
)

// ChatRepo manages chat rooms and their append-only message logs. A
// room is keyed by (item, buyer); the seller is derived from the item
// when the room is created.
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo returns a ChatRepo bound to the given database.
func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{db: db} }

// RoomSummary is a chat room as shown in a user's room list, with the
// item, both party names and the latest message joined in.
type RoomSummary struct {
	RoomID        int64      `json:"room_id"`
	ItemID        int64      `json:"item_id"`
	BuyerID       int64      `json:"buyer_id"`
	SellerID      int64      `json:"seller_id"`
	CreatedAt     time.Time  `json:"created_at"`
	ItemTitle     string     `json:"item_title"`
	ItemPrice     int64      `json:"item_price"`
	ItemStatus    string     `json:"item_status"`
	BuyerName     string     `json:"buyer_name"`
	SellerName    string     `json:"seller_name"`
	LastMessage   *string    `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

const roomSummarySQL = `
	SELECT cr.room_id, cr.item_id, cr.buyer_id, cr.seller_id, cr.created_at,
	       i.title, i.price, i.status,
	       buyer.username, seller.username,
	       (SELECT content FROM chat_message WHERE room_id = cr.room_id ORDER BY sent_at DESC LIMIT 1),
	       (SELECT sent_at FROM chat_message WHERE room_id = cr.room_id ORDER BY sent_at DESC LIMIT 1)
	FROM chat_room cr
	JOIN item i ON cr.item_id = i.item_id
	JOIN users buyer ON cr.buyer_id = buyer.user_id
	JOIN users seller ON cr.seller_id = seller.user_id`

func scanRoomSummary(row interface{ Scan(...any) error }) (*RoomSummary, error) {
	var s RoomSummary
	err := row.Scan(
		&s.RoomID, &s.ItemID, &s.BuyerID, &s.SellerID, &s.CreatedAt,
		&s.ItemTitle, &s.ItemPrice, &s.ItemStatus,
		&s.BuyerName, &s.SellerName,
		&s.LastMessage, &s.LastMessageAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RoomsForUser returns every room the user participates in as buyer or
// seller, most recently active first.
func (r *ChatRepo) RoomsForUser(ctx context.Context, userID int64) ([]RoomSummary, error) {
	q := roomSummarySQL + `
	WHERE cr.buyer_id = $1 OR cr.seller_id = $1
	ORDER BY (SELECT sent_at FROM chat_message WHERE room_id = cr.room_id ORDER BY sent_at DESC LIMIT 1) DESC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("can't query chat rooms: %w", err)
	}
	defer rows.Close()

	out := make([]RoomSummary, 0)
	for rows.Next() {
		s, err := scanRoomSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan chat room: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// GetOrCreateRoom returns the room for (item, buyer), creating it if
// needed. The seller is looked up from the item; ErrNotFound is
// returned when the item does not exist and ErrSelfChat when the buyer
// is the item's own seller. created reports whether a new room was
// made.
func (r *ChatRepo) GetOrCreateRoom(ctx context.Context, itemID, buyerID int64) (room *model.ChatRoom, created bool, err error) {
	var sellerID int64
	err = r.db.QueryRowContext(ctx,
		`SELECT seller_id FROM item WHERE item_id = $1`, itemID,
	).Scan(&sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("can't query item: %w", err)
	}
	if sellerID == buyerID {
		return nil, false, ErrSelfChat
	}

	room = &model.ChatRoom{ItemID: itemID, BuyerID: buyerID, SellerID: sellerID}
	err = r.db.QueryRowContext(ctx,
		`SELECT room_id, created_at FROM chat_room WHERE item_id = $1 AND buyer_id = $2`,
		itemID, buyerID,
	).Scan(&room.ID, &room.CreatedAt)
	if err == nil {
		return room, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("can't query chat room: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO chat_room (item_id, buyer_id, seller_id) VALUES ($1, $2, $3)
		 RETURNING room_id, created_at`,
		itemID, buyerID, sellerID,
	).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with another request creating the same room.
			err = r.db.QueryRowContext(ctx,
				`SELECT room_id, created_at FROM chat_room WHERE item_id = $1 AND buyer_id = $2`,
				itemID, buyerID,
			).Scan(&room.ID, &room.CreatedAt)
			if err == nil {
				return room, false, nil
			}
		}
		return nil, false, fmt.Errorf("can't create chat room: %w", err)
	}
	return room, true, nil
}

// Message is a chat message with the sender's name joined in.
type Message struct {
	ID         int64     `json:"message_id"`
	RoomID     int64     `json:"room_id"`
	SenderID   int64     `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
}

// GetRoom loads one room summary. Returns ErrNotFound when the id does
// not exist.
func (r *ChatRepo) GetRoom(ctx context.Context, roomID int64) (*RoomSummary, error) {
	s, err := scanRoomSummary(r.db.QueryRowContext(ctx, roomSummarySQL+` WHERE cr.room_id = $1`, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("can't query chat room: %w", err)
	}
	return s, nil
}

// MessagesForRoom returns a room's messages in send order.
func (r *ChatRepo) MessagesForRoom(ctx context.Context, roomID int64) ([]Message, error) {
	const q = `SELECT cm.message_id, cm.room_id, cm.sender_id, u.username, cm.content, cm.sent_at
	           FROM chat_message cm
	           JOIN users u ON cm.sender_id = u.user_id
	           WHERE cm.room_id = $1
	           ORDER BY cm.sent_at ASC`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, fmt.Errorf("can't query messages: %w", err)
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.SenderName, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("can't scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddMessage appends a message to a room's log and returns it with the
// sender's name.
func (r *ChatRepo) AddMessage(ctx context.Context, roomID, senderID int64, content string) (*Message, error) {
	m := &Message{RoomID: roomID, SenderID: senderID, Content: content}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO chat_message (room_id, sender_id, content) VALUES ($1, $2, $3)
		 RETURNING message_id, sent_at`,
		roomID, senderID, content,
	).Scan(&m.ID, &m.SentAt)
	if err != nil {
		return nil, fmt.Errorf("can't insert message: %w", err)
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT username FROM users WHERE user_id = $1`, senderID,
	).Scan(&m.SenderName); err != nil {
		return nil, fmt.Errorf("can't query sender: %w", err)
	}
	return m, nil
}
