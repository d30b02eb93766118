package model

import "time"

// ChatRoom is a conversation about one item between its seller and a
// prospective buyer. Rooms are keyed by (item, buyer); the seller is
// derived from the item at creation time.
type ChatRoom struct {
	ID        int64     // chat_room.room_id
	ItemID    int64     // chat_room.item_id
	BuyerID   int64     // chat_room.buyer_id
	SellerID  int64     // chat_room.seller_id
	CreatedAt time.Time // chat_room.created_at
}

// ChatMessage is one entry in a room's append-only message log.
type ChatMessage struct {
	ID       int64     // chat_message.message_id
	RoomID   int64     // chat_message.room_id
	SenderID int64     // chat_message.sender_id
	Content  string    // chat_message.content
	SentAt   time.Time // chat_message.sent_at
}
