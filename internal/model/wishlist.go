package model

import "time"

// Wishlist links a user to an item they want to keep an eye on. The
// (user, item) pair is unique.
type Wishlist struct {
	ID        int64     // wishlist.wishlist_id
	UserID    int64     // wishlist.user_id
	ItemID    int64     // wishlist.item_id
	CreatedAt time.Time // wishlist.created_at
}
