package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/haein-dev/c2c-market/internal/model"
)

// WishlistRepo manages the many-to-many link between users and items.
type WishlistRepo struct {
	db *sql.DB
}

// NewWishlistRepo returns a WishlistRepo bound to the given database.
func NewWishlistRepo(db *sql.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// WishedItem is one wishlist entry joined with its item and, when the
// item is a ticket, the ticket fields.
type WishedItem struct {
	WishlistID    int64          `json:"wishlist_id"`
	WishedAt      time.Time      `json:"created_at"`
	ItemID        int64          `json:"item_id"`
	SellerID      int64          `json:"seller_id"`
	Title         string         `json:"title"`
	Price         int64          `json:"price"`
	Status        string         `json:"status"`
	CategoryID    *int64         `json:"category_id"`
	EventOptionID *int64         `json:"event_option_id"`
	SeatInfo      model.SeatInfo `json:"seat_info,omitempty"`
}

// ListByUser returns a user's wishlist, most recently added first.
func (r *WishlistRepo) ListByUser(ctx context.Context, userID int64) ([]WishedItem, error) {
	const q = `SELECT w.wishlist_id, w.created_at,
	                  i.item_id, i.seller_id, i.title, i.price, i.status, i.category_id,
	                  td.event_option_id, td.seat_info
	           FROM wishlist w
	           JOIN item i ON w.item_id = i.item_id
	           LEFT JOIN ticket_details td ON i.item_id = td.item_id
	           WHERE w.user_id = $1
	           ORDER BY w.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("can't query wishlist: %w", err)
	}
	defer rows.Close()

	out := make([]WishedItem, 0)
	for rows.Next() {
		var w WishedItem
		var seatRaw []byte
		if err := rows.Scan(
			&w.WishlistID, &w.WishedAt,
			&w.ItemID, &w.SellerID, &w.Title, &w.Price, &w.Status, &w.CategoryID,
			&w.EventOptionID, &seatRaw,
		); err != nil {
			return nil, fmt.Errorf("can't scan wishlist entry: %w", err)
		}
		if len(seatRaw) > 0 {
			if err := json.Unmarshal(seatRaw, &w.SeatInfo); err != nil {
				return nil, fmt.Errorf("can't decode seat info: %w", err)
			}
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Contains reports whether the (user, item) pair is on the wishlist.
func (r *WishlistRepo) Contains(ctx context.Context, userID, itemID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlist WHERE user_id = $1 AND item_id = $2)`,
		userID, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("can't check wishlist: %w", err)
	}
	return exists, nil
}

// Add inserts a wishlist entry. Adding an already-wished item is a
// no-op (ON CONFLICT DO NOTHING) and returns the existing entry.
func (r *WishlistRepo) Add(ctx context.Context, userID, itemID int64) (*model.Wishlist, error) {
	w := &model.Wishlist{UserID: userID, ItemID: itemID}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO wishlist (user_id, item_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, item_id) DO NOTHING
		 RETURNING wishlist_id, created_at`,
		userID, itemID,
	).Scan(&w.ID, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflict path: the pair already exists, fetch it.
		err = r.db.QueryRowContext(ctx,
			`SELECT wishlist_id, created_at FROM wishlist WHERE user_id = $1 AND item_id = $2`,
			userID, itemID,
		).Scan(&w.ID, &w.CreatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("can't add to wishlist: %w", err)
	}
	return w, nil
}

// Remove deletes the (user, item) pair; removing an absent pair is a
// no-op.
func (r *WishlistRepo) Remove(ctx context.Context, userID, itemID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist WHERE user_id = $1 AND item_id = $2`,
		userID, itemID,
	); err != nil {
		return fmt.Errorf("can't remove from wishlist: %w", err)
	}
	return nil
}

// CountForItem returns how many users have wished an item.
func (r *WishlistRepo) CountForItem(ctx context.Context, itemID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishlist WHERE item_id = $1`,
		itemID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("can't count wishlist: %w", err)
	}
	return n, nil
}
