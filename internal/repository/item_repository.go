package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/haein-dev/c2c-market/internal/database"
	"github.com/haein-dev/c2c-market/internal/model"
)

// ItemRepo provides persistence for listings and their optional ticket
// details. Multi-statement writes run under database.WithTx so a pooled
// connection is held for the duration of the transaction and released
// on every exit path.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo returns an ItemRepo bound to the given database.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// NewItem is the input for Create. SellerID must already be resolved
// (the handler applies the demo fallback). Ticket is nil for ordinary
// product listings.
type NewItem struct {
	SellerID    int64
	Title       string
	Price       int64
	Description *string
	CategoryID  *int64
	StdID       *int64
	Ticket      *NewTicket
}

// NewTicket is the ticket block of a listing payload.
type NewTicket struct {
	EventOptionID int64
	SeatInfo      model.SeatInfo
	OriginalPrice int64
}

const insertItemSQL = `
	INSERT INTO item (seller_id, title, price, description, std_id, category_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING item_id, status, reg_date`

// Create inserts a listing. Without ticket data a single insert
// suffices. With ticket data the item and ticket_details inserts run
// inside one transaction: the anti-scalping trigger on ticket_details
// can reject the pair, in which case both inserts roll back and the
// trigger's message is available through ConstraintMessage.
func (r *ItemRepo) Create(ctx context.Context, in NewItem) (*model.Item, error) {
	item := &model.Item{
		SellerID:    in.SellerID,
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		StdID:       in.StdID,
	}

	if in.Ticket == nil {
		err := r.db.QueryRowContext(ctx, insertItemSQL,
			in.SellerID, in.Title, in.Price, in.Description, in.StdID, in.CategoryID,
		).Scan(&item.ID, &item.Status, &item.RegDate)
		if err != nil {
			return nil, fmt.Errorf("can't insert item: %w", err)
		}
		return item, nil
	}

	seatJSON, err := json.Marshal(in.Ticket.SeatInfo)
	if err != nil {
		return nil, fmt.Errorf("can't encode seat info: %w", err)
	}

	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertItemSQL,
			in.SellerID, in.Title, in.Price, in.Description, in.StdID, in.CategoryID,
		).Scan(&item.ID, &item.Status, &item.RegDate); err != nil {
			return fmt.Errorf("can't insert item: %w", err)
		}

		const q = `INSERT INTO ticket_details (item_id, event_option_id, seat_info, original_price)
		           VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, q,
			item.ID, in.Ticket.EventOptionID, seatJSON, in.Ticket.OriginalPrice,
		); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	item.Ticket = &model.TicketDetails{
		ItemID:        item.ID,
		EventOptionID: in.Ticket.EventOptionID,
		SeatInfo:      in.Ticket.SeatInfo,
		OriginalPrice: in.Ticket.OriginalPrice,
	}
	return item, nil
}

// ItemDetail is the full read-side join for one listing: item, seller
// name, SKU, category name, and ticket/event/option fields when the
// listing is a ticket.
type ItemDetail struct {
	ID            int64          `json:"item_id"`
	SellerID      int64          `json:"seller_id"`
	SellerName    string         `json:"seller_name"`
	Title         string         `json:"title"`
	Price         int64          `json:"price"`
	Status        string         `json:"status"`
	Description   *string        `json:"description"`
	RegDate       time.Time      `json:"reg_date"`
	CategoryID    *int64         `json:"category_id"`
	CategoryName  *string        `json:"category_name"`
	StdID         *int64         `json:"std_id"`
	ProductCode   *string        `json:"product_code"`
	ModelName     *string        `json:"model_name"`
	BrandName     *string        `json:"brand_name"`
	EventOptionID *int64         `json:"event_option_id"`
	SeatInfo      model.SeatInfo `json:"seat_info,omitempty"`
	OriginalPrice *int64         `json:"original_price"`
	EventName     *string        `json:"event_name"`
	ArtistName    *string        `json:"artist_name"`
	Venue         *string        `json:"venue"`
	EventDateTime *time.Time     `json:"event_datetime"`
}

const itemDetailSQL = `
	SELECT i.item_id, i.seller_id, u.username, i.title, i.price, i.status,
	       i.description, i.reg_date, i.category_id, c.category_name,
	       i.std_id, sp.product_code, sp.model_name, sp.brand_name,
	       td.event_option_id, td.seat_info, td.original_price,
	       e.event_name, e.artist_name, eo.venue, eo.event_datetime
	FROM item i
	JOIN users u ON i.seller_id = u.user_id
	LEFT JOIN category c ON i.category_id = c.category_id
	LEFT JOIN standard_product sp ON i.std_id = sp.std_id
	LEFT JOIN ticket_details td ON i.item_id = td.item_id
	LEFT JOIN event_option eo ON td.event_option_id = eo.event_option_id
	LEFT JOIN event e ON eo.event_id = e.event_id`

func scanItemDetail(row interface{ Scan(...any) error }) (*ItemDetail, error) {
	var d ItemDetail
	var seatRaw []byte
	err := row.Scan(
		&d.ID, &d.SellerID, &d.SellerName, &d.Title, &d.Price, &d.Status,
		&d.Description, &d.RegDate, &d.CategoryID, &d.CategoryName,
		&d.StdID, &d.ProductCode, &d.ModelName, &d.BrandName,
		&d.EventOptionID, &seatRaw, &d.OriginalPrice,
		&d.EventName, &d.ArtistName, &d.Venue, &d.EventDateTime,
	)
	if err != nil {
		return nil, err
	}
	if len(seatRaw) > 0 {
		if err := json.Unmarshal(seatRaw, &d.SeatInfo); err != nil {
			return nil, fmt.Errorf("can't decode seat info: %w", err)
		}
	}
	return &d, nil
}

// GetDetail loads one listing with all joined fields. Returns
// ErrNotFound when the id does not exist.
func (r *ItemRepo) GetDetail(ctx context.Context, id int64) (*ItemDetail, error) {
	d, err := scanItemDetail(r.db.QueryRowContext(ctx, itemDetailSQL+` WHERE i.item_id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("can't query item: %w", err)
	}
	return d, nil
}

// ListBySeller returns a user's listings, newest first.
func (r *ItemRepo) ListBySeller(ctx context.Context, sellerID int64) ([]ItemDetail, error) {
	rows, err := r.db.QueryContext(ctx, itemDetailSQL+` WHERE i.seller_id = $1 ORDER BY i.reg_date DESC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("can't query seller items: %w", err)
	}
	defer rows.Close()

	out := make([]ItemDetail, 0)
	for rows.Next() {
		d, err := scanItemDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan seller item: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// UpdateStatus sets a listing's status to one of the three enumerated
// values. The caller validates the value; this returns ErrNotFound when
// the id does not exist.
func (r *ItemRepo) UpdateStatus(ctx context.Context, id int64, status string) (*model.Item, error) {
	const q = `UPDATE item SET status = $1 WHERE item_id = $2
	           RETURNING item_id, seller_id, title, price, status, description, category_id, std_id, reg_date`
	var it model.Item
	err := r.db.QueryRowContext(ctx, q, status, id).Scan(
		&it.ID, &it.SellerID, &it.Title, &it.Price, &it.Status,
		&it.Description, &it.CategoryID, &it.StdID, &it.RegDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("can't update item status: %w", err)
	}
	return &it, nil
}
