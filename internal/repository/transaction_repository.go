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

// TransactionRepo finalizes purchases and reads transaction history.
type TransactionRepo struct {
	db *sql.DB
}

// NewTransactionRepo returns a TransactionRepo bound to the given database.
func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// lockedItem is the subset of the item row read under FOR UPDATE during
// a purchase.
type lockedItem struct {
	id       int64
	sellerID int64
	title    string
	status   string
}

// checkPurchasable applies the purchase validation rules against the
// locked row: the item must be ON_SALE or RESERVED and the buyer must
// not be its seller.
func checkPurchasable(it lockedItem, buyerID int64) error {
	if it.status != model.StatusOnSale && it.status != model.StatusReserved {
		return ErrItemUnavailable
	}
	if it.sellerID == buyerID {
		return ErrSelfPurchase
	}
	return nil
}

// PurchaseResult is the outcome of a committed purchase, carrying the
// seller and title alongside the transaction row for event publishing.
type PurchaseResult struct {
	Transaction model.Transaction
	SellerID    int64
	ItemTitle   string
}

// CreatePurchase finalizes a sale as one atomic unit: it locks the item
// row with SELECT ... FOR UPDATE, validates it, inserts the transaction
// and flips the item to SOLD. The row lock is the correctness
// mechanism: concurrent purchasers of the same item block here until
// this transaction commits or rolls back, so at most one transaction
// row can ever exist per item. Validation failures surface as the
// sentinel errors ErrNotFound, ErrItemUnavailable and ErrSelfPurchase,
// each after a full rollback.
func (r *TransactionRepo) CreatePurchase(ctx context.Context, itemID, buyerID, finalPrice int64) (*PurchaseResult, error) {
	var res PurchaseResult
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var it lockedItem
		err := tx.QueryRowContext(ctx,
			`SELECT item_id, seller_id, title, status FROM item WHERE item_id = $1 FOR UPDATE`,
			itemID,
		).Scan(&it.id, &it.sellerID, &it.title, &it.status)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("can't lock item: %w", err)
		}

		if err := checkPurchasable(it, buyerID); err != nil {
			return err
		}

		res.SellerID = it.sellerID
		res.ItemTitle = it.title
		res.Transaction = model.Transaction{ItemID: itemID, BuyerID: buyerID, FinalPrice: finalPrice}

		if err := tx.QueryRowContext(ctx,
			`INSERT INTO transaction (item_id, buyer_id, final_price) VALUES ($1, $2, $3)
			 RETURNING trans_id, trans_date`,
			itemID, buyerID, finalPrice,
		).Scan(&res.Transaction.ID, &res.Transaction.TransDate); err != nil {
			return fmt.Errorf("can't insert transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE item SET status = $1 WHERE item_id = $2`,
			model.StatusSold, itemID,
		); err != nil {
			return fmt.Errorf("can't update item status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// TransactionDetail joins a transaction with its item, both parties and
// the ticket/event fields when the item is a ticket.
type TransactionDetail struct {
	ID            int64          `json:"trans_id"`
	ItemID        int64          `json:"item_id"`
	BuyerID       int64          `json:"buyer_id"`
	FinalPrice    int64          `json:"final_price"`
	TransDate     time.Time      `json:"trans_date"`
	Title         string         `json:"title"`
	ItemPrice     int64          `json:"item_price"`
	SellerID      int64          `json:"seller_id"`
	BuyerName     string         `json:"buyer_name"`
	SellerName    string         `json:"seller_name"`
	SeatInfo      model.SeatInfo `json:"seat_info,omitempty"`
	EventName     *string        `json:"event_name"`
	Venue         *string        `json:"venue"`
	EventDateTime *time.Time     `json:"event_datetime"`
}

const transactionDetailSQL = `
	SELECT t.trans_id, t.item_id, t.buyer_id, t.final_price, t.trans_date,
	       i.title, i.price, i.seller_id,
	       buyer.username, seller.username,
	       td.seat_info, e.event_name, eo.venue, eo.event_datetime
	FROM transaction t
	JOIN item i ON t.item_id = i.item_id
	JOIN users buyer ON t.buyer_id = buyer.user_id
	JOIN users seller ON i.seller_id = seller.user_id
	LEFT JOIN ticket_details td ON i.item_id = td.item_id
	LEFT JOIN event_option eo ON td.event_option_id = eo.event_option_id
	LEFT JOIN event e ON eo.event_id = e.event_id`

func scanTransactionDetail(row interface{ Scan(...any) error }) (*TransactionDetail, error) {
	var d TransactionDetail
	var seatRaw []byte
	err := row.Scan(
		&d.ID, &d.ItemID, &d.BuyerID, &d.FinalPrice, &d.TransDate,
		&d.Title, &d.ItemPrice, &d.SellerID,
		&d.BuyerName, &d.SellerName,
		&seatRaw, &d.EventName, &d.Venue, &d.EventDateTime,
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

// GetDetail loads one transaction with all joined fields. Returns
// ErrNotFound when the id does not exist.
func (r *TransactionRepo) GetDetail(ctx context.Context, id int64) (*TransactionDetail, error) {
	d, err := scanTransactionDetail(r.db.QueryRowContext(ctx, transactionDetailSQL+` WHERE t.trans_id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("can't query transaction: %w", err)
	}
	return d, nil
}

// ListByBuyer returns a user's purchase history, newest first.
func (r *TransactionRepo) ListByBuyer(ctx context.Context, buyerID int64) ([]TransactionDetail, error) {
	rows, err := r.db.QueryContext(ctx, transactionDetailSQL+` WHERE t.buyer_id = $1 ORDER BY t.trans_date DESC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("can't query purchases: %w", err)
	}
	defer rows.Close()

	out := make([]TransactionDetail, 0)
	for rows.Next() {
		d, err := scanTransactionDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan purchase: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
