package model

import "time"

// Transaction records a completed purchase. Creating one is the same
// atomic action that flips the item's status to SOLD, so at most one
// transaction can ever exist per item.
type Transaction struct {
	ID         int64     // transaction.trans_id
	ItemID     int64     // transaction.item_id
	BuyerID    int64     // transaction.buyer_id
	FinalPrice int64     // transaction.final_price
	TransDate  time.Time // transaction.trans_date
}
