// Package queue defines message payloads exchanged over the message broker.
package queue

// ItemSoldEvent is published when a purchase transaction commits. It
// carries enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type ItemSoldEvent struct {
	TransactionID int64  `json:"trans_id"`
	ItemID        int64  `json:"item_id"`
	SellerID      int64  `json:"seller_id"`
	BuyerID       int64  `json:"buyer_id"`
	FinalPrice    int64  `json:"final_price"`
	Title         string `json:"title"`
	SoldAt        string `json:"sold_at"`
}
