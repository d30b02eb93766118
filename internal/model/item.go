package model

import "time"

// Listing states. Transitions run ON_SALE -> RESERVED -> SOLD, with
// RESERVED skippable.
const (
	StatusOnSale   = "ON_SALE"
	StatusReserved = "RESERVED"
	StatusSold     = "SOLD"
)

// ValidStatus reports whether s is one of the three listing states.
func ValidStatus(s string) bool {
	switch s {
	case StatusOnSale, StatusReserved, StatusSold:
		return true
	}
	return false
}

// SeatInfo is the schema-less seat attribute map of a ticket (grade,
// sector, row, number). It is stored as JSONB and queried by key path.
type SeatInfo map[string]any

// TicketDetails is the 1:1 extension of an Item that represents an
// event ticket. The existence of this row is what makes an item a
// ticket; OriginalPrice is the face price the anti-scalping cap is
// computed from.
type TicketDetails struct {
	ItemID        int64    // ticket_details.item_id
	EventOptionID int64    // ticket_details.event_option_id
	SeatInfo      SeatInfo // ticket_details.seat_info (JSONB)
	OriginalPrice int64    // ticket_details.original_price
}

// Item is a listing put up by a seller. Ticket is non-nil exactly when
// a ticket_details row exists, so ticket-ness is an explicit optional
// field at the application boundary instead of a null check against
// joined columns.
type Item struct {
	ID          int64          // item.item_id
	SellerID    int64          // item.seller_id
	Title       string         // item.title
	Price       int64          // item.price
	Status      string         // item.status
	Description *string        // item.description (nullable)
	CategoryID  *int64         // item.category_id (nullable)
	StdID       *int64         // item.std_id (nullable)
	RegDate     time.Time      // item.reg_date
	Ticket      *TicketDetails // nil when the listing is not a ticket
}

// IsTicket reports whether the listing carries ticket details.
func (i *Item) IsTicket() bool { return i.Ticket != nil }
