package model

import "testing"

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"ON_SALE", true},
		{"RESERVED", true},
		{"SOLD", true},
		{"on_sale", false},
		{"PENDING", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := ValidStatus(tt.status); got != tt.want {
				t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestItemIsTicket(t *testing.T) {
	plain := Item{ID: 1, Title: "used phone"}
	if plain.IsTicket() {
		t.Error("item without ticket details reported as ticket")
	}
	ticket := Item{ID: 2, Title: "concert seat", Ticket: &TicketDetails{ItemID: 2, EventOptionID: 1, OriginalPrice: 100}}
	if !ticket.IsTicket() {
		t.Error("item with ticket details not reported as ticket")
	}
}
