package handler

import (
	"net/http"
	"testing"
)

func TestWishlistAddValidation(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
	}{
		{"invalid user id", "nope", `{"item_id": 1}`},
		{"missing item_id", "1", `{}`},
		{"zero item_id", "1", `{"item_id": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &WishlistHandler{}
			c, rec := newJSONContext(t, http.MethodPost, "/api/users/"+tt.id+"/wishlist", tt.body)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			if err := h.Add(c); err != nil {
				t.Fatalf("Add returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestWishlistCheckInvalidIDs(t *testing.T) {
	tests := []struct {
		name           string
		userID, itemID string
	}{
		{"bad user id", "x", "2"},
		{"bad item id", "1", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &WishlistHandler{}
			c, rec := newJSONContext(t, http.MethodGet, "/api/users/"+tt.userID+"/wishlist/"+tt.itemID, "")
			c.SetParamNames("id", "itemId")
			c.SetParamValues(tt.userID, tt.itemID)
			if err := h.Check(c); err != nil {
				t.Fatalf("Check returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
