package handler

import (
	"net/http"
	"testing"
)

func TestTransactionCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing item_id", `{"buyer_id": 2, "final_price": 100}`},
		{"missing buyer_id", `{"item_id": 1, "final_price": 100}`},
		{"missing final_price", `{"item_id": 1, "buyer_id": 2}`},
		{"zero final_price", `{"item_id": 1, "buyer_id": 2, "final_price": 0}`},
		{"negative ids", `{"item_id": -1, "buyer_id": 2, "final_price": 100}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &TransactionHandler{}
			c, rec := newJSONContext(t, http.MethodPost, "/api/transactions", tt.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got, want := errorMessage(t, rec), "item_id, buyer_id, and final_price are required"; got != want {
				t.Errorf("got message %q, want %q", got, want)
			}
		})
	}
}

func TestTransactionGetInvalidID(t *testing.T) {
	h := &TransactionHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/api/transactions/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		body    string
		wantMsg string
	}{
		{"invalid transaction id", "nope", `{"reviewer_id": 1, "rating": 5}`, "Invalid transaction id"},
		{"missing reviewer", "1", `{"rating": 5}`, "reviewer_id and rating are required"},
		{"missing rating", "1", `{"reviewer_id": 1}`, "reviewer_id and rating are required"},
		{"rating too low", "1", `{"reviewer_id": 1, "rating": -1}`, "Rating must be between 1 and 5"},
		{"rating too high", "1", `{"reviewer_id": 1, "rating": 6}`, "Rating must be between 1 and 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &TransactionHandler{}
			c, rec := newJSONContext(t, http.MethodPost, "/api/transactions/"+tt.id+"/review", tt.body)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			if err := h.CreateReview(c); err != nil {
				t.Fatalf("CreateReview returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := errorMessage(t, rec); got != tt.wantMsg {
				t.Errorf("got message %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
