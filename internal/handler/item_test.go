package handler

import (
	"net/http"
	"testing"
)

// Validation failures return before any repository call, so a handler
// with zero-value dependencies exercises them safely.

func TestItemCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing title", `{"price": 100}`, "title and price are required fields"},
		{"missing price", `{"title": "used phone"}`, "title and price are required fields"},
		{"zero price", `{"title": "used phone", "price": 0}`, "title and price are required fields"},
		{"negative price", `{"title": "used phone", "price": -5}`, "title and price are required fields"},
		{"malformed json", `{"title":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &ItemHandler{}
			c, rec := newJSONContext(t, http.MethodPost, "/api/items", tt.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create returned error: %v", err)
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

func TestItemGetInvalidID(t *testing.T) {
	h := &ItemHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/api/items/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestItemUpdateStatusValidation(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		status int
	}{
		{"invalid id", "zero", `{"status": "SOLD"}`, http.StatusBadRequest},
		{"unknown status", "1", `{"status": "PENDING"}`, http.StatusBadRequest},
		{"lowercase status", "1", `{"status": "sold"}`, http.StatusBadRequest},
		{"empty status", "1", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &ItemHandler{}
			c, rec := newJSONContext(t, http.MethodPatch, "/api/items/"+tt.id+"/status", tt.body)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)
			if err := h.UpdateStatus(c); err != nil {
				t.Fatalf("UpdateStatus returned error: %v", err)
			}
			if rec.Code != tt.status {
				t.Errorf("got status %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestNewItemHandlerPanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewItemHandler did not panic on nil repositories")
		}
	}()
	NewItemHandler(nil, nil)
}
