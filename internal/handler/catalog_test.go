package handler

import (
	"net/http"
	"testing"
)

func TestAutocompleteRequiresQuery(t *testing.T) {
	h := &CatalogHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/api/products/autocomplete", "")
	if err := h.AutocompleteProducts(c); err != nil {
		t.Fatalf("AutocompleteProducts returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got, want := errorMessage(t, rec), "q is required"; got != want {
		t.Errorf("got message %q, want %q", got, want)
	}
}

func TestListEventOptionsInvalidID(t *testing.T) {
	h := &CatalogHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/api/events/x/options", "")
	c.SetParamNames("id")
	c.SetParamValues("x")
	if err := h.ListEventOptions(c); err != nil {
		t.Fatalf("ListEventOptions returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
