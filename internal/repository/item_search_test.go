package repository

import (
	"strings"
	"testing"
)

func TestItemSearchQueryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", 0, 0, 1, 20},
		{"negative values get defaults", -3, -1, 1, 20},
		{"values in range kept", 4, 50, 4, 50},
		{"limit clamped to max", 1, 500, 1, 100},
		{"limit at max kept", 2, 100, 2, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ItemSearchQuery{Page: tt.page, Limit: tt.limit}
			q.Normalize()
			if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d",
					q.Page, q.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestBuildItemWhereEmpty(t *testing.T) {
	b := buildItemWhere(&ItemSearchQuery{})
	if got := b.whereSQL(); got != "" {
		t.Errorf("got %q, want empty WHERE clause", got)
	}
	if len(b.args) != 0 {
		t.Errorf("got %d args, want 0", len(b.args))
	}
}

func TestBuildItemWhereSinglePredicates(t *testing.T) {
	tests := []struct {
		name     string
		q        ItemSearchQuery
		wantCond string
		wantArgs []any
	}{
		{
			name:     "search matches title and model name with one arg",
			q:        ItemSearchQuery{Search: "iphone"},
			wantCond: `(i.title ILIKE $1 OR sp.model_name ILIKE $1)`,
			wantArgs: []any{"%iphone%"},
		},
		{
			name:     "category closure",
			q:        ItemSearchQuery{CategoryIDs: []int64{1, 4, 9}},
			wantCond: `i.category_id = ANY($1)`,
			wantArgs: []any{[]int64{1, 4, 9}},
		},
		{
			name:     "event option id",
			q:        ItemSearchQuery{EventOptionID: "7"},
			wantCond: `td.event_option_id = $1`,
			wantArgs: []any{int64(7)},
		},
		{
			name:     "seat sector compared as text",
			q:        ItemSearchQuery{SeatSector: "R"},
			wantCond: `td.seat_info ->> 'sector' = $1`,
			wantArgs: []any{"R"},
		},
		{
			name:     "seat row cast to int",
			q:        ItemSearchQuery{SeatRow: "12"},
			wantCond: `(td.seat_info ->> 'row')::int = $1`,
			wantArgs: []any{int64(12)},
		},
		{
			name:     "seat number cast to int",
			q:        ItemSearchQuery{SeatNumber: "3"},
			wantCond: `(td.seat_info ->> 'number')::int = $1`,
			wantArgs: []any{int64(3)},
		},
		{
			name:     "kind ticket needs no arg",
			q:        ItemSearchQuery{Kind: "ticket"},
			wantCond: `td.item_id IS NOT NULL`,
			wantArgs: nil,
		},
		{
			name:     "kind product needs no arg",
			q:        ItemSearchQuery{Kind: "product"},
			wantCond: `td.item_id IS NULL`,
			wantArgs: nil,
		},
		{
			name:     "status",
			q:        ItemSearchQuery{Status: "ON_SALE"},
			wantCond: `i.status = $1`,
			wantArgs: []any{"ON_SALE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buildItemWhere(&tt.q)
			if len(b.conds) != 1 {
				t.Fatalf("got %d conditions (%v), want 1", len(b.conds), b.conds)
			}
			if b.conds[0] != tt.wantCond {
				t.Errorf("got cond %q, want %q", b.conds[0], tt.wantCond)
			}
			if len(b.args) != len(tt.wantArgs) {
				t.Fatalf("got %d args (%v), want %d", len(b.args), b.args, len(tt.wantArgs))
			}
		})
	}
}

func TestBuildItemWhereIgnoresMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		q    ItemSearchQuery
	}{
		{"non-numeric event option", ItemSearchQuery{EventOptionID: "abc"}},
		{"non-numeric seat row", ItemSearchQuery{SeatRow: "front"}},
		{"non-numeric seat number", ItemSearchQuery{SeatNumber: "x"}},
		{"unknown kind", ItemSearchQuery{Kind: "vehicle"}},
		{"unknown status", ItemSearchQuery{Status: "PENDING"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buildItemWhere(&tt.q)
			if len(b.conds) != 0 {
				t.Errorf("got conditions %v, want none", b.conds)
			}
		})
	}
}

func TestBuildItemWhereCombined(t *testing.T) {
	q := ItemSearchQuery{
		Search:        "vip",
		CategoryIDs:   []int64{10, 11},
		EventOptionID: "5",
		SeatSector:    "A",
		Kind:          "ticket",
		Status:        "ON_SALE",
	}
	b := buildItemWhere(&q)

	if len(b.conds) != 6 {
		t.Fatalf("got %d conditions (%v), want 6", len(b.conds), b.conds)
	}
	// Placeholder numbering follows predicate order, skipping the
	// argument-free kind condition.
	wantConds := []string{
		`(i.title ILIKE $1 OR sp.model_name ILIKE $1)`,
		`i.category_id = ANY($2)`,
		`td.event_option_id = $3`,
		`td.seat_info ->> 'sector' = $4`,
		`td.item_id IS NOT NULL`,
		`i.status = $5`,
	}
	for i, want := range wantConds {
		if b.conds[i] != want {
			t.Errorf("cond[%d]: got %q, want %q", i, b.conds[i], want)
		}
	}
	if len(b.args) != 5 {
		t.Errorf("got %d args, want 5", len(b.args))
	}

	sql := b.whereSQL()
	if !strings.HasPrefix(sql, "WHERE ") {
		t.Errorf("got %q, want WHERE prefix", sql)
	}
	if got := strings.Count(sql, " AND "); got != 5 {
		t.Errorf("got %d AND joins, want 5", got)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		page, limit int
		wantPages   int
		wantHasMore bool
	}{
		{"empty result", 0, 1, 20, 0, false},
		{"single partial page", 5, 1, 20, 1, false},
		{"exact page boundary", 40, 1, 20, 2, true},
		{"exact last page", 40, 2, 20, 2, false},
		{"uneven total", 41, 2, 20, 3, true},
		{"uneven total last page", 41, 3, 20, 3, false},
		{"page past end", 10, 5, 20, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, hasMore := paginate(tt.total, tt.page, tt.limit)
			if pages != tt.wantPages || hasMore != tt.wantHasMore {
				t.Errorf("got (%d, %v), want (%d, %v)",
					pages, hasMore, tt.wantPages, tt.wantHasMore)
			}
		})
	}
}
