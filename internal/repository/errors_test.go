package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstraintMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
		wantOK  bool
	}{
		{
			name:    "trigger raise",
			err:     &pgconn.PgError{Code: "P0001", Message: "Ticket price 150 exceeds 120% of original price 100 (anti-scalping policy)"},
			wantMsg: "Ticket price 150 exceeds 120% of original price 100 (anti-scalping policy)",
			wantOK:  true,
		},
		{
			name:    "check violation",
			err:     &pgconn.PgError{Code: "23514", Message: "new row violates check constraint"},
			wantMsg: "new row violates check constraint",
			wantOK:  true,
		},
		{
			name:    "wrapped trigger raise still found",
			err:     fmt.Errorf("can't insert ticket: %w", &pgconn.PgError{Code: "P0001", Message: "rejected"}),
			wantMsg: "rejected",
			wantOK:  true,
		},
		{
			name:   "unique violation is not a constraint message",
			err:    &pgconn.PgError{Code: "23505", Message: "duplicate key"},
			wantOK: false,
		},
		{
			name:   "foreign key violation is not a constraint message",
			err:    &pgconn.PgError{Code: "23503", Message: "fk violated"},
			wantOK: false,
		},
		{
			name:   "plain error",
			err:    errors.New("connection reset"),
			wantOK: false,
		},
		{
			name:   "nil error",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := ConstraintMessage(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("got ok=%v, want %v", ok, tt.wantOK)
			}
			if msg != tt.wantMsg {
				t.Errorf("got %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"other pg error", &pgconn.PgError{Code: "P0001"}, false},
		{"plain error", errors.New("nope"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
