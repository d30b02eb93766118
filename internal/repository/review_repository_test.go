package repository

import (
	"errors"
	"testing"
)

func TestRevieweeFor(t *testing.T) {
	const (
		buyer  = int64(7)
		seller = int64(3)
	)
	tests := []struct {
		name     string
		reviewer int64
		want     int64
		wantErr  error
	}{
		{"buyer reviews seller", buyer, seller, nil},
		{"seller reviews buyer", seller, buyer, nil},
		{"outsider rejected", 99, 0, ErrNotParticipant},
		{"zero reviewer rejected", 0, 0, ErrNotParticipant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := revieweeFor(buyer, seller, tt.reviewer)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got reviewee %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRevieweeForSelfTrade(t *testing.T) {
	// Degenerate data where buyer and seller coincide; the reviewer is
	// still resolved to the other side, which is themselves.
	got, err := revieweeFor(5, 5, 5)
	if err != nil {
		t.Fatalf("got error %v, want nil", err)
	}
	if got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}
