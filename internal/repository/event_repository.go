package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/haein-dev/c2c-market/internal/model"
)

// EventRepo reads events and their options (venue plus date).
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// ListAll returns every event ordered by id.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT event_id, event_name, artist_name FROM event ORDER BY event_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("can't query events: %w", err)
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.ArtistName); err != nil {
			return nil, fmt.Errorf("can't scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// OptionsByEvent returns the options of one event ordered by id.
func (r *EventRepo) OptionsByEvent(ctx context.Context, eventID int64) ([]model.EventOption, error) {
	const q = `SELECT event_option_id, event_id, venue, event_datetime
	           FROM event_option
	           WHERE event_id = $1
	           ORDER BY event_option_id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, fmt.Errorf("can't query event options: %w", err)
	}
	defer rows.Close()

	out := make([]model.EventOption, 0)
	for rows.Next() {
		var o model.EventOption
		if err := rows.Scan(&o.ID, &o.EventID, &o.Venue, &o.DateTime); err != nil {
			return nil, fmt.Errorf("can't scan event option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
