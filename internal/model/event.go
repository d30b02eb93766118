package model

import "time"

// Event is a performance or match that tickets are sold for.
type Event struct {
	ID         int64   // event.event_id
	Name       string  // event.event_name
	ArtistName *string // event.artist_name (nullable)
}

// EventOption is a concrete occurrence of an event (venue plus date).
// Ticket details attach to an option, not to the event itself.
type EventOption struct {
	ID       int64     // event_option.event_option_id
	EventID  int64     // event_option.event_id
	Venue    string    // event_option.venue
	DateTime time.Time // event_option.event_datetime
}
