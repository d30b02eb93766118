package model

import "time"

// User is a marketplace identity. The demo carries no credentials or
// sessions; users are created at seed time and referenced by listings,
// transactions, reviews and chat rooms.
//
// Fields:
//  ID        – primary key identifier.
//  Username  – display name.
//  CreatedAt – timestamp when the user was created.
type User struct {
	ID        int64     // users.user_id
	Username  string    // users.username
	CreatedAt time.Time // users.created_at
}
