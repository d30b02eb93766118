package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/haein-dev/c2c-market/internal/model"
)

// UserRepo reads marketplace identities and their reputation.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// ListAll returns every user ordered by id.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	const q = `SELECT user_id, username, created_at FROM users ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("can't query users: %w", err)
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("can't scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UserProfile is a user plus the average rating and count of reviews
// they have received.
type UserProfile struct {
	ID          int64     `json:"user_id"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
	AvgRating   float64   `json:"avg_rating"`
	ReviewCount int       `json:"review_count"`
}

// GetProfile loads one user together with their received-review
// aggregate. Returns ErrNotFound when the id does not exist.
func (r *UserRepo) GetProfile(ctx context.Context, id int64) (*UserProfile, error) {
	var p UserProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, username, created_at FROM users WHERE user_id = $1`,
		id,
	).Scan(&p.ID, &p.Username, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't query user: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM review WHERE reviewee_id = $1`,
		id,
	).Scan(&p.AvgRating, &p.ReviewCount)
	if err != nil {
		return nil, fmt.Errorf("can't query rating: %w", err)
	}
	return &p, nil
}
