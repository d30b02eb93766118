package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/haein-dev/c2c-market/internal/model"
)

// ReviewRepo creates and reads post-transaction reviews.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// revieweeFor resolves who is being reviewed: the reviewer must be the
// transaction's buyer or the item's seller, and the reviewee is the
// other party. Any other reviewer yields ErrNotParticipant.
func revieweeFor(buyerID, sellerID, reviewerID int64) (int64, error) {
	switch reviewerID {
	case buyerID:
		return sellerID, nil
	case sellerID:
		return buyerID, nil
	}
	return 0, ErrNotParticipant
}

// Create records a review for a completed transaction. It loads the
// transaction and its item's seller to attribute the review, then
// inserts it. Returns ErrNotFound when the transaction does not exist,
// ErrNotParticipant when the reviewer is neither party, and
// ErrDuplicateReview when the (transaction, reviewer) pair already has
// a review; the unique constraint backs the duplicate check so a
// concurrent double submit cannot slip through.
func (r *ReviewRepo) Create(ctx context.Context, transID, reviewerID int64, rating int, comment *string) (*model.Review, error) {
	var buyerID, sellerID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT t.buyer_id, i.seller_id
		 FROM transaction t
		 JOIN item i ON t.item_id = i.item_id
		 WHERE t.trans_id = $1`,
		transID,
	).Scan(&buyerID, &sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't query transaction: %w", err)
	}

	revieweeID, err := revieweeFor(buyerID, sellerID, reviewerID)
	if err != nil {
		return nil, err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM review WHERE trans_id = $1 AND reviewer_id = $2)`,
		transID, reviewerID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("can't check existing review: %w", err)
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	rev := &model.Review{
		TransID:    transID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
	}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO review (trans_id, reviewer_id, reviewee_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING review_id, created_at`,
		transID, reviewerID, revieweeID, rating, comment,
	).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("can't insert review: %w", err)
	}
	return rev, nil
}

// ReceivedReview is a review shown on a user's profile, with the
// reviewer's display name joined in.
type ReceivedReview struct {
	ID           int64     `json:"review_id"`
	TransID      int64     `json:"trans_id"`
	ReviewerID   int64     `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListForUser returns reviews received by a user, newest first.
func (r *ReviewRepo) ListForUser(ctx context.Context, userID int64) ([]ReceivedReview, error) {
	const q = `SELECT r.review_id, r.trans_id, r.reviewer_id, u.username, r.rating, r.comment, r.created_at
	           FROM review r
	           JOIN users u ON r.reviewer_id = u.user_id
	           WHERE r.reviewee_id = $1
	           ORDER BY r.review_id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("can't query reviews: %w", err)
	}
	defer rows.Close()

	out := make([]ReceivedReview, 0)
	for rows.Next() {
		var rv ReceivedReview
		if err := rows.Scan(&rv.ID, &rv.TransID, &rv.ReviewerID, &rv.ReviewerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("can't scan review: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
