package model

import "time"

// Review is a post-transaction rating (1 to 5) from one transaction
// participant about the other. At most one review exists per
// (transaction, reviewer) pair.
type Review struct {
	ID         int64     // review.review_id
	TransID    int64     // review.trans_id
	ReviewerID int64     // review.reviewer_id
	RevieweeID int64     // review.reviewee_id
	Rating     int       // review.rating
	Comment    *string   // review.comment (nullable)
	CreatedAt  time.Time // review.created_at
}
