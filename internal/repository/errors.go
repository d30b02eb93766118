// Package repository implements the SQL data-access layer. This file
// defines sentinel errors shared across repositories so that handlers
// can map failure scenarios onto specific responses: ErrNotFound
// becomes 404, the state-conflict sentinels become client errors with
// their specific message, and everything else is a generic failure.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a referenced entity id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrItemUnavailable is returned when a purchase is attempted against
// an item that is not in ON_SALE or RESERVED state.
var ErrItemUnavailable = errors.New("item is not available for purchase")

// ErrSelfPurchase is returned when a buyer attempts to purchase their
// own listing.
var ErrSelfPurchase = errors.New("cannot buy your own item")

// ErrSelfChat is returned when a buyer attempts to open a chat room on
// their own listing.
var ErrSelfChat = errors.New("cannot chat on your own item")

// ErrNotParticipant is returned when a review is submitted by someone
// who is neither the buyer nor the seller of the transaction.
var ErrNotParticipant = errors.New("you are not part of this transaction")

// ErrDuplicateReview is returned when a (transaction, reviewer) pair
// already has a review. The original review is never overwritten.
var ErrDuplicateReview = errors.New("you have already reviewed this transaction")

// Postgres error codes the repositories care about.
const (
	pgRaiseException  = "P0001" // trigger RAISE EXCEPTION
	pgCheckViolation  = "23514"
	pgUniqueViolation = "23505"
)

// ConstraintMessage extracts the message of a database-side integrity
// rejection (trigger raise or check violation) so that business-rule
// text such as the anti-scalping cap reaches the caller verbatim. ok is
// false for any other error.
func ConstraintMessage(err error) (msg string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	switch pgErr.Code {
	case pgRaiseException, pgCheckViolation:
		return pgErr.Message, true
	}
	return "", false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
