package handler // handler defines http handlers

import (
	"strconv" // strconv converts path and query parameters to numbers
)

// parseID parses a positive integer identifier from a path or query
// parameter. ok is false for anything that is not a positive integer.
func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
