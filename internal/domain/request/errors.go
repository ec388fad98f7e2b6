package request

import "errors"

// Sentinel kinds for request-level rules.
var (
	ErrIncompletePairs = errors.New(
		"at least one pair of (phone, email), (first_name, last_name) or (gender, birthday) must be provided")
)
