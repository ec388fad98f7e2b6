package validation

import "errors"

// Sentinel kinds for field validation failures. Callers use errors.Is to
// classify what went wrong with a particular field.
var (
	ErrValueRequired  = errors.New("field value is required")
	ErrNullNotAllowed = errors.New("field value must not be null")
	ErrNotString      = errors.New("value must be a string")
	ErrInvalidEmail   = errors.New("value must be an email address")
	ErrInvalidPhone   = errors.New("value must be a phone number of 11 digits starting with 7")
	ErrInvalidDate    = errors.New("value must be a date in DD.MM.YYYY format")
	ErrDateInFuture   = errors.New("date must not be in the future")
	ErrTooOld         = errors.New("age must not exceed 70 years")
	ErrInvalidGender  = errors.New("gender must be 0 (unknown), 1 (male) or 2 (female)")
	ErrInvalidClients = errors.New("client ids must be a list of integers")
	ErrNotObject      = errors.New("value must be an object")
)
