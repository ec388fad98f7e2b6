// Package model contains domain models passed between layers.
package model

import "time"

// Profile is the normalized person profile used to derive a cache key and a
// score. Unset strings are empty, an unset birthday is the zero time, and
// Gender is a pointer because 0 (unknown) is a meaningful value distinct
// from "not provided".
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  time.Time
	Gender    *int
}

// HasBirthday reports whether the profile carries a birthday.
func (p Profile) HasBirthday() bool { return !p.Birthday.IsZero() }

// HasGender reports whether the profile carries a gender code.
func (p Profile) HasGender() bool { return p.Gender != nil }
