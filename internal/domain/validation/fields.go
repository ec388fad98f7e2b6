package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date fields.
const DateLayout = "02.01.2006"

// maxAgeYears bounds the accepted age for birthday fields.
const maxAgeYears = 70

var phonePattern = regexp.MustCompile(`^7\d{10}$`)

// Genders enumerates the accepted gender codes.
var Genders = map[int]string{
	0: "unknown",
	1: "male",
	2: "female",
}

// KnownGender reports whether v is one of the accepted gender codes.
func KnownGender(v any) bool {
	n, ok := asInt(v)
	if !ok {
		return false
	}
	_, ok = Genders[n]
	return ok
}

// asString coerces a raw JSON value to a string. Integral numbers are
// rendered without an exponent so that a numeric phone survives intact.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// asInt coerces a raw JSON value to an integer. encoding/json decodes every
// number as float64, so integral floats count.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t == float64(int64(t)) {
			return int(t), true
		}
	}
	return 0, false
}

// CharField accepts any string.
type CharField struct{ base }

// NewChar creates a string field.
func NewChar(name string, opts ...Option) *CharField {
	return &CharField{base: newBase(name, opts...)}
}

func (f *CharField) Check(value any) error {
	if isEmpty(value) {
		return nil
	}
	if _, ok := value.(string); !ok {
		return ErrNotString
	}
	return nil
}

// EmailField accepts a string containing "@".
type EmailField struct{ base }

// NewEmail creates an email field.
func NewEmail(name string, opts ...Option) *EmailField {
	return &EmailField{base: newBase(name, opts...)}
}

func (f *EmailField) Check(value any) error {
	if isEmpty(value) {
		return nil
	}
	s, ok := value.(string)
	if !ok || !strings.Contains(s, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// PhoneField accepts a string or a number rendering to exactly 11 digits
// with a leading 7. The canonical form is always a string.
type PhoneField struct{ base }

// NewPhone creates a phone field.
func NewPhone(name string, opts ...Option) *PhoneField {
	return &PhoneField{base: newBase(name, opts...)}
}

func (f *PhoneField) Check(value any) error {
	if isEmpty(value) {
		return nil
	}
	s, ok := asString(value)
	if !ok || !phonePattern.MatchString(s) {
		return ErrInvalidPhone
	}
	return nil
}

func (f *PhoneField) Prepare(value any) (any, error) {
	s, ok := asString(value)
	if !ok {
		return nil, ErrInvalidPhone
	}
	return s, nil
}

// DateField accepts a DD.MM.YYYY string and prepares it into a time.Time.
type DateField struct{ base }

// NewDate creates a date field.
func NewDate(name string, opts ...Option) *DateField {
	return &DateField{base: newBase(name, opts...)}
}

func parseDate(value any) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func (f *DateField) Check(value any) error {
	if isEmpty(value) {
		return nil
	}
	_, err := parseDate(value)
	return err
}

func (f *DateField) Prepare(value any) (any, error) {
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// BirthDayField is a DateField that additionally rejects future dates and
// ages over 70 years. The clock is injectable so the age cutoff stays
// testable.
type BirthDayField struct {
	base
	now func() time.Time
}

// NewBirthDay creates a birthday field using the wall clock.
func NewBirthDay(name string, opts ...Option) *BirthDayField {
	return &BirthDayField{base: newBase(name, opts...), now: time.Now}
}

// SetClock replaces the field's notion of "today".
func (f *BirthDayField) SetClock(now func() time.Time) {
	if now != nil {
		f.now = now
	}
}

func (f *BirthDayField) Check(value any) error {
	if isEmpty(value) {
		return nil
	}
	birth, err := parseDate(value)
	if err != nil {
		return err
	}
	today := f.now()
	if birth.After(today) {
		return ErrDateInFuture
	}
	ageYears := today.Sub(birth).Hours() / 24 / 365.25
	if ageYears > maxAgeYears {
		return ErrTooOld
	}
	return nil
}

func (f *BirthDayField) Prepare(value any) (any, error) {
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GenderField accepts an integer key of the Genders set. The canonical form
// is an int.
type GenderField struct{ base }

// NewGender creates a gender field.
func NewGender(name string, opts ...Option) *GenderField {
	return &GenderField{base: newBase(name, opts...)}
}

func (f *GenderField) Check(value any) error {
	if isEmpty(value) {
		return nil
	}
	if !KnownGender(value) {
		return ErrInvalidGender
	}
	return nil
}

func (f *GenderField) Prepare(value any) (any, error) {
	n, ok := asInt(value)
	if !ok {
		return nil, ErrInvalidGender
	}
	return n, nil
}

// ClientIDsField accepts a non-empty list in which at least one element is
// an integer. The permissive any-element rule matches the historical wire
// behavior; tightening it to all-elements would reject payloads that were
// previously accepted.
type ClientIDsField struct{ base }

// NewClientIDs creates a client id list field.
func NewClientIDs(name string, opts ...Option) *ClientIDsField {
	return &ClientIDsField{base: newBase(name, opts...)}
}

func (f *ClientIDsField) Check(value any) error {
	// No empty skip here: an empty list is as invalid as a missing one.
	list, ok := value.([]any)
	if !ok {
		return ErrInvalidClients
	}
	for _, el := range list {
		if _, ok := asInt(el); ok {
			return nil
		}
	}
	return ErrInvalidClients
}

// Prepare normalizes integral elements to int64 and keeps the rest as-is.
func (f *ClientIDsField) Prepare(value any) (any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, ErrInvalidClients
	}
	out := make([]any, len(list))
	for i, el := range list {
		if n, ok := asInt(el); ok {
			out[i] = int64(n)
		} else {
			out[i] = el
		}
	}
	return out, nil
}

// ArgumentsField accepts a JSON object and passes it through opaquely.
type ArgumentsField struct{ base }

// NewArguments creates an arguments field.
func NewArguments(name string, opts ...Option) *ArgumentsField {
	return &ArgumentsField{base: newBase(name, opts...)}
}

func (f *ArgumentsField) Check(value any) error {
	// An explicit null or empty object is still checked: arguments must be
	// an object whenever the key survives the presence rules.
	if _, ok := value.(map[string]any); !ok {
		return ErrNotObject
	}
	return nil
}
