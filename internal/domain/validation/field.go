// Package validation implements a declarative schema engine for JSON-shaped
// request payloads. A Schema is an ordered set of named Fields; validating a
// raw payload produces an Instance carrying prepared values and every error
// found, never just the first one.
package validation

// Presence distinguishes a key that is missing from the payload, a key that
// is explicitly null, and a key carrying a value. Collapsing Absent and Null
// would lose the required-vs-nullable distinction, so the three states are
// modeled explicitly.
type Presence int

const (
	// Absent means the key was not in the payload at all.
	Absent Presence = iota
	// Null means the key was present with an explicit null value.
	Null
	// Present means the key was present with a non-null value.
	Present
)

// Field is a self-contained validation and normalization unit for one named
// value. A field's behavior depends only on its raw input and its own
// configuration, never on sibling fields.
type Field interface {
	// Name returns the key this field reads from the raw payload.
	Name() string
	// Required reports whether the key must be present in the payload.
	Required() bool
	// Nullable reports whether an explicit null is acceptable.
	Nullable() bool

	// Check performs the kind-specific type and format checks on a raw
	// value. Absent and Null inputs arrive as nil.
	Check(value any) error

	// Prepare normalizes a raw value into its canonical form, e.g. a date
	// string into a time.Time. It is only called after Check succeeds on a
	// Present value.
	Prepare(value any) (any, error)
}

// base carries the configuration shared by every field kind.
type base struct {
	name     string
	required bool
	nullable bool
}

func (b base) Name() string   { return b.name }
func (b base) Required() bool { return b.required }
func (b base) Nullable() bool { return b.nullable }

// Prepare passes the raw value through unchanged. Kinds with a canonical
// form override it.
func (b base) Prepare(value any) (any, error) { return value, nil }

// Option applies a configuration option to a field.
type Option func(*base)

// Required marks the field's key as mandatory in the payload.
func Required() Option {
	return func(b *base) { b.required = true }
}

// Nullable allows an explicit null value for the field.
func Nullable() Option {
	return func(b *base) { b.nullable = true }
}

func newBase(name string, opts ...Option) base {
	b := base{name: name}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// preValidate applies the presence rules common to all fields.
func preValidate(f Field, p Presence) error {
	if p == Absent && f.Required() {
		return ErrValueRequired
	}
	if p == Null && !f.Nullable() {
		return ErrNullNotAllowed
	}
	return nil
}

// isEmpty reports whether a raw JSON value is semantically empty. Empty
// values skip kind-specific checks: an optional field sent as "" or 0 is
// treated the same as one not sent at all.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
