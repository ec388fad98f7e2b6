package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CrossKey is the synthetic error key used for cross-field rule failures.
const CrossKey = "cross_check"

// CrossCheck is a rule evaluated once over a fully materialized instance,
// after every field has been processed. It runs regardless of prior
// per-field failures.
type CrossCheck func(*Instance) error

// Schema is an immutable, ordered set of named fields describing one request
// shape. Definitions are built once at startup; validating a payload yields
// a request-scoped Instance.
type Schema struct {
	name   string
	fields []Field
	cross  CrossCheck
}

// SchemaOption applies a configuration option to a Schema.
type SchemaOption func(*Schema)

// WithFields appends field definitions in declaration order.
func WithFields(fields ...Field) SchemaOption {
	return func(s *Schema) { s.fields = append(s.fields, fields...) }
}

// WithCrossCheck installs the schema's single cross-field rule.
func WithCrossCheck(fn CrossCheck) SchemaOption {
	return func(s *Schema) { s.cross = fn }
}

// New creates a schema definition.
func New(name string, opts ...SchemaOption) *Schema {
	s := &Schema{name: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the schema's name, used in error messages and logs.
func (s *Schema) Name() string { return s.name }

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field { return s.fields }

// presenceOf reads the three-state presence of a key in the raw payload.
func presenceOf(raw map[string]any, key string) (Presence, any) {
	v, ok := raw[key]
	switch {
	case !ok:
		return Absent, nil
	case v == nil:
		return Null, nil
	default:
		return Present, v
	}
}

// Validate binds the schema to one raw payload. Every field is evaluated;
// one field's failure never hides another's. A nil payload validates like an
// empty object.
func (s *Schema) Validate(raw map[string]any) *Instance {
	inst := &Instance{
		schema:  s,
		values:  make(map[string]any, len(s.fields)),
		present: make(map[string]bool, len(s.fields)),
		errs:    make(map[string]error),
	}

	for _, f := range s.fields {
		name := f.Name()
		p, v := presenceOf(raw, name)
		if p == Present {
			inst.present[name] = true
		}

		if err := preValidate(f, p); err != nil {
			inst.fail(name, err)
			continue
		}
		if err := f.Check(v); err != nil {
			inst.fail(name, err)
			continue
		}
		if p != Present {
			// Absent and null collapse to the nil canonical value only
			// after the presence rules have had their say.
			inst.values[name] = nil
			continue
		}
		prepared, err := f.Prepare(v)
		if err != nil {
			inst.fail(name, err)
			continue
		}
		inst.values[name] = prepared
	}

	if s.cross != nil {
		if err := s.cross(inst); err != nil {
			inst.fail(CrossKey, err)
		}
	}
	return inst
}

// Instance is the result of validating one payload against a schema. It is
// request-scoped and never shared across requests.
type Instance struct {
	schema   *Schema
	values   map[string]any
	present  map[string]bool
	errs     map[string]error
	errOrder []string
}

func (i *Instance) fail(name string, err error) {
	if _, seen := i.errs[name]; !seen {
		i.errOrder = append(i.errOrder, name)
	}
	i.errs[name] = err
}

// Valid reports whether no field or cross-field errors were recorded.
func (i *Instance) Valid() bool { return len(i.errs) == 0 }

// Has reports whether the named key was present with a non-null value.
func (i *Instance) Has(name string) bool { return i.present[name] }

// PresentFields returns the names of present fields in declaration order.
func (i *Instance) PresentFields() []string {
	out := make([]string, 0, len(i.present))
	for _, f := range i.schema.fields {
		if i.present[f.Name()] {
			out = append(out, f.Name())
		}
	}
	return out
}

// Get returns the prepared value for name, or nil when the field was absent,
// null or failed validation.
func (i *Instance) Get(name string) any { return i.values[name] }

// String returns the prepared value as a string, or "" when unset.
func (i *Instance) String(name string) string {
	s, _ := i.values[name].(string)
	return s
}

// Int returns the prepared value as an int; ok is false when unset.
func (i *Instance) Int(name string) (int, bool) {
	n, ok := i.values[name].(int)
	return n, ok
}

// Time returns the prepared value as a time.Time; ok is false when unset.
func (i *Instance) Time(name string) (time.Time, bool) {
	t, ok := i.values[name].(time.Time)
	return t, ok
}

// List returns the prepared value as a list, or nil when unset.
func (i *Instance) List(name string) []any {
	l, _ := i.values[name].([]any)
	return l
}

// Object returns the prepared value as an object, or nil when unset.
func (i *Instance) Object(name string) map[string]any {
	m, _ := i.values[name].(map[string]any)
	return m
}

// Truthy reports whether the prepared value is set and semantically
// non-empty. Used by cross-field rules.
func (i *Instance) Truthy(name string) bool {
	v, ok := i.values[name]
	if !ok {
		return false
	}
	if t, isTime := v.(time.Time); isTime {
		return !t.IsZero()
	}
	return !isEmpty(v)
}

// Err returns the aggregated validation error, or nil when valid.
func (i *Instance) Err() error {
	if len(i.errs) == 0 {
		return nil
	}
	return &Errors{schema: i.schema.name, byField: i.errs, order: i.errOrder}
}

// FieldErrors returns the per-field error mapping. The map is owned by the
// instance; callers must not mutate it.
func (i *Instance) FieldErrors() map[string]error { return i.errs }

// Errors aggregates every per-field and cross-field failure of one
// validation pass into a single error value.
type Errors struct {
	schema  string
	byField map[string]error
	order   []string
}

// Error lists every failure with its field name, in the order the failures
// were recorded.
func (e *Errors) Error() string {
	order := e.order
	if len(order) == 0 {
		order = make([]string, 0, len(e.byField))
		for k := range e.byField {
			order = append(order, k)
		}
		sort.Strings(order)
	}
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%s: %v", name, e.byField[name]))
	}
	return fmt.Sprintf("%s validation failed: %s", e.schema, strings.Join(parts, "; "))
}

// Field returns the error recorded for one field, or nil.
func (e *Errors) Field(name string) error { return e.byField[name] }
