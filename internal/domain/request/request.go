// Package request declares the schema definitions for the RPC envelope and
// the two method argument shapes, plus typed accessors over their validated
// instances. Definitions are built once at startup and shared.
package request

import (
	"time"

	"github.com/valeko/scoreline/internal/domain/auth"
	"github.com/valeko/scoreline/internal/domain/model"
	"github.com/valeko/scoreline/internal/domain/validation"
)

// Schema names, used in validation error messages and metrics labels.
const (
	MethodSchemaName    = "method_request"
	ScoreSchemaName     = "online_score_request"
	InterestsSchemaName = "clients_interests_request"
)

// Envelope field names.
const (
	fieldAccount   = "account"
	fieldLogin     = "login"
	fieldToken     = "token"
	fieldArguments = "arguments"
	fieldMethod    = "method"
	fieldClientIDs = "client_ids"
)

// NewMethodSchema builds the outer envelope schema.
func NewMethodSchema() *validation.Schema {
	return validation.New(MethodSchemaName, validation.WithFields(
		validation.NewChar(fieldAccount, validation.Nullable()),
		validation.NewChar(fieldLogin, validation.Required(), validation.Nullable()),
		validation.NewChar(fieldToken, validation.Required(), validation.Nullable()),
		validation.NewArguments(fieldArguments, validation.Required(), validation.Nullable()),
		validation.NewChar(fieldMethod, validation.Required()),
	))
}

// NewScoreArgsSchema builds the online_score argument schema. The clock
// feeds the birthday age cutoff; nil means the wall clock.
func NewScoreArgsSchema(now func() time.Time) *validation.Schema {
	birthday := validation.NewBirthDay("birthday", validation.Nullable())
	if now != nil {
		birthday.SetClock(now)
	}
	return validation.New(ScoreSchemaName,
		validation.WithFields(
			validation.NewChar("first_name", validation.Nullable()),
			validation.NewChar("last_name", validation.Nullable()),
			validation.NewEmail("email", validation.Nullable()),
			validation.NewPhone("phone", validation.Nullable()),
			birthday,
			validation.NewGender("gender", validation.Nullable()),
		),
		validation.WithCrossCheck(scorePairsRule),
	)
}

// scorePairsRule demands at least one complete identifying pair.
func scorePairsRule(inst *validation.Instance) error {
	switch {
	case inst.Truthy("phone") && inst.Truthy("email"):
		return nil
	case inst.Truthy("first_name") && inst.Truthy("last_name"):
		return nil
	case validation.KnownGender(inst.Get("gender")) && inst.Truthy("birthday"):
		return nil
	}
	return ErrIncompletePairs
}

// NewInterestsArgsSchema builds the clients_interests argument schema.
func NewInterestsArgsSchema() *validation.Schema {
	return validation.New(InterestsSchemaName, validation.WithFields(
		validation.NewClientIDs(fieldClientIDs, validation.Required()),
		validation.NewDate("date", validation.Nullable()),
	))
}

// Method is a typed view over a validated envelope instance.
type Method struct {
	inst *validation.Instance
}

// NewMethod wraps a validated envelope instance.
func NewMethod(inst *validation.Instance) Method {
	return Method{inst: inst}
}

// Account returns the caller's account, empty when not provided.
func (m Method) Account() string { return m.inst.String(fieldAccount) }

// Login returns the caller's login, empty when null.
func (m Method) Login() string { return m.inst.String(fieldLogin) }

// Token returns the supplied auth token.
func (m Method) Token() string { return m.inst.String(fieldToken) }

// Name returns the requested method name.
func (m Method) Name() string { return m.inst.String(fieldMethod) }

// Arguments returns the opaque argument object.
func (m Method) Arguments() map[string]any { return m.inst.Object(fieldArguments) }

// IsAdmin reports whether the caller claims the admin scope.
func (m Method) IsAdmin() bool { return m.Login() == auth.AdminLogin }

// ClientIDs returns the prepared client id list of a validated interests
// argument instance.
func ClientIDs(inst *validation.Instance) []any {
	return inst.List(fieldClientIDs)
}

// ProfileOf assembles the scoring profile from a validated score argument
// instance.
func ProfileOf(inst *validation.Instance) model.Profile {
	p := model.Profile{
		FirstName: inst.String("first_name"),
		LastName:  inst.String("last_name"),
		Email:     inst.String("email"),
		Phone:     inst.String("phone"),
	}
	if birthday, ok := inst.Time("birthday"); ok {
		p.Birthday = birthday
	}
	if gender, ok := inst.Int("gender"); ok {
		p.Gender = &gender
	}
	return p
}
