package request_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/valeko/scoreline/internal/domain/request"
	"github.com/valeko/scoreline/internal/domain/validation"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestMethodSchema(t *testing.T) {
	Convey("Given the envelope schema", t, func() {
		s := request.NewMethodSchema()

		valid := map[string]any{
			"account":   "acme",
			"login":     "bob",
			"token":     "t",
			"arguments": map[string]any{},
			"method":    "online_score",
		}

		Convey("A complete envelope validates", func() {
			inst := s.Validate(valid)
			So(inst.Valid(), ShouldBeTrue)
			m := request.NewMethod(inst)
			So(m.Account(), ShouldEqual, "acme")
			So(m.Login(), ShouldEqual, "bob")
			So(m.Name(), ShouldEqual, "online_score")
			So(m.IsAdmin(), ShouldBeFalse)
		})

		Convey("Account is optional", func() {
			delete(valid, "account")
			inst := s.Validate(valid)
			So(inst.Valid(), ShouldBeTrue)
			So(request.NewMethod(inst).Account(), ShouldEqual, "")
		})

		Convey("Login must be present but may be null", func() {
			delete(valid, "login")
			So(s.Validate(valid).Valid(), ShouldBeFalse)

			valid["login"] = nil
			inst := s.Validate(valid)
			So(inst.Valid(), ShouldBeTrue)
			So(request.NewMethod(inst).Login(), ShouldEqual, "")
		})

		Convey("An empty login is a regular caller, not admin", func() {
			valid["login"] = ""
			inst := s.Validate(valid)
			So(inst.Valid(), ShouldBeTrue)
			So(request.NewMethod(inst).IsAdmin(), ShouldBeFalse)
		})

		Convey("The admin login is recognized", func() {
			valid["login"] = "admin"
			So(request.NewMethod(s.Validate(valid)).IsAdmin(), ShouldBeTrue)
		})

		Convey("Method must not be null", func() {
			valid["method"] = nil
			inst := s.Validate(valid)
			So(inst.Valid(), ShouldBeFalse)
			errs := inst.Err().(*validation.Errors)
			So(errors.Is(errs.Field("method"), validation.ErrNullNotAllowed), ShouldBeTrue)
		})

		Convey("Null arguments are still rejected as not-an-object", func() {
			valid["arguments"] = nil
			inst := s.Validate(valid)
			So(inst.Valid(), ShouldBeFalse)
			errs := inst.Err().(*validation.Errors)
			So(errors.Is(errs.Field("arguments"), validation.ErrNotObject), ShouldBeTrue)
		})
	})
}

func TestScoreArgsSchema(t *testing.T) {
	Convey("Given the online_score argument schema", t, func() {
		s := request.NewScoreArgsSchema(fixedClock())

		Convey("Phone with email satisfies the pair rule", func() {
			inst := s.Validate(map[string]any{
				"phone": "79213333333", "email": "a@b",
			})
			So(inst.Valid(), ShouldBeTrue)
		})

		Convey("First and last name satisfy the pair rule", func() {
			inst := s.Validate(map[string]any{
				"first_name": "John", "last_name": "Dow",
			})
			So(inst.Valid(), ShouldBeTrue)
		})

		Convey("Gender with birthday satisfies the pair rule", func() {
			inst := s.Validate(map[string]any{
				"gender": 1.0, "birthday": "01.01.2000",
			})
			So(inst.Valid(), ShouldBeTrue)
		})

		Convey("Gender unknown (0) still completes the pair", func() {
			inst := s.Validate(map[string]any{
				"gender": 0.0, "birthday": "01.01.2000",
			})
			So(inst.Valid(), ShouldBeTrue)
		})

		Convey("No complete pair fails the cross rule", func() {
			inst := s.Validate(map[string]any{
				"phone": "79213333333", "first_name": "John",
			})
			So(inst.Valid(), ShouldBeFalse)
			errs := inst.Err().(*validation.Errors)
			So(errors.Is(errs.Field(validation.CrossKey), request.ErrIncompletePairs), ShouldBeTrue)
		})

		Convey("Birthday alone does not complete the gender pair", func() {
			inst := s.Validate(map[string]any{
				"birthday": "01.01.2000", "phone": "79213333333",
			})
			So(inst.Valid(), ShouldBeFalse)
		})

		Convey("Empty arguments fail the cross rule only", func() {
			inst := s.Validate(map[string]any{})
			errs := inst.Err().(*validation.Errors)
			So(errs.Field(validation.CrossKey), ShouldNotBeNil)
			So(errs.Field("phone"), ShouldBeNil)
		})

		Convey("The profile carries prepared values", func() {
			inst := s.Validate(map[string]any{
				"first_name": "John", "last_name": "Dow",
				"phone": 79213333333.0, "email": "a@b",
				"birthday": "01.01.2000", "gender": 2.0,
			})
			So(inst.Valid(), ShouldBeTrue)
			p := request.ProfileOf(inst)
			So(p.FirstName, ShouldEqual, "John")
			So(p.Phone, ShouldEqual, "79213333333")
			So(p.HasBirthday(), ShouldBeTrue)
			So(p.Birthday.Year(), ShouldEqual, 2000)
			So(p.HasGender(), ShouldBeTrue)
			So(*p.Gender, ShouldEqual, 2)
		})

		Convey("An absent gender leaves the profile pointer nil", func() {
			inst := s.Validate(map[string]any{
				"first_name": "John", "last_name": "Dow",
			})
			p := request.ProfileOf(inst)
			So(p.HasGender(), ShouldBeFalse)
			So(p.HasBirthday(), ShouldBeFalse)
		})
	})
}

func TestInterestsArgsSchema(t *testing.T) {
	Convey("Given the clients_interests argument schema", t, func() {
		s := request.NewInterestsArgsSchema()

		Convey("Client ids with a date validate", func() {
			inst := s.Validate(map[string]any{
				"client_ids": []any{1.0, 2.0}, "date": "20.07.2017",
			})
			So(inst.Valid(), ShouldBeTrue)
			So(request.ClientIDs(inst), ShouldResemble, []any{int64(1), int64(2)})
		})

		Convey("The date is optional", func() {
			inst := s.Validate(map[string]any{"client_ids": []any{1.0}})
			So(inst.Valid(), ShouldBeTrue)
		})

		Convey("Missing client ids fail", func() {
			inst := s.Validate(map[string]any{"date": "20.07.2017"})
			So(inst.Valid(), ShouldBeFalse)
		})

		Convey("An empty id list fails", func() {
			inst := s.Validate(map[string]any{"client_ids": []any{}})
			So(inst.Valid(), ShouldBeFalse)
		})

		Convey("A malformed date fails", func() {
			inst := s.Validate(map[string]any{
				"client_ids": []any{1.0}, "date": "2017-07-20",
			})
			So(inst.Valid(), ShouldBeFalse)
		})
	})
}
