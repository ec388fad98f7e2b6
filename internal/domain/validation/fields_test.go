package validation_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/valeko/scoreline/internal/domain/validation"
)

func TestCharField(t *testing.T) {
	Convey("Given a char field", t, func() {
		f := validation.NewChar("login")

		Convey("A string passes", func() {
			So(f.Check("user"), ShouldBeNil)
		})

		Convey("An empty string skips the type check", func() {
			So(f.Check(""), ShouldBeNil)
		})

		Convey("A number fails", func() {
			So(f.Check(42.0), ShouldEqual, validation.ErrNotString)
		})

		Convey("Nil skips the type check", func() {
			So(f.Check(nil), ShouldBeNil)
		})
	})
}

func TestEmailField(t *testing.T) {
	Convey("Given an email field", t, func() {
		f := validation.NewEmail("email")

		Convey("A string with @ passes", func() {
			So(f.Check("user@example.com"), ShouldBeNil)
		})

		Convey("A string without @ fails", func() {
			So(f.Check("user.example.com"), ShouldEqual, validation.ErrInvalidEmail)
		})

		Convey("A non-string fails", func() {
			So(f.Check(123.0), ShouldEqual, validation.ErrInvalidEmail)
		})
	})
}

func TestPhoneField(t *testing.T) {
	Convey("Given a phone field", t, func() {
		f := validation.NewPhone("phone")

		Convey("An 11-digit string starting with 7 passes", func() {
			So(f.Check("79213333333"), ShouldBeNil)
		})

		Convey("A numeric phone passes and prepares to a string", func() {
			So(f.Check(float64(79213333333)), ShouldBeNil)
			prepared, err := f.Prepare(float64(79213333333))
			So(err, ShouldBeNil)
			So(prepared, ShouldEqual, "79213333333")
		})

		Convey("A wrong leading digit fails", func() {
			So(f.Check("89213333333"), ShouldEqual, validation.ErrInvalidPhone)
		})

		Convey("Ten digits fail", func() {
			So(f.Check(float64(7921333333)), ShouldEqual, validation.ErrInvalidPhone)
		})

		Convey("Twelve digits fail", func() {
			So(f.Check("792133333330"), ShouldEqual, validation.ErrInvalidPhone)
		})
	})
}

func TestDateField(t *testing.T) {
	Convey("Given a date field", t, func() {
		f := validation.NewDate("date")

		Convey("DD.MM.YYYY parses and prepares to a time", func() {
			So(f.Check("01.02.1990"), ShouldBeNil)
			prepared, err := f.Prepare("01.02.1990")
			So(err, ShouldBeNil)
			ts, ok := prepared.(time.Time)
			So(ok, ShouldBeTrue)
			So(ts.Year(), ShouldEqual, 1990)
			So(ts.Month(), ShouldEqual, time.February)
			So(ts.Day(), ShouldEqual, 1)
		})

		Convey("ISO format fails", func() {
			So(f.Check("1990-02-01"), ShouldNotBeNil)
		})

		Convey("Garbage fails", func() {
			So(f.Check("not a date"), ShouldNotBeNil)
		})
	})
}

func TestBirthDayField(t *testing.T) {
	Convey("Given a birthday field against a fixed clock", t, func() {
		today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
		f := validation.NewBirthDay("birthday")
		f.SetClock(func() time.Time { return today })

		Convey("A date in the past passes", func() {
			So(f.Check("01.01.2000"), ShouldBeNil)
		})

		Convey("Exactly ten years ago passes", func() {
			So(f.Check("15.06.2014"), ShouldBeNil)
		})

		Convey("A future date fails", func() {
			So(f.Check("01.01.2030"), ShouldEqual, validation.ErrDateInFuture)
		})

		Convey("More than 70 years ago fails", func() {
			So(f.Check("01.01.1950"), ShouldEqual, validation.ErrTooOld)
		})

		Convey("Just under 70 years passes", func() {
			So(f.Check("01.01.1955"), ShouldBeNil)
		})
	})
}

func TestGenderField(t *testing.T) {
	Convey("Given a gender field", t, func() {
		f := validation.NewGender("gender")

		Convey("Known codes pass", func() {
			So(f.Check(1.0), ShouldBeNil)
			So(f.Check(2.0), ShouldBeNil)
		})

		Convey("Zero is semantically empty and passes", func() {
			So(f.Check(0.0), ShouldBeNil)
		})

		Convey("An out-of-range code fails", func() {
			So(f.Check(3.0), ShouldEqual, validation.ErrInvalidGender)
		})

		Convey("A fractional number fails", func() {
			So(f.Check(1.5), ShouldEqual, validation.ErrInvalidGender)
		})

		Convey("A string fails", func() {
			So(f.Check("male"), ShouldEqual, validation.ErrInvalidGender)
		})

		Convey("Prepare normalizes to int", func() {
			prepared, err := f.Prepare(2.0)
			So(err, ShouldBeNil)
			So(prepared, ShouldEqual, 2)
		})
	})
}

func TestClientIDsField(t *testing.T) {
	Convey("Given a client ids field", t, func() {
		f := validation.NewClientIDs("client_ids")

		Convey("A list of integers passes", func() {
			So(f.Check([]any{1.0, 2.0, 3.0}), ShouldBeNil)
		})

		Convey("A list with one integer among junk still passes", func() {
			// The permissive any-element rule is deliberate.
			So(f.Check([]any{"x", 2.0}), ShouldBeNil)
		})

		Convey("An empty list fails", func() {
			So(f.Check([]any{}), ShouldEqual, validation.ErrInvalidClients)
		})

		Convey("A list of only strings fails", func() {
			So(f.Check([]any{"a", "b"}), ShouldEqual, validation.ErrInvalidClients)
		})

		Convey("A non-list fails", func() {
			So(f.Check("1,2,3"), ShouldEqual, validation.ErrInvalidClients)
		})

		Convey("Prepare normalizes integral elements to int64", func() {
			prepared, err := f.Prepare([]any{1.0, "x", 3.0})
			So(err, ShouldBeNil)
			list, ok := prepared.([]any)
			So(ok, ShouldBeTrue)
			So(list[0], ShouldEqual, int64(1))
			So(list[1], ShouldEqual, "x")
			So(list[2], ShouldEqual, int64(3))
		})
	})
}

func TestArgumentsField(t *testing.T) {
	Convey("Given an arguments field", t, func() {
		f := validation.NewArguments("arguments")

		Convey("An object passes", func() {
			So(f.Check(map[string]any{"k": "v"}), ShouldBeNil)
		})

		Convey("An empty object passes", func() {
			So(f.Check(map[string]any{}), ShouldBeNil)
		})

		Convey("Nil fails even though the field may be nullable", func() {
			So(f.Check(nil), ShouldEqual, validation.ErrNotObject)
		})

		Convey("A list fails", func() {
			So(f.Check([]any{}), ShouldEqual, validation.ErrNotObject)
		})
	})
}
