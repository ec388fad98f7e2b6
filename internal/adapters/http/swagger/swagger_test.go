package swagger_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/valeko/scoreline/internal/adapters/http/swagger"
)

func TestDocsRoutes(t *testing.T) {
	Convey("Given the documentation routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(mux)
		ts := httptest.NewServer(mux)
		defer ts.Close()

		Convey("The ReDoc page renders against the spec url", func() {
			resp, err := http.Get(ts.URL + "/api-docs")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Type"), ShouldStartWith, "text/html")
		})

		Convey("The OpenAPI spec is served and mentions the method endpoint", func() {
			resp, err := http.Get(ts.URL + "/openapi.yaml")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			body, err := io.ReadAll(resp.Body)
			So(err, ShouldBeNil)
			So(string(body), ShouldContainSubstring, "/method:")
			So(string(body), ShouldContainSubstring, "online_score")
		})

		Convey("Registering on a nil mux panics", func() {
			So(func() { swagger.Register(nil) }, ShouldPanic)
		})
	})
}
