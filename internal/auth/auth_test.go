package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/internal/auth"
	"github.com/benchwise/teamforge/internal/domain/model"
)

func TestLoginAndVerify(t *testing.T) {
	svc := auth.NewService("test-secret")

	Convey("Given the demo credential table", t, func() {
		Convey("When logging in with valid credentials", func() {
			token, err := svc.Login("admin@northbeam.example", "admin123")

			Convey("Then a token is issued for the account", func() {
				So(err, ShouldBeNil)
				So(token.AccessToken, ShouldNotBeEmpty)
				So(token.User.Role, ShouldEqual, string(auth.RoleAdmin))
				So(token.ExpiresIn, ShouldBeGreaterThan, 0)
			})

			Convey("And the token verifies back to the same session", func() {
				So(err, ShouldBeNil)
				session, err := svc.Verify(token.AccessToken)
				So(err, ShouldBeNil)
				So(session.UserID, ShouldEqual, "usr-admin")
				So(session.Role, ShouldEqual, auth.RoleAdmin)
				So(session.Email, ShouldEqual, "admin@northbeam.example")
			})
		})

		Convey("When logging in with a wrong password", func() {
			_, err := svc.Login("admin@northbeam.example", "nope")
			So(err, ShouldEqual, auth.ErrInvalidCredentials)
		})

		Convey("When logging in with an unknown account", func() {
			_, err := svc.Login("stranger@example.com", "admin123")
			So(err, ShouldEqual, auth.ErrInvalidCredentials)
		})
	})

	Convey("Given tokens that should not verify", t, func() {
		Convey("Then garbage is rejected", func() {
			_, err := svc.Verify("not-a-token")
			So(err, ShouldEqual, auth.ErrInvalidToken)
		})

		Convey("Then a token signed with another secret is rejected", func() {
			other := auth.NewService("other-secret")
			token, err := other.Login("pro@brightforge.example", "pro123")
			So(err, ShouldBeNil)

			_, err = svc.Verify(token.AccessToken)
			So(err, ShouldEqual, auth.ErrInvalidToken)
		})

		Convey("Then an expired token is rejected", func() {
			short := auth.NewService("test-secret", auth.WithSessionTTL(time.Nanosecond))
			token, err := short.Login("pro@brightforge.example", "pro123")
			So(err, ShouldBeNil)

			time.Sleep(10 * time.Millisecond)
			_, err = short.Verify(token.AccessToken)
			So(err, ShouldEqual, auth.ErrInvalidToken)
		})
	})
}

func TestPricingVisibility(t *testing.T) {
	full := model.Pricing{
		IndividualDailyRate:    400,
		OrganizationReleaseFee: 60,
		PartnerMargin:          140,
		TotalBillableRate:      600,
		Currency:               "USD",
	}

	Convey("Given the full pricing breakdown", t, func() {
		Convey("Then admin sees every component", func() {
			So(auth.RoleAdmin.FilterPricing(full), ShouldResemble, full)
		})

		Convey("Then a partner manager sees rate and release fee only", func() {
			p := auth.RolePartnerManager.FilterPricing(full)
			So(p.IndividualDailyRate, ShouldEqual, 400)
			So(p.OrganizationReleaseFee, ShouldEqual, 60)
			So(p.PartnerMargin, ShouldEqual, 0)
			So(p.TotalBillableRate, ShouldEqual, 0)
		})

		Convey("Then a professional sees the individual rate only", func() {
			p := auth.RoleProfessional.FilterPricing(full)
			So(p.IndividualDailyRate, ShouldEqual, 400)
			So(p.OrganizationReleaseFee, ShouldEqual, 0)
		})

		Convey("Then a guest sees nothing but the currency", func() {
			p := auth.RoleGuest.FilterPricing(full)
			So(p, ShouldResemble, model.Pricing{Currency: "USD"})
		})
	})
}

func TestMiddleware(t *testing.T) {
	svc := auth.NewService("test-secret")

	echoRole := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := auth.FromContext(r.Context())
		w.Write([]byte(session.Role))
	})
	handler := auth.Middleware(svc)(echoRole)

	Convey("Given the session middleware", t, func() {
		Convey("When no Authorization header is sent", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then the request proceeds as guest", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldEqual, string(auth.RoleGuest))
			})
		})

		Convey("When a valid bearer token is sent", func() {
			token, err := svc.Login("manager@southline.example", "manager123")
			So(err, ShouldBeNil)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token.AccessToken)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			Convey("Then the session carries the account's role", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldEqual, string(auth.RolePartnerManager))
			})
		})

		Convey("When an invalid token is sent", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer garbage")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When the header is not a bearer scheme", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Basic abc")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})
	})
}
