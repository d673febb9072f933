package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/handler"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/metrics"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/session"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/services"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/test/mocks"
)

type fixture struct {
	router   http.Handler
	doctors  *mocks.MockDoctorAPI
	appts    *mocks.MockAppointmentAPI
	patients *mocks.MockPatientAPI
	rx       *mocks.MockPrescriptionAPI
	authAPI  *mocks.MockAuthAPI
	store    *session.MemoryStore
	codec    *session.CookieCodec
	pub      *mocks.MockAuditPublisher
	authSvc  *services.AuthService
}

type breakerStub struct{ state gobreaker.State }

func (b breakerStub) BreakerState() gobreaker.State { return b.state }

func newFixture(t *testing.T, loginBurst int) *fixture {
	t.Helper()

	f := &fixture{
		doctors:  mocks.NewMockDoctorAPI(mocks.CreateTestDoctor(1, "Dr. Smit"), mocks.CreateTestDoctor(2, "Dr. Visser")),
		appts:    mocks.NewMockAppointmentAPI(mocks.CreateTestAppointment(11, "Eva")),
		patients: mocks.NewMockPatientAPI(domain.Patient{ID: 7, Name: "Eva", Email: "eva@mail.test"}),
		rx:       mocks.NewMockPrescriptionAPI(),
		authAPI:  mocks.NewMockAuthAPI("backend-token"),
		store:    session.NewMemoryStore(),
		codec:    session.NewCookieCodec([]byte("test-secret"), false),
		pub:      mocks.NewMockAuditPublisher(),
	}
	f.authAPI.Credentials["admin"] = "admin-pw"
	f.authAPI.Credentials["doc@clinic.test"] = "doc-pw"
	f.authAPI.Credentials["eva@mail.test"] = "eva-pw"

	reg := prometheus.NewRegistry()
	view, err := render.New(metrics.New(reg))
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	f.authSvc = services.NewAuthService(f.authAPI, f.store, f.pub, time.Hour)
	directory := services.NewDoctorService(f.doctors, f.pub)

	f.router = handler.NewRouter(handler.Routes{
		Auth:     handler.NewAuthHandler(f.authSvc, f.codec, view),
		Admin:    handler.NewAdminHandler(directory, view),
		Doctor:   handler.NewDoctorHandler(services.NewScheduleService(f.appts, f.rx, f.pub), view),
		Patient:  handler.NewPatientHandler(directory, services.NewBookingService(f.doctors, f.patients, f.appts, f.pub), view),
		Health:   handler.NewHealthHandler(f.store, breakerStub{gobreaker.StateClosed}, "test"),
		Sessions: middleware.NewSessionMiddleware(f.codec, f.authSvc),
		Limiter:  middleware.NewRateLimiter(t.Context(), 0.001, loginBurst),
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return f
}

// cookieFor logs in through the auth service and returns the signed session cookie.
func (f *fixture) cookieFor(t *testing.T, role domain.Role) *http.Cookie {
	t.Helper()
	subjects := map[domain.Role][2]string{
		domain.RoleAdmin:   {"admin", "admin-pw"},
		domain.RoleDoctor:  {"doc@clinic.test", "doc-pw"},
		domain.RolePatient: {"eva@mail.test", "eva-pw"},
	}
	cred := subjects[role]
	sess, err := f.authSvc.Login(t.Context(), role, cred[0], cred[1])
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	value, err := f.codec.Encode(sess.ID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return f.codec.Cookie(value, sess.ExpiresAt)
}

func (f *fixture) serve(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func form(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func htmx(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("HX-Request", "true")
	return req
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body:\n%s", want, body)
		}
	}
}
