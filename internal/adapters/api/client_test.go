package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/api"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/metrics"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*api.Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	m := metrics.New(prometheus.NewRegistry())
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"})
	return api.NewClient(srv.URL, 2*time.Second, cb, m), m
}

func closedServerClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"})
	return api.NewClient(url, time.Second, cb, nil)
}

func TestDoctorList_ReturnsDoctors(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/doctors" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"doctors":[{"id":1,"name":"Dr. Jansen","specialty":"Cardiology","availableTimes":["09:00","10:00"]}]}`))
	})

	doctors := api.NewDoctorClient(c).List(t.Context())

	if len(doctors) != 1 {
		t.Fatalf("expected 1 doctor, got %d", len(doctors))
	}
	if doctors[0].Name != "Dr. Jansen" || doctors[0].AvailableTimes[1] != "10:00" {
		t.Errorf("unexpected doctor %+v", doctors[0])
	}
	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("doctors", "list", "success")); got != 1 {
		t.Errorf("expected 1 successful upstream request, got %v", got)
	}
}

func TestDoctorList_NeverFails(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad json", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"doctors":`)) }},
		{"missing key", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"message":"ok"}`)) }},
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"not found", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			doctors := api.NewDoctorClient(c).List(t.Context())
			if doctors == nil {
				t.Fatal("expected non-nil empty slice")
			}
			if len(doctors) != 0 {
				t.Errorf("expected no doctors, got %d", len(doctors))
			}
		})
	}
}

func TestDoctorList_TransportError(t *testing.T) {
	doctors := api.NewDoctorClient(closedServerClient(t)).List(t.Context())
	if doctors == nil || len(doctors) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", doctors)
	}
}

func TestDoctorFilter_NullSegments(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"doctors":[]}`))
	})

	doctors := api.NewDoctorClient(c).Filter(t.Context(), "", "", "")

	if gotPath != "/api/doctors/search/null/null/null" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if doctors == nil {
		t.Error("expected non-nil slice")
	}
}

func TestDoctorFilter_EscapesSegments(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"doctors":[]}`))
	})

	api.NewDoctorClient(c).Filter(t.Context(), "van Dijk", "AM", "")

	if gotPath != "/api/doctors/search/van%20Dijk/AM/null" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestDoctorSave(t *testing.T) {
	var body domain.Doctor
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.Write([]byte(`{"message":"Doctor added"}`))
	})

	res := api.NewDoctorClient(c).Save(t.Context(), domain.Doctor{Name: "Dr. Bakker", Password: "secret"}, "tok")

	if !res.Success || res.Message != "Doctor added" {
		t.Errorf("unexpected result %+v", res)
	}
	if gotPath != "/api/doctors/add/tok" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if body.Name != "Dr. Bakker" || body.Password != "secret" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestDoctorDelete(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		success bool
		message string
	}{
		{"success with message", http.StatusOK, `{"message":"Removed"}`, true, "Removed"},
		{"success empty body", http.StatusOK, ``, true, "Doctor deleted successfully."},
		{"rejected with message", http.StatusUnauthorized, `{"message":"Invalid token"}`, false, "Invalid token"},
		{"rejected without message", http.StatusNotFound, `{}`, false, "Failed to delete doctor."},
		{"server error", http.StatusInternalServerError, `oops`, false, "Failed to delete doctor."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/api/doctors/7/tok" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			res := api.NewDoctorClient(c).Delete(t.Context(), 7, "tok")
			if res.Success != tt.success || res.Message != tt.message {
				t.Errorf("expected {%v %q}, got %+v", tt.success, tt.message, res)
			}
		})
	}
}

func TestDoctorDelete_TransportError(t *testing.T) {
	res := api.NewDoctorClient(closedServerClient(t)).Delete(t.Context(), 1, "tok")
	if res.Success || res.Message != "Failed to delete doctor." {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestAppointmentList(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":1,"patientName":"Eva"},{"id":2,"patientName":"Sem"}]`, 2},
		{"envelope", `{"appointments":[{"id":3,"patientName":"Noor"}]}`, 1},
		{"empty envelope", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(tt.body))
			})

			got := api.NewAppointmentClient(c).List(t.Context(), "2026-10-19", "", "tok")

			if gotPath != "/api/appointments/2026-10-19/null/tok" {
				t.Errorf("unexpected path %q", gotPath)
			}
			if got == nil || len(got) != tt.want {
				t.Errorf("expected %d appointments, got %#v", tt.want, got)
			}
		})
	}
}

func TestAppointmentList_BadJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":`))
	})

	got := api.NewAppointmentClient(c).List(t.Context(), "2026-10-19", "Eva", "tok")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %#v", got)
	}
}

func TestAppointmentBook(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	})

	res := api.NewAppointmentClient(c).Book(t.Context(), domain.Appointment{DoctorID: 2}, "tok")

	if gotPath != "/api/appointments/book/tok" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if !res.Success || res.Message != "Appointment booked successfully!" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestPatientDetails(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		ok     bool
	}{
		{"envelope", http.StatusOK, `{"patient":{"id":4,"name":"Eva"}}`, true},
		{"bare object", http.StatusOK, `{"id":4,"name":"Eva"}`, true},
		{"empty object", http.StatusOK, `{}`, false},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Invalid token"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/patient/get/tok" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			p, ok := api.NewPatientClient(c).Details(t.Context(), "tok")
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && p.Name != "Eva" {
				t.Errorf("unexpected patient %+v", p)
			}
		})
	}
}

func TestPrescriptionSave(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/prescription/save/tok" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Dosage required"}`))
	})

	res := api.NewPrescriptionClient(c).Save(t.Context(), domain.Prescription{AppointmentID: 9}, "tok")
	if res.Success || res.Message != "Dosage required" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestLogin(t *testing.T) {
	var got map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		switch r.URL.Path {
		case "/api/admin/login":
			w.Write([]byte(`{"token":"admin-token"}`))
		case "/api/doctors/login":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		case "/api/patient/login":
			w.Write([]byte(`{}`))
		}
	})
	auth := api.NewAuthClient(c)

	token, ok := auth.AdminLogin(t.Context(), "admin", "pw")
	if !ok || token != "admin-token" {
		t.Errorf("expected admin token, got %q %v", token, ok)
	}
	if got["username"] != "admin" || got["password"] != "pw" {
		t.Errorf("unexpected admin credentials %v", got)
	}

	if _, ok := auth.DoctorLogin(t.Context(), "doc@clinic.nl", "pw"); ok {
		t.Error("expected doctor login to fail")
	}
	if got["email"] != "doc@clinic.nl" {
		t.Errorf("unexpected doctor credentials %v", got)
	}

	if _, ok := auth.PatientLogin(t.Context(), "eva@mail.nl", "pw"); ok {
		t.Error("expected patient login without token to fail")
	}
}

func TestBreakerOpens_AfterServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "test",
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 2
		},
		Timeout: time.Minute,
	})
	c := api.NewClient(srv.URL, time.Second, cb, m)
	doctors := api.NewDoctorClient(c)

	for i := 0; i < 4; i++ {
		doctors.List(t.Context())
	}

	if calls != 2 {
		t.Errorf("expected breaker to stop calls after 2 failures, got %d calls", calls)
	}
	if c.BreakerState() != gobreaker.StateOpen {
		t.Errorf("expected open breaker, got %s", c.BreakerState())
	}
	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("doctors", "list", "breaker_open")); got != 2 {
		t.Errorf("expected 2 shed requests, got %v", got)
	}
}

func TestCanceledCallers_LeaveBreakerClosed(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"doctors":[{"id":1,"name":"Dr. Jansen"}]}`))
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "test",
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 1
		},
		Timeout: time.Minute,
	})
	c := api.NewClient(srv.URL, time.Second, cb, m)
	doctors := api.NewDoctorClient(c)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	for i := 0; i < 3; i++ {
		if got := doctors.List(ctx); len(got) != 0 {
			t.Errorf("expected no doctors for a cancelled request, got %d", len(got))
		}
	}

	if c.BreakerState() != gobreaker.StateClosed {
		t.Fatalf("expected closed breaker, got %s", c.BreakerState())
	}
	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("doctors", "list", "canceled")); got != 3 {
		t.Errorf("expected 3 cancelled requests, got %v", got)
	}

	if got := doctors.List(t.Context()); len(got) != 1 {
		t.Errorf("expected the backend to be reached after cancellations, got %d doctors", len(got))
	}
	if calls != 1 {
		t.Errorf("expected 1 backend call, got %d", calls)
	}
}
