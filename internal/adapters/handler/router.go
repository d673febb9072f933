package handler

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

// Routes bundles the portal handlers and the middleware in front of them.
type Routes struct {
	Auth     *AuthHandler
	Admin    *AdminHandler
	Doctor   *DoctorHandler
	Patient  *PatientHandler
	Health   *HealthHandler
	Sessions *middleware.SessionMiddleware
	Limiter  *middleware.RateLimiter
	Metrics  http.Handler

	// Forwarded client addresses are honoured only from these peers.
	TrustedProxies []netip.Prefix
}

func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.TrustedRealIP(rt.TrustedProxies))
	r.Use(chimw.Recoverer)

	// Health endpoints (OpenShift compatible); method checks live in the handlers.
	r.HandleFunc("/health", rt.Health.Health)
	r.HandleFunc("/health/ready", rt.Health.Ready)
	r.HandleFunc("/health/live", rt.Health.Live)
	if rt.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.Metrics)
	}

	admin := []domain.Role{domain.RoleAdmin}
	doctor := []domain.Role{domain.RoleDoctor}
	patient := []domain.Role{domain.RolePatient}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Logger)
		r.Use(rt.Sessions.LoadSession)

		r.Get("/", rt.Auth.Index)
		r.Post("/login/admin", rt.Limiter.Limit(rt.Auth.AdminLogin, rt.Auth.TooManyAttempts))
		r.Post("/login/doctor", rt.Limiter.Limit(rt.Auth.DoctorLogin, rt.Auth.TooManyAttempts))
		r.Post("/login/patient", rt.Limiter.Limit(rt.Auth.PatientLogin, rt.Auth.TooManyAttempts))
		r.Post("/logout", rt.Auth.Logout)

		r.Get("/admin", rt.Sessions.RequireRole(admin, rt.Admin.Dashboard))
		r.Get("/admin/doctors", rt.Sessions.RequireRole(admin, rt.Admin.SearchDoctors))
		r.Post("/admin/doctors", rt.Sessions.RequireRole(admin, rt.Admin.AddDoctor))
		r.Delete("/admin/doctors/{id}", rt.Sessions.RequireRole(admin, rt.Admin.DeleteDoctor))

		r.Get("/doctor", rt.Sessions.RequireRole(doctor, rt.Doctor.Dashboard))
		r.Get("/doctor/appointments", rt.Sessions.RequireRole(doctor, rt.Doctor.Appointments))
		r.Get("/doctor/prescriptions/new", rt.Sessions.RequireRole(doctor, rt.Doctor.NewPrescription))
		r.Post("/doctor/prescriptions", rt.Sessions.RequireRole(doctor, rt.Doctor.SavePrescription))

		r.Get("/doctors", rt.Patient.Directory)
		r.Get("/doctors/search", rt.Patient.Search)
		r.Get("/patient", rt.Sessions.RequireRole(patient, rt.Patient.Directory))
		// Booking stays reachable for guests so they get the log-in prompt.
		r.Get("/patient/book/{doctorId}", rt.Patient.BookForm)
		r.Post("/patient/appointments", rt.Patient.Book)
	})

	return r
}
