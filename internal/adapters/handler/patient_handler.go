package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

// PatientHandler serves the doctor directory and the booking flow.
type PatientHandler struct {
	doctors ports.DoctorDirectory
	booking ports.BookingService
	view    *render.Renderer
}

func NewPatientHandler(doctors ports.DoctorDirectory, booking ports.BookingService, view *render.Renderer) *PatientHandler {
	return &PatientHandler{doctors: doctors, booking: booking, view: view}
}

// Directory lists every doctor for whoever is looking.
func (h *PatientHandler) Directory(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	doctors := h.doctors.List(r.Context())
	page(w, "directory", func() error { return h.view.DirectoryPage(w, sess, doctors) })
}

func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	q := r.URL.Query()
	doctors := h.doctors.Filter(r.Context(), q.Get("name"), q.Get("time"), q.Get("specialty"))
	page(w, "doctor_list", func() error {
		return h.view.DoctorList(w, render.ViewerFor(sess), doctors, true)
	})
}

// BookForm opens the booking overlay for a doctor.
func (h *PatientHandler) BookForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "doctorId"))
	if !ok {
		writeAlert(w, h.view, http.StatusOK, domain.Failure("Booking failed. Try again."))
		return
	}

	doctor, patient, res := h.booking.Prepare(r.Context(), patientSession(r), id)
	if !res.Success {
		writeAlert(w, h.view, http.StatusOK, res)
		return
	}
	page(w, "booking", func() error { return h.view.Booking(w, doctor, patient, today()) })
}

func (h *PatientHandler) Book(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeAlert(w, h.view, http.StatusBadRequest, domain.Failure("Booking failed. Try again."))
		return
	}

	id, ok := parseID(r.PostFormValue("doctorId"))
	if !ok {
		writeAlert(w, h.view, http.StatusOK, domain.Failure("Booking failed. Try again."))
		return
	}

	res := h.booking.Book(r.Context(), patientSession(r), id, r.PostFormValue("date"), r.PostFormValue("time"))
	refreshOnSuccess(w, res)
	writeAlert(w, h.view, http.StatusOK, res)
}

// patientSession only hands a token to the booking flow when the viewer is a patient.
func patientSession(r *http.Request) *domain.Session {
	sess := middleware.SessionFrom(r.Context())
	if sess.Role != domain.RolePatient {
		return domain.GuestSession()
	}
	return sess
}
