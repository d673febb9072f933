package handler

import (
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const msgUnknownAppointment = "Unknown appointment."

// DoctorHandler serves the doctor dashboard: the appointment table and prescriptions.
type DoctorHandler struct {
	schedule ports.ScheduleService
	view     *render.Renderer
}

func NewDoctorHandler(schedule ports.ScheduleService, view *render.Renderer) *DoctorHandler {
	return &DoctorHandler{schedule: schedule, view: view}
}

func (h *DoctorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	patient := r.URL.Query().Get("patient")
	date, appts := h.schedule.Appointments(r.Context(), sess, r.URL.Query().Get("date"), patient)
	page(w, "doctor", func() error { return h.view.DoctorPage(w, sess, date, patient, appts) })
}

// Appointments returns the table body for the picked date and patient search.
// The resolved date is echoed so the picker follows the Today button.
func (h *DoctorHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	q := r.URL.Query()
	date, appts := h.schedule.Appointments(r.Context(), sess, q.Get("date"), q.Get("patient"))

	trigger(w, map[string]string{EventDateSelected: date})
	page(w, "appointment_rows", func() error { return h.view.AppointmentRows(w, date, appts) })
}

func (h *DoctorHandler) NewPrescription(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, ok := parseID(q.Get("appointmentId"))
	if !ok {
		writeAlert(w, h.view, http.StatusOK, domain.Failure(msgUnknownAppointment))
		return
	}
	page(w, "prescription_form", func() error {
		return h.view.PrescriptionForm(w, id, q.Get("patientName"))
	})
}

func (h *DoctorHandler) SavePrescription(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeAlert(w, h.view, http.StatusBadRequest, domain.Failure("Failed to save prescription."))
		return
	}

	appointmentID, ok := parseID(r.PostFormValue("appointmentId"))
	if !ok {
		writeAlert(w, h.view, http.StatusOK, domain.Failure(msgUnknownAppointment))
		return
	}

	res := h.schedule.SavePrescription(r.Context(), middleware.SessionFrom(r.Context()), domain.Prescription{
		PatientName:   r.PostFormValue("patientName"),
		AppointmentID: appointmentID,
		Medication:    r.PostFormValue("medication"),
		Dosage:        r.PostFormValue("dosage"),
		DoctorNotes:   r.PostFormValue("doctorNotes"),
	})
	writeAlert(w, h.view, http.StatusOK, res)
}
