package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const (
	MsgLoginToBook    = "Please log in to book."
	MsgBookingFailed  = "Booking failed. Try again."
	MsgBooked         = "Appointment booked successfully!"
	MsgSlotIncomplete = "Please choose a date and time."
)

var _ ports.BookingService = (*BookingService)(nil)

// BookingService backs the patient's Book Now flow.
type BookingService struct {
	doctors      ports.DoctorAPI
	patients     ports.PatientAPI
	appointments ports.AppointmentAPI
	audit        ports.AuditPublisher
}

func NewBookingService(doctors ports.DoctorAPI, patients ports.PatientAPI, appointments ports.AppointmentAPI, audit ports.AuditPublisher) *BookingService {
	return &BookingService{
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		audit:        audit,
	}
}

// Prepare loads what the booking overlay needs: the doctor and the logged-in patient.
func (s *BookingService) Prepare(ctx context.Context, sess *domain.Session, doctorID int64) (domain.Doctor, domain.Patient, domain.Result) {
	if !sess.HasToken() {
		return domain.Doctor{}, domain.Patient{}, domain.Failure(MsgLoginToBook)
	}

	patient, ok := s.patients.Details(ctx, sess.Token)
	if !ok {
		return domain.Doctor{}, domain.Patient{}, domain.Failure(MsgBookingFailed)
	}

	for _, d := range s.doctors.List(ctx) {
		if d.ID == doctorID {
			return d, patient, domain.Result{Success: true}
		}
	}
	return domain.Doctor{}, domain.Patient{}, domain.Failure(MsgBookingFailed)
}

// Book creates an appointment at date ("YYYY-MM-DD") and slot ("HH:MM").
func (s *BookingService) Book(ctx context.Context, sess *domain.Session, doctorID int64, date, slot string) domain.Result {
	if !sess.HasToken() {
		return domain.Failure(MsgLoginToBook)
	}

	date = strings.TrimSpace(date)
	slot = strings.TrimSpace(slot)
	if date == "" || slot == "" {
		return domain.Failure(MsgSlotIncomplete)
	}

	patient, ok := s.patients.Details(ctx, sess.Token)
	if !ok {
		return domain.Failure(MsgBookingFailed)
	}

	appt := domain.Appointment{
		AppointmentTime: fmt.Sprintf("%sT%s:00", date, slot),
		PatientID:       patient.ID,
		PatientName:     patient.Name,
		PatientPhone:    patient.Phone,
		PatientEmail:    patient.Email,
		DoctorID:        doctorID,
		Status:          domain.AppointmentScheduled,
	}

	res := s.appointments.Book(ctx, appt, sess.Token)
	if !res.Success {
		if res.Message == "" {
			res.Message = MsgBookingFailed
		}
		return res
	}

	record(ctx, s.audit, ports.AuditAppointmentBooked, sess, strconv.FormatInt(doctorID, 10))
	return domain.Result{Success: true, Message: MsgBooked}
}
