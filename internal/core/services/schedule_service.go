package services

import (
	"context"
	"strings"
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const (
	MsgPrescriptionSaved = "Prescription saved successfully."
	MsgPrescriptionFail  = "Failed to save prescription."
)

var _ ports.ScheduleService = (*ScheduleService)(nil)

// ScheduleService backs the doctor dashboard.
type ScheduleService struct {
	appointments  ports.AppointmentAPI
	prescriptions ports.PrescriptionAPI
	audit         ports.AuditPublisher
	now           func() time.Time
}

func NewScheduleService(appointments ports.AppointmentAPI, prescriptions ports.PrescriptionAPI, audit ports.AuditPublisher) *ScheduleService {
	return &ScheduleService{
		appointments:  appointments,
		prescriptions: prescriptions,
		audit:         audit,
		now:           time.Now,
	}
}

// Appointments resolves the picker value to a date and lists that day's
// appointments, optionally narrowed to a patient name. The resolved date is
// returned for rendering.
func (s *ScheduleService) Appointments(ctx context.Context, sess *domain.Session, date, patientName string) (string, []domain.Appointment) {
	selected := domain.SelectedDate(strings.TrimSpace(date), s.now())
	if !sess.HasToken() {
		return selected, []domain.Appointment{}
	}
	return selected, s.appointments.List(ctx, selected, strings.TrimSpace(patientName), sess.Token)
}

func (s *ScheduleService) SavePrescription(ctx context.Context, sess *domain.Session, p domain.Prescription) domain.Result {
	if !sess.HasToken() {
		return domain.Failure(MsgSessionExpired)
	}

	p.PatientName = strings.TrimSpace(p.PatientName)
	p.Medication = strings.TrimSpace(p.Medication)
	p.Dosage = strings.TrimSpace(p.Dosage)
	p.DoctorNotes = strings.TrimSpace(p.DoctorNotes)

	res := s.prescriptions.Save(ctx, p, sess.Token)
	if !res.Success {
		if res.Message == "" {
			res.Message = MsgPrescriptionFail
		}
		return res
	}

	record(ctx, s.audit, ports.AuditPrescriptionSaved, sess, p.PatientName)
	return domain.Result{Success: true, Message: MsgPrescriptionSaved}
}
