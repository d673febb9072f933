package ports

import (
	"context"
	"time"
)

const (
	AuditLogin             = "session.login"
	AuditLogout            = "session.logout"
	AuditDoctorAdded       = "doctor.added"
	AuditDoctorDeleted     = "doctor.deleted"
	AuditAppointmentBooked = "appointment.booked"
	AuditPrescriptionSaved = "prescription.saved"
)

type AuditEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Role       string    `json:"role"`
	Subject    string    `json:"subject"`
	Target     string    `json:"target,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AuditPublisher interface {
	Publish(ctx context.Context, evt AuditEvent) error
}
