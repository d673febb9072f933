package ports

import (
	"context"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

// The clinic API ports never return errors: adapters log failures and
// hand back empty collections, failed Results or ok=false.

type DoctorAPI interface {
	List(ctx context.Context) []domain.Doctor
	Filter(ctx context.Context, name, time, specialty string) []domain.Doctor
	Save(ctx context.Context, doctor domain.Doctor, token string) domain.Result
	Delete(ctx context.Context, id int64, token string) domain.Result
}

type AppointmentAPI interface {
	List(ctx context.Context, date, patientName, token string) []domain.Appointment
	Book(ctx context.Context, appointment domain.Appointment, token string) domain.Result
}

type PatientAPI interface {
	Details(ctx context.Context, token string) (domain.Patient, bool)
}

type PrescriptionAPI interface {
	Save(ctx context.Context, prescription domain.Prescription, token string) domain.Result
}

type AuthAPI interface {
	AdminLogin(ctx context.Context, username, password string) (string, bool)
	DoctorLogin(ctx context.Context, email, password string) (string, bool)
	PatientLogin(ctx context.Context, email, password string) (string, bool)
}
