package ports

import (
	"context"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

// AuthService turns backend logins into portal sessions.
type AuthService interface {
	Login(ctx context.Context, role domain.Role, subject, password string) (*domain.Session, error)
	Logout(ctx context.Context, sess *domain.Session) error
	Resolve(ctx context.Context, id string) (*domain.Session, error)
}

type DoctorDirectory interface {
	List(ctx context.Context) []domain.Doctor
	Filter(ctx context.Context, name, slot, specialty string) []domain.Doctor
	Add(ctx context.Context, sess *domain.Session, doctor domain.Doctor) domain.Result
	Delete(ctx context.Context, sess *domain.Session, id int64) domain.Result
}

type ScheduleService interface {
	Appointments(ctx context.Context, sess *domain.Session, date, patientName string) (string, []domain.Appointment)
	SavePrescription(ctx context.Context, sess *domain.Session, p domain.Prescription) domain.Result
}

type BookingService interface {
	Prepare(ctx context.Context, sess *domain.Session, doctorID int64) (domain.Doctor, domain.Patient, domain.Result)
	Book(ctx context.Context, sess *domain.Session, doctorID int64, date, slot string) domain.Result
}
