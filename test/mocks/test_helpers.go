package mocks

import (
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

// CreateTestDoctor creates a sample doctor for testing.
func CreateTestDoctor(id int64, name string) domain.Doctor {
	return domain.Doctor{
		ID:             id,
		Name:           name,
		Email:          "doctor@clinic.test",
		Specialty:      "Pediatrics",
		AvailableTimes: []string{"09:00", "10:30", "14:00"},
	}
}

// CreateTestAppointment creates an appointment for a patient.
func CreateTestAppointment(id int64, patientName string) domain.Appointment {
	return domain.Appointment{
		ID:              id,
		AppointmentTime: "2026-10-19T09:00:00",
		PatientID:       100 + id,
		PatientName:     patientName,
		PatientPhone:    "0612345678",
		PatientEmail:    "patient@mail.test",
		DoctorID:        1,
		Status:          domain.AppointmentScheduled,
	}
}

// CreateTestSession creates a live session for role with token.
func CreateTestSession(role domain.Role, token string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        "session-" + string(role),
		Token:     token,
		Role:      role,
		Subject:   "user@clinic.test",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}
