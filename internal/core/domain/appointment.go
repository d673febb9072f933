package domain

import "time"

// DateLayout is the selectedDate format shared by the date picker and the Today button.
const DateLayout = "2006-01-02"

const (
	AppointmentScheduled = 0
	AppointmentCompleted = 1
)

type Appointment struct {
	ID              int64  `json:"id"`
	AppointmentTime string `json:"appointmentTime"`
	PatientID       int64  `json:"patientId"`
	PatientName     string `json:"patientName"`
	PatientPhone    string `json:"patientPhone"`
	PatientEmail    string `json:"patientEmail"`
	DoctorID        int64  `json:"doctorId"`
	Status          int    `json:"status"`
}

// Patient extracts the patient columns shown in the doctor's appointment table.
func (a Appointment) Patient() Patient {
	return Patient{
		ID:    a.PatientID,
		Name:  a.PatientName,
		Phone: a.PatientPhone,
		Email: a.PatientEmail,
	}
}

// SelectedDate resolves a date picker value to YYYY-MM-DD.
// "today", an empty value and anything unparseable resolve to now's date.
func SelectedDate(value string, now time.Time) string {
	today := now.Format(DateLayout)
	if value == "" || value == "today" {
		return today
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return today
	}
	return d.Format(DateLayout)
}
