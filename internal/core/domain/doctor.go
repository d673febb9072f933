package domain

import "strings"

type Doctor struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Password       string   `json:"password,omitempty"`
	Specialty      string   `json:"specialty"`
	AvailableTimes []string `json:"availableTimes"`
}

type Patient struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

type Prescription struct {
	PatientName   string `json:"patientName"`
	AppointmentID int64  `json:"appointmentId"`
	Medication    string `json:"medication"`
	Dosage        string `json:"dosage"`
	DoctorNotes   string `json:"doctorNotes,omitempty"`
}

// Result is the outcome of a mutating call against the clinic API.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Failure(message string) Result {
	return Result{Success: false, Message: message}
}

// ParseTimes splits the add-doctor form's comma list of "HH:MM" slots,
// keeping order and dropping blanks.
func ParseTimes(raw string) []string {
	times := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			times = append(times, t)
		}
	}
	return times
}
