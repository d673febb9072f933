package render

import (
	"fmt"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

const (
	DeleteConfirm = "Are you sure you want to delete this doctor?"
	GuestPrompt   = "Please log in as a patient to book an appointment."
)

// Action is one button in a doctor card's actions container.
type Action struct {
	Label    string
	Class    string
	Verb     string // "get" or "delete"; empty issues no request
	URL      string
	Target   string
	Swap     string
	Confirm  string
	Prompt   string
	Disabled bool
}

// Viewer decides which card actions a role gets.
type Viewer interface {
	Role() domain.Role
	DoctorActions(d domain.Doctor) []Action
}

// ViewerFor picks the viewer for a session. Anything unrecognised is a guest.
func ViewerFor(sess *domain.Session) Viewer {
	if sess == nil {
		return guestViewer{}
	}
	switch domain.ParseRole(string(sess.Role)) {
	case domain.RoleAdmin:
		return adminViewer{}
	case domain.RoleDoctor:
		return doctorViewer{}
	case domain.RolePatient:
		return patientViewer{}
	default:
		return guestViewer{}
	}
}

type adminViewer struct{}

func (adminViewer) Role() domain.Role { return domain.RoleAdmin }

func (adminViewer) DoctorActions(d domain.Doctor) []Action {
	return []Action{{
		Label:   "Delete",
		Class:   "btn-delete",
		Verb:    "delete",
		URL:     fmt.Sprintf("/admin/doctors/%d", d.ID),
		Target:  CardSelector(d.ID),
		Swap:    "outerHTML",
		Confirm: DeleteConfirm,
	}}
}

type patientViewer struct{}

func (patientViewer) Role() domain.Role { return domain.RolePatient }

func (patientViewer) DoctorActions(d domain.Doctor) []Action {
	return []Action{{
		Label:  "Book Now",
		Class:  "btn-book",
		Verb:   "get",
		URL:    fmt.Sprintf("/patient/book/%d", d.ID),
		Target: "#modal",
		Swap:   "innerHTML",
	}}
}

type guestViewer struct{}

func (guestViewer) Role() domain.Role { return domain.RoleGuest }

func (guestViewer) DoctorActions(domain.Doctor) []Action {
	return []Action{{
		Label:    "Book Now",
		Class:    "btn-book",
		Prompt:   GuestPrompt,
		Disabled: true,
	}}
}

// Doctors see the directory read-only.
type doctorViewer struct{}

func (doctorViewer) Role() domain.Role { return domain.RoleDoctor }

func (doctorViewer) DoctorActions(domain.Doctor) []Action { return nil }

// CardID is the DOM id of a doctor's card.
func CardID(id int64) string {
	return fmt.Sprintf("doctor-%d", id)
}

func CardSelector(id int64) string {
	return "#" + CardID(id)
}
