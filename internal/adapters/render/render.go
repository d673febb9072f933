// Package render turns portal records into HTML pages and HTMX fragments.
// Rendering is pure: templates are parsed once and executed into a buffer.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/metrics"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	NoDoctorsFound     = "No doctors found with the given filters."
	appointmentColumns = 5
)

type Renderer struct {
	t       *template.Template
	metrics *metrics.Metrics
}

func New(m *metrics.Metrics) (*Renderer, error) {
	t, err := template.New("portal").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t, metrics: m}, nil
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	r.metrics.ObserveRender(name)
	_, err := buf.WriteTo(w)
	return err
}

// Base is what every full page needs for its header.
type Base struct {
	Title    string
	Role     domain.Role
	LoggedIn bool
}

func baseFor(title string, sess *domain.Session) Base {
	b := Base{Title: title, Role: domain.RoleGuest}
	if sess != nil {
		b.Role = ViewerFor(sess).Role()
		b.LoggedIn = sess.HasToken()
	}
	return b
}

type CardView struct {
	domain.Doctor
	DOMID   string
	Actions []Action
}

type ListView struct {
	Cards    []CardView
	Filtered bool
	Empty    string
}

type RowView struct {
	Patient         domain.Patient
	AppointmentID   int64
	AppointmentTime string
	PrescriptionURL string
}

type RowsView struct {
	Date    string
	Rows    []RowView
	Columns int
}

func cardView(v Viewer, d domain.Doctor) CardView {
	return CardView{Doctor: d, DOMID: CardID(d.ID), Actions: v.DoctorActions(d)}
}

func listView(v Viewer, doctors []domain.Doctor, filtered bool) ListView {
	cards := make([]CardView, 0, len(doctors))
	for _, d := range doctors {
		cards = append(cards, cardView(v, d))
	}
	return ListView{Cards: cards, Filtered: filtered, Empty: NoDoctorsFound}
}

func rowView(p domain.Patient, a domain.Appointment) RowView {
	q := url.Values{}
	q.Set("appointmentId", strconv.FormatInt(a.ID, 10))
	q.Set("patientName", p.Name)
	return RowView{
		Patient:         p,
		AppointmentID:   a.ID,
		AppointmentTime: a.AppointmentTime,
		PrescriptionURL: "/doctor/prescriptions/new?" + q.Encode(),
	}
}

func rowsView(date string, appts []domain.Appointment) RowsView {
	rows := make([]RowView, 0, len(appts))
	for _, a := range appts {
		rows = append(rows, rowView(a.Patient(), a))
	}
	return RowsView{Date: date, Rows: rows, Columns: appointmentColumns}
}

type alertView struct {
	Success bool
	Message string
}

// Alert renders the feedback fragment that stands in for a browser alert.
func (r *Renderer) Alert(w io.Writer, res domain.Result) error {
	return r.execute(w, "alert", alertView{Success: res.Success, Message: res.Message})
}

func (r *Renderer) DoctorCard(w io.Writer, v Viewer, d domain.Doctor) error {
	return r.execute(w, "doctor_card", cardView(v, d))
}

// DoctorList renders every card. An empty filtered list shows the no-match message.
func (r *Renderer) DoctorList(w io.Writer, v Viewer, doctors []domain.Doctor, filtered bool) error {
	return r.execute(w, "doctor_list", listView(v, doctors, filtered))
}

func (r *Renderer) PatientRow(w io.Writer, p domain.Patient, a domain.Appointment) error {
	return r.execute(w, "patient_row", rowView(p, a))
}

// AppointmentRows renders the appointment table body for date.
func (r *Renderer) AppointmentRows(w io.Writer, date string, appts []domain.Appointment) error {
	return r.execute(w, "appointment_rows", rowsView(date, appts))
}

type bookingView struct {
	Doctor  domain.Doctor
	Patient domain.Patient
	MinDate string
}

// Booking renders the booking overlay for a doctor and the logged-in patient.
func (r *Renderer) Booking(w io.Writer, d domain.Doctor, p domain.Patient, minDate string) error {
	return r.execute(w, "booking", bookingView{Doctor: d, Patient: p, MinDate: minDate})
}

type prescriptionView struct {
	AppointmentID int64
	PatientName   string
}

func (r *Renderer) PrescriptionForm(w io.Writer, appointmentID int64, patientName string) error {
	return r.execute(w, "prescription_form", prescriptionView{AppointmentID: appointmentID, PatientName: patientName})
}

func (r *Renderer) IndexPage(w io.Writer, sess *domain.Session) error {
	return r.execute(w, "index", baseFor("Clinic Portal", sess))
}

type directoryPage struct {
	Base
	List         ListView
	SearchURL    string
	CanAddDoctor bool
}

// AdminPage renders the admin dashboard with every doctor card and the add-doctor form.
func (r *Renderer) AdminPage(w io.Writer, sess *domain.Session, doctors []domain.Doctor) error {
	return r.execute(w, "directory", directoryPage{
		Base:         baseFor("Admin Dashboard", sess),
		List:         listView(ViewerFor(sess), doctors, false),
		SearchURL:    "/admin/doctors",
		CanAddDoctor: true,
	})
}

// DirectoryPage renders the public and patient doctor listing.
func (r *Renderer) DirectoryPage(w io.Writer, sess *domain.Session, doctors []domain.Doctor) error {
	return r.execute(w, "directory", directoryPage{
		Base:      baseFor("Our Doctors", sess),
		List:      listView(ViewerFor(sess), doctors, false),
		SearchURL: "/doctors/search",
	})
}

type schedulePage struct {
	Base
	Date        string
	PatientName string
	Rows        RowsView
}

func (r *Renderer) DoctorPage(w io.Writer, sess *domain.Session, date, patientName string, appts []domain.Appointment) error {
	return r.execute(w, "doctor", schedulePage{
		Base:        baseFor("Doctor Dashboard", sess),
		Date:        date,
		PatientName: patientName,
		Rows:        rowsView(date, appts),
	})
}
