// Package mocks provides mock implementations of port interfaces for testing.
// Services depend on the ports; tests inject these in place of the HTTP clients.
package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

// DeleteCall records one MockDoctorAPI.Delete invocation.
type DeleteCall struct {
	ID    int64
	Token string
}

// FilterCall records one MockDoctorAPI.Filter invocation.
type FilterCall struct {
	Name      string
	Time      string
	Specialty string
}

// MockDoctorAPI implements ports.DoctorAPI over a fixed doctor list.
type MockDoctorAPI struct {
	mu sync.RWMutex

	Doctors  []domain.Doctor
	Filtered []domain.Doctor

	// Canned results; zero value means success.
	SaveResult   *domain.Result
	DeleteResult *domain.Result

	ListCalls   int
	FilterCalls []FilterCall
	SaveCalls   []domain.Doctor
	SaveTokens  []string
	DeleteCalls []DeleteCall
}

var _ ports.DoctorAPI = (*MockDoctorAPI)(nil)

func NewMockDoctorAPI(doctors ...domain.Doctor) *MockDoctorAPI {
	return &MockDoctorAPI{Doctors: doctors}
}

func (m *MockDoctorAPI) List(ctx context.Context) []domain.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	return append([]domain.Doctor{}, m.Doctors...)
}

func (m *MockDoctorAPI) Filter(ctx context.Context, name, time, specialty string) []domain.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FilterCalls = append(m.FilterCalls, FilterCall{Name: name, Time: time, Specialty: specialty})
	if m.Filtered != nil {
		return append([]domain.Doctor{}, m.Filtered...)
	}
	return append([]domain.Doctor{}, m.Doctors...)
}

func (m *MockDoctorAPI) Save(ctx context.Context, doctor domain.Doctor, token string) domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, doctor)
	m.SaveTokens = append(m.SaveTokens, token)
	if m.SaveResult != nil {
		return *m.SaveResult
	}
	return domain.Result{Success: true, Message: "Doctor added successfully."}
}

func (m *MockDoctorAPI) Delete(ctx context.Context, id int64, token string) domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{ID: id, Token: token})
	if m.DeleteResult != nil {
		return *m.DeleteResult
	}
	return domain.Result{Success: true, Message: "Doctor deleted successfully."}
}

// CallCount is the total number of backend calls made through the mock.
func (m *MockDoctorAPI) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ListCalls + len(m.FilterCalls) + len(m.SaveCalls) + len(m.DeleteCalls)
}

// ListCall records one MockAppointmentAPI.List invocation.
type ListCall struct {
	Date        string
	PatientName string
	Token       string
}

// MockAppointmentAPI implements ports.AppointmentAPI.
type MockAppointmentAPI struct {
	mu sync.RWMutex

	Appointments []domain.Appointment
	BookResult   *domain.Result

	ListCalls  []ListCall
	BookCalls  []domain.Appointment
	BookTokens []string
}

var _ ports.AppointmentAPI = (*MockAppointmentAPI)(nil)

func NewMockAppointmentAPI(appointments ...domain.Appointment) *MockAppointmentAPI {
	return &MockAppointmentAPI{Appointments: appointments}
}

func (m *MockAppointmentAPI) List(ctx context.Context, date, patientName, token string) []domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls = append(m.ListCalls, ListCall{Date: date, PatientName: patientName, Token: token})
	return append([]domain.Appointment{}, m.Appointments...)
}

func (m *MockAppointmentAPI) Book(ctx context.Context, appt domain.Appointment, token string) domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BookCalls = append(m.BookCalls, appt)
	m.BookTokens = append(m.BookTokens, token)
	if m.BookResult != nil {
		return *m.BookResult
	}
	return domain.Result{Success: true, Message: "Appointment booked successfully!"}
}

func (m *MockAppointmentAPI) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ListCalls) + len(m.BookCalls)
}

// MockPatientAPI implements ports.PatientAPI.
type MockPatientAPI struct {
	mu sync.RWMutex

	Patient domain.Patient
	Fail    bool

	DetailsCalls []string
}

var _ ports.PatientAPI = (*MockPatientAPI)(nil)

func NewMockPatientAPI(patient domain.Patient) *MockPatientAPI {
	return &MockPatientAPI{Patient: patient}
}

func (m *MockPatientAPI) Details(ctx context.Context, token string) (domain.Patient, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DetailsCalls = append(m.DetailsCalls, token)
	if m.Fail {
		return domain.Patient{}, false
	}
	return m.Patient, true
}

func (m *MockPatientAPI) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.DetailsCalls)
}

// MockPrescriptionAPI implements ports.PrescriptionAPI.
type MockPrescriptionAPI struct {
	mu sync.RWMutex

	SaveResult *domain.Result
	SaveCalls  []domain.Prescription
}

var _ ports.PrescriptionAPI = (*MockPrescriptionAPI)(nil)

func NewMockPrescriptionAPI() *MockPrescriptionAPI {
	return &MockPrescriptionAPI{}
}

func (m *MockPrescriptionAPI) Save(ctx context.Context, p domain.Prescription, token string) domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, p)
	if m.SaveResult != nil {
		return *m.SaveResult
	}
	return domain.Result{Success: true, Message: "Prescription saved successfully."}
}

func (m *MockPrescriptionAPI) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.SaveCalls)
}

// MockAuthAPI implements ports.AuthAPI. Credentials map subject -> password;
// a matching login returns Token.
type MockAuthAPI struct {
	mu sync.RWMutex

	Credentials map[string]string
	Token       string

	Calls []string
}

var _ ports.AuthAPI = (*MockAuthAPI)(nil)

func NewMockAuthAPI(token string) *MockAuthAPI {
	return &MockAuthAPI{Credentials: make(map[string]string), Token: token}
}

func (m *MockAuthAPI) AdminLogin(ctx context.Context, username, password string) (string, bool) {
	return m.login("admin", username, password)
}

func (m *MockAuthAPI) DoctorLogin(ctx context.Context, email, password string) (string, bool) {
	return m.login("doctor", email, password)
}

func (m *MockAuthAPI) PatientLogin(ctx context.Context, email, password string) (string, bool) {
	return m.login("patient", email, password)
}

func (m *MockAuthAPI) login(kind, subject, password string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, kind+":"+subject)
	if pw, ok := m.Credentials[subject]; ok && pw == password {
		return m.Token, true
	}
	return "", false
}
