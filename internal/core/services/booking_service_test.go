package services_test

import (
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/services"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/test/mocks"
)

type bookingFixture struct {
	svc      *services.BookingService
	doctors  *mocks.MockDoctorAPI
	patients *mocks.MockPatientAPI
	appts    *mocks.MockAppointmentAPI
	pub      *mocks.MockAuditPublisher
}

func newBookingFixture() bookingFixture {
	f := bookingFixture{
		doctors:  mocks.NewMockDoctorAPI(mocks.CreateTestDoctor(1, "Dr. Smit"), mocks.CreateTestDoctor(2, "Dr. Visser")),
		patients: mocks.NewMockPatientAPI(domain.Patient{ID: 7, Name: "Eva", Email: "eva@mail.test", Phone: "0611111111"}),
		appts:    mocks.NewMockAppointmentAPI(),
		pub:      mocks.NewMockAuditPublisher(),
	}
	f.svc = services.NewBookingService(f.doctors, f.patients, f.appts, f.pub)
	return f
}

func TestBooking_MissingTokenShortCircuits(t *testing.T) {
	f := newBookingFixture()

	_, _, prep := f.svc.Prepare(t.Context(), domain.GuestSession(), 1)
	book := f.svc.Book(t.Context(), nil, 1, "2026-10-20", "09:00")

	for _, res := range []domain.Result{prep, book} {
		if res.Success || res.Message != services.MsgLoginToBook {
			t.Errorf("expected login prompt, got %+v", res)
		}
	}
	if f.doctors.CallCount()+f.patients.CallCount()+f.appts.CallCount() != 0 {
		t.Error("expected zero API calls without a token")
	}
}

func TestBooking_Prepare(t *testing.T) {
	f := newBookingFixture()
	sess := mocks.CreateTestSession(domain.RolePatient, "pat-token")

	doctor, patient, res := f.svc.Prepare(t.Context(), sess, 2)

	if !res.Success || doctor.Name != "Dr. Visser" || patient.Name != "Eva" {
		t.Errorf("unexpected %+v %+v %+v", doctor, patient, res)
	}
	if f.patients.DetailsCalls[0] != "pat-token" {
		t.Errorf("expected patient token, got %v", f.patients.DetailsCalls)
	}
}

func TestBooking_PrepareFailures(t *testing.T) {
	sess := mocks.CreateTestSession(domain.RolePatient, "pat-token")

	f := newBookingFixture()
	f.patients.Fail = true
	if _, _, res := f.svc.Prepare(t.Context(), sess, 1); res.Message != services.MsgBookingFailed {
		t.Errorf("expected booking failed on patient lookup, got %+v", res)
	}

	f = newBookingFixture()
	if _, _, res := f.svc.Prepare(t.Context(), sess, 99); res.Message != services.MsgBookingFailed {
		t.Errorf("expected booking failed for unknown doctor, got %+v", res)
	}
}

func TestBooking_Book(t *testing.T) {
	f := newBookingFixture()
	sess := mocks.CreateTestSession(domain.RolePatient, "pat-token")

	res := f.svc.Book(t.Context(), sess, 2, "2026-10-20", "09:00")

	if !res.Success || res.Message != services.MsgBooked {
		t.Fatalf("unexpected result %+v", res)
	}
	appt := f.appts.BookCalls[0]
	if appt.AppointmentTime != "2026-10-20T09:00:00" || appt.DoctorID != 2 || appt.PatientID != 7 {
		t.Errorf("unexpected appointment %+v", appt)
	}
	if f.appts.BookTokens[0] != "pat-token" {
		t.Errorf("expected patient token, got %q", f.appts.BookTokens[0])
	}
	if actions := f.pub.Actions(); len(actions) != 1 || actions[0] != ports.AuditAppointmentBooked {
		t.Errorf("unexpected audit actions %v", actions)
	}
}

func TestBooking_BookIncompleteSlot(t *testing.T) {
	f := newBookingFixture()
	sess := mocks.CreateTestSession(domain.RolePatient, "pat-token")

	res := f.svc.Book(t.Context(), sess, 2, "2026-10-20", " ")
	if res.Success || res.Message != services.MsgSlotIncomplete {
		t.Errorf("unexpected result %+v", res)
	}
	if f.appts.CallCount() != 0 {
		t.Error("expected no booking call")
	}
}

func TestBooking_BookRejected(t *testing.T) {
	f := newBookingFixture()
	f.appts.BookResult = &domain.Result{Success: false, Message: "Slot already taken"}
	sess := mocks.CreateTestSession(domain.RolePatient, "pat-token")

	res := f.svc.Book(t.Context(), sess, 2, "2026-10-20", "09:00")
	if res.Success || res.Message != "Slot already taken" {
		t.Errorf("expected backend message, got %+v", res)
	}
	if f.pub.GetPublishCount() != 0 {
		t.Error("expected no audit event")
	}
}
