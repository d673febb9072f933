package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/handler"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/test/mocks"
)

func TestAdminDashboard_RequiresAdmin(t *testing.T) {
	f := newFixture(t, 10)

	for _, role := range []domain.Role{domain.RoleDoctor, domain.RolePatient} {
		rec := f.serve(httptest.NewRequest(http.MethodGet, "/admin", nil), f.cookieFor(t, role))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
			t.Errorf("%s: expected redirect to /, got %d", role, rec.Code)
		}
	}

	rec := f.serve(htmx(http.MethodGet, "/admin/doctors"), nil)
	if rec.Header().Get("HX-Redirect") != "/" {
		t.Errorf("expected HX-Redirect for guest, got %v", rec.Header())
	}
	if f.doctors.CallCount() != 0 {
		t.Errorf("expected no API calls for rejected requests, got %d", f.doctors.CallCount())
	}
}

func TestAdminDashboard(t *testing.T) {
	f := newFixture(t, 10)

	rec := f.serve(httptest.NewRequest(http.MethodGet, "/admin", nil), f.cookieFor(t, domain.RoleAdmin))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	assertContains(t, body, `id="doctor-1"`, `id="doctor-2"`, `hx-delete="/admin/doctors/2"`, "Add Doctor")
}

func TestAdminSearch(t *testing.T) {
	f := newFixture(t, 10)
	cookie := f.cookieFor(t, domain.RoleAdmin)

	f.doctors.Filtered = []domain.Doctor{}
	rec := f.serve(htmx(http.MethodGet, "/admin/doctors?name=+zz+&time=PM&specialty="), cookie)

	assertContains(t, rec.Body.String(), render.NoDoctorsFound)
	if got := f.doctors.FilterCalls[0]; got != (mocks.FilterCall{Name: "zz", Time: "PM"}) {
		t.Errorf("unexpected filter call %+v", got)
	}
	if strings.Contains(rec.Body.String(), "<html") {
		t.Error("search should return a fragment, not a page")
	}
}

func TestAddDoctor(t *testing.T) {
	f := newFixture(t, 10)
	cookie := f.cookieFor(t, domain.RoleAdmin)

	rec := f.serve(form(http.MethodPost, "/admin/doctors", url.Values{
		"name":           {" Dr. Bakker "},
		"email":          {"bakker@clinic.test"},
		"phone":          {"0200000000"},
		"password":       {"secret"},
		"specialty":      {"Neurology"},
		"availableTimes": {"09:00, 13:00"},
	}), cookie)

	if rec.Header().Get(handler.HeaderRefresh) != "true" {
		t.Error("expected HX-Refresh on success")
	}
	assertContains(t, rec.Body.String(), "Doctor added successfully!", "alert-success")

	saved := f.doctors.SaveCalls[0]
	if saved.Name != "Dr. Bakker" || !reflect.DeepEqual(saved.AvailableTimes, []string{"09:00", "13:00"}) {
		t.Errorf("unexpected saved doctor %+v", saved)
	}
	if f.doctors.SaveTokens[0] != "backend-token" {
		t.Errorf("expected session token, got %q", f.doctors.SaveTokens[0])
	}
}

func TestAddDoctor_Failure(t *testing.T) {
	f := newFixture(t, 10)
	f.doctors.SaveResult = &domain.Result{Success: false, Message: "Doctor already exists"}

	rec := f.serve(form(http.MethodPost, "/admin/doctors", url.Values{"name": {"x"}}), f.cookieFor(t, domain.RoleAdmin))

	if rec.Header().Get(handler.HeaderRefresh) != "" {
		t.Error("expected no refresh on failure")
	}
	assertContains(t, rec.Body.String(), "Doctor already exists", "alert-error")
}

func TestDeleteDoctor_Success(t *testing.T) {
	f := newFixture(t, 10)

	rec := f.serve(htmx(http.MethodDelete, "/admin/doctors/2"), f.cookieFor(t, domain.RoleAdmin))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body so the card is swapped out, got %q", rec.Body.String())
	}
	if rec.Header().Get(handler.HeaderReswap) != "" {
		t.Error("success must not cancel the swap")
	}
	assertContains(t, rec.Header().Get(handler.HeaderTrigger), "Doctor deleted successfully.")
	if got := f.doctors.DeleteCalls[0]; got.ID != 2 || got.Token != "backend-token" {
		t.Errorf("unexpected delete call %+v", got)
	}
}

func TestDeleteDoctor_Failure(t *testing.T) {
	f := newFixture(t, 10)
	f.doctors.DeleteResult = &domain.Result{Success: false, Message: "Invalid token"}

	rec := f.serve(htmx(http.MethodDelete, "/admin/doctors/2"), f.cookieFor(t, domain.RoleAdmin))

	if rec.Header().Get(handler.HeaderReswap) != "none" {
		t.Errorf("expected HX-Reswap none, got %q", rec.Header().Get(handler.HeaderReswap))
	}
	assertContains(t, rec.Body.String(), "Failed to delete doctor.")
}

func TestDeleteDoctor_BadID(t *testing.T) {
	f := newFixture(t, 10)

	rec := f.serve(htmx(http.MethodDelete, "/admin/doctors/abc"), f.cookieFor(t, domain.RoleAdmin))

	if rec.Header().Get(handler.HeaderReswap) != "none" {
		t.Error("expected swap to be cancelled")
	}
	if len(f.doctors.DeleteCalls) != 0 {
		t.Error("expected no API call")
	}
}
