package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

// AdminHandler serves the admin dashboard: the doctor list, search, add and delete.
type AdminHandler struct {
	doctors ports.DoctorDirectory
	view    *render.Renderer
}

func NewAdminHandler(doctors ports.DoctorDirectory, view *render.Renderer) *AdminHandler {
	return &AdminHandler{doctors: doctors, view: view}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	doctors := h.doctors.List(r.Context())
	page(w, "admin", func() error { return h.view.AdminPage(w, sess, doctors) })
}

// SearchDoctors returns the filtered card list fragment.
func (h *AdminHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	q := r.URL.Query()
	doctors := h.doctors.Filter(r.Context(), q.Get("name"), q.Get("time"), q.Get("specialty"))
	page(w, "doctor_list", func() error {
		return h.view.DoctorList(w, render.ViewerFor(sess), doctors, true)
	})
}

func (h *AdminHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeAlert(w, h.view, http.StatusBadRequest, domain.Failure("Failed to add doctor."))
		return
	}

	doctor := domain.Doctor{
		Name:           r.PostFormValue("name"),
		Email:          r.PostFormValue("email"),
		Phone:          r.PostFormValue("phone"),
		Password:       r.PostFormValue("password"),
		Specialty:      r.PostFormValue("specialty"),
		AvailableTimes: domain.ParseTimes(r.PostFormValue("availableTimes")),
	}

	res := h.doctors.Add(r.Context(), middleware.SessionFrom(r.Context()), doctor)
	refreshOnSuccess(w, res)
	writeAlert(w, h.view, http.StatusOK, res)
}

// DeleteDoctor answers the card's hx-delete. Success is an empty 200 body, so
// the outerHTML swap removes the card; failure cancels the swap.
func (h *AdminHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		h.deleteFailed(w, domain.Failure("Failed to delete doctor."))
		return
	}

	res := h.doctors.Delete(r.Context(), middleware.SessionFrom(r.Context()), id)
	if !res.Success {
		h.deleteFailed(w, res)
		return
	}

	trigger(w, map[string]string{EventShowMessage: res.Message})
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) deleteFailed(w http.ResponseWriter, res domain.Result) {
	w.Header().Set(HeaderReswap, "none")
	trigger(w, map[string]string{EventShowMessage: res.Message})
	writeAlert(w, h.view, http.StatusOK, res)
}
