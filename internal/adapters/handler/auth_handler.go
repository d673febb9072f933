package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/session"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const (
	MsgInvalidAdmin   = "Invalid admin credentials."
	MsgInvalidDoctor  = "Invalid doctor credentials."
	MsgInvalidPatient = "Invalid patient credentials."
	MsgLoginError     = "An error occurred during login. Please try again."
	MsgTooManyLogins  = "Too many login attempts. Please wait a moment and try again."
)

type AuthHandler struct {
	authService ports.AuthService
	codec       *session.CookieCodec
	view        *render.Renderer
}

func NewAuthHandler(auth ports.AuthService, codec *session.CookieCodec, view *render.Renderer) *AuthHandler {
	return &AuthHandler{authService: auth, codec: codec, view: view}
}

// Index shows the role selector. Logged-in users go straight to their dashboard.
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	if sess.HasToken() {
		middleware.Redirect(w, r, sess.Role.DashboardPath())
		return
	}
	page(w, "index", func() error { return h.view.IndexPage(w, sess) })
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RoleAdmin, "username", MsgInvalidAdmin)
}

func (h *AuthHandler) DoctorLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RoleDoctor, "email", MsgInvalidDoctor)
}

func (h *AuthHandler) PatientLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RolePatient, "email", MsgInvalidPatient)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role domain.Role, subjectField, invalidMsg string) {
	if err := r.ParseForm(); err != nil {
		writeAlert(w, h.view, http.StatusBadRequest, domain.Failure(invalidMsg))
		return
	}

	sess, err := h.authService.Login(r.Context(), role, r.PostFormValue(subjectField), r.PostFormValue("password"))
	if errors.Is(err, domain.ErrInvalidCredentials) {
		writeAlert(w, h.view, http.StatusOK, domain.Failure(invalidMsg))
		return
	}
	if err != nil {
		log.Printf("%s login error: %v", role, err)
		writeAlert(w, h.view, http.StatusOK, domain.Failure(MsgLoginError))
		return
	}

	value, err := h.codec.Encode(sess.ID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		log.Printf("%s login error: %v", role, err)
		writeAlert(w, h.view, http.StatusOK, domain.Failure(MsgLoginError))
		return
	}

	http.SetCookie(w, h.codec.Cookie(value, sess.ExpiresAt))
	middleware.Redirect(w, r, role.DashboardPath())
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	if err := h.authService.Logout(r.Context(), sess); err != nil {
		log.Printf("Logout error: %v", err)
	}
	http.SetCookie(w, h.codec.Expired())
	middleware.Redirect(w, r, "/")
}

// TooManyAttempts answers login posts rejected by the rate limiter.
func (h *AuthHandler) TooManyAttempts(w http.ResponseWriter, r *http.Request) {
	trigger(w, map[string]string{EventShowMessage: MsgTooManyLogins})
	writeAlert(w, h.view, http.StatusTooManyRequests, domain.Failure(MsgTooManyLogins))
}
