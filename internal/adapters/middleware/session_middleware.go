package middleware

import (
	"context"
	"log"
	"net/http"
	"slices"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/session"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

// SessionResolver loads a stored session by id.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*domain.Session, error)
}

type SessionMiddleware struct {
	codec    *session.CookieCodec
	resolver SessionResolver
}

func NewSessionMiddleware(codec *session.CookieCodec, resolver SessionResolver) *SessionMiddleware {
	return &SessionMiddleware{
		codec:    codec,
		resolver: resolver,
	}
}

type contextKey string

const SessionKey contextKey = "session"

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// SessionFrom returns the request's session, or a guest session if none was loaded.
func SessionFrom(ctx context.Context) *domain.Session {
	if sess, ok := ctx.Value(SessionKey).(*domain.Session); ok && sess != nil {
		return sess
	}
	return domain.GuestSession()
}

// LoadSession resolves the session cookie into the request context. Missing,
// forged or expired cookies and store failures all leave the request as a guest.
func (m *SessionMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.resolve(r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func (m *SessionMiddleware) resolve(r *http.Request) *domain.Session {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return domain.GuestSession()
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		log.Printf("session: rejected cookie: %v", err)
		return domain.GuestSession()
	}

	sess, err := m.resolver.Resolve(r.Context(), id)
	if err != nil {
		log.Printf("session: cannot resolve %s: %v", id, err)
		return domain.GuestSession()
	}
	return sess
}

// RequireRole lets through only sessions whose role is in roles. Everyone else
// is sent back to the landing page.
func (m *SessionMiddleware) RequireRole(roles []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if sess.HasToken() && slices.Contains(roles, sess.Role) {
			next(w, r)
			return
		}

		log.Printf("session: role mismatch on %s: required one of %v, got %s", r.URL.Path, roles, sess.Role)
		Redirect(w, r, "/")
	}
}

// Redirect sends an HTMX client to url with HX-Redirect and everyone else with a 303.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
