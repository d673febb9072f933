package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

type AuthService struct {
	auth  ports.AuthAPI
	store ports.SessionStore
	audit ports.AuditPublisher
	ttl   time.Duration
	now   func() time.Time
}

func NewAuthService(auth ports.AuthAPI, store ports.SessionStore, audit ports.AuditPublisher, ttl time.Duration) *AuthService {
	return &AuthService{
		auth:  auth,
		store: store,
		audit: audit,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Login exchanges credentials for a backend token and stores a new session
// for it. subject is the admin username or the doctor/patient email.
func (s *AuthService) Login(ctx context.Context, role domain.Role, subject, password string) (*domain.Session, error) {
	subject = strings.TrimSpace(subject)
	password = strings.TrimSpace(password)

	var (
		token string
		ok    bool
	)
	switch role {
	case domain.RoleAdmin:
		token, ok = s.auth.AdminLogin(ctx, subject, password)
	case domain.RoleDoctor:
		token, ok = s.auth.DoctorLogin(ctx, subject, password)
	case domain.RolePatient:
		token, ok = s.auth.PatientLogin(ctx, subject, password)
	default:
		return nil, domain.ErrUnsupportedRole
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Role:      role,
		Subject:   subject,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	record(ctx, s.audit, ports.AuditLogin, sess, "")
	return sess, nil
}

// Logout removes the stored session. Guests have nothing to remove.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if sess == nil || sess.ID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	record(ctx, s.audit, ports.AuditLogout, sess, "")
	return nil
}

// Resolve loads a session by id. Missing and expired sessions are errors.
func (s *AuthService) Resolve(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("session %s expired", id)
	}
	return sess, nil
}
