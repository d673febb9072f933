package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

// record publishes an audit event. Publishing is best-effort and never
// changes the outcome of the flow that triggered it.
func record(ctx context.Context, pub ports.AuditPublisher, action string, sess *domain.Session, target string) {
	if pub == nil {
		return
	}

	evt := ports.AuditEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Role:       string(domain.RoleGuest),
		Target:     target,
		OccurredAt: time.Now().UTC(),
	}
	if sess != nil {
		evt.Role = string(sess.Role)
		evt.Subject = sess.Subject
	}

	if err := pub.Publish(ctx, evt); err != nil {
		log.Printf("audit: failed to publish %s: %v", action, err)
	}
}
