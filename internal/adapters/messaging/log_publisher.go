package messaging

import (
	"context"
	"log"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

// LogPublisher writes audit events to the process log. It stands in for
// RabbitMQ when no broker is configured or reachable.
type LogPublisher struct{}

var _ ports.AuditPublisher = LogPublisher{}

func (LogPublisher) Publish(ctx context.Context, evt ports.AuditEvent) error {
	target := evt.Target
	if target == "" {
		target = "-"
	}
	log.Printf("audit: %s role=%s subject=%s target=%s id=%s", evt.Action, evt.Role, evt.Subject, target, evt.ID)
	return nil
}
