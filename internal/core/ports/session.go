package ports

import (
	"context"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
