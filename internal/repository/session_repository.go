package repository

import (
	"context"

	"github.com/chaosdating/chaos-dating/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
