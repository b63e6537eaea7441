package repository

import (
	"context"

	"github.com/chaosdating/chaos-dating/internal/domain"
)

type WishRepository interface {
	List(ctx context.Context) ([]domain.Wish, error)
	GetByIDs(ctx context.Context, ids []int) ([]domain.Wish, error)
}
