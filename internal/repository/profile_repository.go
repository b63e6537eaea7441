package repository

import (
	"context"

	"github.com/chaosdating/chaos-dating/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.ProfileView, error)
	Update(ctx context.Context, profile *domain.Profile) error
	SetWishes(ctx context.Context, profileID int, wishIDs []int) error
	GetWishes(ctx context.Context, profileID int) ([]domain.Wish, error)
	Search(ctx context.Context, filter domain.ProfileFilter) ([]*domain.ProfileView, error)
}
