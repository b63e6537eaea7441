package repository

import (
	"context"

	"github.com/chaosdating/chaos-dating/internal/domain"
)

// LookupRepository manages one name-keyed reference table (genders,
// pronouns or interests). Create returns domain.ErrDuplicateName when the
// uniqueness constraint rejects the row, so callers can fall back to the
// row that won the race.
type LookupRepository interface {
	List(ctx context.Context) ([]domain.LookupRow, error)
	GetByID(ctx context.Context, id int) (*domain.LookupRow, error)
	GetByName(ctx context.Context, name string) (*domain.LookupRow, error)
	Create(ctx context.Context, name string) (*domain.LookupRow, error)
}
