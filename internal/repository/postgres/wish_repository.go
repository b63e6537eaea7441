package postgres

import (
	"context"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type wishRepository struct {
	db *sqlx.DB
}

func NewWishRepository(db *sqlx.DB) repository.WishRepository {
	return &wishRepository{db: db}
}

const wishSelect = `
	SELECT w.id, w.interest_id, w.gender_id,
	       i.name AS interest, g.name AS gender
	FROM wishes w
	JOIN interests i ON i.id = w.interest_id
	LEFT JOIN genders g ON g.id = w.gender_id
`

func (r *wishRepository) List(ctx context.Context) ([]domain.Wish, error) {
	var wishes []domain.Wish
	query := wishSelect + ` ORDER BY i.name, g.name NULLS FIRST`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &wishes, query); err != nil {
		return nil, err
	}
	return wishes, nil
}

func (r *wishRepository) GetByIDs(ctx context.Context, ids []int) ([]domain.Wish, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var wishes []domain.Wish
	query := wishSelect + ` WHERE w.id = ANY($1) ORDER BY w.id`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &wishes, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	if len(wishes) != len(ids) {
		return nil, domain.ErrWishNotFound
	}
	return wishes, nil
}
