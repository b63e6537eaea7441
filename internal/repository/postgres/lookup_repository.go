package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository"
	"github.com/jmoiron/sqlx"
)

// lookupRepository serves one of the small reference tables. The table name
// is interpolated into the queries, so it is restricted to a fixed set.
type lookupRepository struct {
	db    *sqlx.DB
	table string
}

func NewLookupRepository(db *sqlx.DB, table string) repository.LookupRepository {
	switch table {
	case domain.TableGenders, domain.TablePronouns, domain.TableInterests:
	default:
		panic(fmt.Sprintf("unknown lookup table %q", table))
	}
	return &lookupRepository{db: db, table: table}
}

func (r *lookupRepository) List(ctx context.Context) ([]domain.LookupRow, error) {
	var rows []domain.LookupRow
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name`, r.table)
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository) GetByID(ctx context.Context, id int) (*domain.LookupRow, error) {
	var row domain.LookupRow
	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, r.table)
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLookupNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *lookupRepository) GetByName(ctx context.Context, name string) (*domain.LookupRow, error) {
	var row domain.LookupRow
	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE name = $1`, r.table)
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLookupNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *lookupRepository) Create(ctx context.Context, name string) (*domain.LookupRow, error) {
	row := domain.LookupRow{Name: name}
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, r.table)
	err := ext(ctx, r.db).QueryRowxContext(ctx, query, name).Scan(&row.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}
	return &row, nil
}
