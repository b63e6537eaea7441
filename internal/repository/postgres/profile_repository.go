package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, age, gender_id, pronoun_id, picture_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := ext(ctx, r.db).QueryRowxContext(
		ctx, query,
		profile.UserID, profile.Age, profile.GenderID, profile.PronounID, profile.PicturePath,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, age, gender_id, pronoun_id, picture_path, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

const profileViewSelect = `
	SELECT p.id, p.user_id, p.age, p.gender_id, p.pronoun_id, p.picture_path,
	       p.created_at, p.updated_at,
	       u.username, g.name AS gender_name, pr.name AS pronoun_name
	FROM profiles p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN genders g ON g.id = p.gender_id
	LEFT JOIN pronouns pr ON pr.id = p.pronoun_id
`

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*domain.ProfileView, error) {
	var view domain.ProfileView
	query := profileViewSelect + ` WHERE u.username = $1`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &view, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &view, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET age = $1, gender_id = $2, pronoun_id = $3, picture_path = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at
	`
	err := ext(ctx, r.db).QueryRowxContext(
		ctx, query,
		profile.Age, profile.GenderID, profile.PronounID, profile.PicturePath, profile.ID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (r *profileRepository) SetWishes(ctx context.Context, profileID int, wishIDs []int) error {
	e := ext(ctx, r.db)
	if _, err := e.ExecContext(ctx, `DELETE FROM profile_wishes WHERE profile_id = $1`, profileID); err != nil {
		return err
	}
	if len(wishIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO profile_wishes (profile_id, wish_id)
		SELECT $1, unnest($2::int[])
	`
	if _, err := e.ExecContext(ctx, query, profileID, pq.Array(wishIDs)); err != nil {
		return err
	}
	return nil
}

func (r *profileRepository) GetWishes(ctx context.Context, profileID int) ([]domain.Wish, error) {
	var wishes []domain.Wish
	query := `
		SELECT w.id, w.interest_id, w.gender_id,
		       i.name AS interest, g.name AS gender
		FROM profile_wishes pw
		JOIN wishes w ON w.id = pw.wish_id
		JOIN interests i ON i.id = w.interest_id
		LEFT JOIN genders g ON g.id = w.gender_id
		WHERE pw.profile_id = $1
		ORDER BY w.id
	`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &wishes, query, profileID); err != nil {
		return nil, err
	}
	return wishes, nil
}

// Search returns the profiles matching filter. Criteria compose with AND;
// absent criteria do not narrow. Explicit ordering applies only when the
// filter carries both a sort field and a direction.
func (r *profileRepository) Search(ctx context.Context, filter domain.ProfileFilter) ([]*domain.ProfileView, error) {
	query := profileViewSelect + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if len(filter.GenderIDs) > 0 {
		query += fmt.Sprintf(" AND p.gender_id = ANY($%d)", argCount)
		args = append(args, pq.Array(filter.GenderIDs))
		argCount++
	}

	if len(filter.WishIDs) > 0 {
		query += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM profile_wishes pw WHERE pw.profile_id = p.id AND pw.wish_id = ANY($%d))",
			argCount,
		)
		args = append(args, pq.Array(filter.WishIDs))
		argCount++
	}

	if filter.MinAge != nil {
		query += fmt.Sprintf(" AND p.age >= $%d", argCount)
		args = append(args, *filter.MinAge)
		argCount++
	}

	if filter.MaxAge != nil {
		query += fmt.Sprintf(" AND p.age <= $%d", argCount)
		args = append(args, *filter.MaxAge)
		argCount++
	}

	query += orderClause(filter)

	var views []*domain.ProfileView
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &views, query, args...); err != nil {
		return nil, err
	}
	return views, nil
}

// orderClause maps the filter's sort request onto a safe ORDER BY. Sort
// values arrive from user input, so anything unrecognized falls back to the
// default primary-key order.
func orderClause(filter domain.ProfileFilter) string {
	if !filter.Ordered() {
		return " ORDER BY p.id"
	}

	var column string
	switch filter.SortField {
	case domain.SortByUsername:
		column = "u.username"
	case domain.SortByAge:
		column = "p.age"
	default:
		return " ORDER BY p.id"
	}

	switch filter.SortDir {
	case domain.SortAscending:
		return fmt.Sprintf(" ORDER BY %s ASC", column)
	case domain.SortDescending:
		return fmt.Sprintf(" ORDER BY %s DESC", column)
	default:
		return " ORDER BY p.id"
	}
}
