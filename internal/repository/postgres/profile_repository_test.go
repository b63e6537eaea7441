package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileViewRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "age", "gender_id", "pronoun_id", "picture_path",
		"created_at", "updated_at", "username", "gender_name", "pronoun_name",
	})
}

func TestProfileRepository_Search_DefaultOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(`WHERE 1=1 ORDER BY p\.id$`).
		WillReturnRows(profileViewRows().
			AddRow(1, 1, 28, nil, nil, nil, now, now, "alice", nil, nil).
			AddRow(2, 2, 31, nil, nil, nil, now, now, "bob", nil, nil))

	views, err := repo.Search(context.Background(), domain.ProfileFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Username)
	assert.Equal(t, "bob", views[1].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Search_Ordered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`ORDER BY u\.username DESC$`).
		WillReturnRows(profileViewRows())

	_, err := repo.Search(context.Background(), domain.ProfileFilter{
		SortField: domain.SortByUsername,
		SortDir:   domain.SortDescending,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Search_SortFieldAloneIsIgnored(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`ORDER BY p\.id$`).
		WillReturnRows(profileViewRows())

	_, err := repo.Search(context.Background(), domain.ProfileFilter{
		SortField: domain.SortByAge,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Search_ComposesCriteria(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	minAge, maxAge := 25, 35
	mock.ExpectQuery(`AND p\.gender_id = ANY\(\$1\) AND EXISTS .* pw\.wish_id = ANY\(\$2\)\) AND p\.age >= \$3 AND p\.age <= \$4 ORDER BY p\.age ASC$`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), minAge, maxAge).
		WillReturnRows(profileViewRows())

	_, err := repo.Search(context.Background(), domain.ProfileFilter{
		GenderIDs: []int{1, 2},
		WishIDs:   []int{3},
		MinAge:    &minAge,
		MaxAge:    &maxAge,
		SortField: domain.SortByAge,
		SortDir:   domain.SortAscending,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`WHERE u\.username = \$1`).
		WithArgs("nobody").
		WillReturnRows(profileViewRows())

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_SetWishes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`DELETE FROM profile_wishes WHERE profile_id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO profile_wishes`).
		WithArgs(5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.SetWishes(context.Background(), 5, []int{1, 2, 3}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_SetWishes_EmptyOnlyClears(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`DELETE FROM profile_wishes WHERE profile_id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.SetWishes(context.Background(), 5, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
