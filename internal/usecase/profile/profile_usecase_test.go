package profile

import (
	"context"
	"testing"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfile(t *testing.T) (*ProfileUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := NewProfileUseCase(
		store.Profiles(),
		store.Wishes(),
		store.Lookup(domain.TableGenders),
		store.Lookup(domain.TablePronouns),
		store.Transactor(),
	)
	return uc, store
}

func seedProfile(t *testing.T, store *memory.Store, username string, age int) *domain.Profile {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, store.Users().Create(ctx, user))
	profile := &domain.Profile{UserID: user.ID, Age: age}
	require.NoError(t, store.Profiles().Create(ctx, profile))
	return profile
}

func TestUpdateProfile_ResolvesExistingID(t *testing.T) {
	uc, store := newTestProfile(t)
	ctx := context.Background()

	womanID := store.AddLookup(domain.TableGenders, "Woman")
	profile := seedProfile(t, store, "alice", 28)

	updated, err := uc.UpdateProfile(ctx, profile.UserID, &EditProfileRequest{
		Age:    29,
		Gender: "1",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 29, updated.Age)
	require.NotNil(t, updated.GenderID)
	assert.Equal(t, womanID, *updated.GenderID)
}

func TestUpdateProfile_FreeTextCreatesLookupRow(t *testing.T) {
	uc, store := newTestProfile(t)
	ctx := context.Background()

	profile := seedProfile(t, store, "alice", 28)

	updated, err := uc.UpdateProfile(ctx, profile.UserID, &EditProfileRequest{
		Age:     28,
		Pronoun: "xe/xem",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.PronounID)

	row, err := store.Lookup(domain.TablePronouns).GetByName(ctx, "xe/xem")
	require.NoError(t, err)
	assert.Equal(t, row.ID, *updated.PronounID)
}

func TestUpdateProfile_FreeTextAdoptsExistingRow(t *testing.T) {
	uc, store := newTestProfile(t)
	ctx := context.Background()

	womanID := store.AddLookup(domain.TableGenders, "Woman")
	profile := seedProfile(t, store, "alice", 28)

	// the name already exists, so the duplicate resolves to the same row
	updated, err := uc.UpdateProfile(ctx, profile.UserID, &EditProfileRequest{
		Age:    28,
		Gender: "Woman",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.GenderID)
	assert.Equal(t, womanID, *updated.GenderID)

	rows, err := store.Lookup(domain.TableGenders).List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpdateProfile_UnknownNumericID(t *testing.T) {
	uc, store := newTestProfile(t)
	profile := seedProfile(t, store, "alice", 28)

	_, err := uc.UpdateProfile(context.Background(), profile.UserID, &EditProfileRequest{
		Age:    28,
		Gender: "999",
	}, nil)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "gender", fieldErr.Field)
	assert.ErrorIs(t, err, domain.ErrLookupNotFound)
}

func TestUpdateProfile_UnknownWish(t *testing.T) {
	uc, store := newTestProfile(t)
	profile := seedProfile(t, store, "alice", 28)

	_, err := uc.UpdateProfile(context.Background(), profile.UserID, &EditProfileRequest{
		Age:     28,
		WishIDs: []int{404},
	}, nil)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "wishes", fieldErr.Field)
}

func TestUpdateProfile_KeepsPictureWhenNoneUploaded(t *testing.T) {
	uc, store := newTestProfile(t)
	ctx := context.Background()

	profile := seedProfile(t, store, "alice", 28)
	pic := "abc.jpg"
	profile.PicturePath = &pic
	require.NoError(t, store.Profiles().Update(ctx, profile))

	updated, err := uc.UpdateProfile(ctx, profile.UserID, &EditProfileRequest{Age: 30}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.PicturePath)
	assert.Equal(t, "abc.jpg", *updated.PicturePath)

	newPic := "def.png"
	updated, err = uc.UpdateProfile(ctx, profile.UserID, &EditProfileRequest{Age: 30}, &newPic)
	require.NoError(t, err)
	require.NotNil(t, updated.PicturePath)
	assert.Equal(t, "def.png", *updated.PicturePath)
}

func TestUpdateProfile_ReplacesWishes(t *testing.T) {
	uc, store := newTestProfile(t)
	ctx := context.Background()

	hikingID := store.AddLookup(domain.TableInterests, "Hiking")
	cookingID := store.AddLookup(domain.TableInterests, "Cooking")
	wish1 := store.AddWish(hikingID, nil)
	wish2 := store.AddWish(cookingID, nil)

	profile := seedProfile(t, store, "alice", 28)
	require.NoError(t, store.Profiles().SetWishes(ctx, profile.ID, []int{wish1}))

	_, err := uc.UpdateProfile(ctx, profile.UserID, &EditProfileRequest{
		Age:     28,
		WishIDs: []int{wish2},
	}, nil)
	require.NoError(t, err)

	wishes, err := store.Profiles().GetWishes(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, wishes, 1)
	assert.Equal(t, wish2, wishes[0].ID)
}

func TestViewByUsername_NotFound(t *testing.T) {
	uc, _ := newTestProfile(t)
	_, err := uc.ViewByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
