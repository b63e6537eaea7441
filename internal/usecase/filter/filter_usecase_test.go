package filter

import (
	"context"
	"testing"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(t *testing.T) (*FilterUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewFilterUseCase(store.Profiles()), store
}

func seedProfile(t *testing.T, store *memory.Store, username string, age int, genderID *int) *domain.Profile {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, store.Users().Create(ctx, user))
	profile := &domain.Profile{UserID: user.ID, Age: age, GenderID: genderID}
	require.NoError(t, store.Profiles().Create(ctx, profile))
	return profile
}

func usernames(views []*domain.ProfileView) []string {
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Username
	}
	return names
}

func TestSearch_NoCriteriaReturnsAllInDefaultOrder(t *testing.T) {
	uc, store := newTestFilter(t)

	seedProfile(t, store, "carol", 41, nil)
	seedProfile(t, store, "alice", 28, nil)
	seedProfile(t, store, "bob", 33, nil)

	views, err := uc.Search(context.Background(), &FilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "alice", "bob"}, usernames(views))
}

func TestSearch_OrderedByUsername(t *testing.T) {
	uc, store := newTestFilter(t)

	seedProfile(t, store, "carol", 41, nil)
	seedProfile(t, store, "alice", 28, nil)
	seedProfile(t, store, "bob", 33, nil)

	views, err := uc.Search(context.Background(), &FilterRequest{
		SortBy:  domain.SortByUsername,
		SortDir: domain.SortAscending,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, usernames(views))
}

func TestSearch_OrderedByAgeDescending(t *testing.T) {
	uc, store := newTestFilter(t)

	seedProfile(t, store, "carol", 41, nil)
	seedProfile(t, store, "alice", 28, nil)
	seedProfile(t, store, "bob", 33, nil)

	views, err := uc.Search(context.Background(), &FilterRequest{
		SortBy:  domain.SortByAge,
		SortDir: domain.SortDescending,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "bob", "alice"}, usernames(views))
}

func TestSearch_SortFieldWithoutDirectionKeepsDefaultOrder(t *testing.T) {
	uc, store := newTestFilter(t)

	seedProfile(t, store, "carol", 41, nil)
	seedProfile(t, store, "alice", 28, nil)

	views, err := uc.Search(context.Background(), &FilterRequest{SortBy: domain.SortByAge})
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "alice"}, usernames(views))
}

func TestSearch_AgeBounds(t *testing.T) {
	uc, store := newTestFilter(t)

	seedProfile(t, store, "carol", 41, nil)
	seedProfile(t, store, "alice", 28, nil)
	seedProfile(t, store, "bob", 33, nil)

	min, max := 30, 40
	views, err := uc.Search(context.Background(), &FilterRequest{MinAge: &min, MaxAge: &max})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, usernames(views))
}

func TestSearch_ZeroAgeBoundsMeanUnbounded(t *testing.T) {
	uc, store := newTestFilter(t)

	seedProfile(t, store, "alice", 28, nil)
	seedProfile(t, store, "bob", 33, nil)

	// empty form inputs bind as zero and must not narrow anything
	zero := 0
	views, err := uc.Search(context.Background(), &FilterRequest{MinAge: &zero, MaxAge: &zero})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestSearch_ByGenderAndWish(t *testing.T) {
	uc, store := newTestFilter(t)
	ctx := context.Background()

	womanID := store.AddLookup(domain.TableGenders, "Woman")
	manID := store.AddLookup(domain.TableGenders, "Man")
	hikingID := store.AddLookup(domain.TableInterests, "Hiking")
	wishID := store.AddWish(hikingID, nil)

	alice := seedProfile(t, store, "alice", 28, &womanID)
	require.NoError(t, store.Profiles().SetWishes(ctx, alice.ID, []int{wishID}))
	seedProfile(t, store, "bob", 33, &manID)
	seedProfile(t, store, "dana", 25, &womanID)

	views, err := uc.Search(ctx, &FilterRequest{
		Genders: []int{womanID},
		Wishes:  []int{wishID},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, usernames(views))

	// wishes come attached to the result
	require.Len(t, views[0].Wishes, 1)
	assert.Equal(t, "Hiking", views[0].Wishes[0].Label())
}
