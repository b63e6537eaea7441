// Package memory provides in-memory repository implementations used by
// usecase and handler tests. Writes inside a transaction are rolled back
// by restoring a snapshot, mirroring the postgres Transactor contract.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository"
)

type Store struct {
	mu sync.Mutex

	users         map[int]domain.User
	profiles      map[int]domain.Profile
	lookups       map[string]map[int]domain.LookupRow
	wishes        map[int]domain.Wish
	profileWishes map[int][]int
	sessions      map[string]domain.Session

	nextUserID    int
	nextProfileID int
	nextWishID    int
	nextLookupID  map[string]int
}

func NewStore() *Store {
	return &Store{
		users:    map[int]domain.User{},
		profiles: map[int]domain.Profile{},
		lookups: map[string]map[int]domain.LookupRow{
			domain.TableGenders:   {},
			domain.TablePronouns:  {},
			domain.TableInterests: {},
		},
		wishes:        map[int]domain.Wish{},
		profileWishes: map[int][]int{},
		sessions:      map[string]domain.Session{},
		nextUserID:    1,
		nextProfileID: 1,
		nextWishID:    1,
		nextLookupID: map[string]int{
			domain.TableGenders:   1,
			domain.TablePronouns:  1,
			domain.TableInterests: 1,
		},
	}
}

func (s *Store) Users() repository.UserRepository       { return &userRepo{s} }
func (s *Store) Profiles() repository.ProfileRepository { return &profileRepo{s} }
func (s *Store) Wishes() repository.WishRepository      { return &wishRepo{s} }
func (s *Store) Sessions() repository.SessionRepository { return &sessionRepo{s} }
func (s *Store) Transactor() repository.Transactor      { return &transactor{s} }

func (s *Store) Lookup(table string) repository.LookupRepository {
	return &lookupRepo{store: s, table: table}
}

// AddLookup seeds a lookup row and returns its id.
func (s *Store) AddLookup(table, name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextLookupID[table]
	s.nextLookupID[table]++
	s.lookups[table][id] = domain.LookupRow{ID: id, Name: name}
	return id
}

// AddWish seeds a wish over existing interest/gender rows.
func (s *Store) AddWish(interestID int, genderID *int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextWishID
	s.nextWishID++
	wish := domain.Wish{ID: id, InterestID: interestID, GenderID: genderID}
	wish.Interest = s.lookups[domain.TableInterests][interestID].Name
	if genderID != nil {
		name := s.lookups[domain.TableGenders][*genderID].Name
		wish.Gender = &name
	}
	s.wishes[id] = wish
	return id
}

// UserCount reports the number of persisted users.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// ProfileCount reports the number of persisted profiles.
func (s *Store) ProfileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

type snapshot struct {
	users         map[int]domain.User
	profiles      map[int]domain.Profile
	lookups       map[string]map[int]domain.LookupRow
	wishes        map[int]domain.Wish
	profileWishes map[int][]int
	sessions      map[string]domain.Session
	nextUserID    int
	nextProfileID int
	nextWishID    int
	nextLookupID  map[string]int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		users:         map[int]domain.User{},
		profiles:      map[int]domain.Profile{},
		lookups:       map[string]map[int]domain.LookupRow{},
		wishes:        map[int]domain.Wish{},
		profileWishes: map[int][]int{},
		sessions:      map[string]domain.Session{},
		nextUserID:    s.nextUserID,
		nextProfileID: s.nextProfileID,
		nextWishID:    s.nextWishID,
		nextLookupID:  map[string]int{},
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.profiles {
		snap.profiles[k] = v
	}
	for table, rows := range s.lookups {
		cp := map[int]domain.LookupRow{}
		for k, v := range rows {
			cp[k] = v
		}
		snap.lookups[table] = cp
	}
	for k, v := range s.wishes {
		snap.wishes[k] = v
	}
	for k, v := range s.profileWishes {
		snap.profileWishes[k] = append([]int(nil), v...)
	}
	for k, v := range s.sessions {
		snap.sessions[k] = v
	}
	for k, v := range s.nextLookupID {
		snap.nextLookupID[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.profiles = snap.profiles
	s.lookups = snap.lookups
	s.wishes = snap.wishes
	s.profileWishes = snap.profileWishes
	s.sessions = snap.sessions
	s.nextUserID = snap.nextUserID
	s.nextProfileID = snap.nextProfileID
	s.nextWishID = snap.nextWishID
	s.nextLookupID = snap.nextLookupID
}

type transactor struct {
	store *Store
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	snap := t.store.snapshot()
	t.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.store.mu.Lock()
		t.store.restore(snap)
		t.store.mu.Unlock()
		return err
	}
	return nil
}

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	s.users[id] = user
	return nil
}

type lookupRepo struct {
	store *Store
	table string
}

func (r *lookupRepo) List(ctx context.Context) ([]domain.LookupRow, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]domain.LookupRow, 0, len(s.lookups[r.table]))
	for _, row := range s.lookups[r.table] {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (r *lookupRepo) GetByID(ctx context.Context, id int) (*domain.LookupRow, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.lookups[r.table][id]
	if !ok {
		return nil, domain.ErrLookupNotFound
	}
	return &row, nil
}

func (r *lookupRepo) GetByName(ctx context.Context, name string) (*domain.LookupRow, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.lookups[r.table] {
		if row.Name == name {
			found := row
			return &found, nil
		}
	}
	return nil, domain.ErrLookupNotFound
}

func (r *lookupRepo) Create(ctx context.Context, name string) (*domain.LookupRow, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.lookups[r.table] {
		if row.Name == name {
			return nil, domain.ErrDuplicateName
		}
	}
	id := s.nextLookupID[r.table]
	s.nextLookupID[r.table]++
	row := domain.LookupRow{ID: id, Name: name}
	s.lookups[r.table][id] = row
	return &row, nil
}

type wishRepo struct {
	store *Store
}

func (r *wishRepo) List(ctx context.Context) ([]domain.Wish, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	wishes := make([]domain.Wish, 0, len(s.wishes))
	for _, wish := range s.wishes {
		wishes = append(wishes, wish)
	}
	sort.Slice(wishes, func(i, j int) bool { return wishes[i].ID < wishes[j].ID })
	return wishes, nil
}

func (r *wishRepo) GetByIDs(ctx context.Context, ids []int) ([]domain.Wish, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	wishes := make([]domain.Wish, 0, len(ids))
	for _, id := range ids {
		wish, ok := s.wishes[id]
		if !ok {
			return nil, domain.ErrWishNotFound
		}
		wishes = append(wishes, wish)
	}
	return wishes, nil
}

type profileRepo struct {
	store *Store
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.profiles {
		if existing.UserID == profile.UserID {
			return domain.ErrProfileExists
		}
	}
	profile.ID = s.nextProfileID
	s.nextProfileID++
	s.profiles[profile.ID] = *profile
	return nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, profile := range s.profiles {
		if profile.UserID == userID {
			p := profile
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *profileRepo) GetByUsername(ctx context.Context, username string) (*domain.ProfileView, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username != username {
			continue
		}
		for _, profile := range s.profiles {
			if profile.UserID == user.ID {
				view := s.view(profile, user)
				return &view, nil
			}
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	s.profiles[profile.ID] = *profile
	return nil
}

func (r *profileRepo) SetWishes(ctx context.Context, profileID int, wishIDs []int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileWishes[profileID] = append([]int(nil), wishIDs...)
	return nil
}

func (r *profileRepo) GetWishes(ctx context.Context, profileID int) ([]domain.Wish, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var wishes []domain.Wish
	for _, id := range s.profileWishes[profileID] {
		if wish, ok := s.wishes[id]; ok {
			wishes = append(wishes, wish)
		}
	}
	return wishes, nil
}

func (r *profileRepo) Search(ctx context.Context, filter domain.ProfileFilter) ([]*domain.ProfileView, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var views []*domain.ProfileView
	for _, profile := range s.profiles {
		if !matches(s, profile, filter) {
			continue
		}
		view := s.view(profile, s.users[profile.UserID])
		views = append(views, &view)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	if filter.Ordered() {
		asc := filter.SortDir == domain.SortAscending
		sort.SliceStable(views, func(i, j int) bool {
			switch filter.SortField {
			case domain.SortByUsername:
				if asc {
					return views[i].Username < views[j].Username
				}
				return views[i].Username > views[j].Username
			case domain.SortByAge:
				if asc {
					return views[i].Age < views[j].Age
				}
				return views[i].Age > views[j].Age
			}
			return false
		})
	}
	return views, nil
}

func matches(s *Store, profile domain.Profile, filter domain.ProfileFilter) bool {
	if len(filter.GenderIDs) > 0 {
		if profile.GenderID == nil {
			return false
		}
		found := false
		for _, id := range filter.GenderIDs {
			if *profile.GenderID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.WishIDs) > 0 {
		found := false
		for _, want := range filter.WishIDs {
			for _, have := range s.profileWishes[profile.ID] {
				if want == have {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	if filter.MinAge != nil && profile.Age < *filter.MinAge {
		return false
	}
	if filter.MaxAge != nil && profile.Age > *filter.MaxAge {
		return false
	}
	return true
}

func (s *Store) view(profile domain.Profile, user domain.User) domain.ProfileView {
	view := domain.ProfileView{Profile: profile, Username: user.Username}
	if profile.GenderID != nil {
		if row, ok := s.lookups[domain.TableGenders][*profile.GenderID]; ok {
			name := row.Name
			view.GenderName = &name
		}
	}
	if profile.PronounID != nil {
		if row, ok := s.lookups[domain.TablePronouns][*profile.PronounID]; ok {
			name := row.Name
			view.PronounName = &name
		}
	}
	return view
}

type sessionRepo struct {
	store *Store
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.Session) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
