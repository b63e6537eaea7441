package domain

import "time"

type Profile struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	Age         int       `json:"age" db:"age"`
	GenderID    *int      `json:"gender_id" db:"gender_id"`
	PronounID   *int      `json:"pronoun_id" db:"pronoun_id"`
	PicturePath *string   `json:"picture_path" db:"picture_path"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileView is a profile joined with its owner's username and the
// resolved lookup names, as rendered in listings and the profile page.
type ProfileView struct {
	Profile
	Username    string  `json:"username" db:"username"`
	GenderName  *string `json:"gender_name" db:"gender_name"`
	PronounName *string `json:"pronoun_name" db:"pronoun_name"`
	Wishes      []Wish  `json:"wishes"`
}

// Sort fields and directions accepted by the profile filter.
const (
	SortByUsername = "username"
	SortByAge      = "age"
	SortAscending  = "asc"
	SortDescending = "desc"
)

// ProfileFilter narrows the profile listing. All members are optional and
// compose conjunctively; zero-value members are ignored.
type ProfileFilter struct {
	GenderIDs []int
	WishIDs   []int
	MinAge    *int
	MaxAge    *int
	SortField string
	SortDir   string
}

// Ordered reports whether the filter requests an explicit ordering.
// Supplying only one of field/direction has no ordering effect.
func (f ProfileFilter) Ordered() bool {
	return f.SortField != "" && f.SortDir != ""
}
