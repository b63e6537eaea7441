package domain

import "fmt"

// Wish is a desired partner trait, optionally qualified by gender.
// Interest and Gender carry the joined lookup names for display.
type Wish struct {
	ID         int     `json:"id" db:"id"`
	InterestID int     `json:"interest_id" db:"interest_id"`
	GenderID   *int    `json:"gender_id" db:"gender_id"`
	Interest   string  `json:"interest" db:"interest"`
	Gender     *string `json:"gender" db:"gender"`
}

// Label renders the wish for listings, e.g. "Hiking with Woman humans".
// A wish without a gender reads as the bare interest.
func (w Wish) Label() string {
	if w.Gender != nil {
		return fmt.Sprintf("%s with %s humans", w.Interest, *w.Gender)
	}
	return w.Interest
}
