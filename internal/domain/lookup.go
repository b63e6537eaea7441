package domain

// LookupRow is a small name-keyed reference entity (a gender, pronoun or
// interest). Rows are usually administered out of band, but genders and
// pronouns may also be created on first use from free-text profile input.
type LookupRow struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Lookup table names understood by the postgres lookup repository.
const (
	TableGenders   = "genders"
	TablePronouns  = "pronouns"
	TableInterests = "interests"
)
