package repository

import "context"

// Transactor runs fn inside a single database transaction. The transaction
// is carried in the context; repository calls made with that context join
// it. fn returning an error rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
