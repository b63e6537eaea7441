package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql seed.sql
var sqlFS embed.FS

// Migrate creates the schema if it does not exist and seeds the baseline
// lookup rows. Both scripts are idempotent, so running this on every
// startup is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, name := range []string{"schema.sql", "seed.sql"} {
		script, err := sqlFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("execute %s: %w", name, err)
		}
	}
	return nil
}
