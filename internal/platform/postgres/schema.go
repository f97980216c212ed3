package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// EnsureSchema applies the embedded migrations: tables, cascade foreign
// keys, the unique indexes backing the duplicate-prevention invariants, and
// the seed rows for the two reaction kinds. Every statement is guarded so
// repeated runs are no-ops. Must complete before any store accepts traffic;
// a failure here is fatal to startup and is not retried.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
