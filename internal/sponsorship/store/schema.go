// Package store holds the PostgreSQL schema shared by the sponsorship stores.
// Entity stores live in the child, sponsor, sponsorship, request, history and
// note subpackages; the sqlite subpackage is a single-file alternative backend.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate applies the idempotent schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply sponsorship schema: %w", err)
	}
	return nil
}

// Truncate empties every sponsorship table. Intended for integration tests.
func Truncate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE sponsorship_notes, sponsorship_history, sponsorship_requests,
		sponsorships, children, sponsors CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate sponsorship tables: %w", err)
	}
	return nil
}
