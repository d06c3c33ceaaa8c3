package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dErrors "parrainage/pkg/domain-errors"
	txcontext "parrainage/pkg/platform/tx"
)

// postgresTx runs sponsorship plans inside one database transaction. Stores
// pick the open *sql.Tx out of ctx, so a failed step rolls back every write.
type postgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newPostgresTx(db *sql.DB, timeout time.Duration) *postgresTx {
	return &postgresTx{db: db, timeout: timeout}
}

// RunInTx leaves begin and commit failures uncoded so the coordinator can tag
// them as failed transitions.
func (t *postgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Atomic is true: rollback undoes a failed plan.
func (t *postgresTx) Atomic() bool { return true }
