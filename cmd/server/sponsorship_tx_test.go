package main

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "parrainage/pkg/domain-errors"
)

func TestPostgresTxRunInTx(t *testing.T) {
	t.Run("begin failure stays uncoded", func(t *testing.T) {
		db, err := sql.Open("postgres", "postgres://localhost:1/parrainage?sslmode=disable")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		called := false
		err = newPostgresTx(db, time.Second).RunInTx(context.Background(), func(context.Context) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.False(t, called)
		assert.ErrorContains(t, err, "begin transaction")
		_, coded := dErrors.As(err)
		assert.False(t, coded)
	})

	t.Run("cancelled context is a timeout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := newPostgresTx(nil, time.Second).RunInTx(ctx, func(context.Context) error { return nil })
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}
