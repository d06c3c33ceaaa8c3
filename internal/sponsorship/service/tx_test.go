package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "parrainage/pkg/domain-errors"
)

func TestShardedTxRejectsCancelledContext(t *testing.T) {
	tx := NewShardedTx(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := tx.RunInTx(ctx, func(context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	assert.False(t, called)
}

func TestShardedTxNestedCallDoesNotDeadlock(t *testing.T) {
	tx := NewShardedTx(time.Second)
	ctx := withShardKey(context.Background(), "child-1")

	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		return tx.RunInTx(ctx, func(context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.False(t, tx.Atomic())
}

func TestShardedTxSerializesSameKey(t *testing.T) {
	tx := NewShardedTx(time.Second)
	ctx := withShardKey(context.Background(), "child-1")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(ctx, func(context.Context) error {
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestShardedTxAppliesDefaultDeadline(t *testing.T) {
	tx := NewShardedTx(0)
	err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)
}
