package service

import (
	"context"
	"sync"
	"time"

	dErrors "parrainage/pkg/domain-errors"
)

// StoreTx provides the transactional boundary of a write plan.
// Implementations may wrap a database transaction or, in-memory, a coarse lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	// Atomic reports whether a failed fn leaves no trace of its writes. When
	// false the coordinator compensates applied steps itself.
	Atomic() bool
}

// numShards spreads in-memory transactions over independent locks keyed by
// child, so unrelated children never wait on each other.
const numShards = 128

// defaultTxTimeout is the maximum duration for a transaction.
const defaultTxTimeout = 5 * time.Second

// ShardedTx serializes write plans touching the same child behind one of
// numShards mutexes. It is the StoreTx of the in-memory backend.
type ShardedTx struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

// NewShardedTx returns a lock-based StoreTx. A zero timeout uses the default.
func NewShardedTx(timeout time.Duration) *ShardedTx {
	return &ShardedTx{timeout: timeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, nested := ctx.Value(inTxKeyCtx).(bool); nested {
		return fn(ctx)
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := t.selectShard(ctx)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(context.WithValue(ctx, inTxKeyCtx, true))
}

// Atomic is false: a failed plan is undone by compensating writes.
func (t *ShardedTx) Atomic() bool { return false }

// selectShard picks a shard based on the shard key in context, or defaults to shard 0.
func (t *ShardedTx) selectShard(ctx context.Context) int {
	if key, ok := ctx.Value(shardKeyCtx).(string); ok && key != "" {
		return int(hashString(key) % numShards)
	}
	return 0
}

// hashString is FNV-1a.
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

type (
	shardKey struct{}
	inTxKey  struct{}
)

var (
	shardKeyCtx = shardKey{}
	inTxKeyCtx  = inTxKey{}
)

// withShardKey routes the transaction of ctx to the shard owning key.
func withShardKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, shardKeyCtx, key)
}
