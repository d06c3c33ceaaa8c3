//go:build integration

package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parrainage/internal/notification/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/testutil/containers"
)

func TestRedisQueueIsFIFO(t *testing.T) {
	redis := containers.NewRedisContainer(t)
	ctx := context.Background()
	q := NewRedisQueue(redis.Client, "test:notifications")

	recipient := id.NewSponsorID()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	first := models.New(recipient, models.TypeRequestSubmitted, "Request received", "", "", now)
	second := models.New(recipient, models.TypeRequestApproved, "Request approved", "", "/sponsorships/x", now)

	require.NoError(t, q.Push(ctx, first))
	require.NoError(t, q.Push(ctx, second))

	depth, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), depth)

	got, err := q.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, recipient, got.RecipientID)

	got, err = q.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "/sponsorships/x", got.Link)

	got, err = q.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, got)
}
