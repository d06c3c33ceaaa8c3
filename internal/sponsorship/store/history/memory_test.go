package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	sponsorshipID := id.NewSponsorshipID()
	now := time.Now()

	created := models.NewHistoryEntry(sponsorshipID, models.HistoryActionCreated, "", nil, now)
	paused := models.NewHistoryEntry(sponsorshipID, models.HistoryActionPause, "holiday", nil, now.Add(time.Minute))
	require.NoError(t, store.Append(ctx, created))
	require.NoError(t, store.Append(ctx, paused))
	require.NoError(t, store.Append(ctx, models.NewHistoryEntry(id.NewSponsorshipID(), models.HistoryActionCreated, "", nil, now)))

	assert.ErrorIs(t, store.Append(ctx, created), sentinel.ErrAlreadyUsed)

	entries, err := store.ListBySponsorship(ctx, sponsorshipID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.HistoryActionCreated, entries[0].Action)
	assert.Equal(t, "holiday", entries[1].Reason)

	entries[0].Reason = "tampered"
	again, err := store.ListBySponsorship(ctx, sponsorshipID)
	require.NoError(t, err)
	assert.Empty(t, again[0].Reason)
}
