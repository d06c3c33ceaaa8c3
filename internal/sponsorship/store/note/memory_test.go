package note

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
)

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	sponsorshipID := id.NewSponsorshipID()
	author := id.NewSponsorID()

	require.NoError(t, store.Append(ctx, models.NewNote(sponsorshipID, &author, "first", time.Now())))
	require.NoError(t, store.Append(ctx, models.NewNote(sponsorshipID, nil, "second", time.Now())))

	notes, err := store.ListBySponsorship(ctx, sponsorshipID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "first", notes[0].Content)
	assert.Equal(t, author, *notes[0].AuthorID)
	assert.Nil(t, notes[1].AuthorID)

	empty, err := store.ListBySponsorship(ctx, id.NewSponsorshipID())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
