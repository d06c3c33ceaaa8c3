//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"parrainage/pkg/testutil/containers"
)

func TestPostgresInbox(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	require.NoError(t, Migrate(context.Background(), pg.DB))

	assertInboxContract(t, NewPostgres(pg.DB))
}
