package kafka

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
