//go:build integration

package feed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"parrainage/internal/platform/kafka"
	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/testutil/containers"
)

func TestKafkaFeedRoundTrip(t *testing.T) {
	kc := containers.NewKafkaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	producer, err := kafka.NewProducer(kc.Brokers, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer producer.Close(ctx)
	require.NoError(t, producer.EnsureTopic(ctx, "sponsorship.history", 1, 1))

	sid := id.NewSponsorshipID()
	feed := NewKafka(producer, "sponsorship.history")
	for _, action := range []models.HistoryAction{models.HistoryActionPause, models.HistoryActionResume} {
		require.NoError(t, feed.Publish(ctx, models.NewHistoryEntry(sid, action, "", nil, time.Now().UTC())))
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(kc.Brokers...),
		kgo.ConsumeTopics("sponsorship.history"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var actions []string
	for len(actions) < 2 {
		fetches := consumer.PollFetches(ctx)
		require.Empty(t, fetches.Errors())
		fetches.EachRecord(func(r *kgo.Record) {
			require.Equal(t, sid.String(), string(r.Key))
			var ev Event
			require.NoError(t, json.Unmarshal(r.Value, &ev))
			actions = append(actions, ev.Action)
		})
	}
	require.Equal(t, []string{"pause", "resume"}, actions)
}
