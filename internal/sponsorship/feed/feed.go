// Package feed publishes appended sponsorship history entries to Kafka for
// downstream consumers (reporting, CRM sync). Records are keyed by
// sponsorship so one sponsorship's entries stay ordered within a partition.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parrainage/internal/sponsorship/models"
)

// schemaVersion is bumped on incompatible changes to Event.
const schemaVersion = 1

// Publisher produces one keyed record.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Event is the record value.
type Event struct {
	Version               int       `json:"version"`
	EntryID               string    `json:"entry_id"`
	SponsorshipID         string    `json:"sponsorship_id"`
	Action                string    `json:"action"`
	Reason                string    `json:"reason,omitempty"`
	PerformedBy           string    `json:"performed_by,omitempty"`
	FromSponsorID         string    `json:"from_sponsor_id,omitempty"`
	ToSponsorID           string    `json:"to_sponsor_id,omitempty"`
	PreviousSponsorshipID string    `json:"previous_sponsorship_id,omitempty"`
	OccurredAt            time.Time `json:"occurred_at"`
}

// Kafka is the HistoryFeed backed by a Kafka topic.
type Kafka struct {
	publisher Publisher
	topic     string
}

func NewKafka(publisher Publisher, topic string) *Kafka {
	return &Kafka{publisher: publisher, topic: topic}
}

func (k *Kafka) Publish(ctx context.Context, entry *models.HistoryEntry) error {
	value, err := json.Marshal(toEvent(entry))
	if err != nil {
		return fmt.Errorf("encode history event: %w", err)
	}
	return k.publisher.Publish(ctx, k.topic, []byte(entry.SponsorshipID.String()), value)
}

func toEvent(e *models.HistoryEntry) Event {
	ev := Event{
		Version:       schemaVersion,
		EntryID:       e.ID.String(),
		SponsorshipID: e.SponsorshipID.String(),
		Action:        string(e.Action),
		Reason:        e.Reason,
		OccurredAt:    e.CreatedAt,
	}
	if e.PerformedBy != nil {
		ev.PerformedBy = e.PerformedBy.String()
	}
	if e.FromSponsorID != nil {
		ev.FromSponsorID = e.FromSponsorID.String()
	}
	if e.ToSponsorID != nil {
		ev.ToSponsorID = e.ToSponsorID.String()
	}
	if e.PreviousSponsorshipID != nil {
		ev.PreviousSponsorshipID = e.PreviousSponsorshipID.String()
	}
	return ev
}
