package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/postgres"
	"parrainage/pkg/platform/sentinel"
	txcontext "parrainage/pkg/platform/tx"
)

// PostgresStore appends history entries to sponsorship_history. Rows are
// never updated or deleted.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed history store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e *models.HistoryEntry) error {
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO sponsorship_history (id, sponsorship_id, action, reason, performed_by, from_sponsor_id,
		                                 to_sponsor_id, previous_sponsorship_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(e.ID), uuid.UUID(e.SponsorshipID), string(e.Action), e.Reason,
		nullSponsor(e.PerformedBy), nullSponsor(e.FromSponsorID), nullSponsor(e.ToSponsorID),
		nullSponsorship(e.PreviousSponsorshipID), e.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBySponsorship(ctx context.Context, sponsorshipID id.SponsorshipID) ([]*models.HistoryEntry, error) {
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, `
		SELECT id, sponsorship_id, action, reason, performed_by, from_sponsor_id, to_sponsor_id,
		       previous_sponsorship_id, created_at
		FROM sponsorship_history
		WHERE sponsorship_id = $1
		ORDER BY created_at, id
	`, uuid.UUID(sponsorshipID))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []*models.HistoryEntry
	for rows.Next() {
		var (
			e                           models.HistoryEntry
			rawID, rawSponsorship       uuid.UUID
			action                      string
			performedBy, from, to, prev uuid.NullUUID
		)
		if err := rows.Scan(&rawID, &rawSponsorship, &action, &e.Reason, &performedBy, &from, &to, &prev, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list history: scan: %w", err)
		}
		e.ID = id.HistoryEntryID(rawID)
		e.SponsorshipID = id.SponsorshipID(rawSponsorship)
		e.Action = models.HistoryAction(action)
		e.PerformedBy = toSponsor(performedBy)
		e.FromSponsorID = toSponsor(from)
		e.ToSponsorID = toSponsor(to)
		if prev.Valid {
			p := id.SponsorshipID(prev.UUID)
			e.PreviousSponsorshipID = &p
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return out, nil
}

func nullSponsor(sponsorID *id.SponsorID) uuid.NullUUID {
	if sponsorID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*sponsorID), Valid: true}
}

func nullSponsorship(sponsorshipID *id.SponsorshipID) uuid.NullUUID {
	if sponsorshipID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*sponsorshipID), Valid: true}
}

func toSponsor(n uuid.NullUUID) *id.SponsorID {
	if !n.Valid {
		return nil
	}
	sid := id.SponsorID(n.UUID)
	return &sid
}
