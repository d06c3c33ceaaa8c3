package note

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	txcontext "parrainage/pkg/platform/tx"
)

// PostgresStore persists notes in sponsorship_notes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed note store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, n *models.Note) error {
	var author uuid.NullUUID
	if n.AuthorID != nil {
		author = uuid.NullUUID{UUID: uuid.UUID(*n.AuthorID), Valid: true}
	}
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO sponsorship_notes (id, sponsorship_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.UUID(n.ID), uuid.UUID(n.SponsorshipID), author, n.Content, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBySponsorship(ctx context.Context, sponsorshipID id.SponsorshipID) ([]*models.Note, error) {
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, `
		SELECT id, sponsorship_id, author_id, content, created_at
		FROM sponsorship_notes
		WHERE sponsorship_id = $1
		ORDER BY created_at, id
	`, uuid.UUID(sponsorshipID))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []*models.Note
	for rows.Next() {
		var (
			n                     models.Note
			rawID, rawSponsorship uuid.UUID
			author                uuid.NullUUID
		)
		if err := rows.Scan(&rawID, &rawSponsorship, &author, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("list notes: scan: %w", err)
		}
		n.ID = id.NoteID(rawID)
		n.SponsorshipID = id.SponsorshipID(rawSponsorship)
		if author.Valid {
			a := id.SponsorID(author.UUID)
			n.AuthorID = &a
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return out, nil
}
