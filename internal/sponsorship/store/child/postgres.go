package child

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
	txcontext "parrainage/pkg/platform/tx"
)

// PostgresStore persists children in PostgreSQL. Needs are stored as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed child store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) execer(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, s.db)
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Child) error {
	needs, err := json.Marshal(c.Needs)
	if err != nil {
		return fmt.Errorf("marshal child needs: %w", err)
	}
	_, err = s.execer(ctx).ExecContext(ctx, `
		INSERT INTO children (id, name, birth_date, city, gender, is_sponsored, sponsor_id, status, needs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, uuid.UUID(c.ID), c.Name, c.BirthDate, c.City, c.Gender, c.IsSponsored, nullableSponsor(c.SponsorID),
		string(c.Status), string(needs), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert child: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, childID id.ChildID) (*models.Child, error) {
	var (
		c         models.Child
		rawID     uuid.UUID
		sponsorID uuid.NullUUID
		status    string
		needs     []byte
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT id, name, birth_date, city, gender, is_sponsored, sponsor_id, status, needs, created_at, updated_at
		FROM children WHERE id = $1
	`, uuid.UUID(childID)).Scan(&rawID, &c.Name, &c.BirthDate, &c.City, &c.Gender, &c.IsSponsored,
		&sponsorID, &status, &needs, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find child by id: %w", err)
	}
	c.ID = id.ChildID(rawID)
	c.Status = models.ChildStatus(status)
	if sponsorID.Valid {
		sid := id.SponsorID(sponsorID.UUID)
		c.SponsorID = &sid
	}
	if len(needs) > 0 {
		if err := json.Unmarshal(needs, &c.Needs); err != nil {
			return nil, fmt.Errorf("unmarshal child needs: %w", err)
		}
	}
	return &c, nil
}

func (s *PostgresStore) Claim(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error {
	return s.conditional(ctx, childID, "claim child", `
		UPDATE children SET is_sponsored = TRUE, sponsor_id = $2, status = 'sponsored', updated_at = $3
		WHERE id = $1 AND (is_sponsored = FALSE OR sponsor_id = $2)
	`, uuid.UUID(childID), uuid.UUID(sponsorID), now)
}

func (s *PostgresStore) Release(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error {
	return s.conditional(ctx, childID, "release child", `
		UPDATE children SET is_sponsored = FALSE, sponsor_id = NULL, status = 'available', updated_at = $3
		WHERE id = $1 AND (is_sponsored = FALSE OR sponsor_id = $2)
	`, uuid.UUID(childID), uuid.UUID(sponsorID), now)
}

func (s *PostgresStore) Reassign(ctx context.Context, childID id.ChildID, from, to id.SponsorID, now time.Time) error {
	return s.conditional(ctx, childID, "reassign child", `
		UPDATE children SET sponsor_id = $3, updated_at = $4
		WHERE id = $1 AND is_sponsored = TRUE AND sponsor_id = $2
	`, uuid.UUID(childID), uuid.UUID(from), uuid.UUID(to), now)
}

func (s *PostgresStore) SaveSponsorship(ctx context.Context, c *models.Child) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE children SET is_sponsored = $2, sponsor_id = $3, status = $4, updated_at = $5
		WHERE id = $1
	`, uuid.UUID(c.ID), c.IsSponsored, nullableSponsor(c.SponsorID), string(c.Status), c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save child sponsorship: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save child sponsorship rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// conditional runs a guarded UPDATE. Zero affected rows means either the child
// is missing (ErrNotFound) or the guard failed (ErrConflict).
func (s *PostgresStore) conditional(ctx context.Context, childID id.ChildID, op, query string, args ...any) error {
	res, err := s.execer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if rows > 0 {
		return nil
	}
	var exists bool
	if err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM children WHERE id = $1)`, uuid.UUID(childID)).Scan(&exists); err != nil {
		return fmt.Errorf("%s existence check: %w", op, err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

func nullableSponsor(sponsorID *id.SponsorID) uuid.NullUUID {
	if sponsorID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*sponsorID), Valid: true}
}
