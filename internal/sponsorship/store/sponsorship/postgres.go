package sponsorship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/postgres"
	"parrainage/pkg/platform/sentinel"
	txcontext "parrainage/pkg/platform/tx"
)

// PostgresStore persists sponsorships in PostgreSQL. The partial unique index
// sponsorships_one_current_per_child backs the Create guarantee.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed sponsorship store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `
	SELECT id, child_id, sponsor_id, status, start_date, end_date, is_temporary,
	       end_planned_date, end_reason, created_at, updated_at
	FROM sponsorships`

func (s *PostgresStore) execer(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, s.db)
}

func (s *PostgresStore) Create(ctx context.Context, sp *models.Sponsorship) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO sponsorships (id, child_id, sponsor_id, status, start_date, end_date, is_temporary,
		                          end_planned_date, end_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, uuid.UUID(sp.ID), uuid.UUID(sp.ChildID), uuid.UUID(sp.SponsorID), string(sp.Status), sp.StartDate,
		nullTime(sp.EndDate), sp.IsTemporary, nullTime(sp.EndPlannedDate), nullString(sp.EndReason),
		sp.CreatedAt, sp.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert sponsorship: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, sponsorshipID id.SponsorshipID) (*models.Sponsorship, error) {
	row := s.execer(ctx).QueryRowContext(ctx, selectColumns+` WHERE id = $1`, uuid.UUID(sponsorshipID))
	sp, err := scanSponsorship(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find sponsorship by id: %w", err)
	}
	return sp, nil
}

func (s *PostgresStore) ListByIDs(ctx context.Context, ids []id.SponsorshipID) ([]*models.Sponsorship, error) {
	raw := make([]string, len(ids))
	for i, sid := range ids {
		raw[i] = sid.String()
	}
	return s.query(ctx, "list sponsorships by ids", selectColumns+` WHERE id = ANY($1::uuid[])`, pq.Array(raw))
}

func (s *PostgresStore) FindCurrentByChild(ctx context.Context, childID id.ChildID) (*models.Sponsorship, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		selectColumns+` WHERE child_id = $1 AND status IN ('active', 'paused')`, uuid.UUID(childID))
	sp, err := scanSponsorship(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find current sponsorship by child: %w", err)
	}
	return sp, nil
}

func (s *PostgresStore) ListBySponsor(ctx context.Context, sponsorID id.SponsorID) ([]*models.Sponsorship, error) {
	return s.query(ctx, "list sponsorships by sponsor",
		selectColumns+` WHERE sponsor_id = $1 ORDER BY created_at`, uuid.UUID(sponsorID))
}

func (s *PostgresStore) ListByChild(ctx context.Context, childID id.ChildID) ([]*models.Sponsorship, error) {
	return s.query(ctx, "list sponsorships by child",
		selectColumns+` WHERE child_id = $1 ORDER BY created_at`, uuid.UUID(childID))
}

func (s *PostgresStore) Update(ctx context.Context, sp *models.Sponsorship, expected models.State) error {
	expectedStatus, expectedTemporary := expected.Columns()
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE sponsorships
		SET status = $4, end_date = $5, is_temporary = $6, end_planned_date = $7, end_reason = $8, updated_at = $9
		WHERE id = $1 AND status = $2 AND is_temporary = $3
	`, uuid.UUID(sp.ID), string(expectedStatus), expectedTemporary,
		string(sp.Status), nullTime(sp.EndDate), sp.IsTemporary, nullTime(sp.EndPlannedDate),
		nullString(sp.EndReason), sp.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update sponsorship: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sponsorship rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}
	var exists bool
	if err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sponsorships WHERE id = $1)`, uuid.UUID(sp.ID)).Scan(&exists); err != nil {
		return fmt.Errorf("update sponsorship existence check: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

func (s *PostgresStore) Delete(ctx context.Context, sponsorshipID id.SponsorshipID) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM sponsorships WHERE id = $1`, uuid.UUID(sponsorshipID))
	if err != nil {
		return fmt.Errorf("delete sponsorship: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sponsorship rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]*models.Sponsorship, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*models.Sponsorship
	for rows.Next() {
		sp, err := scanSponsorship(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSponsorship(row scanner) (*models.Sponsorship, error) {
	var (
		sp                        models.Sponsorship
		rawID, childID, sponsorID uuid.UUID
		status                    string
		endDate, endPlanned       sql.NullTime
		endReason                 sql.NullString
	)
	if err := row.Scan(&rawID, &childID, &sponsorID, &status, &sp.StartDate, &endDate, &sp.IsTemporary,
		&endPlanned, &endReason, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return nil, err
	}
	sp.ID = id.SponsorshipID(rawID)
	sp.ChildID = id.ChildID(childID)
	sp.SponsorID = id.SponsorID(sponsorID)
	sp.Status = models.SponsorshipStatus(status)
	if endDate.Valid {
		sp.EndDate = &endDate.Time
	}
	if endPlanned.Valid {
		sp.EndPlannedDate = &endPlanned.Time
	}
	sp.EndReason = endReason.String
	return &sp, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
