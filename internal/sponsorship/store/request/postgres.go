package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/postgres"
	"parrainage/pkg/platform/sentinel"
	txcontext "parrainage/pkg/platform/tx"
)

// PostgresStore persists sponsorship requests in PostgreSQL. The partial
// unique index sponsorship_requests_one_pending_per_pair backs Create.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed request store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `
	SELECT id, child_id, sponsor_id, status, full_name, email, city, motivation, is_long_term,
	       terms_accepted, created_at, decided_at, decided_by, rejection_reason
	FROM sponsorship_requests`

func (s *PostgresStore) execer(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, s.db)
}

func (s *PostgresStore) Create(ctx context.Context, r *models.SponsorshipRequest) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO sponsorship_requests (id, child_id, sponsor_id, status, full_name, email, city, motivation,
		                                  is_long_term, terms_accepted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, uuid.UUID(r.ID), uuid.UUID(r.ChildID), uuid.UUID(r.SponsorID), string(r.Status), r.FullName, r.Email,
		r.City, r.Motivation, r.IsLongTerm, r.TermsAccepted, r.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert sponsorship request: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, requestID id.RequestID) (*models.SponsorshipRequest, error) {
	return s.queryOne(ctx, "find sponsorship request by id", selectColumns+` WHERE id = $1`, uuid.UUID(requestID))
}

func (s *PostgresStore) FindLatestForPair(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID) (*models.SponsorshipRequest, error) {
	return s.queryOne(ctx, "find latest sponsorship request",
		selectColumns+` WHERE child_id = $1 AND sponsor_id = $2 ORDER BY created_at DESC LIMIT 1`,
		uuid.UUID(childID), uuid.UUID(sponsorID))
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.RequestStatus) ([]*models.SponsorshipRequest, error) {
	query := selectColumns + ` WHERE ($1 = '' OR status = $1) ORDER BY created_at`
	rows, err := s.execer(ctx).QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list sponsorship requests: %w", err)
	}
	defer rows.Close()

	var out []*models.SponsorshipRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("list sponsorship requests: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sponsorship requests: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Decide(ctx context.Context, r *models.SponsorshipRequest) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE sponsorship_requests
		SET status = $2, decided_at = $3, decided_by = $4, rejection_reason = $5
		WHERE id = $1 AND status = 'pending'
	`, uuid.UUID(r.ID), string(r.Status), nullTime(r.DecidedAt), nullSponsor(r.DecidedBy), r.RejectionReason)
	if err != nil {
		return fmt.Errorf("decide sponsorship request: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decide sponsorship request rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}
	if _, err := s.FindByID(ctx, r.ID); err != nil {
		return err
	}
	return sentinel.ErrConflict
}

func (s *PostgresStore) Reopen(ctx context.Context, requestID id.RequestID) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE sponsorship_requests
		SET status = 'pending', decided_at = NULL, decided_by = NULL, rejection_reason = ''
		WHERE id = $1
	`, uuid.UUID(requestID))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("reopen sponsorship request: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reopen sponsorship request rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) queryOne(ctx context.Context, op, query string, args ...any) (*models.SponsorshipRequest, error) {
	r, err := scanRequest(s.execer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*models.SponsorshipRequest, error) {
	var (
		r                         models.SponsorshipRequest
		rawID, childID, sponsorID uuid.UUID
		status                    string
		decidedAt                 sql.NullTime
		decidedBy                 uuid.NullUUID
	)
	if err := row.Scan(&rawID, &childID, &sponsorID, &status, &r.FullName, &r.Email, &r.City, &r.Motivation,
		&r.IsLongTerm, &r.TermsAccepted, &r.CreatedAt, &decidedAt, &decidedBy, &r.RejectionReason); err != nil {
		return nil, err
	}
	r.ID = id.RequestID(rawID)
	r.ChildID = id.ChildID(childID)
	r.SponsorID = id.SponsorID(sponsorID)
	r.Status = models.RequestStatus(status)
	if decidedAt.Valid {
		r.DecidedAt = &decidedAt.Time
	}
	if decidedBy.Valid {
		by := id.SponsorID(decidedBy.UUID)
		r.DecidedBy = &by
	}
	return &r, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullSponsor(sponsorID *id.SponsorID) uuid.NullUUID {
	if sponsorID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*sponsorID), Valid: true}
}
