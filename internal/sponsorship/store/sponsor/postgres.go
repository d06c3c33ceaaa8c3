package sponsor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/postgres"
	"parrainage/pkg/platform/sentinel"
	txcontext "parrainage/pkg/platform/tx"
)

// PostgresStore persists sponsors in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed sponsor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, sp *models.Sponsor) error {
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO sponsors (id, name, email, role, active, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.UUID(sp.ID), sp.Name, sp.Email, sp.Role.String(), sp.Active, sp.Verified, sp.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert sponsor: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, sponsorID id.SponsorID) (*models.Sponsor, error) {
	var (
		sp    models.Sponsor
		rawID uuid.UUID
		role  string
	)
	err := txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, name, email, role, active, verified, created_at
		FROM sponsors WHERE id = $1
	`, uuid.UUID(sponsorID)).Scan(&rawID, &sp.Name, &sp.Email, &role, &sp.Active, &sp.Verified, &sp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find sponsor by id: %w", err)
	}
	sp.ID = id.SponsorID(rawID)
	sp.Role = id.Role(role)
	return &sp, nil
}
