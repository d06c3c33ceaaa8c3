package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	notificationservice "parrainage/internal/notification/service"
	notificationstore "parrainage/internal/notification/store"
	"parrainage/internal/platform/config"
	platformsqlite "parrainage/internal/platform/sqlite"
	"parrainage/internal/sponsorship/service"
	"parrainage/internal/sponsorship/store"
	"parrainage/internal/sponsorship/store/child"
	"parrainage/internal/sponsorship/store/history"
	"parrainage/internal/sponsorship/store/note"
	"parrainage/internal/sponsorship/store/request"
	"parrainage/internal/sponsorship/store/sponsor"
	"parrainage/internal/sponsorship/store/sponsorship"
	sqlitestore "parrainage/internal/sponsorship/store/sqlite"
	"parrainage/pkg/platform/postgres"
)

// backend is the storage selected by STORE_DRIVER.
type backend struct {
	stores service.Stores
	tx     service.StoreTx
	inbox  notificationservice.Store
	ping   func(ctx context.Context) error
	close  func() error
}

func openBackend(ctx context.Context, cfg config.Server, logger *slog.Logger) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg)
	default:
		logger.Warn("using in-memory stores; data is lost on restart")
		return &backend{
			stores: service.Stores{
				Children:     child.NewInMemory(),
				Sponsors:     sponsor.NewInMemory(),
				Sponsorships: sponsorship.NewInMemory(),
				Requests:     request.NewInMemory(),
				History:      history.NewInMemory(),
				Notes:        note.NewInMemory(),
			},
			tx:    service.NewShardedTx(cfg.TxTimeout),
			inbox: notificationstore.NewInMemory(),
			ping:  func(context.Context) error { return nil },
			close: func() error { return nil },
		}, nil
	}
}

func openPostgres(ctx context.Context, cfg config.Server) (*backend, error) {
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migratePostgres(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &backend{
		stores: service.Stores{
			Children:     child.NewPostgres(db),
			Sponsors:     sponsor.NewPostgres(db),
			Sponsorships: sponsorship.NewPostgres(db),
			Requests:     request.NewPostgres(db),
			History:      history.NewPostgres(db),
			Notes:        note.NewPostgres(db),
		},
		tx:    newPostgresTx(db, cfg.TxTimeout),
		inbox: notificationstore.NewPostgres(db),
		ping:  db.PingContext,
		close: db.Close,
	}, nil
}

func migratePostgres(ctx context.Context, db *sql.DB) error {
	if err := store.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate sponsorship schema: %w", err)
	}
	if err := notificationstore.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate notification schema: %w", err)
	}
	return nil
}

func openSQLite(ctx context.Context, cfg config.Server) (*backend, error) {
	db, err := platformsqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := migrateSQLite(db); err != nil {
		return nil, err
	}
	sqlDB, err := db.WithContext(ctx).DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	s := sqlitestore.New(db)
	return &backend{
		stores: service.Stores{
			Children:     s.Children,
			Sponsors:     s.Sponsors,
			Sponsorships: s.Sponsorships,
			Requests:     s.Requests,
			History:      s.History,
			Notes:        s.Notes,
		},
		tx:    platformsqlite.NewTxRunner(db),
		inbox: notificationstore.NewSQLite(db),
		ping:  sqlDB.PingContext,
		close: sqlDB.Close,
	}, nil
}

func migrateSQLite(db *gorm.DB) error {
	if err := sqlitestore.Migrate(db); err != nil {
		return fmt.Errorf("migrate sponsorship tables: %w", err)
	}
	if err := notificationstore.MigrateSQLite(db); err != nil {
		return fmt.Errorf("migrate notification tables: %w", err)
	}
	return nil
}
