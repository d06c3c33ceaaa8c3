package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parrainage/internal/notification/models"
	platformsqlite "parrainage/internal/platform/sqlite"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

type notificationRow struct {
	ID          string `gorm:"primaryKey"`
	RecipientID string `gorm:"index"`
	Type        string
	Title       string
	Content     string
	Link        string
	IsRead      bool
	CreatedAt   time.Time
}

func (notificationRow) TableName() string { return "notifications" }

// MigrateSQLite creates the notifications table on the embedded backend.
func MigrateSQLite(db *gorm.DB) error {
	if err := db.AutoMigrate(&notificationRow{}); err != nil {
		return fmt.Errorf("automigrate notifications: %w", err)
	}
	return nil
}

// SQLiteStore persists notifications through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLite(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Create(ctx context.Context, n *models.Notification) error {
	row := notificationRow{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Type:        string(n.Type),
		Title:       n.Title,
		Content:     n.Content,
		Link:        n.Link,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
	if err := platformsqlite.Conn(ctx, s.db).Create(&row).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListByRecipient(ctx context.Context, recipient id.SponsorID) ([]*models.Notification, error) {
	var rows []notificationRow
	err := platformsqlite.Conn(ctx, s.db).
		Where("recipient_id = ?", recipient.String()).
		Order("created_at DESC, rowid DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	out := make([]*models.Notification, 0, len(rows))
	for _, r := range rows {
		rawID, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("list notifications: id: %w", err)
		}
		rawRecipient, err := uuid.Parse(r.RecipientID)
		if err != nil {
			return nil, fmt.Errorf("list notifications: recipient: %w", err)
		}
		out = append(out, &models.Notification{
			ID:          id.NotificationID(rawID),
			RecipientID: id.SponsorID(rawRecipient),
			Type:        models.Type(r.Type),
			Title:       r.Title,
			Content:     r.Content,
			Link:        r.Link,
			IsRead:      r.IsRead,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

func (s *SQLiteStore) MarkRead(ctx context.Context, recipient id.SponsorID, notificationID id.NotificationID) error {
	res := platformsqlite.Conn(ctx, s.db).Model(&notificationRow{}).
		Where("id = ? AND recipient_id = ?", notificationID.String(), recipient.String()).
		Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
