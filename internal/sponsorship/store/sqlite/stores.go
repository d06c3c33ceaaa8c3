// Package sqlite implements the sponsorship ports on an embedded SQLite
// database through gorm. Writes join the transaction carried in the context
// by platform/sqlite.TxRunner.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"parrainage/internal/sponsorship/models"
	platformsqlite "parrainage/internal/platform/sqlite"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

// Stores bundles every sponsorship store on one database.
type Stores struct {
	Children     *ChildStore
	Sponsors     *SponsorStore
	Sponsorships *SponsorshipStore
	Requests     *RequestStore
	History      *HistoryStore
	Notes        *NoteStore
}

// New builds the stores. Call Migrate first.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Children:     &ChildStore{db: db},
		Sponsors:     &SponsorStore{db: db},
		Sponsorships: &SponsorshipStore{db: db},
		Requests:     &RequestStore{db: db},
		History:      &HistoryStore{db: db},
		Notes:        &NoteStore{db: db},
	}
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// conditional interprets the result of a guarded update.
func conditional(conn *gorm.DB, res *gorm.DB, model any, key, op string) error {
	if res.Error != nil {
		if platformsqlite.IsUniqueViolation(res.Error) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("%s: %w", op, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := conn.Model(model).Where("id = ?", key).Count(&count).Error; err != nil {
		return fmt.Errorf("%s existence check: %w", op, err)
	}
	if count == 0 {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

type SponsorStore struct {
	db *gorm.DB
}

func (s *SponsorStore) Create(ctx context.Context, sp *models.Sponsor) error {
	row := sponsorRow{
		ID:        sp.ID.String(),
		Name:      sp.Name,
		Email:     strings.ToLower(sp.Email),
		Role:      sp.Role.String(),
		Active:    sp.Active,
		Verified:  sp.Verified,
		CreatedAt: sp.CreatedAt,
	}
	if err := platformsqlite.Conn(ctx, s.db).Create(&row).Error; err != nil {
		if platformsqlite.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert sponsor: %w", err)
	}
	return nil
}

func (s *SponsorStore) FindByID(ctx context.Context, sponsorID id.SponsorID) (*models.Sponsor, error) {
	var row sponsorRow
	if err := platformsqlite.Conn(ctx, s.db).Where("id = ?", sponsorID.String()).First(&row).Error; err != nil {
		if notFound(err) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find sponsor by id: %w", err)
	}
	return toSponsor(row)
}

type ChildStore struct {
	db *gorm.DB
}

func (s *ChildStore) Create(ctx context.Context, c *models.Child) error {
	row, err := fromChild(c)
	if err != nil {
		return err
	}
	if err := platformsqlite.Conn(ctx, s.db).Create(&row).Error; err != nil {
		if platformsqlite.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert child: %w", err)
	}
	return nil
}

func (s *ChildStore) FindByID(ctx context.Context, childID id.ChildID) (*models.Child, error) {
	var row childRow
	if err := platformsqlite.Conn(ctx, s.db).Where("id = ?", childID.String()).First(&row).Error; err != nil {
		if notFound(err) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find child by id: %w", err)
	}
	return toChild(row)
}

func (s *ChildStore) Claim(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error {
	conn := platformsqlite.Conn(ctx, s.db)
	res := conn.Model(&childRow{}).
		Where("id = ? AND (is_sponsored = ? OR sponsor_id = ?)", childID.String(), false, sponsorID.String()).
		Updates(map[string]any{
			"is_sponsored": true,
			"sponsor_id":   sponsorID.String(),
			"status":       string(models.ChildStatusSponsored),
			"updated_at":   now,
		})
	return conditional(conn, res, &childRow{}, childID.String(), "claim child")
}

func (s *ChildStore) Release(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error {
	conn := platformsqlite.Conn(ctx, s.db)
	res := conn.Model(&childRow{}).
		Where("id = ? AND (is_sponsored = ? OR sponsor_id = ?)", childID.String(), false, sponsorID.String()).
		Updates(map[string]any{
			"is_sponsored": false,
			"sponsor_id":   nil,
			"status":       string(models.ChildStatusAvailable),
			"updated_at":   now,
		})
	return conditional(conn, res, &childRow{}, childID.String(), "release child")
}

func (s *ChildStore) Reassign(ctx context.Context, childID id.ChildID, from, to id.SponsorID, now time.Time) error {
	conn := platformsqlite.Conn(ctx, s.db)
	res := conn.Model(&childRow{}).
		Where("id = ? AND is_sponsored = ? AND sponsor_id = ?", childID.String(), true, from.String()).
		Updates(map[string]any{
			"sponsor_id": to.String(),
			"updated_at": now,
		})
	return conditional(conn, res, &childRow{}, childID.String(), "reassign child")
}

func (s *ChildStore) SaveSponsorship(ctx context.Context, c *models.Child) error {
	res := platformsqlite.Conn(ctx, s.db).Model(&childRow{}).
		Where("id = ?", c.ID.String()).
		Updates(map[string]any{
			"is_sponsored": c.IsSponsored,
			"sponsor_id":   sponsorIDString(c.SponsorID),
			"status":       string(c.Status),
			"updated_at":   c.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("save child sponsorship: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type SponsorshipStore struct {
	db *gorm.DB
}

func (s *SponsorshipStore) Create(ctx context.Context, sp *models.Sponsorship) error {
	row := fromSponsorship(sp)
	if err := platformsqlite.Conn(ctx, s.db).Create(&row).Error; err != nil {
		if platformsqlite.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert sponsorship: %w", err)
	}
	return nil
}

func (s *SponsorshipStore) FindByID(ctx context.Context, sponsorshipID id.SponsorshipID) (*models.Sponsorship, error) {
	var row sponsorshipRow
	if err := platformsqlite.Conn(ctx, s.db).Where("id = ?", sponsorshipID.String()).First(&row).Error; err != nil {
		if notFound(err) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find sponsorship by id: %w", err)
	}
	return toSponsorship(row)
}

func (s *SponsorshipStore) ListByIDs(ctx context.Context, ids []id.SponsorshipID) ([]*models.Sponsorship, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, sid := range ids {
		raw[i] = sid.String()
	}
	return s.list(ctx, "list sponsorships by ids", "id IN ?", raw)
}

func (s *SponsorshipStore) FindCurrentByChild(ctx context.Context, childID id.ChildID) (*models.Sponsorship, error) {
	var row sponsorshipRow
	err := platformsqlite.Conn(ctx, s.db).
		Where("child_id = ? AND status IN ?", childID.String(),
			[]string{string(models.SponsorshipStatusActive), string(models.SponsorshipStatusPaused)}).
		First(&row).Error
	if err != nil {
		if notFound(err) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find current sponsorship by child: %w", err)
	}
	return toSponsorship(row)
}

func (s *SponsorshipStore) ListBySponsor(ctx context.Context, sponsorID id.SponsorID) ([]*models.Sponsorship, error) {
	return s.list(ctx, "list sponsorships by sponsor", "sponsor_id = ?", sponsorID.String())
}

func (s *SponsorshipStore) ListByChild(ctx context.Context, childID id.ChildID) ([]*models.Sponsorship, error) {
	return s.list(ctx, "list sponsorships by child", "child_id = ?", childID.String())
}

func (s *SponsorshipStore) Update(ctx context.Context, sp *models.Sponsorship, expected models.State) error {
	expectedStatus, expectedTemporary := expected.Columns()
	conn := platformsqlite.Conn(ctx, s.db)
	res := conn.Model(&sponsorshipRow{}).
		Where("id = ? AND status = ? AND is_temporary = ?", sp.ID.String(), string(expectedStatus), expectedTemporary).
		Updates(map[string]any{
			"status":           string(sp.Status),
			"end_date":         sp.EndDate,
			"is_temporary":     sp.IsTemporary,
			"end_planned_date": sp.EndPlannedDate,
			"end_reason":       sp.EndReason,
			"updated_at":       sp.UpdatedAt,
		})
	return conditional(conn, res, &sponsorshipRow{}, sp.ID.String(), "update sponsorship")
}

func (s *SponsorshipStore) Delete(ctx context.Context, sponsorshipID id.SponsorshipID) error {
	res := platformsqlite.Conn(ctx, s.db).Where("id = ?", sponsorshipID.String()).Delete(&sponsorshipRow{})
	if res.Error != nil {
		return fmt.Errorf("delete sponsorship: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *SponsorshipStore) list(ctx context.Context, op, where string, args ...any) ([]*models.Sponsorship, error) {
	var rows []sponsorshipRow
	if err := platformsqlite.Conn(ctx, s.db).Where(where, args...).Order("created_at, rowid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]*models.Sponsorship, 0, len(rows))
	for _, row := range rows {
		sp, err := toSponsorship(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, sp)
	}
	return out, nil
}

type RequestStore struct {
	db *gorm.DB
}

func (s *RequestStore) Create(ctx context.Context, r *models.SponsorshipRequest) error {
	row := requestRow{
		ID:            r.ID.String(),
		ChildID:       r.ChildID.String(),
		SponsorID:     r.SponsorID.String(),
		Status:        string(r.Status),
		FullName:      r.FullName,
		Email:         r.Email,
		City:          r.City,
		Motivation:    r.Motivation,
		IsLongTerm:    r.IsLongTerm,
		TermsAccepted: r.TermsAccepted,
		CreatedAt:     r.CreatedAt,
	}
	if err := platformsqlite.Conn(ctx, s.db).Create(&row).Error; err != nil {
		if platformsqlite.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert sponsorship request: %w", err)
	}
	return nil
}

func (s *RequestStore) FindByID(ctx context.Context, requestID id.RequestID) (*models.SponsorshipRequest, error) {
	var row requestRow
	if err := platformsqlite.Conn(ctx, s.db).Where("id = ?", requestID.String()).First(&row).Error; err != nil {
		if notFound(err) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find sponsorship request by id: %w", err)
	}
	return toRequest(row)
}

func (s *RequestStore) FindLatestForPair(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID) (*models.SponsorshipRequest, error) {
	var row requestRow
	err := platformsqlite.Conn(ctx, s.db).
		Where("child_id = ? AND sponsor_id = ?", childID.String(), sponsorID.String()).
		Order("created_at DESC, rowid DESC").
		First(&row).Error
	if err != nil {
		if notFound(err) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find latest sponsorship request: %w", err)
	}
	return toRequest(row)
}

func (s *RequestStore) ListByStatus(ctx context.Context, status models.RequestStatus) ([]*models.SponsorshipRequest, error) {
	q := platformsqlite.Conn(ctx, s.db).Order("created_at, rowid")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	var rows []requestRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sponsorship requests: %w", err)
	}
	out := make([]*models.SponsorshipRequest, 0, len(rows))
	for _, row := range rows {
		r, err := toRequest(row)
		if err != nil {
			return nil, fmt.Errorf("list sponsorship requests: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RequestStore) Decide(ctx context.Context, r *models.SponsorshipRequest) error {
	conn := platformsqlite.Conn(ctx, s.db)
	res := conn.Model(&requestRow{}).
		Where("id = ? AND status = ?", r.ID.String(), string(models.RequestStatusPending)).
		Updates(map[string]any{
			"status":           string(r.Status),
			"decided_at":       r.DecidedAt,
			"decided_by":       sponsorIDString(r.DecidedBy),
			"rejection_reason": r.RejectionReason,
		})
	return conditional(conn, res, &requestRow{}, r.ID.String(), "decide sponsorship request")
}

func (s *RequestStore) Reopen(ctx context.Context, requestID id.RequestID) error {
	res := platformsqlite.Conn(ctx, s.db).Model(&requestRow{}).
		Where("id = ?", requestID.String()).
		Updates(map[string]any{
			"status":           string(models.RequestStatusPending),
			"decided_at":       nil,
			"decided_by":       nil,
			"rejection_reason": "",
		})
	if res.Error != nil {
		if platformsqlite.IsUniqueViolation(res.Error) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("reopen sponsorship request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type HistoryStore struct {
	db *gorm.DB
}

func (s *HistoryStore) Append(ctx context.Context, e *models.HistoryEntry) error {
	row := historyRow{
		ID:            e.ID.String(),
		SponsorshipID: e.SponsorshipID.String(),
		Action:        string(e.Action),
		Reason:        e.Reason,
		PerformedBy:   sponsorIDString(e.PerformedBy),
		FromSponsorID: sponsorIDString(e.FromSponsorID),
		ToSponsorID:   sponsorIDString(e.ToSponsorID),
		CreatedAt:     e.CreatedAt,
	}
	if e.PreviousSponsorshipID != nil {
		prev := e.PreviousSponsorshipID.String()
		row.PreviousSponsorshipID = &prev
	}
	if err := platformsqlite.Conn(ctx, s.db).Create(&row).Error; err != nil {
		if platformsqlite.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

func (s *HistoryStore) ListBySponsorship(ctx context.Context, sponsorshipID id.SponsorshipID) ([]*models.HistoryEntry, error) {
	var rows []historyRow
	if err := platformsqlite.Conn(ctx, s.db).
		Where("sponsorship_id = ?", sponsorshipID.String()).
		Order("created_at, rowid").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]*models.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		e, err := toHistory(row)
		if err != nil {
			return nil, fmt.Errorf("list history: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

type NoteStore struct {
	db *gorm.DB
}

func (s *NoteStore) Append(ctx context.Context, n *models.Note) error {
	row := noteRow{
		ID:            n.ID.String(),
		SponsorshipID: n.SponsorshipID.String(),
		AuthorID:      sponsorIDString(n.AuthorID),
		Content:       n.Content,
		CreatedAt:     n.CreatedAt,
	}
	if err := platformsqlite.Conn(ctx, s.db).Create(&row).Error; err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	return nil
}

func (s *NoteStore) ListBySponsorship(ctx context.Context, sponsorshipID id.SponsorshipID) ([]*models.Note, error) {
	var rows []noteRow
	if err := platformsqlite.Conn(ctx, s.db).
		Where("sponsorship_id = ?", sponsorshipID.String()).
		Order("created_at, rowid").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	out := make([]*models.Note, 0, len(rows))
	for _, row := range rows {
		n, err := toNote(row)
		if err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
