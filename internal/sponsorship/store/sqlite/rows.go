package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
)

type sponsorRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Email     string `gorm:"uniqueIndex:sponsors_email_unique"`
	Role      string
	Active    bool
	Verified  bool
	CreatedAt time.Time
}

func (sponsorRow) TableName() string { return "sponsors" }

type childRow struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	BirthDate   time.Time
	City        string
	Gender      string
	IsSponsored bool
	SponsorID   *string
	Status      string
	Needs       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (childRow) TableName() string { return "children" }

type sponsorshipRow struct {
	ID             string `gorm:"primaryKey"`
	ChildID        string `gorm:"index"`
	SponsorID      string `gorm:"index"`
	Status         string
	StartDate      time.Time
	EndDate        *time.Time
	IsTemporary    bool
	EndPlannedDate *time.Time
	EndReason      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (sponsorshipRow) TableName() string { return "sponsorships" }

type requestRow struct {
	ID              string `gorm:"primaryKey"`
	ChildID         string `gorm:"index:sponsorship_requests_pair_idx"`
	SponsorID       string `gorm:"index:sponsorship_requests_pair_idx"`
	Status          string
	FullName        string
	Email           string
	City            string
	Motivation      string
	IsLongTerm      bool
	TermsAccepted   bool
	CreatedAt       time.Time
	DecidedAt       *time.Time
	DecidedBy       *string
	RejectionReason string
}

func (requestRow) TableName() string { return "sponsorship_requests" }

type historyRow struct {
	ID                    string `gorm:"primaryKey"`
	SponsorshipID         string `gorm:"index"`
	Action                string
	Reason                string
	PerformedBy           *string
	FromSponsorID         *string
	ToSponsorID           *string
	PreviousSponsorshipID *string
	CreatedAt             time.Time
}

func (historyRow) TableName() string { return "sponsorship_history" }

type noteRow struct {
	ID            string `gorm:"primaryKey"`
	SponsorshipID string `gorm:"index"`
	AuthorID      *string
	Content       string
	CreatedAt     time.Time
}

func (noteRow) TableName() string { return "sponsorship_notes" }

// Migrate creates the tables and the partial unique indexes that carry the
// one-current-sponsorship and one-pending-request rules.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&sponsorRow{}, &childRow{}, &sponsorshipRow{}, &requestRow{}, &historyRow{}, &noteRow{}); err != nil {
		return fmt.Errorf("automigrate sponsorship tables: %w", err)
	}
	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS sponsorships_one_current_per_child
			ON sponsorships (child_id) WHERE status IN ('active', 'paused')`,
		`CREATE UNIQUE INDEX IF NOT EXISTS sponsorship_requests_one_pending_per_pair
			ON sponsorship_requests (child_id, sponsor_id) WHERE status = 'pending'`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create partial index: %w", err)
		}
	}
	return nil
}

func sponsorIDString(sid *id.SponsorID) *string {
	if sid == nil {
		return nil
	}
	s := sid.String()
	return &s
}

func parseSponsorID(s *string) (*id.SponsorID, error) {
	if s == nil {
		return nil, nil
	}
	u, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	sid := id.SponsorID(u)
	return &sid, nil
}

func toSponsor(r sponsorRow) (*models.Sponsor, error) {
	u, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &models.Sponsor{
		ID:        id.SponsorID(u),
		Name:      r.Name,
		Email:     r.Email,
		Role:      id.Role(r.Role),
		Active:    r.Active,
		Verified:  r.Verified,
		CreatedAt: r.CreatedAt,
	}, nil
}

func fromChild(c *models.Child) (childRow, error) {
	needs, err := json.Marshal(c.Needs)
	if err != nil {
		return childRow{}, fmt.Errorf("marshal child needs: %w", err)
	}
	return childRow{
		ID:          c.ID.String(),
		Name:        c.Name,
		BirthDate:   c.BirthDate,
		City:        c.City,
		Gender:      c.Gender,
		IsSponsored: c.IsSponsored,
		SponsorID:   sponsorIDString(c.SponsorID),
		Status:      string(c.Status),
		Needs:       string(needs),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

func toChild(r childRow) (*models.Child, error) {
	u, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	sponsorID, err := parseSponsorID(r.SponsorID)
	if err != nil {
		return nil, err
	}
	c := &models.Child{
		ID:          id.ChildID(u),
		Name:        r.Name,
		BirthDate:   r.BirthDate,
		City:        r.City,
		Gender:      r.Gender,
		IsSponsored: r.IsSponsored,
		SponsorID:   sponsorID,
		Status:      models.ChildStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Needs != "" {
		if err := json.Unmarshal([]byte(r.Needs), &c.Needs); err != nil {
			return nil, fmt.Errorf("unmarshal child needs: %w", err)
		}
	}
	return c, nil
}

func fromSponsorship(s *models.Sponsorship) sponsorshipRow {
	return sponsorshipRow{
		ID:             s.ID.String(),
		ChildID:        s.ChildID.String(),
		SponsorID:      s.SponsorID.String(),
		Status:         string(s.Status),
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		IsTemporary:    s.IsTemporary,
		EndPlannedDate: s.EndPlannedDate,
		EndReason:      s.EndReason,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toSponsorship(r sponsorshipRow) (*models.Sponsorship, error) {
	sid, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	childID, err := uuid.Parse(r.ChildID)
	if err != nil {
		return nil, err
	}
	sponsorID, err := uuid.Parse(r.SponsorID)
	if err != nil {
		return nil, err
	}
	return &models.Sponsorship{
		ID:             id.SponsorshipID(sid),
		ChildID:        id.ChildID(childID),
		SponsorID:      id.SponsorID(sponsorID),
		Status:         models.SponsorshipStatus(r.Status),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		IsTemporary:    r.IsTemporary,
		EndPlannedDate: r.EndPlannedDate,
		EndReason:      r.EndReason,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func toRequest(r requestRow) (*models.SponsorshipRequest, error) {
	rid, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	childID, err := uuid.Parse(r.ChildID)
	if err != nil {
		return nil, err
	}
	sponsorID, err := uuid.Parse(r.SponsorID)
	if err != nil {
		return nil, err
	}
	decidedBy, err := parseSponsorID(r.DecidedBy)
	if err != nil {
		return nil, err
	}
	return &models.SponsorshipRequest{
		ID:        id.RequestID(rid),
		ChildID:   id.ChildID(childID),
		SponsorID: id.SponsorID(sponsorID),
		Status:    models.RequestStatus(r.Status),
		Profile: models.Profile{
			FullName:      r.FullName,
			Email:         r.Email,
			City:          r.City,
			Motivation:    r.Motivation,
			IsLongTerm:    r.IsLongTerm,
			TermsAccepted: r.TermsAccepted,
		},
		CreatedAt:       r.CreatedAt,
		DecidedAt:       r.DecidedAt,
		DecidedBy:       decidedBy,
		RejectionReason: r.RejectionReason,
	}, nil
}

func toHistory(r historyRow) (*models.HistoryEntry, error) {
	hid, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	sid, err := uuid.Parse(r.SponsorshipID)
	if err != nil {
		return nil, err
	}
	e := &models.HistoryEntry{
		ID:            id.HistoryEntryID(hid),
		SponsorshipID: id.SponsorshipID(sid),
		Action:        models.HistoryAction(r.Action),
		Reason:        r.Reason,
		CreatedAt:     r.CreatedAt,
	}
	if e.PerformedBy, err = parseSponsorID(r.PerformedBy); err != nil {
		return nil, err
	}
	if e.FromSponsorID, err = parseSponsorID(r.FromSponsorID); err != nil {
		return nil, err
	}
	if e.ToSponsorID, err = parseSponsorID(r.ToSponsorID); err != nil {
		return nil, err
	}
	if r.PreviousSponsorshipID != nil {
		prev, err := uuid.Parse(*r.PreviousSponsorshipID)
		if err != nil {
			return nil, err
		}
		p := id.SponsorshipID(prev)
		e.PreviousSponsorshipID = &p
	}
	return e, nil
}

func toNote(r noteRow) (*models.Note, error) {
	nid, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	sid, err := uuid.Parse(r.SponsorshipID)
	if err != nil {
		return nil, err
	}
	authorID, err := parseSponsorID(r.AuthorID)
	if err != nil {
		return nil, err
	}
	return &models.Note{
		ID:            id.NoteID(nid),
		SponsorshipID: id.SponsorshipID(sid),
		AuthorID:      authorID,
		Content:       r.Content,
		CreatedAt:     r.CreatedAt,
	}, nil
}
