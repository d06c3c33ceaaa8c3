package service

import (
	"fmt"
	"time"

	notification "parrainage/internal/notification/models"
	"parrainage/internal/sponsorship/models"
)

func sponsorshipLink(sp *models.Sponsorship) string {
	return "/sponsorships/" + sp.ID.String()
}

func requestSubmittedNotice(r *models.SponsorshipRequest, now time.Time) *notification.Notification {
	return notification.New(r.SponsorID, notification.TypeRequestSubmitted,
		"Sponsorship request received",
		"Your sponsorship request was received and will be reviewed by our team.",
		"", now)
}

func requestApprovedNotice(r *models.SponsorshipRequest, sp *models.Sponsorship, now time.Time) *notification.Notification {
	return notification.New(r.SponsorID, notification.TypeRequestApproved,
		"Sponsorship request approved",
		"Your sponsorship request was approved. Welcome to the family!",
		sponsorshipLink(sp), now)
}

func requestRejectedNotice(r *models.SponsorshipRequest, now time.Time) *notification.Notification {
	content := "Your sponsorship request was not approved."
	if r.RejectionReason != "" {
		content = fmt.Sprintf("Your sponsorship request was not approved: %s", r.RejectionReason)
	}
	return notification.New(r.SponsorID, notification.TypeRequestRejected,
		"Sponsorship request declined", content, "", now)
}

// transitionNotice builds the notification sent to the sponsor of sp after e.
func transitionNotice(sp *models.Sponsorship, e models.Event, reason string, now time.Time) *notification.Notification {
	var (
		typ     notification.Type
		title   string
		content string
	)
	switch e {
	case models.EventPause:
		typ, title, content = notification.TypeSponsorshipPaused, "Sponsorship paused", "Your sponsorship was paused."
	case models.EventResume:
		typ, title, content = notification.TypeSponsorshipResumed, "Sponsorship resumed", "Your sponsorship is active again."
	case models.EventMarkTemporary:
		typ, title = notification.TypeSponsorshipTemporary, "Sponsorship marked temporary"
		content = "Your sponsorship is now temporary."
		if sp.EndPlannedDate != nil {
			content = fmt.Sprintf("Your sponsorship is now temporary until %s.", sp.EndPlannedDate.Format(time.DateOnly))
		}
	case models.EventTerminate:
		typ, title = notification.TypeSponsorshipEnded, "Sponsorship ended"
		content = fmt.Sprintf("Your sponsorship ends on %s.", sp.EndDate.Format(time.DateOnly))
	default:
		return nil
	}
	if reason != "" {
		content += " Reason: " + reason
	}
	return notification.New(sp.SponsorID, typ, title, content, sponsorshipLink(sp), now)
}

func transferNotices(previous, current *models.Sponsorship, now time.Time) []*notification.Notification {
	return []*notification.Notification{
		notification.New(previous.SponsorID, notification.TypeTransferredOut,
			"Sponsorship transferred",
			"The child you sponsored has been transferred to another sponsor.",
			sponsorshipLink(previous), now),
		notification.New(current.SponsorID, notification.TypeTransferredIn,
			"New sponsorship",
			"A child has been transferred to your sponsorship.",
			sponsorshipLink(current), now),
	}
}
