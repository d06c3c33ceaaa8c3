package service

import (
	"errors"

	"parrainage/internal/sponsorship/models"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/sentinel"
)

// loadFailed translates a store read error for entity what.
func loadFailed(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "%s not found", what)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+what)
}

func errAlreadySponsored() error {
	return dErrors.New(dErrors.CodeConflict, "this child is already sponsored").
		WithReason(models.ReasonAlreadySponsored)
}

func errDuplicateRequest() error {
	return dErrors.New(dErrors.CodeConflict, "a pending request already exists for this child").
		WithReason(models.ReasonDuplicateRequest)
}

func errAlreadySponsoredByYou() error {
	return dErrors.New(dErrors.CodeConflict, "you already sponsor this child").
		WithReason(models.ReasonAlreadySponsoredByYou)
}

func errChildAlreadyClaimed() error {
	return dErrors.New(dErrors.CodeConflict, "the child was claimed by another sponsorship").
		WithReason(models.ReasonChildAlreadyClaimed)
}

func errNotCurrentlySponsored() error {
	return dErrors.New(dErrors.CodeInvalidState, "the child is not currently sponsored by the source sponsor").
		WithReason(models.ReasonNotCurrentlySponsored)
}

func errRequestNotPending() error {
	return dErrors.New(dErrors.CodeConflict, "the request is no longer pending").
		WithReason(models.ReasonRequestNotPending)
}

// errConcurrentUpdate is returned when a conditional write lost a race.
func errConcurrentUpdate(what string) error {
	return dErrors.Newf(dErrors.CodeConflict, "%s was changed by a concurrent operation", what)
}
