package services

import (
	"time"

	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
)

// EvaluateClaimEligibility runs the checks that do not need the write lock.
// The repository repeats duplicate and capacity checks atomically.
func EvaluateClaimEligibility(task entities.Task, existing *entities.ClaimRecord, now time.Time) error {
	if !task.IsClaimable(now) {
		return domainerrors.ErrTaskNotClaimable
	}
	if existing != nil && existing.Status.IsActive() {
		return domainerrors.ErrAlreadyClaimed
	}
	if !task.HasCapacity() {
		return domainerrors.ErrCapacityFull
	}
	return nil
}

// EnsureOwner rejects actions by anyone but the claimant.
func EnsureOwner(claim entities.ClaimRecord, userID string) error {
	if claim.UserID != userID {
		return domainerrors.ErrNotClaimOwner
	}
	return nil
}

// EnsureTransition maps a disallowed move to the client-facing state error:
// terminal claims report TERMINAL_STATE, everything else WRONG_STATE.
func EnsureTransition(claim entities.ClaimRecord, next entities.ClaimStatus) error {
	if claim.Status.CanTransition(next) {
		return nil
	}
	if next == entities.ClaimStatusCancelled && claim.Status.IsTerminal() {
		return domainerrors.ErrTerminalState
	}
	return domainerrors.ErrWrongState
}

// QuotaWindowStart returns the start of the UTC calendar day containing now.
func QuotaWindowStart(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
