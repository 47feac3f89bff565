package services

import (
	"testing"
	"time"

	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateClaimEligibility(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	active := entities.Task{TaskID: "t", Status: entities.TaskStatusActive, MaxParticipants: 1}

	require.NoError(t, EvaluateClaimEligibility(active, nil, now))

	cancelled := entities.ClaimRecord{Status: entities.ClaimStatusCancelled}
	require.NoError(t, EvaluateClaimEligibility(active, &cancelled, now))

	rejected := entities.ClaimRecord{Status: entities.ClaimStatusRejected}
	assert.ErrorIs(t, EvaluateClaimEligibility(active, &rejected, now), domainerrors.ErrAlreadyClaimed)

	full := active
	full.CurrentParticipants = 1
	assert.ErrorIs(t, EvaluateClaimEligibility(full, nil, now), domainerrors.ErrCapacityFull)

	closed := active
	closed.Status = entities.TaskStatusClosed
	assert.ErrorIs(t, EvaluateClaimEligibility(closed, nil, now), domainerrors.ErrTaskNotClaimable)
}

func TestEnsureTransitionErrors(t *testing.T) {
	approved := entities.ClaimRecord{Status: entities.ClaimStatusApproved}
	assert.ErrorIs(t, EnsureTransition(approved, entities.ClaimStatusCancelled), domainerrors.ErrTerminalState)
	assert.ErrorIs(t, EnsureTransition(approved, entities.ClaimStatusSubmitted), domainerrors.ErrWrongState)

	claimed := entities.ClaimRecord{Status: entities.ClaimStatusClaimed}
	assert.ErrorIs(t, EnsureTransition(claimed, entities.ClaimStatusApproved), domainerrors.ErrWrongState)
	assert.NoError(t, EnsureTransition(claimed, entities.ClaimStatusCancelled))
}

func TestQuotaWindowStart(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	local := time.Date(2026, 6, 16, 3, 0, 0, 0, shanghai)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), QuotaWindowStart(local))
}
