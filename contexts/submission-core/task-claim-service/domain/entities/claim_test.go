package entities

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []ClaimStatus{
	ClaimStatusClaimed,
	ClaimStatusSubmitted,
	ClaimStatusApproved,
	ClaimStatusRejected,
	ClaimStatusCancelled,
}

func TestClaimTransitions(t *testing.T) {
	tests := []struct {
		from ClaimStatus
		to   ClaimStatus
		want bool
	}{
		{ClaimStatusClaimed, ClaimStatusSubmitted, true},
		{ClaimStatusClaimed, ClaimStatusCancelled, true},
		{ClaimStatusClaimed, ClaimStatusApproved, false},
		{ClaimStatusSubmitted, ClaimStatusApproved, true},
		{ClaimStatusSubmitted, ClaimStatusRejected, true},
		{ClaimStatusSubmitted, ClaimStatusCancelled, true},
		{ClaimStatusSubmitted, ClaimStatusClaimed, false},
		{ClaimStatusApproved, ClaimStatusCancelled, false},
		{ClaimStatusRejected, ClaimStatusSubmitted, false},
		{ClaimStatusCancelled, ClaimStatusClaimed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.True(t, ClaimStatusApproved.IsTerminal())
	assert.True(t, ClaimStatusRejected.IsTerminal())
	assert.True(t, ClaimStatusCancelled.IsTerminal())
	assert.False(t, ClaimStatusSubmitted.IsTerminal())
	assert.False(t, ClaimStatusCancelled.IsActive())
	assert.False(t, ClaimStatusRejected.OccupiesSlot())
}

func TestTerminalStatusesHaveNoExit(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("terminal statuses reject every transition", prop.ForAll(
		func(fromIdx int, toIdx int) bool {
			from, to := allStatuses[fromIdx], allStatuses[toIdx]
			if from.IsTerminal() {
				return !from.CanTransition(to)
			}
			return true
		},
		gen.IntRange(0, len(allStatuses)-1),
		gen.IntRange(0, len(allStatuses)-1),
	))

	properties.TestingRun(t)
}

func TestTaskCapacity(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(time.Hour)

	unlimited := Task{Status: TaskStatusActive, CurrentParticipants: 1000}
	assert.True(t, unlimited.HasCapacity())
	assert.Equal(t, -1, unlimited.RemainingSlots())

	capped := Task{Status: TaskStatusActive, MaxParticipants: 2, CurrentParticipants: 2, Deadline: &deadline}
	assert.False(t, capped.HasCapacity())
	assert.Equal(t, 0, capped.RemainingSlots())
	assert.True(t, capped.IsClaimable(now))
	assert.False(t, capped.IsClaimable(deadline))

	paused := Task{Status: TaskStatusPaused}
	assert.False(t, paused.IsClaimable(now))
}
