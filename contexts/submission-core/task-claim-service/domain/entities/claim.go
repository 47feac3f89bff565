package entities

import (
	"strings"
	"time"
)

type ClaimStatus string

const (
	ClaimStatusClaimed   ClaimStatus = "claimed"
	ClaimStatusSubmitted ClaimStatus = "submitted"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusCancelled ClaimStatus = "cancelled"
)

var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimStatusClaimed:   {ClaimStatusSubmitted, ClaimStatusCancelled},
	ClaimStatusSubmitted: {ClaimStatusApproved, ClaimStatusRejected, ClaimStatusCancelled},
}

// CanTransition reports whether the lifecycle allows moving from s to next.
func (s ClaimStatus) CanTransition(next ClaimStatus) bool {
	for _, allowed := range claimTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ClaimStatus) IsTerminal() bool {
	return len(claimTransitions[s]) == 0
}

// IsActive is true for every status except cancelled. A user holds at most
// one active claim per task.
func (s ClaimStatus) IsActive() bool {
	return s != ClaimStatusCancelled
}

// OccupiesSlot reports whether a claim in this status counts toward the
// task's participant total.
func (s ClaimStatus) OccupiesSlot() bool {
	return s == ClaimStatusClaimed || s == ClaimStatusSubmitted || s == ClaimStatusApproved
}

type ReviewDecision string

const (
	ReviewDecisionApproved ReviewDecision = "approved"
	ReviewDecisionRejected ReviewDecision = "rejected"
)

func (d ReviewDecision) Valid() bool {
	return d == ReviewDecisionApproved || d == ReviewDecisionRejected
}

func (d ReviewDecision) Status() ClaimStatus {
	if d == ReviewDecisionApproved {
		return ClaimStatusApproved
	}
	return ClaimStatusRejected
}

// ClaimRecord tracks one user's progress through one task.
type ClaimRecord struct {
	ClaimID        string
	UserID         string
	TaskID         string
	Status         ClaimStatus
	SubmissionID   string
	ReviewDecision ReviewDecision
	ReviewerID     string
	Feedback       string
	RewardMinor    *int64
	ClaimedAt      time.Time
	SubmittedAt    *time.Time
	ReviewedAt     *time.Time
	CancelledAt    *time.Time
	UpdatedAt      time.Time
}

func NewClaim(claimID string, userID string, taskID string, now time.Time) (ClaimRecord, bool) {
	if strings.TrimSpace(claimID) == "" || strings.TrimSpace(userID) == "" || strings.TrimSpace(taskID) == "" {
		return ClaimRecord{}, false
	}
	now = now.UTC()
	return ClaimRecord{
		ClaimID:   claimID,
		UserID:    userID,
		TaskID:    taskID,
		Status:    ClaimStatusClaimed,
		ClaimedAt: now,
		UpdatedAt: now,
	}, true
}
