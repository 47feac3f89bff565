package queries

import (
	"context"

	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
	"taskhall/contexts/submission-core/task-claim-service/domain/services"
	"taskhall/contexts/submission-core/task-claim-service/ports"
)

type ListUserClaimsUseCase struct {
	Claims ports.ClaimRepository
}

// Execute lists the user's claims, newest first. An empty status lists all.
func (u ListUserClaimsUseCase) Execute(ctx context.Context, userID string, status entities.ClaimStatus) ([]entities.ClaimRecord, error) {
	return u.Claims.ListClaimsByUser(ctx, userID, status)
}

type ClaimDetail struct {
	Claim      entities.ClaimRecord
	Task       entities.Task
	Submission *entities.Submission
}

type GetClaimUseCase struct {
	Tasks       ports.TaskRepository
	Claims      ports.ClaimRepository
	Submissions ports.SubmissionRepository
}

func (u GetClaimUseCase) Execute(ctx context.Context, userID string, claimID string) (ClaimDetail, error) {
	claim, err := u.Claims.GetClaim(ctx, claimID)
	if err != nil {
		return ClaimDetail{}, err
	}
	if err := services.EnsureOwner(claim, userID); err != nil {
		return ClaimDetail{}, err
	}
	task, err := u.Tasks.GetTask(ctx, claim.TaskID)
	if err != nil {
		return ClaimDetail{}, err
	}
	detail := ClaimDetail{Claim: claim, Task: task}
	submission, found, err := u.Submissions.GetSubmissionByClaim(ctx, claim.ClaimID)
	if err != nil {
		return ClaimDetail{}, err
	}
	if found {
		detail.Submission = &submission
	}
	return detail, nil
}

// UserStats summarises a user's claim history. RemainingToday is -1 when no
// daily limit applies.
type UserStats struct {
	Total          int
	ByStatus       map[entities.ClaimStatus]int
	EarnedMinor    int64
	ClaimsToday    int
	DailyLimit     int
	RemainingToday int
}

type GetUserStatsUseCase struct {
	Claims     ports.ClaimRepository
	Clock      ports.Clock
	DailyLimit int
}

func (u GetUserStatsUseCase) Execute(ctx context.Context, userID string) (UserStats, error) {
	claims, err := u.Claims.ListClaimsByUser(ctx, userID, "")
	if err != nil {
		return UserStats{}, err
	}
	windowStart := services.QuotaWindowStart(resolveNow(u.Clock))

	stats := UserStats{
		Total:      len(claims),
		ByStatus:   make(map[entities.ClaimStatus]int),
		DailyLimit: u.DailyLimit,
	}
	for _, claim := range claims {
		stats.ByStatus[claim.Status]++
		if claim.Status == entities.ClaimStatusApproved && claim.RewardMinor != nil {
			stats.EarnedMinor += *claim.RewardMinor
		}
		if !claim.ClaimedAt.Before(windowStart) {
			stats.ClaimsToday++
		}
	}
	stats.RemainingToday = -1
	if u.DailyLimit > 0 {
		stats.RemainingToday = max(u.DailyLimit-stats.ClaimsToday, 0)
	}
	return stats, nil
}

type ListReviewQueueUseCase struct {
	Submissions ports.SubmissionRepository
}

func (u ListReviewQueueUseCase) Execute(ctx context.Context, limit int) ([]entities.Submission, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.Submissions.ListPendingReview(ctx, limit)
}

type ListSubmissionsQuery struct {
	TaskID string
	Status entities.ClaimStatus
	Limit  int
	Offset int
}

type ListSubmissionsUseCase struct {
	Submissions ports.SubmissionRepository
}

// Execute pages through every submission, reviewed or not. Status filters on
// the owning claim, so only states a submitted claim can reach are accepted.
func (u ListSubmissionsUseCase) Execute(ctx context.Context, query ListSubmissionsQuery) ([]ports.SubmissionRecord, error) {
	switch query.Status {
	case "", entities.ClaimStatusSubmitted, entities.ClaimStatusApproved,
		entities.ClaimStatusRejected, entities.ClaimStatusCancelled:
	default:
		return nil, domainerrors.ErrInvalidRequest
	}
	if query.Offset < 0 {
		return nil, domainerrors.ErrInvalidRequest
	}
	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.Submissions.ListSubmissions(ctx, ports.SubmissionListFilter{
		TaskID: query.TaskID,
		Status: query.Status,
		Limit:  limit,
		Offset: query.Offset,
	})
}
