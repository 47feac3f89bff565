package commands

import (
	"context"
	"log/slog"
	"strings"

	application "taskhall/contexts/submission-core/task-claim-service/application"
	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
	"taskhall/contexts/submission-core/task-claim-service/domain/services"
	"taskhall/contexts/submission-core/task-claim-service/ports"
)

type ReviewSubmissionCommand struct {
	SubmissionID string
	ReviewerID   string
	Decision     entities.ReviewDecision
	Feedback     string
	// RewardMinor overrides the task reward on approval. It is ignored on
	// rejection.
	RewardMinor *int64
}

type ReviewSubmissionUseCase struct {
	Tasks       ports.TaskRepository
	Claims      ports.ClaimRepository
	Submissions ports.SubmissionRepository
	Clock       ports.Clock
	IDs         ports.IDGenerator
	Logger      *slog.Logger
}

func (u ReviewSubmissionUseCase) Execute(ctx context.Context, cmd ReviewSubmissionCommand) (entities.ClaimRecord, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ReviewerID) == "" {
		return entities.ClaimRecord{}, domainerrors.ErrActorRequired
	}
	if strings.TrimSpace(cmd.SubmissionID) == "" {
		return entities.ClaimRecord{}, domainerrors.ErrInvalidRequest
	}
	if !cmd.Decision.Valid() {
		return entities.ClaimRecord{}, domainerrors.ErrInvalidDecision
	}
	if cmd.RewardMinor != nil && *cmd.RewardMinor < 0 {
		return entities.ClaimRecord{}, domainerrors.ErrInvalidRequest
	}

	submission, err := u.Submissions.GetSubmission(ctx, cmd.SubmissionID)
	if err != nil {
		return entities.ClaimRecord{}, err
	}
	claim, err := u.Claims.GetClaim(ctx, submission.ClaimID)
	if err != nil {
		return entities.ClaimRecord{}, err
	}
	if err := services.EnsureTransition(claim, cmd.Decision.Status()); err != nil {
		return entities.ClaimRecord{}, err
	}

	var reward *int64
	if cmd.Decision == entities.ReviewDecisionApproved {
		if cmd.RewardMinor != nil {
			value := *cmd.RewardMinor
			reward = &value
		} else {
			task, err := u.Tasks.GetTask(ctx, claim.TaskID)
			if err != nil {
				return entities.ClaimRecord{}, err
			}
			value := task.RewardMinor
			reward = &value
		}
	}

	now := resolveNow(u.Clock)
	data := map[string]any{
		"claim_id":      claim.ClaimID,
		"submission_id": submission.SubmissionID,
		"task_id":       claim.TaskID,
		"user_id":       claim.UserID,
		"decision":      string(cmd.Decision),
		"reviewer_id":   cmd.ReviewerID,
	}
	if reward != nil {
		data["reward_minor"] = *reward
	}
	event, err := newTaskEvent(ctx, u.IDs, EventTaskReviewed, claim.TaskID, now, data)
	if err != nil {
		return entities.ClaimRecord{}, err
	}

	updated, err := u.Claims.ReviewClaim(ctx, ports.ReviewOutcome{
		SubmissionID: submission.SubmissionID,
		Decision:     cmd.Decision,
		ReviewerID:   cmd.ReviewerID,
		Feedback:     strings.TrimSpace(cmd.Feedback),
		RewardMinor:  reward,
		ReviewedAt:   now,
	}, event)
	if err != nil {
		logger.Warn("review submission failed",
			"event", "review_submission_failed",
			"module", moduleName,
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
		return entities.ClaimRecord{}, err
	}

	logger.Info("submission reviewed",
		"event", "submission_reviewed",
		"module", moduleName,
		"layer", "application",
		"claim_id", updated.ClaimID,
		"submission_id", submission.SubmissionID,
		"decision", string(cmd.Decision),
		"reviewer_id", cmd.ReviewerID,
	)
	return updated, nil
}
