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

type ClaimTaskCommand struct {
	TaskID string
	UserID string
}

type ClaimTaskResult struct {
	Claim entities.ClaimRecord
}

type ClaimTaskUseCase struct {
	Tasks      ports.TaskRepository
	Claims     ports.ClaimRepository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	DailyLimit int
	Logger     *slog.Logger
}

// Execute runs the claim workflow in this order:
// 1) task and duplicate pre-checks for a fast, precise rejection
// 2) atomic reservation of duplicate guard, slot and daily quota
// 3) claim row and task.claimed outbox event committed together.
func (u ClaimTaskUseCase) Execute(ctx context.Context, cmd ClaimTaskCommand) (ClaimTaskResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.TaskID) == "" || strings.TrimSpace(cmd.UserID) == "" {
		return ClaimTaskResult{}, domainerrors.ErrInvalidRequest
	}
	now := resolveNow(u.Clock)

	task, err := u.Tasks.GetTask(ctx, cmd.TaskID)
	if err != nil {
		return ClaimTaskResult{}, err
	}
	existing, found, err := u.Claims.FindActiveClaim(ctx, cmd.UserID, cmd.TaskID)
	if err != nil {
		return ClaimTaskResult{}, err
	}
	var existingClaim *entities.ClaimRecord
	if found {
		existingClaim = &existing
	}
	if err := services.EvaluateClaimEligibility(task, existingClaim, now); err != nil {
		logger.Warn("claim task rejected",
			"event", "claim_task_rejected",
			"module", moduleName,
			"layer", "application",
			"task_id", cmd.TaskID,
			"user_id", cmd.UserID,
			"error", err.Error(),
		)
		return ClaimTaskResult{}, err
	}

	claimID, err := u.IDs.NewID(ctx)
	if err != nil {
		return ClaimTaskResult{}, err
	}
	claim, ok := entities.NewClaim(claimID, cmd.UserID, cmd.TaskID, now)
	if !ok {
		return ClaimTaskResult{}, domainerrors.ErrInvalidRequest
	}
	event, err := newTaskEvent(ctx, u.IDs, EventTaskClaimed, task.TaskID, now, map[string]any{
		"claim_id":   claim.ClaimID,
		"task_id":    claim.TaskID,
		"user_id":    claim.UserID,
		"claimed_at": claim.ClaimedAt,
	})
	if err != nil {
		return ClaimTaskResult{}, err
	}

	if err := u.Claims.ReserveClaim(ctx, ports.ClaimReservation{
		Claim:       claim,
		DailyLimit:  u.DailyLimit,
		WindowStart: services.QuotaWindowStart(now),
		Event:       event,
	}); err != nil {
		logger.Warn("claim task reservation failed",
			"event", "claim_task_reservation_failed",
			"module", moduleName,
			"layer", "application",
			"task_id", cmd.TaskID,
			"user_id", cmd.UserID,
			"error", err.Error(),
		)
		return ClaimTaskResult{}, err
	}

	logger.Info("task claimed",
		"event", "task_claimed",
		"module", moduleName,
		"layer", "application",
		"claim_id", claim.ClaimID,
		"task_id", claim.TaskID,
		"user_id", claim.UserID,
	)
	return ClaimTaskResult{Claim: claim}, nil
}
