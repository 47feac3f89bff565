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

type CancelClaimCommand struct {
	ClaimID string
	UserID  string
}

type CancelClaimUseCase struct {
	Claims ports.ClaimRepository
	Clock  ports.Clock
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

// Execute releases the claimant's slot. The daily quota unit stays consumed.
func (u CancelClaimUseCase) Execute(ctx context.Context, cmd CancelClaimCommand) (entities.ClaimRecord, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ClaimID) == "" || strings.TrimSpace(cmd.UserID) == "" {
		return entities.ClaimRecord{}, domainerrors.ErrInvalidRequest
	}

	claim, err := u.Claims.GetClaim(ctx, cmd.ClaimID)
	if err != nil {
		return entities.ClaimRecord{}, err
	}
	if err := services.EnsureOwner(claim, cmd.UserID); err != nil {
		return entities.ClaimRecord{}, err
	}
	if err := services.EnsureTransition(claim, entities.ClaimStatusCancelled); err != nil {
		return entities.ClaimRecord{}, err
	}

	now := resolveNow(u.Clock)
	event, err := newTaskEvent(ctx, u.IDs, EventTaskCancelled, claim.TaskID, now, map[string]any{
		"claim_id":       claim.ClaimID,
		"task_id":        claim.TaskID,
		"user_id":        claim.UserID,
		"previous_state": string(claim.Status),
	})
	if err != nil {
		return entities.ClaimRecord{}, err
	}

	updated, err := u.Claims.CancelClaim(ctx, claim.ClaimID, now, event)
	if err != nil {
		logger.Warn("cancel claim failed",
			"event", "cancel_claim_failed",
			"module", moduleName,
			"layer", "application",
			"claim_id", claim.ClaimID,
			"error", err.Error(),
		)
		return entities.ClaimRecord{}, err
	}

	logger.Info("claim cancelled",
		"event", "claim_cancelled",
		"module", moduleName,
		"layer", "application",
		"claim_id", updated.ClaimID,
		"task_id", updated.TaskID,
		"user_id", updated.UserID,
	)
	return updated, nil
}
