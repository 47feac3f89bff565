package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "taskhall/contexts/submission-core/task-claim-service/application"
	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
	"taskhall/contexts/submission-core/task-claim-service/domain/services"
	"taskhall/contexts/submission-core/task-claim-service/ports"
	"taskhall/kernel/faults"
	"taskhall/kernel/formschema"
)

type SubmitClaimCommand struct {
	ClaimID string
	UserID  string
	Data    formschema.Payload
	// Files are uploaded descriptors keyed by field name. They fill fields
	// the data payload leaves blank.
	Files map[string][]formschema.FileDescriptor
}

type SubmitClaimResult struct {
	Claim      entities.ClaimRecord
	Submission entities.Submission
}

type SubmitClaimUseCase struct {
	Tasks  ports.TaskRepository
	Claims ports.ClaimRepository
	Forms  ports.FormConfigSource
	Clock  ports.Clock
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

// Execute validates the payload against the task's form and, only when it
// is valid, moves the claim to submitted together with the stored submission.
func (u SubmitClaimUseCase) Execute(ctx context.Context, cmd SubmitClaimCommand) (SubmitClaimResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ClaimID) == "" || strings.TrimSpace(cmd.UserID) == "" {
		return SubmitClaimResult{}, domainerrors.ErrInvalidRequest
	}

	claim, err := u.Claims.GetClaim(ctx, cmd.ClaimID)
	if err != nil {
		return SubmitClaimResult{}, err
	}
	if err := services.EnsureOwner(claim, cmd.UserID); err != nil {
		return SubmitClaimResult{}, err
	}
	if err := services.EnsureTransition(claim, entities.ClaimStatusSubmitted); err != nil {
		return SubmitClaimResult{}, err
	}

	task, err := u.Tasks.GetTask(ctx, claim.TaskID)
	if err != nil {
		return SubmitClaimResult{}, err
	}
	cfg, err := u.resolveConfig(ctx, task)
	if err != nil {
		return SubmitClaimResult{}, err
	}

	now := resolveNow(u.Clock)
	data := mergeFiles(cmd.Data, cmd.Files)
	validator := formschema.NewValidator(func() time.Time { return now })
	result := validator.Validate(data, cfg)
	if !result.IsValid {
		logger.Info("task submission rejected by form validation",
			"event", "submit_claim_validation_failed",
			"module", moduleName,
			"layer", "application",
			"claim_id", claim.ClaimID,
			"config_id", cfg.ID,
			"error_count", len(result.Errors),
		)
		return SubmitClaimResult{}, faults.NewValidationError(result.Errors)
	}

	submissionID, err := u.IDs.NewID(ctx)
	if err != nil {
		return SubmitClaimResult{}, err
	}
	submission := entities.Submission{
		SubmissionID: submissionID,
		ClaimID:      claim.ClaimID,
		TaskID:       claim.TaskID,
		UserID:       claim.UserID,
		FormConfigID: cfg.ID,
		Data:         data,
		SubmittedAt:  now,
	}
	event, err := newTaskEvent(ctx, u.IDs, EventTaskSubmitted, claim.TaskID, now, map[string]any{
		"claim_id":       claim.ClaimID,
		"submission_id":  submission.SubmissionID,
		"task_id":        claim.TaskID,
		"user_id":        claim.UserID,
		"form_config_id": cfg.ID,
	})
	if err != nil {
		return SubmitClaimResult{}, err
	}

	updated, err := u.Claims.SubmitClaim(ctx, submission, event)
	if err != nil {
		logger.Warn("submit claim write failed",
			"event", "submit_claim_write_failed",
			"module", moduleName,
			"layer", "application",
			"claim_id", claim.ClaimID,
			"error", err.Error(),
		)
		return SubmitClaimResult{}, err
	}

	logger.Info("task submitted",
		"event", "task_submitted",
		"module", moduleName,
		"layer", "application",
		"claim_id", updated.ClaimID,
		"submission_id", submission.SubmissionID,
		"task_id", updated.TaskID,
	)
	return SubmitClaimResult{Claim: updated, Submission: submission}, nil
}

// resolveConfig prefers the config pinned on the task and falls back to the
// active task form.
func (u SubmitClaimUseCase) resolveConfig(ctx context.Context, task entities.Task) (formschema.FormConfig, error) {
	var (
		cfg formschema.FormConfig
		err error
	)
	if task.FormConfigID != "" {
		cfg, err = u.Forms.GetConfig(ctx, task.FormConfigID)
	} else {
		cfg, err = u.Forms.CurrentConfig(ctx, formschema.FormKindTask)
	}
	if err != nil {
		return formschema.FormConfig{}, err
	}
	if cfg.Kind != formschema.FormKindTask {
		return formschema.FormConfig{}, domainerrors.ErrFormKindMismatch
	}
	return cfg, nil
}

func mergeFiles(data formschema.Payload, files map[string][]formschema.FileDescriptor) formschema.Payload {
	merged := make(formschema.Payload, len(data)+len(files))
	for key, value := range data {
		merged[key] = value
	}
	for field, descriptors := range files {
		if len(descriptors) == 0 || !formschema.IsBlank(merged[field]) {
			continue
		}
		merged[field] = append([]formschema.FileDescriptor(nil), descriptors...)
	}
	return merged
}
