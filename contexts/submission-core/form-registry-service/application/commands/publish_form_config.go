package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "taskhall/contexts/submission-core/form-registry-service/application"
	domainerrors "taskhall/contexts/submission-core/form-registry-service/domain/errors"
	"taskhall/contexts/submission-core/form-registry-service/domain/services"
	"taskhall/contexts/submission-core/form-registry-service/ports"
	"taskhall/kernel/faults"
	"taskhall/kernel/formschema"
)

type PublishFormConfigCommand struct {
	Document []byte
	ActorID  string
	Activate bool
}

type PublishFormConfigResult struct {
	Config formschema.FormConfig
}

type PublishFormConfigUseCase struct {
	Configs   ports.ConfigRepository
	Cache     ports.ActiveConfigCache
	Documents ports.DocumentValidator
	Clock     ports.Clock
	IDs       ports.IDGenerator
	Logger    *slog.Logger
}

// Execute validates the authored document in two passes (document shape,
// then form semantics), stores it as a new version and optionally activates
// it.
func (uc PublishFormConfigUseCase) Execute(ctx context.Context, cmd PublishFormConfigCommand) (PublishFormConfigResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if uc.Documents != nil {
		if problems := uc.Documents.ValidateDocument(cmd.Document); len(problems) > 0 {
			logger.Warn("form config document rejected",
				"event", "form_config_document_rejected",
				"module", "submission-core/form-registry-service",
				"layer", "application",
				"problem_count", len(problems),
			)
			return PublishFormConfigResult{}, faults.NewValidationError(problems)
		}
	}

	var draft formschema.FormConfig
	if err := json.Unmarshal(cmd.Document, &draft); err != nil {
		return PublishFormConfigResult{}, domainerrors.ErrInvalidFormDocument
	}

	configID, err := uc.IDs.NewID(ctx)
	if err != nil {
		return PublishFormConfigResult{}, err
	}
	now := uc.now()
	prepared, err := services.PrepareVersion(draft, configID, cmd.ActorID, now)
	if err != nil {
		logger.Warn("form config rejected",
			"event", "form_config_rejected",
			"module", "submission-core/form-registry-service",
			"layer", "application",
			"kind", string(draft.Kind),
			"error", err.Error(),
		)
		return PublishFormConfigResult{}, err
	}

	stored, err := uc.Configs.CreateConfig(ctx, prepared)
	if err != nil {
		logger.Error("form config create failed",
			"event", "form_config_create_failed",
			"module", "submission-core/form-registry-service",
			"layer", "application",
			"config_id", configID,
			"error", err.Error(),
		)
		return PublishFormConfigResult{}, err
	}

	logger.Info("form config published",
		"event", "form_config_published",
		"module", "submission-core/form-registry-service",
		"layer", "application",
		"config_id", stored.ID,
		"kind", string(stored.Kind),
		"version", stored.Version,
		"actor_id", cmd.ActorID,
	)

	if !cmd.Activate {
		return PublishFormConfigResult{Config: stored}, nil
	}

	activated, err := ActivateFormConfigUseCase{
		Configs: uc.Configs,
		Cache:   uc.Cache,
		Clock:   uc.Clock,
		Logger:  uc.Logger,
	}.Execute(ctx, ActivateFormConfigCommand{ConfigID: stored.ID, ActorID: cmd.ActorID})
	if err != nil {
		return PublishFormConfigResult{}, err
	}
	return PublishFormConfigResult{Config: activated.Config}, nil
}

func (uc PublishFormConfigUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
