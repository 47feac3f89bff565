package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "taskhall/contexts/submission-core/form-registry-service/application"
	domainerrors "taskhall/contexts/submission-core/form-registry-service/domain/errors"
	"taskhall/contexts/submission-core/form-registry-service/ports"
	"taskhall/kernel/formschema"
)

type ActivateFormConfigCommand struct {
	ConfigID string
	ActorID  string
}

type ActivateFormConfigResult struct {
	Config formschema.FormConfig
}

type ActivateFormConfigUseCase struct {
	Configs ports.ConfigRepository
	Cache   ports.ActiveConfigCache
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc ActivateFormConfigUseCase) Execute(ctx context.Context, cmd ActivateFormConfigCommand) (ActivateFormConfigResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return ActivateFormConfigResult{}, domainerrors.ErrActorRequired
	}

	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}

	activated, err := uc.Configs.ActivateConfig(ctx, strings.TrimSpace(cmd.ConfigID), now)
	if err != nil {
		logger.Error("form config activation failed",
			"event", "form_config_activate_failed",
			"module", "submission-core/form-registry-service",
			"layer", "application",
			"config_id", cmd.ConfigID,
			"error", err.Error(),
		)
		return ActivateFormConfigResult{}, err
	}
	invalidateActive(ctx, uc.Cache, activated.Kind, logger)

	logger.Info("form config activated",
		"event", "form_config_activated",
		"module", "submission-core/form-registry-service",
		"layer", "application",
		"config_id", activated.ID,
		"kind", string(activated.Kind),
		"version", activated.Version,
		"actor_id", cmd.ActorID,
	)
	return ActivateFormConfigResult{Config: activated}, nil
}

type DeactivateFormConfigCommand struct {
	ConfigID string
	ActorID  string
}

type DeactivateFormConfigUseCase struct {
	Configs ports.ConfigRepository
	Cache   ports.ActiveConfigCache
	Logger  *slog.Logger
}

func (uc DeactivateFormConfigUseCase) Execute(ctx context.Context, cmd DeactivateFormConfigCommand) (formschema.FormConfig, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return formschema.FormConfig{}, domainerrors.ErrActorRequired
	}

	cfg, err := uc.Configs.DeactivateConfig(ctx, strings.TrimSpace(cmd.ConfigID))
	if err != nil {
		return formschema.FormConfig{}, err
	}
	invalidateActive(ctx, uc.Cache, cfg.Kind, logger)

	logger.Info("form config deactivated",
		"event", "form_config_deactivated",
		"module", "submission-core/form-registry-service",
		"layer", "application",
		"config_id", cfg.ID,
		"kind", string(cfg.Kind),
		"actor_id", cmd.ActorID,
	)
	return cfg, nil
}

// invalidateActive drops the cached active config. A cache failure is logged
// and tolerated; readers fall back to the repository once the TTL lapses.
func invalidateActive(ctx context.Context, cache ports.ActiveConfigCache, kind formschema.FormKind, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateActive(ctx, kind); err != nil {
		logger.Warn("active form config cache invalidation failed",
			"event", "form_config_cache_invalidate_failed",
			"module", "submission-core/form-registry-service",
			"layer", "application",
			"kind", string(kind),
			"error", err.Error(),
		)
	}
}
