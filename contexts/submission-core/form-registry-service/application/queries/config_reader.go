package queries

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

// ConfigReader is the read side other contexts consume to resolve forms.
type ConfigReader struct {
	Configs  ports.ConfigRepository
	Cache    ports.ActiveConfigCache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// CurrentConfig returns the single active config of a kind, reading through
// the cache.
func (r ConfigReader) CurrentConfig(ctx context.Context, kind formschema.FormKind) (formschema.FormConfig, error) {
	logger := application.ResolveLogger(r.Logger)
	if !kind.Valid() {
		return formschema.FormConfig{}, domainerrors.ErrInvalidFormKind
	}

	if r.Cache != nil {
		cached, found, err := r.Cache.GetActive(ctx, kind)
		if err != nil {
			logger.Warn("active form config cache read failed",
				"event", "form_config_cache_read_failed",
				"module", "submission-core/form-registry-service",
				"layer", "application",
				"kind", string(kind),
				"error", err.Error(),
			)
		} else if found {
			return cached, nil
		}
	}

	cfg, err := r.Configs.GetActiveConfig(ctx, kind)
	if err != nil {
		return formschema.FormConfig{}, err
	}

	if r.Cache != nil {
		if err := r.Cache.SetActive(ctx, cfg, r.cacheTTL()); err != nil {
			logger.Warn("active form config cache write failed",
				"event", "form_config_cache_write_failed",
				"module", "submission-core/form-registry-service",
				"layer", "application",
				"config_id", cfg.ID,
				"error", err.Error(),
			)
			return cfg, nil
		}
		return r.confirmCached(ctx, cfg, logger)
	}
	return cfg, nil
}

// confirmCached re-reads the active config after a cache write. An activation
// that committed between the first read and the write has already run its
// invalidation, so a changed answer means the entry just written is stale and
// must be dropped.
func (r ConfigReader) confirmCached(ctx context.Context, cached formschema.FormConfig, logger *slog.Logger) (formschema.FormConfig, error) {
	current, err := r.Configs.GetActiveConfig(ctx, cached.Kind)
	if err == nil && current.ID == cached.ID {
		return cached, nil
	}

	if invalidateErr := r.Cache.InvalidateActive(ctx, cached.Kind); invalidateErr != nil {
		logger.Warn("stale form config cache entry not dropped",
			"event", "form_config_cache_invalidate_failed",
			"module", "submission-core/form-registry-service",
			"layer", "application",
			"config_id", cached.ID,
			"error", invalidateErr.Error(),
		)
	}
	logger.Info("form config changed during cache fill",
		"event", "form_config_cache_fill_raced",
		"module", "submission-core/form-registry-service",
		"layer", "application",
		"kind", string(cached.Kind),
		"cached_config_id", cached.ID,
	)
	if err != nil {
		return formschema.FormConfig{}, err
	}
	return current, nil
}

func (r ConfigReader) GetConfig(ctx context.Context, configID string) (formschema.FormConfig, error) {
	configID = strings.TrimSpace(configID)
	if configID == "" {
		return formschema.FormConfig{}, domainerrors.ErrFormConfigNotFound
	}
	return r.Configs.GetConfig(ctx, configID)
}

func (r ConfigReader) cacheTTL() time.Duration {
	if r.CacheTTL <= 0 {
		return 5 * time.Minute
	}
	return r.CacheTTL
}

type ListFormConfigsUseCase struct {
	Configs ports.ConfigRepository
}

func (uc ListFormConfigsUseCase) Execute(ctx context.Context, kind formschema.FormKind) ([]formschema.FormConfig, error) {
	if kind != "" && !kind.Valid() {
		return nil, domainerrors.ErrInvalidFormKind
	}
	return uc.Configs.ListConfigs(ctx, kind)
}
