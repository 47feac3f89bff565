package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"taskhall/kernel/formschema"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "taskhall:form_config:active:"

// ActiveConfigCache stores the active config of each kind as JSON.
type ActiveConfigCache struct {
	client redis.UniversalClient
	logger *slog.Logger
}

func NewActiveConfigCache(client redis.UniversalClient, logger *slog.Logger) *ActiveConfigCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActiveConfigCache{client: client, logger: logger}
}

func (c *ActiveConfigCache) GetActive(ctx context.Context, kind formschema.FormKind) (formschema.FormConfig, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return formschema.FormConfig{}, false, nil
		}
		return formschema.FormConfig{}, false, err
	}

	var cfg formschema.FormConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		_ = c.client.Del(ctx, cacheKey(kind)).Err()
		c.logger.Warn("discarded undecodable form config cache entry",
			"event", "redis_form_config_decode_failed",
			"module", "submission-core/form-registry-service",
			"layer", "adapter",
			"kind", string(kind),
			"error", err.Error(),
		)
		return formschema.FormConfig{}, false, nil
	}
	return cfg, true, nil
}

func (c *ActiveConfigCache) SetActive(ctx context.Context, cfg formschema.FormConfig, ttl time.Duration) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(cfg.Kind), raw, ttl).Err()
}

func (c *ActiveConfigCache) InvalidateActive(ctx context.Context, kind formschema.FormKind) error {
	return c.client.Del(ctx, cacheKey(kind)).Err()
}

func cacheKey(kind formschema.FormKind) string {
	return keyPrefix + string(kind)
}
