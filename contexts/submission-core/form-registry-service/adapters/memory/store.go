package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	application "taskhall/contexts/submission-core/form-registry-service/application"
	domainerrors "taskhall/contexts/submission-core/form-registry-service/domain/errors"
	"taskhall/kernel/formschema"
)

// Store is an in-memory adapter implementing the registry ports for local
// runtime and tests. It also acts as the active-config cache.
type Store struct {
	mu       sync.RWMutex
	configs  map[string]formschema.FormConfig
	cache    map[formschema.FormKind]cachedConfig
	sequence uint64
	logger   *slog.Logger
}

type cachedConfig struct {
	config    formschema.FormConfig
	expiresAt time.Time
}

func NewStore(seed []formschema.FormConfig, logger *slog.Logger) *Store {
	configs := make(map[string]formschema.FormConfig, len(seed))
	for _, cfg := range seed {
		configs[cfg.ID] = cloneConfig(cfg)
	}
	return &Store{
		configs: configs,
		cache:   make(map[formschema.FormKind]cachedConfig),
		logger:  application.ResolveLogger(logger),
	}
}

func (s *Store) CreateConfig(_ context.Context, cfg formschema.FormConfig) (formschema.FormConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[cfg.ID]; ok {
		return formschema.FormConfig{}, domainerrors.ErrRepositoryInvariantBroke
	}
	version := 0
	for _, existing := range s.configs {
		if existing.Kind == cfg.Kind && existing.Version > version {
			version = existing.Version
		}
	}
	cfg.Version = version + 1
	cfg.IsActive = false
	s.configs[cfg.ID] = cloneConfig(cfg)

	s.logger.Debug("form config stored in memory",
		"event", "memory_form_config_created",
		"module", "submission-core/form-registry-service",
		"layer", "adapter",
		"config_id", cfg.ID,
		"version", cfg.Version,
	)
	return cloneConfig(cfg), nil
}

func (s *Store) GetConfig(_ context.Context, configID string) (formschema.FormConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[configID]
	if !ok {
		return formschema.FormConfig{}, domainerrors.ErrFormConfigNotFound
	}
	return cloneConfig(cfg), nil
}

func (s *Store) GetActiveConfig(_ context.Context, kind formschema.FormKind) (formschema.FormConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cfg := range s.configs {
		if cfg.Kind == kind && cfg.IsActive {
			return cloneConfig(cfg), nil
		}
	}
	return formschema.FormConfig{}, domainerrors.ErrNoActiveFormConfig
}

func (s *Store) ListConfigs(_ context.Context, kind formschema.FormKind) ([]formschema.FormConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]formschema.FormConfig, 0, len(s.configs))
	for _, cfg := range s.configs {
		if kind != "" && cfg.Kind != kind {
			continue
		}
		items = append(items, cloneConfig(cfg))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Kind == items[j].Kind {
			return items[i].Version > items[j].Version
		}
		return items[i].Kind < items[j].Kind
	})
	return items, nil
}

func (s *Store) ActivateConfig(_ context.Context, configID string, activatedAt time.Time) (formschema.FormConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.configs[configID]
	if !ok {
		return formschema.FormConfig{}, domainerrors.ErrFormConfigNotFound
	}
	for id, cfg := range s.configs {
		if cfg.Kind == target.Kind && cfg.IsActive && id != configID {
			cfg.IsActive = false
			s.configs[id] = cfg
		}
	}
	at := activatedAt.UTC()
	target.IsActive = true
	target.ActivatedAt = &at
	s.configs[configID] = target
	return cloneConfig(target), nil
}

func (s *Store) DeactivateConfig(_ context.Context, configID string) (formschema.FormConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[configID]
	if !ok {
		return formschema.FormConfig{}, domainerrors.ErrFormConfigNotFound
	}
	cfg.IsActive = false
	s.configs[configID] = cfg
	return cloneConfig(cfg), nil
}

func (s *Store) GetActive(_ context.Context, kind formschema.FormKind) (formschema.FormConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[kind]
	if !ok || time.Now().After(entry.expiresAt) {
		return formschema.FormConfig{}, false, nil
	}
	return cloneConfig(entry.config), true, nil
}

func (s *Store) SetActive(_ context.Context, cfg formschema.FormConfig, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[cfg.Kind] = cachedConfig{config: cloneConfig(cfg), expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *Store) InvalidateActive(_ context.Context, kind formschema.FormKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, kind)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("form-%d", value), nil
}

// cloneConfig copies the slices so callers cannot mutate stored versions.
func cloneConfig(cfg formschema.FormConfig) formschema.FormConfig {
	out := cfg
	out.Fields = append([]formschema.FieldSpec(nil), cfg.Fields...)
	for i := range out.Fields {
		out.Fields[i].Constraints.Options = append([]formschema.Option(nil), cfg.Fields[i].Constraints.Options...)
	}
	out.Pages = append([]formschema.Page(nil), cfg.Pages...)
	out.ConditionalLogic = append([]formschema.ConditionalRule(nil), cfg.ConditionalLogic...)
	out.Requirements = append([]formschema.Requirement(nil), cfg.Requirements...)
	if cfg.ActivatedAt != nil {
		at := *cfg.ActivatedAt
		out.ActivatedAt = &at
	}
	return out
}
