package ports

import (
	"context"
	"time"

	"taskhall/kernel/formschema"
)

// ConfigRepository owns form config persistence. Stored configs are never
// rewritten apart from their activation flag.
type ConfigRepository interface {
	// CreateConfig stores a new version and returns it with Version assigned
	// as one more than the highest version of the same kind.
	CreateConfig(ctx context.Context, cfg formschema.FormConfig) (formschema.FormConfig, error)
	GetConfig(ctx context.Context, configID string) (formschema.FormConfig, error)
	GetActiveConfig(ctx context.Context, kind formschema.FormKind) (formschema.FormConfig, error)
	ListConfigs(ctx context.Context, kind formschema.FormKind) ([]formschema.FormConfig, error)
	// ActivateConfig must deactivate every other config of the same kind in
	// the same write.
	ActivateConfig(ctx context.Context, configID string, activatedAt time.Time) (formschema.FormConfig, error)
	DeactivateConfig(ctx context.Context, configID string) (formschema.FormConfig, error)
}

// ActiveConfigCache fronts GetActiveConfig. Misses report found=false.
type ActiveConfigCache interface {
	GetActive(ctx context.Context, kind formschema.FormKind) (formschema.FormConfig, bool, error)
	SetActive(ctx context.Context, cfg formschema.FormConfig, ttl time.Duration) error
	InvalidateActive(ctx context.Context, kind formschema.FormKind) error
}

// DocumentValidator checks the raw authored document before it is decoded.
type DocumentValidator interface {
	ValidateDocument(raw []byte) []string
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
