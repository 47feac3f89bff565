package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"taskhall/contexts/submission-core/form-registry-service/application/commands"
	"taskhall/contexts/submission-core/form-registry-service/application/queries"
	"taskhall/kernel/faults"
	"taskhall/kernel/formschema"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a seed file:
//
//	forms:
//	  - activate: true
//	    config:
//	      kind: survey
//	      title: ...
//	      fields: [...]
type File struct {
	Forms []Entry `yaml:"forms"`
}

type Entry struct {
	Activate bool           `yaml:"activate"`
	Config   map[string]any `yaml:"config"`
}

// Loader publishes seed forms through the regular publish use case so seeds
// go through the same document and semantic checks as admin edits.
type Loader struct {
	Publish commands.PublishFormConfigUseCase
	Reader  queries.ConfigReader
	ActorID string
	Logger  *slog.Logger
}

func (l Loader) LoadFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read form seed file: %w", err)
	}
	return l.Load(ctx, raw)
}

// Load publishes every entry whose kind has no active config yet. Entries for
// kinds that already have one are skipped, which keeps restarts idempotent.
func (l Loader) Load(ctx context.Context, raw []byte) (int, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("decode form seed yaml: %w", err)
	}

	actor := l.ActorID
	if actor == "" {
		actor = "seed"
	}

	published := 0
	for i, entry := range file.Forms {
		kind, _ := entry.Config["kind"].(string)
		if entry.Activate {
			if _, err := l.Reader.CurrentConfig(ctx, formschema.FormKind(kind)); err == nil {
				logger.Info("form seed skipped, kind already active",
					"event", "form_seed_skipped",
					"module", "submission-core/form-registry-service",
					"layer", "adapter",
					"kind", kind,
				)
				continue
			} else if !errors.Is(err, faults.ErrNotFound) {
				return published, err
			}
		}

		document, err := json.Marshal(entry.Config)
		if err != nil {
			return published, fmt.Errorf("encode form seed %d: %w", i, err)
		}
		result, err := l.Publish.Execute(ctx, commands.PublishFormConfigCommand{
			Document: document,
			ActorID:  actor,
			Activate: entry.Activate,
		})
		if err != nil {
			return published, fmt.Errorf("publish form seed %d: %w", i, err)
		}
		published++

		logger.Info("form seed published",
			"event", "form_seed_published",
			"module", "submission-core/form-registry-service",
			"layer", "adapter",
			"config_id", result.Config.ID,
			"kind", string(result.Config.Kind),
			"active", result.Config.IsActive,
		)
	}
	return published, nil
}
