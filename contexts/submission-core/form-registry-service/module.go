package formregistryservice

import (
	"log/slog"
	"time"

	httpadapter "taskhall/contexts/submission-core/form-registry-service/adapters/http"
	jsonschemaadapter "taskhall/contexts/submission-core/form-registry-service/adapters/jsonschema"
	"taskhall/contexts/submission-core/form-registry-service/adapters/memory"
	"taskhall/contexts/submission-core/form-registry-service/adapters/seed"
	"taskhall/contexts/submission-core/form-registry-service/application/commands"
	"taskhall/contexts/submission-core/form-registry-service/application/queries"
	"taskhall/contexts/submission-core/form-registry-service/ports"
	"taskhall/kernel/formschema"
)

// Module is the composition surface of the form registry.
// Reader is the read side handed to the survey and task contexts.
type Module struct {
	Handler httpadapter.Handler
	Reader  queries.ConfigReader
	Seeder  seed.Loader
	Store   *memory.Store
}

type Dependencies struct {
	Configs   ports.ConfigRepository
	Cache     ports.ActiveConfigCache
	Documents ports.DocumentValidator
	Clock     ports.Clock
	IDs       ports.IDGenerator
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	reader := queries.ConfigReader{
		Configs:  deps.Configs,
		Cache:    deps.Cache,
		CacheTTL: deps.CacheTTL,
		Logger:   deps.Logger,
	}
	publish := commands.PublishFormConfigUseCase{
		Configs:   deps.Configs,
		Cache:     deps.Cache,
		Documents: deps.Documents,
		Clock:     deps.Clock,
		IDs:       deps.IDs,
		Logger:    deps.Logger,
	}

	handler := httpadapter.Handler{
		Reader: reader,
		List:   queries.ListFormConfigsUseCase{Configs: deps.Configs},
		Validate: queries.ValidatePayloadUseCase{
			Reader: reader,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		Publish: publish,
		Activate: commands.ActivateFormConfigUseCase{
			Configs: deps.Configs,
			Cache:   deps.Cache,
			Clock:   deps.Clock,
			Logger:  deps.Logger,
		},
		Deactivate: commands.DeactivateFormConfigUseCase{
			Configs: deps.Configs,
			Cache:   deps.Cache,
			Logger:  deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		Reader:  reader,
		Seeder: seed.Loader{
			Publish: publish,
			Reader:  reader,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the registry against the in-memory store, which
// doubles as the active-config cache.
func NewInMemoryModule(seedConfigs []formschema.FormConfig, logger *slog.Logger) Module {
	store := memory.NewStore(seedConfigs, logger)
	module := NewModule(Dependencies{
		Configs:   store,
		Cache:     store,
		Documents: jsonschemaadapter.MustDocumentValidator(),
		Clock:     store,
		IDs:       store,
		CacheTTL:  time.Minute,
		Logger:    logger,
	})
	module.Store = store
	return module
}
