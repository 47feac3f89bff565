package surveyservice

import (
	"log/slog"

	httpadapter "taskhall/contexts/submission-core/survey-service/adapters/http"
	"taskhall/contexts/submission-core/survey-service/adapters/memory"
	"taskhall/contexts/submission-core/survey-service/application/commands"
	"taskhall/contexts/submission-core/survey-service/application/queries"
	"taskhall/contexts/submission-core/survey-service/application/workers"
	"taskhall/contexts/submission-core/survey-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	OutboxRelay workers.OutboxRelay
	Store       *memory.Store
}

type Dependencies struct {
	Submissions ports.SubmissionRepository
	Forms       ports.FormConfigSource
	Outbox      ports.OutboxRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDs         ports.IDGenerator
	Topic       string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Submit: commands.SubmitSurveyUseCase{
				Submissions: deps.Submissions,
				Forms:       deps.Forms,
				Clock:       deps.Clock,
				IDs:         deps.IDs,
				Logger:      deps.Logger,
			},
			ListMine:      queries.ListUserSubmissionsUseCase{Submissions: deps.Submissions},
			Get:           queries.GetSubmissionUseCase{Submissions: deps.Submissions},
			ListForConfig: queries.ListConfigSubmissionsUseCase{Submissions: deps.Submissions},
			Logger:        deps.Logger,
		},
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Topic:     deps.Topic,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(forms ports.FormConfigSource, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Submissions: store,
		Forms:       forms,
		Outbox:      store,
		Publisher:   publisher,
		Clock:       store,
		IDs:         store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
