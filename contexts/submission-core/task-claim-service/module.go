package taskclaimservice

import (
	"log/slog"

	httpadapter "taskhall/contexts/submission-core/task-claim-service/adapters/http"
	"taskhall/contexts/submission-core/task-claim-service/adapters/memory"
	"taskhall/contexts/submission-core/task-claim-service/application/commands"
	"taskhall/contexts/submission-core/task-claim-service/application/queries"
	"taskhall/contexts/submission-core/task-claim-service/application/workers"
	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	"taskhall/contexts/submission-core/task-claim-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	OutboxRelay workers.OutboxRelay
	Store       *memory.Store
}

type Dependencies struct {
	Tasks       ports.TaskRepository
	Claims      ports.ClaimRepository
	Submissions ports.SubmissionRepository
	Forms       ports.FormConfigSource
	Outbox      ports.OutboxRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDs         ports.IDGenerator
	DailyLimit  int
	Topic       string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		ListTasks: queries.ListAvailableTasksUseCase{
			Tasks:  deps.Tasks,
			Claims: deps.Claims,
			Clock:  deps.Clock,
		},
		GetTask: queries.GetTaskUseCase{
			Tasks:  deps.Tasks,
			Claims: deps.Claims,
			Clock:  deps.Clock,
		},
		ListClaims: queries.ListUserClaimsUseCase{Claims: deps.Claims},
		GetClaim: queries.GetClaimUseCase{
			Tasks:       deps.Tasks,
			Claims:      deps.Claims,
			Submissions: deps.Submissions,
		},
		Stats: queries.GetUserStatsUseCase{
			Claims:     deps.Claims,
			Clock:      deps.Clock,
			DailyLimit: deps.DailyLimit,
		},
		ReviewQueue: queries.ListReviewQueueUseCase{Submissions: deps.Submissions},
		Submissions: queries.ListSubmissionsUseCase{Submissions: deps.Submissions},
		Claim: commands.ClaimTaskUseCase{
			Tasks:      deps.Tasks,
			Claims:     deps.Claims,
			Clock:      deps.Clock,
			IDs:        deps.IDs,
			DailyLimit: deps.DailyLimit,
			Logger:     deps.Logger,
		},
		Submit: commands.SubmitClaimUseCase{
			Tasks:  deps.Tasks,
			Claims: deps.Claims,
			Forms:  deps.Forms,
			Clock:  deps.Clock,
			IDs:    deps.IDs,
			Logger: deps.Logger,
		},
		Cancel: commands.CancelClaimUseCase{
			Claims: deps.Claims,
			Clock:  deps.Clock,
			IDs:    deps.IDs,
			Logger: deps.Logger,
		},
		Review: commands.ReviewSubmissionUseCase{
			Tasks:       deps.Tasks,
			Claims:      deps.Claims,
			Submissions: deps.Submissions,
			Clock:       deps.Clock,
			IDs:         deps.IDs,
			Logger:      deps.Logger,
		},
		CreateTask: commands.CreateTaskUseCase{
			Tasks:  deps.Tasks,
			Forms:  deps.Forms,
			Clock:  deps.Clock,
			IDs:    deps.IDs,
			Logger: deps.Logger,
		},
		ChangeTask: commands.ChangeTaskStatusUseCase{
			Tasks:  deps.Tasks,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		UpdateTask: commands.UpdateTaskUseCase{
			Tasks:  deps.Tasks,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Topic:     deps.Topic,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the context against the in-memory store. The
// publisher may be nil when the outbox relay is not exercised.
func NewInMemoryModule(
	seed []entities.Task,
	forms ports.FormConfigSource,
	publisher ports.EventPublisher,
	dailyLimit int,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed, logger)
	module := NewModule(Dependencies{
		Tasks:       store,
		Claims:      store,
		Submissions: store,
		Forms:       forms,
		Outbox:      store,
		Publisher:   publisher,
		Clock:       store,
		IDs:         store,
		DailyLimit:  dailyLimit,
		Logger:      logger,
	})
	module.Store = store
	return module
}
