package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "taskhall/contexts/submission-core/task-claim-service/application"
	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
	"taskhall/contexts/submission-core/task-claim-service/ports"
	"taskhall/kernel/formschema"
)

type CreateTaskCommand struct {
	ActorID         string
	Title           string
	Description     string
	Category        string
	RewardMinor     int64
	MaxParticipants int
	FormConfigID    string
	Deadline        *time.Time
}

type CreateTaskUseCase struct {
	Tasks  ports.TaskRepository
	Forms  ports.FormConfigSource
	Clock  ports.Clock
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

// Execute stores a new active task. A pinned form config must exist and be a
// task form.
func (u CreateTaskUseCase) Execute(ctx context.Context, cmd CreateTaskCommand) (entities.Task, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Task{}, domainerrors.ErrActorRequired
	}
	if cmd.FormConfigID != "" {
		cfg, err := u.Forms.GetConfig(ctx, cmd.FormConfigID)
		if err != nil {
			return entities.Task{}, err
		}
		if cfg.Kind != formschema.FormKindTask {
			return entities.Task{}, domainerrors.ErrFormKindMismatch
		}
	}

	taskID, err := u.IDs.NewID(ctx)
	if err != nil {
		return entities.Task{}, err
	}
	now := resolveNow(u.Clock)
	task := entities.Task{
		TaskID:          taskID,
		Title:           strings.TrimSpace(cmd.Title),
		Description:     strings.TrimSpace(cmd.Description),
		Category:        strings.TrimSpace(cmd.Category),
		RewardMinor:     cmd.RewardMinor,
		MaxParticipants: cmd.MaxParticipants,
		Status:          entities.TaskStatusActive,
		FormConfigID:    cmd.FormConfigID,
		Deadline:        cmd.Deadline,
		CreatedBy:       cmd.ActorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if task.Deadline != nil {
		deadline := task.Deadline.UTC()
		task.Deadline = &deadline
	}
	if !task.Validate() {
		return entities.Task{}, domainerrors.ErrInvalidTask
	}
	if err := u.Tasks.CreateTask(ctx, task); err != nil {
		return entities.Task{}, err
	}

	logger.Info("task created",
		"event", "task_created",
		"module", moduleName,
		"layer", "application",
		"task_id", task.TaskID,
		"actor_id", cmd.ActorID,
		"max_participants", task.MaxParticipants,
	)
	return task, nil
}

type ChangeTaskStatusCommand struct {
	ActorID string
	TaskID  string
	Status  entities.TaskStatus
}

type ChangeTaskStatusUseCase struct {
	Tasks  ports.TaskRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute pauses, resumes or closes a task. Existing claims are untouched.
func (u ChangeTaskStatusUseCase) Execute(ctx context.Context, cmd ChangeTaskStatusCommand) (entities.Task, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Task{}, domainerrors.ErrActorRequired
	}
	if !cmd.Status.Valid() {
		return entities.Task{}, domainerrors.ErrInvalidTask
	}
	task, err := u.Tasks.UpdateTaskStatus(ctx, cmd.TaskID, cmd.Status, resolveNow(u.Clock))
	if err != nil {
		return entities.Task{}, err
	}

	logger.Info("task status changed",
		"event", "task_status_changed",
		"module", moduleName,
		"layer", "application",
		"task_id", task.TaskID,
		"status", string(task.Status),
		"actor_id", cmd.ActorID,
	)
	return task, nil
}

type UpdateTaskCommand struct {
	ActorID         string
	TaskID          string
	Title           *string
	RewardMinor     *int64
	MaxParticipants *int
}

type UpdateTaskUseCase struct {
	Tasks  ports.TaskRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute edits title, reward or participant cap. Lowering the cap below the
// slots already taken is refused; zero removes the cap.
func (u UpdateTaskUseCase) Execute(ctx context.Context, cmd UpdateTaskCommand) (entities.Task, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Task{}, domainerrors.ErrActorRequired
	}
	if cmd.Title == nil && cmd.RewardMinor == nil && cmd.MaxParticipants == nil {
		return entities.Task{}, domainerrors.ErrInvalidRequest
	}

	patch := ports.TaskPatch{
		RewardMinor:     cmd.RewardMinor,
		MaxParticipants: cmd.MaxParticipants,
	}
	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return entities.Task{}, domainerrors.ErrInvalidTask
		}
		patch.Title = &title
	}
	if cmd.RewardMinor != nil && *cmd.RewardMinor < 0 {
		return entities.Task{}, domainerrors.ErrInvalidTask
	}
	if cmd.MaxParticipants != nil && *cmd.MaxParticipants < 0 {
		return entities.Task{}, domainerrors.ErrInvalidTask
	}

	task, err := u.Tasks.UpdateTaskDetails(ctx, cmd.TaskID, patch, resolveNow(u.Clock))
	if err != nil {
		return entities.Task{}, err
	}

	logger.Info("task updated",
		"event", "task_updated",
		"module", moduleName,
		"layer", "application",
		"task_id", task.TaskID,
		"actor_id", cmd.ActorID,
		"max_participants", task.MaxParticipants,
		"reward_minor", task.RewardMinor,
	)
	return task, nil
}
