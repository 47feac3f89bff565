package queries

import (
	"context"
	"time"

	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	"taskhall/contexts/submission-core/task-claim-service/ports"
)

// TaskView is a task as seen by one user.
type TaskView struct {
	Task      entities.Task
	Claimable bool
	UserClaim *entities.ClaimRecord
}

type ListAvailableTasksQuery struct {
	UserID string
	Limit  int
	Offset int
}

type ListAvailableTasksUseCase struct {
	Tasks  ports.TaskRepository
	Claims ports.ClaimRepository
	Clock  ports.Clock
}

// Execute lists active tasks whose deadline has not passed, annotated with
// the caller's own claim when there is one.
func (u ListAvailableTasksUseCase) Execute(ctx context.Context, query ListAvailableTasksQuery) ([]TaskView, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	tasks, err := u.Tasks.ListTasks(ctx, ports.TaskListFilter{
		Status: entities.TaskStatusActive,
		Limit:  limit,
		Offset: query.Offset,
	})
	if err != nil {
		return nil, err
	}

	byTask := make(map[string]entities.ClaimRecord)
	if query.UserID != "" {
		claims, err := u.Claims.ListClaimsByUser(ctx, query.UserID, "")
		if err != nil {
			return nil, err
		}
		for _, claim := range claims {
			if claim.Status.IsActive() {
				byTask[claim.TaskID] = claim
			}
		}
	}

	now := resolveNow(u.Clock)
	items := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		if !task.IsClaimable(now) {
			continue
		}
		view := TaskView{Task: task}
		if claim, ok := byTask[task.TaskID]; ok {
			view.UserClaim = &claim
		}
		view.Claimable = view.UserClaim == nil && task.HasCapacity()
		items = append(items, view)
	}
	return items, nil
}

type GetTaskUseCase struct {
	Tasks  ports.TaskRepository
	Claims ports.ClaimRepository
	Clock  ports.Clock
}

func (u GetTaskUseCase) Execute(ctx context.Context, userID string, taskID string) (TaskView, error) {
	task, err := u.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return TaskView{}, err
	}
	view := TaskView{Task: task}
	if userID != "" {
		claim, found, err := u.Claims.FindActiveClaim(ctx, userID, taskID)
		if err != nil {
			return TaskView{}, err
		}
		if found {
			view.UserClaim = &claim
		}
	}
	view.Claimable = view.UserClaim == nil && task.IsClaimable(resolveNow(u.Clock)) && task.HasCapacity()
	return view, nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}
