package commands

import (
	"context"
	"time"

	"taskhall/contexts/submission-core/task-claim-service/ports"
)

const (
	EventTaskClaimed   = "task.claimed"
	EventTaskSubmitted = "task.submitted"
	EventTaskCancelled = "task.cancelled"
	EventTaskReviewed  = "task.reviewed"

	moduleName = "submission-core/task-claim-service"
)

func newTaskEvent(
	ctx context.Context,
	ids ports.IDGenerator,
	eventType string,
	taskID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.TaskEvent, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return ports.TaskEvent{}, err
	}
	return ports.TaskEvent{
		EventID:      eventID,
		EventType:    eventType,
		PartitionKey: taskID,
		OccurredAt:   occurredAt.UTC(),
		Data:         data,
	}, nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}
