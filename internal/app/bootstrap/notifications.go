package bootstrap

import (
	"context"
	"encoding/json"
	"log/slog"

	contractsv1 "taskhall/contracts/gen/events/v1"
)

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, contractsv1.Envelope) error,
	) error
}

// NotificationConsumer hands relayed lifecycle events to the notification
// collaborator. Delivery is owned by that collaborator; this process records
// the recipient and the template key it would render.
type NotificationConsumer struct {
	Subscriber    EventSubscriber
	Topics        []string
	ConsumerGroup string
	Logger        *slog.Logger
}

type notificationPayload struct {
	UserID       string `json:"user_id"`
	TaskID       string `json:"task_id"`
	ClaimID      string `json:"claim_id"`
	SubmissionID string `json:"submission_id"`
	Decision     string `json:"decision"`
}

func (c NotificationConsumer) Start(ctx context.Context) error {
	if c.Subscriber == nil {
		return nil
	}
	for _, topic := range c.Topics {
		if err := c.Subscriber.Subscribe(ctx, topic, c.ConsumerGroup, c.handle); err != nil {
			return err
		}
	}
	return nil
}

func (c NotificationConsumer) handle(_ context.Context, event contractsv1.Envelope) error {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var payload notificationPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		logger.Warn("notification payload undecodable",
			"event", "notification_payload_invalid",
			"module", "internal/app/bootstrap",
			"layer", "worker",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
		return nil
	}

	template := notificationTemplate(event.EventType, payload.Decision)
	if template == "" {
		return nil
	}
	logger.Info("notification requested",
		"event", "notification_requested",
		"module", "internal/app/bootstrap",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"template", template,
		"user_id", payload.UserID,
		"task_id", payload.TaskID,
		"claim_id", payload.ClaimID,
		"submission_id", payload.SubmissionID,
	)
	return nil
}

func notificationTemplate(eventType string, decision string) string {
	switch eventType {
	case "survey.submitted":
		return "survey_received"
	case "task.submitted":
		return "task_submission_received"
	case "task.reviewed":
		if decision == "approved" {
			return "task_submission_approved"
		}
		return "task_submission_rejected"
	default:
		return ""
	}
}
