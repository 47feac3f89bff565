package ports

import (
	"context"
	"time"

	"taskhall/contexts/submission-core/survey-service/domain/entities"
	contractsv1 "taskhall/contracts/gen/events/v1"
	"taskhall/kernel/formschema"
)

type Page struct {
	Limit  int
	Offset int
}

// SurveyEvent is persisted to the outbox in the same write as the submission.
type SurveyEvent struct {
	EventID      string
	EventType    string
	PartitionKey string
	OccurredAt   time.Time
	Data         map[string]any
}

type SubmissionRepository interface {
	// CreateSubmission stores the submission and its outbox event atomically.
	CreateSubmission(ctx context.Context, submission entities.SurveySubmission, event SurveyEvent) error
	GetSubmission(ctx context.Context, submissionID string) (entities.SurveySubmission, error)
	// ListByUser returns one page, newest first, and the user's total count.
	ListByUser(ctx context.Context, userID string, page Page) ([]entities.SurveySubmission, int, error)
	ListByConfig(ctx context.Context, configID string, page Page) ([]entities.SurveySubmission, int, error)
}

// FormConfigSource is the read side of the form registry as seen from here.
type FormConfigSource interface {
	CurrentConfig(ctx context.Context, kind formschema.FormKind) (formschema.FormConfig, error)
	GetConfig(ctx context.Context, configID string) (formschema.FormConfig, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

type EventEnvelope = contractsv1.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

const SourceService = "survey-service"

// SealSurveyEvent builds the wire payload stored in an outbox row.
func SealSurveyEvent(event SurveyEvent) ([]byte, error) {
	_, payload, err := contractsv1.Seal(contractsv1.Envelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt,
		SourceService:    SourceService,
		SchemaVersion:    1,
		PartitionKeyPath: "user_id",
		PartitionKey:     event.PartitionKey,
	}, event.Data)
	return payload, err
}
