package ports

import (
	"context"
	"time"

	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	contractsv1 "taskhall/contracts/gen/events/v1"
	"taskhall/kernel/formschema"
)

type TaskListFilter struct {
	Status entities.TaskStatus
	Limit  int
	Offset int
}

// TaskRepository owns task definitions. Participant counters are only moved
// by ClaimRepository writes.
type TaskRepository interface {
	CreateTask(ctx context.Context, task entities.Task) error
	GetTask(ctx context.Context, taskID string) (entities.Task, error)
	ListTasks(ctx context.Context, filter TaskListFilter) ([]entities.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status entities.TaskStatus, updatedAt time.Time) (entities.Task, error)
	// UpdateTaskDetails applies the patch in one write. A non-zero cap below
	// the current participant count yields ErrCapBelowOccupied.
	UpdateTaskDetails(ctx context.Context, taskID string, patch TaskPatch, updatedAt time.Time) (entities.Task, error)
}

// TaskPatch holds the admin-editable task fields. Nil fields are unchanged.
type TaskPatch struct {
	Title           *string
	RewardMinor     *int64
	MaxParticipants *int
}

// TaskEvent is the outbound integration payload persisted to the outbox in
// the same write as the state change it describes.
type TaskEvent struct {
	EventID      string
	EventType    string
	PartitionKey string
	OccurredAt   time.Time
	Data         map[string]any
}

// ClaimReservation is the input of the single atomic claim write.
// DailyLimit <= 0 disables the quota check.
type ClaimReservation struct {
	Claim       entities.ClaimRecord
	DailyLimit  int
	WindowStart time.Time
	Event       TaskEvent
}

// ReviewOutcome carries a reviewer's verdict for a submitted claim.
type ReviewOutcome struct {
	SubmissionID string
	Decision     entities.ReviewDecision
	ReviewerID   string
	Feedback     string
	RewardMinor  *int64
	ReviewedAt   time.Time
}

// ClaimRepository owns claim persistence. Every mutating method is a
// compare-and-set on the claim status and writes its outbox event in the
// same transaction.
type ClaimRepository interface {
	GetClaim(ctx context.Context, claimID string) (entities.ClaimRecord, error)
	// FindActiveClaim returns the user's non-cancelled claim on a task.
	FindActiveClaim(ctx context.Context, userID string, taskID string) (entities.ClaimRecord, bool, error)
	ListClaimsByUser(ctx context.Context, userID string, status entities.ClaimStatus) ([]entities.ClaimRecord, error)
	// ReserveClaim checks for a duplicate active claim, takes a participant
	// slot, consumes one unit of the user's daily quota and inserts the
	// claim as one atomic operation. Losing a capacity race yields
	// ErrCapacityFull; it is never retried.
	ReserveClaim(ctx context.Context, reservation ClaimReservation) error
	// SubmitClaim moves a claimed record to submitted and stores the submission.
	SubmitClaim(ctx context.Context, submission entities.Submission, event TaskEvent) (entities.ClaimRecord, error)
	// CancelClaim moves a claimed or submitted record to cancelled and frees
	// its participant slot.
	CancelClaim(ctx context.Context, claimID string, cancelledAt time.Time, event TaskEvent) (entities.ClaimRecord, error)
	// ReviewClaim moves the submitted record owning the submission to
	// approved or rejected.
	ReviewClaim(ctx context.Context, outcome ReviewOutcome, event TaskEvent) (entities.ClaimRecord, error)
}

type SubmissionRepository interface {
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	GetSubmissionByClaim(ctx context.Context, claimID string) (entities.Submission, bool, error)
	// ListPendingReview returns submissions whose claim is still submitted,
	// oldest first.
	ListPendingReview(ctx context.Context, limit int) ([]entities.Submission, error)
	// ListSubmissions pages through submissions in any review state, newest
	// first, each paired with its owning claim.
	ListSubmissions(ctx context.Context, filter SubmissionListFilter) ([]SubmissionRecord, error)
}

// SubmissionListFilter narrows ListSubmissions. Empty fields match all.
type SubmissionListFilter struct {
	TaskID string
	Status entities.ClaimStatus
	Limit  int
	Offset int
}

type SubmissionRecord struct {
	Submission entities.Submission
	Claim      entities.ClaimRecord
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

// OutboxMessage is a row ready to relay from the module outbox.
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
