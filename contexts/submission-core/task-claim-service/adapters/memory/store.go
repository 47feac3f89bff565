package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	application "taskhall/contexts/submission-core/task-claim-service/application"
	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
	"taskhall/contexts/submission-core/task-claim-service/ports"
	"taskhall/kernel/formschema"
)

// Store is an in-memory adapter implementing every task-claim port for local
// runtime and tests. One mutex serialises all writes, which makes
// ReserveClaim atomic.
type Store struct {
	mu          sync.RWMutex
	tasks       map[string]entities.Task
	claims      map[string]entities.ClaimRecord
	submissions map[string]entities.Submission
	quotas      map[quotaKey]int
	outbox      []outboxRecord
	sequence    uint64
	now         func() time.Time
	logger      *slog.Logger
}

type quotaKey struct {
	userID      string
	windowStart time.Time
}

type outboxRecord struct {
	message ports.OutboxMessage
	sentAt  *time.Time
}

func NewStore(seed []entities.Task, logger *slog.Logger) *Store {
	tasks := make(map[string]entities.Task, len(seed))
	for _, task := range seed {
		tasks[task.TaskID] = task
	}
	return &Store{
		tasks:       tasks,
		claims:      make(map[string]entities.ClaimRecord),
		submissions: make(map[string]entities.Submission),
		quotas:      make(map[quotaKey]int),
		now:         func() time.Time { return time.Now().UTC() },
		logger:      application.ResolveLogger(logger),
	}
}

// SetClock replaces the wall clock, for tests that cross deadlines or days.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) CreateTask(_ context.Context, task entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.TaskID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.tasks[task.TaskID] = task
	return nil
}

func (s *Store) GetTask(_ context.Context, taskID string) (entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *Store) ListTasks(_ context.Context, filter ports.TaskListFilter) ([]entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		items = append(items, task)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].TaskID < items[j].TaskID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	offset := max(filter.Offset, 0)
	if offset >= len(items) {
		return []entities.Task{}, nil
	}
	items = items[offset:]
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) UpdateTaskStatus(
	_ context.Context,
	taskID string,
	status entities.TaskStatus,
	updatedAt time.Time,
) (entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	task.Status = status
	task.UpdatedAt = updatedAt.UTC()
	s.tasks[taskID] = task
	return task, nil
}

func (s *Store) UpdateTaskDetails(
	_ context.Context,
	taskID string,
	patch ports.TaskPatch,
	updatedAt time.Time,
) (entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	if patch.MaxParticipants != nil {
		if limit := *patch.MaxParticipants; limit > 0 && limit < task.CurrentParticipants {
			return entities.Task{}, domainerrors.ErrCapBelowOccupied
		}
		task.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.RewardMinor != nil {
		task.RewardMinor = *patch.RewardMinor
	}
	task.UpdatedAt = updatedAt.UTC()
	s.tasks[taskID] = task
	return task, nil
}

func (s *Store) GetClaim(_ context.Context, claimID string) (entities.ClaimRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[claimID]
	if !ok {
		return entities.ClaimRecord{}, domainerrors.ErrClaimNotFound
	}
	return claim, nil
}

func (s *Store) FindActiveClaim(_ context.Context, userID string, taskID string) (entities.ClaimRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.activeClaimLocked(userID, taskID)
	return claim, ok, nil
}

func (s *Store) ListClaimsByUser(_ context.Context, userID string, status entities.ClaimStatus) ([]entities.ClaimRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ClaimRecord, 0)
	for _, claim := range s.claims {
		if claim.UserID != userID {
			continue
		}
		if status != "" && claim.Status != status {
			continue
		}
		items = append(items, claim)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ClaimedAt.Equal(items[j].ClaimedAt) {
			return items[i].ClaimID > items[j].ClaimID
		}
		return items[i].ClaimedAt.After(items[j].ClaimedAt)
	})
	return items, nil
}

func (s *Store) ReserveClaim(_ context.Context, reservation ports.ClaimReservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim := reservation.Claim
	task, ok := s.tasks[claim.TaskID]
	if !ok {
		return domainerrors.ErrTaskNotFound
	}
	if task.Status != entities.TaskStatusActive {
		return domainerrors.ErrTaskNotClaimable
	}
	if _, exists := s.activeClaimLocked(claim.UserID, claim.TaskID); exists {
		return domainerrors.ErrAlreadyClaimed
	}
	if !task.HasCapacity() {
		return domainerrors.ErrCapacityFull
	}
	key := quotaKey{userID: claim.UserID, windowStart: reservation.WindowStart.UTC()}
	if reservation.DailyLimit > 0 && s.quotas[key] >= reservation.DailyLimit {
		return domainerrors.ErrQuotaExceeded
	}
	if _, exists := s.claims[claim.ClaimID]; exists {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	if err := s.appendOutboxLocked(reservation.Event); err != nil {
		return err
	}

	task.CurrentParticipants++
	task.UpdatedAt = claim.ClaimedAt
	s.tasks[task.TaskID] = task
	s.quotas[key]++
	s.claims[claim.ClaimID] = claim

	s.logger.Debug("claim reserved in memory",
		"event", "memory_claim_reserved",
		"module", "submission-core/task-claim-service",
		"layer", "adapter",
		"claim_id", claim.ClaimID,
		"task_id", claim.TaskID,
		"current_participants", task.CurrentParticipants,
	)
	return nil
}

func (s *Store) SubmitClaim(_ context.Context, submission entities.Submission, event ports.TaskEvent) (entities.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[submission.ClaimID]
	if !ok {
		return entities.ClaimRecord{}, domainerrors.ErrClaimNotFound
	}
	if claim.Status != entities.ClaimStatusClaimed {
		return entities.ClaimRecord{}, domainerrors.ErrWrongState
	}
	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return entities.ClaimRecord{}, domainerrors.ErrRepositoryInvariantBroke
	}
	if err := s.appendOutboxLocked(event); err != nil {
		return entities.ClaimRecord{}, err
	}

	submittedAt := submission.SubmittedAt.UTC()
	claim.Status = entities.ClaimStatusSubmitted
	claim.SubmissionID = submission.SubmissionID
	claim.SubmittedAt = &submittedAt
	claim.UpdatedAt = submittedAt
	s.claims[claim.ClaimID] = claim
	submission.Data = clonePayload(submission.Data)
	s.submissions[submission.SubmissionID] = submission
	return claim, nil
}

func (s *Store) CancelClaim(
	_ context.Context,
	claimID string,
	cancelledAt time.Time,
	event ports.TaskEvent,
) (entities.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[claimID]
	if !ok {
		return entities.ClaimRecord{}, domainerrors.ErrClaimNotFound
	}
	if !claim.Status.CanTransition(entities.ClaimStatusCancelled) {
		if claim.Status.IsTerminal() {
			return entities.ClaimRecord{}, domainerrors.ErrTerminalState
		}
		return entities.ClaimRecord{}, domainerrors.ErrWrongState
	}
	if err := s.appendOutboxLocked(event); err != nil {
		return entities.ClaimRecord{}, err
	}

	if claim.Status.OccupiesSlot() {
		if task, ok := s.tasks[claim.TaskID]; ok && task.CurrentParticipants > 0 {
			task.CurrentParticipants--
			task.UpdatedAt = cancelledAt.UTC()
			s.tasks[task.TaskID] = task
		}
	}
	at := cancelledAt.UTC()
	claim.Status = entities.ClaimStatusCancelled
	claim.CancelledAt = &at
	claim.UpdatedAt = at
	s.claims[claim.ClaimID] = claim
	return claim, nil
}

func (s *Store) ReviewClaim(_ context.Context, outcome ports.ReviewOutcome, event ports.TaskEvent) (entities.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	submission, ok := s.submissions[outcome.SubmissionID]
	if !ok {
		return entities.ClaimRecord{}, domainerrors.ErrSubmissionNotFound
	}
	claim, ok := s.claims[submission.ClaimID]
	if !ok {
		return entities.ClaimRecord{}, domainerrors.ErrClaimNotFound
	}
	if claim.Status != entities.ClaimStatusSubmitted {
		return entities.ClaimRecord{}, domainerrors.ErrWrongState
	}
	if err := s.appendOutboxLocked(event); err != nil {
		return entities.ClaimRecord{}, err
	}

	reviewedAt := outcome.ReviewedAt.UTC()
	claim.Status = outcome.Decision.Status()
	claim.ReviewDecision = outcome.Decision
	claim.ReviewerID = outcome.ReviewerID
	claim.Feedback = outcome.Feedback
	claim.RewardMinor = outcome.RewardMinor
	claim.ReviewedAt = &reviewedAt
	claim.UpdatedAt = reviewedAt
	s.claims[claim.ClaimID] = claim
	return claim, nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[submissionID]
	if !ok {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	submission.Data = clonePayload(submission.Data)
	return submission, nil
}

func (s *Store) GetSubmissionByClaim(_ context.Context, claimID string) (entities.Submission, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[claimID]
	if !ok || claim.SubmissionID == "" {
		return entities.Submission{}, false, nil
	}
	submission, ok := s.submissions[claim.SubmissionID]
	if !ok {
		return entities.Submission{}, false, nil
	}
	submission.Data = clonePayload(submission.Data)
	return submission, true, nil
}

func (s *Store) ListPendingReview(_ context.Context, limit int) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0)
	for _, submission := range s.submissions {
		claim, ok := s.claims[submission.ClaimID]
		if !ok || claim.Status != entities.ClaimStatusSubmitted {
			continue
		}
		submission.Data = clonePayload(submission.Data)
		items = append(items, submission)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) ListSubmissions(_ context.Context, filter ports.SubmissionListFilter) ([]ports.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.SubmissionRecord, 0)
	for _, submission := range s.submissions {
		if filter.TaskID != "" && submission.TaskID != filter.TaskID {
			continue
		}
		claim, ok := s.claims[submission.ClaimID]
		if !ok {
			continue
		}
		if filter.Status != "" && claim.Status != filter.Status {
			continue
		}
		submission.Data = clonePayload(submission.Data)
		items = append(items, ports.SubmissionRecord{Submission: submission, Claim: claim})
	}
	sort.Slice(items, func(i, j int) bool {
		left, right := items[i].Submission, items[j].Submission
		if left.SubmittedAt.Equal(right.SubmittedAt) {
			return left.SubmissionID < right.SubmissionID
		}
		return left.SubmittedAt.After(right.SubmittedAt)
	})

	offset := max(filter.Offset, 0)
	if offset >= len(items) {
		return []ports.SubmissionRecord{}, nil
	}
	items = items[offset:]
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.sentAt != nil {
			continue
		}
		items = append(items, record.message)
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			at := sentAt.UTC()
			s.outbox[i].sentAt = &at
			return nil
		}
	}
	return domainerrors.ErrRepositoryInvariantBroke
}

// OutboxEvents returns every outbox message in write order, sent or not.
func (s *Store) OutboxEvents() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, record := range s.outbox {
		items = append(items, record.message)
	}
	return items
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("tc-%d", n), nil
}

func (s *Store) activeClaimLocked(userID string, taskID string) (entities.ClaimRecord, bool) {
	for _, claim := range s.claims {
		if claim.UserID == userID && claim.TaskID == taskID && claim.Status.IsActive() {
			return claim, true
		}
	}
	return entities.ClaimRecord{}, false
}

func (s *Store) appendOutboxLocked(event ports.TaskEvent) error {
	payload, err := ports.SealTaskEvent(event)
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, outboxRecord{message: ports.OutboxMessage{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		CreatedAt:    event.OccurredAt.UTC(),
	}})
	return nil
}

func clonePayload(data formschema.Payload) formschema.Payload {
	if data == nil {
		return nil
	}
	cloned := make(formschema.Payload, len(data))
	for key, value := range data {
		cloned[key] = value
	}
	return cloned
}
