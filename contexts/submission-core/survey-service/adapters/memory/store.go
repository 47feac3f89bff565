package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	application "taskhall/contexts/submission-core/survey-service/application"
	"taskhall/contexts/submission-core/survey-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/survey-service/domain/errors"
	"taskhall/contexts/submission-core/survey-service/ports"
	"taskhall/kernel/formschema"
)

// Store is an in-memory adapter implementing the survey ports for local
// runtime and tests.
type Store struct {
	mu          sync.RWMutex
	submissions map[string]entities.SurveySubmission
	outbox      []outboxRecord
	sequence    uint64
	logger      *slog.Logger
}

type outboxRecord struct {
	message ports.OutboxMessage
	sentAt  *time.Time
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		submissions: make(map[string]entities.SurveySubmission),
		logger:      application.ResolveLogger(logger),
	}
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.SurveySubmission, event ports.SurveyEvent) error {
	payload, err := ports.SealSurveyEvent(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	submission.Data = clonePayload(submission.Data)
	s.submissions[submission.SubmissionID] = submission
	s.outbox = append(s.outbox, outboxRecord{message: ports.OutboxMessage{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		CreatedAt:    event.OccurredAt.UTC(),
	}})

	s.logger.Debug("survey submission stored in memory",
		"event", "memory_survey_submission_created",
		"module", "submission-core/survey-service",
		"layer", "adapter",
		"submission_id", submission.SubmissionID,
	)
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.SurveySubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[submissionID]
	if !ok {
		return entities.SurveySubmission{}, domainerrors.ErrSubmissionNotFound
	}
	submission.Data = clonePayload(submission.Data)
	return submission, nil
}

func (s *Store) ListByUser(_ context.Context, userID string, page ports.Page) ([]entities.SurveySubmission, int, error) {
	return s.list(func(item entities.SurveySubmission) bool { return item.UserID == userID }, page)
}

func (s *Store) ListByConfig(_ context.Context, configID string, page ports.Page) ([]entities.SurveySubmission, int, error) {
	return s.list(func(item entities.SurveySubmission) bool {
		return configID == "" || item.FormConfigID == configID
	}, page)
}

func (s *Store) list(match func(entities.SurveySubmission) bool, page ports.Page) ([]entities.SurveySubmission, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.SurveySubmission, 0)
	for _, submission := range s.submissions {
		if match(submission) {
			submission.Data = clonePayload(submission.Data)
			items = append(items, submission)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SubmittedAt.Equal(items[j].SubmittedAt) {
			return items[i].SubmissionID > items[j].SubmissionID
		}
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})

	total := len(items)
	if page.Offset >= total {
		return []entities.SurveySubmission{}, total, nil
	}
	items = items[page.Offset:]
	if page.Limit > 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items, total, nil
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
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("survey-%d", n), nil
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
