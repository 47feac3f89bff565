package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"taskhall/contexts/submission-core/survey-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/survey-service/domain/errors"
	"taskhall/contexts/submission-core/survey-service/ports"
	"taskhall/kernel/formschema"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.SurveySubmission, event ports.SurveyEvent) error {
	payload, err := ports.SealSurveyEvent(event)
	if err != nil {
		return err
	}
	row, err := submissionModelFromEntity(submission)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}
		outboxRow := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      payload,
			Status:       outboxStatusPending,
			CreatedAt:    event.OccurredAt.UTC(),
		}
		if err := tx.Create(&outboxRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}
		return nil
	})
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.SurveySubmission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.SurveySubmission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.SurveySubmission{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListByUser(ctx context.Context, userID string, page ports.Page) ([]entities.SurveySubmission, int, error) {
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	}, page)
}

func (r *Repository) ListByConfig(ctx context.Context, configID string, page ports.Page) ([]entities.SurveySubmission, int, error) {
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB {
		if configID == "" {
			return tx
		}
		return tx.Where("form_config_id = ?", configID)
	}, page)
}

func (r *Repository) list(
	ctx context.Context,
	filter func(*gorm.DB) *gorm.DB,
	page ports.Page,
) ([]entities.SurveySubmission, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Scopes(filter).
		Count(&total).
		Error; err != nil {
		return nil, 0, err
	}
	limit := page.Limit
	if limit <= 0 {
		limit = 10
	}
	var rows []submissionModel
	if err := r.db.WithContext(ctx).
		Scopes(filter).
		Order("submitted_at DESC, submission_id DESC").
		Offset(max(page.Offset, 0)).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}
	items := make([]entities.SurveySubmission, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, int(total), nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	UserID       string    `gorm:"column:user_id"`
	FormConfigID string    `gorm:"column:form_config_id"`
	Data         []byte    `gorm:"column:data;type:jsonb"`
	FileCount    int       `gorm:"column:file_count"`
	ClientIP     string    `gorm:"column:client_ip"`
	UserAgent    string    `gorm:"column:user_agent"`
	SubmittedAt  time.Time `gorm:"column:submitted_at"`
}

func (submissionModel) TableName() string {
	return "survey_submissions"
}

func submissionModelFromEntity(submission entities.SurveySubmission) (submissionModel, error) {
	data, err := json.Marshal(submission.Data)
	if err != nil {
		return submissionModel{}, err
	}
	return submissionModel{
		SubmissionID: submission.SubmissionID,
		UserID:       submission.UserID,
		FormConfigID: submission.FormConfigID,
		Data:         data,
		FileCount:    submission.FileCount,
		ClientIP:     submission.ClientIP,
		UserAgent:    submission.UserAgent,
		SubmittedAt:  submission.SubmittedAt.UTC(),
	}, nil
}

func (m submissionModel) toEntity() (entities.SurveySubmission, error) {
	var data formschema.Payload
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return entities.SurveySubmission{}, err
		}
	}
	return entities.SurveySubmission{
		SubmissionID: m.SubmissionID,
		UserID:       m.UserID,
		FormConfigID: m.FormConfigID,
		Data:         data,
		FileCount:    m.FileCount,
		ClientIP:     m.ClientIP,
		UserAgent:    m.UserAgent,
		SubmittedAt:  m.SubmittedAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "survey_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
