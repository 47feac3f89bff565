package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
	"taskhall/contexts/submission-core/task-claim-service/ports"
	"taskhall/kernel/formschema"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"

	activeClaimConstraint = "task_claims_active_unique"
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

func (r *Repository) CreateTask(ctx context.Context, task entities.Task) error {
	row := taskModelFromEntity(task)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

func (r *Repository) GetTask(ctx context.Context, taskID string) (entities.Task, error) {
	return getTask(r.db.WithContext(ctx), taskID)
}

func (r *Repository) ListTasks(ctx context.Context, filter ports.TaskListFilter) ([]entities.Task, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	tx := r.db.WithContext(ctx).Model(&taskModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	var rows []taskModel
	if err := tx.Order("created_at DESC, task_id ASC").
		Offset(max(filter.Offset, 0)).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateTaskStatus(
	ctx context.Context,
	taskID string,
	status entities.TaskStatus,
	updatedAt time.Time,
) (entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&taskModel{}).
			Where("task_id = ?", taskID).
			Updates(map[string]any{
				"status":     string(status),
				"updated_at": updatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrTaskNotFound
		}
		loaded, err := getTask(tx, taskID)
		task = loaded
		return err
	})
	return task, err
}

// UpdateTaskDetails locks the task row so the cap check sees the same
// participant count that concurrent claims are incrementing.
func (r *Repository) UpdateTaskDetails(
	ctx context.Context,
	taskID string,
	patch ports.TaskPatch,
	updatedAt time.Time,
) (entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row taskModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("task_id = ?", taskID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrTaskNotFound
			}
			return err
		}

		updates := map[string]any{"updated_at": updatedAt.UTC()}
		if patch.MaxParticipants != nil {
			limit := *patch.MaxParticipants
			if limit > 0 && limit < row.CurrentParticipants {
				return domainerrors.ErrCapBelowOccupied
			}
			updates["max_participants"] = limit
		}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.RewardMinor != nil {
			updates["reward"] = minorToDecimal(*patch.RewardMinor)
		}
		if err := tx.Model(&taskModel{}).
			Where("task_id = ?", taskID).
			Updates(updates).
			Error; err != nil {
			return err
		}
		loaded, err := getTask(tx, taskID)
		task = loaded
		return err
	})
	return task, err
}

func (r *Repository) GetClaim(ctx context.Context, claimID string) (entities.ClaimRecord, error) {
	return getClaim(r.db.WithContext(ctx), claimID)
}

func (r *Repository) FindActiveClaim(ctx context.Context, userID string, taskID string) (entities.ClaimRecord, bool, error) {
	var row claimModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ? AND status <> ?", userID, taskID, string(entities.ClaimStatusCancelled)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ClaimRecord{}, false, nil
		}
		return entities.ClaimRecord{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListClaimsByUser(ctx context.Context, userID string, status entities.ClaimStatus) ([]entities.ClaimRecord, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		tx = tx.Where("status = ?", string(status))
	}
	var rows []claimModel
	if err := tx.Order("claimed_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.ClaimRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ReserveClaim commits the duplicate guard, the slot increment, the quota
// increment, the claim row and its outbox event in one transaction. The slot
// and quota updates are conditional, so a lost race affects zero rows.
func (r *Repository) ReserveClaim(ctx context.Context, reservation ports.ClaimReservation) error {
	outboxRow, err := outboxModelFromEvent(reservation.Event)
	if err != nil {
		return err
	}
	claim := reservation.Claim

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimRow := claimModelFromEntity(claim)
		if err := tx.Create(&claimRow).Error; err != nil {
			if isUniqueViolation(err) {
				if constraintName(err) == activeClaimConstraint {
					return domainerrors.ErrAlreadyClaimed
				}
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}

		slot := tx.Model(&taskModel{}).
			Where("task_id = ? AND status = ?", claim.TaskID, string(entities.TaskStatusActive)).
			Where("(max_participants = 0 OR current_participants < max_participants)").
			Updates(map[string]any{
				"current_participants": gorm.Expr("current_participants + 1"),
				"updated_at":           claim.ClaimedAt.UTC(),
			})
		if slot.Error != nil {
			return slot.Error
		}
		if slot.RowsAffected == 0 {
			task, err := getTask(tx, claim.TaskID)
			if err != nil {
				return err
			}
			if task.Status != entities.TaskStatusActive {
				return domainerrors.ErrTaskNotClaimable
			}
			return domainerrors.ErrCapacityFull
		}

		if reservation.DailyLimit > 0 {
			quota := quotaModel{
				UserID:      claim.UserID,
				WindowStart: reservation.WindowStart.UTC(),
				Used:        1,
			}
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "window_start"}},
				DoUpdates: clause.Assignments(map[string]any{"used": gorm.Expr("task_claim_quotas.used + 1")}),
				Where: clause.Where{Exprs: []clause.Expression{
					gorm.Expr("task_claim_quotas.used < ?", reservation.DailyLimit),
				}},
			}).Create(&quota)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domainerrors.ErrQuotaExceeded
			}
		}

		return createOutbox(tx, outboxRow)
	})
}

func (r *Repository) SubmitClaim(ctx context.Context, submission entities.Submission, event ports.TaskEvent) (entities.ClaimRecord, error) {
	outboxRow, err := outboxModelFromEvent(event)
	if err != nil {
		return entities.ClaimRecord{}, err
	}
	submissionRow, err := submissionModelFromEntity(submission)
	if err != nil {
		return entities.ClaimRecord{}, err
	}

	var updated entities.ClaimRecord
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submittedAt := submission.SubmittedAt.UTC()
		result := tx.Model(&claimModel{}).
			Where("claim_id = ? AND status = ?", submission.ClaimID, string(entities.ClaimStatusClaimed)).
			Updates(map[string]any{
				"status":        string(entities.ClaimStatusSubmitted),
				"submission_id": submission.SubmissionID,
				"submitted_at":  submittedAt,
				"updated_at":    submittedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if _, err := getClaim(tx, submission.ClaimID); err != nil {
				return err
			}
			return domainerrors.ErrWrongState
		}

		if err := tx.Create(&submissionRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}
		if err := createOutbox(tx, outboxRow); err != nil {
			return err
		}
		claim, err := getClaim(tx, submission.ClaimID)
		updated = claim
		return err
	})
	return updated, err
}

func (r *Repository) CancelClaim(
	ctx context.Context,
	claimID string,
	cancelledAt time.Time,
	event ports.TaskEvent,
) (entities.ClaimRecord, error) {
	outboxRow, err := outboxModelFromEvent(event)
	if err != nil {
		return entities.ClaimRecord{}, err
	}

	var updated entities.ClaimRecord
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row claimModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", claimID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrClaimNotFound
			}
			return err
		}
		status := entities.ClaimStatus(row.Status)
		if !status.CanTransition(entities.ClaimStatusCancelled) {
			if status.IsTerminal() {
				return domainerrors.ErrTerminalState
			}
			return domainerrors.ErrWrongState
		}

		at := cancelledAt.UTC()
		if err := tx.Model(&claimModel{}).
			Where("claim_id = ?", claimID).
			Updates(map[string]any{
				"status":       string(entities.ClaimStatusCancelled),
				"cancelled_at": at,
				"updated_at":   at,
			}).Error; err != nil {
			return err
		}
		if status.OccupiesSlot() {
			if err := tx.Model(&taskModel{}).
				Where("task_id = ? AND current_participants > 0", row.TaskID).
				Updates(map[string]any{
					"current_participants": gorm.Expr("current_participants - 1"),
					"updated_at":           at,
				}).Error; err != nil {
				return err
			}
		}
		if err := createOutbox(tx, outboxRow); err != nil {
			return err
		}
		claim, err := getClaim(tx, claimID)
		updated = claim
		return err
	})
	return updated, err
}

func (r *Repository) ReviewClaim(ctx context.Context, outcome ports.ReviewOutcome, event ports.TaskEvent) (entities.ClaimRecord, error) {
	outboxRow, err := outboxModelFromEvent(event)
	if err != nil {
		return entities.ClaimRecord{}, err
	}

	var updated entities.ClaimRecord
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission submissionModel
		if err := tx.Where("submission_id = ?", outcome.SubmissionID).First(&submission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrSubmissionNotFound
			}
			return err
		}

		reviewedAt := outcome.ReviewedAt.UTC()
		result := tx.Model(&claimModel{}).
			Where("claim_id = ? AND status = ?", submission.ClaimID, string(entities.ClaimStatusSubmitted)).
			Updates(map[string]any{
				"status":          string(outcome.Decision.Status()),
				"review_decision": string(outcome.Decision),
				"reviewer_id":     outcome.ReviewerID,
				"feedback":        outcome.Feedback,
				"reward":          rewardColumn(outcome.RewardMinor),
				"reviewed_at":     reviewedAt,
				"updated_at":      reviewedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if _, err := getClaim(tx, submission.ClaimID); err != nil {
				return err
			}
			return domainerrors.ErrWrongState
		}
		if err := createOutbox(tx, outboxRow); err != nil {
			return err
		}
		claim, err := getClaim(tx, submission.ClaimID)
		updated = claim
		return err
	})
	return updated, err
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetSubmissionByClaim(ctx context.Context, claimID string) (entities.Submission, bool, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).Where("claim_id = ?", claimID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, false, nil
		}
		return entities.Submission{}, false, err
	}
	submission, err := row.toEntity()
	return submission, err == nil, err
}

func (r *Repository) ListPendingReview(ctx context.Context, limit int) ([]entities.Submission, error) {
	var rows []submissionModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN task_claims ON task_claims.claim_id = task_submissions.claim_id").
		Where("task_claims.status = ?", string(entities.ClaimStatusSubmitted)).
		Order("task_submissions.submitted_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		submission, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, submission)
	}
	return items, nil
}

func (r *Repository) ListSubmissions(ctx context.Context, filter ports.SubmissionListFilter) ([]ports.SubmissionRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	tx := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Joins("JOIN task_claims ON task_claims.claim_id = task_submissions.claim_id")
	if filter.TaskID != "" {
		tx = tx.Where("task_submissions.task_id = ?", filter.TaskID)
	}
	if filter.Status != "" {
		tx = tx.Where("task_claims.status = ?", string(filter.Status))
	}
	var rows []submissionModel
	if err := tx.Order("task_submissions.submitted_at DESC, task_submissions.submission_id ASC").
		Offset(max(filter.Offset, 0)).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []ports.SubmissionRecord{}, nil
	}

	claimIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		claimIDs = append(claimIDs, row.ClaimID)
	}
	var claimRows []claimModel
	if err := r.db.WithContext(ctx).Where("claim_id IN ?", claimIDs).Find(&claimRows).Error; err != nil {
		return nil, err
	}
	claims := make(map[string]entities.ClaimRecord, len(claimRows))
	for _, row := range claimRows {
		claims[row.ClaimID] = row.toEntity()
	}

	items := make([]ports.SubmissionRecord, 0, len(rows))
	for _, row := range rows {
		submission, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, ports.SubmissionRecord{Submission: submission, Claim: claims[row.ClaimID]})
	}
	return items, nil
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
		items = append(items, row.toPort())
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

func getTask(tx *gorm.DB, taskID string) (entities.Task, error) {
	var row taskModel
	if err := tx.Where("task_id = ?", taskID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Task{}, domainerrors.ErrTaskNotFound
		}
		return entities.Task{}, err
	}
	return row.toEntity(), nil
}

func getClaim(tx *gorm.DB, claimID string) (entities.ClaimRecord, error) {
	var row claimModel
	if err := tx.Where("claim_id = ?", claimID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ClaimRecord{}, domainerrors.ErrClaimNotFound
		}
		return entities.ClaimRecord{}, err
	}
	return row.toEntity(), nil
}

func createOutbox(tx *gorm.DB, row outboxModel) error {
	if err := tx.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

type taskModel struct {
	TaskID              string          `gorm:"column:task_id;primaryKey"`
	Title               string          `gorm:"column:title"`
	Description         string          `gorm:"column:description"`
	Category            string          `gorm:"column:category"`
	Reward              decimal.Decimal `gorm:"column:reward;type:numeric(12,2)"`
	MaxParticipants     int             `gorm:"column:max_participants"`
	CurrentParticipants int             `gorm:"column:current_participants"`
	Status              string          `gorm:"column:status"`
	FormConfigID        *string         `gorm:"column:form_config_id"`
	Deadline            *time.Time      `gorm:"column:deadline"`
	CreatedBy           string          `gorm:"column:created_by"`
	CreatedAt           time.Time       `gorm:"column:created_at"`
	UpdatedAt           time.Time       `gorm:"column:updated_at"`
}

func (taskModel) TableName() string {
	return "tasks"
}

func taskModelFromEntity(task entities.Task) taskModel {
	row := taskModel{
		TaskID:              task.TaskID,
		Title:               task.Title,
		Description:         task.Description,
		Category:            task.Category,
		Reward:              minorToDecimal(task.RewardMinor),
		MaxParticipants:     task.MaxParticipants,
		CurrentParticipants: task.CurrentParticipants,
		Status:              string(task.Status),
		Deadline:            utcPtr(task.Deadline),
		CreatedBy:           task.CreatedBy,
		CreatedAt:           task.CreatedAt.UTC(),
		UpdatedAt:           task.UpdatedAt.UTC(),
	}
	if task.FormConfigID != "" {
		configID := task.FormConfigID
		row.FormConfigID = &configID
	}
	return row
}

func (m taskModel) toEntity() entities.Task {
	task := entities.Task{
		TaskID:              m.TaskID,
		Title:               m.Title,
		Description:         m.Description,
		Category:            m.Category,
		RewardMinor:         decimalToMinor(m.Reward),
		MaxParticipants:     m.MaxParticipants,
		CurrentParticipants: m.CurrentParticipants,
		Status:              entities.TaskStatus(m.Status),
		Deadline:            utcPtr(m.Deadline),
		CreatedBy:           m.CreatedBy,
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
	}
	if m.FormConfigID != nil {
		task.FormConfigID = *m.FormConfigID
	}
	return task
}

type claimModel struct {
	ClaimID        string              `gorm:"column:claim_id;primaryKey"`
	UserID         string              `gorm:"column:user_id"`
	TaskID         string              `gorm:"column:task_id"`
	Status         string              `gorm:"column:status"`
	SubmissionID   *string             `gorm:"column:submission_id"`
	ReviewDecision *string             `gorm:"column:review_decision"`
	ReviewerID     *string             `gorm:"column:reviewer_id"`
	Feedback       *string             `gorm:"column:feedback"`
	Reward         decimal.NullDecimal `gorm:"column:reward;type:numeric(12,2)"`
	ClaimedAt      time.Time           `gorm:"column:claimed_at"`
	SubmittedAt    *time.Time          `gorm:"column:submitted_at"`
	ReviewedAt     *time.Time          `gorm:"column:reviewed_at"`
	CancelledAt    *time.Time          `gorm:"column:cancelled_at"`
	UpdatedAt      time.Time           `gorm:"column:updated_at"`
}

func (claimModel) TableName() string {
	return "task_claims"
}

func claimModelFromEntity(claim entities.ClaimRecord) claimModel {
	return claimModel{
		ClaimID:        claim.ClaimID,
		UserID:         claim.UserID,
		TaskID:         claim.TaskID,
		Status:         string(claim.Status),
		SubmissionID:   optionalString(claim.SubmissionID),
		ReviewDecision: optionalString(string(claim.ReviewDecision)),
		ReviewerID:     optionalString(claim.ReviewerID),
		Feedback:       optionalString(claim.Feedback),
		Reward:         rewardColumn(claim.RewardMinor),
		ClaimedAt:      claim.ClaimedAt.UTC(),
		SubmittedAt:    utcPtr(claim.SubmittedAt),
		ReviewedAt:     utcPtr(claim.ReviewedAt),
		CancelledAt:    utcPtr(claim.CancelledAt),
		UpdatedAt:      claim.UpdatedAt.UTC(),
	}
}

func (m claimModel) toEntity() entities.ClaimRecord {
	claim := entities.ClaimRecord{
		ClaimID:     m.ClaimID,
		UserID:      m.UserID,
		TaskID:      m.TaskID,
		Status:      entities.ClaimStatus(m.Status),
		ClaimedAt:   m.ClaimedAt.UTC(),
		SubmittedAt: utcPtr(m.SubmittedAt),
		ReviewedAt:  utcPtr(m.ReviewedAt),
		CancelledAt: utcPtr(m.CancelledAt),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.SubmissionID != nil {
		claim.SubmissionID = *m.SubmissionID
	}
	if m.ReviewDecision != nil {
		claim.ReviewDecision = entities.ReviewDecision(*m.ReviewDecision)
	}
	if m.ReviewerID != nil {
		claim.ReviewerID = *m.ReviewerID
	}
	if m.Feedback != nil {
		claim.Feedback = *m.Feedback
	}
	if m.Reward.Valid {
		reward := decimalToMinor(m.Reward.Decimal)
		claim.RewardMinor = &reward
	}
	return claim
}

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	ClaimID      string    `gorm:"column:claim_id"`
	TaskID       string    `gorm:"column:task_id"`
	UserID       string    `gorm:"column:user_id"`
	FormConfigID string    `gorm:"column:form_config_id"`
	Data         []byte    `gorm:"column:data;type:jsonb"`
	SubmittedAt  time.Time `gorm:"column:submitted_at"`
}

func (submissionModel) TableName() string {
	return "task_submissions"
}

func submissionModelFromEntity(submission entities.Submission) (submissionModel, error) {
	data, err := json.Marshal(submission.Data)
	if err != nil {
		return submissionModel{}, err
	}
	return submissionModel{
		SubmissionID: submission.SubmissionID,
		ClaimID:      submission.ClaimID,
		TaskID:       submission.TaskID,
		UserID:       submission.UserID,
		FormConfigID: submission.FormConfigID,
		Data:         data,
		SubmittedAt:  submission.SubmittedAt.UTC(),
	}, nil
}

func (m submissionModel) toEntity() (entities.Submission, error) {
	var data formschema.Payload
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return entities.Submission{}, err
		}
	}
	return entities.Submission{
		SubmissionID: m.SubmissionID,
		ClaimID:      m.ClaimID,
		TaskID:       m.TaskID,
		UserID:       m.UserID,
		FormConfigID: m.FormConfigID,
		Data:         data,
		SubmittedAt:  m.SubmittedAt.UTC(),
	}, nil
}

type quotaModel struct {
	UserID      string    `gorm:"column:user_id;primaryKey"`
	WindowStart time.Time `gorm:"column:window_start;primaryKey"`
	Used        int       `gorm:"column:used"`
}

func (quotaModel) TableName() string {
	return "task_claim_quotas"
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
	return "task_claim_outbox"
}

func outboxModelFromEvent(event ports.TaskEvent) (outboxModel, error) {
	payload, err := ports.SealTaskEvent(event)
	if err != nil {
		return outboxModel{}, err
	}
	return outboxModel{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}, nil
}

func (m outboxModel) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      m.Payload,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// Rewards are stored as numeric(12,2) and handled as minor units in code.
func minorToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

func decimalToMinor(value decimal.Decimal) int64 {
	return value.Shift(2).Round(0).IntPart()
}

func rewardColumn(minor *int64) decimal.NullDecimal {
	if minor == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(minorToDecimal(*minor))
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
