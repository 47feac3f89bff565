package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "taskhall/contexts/submission-core/task-claim-service/application"
	"taskhall/contexts/submission-core/task-claim-service/application/commands"
	"taskhall/contexts/submission-core/task-claim-service/application/queries"
	"taskhall/contexts/submission-core/task-claim-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/task-claim-service/domain/errors"
	httptransport "taskhall/contexts/submission-core/task-claim-service/transport/http"
	"taskhall/kernel/formschema"

	"github.com/shopspring/decimal"
)

type Handler struct {
	ListTasks   queries.ListAvailableTasksUseCase
	GetTask     queries.GetTaskUseCase
	ListClaims  queries.ListUserClaimsUseCase
	GetClaim    queries.GetClaimUseCase
	Stats       queries.GetUserStatsUseCase
	ReviewQueue queries.ListReviewQueueUseCase
	Submissions queries.ListSubmissionsUseCase
	Claim       commands.ClaimTaskUseCase
	Submit      commands.SubmitClaimUseCase
	Cancel      commands.CancelClaimUseCase
	Review      commands.ReviewSubmissionUseCase
	CreateTask  commands.CreateTaskUseCase
	ChangeTask  commands.ChangeTaskStatusUseCase
	UpdateTask  commands.UpdateTaskUseCase
	Logger      *slog.Logger
}

// ListTasksHandler godoc
// @Summary List claimable tasks
// @Tags tasks
// @Produce json
// @Param X-User-Id header string false "User id"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} httptransport.ListTasksResponse
// @Router /v1/tasks [get]
func (h Handler) ListTasksHandler(ctx context.Context, userID string, limit int, offset int) (httptransport.ListTasksResponse, error) {
	views, err := h.ListTasks.Execute(ctx, queries.ListAvailableTasksQuery{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		return httptransport.ListTasksResponse{}, err
	}
	resp := httptransport.ListTasksResponse{Items: make([]httptransport.TaskViewDTO, 0, len(views))}
	for _, view := range views {
		resp.Items = append(resp.Items, mapTaskView(view))
	}
	return resp, nil
}

// GetTaskHandler godoc
// @Summary Get a task with the caller's claim
// @Tags tasks
// @Produce json
// @Param X-User-Id header string false "User id"
// @Param task_id path string true "Task id"
// @Success 200 {object} httptransport.TaskResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/tasks/{task_id} [get]
func (h Handler) GetTaskHandler(ctx context.Context, userID string, taskID string) (httptransport.TaskResponse, error) {
	view, err := h.GetTask.Execute(ctx, userID, taskID)
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	return httptransport.TaskResponse{Item: mapTaskView(view)}, nil
}

// ClaimTaskHandler godoc
// @Summary Claim a task
// @Description Reserves a participant slot and one unit of the daily quota.
// @Tags tasks
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param task_id path string true "Task id"
// @Success 201 {object} httptransport.ClaimResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/tasks/{task_id}/claim [post]
func (h Handler) ClaimTaskHandler(ctx context.Context, userID string, taskID string) (httptransport.ClaimResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	result, err := h.Claim.Execute(ctx, commands.ClaimTaskCommand{TaskID: taskID, UserID: userID})
	if err != nil {
		logger.Warn("claim task request failed",
			"event", "http_claim_task_failed",
			"module", "submission-core/task-claim-service",
			"layer", "transport",
			"task_id", taskID,
			"user_id", userID,
			"error", err.Error(),
		)
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Item: MapClaim(result.Claim)}, nil
}

// ListClaimsHandler godoc
// @Summary List the caller's claims
// @Tags claims
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param status query string false "Claim status filter"
// @Success 200 {object} httptransport.ListClaimsResponse
// @Router /v1/claims [get]
func (h Handler) ListClaimsHandler(ctx context.Context, userID string, status string) (httptransport.ListClaimsResponse, error) {
	claims, err := h.ListClaims.Execute(ctx, userID, entities.ClaimStatus(status))
	if err != nil {
		return httptransport.ListClaimsResponse{}, err
	}
	resp := httptransport.ListClaimsResponse{Items: make([]httptransport.ClaimDTO, 0, len(claims))}
	for _, claim := range claims {
		resp.Items = append(resp.Items, MapClaim(claim))
	}
	return resp, nil
}

// GetClaimHandler godoc
// @Summary Get one of the caller's claims
// @Tags claims
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param claim_id path string true "Claim id"
// @Success 200 {object} httptransport.ClaimDetailResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/claims/{claim_id} [get]
func (h Handler) GetClaimHandler(ctx context.Context, userID string, claimID string) (httptransport.ClaimDetailResponse, error) {
	detail, err := h.GetClaim.Execute(ctx, userID, claimID)
	if err != nil {
		return httptransport.ClaimDetailResponse{}, err
	}
	resp := httptransport.ClaimDetailResponse{
		Claim: MapClaim(detail.Claim),
		Task:  mapTask(detail.Task),
	}
	if detail.Submission != nil {
		submission := mapSubmission(*detail.Submission)
		resp.Submission = &submission
	}
	return resp, nil
}

// SubmitClaimHandler godoc
// @Summary Submit work for a claim
// @Description Validates the payload against the task form; invalid payloads leave the claim unchanged.
// @Tags claims
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param claim_id path string true "Claim id"
// @Param request body httptransport.SubmitClaimRequest true "Submission"
// @Success 200 {object} httptransport.SubmitClaimResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /v1/claims/{claim_id}/submit [post]
func (h Handler) SubmitClaimHandler(
	ctx context.Context,
	userID string,
	claimID string,
	req httptransport.SubmitClaimRequest,
) (httptransport.SubmitClaimResponse, error) {
	files := make(map[string][]formschema.FileDescriptor, len(req.Files))
	for field, items := range req.Files {
		for _, item := range items {
			files[field] = append(files[field], formschema.FileDescriptor{
				Name:        item.Name,
				URL:         item.URL,
				ContentType: item.ContentType,
				SizeBytes:   item.SizeBytes,
			})
		}
	}
	result, err := h.Submit.Execute(ctx, commands.SubmitClaimCommand{
		ClaimID: claimID,
		UserID:  userID,
		Data:    formschema.Payload(req.Data),
		Files:   files,
	})
	if err != nil {
		return httptransport.SubmitClaimResponse{}, err
	}
	return httptransport.SubmitClaimResponse{
		Claim:      MapClaim(result.Claim),
		Submission: mapSubmission(result.Submission),
	}, nil
}

// CancelClaimHandler godoc
// @Summary Cancel a claim
// @Tags claims
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param claim_id path string true "Claim id"
// @Success 200 {object} httptransport.ClaimResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/claims/{claim_id}/cancel [post]
func (h Handler) CancelClaimHandler(ctx context.Context, userID string, claimID string) (httptransport.ClaimResponse, error) {
	claim, err := h.Cancel.Execute(ctx, commands.CancelClaimCommand{ClaimID: claimID, UserID: userID})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Item: MapClaim(claim)}, nil
}

// UserStatsHandler godoc
// @Summary Summarise the caller's claims
// @Tags claims
// @Produce json
// @Param X-User-Id header string true "User id"
// @Success 200 {object} httptransport.UserStatsResponse
// @Router /v1/claims/stats [get]
func (h Handler) UserStatsHandler(ctx context.Context, userID string) (httptransport.UserStatsResponse, error) {
	stats, err := h.Stats.Execute(ctx, userID)
	if err != nil {
		return httptransport.UserStatsResponse{}, err
	}
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	return httptransport.UserStatsResponse{
		Total:          stats.Total,
		ByStatus:       byStatus,
		Earned:         formatReward(stats.EarnedMinor),
		ClaimsToday:    stats.ClaimsToday,
		DailyLimit:     stats.DailyLimit,
		RemainingToday: stats.RemainingToday,
	}, nil
}

// CreateTaskHandler godoc
// @Summary Create a task
// @Tags tasks-admin
// @Accept json
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param request body httptransport.CreateTaskRequest true "Task"
// @Success 201 {object} httptransport.TaskResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/admin/tasks [post]
func (h Handler) CreateTaskHandler(ctx context.Context, adminID string, req httptransport.CreateTaskRequest) (httptransport.TaskResponse, error) {
	reward, err := parseReward(req.Reward)
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	rewardMinor := int64(0)
	if reward != nil {
		rewardMinor = *reward
	}
	task, err := h.CreateTask.Execute(ctx, commands.CreateTaskCommand{
		ActorID:         adminID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		RewardMinor:     rewardMinor,
		MaxParticipants: req.MaxParticipants,
		FormConfigID:    req.FormConfigID,
		Deadline:        req.Deadline,
	})
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	return httptransport.TaskResponse{Item: httptransport.TaskViewDTO{TaskDTO: mapTask(task), Claimable: task.HasCapacity()}}, nil
}

// ChangeTaskStatusHandler godoc
// @Summary Pause, resume or close a task
// @Tags tasks-admin
// @Accept json
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param task_id path string true "Task id"
// @Param request body httptransport.ChangeTaskStatusRequest true "Status"
// @Success 200 {object} httptransport.TaskResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/admin/tasks/{task_id}/status [post]
func (h Handler) ChangeTaskStatusHandler(
	ctx context.Context,
	adminID string,
	taskID string,
	req httptransport.ChangeTaskStatusRequest,
) (httptransport.TaskResponse, error) {
	task, err := h.ChangeTask.Execute(ctx, commands.ChangeTaskStatusCommand{
		ActorID: adminID,
		TaskID:  taskID,
		Status:  entities.TaskStatus(req.Status),
	})
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	return httptransport.TaskResponse{Item: httptransport.TaskViewDTO{TaskDTO: mapTask(task)}}, nil
}

// UpdateTaskHandler godoc
// @Summary Edit a task's title, reward or participant cap
// @Tags tasks-admin
// @Accept json
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param task_id path string true "Task id"
// @Param request body httptransport.UpdateTaskRequest true "Changes"
// @Success 200 {object} httptransport.TaskResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/admin/tasks/{task_id} [patch]
func (h Handler) UpdateTaskHandler(
	ctx context.Context,
	adminID string,
	taskID string,
	req httptransport.UpdateTaskRequest,
) (httptransport.TaskResponse, error) {
	cmd := commands.UpdateTaskCommand{
		ActorID:         adminID,
		TaskID:          taskID,
		Title:           req.Title,
		MaxParticipants: req.MaxParticipants,
	}
	if req.Reward != nil {
		reward, err := parseReward(*req.Reward)
		if err != nil {
			return httptransport.TaskResponse{}, err
		}
		if reward == nil {
			return httptransport.TaskResponse{}, domainerrors.ErrInvalidRequest
		}
		cmd.RewardMinor = reward
	}
	task, err := h.UpdateTask.Execute(ctx, cmd)
	if err != nil {
		return httptransport.TaskResponse{}, err
	}
	return httptransport.TaskResponse{Item: httptransport.TaskViewDTO{TaskDTO: mapTask(task)}}, nil
}

// ReviewQueueHandler godoc
// @Summary List submissions awaiting review
// @Tags tasks-admin
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param limit query int false "Page size"
// @Success 200 {object} httptransport.ReviewQueueResponse
// @Router /v1/admin/submissions [get]
func (h Handler) ReviewQueueHandler(ctx context.Context, limit int) (httptransport.ReviewQueueResponse, error) {
	items, err := h.ReviewQueue.Execute(ctx, limit)
	if err != nil {
		return httptransport.ReviewQueueResponse{}, err
	}
	resp := httptransport.ReviewQueueResponse{Items: make([]httptransport.SubmissionDTO, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapSubmission(item))
	}
	return resp, nil
}

// ListSubmissionsHandler godoc
// @Summary List submissions in any review state
// @Tags tasks-admin
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param task_id query string false "Task id"
// @Param status query string false "Claim status: submitted, approved, rejected or cancelled"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} httptransport.ListSubmissionsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/admin/submissions/history [get]
func (h Handler) ListSubmissionsHandler(
	ctx context.Context,
	taskID string,
	status string,
	limit int,
	offset int,
) (httptransport.ListSubmissionsResponse, error) {
	query := queries.ListSubmissionsQuery{
		TaskID: taskID,
		Status: entities.ClaimStatus(status),
		Limit:  limit,
		Offset: offset,
	}
	records, err := h.Submissions.Execute(ctx, query)
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	resp := httptransport.ListSubmissionsResponse{Items: make([]httptransport.SubmissionRecordDTO, 0, len(records))}
	for _, record := range records {
		resp.Items = append(resp.Items, httptransport.SubmissionRecordDTO{
			SubmissionDTO: mapSubmission(record.Submission),
			Claim:         MapClaim(record.Claim),
		})
	}
	return resp, nil
}

// ReviewSubmissionHandler godoc
// @Summary Approve or reject a submission
// @Tags tasks-admin
// @Accept json
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param submission_id path string true "Submission id"
// @Param request body httptransport.ReviewSubmissionRequest true "Decision"
// @Success 200 {object} httptransport.ClaimResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/admin/submissions/{submission_id}/review [post]
func (h Handler) ReviewSubmissionHandler(
	ctx context.Context,
	adminID string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) (httptransport.ClaimResponse, error) {
	reward, err := parseReward(req.Reward)
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	claim, err := h.Review.Execute(ctx, commands.ReviewSubmissionCommand{
		SubmissionID: submissionID,
		ReviewerID:   adminID,
		Decision:     entities.ReviewDecision(req.Decision),
		Feedback:     req.Feedback,
		RewardMinor:  reward,
	})
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{Item: MapClaim(claim)}, nil
}

// parseReward turns a decimal amount such as "12.50" into minor units.
func parseReward(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return nil, domainerrors.ErrInvalidRequest
	}
	minor := amount.Shift(2)
	if !minor.IsInteger() {
		return nil, domainerrors.ErrInvalidRequest
	}
	value := minor.IntPart()
	return &value, nil
}

func formatReward(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

func mapTaskView(view queries.TaskView) httptransport.TaskViewDTO {
	dto := httptransport.TaskViewDTO{TaskDTO: mapTask(view.Task), Claimable: view.Claimable}
	if view.UserClaim != nil {
		claim := MapClaim(*view.UserClaim)
		dto.UserClaim = &claim
	}
	return dto
}

func mapTask(task entities.Task) httptransport.TaskDTO {
	dto := httptransport.TaskDTO{
		TaskID:              task.TaskID,
		Title:               task.Title,
		Description:         task.Description,
		Category:            task.Category,
		Reward:              formatReward(task.RewardMinor),
		MaxParticipants:     task.MaxParticipants,
		CurrentParticipants: task.CurrentParticipants,
		RemainingSlots:      task.RemainingSlots(),
		Status:              string(task.Status),
		FormConfigID:        task.FormConfigID,
		CreatedAt:           task.CreatedAt.UTC().Format(time.RFC3339),
	}
	if task.Deadline != nil {
		dto.Deadline = task.Deadline.UTC().Format(time.RFC3339)
	}
	return dto
}

func MapClaim(claim entities.ClaimRecord) httptransport.ClaimDTO {
	dto := httptransport.ClaimDTO{
		ClaimID:        claim.ClaimID,
		TaskID:         claim.TaskID,
		UserID:         claim.UserID,
		Status:         string(claim.Status),
		SubmissionID:   claim.SubmissionID,
		ReviewDecision: string(claim.ReviewDecision),
		Feedback:       claim.Feedback,
		ClaimedAt:      claim.ClaimedAt.UTC().Format(time.RFC3339),
		SubmittedAt:    formatOptional(claim.SubmittedAt),
		ReviewedAt:     formatOptional(claim.ReviewedAt),
		CancelledAt:    formatOptional(claim.CancelledAt),
	}
	if claim.RewardMinor != nil {
		dto.Reward = formatReward(*claim.RewardMinor)
	}
	return dto
}

func mapSubmission(submission entities.Submission) httptransport.SubmissionDTO {
	return httptransport.SubmissionDTO{
		SubmissionID: submission.SubmissionID,
		ClaimID:      submission.ClaimID,
		TaskID:       submission.TaskID,
		UserID:       submission.UserID,
		FormConfigID: submission.FormConfigID,
		Data:         submission.Data,
		SubmittedAt:  submission.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func formatOptional(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
