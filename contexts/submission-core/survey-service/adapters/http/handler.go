package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "taskhall/contexts/submission-core/survey-service/application"
	"taskhall/contexts/submission-core/survey-service/application/commands"
	"taskhall/contexts/submission-core/survey-service/application/queries"
	"taskhall/contexts/submission-core/survey-service/domain/entities"
	httptransport "taskhall/contexts/submission-core/survey-service/transport/http"
	"taskhall/kernel/formschema"
)

type Handler struct {
	Submit        commands.SubmitSurveyUseCase
	ListMine      queries.ListUserSubmissionsUseCase
	Get           queries.GetSubmissionUseCase
	ListForConfig queries.ListConfigSubmissionsUseCase
	Logger        *slog.Logger
}

// SubmitSurveyHandler godoc
// @Summary Submit survey answers
// @Description Answers must target the active survey config; stale configs are rejected with FORM_CONFIG_STALE.
// @Tags surveys
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param request body httptransport.SubmitSurveyRequest true "Answers"
// @Success 201 {object} httptransport.SubmitSurveyResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /v1/surveys/submissions [post]
func (h Handler) SubmitSurveyHandler(
	ctx context.Context,
	userID string,
	clientIP string,
	userAgent string,
	req httptransport.SubmitSurveyRequest,
) (httptransport.SubmitSurveyResponse, error) {
	logger := application.ResolveLogger(h.Logger)
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

	submission, err := h.Submit.Execute(ctx, commands.SubmitSurveyCommand{
		UserID:       userID,
		FormConfigID: req.FormConfigID,
		Data:         formschema.Payload(req.Data),
		Files:        files,
		ClientIP:     clientIP,
		UserAgent:    userAgent,
	})
	if err != nil {
		logger.Warn("submit survey request failed",
			"event", "http_submit_survey_failed",
			"module", "submission-core/survey-service",
			"layer", "transport",
			"user_id", userID,
			"error", err.Error(),
		)
		return httptransport.SubmitSurveyResponse{}, err
	}
	return httptransport.SubmitSurveyResponse{
		SubmissionID: submission.SubmissionID,
		SubmittedAt:  submission.SubmittedAt.UTC().Format(time.RFC3339),
		FileCount:    submission.FileCount,
	}, nil
}

// ListMySubmissionsHandler godoc
// @Summary List the caller's survey submissions
// @Tags surveys
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} httptransport.ListSurveySubmissionsResponse
// @Router /v1/surveys/submissions [get]
func (h Handler) ListMySubmissionsHandler(ctx context.Context, userID string, page int, limit int) (httptransport.ListSurveySubmissionsResponse, error) {
	result, err := h.ListMine.Execute(ctx, userID, queries.PageQuery{Page: page, Limit: limit})
	if err != nil {
		return httptransport.ListSurveySubmissionsResponse{}, err
	}
	return mapPage(result), nil
}

// GetSubmissionHandler godoc
// @Summary Get one of the caller's survey submissions
// @Tags surveys
// @Produce json
// @Param X-User-Id header string true "User id"
// @Param submission_id path string true "Submission id"
// @Success 200 {object} httptransport.GetSurveySubmissionResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/surveys/submissions/{submission_id} [get]
func (h Handler) GetSubmissionHandler(ctx context.Context, userID string, submissionID string) (httptransport.GetSurveySubmissionResponse, error) {
	submission, err := h.Get.Execute(ctx, userID, submissionID)
	if err != nil {
		return httptransport.GetSurveySubmissionResponse{}, err
	}
	return httptransport.GetSurveySubmissionResponse{Item: mapSubmission(submission)}, nil
}

// ListConfigSubmissionsHandler godoc
// @Summary List survey submissions for a config
// @Tags surveys-admin
// @Produce json
// @Param X-Admin-Id header string true "Admin id"
// @Param config_id query string false "Form config id"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} httptransport.ListSurveySubmissionsResponse
// @Router /v1/admin/surveys/submissions [get]
func (h Handler) ListConfigSubmissionsHandler(
	ctx context.Context,
	adminID string,
	configID string,
	page int,
	limit int,
) (httptransport.ListSurveySubmissionsResponse, error) {
	result, err := h.ListForConfig.Execute(ctx, adminID, configID, queries.PageQuery{Page: page, Limit: limit})
	if err != nil {
		return httptransport.ListSurveySubmissionsResponse{}, err
	}
	return mapPage(result), nil
}

func mapPage(result queries.SubmissionPage) httptransport.ListSurveySubmissionsResponse {
	resp := httptransport.ListSurveySubmissionsResponse{
		Items: make([]httptransport.SurveySubmissionDTO, 0, len(result.Items)),
		Pagination: httptransport.Pagination{
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
		},
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, mapSubmission(item))
	}
	return resp
}

func mapSubmission(submission entities.SurveySubmission) httptransport.SurveySubmissionDTO {
	return httptransport.SurveySubmissionDTO{
		SubmissionID: submission.SubmissionID,
		UserID:       submission.UserID,
		FormConfigID: submission.FormConfigID,
		Data:         submission.Data,
		FileCount:    submission.FileCount,
		SubmittedAt:  submission.SubmittedAt.UTC().Format(time.RFC3339),
	}
}
