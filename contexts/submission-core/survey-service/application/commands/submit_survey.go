package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "taskhall/contexts/submission-core/survey-service/application"
	"taskhall/contexts/submission-core/survey-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/survey-service/domain/errors"
	"taskhall/contexts/submission-core/survey-service/domain/services"
	"taskhall/contexts/submission-core/survey-service/ports"
	"taskhall/kernel/faults"
	"taskhall/kernel/formschema"
)

const EventSurveySubmitted = "survey.submitted"

type SubmitSurveyCommand struct {
	UserID       string
	FormConfigID string
	Data         formschema.Payload
	Files        map[string][]formschema.FileDescriptor
	ClientIP     string
	UserAgent    string
}

type SubmitSurveyUseCase struct {
	Submissions ports.SubmissionRepository
	Forms       ports.FormConfigSource
	Clock       ports.Clock
	IDs         ports.IDGenerator
	Logger      *slog.Logger
}

// Execute checks the config is still the active survey, validates the
// answers and stores the submission with its survey.submitted event.
func (u SubmitSurveyUseCase) Execute(ctx context.Context, cmd SubmitSurveyCommand) (entities.SurveySubmission, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.SurveySubmission{}, domainerrors.ErrInvalidRequest
	}

	active, err := u.Forms.CurrentConfig(ctx, formschema.FormKindSurvey)
	if err != nil {
		return entities.SurveySubmission{}, err
	}
	if err := services.EnsureCurrentConfig(active, cmd.FormConfigID); err != nil {
		logger.Info("survey submitted against stale config",
			"event", "submit_survey_stale_config",
			"module", "submission-core/survey-service",
			"layer", "application",
			"user_id", cmd.UserID,
			"requested_config_id", cmd.FormConfigID,
			"active_config_id", active.ID,
		)
		return entities.SurveySubmission{}, err
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	data, fileCount := services.MergeFiles(cmd.Data, cmd.Files)
	result := formschema.NewValidator(func() time.Time { return now }).Validate(data, active)
	if !result.IsValid {
		logger.Info("survey rejected by form validation",
			"event", "submit_survey_validation_failed",
			"module", "submission-core/survey-service",
			"layer", "application",
			"user_id", cmd.UserID,
			"config_id", active.ID,
			"error_count", len(result.Errors),
		)
		return entities.SurveySubmission{}, faults.NewValidationError(result.Errors)
	}

	submissionID, err := u.IDs.NewID(ctx)
	if err != nil {
		return entities.SurveySubmission{}, err
	}
	eventID, err := u.IDs.NewID(ctx)
	if err != nil {
		return entities.SurveySubmission{}, err
	}
	submission := entities.SurveySubmission{
		SubmissionID: submissionID,
		UserID:       cmd.UserID,
		FormConfigID: active.ID,
		Data:         data,
		FileCount:    fileCount,
		ClientIP:     strings.TrimSpace(cmd.ClientIP),
		UserAgent:    strings.TrimSpace(cmd.UserAgent),
		SubmittedAt:  now,
	}
	event := ports.SurveyEvent{
		EventID:      eventID,
		EventType:    EventSurveySubmitted,
		PartitionKey: cmd.UserID,
		OccurredAt:   now,
		Data: map[string]any{
			"submission_id":  submission.SubmissionID,
			"user_id":        submission.UserID,
			"form_config_id": submission.FormConfigID,
			"form_title":     active.Title,
			"file_count":     submission.FileCount,
		},
	}

	if err := u.Submissions.CreateSubmission(ctx, submission, event); err != nil {
		logger.Error("survey submission write failed",
			"event", "submit_survey_write_failed",
			"module", "submission-core/survey-service",
			"layer", "application",
			"user_id", cmd.UserID,
			"error", err.Error(),
		)
		return entities.SurveySubmission{}, err
	}

	logger.Info("survey submitted",
		"event", "survey_submitted",
		"module", "submission-core/survey-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"user_id", submission.UserID,
		"config_id", submission.FormConfigID,
	)
	return submission, nil
}
