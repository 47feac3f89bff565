package queries

import (
	"context"
	"strings"

	"taskhall/contexts/submission-core/survey-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/survey-service/domain/errors"
	"taskhall/contexts/submission-core/survey-service/domain/services"
	"taskhall/contexts/submission-core/survey-service/ports"
)

type PageQuery struct {
	Page  int
	Limit int
}

// Offset converts a 1-based page number into a repository page.
func (q PageQuery) Offset() ports.Page {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	page := max(q.Page, 1)
	return ports.Page{Limit: limit, Offset: (page - 1) * limit}
}

type SubmissionPage struct {
	Items []entities.SurveySubmission
	Total int
	Page  int
	Limit int
}

type ListUserSubmissionsUseCase struct {
	Submissions ports.SubmissionRepository
}

func (u ListUserSubmissionsUseCase) Execute(ctx context.Context, userID string, query PageQuery) (SubmissionPage, error) {
	if strings.TrimSpace(userID) == "" {
		return SubmissionPage{}, domainerrors.ErrInvalidRequest
	}
	page := query.Offset()
	items, total, err := u.Submissions.ListByUser(ctx, userID, page)
	if err != nil {
		return SubmissionPage{}, err
	}
	return SubmissionPage{Items: items, Total: total, Page: page.Offset/page.Limit + 1, Limit: page.Limit}, nil
}

type GetSubmissionUseCase struct {
	Submissions ports.SubmissionRepository
}

func (u GetSubmissionUseCase) Execute(ctx context.Context, userID string, submissionID string) (entities.SurveySubmission, error) {
	submission, err := u.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return entities.SurveySubmission{}, err
	}
	if err := services.EnsureOwner(submission, userID); err != nil {
		return entities.SurveySubmission{}, err
	}
	return submission, nil
}

type ListConfigSubmissionsUseCase struct {
	Submissions ports.SubmissionRepository
}

func (u ListConfigSubmissionsUseCase) Execute(ctx context.Context, adminID string, configID string, query PageQuery) (SubmissionPage, error) {
	if strings.TrimSpace(adminID) == "" {
		return SubmissionPage{}, domainerrors.ErrActorRequired
	}
	page := query.Offset()
	items, total, err := u.Submissions.ListByConfig(ctx, configID, page)
	if err != nil {
		return SubmissionPage{}, err
	}
	return SubmissionPage{Items: items, Total: total, Page: page.Offset/page.Limit + 1, Limit: page.Limit}, nil
}
