package httptransport

type FileDTO struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty" validate:"min=0"`
}

type SubmitSurveyRequest struct {
	FormConfigID string               `json:"form_config_id" validate:"required"`
	Data         map[string]any       `json:"data" validate:"required"`
	Files        map[string][]FileDTO `json:"files,omitempty" validate:"omitempty,dive,dive"`
}

type SurveySubmissionDTO struct {
	SubmissionID string         `json:"submission_id"`
	UserID       string         `json:"user_id"`
	FormConfigID string         `json:"form_config_id"`
	Data         map[string]any `json:"data"`
	FileCount    int            `json:"file_count"`
	SubmittedAt  string         `json:"submitted_at"`
}

type SubmitSurveyResponse struct {
	SubmissionID string `json:"submission_id"`
	SubmittedAt  string `json:"submitted_at"`
	FileCount    int    `json:"file_count"`
}

type GetSurveySubmissionResponse struct {
	Item SurveySubmissionDTO `json:"item"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type ListSurveySubmissionsResponse struct {
	Items      []SurveySubmissionDTO `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
