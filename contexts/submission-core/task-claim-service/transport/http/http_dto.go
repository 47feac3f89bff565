package httptransport

import "time"

type TaskDTO struct {
	TaskID              string `json:"task_id"`
	Title               string `json:"title"`
	Description         string `json:"description,omitempty"`
	Category            string `json:"category,omitempty"`
	Reward              string `json:"reward"`
	MaxParticipants     int    `json:"max_participants"`
	CurrentParticipants int    `json:"current_participants"`
	RemainingSlots      int    `json:"remaining_slots"`
	Status              string `json:"status"`
	FormConfigID        string `json:"form_config_id,omitempty"`
	Deadline            string `json:"deadline,omitempty"`
	CreatedAt           string `json:"created_at"`
}

type TaskViewDTO struct {
	TaskDTO
	Claimable bool      `json:"claimable"`
	UserClaim *ClaimDTO `json:"user_claim,omitempty"`
}

type ClaimDTO struct {
	ClaimID        string `json:"claim_id"`
	TaskID         string `json:"task_id"`
	UserID         string `json:"user_id"`
	Status         string `json:"status"`
	SubmissionID   string `json:"submission_id,omitempty"`
	ReviewDecision string `json:"review_decision,omitempty"`
	Feedback       string `json:"feedback,omitempty"`
	Reward         string `json:"reward,omitempty"`
	ClaimedAt      string `json:"claimed_at"`
	SubmittedAt    string `json:"submitted_at,omitempty"`
	ReviewedAt     string `json:"reviewed_at,omitempty"`
	CancelledAt    string `json:"cancelled_at,omitempty"`
}

type SubmissionDTO struct {
	SubmissionID string         `json:"submission_id"`
	ClaimID      string         `json:"claim_id"`
	TaskID       string         `json:"task_id"`
	UserID       string         `json:"user_id"`
	FormConfigID string         `json:"form_config_id"`
	Data         map[string]any `json:"data"`
	SubmittedAt  string         `json:"submitted_at"`
}

type FileDTO struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty" validate:"min=0"`
}

type CreateTaskRequest struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description,omitempty" validate:"max=5000"`
	Category        string     `json:"category,omitempty" validate:"max=64"`
	Reward          string     `json:"reward,omitempty" validate:"omitempty,numeric"`
	MaxParticipants int        `json:"max_participants" validate:"min=0"`
	FormConfigID    string     `json:"form_config_id,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

type ChangeTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused closed"`
}

// UpdateTaskRequest edits a task in place. Omitted fields are unchanged and a
// max_participants of 0 removes the cap.
type UpdateTaskRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Reward          *string `json:"reward,omitempty" validate:"omitempty,numeric"`
	MaxParticipants *int    `json:"max_participants,omitempty" validate:"omitempty,min=0"`
}

type SubmitClaimRequest struct {
	Data  map[string]any       `json:"data" validate:"required"`
	Files map[string][]FileDTO `json:"files,omitempty" validate:"omitempty,dive,dive"`
}

type ReviewSubmissionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Feedback string `json:"feedback,omitempty" validate:"max=2000"`
	Reward   string `json:"reward,omitempty" validate:"omitempty,numeric"`
}

type TaskResponse struct {
	Item TaskViewDTO `json:"item"`
}

type ListTasksResponse struct {
	Items []TaskViewDTO `json:"items"`
}

type ClaimResponse struct {
	Item ClaimDTO `json:"item"`
}

type ListClaimsResponse struct {
	Items []ClaimDTO `json:"items"`
}

type ClaimDetailResponse struct {
	Claim      ClaimDTO       `json:"claim"`
	Task       TaskDTO        `json:"task"`
	Submission *SubmissionDTO `json:"submission,omitempty"`
}

type SubmitClaimResponse struct {
	Claim      ClaimDTO      `json:"claim"`
	Submission SubmissionDTO `json:"submission"`
}

type UserStatsResponse struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	Earned         string         `json:"earned"`
	ClaimsToday    int            `json:"claims_today"`
	DailyLimit     int            `json:"daily_limit"`
	RemainingToday int            `json:"remaining_today"`
}

type ReviewQueueResponse struct {
	Items []SubmissionDTO `json:"items"`
}

type SubmissionRecordDTO struct {
	SubmissionDTO
	Claim ClaimDTO `json:"claim"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionRecordDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
