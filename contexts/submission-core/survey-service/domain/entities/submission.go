package entities

import (
	"time"

	"taskhall/kernel/formschema"
)

// SurveySubmission is immutable once stored. Data holds the validated
// payload with uploaded file descriptors merged under their field names.
type SurveySubmission struct {
	SubmissionID string
	UserID       string
	FormConfigID string
	Data         formschema.Payload
	FileCount    int
	ClientIP     string
	UserAgent    string
	SubmittedAt  time.Time
}
