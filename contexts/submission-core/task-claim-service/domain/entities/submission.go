package entities

import (
	"time"

	"taskhall/kernel/formschema"
)

// Submission is the immutable work product attached to a claim. Data is the
// validated payload with uploaded files merged under their field names.
type Submission struct {
	SubmissionID string
	ClaimID      string
	TaskID       string
	UserID       string
	FormConfigID string
	Data         formschema.Payload
	SubmittedAt  time.Time
}
