package services

import (
	"taskhall/contexts/submission-core/survey-service/domain/entities"
	domainerrors "taskhall/contexts/submission-core/survey-service/domain/errors"
	"taskhall/kernel/formschema"
)

// EnsureCurrentConfig rejects answers collected against any config other than
// the one active now. Clients reload the form and resubmit.
func EnsureCurrentConfig(active formschema.FormConfig, requestedID string) error {
	if requestedID == "" || active.ID != requestedID {
		return domainerrors.ErrFormConfigStale
	}
	return nil
}

func EnsureOwner(submission entities.SurveySubmission, userID string) error {
	if submission.UserID != userID {
		return domainerrors.ErrNotSubmissionOwner
	}
	return nil
}

// MergeFiles fills blank fields of data with uploaded descriptors and returns
// the merged copy plus the number of descriptors used.
func MergeFiles(data formschema.Payload, files map[string][]formschema.FileDescriptor) (formschema.Payload, int) {
	merged := make(formschema.Payload, len(data)+len(files))
	for key, value := range data {
		merged[key] = value
	}
	count := 0
	for field, descriptors := range files {
		if len(descriptors) == 0 || !formschema.IsBlank(merged[field]) {
			continue
		}
		merged[field] = append([]formschema.FileDescriptor(nil), descriptors...)
		count += len(descriptors)
	}
	return merged, count
}
