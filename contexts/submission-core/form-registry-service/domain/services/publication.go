package services

import (
	"strings"
	"time"

	domainerrors "taskhall/contexts/submission-core/form-registry-service/domain/errors"
	"taskhall/kernel/faults"
	"taskhall/kernel/formschema"
)

// PrepareVersion turns an authored draft into a storable, inactive version.
// The repository assigns Version when it persists the result.
func PrepareVersion(
	draft formschema.FormConfig,
	configID string,
	actorID string,
	now time.Time,
) (formschema.FormConfig, error) {
	if !draft.Kind.Valid() {
		return formschema.FormConfig{}, domainerrors.ErrInvalidFormKind
	}
	if strings.TrimSpace(actorID) == "" {
		return formschema.FormConfig{}, domainerrors.ErrActorRequired
	}
	if problems := formschema.CheckConfig(draft); len(problems) > 0 {
		return formschema.FormConfig{}, faults.NewValidationError(problems)
	}

	prepared := draft
	prepared.ID = configID
	prepared.Title = strings.TrimSpace(draft.Title)
	prepared.Version = 0
	prepared.IsActive = false
	prepared.ActivatedAt = nil
	prepared.CreatedBy = strings.TrimSpace(actorID)
	prepared.CreatedAt = now.UTC()
	return prepared, nil
}
