package errors

import "taskhall/kernel/faults"

var (
	ErrSubmissionNotFound = faults.New(faults.ErrNotFound, faults.CodeNotFound, "survey submission not found")
	ErrFormConfigStale    = faults.New(faults.ErrStateConflict, "FORM_CONFIG_STALE", "survey form config is no longer active")
	ErrNotSubmissionOwner = faults.New(faults.ErrForbidden, faults.CodeForbidden, "survey submission belongs to another user")
	ErrActorRequired      = faults.New(faults.ErrForbidden, faults.CodeForbidden, "admin actor is required")
	ErrInvalidRequest     = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "invalid survey request")

	ErrRepositoryInvariantBroke = faults.New(faults.ErrStateConflict, "REPOSITORY_INVARIANT", "repository invariant violated")
)
