package errors

import "taskhall/kernel/faults"

var (
	ErrFormConfigNotFound       = faults.New(faults.ErrNotFound, faults.CodeNotFound, "form config not found")
	ErrNoActiveFormConfig       = faults.New(faults.ErrNotFound, faults.CodeNotFound, "no active form config for kind")
	ErrInvalidFormKind          = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "form kind must be survey or task")
	ErrInvalidFormDocument      = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "form config document is not valid JSON")
	ErrActorRequired            = faults.New(faults.ErrForbidden, faults.CodeForbidden, "admin actor is required")
	ErrRepositoryInvariantBroke = faults.New(faults.ErrStateConflict, "REPOSITORY_INVARIANT", "repository invariant violated")
)
