package errors

import "taskhall/kernel/faults"

var (
	ErrTaskNotFound       = faults.New(faults.ErrNotFound, faults.CodeNotFound, "task not found")
	ErrClaimNotFound      = faults.New(faults.ErrNotFound, faults.CodeNotFound, "claim not found")
	ErrSubmissionNotFound = faults.New(faults.ErrNotFound, faults.CodeNotFound, "submission not found")

	ErrTaskNotClaimable = faults.New(faults.ErrStateConflict, "TASK_NOT_CLAIMABLE", "task is not accepting claims")
	ErrAlreadyClaimed   = faults.New(faults.ErrStateConflict, faults.CodeAlreadyClaimed, "task already claimed by user")
	ErrWrongState       = faults.New(faults.ErrStateConflict, faults.CodeWrongState, "claim is not in the required state")
	ErrTerminalState    = faults.New(faults.ErrStateConflict, faults.CodeTerminalState, "claim is already in a terminal state")

	ErrCapacityFull     = faults.New(faults.ErrCapacity, faults.CodeCapacityFull, "task has no free participant slots")
	ErrQuotaExceeded    = faults.New(faults.ErrCapacity, faults.CodeQuotaExceeded, "daily claim quota reached")
	ErrCapBelowOccupied = faults.New(faults.ErrStateConflict, "CAP_BELOW_PARTICIPANTS", "participant cap is below the current participant count")

	ErrNotClaimOwner    = faults.New(faults.ErrForbidden, faults.CodeForbidden, "claim belongs to another user")
	ErrActorRequired    = faults.New(faults.ErrForbidden, faults.CodeForbidden, "admin actor is required")
	ErrInvalidRequest   = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "invalid request")
	ErrInvalidDecision  = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "review decision must be approved or rejected")
	ErrInvalidTask      = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "invalid task definition")
	ErrFormKindMismatch = faults.New(faults.ErrInvalidInput, faults.CodeInvalidInput, "task form config must be a task form")

	ErrRepositoryInvariantBroke = faults.New(faults.ErrStateConflict, "REPOSITORY_INVARIANT", "repository invariant violated")
)
