package lifecycle

import "errors"

var (
	// ErrNotFound is returned when a task, project or daily update id does
	// not resolve to a record.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidTransition is returned when an explicit action is attempted
	// from a state that does not allow it.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStage is returned when a stage name is not one of the known
	// project stages. It is a request validation failure, not a state issue.
	ErrInvalidStage = errors.New("unknown project stage")

	// ErrPreconditionNotMet is returned when submit-for-review gating fails:
	// a configured service report form without data, or no daily update with
	// at least one photo.
	ErrPreconditionNotMet = errors.New("submission preconditions not met")

	// ErrTaskCompleted is returned when a daily update metric edit is
	// attempted after the owning task is completed.
	ErrTaskCompleted = errors.New("task already completed")
)
