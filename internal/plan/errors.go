package plan

import "errors"

var (
	// ErrLocked is returned for any mutation attempted after the nightly
	// cutoff for the target day.
	ErrLocked = errors.New("the modification deadline has passed, your selection is locked")

	// ErrNotFound is returned for operations on a selection that was never
	// persisted, e.g. cancelling when nothing is stored.
	ErrNotFound = errors.New("no selection found")

	// ErrBadTransition is returned when an operation is not legal in the
	// current planning state.
	ErrBadTransition = errors.New("operation not allowed in the current state")

	// ErrInFlight is returned when a submission is already being processed
	// for the same employee.
	ErrInFlight = errors.New("a submission is already in progress")

	// ErrUnknownDay is returned by weekly operations for a date outside the
	// target week.
	ErrUnknownDay = errors.New("date is not part of the planning week")
)
