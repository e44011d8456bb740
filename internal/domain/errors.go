package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an edit or delete targets an id the
	// store no longer has.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when a linked event or goalie
	// pointer refers to a nonexistent or wrong-side entity.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrGoalieRequired is a control-flow signal, not a failure: the
	// requested action needs a current goalie and none is designated.
	// The action is queued on the resolver until selection completes.
	ErrGoalieRequired = errors.New("goalie selection required")

	// ErrNoEligibleGoalies means the roster has nobody who can be
	// designated goalie, distinct from "not yet selected".
	ErrNoEligibleGoalies = errors.New("no eligible goalie candidates")
)

// MissingFieldError rejects a write that lacks a field mandatory for
// its kind. Raised before any store write.
type MissingFieldError struct {
	Kind  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s requires field %q", e.Kind, e.Field)
}
