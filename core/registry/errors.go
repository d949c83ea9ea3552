package registry

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is wrapped by the ValidationError returned when an id is
// already registered.
var ErrDuplicateID = errors.New("duplicate id")

// ValidationError rejects malformed input, a missing field or a duplicate id.
// Field names the offending struct field as validator reports it ("ID",
// "Departure", ...).
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CapacityError rejects an insert into a registry at its configured limit.
type CapacityError struct {
	Kind  string
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s registry full: limit %d reached", e.Kind, e.Limit)
}

// NotFoundError reports a lookup of an id that is not registered.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
