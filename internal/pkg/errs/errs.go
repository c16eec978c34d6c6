package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInvariantViolation     = errors.New("invariant violation")
)

// sanitize renders a value on a single line so it can be embedded in messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ObjectNotFoundError is returned when a repository has no record for an ID.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError describes a value that fails a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError describes a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, e.ParamName, sanitize(e.Value), sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ConcurrentModificationError is returned when an optimistic write finds
// a newer version of the aggregate than the one it loaded.
type ConcurrentModificationError struct {
	Aggregate string
	ID        any
	Version   int
}

func NewConcurrentModificationError(aggregate string, id any, version int) *ConcurrentModificationError {
	return &ConcurrentModificationError{Aggregate: aggregate, ID: id, Version: version}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s was changed after version %d was read",
		ErrConcurrentModification, e.Aggregate, sanitize(e.ID), e.Version)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// InvariantViolationError reports committed state that breaks an engine invariant,
// for example two PENDING negotiation rounds for one order. It is a bug signal,
// not an input error.
type InvariantViolationError struct {
	Invariant string
	Detail    string
	Cause     error
}

func NewInvariantViolationError(invariant, detail string) *InvariantViolationError {
	return &InvariantViolationError{Invariant: invariant, Detail: detail}
}

func NewInvariantViolationErrorWithCause(invariant, detail string, cause error) *InvariantViolationError {
	return &InvariantViolationError{Invariant: invariant, Detail: detail, Cause: cause}
}

func (e *InvariantViolationError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrInvariantViolation, e.Invariant, sanitize(e.Detail))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolation
}
