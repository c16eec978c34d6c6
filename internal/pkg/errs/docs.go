// Package errs provides standardized error types for the marketplace lifecycle engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - Generic validation and persistence errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, ConcurrentModificationError and
//     InvariantViolationError.
//   - Lifecycle errors returned by the order/sample engine: IllegalTransitionError,
//     UnauthorizedActorError, SelfResponseError, StaleNegotiationError,
//     ProductionNotApprovedError, IllegalStageSkipError, InvalidPaymentStateError,
//     EmptyReasonError, PaymentGateNotSatisfiedError and PaymentExceedsTotalError.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions (with a WithCause variant where a cause is meaningful)
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is works
//
// Lifecycle errors are recoverable validation failures. The engine returns them
// verbatim and never logs them; translating them to user-facing messages is the
// caller's job. InvariantViolationError is different: it signals that state which
// was already committed breaks an engine invariant and must be surfaced loudly.
package errs
