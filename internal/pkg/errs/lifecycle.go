package errs

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition       = errors.New("illegal transition")
	ErrUnauthorizedActor       = errors.New("unauthorized actor")
	ErrSelfResponse            = errors.New("sender cannot respond to own proposal")
	ErrStaleNegotiation        = errors.New("negotiation is no longer pending")
	ErrProductionNotApproved   = errors.New("production plan is not approved")
	ErrIllegalStageSkip        = errors.New("illegal production stage move")
	ErrInvalidPaymentState     = errors.New("invalid payment state")
	ErrEmptyReason             = errors.New("reason is required")
	ErrPaymentGateNotSatisfied = errors.New("payment gate is not satisfied")
	ErrPaymentExceedsTotal     = errors.New("confirmed payments would exceed order total")
)

// IllegalTransitionError is returned when the current status has no edge for the action.
type IllegalTransitionError struct {
	Entity string
	From   string
	Action string
}

func NewIllegalTransitionError(entity, from, action string) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, From: from, Action: action}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s from %s", ErrIllegalTransition, e.Entity, e.Action, e.From)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// UnauthorizedActorError is returned when the edge exists but the actor's role may not take it.
type UnauthorizedActorError struct {
	Role   string
	From   string
	Action string
}

func NewUnauthorizedActorError(role, from, action string) *UnauthorizedActorError {
	return &UnauthorizedActorError{Role: role, From: from, Action: action}
}

func (e *UnauthorizedActorError) Error() string {
	return fmt.Sprintf("%s: %s may not %s from %s", ErrUnauthorizedActor, e.Role, e.Action, e.From)
}

func (e *UnauthorizedActorError) Unwrap() error {
	return ErrUnauthorizedActor
}

type SelfResponseError struct {
	NegotiationID string
	Role          string
}

func NewSelfResponseError(negotiationID, role string) *SelfResponseError {
	return &SelfResponseError{NegotiationID: negotiationID, Role: role}
}

func (e *SelfResponseError) Error() string {
	return fmt.Sprintf("%s: %s sent negotiation %s", ErrSelfResponse, e.Role, e.NegotiationID)
}

func (e *SelfResponseError) Unwrap() error {
	return ErrSelfResponse
}

type StaleNegotiationError struct {
	NegotiationID string
	Status        string
}

func NewStaleNegotiationError(negotiationID, status string) *StaleNegotiationError {
	return &StaleNegotiationError{NegotiationID: negotiationID, Status: status}
}

func (e *StaleNegotiationError) Error() string {
	return fmt.Sprintf("%s: negotiation %s is %s", ErrStaleNegotiation, e.NegotiationID, e.Status)
}

func (e *StaleNegotiationError) Unwrap() error {
	return ErrStaleNegotiation
}

type ProductionNotApprovedError struct {
	TrackingID string
	PlanStatus string
}

func NewProductionNotApprovedError(trackingID, planStatus string) *ProductionNotApprovedError {
	return &ProductionNotApprovedError{TrackingID: trackingID, PlanStatus: planStatus}
}

func (e *ProductionNotApprovedError) Error() string {
	return fmt.Sprintf("%s: tracking %s plan is %s", ErrProductionNotApproved, e.TrackingID, e.PlanStatus)
}

func (e *ProductionNotApprovedError) Unwrap() error {
	return ErrProductionNotApproved
}

// IllegalStageSkipError is returned when a stage move is neither the next stage
// nor an allowed revision target.
type IllegalStageSkipError struct {
	From string
	To   string
}

func NewIllegalStageSkipError(from, to string) *IllegalStageSkipError {
	return &IllegalStageSkipError{From: from, To: to}
}

func (e *IllegalStageSkipError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalStageSkip, e.From, e.To)
}

func (e *IllegalStageSkipError) Unwrap() error {
	return ErrIllegalStageSkip
}

type InvalidPaymentStateError struct {
	PaymentID string
	Status    string
	Operation string
}

func NewInvalidPaymentStateError(paymentID, status, operation string) *InvalidPaymentStateError {
	return &InvalidPaymentStateError{PaymentID: paymentID, Status: status, Operation: operation}
}

func (e *InvalidPaymentStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s payment %s in status %s", ErrInvalidPaymentState, e.Operation, e.PaymentID, e.Status)
}

func (e *InvalidPaymentStateError) Unwrap() error {
	return ErrInvalidPaymentState
}

type EmptyReasonError struct {
	ParamName string
}

func NewEmptyReasonError(paramName string) *EmptyReasonError {
	return &EmptyReasonError{ParamName: paramName}
}

func (e *EmptyReasonError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptyReason, e.ParamName)
}

func (e *EmptyReasonError) Unwrap() error {
	return ErrEmptyReason
}

// PaymentGateNotSatisfiedError is returned when a payment-gated edge is attempted
// before the required payment is confirmed.
type PaymentGateNotSatisfiedError struct {
	Gate   string
	Action string
}

func NewPaymentGateNotSatisfiedError(gate, action string) *PaymentGateNotSatisfiedError {
	return &PaymentGateNotSatisfiedError{Gate: gate, Action: action}
}

func (e *PaymentGateNotSatisfiedError) Error() string {
	return fmt.Sprintf("%s: %s requires a confirmed %s payment", ErrPaymentGateNotSatisfied, e.Action, e.Gate)
}

func (e *PaymentGateNotSatisfiedError) Unwrap() error {
	return ErrPaymentGateNotSatisfied
}

type PaymentExceedsTotalError struct {
	Confirmed string
	Amount    string
	Total     string
}

func NewPaymentExceedsTotalError(confirmed, amount, total string) *PaymentExceedsTotalError {
	return &PaymentExceedsTotalError{Confirmed: confirmed, Amount: amount, Total: total}
}

func (e *PaymentExceedsTotalError) Error() string {
	return fmt.Sprintf("%s: confirmed %s + %s > total %s", ErrPaymentExceedsTotal, e.Confirmed, e.Amount, e.Total)
}

func (e *PaymentExceedsTotalError) Unwrap() error {
	return ErrPaymentExceedsTotal
}
