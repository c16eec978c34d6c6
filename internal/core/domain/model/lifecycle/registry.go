package lifecycle

import (
	"marketplace/internal/pkg/errs"
)

// Edge is a resolved legal move.
type Edge struct {
	From   Status
	Action Action
	To     Status
	Gate   Gate
}

type edgeKey struct {
	kind   EntityKind
	from   Status
	action Action
}

type edgeValue struct {
	to     Status
	actors roleSet
	gate   Gate
}

// rule declares one action from several source statuses. Gates apply to
// orders only; samples are not paid in milestones.
type rule struct {
	from   []Status
	action Action
	to     Status
	actors roleSet
	gate   Gate
	kinds  []EntityKind
}

var (
	customer     = rolesOf(RoleCustomer)
	manufacturer = rolesOf(RoleManufacturer)
	mfrOrSystem  = rolesOf(RoleManufacturer, RoleSystem)
	anyParty     = rolesOf(RoleCustomer, RoleManufacturer, RoleSystem)
	exitActors   = rolesOf(RoleCustomer, RoleManufacturer, RoleAdmin)
	bothKinds    = []EntityKind{KindOrder, KindSample}
	ordersOnly   = []EntityKind{KindOrder}
	samplesOnly  = []EntityKind{KindSample}
	negotiable   = []Status{StatusPending, StatusReviewed, StatusQuoteSent, StatusCustomerQuoteSent, StatusManufacturerReviewingQuote}
)

func requestPhase() []rule {
	return []rule{
		{from: []Status{StatusPending}, action: ActionReview, to: StatusReviewed, actors: manufacturer, kinds: bothKinds},
	}
}

func pricingPhase() []rule {
	return []rule{
		{from: negotiable, action: ActionSendQuote, to: StatusQuoteSent, actors: manufacturer, kinds: bothKinds},
		{from: negotiable, action: ActionCounterQuote, to: StatusCustomerQuoteSent, actors: customer, kinds: bothKinds},
		{
			from:   []Status{StatusCustomerQuoteSent},
			action: ActionReviewQuote, to: StatusManufacturerReviewingQuote, actors: manufacturer, kinds: bothKinds,
		},
		{from: []Status{StatusQuoteSent}, action: ActionAgreeQuote, to: StatusQuoteAgreed, actors: customer, kinds: bothKinds},
		{
			from:   []Status{StatusCustomerQuoteSent, StatusManufacturerReviewingQuote},
			action: ActionAgreeQuote, to: StatusQuoteAgreed, actors: manufacturer, kinds: bothKinds,
		},
	}
}

func confirmationPhase() []rule {
	return []rule{
		{
			from:   []Status{StatusQuoteSent, StatusQuoteAgreed},
			action: ActionConfirm, to: StatusConfirmed, actors: customer, kinds: bothKinds,
		},
		{
			from:   []Status{StatusConfirmed},
			action: ActionRequestDeposit, to: StatusDepositPending, actors: mfrOrSystem, kinds: ordersOnly,
		},
		{
			from:   []Status{StatusDepositPending},
			action: ActionRecordDeposit, to: StatusDepositReceived, actors: mfrOrSystem, gate: GateDeposit, kinds: ordersOnly,
		},
	}
}

func planningPhase() []rule {
	return []rule{
		{
			from:   []Status{StatusConfirmed, StatusProductionPlanRejected},
			action: ActionPreparePlan, to: StatusProductionPlanPreparing, actors: manufacturer, kinds: bothKinds,
		},
		{
			from:   []Status{StatusDepositReceived},
			action: ActionPreparePlan, to: StatusProductionPlanPreparing, actors: manufacturer, kinds: ordersOnly,
		},
		{
			from:   []Status{StatusProductionPlanPreparing, StatusProductionPlanRejected},
			action: ActionSendPlan, to: StatusProductionPlanSent, actors: manufacturer, kinds: bothKinds,
		},
		{
			from:   []Status{StatusProductionPlanSent},
			action: ActionApprovePlan, to: StatusProductionPlanApproved, actors: customer, gate: GateDeposit, kinds: bothKinds,
		},
		{
			from:   []Status{StatusProductionPlanSent},
			action: ActionRejectPlan, to: StatusProductionPlanRejected, actors: customer, kinds: bothKinds,
		},
	}
}

func productionPhase() []rule {
	return []rule{
		{
			from:   []Status{StatusProductionPlanApproved},
			action: ActionStartProduction, to: StatusInProduction, actors: mfrOrSystem, gate: GateDeposit, kinds: bothKinds,
		},
		{
			from:   []Status{StatusInProduction},
			action: ActionRequestRevision, to: StatusProductionRevision, actors: anyParty, kinds: bothKinds,
		},
		{
			from:   []Status{StatusProductionRevision},
			action: ActionResumeProduction, to: StatusInProduction, actors: mfrOrSystem, kinds: bothKinds,
		},
		{
			from:   []Status{StatusInProduction},
			action: ActionCompleteProduction, to: StatusProductionComplete, actors: mfrOrSystem, kinds: bothKinds,
		},
	}
}

func fulfillmentPhase() []rule {
	return []rule{
		{
			from:   []Status{StatusProductionComplete},
			action: ActionStartQualityCheck, to: StatusQualityCheck, actors: manufacturer, kinds: bothKinds,
		},
		{from: []Status{StatusQualityCheck}, action: ActionPassQuality, to: StatusQualityApproved, actors: manufacturer, kinds: bothKinds},
		{from: []Status{StatusQualityCheck}, action: ActionFailQuality, to: StatusQualityFailed, actors: manufacturer, kinds: bothKinds},
		{from: []Status{StatusQualityFailed}, action: ActionRework, to: StatusProductionRevision, actors: manufacturer, kinds: bothKinds},
		{
			from:   []Status{StatusQualityApproved},
			action: ActionRequestBalance, to: StatusBalancePending, actors: mfrOrSystem, kinds: ordersOnly,
		},
		{
			from:   []Status{StatusBalancePending},
			action: ActionMarkReady, to: StatusReadyToShip, actors: mfrOrSystem, gate: GateBalance, kinds: ordersOnly,
		},
		{from: []Status{StatusQualityApproved}, action: ActionMarkReady, to: StatusReadyToShip, actors: manufacturer, kinds: samplesOnly},
		{from: []Status{StatusReadyToShip}, action: ActionShip, to: StatusShipped, actors: manufacturer, kinds: bothKinds},
		{from: []Status{StatusShipped}, action: ActionDispatch, to: StatusInTransit, actors: manufacturer, kinds: bothKinds},
		{
			from:   []Status{StatusShipped, StatusInTransit},
			action: ActionDeliver, to: StatusDelivered, actors: mfrOrSystem, kinds: bothKinds,
		},
		{
			from:   []Status{StatusShipped, StatusInTransit},
			action: ActionConfirmReceipt, to: StatusCompleted, actors: customer, kinds: bothKinds,
		},
		{
			from:   []Status{StatusQualityApproved, StatusReadyToShip},
			action: ActionRequestSampleRevision, to: StatusRevisionRequested, actors: customer, kinds: samplesOnly,
		},
		{
			from:   []Status{StatusRevisionRequested},
			action: ActionReviseSample, to: StatusProductionPlanPreparing, actors: manufacturer, kinds: samplesOnly,
		},
	}
}

// Registry resolves (kind, from, action, role) to the next status.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	edges map[edgeKey]edgeValue
}

// NewRegistry builds the transition table from the phase declarations.
func NewRegistry() *Registry {
	r := &Registry{edges: make(map[edgeKey]edgeValue)}
	phases := [][]rule{
		requestPhase(), pricingPhase(), confirmationPhase(),
		planningPhase(), productionPhase(), fulfillmentPhase(),
	}
	for _, phase := range phases {
		for _, ru := range phase {
			for _, kind := range ru.kinds {
				gate := ru.gate
				if kind != KindOrder {
					gate = GateNone
				}
				for _, from := range ru.from {
					if !from.BelongsTo(kind) || !ru.to.BelongsTo(kind) {
						continue
					}
					r.edges[edgeKey{kind: kind, from: from, action: ru.action}] = edgeValue{
						to: ru.to, actors: ru.actors, gate: gate,
					}
				}
			}
		}
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry.
func Default() *Registry {
	return defaultRegistry
}

// CanTransition reports whether Resolve would succeed. It has no side effects.
func (r *Registry) CanTransition(kind EntityKind, from Status, action Action, role Role) bool {
	if action == ActionResume {
		return from == StatusOnHold && from.BelongsTo(kind) && exitActors.has(role)
	}
	_, err := r.Resolve(kind, from, action, role)
	return err == nil
}

// Apply returns the status reached by taking action from `from`.
// Resume targets depend on the remembered pre-hold status and go through Resume.
func (r *Registry) Apply(kind EntityKind, from Status, action Action, role Role) (Status, error) {
	edge, err := r.Resolve(kind, from, action, role)
	if err != nil {
		return StatusUnknown, err
	}
	return edge.To, nil
}

// Resolve returns the full edge including its payment gate.
func (r *Registry) Resolve(kind EntityKind, from Status, action Action, role Role) (Edge, error) {
	if err := from.ValidateFor(kind); err != nil {
		return Edge{}, err
	}
	if from.IsTerminal() {
		return Edge{}, errs.NewIllegalTransitionError(kind.String(), from.String(), action.String())
	}
	if action.IsExit() {
		return r.resolveExit(kind, from, action, role)
	}

	v, ok := r.edges[edgeKey{kind: kind, from: from, action: action}]
	if !ok {
		return Edge{}, errs.NewIllegalTransitionError(kind.String(), from.String(), action.String())
	}
	if !v.actors.has(role) {
		return Edge{}, errs.NewUnauthorizedActorError(role.String(), from.String(), action.String())
	}
	return Edge{From: from, Action: action, To: v.to, Gate: v.gate}, nil
}

// resolveExit handles the exits that every non-terminal status shares.
func (r *Registry) resolveExit(kind EntityKind, from Status, action Action, role Role) (Edge, error) {
	illegal := errs.NewIllegalTransitionError(kind.String(), from.String(), action.String())
	if !exitActors.has(role) {
		return Edge{}, errs.NewUnauthorizedActorError(role.String(), from.String(), action.String())
	}

	var to Status
	switch action { //nolint:exhaustive // exits only
	case ActionHold:
		if from == StatusOnHold {
			return Edge{}, illegal
		}
		to = StatusOnHold
	case ActionReject:
		switch role { //nolint:exhaustive // exitActors checked above
		case RoleCustomer:
			to = StatusRejectedByCustomer
		case RoleManufacturer:
			to = StatusRejectedByManufacturer
		default:
			to = StatusRejected
		}
	case ActionCancel:
		to = StatusCancelled
	default:
		// resume has no fixed target
		return Edge{}, illegal
	}
	return Edge{From: from, Action: action, To: to}, nil
}

// Resume returns the status remembered when the hold was placed.
func (r *Registry) Resume(kind EntityKind, current, previous Status, role Role) (Status, error) {
	if current != StatusOnHold {
		return StatusUnknown, errs.NewIllegalTransitionError(kind.String(), current.String(), ActionResume.String())
	}
	if !exitActors.has(role) {
		return StatusUnknown, errs.NewUnauthorizedActorError(role.String(), current.String(), ActionResume.String())
	}
	if err := previous.ValidateFor(kind); err != nil {
		return StatusUnknown, errs.NewInvariantViolationErrorWithCause(
			"hold remembers previous status", kind.String()+" on hold without a valid previous status", err)
	}
	if previous == StatusOnHold || previous.IsTerminal() {
		return StatusUnknown, errs.NewInvariantViolationError(
			"hold remembers previous status", "previous status "+previous.String()+" cannot be resumed")
	}
	return previous, nil
}

// RevertNegotiation moves the status back to what it was before a proposal
// that was rejected or expired. Both ends must be negotiable statuses.
func (r *Registry) RevertNegotiation(kind EntityKind, from, to Status, role Role) (Status, error) {
	if err := validatePair(kind, from, to); err != nil {
		return StatusUnknown, err
	}
	if from == StatusPending || from == StatusReviewed || !from.IsNegotiable() || !to.IsNegotiable() {
		return StatusUnknown, errs.NewIllegalTransitionError(kind.String(), from.String(), ActionRevertQuote.String())
	}
	if !anyParty.has(role) {
		return StatusUnknown, errs.NewUnauthorizedActorError(role.String(), from.String(), ActionRevertQuote.String())
	}
	return to, nil
}

// Override is the administrative escape: any status of the kind, terminal or
// not. ON_HOLD is refused as a target from ON_HOLD or a terminal status, since
// the hold would have nothing to resume to.
func (r *Registry) Override(kind EntityKind, from, to Status, role Role) (Status, error) {
	if err := validatePair(kind, from, to); err != nil {
		return StatusUnknown, err
	}
	if role != RoleAdmin {
		return StatusUnknown, errs.NewUnauthorizedActorError(role.String(), from.String(), ActionOverride.String())
	}
	if to == StatusOnHold && (from == StatusOnHold || from.IsTerminal()) {
		return StatusUnknown, errs.NewIllegalTransitionError(kind.String(), from.String(), ActionOverride.String())
	}
	return to, nil
}

// Edges lists the table entries leaving `from`, exits excluded. Used by
// callers that show the available actions.
func (r *Registry) Edges(kind EntityKind, from Status) []Edge {
	out := make([]Edge, 0)
	if from.IsTerminal() {
		return out
	}
	for a := ActionReview; a <= ActionReviseSample; a++ {
		if v, ok := r.edges[edgeKey{kind: kind, from: from, action: a}]; ok {
			out = append(out, Edge{From: from, Action: a, To: v.to, Gate: v.gate})
		}
	}
	return out
}

func validatePair(kind EntityKind, from, to Status) error {
	if err := from.ValidateFor(kind); err != nil {
		return err
	}
	return to.ValidateFor(kind)
}
