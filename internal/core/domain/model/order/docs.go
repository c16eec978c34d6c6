// Package order provides the Order aggregate root shared by orders and samples
// in the marketplace lifecycle engine.
//
// The package includes:
//   - Order: the aggregate root holding terms, parties, status and the
//     customer's latest counter-offer
//   - Terms: the negotiable quantity / price / lead-time bundle
//   - CounterOffer: the single-slot cache of the customer's last proposal
//
// Key business rules:
//   - Status is only changed through the lifecycle registry (Transition,
//     Resume, RevertNegotiation, Override); there is no status setter
//   - Holding remembers the pre-hold status; resuming returns to it
//   - Payment-gated edges require a GateChecker that reports the gate as satisfied
//   - Term edits after confirmation are applied through the change auditor
//   - The version is bumped by persistence on every successful write and is
//     used for optimistic concurrency
package order
