// Package payment provides the Payment entity, the per-order Ledger that
// guards payment invariants and answers status gates, and the Scheduler that
// derives payment milestones from order terms.
//
// Payment status flow:
//
//	PENDING ──> RECEIPT_UPLOADED ──┬──> CONFIRMED
//	   │  ^                        └──> REJECTED ──> (receipt re-upload)
//	   v  │
//	OVERDUE ──> CANCELLED
//
// The Ledger implements lifecycle.GateChecker so the status registry can gate
// edges on payments without knowing payment internals.
package payment
