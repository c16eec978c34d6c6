// Package lifecycle is the single source of truth for the Order and Sample
// status machines.
//
// Statuses are grouped into seven phases (request, pricing, confirmation,
// planning, production, fulfillment, exit). Legal moves are kept in an explicit
// table keyed by (kind, from, action) and declared phase by phase. The
// universal exits (hold, reject, cancel) are checked separately instead of
// being repeated in every phase:
//
//	PENDING ─review─> REVIEWED ─send quote─> QUOTE_SENT <─┐
//	   │                                        │ counter  │ send quote
//	   └──────────── counter quote ───────────> CUSTOMER_QUOTE_SENT
//	                                            │ agree
//	                                      QUOTE_AGREED ─confirm─> CONFIRMED ─> ... ─> DELIVERED
//
//	any non-terminal ──hold──> ON_HOLD ──resume──> status before the hold
//	any non-terminal ──reject/cancel──> REJECTED_BY_* / CANCELLED
//
// Every edge names the roles allowed to take it; a missing edge yields
// errs.IllegalTransitionError and a wrong role errs.UnauthorizedActorError.
// Some order edges are payment gated; the registry reports the gate and the
// caller checks it against the payment ledger.
package lifecycle
