// Package production tracks the manufacturing of one order or sample through
// eight fixed stages, gated by customer approval of the production plan.
//
//	PLANNING -> CUTTING -> SEWING -> WASHING -> FINISHING -> QUALITY -> PACKAGING -> SHIPPING
//
// Advancing moves one stage forward (skips need an override). Reverting moves
// back to a stage already visited and is recorded as a new stage update with
// isRevision set. Stage updates are never deleted.
package production
