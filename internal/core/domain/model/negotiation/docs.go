// Package negotiation models one counter-offer round between the customer and
// the manufacturer of an order.
//
// Rounds are append-only. A round is created PENDING and ends exactly once:
// ACCEPTED or REJECTED by the counterparty, SUPERSEDED by a newer round, or
// EXPIRED by the sweep. Only the slot of the order's single PENDING round moves.
package negotiation
