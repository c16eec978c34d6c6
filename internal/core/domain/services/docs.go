// Package services provides domain services that orchestrate business operations
// across several aggregates of the lifecycle engine.
//
// The package includes:
//   - NegotiationEngine: the counter-offer protocol between customer and manufacturer
//   - ChangeAuditor: audit and review of term changes made after confirmation
//
// Services mutate the aggregates they receive and never persist; the command
// handlers own the transaction.
package services
