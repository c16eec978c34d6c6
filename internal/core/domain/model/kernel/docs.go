// Package kernel provides the shared domain primitives of the marketplace engine.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Currency and money helpers built on github.com/shopspring/decimal
//   - Event and EventRecorder: domain events collected by aggregates and
//     dispatched by the unit of work after commit
//
// These primitives are immutable (EventRecorder aside) and safe to share.
package kernel
