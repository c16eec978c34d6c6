// Package guard holds ConstructorGuard, used by commands and queries to
// detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in a struct and set only by its constructor.
// A zero-value guard fails validation.
//
//	type ProposeNegotiationCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c ProposeNegotiationCommand) Validate() error {
//	    return c.guard.Validate(ErrProposeNegotiationCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
