// Package guard provides the constructor-guard pattern used by domain value
// objects and commands to detect zero-value instances that bypassed their
// designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and commands are only created through
// their designated constructor functions. It holds a flag that is set only by
// NewConstructorGuard, so a struct built by direct initialization carries the
// zero-value guard and fails validation.
//
// Example usage:
//
//	type Address struct {
//	    district string
//	    street   string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewAddress(district, street string) (Address, error) {
//	    if district == "" {
//	        return Address{}, errors.New("district is required")
//	    }
//	    return Address{district: district, street: street, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a Address) Validate() error {
//	    return a.guard.Validate(ErrAddressNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a new ConstructorGuard that marks an object as
// properly constructed. This should be called in the constructor of domain objects
// to ensure they can be distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed through
// its designated constructor function.
//
// If the object was created as a zero value (not through the constructor),
// this method returns the provided validation error. If validationError is nil,
// ErrDefaultConstructorGuard is returned instead.
//
// Returns:
//   - nil if the object was properly constructed
//   - validationError if the object was not constructed through its constructor
//   - ErrDefaultConstructorGuard if validationError is nil and object not constructed
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
