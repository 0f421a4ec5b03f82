package ecs

import "github.com/rotisserie/eris"

// Diagnostic kinds. These are attached to log events emitted by the store and are never returned
// to callers: every misuse is recovered inside the store.
var (
	// ErrNullComponent is reported when AddValue receives a nil component. The store falls back to
	// a default-constructed value.
	ErrNullComponent = eris.New("component can't be nil")

	// ErrDuplicateComponent is reported when an entity already has a component of the added type.
	// The add is rejected and the existing component is left untouched.
	ErrDuplicateComponent = eris.New("entity already has a component of this type")

	// ErrMissingComponent is reported when removing a component the entity doesn't have.
	ErrMissingComponent = eris.New("component doesn't exist")

	// ErrStaleEntity is reported when an entity is used after RemoveEntity was called on it. The
	// operation still proceeds.
	ErrStaleEntity = eris.New("entity was explicitly removed")

	// ErrStoreClosed is reported when mutating a store after Close.
	ErrStoreClosed = eris.New("store is closed")
)
