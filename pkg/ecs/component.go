package ecs

import "reflect"

// Defaulter is implemented by component types whose default value isn't their zero value. Add
// and the nil fallback of AddValue use Default() to construct the component.
type Defaulter[T any] interface {
	Default() T
}

// Disposer is implemented by components that hold resources. The store calls Dispose exactly
// once when it destroys the component: on Remove, on RemoveEntity, on Close, and when AddValue
// rejects a duplicate it was handed.
type Disposer interface {
	Dispose()
}

// componentKey identifies a component type. Type identity is the only metadata the store keeps.
type componentKey = reflect.Type

// keyOf returns the component key of T.
func keyOf[T any]() componentKey {
	return reflect.TypeFor[T]()
}

// nameOf returns a human-readable name of T for diagnostics.
func nameOf[T any]() string {
	return keyOf[T]().String()
}

// newComponent allocates a default-constructed T owned by the caller.
func newComponent[T any]() *T {
	var zero T
	if d, ok := any(zero).(Defaulter[T]); ok {
		zero = d.Default()
	} else if d, ok := any(&zero).(Defaulter[T]); ok {
		zero = d.Default()
	}
	return &zero
}

// dispose releases a component the store owns. It must be called at most once per instance.
func dispose[T any](component *T) {
	if d, ok := any(component).(Disposer); ok {
		d.Dispose()
	}
}
