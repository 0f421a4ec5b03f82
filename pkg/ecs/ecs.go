// Package ecs is a minimal entity-component store. An Allocator issues entity IDs and a Store
// associates each ID with at most one component of any number of types. Components are plain Go
// values; their type is the only thing the store knows about them.
//
// Operations on a type T are package functions because Go methods can't take type parameters:
//
//	store := ecs.NewStore()
//	entities := ecs.NewAllocator()
//
//	player := entities.New()
//	ecs.AddValue(store, player, &Health{Value: 100})
//	if health, ok := ecs.Get[Health](store, player); ok {
//		health.Value -= 10
//	}
//	store.RemoveEntity(player)
package ecs

// Add attaches a default-constructed T to an entity. The default is T's zero value, or Default()
// if T implements Defaulter. If the entity already has a T, the add is reported and ignored.
func Add[T any](s *Store, eid EntityID) {
	s.checkStale(eid)
	addComponent(s, eid, newComponent[T]())
}

// AddValue attaches component to an entity and transfers its ownership to the store. The pointer
// is consumed in every case: the caller must not use it after the call.
//
//   - If component is nil, a default-constructed T is added instead.
//   - If the entity already has a T, the add is rejected and the existing component is left
//     untouched. The rejected component is disposed of.
func AddValue[T any](s *Store, eid EntityID, component *T) {
	s.checkStale(eid)
	if component == nil {
		s.warn(ErrNullComponent, eid, keyOf[T](), "created a default component instead")
		component = newComponent[T]()
	}
	addComponent(s, eid, component)
}

func addComponent[T any](s *Store, eid EntityID, component *T) {
	if s.closed {
		s.warn(ErrStoreClosed, eid, keyOf[T](), "can't add a component to a closed store")
		dispose(component)
		return
	}

	col := columnFor[T](s)
	if !col.insert(eid, component) {
		s.warn(ErrDuplicateComponent, eid, keyOf[T](), "rejected duplicate component")
		dispose(component)
	}
}

// Get returns the entity's T, or false if it doesn't have one. Get never modifies the store.
// The returned pointer is borrowed and is only valid until the next add or remove of T.
func Get[T any](s *Store, eid EntityID) (*T, bool) {
	s.checkStale(eid)
	col, ok := lookupColumn[T](s)
	if !ok {
		return nil, false
	}
	return col.get(eid)
}

// Has reports whether the entity has a T.
func Has[T any](s *Store, eid EntityID) bool {
	_, ok := Get[T](s, eid)
	return ok
}

// GetAll returns every T in the store, one per entity that has one, in no particular order. The
// slice is a snapshot and doesn't reflect later adds or removes.
func GetAll[T any](s *Store) []*T {
	col, ok := lookupColumn[T](s)
	if !ok {
		return []*T{}
	}
	return col.values()
}

// Entities returns the IDs of every entity that has a T, in no particular order.
func Entities[T any](s *Store) []EntityID {
	col, ok := lookupColumn[T](s)
	if !ok {
		return []EntityID{}
	}
	return col.entities()
}

// Count returns the number of entities that have a T.
func Count[T any](s *Store) int {
	col, ok := lookupColumn[T](s)
	if !ok {
		return 0
	}
	return col.len()
}

// Remove destroys the entity's T. Removing a component the entity doesn't have is reported and
// otherwise a no-op.
func Remove[T any](s *Store, eid EntityID) {
	s.checkStale(eid)
	if s.closed {
		s.warn(ErrStoreClosed, eid, keyOf[T](), "can't remove a component from a closed store")
		return
	}

	col, ok := lookupColumn[T](s)
	if !ok || !col.remove(eid) {
		s.warn(ErrMissingComponent, eid, keyOf[T](), "tried to remove a component that doesn't exist")
	}
}

// ForEach calls fn with every T in the store. fn may modify the component but must not add or
// remove components of type T.
func ForEach[T any](s *Store, fn func(*T)) {
	col, ok := lookupColumn[T](s)
	if !ok {
		return
	}
	col.each(func(_ EntityID, component *T) {
		fn(component)
	})
}

// ForEachEntity is like ForEach but also passes the entity that owns each component.
func ForEachEntity[T any](s *Store, fn func(EntityID, *T)) {
	col, ok := lookupColumn[T](s)
	if !ok {
		return
	}
	col.each(fn)
}
