package ecs

import "github.com/argus-labs/ecstore/pkg/assert"

// abstractColumn is the type-erased view of a column the store uses when it doesn't know the
// concrete component type, e.g. when purging an entity across every column.
type abstractColumn interface {
	len() int
	name() string
	has(eid EntityID) bool
	entities() []EntityID

	// remove disposes of and deletes the entity's component. Returns false if there was none.
	remove(eid EntityID) bool
	// clear disposes of and deletes every component in the column.
	clear()
}

var _ abstractColumn = &column[struct{}]{}

// column owns the components of a single type, keyed by entity. Each component is boxed so the
// pointers handed out by get stay valid while the entry exists, regardless of map growth.
type column[T any] struct {
	compName   string
	components map[EntityID]*T
}

// newColumn creates an empty column for T.
func newColumn[T any](capacity int) *column[T] {
	return &column[T]{
		compName:   nameOf[T](),
		components: make(map[EntityID]*T, capacity),
	}
}

func (c *column[T]) len() int {
	return len(c.components)
}

func (c *column[T]) name() string {
	return c.compName
}

func (c *column[T]) has(eid EntityID) bool {
	_, ok := c.components[eid]
	return ok
}

// get returns the entity's component without modifying the column.
func (c *column[T]) get(eid EntityID) (*T, bool) {
	component, ok := c.components[eid]
	return component, ok
}

// insert takes ownership of component. Returns false, without storing anything, if the entity
// already has a component in this column.
func (c *column[T]) insert(eid EntityID, component *T) bool {
	assert.That(component != nil, "nil %s inserted for entity %d", c.compName, eid)
	if _, exists := c.components[eid]; exists {
		return false
	}
	c.components[eid] = component
	return true
}

func (c *column[T]) remove(eid EntityID) bool {
	component, ok := c.components[eid]
	if !ok {
		return false
	}
	delete(c.components, eid)
	dispose(component)
	return true
}

func (c *column[T]) clear() {
	for eid, component := range c.components {
		delete(c.components, eid)
		dispose(component)
	}
}

func (c *column[T]) entities() []EntityID {
	eids := make([]EntityID, 0, len(c.components))
	for eid := range c.components {
		eids = append(eids, eid)
	}
	return eids
}

// values returns a snapshot of the column's components.
func (c *column[T]) values() []*T {
	values := make([]*T, 0, len(c.components))
	for _, component := range c.components {
		values = append(values, component)
	}
	return values
}

// each calls fn for every component in the column.
func (c *column[T]) each(fn func(EntityID, *T)) {
	for eid, component := range c.components {
		fn(eid, component)
	}
}
