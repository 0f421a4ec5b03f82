package ecs

import (
	"math"

	"github.com/argus-labs/ecstore/pkg/assert"
)

// EntityID is an opaque identifier for an entity. It carries no data and is only used as a key
// into the component store.
type EntityID uint32

// NilEntity is reserved and never issued by an Allocator.
const NilEntity EntityID = 0

// MaxEntityID is the largest entity ID an Allocator can issue.
const MaxEntityID EntityID = math.MaxUint32

// Allocator issues entity IDs. IDs start at 1, strictly increase, and are never reused, even after
// the entity's components are removed. An Allocator is not safe for concurrent use.
type Allocator struct {
	last EntityID // The last ID handed out, NilEntity if none
}

// NewAllocator creates an allocator whose first issued ID is 1.
func NewAllocator() *Allocator {
	return &Allocator{last: NilEntity}
}

// New returns a fresh entity ID, strictly greater than every ID issued before it.
func (a *Allocator) New() EntityID {
	assert.That(a.last < MaxEntityID, "entity id space exhausted at %d", a.last)
	a.last++
	return a.last
}

// Last returns the most recently issued ID, or NilEntity if New has never been called.
func (a *Allocator) Last() EntityID {
	return a.last
}
