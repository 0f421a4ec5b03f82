package ecs

import (
	"bytes"
	"testing"

	. "github.com/argus-labs/ecstore/pkg/testutils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []StoreOption
		wantTracked bool
		wantCap     int
	}{
		{
			name:    "defaults",
			wantCap: defaultColumnCapacity,
		},
		{
			name:        "diagnostics on",
			opts:        []StoreOption{WithDiagnostics(true)},
			wantTracked: true,
			wantCap:     defaultColumnCapacity,
		},
		{
			name:        "options replaced",
			opts:        []StoreOption{WithOptions(Options{Diagnostics: true, ColumnCapacity: 64})},
			wantTracked: true,
			wantCap:     64,
		},
		{
			name:    "later option wins",
			opts:    []StoreOption{WithDiagnostics(true), WithOptions(DefaultOptions())},
			wantCap: defaultColumnCapacity,
		},
		{
			name:    "negative capacity is clamped",
			opts:    []StoreOption{WithOptions(Options{ColumnCapacity: -1})},
			wantCap: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewStore(tt.opts...)
			assert.Equal(t, tt.wantTracked, s.removed != nil)
			assert.Equal(t, tt.wantCap, s.capacity)
			assert.Equal(t, zerolog.Disabled, s.logger.GetLevel(), "default logger is a no-op")
		})
	}
}

func TestStore_RemovedEntitiesTracked(t *testing.T) {
	t.Parallel()

	s := NewStore(WithDiagnostics(true))
	AddValue(s, 3, &Health{Value: 1})
	s.RemoveEntity(3)
	s.RemoveEntity(9) // Entities without components are tracked too.

	assert.True(t, s.removed.Contains(3))
	assert.True(t, s.removed.Contains(9))
	assert.False(t, s.removed.Contains(4))
	assert.Equal(t, uint64(2), s.removed.GetCardinality())
}

func TestStore_RemovedEntitiesAtTopOfIDRange(t *testing.T) {
	t.Parallel()

	s := NewStore(WithDiagnostics(true))
	for _, eid := range []EntityID{MaxEntityID, MaxEntityID - 1, 1} {
		AddValue(s, eid, &Health{Value: int(eid % 100)})
		s.RemoveEntity(eid)
	}

	assert.True(t, s.removed.Contains(uint32(MaxEntityID)))
	assert.True(t, s.removed.Contains(uint32(MaxEntityID-1)))
	assert.False(t, s.removed.Contains(uint32(MaxEntityID-2)))
	assert.Equal(t, uint64(3), s.removed.GetCardinality())
	// Three scattered IDs fit in a few array containers, far below one dense bitset's worth.
	assert.Less(t, s.removed.GetSizeInBytes(), uint64(1<<10))
	assert.Zero(t, s.Len())
}

func TestNewStore_NegativeCapacityIsReported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewStore(
		WithLogger(zerolog.New(&buf)),
		WithOptions(Options{ColumnCapacity: -8}),
	)
	assert.Equal(t, 0, s.capacity)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"capacity":-8`)

	// Columns can still be created.
	Add[Health](s, 1)
	assert.True(t, Has[Health](s, 1))
}

func TestStore_LookupIsPure(t *testing.T) {
	t.Parallel()

	s := NewStore()
	Get[Health](s, 1)
	Has[Health](s, 1)
	GetAll[Health](s)
	Entities[Health](s)
	Count[Health](s)
	ForEach(s, func(*Health) {})
	ForEachEntity(s, func(EntityID, *Health) {})
	assert.Empty(t, s.columns)

	Add[Health](s, 1)
	Get[Health](s, 2)
	col, ok := lookupColumn[Health](s)
	require.True(t, ok)
	assert.Equal(t, 1, col.len(), "a missed get must not insert an entry")
}

func TestStore_WrongColumnType(t *testing.T) {
	t.Parallel()

	s := NewStore()
	// Corrupt the store so the Health key maps to a Position column.
	s.columns[keyOf[Health]()] = newColumn[Position](0)

	assert.Panics(t, func() { Get[Health](s, 1) })
}

// -------------------------------------------------------------------------------------------------
// Model-Based Fuzzing
//
// This test verifies the Store against a model made of plain Go maps by applying random sequences
// of add/get/remove/removeEntity operations to both and asserting equivalence. Components are
// Resources so every disposal is counted, which checks that each instance is destroyed exactly
// once. Operations are weighted to keep the store populated.
// -------------------------------------------------------------------------------------------------

type storeOp uint8

const (
	opAdd          storeOp = 40
	opAddNil       storeOp = 5
	opGet          storeOp = 25
	opRemove       storeOp = 20
	opRemoveEntity storeOp = 10
)

var storeOps = []storeOp{opAdd, opAddNil, opGet, opRemove, opRemoveEntity}

// fuzzModel mirrors the store: component ID per entity, per type.
type fuzzModel struct {
	resources map[EntityID]int
	healths   map[EntityID]int
}

func TestStore_ModelBasedFuzz(t *testing.T) {
	t.Parallel()
	prng := NewRand(t)

	const (
		opsMax    = 1 << 14 // 16_384 iterations
		entityMax = 64
	)

	ledger := NewLedger()
	impl := NewStore(WithDiagnostics(true))
	model := fuzzModel{resources: make(map[EntityID]int), healths: make(map[EntityID]int)}
	nextID := 1 // Component values, 0 is what default construction produces
	wantDisposed := 0

	for range opsMax {
		eid := EntityID(prng.IntN(entityMax) + 1)
		useHealth := prng.IntN(2) == 0

		switch RandWeightedOp(prng, storeOps) {
		case opAdd:
			id := nextID
			nextID++
			if useHealth {
				AddValue(impl, eid, &Health{Value: id})
				if _, exists := model.healths[eid]; !exists {
					model.healths[eid] = id
				}
				break
			}
			AddValue(impl, eid, &Resource{ID: id, Ledger: ledger})
			if _, exists := model.resources[eid]; exists {
				wantDisposed++ // Rejected duplicates are disposed of immediately.
			} else {
				model.resources[eid] = id
			}

		case opAddNil:
			AddValue[Health](impl, eid, nil)
			if _, exists := model.healths[eid]; !exists {
				model.healths[eid] = 0
			}

		case opGet:
			// Bias toward existing keys to exercise the hit path.
			if len(model.resources) > 0 && prng.Float64() < 0.8 {
				eid = RandMapKey(prng, model.resources)
			}
			got, ok := Get[Resource](impl, eid)
			want, exists := model.resources[eid]
			// Property: Get agrees with the model on presence and identity.
			require.Equal(t, exists, ok, "get(%d) presence mismatch", eid)
			if ok {
				require.Equal(t, want, got.ID, "get(%d) value mismatch", eid)
			}

		case opRemove:
			if useHealth {
				Remove[Health](impl, eid)
				delete(model.healths, eid)
				break
			}
			Remove[Resource](impl, eid)
			if _, exists := model.resources[eid]; exists {
				wantDisposed++
				delete(model.resources, eid)
			}
			// Property: get after remove is absent.
			require.False(t, Has[Resource](impl, eid), "remove(%d) then get should be absent", eid)

		case opRemoveEntity:
			impl.RemoveEntity(eid)
			if _, exists := model.resources[eid]; exists {
				wantDisposed++
			}
			delete(model.resources, eid)
			delete(model.healths, eid)
			require.False(t, Has[Resource](impl, eid))
			require.False(t, Has[Health](impl, eid))

		default:
			panic("unreachable")
		}

		// Property: every disposal so far was of a component that left the store exactly once.
		require.Equal(t, wantDisposed, ledger.Total())
	}

	// Final state check: the store holds exactly the model's components.
	assertMatchesModel(t, impl, model)

	impl.Close()
	for eid, id := range model.resources {
		assert.Equal(t, 1, ledger.Times(id), "resource of entity %d should be disposed of once", eid)
	}
	assert.Zero(t, impl.Len())
}

func assertMatchesModel(t *testing.T, s *Store, model fuzzModel) {
	t.Helper()

	assert.Equal(t, len(model.resources), Count[Resource](s))
	assert.Equal(t, len(model.healths), Count[Health](s))
	assert.Equal(t, len(model.resources)+len(model.healths), s.Len())

	ForEachEntity(s, func(eid EntityID, r *Resource) {
		assert.Equal(t, model.resources[eid], r.ID, "resource of entity %d", eid)
	})
	ForEachEntity(s, func(eid EntityID, h *Health) {
		want, exists := model.healths[eid]
		assert.True(t, exists, "unexpected health on entity %d", eid)
		assert.Equal(t, want, h.Value, "health of entity %d", eid)
	})
}

// -------------------------------------------------------------------------------------------------
// Exhaustive removal orders
//
// Enumerates every way of giving two entities any subset of two component types, then removing
// one entity either wholesale or one type at a time, and checks the survivor is untouched.
// -------------------------------------------------------------------------------------------------

func TestStore_RemovalExhaustive(t *testing.T) {
	t.Parallel()

	g := NewGen()
	cases := 0
	for !g.Done() {
		cases++
		ledger := NewLedger()
		s := NewStore()

		const victim, survivor EntityID = 1, 2
		victimHasA, victimHasB := g.Bool(), g.Bool()
		survivorHasA, survivorHasB := g.Bool(), g.Bool()
		wholesale := g.Bool()
		removeBFirst := g.Bool()

		if victimHasA {
			AddValue(s, victim, &Resource{ID: 1, Ledger: ledger})
		}
		if victimHasB {
			AddValue(s, victim, &Health{Value: 1})
		}
		if survivorHasA {
			AddValue(s, survivor, &Resource{ID: 2, Ledger: ledger})
		}
		if survivorHasB {
			AddValue(s, survivor, &Health{Value: 2})
		}

		switch {
		case wholesale:
			s.RemoveEntity(victim)
		case removeBFirst:
			Remove[Health](s, victim)
			Remove[Resource](s, victim)
		default:
			Remove[Resource](s, victim)
			Remove[Health](s, victim)
		}

		assert.False(t, Has[Resource](s, victim))
		assert.False(t, Has[Health](s, victim))
		assert.Equal(t, survivorHasA, Has[Resource](s, survivor))
		assert.Equal(t, survivorHasB, Has[Health](s, survivor))
		assert.Equal(t, boolToInt(victimHasA), ledger.Times(1))
		assert.Zero(t, ledger.Times(2))
	}
	assert.Equal(t, 64, cases)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
