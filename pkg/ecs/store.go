package ecs

import (
	"slices"

	"github.com/RoaringBitmap/roaring"
	"github.com/argus-labs/ecstore/pkg/assert"
	"github.com/rs/zerolog"
)

// Store owns every component instance reachable through it, organized by component type and then
// by entity. Callers only ever borrow pointers from it; a borrowed pointer is valid until the next
// add or remove on that component type, or until the store is closed.
//
// Misuse such as adding a duplicate component or removing a missing one never fails the caller.
// It is reported to the store's logger and recovered from. With the default no-op logger these
// reports cost nothing and misuse is silently tolerated.
//
// A Store is not safe for concurrent use.
type Store struct {
	columns  map[componentKey]abstractColumn // Component type -> column owning its components
	logger   zerolog.Logger                  // Diagnostic sink
	removed  *roaring.Bitmap                 // Removed entity IDs, nil unless diagnostics are on
	capacity int                             // Initial capacity of new columns
	closed   bool
}

// StoreOption configures a Store in NewStore.
type StoreOption func(*Store, *Options)

// WithLogger sets the diagnostic sink. Notes are logged at info level, warnings at warn level.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store, _ *Options) {
		s.logger = logger
	}
}

// WithDiagnostics turns tracking of removed entities on or off.
func WithDiagnostics(enabled bool) StoreOption {
	return func(_ *Store, opts *Options) {
		opts.Diagnostics = enabled
	}
}

// WithOptions replaces the store options, e.g. with ones returned by LoadOptions.
func WithOptions(newOpts Options) StoreOption {
	return func(_ *Store, opts *Options) {
		*opts = newOpts
	}
}

// NewStore creates an empty store. Without options it logs nothing and doesn't track removed
// entities.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		columns: make(map[componentKey]abstractColumn),
		logger:  zerolog.Nop(),
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(s, &options)
	}
	if err := options.validate(); err != nil {
		s.logger.Warn().Err(err).Int("capacity", options.ColumnCapacity).Msg("using a column capacity of 0")
		options.ColumnCapacity = 0
	}

	s.capacity = options.ColumnCapacity
	if options.Diagnostics {
		// Entity IDs are sparse and can be anywhere in the uint32 range.
		s.removed = roaring.New()
	}
	return s
}

// RemoveEntity destroys every component of every type the entity has. The ID stays usable as a
// key, it simply has no components. With diagnostics on, later use of the ID is reported.
func (s *Store) RemoveEntity(eid EntityID) {
	s.checkStale(eid)
	if s.closed {
		s.warn(ErrStoreClosed, eid, nil, "can't remove entity from a closed store")
		return
	}

	removed := 0
	for _, col := range s.columns {
		if col.remove(eid) {
			removed++
		}
	}

	if s.removed != nil {
		s.removed.Add(uint32(eid))
	}
	s.logger.Debug().Uint32("entity", uint32(eid)).Int("components", removed).Msg("entity removed")
}

// Close destroys every component in the store. The store stays closed afterward: adds and
// removes are reported and ignored, and queries find nothing. Calling Close again is a no-op.
func (s *Store) Close() {
	if s.closed {
		return
	}
	for key, col := range s.columns {
		col.clear()
		delete(s.columns, key)
	}
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	return s.closed
}

// Len returns the number of components in the store across all types.
func (s *Store) Len() int {
	total := 0
	for _, col := range s.columns {
		total += col.len()
	}
	return total
}

// ComponentTypes returns the sorted names of the component types the store has a column for.
func (s *Store) ComponentTypes() []string {
	names := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		names = append(names, col.name())
	}
	slices.Sort(names)
	return names
}

// -------------------------------------------------------------------------------------------------
// Columns
// -------------------------------------------------------------------------------------------------

// lookupColumn returns the column of T if one exists. It never creates a column.
func lookupColumn[T any](s *Store) (*column[T], bool) {
	abstract, ok := s.columns[keyOf[T]()]
	if !ok {
		return nil, false
	}
	col, ok := abstract.(*column[T])
	if !ok {
		assert.Unreachable("column for %s has the wrong type", nameOf[T]())
	}
	return col, ok
}

// columnFor returns the column of T, creating it if it doesn't exist.
func columnFor[T any](s *Store) *column[T] {
	if col, ok := lookupColumn[T](s); ok {
		return col
	}
	col := newColumn[T](s.capacity)
	s.columns[keyOf[T]()] = col
	return col
}

// -------------------------------------------------------------------------------------------------
// Diagnostics
// -------------------------------------------------------------------------------------------------

// warn reports likely misuse. key is nil when the report isn't about a single component type.
// The type name is only rendered when the event is enabled.
func (s *Store) warn(err error, eid EntityID, key componentKey, msg string) {
	event := s.logger.Warn()
	if event == nil {
		return
	}
	event = event.Err(err).Uint32("entity", uint32(eid))
	if key != nil {
		event = event.Str("component", key.String())
	}
	event.Msg(msg)
}

// checkStale notes use of an entity that was explicitly removed. It only has an effect with
// diagnostics on.
func (s *Store) checkStale(eid EntityID) {
	if s.removed == nil || !s.removed.Contains(uint32(eid)) {
		return
	}
	s.logger.Info().
		Err(ErrStaleEntity).
		Uint32("entity", uint32(eid)).
		Msg("using an entity that was explicitly removed; this is harmless but likely a bug")
}
