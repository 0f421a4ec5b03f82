package testutils

// -------------------------------------------------------------------------------------------------
// Components
// -------------------------------------------------------------------------------------------------

// Scalar has a non-zero default value of 1.0.
type Scalar struct {
	Data float32
}

func (Scalar) Default() Scalar {
	return Scalar{Data: 1.0}
}

type Position struct {
	X, Y float64
}

type Health struct {
	Value int
}

type Label struct {
	Text    string
	Enabled bool
}

// PlayerTag carries no data.
type PlayerTag struct{}

// Counter has a pointer-receiver Default.
type Counter struct {
	N uint64
}

func (*Counter) Default() Counter {
	return Counter{N: 42}
}

// -------------------------------------------------------------------------------------------------
// Disposal tracking
// -------------------------------------------------------------------------------------------------

// Ledger counts how many times each Resource has been disposed of.
type Ledger struct {
	disposed map[int]int
}

func NewLedger() *Ledger {
	return &Ledger{disposed: make(map[int]int)}
}

// Times returns how many times the resource with the given ID was disposed of.
func (l *Ledger) Times(id int) int {
	return l.disposed[id]
}

// Total returns the number of Dispose calls across all resources.
func (l *Ledger) Total() int {
	total := 0
	for _, n := range l.disposed {
		total += n
	}
	return total
}

// Resource records its disposal in a Ledger.
type Resource struct {
	ID     int
	Ledger *Ledger
}

func (r *Resource) Dispose() {
	if r.Ledger != nil {
		r.Ledger.disposed[r.ID]++
	}
}
