package testutils

import "github.com/argus-labs/ecstore/pkg/assert"

// Gen enumerates every combination of bounded choices made inside a loop body:
//
//	g := testutils.NewGen()
//	for !g.Done() {
//		n := g.Intn(3)     // 0..3
//		first := g.Bool()  // false, true
//		...
//	}
//
// Each iteration replays the choices of the previous one and advances the rightmost choice that
// hasn't reached its bound, resetting every choice after it. The loop ends once every choice is at
// its bound. See https://matklad.github.io/2021/11/07/generate-all-the-things.html.
type Gen struct {
	started bool
	choices [32]choice
	pos     int // Index of the next choice in this iteration
	depth   int // Number of choices recorded so far
}

type choice struct {
	value, bound uint32
}

func NewGen() *Gen {
	return &Gen{}
}

// Done advances to the next combination. It returns true once all of them have been produced.
func (g *Gen) Done() bool {
	if !g.started {
		g.started = true
		return false
	}
	for i := g.depth - 1; i >= 0; i-- {
		if g.choices[i].value < g.choices[i].bound {
			g.choices[i].value++
			g.depth = i + 1
			g.pos = 0
			return false
		}
	}
	return true
}

func (g *Gen) next(bound uint32) uint32 {
	assert.That(g.pos < len(g.choices), "exhaustigen: more than %d choices", len(g.choices))
	if g.pos == g.depth {
		g.choices[g.pos] = choice{}
		g.depth++
	}
	g.choices[g.pos].bound = bound
	g.pos++
	return g.choices[g.pos-1].value
}

// Intn returns a value in [0, bound].
func (g *Gen) Intn(bound int) int {
	return int(g.next(uint32(bound))) //nolint:gosec // bounds are small in tests
}

// Bool returns false, then true.
func (g *Gen) Bool() bool {
	return g.Intn(1) == 1
}

// Pick returns an element of a non-empty slice.
func Pick[T any](g *Gen, slice []T) T {
	assert.That(len(slice) > 0, "exhaustigen: pick from empty slice")
	return slice[g.Intn(len(slice)-1)]
}
