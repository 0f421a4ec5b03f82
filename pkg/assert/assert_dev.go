//go:build !release

// Package assert checks internal invariants of the store. Checks are compiled in by default and
// become no-ops when building with `-tags release`. They guard against bugs inside this module,
// never against caller misuse, which is reported through the diagnostic logger instead.
package assert

import "fmt"

// Enabled reports whether invariant checks are compiled into this build.
const Enabled = true

// That panics with the formatted message when cond is false.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf("invariant violated: "+format, args...))
	}
}

// Unreachable panics unconditionally. Use it in switch defaults that can't be hit.
func Unreachable(format string, args ...any) { //nolint:goprintffuncname // it's ok
	panic(fmt.Sprintf("unreachable: "+format, args...))
}
