//go:build debug

package rc

import "fmt"

// assertState panics if the block is not in the expected state.
// Only enabled with -tags debug.
func assertState(method string, got, want state) {
	if got != want {
		panic(fmt.Sprintf("%s: block %s, want %s", method, got, want))
	}
}

// assertPositive panics before a counter would wrap below zero.
// Only enabled with -tags debug.
func assertPositive(method string, count uint32) {
	if count == 0 {
		panic(fmt.Sprintf("%s: too many releases", method))
	}
}
