//go:build !debug

package rc

// assertState is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertState(string, state, state) {}

// assertPositive is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertPositive(string, uint32) {}
