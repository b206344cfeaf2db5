// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package rc provides reference-counted ownership handles.
//
// A Shared handle keeps a managed object alive; a Weak handle observes it
// without extending its lifetime. Both refer to a control block that counts
// strong and weak references. The object is destroyed when the strong count
// drops to zero; the block itself is freed once both counts are zero.
//
// Handles are plain values, and copying one with = does not count as a
// reference. Use Clone to copy, Move to transfer, and Reset to release:
//
//	s := rc.New(&Conn{})
//	defer s.Reset()
//	t := s.Clone()
//	defer t.Reset()
//
// Destroying an object means running its destruction action: the deleter
// passed to NewFunc, or Close when *T implements io.Closer.
//
// Counters are not synchronized. A block and every handle referring to it
// must be used from one goroutine at a time.
package rc

// Handle is implemented by Shared and Weak.
type Handle interface {
	owner() block
}

// SameOwner reports whether a and b share a control block.
// Two empty handles share no owner.
func SameOwner(a, b Handle) bool {
	x, y := a.owner(), b.owner()
	return x != nil && x == y
}
