// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package rc

// SelfRef lets an object obtain handles to itself once it is owned by a
// Shared handle. Embed it to opt in:
//
//	type Node struct {
//		rc.SelfRef[Node]
//		children []rc.Shared[Node]
//	}
//
// The first handle constructed for the object wires the marker to that
// handle's block. Until then SharedFromThis returns an empty handle.
//
// When the object is destroyed, its destruction action runs with the marker
// still attached but expired; the marker is released right after.
//
// An object holding a wired SelfRef must not be copied.
type SelfRef[T any] struct {
	this Weak[T]
}

// SharedFromThis returns a strong handle to the object sharing the block
// of the handle that owns it.
func (self *SelfRef[T]) SharedFromThis() Shared[T] {
	return self.this.Lock()
}

// WeakFromThis returns a weak handle to the object.
func (self *SelfRef[T]) WeakFromThis() Weak[T] {
	return self.this.Clone()
}

// selfBinder is the capability SelfRef[T] adds to the types embedding it.
type selfBinder[T any] interface {
	selfReleaser
	bindSelf(b block, ptr *T) bool
}

type selfReleaser interface {
	releaseSelf(b block)
}

// bindSelf wires an unwired or expired marker to b.
// Reports whether the marker now holds a weak reference to b.
func (self *SelfRef[T]) bindSelf(b block, ptr *T) bool {
	if !self.this.Expired() {
		return false
	}
	old := self.this.ctrl
	self.this = newWeak(b, ptr)
	releaseWeakBlock(old)
	return true
}

func (self *SelfRef[T]) releaseSelf(b block) {
	if self.this.ctrl == b {
		self.this.Reset()
	}
}

// bindSelf wires the self reference of the tracked object, if it has one.
// Every construction path calls it once the block is established.
func (s Shared[T]) bindSelf() {
	if s.ctrl == nil || s.ptr == nil {
		return
	}
	binder, ok := any(s.ptr).(selfBinder[T])
	if !ok {
		return
	}
	if binder.bindSelf(s.ctrl, s.ptr) {
		ctrl := s.ctrl.base()
		ctrl.selves = append(ctrl.selves, binder)
	}
}
