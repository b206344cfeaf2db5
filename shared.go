// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package rc

import (
	"fmt"
	"unsafe"
)

// Shared is a strong reference to an object of type T.
//
// The tracked address returned by Get may differ from the object the
// control block owns (see Alias and Convert). The owned object stays alive
// until every Shared referring to the block has been released.
//
// Zero value is empty.
//
// Important: Assigning a Shared with = copies the handle without counting
// it. Use Clone, Move, Assign or MoveAssign instead, and release every
// handle exactly once with Reset.
type Shared[T any] struct {
	ctrl block
	ptr  *T
}

// New takes ownership of ptr.
// The returned handle has a use count of 1. New(nil) returns an empty handle.
func New[T any](ptr *T) Shared[T] {
	return NewFunc(ptr, nil)
}

// NewFunc takes ownership of ptr and destroys it with deleter
// instead of Close.
func NewFunc[T any](ptr *T, deleter func(*T) error) (s Shared[T]) {
	if ptr == nil {
		return
	}
	s = Shared[T]{ctrl: newPointerBlock(ptr, deleter), ptr: ptr}
	s.bindSelf()
	return
}

// Make allocates a block with room for a T and constructs the value in
// place with init. A nil init leaves the zero value.
//
// If init fails, the block is discarded before anyone can observe it and
// the error is returned.
func Make[T any](init func(*T) error) (s Shared[T], err error) {
	b := &emplaceBlock[T]{control: newControl()}
	if init != nil {
		if err = init(&b.value); err != nil {
			err = fmt.Errorf("rc.Make: %w", err)
			return
		}
	}
	observer.Allocated(KindEmplace)

	s = Shared[T]{ctrl: b, ptr: &b.value}
	s.bindSelf()
	return
}

// MakeValue allocates a block holding a copy of v.
func MakeValue[T any](v T) Shared[T] {
	s, _ := Make(func(t *T) error {
		*t = v
		return nil
	})
	return s
}

// Alias returns a handle that shares ownership with s but tracks ptr.
//
// Typical use is a handle to a field of the owned object; ptr may also be
// unrelated to it. The owner stays alive as long as the alias does.
func Alias[U, T any](s Shared[T], ptr *U) (r Shared[U]) {
	r = Shared[U]{ctrl: s.ctrl, ptr: ptr}
	if r.ctrl != nil {
		acquireStrong(r.ctrl)
	}
	r.bindSelf()
	return
}

// Convert returns a handle sharing ownership with s that tracks conv(s.Get()).
//
// conv maps between related types, e.g. from a struct to one it embeds:
//
//	base := rc.Convert(derived, func(d *Derived) *Base { return &d.Base })
//
// conv is not called for a nil address.
func Convert[U, T any](s Shared[T], conv func(*T) *U) Shared[U] {
	var ptr *U
	if p := s.Get(); p != nil {
		ptr = conv(p)
	}
	return Alias(s, ptr)
}

// ConvertMove is Convert, except that ownership is transferred from s,
// leaving it empty.
func ConvertMove[U, T any](s *Shared[T], conv func(*T) *U) (r Shared[U]) {
	if p := s.Get(); p != nil {
		r.ptr = conv(p)
	}
	r.ctrl = s.ctrl
	s.ctrl, s.ptr = nil, nil
	r.bindSelf()
	return
}

// Promote returns a strong handle to the object w observes.
// Fails with ErrStaleReference if the object has been destroyed.
func Promote[T any](w Weak[T]) (Shared[T], error) {
	return w.Promote()
}

// Get returns the tracked address, or nil if empty.
func (s Shared[T]) Get() *T {
	return s.ptr
}

// Load dereferences the tracked address.
// Load on an empty handle panics.
func (s Shared[T]) Load() T {
	return *s.ptr
}

// UseCount returns the number of strong handles sharing the block,
// or 0 if s has no block.
func (s Shared[T]) UseCount() int {
	if s.ctrl == nil {
		return 0
	}
	return int(s.ctrl.base().strong)
}

// Valid reports whether s tracks a non-nil address.
func (s Shared[T]) Valid() bool {
	return s.ptr != nil
}

// Equal reports whether s and other track the same address.
func (s Shared[T]) Equal(other Shared[T]) bool {
	return s.ptr == other.ptr
}

// Equal reports whether a and b track the same address.
// The handles may track different types.
func Equal[T, U any](a Shared[T], b Shared[U]) bool {
	return unsafe.Pointer(a.ptr) == unsafe.Pointer(b.ptr)
}

func (s Shared[T]) owner() block {
	return s.ctrl
}

// Clone returns a copy of s, incrementing the use count.
func (s Shared[T]) Clone() Shared[T] {
	if s.ctrl != nil {
		acquireStrong(s.ctrl)
	}
	return s
}

// Move transfers the reference out of s, leaving s empty.
func (s *Shared[T]) Move() (r Shared[T]) {
	r = *s
	s.ctrl, s.ptr = nil, nil
	return
}

// Weak returns a weak handle observing the object s refers to.
func (s Shared[T]) Weak() Weak[T] {
	return Demote(s)
}

// Assign makes s a copy of other and releases the reference s held before.
// The returned error comes from destroying the previously owned object.
func (s *Shared[T]) Assign(other *Shared[T]) error {
	if s == other {
		return nil
	}
	old := s.ctrl
	s.ctrl, s.ptr = other.ctrl, other.ptr
	if s.ctrl != nil {
		acquireStrong(s.ctrl)
	}
	return release(old)
}

// MoveAssign transfers the reference out of other into s and releases the
// reference s held before.
func (s *Shared[T]) MoveAssign(other *Shared[T]) error {
	if s == other {
		return nil
	}
	old := s.ctrl
	s.ctrl, s.ptr = other.ctrl, other.ptr
	other.ctrl, other.ptr = nil, nil
	return release(old)
}

// Reset releases the reference and leaves s empty.
// If s was the last strong reference, the object is destroyed and the
// error of its destruction action is returned.
func (s *Shared[T]) Reset() error {
	old := s.ctrl
	s.ctrl, s.ptr = nil, nil
	return release(old)
}

// ResetTo takes ownership of ptr and releases the reference s held before.
// ResetTo is a no-op if s already tracks ptr.
func (s *Shared[T]) ResetTo(ptr *T) error {
	if s.ptr == ptr {
		return nil
	}
	old := s.ctrl
	*s = New(ptr)
	return release(old)
}

// Swap exchanges the references of s and other.
func (s *Shared[T]) Swap(other *Shared[T]) {
	*s, *other = *other, *s
}

func release(b block) error {
	if b == nil {
		return nil
	}
	return releaseStrong(b)
}

func (s Shared[T]) String() string {
	if s.ctrl == nil {
		return fmt.Sprintf("rc.Shared(%p)", s.ptr)
	}
	ctrl := s.ctrl.base()
	return fmt.Sprintf("rc.Shared(%p, %s, strong=%d, weak=%d)", s.ptr, s.ctrl.kind(), ctrl.strong, ctrl.weak)
}
