// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package rc

import "fmt"

// Weak observes an object owned by Shared handles without keeping it alive.
// It keeps the control block alive, so it can tell whether the object has
// been destroyed. Promote or Lock it to access the object.
//
// Zero value is empty.
//
// Important: as with Shared, copy with Clone rather than =, and release
// every handle exactly once with Reset.
type Weak[T any] struct {
	ctrl block
	ptr  *T
}

// Demote returns a weak handle observing the object s refers to.
func Demote[T any](s Shared[T]) Weak[T] {
	return newWeak(s.ctrl, s.ptr)
}

// DemoteAs returns a weak handle observing conv(s.Get()).
// conv is not called for a nil address.
func DemoteAs[U, T any](s Shared[T], conv func(*T) *U) Weak[U] {
	var ptr *U
	if p := s.Get(); p != nil {
		ptr = conv(p)
	}
	return newWeak(s.ctrl, ptr)
}

// ConvertWeak returns a weak handle observing the same block as w.
//
// conv is applied only while the object is alive; the result of
// converting an expired handle tracks nil.
func ConvertWeak[U, T any](w Weak[T], conv func(*T) *U) Weak[U] {
	var ptr *U
	if !w.Expired() && w.ptr != nil {
		ptr = conv(w.ptr)
	}
	return newWeak(w.ctrl, ptr)
}

func newWeak[T any](b block, ptr *T) Weak[T] {
	if b != nil {
		acquireWeak(b)
	}
	return Weak[T]{ctrl: b, ptr: ptr}
}

// Expired reports whether w is empty or the object has been destroyed.
func (w Weak[T]) Expired() bool {
	return w.ctrl == nil || w.ctrl.base().strong == 0
}

// UseCount returns the number of strong handles sharing the block,
// or 0 if w has no block.
func (w Weak[T]) UseCount() int {
	if w.ctrl == nil {
		return 0
	}
	return int(w.ctrl.base().strong)
}

// Lock returns a strong handle to the object, or an empty handle if
// w has expired. Lock never fails.
func (w Weak[T]) Lock() (s Shared[T]) {
	if w.Expired() {
		return
	}
	s, _ = w.Promote()
	return
}

// Promote returns a strong handle to the object.
// Fails with ErrStaleReference if w has expired.
func (w Weak[T]) Promote() (s Shared[T], err error) {
	if w.Expired() {
		err = fmt.Errorf("rc.Promote: %w", ErrStaleReference)
		return
	}
	acquireStrong(w.ctrl)
	s = Shared[T]{ctrl: w.ctrl, ptr: w.ptr}
	s.bindSelf()
	return
}

func (w Weak[T]) owner() block {
	return w.ctrl
}

// Clone returns a copy of w, incrementing the weak count.
func (w Weak[T]) Clone() Weak[T] {
	return newWeak(w.ctrl, w.ptr)
}

// Move transfers the reference out of w, leaving w empty.
func (w *Weak[T]) Move() (r Weak[T]) {
	r = *w
	w.ctrl, w.ptr = nil, nil
	return
}

// Assign makes w a copy of other and releases the reference w held before.
func (w *Weak[T]) Assign(other *Weak[T]) {
	if w == other {
		return
	}
	old := w.ctrl
	w.ctrl, w.ptr = other.ctrl, other.ptr
	if w.ctrl != nil {
		acquireWeak(w.ctrl)
	}
	releaseWeakBlock(old)
}

// MoveAssign transfers the reference out of other into w and releases the
// reference w held before.
func (w *Weak[T]) MoveAssign(other *Weak[T]) {
	if w == other {
		return
	}
	old := w.ctrl
	w.ctrl, w.ptr = other.ctrl, other.ptr
	other.ctrl, other.ptr = nil, nil
	releaseWeakBlock(old)
}

// Observe makes w observe the object s refers to and releases the
// reference w held before.
func (w *Weak[T]) Observe(s Shared[T]) {
	old := w.ctrl
	*w = Demote(s)
	releaseWeakBlock(old)
}

// Reset releases the reference and leaves w empty.
func (w *Weak[T]) Reset() {
	old := w.ctrl
	w.ctrl, w.ptr = nil, nil
	releaseWeakBlock(old)
}

// Swap exchanges the references of w and other.
func (w *Weak[T]) Swap(other *Weak[T]) {
	*w, *other = *other, *w
}

func releaseWeakBlock(b block) {
	if b != nil {
		releaseWeak(b)
	}
}

func (w Weak[T]) String() string {
	if w.ctrl == nil {
		return "rc.Weak(empty)"
	}
	ctrl := w.ctrl.base()
	return fmt.Sprintf("rc.Weak(%p, %s, strong=%d, weak=%d)", w.ptr, w.ctrl.kind(), ctrl.strong, ctrl.weak)
}
