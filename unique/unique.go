// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package unique provides single-owner handles.
//
// A handle owns exactly one object (Ptr) or array (Slice) and runs its
// Deleter exactly once, when the handle is closed or reset. Ownership moves
// only through Move, MoveAssign or Release; copying a handle with = is a
// programming error.
//
// A stateless Deleter adds nothing to the size of a handle.
package unique

import (
	"unsafe"

	"github.com/dacapoday/rc/pair"
)

// Ptr owns a single object.
//
// Zero value owns nothing and uses the zero Deleter.
type Ptr[T any, D Deleter[*T]] struct {
	pair pair.Compressed[*T, D]
}

// New returns a Ptr owning ptr with the zero Deleter.
func New[T any, D Deleter[*T]](ptr *T) (u Ptr[T, D]) {
	*u.pair.First() = ptr
	return
}

// NewWith returns a Ptr owning ptr that is destroyed with deleter.
func NewWith[T any, D Deleter[*T]](ptr *T, deleter D) Ptr[T, D] {
	return Ptr[T, D]{pair: pair.Of(ptr, deleter)}
}

// Get returns the owned object, or nil.
func (u *Ptr[T, D]) Get() *T {
	return *u.pair.First()
}

// Deleter returns the deleter.
func (u *Ptr[T, D]) Deleter() *D {
	return u.pair.Second()
}

// Valid reports whether u owns an object.
func (u *Ptr[T, D]) Valid() bool {
	return u.Get() != nil
}

// Release gives up ownership without deleting and returns the object.
func (u *Ptr[T, D]) Release() (ptr *T) {
	ptr = u.Get()
	*u.pair.First() = nil
	return
}

// Reset takes ownership of ptr, then deletes the object owned before.
// Reset with the object already owned is a no-op.
func (u *Ptr[T, D]) Reset(ptr *T) (err error) {
	old := u.Get()
	*u.pair.First() = ptr
	if old != nil && old != ptr {
		err = (*u.Deleter()).Delete(old)
	}
	return
}

// Close deletes the owned object, if any.
func (u *Ptr[T, D]) Close() error {
	return u.Reset(nil)
}

// Move transfers ownership and the deleter out of u, leaving u empty.
func (u *Ptr[T, D]) Move() (r Ptr[T, D]) {
	r.pair = pair.Of(u.Release(), *u.Deleter())
	return
}

// MoveAssign deletes the object owned by u and takes ownership and the
// deleter from other.
func (u *Ptr[T, D]) MoveAssign(other *Ptr[T, D]) error {
	if u == other {
		return nil
	}
	err := u.Reset(other.Release())
	*u.Deleter() = *other.Deleter()
	return err
}

// Swap exchanges the objects and deleters of u and other.
func (u *Ptr[T, D]) Swap(other *Ptr[T, D]) {
	u.pair, other.pair = other.pair, u.pair
}

// Slice owns an array.
//
// Zero value owns nothing. An empty non-nil slice counts as owned.
type Slice[T any, D Deleter[[]T]] struct {
	pair pair.Compressed[[]T, D]
}

// NewSlice returns a Slice owning s with the zero Deleter.
func NewSlice[T any, D Deleter[[]T]](s []T) (u Slice[T, D]) {
	*u.pair.First() = s
	return
}

// NewSliceWith returns a Slice owning s that is destroyed with deleter.
func NewSliceWith[T any, D Deleter[[]T]](s []T, deleter D) Slice[T, D] {
	return Slice[T, D]{pair: pair.Of(s, deleter)}
}

// Get returns the owned array, or nil.
func (u *Slice[T, D]) Get() []T {
	return *u.pair.First()
}

// Deleter returns the deleter.
func (u *Slice[T, D]) Deleter() *D {
	return u.pair.Second()
}

// Valid reports whether u owns an array.
func (u *Slice[T, D]) Valid() bool {
	return u.Get() != nil
}

// At returns the address of element i.
func (u *Slice[T, D]) At(i int) *T {
	return &u.Get()[i]
}

// Release gives up ownership without deleting and returns the array.
func (u *Slice[T, D]) Release() (s []T) {
	s = u.Get()
	*u.pair.First() = nil
	return
}

// Reset takes ownership of s, then deletes the array owned before.
// Reset with the array already owned is a no-op.
func (u *Slice[T, D]) Reset(s []T) (err error) {
	old := u.Get()
	*u.pair.First() = s
	if old != nil && !sameSlice(old, s) {
		err = (*u.Deleter()).Delete(old)
	}
	return
}

// Close deletes the owned array, if any.
func (u *Slice[T, D]) Close() error {
	return u.Reset(nil)
}

// Move transfers ownership and the deleter out of u, leaving u empty.
func (u *Slice[T, D]) Move() (r Slice[T, D]) {
	r.pair = pair.Of(u.Release(), *u.Deleter())
	return
}

// MoveAssign deletes the array owned by u and takes ownership and the
// deleter from other.
func (u *Slice[T, D]) MoveAssign(other *Slice[T, D]) error {
	if u == other {
		return nil
	}
	err := u.Reset(other.Release())
	*u.Deleter() = *other.Deleter()
	return err
}

// Swap exchanges the arrays and deleters of u and other.
func (u *Slice[T, D]) Swap(other *Slice[T, D]) {
	u.pair, other.pair = other.pair, u.pair
}

// sameSlice reports whether a and b describe the same array.
func sameSlice[T any](a, b []T) bool {
	return b != nil && len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}
