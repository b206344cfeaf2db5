// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package rc

import "io"

// state is the lifecycle of a control block.
// A block only moves forward: live -> destroyed -> freed.
type state uint8

const (
	live state = iota
	destroyed
	freed
)

func (s state) String() string {
	switch s {
	case live:
		return "live"
	case destroyed:
		return "destroyed"
	case freed:
		return "freed"
	default:
		return "invalid"
	}
}

// control is the bookkeeping shared by both block variants.
//
// Invariants:
//   - the object is alive iff strong > 0
//   - the block is alive iff strong > 0 || weak > 0
type control struct {
	strong uint32
	weak   uint32
	state  state
	selves []selfReleaser
}

func newControl() control {
	return control{strong: 1}
}

// block is a control block. The two implementations are *pointerBlock[T],
// which owns a separately allocated object, and *emplaceBlock[T], which
// embeds the object in its own storage. The variant is fixed at creation.
type block interface {
	base() *control
	kind() Kind

	// destroyObject runs the destruction action of the managed object.
	// Called exactly once, when strong reaches zero.
	destroyObject() error

	// finalize drops everything the block still references.
	// Called exactly once, when both counts reach zero.
	finalize()
}

func acquireStrong(b block) {
	ctrl := b.base()
	assertState("rc.acquireStrong", ctrl.state, live)
	ctrl.strong++
}

func acquireWeak(b block) {
	b.base().weak++
}

// releaseStrong drops one strong reference.
//
// The weak count is raised for the duration of the release so the block
// cannot be freed while its object is being destroyed, even when the
// destruction action releases weak references to the same block.
//
// Returns the error of the destruction action, if this call ran it.
func releaseStrong(b block) (err error) {
	ctrl := b.base()
	assertPositive("rc.releaseStrong", ctrl.strong)

	ctrl.weak++
	ctrl.strong--
	if ctrl.strong == 0 {
		err = destroy(b)
	}
	ctrl.weak--

	if ctrl.strong == 0 && ctrl.weak == 0 {
		free(b)
	}
	return
}

// releaseWeak drops one weak reference.
func releaseWeak(b block) {
	ctrl := b.base()
	assertPositive("rc.releaseWeak", ctrl.weak)

	ctrl.weak--
	if ctrl.strong == 0 && ctrl.weak == 0 {
		free(b)
	}
}

func destroy(b block) (err error) {
	ctrl := b.base()
	assertState("rc.destroy", ctrl.state, live)
	ctrl.state = destroyed

	err = b.destroyObject()

	// self references are released after the destruction action has run
	selves := ctrl.selves
	ctrl.selves = nil
	for _, self := range selves {
		self.releaseSelf(b)
	}

	observer.Destroyed(b.kind(), err)
	return
}

func free(b block) {
	ctrl := b.base()
	assertState("rc.free", ctrl.state, destroyed)
	ctrl.state = freed
	b.finalize()
	observer.Freed(b.kind())
}

// destruct runs the destruction action of obj: the deleter if given,
// otherwise Close when *T implements io.Closer.
func destruct[T any](obj *T, deleter func(*T) error) error {
	if deleter != nil {
		return deleter(obj)
	}
	if closer, ok := any(obj).(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// pointerBlock owns an object allocated apart from the block.
type pointerBlock[T any] struct {
	control
	ptr     *T
	deleter func(*T) error
}

func newPointerBlock[T any](ptr *T, deleter func(*T) error) *pointerBlock[T] {
	b := &pointerBlock[T]{control: newControl(), ptr: ptr, deleter: deleter}
	observer.Allocated(KindPointer)
	return b
}

func (b *pointerBlock[T]) base() *control { return &b.control }

func (b *pointerBlock[T]) kind() Kind { return KindPointer }

func (b *pointerBlock[T]) destroyObject() error {
	ptr, deleter := b.ptr, b.deleter
	b.ptr, b.deleter = nil, nil
	return destruct(ptr, deleter)
}

func (b *pointerBlock[T]) finalize() {
	b.ptr, b.deleter = nil, nil
}

// emplaceBlock stores the object inside the block, so a single allocation
// covers both. The storage outlives the object until the block is freed.
type emplaceBlock[T any] struct {
	control
	value T
}

func (b *emplaceBlock[T]) base() *control { return &b.control }

func (b *emplaceBlock[T]) kind() Kind { return KindEmplace }

func (b *emplaceBlock[T]) destroyObject() error {
	return destruct(&b.value, nil)
}

func (b *emplaceBlock[T]) finalize() {
	var zero T
	b.value = zero
}
