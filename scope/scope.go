// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package scope releases handles when a scope ends.
//
//	var sc scope.Scope
//	defer sc.Close()
//
//	s := rc.New(obj)
//	sc.Hold(&s)
//
// Handles are released in reverse order of registration.
package scope

import (
	"github.com/hashicorp/go-multierror"
)

// Releaser is a handle whose release may fail, such as *rc.Shared.
type Releaser interface {
	Reset() error
}

// Watcher is a handle whose release cannot fail, such as *rc.Weak.
type Watcher interface {
	Reset()
}

// Scope collects handles to release together.
//
// Zero value is an empty scope. A Scope can be reused after Close.
type Scope struct {
	stack []func() error
}

// Hold registers r for release.
func (sc *Scope) Hold(r Releaser) {
	sc.stack = append(sc.stack, r.Reset)
}

// Watch registers w for release.
func (sc *Scope) Watch(w Watcher) {
	sc.stack = append(sc.stack, func() error {
		w.Reset()
		return nil
	})
}

// Defer registers fn to run on Close.
func (sc *Scope) Defer(fn func() error) {
	sc.stack = append(sc.stack, fn)
}

// Len returns the number of pending releases.
func (sc *Scope) Len() int {
	return len(sc.stack)
}

// Close runs every pending release, last registered first.
// All releases run even if some fail; their errors are combined.
func (sc *Scope) Close() error {
	var errs *multierror.Error
	for len(sc.stack) > 0 {
		last := len(sc.stack) - 1
		fn := sc.stack[last]
		sc.stack[last] = nil
		sc.stack = sc.stack[:last]
		if err := fn(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
