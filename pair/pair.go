// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package pair stores a value together with a policy object.
//
// A policy without state (a zero-size type such as struct{}) takes no room:
// the policy is laid out first, and Go only pads zero-size fields that end
// a struct.
package pair

// Compressed holds a value of type T and a policy of type P.
//
// Zero value holds the zero T and the zero P.
type Compressed[T, P any] struct {
	policy P
	value  T
}

// Of returns a pair of value and policy.
func Of[T, P any](value T, policy P) Compressed[T, P] {
	return Compressed[T, P]{policy: policy, value: value}
}

// First returns a pointer to the value.
func (p *Compressed[T, P]) First() *T {
	return &p.value
}

// Second returns a pointer to the policy.
func (p *Compressed[T, P]) Second() *P {
	return &p.policy
}
