// Released under an MIT license. See LICENSE.

// Package state provides rill's scoped name to value environment.
//
// A state is a chain of local frames over a single global frame. Each
// local frame fixes the set of names visible in it; lookups and updates
// land in the innermost frame whose scope contains the name, falling
// through to the global frame otherwise. Call frames (Enter/Leave) and
// pattern frames (Push/Drop) follow two separate disciplines: entering a
// function discards all intermediate locals, while pattern frames stack
// on top of whatever chain is current.
package state

import (
	"sort"

	"github.com/rill-lang/rill/internal/common/interface/value"
)

// T (state) is a chain of local frames with a global frame at the bottom.
type T struct {
	global map[string]value.I
	top    *frame
}

type state = T

// A frame is one lexical scope record: the set of names visible in it
// and the bindings established so far.
type frame struct {
	names    map[string]bool
	bindings map[string]value.I
	previous *frame
}

// New creates a new state holding only an empty global frame.
func New() *state {
	return &state{global: map[string]value.I{}}
}

// Drop removes the topmost frame pushed by Push.
func (s *state) Drop() {
	if s.top == nil {
		panic("no frame to drop")
	}

	s.top = s.top.previous
}

// Enter creates the callee state for a function call: a single fresh
// frame with the scope names directly over the global frame of s.
func (s *state) Enter(names []string) *state {
	return &state{global: s.global, top: newFrame(names, nil)}
}

// Leave restores the local chain of the caller state over the possibly
// mutated global frame reached from the callee state s.
func (s *state) Leave(caller *state) *state {
	return &state{global: s.global, top: caller.top}
}

// Lookup returns the value bound to the name k in the innermost frame
// whose scope contains k, falling through to the global frame.
func (s *state) Lookup(k string) value.I {
	for f := s.top; f != nil; f = f.previous {
		if f.names[k] {
			v, ok := f.bindings[k]
			if !ok {
				panic("undefined: " + k)
			}

			return v
		}
	}

	v, ok := s.global[k]
	if !ok {
		panic("undefined: " + k)
	}

	return v
}

// Push adds a frame with the scope names and initial bindings to the
// state s. Bindings for names outside the scope are ignored.
func (s *state) Push(names []string, bindings map[string]value.I) {
	f := newFrame(names, s.top)

	for k, v := range bindings {
		if f.names[k] {
			f.bindings[k] = v
		}
	}

	s.top = f
}

// Scopes returns the sorted scope names of each local frame, innermost
// first. Useful for debugging.
func (s *state) Scopes() [][]string {
	var scopes [][]string

	for f := s.top; f != nil; f = f.previous {
		names := make([]string, 0, len(f.names))
		for k := range f.names {
			names = append(names, k)
		}

		sort.Strings(names)

		scopes = append(scopes, names)
	}

	return scopes
}

// Update binds the name k to the value v in the innermost frame whose
// scope contains k, falling through to the global frame.
func (s *state) Update(k string, v value.I) {
	for f := s.top; f != nil; f = f.previous {
		if f.names[k] {
			f.bindings[k] = v

			return
		}
	}

	s.global[k] = v
}

func newFrame(names []string, previous *frame) *frame {
	f := &frame{
		names:    make(map[string]bool, len(names)),
		bindings: map[string]value.I{},
		previous: previous,
	}

	for _, k := range names {
		f.names[k] = true
	}

	return f
}
