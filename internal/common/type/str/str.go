// Released under an MIT license. See LICENSE.

// Package str provides rill's immutable byte string type.
package str

import (
	"github.com/michaelmacinnis/adapted"

	"github.com/rill-lang/rill/internal/common/interface/value"
)

const name = "string"

// T (str) wraps Go's string type.
type T string

type str = T

// New creates a new str cell.
func New(v string) value.I {
	s := str(v)

	return &s
}

// Is returns true if the value v is a str.
func Is(v value.I) bool {
	_, ok := v.(*str)

	return ok
}

// To converts the value v to a str. It panics if v is not a str.
func To(v value.I) *str {
	if s, ok := v.(*str); ok {
		return s
	}

	panic("not a " + name + ": " + v.Name())
}

// At returns the byte at index i of the str s.
func (s *str) At(i int) int {
	if i < 0 || i >= len(*s) {
		panic("index out of range")
	}

	return int((*s)[i])
}

// Equal returns true if the value v wraps the same string.
func (s *str) Equal(v value.I) bool {
	return Is(v) && s.String() == To(v).String()
}

// Length returns the number of bytes in the str s.
func (s *str) Length() int {
	return len(*s)
}

// Literal returns the quoted representation of the str s.
func (s *str) Literal() string {
	return adapted.CanonicalString(string(*s))
}

// Name returns the name of the str type.
func (s *str) Name() string {
	return name
}

// String returns the text of the str s.
func (s *str) String() string {
	return string(*s)
}

// Update returns a copy of the str s with the byte at index i set to b.
func (s *str) Update(i, b int) value.I {
	if i < 0 || i >= len(*s) {
		panic("index out of range")
	}

	u := []byte(*s)
	u[i] = byte(b)

	return New(string(u))
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t str

	// The str type is a value.
	_ = value.I(&t)
}
