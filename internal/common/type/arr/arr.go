// Released under an MIT license. See LICENSE.

// Package arr provides rill's array type.
package arr

import (
	"strings"

	"github.com/rill-lang/rill/internal/common/interface/value"
)

const name = "array"

// T (arr) is an ordered sequence of values.
type T []value.I

type arr = T

// New creates a new arr cell holding the values vs.
func New(vs []value.I) value.I {
	a := arr(vs)

	return &a
}

// Is returns true if the value v is an arr.
func Is(v value.I) bool {
	_, ok := v.(*arr)

	return ok
}

// To converts the value v to an arr. It panics if v is not an arr.
func To(v value.I) *arr {
	if a, ok := v.(*arr); ok {
		return a
	}

	panic("not an " + name + ": " + v.Name())
}

// At returns the element at index i of the arr a.
func (a *arr) At(i int) value.I {
	if i < 0 || i >= len(*a) {
		panic("index out of range")
	}

	return (*a)[i]
}

// Equal returns true if v is an arr with equal elements.
func (a *arr) Equal(v value.I) bool {
	if !Is(v) {
		return false
	}

	o := To(v)
	if len(*a) != len(*o) {
		return false
	}

	for i, e := range *a {
		if !e.Equal((*o)[i]) {
			return false
		}
	}

	return true
}

// Length returns the number of elements in the arr a.
func (a *arr) Length() int {
	return len(*a)
}

// Name returns the type name for the arr a.
func (a *arr) Name() string {
	return name
}

// String returns the text of the arr a.
func (a *arr) String() string {
	b := strings.Builder{}

	b.WriteByte('[')

	for i, e := range *a {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(text(e))
	}

	b.WriteByte(']')

	return b.String()
}

// Update returns a copy of the arr a with the element at index i set to v.
func (a *arr) Update(i int, v value.I) value.I {
	if i < 0 || i >= len(*a) {
		panic("index out of range")
	}

	u := make(arr, len(*a))
	copy(u, *a)
	u[i] = v

	return &u
}

func text(v value.I) string {
	type literal interface {
		Literal() string
	}

	if l, ok := v.(literal); ok {
		return l.Literal()
	}

	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}

	return v.Name()
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t arr

	// The arr type is a value.
	_ = value.I(&t)
}
