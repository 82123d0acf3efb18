// Released under an MIT license. See LICENSE.

// Package num provides rill's integer type.
package num

import (
	"strconv"

	"github.com/rill-lang/rill/internal/common/interface/value"
)

const name = "int"

// T (num) wraps Go's int type.
type T int

type num = T

// New creates a new num cell.
func New(i int) value.I {
	n := num(i)

	return &n
}

// Is returns true if the value v is a num.
func Is(v value.I) bool {
	_, ok := v.(*num)

	return ok
}

// To converts the value v to a num. It panics if v is not a num.
func To(v value.I) *num {
	if n, ok := v.(*num); ok {
		return n
	}

	panic("not an " + name + ": " + v.Name())
}

// Equal returns true if v is the same number as the num n.
func (n *num) Equal(v value.I) bool {
	return Is(v) && n.Int() == To(v).Int()
}

// Int returns the value of the num n as an int.
func (n *num) Int() int {
	return int(*n)
}

// Name returns the type name for the num n.
func (n *num) Name() string {
	return name
}

// String returns the text of the num n.
func (n *num) String() string {
	return strconv.Itoa(n.Int())
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t num

	// The num type is a value.
	_ = value.I(&t)
}
