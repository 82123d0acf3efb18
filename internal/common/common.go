// Released under an MIT license. See LICENSE.

// Package common provides coercions and composite operations shared by
// both of rill's execution paths.
package common

import (
	"errors"
	"fmt"

	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/common/type/arr"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/sexp"
	"github.com/rill-lang/rill/internal/common/type/str"
)

type Stringer = fmt.Stringer

// Binop applies the binary operator op to the ints x and y. Division
// truncates toward zero; the sign of a remainder follows the dividend.
// The logical operators do not short-circuit: both operands have been
// evaluated by the time Binop applies.
func Binop(op string, x, y int) int {
	switch op {
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	case "%":
		return x % y
	case "<":
		return truth(x < y)
	case "<=":
		return truth(x <= y)
	case ">":
		return truth(x > y)
	case ">=":
		return truth(x >= y)
	case "==":
		return truth(x == y)
	case "!=":
		return truth(x != y)
	case "&&":
		return truth(x != 0 && y != 0)
	case "!!":
		return truth(x != 0 || y != 0)
	}

	panic("unknown operator: " + op)
}

// Error converts a recovered panic value to an error.
func Error(r interface{}) error {
	switch r := r.(type) {
	case error:
		return r
	case string:
		return errors.New(r)
	case Stringer:
		return errors.New(r.String())
	}

	return fmt.Errorf("%v", r)
}

// Elem returns element i of the value v: the byte of a string as an int,
// an array element, or an S-expression child.
func Elem(v value.I, i int) value.I {
	switch {
	case str.Is(v):
		return num.New(str.To(v).At(i))
	case arr.Is(v):
		return arr.To(v).At(i)
	case sexp.Is(v):
		return sexp.To(v).At(i)
	}

	panic("cannot index a " + v.Name())
}

// Int returns the value v as an int, if possible.
func Int(v value.I) int {
	return num.To(v).Int()
}

// Length returns the number of elements in the value v.
func Length(v value.I) int {
	switch {
	case str.Is(v):
		return str.To(v).Length()
	case arr.Is(v):
		return arr.To(v).Length()
	case sexp.Is(v):
		return sexp.To(v).Length()
	}

	panic(v.Name() + " has no length")
}

// String returns the display text for the value v.
func String(v value.I) string {
	s, ok := v.(Stringer)
	if !ok {
		panic(v.Name() + " cannot be used in a string context")
	}

	return s.String()
}

// Update returns a copy of root with the element at path set to v.
// Update recurses through arrays; a string is only legal at the final
// step, where v is installed as a byte.
func Update(root value.I, path []value.I, v value.I) value.I {
	if len(path) == 0 {
		return v
	}

	i := Int(path[0])

	if str.Is(root) {
		if len(path) > 1 {
			panic("cannot index into a string element")
		}

		return str.To(root).Update(i, Int(v))
	}

	a := arr.To(root)

	return a.Update(i, Update(a.At(i), path[1:], v))
}

func truth(b bool) int {
	if b {
		return 1
	}

	return 0
}
