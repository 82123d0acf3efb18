// Released under an MIT license. See LICENSE.

package common

import (
	"testing"

	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/common/type/arr"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/sexp"
	"github.com/rill-lang/rill/internal/common/type/str"
)

func TestBinop(t *testing.T) {
	for _, c := range []struct {
		op   string
		x, y int
		want int
	}{
		{"+", 2, 3, 5},
		{"-", 2, 3, -1},
		{"*", 2, 3, 6},
		{"/", 7, 2, 3},
		{"/", -7, 2, -3},
		{"%", 7, 2, 1},
		{"%", -7, 2, -1},
		{"<", 1, 2, 1},
		{"<=", 2, 2, 1},
		{">", 1, 2, 0},
		{">=", 1, 2, 0},
		{"==", 2, 2, 1},
		{"!=", 2, 2, 0},
		{"&&", 2, 3, 1},
		{"&&", 2, 0, 0},
		{"!!", 0, 3, 1},
		{"!!", 0, 0, 0},
	} {
		if got := Binop(c.op, c.x, c.y); got != c.want {
			t.Errorf("%d %s %d: expected %d; got %d", c.x, c.op, c.y, c.want, got)
		}
	}
}

func TestElem(t *testing.T) {
	if Int(Elem(str.New("abc"), 1)) != 'b' {
		t.Errorf("expected the byte code of b")
	}

	a := arr.New([]value.I{num.New(10), num.New(20)})
	if Int(Elem(a, 1)) != 20 {
		t.Errorf("expected 20")
	}

	s := sexp.New("Pair", []value.I{num.New(1), num.New(2)})
	if Int(Elem(s, 0)) != 1 {
		t.Errorf("expected 1")
	}
}

func TestLength(t *testing.T) {
	if Length(str.New("abc")) != 3 {
		t.Errorf("expected string length 3")
	}

	if Length(arr.New(nil)) != 0 {
		t.Errorf("expected empty array length 0")
	}
}

func TestUpdateCopies(t *testing.T) {
	inner := arr.New([]value.I{num.New(1), num.New(2)})
	outer := arr.New([]value.I{inner})

	updated := Update(outer, []value.I{num.New(0), num.New(1)}, num.New(9))

	if Int(Elem(Elem(updated, 0), 1)) != 9 {
		t.Errorf("expected the update to land")
	}

	if Int(Elem(inner, 1)) != 2 {
		t.Errorf("expected the original to be untouched")
	}
}

func TestUpdateStringByte(t *testing.T) {
	s := str.New("abc")

	updated := Update(s, []value.I{num.New(0)}, num.New('z'))

	if Int(Elem(updated, 0)) != 'z' {
		t.Errorf("expected the byte to change")
	}

	if Int(Elem(s, 0)) != 'a' {
		t.Errorf("expected the original to be untouched")
	}
}

func TestUpdateThroughStringFails(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic indexing into a string element")
		}
	}()

	Update(str.New("ab"), []value.I{num.New(0), num.New(0)}, num.New(1))
}

func TestEqual(t *testing.T) {
	a := arr.New([]value.I{num.New(1), str.New("x")})
	b := arr.New([]value.I{num.New(1), str.New("x")})

	if !a.Equal(b) {
		t.Errorf("expected equal arrays")
	}

	p := sexp.New("Pair", []value.I{num.New(1), num.New(2)})
	q := sexp.New("Pair", []value.I{num.New(1), num.New(3)})

	if p.Equal(q) {
		t.Errorf("expected unequal sexps")
	}

	if num.New(1).Equal(str.New("1")) {
		t.Errorf("expected unequal types")
	}
}

func TestError(t *testing.T) {
	if Error("boom").Error() != "boom" {
		t.Errorf("expected the panic text")
	}
}
