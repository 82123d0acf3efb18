// Released under an MIT license. See LICENSE.

package reader

import (
	"errors"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
)

func TestScanCompleteLine(t *testing.T) {
	prg, x, err := New("test").Scan("write(1)")
	if err != nil {
		t.Fatal(err)
	}

	if prg == nil || x != nil {
		t.Errorf("expected a program; got %v, %v", prg, x)
	}
}

func TestScanBareExpression(t *testing.T) {
	for _, line := range []string{"1 + 2", "x", `"abc"`} {
		_, x, err := New("test").Scan(line)
		if err != nil {
			t.Fatal(err)
		}

		if x == nil {
			t.Errorf("%q: expected an expression", line)
		}
	}
}

func TestScanAccumulatesLines(t *testing.T) {
	r := New("test")

	for _, line := range []string{"if x then", "write(1)"} {
		if _, _, err := r.Scan(line); !errors.Is(err, ErrIncomplete) {
			t.Fatalf("%q: expected ErrIncomplete; got %v", line, err)
		}
	}

	prg, _, err := r.Scan("fi")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := prg.Body.(*ast.If); !ok {
		t.Errorf("expected an if; got %T", prg.Body)
	}
}

func TestScanDiscardsBadInput(t *testing.T) {
	r := New("test")

	if _, _, err := r.Scan("1 < 2 < 3"); err == nil {
		t.Fatal("expected an error")
	}

	// The bad line is gone; the next line parses on its own.
	if _, _, err := r.Scan("write(1)"); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	prg, err := Parse("test", "fun f() { skip } f()")
	if err != nil {
		t.Fatal(err)
	}

	if len(prg.Defs) != 1 {
		t.Errorf("expected 1 definition; got %d", len(prg.Defs))
	}
}
