// Released under an MIT license. See LICENSE.

package parser

import (
	"errors"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/reader/lexer"
)

func TestProgramStructure(t *testing.T) {
	prg := program(t, "fun f(a) local b { skip } x := 1; f(x)")

	if len(prg.Defs) != 1 {
		t.Fatalf("expected 1 definition; got %d", len(prg.Defs))
	}

	d := prg.Defs[0]
	if d.Name != "f" || len(d.Params) != 1 || len(d.Locals) != 1 {
		t.Errorf("unexpected definition shape: %+v", d)
	}

	s, ok := prg.Body.(*ast.Seq)
	if !ok {
		t.Fatalf("expected a sequence body; got %T", prg.Body)
	}

	if _, ok := s.S1.(*ast.Assign); !ok {
		t.Errorf("expected an assignment first; got %T", s.S1)
	}

	if _, ok := s.S2.(*ast.Call); !ok {
		t.Errorf("expected a call second; got %T", s.S2)
	}
}

func TestPrecedence(t *testing.T) {
	x := expression(t, "1 + 2 * 3")

	b, ok := x.(*ast.Binop)
	if !ok || b.Op != "+" {
		t.Fatalf("expected + at the root; got %#v", x)
	}

	r, ok := b.R.(*ast.Binop)
	if !ok || r.Op != "*" {
		t.Errorf("expected * on the right; got %#v", b.R)
	}
}

func TestComparisonBindsLooserThanArithmetic(t *testing.T) {
	x := expression(t, "a + 1 < b * 2")

	b, ok := x.(*ast.Binop)
	if !ok || b.Op != "<" {
		t.Fatalf("expected < at the root; got %#v", x)
	}
}

func TestComparisonDoesNotAssociate(t *testing.T) {
	if _, err := parse(t, "1 < 2 < 3").Expression(); err == nil {
		t.Errorf("expected a chained comparison to be rejected")
	}
}

func TestElifNests(t *testing.T) {
	prg := program(t, "if a then skip elif b then skip else skip fi")

	s, ok := prg.Body.(*ast.If)
	if !ok {
		t.Fatalf("expected an if; got %T", prg.Body)
	}

	nested, ok := s.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected a nested if in the else; got %T", s.Else)
	}

	if nested.Else == nil {
		t.Errorf("expected the final else on the innermost if")
	}
}

func TestForDesugars(t *testing.T) {
	prg := program(t, "for i := 0, i < 3, i := i + 1 do write(i) od")

	s, ok := prg.Body.(*ast.Seq)
	if !ok {
		t.Fatalf("expected init to precede the loop; got %T", prg.Body)
	}

	w, ok := s.S2.(*ast.While)
	if !ok {
		t.Fatalf("expected a while; got %T", s.S2)
	}

	b, ok := w.Body.(*ast.Seq)
	if !ok {
		t.Fatalf("expected body then step; got %T", w.Body)
	}

	if _, ok := b.S2.(*ast.Assign); !ok {
		t.Errorf("expected the step last; got %T", b.S2)
	}
}

func TestPatterns(t *testing.T) {
	prg := program(t, "case x of `Pair(a, `Nil) -> skip | _ -> skip esac")

	c, ok := prg.Body.(*ast.Case)
	if !ok {
		t.Fatalf("expected a case; got %T", prg.Body)
	}

	if len(c.Branches) != 2 {
		t.Fatalf("expected 2 branches; got %d", len(c.Branches))
	}

	p, ok := c.Branches[0].Pattern.(*ast.Tagged)
	if !ok || p.Tag != "Pair" || len(p.Kids) != 2 {
		t.Fatalf("unexpected first pattern: %#v", c.Branches[0].Pattern)
	}

	if _, ok := p.Kids[0].(*ast.Ident); !ok {
		t.Errorf("expected an ident kid; got %T", p.Kids[0])
	}

	if kid, ok := p.Kids[1].(*ast.Tagged); !ok || kid.Tag != "Nil" {
		t.Errorf("expected a tagged kid; got %#v", p.Kids[1])
	}

	if _, ok := c.Branches[1].Pattern.(*ast.Wildcard); !ok {
		t.Errorf("expected a wildcard; got %T", c.Branches[1].Pattern)
	}
}

func TestTextUnquotes(t *testing.T) {
	x := expression(t, `"a\n"`)

	s, ok := x.(*ast.Text)
	if !ok {
		t.Fatalf("expected text; got %T", x)
	}

	if s.S != "a\n" {
		t.Errorf("expected %q; got %q", "a\n", s.S)
	}
}

func TestCharIsItsByteCode(t *testing.T) {
	x := expression(t, "'a'")

	c, ok := x.(*ast.Const)
	if !ok || c.N != 'a' {
		t.Errorf("expected 97; got %#v", x)
	}
}

func TestReturnWithoutValue(t *testing.T) {
	prg := program(t, "fun f() { return; write(1) } f()")

	s, ok := prg.Defs[0].Body.(*ast.Seq)
	if !ok {
		t.Fatalf("expected a sequence; got %T", prg.Defs[0].Body)
	}

	r, ok := s.S1.(*ast.Return)
	if !ok {
		t.Fatalf("expected a return; got %T", s.S1)
	}

	if r.E != nil {
		t.Errorf("expected no return value; got %#v", r.E)
	}
}

func TestIncompleteInput(t *testing.T) {
	for _, src := range []string{
		"if 1 then skip",
		"while 1 do skip",
		"fun f() { skip",
		"case x of _ -> skip",
		"x := ",
	} {
		_, err := parse(t, src).Program()
		if !errors.Is(err, ErrIncomplete) {
			t.Errorf("%q: expected ErrIncomplete; got %v", src, err)
		}
	}
}

func TestKeywordIsNotAName(t *testing.T) {
	if _, err := parse(t, "od := 1").Program(); err == nil {
		t.Errorf("expected a keyword to be rejected as a name")
	}
}

func expression(t *testing.T, src string) ast.Expr {
	t.Helper()

	x, err := parse(t, src).Expression()
	if err != nil {
		t.Fatal(err)
	}

	return x
}

func parse(t *testing.T, src string) *T {
	t.Helper()

	l := lexer.New("test")

	l.Scan(src)

	return New(l.Token)
}

func program(t *testing.T, src string) *ast.Program {
	t.Helper()

	prg, err := parse(t, src).Program()
	if err != nil {
		t.Fatal(err)
	}

	return prg
}
