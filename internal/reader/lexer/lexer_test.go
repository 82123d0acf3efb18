// Released under an MIT license. See LICENSE.

package lexer

import (
	"testing"

	"github.com/rill-lang/rill/internal/reader/token"
)

type item struct {
	class token.Class
	value string
}

func TestOperators(t *testing.T) {
	check(t, ":= == != <= >= < > && !! -> | + - * / %",
		op(":="), op("=="), op("!="), op("<="), op(">="), op("<"),
		op(">"), op("&&"), op("!!"), op("->"), op("|"), op("+"),
		op("-"), op("*"), op("/"), op("%"),
	)
}

func TestPunctuation(t *testing.T) {
	check(t, "( ) [ ] { } , ; . `",
		item{'(', "("}, item{')', ")"}, item{'[', "["}, item{']', "]"},
		item{'{', "{"}, item{'}', "}"}, item{',', ","}, item{';', ";"},
		item{'.', "."}, item{'`', "`"},
	)
}

func TestComments(t *testing.T) {
	check(t, "a -- the rest of the line\nb",
		sym("a"), sym("b"),
	)
}

func TestNumbersAndSymbols(t *testing.T) {
	check(t, "x1 := 42",
		sym("x1"), op(":="), item{token.Number, "42"},
	)
}

func TestText(t *testing.T) {
	check(t, `s := "a\n\"b"`,
		sym("s"), op(":="), item{token.Text, `"a\n\"b"`},
	)
}

func TestChar(t *testing.T) {
	check(t, `c := '\''`,
		sym("c"), op(":="), item{token.Char, `'\''`},
	)
}

func TestStatement(t *testing.T) {
	check(t, "while n > 0 do write(a[n].length); n := n - 1 od",
		sym("while"), sym("n"), op(">"), item{token.Number, "0"}, sym("do"),
		sym("write"), item{'(', "("}, sym("a"), item{'[', "["}, sym("n"),
		item{']', "]"}, item{'.', "."}, sym("length"), item{')', ")"},
		item{';', ";"}, sym("n"), op(":="), sym("n"), op("-"),
		item{token.Number, "1"}, sym("od"),
	)
}

func TestScanAppends(t *testing.T) {
	l := New("test")

	l.Scan("x :=\n")
	l.Scan("1\n")

	check2(t, l, sym("x"), op(":="), item{token.Number, "1"})
}

func TestBadRune(t *testing.T) {
	check(t, "#", item{token.Error, "#"})
}

func op(v string) item {
	return item{token.Op, v}
}

func sym(v string) item {
	return item{token.Symbol, v}
}

func check(t *testing.T, text string, want ...item) {
	t.Helper()

	l := New("test")

	l.Scan(text)

	check2(t, l, want...)
}

func check2(t *testing.T, l *T, want ...item) {
	t.Helper()

	for i, w := range want {
		g := l.Token()
		if g == nil {
			t.Fatalf("token %d: expected %q; got nil", i, w.value)
		}

		if !g.Is(w.class) || g.Value() != w.value {
			t.Fatalf("token %d: expected %s %q; got %s", i,
				w.class.String(), w.value, g.String())
		}
	}

	if g := l.Token(); g != nil {
		t.Errorf("expected no more tokens; got %s", g.String())
	}
}
