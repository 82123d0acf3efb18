// Released under an MIT license. See LICENSE.

// Package reader encapsulates the rill lexer and parser.
package reader

import (
	"errors"
	"strings"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/reader/lexer"
	"github.com/rill-lang/rill/internal/reader/parser"
)

// ErrIncomplete is reported when input ends in the middle of a
// construct.
var ErrIncomplete = parser.ErrIncomplete

// T (reader) accumulates lines until they form a complete parse.
type T struct {
	name    string
	pending []string
}

type reader = T

// New creates a new reader for name.
func New(name string) *reader {
	return &reader{name: name}
}

// Parse parses text as a whole program.
func Parse(name, text string) (*ast.Program, error) {
	l := lexer.New(name)
	l.Scan(text)

	return parser.New(l.Token).Program()
}

// Expression parses text as a single expression.
func Expression(name, text string) (ast.Expr, error) {
	l := lexer.New(name)
	l.Scan(text)

	return parser.New(l.Token).Expression()
}

// Scan adds the line to the pending input and attempts a parse. It
// returns a program, or a bare expression, or ErrIncomplete when more
// input is needed. Any other error discards the pending input.
//
// The expression parse runs whenever the program parse fails. A lone
// name is an incomplete statement but a complete expression, and at a
// prompt the expression reading wins.
func (r *reader) Scan(line string) (*ast.Program, ast.Expr, error) {
	r.pending = append(r.pending, line)

	text := strings.Join(r.pending, "\n")

	prg, err := Parse(r.name, text)
	if err == nil {
		r.pending = nil

		return prg, nil, nil
	}

	x, xerr := Expression(r.name, text)
	if xerr == nil {
		r.pending = nil

		return nil, x, nil
	}

	if errors.Is(err, ErrIncomplete) || errors.Is(xerr, ErrIncomplete) {
		return nil, nil, ErrIncomplete
	}

	r.pending = nil

	return nil, nil, err
}
