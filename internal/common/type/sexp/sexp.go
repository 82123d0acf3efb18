// Released under an MIT license. See LICENSE.

// Package sexp provides rill's tagged S-expression type.
package sexp

import (
	"strings"

	"github.com/rill-lang/rill/internal/common/interface/value"
)

const name = "sexp"

// T (sexp) is a tagged tuple of values.
type T struct {
	tag  string
	kids []value.I
}

type sexp = T

// New creates a new sexp cell with the tag t and children kids.
func New(t string, kids []value.I) value.I {
	return &sexp{tag: t, kids: kids}
}

// Is returns true if the value v is a sexp.
func Is(v value.I) bool {
	_, ok := v.(*sexp)

	return ok
}

// To converts the value v to a sexp. It panics if v is not a sexp.
func To(v value.I) *sexp {
	if s, ok := v.(*sexp); ok {
		return s
	}

	panic("not a " + name + ": " + v.Name())
}

// At returns the child at index i of the sexp s.
func (s *sexp) At(i int) value.I {
	if i < 0 || i >= len(s.kids) {
		panic("index out of range")
	}

	return s.kids[i]
}

// Equal returns true if v is a sexp with the same tag and equal children.
func (s *sexp) Equal(v value.I) bool {
	if !Is(v) {
		return false
	}

	o := To(v)
	if s.tag != o.tag || len(s.kids) != len(o.kids) {
		return false
	}

	for i, k := range s.kids {
		if !k.Equal(o.kids[i]) {
			return false
		}
	}

	return true
}

// Length returns the number of children in the sexp s.
func (s *sexp) Length() int {
	return len(s.kids)
}

// Name returns the type name for the sexp s.
func (s *sexp) Name() string {
	return name
}

// String returns the text of the sexp s.
func (s *sexp) String() string {
	b := strings.Builder{}

	b.WriteByte('`')
	b.WriteString(s.tag)

	if len(s.kids) > 0 {
		b.WriteString(" (")

		for i, k := range s.kids {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(text(k))
		}

		b.WriteByte(')')
	}

	return b.String()
}

// Tag returns the tag of the sexp s.
func (s *sexp) Tag() string {
	return s.tag
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
	var t sexp

	// The sexp type is a value.
	_ = value.I(&t)
}
