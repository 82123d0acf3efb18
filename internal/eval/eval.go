// Released under an MIT license. See LICENSE.

// Package eval provides the AST interpreter for rill.
//
// Statements are evaluated against an explicit continuation, itself a
// statement: "what to do after this one". The evaluator reduces the
// pair (statement, continuation) in a loop so that deeply nested
// sequences do not grow the native stack; the only native recursion
// left is expression depth and dynamic call depth.
package eval

import (
	"strconv"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/builtin"
	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/common/type/arr"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/sexp"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/config"
)

// T (eval) is the AST interpreter: a definition environment shared by
// every statement and expression evaluated against it.
type T struct {
	defs map[string]*ast.Definition
}

type eval = T

//nolint:gochecknoglobals
var skip ast.Stmt = &ast.Skip{}

// New creates an interpreter for the definitions of the program p.
func New(p *ast.Program) *eval {
	e := &eval{defs: map[string]*ast.Definition{}}

	for _, d := range p.Defs {
		e.Define(d)
	}

	return e
}

// Run executes the program p against the input sequence input and
// returns the output sequence it produces.
func Run(p *ast.Program, input []int) (output []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = common.Error(r)
		}
	}()

	e := New(p)
	c := config.New(input)

	e.Stmt(c, skip, p.Body)

	return c.Output(), nil
}

// Define adds the definition d to the interpreter's environment.
func (e *eval) Define(d *ast.Definition) {
	e.defs[d.Name] = d
}

// Expr evaluates the expression x, leaving its value as the most
// recent value of the config c.
func (e *eval) Expr(c *config.T, x ast.Expr) {
	switch x := x.(type) {
	case *ast.Const:
		c.SetResult(num.New(x.N))
	case *ast.Text:
		c.SetResult(str.New(x.S))
	case *ast.Array:
		c.SetResult(arr.New(e.operands(c, x.Elems)))
	case *ast.Sexp:
		c.SetResult(sexp.New(x.Tag, e.operands(c, x.Args)))
	case *ast.Var:
		c.SetResult(c.State.Lookup(x.Name))
	case *ast.Binop:
		e.Expr(c, x.L)
		l := c.Result()

		e.Expr(c, x.R)
		r := c.Result()

		c.SetResult(num.New(common.Binop(x.Op, common.Int(l), common.Int(r))))
	case *ast.Elem:
		e.Expr(c, x.Container)
		v := c.Result()

		e.Expr(c, x.Index)

		c.SetResult(common.Elem(v, common.Int(c.Result())))
	case *ast.Length:
		e.Expr(c, x.E)

		c.SetResult(num.New(common.Length(c.Result())))
	case *ast.Call:
		e.call(c, x.Name, e.operands(c, x.Args))
	default:
		panic("unknown expression")
	}
}

// Stmt evaluates the statement s with the continuation k against the
// config c. The initial top-level continuation is Skip.
func (e *eval) Stmt(c *config.T, k, s ast.Stmt) {
	for {
		switch t := s.(type) {
		case *ast.Skip:
			if isSkip(k) {
				return
			}

			s, k = k, skip
		case *ast.Seq:
			s, k = t.S1, join(t.S2, k)
		case *ast.Assign:
			e.assign(c, t)

			s = skip
		case *ast.If:
			e.Expr(c, t.Cond)

			if common.Int(c.Result()) != 0 {
				s = t.Then
			} else if t.Else != nil {
				s = t.Else
			} else {
				s = skip
			}
		case *ast.While:
			e.Expr(c, t.Cond)

			if common.Int(c.Result()) == 0 {
				s = skip
			} else {
				s, k = t.Body, join(t, k)
			}
		case *ast.Repeat:
			// Run the body once, then loop while the condition
			// evaluates to zero.
			again := &ast.While{
				Cond: &ast.Binop{Op: "==", L: t.Cond, R: &ast.Const{N: 0}},
				Body: t.Body,
			}

			s, k = t.Body, join(again, k)
		case *ast.Call:
			e.call(c, t.Name, e.operands(c, t.Args))

			s = skip
		case *ast.Return:
			if t.E != nil {
				e.Expr(c, t.E)
			} else {
				c.Clear()
			}

			// The continuation is discarded: return exits the
			// function.
			return
		case *ast.Case:
			e.Expr(c, t.E)

			s = e.selectBranch(c, t)
		case *ast.Leave:
			c.State.Drop()

			s = skip
		default:
			panic("unknown statement")
		}
	}
}

func (e *eval) assign(c *config.T, t *ast.Assign) {
	if len(t.Indices) == 0 {
		e.Expr(c, t.E)
		c.State.Update(t.Name, c.Result())

		return
	}

	path := make([]value.I, len(t.Indices))
	for i, x := range t.Indices {
		e.Expr(c, x)
		path[i] = c.Result()
	}

	e.Expr(c, t.E)

	c.State.Update(t.Name, common.Update(c.State.Lookup(t.Name), path, c.Result()))
}

// call dispatches to a user definition or a builtin. For a user call
// the callee frame is entered directly over the global frame and the
// caller's local chain is restored on exit.
func (e *eval) call(c *config.T, name string, args []value.I) {
	if d, ok := e.defs[name]; ok {
		if len(args) != len(d.Params) {
			panic(name + ": expected " + strconv.Itoa(len(d.Params)) +
				" arguments, passed " + strconv.Itoa(len(args)))
		}

		caller := c.State

		c.State = caller.Enter(append(append([]string{}, d.Params...), d.Locals...))
		for i, p := range d.Params {
			c.State.Update(p, args[i])
		}

		e.Stmt(c, skip, d.Body)

		c.State = c.State.Leave(caller)

		return
	}

	if f, ok := builtin.Lookup(name); ok {
		f(c, args)

		return
	}

	panic("undefined function: " + name)
}

func (e *eval) operands(c *config.T, xs []ast.Expr) []value.I {
	vs := make([]value.I, len(xs))

	for i, x := range xs {
		e.Expr(c, x)
		vs[i] = c.Result()
	}

	return vs
}

// selectBranch scans the case branches in order and commits to the
// first whose pattern matches, pushing the pattern frame. A case with
// no matching branch is a silent no-op.
func (e *eval) selectBranch(c *config.T, t *ast.Case) ast.Stmt {
	v := c.Result()

	for _, br := range t.Branches {
		bindings := map[string]value.I{}

		if Match(br.Pattern, v, bindings) {
			c.State.Push(ast.Vars(br.Pattern), bindings)

			return &ast.Seq{S1: br.Body, S2: &ast.Leave{}}
		}
	}

	return skip
}

// Match matches the value v against the pattern p, accumulating the
// names bound along the way. Idents always bind; a later binding for a
// duplicated name wins.
func Match(p ast.Pattern, v value.I, bindings map[string]value.I) bool {
	switch p := p.(type) {
	case *ast.Wildcard:
		return true
	case *ast.Ident:
		bindings[p.Name] = v

		return true
	case *ast.Tagged:
		if !sexp.Is(v) {
			return false
		}

		s := sexp.To(v)
		if s.Tag() != p.Tag || s.Length() != len(p.Kids) {
			return false
		}

		for i, k := range p.Kids {
			if !Match(k, s.At(i), bindings) {
				return false
			}
		}

		return true
	}

	return false
}

func isSkip(s ast.Stmt) bool {
	_, ok := s.(*ast.Skip)

	return ok
}

func join(s, k ast.Stmt) ast.Stmt {
	if isSkip(k) {
		return s
	}

	return &ast.Seq{S1: s, S2: k}
}
