// Released under an MIT license. See LICENSE.

// Package compile lowers the AST into a linear stack machine program.
//
// User function names share the label namespace with compiler-allocated
// labels; both carry an L prefix. Builtin calls are emitted unprefixed;
// the machine finds no label for them and falls back to the builtin
// table.
package compile

import (
	"strconv"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/builtin"
	"github.com/rill-lang/rill/internal/machine"
)

// T (compile) accumulates the emitted program and allocates labels.
type T struct {
	prg  []machine.Inst
	next int
}

type compile = T

// Program lowers the program p: the main body first, then an END, then
// every definition block.
func Program(p *ast.Program) []machine.Inst {
	c := &compile{}

	c.stmt(p.Body)
	c.emit(&machine.End{})

	for _, d := range p.Defs {
		c.definition(d)
	}

	return c.prg
}

func (c *compile) definition(d *ast.Definition) {
	c.emit(&machine.Label{Name: "L" + d.Name})
	c.emit(&machine.Begin{Name: d.Name, Params: d.Params, Locals: d.Locals})

	c.stmt(d.Body)

	c.emit(&machine.End{})
}

func (c *compile) emit(i machine.Inst) {
	c.prg = append(c.prg, i)
}

// label returns a fresh label. User function labels cannot collide
// with these: an identifier never starts with a digit.
func (c *compile) label() string {
	l := "L" + strconv.Itoa(c.next)
	c.next++

	return l
}

func (c *compile) expr(x ast.Expr) {
	switch x := x.(type) {
	case *ast.Const:
		c.emit(&machine.Const{N: x.N})
	case *ast.Text:
		c.emit(&machine.Text{S: x.S})
	case *ast.Array:
		for _, e := range x.Elems {
			c.expr(e)
		}

		c.emit(&machine.Call{Name: ".array", N: len(x.Elems)})
	case *ast.Sexp:
		for _, e := range x.Args {
			c.expr(e)
		}

		c.emit(&machine.Sexp{Tag: x.Tag, N: len(x.Args)})
	case *ast.Var:
		c.emit(&machine.Ld{Name: x.Name})
	case *ast.Binop:
		c.expr(x.L)
		c.expr(x.R)

		c.emit(&machine.Binop{Op: x.Op})
	case *ast.Elem:
		c.expr(x.Container)
		c.expr(x.Index)

		c.emit(&machine.Call{Name: ".elem", N: 2})
	case *ast.Length:
		c.expr(x.E)

		c.emit(&machine.Call{Name: ".length", N: 1})
	case *ast.Call:
		c.call(x, false)
	default:
		panic("cannot compile expression")
	}
}

// call emits a user or builtin call. Builtin arguments are pushed in
// source order; user arguments are pushed in reverse so that the
// topmost value is the first parameter when BEGIN binds it.
func (c *compile) call(x *ast.Call, proc bool) {
	if builtin.Known(x.Name) {
		for _, a := range x.Args {
			c.expr(a)
		}

		c.emit(&machine.Call{Name: x.Name, N: len(x.Args), Proc: proc})

		return
	}

	for i := len(x.Args) - 1; i >= 0; i-- {
		c.expr(x.Args[i])
	}

	c.emit(&machine.Call{Name: "L" + x.Name, N: len(x.Args), Proc: proc})
}

//nolint:gocognit
func (c *compile) stmt(s ast.Stmt) {
	switch t := s.(type) {
	case *ast.Skip:
	case *ast.Seq:
		c.stmt(t.S1)
		c.stmt(t.S2)
	case *ast.Assign:
		for _, x := range t.Indices {
			c.expr(x)
		}

		c.expr(t.E)

		if len(t.Indices) == 0 {
			c.emit(&machine.St{Name: t.Name})
		} else {
			c.emit(&machine.Sta{Name: t.Name, N: len(t.Indices)})
		}
	case *ast.If:
		alt, end := c.label(), c.label()

		c.expr(t.Cond)
		c.emit(&machine.CJmp{Cond: "z", Target: alt})

		c.stmt(t.Then)
		c.emit(&machine.Jmp{Target: end})

		c.emit(&machine.Label{Name: alt})

		if t.Else != nil {
			c.stmt(t.Else)
		}

		c.emit(&machine.Label{Name: end})
	case *ast.While:
		check, loop := c.label(), c.label()

		c.emit(&machine.Jmp{Target: check})
		c.emit(&machine.Label{Name: loop})

		c.stmt(t.Body)

		c.emit(&machine.Label{Name: check})
		c.expr(t.Cond)
		c.emit(&machine.CJmp{Cond: "nz", Target: loop})
	case *ast.Repeat:
		loop := c.label()

		c.emit(&machine.Label{Name: loop})

		c.stmt(t.Body)

		c.expr(t.Cond)
		c.emit(&machine.CJmp{Cond: "z", Target: loop})
	case *ast.Call:
		c.call(t, true)
	case *ast.Return:
		if t.E != nil {
			c.expr(t.E)
			c.emit(&machine.Ret{Value: true})
		} else {
			c.emit(&machine.Ret{})
		}
	case *ast.Case:
		c.caseStmt(t)
	case *ast.Leave:
		c.emit(&machine.Leave{})
	default:
		panic("cannot compile statement")
	}
}

// caseStmt lowers a case. The scrutinee stays on the stack while each
// branch tests it in place; a branch that fails jumps to the next
// branch's test with the scrutinee intact. The last branch fails to the
// end label, leaving the unmatched scrutinee behind.
func (c *compile) caseStmt(t *ast.Case) {
	c.expr(t.E)

	end := c.label()

	for i, br := range t.Branches {
		last := i == len(t.Branches)-1

		fail := end
		if !last {
			fail = c.label()
		}

		c.test(br.Pattern, nil, fail)
		c.bind(br.Pattern)

		c.stmt(br.Body)
		c.emit(&machine.Leave{})

		if !last {
			c.emit(&machine.Jmp{Target: end})
			c.emit(&machine.Label{Name: fail})
		}
	}

	c.emit(&machine.Label{Name: end})
}

// test emits the structural checks for the pattern p against the
// scrutinee child at path, jumping to fail on a mismatch. The scrutinee
// itself is left on the stack either way. Idents and wildcards always
// match.
func (c *compile) test(p ast.Pattern, path []int, fail string) {
	t, ok := p.(*ast.Tagged)
	if !ok {
		return
	}

	c.navigate(path)
	c.emit(&machine.Tag{Name: t.Tag})
	c.emit(&machine.CJmp{Cond: "z", Target: fail})

	c.navigate(path)
	c.emit(&machine.Call{Name: ".length", N: 1})
	c.emit(&machine.Const{N: len(t.Kids)})
	c.emit(&machine.Binop{Op: "=="})
	c.emit(&machine.CJmp{Cond: "z", Target: fail})

	for i, k := range t.Kids {
		c.test(k, append(path, i), fail)
	}
}

// bind replaces the scrutinee with one value per variable the pattern
// binds, in source order, and installs the pattern frame. ENTER pops
// the values back into the right names.
func (c *compile) bind(p ast.Pattern) {
	bs := bound(p, nil, nil)
	names := make([]string, len(bs))

	for i, b := range bs {
		names[i] = b.name

		c.navigate(b.path)
		c.emit(&machine.Swap{})
	}

	c.emit(&machine.Drop{})
	c.emit(&machine.Enter{Names: names})
}

// navigate duplicates the top of the stack and replaces the copy with
// the element at path.
func (c *compile) navigate(path []int) {
	c.emit(&machine.Dup{})

	for _, i := range path {
		c.emit(&machine.Const{N: i})
		c.emit(&machine.Call{Name: ".elem", N: 2})
	}
}

type binding struct {
	name string
	path []int
}

func bound(p ast.Pattern, path []int, bs []binding) []binding {
	switch p := p.(type) {
	case *ast.Ident:
		return append(bs, binding{name: p.Name, path: append([]int{}, path...)})
	case *ast.Tagged:
		for i, k := range p.Kids {
			bs = bound(k, append(path, i), bs)
		}
	}

	return bs
}
