// Released under an MIT license. See LICENSE.

// Package machine provides the stack machine: a flat instruction set
// and an executor for it. The executor threads the same config as the
// AST interpreter, so a program compiled for the machine produces the
// same output log as its source evaluated directly.
package machine

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/rill-lang/rill/internal/builtin"
	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/sexp"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/config"
	"github.com/rill-lang/rill/internal/state"
)

// T (machine) is a loaded program: the instruction sequence plus the
// label index used to resolve jumps and calls.
type T struct {
	program []Inst
	labels  map[string][]Inst
	log     zerolog.Logger
}

type machine = T

// frame is one entry on the control stack: where to resume in the
// caller and the caller's state, restored on return.
type frame struct {
	resume []Inst
	caller *state.T
}

// New loads the program prg. Jumps to a label land on the instruction
// after it.
func New(prg []Inst, log zerolog.Logger) *machine {
	m := &machine{program: prg, labels: map[string][]Inst{}, log: log}

	for i, inst := range prg {
		if l, ok := inst.(*Label); ok {
			if _, dup := m.labels[l.Name]; dup {
				panic("duplicate label: " + l.Name)
			}

			m.labels[l.Name] = prg[i+1:]
		}
	}

	return m
}

// Run executes the loaded program against the input sequence input and
// returns the output sequence it produces.
func (m *machine) Run(input []int) (output []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = common.Error(r)
		}
	}()

	c := config.New(input)

	m.run(c)

	return c.Output(), nil
}

//nolint:gocognit,gocyclo
func (m *machine) run(c *config.T) {
	var control []frame
	var stack []value.I

	pop := func() value.I {
		if len(stack) == 0 {
			panic("stack underflow")
		}

		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return v
	}

	push := func(v value.I) {
		stack = append(stack, v)
	}

	// popn pops n values and returns them in the order they were
	// pushed.
	popn := func(n int) []value.I {
		vs := make([]value.I, n)
		for i := n - 1; i >= 0; i-- {
			vs[i] = pop()
		}

		return vs
	}

	ret := func() ([]Inst, bool) {
		if len(control) == 0 {
			return nil, false
		}

		f := control[len(control)-1]
		control = control[:len(control)-1]

		c.State = c.State.Leave(f.caller)

		return f.resume, true
	}

	pc := m.program

	for len(pc) > 0 {
		i := pc[0]
		pc = pc[1:]

		m.log.Trace().Int("stack", len(stack)).Msg(i.String())

		switch i := i.(type) {
		case *Binop:
			y := common.Int(pop())
			x := common.Int(pop())

			push(num.New(common.Binop(i.Op, x, y)))
		case *Const:
			push(num.New(i.N))
		case *Text:
			push(str.New(i.S))
		case *Sexp:
			push(sexp.New(i.Tag, popn(i.N)))
		case *Ld:
			push(c.State.Lookup(i.Name))
		case *St:
			c.State.Update(i.Name, pop())
		case *Sta:
			v := pop()
			path := popn(i.N)

			c.State.Update(i.Name, common.Update(c.State.Lookup(i.Name), path, v))
		case *Label:
			// Jump target only.
		case *Jmp:
			pc = m.target(i.Target)
		case *CJmp:
			n := common.Int(pop())

			if (i.Cond == "z") == (n == 0) {
				pc = m.target(i.Target)
			}
		case *Begin:
			c.State = c.State.Enter(append(append([]string{}, i.Params...), i.Locals...))

			for _, p := range i.Params {
				c.State.Update(p, pop())
			}
		case *End:
			resume, ok := ret()
			if !ok {
				return
			}

			pc = resume
		case *Call:
			if target, ok := m.labels[i.Name]; ok {
				if len(target) > 0 {
					if b, ok := target[0].(*Begin); ok && len(b.Params) != i.N {
						panic(b.Name + ": wrong number of arguments")
					}
				}

				control = append(control, frame{resume: pc, caller: c.State})
				pc = target

				continue
			}

			// User labels carry an L prefix; strip it before
			// falling back to the builtin table.
			name := strings.TrimPrefix(i.Name, "L")

			f, ok := builtin.Lookup(name)
			if !ok {
				panic("undefined function: " + name)
			}

			m.log.Trace().Str("builtin", name).Int("args", i.N).Send()

			f(c, popn(i.N))

			if !i.Proc {
				push(c.Result())
			}
		case *Ret:
			resume, ok := ret()
			if !ok {
				return
			}

			pc = resume
		case *Drop:
			pop()
		case *Dup:
			push(stack[len(stack)-1])
		case *Swap:
			x := pop()
			y := pop()

			push(x)
			push(y)
		case *Tag:
			v := pop()

			if sexp.Is(v) && sexp.To(v).Tag() == i.Name {
				push(num.New(1))
			} else {
				push(num.New(0))
			}
		case *Enter:
			vs := popn(len(i.Names))

			// Ascending order so that a later binding for a
			// duplicated name wins.
			bindings := map[string]value.I{}
			for j, name := range i.Names {
				bindings[name] = vs[j]
			}

			c.State.Push(i.Names, bindings)
		case *Leave:
			c.State.Drop()
		default:
			panic("unknown instruction: " + i.String())
		}
	}
}

func (m *machine) target(name string) []Inst {
	t, ok := m.labels[name]
	if !ok {
		panic("undefined label: " + name)
	}

	return t
}
