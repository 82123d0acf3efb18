// Released under an MIT license. See LICENSE.

package machine

import (
	"strconv"
	"strings"
)

// Inst is a single stack machine instruction.
type Inst interface {
	inst() // sealed marker
	String() string
}

// Binop pops two ints and pushes the result of applying Op.
type Binop struct {
	Op string
}

// Const pushes an integer literal.
type Const struct {
	N int
}

// Text pushes a string literal.
type Text struct {
	S string
}

// Sexp pops N values and pushes an S-expression tagged Tag. Children
// are pushed left to right, so popping reverses them back into source
// order.
type Sexp struct {
	Tag string
	N   int
}

// Ld pushes the value bound to Name.
type Ld struct {
	Name string
}

// St pops a value and binds it to Name.
type St struct {
	Name string
}

// Sta pops a value and N indices and updates the composite bound to
// Name at that path.
type Sta struct {
	Name string
	N    int
}

// Label marks a jump target. Executing it is a no-op.
type Label struct {
	Name string
}

// Jmp transfers control to Target.
type Jmp struct {
	Target string
}

// CJmp pops an int and jumps to Target if it is zero (Cond "z") or
// nonzero (Cond "nz").
type CJmp struct {
	Cond   string
	Target string
}

// Begin enters the call frame of the function Name: a fresh frame
// scoping Params and Locals directly over the global frame. The
// topmost value binds to the first parameter.
type Begin struct {
	Name   string
	Params []string
	Locals []string
}

// End returns from the current function, or halts when the control
// stack is empty.
type End struct{}

// Call transfers control to a user function label or dispatches a
// builtin. For a builtin, N argument values are popped and, unless
// Proc is set, the result is pushed.
type Call struct {
	Name string
	N    int
	Proc bool
}

// Ret returns from the current function. Value records whether a
// return value is on the stack.
type Ret struct {
	Value bool
}

// Drop discards the top of the stack.
type Drop struct{}

// Dup duplicates the top of the stack.
type Dup struct{}

// Swap exchanges the top two values.
type Swap struct{}

// Tag pops a value and pushes 1 if it is an S-expression tagged Name,
// and 0 otherwise.
type Tag struct {
	Name string
}

// Enter pops one value per name and pushes a pattern frame binding
// them: the value popped first binds to the last name.
type Enter struct {
	Names []string
}

// Leave pops one pattern frame.
type Leave struct{}

func (*Binop) inst() {}
func (*Const) inst() {}
func (*Text) inst()  {}
func (*Sexp) inst()  {}
func (*Ld) inst()    {}
func (*St) inst()    {}
func (*Sta) inst()   {}
func (*Label) inst() {}
func (*Jmp) inst()   {}
func (*CJmp) inst()  {}
func (*Begin) inst() {}
func (*End) inst()   {}
func (*Call) inst()  {}
func (*Ret) inst()   {}
func (*Drop) inst()  {}
func (*Dup) inst()   {}
func (*Swap) inst()  {}
func (*Tag) inst()   {}
func (*Enter) inst() {}
func (*Leave) inst() {}

func (i *Binop) String() string { return "BINOP " + i.Op }
func (i *Const) String() string { return "CONST " + strconv.Itoa(i.N) }
func (i *Text) String() string  { return "STRING " + strconv.Quote(i.S) }
func (i *Sexp) String() string  { return "SEXP " + i.Tag + " " + strconv.Itoa(i.N) }
func (i *Ld) String() string    { return "LD " + i.Name }
func (i *St) String() string    { return "ST " + i.Name }
func (i *Sta) String() string   { return "STA " + i.Name + " " + strconv.Itoa(i.N) }
func (i *Label) String() string { return "LABEL " + i.Name }
func (i *Jmp) String() string   { return "JMP " + i.Target }
func (i *CJmp) String() string  { return "CJMP " + i.Cond + " " + i.Target }

func (i *Begin) String() string {
	return "BEGIN " + i.Name +
		" (" + strings.Join(i.Params, ", ") + ")" +
		" (" + strings.Join(i.Locals, ", ") + ")"
}

func (i *End) String() string { return "END" }

func (i *Call) String() string {
	s := "CALL " + i.Name + " " + strconv.Itoa(i.N)
	if i.Proc {
		s += " proc"
	}

	return s
}

func (i *Ret) String() string {
	if i.Value {
		return "RET value"
	}

	return "RET"
}

func (i *Drop) String() string  { return "DROP" }
func (i *Dup) String() string   { return "DUP" }
func (i *Swap) String() string  { return "SWAP" }
func (i *Tag) String() string   { return "TAG " + i.Name }
func (i *Enter) String() string { return "ENTER (" + strings.Join(i.Names, ", ") + ")" }
func (i *Leave) String() string { return "LEAVE" }

// Listing renders the program prg one instruction per line.
func Listing(prg []Inst) string {
	b := strings.Builder{}

	for _, i := range prg {
		if _, ok := i.(*Label); !ok {
			b.WriteByte('\t')
		}

		b.WriteString(i.String())
		b.WriteByte('\n')
	}

	return b.String()
}
