// Released under an MIT license. See LICENSE.

/*
Rill is a small dynamically-typed imperative language with first-class
arrays, byte strings, and tagged S-expressions. A rill program reads a
sequence of integers and writes a sequence of integers:

    n := read();
    r := 1;
    while n > 0 do
        r := r * n;
        n := n - 1
    od;
    write(r)

Rill programs can be evaluated directly or compiled for and run on a
stack machine; both paths produce the same output.

For more detail, see: https://github.com/rill-lang/rill
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/compile"
	"github.com/rill-lang/rill/internal/config"
	"github.com/rill-lang/rill/internal/eval"
	"github.com/rill-lang/rill/internal/machine"
	"github.com/rill-lang/rill/internal/reader"
	"github.com/rill-lang/rill/internal/system/options"
	"github.com/rill-lang/rill/internal/ui"
)

const version = "0.2.0"

func main() {
	options.Parse()

	if options.Version() {
		fmt.Println("rill " + version)

		return
	}

	if options.Script() == "" && options.Interactive() {
		ui.Run(newSession())

		return
	}

	run()
}

func run() {
	name := options.Script()

	var text []byte
	var err error

	if name == "" {
		name = "stdin"
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(name)
	}

	die(err)

	prg, err := reader.Parse(name, string(text))
	die(err)

	if options.Dump() {
		fmt.Print(machine.Listing(compile.Program(prg)))

		return
	}

	input, err := input()
	die(err)

	var out []int

	if options.Stack() {
		out, err = machine.New(compile.Program(prg), logger()).Run(input)
	} else {
		out, err = eval.Run(prg, input)
	}

	die(err)

	for _, n := range out {
		fmt.Println(n)
	}
}

func die(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "rill:", err)
		os.Exit(1)
	}
}

// input collects the program's input sequence: command-line operands
// if present, whitespace-separated integers from stdin otherwise.
func input() ([]int, error) {
	args := options.Input()

	if len(args) == 0 {
		if options.Script() == "" {
			// Stdin was the script.
			return nil, nil
		}

		return scan(os.Stdin)
	}

	ns := make([]int, len(args))

	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("not an int: %s", a)
		}

		ns[i] = n
	}

	return ns, nil
}

func logger() zerolog.Logger {
	if !options.Trace() {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.TraceLevel)
}

func scan(r io.Reader) ([]int, error) {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)

	var ns []int

	for s.Scan() {
		n, err := strconv.Atoi(s.Text())
		if err != nil {
			return nil, fmt.Errorf("not an int: %s", s.Text())
		}

		ns = append(ns, n)
	}

	return ns, s.Err()
}

// session is the persistent interpreter behind an interactive run.
type session struct {
	e *eval.T
	c *config.T

	printed int
}

func newSession() *session {
	return &session{e: eval.New(&ast.Program{}), c: config.New(nil)}
}

func (s *session) Define(d *ast.Definition) {
	s.e.Define(d)
}

func (s *session) Evaluate(st ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = common.Error(r)
		}

		s.flush()
	}()

	s.e.Stmt(s.c, &ast.Skip{}, st)

	return nil
}

func (s *session) Supply(refill func() ([]int, bool)) {
	s.c.Refill = refill
}

func (s *session) Value(x ast.Expr) (v value.I, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, common.Error(r)
		}

		s.flush()
	}()

	s.e.Expr(s.c, x)

	return s.c.Result(), nil
}

// flush prints any output produced since the last flush. Interactive
// sessions print eagerly rather than at the end of the run.
func (s *session) flush() {
	out := s.c.Output()

	for _, n := range out[s.printed:] {
		fmt.Println(n)
	}

	s.printed = len(out)
}
