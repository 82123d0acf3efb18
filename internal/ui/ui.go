// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for the rill language.
package ui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/reader"
)

// Evaluator is the interface for things that process parsed input.
type Evaluator interface {
	Define(*ast.Definition)
	Evaluate(ast.Stmt) error
	Value(ast.Expr) (value.I, error)

	// Supply installs a source of additional input integers.
	Supply(refill func() ([]int, bool))
}

// Run launches the UI, which sends parsed input to the Evaluator.
func Run(e Evaluator) {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	e.Supply(func() ([]int, bool) {
		line, err := cli.Prompt("read> ")
		if err != nil {
			return nil, false
		}

		return integers(line)
	})

	r := reader.New("rill")

	prompt := "> "

	for {
		line, err := cli.Prompt(prompt)

		switch err {
		case nil:
			cli.AppendHistory(line)
		case liner.ErrPromptAborted:
			r = reader.New("rill")
			prompt = "> "

			continue
		default:
			return
		}

		prg, x, err := r.Scan(line)
		if errors.Is(err, reader.ErrIncomplete) {
			prompt = ". "

			continue
		}

		prompt = "> "

		if err != nil {
			fmt.Fprintln(os.Stderr, err)

			continue
		}

		if x != nil {
			v, err := e.Value(x)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)

				continue
			}

			fmt.Println(display(v))

			continue
		}

		for _, d := range prg.Defs {
			e.Define(d)
		}

		if err := e.Evaluate(prg.Body); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func display(v value.I) string {
	if str.Is(v) {
		return str.To(v).Literal()
	}

	return common.String(v)
}

func integers(line string) ([]int, bool) {
	fields := strings.Fields(line)

	ns := make([]int, 0, len(fields))

	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			fmt.Fprintln(os.Stderr, "not an int:", f)

			return nil, false
		}

		ns = append(ns, n)
	}

	return ns, true
}
