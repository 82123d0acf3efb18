// Released under an MIT license. See LICENSE.

// Package options parses rill's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	dump        bool
	input       []string
	interactive bool
	script      string
	stack       bool
	trace       bool
	version     bool
	usage       = `rill

Usage:
  rill [-s | -d] [-t] SCRIPT [INPUT...]
  rill [-it]
  rill -h
  rill -v

Arguments:
  SCRIPT  Path to rill script.
  INPUT   Integers forming the program's input sequence. When absent,
          input is read from stdin.

Options:
  -d, --dump         Print the compiled stack machine program and exit.
  -i, --interactive  Invert interactive mode.
  -s, --stack        Run the script on the stack machine.
  -t, --trace        Trace stack machine execution.
  -h, --help         Display this help.
  -v, --version      Print rill version.

If rill's stdin is a TTY and rill was invoked without a script, an
interactive session is started.
`
)

func Dump() bool {
	return dump
}

func Input() []string {
	return input
}

func Interactive() bool {
	return interactive
}

func Parse() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	script, _ = opts.String("SCRIPT")
	input, _ = opts["INPUT"].([]string)

	if script == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		interactive = true
	}

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	dump, _ = opts.Bool("--dump")
	stack, _ = opts.Bool("--stack")
	trace, _ = opts.Bool("--trace")
	version, _ = opts.Bool("--version")
}

func Script() string {
	return script
}

func Stack() bool {
	return stack
}

func Trace() bool {
	return trace
}

func Version() bool {
	return version
}
