// Released under an MIT license. See LICENSE.

// Package builtin provides the fixed table of primitive operations
// shared by the AST interpreter and the stack machine.
package builtin

import (
	"strconv"

	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/common/type/arr"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/config"
)

// Fn is a builtin operation over already-evaluated argument values.
// A builtin that produces a result records it in the config; one that
// does not leaves the config without a value.
type Fn func(c *config.T, args []value.I)

//nolint:gochecknoglobals
var table = map[string]Fn{
	"read":     read,
	"write":    write,
	".elem":    elem,
	".length":  length,
	".array":   array,
	"isArray":  isArray,
	"isString": isString,
}

// Known returns true if name names a builtin.
func Known(name string) bool {
	_, ok := table[name]

	return ok
}

// Lookup returns the builtin named name.
func Lookup(name string) (Fn, bool) {
	f, ok := table[name]

	return f, ok
}

func array(c *config.T, args []value.I) {
	vs := make([]value.I, len(args))
	copy(vs, args)

	c.SetResult(arr.New(vs))
}

func elem(c *config.T, args []value.I) {
	expect(".elem", args, 2)

	c.SetResult(common.Elem(args[0], common.Int(args[1])))
}

func expect(name string, args []value.I, n int) {
	if len(args) != n {
		panic(name + ": expected " + strconv.Itoa(n) +
			" arguments, passed " + strconv.Itoa(len(args)))
	}
}

func isArray(c *config.T, args []value.I) {
	expect("isArray", args, 1)

	c.SetResult(truth(arr.Is(args[0])))
}

func isString(c *config.T, args []value.I) {
	expect("isString", args, 1)

	c.SetResult(truth(str.Is(args[0])))
}

func length(c *config.T, args []value.I) {
	expect(".length", args, 1)

	c.SetResult(num.New(common.Length(args[0])))
}

func read(c *config.T, args []value.I) {
	expect("read", args, 0)

	c.SetResult(num.New(c.Read()))
}

func truth(b bool) value.I {
	if b {
		return num.New(1)
	}

	return num.New(0)
}

func write(c *config.T, args []value.I) {
	expect("write", args, 1)

	c.Write(common.Int(args[0]))
	c.Clear()
}
