// Released under an MIT license. See LICENSE.

// Package config provides the configuration threaded through every
// evaluation step: the current state, the unread suffix of the input
// sequence, the growing output log, and the most recent value.
package config

import (
	"github.com/rill-lang/rill/internal/common/interface/value"
	"github.com/rill-lang/rill/internal/state"
)

// T (config) is the machine-independent execution context.
type T struct {
	State *state.T

	// Refill, when set, is asked for more input when the queue runs
	// dry. Interactive sessions use it to prompt the user.
	Refill func() ([]int, bool)

	input  []int
	output []int
	value  value.I
}

type config = T

// New creates a config with a fresh state and the input sequence input.
func New(input []int) *config {
	return &config{State: state.New(), input: input}
}

// Clear discards the most recent value.
func (c *config) Clear() {
	c.value = nil
}

// Output returns the output log produced so far.
func (c *config) Output() []int {
	return c.output
}

// Read removes and returns the head of the input queue.
func (c *config) Read() int {
	if len(c.input) == 0 && c.Refill != nil {
		if ns, ok := c.Refill(); ok {
			c.input = ns
		}
	}

	if len(c.input) == 0 {
		panic("read: no more input")
	}

	n := c.input[0]
	c.input = c.input[1:]

	return n
}

// Result returns the most recent value. It panics if there is none.
func (c *config) Result() value.I {
	if c.value == nil {
		panic("no value")
	}

	return c.value
}

// SetResult records v as the most recent value.
func (c *config) SetResult(v value.I) {
	c.value = v
}

// Write appends n to the output log.
func (c *config) Write(n int) {
	c.output = append(c.output, n)
}
