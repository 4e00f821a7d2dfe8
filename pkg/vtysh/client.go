// Package vtysh wraps the routing daemon's configuration CLI. All
// access to the daemon (marking config files, reading the running
// config, applying configuration commands) goes through a Client, so
// the reconciliation engine never touches a process directly and tests
// can substitute a fake daemon.
package vtysh

import "strings"

// Command is one vtysh invocation, expressed as the argument list that
// follows the binary name: alternating -c flags with the directives to
// issue once inside the shell.
type Command []string

// String renders the invocation the way it would be typed, for preview
// output and log traces.
func (c Command) String() string {
	parts := make([]string, 0, len(c)+1)
	parts = append(parts, "vtysh")
	for _, arg := range c {
		if arg == "-c" {
			parts = append(parts, arg)
		} else {
			parts = append(parts, "'"+arg+"'")
		}
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy, so retry truncation on one copy
// leaves the original intact for error reporting.
func (c Command) Clone() Command {
	out := make(Command, len(c))
	copy(out, c)
	return out
}

// Client is the interface to a vtysh endpoint, local or remote.
type Client interface {
	// MarkFile runs the marker pass (vtysh -m -f path) over a config
	// file, returning text annotated with "end" context terminators.
	MarkFile(path string) (string, error)

	// MarkText runs the marker pass over config text on stdin.
	MarkText(text string) (string, error)

	// ShowRunning returns the daemon's current running configuration,
	// banner lines included.
	ShowRunning() (string, error)

	// Configure submits one configuration command sequence. A non-zero
	// daemon exit returns a *util.CommandError.
	Configure(cmd Command) error
}
