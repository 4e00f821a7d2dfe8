// Package util provides logging, error types, and address normalization
// helpers shared by the vtysync packages.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes a reconciliation run can hit
var (
	ErrLoadFailed       = errors.New("configuration load failed")
	ErrCommandRejected  = errors.New("command rejected by vtysh")
	ErrUnrecoverable    = errors.New("command could not be applied")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// LoadError reports a failure to load or mark a configuration source.
// It is the only error class that aborts a run.
type LoadError struct {
	Source string // file path or "show running-config"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading configuration from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return ErrLoadFailed
}

// NewLoadError creates a load error for the given source
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

// CommandError reports a vtysh command sequence refused by the daemon.
// Output holds whatever vtysh printed before exiting non-zero.
type CommandError struct {
	Cmd    []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed: %v", strings.Join(e.Cmd, " "), e.Err)
	if e.Output != "" {
		msg += " (" + strings.TrimSpace(e.Output) + ")"
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return ErrCommandRejected
}

// NewCommandError creates a command error
func NewCommandError(cmd []string, output string, err error) *CommandError {
	return &CommandError{Cmd: cmd, Output: output, Err: err}
}
