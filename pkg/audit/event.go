// Package audit provides an audit trail of configuration commands
// applied to the daemon. One JSON-lines entry per diff entry applied,
// so an operator can reconstruct exactly what a reload did and which
// commands the daemon refused.
package audit

import (
	"fmt"
	"time"
)

// Event records the outcome of one applied diff entry
type Event struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	User       string        `json:"user"`
	Host       string        `json:"host,omitempty"` // empty for the local daemon
	ConfigFile string        `json:"config_file"`
	Pass       int           `json:"pass"`
	Command    []string      `json:"command"`
	Attempts   int           `json:"attempts"` // >1 when deletion retries truncated the command
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// NewEvent creates an audit event for one command application
func NewEvent(user, host, configFile string) *Event {
	return &Event{
		ID:         generateID(),
		Timestamp:  time.Now(),
		User:       user,
		Host:       host,
		ConfigFile: configFile,
	}
}

// WithPass sets the convergence pass number
func (e *Event) WithPass(pass int) *Event {
	e.Pass = pass
	return e
}

// WithCommand sets the command as finally submitted
func (e *Event) WithCommand(cmd []string, attempts int) *Event {
	e.Command = cmd
	e.Attempts = attempts
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets how long the application took
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
