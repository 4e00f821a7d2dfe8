package vtysh

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/newtron-network/vtysync/pkg/util"
)

// DefaultBinary is the vtysh binary resolved from PATH.
const DefaultBinary = "vtysh"

// LocalClient talks to the daemon through the vtysh binary on this
// host. Every call is one synchronous process invocation; the client
// blocks until the process exits.
type LocalClient struct {
	binary string
}

// NewLocalClient creates a client using the given vtysh binary, or
// DefaultBinary when empty.
func NewLocalClient(binary string) *LocalClient {
	if binary == "" {
		binary = DefaultBinary
	}
	return &LocalClient{binary: binary}
}

func (c *LocalClient) run(stdin string, args ...string) (string, error) {
	cmd := exec.Command(c.binary, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		full := append([]string{c.binary}, args...)
		return "", util.NewCommandError(full, stdout.String()+stderr.String(), err)
	}
	return stdout.String(), nil
}

// MarkFile runs vtysh -m -f path.
func (c *LocalClient) MarkFile(path string) (string, error) {
	return c.run("", "-m", "-f", path)
}

// MarkText runs vtysh -m -f - with text on stdin.
func (c *LocalClient) MarkText(text string) (string, error) {
	return c.run(text, "-m", "-f", "-")
}

// ShowRunning returns the current running configuration.
func (c *LocalClient) ShowRunning() (string, error) {
	return c.run("", "-c", "show running-config")
}

// Configure submits a configuration command sequence.
func (c *LocalClient) Configure(cmd Command) error {
	_, err := c.run("", cmd...)
	return err
}
