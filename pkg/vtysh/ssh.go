package vtysh

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/newtron-network/vtysync/pkg/util"
)

// SSHClient runs every vtysh invocation on a remote host over SSH, so
// one admin box can converge a fleet member. One SSH session per
// invocation, matching the one-process-per-command local model.
type SSHClient struct {
	addr   string
	config *ssh.ClientConfig
	binary string
}

// NewSSHClient creates a client for host (port 22 assumed when no port
// is given) with password auth. Lab devices regenerate host keys on
// reprovision, so host key checking is disabled.
func NewSSHClient(host, user, password, binary string) *SSHClient {
	if !strings.Contains(host, ":") {
		host += ":22"
	}
	if binary == "" {
		binary = DefaultBinary
	}
	return &SSHClient{
		addr: host,
		config: &ssh.ClientConfig{
			User: user,
			Auth: []ssh.AuthMethod{
				ssh.Password(password),
			},
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
			Timeout:         10 * time.Second,
		},
		binary: binary,
	}
}

// shellQuote wraps s in single quotes for the remote shell, escaping
// embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func (c *SSHClient) run(stdin string, args ...string) (string, error) {
	client, err := ssh.Dial("tcp", c.addr, c.config)
	if err != nil {
		return "", fmt.Errorf("connecting to %s: %w", c.addr, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("opening session on %s: %w", c.addr, err)
	}
	defer session.Close()

	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, c.binary)
	for _, arg := range args {
		quoted = append(quoted, shellQuote(arg))
	}
	remote := strings.Join(quoted, " ")

	if stdin != "" {
		session.Stdin = strings.NewReader(stdin)
	}

	out, err := session.CombinedOutput(remote)
	if err != nil {
		full := append([]string{c.binary}, args...)
		return "", util.NewCommandError(full, string(out), err)
	}
	return string(out), nil
}

// MarkFile runs vtysh -m -f path on the remote host. The config file
// must exist there; vtysync does not copy it.
func (c *SSHClient) MarkFile(path string) (string, error) {
	return c.run("", "-m", "-f", path)
}

// MarkText runs vtysh -m -f - on the remote host with text on stdin.
func (c *SSHClient) MarkText(text string) (string, error) {
	return c.run(text, "-m", "-f", "-")
}

// ShowRunning returns the remote daemon's running configuration.
func (c *SSHClient) ShowRunning() (string, error) {
	return c.run("", "-c", "show running-config")
}

// Configure submits a configuration command sequence remotely.
func (c *SSHClient) Configure(cmd Command) error {
	_, err := c.run("", cmd...)
	return err
}
