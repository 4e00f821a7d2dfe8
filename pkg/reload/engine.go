// Package reload drives configuration reconciliation: diff the desired
// config against the daemon's running config and apply the minimal
// command set that converges them, without restarting the daemon.
package reload

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/newtron-network/vtysync/pkg/audit"
	"github.com/newtron-network/vtysync/pkg/cli"
	"github.com/newtron-network/vtysync/pkg/config"
	"github.com/newtron-network/vtysync/pkg/diff"
	"github.com/newtron-network/vtysync/pkg/util"
	"github.com/newtron-network/vtysync/pkg/vtysh"
)

// passes is the number of convergence passes in apply mode. Two are
// needed because negating one statement can make the daemon silently
// drop sibling statements sharing its prefix; the second pass re-diffs
// against reality and restores the collateral damage. Example: with
//
//	neighbor 1.1.1.1 remote-as 50
//	neighbor 1.1.1.1 route-map FOO out
//
// running and remote-as 999 desired, "no neighbor 1.1.1.1 remote-as 50"
// also removes the route-map line; pass 2 puts it back.
const passes = 2

// retryFloor stops deletion retries: once the final command element is
// down to this many whitespace tokens there is nothing meaningful left
// to truncate.
const retryFloor = 2

// Options configures a reconciliation run.
type Options struct {
	// Debug raises log verbosity and, in preview mode, adds a textual
	// config diff to the output.
	Debug bool

	// RunningFile substitutes a file for the live running config in
	// preview mode.
	RunningFile string

	// User and Host identify the run in the audit trail. Host is empty
	// for the local daemon.
	User string
	Host string
}

// Engine reconciles one desired configuration against one daemon.
type Engine struct {
	client      vtysh.Client
	desired     *config.Tree
	desiredFile string
	opts        Options
}

// New creates an engine, loading and parsing the desired configuration
// file up front. The returned error is a load failure and fatal.
func New(client vtysh.Client, desiredFile string, opts Options) (*Engine, error) {
	desired, err := vtysh.LoadFile(client, desiredFile)
	if err != nil {
		return nil, err
	}
	return &Engine{client: client, desired: desired, desiredFile: desiredFile, opts: opts}, nil
}

// Desired exposes the parsed desired tree.
func (e *Engine) Desired() *config.Tree {
	return e.desired
}

// Preview computes the deltas once and writes the command sequences
// that would be applied to w, executing nothing.
func (e *Engine) Preview(w io.Writer) error {
	running, err := e.loadRunning()
	if err != nil {
		return err
	}

	res := diff.Compare(e.desired, running)

	if e.opts.Debug {
		fmt.Fprintln(w, cli.Underline("Config Text Diff", '='))
		fmt.Fprint(w, diff.RenderText(running.Text(), e.desired.Text()))
		fmt.Fprintln(w)
	}

	if len(res.ToDelete) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.Underline("Lines To Delete", '='))
		for _, entry := range res.ToDelete {
			fmt.Fprintln(w, cli.Red(deleteCommand(entry).String()))
		}
	}

	if len(res.ToAdd) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.Underline("Lines To Add", '='))
		for _, entry := range res.ToAdd {
			fmt.Fprintln(w, cli.Green(addCommand(entry).String()))
		}
	}

	if res.Empty() {
		fmt.Fprintln(w, "No changes: configs are in sync.")
	}
	fmt.Fprintln(w)
	return nil
}

// Reload converges the daemon onto the desired config: two full passes
// of fetch-running / diff / delete-all / add-all. Per-command failures
// are logged and skipped; only a failure to load the running config
// aborts the run.
func (e *Engine) Reload() error {
	util.Infof("New config\n%s", e.desired.Text())

	for pass := 1; pass <= passes; pass++ {
		log := util.WithPass(pass)

		running, err := vtysh.LoadRunning(e.client)
		if err != nil {
			return err
		}
		log.Infof("Running config\n%s", running.Text())

		res := diff.Compare(e.desired, running)
		if res.Empty() {
			log.Info("No deltas, configs are in sync")
			continue
		}

		// All deletions land before any addition: adding a statement
		// before removing the one it supersedes can create conflicting
		// duplicates in single-value contexts.
		for _, entry := range res.ToDelete {
			e.applyDeletion(pass, entry)
		}
		for _, entry := range res.ToAdd {
			e.applyAddition(pass, entry)
		}
	}

	return nil
}

// loadRunning fetches the running tree, from file in preview mode when
// --input was given, live otherwise.
func (e *Engine) loadRunning() (*config.Tree, error) {
	if e.opts.RunningFile != "" {
		return vtysh.LoadFile(e.client, e.opts.RunningFile)
	}
	return vtysh.LoadRunning(e.client)
}

func deleteCommand(entry diff.Entry) vtysh.Command {
	if entry.HasLine {
		return vtysh.BuildLineCommand(entry.Keys, entry.Line, true)
	}
	return vtysh.BuildContextCommand(entry.Keys, true)
}

func addCommand(entry diff.Entry) vtysh.Command {
	if entry.HasLine {
		return vtysh.BuildLineCommand(entry.Keys, entry.Line, false)
	}
	return vtysh.BuildContextCommand(entry.Keys, false)
}

// applyDeletion submits a deletion with graduated retry. The daemon is
// picky about negating some statements in full, OSPF especially, where
// only a prefix of the original line is a valid "no" form:
//
//	(config-if)# no ip ospf authentication message-digest 1.1.1.1
//	% Unknown command.
//	(config-if)# no ip ospf authentication
//	(config-if)#
//
// so on rejection the last token of the final element is dropped and
// the command resubmitted, until it works or too little is left.
func (e *Engine) applyDeletion(pass int, entry diff.Entry) {
	log := util.WithPass(pass)

	cmd := deleteCommand(entry)
	original := cmd.Clone()
	start := time.Now()
	attempts := 0

	for {
		log.Info(cmd.String())
		attempts++

		err := e.client.Configure(cmd)
		if err == nil {
			log.Infof("%s worked", cmd.String())
			e.record(pass, cmd, attempts, start, nil)
			return
		}
		log.Infof("%s failed", cmd.String())

		last := strings.Split(cmd[len(cmd)-1], " ")
		if len(last) <= retryFloor {
			log.Errorf("%q we failed to remove this command", original.String())
			e.record(pass, original, attempts, start, err)
			return
		}
		cmd[len(cmd)-1] = strings.Join(last[:len(last)-1], " ")
	}
}

// applyAddition submits an addition once; a rejection is logged and the
// run moves on to the next delta.
func (e *Engine) applyAddition(pass int, entry diff.Entry) {
	log := util.WithPass(pass)

	cmd := addCommand(entry)
	log.Debug(cmd.String())

	start := time.Now()
	err := e.client.Configure(cmd)
	if err != nil {
		log.Warnf("%s failed: %v", cmd.String(), err)
	}
	e.record(pass, cmd, 1, start, err)
}

// record writes one audit event per applied delta. Logging failures are
// reported but never abort the run.
func (e *Engine) record(pass int, cmd vtysh.Command, attempts int, start time.Time, applyErr error) {
	ev := audit.NewEvent(e.opts.User, e.opts.Host, e.desiredFile).
		WithPass(pass).
		WithCommand(cmd, attempts).
		WithDuration(time.Since(start))
	if applyErr != nil {
		ev.WithError(applyErr)
	} else {
		ev.WithSuccess()
	}
	if err := audit.Log(ev); err != nil {
		util.Warnf("audit log write failed: %v", err)
	}
}
