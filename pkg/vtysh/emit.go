package vtysh

import (
	"strings"

	"github.com/newtron-network/vtysync/pkg/config"
)

const negation = "no "

// negate toggles the negation marker on a directive: an already-negated
// line is un-negated rather than double-negated.
func negate(line string) string {
	if strings.HasPrefix(line, negation) {
		return line[len(negation):]
	}
	return negation + line
}

// BuildLineCommand emits the command sequence for one line-level delta:
// enter config mode, re-enter every ancestor context unmodified, then
// issue the line, as-is for an addition and negated for a deletion. The
// ancestors must be re-entered on every invocation because each vtysh
// call starts a fresh session at the top of config mode.
func BuildLineCommand(keys config.Path, line string, del bool) Command {
	cmd := Command{"-c", "conf t"}
	for _, key := range keys {
		cmd = append(cmd, "-c", key)
	}

	line = strings.TrimLeft(line, " \t")
	if del {
		line = negate(line)
	}
	return append(cmd, "-c", line)
}

// BuildContextCommand emits the command sequence for a whole-context
// delta. Deleting negates only the final path segment; intermediate
// segments are entered unmodified since they must already exist. Adding
// simply walks the path, which creates the context.
func BuildContextCommand(keys config.Path, del bool) Command {
	cmd := Command{"-c", "conf t"}
	for i, key := range keys {
		if del && i == len(keys)-1 {
			key = negate(key)
		}
		cmd = append(cmd, "-c", key)
	}
	return cmd
}
