// Package diff computes the ordered add/delete deltas between a desired
// and a running configuration tree. Deltas come in two granularities: a
// whole context (delete "router ospf" and everything under it) or a
// single line within a context.
package diff

import (
	"github.com/newtron-network/vtysync/pkg/config"
)

// Entry is one delta. HasLine false means the operation targets the
// whole context named by Keys; true means it targets Line within Keys.
// Single-line statement deletions carry an empty Keys (the implicit
// global context) with the statement itself as Line.
type Entry struct {
	Keys    config.Path
	Line    string
	HasLine bool
}

// LineEntry creates a line-level entry.
func LineEntry(keys config.Path, line string) Entry {
	return Entry{Keys: keys, Line: line, HasLine: true}
}

// ContextEntry creates a whole-context entry.
func ContextEntry(keys config.Path) Entry {
	return Entry{Keys: keys}
}

// Result holds the ordered deltas of one comparison. All of ToDelete is
// applied before any of ToAdd: adding a statement before removing the
// one it supersedes can leave conflicting duplicates in contexts where
// only one value is legal.
type Result struct {
	ToDelete []Entry
	ToAdd    []Entry
}

// Empty reports whether the two trees already converge.
func (r *Result) Empty() bool {
	return len(r.ToDelete) == 0 && len(r.ToAdd) == 0
}

// Compare diffs desired against running and returns the deltas that
// move running toward desired.
func Compare(desired, running *config.Tree) *Result {
	res := &Result{}

	// Contexts in running but not in desired get removed. A single-line
	// statement is never negated as a context: it is a line of the
	// implicit global context and deletes line by line, so the emitter
	// issues the bare "no <statement>" from config mode.
	for _, ctx := range running.Contexts() {
		if desired.Has(ctx.Keys) {
			continue
		}
		if ctx.SingleLine() {
			res.ToDelete = append(res.ToDelete, LineEntry(nil, ctx.Keys.Last()))
			continue
		}
		res.ToDelete = append(res.ToDelete, ContextEntry(ctx.Keys))
	}

	// Contexts present on both sides diff line by line, in body order.
	for _, ctx := range desired.Contexts() {
		runningCtx, ok := running.Get(ctx.Keys)
		if !ok {
			continue
		}

		for _, line := range ctx.Lines {
			if !runningCtx.Has(line) {
				res.ToAdd = append(res.ToAdd, LineEntry(ctx.Keys, line))
			}
		}
		for _, line := range runningCtx.Lines {
			if !ctx.Has(line) {
				res.ToDelete = append(res.ToDelete, LineEntry(ctx.Keys, line))
			}
		}
	}

	// Contexts only in desired are created whole: the context itself,
	// then every body line in original order.
	for _, ctx := range desired.Contexts() {
		if running.Has(ctx.Keys) {
			continue
		}
		res.ToAdd = append(res.ToAdd, ContextEntry(ctx.Keys))
		for _, line := range ctx.Lines {
			res.ToAdd = append(res.ToAdd, LineEntry(ctx.Keys, line))
		}
	}

	return res
}
