package config

import "strings"

// Statements that are always single-line top-level contexts, never the
// opening of a multi-line block. "bgp " here is the multi-instance
// enable statement, not a "router bgp" block (which never starts with
// "bgp " at a context boundary).
var singleLinePrefixes = []string{
	"ip ", "ipv6 ", "log ", "hostname ", "zebra ", "ptm-enable",
	"debug ", "service ", "enable ", "password ", "access-list ", "bgp ",
}

func isSingleLineStatement(line string) bool {
	for _, prefix := range singleLinePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// parserState tracks the position inside the nesting structure while
// scanning marked config text line by line.
type parserState struct {
	ctxKeys    Path     // active context path
	mainCtxKey Path     // parent to restore when popping a subcontext
	newCtx     bool     // at a context boundary (just closed one)
	body       []string // body lines collected for the active context
}

// Parse builds a Tree from marked configuration lines. The input must
// carry the "end" terminators that vtysh's marker pass (-m) inserts;
// those drive context boundary detection. Lines are expected to be
// trimmed already, with empty and comment lines tolerated.
func Parse(lines []string) *Tree {
	tree := NewTree()
	tree.sourceLines = lines

	st := parserState{newCtx: true}
	for _, line := range lines {
		st = parseLine(tree, st, line)
	}

	// Flush whatever context remains open at end of input.
	tree.Save(st.ctxKeys, st.body)

	return tree
}

func parseLine(tree *Tree, st parserState, line string) parserState {
	switch {
	case line == "":
		return st

	case strings.HasPrefix(line, "!") || strings.HasPrefix(line, "#"):
		return st

	case st.newCtx && isSingleLineStatement(line):
		tree.Save(st.ctxKeys, st.body)
		st.mainCtxKey = nil
		st.ctxKeys = Path{line}
		st.body = nil
		tree.SaveSingleLine(st.ctxKeys)
		// Still at a boundary: consecutive single-line statements each
		// become their own context.
		st.newCtx = true
		return st

	case line == "end":
		tree.Save(st.ctxKeys, st.body)
		st.newCtx = true
		st.mainCtxKey = nil
		st.ctxKeys = nil
		st.body = nil
		return st

	case line == "exit-address-family" || line == "exit":
		// Without a pending parent this exit belongs to the transparent
		// "address-family ipv4 unicast" block and is a no-op.
		if len(st.mainCtxKey) > 0 {
			tree.Save(st.ctxKeys, st.body)
			st.ctxKeys = st.mainCtxKey
			st.mainCtxKey = nil
			st.body = nil
		}
		return st

	case st.newCtx:
		if len(st.mainCtxKey) == 0 {
			st.ctxKeys = Path{line}
		} else {
			st.ctxKeys = st.mainCtxKey
			st.mainCtxKey = nil
		}
		st.body = nil
		st.newCtx = false
		return st

	case strings.Contains(line, "address-family "):
		st.mainCtxKey = nil

		// The daemon elides "address-family ipv4 unicast" in its own
		// output, so treat it as transparent: statements after it fold
		// into the parent context.
		if line != "address-family ipv4 unicast" {
			tree.Save(st.ctxKeys, st.body)
			st.body = nil
			st.mainCtxKey = st.ctxKeys

			if line == "address-family ipv6" {
				st.ctxKeys = st.ctxKeys.Child("address-family ipv6 unicast")
			} else {
				st.ctxKeys = st.ctxKeys.Child(line)
			}
		}
		return st

	default:
		st.body = append(st.body, line)
		return st
	}
}
