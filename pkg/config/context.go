// Package config models a routing daemon configuration as an ordered
// collection of nested contexts, parsed from the marked text that vtysh
// produces. A context is a block such as:
//
//	!
//	interface swp3
//	 description swp3 -> r8's swp1
//	 ipv6 nd suppress-ra
//	 link-detect
//	!
//
// or a single-line statement such as "ip forwarding". The first line of a
// block becomes its key, so "router bgp 10" keys the non-address-family
// part of bgp and ["router bgp 10", "address-family ipv6 unicast"] keys
// the subcontext.
package config

import "strings"

// Path is the ordered key sequence identifying a context. A length-1
// path is a top-level context; subcontexts append their own key. Paths
// are treated as immutable values and never mutated in place.
type Path []string

// Key returns a string form usable as a map key. Config lines never
// contain newlines, so joining on one preserves equality.
func (p Path) Key() string {
	return strings.Join(p, "\n")
}

// Last returns the final path segment, or "" for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Child returns a new path with key appended, leaving p untouched.
func (p Path) Child(key string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, key)
}

// Context is one configuration block: its identifying path and its body
// lines in file order. A membership set over the body backs O(1)
// existence checks during diffing.
type Context struct {
	Keys  Path
	Lines []string

	lineSet    map[string]bool
	singleLine bool
}

// NewContext creates a context for keys with the given body lines.
func NewContext(keys Path, lines []string) *Context {
	ctx := &Context{
		Keys:    keys,
		lineSet: make(map[string]bool),
	}
	ctx.AddLines(lines)
	return ctx
}

// AddLines appends body lines, keeping the membership set in sync.
// Duplicates stay in Lines; the set collapses them.
func (c *Context) AddLines(lines []string) {
	c.Lines = append(c.Lines, lines...)
	for _, line := range lines {
		c.lineSet[line] = true
	}
}

// Has reports whether line exists anywhere in this context's body.
func (c *Context) Has(line string) bool {
	return c.lineSet[line]
}

// SingleLine reports whether this context is a single-line top-level
// statement ("ip forwarding", "hostname r1", ...) rather than a block.
func (c *Context) SingleLine() bool {
	return c.singleLine
}

// Tree is an ordered mapping from Path to Context, insertion order
// being the order contexts were first seen during parsing. Re-seeing a
// path merges lines into the existing context instead of duplicating it.
type Tree struct {
	order    []string
	contexts map[string]*Context

	sourceLines []string
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{contexts: make(map[string]*Context)}
}

// Save records keys as a context holding lines. An empty key is
// ignored. A key seen before has lines appended to it; a key with no
// lines is still registered, since an empty block ("router ospf" with
// nothing configured yet) is meaningful to the differ.
func (t *Tree) Save(keys Path, lines []string) {
	t.save(keys, lines, false)
}

// SaveSingleLine registers a single-line statement context.
func (t *Tree) SaveSingleLine(keys Path) {
	t.save(keys, nil, true)
}

func (t *Tree) save(keys Path, lines []string, singleLine bool) {
	if len(keys) == 0 {
		return
	}

	key := keys.Key()
	if ctx, ok := t.contexts[key]; ok {
		ctx.AddLines(lines)
		return
	}

	ctx := NewContext(keys, lines)
	ctx.singleLine = singleLine
	t.contexts[key] = ctx
	t.order = append(t.order, key)
}

// Get returns the context for keys, if present.
func (t *Tree) Get(keys Path) (*Context, bool) {
	ctx, ok := t.contexts[keys.Key()]
	return ctx, ok
}

// Has reports whether keys names a context in this tree.
func (t *Tree) Has(keys Path) bool {
	_, ok := t.contexts[keys.Key()]
	return ok
}

// Contexts returns all contexts in insertion order.
func (t *Tree) Contexts() []*Context {
	out := make([]*Context, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.contexts[key])
	}
	return out
}

// Len returns the number of contexts.
func (t *Tree) Len() int {
	return len(t.order)
}

// Text returns the source lines the tree was parsed from, joined with
// newlines. Used for logging the full configuration per pass.
func (t *Tree) Text() string {
	return strings.Join(t.sourceLines, "\n")
}
