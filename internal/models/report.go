package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Spacer is repeated once per nesting level when rendering.
const Spacer = "  | "

const PathSeparator = "."

// Report is a node of the result tree. A node without children is a leaf and
// reports its own status; a node with children is a branch whose status is
// derived from its leaves, the stored status of a branch is never rendered.
type Report struct {
	Name     string
	children []*Report
	status   Status
}

func NewReport(name string) *Report {
	return &Report{Name: name, status: StatusPending}
}

// AddChild appends child and returns the parent for chaining.
func (r *Report) AddChild(child *Report) *Report {
	r.children = append(r.children, child)
	return r
}

// SetStatus sets the leaf status and returns the node for chaining.
func (r *Report) SetStatus(status Status) *Report {
	r.status = status
	return r
}

func (r *Report) Children() []*Report {
	return r.children
}

func (r *Report) IsLeaf() bool {
	return len(r.children) == 0
}

// AllIs reports whether every leaf below r (or r itself when it is a leaf) has status.
func (r *Report) AllIs(status Status) bool {
	if r.IsLeaf() {
		return r.status == status
	}
	for _, child := range r.children {
		if !child.AllIs(status) {
			return false
		}
	}
	return true
}

func (r *Report) anyIs(status Status) bool {
	if r.IsLeaf() {
		return r.status == status
	}
	for _, child := range r.children {
		if child.anyIs(status) {
			return true
		}
	}
	return false
}

// Status is the effective status: a leaf's own status, or for a branch Pass
// when every leaf passed, Fail when any leaf failed, Pending otherwise.
func (r *Report) Status() Status {
	switch {
	case r.IsLeaf():
		return r.status
	case r.AllIs(StatusPass):
		return StatusPass
	case r.anyIs(StatusFail):
		return StatusFail
	default:
		return StatusPending
	}
}

// LeafCount counts leaf descendants; a leaf counts itself.
func (r *Report) LeafCount() int {
	if r.IsLeaf() {
		return 1
	}
	total := 0
	for _, child := range r.children {
		total += child.LeafCount()
	}
	return total
}

func (r *Report) Height() int {
	if r.IsLeaf() {
		return 0
	}
	tallest := 0
	for _, child := range r.children {
		tallest = max(tallest, child.Height())
	}
	return 1 + tallest
}

// ChildByName returns the last direct child called name, or nil.
func (r *Report) ChildByName(name string) *Report {
	var found *Report
	for _, child := range r.children {
		if child.Name == name {
			found = child
		}
	}
	return found
}

// ChildByPath walks a dot-delimited path, creating missing segments as
// pending nodes. Repeated calls with the same path create nothing new.
func (r *Report) ChildByPath(path string) *Report {
	target := r
	for _, name := range strings.Split(path, PathSeparator) {
		node := target.ChildByName(name)
		if node == nil {
			node = NewReport(name)
			target.AddChild(node)
		}
		target = node
	}
	return target
}

// Walk calls fn for every leaf below r with its dotted path relative to r.
func (r *Report) Walk(fn func(path string, leaf *Report)) {
	r.walk("", fn)
}

func (r *Report) walk(prefix string, fn func(path string, leaf *Report)) {
	for _, child := range r.children {
		path := child.Name
		if prefix != "" {
			path = prefix + PathSeparator + child.Name
		}
		if child.IsLeaf() {
			fn(path, child)
			continue
		}
		child.walk(path, fn)
	}
}

func (r *Report) Lines() []string {
	return r.ToLines(0)
}

func (r *Report) ToLines(indentation int) []string {
	indent := strings.Repeat(Spacer, indentation)

	if r.IsLeaf() {
		return []string{fmt.Sprintf("%s%s: %s", indent, r.Name, r.status)}
	}

	if r.AllIs(StatusPass) {
		return []string{fmt.Sprintf("%s%s: %d %s", indent, r.Name, r.LeafCount(), StatusPass)}
	}

	lines := []string{indent + r.Name + "/"}
	for _, child := range r.sortedChildren() {
		lines = append(lines, child.ToLines(indentation+1)...)
	}
	return lines
}

func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// sortedChildren orders a copy of the children: folded subtrees first, then
// shorter before taller, then leaves by Pass < Fail < Pending, then by name.
func (r *Report) sortedChildren() []*Report {
	children := slices.Clone(r.children)
	slices.SortStableFunc(children, func(a, b *Report) int {
		if c := cmp.Compare(a.sortFailing(), b.sortFailing()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Height(), b.Height()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.sortRank(), b.sortRank()); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return children
}

func (r *Report) sortFailing() int {
	if r.AllIs(StatusPass) {
		return 0
	}
	return 1
}

// Branches share the pending rank so that equal-height branches fall through to name order.
func (r *Report) sortRank() int {
	if r.IsLeaf() {
		return r.status.rank()
	}
	return StatusPending.rank()
}
