// Package cfgtree implements the leftmost-derivation parse tree shared by
// the interactive derivation driver and CYK witness reconstruction
// (spec.md §4.2): a rooted ordered tree with branching, undo, and
// derivation-extraction operations.
package cfgtree

import (
	"fmt"
	"strings"

	"github.com/dekarrin/cfgkit/internal/cfg"
)

// NodeType distinguishes a node carrying a grammar Letter from a purely
// structural node (the root, or an epsilon terminator).
type NodeType int

const (
	// Letter nodes carry a cfg.Letter and are the only nodes counted by
	// Leaves/VariableLeaves.
	LetterNode NodeType = iota
	// Meta nodes carry only a display name: the root, and epsilon
	// terminators.
	MetaNode
)

const rootName = "root"
const epsilonName = "ε"

// Node is one node of a Tree. Parent is a back-reference used only for
// traversal and detach-on-undo; it never owns its parent, matching
// spec.md §9's "parent pointers must never own" note.
type Node struct {
	Type     NodeType
	Name     string
	Letter   cfg.Letter
	Parent   *Node
	Children []*Node
}

func newMetaNode(name string, parent *Node) *Node {
	n := &Node{Type: MetaNode, Name: name, Parent: parent}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	return n
}

func newLetterNode(l cfg.Letter, parent *Node) *Node {
	n := &Node{Type: LetterNode, Name: l.Name, Letter: l, Parent: parent}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	return n
}

// Tree is a leftmost-derivation parse tree rooted at a META node named
// "root". It is mutable and is owned by exactly one driver at a time
// (spec.md §5).
type Tree struct {
	Root *Node

	// lastAdded is the undo log: each successful BranchWord call with
	// log=true pushes the list of children it created. Undo pops this log
	// and detaches those children. It is the sole source of undo history;
	// the initial root expansion is never pushed here, so Undo can never
	// remove the root (spec.md §9).
	lastAdded [][]*Node
}

// New creates a Tree rooted at "root" and immediately branches the root to
// startWord. That initial expansion is not recorded on the undo stack.
func New(startWord cfg.Word) *Tree {
	t := &Tree{Root: &Node{Type: MetaNode, Name: rootName}}
	t.branchWord(t.Root, startWord, false)
	return t
}

// newWordNodes creates the child nodes for word under parent: a single
// epsilon terminator if word is empty, or one LetterNode per letter
// otherwise.
func newWordNodes(word cfg.Word, parent *Node) []*Node {
	if len(word) == 0 {
		return []*Node{newMetaNode(epsilonName, parent)}
	}
	nodes := make([]*Node, len(word))
	for i, l := range word {
		nodes[i] = newLetterNode(l, parent)
	}
	return nodes
}

// BranchWord appends children to node for each letter of word (or a single
// epsilon terminator if word is empty) and records the new children on the
// undo stack.
func (t *Tree) BranchWord(node *Node, word cfg.Word) {
	t.branchWord(node, word, true)
}

func (t *Tree) branchWord(node *Node, word cfg.Word, log bool) []*Node {
	children := newWordNodes(word, node)
	if log {
		t.lastAdded = append(t.lastAdded, children)
	}
	return children
}

// LastAdded returns the children created by the most recent logged
// BranchWord call, or nil if none has happened yet.
func (t *Tree) LastAdded() []*Node {
	if len(t.lastAdded) == 0 {
		return nil
	}
	return t.lastAdded[len(t.lastAdded)-1]
}

// Leaves returns the tree's LETTER leaves in preorder; META leaves
// (including epsilon terminators) are excluded.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if len(n.Children) == 0 {
			if n.Type == LetterNode {
				out = append(out, n)
			}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.Root)
	return out
}

// VariableLeaves returns the subset of Leaves whose letter is a variable.
func (t *Tree) VariableLeaves() []*Node {
	var out []*Node
	for _, n := range t.Leaves() {
		if n.Letter.Variable {
			out = append(out, n)
		}
	}
	return out
}

// Undo pops the last log entry and detaches those nodes. It returns an
// error if the log is empty.
func (t *Tree) Undo() error {
	if len(t.lastAdded) == 0 {
		return fmt.Errorf("cfgtree: nothing to undo")
	}
	newest := t.lastAdded[len(t.lastAdded)-1]
	t.lastAdded = t.lastAdded[:len(t.lastAdded)-1]
	for _, n := range newest {
		detach(n)
	}
	return nil
}

func detach(n *Node) {
	p := n.Parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// NodeDerivation returns the leftmost derivation as a sequence of
// node-lists: starting from the root's children, at each step the leftmost
// node with children is replaced in place by its children (flattening one
// level), terminating when no node has children. This yields n+1 snapshots
// for an n-step derivation.
func (t *Tree) NodeDerivation() [][]*Node {
	steps := [][]*Node{append([]*Node(nil), t.Root.Children...)}
	for {
		cur := steps[len(steps)-1]
		next, ok := expandFirstVariable(cur)
		if !ok {
			return steps
		}
		steps = append(steps, next)
	}
}

func expandFirstVariable(nodes []*Node) ([]*Node, bool) {
	for i, n := range nodes {
		if len(n.Children) != 0 {
			out := make([]*Node, 0, len(nodes)-1+len(n.Children))
			out = append(out, nodes[:i]...)
			out = append(out, n.Children...)
			out = append(out, nodes[i+1:]...)
			return out, true
		}
	}
	return nil, false
}

// LetterDerivation projects NodeDerivation's node-lists down to the
// sequence of Words they represent, keeping only LETTER nodes.
func (t *Tree) LetterDerivation() []cfg.Word {
	steps := t.NodeDerivation()
	out := make([]cfg.Word, len(steps))
	for i, nodes := range steps {
		var w cfg.Word
		for _, n := range nodes {
			if n.Type == LetterNode {
				w = append(w, n.Letter)
			}
		}
		out[i] = w
	}
	return out
}

// StrDerivation renders LetterDerivation as a single "w0 -> w1 -> ... -> wn"
// string.
func (t *Tree) StrDerivation() string {
	steps := t.LetterDerivation()
	parts := make([]string, len(steps))
	for i, w := range steps {
		parts[i] = w.String()
	}
	return strings.Join(parts, " -> ")
}

// IndexedState renders the tree's current leaves as a two-line string: the
// leaf names on top, and below them the left-to-right index of each
// variable leaf (terminal leaves get a blank label), used by the
// interactive UI (spec.md §4.2/§4.6).
func (t *Tree) IndexedState() string {
	leaves := t.Leaves()
	names := make([]string, len(leaves))
	labels := make([]string, len(leaves))
	varIndex := 0
	for i, n := range leaves {
		label := ""
		if n.Letter.Variable {
			label = fmt.Sprintf("%d", varIndex)
			varIndex++
		}
		width := len(n.Name)
		if len(label) > width {
			width = len(label)
		}
		names[i] = padLeft(n.Name, width)
		labels[i] = padLeft(label, width)
	}
	return strings.Join(names, " ") + "\n" + strings.Join(labels, " ")
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = " " + s
	}
	return s
}

// Show renders the whole tree as an indented outline, one node per line.
// Image rendering of trees is explicitly out of scope per spec.md §1.
func (t *Tree) Show() string {
	var sb strings.Builder
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		sb.WriteString(strings.Repeat("    ", depth))
		sb.WriteString(n.Name)
		sb.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(t.Root, 0)
	return strings.TrimRight(sb.String(), "\n")
}
