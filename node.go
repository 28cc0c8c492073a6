// Copyright 2024-2026 SylphX Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntree

import (
	"fmt"
	"slices"

	"github.com/sylphxltd/syntree/internal/intern"
)

// ID is an integer handle for a node; it doubles as the node's index in its
// tree's arena. IDs are handed out densely in construction order and are
// stable for the life of the tree.
type ID int32

const (
	// Root is the ID of every tree's root node. It is assigned when the tree
	// is created and never reassigned.
	Root ID = 0

	// None marks the absence of a node, e.g. the parent of a detached node.
	None ID = -1
)

// String implements [fmt.Stringer].
func (id ID) String() string {
	if id == None {
		return "syntree.None"
	}
	return fmt.Sprintf("syntree.ID(%d)", int32(id))
}

// rawNode is a node's backing record in the arena.
type rawNode struct {
	kind     intern.ID
	parent   ID
	children []ID
	span     Span
	data     any
}

// Node is a handle to a node within a [Tree].
//
// Node carries its tree with it, so accessors need no extra arguments. The
// zero value of Node is the "zero node", denoting the absence of a node:
// every accessor on it returns a zero value, and every mutator is a no-op.
// Operations that reference an ID the tree has never handed out produce the
// zero node rather than failing, because partially-built trees are a normal
// state during construction.
type Node struct {
	tree *Tree
	id   ID
}

// IsZero reports whether this is the zero node.
func (n Node) IsZero() bool {
	return n.tree == nil
}

// ID returns this node's ID, disassociated from its tree.
func (n Node) ID() ID {
	if n.IsZero() {
		return None
	}
	return n.id
}

// Tree returns the tree this node belongs to, or nil for the zero node.
func (n Node) Tree() *Tree {
	return n.tree
}

// Kind returns this node's kind tag.
//
// Returns "" for the zero node; well-formed nodes never have an empty kind.
func (n Node) Kind() string {
	if n.IsZero() {
		return ""
	}
	return n.tree.kinds.Value(n.raw().kind)
}

// Parent returns this node's parent, or the zero node if detached or root.
func (n Node) Parent() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.tree.Node(n.raw().parent)
}

// NumChildren returns the number of children of this node.
func (n Node) NumChildren() int {
	if n.IsZero() {
		return 0
	}
	return len(n.raw().children)
}

// Child returns the i-th child of this node, or the zero node if i is out of
// range.
func (n Node) Child(i int) Node {
	if n.IsZero() {
		return Node{}
	}
	children := n.raw().children
	if i < 0 || i >= len(children) {
		return Node{}
	}
	return n.tree.Node(children[i])
}

// ChildIDs returns a copy of this node's child IDs, in document order.
func (n Node) ChildIDs() []ID {
	if n.IsZero() {
		return nil
	}
	return slices.Clone(n.raw().children)
}

// Children returns this node's children, in document order.
func (n Node) Children() []Node {
	if n.IsZero() || len(n.raw().children) == 0 {
		return nil
	}
	children := make([]Node, len(n.raw().children))
	for i, id := range n.raw().children {
		children[i] = n.tree.Node(id)
	}
	return children
}

// Index returns this node's position among its parent's children, or -1 for
// detached nodes, the root, and the zero node.
func (n Node) Index() int {
	parent := n.Parent()
	if parent.IsZero() {
		return -1
	}
	return slices.Index(parent.raw().children, n.id)
}

// Span returns this node's source range. The zero span means the node has no
// recorded range.
func (n Node) Span() Span {
	if n.IsZero() {
		return Span{}
	}
	return n.raw().span
}

// Data returns this node's language-specific payload.
func (n Node) Data() any {
	if n.IsZero() {
		return nil
	}
	return n.raw().data
}

// Text returns the slice of the tree's source text covered by this node's
// span, or "" if the node has no span.
func (n Node) Text() string {
	span := n.Span()
	if span.IsZero() {
		return ""
	}
	source := n.tree.source
	start := min(max(span.Start.Offset, 0), len(source))
	end := min(max(span.End.Offset, start), len(source))
	return source[start:end]
}

// SetKind replaces this node's kind tag.
func (n Node) SetKind(kind string) {
	if n.IsZero() {
		return
	}
	n.raw().kind = n.tree.kinds.Intern(kind)
	n.tree.touch()
}

// SetSpan replaces this node's source range.
func (n Node) SetSpan(span Span) {
	if n.IsZero() {
		return
	}
	n.raw().span = span
	n.tree.touch()
}

// SetData replaces this node's language-specific payload.
func (n Node) SetData(data any) {
	if n.IsZero() {
		return
	}
	n.raw().data = data
	n.tree.touch()
}

// AppendChild creates a new node of the given kind as this node's last
// child and returns it.
func (n Node) AppendChild(kind string) Node {
	if n.IsZero() {
		return Node{}
	}
	return n.tree.Append(n.id, kind)
}

// String implements [fmt.Stringer].
func (n Node) String() string {
	if n.IsZero() {
		return "<zero node>"
	}
	return fmt.Sprintf("%s@%d", n.Kind(), int32(n.id))
}

func (n Node) raw() *rawNode {
	return n.tree.nodes.At(int(n.id))
}
