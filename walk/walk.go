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

// Package walk provides stateless traversal over syntax trees.
//
// One visitor contract serves three orders: pre-order, post-order, and
// breadth-first. Traversal never mutates the tree.
package walk

import (
	"slices"

	"github.com/sylphxltd/syntree"
)

// Order selects the order in which [Tree] visits nodes.
type Order int

const (
	// PreOrder visits a parent before its children, left to right.
	PreOrder Order = iota
	// PostOrder visits children, left to right, before their parent.
	PostOrder
	// BreadthFirst visits nodes level by level, starting at the root.
	BreadthFirst
)

// Action is a visitor's verdict on the subtree below the visited node.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// SkipChildren prunes the node's descendants. It has no effect in
	// post-order, where children are visited before their parent.
	SkipChildren
)

// Cursor is the context handed to visitor callbacks.
type Cursor struct {
	Node syntree.Node

	// Depth of the node below the traversal root; the root itself is 0.
	Depth int

	// IDs of the node's ancestors, outermost first. The slice remains valid
	// after the callback returns.
	Ancestors []syntree.ID
}

// Visitor is the callback contract for [Tree].
//
// Enter fires before a node's children in pre-order and breadth-first
// traversal; Leave fires after them in post-order. Kinds registers per-kind
// handlers keyed by kind tag, fired alongside Enter (or alongside Leave in
// post-order, where their action is ignored); unregistered kinds fall
// through. Any callback may be nil.
type Visitor struct {
	Enter func(Cursor) Action
	Leave func(Cursor)
	Kinds map[string]func(Cursor) Action
}

// Options tunes a traversal.
type Options struct {
	Order Order

	// MaxDepth bounds how deep the traversal descends; nodes deeper than
	// MaxDepth are not visited. Zero means unbounded.
	MaxDepth int

	// Filter excludes a node from visitation without mutating the tree. In
	// pre-order and breadth-first traversal the node's subtree is excluded
	// with it; in post-order only the node itself is.
	Filter func(syntree.Node) bool
}

// Tree walks t's reachable nodes with the given visitor.
func Tree(t *syntree.Tree, visitor Visitor, opts Options) {
	root := t.Root()
	switch opts.Order {
	case PostOrder:
		postorder(root, visitor, opts, Cursor{Node: root})
	case BreadthFirst:
		breadthFirst(root, visitor, opts)
	default:
		preorder(root, visitor, opts, Cursor{Node: root})
	}
}

func (v Visitor) enter(c Cursor) Action {
	action := Continue
	if v.Enter != nil {
		action = v.Enter(c)
	}
	if handler, ok := v.Kinds[c.Node.Kind()]; ok {
		if handler(c) == SkipChildren {
			action = SkipChildren
		}
	}
	return action
}

func (v Visitor) leave(c Cursor) {
	if v.Leave != nil {
		v.Leave(c)
	}
	if handler, ok := v.Kinds[c.Node.Kind()]; ok {
		handler(c)
	}
}

func preorder(n syntree.Node, v Visitor, opts Options, c Cursor) {
	if opts.Filter != nil && !opts.Filter(n) {
		return
	}
	if v.enter(c) == SkipChildren {
		return
	}
	if opts.MaxDepth > 0 && c.Depth >= opts.MaxDepth {
		return
	}

	ancestors := append(slices.Clip(c.Ancestors), n.ID())
	for i := range n.NumChildren() {
		child := n.Child(i)
		preorder(child, v, opts, Cursor{Node: child, Depth: c.Depth + 1, Ancestors: ancestors})
	}
}

func postorder(n syntree.Node, v Visitor, opts Options, c Cursor) {
	if opts.MaxDepth <= 0 || c.Depth < opts.MaxDepth {
		ancestors := append(slices.Clip(c.Ancestors), n.ID())
		for i := range n.NumChildren() {
			child := n.Child(i)
			postorder(child, v, opts, Cursor{Node: child, Depth: c.Depth + 1, Ancestors: ancestors})
		}
	}

	if opts.Filter != nil && !opts.Filter(n) {
		return
	}
	v.leave(c)
}

func breadthFirst(root syntree.Node, v Visitor, opts Options) {
	queue := []Cursor{{Node: root}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if opts.Filter != nil && !opts.Filter(c.Node) {
			continue
		}
		if v.enter(c) == SkipChildren {
			continue
		}
		if opts.MaxDepth > 0 && c.Depth >= opts.MaxDepth {
			continue
		}

		// Each enqueued child gets its own copy of the ancestor path.
		for i := range c.Node.NumChildren() {
			ancestors := make([]syntree.ID, 0, len(c.Ancestors)+1)
			ancestors = append(append(ancestors, c.Ancestors...), c.Node.ID())
			queue = append(queue, Cursor{
				Node:      c.Node.Child(i),
				Depth:     c.Depth + 1,
				Ancestors: ancestors,
			})
		}
	}
}

// Select returns, in pre-order, every reachable node for which pred returns
// true.
func Select(t *syntree.Tree, pred func(syntree.Node) bool) []syntree.Node {
	var out []syntree.Node
	Tree(t, Visitor{
		Enter: func(c Cursor) Action {
			if pred(c.Node) {
				out = append(out, c.Node)
			}
			return Continue
		},
	}, Options{})
	return out
}

// Find returns the first node, in pre-order, for which pred returns true, or
// the zero node if there is none.
func Find(t *syntree.Tree, pred func(syntree.Node) bool) syntree.Node {
	var found syntree.Node
	Tree(t, Visitor{
		Enter: func(c Cursor) Action {
			if !found.IsZero() {
				return SkipChildren
			}
			if pred(c.Node) {
				found = c.Node
				return SkipChildren
			}
			return Continue
		},
	}, Options{})
	return found
}

// SelectKind returns, in pre-order, every reachable node of the given kind.
func SelectKind(t *syntree.Tree, kind string) []syntree.Node {
	return Select(t, func(n syntree.Node) bool { return n.Kind() == kind })
}
