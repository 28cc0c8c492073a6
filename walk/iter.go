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

package walk

import (
	"iter"
	"slices"

	"github.com/sylphxltd/syntree"
)

// Nodes returns an iterator over t's reachable nodes in the order opts
// selects. Breaking out of the range stops the traversal immediately, which
// [Tree] cannot do; Options.Filter and Options.MaxDepth apply as in [Tree].
//
// The returned sequence may be ranged over more than once.
func Nodes(t *syntree.Tree, opts Options) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		root := t.Root()
		switch opts.Order {
		case PostOrder:
			yieldPost(root, opts, Cursor{Node: root}, yield)
		case BreadthFirst:
			yieldBreadth(root, opts, yield)
		default:
			yieldPre(root, opts, Cursor{Node: root}, yield)
		}
	}
}

func yieldPre(n syntree.Node, opts Options, c Cursor, yield func(Cursor) bool) bool {
	if opts.Filter != nil && !opts.Filter(n) {
		return true
	}
	if !yield(c) {
		return false
	}
	if opts.MaxDepth > 0 && c.Depth >= opts.MaxDepth {
		return true
	}

	ancestors := append(slices.Clip(c.Ancestors), n.ID())
	for i := range n.NumChildren() {
		child := n.Child(i)
		if !yieldPre(child, opts, Cursor{Node: child, Depth: c.Depth + 1, Ancestors: ancestors}, yield) {
			return false
		}
	}
	return true
}

func yieldPost(n syntree.Node, opts Options, c Cursor, yield func(Cursor) bool) bool {
	if opts.MaxDepth <= 0 || c.Depth < opts.MaxDepth {
		ancestors := append(slices.Clip(c.Ancestors), n.ID())
		for i := range n.NumChildren() {
			child := n.Child(i)
			if !yieldPost(child, opts, Cursor{Node: child, Depth: c.Depth + 1, Ancestors: ancestors}, yield) {
				return false
			}
		}
	}

	if opts.Filter != nil && !opts.Filter(n) {
		return true
	}
	return yield(c)
}

func yieldBreadth(root syntree.Node, opts Options, yield func(Cursor) bool) {
	queue := []Cursor{{Node: root}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if opts.Filter != nil && !opts.Filter(c.Node) {
			continue
		}
		if !yield(c) {
			return
		}
		if opts.MaxDepth > 0 && c.Depth >= opts.MaxDepth {
			continue
		}

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
