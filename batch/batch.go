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

// Package batch provides chunked traversal over syntax trees.
//
// Instead of dispatching a callback per node, a batch traversal collects
// node handles into fixed-size chunks, optionally grouped by kind, and
// dispatches per chunk. This changes only dispatch granularity: every
// reachable node is still delivered exactly once.
package batch

import (
	"golang.org/x/sync/errgroup"

	"github.com/sylphxltd/syntree"
	"github.com/sylphxltd/syntree/walk"
)

// DefaultSize is the default chunk size, sized so a chunk of node handles
// stays cache-friendly.
const DefaultSize = 16

// Batch is one chunk of nodes delivered to a handler.
type Batch struct {
	// The shared kind of every node in the batch. Empty unless the
	// traversal grouped by kind.
	Kind string

	// The nodes, in pre-order within their group.
	Nodes []syntree.Node
}

// Options tunes batch collection.
type Options struct {
	// Size is the maximum number of nodes per batch. Zero means
	// [DefaultSize].
	Size int

	// GroupByKind collects all nodes of one kind into consecutive batches
	// before moving to the next kind. Grouping only: there is no ordering
	// guarantee across kinds.
	GroupByKind bool
}

// Collect gathers every reachable node of t into batches.
func Collect(t *syntree.Tree, opts Options) []Batch {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}

	if !opts.GroupByKind {
		return chunk("", preorder(t), size)
	}

	// Group by kind, keeping pre-order within each group and first-seen
	// order across groups.
	var order []string
	groups := map[string][]syntree.Node{}
	for _, n := range preorder(t) {
		kind := n.Kind()
		if _, ok := groups[kind]; !ok {
			order = append(order, kind)
		}
		groups[kind] = append(groups[kind], n)
	}

	var out []Batch
	for _, kind := range order {
		out = append(out, chunk(kind, groups[kind], size)...)
	}
	return out
}

// ForEach collects batches and hands each to fn in turn, stopping at the
// first error.
func ForEach(t *syntree.Tree, opts Options, fn func(Batch) error) error {
	for _, b := range Collect(t, opts) {
		if err := fn(b); err != nil {
			return err
		}
	}
	return nil
}

// ForEachParallel is like [ForEach], but dispatches batches concurrently and
// waits for all of them. The first error, if any, is returned.
//
// The handler must treat the tree as read-only: the tree itself is not
// synchronized, and handlers run on multiple goroutines.
func ForEachParallel(t *syntree.Tree, opts Options, fn func(Batch) error) error {
	var group errgroup.Group
	for _, b := range Collect(t, opts) {
		group.Go(func() error { return fn(b) })
	}
	return group.Wait()
}

func preorder(t *syntree.Tree) []syntree.Node {
	var nodes []syntree.Node
	walk.Tree(t, walk.Visitor{
		Enter: func(c walk.Cursor) walk.Action {
			nodes = append(nodes, c.Node)
			return walk.Continue
		},
	}, walk.Options{})
	return nodes
}

func chunk(kind string, nodes []syntree.Node, size int) []Batch {
	var out []Batch
	for len(nodes) > 0 {
		n := min(size, len(nodes))
		out = append(out, Batch{Kind: kind, Nodes: nodes[:n]})
		nodes = nodes[n:]
	}
	return out
}
