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

// Package query provides a rebuildable kind-to-nodes index over a syntax
// tree.
//
// An [Index] is a snapshot: it optimizes read-heavy, mutation-rare access
// and goes stale the moment the tree is mutated. Staleness is observable via
// [Index.Stale], but the index never rebuilds itself.
package query

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/btree"

	"github.com/sylphxltd/syntree"
	"github.com/sylphxltd/syntree/internal/interval"
	"github.com/sylphxltd/syntree/walk"
)

// Index maps kind tags to the reachable nodes carrying them.
type Index struct {
	tree    *syntree.Tree
	version uint64
	built   bool

	kinds btree.Map[string, []syntree.ID]

	// Spans of the root's direct children, for position lookup.
	spans interval.Map[int, syntree.ID]
}

// New returns an unbuilt index over t. Call [Index.Build] before querying.
func New(t *syntree.Tree) *Index {
	return &Index{tree: t}
}

// Build populates the index with one pre-order traversal of the tree,
// replacing any previous contents.
//
// Building twice with no intervening mutation yields identical results.
func (ix *Index) Build() {
	ix.kinds = btree.Map[string, []syntree.ID]{}
	ix.spans = interval.Map[int, syntree.ID]{}

	walk.Tree(ix.tree, walk.Visitor{
		Enter: func(c walk.Cursor) walk.Action {
			kind := c.Node.Kind()
			ids, _ := ix.kinds.Get(kind)
			ix.kinds.Set(kind, append(ids, c.Node.ID()))
			return walk.Continue
		},
	}, walk.Options{})

	for _, child := range ix.tree.Root().Children() {
		if span := child.Span(); !span.IsZero() {
			// Overlapping or unordered spans violate the front-end contract;
			// position lookup just degrades for them.
			ix.spans.Insert(span.Start.Offset, span.End.Offset, child.ID())
		}
	}

	ix.version = ix.tree.Version()
	ix.built = true
}

// Stale reports whether the tree has been mutated since the last [Index.Build].
func (ix *Index) Stale() bool {
	return !ix.built || ix.version != ix.tree.Version()
}

// Query returns every indexed node of the given kind, in build-time
// traversal order. Unknown kinds yield nil.
func (ix *Index) Query(kind string) []syntree.Node {
	ids, _ := ix.kinds.Get(kind)
	return ix.nodes(ids)
}

// Glob returns every indexed node whose kind tag matches the given
// doublestar pattern, e.g. "md/*" for hierarchical tags. Kinds are matched
// in lexical order; nodes within one kind keep build order.
func (ix *Index) Glob(pattern string) ([]syntree.Node, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	var out []syntree.Node
	var iterErr error
	ix.kinds.Scan(func(kind string, ids []syntree.ID) bool {
		ok, err := doublestar.Match(pattern, kind)
		if err != nil {
			iterErr = err
			return false
		}
		if ok {
			out = append(out, ix.nodes(ids)...)
		}
		return true
	})
	return out, iterErr
}

// Kinds returns every kind tag present at build time, in lexical order.
func (ix *Index) Kinds() []string {
	out := make([]string, 0, ix.kinds.Len())
	ix.kinds.Scan(func(kind string, _ []syntree.ID) bool {
		out = append(out, kind)
		return true
	})
	return out
}

// At returns the innermost indexed node whose span contains the given byte
// offset, or the root if only it contains the offset, or the zero node.
func (ix *Index) At(offset int) syntree.Node {
	var found syntree.Node
	if iv := ix.spans.At(offset); iv.Value != nil {
		found = ix.tree.Node(*iv.Value)
	}
	if found.IsZero() {
		if ix.tree.Root().Span().Contains(offset) {
			return ix.tree.Root()
		}
		return syntree.Node{}
	}

	// Descend while some child still contains the offset. Sibling spans are
	// monotonic per the front-end contract, so the first hit is the only one.
	for {
		next := syntree.Node{}
		for _, child := range found.Children() {
			if child.Span().Contains(offset) {
				next = child
				break
			}
		}
		if next.IsZero() {
			return found
		}
		found = next
	}
}

func (ix *Index) nodes(ids []syntree.ID) []syntree.Node {
	if len(ids) == 0 {
		return nil
	}
	out := make([]syntree.Node, 0, len(ids))
	for _, id := range ids {
		if n := ix.tree.Node(id); !n.IsZero() {
			out = append(out, n)
		}
	}
	return out
}
