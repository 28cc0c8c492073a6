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

package walk_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sylphxltd/syntree"
	"github.com/sylphxltd/syntree/walk"
)

// buildTree constructs:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	│       └── a2x
//	└── b
//	    └── b1
func buildTree(t *testing.T) *syntree.Tree {
	t.Helper()
	tree := syntree.New("test", "")
	a := tree.Append(syntree.Root, "a")
	a.AppendChild("a1")
	a2 := a.AppendChild("a2")
	a2.AppendChild("a2x")
	b := tree.Append(syntree.Root, "b")
	b.AppendChild("b1")
	return tree
}

func kinds(t *syntree.Tree, opts walk.Options) []string {
	var out []string
	record := func(c walk.Cursor) walk.Action {
		out = append(out, c.Node.Kind())
		return walk.Continue
	}
	v := walk.Visitor{Enter: record}
	if opts.Order == walk.PostOrder {
		v = walk.Visitor{Leave: func(c walk.Cursor) { out = append(out, c.Node.Kind()) }}
	}
	walk.Tree(t, v, opts)
	return out
}

func TestOrders(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	pre := kinds(tree, walk.Options{Order: walk.PreOrder})
	post := kinds(tree, walk.Options{Order: walk.PostOrder})
	bfs := kinds(tree, walk.Options{Order: walk.BreadthFirst})

	assert.Equal([]string{"root", "a", "a1", "a2", "a2x", "b", "b1"}, pre)
	assert.Equal([]string{"a1", "a2x", "a2", "a", "b1", "b", "root"}, post)
	assert.Equal([]string{"root", "a", "b", "a1", "a2", "b1", "a2x"}, bfs)

	// Every order visits the same set, each node exactly once.
	for _, order := range [][]string{post, bfs} {
		sorted := slices.Clone(order)
		slices.Sort(sorted)
		want := slices.Clone(pre)
		slices.Sort(want)
		assert.Equal(want, sorted)
	}
}

func TestSkipChildren(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	var visited []string
	walk.Tree(tree, walk.Visitor{
		Enter: func(c walk.Cursor) walk.Action {
			visited = append(visited, c.Node.Kind())
			if c.Node.Kind() == "a" {
				return walk.SkipChildren
			}
			return walk.Continue
		},
	}, walk.Options{})
	assert.Equal([]string{"root", "a", "b", "b1"}, visited)

	// A kind handler can prune, too.
	visited = nil
	walk.Tree(tree, walk.Visitor{
		Enter: func(c walk.Cursor) walk.Action {
			visited = append(visited, c.Node.Kind())
			return walk.Continue
		},
		Kinds: map[string]func(walk.Cursor) walk.Action{
			"a2": func(walk.Cursor) walk.Action { return walk.SkipChildren },
		},
	}, walk.Options{})
	assert.Equal([]string{"root", "a", "a1", "a2", "b", "b1"}, visited)
}

func TestMaxDepth(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	assert.Equal(
		[]string{"root", "a", "b"},
		kinds(tree, walk.Options{MaxDepth: 1}),
	)
	assert.Equal(
		[]string{"root", "a", "b", "a1", "a2", "b1"},
		kinds(tree, walk.Options{Order: walk.BreadthFirst, MaxDepth: 2}),
	)
	assert.Equal(
		[]string{"a1", "a2", "a", "b1", "b", "root"},
		kinds(tree, walk.Options{Order: walk.PostOrder, MaxDepth: 2}),
	)
}

func TestFilter(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	notA := func(n syntree.Node) bool { return n.Kind() != "a" }

	// Pre-order and BFS exclude the subtree.
	assert.Equal(
		[]string{"root", "b", "b1"},
		kinds(tree, walk.Options{Filter: notA}),
	)
	assert.Equal(
		[]string{"root", "b", "b1"},
		kinds(tree, walk.Options{Order: walk.BreadthFirst, Filter: notA}),
	)

	// Post-order excludes only the node itself.
	assert.Equal(
		[]string{"a1", "a2x", "a2", "b1", "b", "root"},
		kinds(tree, walk.Options{Order: walk.PostOrder, Filter: notA}),
	)
}

func TestAncestors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	paths := map[string][]syntree.ID{}
	for _, order := range []walk.Order{walk.PreOrder, walk.BreadthFirst} {
		walk.Tree(tree, walk.Visitor{
			Enter: func(c walk.Cursor) walk.Action {
				if c.Node.Kind() == "a2x" {
					paths[c.Node.Kind()] = slices.Clone(c.Ancestors)
					assert.Equal(3, c.Depth)
				}
				return walk.Continue
			},
		}, walk.Options{Order: order})

		a2 := walk.Find(tree, func(n syntree.Node) bool { return n.Kind() == "a2" })
		assert.Equal(
			[]syntree.ID{syntree.Root, a2.Parent().ID(), a2.ID()},
			paths["a2x"],
		)
	}
}

func TestVisitedExactlyOnceAfterMutation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	// Unlinked nodes are unreachable and must not be visited.
	a2 := walk.Find(tree, func(n syntree.Node) bool { return n.Kind() == "a2" })
	tree.Remove(a2.ID())

	seen := map[syntree.ID]int{}
	walk.Tree(tree, walk.Visitor{
		Enter: func(c walk.Cursor) walk.Action {
			seen[c.Node.ID()]++
			return walk.Continue
		},
	}, walk.Options{})

	assert.Len(seen, 5)
	for id, count := range seen {
		assert.Equal(1, count, "node %v visited more than once", id)
	}
	assert.NotContains(seen, a2.ID())
}

func TestSelectFind(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	leaves := walk.Select(tree, func(n syntree.Node) bool { return n.NumChildren() == 0 })
	var got []string
	for _, n := range leaves {
		got = append(got, n.Kind())
	}
	assert.Equal([]string{"a1", "a2x", "b1"}, got)

	assert.Equal("b1", walk.Find(tree, func(n syntree.Node) bool { return n.Kind() == "b1" }).Kind())
	assert.True(walk.Find(tree, func(n syntree.Node) bool { return false }).IsZero())

	byKind := walk.SelectKind(tree, "a2")
	assert.Len(byKind, 1)
	assert.Equal("a2", byKind[0].Kind())
}
