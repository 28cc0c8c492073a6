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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sylphxltd/syntree"
	"github.com/sylphxltd/syntree/walk"
)

func collectKinds(t *syntree.Tree, opts walk.Options) []string {
	var out []string
	for c := range walk.Nodes(t, opts) {
		out = append(out, c.Node.Kind())
	}
	return out
}

func TestNodesMatchesTree(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	for _, order := range []walk.Order{walk.PreOrder, walk.PostOrder, walk.BreadthFirst} {
		opts := walk.Options{Order: order}
		assert.Equal(kinds(tree, opts), collectKinds(tree, opts))
	}

	// Filter and depth bounds apply the same way they do in Tree.
	opts := walk.Options{MaxDepth: 2, Filter: func(n syntree.Node) bool { return n.Kind() != "b" }}
	assert.Equal(kinds(tree, opts), collectKinds(tree, opts))
}

func TestNodesEarlyBreak(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	var visited []string
	for c := range walk.Nodes(tree, walk.Options{}) {
		visited = append(visited, c.Node.Kind())
		if c.Node.Kind() == "a2" {
			break
		}
	}
	assert.Equal([]string{"root", "a", "a1", "a2"}, visited)

	visited = nil
	for c := range walk.Nodes(tree, walk.Options{Order: walk.BreadthFirst}) {
		visited = append(visited, c.Node.Kind())
		if c.Node.Kind() == "b" {
			break
		}
	}
	assert.Equal([]string{"root", "a", "b"}, visited)

	visited = nil
	for c := range walk.Nodes(tree, walk.Options{Order: walk.PostOrder}) {
		visited = append(visited, c.Node.Kind())
		if c.Node.Kind() == "a2" {
			break
		}
	}
	assert.Equal([]string{"a1", "a2x", "a2"}, visited)
}

func TestNodesReusable(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	tree := buildTree(t)

	seq := walk.Nodes(tree, walk.Options{})
	first := make([]string, 0, 7)
	for c := range seq {
		first = append(first, c.Node.Kind())
	}
	second := make([]string, 0, 7)
	for c := range seq {
		second = append(second, c.Node.Kind())
	}
	assert.Equal(first, second)
}
