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

package zipper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylphxltd/syntree"
	"github.com/sylphxltd/syntree/zipper"
)

// buildTree constructs:
//
//	root
//	├── a
//	│   └── a1
//	├── b
//	└── c
func buildTree(t *testing.T) *syntree.Tree {
	t.Helper()
	tree := syntree.New("test", "")
	a := tree.Append(syntree.Root, "a")
	a.AppendChild("a1")
	tree.Append(syntree.Root, "b")
	tree.Append(syntree.Root, "c")
	return tree
}

func TestNavigation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	tree := buildTree(t)

	z := zipper.New(tree)
	assert.True(z.AtRoot())
	assert.Equal("root", z.Node().Kind())

	down, ok := z.Down()
	require.True(ok)
	assert.Equal("a", down.Node().Kind())
	assert.Equal(1, down.Depth())

	right, ok := down.Right()
	require.True(ok)
	assert.Equal("b", right.Node().Kind())

	// The old zipper is untouched.
	assert.Equal("a", down.Node().Kind())

	right2, ok := right.Right()
	require.True(ok)
	assert.Equal("c", right2.Node().Kind())
	_, ok = right2.Right()
	assert.False(ok, "rightmost sibling")

	inner, ok := down.Down()
	require.True(ok)
	assert.Equal("a1", inner.Node().Kind())
	assert.Equal(2, inner.Depth())
	_, ok = inner.Down()
	assert.False(ok, "leaf")
	_, ok = inner.Left()
	assert.False(ok, "only child")

	assert.Equal("root", inner.Root().Node().Kind())
	_, ok = z.Up()
	assert.False(ok, "root has no parent")
	_, ok = z.Left()
	assert.False(ok)
}

func TestRoundTrips(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	tree := buildTree(t)

	z, ok := zipper.New(tree).Down()
	require.True(ok)

	// up ∘ down is the identity on any focus with a child.
	down, ok := z.Down()
	require.True(ok)
	up, ok := down.Up()
	require.True(ok)
	assert.Equal(z, up)

	// left ∘ right is the identity whenever a right sibling exists.
	right, ok := z.Right()
	require.True(ok)
	left, ok := right.Left()
	require.True(ok)
	assert.Equal(z, left)
}

func TestCrumbs(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	tree := buildTree(t)

	z, ok := zipper.New(tree).Down()
	require.True(ok)
	z, ok = z.Right()
	require.True(ok)

	crumbs := z.Path()
	require.Len(crumbs, 1)
	c := crumbs[0]
	assert.Equal(syntree.Root, c.Parent)
	assert.Equal(1, c.Index)
	require.Len(c.Left, 1)
	require.Len(c.Right, 1)
	assert.Equal("a", tree.Node(c.Left[0]).Kind())
	assert.Equal("c", tree.Node(c.Right[0]).Kind())
}

func TestEditReplace(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	tree := buildTree(t)

	z, ok := zipper.New(tree).Down()
	require.True(ok)

	z.Edit(func(n syntree.Node) { n.SetData(42) })
	z.Replace("alpha")

	n := tree.Root().Child(0)
	assert.Equal("alpha", n.Kind())
	assert.Equal(42, n.Data())
	assert.Equal(1, n.NumChildren(), "children survive Replace")
}

func TestInsert(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	tree := buildTree(t)

	z, ok := zipper.New(tree).Down()
	require.True(ok)
	z, ok = z.Right() // focus b
	require.True(ok)

	z, n := z.InsertLeft("x")
	require.False(n.IsZero())
	z, m := z.InsertRight("y")
	require.False(m.IsZero())

	// Tree and crumbs agree on the sibling order.
	var got []string
	for _, child := range tree.Root().Children() {
		got = append(got, child.Kind())
	}
	assert.Equal([]string{"a", "x", "b", "y", "c"}, got)
	assert.Equal("b", z.Node().Kind())

	c := z.Path()[0]
	assert.Equal(2, c.Index)
	assert.Equal([]syntree.ID{tree.Root().ChildIDs()[0], n.ID()}, c.Left)
	assert.Equal([]syntree.ID{m.ID(), tree.Root().ChildIDs()[4]}, c.Right)

	// Sibling motion still works across the fresh crumbs.
	lz, ok := z.Left()
	require.True(ok)
	assert.Equal("x", lz.Node().Kind())
	rz, ok := z.Right()
	require.True(ok)
	assert.Equal("y", rz.Node().Kind())

	// Inserting next to the root is rejected.
	_, bad := zipper.New(tree).InsertLeft("nope")
	assert.True(bad.IsZero())
}

func TestAppendChild(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)
	tree := buildTree(t)

	z, ok := zipper.New(tree).Down()
	require.True(ok)

	n := z.AppendChild("a2")
	require.False(n.IsZero())
	assert.Equal([]string{"a1", "a2"}, []string{
		z.Node().Child(0).Kind(),
		z.Node().Child(1).Kind(),
	})

	// The receiver is still a valid cursor.
	down, ok := z.Down()
	require.True(ok)
	assert.Equal("a1", down.Node().Kind())
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("focus moves right", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)
		require := require.New(t)
		tree := buildTree(t)
		z, _ := zipper.New(tree).Down()

		z, err := z.Remove()
		require.NoError(err)
		assert.Equal("b", z.Node().Kind())

		var got []string
		for _, child := range tree.Root().Children() {
			got = append(got, child.Kind())
		}
		assert.Equal([]string{"b", "c"}, got)
	})

	t.Run("focus moves left at the right edge", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)
		require := require.New(t)
		tree := buildTree(t)
		z, _ := zipper.New(tree).Down()
		z, _ = z.Right()
		z, _ = z.Right() // focus c

		z, err := z.Remove()
		require.NoError(err)
		assert.Equal("b", z.Node().Kind())

		// And crumbs still mirror the tree.
		z, err = z.Remove()
		require.NoError(err)
		assert.Equal("a", z.Node().Kind())
		z, err = z.Remove()
		require.NoError(err)
		assert.True(z.AtRoot(), "last sibling removal focuses the parent")
		assert.Equal(0, tree.Root().NumChildren())
	})

	t.Run("root is protected", func(t *testing.T) {
		t.Parallel()
		tree := buildTree(t)
		_, err := zipper.New(tree).Remove()
		assert.ErrorIs(t, err, zipper.ErrRemoveRoot)
	})
}
