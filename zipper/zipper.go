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

// Package zipper provides a breadcrumb cursor over syntax trees.
//
// A [Zipper] is a value: every motion returns a new zipper and leaves the
// old one intact, so positions can be kept, compared, and backtracked
// without re-walking from the root. Edits made through a zipper mutate the
// underlying tree directly; only the cursor position is persistent.
//
// A zipper borrows its tree for one navigation session. Mutating the tree
// through anything other than the zipper invalidates its breadcrumbs.
package zipper

import (
	"errors"
	"slices"

	"github.com/sylphxltd/syntree"
)

// ErrRemoveRoot is returned by [Zipper.Remove] when focused on the root.
var ErrRemoveRoot = errors.New("zipper: cannot remove the root node")

// Crumb is one entry of a zipper's path: the parent of the focus and the
// focus's siblings, split around it for O(1) sibling motion.
type Crumb struct {
	// The parent of the focused node.
	Parent syntree.ID

	// The focus's position among its parent's children.
	Index int

	// Siblings before the focus (in document order) and after it.
	Left, Right []syntree.ID
}

// Zipper is a cursor over a [syntree.Tree].
type Zipper struct {
	tree  *syntree.Tree
	focus syntree.ID
	path  []Crumb
}

// New returns a zipper focused on t's root.
func New(t *syntree.Tree) Zipper {
	return Zipper{tree: t, focus: syntree.Root}
}

// Node returns the focused node.
func (z Zipper) Node() syntree.Node {
	return z.tree.Node(z.focus)
}

// AtRoot reports whether the zipper is focused on the traversal root.
func (z Zipper) AtRoot() bool {
	return len(z.path) == 0
}

// Depth returns how many [Zipper.Down] motions separate the focus from the
// root.
func (z Zipper) Depth() int {
	return len(z.path)
}

// Path returns the zipper's breadcrumbs, outermost first. The returned
// slice must not be modified.
func (z Zipper) Path() []Crumb {
	return z.path
}

// Down moves the focus to the first child. Returns ok == false, and the
// receiver unchanged, if the focus has no children.
func (z Zipper) Down() (Zipper, bool) {
	children := z.Node().ChildIDs()
	if len(children) == 0 {
		return z, false
	}
	z.path = append(slices.Clip(z.path), Crumb{
		Parent: z.focus,
		Index:  0,
		Right:  norm(children[1:]),
	})
	z.focus = children[0]
	return z, true
}

// Up moves the focus back to the parent it came down from. Returns
// ok == false at the root.
func (z Zipper) Up() (Zipper, bool) {
	if len(z.path) == 0 {
		return z, false
	}
	z.focus = z.path[len(z.path)-1].Parent
	z.path = z.path[:len(z.path)-1]
	return z, true
}

// Root rewinds the zipper to the root.
func (z Zipper) Root() Zipper {
	for {
		up, ok := z.Up()
		if !ok {
			return z
		}
		z = up
	}
}

// Left moves the focus to the previous sibling. Returns ok == false if the
// focus is leftmost or at the root.
func (z Zipper) Left() (Zipper, bool) {
	if len(z.path) == 0 {
		return z, false
	}
	c := z.path[len(z.path)-1]
	if len(c.Left) == 0 {
		return z, false
	}

	next := Crumb{
		Parent: c.Parent,
		Index:  c.Index - 1,
		Left:   norm(c.Left[: len(c.Left)-1 : len(c.Left)-1]),
		Right:  prepend(z.focus, c.Right),
	}
	z.focus = c.Left[len(c.Left)-1]
	z.path = replaceLast(z.path, next)
	return z, true
}

// Right moves the focus to the next sibling. Returns ok == false if the
// focus is rightmost or at the root.
func (z Zipper) Right() (Zipper, bool) {
	if len(z.path) == 0 {
		return z, false
	}
	c := z.path[len(z.path)-1]
	if len(c.Right) == 0 {
		return z, false
	}

	next := Crumb{
		Parent: c.Parent,
		Index:  c.Index + 1,
		Left:   append(slices.Clip(c.Left), z.focus),
		Right:  norm(c.Right[1:]),
	}
	z.focus = c.Right[0]
	z.path = replaceLast(z.path, next)
	return z, true
}

// Edit applies fn to the focused node, mutating the underlying tree.
func (z Zipper) Edit(fn func(syntree.Node)) {
	fn(z.Node())
}

// Replace swaps the focused node's kind tag, keeping its children, span,
// and payload.
func (z Zipper) Replace(kind string) {
	z.Node().SetKind(kind)
}

// AppendChild creates a new node of the given kind as the focus's last
// child. The receiver remains valid: breadcrumbs track siblings of the
// focus, not its children.
func (z Zipper) AppendChild(kind string) syntree.Node {
	return z.tree.Append(z.focus, kind)
}

// InsertLeft creates a new node of the given kind as the focus's immediate
// left sibling, returning the updated zipper and the new node. Inserting
// next to the root returns the receiver and the zero node.
func (z Zipper) InsertLeft(kind string) (Zipper, syntree.Node) {
	if len(z.path) == 0 {
		return z, syntree.Node{}
	}
	c := z.path[len(z.path)-1]
	n := z.tree.Insert(c.Parent, c.Index, kind)
	if n.IsZero() {
		return z, n
	}

	z.path = replaceLast(z.path, Crumb{
		Parent: c.Parent,
		Index:  c.Index + 1,
		Left:   append(slices.Clip(c.Left), n.ID()),
		Right:  c.Right,
	})
	return z, n
}

// InsertRight creates a new node of the given kind as the focus's immediate
// right sibling, returning the updated zipper and the new node. Inserting
// next to the root returns the receiver and the zero node.
func (z Zipper) InsertRight(kind string) (Zipper, syntree.Node) {
	if len(z.path) == 0 {
		return z, syntree.Node{}
	}
	c := z.path[len(z.path)-1]
	n := z.tree.Insert(c.Parent, c.Index+1, kind)
	if n.IsZero() {
		return z, n
	}

	z.path = replaceLast(z.path, Crumb{
		Parent: c.Parent,
		Index:  c.Index,
		Left:   c.Left,
		Right:  prepend(n.ID(), c.Right),
	})
	return z, n
}

// Remove detaches the focused node from the tree and relocates the focus:
// to the right sibling if there is one, else the left sibling, else the
// parent. Removing the root is disallowed.
//
// The removal is shallow, matching [syntree.Tree.Remove].
func (z Zipper) Remove() (Zipper, error) {
	if len(z.path) == 0 {
		return z, ErrRemoveRoot
	}
	c := z.path[len(z.path)-1]
	z.tree.Remove(z.focus)

	switch {
	case len(c.Right) > 0:
		z.focus = c.Right[0]
		z.path = replaceLast(z.path, Crumb{
			Parent: c.Parent,
			Index:  c.Index,
			Left:   c.Left,
			Right:  norm(c.Right[1:]),
		})
	case len(c.Left) > 0:
		z.focus = c.Left[len(c.Left)-1]
		z.path = replaceLast(z.path, Crumb{
			Parent: c.Parent,
			Index:  c.Index - 1,
			Left:   norm(c.Left[: len(c.Left)-1 : len(c.Left)-1]),
		})
	default:
		z.focus = c.Parent
		z.path = z.path[:len(z.path)-1]
	}
	return z, nil
}

// norm canonicalizes empty sibling lists to nil, so that zippers reached by
// different motion sequences compare equal.
func norm(s []syntree.ID) []syntree.ID {
	if len(s) == 0 {
		return nil
	}
	return s
}

// prepend returns a fresh slice holding id followed by rest.
func prepend(id syntree.ID, rest []syntree.ID) []syntree.ID {
	out := make([]syntree.ID, 0, len(rest)+1)
	return append(append(out, id), rest...)
}

// replaceLast returns path with its last crumb swapped, without touching
// the original's backing array.
func replaceLast(path []Crumb, c Crumb) []Crumb {
	out := slices.Clone(path)
	out[len(out)-1] = c
	return out
}
