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
	"slices"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/sylphxltd/syntree/internal/arena"
	"github.com/sylphxltd/syntree/internal/intern"
)

// Metadata is the bookkeeping a [Tree] carries about its provenance.
type Metadata struct {
	// The language tag of the front end that produced this tree.
	Language string

	// When the tree was created, and when it was last mutated.
	Created, Modified time.Time

	// Open extension point for front ends and tooling.
	Custom map[string]any
}

// Tree is an arena-backed syntax tree.
//
// All nodes live in a single append-only arena indexed by [ID]; the root is
// always [Root]. Removing a node unlinks it without compacting the arena, so
// IDs stay stable for the tree's lifetime.
//
// A Tree has one logical owner at a time. None of its operations are
// synchronized; concurrent mutation is undefined.
type Tree struct {
	meta   Metadata
	source string
	nodes  arena.Arena[rawNode]
	kinds  intern.Table

	// Byte offset of the start of each line of source, built on demand.
	lines []int

	// Bumped on every mutation; lets derived structures such as query
	// indexes detect that they are stale.
	version uint64
}

// New creates a tree over the given source text.
//
// The tree starts with a single "root" node at ID [Root] spanning the whole
// text; front ends build the rest underneath it.
func New(language, source string) *Tree {
	t := &Tree{
		meta:   Metadata{Language: language, Created: time.Now()},
		source: source,
	}
	t.meta.Modified = t.meta.Created

	root := rawNode{kind: t.kinds.Intern("root"), parent: None}
	t.nodes.Append(root)
	t.Root().SetSpan(t.SpanBetween(0, len(source)))
	return t
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: Root}
}

// Node returns a handle to the node with the given ID.
//
// Returns the zero node if the tree has never handed out id.
func (t *Tree) Node(id ID) Node {
	if t == nil || t.nodes.At(int(id)) == nil {
		return Node{}
	}
	return Node{tree: t, id: id}
}

// Contains reports whether the tree has ever handed out id.
func (t *Tree) Contains(id ID) bool {
	return t != nil && t.nodes.At(int(id)) != nil
}

// Len returns the number of nodes ever allocated in this tree, including
// removed ones; it is also the ID the next added node will receive.
func (t *Tree) Len() int {
	return t.nodes.Len()
}

// Source returns the source text this tree was parsed from.
func (t *Tree) Source() string {
	return t.source
}

// Meta returns the tree's metadata for reading and updating.
func (t *Tree) Meta() *Metadata {
	return &t.meta
}

// Version returns a counter that is bumped on every mutation.
func (t *Tree) Version() uint64 {
	return t.version
}

// ReplaceSource swaps the tree's source text, invalidating the line index.
//
// This is intended for reparse engines that splice refreshed content into an
// existing tree; it does not touch any node.
func (t *Tree) ReplaceSource(source string) {
	t.source = source
	t.lines = nil
	t.touch()
}

// Append creates a new node of the given kind as the last child of parent
// and returns it. The new node's ID is the arena length at the time of the
// call.
//
// A parent of [None] creates a detached node, for staged construction.
// Any other ID the tree has never handed out makes Append a no-op returning
// the zero node.
func (t *Tree) Append(parent ID, kind string) Node {
	return t.insert(parent, -1, kind)
}

// Insert creates a new node of the given kind at the given position among
// parent's children. The index is clamped to the valid range.
func (t *Tree) Insert(parent ID, index int, kind string) Node {
	if index < 0 {
		index = 0
	}
	return t.insert(parent, index, kind)
}

func (t *Tree) insert(parent ID, index int, kind string) Node {
	if parent != None && !t.Contains(parent) {
		return Node{}
	}

	id := ID(t.nodes.Append(rawNode{
		kind:   t.kinds.Intern(kind),
		parent: parent,
	}))

	if parent != None {
		children := &t.nodes.At(int(parent)).children
		if index < 0 || index > len(*children) {
			index = len(*children)
		}
		*children = slices.Insert(*children, index, id)
	}

	t.touch()
	return Node{tree: t, id: id}
}

// AddRecord creates a new node from a staged [Record] as the last child of
// parent, copying all of the record's fields. Children listed in the record
// are re-parented under the new node, unlinking each from any previous
// parent first; IDs the tree does not know are silently skipped.
//
// The record is not retained, so it may be pooled and reused.
func (t *Tree) AddRecord(parent ID, rec *Record) Node {
	n := t.Append(parent, rec.Kind)
	if n.IsZero() {
		return n
	}

	raw := t.nodes.At(int(n.id))
	raw.span = rec.Span
	raw.data = rec.Data
	for _, child := range rec.Children {
		if child == n.id || !t.Contains(child) {
			continue
		}
		t.unlink(child)
		raw.children = append(raw.children, child)
		t.nodes.At(int(child)).parent = n.id
	}
	t.touch()
	return n
}

// Remove detaches the node with the given ID from its parent.
//
// This is a shallow removal: descendants keep their links and remain
// allocated, so the detached subtree can be traversed or re-attached via
// [Tree.SetChildren]. Use [Tree.RemoveSubtree] to unlink descendants too.
// Removing the root or an unknown ID is a no-op.
func (t *Tree) Remove(id ID) {
	if id == Root || !t.Contains(id) {
		return
	}
	t.unlink(id)
	t.touch()
}

// unlink detaches id from its current parent, deleting it from that parent's
// children. Every re-parenting operation must go through this so a node is
// never listed under two parents at once.
func (t *Tree) unlink(id ID) {
	raw := t.nodes.At(int(id))
	if parent := raw.parent; parent != None && t.Contains(parent) {
		children := &t.nodes.At(int(parent)).children
		if i := slices.Index(*children, id); i >= 0 {
			*children = slices.Delete(*children, i, i+1)
		}
	}
	raw.parent = None
}

// RemoveSubtree detaches the node with the given ID from its parent and
// unlinks every node beneath it: descendants lose both their parent link and
// their children, so nothing in the removed region remains reachable or
// re-attachable as a unit.
//
// Removing the root or an unknown ID is a no-op.
func (t *Tree) RemoveSubtree(id ID) {
	if id == Root || !t.Contains(id) {
		return
	}

	t.Remove(id)
	var unlink func(id ID)
	unlink = func(id ID) {
		raw := t.nodes.At(int(id))
		children := raw.children
		raw.children = nil
		for _, child := range children {
			if !t.Contains(child) {
				continue
			}
			t.nodes.At(int(child)).parent = None
			unlink(child)
		}
	}
	unlink(id)
	t.touch()
}

// SetChildren replaces parent's children with the given IDs, re-parenting
// each; a child adopted from another parent is unlinked from it. IDs the
// tree does not know are skipped. The previous children are left detached
// (parent [None]) unless they reappear in the new list.
func (t *Tree) SetChildren(parent ID, children []ID) {
	if !t.Contains(parent) {
		return
	}

	raw := t.nodes.At(int(parent))
	for _, old := range raw.children {
		if t.Contains(old) {
			t.nodes.At(int(old)).parent = None
		}
	}

	next := make([]ID, 0, len(children))
	for _, id := range children {
		if id == parent || !t.Contains(id) {
			continue
		}
		t.unlink(id)
		next = append(next, id)
		t.nodes.At(int(id)).parent = parent
	}
	raw.children = next
	t.touch()
}

// LocationAt resolves a byte offset into a full [Location], with 1-indexed
// line and grapheme-cluster column. Offsets outside the source are clamped.
//
// The first call builds a prefix line index; subsequent calls are a binary
// search.
func (t *Tree) LocationAt(offset int) Location {
	offset = min(max(offset, 0), len(t.source))

	if t.lines == nil {
		t.lines = append(t.lines, 0)
		for off, r := range t.source {
			if r == '\n' {
				t.lines = append(t.lines, off+1)
			}
		}
	}

	// The line containing offset is the last line starting at or before it.
	line, exact := slices.BinarySearch(t.lines, offset)
	if !exact {
		line--
	}

	column := uniseg.GraphemeClusterCount(t.source[t.lines[line]:offset])
	return Location{Offset: offset, Line: line + 1, Column: column + 1}
}

// SpanBetween builds a [Span] from two byte offsets, resolving lines and
// columns against the tree's source.
func (t *Tree) SpanBetween(start, end int) Span {
	return Span{Start: t.LocationAt(start), End: t.LocationAt(end)}
}

// LineText returns the text of the 1-indexed line, without its trailing
// newline. Returns "" for lines that do not exist.
func (t *Tree) LineText(line int) string {
	t.LocationAt(0) // Force the line index.
	if line < 1 || line > len(t.lines) {
		return ""
	}
	text := t.source[t.lines[line-1]:]
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

func (t *Tree) touch() {
	t.version++
	t.meta.Modified = time.Now()
}
