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

// Package incremental reparses only the region of a document an edit
// touched, splicing the result back into the existing tree.
//
// A [Session] pairs a front end's full-parse function with the previous
// tree and text of one document. On each edit it expands the edited range
// to block boundaries, discards the top-level subtrees that overlap it,
// reparses just that region, and shifts everything downstream by the length
// change. When the heuristic does not apply it falls back to a full
// reparse, which is the semantics the incremental path must reproduce.
//
// A session serves one editing context; sharing it across concurrent edit
// streams for the same document is undefined.
package incremental

import (
	"errors"
	"strings"

	"github.com/sylphxltd/syntree"
	"github.com/sylphxltd/syntree/internal/interval"
)

// ErrNoPriorState is returned by [Session.Update] before the first
// [Session.Parse]. It is an explicit error so session-management bugs
// surface instead of silently becoming full parses.
var ErrNoPriorState = errors.New("incremental: Update called before Parse")

const (
	// DefaultMinTextSize is the document size below which incremental
	// bookkeeping is not worth it and edits go straight to a full reparse.
	DefaultMinTextSize = 100_000

	// DefaultMaxRegionRatio is the largest share of the document the
	// expanded region may cover before a full reparse is cheaper.
	DefaultMaxRegionRatio = 0.10
)

// ParseFunc is a front end's full-parse entry point. It must return a
// well-formed tree: root at [syntree.Root], consistent parent links, and
// monotonic, non-overlapping sibling spans.
type ParseFunc func(text string) (*syntree.Tree, error)

// Options tunes the incremental gate. Zero fields take the defaults; these
// are performance knobs, not correctness requirements.
type Options struct {
	// Documents shorter than MinTextSize are always fully reparsed.
	MinTextSize int

	// Edits whose expanded region exceeds this share of the document are
	// fully reparsed.
	MaxRegionRatio float64
}

// Session holds the previous tree and text of one document across edits.
type Session struct {
	parse ParseFunc
	opts  Options

	tree *syntree.Tree
	text string
}

// NewSession creates a session around a front end's parse function.
func NewSession(parse ParseFunc, opts Options) *Session {
	if opts.MinTextSize == 0 {
		opts.MinTextSize = DefaultMinTextSize
	}
	if opts.MaxRegionRatio == 0 {
		opts.MaxRegionRatio = DefaultMaxRegionRatio
	}
	return &Session{parse: parse, opts: opts}
}

// Tree returns the session's current tree, or nil before the first
// [Session.Parse].
func (s *Session) Tree() *syntree.Tree {
	return s.tree
}

// Text returns the session's current source text.
func (s *Session) Text() string {
	return s.text
}

// Parse fully parses text and makes the result the session's state.
func (s *Session) Parse(text string) (*syntree.Tree, error) {
	tree, err := s.parse(text)
	if err != nil {
		return nil, err
	}
	s.tree, s.text = tree, text
	return tree, nil
}

// Update applies one edit, reparsing as little as it can.
//
// The returned tree is the session's previous tree mutated in place when
// the incremental path applies, and a fresh tree otherwise. On the
// incremental path, nodes after the edited region keep their IDs and have
// their span byte offsets shifted by the length change; their line and
// column values are refreshed only by the next full reparse.
func (s *Session) Update(newText string, edit Edit) (*syntree.Tree, error) {
	if s.tree == nil {
		return nil, ErrNoPriorState
	}
	if err := edit.validate(len(s.text), len(newText)); err != nil {
		return nil, err
	}

	if tree, ok := s.incremental(newText, edit); ok {
		return tree, nil
	}
	return s.Parse(newText)
}

// incremental attempts the splice path. ok == false means the heuristic
// does not apply and the caller should fall back to a full reparse.
func (s *Session) incremental(newText string, edit Edit) (*syntree.Tree, bool) {
	if len(newText) < s.opts.MinTextSize {
		return nil, false
	}

	start, end := expandRegion(newText, edit)
	if float64(end-start) > s.opts.MaxRegionRatio*float64(len(newText)) {
		return nil, false
	}

	// The region is expressed in new-text offsets; everything before start
	// is untouched, so start is valid in the old text too, and the region's
	// old end differs only by the edit's delta.
	delta := edit.Delta()
	oldEnd := end - delta

	// Classify the previous tree's top-level children around the old
	// region. Children must carry disjoint, ordered spans for the splice
	// bookkeeping to be trustworthy; anything else falls back.
	var spans interval.Map[int, syntree.ID]
	children := s.tree.Root().Children()
	var before, after []syntree.ID
	for _, child := range children {
		span := child.Span()
		if span.IsZero() || !spans.Insert(span.Start.Offset, span.End.Offset, child.ID()) {
			return nil, false
		}
		switch {
		case span.End.Offset <= start:
			before = append(before, child.ID())
		case span.Start.Offset >= oldEnd:
			after = append(after, child.ID())
		case span.Start.Offset < start || span.End.Offset > oldEnd:
			// A block straddling the region boundary would lose the part of
			// itself the reparse does not cover.
			return nil, false
		}
		// Children inside the region are discarded; their nodes stay
		// allocated but become unreachable.
	}

	sub, err := s.parse(newText[start:end])
	if err != nil {
		// The fragment may not parse in isolation even when the full
		// document would; let the full path decide.
		return nil, false
	}

	// Splice. From here on the session's tree is committed to the new text.
	s.tree.ReplaceSource(newText)

	for _, id := range after {
		shiftSubtree(s.tree.Node(id), delta)
	}

	spliced := before
	for _, top := range sub.Root().Children() {
		spliced = append(spliced, copySubtree(s.tree, syntree.None, top, start).ID())
	}
	spliced = append(spliced, after...)

	s.tree.SetChildren(syntree.Root, spliced)
	s.tree.Root().SetSpan(s.tree.SpanBetween(0, len(newText)))
	s.text = newText
	return s.tree, true
}

// expandRegion grows the raw edit range outward to the nearest blank-line
// block boundaries of the new text, so a syntactically complete unit is
// reparsed rather than a fragment. A line is blank when it contains only
// whitespace, the same notion block-structured front ends separate on.
func expandRegion(newText string, edit Edit) (start, end int) {
	start = lastBlankLineEnd(newText[:edit.Start])
	end = len(newText)
	if i := firstBlankLineStart(newText[edit.NewEnd:]); i >= 0 {
		end = edit.NewEnd + i
	}
	return start, end
}

// lastBlankLineEnd returns the offset just past the newline terminating the
// last blank line of s, or 0 when s has no complete blank line.
func lastBlankLineEnd(s string) int {
	end := len(s)
	for end > 0 {
		nl := strings.LastIndexByte(s[:end], '\n')
		if nl < 0 {
			return 0
		}
		lineStart := strings.LastIndexByte(s[:nl], '\n') + 1
		if isBlank(s[lineStart:nl]) {
			return nl + 1
		}
		end = nl
	}
	return 0
}

// firstBlankLineStart returns the offset of the newline preceding the first
// complete blank line of s, or -1 when s has none.
func firstBlankLineStart(s string) int {
	off := 0
	for {
		i := strings.IndexByte(s[off:], '\n')
		if i < 0 {
			return -1
		}
		i += off
		j := strings.IndexByte(s[i+1:], '\n')
		if j < 0 {
			return -1
		}
		j += i + 1
		if isBlank(s[i+1 : j]) {
			return i
		}
		off = i + 1
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// shiftSubtree moves the span byte offsets of a node and all of its
// descendants by delta. Spans are absolute, so every level shifts.
func shiftSubtree(n syntree.Node, delta int) {
	if span := n.Span(); !span.IsZero() {
		span.Start.Offset += delta
		span.End.Offset += delta
		n.SetSpan(span)
	}
	for i := range n.NumChildren() {
		shiftSubtree(n.Child(i), delta)
	}
}

// copySubtree deep-copies a subtree of a freshly parsed fragment into dst,
// appending fresh IDs and shifting spans to their absolute position. Lines
// and columns are resolved against dst's (already replaced) source.
func copySubtree(dst *syntree.Tree, parent syntree.ID, src syntree.Node, shift int) syntree.Node {
	n := dst.Append(parent, src.Kind())
	if span := src.Span(); !span.IsZero() {
		n.SetSpan(dst.SpanBetween(span.Start.Offset+shift, span.End.Offset+shift))
	}
	n.SetData(src.Data())
	for i := range src.NumChildren() {
		copySubtree(dst, n.ID(), src.Child(i), shift)
	}
	return n
}
