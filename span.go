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

import "fmt"

// Location is a position within a tree's source text.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed.
	//
	// Column is measured in grapheme clusters, not bytes, so it matches what
	// an editor would display. Because these are 1-indexed, a zero Line can
	// be used as a sentinel.
	Line, Column int
}

// Span is a node's source range, half-open over byte offsets.
type Span struct {
	Start, End Location
}

// IsZero reports whether this is the zero span, which marks a node as having
// no recorded source range.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Len returns the length of this span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether the given byte offset falls within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Overlaps reports whether this span overlaps the half-open byte range
// [start, end).
func (s Span) Overlaps(start, end int) bool {
	return s.Start.Offset < end && s.End.Offset > start
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	if s.IsZero() {
		return "<no span>"
	}
	return fmt.Sprintf("%d:%d[%d:%d]", s.Start.Line, s.Start.Column, s.Start.Offset, s.End.Offset)
}
