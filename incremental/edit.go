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

package incremental

import "fmt"

// Edit describes one contiguous text replacement: the bytes [Start, OldEnd)
// of the old text were replaced by the bytes [Start, NewEnd) of the new
// text.
type Edit struct {
	Start, OldEnd, NewEnd int
}

// NewEdit builds an edit from a start offset and the two end offsets.
func NewEdit(start, oldEnd, newEnd int) Edit {
	return Edit{Start: start, OldEnd: oldEnd, NewEnd: newEnd}
}

// Replacement builds an edit from a start offset and the replaced and
// replacement lengths.
func Replacement(start, oldLen, newLen int) Edit {
	return Edit{Start: start, OldEnd: start + oldLen, NewEnd: start + newLen}
}

// OldLen returns the number of replaced bytes.
func (e Edit) OldLen() int { return e.OldEnd - e.Start }

// NewLen returns the number of replacement bytes.
func (e Edit) NewLen() int { return e.NewEnd - e.Start }

// Delta returns how much the edit grew (or, negative, shrank) the text.
func (e Edit) Delta() int { return e.NewLen() - e.OldLen() }

// String implements [fmt.Stringer].
func (e Edit) String() string {
	return fmt.Sprintf("[%d:%d)->[%d:%d)", e.Start, e.OldEnd, e.Start, e.NewEnd)
}

// validate checks the edit against the two texts it claims to relate.
func (e Edit) validate(oldLen, newLen int) error {
	switch {
	case e.Start < 0:
		return &InvalidEditError{Edit: e, Reason: "negative start offset"}
	case e.OldEnd < e.Start || e.NewEnd < e.Start:
		return &InvalidEditError{Edit: e, Reason: "inverted range"}
	case e.OldEnd > oldLen:
		return &InvalidEditError{Edit: e, Reason: fmt.Sprintf("old end past text of length %d", oldLen)}
	case e.NewEnd > newLen:
		return &InvalidEditError{Edit: e, Reason: fmt.Sprintf("new end past text of length %d", newLen)}
	case oldLen-e.OldEnd != newLen-e.NewEnd:
		return &InvalidEditError{Edit: e, Reason: "edit does not account for the length change"}
	}
	return nil
}

// InvalidEditError reports an edit with out-of-bounds or inverted offsets.
// Such an edit is a caller bug: it is rejected up front rather than risking
// silently corrupted spans.
type InvalidEditError struct {
	Edit   Edit
	Reason string
}

// Error implements error.
func (e *InvalidEditError) Error() string {
	return fmt.Sprintf("incremental: invalid edit %v: %s", e.Edit, e.Reason)
}

// DetectEdit derives the edit relating two texts by scanning for their
// common prefix and suffix. Useful when the caller knows only the before and
// after contents, not the region that changed.
//
// Multiple disjoint changes collapse into one contiguous edit covering all
// of them.
func DetectEdit(oldText, newText string) Edit {
	prefix := 0
	for prefix < len(oldText) && prefix < len(newText) && oldText[prefix] == newText[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(oldText)-prefix && suffix < len(newText)-prefix &&
		oldText[len(oldText)-1-suffix] == newText[len(newText)-1-suffix] {
		suffix++
	}

	return Edit{
		Start:  prefix,
		OldEnd: len(oldText) - suffix,
		NewEnd: len(newText) - suffix,
	}
}
