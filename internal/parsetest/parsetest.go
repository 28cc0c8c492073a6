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

// Package parsetest provides a minimal block-structured front end for
// exercising the engine in tests.
//
// The format is trivial on purpose, so tests can predict exact spans: a
// document is a sequence of blocks separated by blank lines, and each block
// is a run of non-blank lines.
package parsetest

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sylphxltd/syntree"
)

// Parse builds a tree from blank-line-separated blocks.
//
// The root holds one "block" child per block, and each block holds one
// "line" child per line. Spans exclude trailing newlines; every node's Data
// is its text.
func Parse(text string) (*syntree.Tree, error) {
	tree := syntree.New("blocktext", text)

	var block syntree.Node
	var blockStart, blockEnd int

	flush := func() {
		if block.IsZero() {
			return
		}
		block.SetSpan(tree.SpanBetween(blockStart, blockEnd))
		block.SetData(text[blockStart:blockEnd])
		block = syntree.Node{}
	}

	offset := 0
	for offset <= len(text) {
		end := strings.IndexByte(text[offset:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += offset
		}
		line := text[offset:end]

		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if block.IsZero() {
				block = tree.Append(syntree.Root, "block")
				blockStart = offset
			}
			blockEnd = end

			ln := block.AppendChild("line")
			ln.SetSpan(tree.SpanBetween(offset, end))
			ln.SetData(line)
		}

		offset = end + 1
	}
	flush()

	return tree, nil
}

// Diff renders a unified diff between two dumps, for failure messages.
func Diff(want, got string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}
