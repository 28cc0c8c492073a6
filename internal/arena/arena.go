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

// Package arena provides an append-only arena whose elements are addressed
// by their insertion index.
package arena

import (
	"iter"
	"math/bits"
)

// minLenShift is the log2 of the size of the smallest slice in an arena's
// table.
const (
	minLenShift = 4
	minLen      = 1 << minLenShift
)

// Arena is an append-only store of Ts addressed by dense integer indices,
// starting at zero.
//
// Internally it is a slice of T that guarantees the Ts will never be moved:
// instead of reallocating on growth, it appends logarithmically-growing
// slices to a table. This keeps every *T returned by [Arena.At] stable for
// the life of the arena while preserving O(1) lookup, at the cost of two
// pointer loads instead of one.
//
// A zero Arena[T] is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(table[0]) == minLen.
	// 2. cap(table[n]) == 2*cap(table[n-1]).
	// 3. cap(table[n]) == len(table[n]) for n < len(table)-1.
	//
	// These invariants are what make lookup O(1).
	table [][]T

	len int
}

// Append adds a new value to the arena and returns its index.
//
// Indices are handed out densely: the first Append returns 0, the next 1,
// and so on. An index is never reused or compacted away.
func (a *Arena[T]) Append(value T) int {
	if a.table == nil {
		a.table = [][]T{make([]T, 0, minLen)}
	}

	last := &a.table[len(a.table)-1]
	if len(*last) == cap(*last) {
		// The last slice is full; grow by doubling the size of the next one.
		a.table = append(a.table, make([]T, 0, 2*cap(*last)))
		last = &a.table[len(a.table)-1]
	}

	*last = append(*last, value)
	a.len++
	return a.len - 1
}

// At returns a pointer to the value at the given index.
//
// Returns nil if idx has never been handed out by [Arena.Append]; absent
// indices are an expected state for callers, not a programming error.
func (a *Arena[T]) At(idx int) *T {
	if idx < 0 || idx >= a.len {
		return nil
	}
	slice, off := coordinates(idx)
	return &a.table[slice][off]
}

// Len returns the number of values appended so far.
func (a *Arena[T]) Len() int {
	return a.len
}

// All iterates over every value in the arena in index order.
func (a *Arena[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		idx := 0
		for _, slice := range a.table {
			for i := range slice {
				if !yield(idx, &slice[i]) {
					return
				}
				idx++
			}
		}
	}
}

// coordinates maps an index to its position in the table.
//
// Given minLenShift == n, the cumulative starting index of each slice is
//
//	0b0 << n, 0b1 << n, 0b11 << n, 0b111 << n
//
// so adding minLen (0b1 << n) turns the sequence into successive powers of
// two, whose one-indexed high bit recovers the slice number.
func coordinates(idx int) (int, int) {
	slice := bits.UintSize - bits.LeadingZeros(uint(idx)+minLen)
	slice -= minLenShift + 1

	// The offset within table[slice] is idx minus the combined length of all
	// prior slices, which by the identity 2^m + ... + 2^n = 2^(n+1) - 2^m is
	// minLen<<slice - minLen.
	idx -= max(0, minLen<<slice-minLen)
	return slice, idx
}
