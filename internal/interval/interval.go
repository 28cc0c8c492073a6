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

// Package interval provides an ordered map over disjoint half-open
// intervals, used to resolve byte offsets against node spans.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Map maps disjoint half-open intervals [start, end) with integer endpoints
// to values of type V.
//
// A zero Map is empty and ready to use.
type Map[K constraints.Integer, V any] struct {
	// Keys in this map are the (exclusive) ends of the intervals.
	tree btree.Map[K, entry[K, V]]
}

type entry[K constraints.Integer, V any] struct {
	start K
	value V
}

// Interval is an interval stored in a [Map].
type Interval[K constraints.Integer, V any] struct {
	// The half-open range of this interval.
	Start, End K

	// The associated value. Nil if and only if the lookup that produced this
	// Interval found nothing.
	Value *V
}

// Len returns the number of intervals in the map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Insert inserts [start, end) with the given associated value.
//
// Empty intervals (start == end) are rejected with ok == false, as is any
// interval that overlaps one already present; the map never splits or
// merges. Inverted intervals panic, since they indicate a bug in the caller
// rather than unusual input.
func (m *Map[K, V]) Insert(start, end K, value V) (ok bool) {
	if start > end {
		panic(fmt.Sprintf("interval: inverted interval [%v, %v)", start, end))
	}
	if start == end {
		return false
	}

	// The first interval whose end is > start is the only candidate for
	// overlap from the left; check it before inserting.
	iter := m.tree.Iter()
	if iter.Seek(start + 1) {
		if iter.Value().start < end {
			return false
		}
	}

	m.tree.Set(end, entry[K, V]{start: start, value: value})
	return true
}

// At looks up the interval containing key, if one exists.
//
// If no such interval exists, the returned Interval has a nil Value.
func (m *Map[K, V]) At(key K) Interval[K, V] {
	iter := m.tree.Iter()

	// An interval [s, e) contains key iff s <= key and e >= key+1, so seek
	// the first end >= key+1 and verify its start.
	if !iter.Seek(key+1) || iter.Value().start > key {
		return Interval[K, V]{}
	}

	e := iter.Value()
	return Interval[K, V]{Start: e.start, End: iter.Key(), Value: &e.value}
}

// Overlapping iterates, in order, over every interval that overlaps the
// half-open query range [start, end).
func (m *Map[K, V]) Overlapping(start, end K) iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		// Intervals ending at or before start cannot overlap.
		more := iter.Seek(start + 1)
		for more {
			e := iter.Value()
			if e.start >= end {
				return
			}
			if !yield(Interval[K, V]{Start: e.start, End: iter.Key(), Value: &e.value}) {
				return
			}
			more = iter.Next()
		}
	}
}

// All iterates over every interval in the map in order.
func (m *Map[K, V]) All() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		more := iter.First()
		for more {
			e := iter.Value()
			if !yield(Interval[K, V]{Start: e.start, End: iter.Key(), Value: &e.value}) {
				return
			}
			more = iter.Next()
		}
	}
}
