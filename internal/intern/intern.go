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

// Package intern provides a string interning table, used to deduplicate node
// kind tags so they can be stored and compared as small integers.
package intern

import (
	"fmt"
	"strings"
)

// ID is an interned string in a particular [Table].
//
// IDs can be compared very cheaply. The zero value of ID always corresponds
// to the empty string.
type ID int32

// String implements [fmt.Stringer].
//
// This does not convert the ID back into a string; for that, call
// [Table.Value].
func (id ID) String() string {
	if id == 0 {
		return `intern.ID("")`
	}
	return fmt.Sprintf("intern.ID(%d)", int32(id))
}

// Table is an interning table.
//
// A Table converts strings into [ID]s and back again. Like its enclosing
// tree, a Table has a single logical owner: it is not synchronized.
//
// The zero value of Table is empty and ready to use.
type Table struct {
	index map[string]ID
	table []string
}

// Intern interns the given string into this table.
func (t *Table) Intern(s string) ID {
	if id, ok := t.Query(s); ok {
		return id
	}

	// Tables are long-lived; clone so we never pin a larger buffer that s
	// happens to point into.
	s = strings.Clone(s)
	t.table = append(t.table, s)

	// The first real ID has value 1; ID 0 is reserved for "".
	id := ID(len(t.table))
	if id < 0 {
		panic(fmt.Sprintf("intern: %d interning IDs exhausted", len(t.table)))
	}

	if t.index == nil {
		t.index = make(map[string]ID)
	}
	t.index[s] = id
	return id
}

// Query reports whether s has already been interned, and under which ID.
//
// A failed query means s has never been seen, so e.g. searching an ID-keyed
// map for it would be futile.
func (t *Table) Query(s string) (ID, bool) {
	if s == "" {
		return 0, true
	}
	id, ok := t.index[s]
	return id, ok
}

// Value converts an [ID] back into its corresponding string.
//
// If id was created by a different [Table], the results are unspecified,
// including potentially a panic.
func (t *Table) Value(id ID) string {
	if id == 0 {
		return ""
	}
	return t.table[int(id)-1]
}

// Len returns the number of distinct non-empty strings interned so far.
func (t *Table) Len() int {
	return len(t.table)
}
