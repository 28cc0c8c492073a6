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

// Package pool recycles staged node records to cut allocation churn in
// front ends that rebuild trees on every edit.
//
// A pool is purely an allocation cache: it holds no tree-membership
// semantics and is never consulted to resolve an ID. It is not synchronized;
// use one pool per worker.
package pool

import "github.com/sylphxltd/syntree"

// DefaultMaxPerKind is the default cap on each per-kind free list.
const DefaultMaxPerKind = 32

// Pool keeps per-kind free lists of [syntree.Record]s.
//
// The zero value is ready to use.
type Pool struct {
	// MaxPerKind caps each free list; released records beyond the cap are
	// dropped for the garbage collector. Zero means [DefaultMaxPerKind].
	MaxPerKind int

	free map[string][]*syntree.Record
}

// Acquire pops a reset record of the given kind from its free list, or
// constructs a fresh one if the list is empty.
func (p *Pool) Acquire(kind string) *syntree.Record {
	list := p.free[kind]
	if len(list) == 0 {
		return &syntree.Record{Kind: kind, Parent: syntree.Root}
	}

	rec := list[len(list)-1]
	p.free[kind] = list[:len(list)-1]
	return rec
}

// Release resets rec and pushes it onto its kind's free list. Records over
// the per-kind cap are dropped, not retained.
//
// The caller must not use rec after releasing it. Releasing the same record
// twice would hand it out to two later acquirers; the immediate case is
// caught, but a double release interleaved with other releases corrupts the
// pool.
func (p *Pool) Release(rec *syntree.Record) {
	if rec == nil {
		return
	}

	list := p.free[rec.Kind]
	if len(list) > 0 && list[len(list)-1] == rec {
		return
	}

	maxLen := p.MaxPerKind
	if maxLen <= 0 {
		maxLen = DefaultMaxPerKind
	}
	if len(list) >= maxLen {
		return
	}

	rec.Reset()
	if p.free == nil {
		p.free = make(map[string][]*syntree.Record)
	}
	p.free[rec.Kind] = append(p.free[rec.Kind], rec)
}

// Size returns how many records are currently parked for the given kind.
func (p *Pool) Size(kind string) int {
	return len(p.free[kind])
}
