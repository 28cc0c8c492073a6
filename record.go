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

// Record is a staged node: the fields of a node before it has been given an
// ID by a tree.
//
// Front ends that allocate many short-lived records during construction can
// recycle them through a pool; [Record.Reset] restores a record to its
// just-acquired state while keeping the capacity of its children slice.
type Record struct {
	Kind     string
	Parent   ID
	Children []ID
	Span     Span
	Data     any
}

// Reset clears the record's mutable fields: children become empty (capacity
// retained), the parent reverts to the [Root] sentinel, the span is zeroed,
// and the payload is dropped. The kind tag is left alone, since pools keep
// records on per-kind free lists.
func (r *Record) Reset() {
	r.Children = r.Children[:0]
	r.Parent = Root
	r.Span = Span{}
	r.Data = nil
}
