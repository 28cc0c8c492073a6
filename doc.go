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

// Package syntree is a language-agnostic syntax tree engine.
//
// syntree parses nothing itself: source-language front ends walk their native
// parse results into its uniform node shape, and everything downstream
// (traversal, querying, localized editing, incremental reparsing) works
// against that one data model.
//
// Nodes live in a per-tree append-only arena and are addressed by integer
// [ID]s, which stay stable across mutation; [Node] is a cheap handle that
// dereferences through the arena. The subpackages layer on top of this
// model:
//
//   - walk: pre-order, post-order, and breadth-first traversal over a
//     visitor contract.
//   - zipper: a breadcrumb cursor for localized navigation and edits.
//   - query: a rebuildable kind-to-nodes index with glob and position
//     lookups.
//   - batch: cache-friendly chunked traversal.
//   - pool: recycling of staged node records.
//   - incremental: minimal-region reparsing with splice-back.
//
// A tree has a single logical owner; nothing in this module is synchronized.
// Callers that need concurrency must lock or clone externally.
package syntree
