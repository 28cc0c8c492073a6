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

import "gopkg.in/yaml.v3"

// Snapshot is a plain, marshalable view of a tree's reachable structure,
// used for golden tests and debugging dumps. Unreachable (removed) nodes do
// not appear.
type Snapshot struct {
	Language string        `yaml:"language,omitempty"`
	Root     *NodeSnapshot `yaml:"root"`
}

// NodeSnapshot is one node of a [Snapshot].
type NodeSnapshot struct {
	ID       int             `yaml:"id"`
	Kind     string          `yaml:"kind"`
	Span     []int           `yaml:"span,flow,omitempty"`
	Data     any             `yaml:"data,omitempty"`
	Children []*NodeSnapshot `yaml:"children,omitempty"`
}

// Snapshot captures the tree's current reachable structure.
func (t *Tree) Snapshot() *Snapshot {
	return &Snapshot{
		Language: t.meta.Language,
		Root:     snapshotNode(t.Root()),
	}
}

// DumpYAML renders the tree's reachable structure as YAML. The output is
// deterministic for a given structure, so it diffs cleanly.
func (t *Tree) DumpYAML() ([]byte, error) {
	return yaml.Marshal(t.Snapshot())
}

func snapshotNode(n Node) *NodeSnapshot {
	snap := &NodeSnapshot{
		ID:   int(n.ID()),
		Kind: n.Kind(),
		Data: n.Data(),
	}
	if span := n.Span(); !span.IsZero() {
		snap.Span = []int{span.Start.Offset, span.End.Offset}
	}
	for _, child := range n.Children() {
		snap.Children = append(snap.Children, snapshotNode(child))
	}
	return snap
}
