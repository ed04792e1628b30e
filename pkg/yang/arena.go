// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package yang

// NodeID addresses a node within an Arena. It is never dereferenced as a
// pointer and stays valid for the lifetime of the Arena it was allocated
// from; the schema tree's cyclic references (uses -> grouping, augment ->
// target, leafref -> target leaf, identity -> base) are all NodeID values
// rather than Go pointers, so the tree contains no reference cycles a
// garbage collector or a deep-copy routine has to reason about specially.
type NodeID int32

// NilNode is the reserved invalid id; index 0 of every Arena is a
// placeholder node that is never returned by Alloc.
const NilNode NodeID = 0

type arenaNode struct {
	kind     Kind
	parent   NodeID
	children []NodeID
	common   CommonAttrs
	attrs    interface{}
	stmt     *Statement
}

// Arena owns every node produced while parsing and linking one compilation
// unit (spec §9: "model the schema tree as an arena of nodes addressed by
// stable indices"). ResolveSet links a multi-module set into one fresh
// Arena of its own (see resolver.go's ResolvedTree); within a single
// Arena, NodeIDs are stable from allocation to disposal.
type Arena struct {
	nodes []arenaNode

	// rawTypes holds each KindType node's as-parsed restriction syntax
	// between the build pass and typedef.go's resolution pass. It lives
	// on the Arena (the explicit per-compilation-unit context) rather
	// than behind a package-level map, so two Arenas never interfere.
	rawTypes map[NodeID]*rawType
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{nodes: []arenaNode{{}}, rawTypes: map[NodeID]*rawType{}}
}

// RawType returns id's as-parsed type restriction syntax, or nil once
// resolution has discarded it.
func (a *Arena) RawType(id NodeID) *rawType {
	return a.rawTypes[id]
}

// DiscardRawTypes releases the raw-syntax table once type resolution for
// this Arena has completed.
func (a *Arena) DiscardRawTypes() {
	a.rawTypes = nil
}

// Alloc creates a new node of the given kind, parented under parent (or
// unparented, if parent is NilNode), and returns its id.
func (a *Arena) Alloc(kind Kind, parent NodeID, stmt *Statement) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{kind: kind, parent: parent, stmt: stmt})
	if parent != NilNode {
		a.nodes[parent].children = append(a.nodes[parent].children, id)
	}
	return id
}

// Reparent detaches id from its current parent's child list and appends it
// to newParent's, updating id's own parent link. Used by uses-expansion
// and augment application, which move cloned subtrees into place.
func (a *Arena) Reparent(id, newParent NodeID) {
	old := a.nodes[id].parent
	if old != NilNode {
		sibs := a.nodes[old].children
		for i, c := range sibs {
			if c == id {
				a.nodes[old].children = append(sibs[:i], sibs[i+1:]...)
				break
			}
		}
	}
	a.nodes[id].parent = newParent
	if newParent != NilNode {
		a.nodes[newParent].children = append(a.nodes[newParent].children, id)
	}
}

// ReplaceChildren replaces id's entire child list, in the given order.
// Every id in newChildren must already have its parent field set to id
// (e.g. by Alloc or Reparent); this only reorders/filters the list that
// Children returns. Used by FixChoice to splice synthesized case nodes
// in at the position of the data node they wrap.
func (a *Arena) ReplaceChildren(id NodeID, newChildren []NodeID) {
	a.nodes[id].children = newChildren
}

// Kind reports id's kind.
func (a *Arena) Kind(id NodeID) Kind {
	if id == NilNode {
		return KindNone
	}
	return a.nodes[id].kind
}

// Parent reports id's parent, or NilNode at the root.
func (a *Arena) Parent(id NodeID) NodeID {
	if id == NilNode {
		return NilNode
	}
	return a.nodes[id].parent
}

// DataParent returns id's nearest ancestor that is not itself a
// KindCase: a "case" is a transparent wrapper both in an instance data
// tree and in a leafref path, so collision scope and path resolution
// walk past it rather than treating it as a naming boundary.
func (a *Arena) DataParent(id NodeID) NodeID {
	p := a.Parent(id)
	for p != NilNode && a.Kind(p) == KindCase {
		p = a.Parent(p)
	}
	return p
}

// Children returns id's direct children in declaration order. The
// returned slice must not be mutated by the caller.
func (a *Arena) Children(id NodeID) []NodeID {
	if id == NilNode {
		return nil
	}
	return a.nodes[id].children
}

// ChildrenOfKind filters Children to a single kind.
func (a *Arena) ChildrenOfKind(id NodeID, kind Kind) []NodeID {
	var out []NodeID
	for _, c := range a.Children(id) {
		if a.Kind(c) == kind {
			out = append(out, c)
		}
	}
	return out
}

// Common returns a mutable pointer to id's common attribute record.
func (a *Arena) Common(id NodeID) *CommonAttrs {
	return &a.nodes[id].common
}

// Attrs returns id's kind-specific capability record.
func (a *Arena) Attrs(id NodeID) interface{} {
	return a.nodes[id].attrs
}

// SetAttrs installs id's kind-specific capability record.
func (a *Arena) SetAttrs(id NodeID, v interface{}) {
	a.nodes[id].attrs = v
}

// Statement returns the source CST node id was built from, for position
// reporting. Nodes made during linking reuse the Statement of the node
// they derive from: a clone (uses-expansion, augment) its source node's,
// and an implicit case (fixChoice) the Statement of the child it wraps.
func (a *Arena) Statement(id NodeID) *Statement {
	if id == NilNode {
		return nil
	}
	return a.nodes[id].stmt
}

// NodeCount reports how many real nodes (excluding the reserved NilNode
// slot) the arena holds.
func (a *Arena) NodeCount() int {
	return len(a.nodes) - 1
}

// CloneSubtree deep-copies the subtree rooted at id into the same arena,
// attaching the copy under newParent, and returns the new root's id. No
// attribute record or slice is shared between the original and the copy,
// so independent post-clone mutation (e.g. a "refine" under one "uses" of
// a grouping must not affect another use of the same grouping) is safe.
func (a *Arena) CloneSubtree(id, newParent NodeID) NodeID {
	if id == NilNode {
		return NilNode
	}
	n := a.nodes[id]
	newID := a.Alloc(n.kind, newParent, n.stmt)
	a.nodes[newID].common = cloneCommonAttrs(n.common)
	a.nodes[newID].attrs = cloneAttrs(n.kind, n.attrs)
	for _, c := range n.children {
		a.CloneSubtree(c, newID)
	}
	a.retargetClonedType(newID)
	return newID
}

// retargetClonedType fixes up a cloned leaf/leaf-list's Type field, which
// cloneAttrs copied verbatim from the source (so it still points at the
// source's own KindType child) to instead point at newID's own freshly
// cloned KindType child. Every leaf/leaf-list has exactly one.
func (a *Arena) retargetClonedType(newID NodeID) {
	switch v := a.Attrs(newID).(type) {
	case LeafAttrs:
		if t := a.ChildrenOfKind(newID, KindType); len(t) == 1 {
			v.Type = t[0]
			a.SetAttrs(newID, v)
		}
	case LeafListAttrs:
		if t := a.ChildrenOfKind(newID, KindType); len(t) == 1 {
			v.Type = t[0]
			a.SetAttrs(newID, v)
		}
	}
}

func cloneCommonAttrs(c CommonAttrs) CommonAttrs {
	out := c
	out.IfFeatures = append([]string(nil), c.IfFeatures...)
	out.Musts = append([]MustAttrs(nil), c.Musts...)
	out.Extensions = append([]ExtensionUse(nil), c.Extensions...)
	return out
}

// cloneAttrs deep-copies a kind-specific capability record so a clone
// never aliases a slice (or other reference field) with its source.
func cloneAttrs(kind Kind, attrs interface{}) interface{} {
	if attrs == nil {
		return nil
	}
	switch v := attrs.(type) {
	case LeafAttrs:
		return v
	case LeafListAttrs:
		cp := v
		cp.Defaults = append([]string(nil), v.Defaults...)
		return cp
	case ListAttrs:
		cp := v
		cp.Key = append([]string(nil), v.Key...)
		cp.Unique = make([][]string, len(v.Unique))
		for i, u := range v.Unique {
			cp.Unique[i] = append([]string(nil), u...)
		}
		return cp
	case ChoiceAttrs:
		return v
	case CaseAttrs:
		return v
	case ContainerAttrs:
		return v
	case UsesAttrs:
		cp := v
		cp.Refines = append([]NodeID(nil), v.Refines...)
		cp.Augments = append([]NodeID(nil), v.Augments...)
		return cp
	case RefineAttrs:
		cp := v
		cp.Default = append([]string(nil), v.Default...)
		cp.Musts = append([]MustAttrs(nil), v.Musts...)
		return cp
	case AugmentAttrs:
		return v
	case GroupingAttrs:
		return v
	case TypedefAttrs:
		return v
	case TypeAttrs:
		cp := v
		if v.Resolved != nil {
			r := *v.Resolved
			r.Length = append([]LengthPart(nil), v.Resolved.Length...)
			r.Range = append([]RangePart(nil), v.Resolved.Range...)
			r.Pattern = append([]string(nil), v.Resolved.Pattern...)
			r.POSIXPattern = append([]string(nil), v.Resolved.POSIXPattern...)
			r.Enums = append([]EnumAttrs(nil), v.Resolved.Enums...)
			r.Bits = append([]EnumAttrs(nil), v.Resolved.Bits...)
			r.Union = append([]NodeID(nil), v.Resolved.Union...)
			cp.Resolved = &r
		}
		return cp
	case IdentityAttrs:
		cp := v
		cp.BaseNames = append([]string(nil), v.BaseNames...)
		cp.Bases = append([]NodeID(nil), v.Bases...)
		return cp
	case FeatureAttrs:
		return v
	case ExtensionAttrs:
		return v
	case RPCAttrs:
		return v
	case ActionAttrs:
		return v
	case NotificationAttrs:
		return v
	case InputAttrs:
		return v
	case OutputAttrs:
		return v
	case ModuleAttrs:
		cp := v
		cp.Imports = append([]ImportAttrs(nil), v.Imports...)
		cp.Includes = append([]IncludeAttrs(nil), v.Includes...)
		cp.Revisions = append([]string(nil), v.Revisions...)
		return cp
	case DeviationAttrs:
		return v
	case DeviateAttrs:
		cp := v
		cp.Default = append([]string(nil), v.Default...)
		return cp
	default:
		return attrs
	}
}
