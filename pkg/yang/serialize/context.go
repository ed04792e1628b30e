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

package serialize

import "github.com/yangschema/compiler/pkg/yang"

// Context is the serializer context of a resolved tree: the read-only
// view downstream code builds against once the linker has finished and
// handed the tree over as immutable.
type Context struct {
	tree        *yang.ResolvedTree
	annotations map[SchemaID]interface{}
}

// NewContext builds a Context over tree, with annotations supplied by the
// caller and looked up by SchemaID rather than walked from the tree, since
// they are protocol-specific metadata the schema itself carries no record of.
func NewContext(tree *yang.ResolvedTree, annotations map[SchemaID]interface{}) *Context {
	return &Context{tree: tree, annotations: annotations}
}

// RootContext returns the module-level schema nodes the tree resolved to.
func (c *Context) RootContext() []yang.NodeID {
	return c.tree.Modules
}

// ProtocolAnnotation looks up the annotation registered for id, if any.
func (c *Context) ProtocolAnnotation(id SchemaID) (interface{}, bool) {
	v, ok := c.annotations[id]
	return v, ok
}

// Lookup walks the tree following r's schema-ids, starting from the data
// children of the module roots (a ResourceId, as BuildResourceId makes
// it, does not name the module itself), and returns the schema node that
// produced it. List and leaf-list key values address a specific instance,
// not a schema node, so Lookup ignores them and matches on SchemaID alone.
func (c *Context) Lookup(r *ResourceId) (yang.NodeID, bool) {
	if len(r.Elems) == 0 {
		return yang.NilNode, false
	}
	var candidates []yang.NodeID
	for _, m := range c.tree.Modules {
		candidates = append(candidates, dataChildren(c.tree.Arena, m)...)
	}
	var cur yang.NodeID
	for i, elem := range r.Elems {
		found := yang.NilNode
		for _, cand := range candidates {
			if schemaIDOf(c.tree.Arena, cand) == elem.Schema {
				found = cand
				break
			}
		}
		if found == yang.NilNode {
			return yang.NilNode, false
		}
		cur = found
		if i < len(r.Elems)-1 {
			candidates = dataChildren(c.tree.Arena, cur)
		}
	}
	return cur, true
}

// BuildResourceId walks up from id to its nearest module, returning the
// ResourceId of plain (non-instance) NodeKeys addressing id's schema path.
// Callers addressing a list or leaf-list instance build its ResourceId
// directly with a ResourceIdBuilder instead, supplying the key values
// BuildResourceId has no way to know.
func BuildResourceId(a *yang.Arena, id yang.NodeID) *ResourceId {
	var chain []yang.NodeID
	for n := id; n != yang.NilNode && a.Kind(n) != yang.KindModule && a.Kind(n) != yang.KindSubmodule; n = a.Parent(n) {
		if a.Kind(n) == yang.KindCase {
			continue // case is transparent in schema-id addressing
		}
		chain = append(chain, n)
	}
	b := NewResourceIdBuilder()
	for i := len(chain) - 1; i >= 0; i-- {
		sid := schemaIDOf(a, chain[i])
		b.AddBranchPointSchema(sid.Name, sid.Namespace)
	}
	r, err := b.Build()
	if err != nil {
		return nil
	}
	return r
}

func schemaIDOf(a *yang.Arena, id yang.NodeID) SchemaID {
	c := a.Common(id)
	return SchemaID{Name: c.Name, Namespace: c.Namespace}
}

// dataChildren returns id's children that belong in the data-tree walk: a
// case's own children lift through transparently, since a ResourceId
// never names the case that wraps a choice's data node, only the choice's
// nearest enclosing real schema node and the node itself.
func dataChildren(a *yang.Arena, id yang.NodeID) []yang.NodeID {
	var out []yang.NodeID
	for _, c := range a.Children(id) {
		switch {
		case a.Kind(c) == yang.KindCase:
			out = append(out, dataChildren(a, c)...)
		case a.Kind(c).IsDataNode():
			out = append(out, c)
		}
	}
	return out
}
