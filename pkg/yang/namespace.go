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

// This file is phase 8 of the linker: namespace inheritance, implicit
// case insertion under "choice" (fixChoice), and (name, namespace)
// collision detection within a data node's collision scope, which
// widens to the whole choice for nodes declared inside one of its
// cases.

// fixChoice wraps every direct child of a KindChoice node that is not
// itself a KindCase in a synthesized, implicit KindCase, per RFC 7950
// §7.9.2's "shorthand" case syntax. It preserves declaration order.
func (l *linker) fixChoice(root NodeID) {
	l.walk(root, func(id NodeID) {
		if l.arena.Kind(id) != KindChoice {
			return
		}
		children := append([]NodeID(nil), l.arena.Children(id)...)
		out := make([]NodeID, 0, len(children))
		for _, c := range children {
			if l.arena.Kind(c) == KindCase || l.arena.Kind(c) == KindWhen {
				out = append(out, c)
				continue
			}
			caseID := l.arena.Alloc(KindCase, id, l.arena.Statement(c))
			l.arena.Common(caseID).Name = l.arena.Common(c).Name
			l.arena.SetAttrs(caseID, CaseAttrs{Implicit: true})
			l.arena.Reparent(c, caseID)
			out = append(out, caseID)
		}
		l.arena.ReplaceChildren(id, out)
	})
}

// inheritNamespace propagates the effective namespace down from each
// module, writing it into every node whose own Namespace field is still
// empty. A node whose Namespace was already set (by stampAugmentingModule,
// for an augment's introduced nodes) keeps it and passes it on to its
// descendants.
func (l *linker) inheritNamespace(root NodeID, inherited string) {
	c := l.arena.Common(root)
	if c.Namespace == "" {
		c.Namespace = inherited
	} else {
		inherited = c.Namespace
	}
	if ma, ok := l.arena.Attrs(root).(ModuleAttrs); ok {
		inherited = ma.Namespace
	}
	for _, ch := range l.arena.Children(root) {
		l.inheritNamespace(ch, inherited)
	}
}

// SchemaIDMap is the per-scope set of (name, namespace) identifiers
// already claimed in one collision scope, keyed by schema-id so a lookup
// never needs to re-walk the scope's children. A "case" contributes its
// children directly to the map of its enclosing choice, rather than
// getting a map of its own: RFC 7950 §7.9.2 requires node identifiers to
// be unique across all of a choice's cases, even though only one case is
// ever instantiated at a time.
type SchemaIDMap map[string]NodeID

func schemaKey(a *Arena, id NodeID) string {
	return a.Common(id).Namespace + "\x00" + a.Common(id).Name
}

// collisionScope returns the node whose SchemaIDMap id belongs in: id's
// nearest ancestor that is not a "case", following the same
// case-is-transparent rule Arena.DataParent uses for path resolution.
func (l *linker) collisionScope(id NodeID) NodeID {
	return l.arena.DataParent(id)
}

// detectCollidingChild records child in its collision scope's
// SchemaIDMap (allocating the map on first use) and reports the node
// already occupying that schema-id, if any, so the caller can raise a
// collision error naming both the new statement and the earlier one.
func (l *linker) detectCollidingChild(scopes map[NodeID]SchemaIDMap, child NodeID) (NodeID, bool) {
	scope := l.collisionScope(child)
	m, ok := scopes[scope]
	if !ok {
		m = SchemaIDMap{}
		scopes[scope] = m
	}
	key := schemaKey(l.arena, child)
	prev, collides := m[key]
	if !collides {
		m[key] = child
	}
	return prev, collides
}

// checkCollisions enforces that no two nodes sharing a collision scope --
// ordinary siblings, or case branches of the same choice -- declare the
// same (name, namespace) pair, per the schema tree's uniqueness rule.
// Run after uses/augment/deviation expansion so it sees the fully
// instantiated tree, not the pre-expansion syntax.
func (l *linker) checkCollisions(root NodeID) {
	scopes := map[NodeID]SchemaIDMap{}
	l.walk(root, func(id NodeID) {
		if id == root {
			return
		}
		if !l.arena.Kind(id).IsDataNode() && l.arena.Kind(id) != KindCase {
			return
		}
		prev, collides := l.detectCollidingChild(scopes, id)
		if collides {
			l.errf(errStructural(l.arena.Statement(id), DuplicateStatement,
				"%q collides with a sibling already defined at %s", l.arena.Common(id).Name, posOf(l.arena.Statement(prev))))
		}
	})
}
