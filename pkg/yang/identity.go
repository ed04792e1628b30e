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

// This file is phase 4 (part 2) of the linker: resolving "identity" base
// references. Unlike the teacher's package-level identityDictionary, the
// set of known identities lives on the *linker for the duration of one
// ResolveSet call and is discarded with it.

// resolveIdentities resolves every KindIdentity node's BaseNames to the
// NodeID of the identity it derives from, run to a fixed point so that a
// base declared later in source (or in another module) still resolves.
func (l *linker) resolveIdentities(root NodeID) {
	for {
		progress := false
		l.walk(root, func(id NodeID) {
			if l.arena.Kind(id) != KindIdentity {
				return
			}
			ia, _ := l.arena.Attrs(id).(IdentityAttrs)
			if ia.State == Linked || len(ia.BaseNames) == len(ia.Bases) {
				return
			}
			ia.Bases = ia.Bases[:0]
			ok := true
			for _, name := range ia.BaseNames {
				base := l.findIdentity(id, name)
				if base == NilNode {
					ok = false
					break
				}
				if l.isIdentityAncestor(id, base) {
					l.errf(errReference(l.arena.Statement(id), CyclicReference,
						"identity %q has a circular base chain through %q", l.arena.Common(id).Name, l.arena.Common(base).Name))
					ia.State = ResolveFailed
					l.arena.SetAttrs(id, ia)
					return
				}
				ia.Bases = append(ia.Bases, base)
			}
			if ok {
				ia.State = Linked
				progress = true
			}
			l.arena.SetAttrs(id, ia)
		})
		if !progress {
			break
		}
	}
	l.walk(root, func(id NodeID) {
		if l.arena.Kind(id) != KindIdentity {
			return
		}
		ia, _ := l.arena.Attrs(id).(IdentityAttrs)
		if ia.State != Linked && len(ia.BaseNames) > 0 {
			l.errf(errReference(l.arena.Statement(id), UnresolvedReference,
				"identity %q: could not resolve base %v", l.arena.Common(id).Name, ia.BaseNames))
		}
	})
}

// isIdentityAncestor reports whether target is already reachable from id
// via the base chain resolved so far, i.e. adding base==target would close
// a cycle.
func (l *linker) isIdentityAncestor(id, target NodeID) bool {
	seen := map[NodeID]bool{}
	var walk func(n NodeID) bool
	walk = func(n NodeID) bool {
		if n == id {
			return true
		}
		if seen[n] {
			return false
		}
		seen[n] = true
		ia, _ := l.arena.Attrs(n).(IdentityAttrs)
		for _, b := range ia.Bases {
			if walk(b) {
				return true
			}
		}
		return false
	}
	return walk(target)
}

// IdentityValues returns every identity that derives (directly or
// transitively) from base, for validating an identityref instance value.
func IdentityValues(a *Arena, module NodeID, base NodeID) []NodeID {
	var out []NodeID
	for _, id := range a.ChildrenOfKind(module, KindIdentity) {
		if identityDerivesFrom(a, id, base) {
			out = append(out, id)
		}
	}
	return out
}

func identityDerivesFrom(a *Arena, id, base NodeID) bool {
	if id == base {
		return true
	}
	ia, _ := a.Attrs(id).(IdentityAttrs)
	for _, b := range ia.Bases {
		if identityDerivesFrom(a, b, base) {
			return true
		}
	}
	return false
}
