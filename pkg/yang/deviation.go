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

// This file applies "deviation" statements (RFC 7950 §7.20.3), run after
// uses/augment expansion since a deviation's target may be a node that
// augmentation only just introduced. "not-supported" detaches the target
// from the tree entirely; "add"/"replace"/"delete" rewrite the fields a
// deviate statement names on the target's existing capability record.

// applyDeviations resolves every top-level "deviation" statement reachable
// from modules and applies its "deviate" children to the target node.
func (l *linker) applyDeviations(modules []NodeID) {
	var deviations []NodeID
	for _, m := range modules {
		deviations = append(deviations, l.arena.ChildrenOfKind(m, KindDeviation)...)
	}
	for _, id := range deviations {
		da, _ := l.arena.Attrs(id).(DeviationAttrs)
		target := l.resolveDeviationTarget(id, da.TargetPath)
		if target == NilNode {
			l.errf(errReference(l.arena.Statement(id), UnresolvedReference,
				"deviation %q: could not resolve target", da.TargetPath))
			continue
		}
		da.Target = target
		da.State = Linked
		l.arena.SetAttrs(id, da)

		for _, dv := range l.arena.ChildrenOfKind(id, KindDeviate) {
			dva, _ := l.arena.Attrs(dv).(DeviateAttrs)
			if dva.Action == "not-supported" {
				l.arena.Reparent(target, NilNode)
				continue
			}
			l.applyDeviate(target, dva)
		}
	}
}

// applyDeviate rewrites the fields a non-"not-supported" deviate
// statement names on target's capability record, leaving every other
// field untouched. A deviate's "type" substatement is not applied: the
// target keeps its own type.
func (l *linker) applyDeviate(target NodeID, dva DeviateAttrs) {
	switch a := l.arena.Attrs(target).(type) {
	case LeafAttrs:
		if dva.Config != TSUnset {
			a.Config = dva.Config
		}
		if dva.Mandatory != TSUnset {
			a.Mandatory = dva.Mandatory
		}
		if len(dva.Default) > 0 {
			a.Default = dva.Default[0]
		}
		if dva.Units != nil {
			a.Units = *dva.Units
		}
		l.arena.SetAttrs(target, a)
	case LeafListAttrs:
		if dva.Config != TSUnset {
			a.Config = dva.Config
		}
		if dva.Units != nil {
			a.Units = *dva.Units
		}
		if len(dva.Default) > 0 {
			a.Defaults = dva.Default
		}
		if dva.MinElem != nil {
			a.MinElements = *dva.MinElem
		}
		if dva.MaxElem != nil {
			a.MaxElements = *dva.MaxElem
		}
		l.arena.SetAttrs(target, a)
	case ListAttrs:
		if dva.Config != TSUnset {
			a.Config = dva.Config
		}
		if dva.MinElem != nil {
			a.MinElements = *dva.MinElem
		}
		if dva.MaxElem != nil {
			a.MaxElements = *dva.MaxElem
		}
		l.arena.SetAttrs(target, a)
	case ContainerAttrs:
		if dva.Config != TSUnset {
			a.Config = dva.Config
		}
		l.arena.SetAttrs(target, a)
	case ChoiceAttrs:
		if dva.Config != TSUnset {
			a.Config = dva.Config
		}
		if len(dva.Default) > 0 {
			a.Default = dva.Default[0]
		}
		if dva.Mandatory != TSUnset {
			a.Mandatory = dva.Mandatory
		}
		l.arena.SetAttrs(target, a)
	}
}

// resolveDeviationTarget resolves a deviation's absolute schema-node path
// the same way resolveAugmentTarget does, against the current tree.
func (l *linker) resolveDeviationTarget(deviationStmt NodeID, path string) NodeID {
	segments := splitPath(path)
	if len(segments) == 0 {
		return NilNode
	}
	ctxModule := nearestModule(l.arena, deviationStmt)
	prefix, local, hasPrefix := splitPrefixed(segments[0])
	mod := ctxModule
	if hasPrefix {
		mod = l.resolveModuleByPrefix(ctxModule, prefix)
		if mod == NilNode {
			return NilNode
		}
	}
	cur := findByName(l.arena, l.arena.Children(mod), local)
	for _, seg := range segments[1:] {
		if cur == NilNode {
			return NilNode
		}
		cur = findByName(l.arena, l.arena.Children(cur), seg)
	}
	return cur
}
