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

// This file is phase 6 of the linker: applying top-level "augment"
// statements (children of a module/submodule) to their target node,
// across module boundaries now that every unit shares one merged Arena.
// Invariant #1 (an augment's children keep the augmenting module's
// namespace, not the target's) is kept by stampAugmentingModule, which
// writes the augmenting module's namespace into every clone's
// CommonAttrs.Namespace, while the augment node itself records that module
// in AugmentAttrs.AugmentingMod, so later namespace-collision checks
// (namespace.go) can tell which nodes came from where.

// applyAugments resolves and applies every top-level augment reachable
// from modules, run to a fixed point since one augment's target may be a
// node introduced by an earlier augment.
func (l *linker) applyAugments(modules []NodeID) {
	var augments []NodeID
	for _, m := range modules {
		augments = append(augments, l.arena.ChildrenOfKind(m, KindAugment)...)
	}
	for {
		progress := false
		for _, id := range augments {
			aa, _ := l.arena.Attrs(id).(AugmentAttrs)
			if aa.State == Linked || aa.State == ResolveFailed {
				continue
			}
			target := l.resolveAugmentTarget(id, aa.TargetPath)
			if target == NilNode {
				continue
			}
			if !l.checkAugmentable(id, target) {
				aa.State = ResolveFailed
				l.arena.SetAttrs(id, aa)
				progress = true
				continue
			}
			aa.Target = target
			aa.AugmentingMod = nearestModule(l.arena, id)
			for _, c := range l.arena.Children(id) {
				if l.arena.Kind(c) == KindWhen {
					continue
				}
				clone := l.arena.CloneSubtree(c, target)
				l.stampAugmentingModule(clone, aa.AugmentingMod)
			}
			aa.State = Linked
			l.arena.SetAttrs(id, aa)
			progress = true
		}
		if !progress {
			break
		}
	}
	for _, id := range augments {
		aa, _ := l.arena.Attrs(id).(AugmentAttrs)
		if aa.State == Unresolved || aa.State == IntraFileResolved {
			l.errf(errReference(l.arena.Statement(id), UnresolvedReference,
				"augment %q: could not resolve target", aa.TargetPath))
		}
	}
}

// checkAugmentable enforces RFC 7950 §7.17's augment-target rules: a
// leaf or leaf-list can never be augmented into, and an augment whose
// target is a "choice" may only add "case" children (a shorthand data
// node spliced straight into a choice would bypass the case it belongs
// under).
func (l *linker) checkAugmentable(augmentID, target NodeID) bool {
	switch l.arena.Kind(target) {
	case KindLeaf, KindLeafList:
		l.errf(errConstraint(l.arena.Statement(augmentID),
			"illegal augment target %q: cannot augment into a %s", l.arena.Common(target).Name, l.arena.Kind(target)))
		return false
	case KindChoice:
		for _, c := range l.arena.Children(augmentID) {
			if l.arena.Kind(c) == KindWhen || l.arena.Kind(c) == KindCase {
				continue
			}
			l.errf(errConstraint(l.arena.Statement(c),
				"illegal augment target %q: augmenting a choice may only add 'case' children", l.arena.Common(target).Name))
			return false
		}
	}
	return true
}

// stampAugmentingModule records the augmenting module's namespace on
// clone's own CommonAttrs when the node has no more specific namespace
// of its own yet, so namespace.go can resolve (name, namespace) without
// re-walking up to the augment statement.
func (l *linker) stampAugmentingModule(id, augmentingMod NodeID) {
	ma, _ := l.arena.Attrs(augmentingMod).(ModuleAttrs)
	c := l.arena.Common(id)
	if c.Namespace == "" {
		c.Namespace = ma.Namespace
	}
	for _, ch := range l.arena.Children(id) {
		l.stampAugmentingModule(ch, augmentingMod)
	}
}

// resolveAugmentTarget resolves an absolute schema-node path ("/prefix:a/
// prefix:b/...") in the context of the module the augment statement
// appears in, against the current (possibly partially-augmented) tree.
func (l *linker) resolveAugmentTarget(augmentStmt NodeID, path string) NodeID {
	segments := splitPath(path)
	if len(segments) == 0 {
		return NilNode
	}
	ctxModule := nearestModule(l.arena, augmentStmt)
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
