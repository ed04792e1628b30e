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

// This file is phase 5 of the linker: expanding "uses" statements by
// cloning the referenced grouping's children in place and applying any
// "refine" overrides, run to a fixed point since a grouping may itself
// use another grouping.

// expandUses finds every still-unexpanded KindUses node under root and
// clones its grouping's children into the uses node's parent, repeating
// until no uses node makes progress.
func (l *linker) expandUses(root NodeID) {
	for {
		progress := false
		for _, id := range l.collectUses(root) {
			ua, _ := l.arena.Attrs(id).(UsesAttrs)
			if ua.State == Linked {
				continue
			}
			grouping := l.findGrouping(id, ua.GroupingName)
			if grouping == NilNode {
				continue
			}
			if l.groupingUsesUnexpanded(grouping) {
				continue // clone after the grouping's own uses are flat
			}
			l.cloneGroupingInto(id, grouping, ua)
			ua.ResolvedTo = grouping
			ua.State = Linked
			l.arena.SetAttrs(id, ua)
			progress = true
		}
		if !progress {
			break
		}
	}
	for _, id := range l.collectUses(root) {
		ua, _ := l.arena.Attrs(id).(UsesAttrs)
		if ua.State != Linked {
			l.errf(errReference(l.arena.Statement(id), UnresolvedReference,
				"uses %q: could not resolve grouping", ua.GroupingName))
		}
	}
}

// collectUses returns every KindUses node in root's subtree, re-walked
// each fixed-point iteration because cloning a grouping can introduce new
// nested uses nodes.
func (l *linker) collectUses(root NodeID) []NodeID {
	var out []NodeID
	l.walk(root, func(id NodeID) {
		if l.arena.Kind(id) == KindUses {
			out = append(out, id)
		}
	})
	return out
}

// groupingUsesUnexpanded reports whether grouping itself still contains
// an unresolved uses, so expansion of outer uses statements waits for it.
func (l *linker) groupingUsesUnexpanded(grouping NodeID) bool {
	found := false
	l.walk(grouping, func(id NodeID) {
		if l.arena.Kind(id) != KindUses {
			return
		}
		ua, _ := l.arena.Attrs(id).(UsesAttrs)
		if ua.State != Linked {
			found = true
		}
	})
	return found
}

// findGrouping looks for a grouping named name visible from id: id's own
// ancestor chain first (innermost wins), then a "prefix:name" reference
// into an imported module's top-level groupings.
func (l *linker) findGrouping(id NodeID, name string) NodeID {
	prefix, local, hasPrefix := splitPrefixed(name)
	if hasPrefix {
		mod := l.resolveModuleByPrefix(nearestModule(l.arena, id), prefix)
		if mod == NilNode {
			return NilNode
		}
		for _, g := range l.arena.ChildrenOfKind(mod, KindGrouping) {
			if l.arena.Common(g).Name == local {
				return g
			}
		}
		return NilNode
	}
	for n := id; n != NilNode; n = l.arena.Parent(n) {
		for _, g := range l.arena.ChildrenOfKind(n, KindGrouping) {
			if l.arena.Common(g).Name == local {
				return g
			}
		}
	}
	return NilNode
}

// cloneGroupingInto deep-clones grouping's children under uses's parent,
// preserving declaration order around the uses statement's position, then
// applies every refine and nested augment the uses statement carries.
func (l *linker) cloneGroupingInto(uses, grouping NodeID, ua UsesAttrs) {
	parent := l.arena.Parent(uses)
	clones := make([]NodeID, 0, len(l.arena.Children(grouping)))
	for _, c := range l.arena.Children(grouping) {
		switch l.arena.Kind(c) {
		case KindTypedef, KindGrouping:
			continue // definitions, not instantiated by uses
		}
		clone := l.arena.CloneSubtree(c, parent)
		clones = append(clones, clone)
	}
	// CloneSubtree appended the clones at the end of parent's child list;
	// move them to just after the uses statement.
	kids := l.arena.Children(parent)
	order := make([]NodeID, 0, len(kids))
	for _, c := range kids[:len(kids)-len(clones)] {
		order = append(order, c)
		if c == uses {
			order = append(order, clones...)
		}
	}
	l.arena.ReplaceChildren(parent, order)
	for _, refine := range ua.Refines {
		ra, _ := l.arena.Attrs(refine).(RefineAttrs)
		target := l.findRefineTarget(clones, ra.TargetPath)
		if target == NilNode {
			l.errf(errReference(l.arena.Statement(refine), UnresolvedReference,
				"refine %q: no such node under this uses", ra.TargetPath))
			continue
		}
		l.applyRefine(target, ra)
	}
	for _, aug := range ua.Augments {
		aa, _ := l.arena.Attrs(aug).(AugmentAttrs)
		target := l.findRefineTarget(clones, aa.TargetPath)
		if target == NilNode {
			l.errf(errReference(l.arena.Statement(aug), UnresolvedReference,
				"augment %q: no such node under this uses", aa.TargetPath))
			continue
		}
		for _, c := range l.arena.Children(aug) {
			l.arena.CloneSubtree(c, target)
		}
	}
}

// findRefineTarget resolves a refine/in-uses-augment's slash-separated
// path (relative to the cloned grouping's top level) to a NodeID among
// clones and their descendants.
func (l *linker) findRefineTarget(clones []NodeID, path string) NodeID {
	segments := splitPath(path)
	if len(segments) == 0 {
		return NilNode
	}
	cur := findByName(l.arena, clones, segments[0])
	for _, seg := range segments[1:] {
		if cur == NilNode {
			return NilNode
		}
		cur = findByName(l.arena, l.arena.Children(cur), seg)
	}
	return cur
}

func findByName(a *Arena, candidates []NodeID, seg string) NodeID {
	_, local, _ := splitPrefixed(seg)
	for _, c := range candidates {
		if a.Common(c).Name == local {
			return c
		}
	}
	return NilNode
}

func splitPath(path string) []string {
	var out []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if i > start {
				out = append(out, path[start:i])
			}
			start = i + 1
		}
	}
	if start < len(path) {
		out = append(out, path[start:])
	}
	return out
}

// applyRefine copies each non-nil override field of ra onto target's own
// attribute record, dispatching on target's kind since a refine's
// applicable fields depend on what kind of node it targets.
func (l *linker) applyRefine(target NodeID, ra RefineAttrs) {
	if ra.Description != nil {
		l.arena.Common(target).Description = *ra.Description
	}
	if ra.Reference != nil {
		l.arena.Common(target).Reference = *ra.Reference
	}
	if len(ra.Musts) > 0 {
		l.arena.Common(target).Musts = append(l.arena.Common(target).Musts, ra.Musts...)
	}
	switch a := l.arena.Attrs(target).(type) {
	case LeafAttrs:
		if ra.Config != TSUnset {
			a.Config = ra.Config
		}
		if ra.Mandatory != TSUnset {
			a.Mandatory = ra.Mandatory
		}
		if len(ra.Default) == 1 {
			a.Default = ra.Default[0]
		}
		l.arena.SetAttrs(target, a)
	case LeafListAttrs:
		if ra.Config != TSUnset {
			a.Config = ra.Config
		}
		if len(ra.Default) > 0 {
			a.Defaults = ra.Default
		}
		if ra.MinElements != nil {
			a.MinElements = *ra.MinElements
		}
		if ra.MaxElements != nil {
			a.MaxElements = *ra.MaxElements
		}
		l.arena.SetAttrs(target, a)
	case ListAttrs:
		if ra.Config != TSUnset {
			a.Config = ra.Config
		}
		if ra.MinElements != nil {
			a.MinElements = *ra.MinElements
		}
		if ra.MaxElements != nil {
			a.MaxElements = *ra.MaxElements
		}
		l.arena.SetAttrs(target, a)
	case ContainerAttrs:
		if ra.Config != TSUnset {
			a.Config = ra.Config
		}
		if ra.Presence != nil {
			a.Presence = *ra.Presence
		}
		l.arena.SetAttrs(target, a)
	case ChoiceAttrs:
		if ra.Config != TSUnset {
			a.Config = ra.Config
		}
		if len(ra.Default) == 1 {
			a.Default = ra.Default[0]
		}
		l.arena.SetAttrs(target, a)
	}
}
