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

// This file orchestrates the linker: the nine-phase pass that turns a
// set of independently parsed Arenas into one ResolvedTree. It carries
// all linking state on a *linker value scoped to a single ResolveSet
// call, rather than on package-level maps, so two concurrent ResolveSet
// calls over different module sets never interfere with each other.

import (
	"fmt"
	"strings"
)

// ParsedUnit is one source file's parse result, as returned by ParseFile,
// ready to be linked together with its imports/includes by ResolveSet.
type ParsedUnit struct {
	Arena *Arena
	Root  NodeID
}

// ResolvedTree is the output of linking: a single Arena holding every
// input module/submodule merged together, with every uses/augment/type/
// identity reference resolved to a NodeID within it.
type ResolvedTree struct {
	Arena   *Arena
	Modules []NodeID // top-level KindModule nodes, submodules merged away
}

// linker carries the state of one ResolveSet call.
type linker struct {
	arena *Arena
	errs  []error
}

func (l *linker) errf(err error) {
	l.errs = append(l.errs, err)
}

// walk calls fn once for id and every node in its subtree, pre-order.
func (l *linker) walk(id NodeID, fn func(NodeID)) {
	if id == NilNode {
		return
	}
	fn(id)
	for _, c := range l.arena.Children(id) {
		l.walk(c, fn)
	}
}

// ResolveSet links units together into one ResolvedTree. Phases:
//  1. merge every unit's module/submodule into one Arena
//  2. fold submodules into the module they belong-to
//  3. resolve imports by module name against the modules present in units
//     (one not among them is a missing-import error) and reject import cycles
//  4. resolve typedef/identity references to a fixed point
//  5. expand "uses" to a fixed point
//  6. apply top-level "augment" statements
//  7. apply "deviation"/"deviate" statements
//  8. finalize namespaces (fixChoice, inherit, collision check)
//  9. resolve every leafref's "path" against the final tree and check
//     the remaining exit-validation invariants (choice default/mandatory,
//     list key rules)
func ResolveSet(units []ParsedUnit, opts Options) (*ResolvedTree, []error) {
	l := &linker{arena: NewArena()}

	byName := map[string]NodeID{}
	moduleIndex := map[string]int{}
	var modules []NodeID
	for _, u := range units {
		clone := l.arena.CloneSubtree(u.Root, NilNode)
		name := l.arena.Common(clone).Name
		if existing, ok := byName[name]; ok {
			ea, _ := l.arena.Attrs(existing).(ModuleAttrs)
			na, _ := l.arena.Attrs(clone).(ModuleAttrs)
			existingRev, newRev := latestRevision(ea), latestRevision(na)
			if opts.RevisionPolicy == PolicyStrict && existingRev == newRev {
				l.errf(fmt.Errorf("module %q supplied more than once", name))
				continue
			}
			// A later revision of an already-present module/submodule
			// replaces the earlier one, mirroring PolicyLatest's
			// newest-by-lexical-sort tie-break in findInDir.
			if newRev < existingRev {
				continue
			}
		}
		byName[name] = clone
		if l.arena.Kind(clone) == KindModule {
			if i, ok := moduleIndex[name]; ok {
				modules[i] = clone
			} else {
				moduleIndex[name] = len(modules)
				modules = append(modules, clone)
			}
		}
	}

	l.foldSubmodules(byName, opts)
	l.resolveImports(byName, modules)
	l.checkImportCycles(modules)

	for _, m := range modules {
		l.resolveTypes(m)
		l.resolveIdentities(m)
	}
	for _, m := range modules {
		l.expandUses(m)
	}
	l.applyAugments(modules)
	l.applyDeviations(modules)
	for _, m := range modules {
		l.fixChoice(m)
		ma, _ := l.arena.Attrs(m).(ModuleAttrs)
		l.inheritNamespace(m, ma.Namespace)
		l.checkCollisions(m)
	}
	l.validateReferences(modules)
	l.validateConstraints(modules)

	l.arena.DiscardRawTypes()
	return &ResolvedTree{Arena: l.arena, Modules: modules}, l.errs
}

// latestRevision returns the newest of ma's declared "revision-date"
// substatements, by lexical (== chronological, for YYYY-MM-DD) sort, or
// "" if it has none. revision-date strings are not required to be
// listed in chronological order in the source, so the comparison can't
// just take ma.Revisions[0].
func latestRevision(ma ModuleAttrs) string {
	best := ""
	for _, r := range ma.Revisions {
		if r > best {
			best = r
		}
	}
	return best
}

// foldSubmodules reparents every submodule's children into the module
// its belongs-to names, resolving each module's include list in the
// process. A submodule contributes no node of its own to the final tree.
func (l *linker) foldSubmodules(byName map[string]NodeID, opts Options) {
	for name, id := range byName {
		if l.arena.Kind(id) != KindSubmodule {
			continue
		}
		ma, _ := l.arena.Attrs(id).(ModuleAttrs)
		owner, ok := byName[ma.BelongsTo]
		if !ok {
			l.errf(errReference(l.arena.Statement(id), MissingImport,
				"submodule %q: belongs-to %q not found", name, ma.BelongsTo))
			continue
		}
		if !opts.IgnoreSubmoduleCircularDependencies && l.isAncestorSubmodule(owner, id) {
			l.errf(errReference(l.arena.Statement(id), CyclicReference,
				"submodule %q: circular include via %q", name, ma.BelongsTo))
			continue
		}
		for _, c := range append([]NodeID(nil), l.arena.Children(id)...) {
			l.arena.Reparent(c, owner)
		}
		oa, _ := l.arena.Attrs(owner).(ModuleAttrs)
		oa.Includes = append(oa.Includes, IncludeAttrs{SubmoduleName: name, Resolved: id})
		l.arena.SetAttrs(owner, oa)
	}
}

// isAncestorSubmodule is a conservative placeholder for the include-graph
// cycle check: submodule folding here is one level (belongs-to), so a
// true cycle would require a submodule to belong-to itself.
func (l *linker) isAncestorSubmodule(owner, submodule NodeID) bool {
	return owner == submodule
}

// resolveImports matches each module's "import" statements to one of the
// other modules already present in byName, by module name. A module not
// found among the supplied units is reported as a missing import: this
// linker resolves within the set it is given rather than reading from
// disk (ParseFile/findFile already did that for the caller).
func (l *linker) resolveImports(byName map[string]NodeID, modules []NodeID) {
	for _, m := range modules {
		ma, _ := l.arena.Attrs(m).(ModuleAttrs)
		for i, imp := range ma.Imports {
			target, ok := byName[imp.ModuleName]
			if !ok {
				l.errf(errReference(l.arena.Statement(m), MissingImport,
					"module %q: import %q not found", l.arena.Common(m).Name, imp.ModuleName))
				continue
			}
			ma.Imports[i].Resolved = target
		}
		l.arena.SetAttrs(m, ma)
	}
}

// checkImportCycles rejects a set of modules whose "import" statements
// form a cycle (spec §4.4 phase 3: "mutually dependent modules are
// rejected"). Runs after resolveImports so every import's Resolved field
// already names its target module; a white/gray/black DFS over that
// import graph mirrors isAncestorSubmodule's one-level check, generalized
// to cycles of any length.
func (l *linker) checkImportCycles(modules []NodeID) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[NodeID]int{}

	var visit func(m NodeID) bool
	visit = func(m NodeID) bool {
		color[m] = gray
		ma, _ := l.arena.Attrs(m).(ModuleAttrs)
		for _, imp := range ma.Imports {
			if imp.Resolved == NilNode {
				continue
			}
			switch color[imp.Resolved] {
			case gray:
				l.errf(errReference(l.arena.Statement(m), CyclicReference,
					"module %q: import cycle via %q", l.arena.Common(m).Name, l.arena.Common(imp.Resolved).Name))
				return true
			case white:
				if visit(imp.Resolved) {
					return true
				}
			}
		}
		color[m] = black
		return false
	}

	for _, m := range modules {
		if color[m] == white {
			visit(m)
		}
	}
}

// validateReferences checks that every leafref "path" actually resolves
// to a leaf or leaf-list node in the final, fully linked tree. It does
// not evaluate a path's predicates ("[key=current()/../x]"), only the
// schema-node steps, since predicate evaluation addresses an instance,
// not a schema node.
func (l *linker) validateReferences(modules []NodeID) {
	for _, m := range modules {
		l.walk(m, func(id NodeID) {
			if l.arena.Kind(id) != KindType {
				return
			}
			ta, _ := l.arena.Attrs(id).(TypeAttrs)
			if ta.Resolved == nil || ta.Resolved.Builtin != BuiltinLeafref {
				return
			}
			if ta.Resolved.Path == "" {
				l.errf(errStructural(l.arena.Statement(id), MissingHolder,
					"leafref type is missing a 'path' statement"))
				return
			}
			target := l.resolveLeafrefTarget(id, ta.Resolved.Path)
			if target == NilNode {
				l.errf(errReference(l.arena.Statement(id), UnresolvedReference,
					"leafref path %q does not resolve to any node", ta.Resolved.Path))
				return
			}
			if l.arena.Kind(target) != KindLeaf && l.arena.Kind(target) != KindLeafList {
				l.errf(errReference(l.arena.Statement(id), UnresolvedReference,
					"leafref path %q resolves to a %s, not a leaf or leaf-list", ta.Resolved.Path, l.arena.Kind(target)))
			}
		})
	}
}

// resolveLeafrefTarget resolves path (RFC 7950 §9.9.2's leafref path
// grammar, predicates aside) against the tree, starting from typeID's
// nearest enclosing leaf/leaf-list -- the context node a relative path's
// ".." steps are evaluated against.
func (l *linker) resolveLeafrefTarget(typeID NodeID, path string) NodeID {
	ctx := typeID
	for ctx != NilNode && l.arena.Kind(ctx) != KindLeaf && l.arena.Kind(ctx) != KindLeafList {
		ctx = l.arena.Parent(ctx)
	}
	if ctx == NilNode {
		return NilNode
	}

	if strings.HasPrefix(path, "/") {
		segments := splitPath(path)
		if len(segments) == 0 {
			return NilNode
		}
		ctxModule := nearestModule(l.arena, ctx)
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
			cur = l.stepInto(cur, seg)
		}
		return cur
	}

	cur := ctx
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if cur == NilNode {
			return NilNode
		}
		if seg == ".." {
			cur = l.arena.DataParent(cur)
			continue
		}
		cur = l.stepInto(cur, seg)
	}
	return cur
}

// stepInto resolves one path step -- a possibly prefixed identifier,
// with any instance predicate ("[...]") stripped since a predicate
// selects an instance, not a schema child -- as a named child of parent,
// looking transparently through "case" wrappers.
func (l *linker) stepInto(parent NodeID, seg string) NodeID {
	if i := strings.IndexByte(seg, '['); i >= 0 {
		seg = seg[:i]
	}
	_, local, _ := splitPrefixed(seg)
	for _, c := range l.arena.Children(parent) {
		if l.arena.Kind(c) == KindCase {
			if found := l.stepInto(c, seg); found != NilNode {
				return found
			}
			continue
		}
		if l.arena.Common(c).Name == local {
			return c
		}
	}
	return NilNode
}
