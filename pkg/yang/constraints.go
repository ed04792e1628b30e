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

// This file is the exit-validation half of phase 9: structural
// invariants that only make sense once uses/augment/deviation have all
// been applied and every type has resolved, so build.go cannot check
// them while it is still walking one file's raw statement tree.

// validateConstraints checks RFC 7950 §7.9.3's choice-default rules and
// §7.8.2's list-key rules against the fully linked tree.
func (l *linker) validateConstraints(modules []NodeID) {
	for _, m := range modules {
		l.walk(m, func(id NodeID) {
			switch l.arena.Kind(id) {
			case KindChoice:
				l.validateChoiceDefault(id)
			case KindList:
				l.validateListKeys(id)
			}
		})
	}
}

// validateChoiceDefault enforces that a "mandatory true" choice carries
// no "default" at all, and that a "default" case names one of the
// choice's own cases (by the time this runs, fixChoice has already
// wrapped every shorthand child in an implicit case of the same name).
func (l *linker) validateChoiceDefault(id NodeID) {
	ca, _ := l.arena.Attrs(id).(ChoiceAttrs)
	stmt := l.arena.Statement(id)
	if ca.Default == "" {
		return
	}
	if ca.Mandatory == TSTrue {
		l.errf(errConstraint(stmt, "choice %q: mandatory and default are mutually exclusive", l.arena.Common(id).Name))
		return
	}
	for _, c := range l.arena.Children(id) {
		if l.arena.Kind(c) == KindCase && l.arena.Common(c).Name == ca.Default {
			return
		}
	}
	l.errf(errConstraint(stmt, "choice %q: default case %q is not one of its cases", l.arena.Common(id).Name, ca.Default))
}

// validateListKeys enforces that a config-true list names at least one
// key leaf, that each named key is a direct child leaf rather than
// something deeper or missing, that no key leaf repeats, that no key
// leaf is of type "empty" (a config-true key must be comparable for
// equality against a fixed, meaningful value set), and that every key
// leaf's effective config matches the list's own.
func (l *linker) validateListKeys(id NodeID) {
	la, _ := l.arena.Attrs(id).(ListAttrs)
	stmt := l.arena.Statement(id)
	name := l.arena.Common(id).Name

	if l.effectiveConfig(id) != TSTrue {
		return
	}
	if len(la.Key) == 0 {
		l.errf(errConstraint(stmt, "list %q: a config-true list must have a 'key' statement", name))
		return
	}

	seen := map[string]bool{}
	for _, key := range la.Key {
		if seen[key] {
			l.errf(errConstraint(stmt, "list %q: key leaf %q named more than once", name, key))
			continue
		}
		seen[key] = true

		var keyLeaf NodeID
		for _, c := range l.arena.Children(id) {
			if l.arena.Kind(c) == KindLeaf && l.arena.Common(c).Name == key {
				keyLeaf = c
				break
			}
		}
		if keyLeaf == NilNode {
			l.errf(errConstraint(stmt, "list %q: key leaf %q is not a direct child leaf", name, key))
			continue
		}

		ka, _ := l.arena.Attrs(keyLeaf).(LeafAttrs)
		if kta, _ := l.arena.Attrs(ka.Type).(TypeAttrs); kta.Resolved != nil && kta.Resolved.Builtin == BuiltinEmpty {
			l.errf(errConstraint(l.arena.Statement(keyLeaf), "list %q: key leaf %q must not be of type 'empty'", name, key))
		}
		if l.effectiveConfig(keyLeaf) != l.effectiveConfig(id) {
			l.errf(errConstraint(l.arena.Statement(keyLeaf), "list %q: key leaf %q's config does not match the list's", name, key))
		}
	}
}

// effectiveConfig resolves id's inherited "config" value by walking up
// to the nearest node (including itself) that set one explicitly;
// unset at every ancestor defaults to true, per RFC 7950 §7.21.1.
func (l *linker) effectiveConfig(id NodeID) TriState {
	for n := id; n != NilNode; n = l.arena.DataParent(n) {
		var cfg TriState
		switch a := l.arena.Attrs(n).(type) {
		case LeafAttrs:
			cfg = a.Config
		case LeafListAttrs:
			cfg = a.Config
		case ListAttrs:
			cfg = a.Config
		case ContainerAttrs:
			cfg = a.Config
		case ChoiceAttrs:
			cfg = a.Config
		case DataNodeAttrs:
			cfg = a.Config
		default:
			continue
		}
		if cfg != TSUnset {
			return cfg
		}
	}
	return TSTrue
}
