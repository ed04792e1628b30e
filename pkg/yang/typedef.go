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

// This file is phase 4 (part 1) of the linker: resolving every "type"
// statement's name against the builtin type table or a visible typedef,
// and narrowing range/length/pattern/enum/bit restrictions. It replaces
// the teacher's package-level typeDictionary cache with state carried on
// *linker, scoped to one ResolveSet call.

import "strconv"

// builtinDefaultRange returns the implicit range of an integer builtin
// type, used to validate a narrowing "range" restriction stays within it.
func builtinDefaultRange(b BuiltinKind) (min, max float64) {
	switch b {
	case BuiltinInt8:
		return -128, 127
	case BuiltinInt16:
		return -32768, 32767
	case BuiltinInt32:
		return -2147483648, 2147483647
	case BuiltinInt64:
		return -9223372036854775808, 9223372036854775807
	case BuiltinUint8:
		return 0, 255
	case BuiltinUint16:
		return 0, 65535
	case BuiltinUint32:
		return 0, 4294967295
	case BuiltinUint64:
		return 0, 18446744073709551615
	}
	return 0, 0
}

// resolveTypes resolves every KindType node reachable from root's subtree
// that has not yet been resolved. It is run to a fixed point because a
// local typedef may itself reference another typedef declared later in
// the same file.
func (l *linker) resolveTypes(root NodeID) {
	for {
		progress := false
		l.walk(root, func(id NodeID) {
			if l.arena.Kind(id) != KindType {
				return
			}
			ta, _ := l.arena.Attrs(id).(TypeAttrs)
			if ta.Resolved != nil {
				return
			}
			if l.resolveOneType(id, &ta) {
				progress = true
				l.arena.SetAttrs(id, ta)
			}
		})
		if !progress {
			break
		}
	}
	l.walk(root, func(id NodeID) {
		if l.arena.Kind(id) != KindType {
			return
		}
		ta, _ := l.arena.Attrs(id).(TypeAttrs)
		if ta.Resolved == nil {
			l.errf(errReference(l.arena.Statement(id), UnresolvedReference,
				"could not resolve type %q", ta.Name))
		}
	})
}

// resolveOneType attempts to resolve id's type name. It returns false
// (without error) when resolution depends on a typedef that is not yet
// resolved itself, so the caller's fixed-point loop retries later.
func (l *linker) resolveOneType(id NodeID, ta *TypeAttrs) bool {
	raw := l.arena.RawType(id)
	if raw == nil {
		raw = &rawType{Name: ta.Name}
	}

	if b, ok := builtinNames[ta.Name]; ok {
		rt := &ResolvedType{Name: ta.Name, Builtin: b, State: Linked}
		l.applyRestrictions(id, rt, raw)
		if b == BuiltinUnion {
			for _, c := range l.arena.ChildrenOfKind(id, KindType) {
				cta, _ := l.arena.Attrs(c).(TypeAttrs)
				if cta.Resolved == nil {
					return false
				}
				rt.Union = append(rt.Union, c)
			}
		}
		ta.Resolved = rt
		return true
	}

	td := l.findTypedef(id, ta.Name)
	if td == NilNode {
		return false
	}
	tda, _ := l.arena.Attrs(td).(TypedefAttrs)
	baseTypeID := tda.Type
	if baseTypeID == NilNode {
		return false
	}
	bta, _ := l.arena.Attrs(baseTypeID).(TypeAttrs)
	if bta.Resolved == nil {
		return false
	}
	rt := *bta.Resolved // copy, then narrow
	rt.Base = td
	rt.Name = ta.Name
	if tda.Units != "" {
		rt.Units = tda.Units
	}
	if s := l.arena.Statement(td); s != nil {
		for _, ch := range s.Children {
			if ch.Keyword == "default" {
				rt.Default = ch.Argument
			}
		}
	}
	l.applyRestrictions(id, &rt, raw)
	ta.Resolved = &rt
	return true
}

// applyRestrictions narrows rt in place using id's own range/length/
// pattern/enum/bit/path/base syntax. A range restriction on an integer
// type is checked against that builtin type's own bounds; a length
// restriction, and a range against a typedef's narrower range, are not
// checked.
func (l *linker) applyRestrictions(id NodeID, rt *ResolvedType, raw *rawType) {
	stmt := l.arena.Statement(id)
	if raw.Range != "" {
		parts := parseRangeParts(raw.Range)
		if min, max := builtinDefaultRange(rt.Builtin); max != 0 || min != 0 {
			for _, p := range parts {
				if (p.MinString == "" && p.Min < min) || (p.MaxString == "" && p.Max > max) {
					l.errf(errConstraint(stmt, "range %s exceeds base type %s", raw.Range, rt.Builtin))
				}
			}
		}
		rt.Range = parts
	}
	if raw.Length != "" {
		rt.Length = parseRangeParts(raw.Length)
	}
	if len(raw.Pattern) > 0 {
		rt.Pattern = append(rt.Pattern, raw.Pattern...)
	}
	if raw.FractionDigits != 0 {
		rt.FractionDigits = raw.FractionDigits
	}
	if raw.Path != "" {
		rt.Path = raw.Path
	}
	rt.OptionalInstance = raw.RequireInstance != "true"
	if len(raw.Enums) > 0 {
		rt.Enums = resolveEnumValues(raw.Enums, false)
	}
	if len(raw.Bits) > 0 {
		rt.Bits = resolveEnumValues(raw.Bits, true)
	}
	if raw.IdentityBase != "" {
		if base := l.findIdentity(id, raw.IdentityBase); base != NilNode {
			rt.IdentityBase = base
		} else {
			l.errf(errReference(stmt, UnresolvedReference, "unknown base identity %q", raw.IdentityBase))
		}
	}
}

// resolveEnumValues assigns auto-incrementing values/positions to
// enum/bit members that did not specify one explicitly, per RFC 7950
// §9.6.4.2 / §9.7.4.2.
func resolveEnumValues(raw []rawEnum, isBit bool) []EnumAttrs {
	out := make([]EnumAttrs, len(raw))
	next := int64(0)
	for i, r := range raw {
		out[i] = EnumAttrs{Name: r.Name, Status: r.Status}
		if r.HasVal {
			if n, err := strconv.ParseInt(r.Value, 10, 64); err == nil {
				out[i].Value = n
				out[i].HasVal = true
				next = n + 1
				continue
			}
		}
		out[i].Value = next
		out[i].HasVal = true
		next++
	}
	return out
}

// findTypedef looks for a typedef named name visible from id: first
// walking id's own ancestor chain (innermost scope wins), then the
// enclosing module's imported modules for a "prefix:name" reference.
func (l *linker) findTypedef(id NodeID, name string) NodeID {
	prefix, local, hasPrefix := splitPrefixed(name)
	if hasPrefix {
		mod := l.resolveModuleByPrefix(nearestModule(l.arena, id), prefix)
		if mod == NilNode {
			return NilNode
		}
		return l.findTypedefIn(mod, local)
	}
	for n := id; n != NilNode; n = l.arena.Parent(n) {
		for _, td := range l.arena.ChildrenOfKind(n, KindTypedef) {
			if l.arena.Common(td).Name == local {
				return td
			}
		}
	}
	return NilNode
}

func (l *linker) findTypedefIn(mod NodeID, name string) NodeID {
	for _, td := range l.arena.ChildrenOfKind(mod, KindTypedef) {
		if l.arena.Common(td).Name == name {
			return td
		}
	}
	return NilNode
}

func splitPrefixed(name string) (prefix, local string, hasPrefix bool) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:], true
		}
	}
	return "", name, false
}

func nearestModule(a *Arena, id NodeID) NodeID {
	for n := id; n != NilNode; n = a.Parent(n) {
		if a.Kind(n).HasOwnNamespace() {
			return n
		}
	}
	return NilNode
}

// resolveModuleByPrefix resolves prefix against mod's own prefix (self)
// and its imports, returning the target module's NodeID.
func (l *linker) resolveModuleByPrefix(mod NodeID, prefix string) NodeID {
	ma, _ := l.arena.Attrs(mod).(ModuleAttrs)
	if ma.Prefix == prefix {
		return mod
	}
	for _, imp := range ma.Imports {
		if imp.Prefix == prefix {
			return imp.Resolved
		}
	}
	return NilNode
}

func (l *linker) findIdentity(id NodeID, name string) NodeID {
	prefix, local, hasPrefix := splitPrefixed(name)
	mod := nearestModule(l.arena, id)
	if hasPrefix {
		mod = l.resolveModuleByPrefix(mod, prefix)
		if mod == NilNode {
			return NilNode
		}
	}
	for _, idn := range l.arena.ChildrenOfKind(mod, KindIdentity) {
		if l.arena.Common(idn).Name == local {
			return idn
		}
	}
	return NilNode
}
