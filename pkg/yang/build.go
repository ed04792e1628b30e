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

// This file is the tree-walk listener: it walks the parser's Statement
// forest once and builds an Arena of tagged nodes, consulting the
// holder-rule tables in holders.go instead of reflecting over per-type Go
// struct tags. It performs only structural/cardinality validation here;
// cross-reference resolution happens later, in the linker (resolver.go
// and friends).

import (
	"strconv"
	"strings"
)

// builder carries the per-file state of one tree-walk pass.
type builder struct {
	arena *Arena
	errs  []error
}

// BuildModule converts the top-level "module" or "submodule" statement s
// into an Arena rooted at the returned NodeID. It sees only the one
// statement it is given; ParseSource is what rejects a file holding more
// than one top-level statement.
func BuildModule(s *Statement) (*Arena, NodeID, []error) {
	b := &builder{arena: NewArena()}
	if s.Keyword != "module" && s.Keyword != "submodule" {
		b.errf(s, errStructural(s, InvalidHolder, "expected 'module' or 'submodule', got %q", s.Keyword))
		return b.arena, NilNode, b.errs
	}
	root := b.buildModule(s, NilNode)
	return b.arena, root, b.errs
}

func (b *builder) errf(_ *Statement, err error) {
	b.errs = append(b.errs, err)
}

// splitCommon pulls out the statements attrs.go's CommonAttrs
// captures (description, reference, status, when, if-feature, must) from
// s's children, returning the populated CommonAttrs and the remaining,
// kind-specific children.
func splitCommon(s *Statement) (CommonAttrs, []*Statement) {
	c := CommonAttrs{Name: s.Argument}
	var rest []*Statement
	for _, ch := range s.Children {
		switch ch.Keyword {
		case "description":
			c.Description = ch.Argument
		case "reference":
			c.Reference = ch.Argument
		case "status":
			c.Status = parseStatus(ch.Argument)
		case "when":
			c.When = ch.Argument
		case "if-feature":
			c.IfFeatures = append(c.IfFeatures, ch.Argument)
		case "must":
			c.Musts = append(c.Musts, buildMust(ch))
		default:
			if strings.Contains(ch.Keyword, ":") && !isCoreKeyword(ch.Keyword) {
				parts := strings.SplitN(ch.Keyword, ":", 2)
				c.Extensions = append(c.Extensions, ExtensionUse{
					Prefix: parts[0], Keyword: parts[1],
					Argument: ch.Argument, HasArg: ch.HasArgument, Statement: ch,
				})
				continue
			}
			rest = append(rest, ch)
		}
	}
	return c, rest
}

func isCoreKeyword(kw string) bool {
	_, ok := keywordToKind[kw]
	return ok
}

func parseStatus(arg string) Status {
	switch arg {
	case "deprecated":
		return StatusDeprecated
	case "obsolete":
		return StatusObsolete
	default:
		return StatusCurrent
	}
}

func buildMust(s *Statement) MustAttrs {
	m := MustAttrs{Expression: s.Argument}
	for _, ch := range s.Children {
		switch ch.Keyword {
		case "error-message":
			m.ErrorMessage = ch.Argument
		case "error-app-tag":
			m.ErrorAppTag = ch.Argument
		case "reference":
			m.Reference = ch.Argument
		}
	}
	return m
}

func parseTriState(arg string, has bool) TriState {
	if !has {
		return TSUnset
	}
	if arg == "true" {
		return TSTrue
	}
	return TSFalse
}

// buildChildren builds each statement in stmts as a child of parent,
// filtering to the kinds holder's rules recognize and reporting the rest
// as invalid-holder structural errors (unless they are unknown-prefixed
// extensions, already filtered out by splitCommon before buildChildren is
// called).
func (b *builder) buildChildren(holder Kind, parent NodeID, stmts []*Statement) {
	seen := map[Kind]int{}
	for _, ch := range stmts {
		kind, ok := keywordToKind[ch.Keyword]
		if !ok {
			b.errf(ch, errStructural(ch, InvalidHolder, "%s: unknown statement %q", ch.Location(), ch.Keyword))
			continue
		}
		card, ok := allowedUnder(holder, kind)
		if !ok {
			b.errf(ch, errStructural(ch, InvalidHolder, "%s: %q may not appear under %q", ch.Location(), ch.Keyword, holder))
			continue
		}
		seen[kind]++
		if (card == zeroOrOne || card == exactlyOne) && seen[kind] > 1 {
			b.errf(ch, errStructural(ch, DuplicateStatement, "%s: %q may appear at most once under %q", ch.Location(), ch.Keyword, holder))
			continue
		}
		b.buildOne(ch, parent, kind)
	}
	for _, r := range holderRules[holder] {
		if (r.card == exactlyOne || r.card == oneOrMore) && seen[r.kw] == 0 {
			b.errf(nil, errStructural(nil, MissingHolder, "%s: missing required %q statement", holder, r.kw))
		}
	}
}

// buildOne dispatches construction of a single recognized statement.
func (b *builder) buildOne(s *Statement, parent NodeID, kind Kind) {
	switch kind {
	case KindImport:
		b.buildImport(s, parent)
	case KindInclude:
		b.buildInclude(s, parent)
	case KindRevision:
		b.buildRevision(s, parent)
	case KindBelongsTo:
		// consumed directly by buildModule
	case KindContainer:
		b.buildContainer(s, parent)
	case KindList:
		b.buildList(s, parent)
	case KindLeaf:
		b.buildLeaf(s, parent)
	case KindLeafList:
		b.buildLeafList(s, parent)
	case KindChoice:
		b.buildChoice(s, parent)
	case KindCase:
		b.buildCase(s, parent)
	case KindAnyXML, KindAnyData:
		b.buildAnyData(s, parent, kind)
	case KindGrouping:
		b.buildGrouping(s, parent)
	case KindUses:
		b.buildUses(s, parent)
	case KindTypedef:
		b.buildTypedef(s, parent)
	case KindIdentity:
		b.buildIdentity(s, parent)
	case KindFeature:
		b.buildFeature(s, parent)
	case KindExtension:
		b.buildExtension(s, parent)
	case KindAugment:
		b.buildAugment(s, parent)
	case KindRPC:
		b.buildRPCLike(s, parent, KindRPC)
	case KindAction:
		b.buildRPCLike(s, parent, KindAction)
	case KindInput:
		b.buildInputOutput(s, parent, KindInput)
	case KindOutput:
		b.buildInputOutput(s, parent, KindOutput)
	case KindNotification:
		b.buildNotification(s, parent)
	case KindDeviation:
		b.buildDeviation(s, parent)
	case KindDeviate:
		b.buildDeviate(s, parent)
	case KindType:
		b.buildType(s, parent)
	case KindRefine:
		b.buildRefine(s, parent)
	default:
		b.errf(s, errStructural(s, InvalidHolder, "%s: %q not valid in this context", s.Location(), s.Keyword))
	}
}

func (b *builder) buildModule(s *Statement, parent NodeID) NodeID {
	kind := KindModule
	if s.Keyword == "submodule" {
		kind = KindSubmodule
	}
	common, rest := splitCommon(s)
	id := b.arena.Alloc(kind, parent, s)
	*b.arena.Common(id) = common

	attrs := ModuleAttrs{}
	var dataRest []*Statement
	for _, ch := range rest {
		switch ch.Keyword {
		case "prefix":
			attrs.Prefix = ch.Argument
		case "namespace":
			attrs.Namespace = ch.Argument
		case "yang-version":
			attrs.YangVersion = ch.Argument
		case "organization":
			attrs.Organization = ch.Argument
		case "contact":
			attrs.Contact = ch.Argument
		case "belongs-to":
			attrs.BelongsTo = ch.Argument
			for _, bch := range ch.Children {
				if bch.Keyword == "prefix" {
					attrs.Prefix = bch.Argument
				}
			}
		case "revision":
			attrs.Revisions = append(attrs.Revisions, ch.Argument)
			dataRest = append(dataRest, ch)
		default:
			dataRest = append(dataRest, ch)
		}
	}
	b.arena.SetAttrs(id, attrs)
	b.buildChildren(kind, id, dataRest)
	return id
}

func (b *builder) buildImport(s *Statement, parent NodeID) {
	a := ImportAttrs{ModuleName: s.Argument}
	for _, ch := range s.Children {
		switch ch.Keyword {
		case "prefix":
			a.Prefix = ch.Argument
		case "revision-date":
			a.Revision = ch.Argument
		}
	}
	id := b.arena.Alloc(KindImport, parent, s)
	b.arena.SetAttrs(id, a)
	addImport(b.arena, parent, a)
}

func (b *builder) buildInclude(s *Statement, parent NodeID) {
	a := IncludeAttrs{SubmoduleName: s.Argument}
	for _, ch := range s.Children {
		if ch.Keyword == "revision-date" {
			a.Revision = ch.Argument
		}
	}
	id := b.arena.Alloc(KindInclude, parent, s)
	b.arena.SetAttrs(id, a)
	addInclude(b.arena, parent, a)
}

func addImport(a *Arena, module NodeID, imp ImportAttrs) {
	ma, _ := a.Attrs(module).(ModuleAttrs)
	ma.Imports = append(ma.Imports, imp)
	a.SetAttrs(module, ma)
}

func addInclude(a *Arena, module NodeID, inc IncludeAttrs) {
	ma, _ := a.Attrs(module).(ModuleAttrs)
	ma.Includes = append(ma.Includes, inc)
	a.SetAttrs(module, ma)
}

func (b *builder) buildRevision(s *Statement, parent NodeID) {
	id := b.arena.Alloc(KindRevision, parent, s)
	common, _ := splitCommon(s)
	*b.arena.Common(id) = common
}

func (b *builder) buildContainer(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindContainer, parent, s)
	*b.arena.Common(id) = common
	a := ContainerAttrs{}
	var dataRest []*Statement
	for _, ch := range rest {
		switch ch.Keyword {
		case "presence":
			a.Presence = ch.Argument
		case "config":
			a.Config = parseTriState(ch.Argument, true)
		default:
			dataRest = append(dataRest, ch)
		}
	}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindContainer, id, dataRest)
}

func (b *builder) buildList(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindList, parent, s)
	*b.arena.Common(id) = common
	a := ListAttrs{}
	var dataRest []*Statement
	for _, ch := range rest {
		switch ch.Keyword {
		case "key":
			a.Key = strings.Fields(ch.Argument)
		case "unique":
			a.Unique = append(a.Unique, strings.Fields(ch.Argument))
		case "config":
			a.Config = parseTriState(ch.Argument, true)
		case "min-elements":
			a.MinElements = atoiOr(ch.Argument, 0)
		case "max-elements":
			if ch.Argument != "unbounded" {
				a.MaxElements = atoiOr(ch.Argument, 0)
			}
		case "ordered-by":
			a.OrderedBy = ch.Argument
		default:
			dataRest = append(dataRest, ch)
		}
	}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindList, id, dataRest)
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func (b *builder) buildLeaf(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindLeaf, parent, s)
	*b.arena.Common(id) = common
	a := LeafAttrs{}
	var dataRest []*Statement
	for _, ch := range rest {
		switch ch.Keyword {
		case "config":
			a.Config = parseTriState(ch.Argument, true)
		case "units":
			a.Units = ch.Argument
		case "default":
			a.Default = ch.Argument
		case "mandatory":
			a.Mandatory = parseTriState(ch.Argument, true)
		default:
			dataRest = append(dataRest, ch)
		}
	}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindLeaf, id, dataRest)
	a.Type = firstChildOfKind(b.arena, id, KindType)
	b.arena.SetAttrs(id, a)
}

func (b *builder) buildLeafList(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindLeafList, parent, s)
	*b.arena.Common(id) = common
	a := LeafListAttrs{}
	var dataRest []*Statement
	for _, ch := range rest {
		switch ch.Keyword {
		case "config":
			a.Config = parseTriState(ch.Argument, true)
		case "units":
			a.Units = ch.Argument
		case "default":
			a.Defaults = append(a.Defaults, ch.Argument)
		case "min-elements":
			a.MinElements = atoiOr(ch.Argument, 0)
		case "max-elements":
			if ch.Argument != "unbounded" {
				a.MaxElements = atoiOr(ch.Argument, 0)
			}
		case "ordered-by":
			a.OrderedBy = ch.Argument
		default:
			dataRest = append(dataRest, ch)
		}
	}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindLeafList, id, dataRest)
	a.Type = firstChildOfKind(b.arena, id, KindType)
	b.arena.SetAttrs(id, a)
}

func firstChildOfKind(a *Arena, parent NodeID, kind Kind) NodeID {
	for _, c := range a.Children(parent) {
		if a.Kind(c) == kind {
			return c
		}
	}
	return NilNode
}

func (b *builder) buildChoice(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindChoice, parent, s)
	*b.arena.Common(id) = common
	a := ChoiceAttrs{}
	var dataRest []*Statement
	for _, ch := range rest {
		switch ch.Keyword {
		case "default":
			a.Default = ch.Argument
		case "config":
			a.Config = parseTriState(ch.Argument, true)
		case "mandatory":
			a.Mandatory = parseTriState(ch.Argument, true)
		default:
			dataRest = append(dataRest, ch)
		}
	}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindChoice, id, dataRest)
}

func (b *builder) buildCase(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindCase, parent, s)
	*b.arena.Common(id) = common
	b.arena.SetAttrs(id, CaseAttrs{})
	b.buildChildren(KindCase, id, rest)
}

func (b *builder) buildAnyData(s *Statement, parent NodeID, kind Kind) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(kind, parent, s)
	*b.arena.Common(id) = common
	a := DataNodeAttrs{}
	for _, ch := range rest {
		if ch.Keyword == "config" {
			a.Config = parseTriState(ch.Argument, true)
		}
	}
	b.arena.SetAttrs(id, a)
}

func (b *builder) buildGrouping(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindGrouping, parent, s)
	*b.arena.Common(id) = common
	b.arena.SetAttrs(id, GroupingAttrs{})
	b.buildChildren(KindGrouping, id, rest)
}

func (b *builder) buildUses(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindUses, parent, s)
	*b.arena.Common(id) = common
	a := UsesAttrs{GroupingName: s.Argument}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindUses, id, rest)
	for _, c := range b.arena.Children(id) {
		switch b.arena.Kind(c) {
		case KindRefine:
			a.Refines = append(a.Refines, c)
		case KindAugment:
			a.Augments = append(a.Augments, c)
		}
	}
	b.arena.SetAttrs(id, a)
}

// buildRefine builds a "refine" statement under a "uses". Its fields are
// all overrides, each recorded so that "not refined" stays distinguishable
// from "refined to the zero value": a nil pointer, TSUnset for config and
// mandatory, or an empty slice for default and must. usesexpand.go's
// applyRefine only touches a target field whose override is set here.
func (b *builder) buildRefine(s *Statement, parent NodeID) {
	id := b.arena.Alloc(KindRefine, parent, s)
	a := RefineAttrs{TargetPath: s.Argument}
	for _, ch := range s.Children {
		switch ch.Keyword {
		case "description":
			d := ch.Argument
			a.Description = &d
		case "reference":
			r := ch.Argument
			a.Reference = &r
		case "config":
			a.Config = parseTriState(ch.Argument, true)
		case "default":
			a.Default = append(a.Default, ch.Argument)
		case "mandatory":
			a.Mandatory = parseTriState(ch.Argument, true)
		case "presence":
			p := ch.Argument
			a.Presence = &p
		case "min-elements":
			n := atoiOr(ch.Argument, 0)
			a.MinElements = &n
		case "max-elements":
			if ch.Argument != "unbounded" {
				n := atoiOr(ch.Argument, 0)
				a.MaxElements = &n
			}
		case "must":
			a.Musts = append(a.Musts, buildMust(ch))
		}
	}
	b.arena.SetAttrs(id, a)
}

func (b *builder) buildTypedef(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindTypedef, parent, s)
	*b.arena.Common(id) = common
	a := TypedefAttrs{}
	var dataRest []*Statement
	for _, ch := range rest {
		switch ch.Keyword {
		case "units":
			a.Units = ch.Argument
		case "default":
			// A typedef's own default is folded into its Type node's
			// ResolvedType.Default during type resolution (typedef.go),
			// since that is where a leaf inherits its effective default.
		default:
			dataRest = append(dataRest, ch)
		}
	}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindTypedef, id, dataRest)
	a.Type = firstChildOfKind(b.arena, id, KindType)
	b.arena.SetAttrs(id, a)
}

func (b *builder) buildIdentity(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindIdentity, parent, s)
	*b.arena.Common(id) = common
	a := IdentityAttrs{}
	for _, ch := range rest {
		if ch.Keyword == "base" {
			a.BaseNames = append(a.BaseNames, ch.Argument)
		}
	}
	b.arena.SetAttrs(id, a)
}

func (b *builder) buildFeature(s *Statement, parent NodeID) {
	common, _ := splitCommon(s)
	id := b.arena.Alloc(KindFeature, parent, s)
	*b.arena.Common(id) = common
	b.arena.SetAttrs(id, FeatureAttrs{})
}

func (b *builder) buildExtension(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindExtension, parent, s)
	*b.arena.Common(id) = common
	a := ExtensionAttrs{}
	for _, ch := range rest {
		switch ch.Keyword {
		case "argument":
			a.ArgumentName = ch.Argument
			for _, ach := range ch.Children {
				if ach.Keyword == "yin-element" {
					a.YinElement = ach.Argument == "true"
				}
			}
		}
	}
	b.arena.SetAttrs(id, a)
}

func (b *builder) buildAugment(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindAugment, parent, s)
	*b.arena.Common(id) = common
	a := AugmentAttrs{TargetPath: s.Argument}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindAugment, id, rest)
}

func (b *builder) buildRPCLike(s *Statement, parent NodeID, kind Kind) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(kind, parent, s)
	*b.arena.Common(id) = common
	if kind == KindRPC {
		b.arena.SetAttrs(id, RPCAttrs{})
	} else {
		b.arena.SetAttrs(id, ActionAttrs{})
	}
	b.buildChildren(kind, id, rest)
}

func (b *builder) buildInputOutput(s *Statement, parent NodeID, kind Kind) {
	id := b.arena.Alloc(kind, parent, s)
	if kind == KindInput {
		b.arena.SetAttrs(id, InputAttrs{})
	} else {
		b.arena.SetAttrs(id, OutputAttrs{})
	}
	_, rest := splitCommon(s)
	b.buildChildren(kind, id, rest)
}

func (b *builder) buildNotification(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindNotification, parent, s)
	*b.arena.Common(id) = common
	b.arena.SetAttrs(id, NotificationAttrs{})
	b.buildChildren(KindNotification, id, rest)
}

func (b *builder) buildDeviation(s *Statement, parent NodeID) {
	common, rest := splitCommon(s)
	id := b.arena.Alloc(KindDeviation, parent, s)
	*b.arena.Common(id) = common
	a := DeviationAttrs{TargetPath: s.Argument}
	b.arena.SetAttrs(id, a)
	b.buildChildren(KindDeviation, id, rest)
}

func (b *builder) buildDeviate(s *Statement, parent NodeID) {
	id := b.arena.Alloc(KindDeviate, parent, s)
	a := DeviateAttrs{Action: s.Argument}
	for _, ch := range s.Children {
		switch ch.Keyword {
		case "config":
			a.Config = parseTriState(ch.Argument, true)
		case "mandatory":
			a.Mandatory = parseTriState(ch.Argument, true)
		case "default":
			a.Default = append(a.Default, ch.Argument)
		case "min-elements":
			n := atoiOr(ch.Argument, 0)
			a.MinElem = &n
		case "max-elements":
			if ch.Argument != "unbounded" {
				n := atoiOr(ch.Argument, 0)
				a.MaxElem = &n
			}
		case "units":
			u := ch.Argument
			a.Units = &u
		}
	}
	b.arena.SetAttrs(id, a)
	rest := s.Children
	var typeStmts []*Statement
	for _, ch := range rest {
		if ch.Keyword == "type" {
			typeStmts = append(typeStmts, ch)
		}
	}
	b.buildChildren(KindDeviate, id, typeStmts)
}
