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

import (
	"strconv"
	"strings"
)

// buildType builds a "type" statement's syntax into a KindType node. The
// node's TypeAttrs.Resolved field is left nil here; typedef.go's
// resolveType fills it in once imports/typedefs/identities are available,
// so raw syntax is never overwritten in place during re-resolution.
func (b *builder) buildType(s *Statement, parent NodeID) {
	id := b.arena.Alloc(KindType, parent, s)
	b.arena.SetAttrs(id, TypeAttrs{Name: s.Argument})

	raw := &rawType{Name: s.Argument}
	for _, ch := range s.Children {
		switch ch.Keyword {
		case "type":
			b.buildType(ch, id) // union member
		case "range":
			raw.Range = ch.Argument
		case "length":
			raw.Length = ch.Argument
		case "pattern":
			raw.Pattern = append(raw.Pattern, ch.Argument)
		case "fraction-digits":
			raw.FractionDigits = atoiOr(ch.Argument, 0)
		case "path":
			raw.Path = ch.Argument
		case "require-instance":
			raw.RequireInstance = ch.Argument
		case "base":
			raw.IdentityBase = ch.Argument
		case "enum":
			raw.Enums = append(raw.Enums, buildEnumOrBit(ch))
		case "bit":
			raw.Bits = append(raw.Bits, buildEnumOrBit(ch))
		}
	}
	b.arena.rawTypes[id] = raw
}

// rawType carries a type's unresolved restriction syntax between the
// build pass and typedef.go's resolution pass.
type rawType struct {
	Name            string
	Range           string
	Length          string
	Pattern         []string
	FractionDigits  int
	Path            string
	RequireInstance string
	IdentityBase    string
	Enums           []rawEnum
	Bits            []rawEnum
}

type rawEnum struct {
	Name    string
	Value   string
	HasVal  bool
	Status  Status
}

func buildEnumOrBit(s *Statement) rawEnum {
	e := rawEnum{Name: s.Argument}
	for _, ch := range s.Children {
		switch ch.Keyword {
		case "value", "position":
			e.Value = ch.Argument
			e.HasVal = true
		case "status":
			e.Status = parseStatus(ch.Argument)
		}
	}
	return e
}

// parseRangeParts parses a YANG range/length argument ("min..max | min..max
// | ...", with optional bare values meaning min==max) into RangePart
// values. "min" and "max" keywords are preserved verbatim and resolved
// against the base type's own range during resolution.
func parseRangeParts(arg string) []RangePart {
	if arg == "" {
		return nil
	}
	var parts []RangePart
	for _, seg := range strings.Split(arg, "|") {
		seg = strings.TrimSpace(seg)
		bounds := strings.SplitN(seg, "..", 2)
		p := RangePart{}
		p.MinString, p.Min = parseBound(strings.TrimSpace(bounds[0]))
		if len(bounds) == 2 {
			p.MaxString, p.Max = parseBound(strings.TrimSpace(bounds[1]))
		} else {
			p.Max = p.Min
			p.MaxString = p.MinString
		}
		parts = append(parts, p)
	}
	return parts
}

func parseBound(s string) (string, float64) {
	if s == "min" || s == "max" {
		return s, 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return "", f
}
