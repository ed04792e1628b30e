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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/yangschema/compiler/pkg/yang"
)

func init() {
	register(&formatter{
		name: "types",
		f:    doTypes,
		help: "display every distinct resolved type found in the modules",
	})
}

// typeSet keeps track of every type node already printed, keyed by its
// own NodeID. Every leaf, leaf-list and typedef owns its own type node,
// so a type named by several leaves is printed once per leaf.
type typeSet map[yang.NodeID]bool

func doTypes(w io.Writer, tree *yang.ResolvedTree) {
	seen := typeSet{}
	for _, m := range tree.Modules {
		collectTypes(tree.Arena, m, seen)
	}
	for id := range seen {
		printResolvedType(w, tree.Arena, id)
	}
}

func collectTypes(a *yang.Arena, id yang.NodeID, seen typeSet) {
	if a.Kind(id) == yang.KindType {
		seen[id] = true
	}
	for _, c := range a.Children(id) {
		collectTypes(a, c, seen)
	}
}

// printResolvedType prints t's resolved type, prefixed with the Go-style
// field name of the leaf/leaf-list/typedef that owns it, in a moderately
// human readable format to w.
func printResolvedType(w io.Writer, a *yang.Arena, id yang.NodeID) {
	ta, _ := a.Attrs(id).(yang.TypeAttrs)
	if owner := a.Parent(id); owner != yang.NilNode {
		if name := a.Common(owner).Name; name != "" {
			fmt.Fprintf(w, "%s ", yang.CamelCase(name))
		}
	}
	rt := ta.Resolved
	if rt == nil {
		fmt.Fprintf(w, "%s: unresolved\n", ta.Name)
		return
	}
	fmt.Fprintf(w, "%s", rt.Name)
	if rt.Name != rt.Builtin.String() {
		fmt.Fprintf(w, "(%s)", rt.Builtin)
	}
	if rt.Units != "" {
		fmt.Fprintf(w, " units=%s", rt.Units)
	}
	if rt.Default != "" {
		fmt.Fprintf(w, " default=%q", rt.Default)
	}
	if rt.FractionDigits != 0 {
		fmt.Fprintf(w, " fraction-digits=%d", rt.FractionDigits)
	}
	if len(rt.Length) > 0 {
		fmt.Fprintf(w, " length=%s", formatRangeParts(rt.Length))
	}
	if rt.Builtin == yang.BuiltinInstanceIdentifier && !rt.OptionalInstance {
		fmt.Fprint(w, " required")
	}
	if rt.Builtin == yang.BuiltinLeafref && rt.Path != "" {
		fmt.Fprintf(w, " path=%q", rt.Path)
	}
	if len(rt.Pattern) > 0 {
		fmt.Fprintf(w, " pattern=%s", strings.Join(rt.Pattern, "|"))
	}
	if len(rt.Range) > 0 {
		fmt.Fprintf(w, " range=%s", formatRangeParts(rt.Range))
	}
	if len(rt.Union) > 0 {
		fmt.Fprint(w, " union...")
	}
	fmt.Fprint(w, ";\n")
}

func formatRangeParts(parts []yang.RangePart) string {
	var segs []string
	for _, p := range parts {
		min, max := formatBound(p.MinString, p.Min), formatBound(p.MaxString, p.Max)
		if min == max {
			segs = append(segs, min)
			continue
		}
		segs = append(segs, min+".."+max)
	}
	return strings.Join(segs, "|")
}

func formatBound(s string, f float64) string {
	if s != "" {
		return s
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", f), "0"), ".")
}
