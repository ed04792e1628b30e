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
	"sort"

	"github.com/yangschema/compiler/pkg/indent"
	"github.com/yangschema/compiler/pkg/yang"
)

func init() {
	register(&formatter{
		name: "tree",
		f:    doTree,
		help: "display in a tree format",
	})
}

func doTree(w io.Writer, tree *yang.ResolvedTree) {
	for _, m := range tree.Modules {
		writeNode(w, tree.Arena, m)
	}
}

// writeNode writes id, formatted, and all of its children, to w. It
// mirrors the teacher's tree-dump format: a leading rw:/RO: access
// marker, the resolved type name for leaves, and braces around anything
// with children.
func writeNode(w io.Writer, a *yang.Arena, id yang.NodeID) {
	c := a.Common(id)
	if c.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(indent.NewWriter(w, "// "), c.Description)
	}
	if readOnly(a, id) {
		fmt.Fprint(w, "RO: ")
	} else {
		fmt.Fprint(w, "rw: ")
	}
	if t := typeOf(a, id); t != yang.NilNode {
		fmt.Fprintf(w, "%s ", typeName(a, t))
	}

	children := dataChildren(a, id)
	name := c.Name
	switch {
	case len(children) == 0 && isList(a, id):
		fmt.Fprintf(w, "[]%s\n", name)
		return
	case len(children) == 0:
		fmt.Fprintf(w, "%s\n", name)
		return
	case isList(a, id):
		fmt.Fprintf(w, "[%s]%s {\n", keyOf(a, id), name) //}
	default:
		fmt.Fprintf(w, "%s {\n", name) //}
	}
	sort.Slice(children, func(i, j int) bool {
		return a.Common(children[i]).Name < a.Common(children[j]).Name
	})
	for _, c := range children {
		writeNode(indent.NewWriter(w, "  "), a, c)
	}
	fmt.Fprintln(w, "}")
}

// dataChildren returns id's children that themselves belong in the data
// tree dump: everything IsDataNode reports true for, plus "case", which
// is transparent in the tree view (its own children are shown directly
// under the choice without an extra nesting level).
func dataChildren(a *yang.Arena, id yang.NodeID) []yang.NodeID {
	var out []yang.NodeID
	for _, c := range a.Children(id) {
		switch {
		case a.Kind(c) == yang.KindCase:
			out = append(out, dataChildren(a, c)...)
		case a.Kind(c).IsDataNode():
			out = append(out, c)
		}
	}
	return out
}

func isList(a *yang.Arena, id yang.NodeID) bool {
	return a.Kind(id) == yang.KindList
}

func keyOf(a *yang.Arena, id yang.NodeID) string {
	la, ok := a.Attrs(id).(yang.ListAttrs)
	if !ok {
		return ""
	}
	out := ""
	for i, k := range la.Key {
		if i > 0 {
			out += " "
		}
		out += k
	}
	return out
}

func readOnly(a *yang.Arena, id yang.NodeID) bool {
	switch v := a.Attrs(id).(type) {
	case yang.LeafAttrs:
		return v.Config == yang.TSFalse
	case yang.LeafListAttrs:
		return v.Config == yang.TSFalse
	case yang.ListAttrs:
		return v.Config == yang.TSFalse
	case yang.ContainerAttrs:
		return v.Config == yang.TSFalse
	case yang.ChoiceAttrs:
		return v.Config == yang.TSFalse
	}
	return false
}

func typeOf(a *yang.Arena, id yang.NodeID) yang.NodeID {
	switch v := a.Attrs(id).(type) {
	case yang.LeafAttrs:
		return v.Type
	case yang.LeafListAttrs:
		return v.Type
	}
	return yang.NilNode
}

func typeName(a *yang.Arena, t yang.NodeID) string {
	ta, _ := a.Attrs(t).(yang.TypeAttrs)
	return ta.Name
}
