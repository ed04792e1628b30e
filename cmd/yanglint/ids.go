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

	"github.com/yangschema/compiler/pkg/yang"
	"github.com/yangschema/compiler/pkg/yang/serialize"
)

func init() {
	register(&formatter{
		name: "ids",
		f:    doIDs,
		help: "display every ResourceId reachable from the modules",
	})
}

func doIDs(w io.Writer, tree *yang.ResolvedTree) {
	ctx := serialize.NewContext(tree, nil)
	for _, m := range ctx.RootContext() {
		walkIDs(w, tree.Arena, m)
	}
}

func walkIDs(w io.Writer, a *yang.Arena, id yang.NodeID) {
	for _, c := range dataChildren(a, id) {
		if rid := serialize.BuildResourceId(a, c); rid != nil {
			fmt.Fprintln(w, rid)
		}
		walkIDs(w, a, c)
	}
}
