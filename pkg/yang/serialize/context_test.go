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

package serialize

import (
	"testing"

	"github.com/yangschema/compiler/pkg/yang"
)

func mustResolve(t *testing.T, source string) *yang.ResolvedTree {
	t.Helper()
	arena, root, err := yang.ParseSource(source, "<test>", yang.Options{})
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	tree, errs := yang.ResolveSet([]yang.ParsedUnit{{Arena: arena, Root: root}}, yang.Options{})
	if len(errs) != 0 {
		t.Fatalf("ResolveSet: %v", errs)
	}
	return tree
}

// TestLookupRoundTrip exercises the round-trip property: a ResourceId
// built from a path in the tree, looked up again, returns the same node.
func TestLookupRoundTrip(t *testing.T) {
	tree := mustResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    list items {
      key "id";
      leaf id {
        type string;
      }
      leaf name {
        type string;
      }
    }
  }
}`)
	ctx := NewContext(tree, nil)

	top := findChild(tree.Arena, tree.Modules[0], "top")
	items := findChild(tree.Arena, top, "items")
	name := findChild(tree.Arena, items, "name")

	want := BuildResourceId(tree.Arena, name)
	if want == nil {
		t.Fatalf("BuildResourceId returned nil")
	}

	got, ok := ctx.Lookup(want)
	if !ok {
		t.Fatalf("Lookup(%v) = not found", want)
	}
	if got != name {
		t.Errorf("Lookup(%v) = node %d, want %d", want, got, name)
	}
}

// TestLookupIgnoresInstanceKeys checks that a list-entry ResourceId
// resolves to the list's own schema node regardless of the key values
// supplied, per the contract that instance keys address an instance, not
// a schema node.
func TestLookupIgnoresInstanceKeys(t *testing.T) {
	tree := mustResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    list items {
      key "id";
      leaf id {
        type string;
      }
    }
  }
}`)
	ctx := NewContext(tree, nil)
	top := findChild(tree.Arena, tree.Modules[0], "top")
	items := findChild(tree.Arena, top, "items")

	r, err := NewResourceIdBuilder().
		AddBranchPointSchema("top", "urn:m").
		AddBranchPointSchema("items", "urn:m").
		AddKeyLeaf("id", "urn:m", "anything-at-all").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, ok := ctx.Lookup(r)
	if !ok || got != items {
		t.Errorf("Lookup(%v) = (%d, %v), want (%d, true)", r, got, ok, items)
	}
}

func findChild(a *yang.Arena, id yang.NodeID, name string) yang.NodeID {
	for _, c := range a.Children(id) {
		if a.Common(c).Name == name {
			return c
		}
	}
	return yang.NilNode
}
