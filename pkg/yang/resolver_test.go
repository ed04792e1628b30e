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
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/openconfig/gnmi/errdiff"
)

// parseAndResolve is a test helper that parses a single module and links
// it alone, returning the ResolvedTree and any errors combined.
func parseAndResolve(t *testing.T, source string) (*ResolvedTree, []error) {
	t.Helper()
	arena, root, err := ParseSource(source, "<test>", Options{})
	if err != nil {
		return nil, Errors(err)
	}
	return ResolveSet([]ParsedUnit{{Arena: arena, Root: root}}, Options{})
}

// parseAndResolveAll is parseAndResolve for a multi-module set: each
// source is parsed independently (as LoadSet would parse separate
// files) and the whole set is linked together in one ResolveSet call.
func parseAndResolveAll(t *testing.T, sources ...string) (*ResolvedTree, []error) {
	t.Helper()
	var units []ParsedUnit
	for _, source := range sources {
		arena, root, err := ParseSource(source, "<test>", Options{})
		if err != nil {
			return nil, Errors(err)
		}
		units = append(units, ParsedUnit{Arena: arena, Root: root})
	}
	return ResolveSet(units, Options{})
}

func TestResolveSetBasicLeaf(t *testing.T) {
	tree, errs := parseAndResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    leaf name {
      type string;
    }
  }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(tree.Modules) != 1 {
		t.Fatalf("got %d modules, want 1", len(tree.Modules))
	}
	top := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "top")
	if top == NilNode {
		t.Fatalf("container %q not found", "top")
	}
	leaf := findByName(tree.Arena, tree.Arena.Children(top), "name")
	if leaf == NilNode {
		t.Fatalf("leaf %q not found", "name")
	}
	la, _ := tree.Arena.Attrs(leaf).(LeafAttrs)
	ta, _ := tree.Arena.Attrs(la.Type).(TypeAttrs)
	if ta.Resolved == nil || ta.Resolved.Builtin != BuiltinString {
		t.Errorf("leaf %q: got resolved type %+v, want builtin string", "name", ta.Resolved)
	}
}

func TestResolveSetUsesWithRefine(t *testing.T) {
	tree, errs := parseAndResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  grouping g {
    leaf a {
      type string;
      mandatory false;
    }
  }

  container top {
    uses g {
      refine a {
        mandatory true;
      }
    }
  }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	top := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "top")
	a := findByName(tree.Arena, tree.Arena.Children(top), "a")
	if a == NilNode {
		t.Fatalf("expanded uses: leaf %q not found under %q", "a", "top")
	}
	la, _ := tree.Arena.Attrs(a).(LeafAttrs)
	if la.Mandatory != TSTrue {
		t.Errorf("refined leaf %q: got Mandatory %v, want TSTrue", "a", la.Mandatory)
	}
}

// TestResolveSetGroupingUnaffectedByRefine checks that uses expansion
// clones a grouping's leaf rather than mutating it in place: a refine on
// one use must not leak into the grouping itself or into a second,
// unrefined use of the same grouping.
func TestResolveSetGroupingUnaffectedByRefine(t *testing.T) {
	tree, errs := parseAndResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  grouping g {
    leaf a {
      type string;
      mandatory false;
    }
  }

  container one {
    uses g {
      refine a {
        mandatory true;
      }
    }
  }

  container two {
    uses g;
  }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	grouping := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "g")
	groupingLeaf := findByName(tree.Arena, tree.Arena.Children(grouping), "a")
	ga, _ := tree.Arena.Attrs(groupingLeaf).(LeafAttrs)
	if diff := pretty.Compare(ga.Mandatory, TSFalse); diff != "" {
		t.Errorf("grouping's own leaf %q mutated by a refine on one of its uses:\n%s", "a", diff)
	}

	one := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "one")
	refined, _ := tree.Arena.Attrs(findByName(tree.Arena, tree.Arena.Children(one), "a")).(LeafAttrs)
	if diff := pretty.Compare(refined.Mandatory, TSTrue); diff != "" {
		t.Errorf("refined use of %q:\n%s", "a", diff)
	}

	two := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "two")
	unrefined, _ := tree.Arena.Attrs(findByName(tree.Arena, tree.Arena.Children(two), "a")).(LeafAttrs)
	if diff := pretty.Compare(unrefined.Mandatory, TSFalse); diff != "" {
		t.Errorf("unrefined use of %q:\n%s", "a", diff)
	}

	if refined.Type == unrefined.Type {
		t.Errorf("uses %q and %q share a cloned leaf's Type node %d instead of owning distinct clones", "one", "two", refined.Type)
	}
}

func TestResolveSetAugment(t *testing.T) {
	tree, errs := parseAndResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  container top { }

  augment "/m:top" {
    leaf added {
      type string;
    }
  }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	top := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "top")
	added := findByName(tree.Arena, tree.Arena.Children(top), "added")
	if added == NilNode {
		t.Fatalf("augmented leaf %q not found under %q", "added", "top")
	}
}

// TestResolveSetImportCycle checks that two modules importing each other
// are rejected with a cyclic-reference error instead of resolving cleanly,
// per spec §4.4 phase 3's "mutually dependent modules are rejected".
func TestResolveSetImportCycle(t *testing.T) {
	_, errs := parseAndResolveAll(t, `
module a {
  namespace "urn:a";
  prefix "a";

  import b {
    prefix "b";
  }
}`, `
module b {
  namespace "urn:b";
  prefix "b";

  import a {
    prefix "a";
  }
}`)
	if len(errs) == 0 {
		t.Fatalf("got no errors, want a cyclic-reference error")
	}
	if diff := errdiff.Substring(errs[0], "import cycle"); diff != "" {
		t.Error(diff)
	}
}

// TestResolveSetDuplicateModuleKeepsLatestRevision checks that supplying
// two revisions of the same module keeps the one with the later
// "revision" date, regardless of which one appears later in the unit
// list, and that the resulting module set contains exactly one copy.
func TestResolveSetDuplicateModuleKeepsLatestRevision(t *testing.T) {
	tree, errs := parseAndResolveAll(t, `
module m {
  namespace "urn:m2017";
  prefix "m";
  revision 2017-03-10;
}`, `
module m {
  namespace "urn:m2016";
  prefix "m";
  revision 2016-05-26;
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(tree.Modules) != 1 {
		t.Fatalf("got %d modules, want 1", len(tree.Modules))
	}
	ma, _ := tree.Arena.Attrs(tree.Modules[0]).(ModuleAttrs)
	if ma.Namespace != "urn:m2017" {
		t.Errorf("got namespace %q, want the 2017 revision's, even though it was supplied first", ma.Namespace)
	}
}

// TestResolveSetLeafrefResolves checks that a relative leafref path
// resolves across a ".." step into a sibling list's key leaf, the common
// case of one list entry referring back to another by its key.
func TestResolveSetLeafrefResolves(t *testing.T) {
	tree, errs := parseAndResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    list interface {
      key "name";
      leaf name {
        type string;
      }
    }
    leaf bound-to {
      type leafref {
        path "../interface/name";
      }
    }
  }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	top := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "top")
	boundTo := findByName(tree.Arena, tree.Arena.Children(top), "bound-to")
	la, _ := tree.Arena.Attrs(boundTo).(LeafAttrs)
	ta, _ := tree.Arena.Attrs(la.Type).(TypeAttrs)
	if ta.Resolved == nil || ta.Resolved.Builtin != BuiltinLeafref {
		t.Fatalf("leaf %q: got resolved type %+v, want builtin leafref", "bound-to", ta.Resolved)
	}
}

func TestResolveSetDeviationNotSupported(t *testing.T) {
	tree, errs := parseAndResolve(t, `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    leaf gone {
      type string;
    }
  }

  deviation "/m:top/m:gone" {
    deviate not-supported;
  }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	top := findByName(tree.Arena, tree.Arena.Children(tree.Modules[0]), "top")
	if gone := findByName(tree.Arena, tree.Arena.Children(top), "gone"); gone != NilNode {
		t.Errorf("leaf %q still present after a not-supported deviation", "gone")
	}
}

func TestResolveSetErrors(t *testing.T) {
	tests := []struct {
		desc          string
		source        string
		wantErrSubstr string
	}{{
		desc: "leafref without a path statement",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  leaf ref {
    type leafref;
  }
}`,
		wantErrSubstr: "missing a 'path' statement",
	}, {
		desc: "uses names an unknown grouping",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    uses no-such-grouping;
  }
}`,
		wantErrSubstr: "could not resolve",
	}, {
		desc: "augment names an unresolvable target",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  augment "/m:no-such-node" {
    leaf added {
      type string;
    }
  }
}`,
		wantErrSubstr: "could not resolve target",
	}, {
		desc: "two cases of one choice declare the same leaf name",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    choice media {
      case fiber {
        leaf ethernet {
          type string;
        }
      }
      case copper {
        leaf ethernet {
          type string;
        }
      }
    }
  }
}`,
		wantErrSubstr: "collides with a sibling",
	}, {
		desc: "leafref path does not resolve to any node",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  leaf ref {
    type leafref {
      path "/no/such/leaf";
    }
  }
}`,
		wantErrSubstr: "does not resolve to any node",
	}, {
		desc: "leafref path resolves to a container, not a leaf",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
  }

  leaf ref {
    type leafref {
      path "/top";
    }
  }
}`,
		wantErrSubstr: "not a leaf or leaf-list",
	}, {
		desc: "augment targets a leaf",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  leaf target {
    type string;
  }

  augment "/m:target" {
    leaf added {
      type string;
    }
  }
}`,
		wantErrSubstr: "cannot augment into a",
	}, {
		desc: "augment targets a choice with a non-case child",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  choice media {
    case fiber {
      leaf speed {
        type string;
      }
    }
  }

  augment "/m:media" {
    leaf copper {
      type string;
    }
  }
}`,
		wantErrSubstr: "may only add 'case' children",
	}, {
		desc: "choice default names a case that does not exist",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  choice media {
    default "copper";
    case fiber {
      leaf speed {
        type string;
      }
    }
  }
}`,
		wantErrSubstr: "is not one of its cases",
	}, {
		desc: "choice is both mandatory and has a default",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  choice media {
    mandatory true;
    default "fiber";
    case fiber {
      leaf speed {
        type string;
      }
    }
  }
}`,
		wantErrSubstr: "mutually exclusive",
	}, {
		desc: "config-true list with no key statement",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    list entry {
      leaf name {
        type string;
      }
    }
  }
}`,
		wantErrSubstr: "must have a 'key' statement",
	}, {
		desc: "list key leaf is of type empty",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    list entry {
      key "name";
      leaf name {
        type empty;
      }
    }
  }
}`,
		wantErrSubstr: "must not be of type 'empty'",
	}, {
		desc: "list key statement names the same leaf twice",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    list entry {
      key "name name";
      leaf name {
        type string;
      }
    }
  }
}`,
		wantErrSubstr: "named more than once",
	}, {
		desc: "list key leaf's config contradicts the list's",
		source: `
module m {
  namespace "urn:m";
  prefix "m";

  container top {
    list entry {
      key "name";
      leaf name {
        type string;
        config false;
      }
    }
  }
}`,
		wantErrSubstr: "config does not match the list's",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, errs := parseAndResolve(t, tt.source)
			if len(errs) == 0 {
				t.Fatalf("got no errors, want one matching %q", tt.wantErrSubstr)
			}
			if diff := errdiff.Substring(errs[0], tt.wantErrSubstr); diff != "" {
				t.Errorf(diff)
			}
		})
	}
}
