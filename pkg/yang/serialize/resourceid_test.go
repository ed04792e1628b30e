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

	"github.com/openconfig/gnmi/errdiff"
)

func TestResourceIdBuilder(t *testing.T) {
	tests := []struct {
		desc          string
		build         func(b *ResourceIdBuilder)
		wantErrSubstr string
		want          *ResourceId
	}{{
		desc: "plain container path",
		build: func(b *ResourceIdBuilder) {
			b.AddBranchPointSchema("top", "urn:m").AddBranchPointSchema("name", "urn:m")
		},
		want: &ResourceId{Elems: []NodeKey{
			{Schema: SchemaID{"top", "urn:m"}},
			{Schema: SchemaID{"name", "urn:m"}},
		}},
	}, {
		desc: "list entry by one key leaf",
		build: func(b *ResourceIdBuilder) {
			b.AddBranchPointSchema("items", "urn:m").AddKeyLeaf("id", "urn:m", "7")
		},
		want: &ResourceId{Elems: []NodeKey{
			{Schema: SchemaID{"items", "urn:m"}, Kind: ListElemKey, Keys: []KeyValue{{Name: "id", Value: "7"}}},
		}},
	}, {
		desc: "leaf-list entry",
		build: func(b *ResourceIdBuilder) {
			b.AddBranchPointSchema("top", "urn:m").AddLeafListBranchPoint("tags", "urn:m", "blue")
		},
		want: &ResourceId{Elems: []NodeKey{
			{Schema: SchemaID{"top", "urn:m"}},
			{Schema: SchemaID{"tags", "urn:m"}, Kind: LeafListElemKey, Value: "blue"},
		}},
	}, {
		desc: "branch point after a leaf-list key is illegal",
		build: func(b *ResourceIdBuilder) {
			b.AddLeafListBranchPoint("tags", "urn:m", "blue").AddBranchPointSchema("more", "urn:m")
		},
		wantErrSubstr: "branch point after a leaf-list key",
	}, {
		desc: "key leaf after a leaf-list key is illegal",
		build: func(b *ResourceIdBuilder) {
			b.AddLeafListBranchPoint("tags", "urn:m", "blue").AddKeyLeaf("id", "urn:m", "7")
		},
		wantErrSubstr: "key leaf after a leaf-list key",
	}, {
		desc:          "key leaf with no current branch point is illegal",
		build:         func(b *ResourceIdBuilder) { b.AddKeyLeaf("id", "urn:m", "7") },
		wantErrSubstr: "no current branch point",
	}, {
		desc:          "building with no current key is illegal",
		build:         func(b *ResourceIdBuilder) {},
		wantErrSubstr: "no current key",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			b := NewResourceIdBuilder()
			tt.build(b)
			got, err := b.Build()
			if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
				t.Fatalf(diff)
			}
			if tt.wantErrSubstr != "" {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
