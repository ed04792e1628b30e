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

// Package serialize builds and resolves ResourceIds against a linked
// schema tree: the addressing layer a downstream serializer needs to
// name a container, list entry, or leaf-list entry by schema-id path
// rather than by NodeID, which is only stable within one compilation.
package serialize

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// SchemaID names one schema node the way a ResourceId element addresses
// it: by its (name, namespace) pair, the same uniqueness key the
// namespace engine enforces among a node's siblings.
type SchemaID struct {
	Name      string
	Namespace string
}

// NodeKeyKind distinguishes a plain branch point from the two
// instance-addressing specializations a ResourceId element can carry.
type NodeKeyKind int

const (
	PlainKey NodeKeyKind = iota
	ListElemKey
	LeafListElemKey
)

// KeyValue is one key-leaf name/value pair of a ListKey, kept in the
// list's declared key order rather than an unordered map.
type KeyValue struct {
	Name  string
	Value string
}

// NodeKey is one element of a ResourceId. A plain NodeKey addresses a
// container/leaf/choice/case schema node; ListElemKey additionally
// carries the ordered key-leaf values addressing one list entry;
// LeafListElemKey carries the single value addressing one leaf-list
// entry and, per the builder rules, must be the last element.
type NodeKey struct {
	Schema SchemaID
	Kind   NodeKeyKind
	Keys   []KeyValue // ListElemKey only
	Value  string     // LeafListElemKey only
}

// ResourceId is an ordered list of NodeKeys: a path from a module's root
// down to the addressed node.
type ResourceId struct {
	Elems []NodeKey
}

// Equal reports whether r and other address the same resource, field by
// field rather than relying on slice identity.
func (r *ResourceId) Equal(other *ResourceId) bool {
	if r == nil || other == nil {
		return r == other
	}
	return cmp.Equal(r.Elems, other.Elems)
}

func (r *ResourceId) String() string {
	s := ""
	for _, e := range r.Elems {
		s += "/" + e.Schema.Name
		switch e.Kind {
		case ListElemKey:
			for _, k := range e.Keys {
				s += fmt.Sprintf("[%s=%s]", k.Name, k.Value)
			}
		case LeafListElemKey:
			s += fmt.Sprintf("[.=%s]", e.Value)
		}
	}
	return s
}

// ResourceIdBuilder assembles a ResourceId one branch point at a time,
// enforcing the builder rules a downstream caller must not be able to
// violate: a leaf-list key is always terminal, a key leaf always
// promotes the current plain key to a list key, and building requires
// at least one element. Errors are sticky: once set, every further call
// is a no-op until Build reports it.
type ResourceIdBuilder struct {
	elems []NodeKey
	err   error
}

// NewResourceIdBuilder returns an empty ResourceIdBuilder.
func NewResourceIdBuilder() *ResourceIdBuilder {
	return &ResourceIdBuilder{}
}

// AddBranchPointSchema appends a plain NodeKey naming a container, leaf,
// choice, or case schema node.
func (b *ResourceIdBuilder) AddBranchPointSchema(name, namespace string) *ResourceIdBuilder {
	if b.err != nil {
		return b
	}
	if n := len(b.elems); n > 0 && b.elems[n-1].Kind == LeafListElemKey {
		b.err = fmt.Errorf("cannot add a branch point after a leaf-list key")
		return b
	}
	b.elems = append(b.elems, NodeKey{Schema: SchemaID{Name: name, Namespace: namespace}})
	return b
}

// AddKeyLeaf attaches one key-leaf name/value pair to the current
// element, promoting it from a plain NodeKey to a ListKey on first use.
func (b *ResourceIdBuilder) AddKeyLeaf(name, namespace, value string) *ResourceIdBuilder {
	if b.err != nil {
		return b
	}
	n := len(b.elems)
	if n == 0 {
		b.err = fmt.Errorf("cannot add a key leaf with no current branch point")
		return b
	}
	last := &b.elems[n-1]
	if last.Kind == LeafListElemKey {
		b.err = fmt.Errorf("cannot add a key leaf after a leaf-list key")
		return b
	}
	last.Kind = ListElemKey
	last.Keys = append(last.Keys, KeyValue{Name: name, Value: value})
	return b
}

// AddLeafListBranchPoint appends a terminal LeafListKey element.
func (b *ResourceIdBuilder) AddLeafListBranchPoint(name, namespace, value string) *ResourceIdBuilder {
	if b.err != nil {
		return b
	}
	if n := len(b.elems); n > 0 && b.elems[n-1].Kind == LeafListElemKey {
		b.err = fmt.Errorf("cannot add a branch point after a leaf-list key")
		return b
	}
	b.elems = append(b.elems, NodeKey{
		Schema: SchemaID{Name: name, Namespace: namespace},
		Kind:   LeafListElemKey,
		Value:  value,
	})
	return b
}

// Build returns the assembled ResourceId, or the first error any builder
// call raised, or an error if nothing was ever added.
func (b *ResourceIdBuilder) Build() (*ResourceId, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.elems) == 0 {
		return nil, fmt.Errorf("cannot build a ResourceId with no current key")
	}
	return &ResourceId{Elems: append([]NodeKey(nil), b.elems...)}, nil
}
