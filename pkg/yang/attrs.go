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

// TriState is a tri-valued boolean: unset, true or false. Several YANG
// statements (e.g. "config") are inherited from an ancestor when absent,
// so "not specified" must be distinguishable from "false".
type TriState int

const (
	TSUnset TriState = iota
	TSTrue
	TSFalse
)

// Status is the "status" statement's value.
type Status int

const (
	StatusCurrent Status = iota
	StatusDeprecated
	StatusObsolete
)

// ResolveState is the resolvable-status state machine a reference-bearing
// node moves through during linking (spec data model).
type ResolveState int

const (
	Unresolved ResolveState = iota
	IntraFileResolved
	Linked
	ResolveFailed
)

// CommonAttrs is carried by every arena node regardless of kind.
type CommonAttrs struct {
	Name        string
	Description string
	Reference   string
	Status      Status
	When        string // opaque XPath text; evaluation is out of scope
	IfFeatures  []string
	Musts       []MustAttrs
	Extensions  []ExtensionUse
	Namespace   string // effective namespace; the linker fills it in on every node
}

// MustAttrs holds an unevaluated "must" constraint's text and error hints.
type MustAttrs struct {
	Expression   string
	ErrorMessage string
	ErrorAppTag  string
	Reference    string
}

// ExtensionUse is an unknown prefix:keyword statement preserved verbatim,
// per RFC 7950's requirement that extensions survive even when a consumer
// does not understand them.
type ExtensionUse struct {
	Prefix    string
	Keyword   string
	Argument  string
	HasArg    bool
	Statement *Statement
}

// DataNodeAttrs is carried by every data-tree node kind.
type DataNodeAttrs struct {
	Config TriState
}

// LeafAttrs is the capability record for KindLeaf.
type LeafAttrs struct {
	DataNodeAttrs
	Type      NodeID // KindType child
	Units     string
	Default   string
	Mandatory TriState
}

// LeafListAttrs is the capability record for KindLeafList.
type LeafListAttrs struct {
	DataNodeAttrs
	Type        NodeID
	Units       string
	Defaults    []string
	MinElements int
	MaxElements int // 0 means unbounded
	OrderedBy   string
}

// ListAttrs is the capability record for KindList.
type ListAttrs struct {
	DataNodeAttrs
	Key         []string
	Unique      [][]string
	MinElements int
	MaxElements int
	OrderedBy   string
}

// ChoiceAttrs is the capability record for KindChoice.
type ChoiceAttrs struct {
	DataNodeAttrs
	Default   string
	Mandatory TriState
}

// CaseAttrs is the capability record for KindCase. Implicit cases
// synthesized by FixChoice (see namespace.go) set Implicit.
type CaseAttrs struct {
	Implicit bool
}

// ContainerAttrs is the capability record for KindContainer.
type ContainerAttrs struct {
	DataNodeAttrs
	Presence string
}

// UsesAttrs is the capability record for KindUses.
type UsesAttrs struct {
	GroupingName string
	ResolvedTo   NodeID // the grouping definition located during linking
	State        ResolveState
	Refines      []NodeID // KindRefine children
	Augments     []NodeID // augment-within-uses children
}

// RefineAttrs is the capability record for KindRefine.
type RefineAttrs struct {
	TargetPath  string
	Description *string
	Reference   *string
	Default     []string
	Config      TriState
	Mandatory   TriState
	Presence    *string
	MinElements *int
	MaxElements *int
	Musts       []MustAttrs
}

// AugmentAttrs is the capability record for KindAugment.
type AugmentAttrs struct {
	TargetPath    string
	Target        NodeID
	State         ResolveState
	AugmentingMod NodeID // module that declared the augment; its namespace
	// is the effective namespace of every node this augment introduces.
}

// GroupingAttrs is the capability record for KindGrouping.
type GroupingAttrs struct{}

// TypedefAttrs is the capability record for KindTypedef.
type TypedefAttrs struct {
	Type  NodeID
	Units string
	State ResolveState
}

// ResolvedType is the fully resolved description of a KindType node,
// attached once type resolution (typedef.go) completes. It intentionally
// mirrors the builtin/typedef/restriction shape a YANG type system
// requires (name, kind, range/length/pattern restrictions, enum/bit maps,
// union members, leafref path, identityref base).
type ResolvedType struct {
	Name             string
	Builtin          BuiltinKind
	Base             NodeID // typedef this type resolved through, if any
	IdentityBase     NodeID // base identity, for identityref
	Units            string
	Default          string
	FractionDigits   int
	Length           []LengthPart
	Range            []RangePart
	Pattern          []string
	POSIXPattern     []string
	OptionalInstance bool
	Path             string // leafref path, unevaluated
	Enums            []EnumAttrs
	Bits             []EnumAttrs
	Union            []NodeID // member KindType nodes, for Yunion
	State            ResolveState
}

// TypeAttrs is the capability record for KindType while it is still raw
// (pre-resolution) syntax; ResolvedType is attached separately once
// type resolution completes so re-resolution never mutates source syntax.
type TypeAttrs struct {
	Name     string
	Resolved *ResolvedType
}

// BuiltinKind enumerates YANG's nineteen builtin base types.
type BuiltinKind int

const (
	BuiltinNone BuiltinKind = iota
	BuiltinInt8
	BuiltinInt16
	BuiltinInt32
	BuiltinInt64
	BuiltinUint8
	BuiltinUint16
	BuiltinUint32
	BuiltinUint64
	BuiltinBinary
	BuiltinBits
	BuiltinBoolean
	BuiltinDecimal64
	BuiltinEmpty
	BuiltinEnumeration
	BuiltinIdentityref
	BuiltinInstanceIdentifier
	BuiltinLeafref
	BuiltinString
	BuiltinUnion
)

var builtinNames = map[string]BuiltinKind{
	"int8": BuiltinInt8, "int16": BuiltinInt16, "int32": BuiltinInt32, "int64": BuiltinInt64,
	"uint8": BuiltinUint8, "uint16": BuiltinUint16, "uint32": BuiltinUint32, "uint64": BuiltinUint64,
	"binary": BuiltinBinary, "bits": BuiltinBits, "boolean": BuiltinBoolean,
	"decimal64": BuiltinDecimal64, "empty": BuiltinEmpty, "enumeration": BuiltinEnumeration,
	"identityref": BuiltinIdentityref, "instance-identifier": BuiltinInstanceIdentifier,
	"leafref": BuiltinLeafref, "string": BuiltinString, "union": BuiltinUnion,
}

func (b BuiltinKind) String() string {
	for name, k := range builtinNames {
		if k == b {
			return name
		}
	}
	return "none"
}

// RangePart is one "min..max" segment of a range/length restriction.
type RangePart struct {
	Min, Max  float64
	MinString string // "min" keyword, preserved verbatim
	MaxString string // "max" keyword, preserved verbatim
}

// LengthPart mirrors RangePart for length restrictions on strings/binary.
type LengthPart = RangePart

// EnumAttrs is one "enum"/"bit" member.
type EnumAttrs struct {
	Name   string
	Value  int64
	HasVal bool
	Status Status
}

// IdentityAttrs is the capability record for KindIdentity.
type IdentityAttrs struct {
	BaseNames []string
	Bases     []NodeID
	State     ResolveState
}

// FeatureAttrs is the capability record for KindFeature.
type FeatureAttrs struct{}

// ExtensionAttrs is the capability record for an "extension" statement
// definition (distinct from ExtensionUse, which is an instance of one).
type ExtensionAttrs struct {
	ArgumentName string
	YinElement   bool
}

// RPCAttrs/ActionAttrs/NotificationAttrs carry nothing beyond CommonAttrs
// today; they exist so Kind-specific attribute lookups stay total.
type RPCAttrs struct{}
type ActionAttrs struct{}
type NotificationAttrs struct{}
type InputAttrs struct{}
type OutputAttrs struct{}

// ModuleAttrs is the capability record for KindModule/KindSubmodule.
type ModuleAttrs struct {
	Prefix       string
	Namespace    string // empty for a submodule until linked to its belongs-to
	BelongsTo    string // submodule only
	YangVersion  string
	Organization string
	Contact      string
	Imports      []ImportAttrs
	Includes     []IncludeAttrs
	Revisions    []string
}

// ImportAttrs records one "import" statement.
type ImportAttrs struct {
	ModuleName string
	Prefix     string
	Revision   string
	Resolved   NodeID // resolved KindModule
}

// IncludeAttrs records one "include" statement.
type IncludeAttrs struct {
	SubmoduleName string
	Revision      string
	Resolved      NodeID
}

// DeviationAttrs is the capability record for KindDeviation.
type DeviationAttrs struct {
	TargetPath string
	Target     NodeID
	State      ResolveState
}

// DeviateAttrs is the capability record for KindDeviate.
type DeviateAttrs struct {
	Action    string // not-supported, add, replace, delete
	Config    TriState
	Default   []string
	Mandatory TriState
	MinElem   *int
	MaxElem   *int
	Units     *string
}
