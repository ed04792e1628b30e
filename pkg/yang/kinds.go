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

import "fmt"

// Kind tags every node held in an Arena. Behavior that used to live on
// distinct Go types (one struct per YANG statement, as in a deep
// inheritance hierarchy) instead dispatches on Kind against data tables
// (see holderRules and the cardinality type in holders.go).
type Kind int

const (
	KindNone Kind = iota
	KindModule
	KindSubmodule
	KindBelongsTo
	KindImport
	KindInclude
	KindRevision
	KindContainer
	KindList
	KindLeaf
	KindLeafList
	KindChoice
	KindCase
	KindAnyXML
	KindAnyData
	KindGrouping
	KindUses
	KindRefine
	KindTypedef
	KindType
	KindIdentity
	KindFeature
	KindExtension
	KindAugment
	KindRPC
	KindAction
	KindInput
	KindOutput
	KindNotification
	KindDeviation
	KindDeviate
	KindMust
	KindWhen
	KindEnum
	KindBit
	KindRange
	KindLength
	KindPattern
	KindUnknown // captured extension statement, preserved verbatim
)

var kindNames = map[Kind]string{
	KindNone:         "none",
	KindModule:       "module",
	KindSubmodule:    "submodule",
	KindBelongsTo:    "belongs-to",
	KindImport:       "import",
	KindInclude:      "include",
	KindRevision:     "revision",
	KindContainer:    "container",
	KindList:         "list",
	KindLeaf:         "leaf",
	KindLeafList:     "leaf-list",
	KindChoice:       "choice",
	KindCase:         "case",
	KindAnyXML:       "anyxml",
	KindAnyData:      "anydata",
	KindGrouping:     "grouping",
	KindUses:         "uses",
	KindRefine:       "refine",
	KindTypedef:      "typedef",
	KindType:         "type",
	KindIdentity:     "identity",
	KindFeature:      "feature",
	KindExtension:    "extension",
	KindAugment:      "augment",
	KindRPC:          "rpc",
	KindAction:       "action",
	KindInput:        "input",
	KindOutput:       "output",
	KindNotification: "notification",
	KindDeviation:    "deviation",
	KindDeviate:      "deviate",
	KindMust:         "must",
	KindWhen:         "when",
	KindEnum:         "enum",
	KindBit:          "bit",
	KindRange:        "range",
	KindLength:       "length",
	KindPattern:      "pattern",
	KindUnknown:      "unknown",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind-%d", int(k))
}

// keywordToKind maps YANG statement keywords to their Kind, the data-table
// replacement for goyang's reflected struct-tag dispatch.
var keywordToKind = map[string]Kind{
	"module":       KindModule,
	"submodule":    KindSubmodule,
	"belongs-to":   KindBelongsTo,
	"import":       KindImport,
	"include":      KindInclude,
	"revision":     KindRevision,
	"container":    KindContainer,
	"list":         KindList,
	"leaf":         KindLeaf,
	"leaf-list":    KindLeafList,
	"choice":       KindChoice,
	"case":         KindCase,
	"anyxml":       KindAnyXML,
	"anydata":      KindAnyData,
	"grouping":     KindGrouping,
	"uses":         KindUses,
	"refine":       KindRefine,
	"typedef":      KindTypedef,
	"type":         KindType,
	"identity":     KindIdentity,
	"feature":      KindFeature,
	"extension":    KindExtension,
	"augment":      KindAugment,
	"rpc":          KindRPC,
	"action":       KindAction,
	"input":        KindInput,
	"output":       KindOutput,
	"notification": KindNotification,
	"deviation":    KindDeviation,
	"deviate":      KindDeviate,
	"must":         KindMust,
	"when":         KindWhen,
	"enum":         KindEnum,
	"bit":          KindBit,
	"range":        KindRange,
	"length":       KindLength,
	"pattern":      KindPattern,
}

// IsDataNode reports whether a node of this kind participates in the data
// tree and namespace/collision checks (spec "node kinds" taxonomy).
func (k Kind) IsDataNode() bool {
	switch k {
	case KindContainer, KindList, KindLeaf, KindLeafList, KindChoice, KindCase,
		KindAnyXML, KindAnyData, KindRPC, KindAction, KindInput, KindOutput, KindNotification:
		return true
	}
	return false
}

// HasOwnNamespace reports whether a node of this kind is a "nearest module
// ancestor" for namespace inheritance purposes (module and submodule only;
// a submodule's effective namespace is resolved to its belongs-to module
// during linking, see namespace.go).
func (k Kind) HasOwnNamespace() bool {
	return k == KindModule || k == KindSubmodule
}
