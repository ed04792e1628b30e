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

// This file is the data-driven replacement for a reflection-over-struct-
// tags dispatch table: which keyword may hold which child keywords, which
// children are mandatory, and which may appear at most once. A keyword's
// validity under a given holder is looked up here rather than encoded as
// a distinct Go type for every statement with its own struct fields.

// cardinality describes how many times a child keyword may appear under
// a given holder.
type cardinality int

const (
	zeroOrOne cardinality = iota
	exactlyOne
	zeroOrMore
	oneOrMore
)

// holderRule is one entry of the holder-rule table: under holder, the
// keyword kw may appear with the given cardinality.
type holderRule struct {
	kw   Kind
	card cardinality
}

// holderRules maps a holder's Kind to the statements it may directly
// contain, replacing the teacher's per-struct reflected "yang" tag.
var holderRules = map[Kind][]holderRule{
	KindModule: {
		{KindBelongsTo, zeroOrOne}, // submodule only; validated separately
		{KindImport, zeroOrMore},
		{KindInclude, zeroOrMore},
		{KindRevision, zeroOrMore},
		{KindExtension, zeroOrMore},
		{KindFeature, zeroOrMore},
		{KindIdentity, zeroOrMore},
		{KindTypedef, zeroOrMore},
		{KindGrouping, zeroOrMore},
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindAugment, zeroOrMore},
		{KindRPC, zeroOrMore},
		{KindNotification, zeroOrMore},
		{KindDeviation, zeroOrMore},
	},
	KindContainer: {
		{KindTypedef, zeroOrMore},
		{KindGrouping, zeroOrMore},
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindAction, zeroOrMore},
		{KindNotification, zeroOrMore},
		{KindMust, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindList: {
		{KindTypedef, zeroOrMore},
		{KindGrouping, zeroOrMore},
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindAction, zeroOrMore},
		{KindNotification, zeroOrMore},
		{KindMust, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindLeaf: {
		{KindType, exactlyOne},
		{KindMust, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindLeafList: {
		{KindType, exactlyOne},
		{KindMust, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindChoice: {
		{KindCase, zeroOrMore},
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindCase: {
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindGrouping: {
		{KindTypedef, zeroOrMore},
		{KindGrouping, zeroOrMore},
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindAction, zeroOrMore},
		{KindNotification, zeroOrMore},
	},
	KindUses: {
		{KindRefine, zeroOrMore},
		{KindAugment, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindAugment: {
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindCase, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindAction, zeroOrMore},
		{KindNotification, zeroOrMore},
		{KindWhen, zeroOrOne},
	},
	KindTypedef: {
		{KindType, exactlyOne},
	},
	KindType: {
		{KindType, zeroOrMore}, // union members
		{KindRange, zeroOrOne},
		{KindLength, zeroOrOne},
		{KindPattern, zeroOrMore},
		{KindEnum, zeroOrMore},
		{KindBit, zeroOrMore},
	},
	KindIdentity: {},
	KindFeature:  {},
	KindRPC: {
		{KindInput, zeroOrOne},
		{KindOutput, zeroOrOne},
		{KindGrouping, zeroOrMore},
		{KindTypedef, zeroOrMore},
	},
	KindAction: {
		{KindInput, zeroOrOne},
		{KindOutput, zeroOrOne},
		{KindGrouping, zeroOrMore},
		{KindTypedef, zeroOrMore},
	},
	KindInput: {
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindTypedef, zeroOrMore},
		{KindGrouping, zeroOrMore},
		{KindMust, zeroOrMore},
	},
	KindOutput: {
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindTypedef, zeroOrMore},
		{KindGrouping, zeroOrMore},
		{KindMust, zeroOrMore},
	},
	KindNotification: {
		{KindContainer, zeroOrMore},
		{KindList, zeroOrMore},
		{KindLeaf, zeroOrMore},
		{KindLeafList, zeroOrMore},
		{KindChoice, zeroOrMore},
		{KindAnyXML, zeroOrMore},
		{KindAnyData, zeroOrMore},
		{KindUses, zeroOrMore},
		{KindTypedef, zeroOrMore},
		{KindGrouping, zeroOrMore},
		{KindMust, zeroOrMore},
	},
	KindDeviation: {
		{KindDeviate, oneOrMore},
	},
	KindDeviate: {
		{KindType, zeroOrOne},
		{KindMust, zeroOrMore},
	},
}

// A submodule may hold the same statements as a module.
func init() {
	holderRules[KindSubmodule] = holderRules[KindModule]
}

// argumentRequired records whether a keyword's statement must carry an
// argument (almost all do; a handful, like "input"/"output", do not).
var argumentRequired = map[Kind]bool{
	KindInput:  false,
	KindOutput: false,
}

func requiresArgument(k Kind) bool {
	if v, ok := argumentRequired[k]; ok {
		return v
	}
	return true
}

// allowedUnder reports whether child may appear directly under holder, and
// the cardinality it is bound by. ok is false for keywords holder does not
// recognize at all; buildChildren reports those as InvalidHolder errors
// (prefixed extension statements never reach this check, since
// splitCommon captures them first).
func allowedUnder(holder, child Kind) (cardinality, bool) {
	for _, r := range holderRules[holder] {
		if r.kw == child {
			return r.card, true
		}
	}
	return 0, false
}
