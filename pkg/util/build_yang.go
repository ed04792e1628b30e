// Copyright 2020 Google Inc.
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

// Package util contains high-level helpers for driving the yang package
// over a set of files on disk.
package util

import "github.com/yangschema/compiler/pkg/yang"

// ModuleSet is the result of processing a set of YANG files: the single
// linked tree they resolve into, plus an index from module name to that
// module's root node within it.
type ModuleSet struct {
	Tree    *yang.ResolvedTree
	Modules map[string]yang.NodeID
}

// ProcessModules takes a list of modules/files and a path specification,
// parses and links them (following imports/includes found along path),
// and returns the resulting ModuleSet keyed by top-level module name.
func ProcessModules(yangf, path []string) (*ModuleSet, []error) {
	return ProcessModulesWithOptions(yangf, yang.Options{SearchPaths: path})
}

// ProcessModulesWithOptions is ProcessModules with full control over the
// parse/link Options, e.g. to set RevisionPolicy or
// IgnoreSubmoduleCircularDependencies.
func ProcessModulesWithOptions(yangf []string, opts yang.Options) (*ModuleSet, []error) {
	units, errs := yang.LoadSet(yangf, opts)
	if len(errs) > 0 {
		return nil, errs
	}

	tree, errs := yang.ResolveSet(units, opts)
	if len(errs) > 0 {
		return nil, errs
	}

	modules := make(map[string]yang.NodeID, len(tree.Modules))
	for _, m := range tree.Modules {
		modules[tree.Arena.Common(m).Name] = m
	}
	return &ModuleSet{Tree: tree, Modules: modules}, nil
}
