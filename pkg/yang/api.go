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

// Package yang parses YANG module source (RFC 6020/7950) into a resolved
// schema tree. Parsing produces one Arena per source file; ResolveSet
// links a set of Arenas together (resolving imports, typedefs,
// identities, uses, and augments) into a single ResolvedTree that a
// serializer context can be built over.
package yang

import (
	"fmt"
	"io/ioutil"
)

// ParseFile reads and parses the YANG source at path, returning the
// Arena it was built into and the id of its root "module"/"submodule"
// node. Read and syntax errors are returned together with a nil Arena.
func ParseFile(path string, opts Options) (*Arena, NodeID, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, NilNode, err
	}
	return ParseSource(string(data), path, opts)
}

// ParseSource parses YANG source already held in memory; path is used
// only to stamp source positions and error messages.
func ParseSource(source, path string, opts Options) (*Arena, NodeID, error) {
	statements, errs := Parse(source, path)
	if errs != nil {
		return nil, NilNode, combineErrors(errs)
	}
	if len(statements) == 0 {
		return nil, NilNode, fmt.Errorf("%s: no statements found", path)
	}
	if len(statements) > 1 {
		return nil, NilNode, errSyntax(statements[1], "only one module or submodule is permitted per file")
	}
	arena, root, berrs := BuildModule(statements[0])
	if len(berrs) > 0 {
		return nil, NilNode, combineErrors(berrs)
	}
	return arena, root, nil
}

// LoadSet parses every file in names and, transitively, every module or
// submodule they import or include, searching opts.SearchPaths for
// anything not given directly in names. It mirrors the teacher's
// recursive Modules.Read closure-walk, but returns the parsed units for
// the caller to hand to ResolveSet rather than mutating package state.
func LoadSet(names []string, opts Options) ([]ParsedUnit, []error) {
	var units []ParsedUnit
	var errs []error
	queued := map[string]bool{}
	queue := append([]string{}, names...)
	for _, n := range queue {
		queued[n] = true
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		path, data, err := findFile(name, opts.SearchPaths, opts.RevisionPolicy)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		arena, root, perr := ParseSource(data, path, opts)
		if perr != nil {
			errs = append(errs, Errors(perr)...)
			continue
		}
		units = append(units, ParsedUnit{Arena: arena, Root: root})

		ma, _ := arena.Attrs(root).(ModuleAttrs)
		for _, imp := range ma.Imports {
			key := importSearchName(imp.ModuleName, imp.Revision)
			if !queued[key] {
				queued[key] = true
				queue = append(queue, key)
			}
		}
		for _, inc := range ma.Includes {
			key := importSearchName(inc.SubmoduleName, inc.Revision)
			if !queued[key] {
				queued[key] = true
				queue = append(queue, key)
			}
		}
	}
	return units, errs
}

// importSearchName turns a module/submodule name and an optional
// "revision-date" substatement into the search key findFile expects: a
// bare name resolves to whichever revision is newest on disk (subject to
// opts.RevisionPolicy), but a name pinned to a revision must resolve to
// that exact "name@revision.yang" file, per spec §6 and findInDir's
// exact-match handling of a name containing "@".
func importSearchName(name, revision string) string {
	if revision == "" {
		return name
	}
	return name + "@" + revision
}

func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return &multiError{errs: errs}
}

// multiError bundles several errors returned together from one pass
// (parsing, linking) into a single error value.
type multiError struct {
	errs []error
}

func (m *multiError) Error() string {
	s := fmt.Sprintf("%d errors:", len(m.errs))
	for _, e := range m.errs {
		s += "\n  " + e.Error()
	}
	return s
}

// Errors unwraps a combined error back into its constituent errors, or
// returns []error{err} if err is not a combined error (or nil).
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if m, ok := err.(*multiError); ok {
		return m.errs
	}
	return []error{err}
}
