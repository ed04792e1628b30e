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

// Program yanglint parses YANG files, links them, and displays the
// resulting schema tree.
//
// Usage: yanglint [--path PATH] [--format FORMAT] FILE ...
//
// FORMAT, which defaults to "tree", selects a registered formatter:
//
//   tree   modules in indented tree form
//   types  every distinct resolved type found in the modules
//   ids    every ResourceId reachable from the modules
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/yangschema/compiler/pkg/yang"
)

// formatter is one pluggable output mode, in the spirit of the teacher's
// per-format source files (tree.go, types.go): each format registers
// itself from an init() rather than main() knowing about it directly.
type formatter struct {
	name string
	f    func(w io.Writer, tree *yang.ResolvedTree)
	help string
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

func exitIfError(errs []error) {
	if len(errs) == 0 {
		return
	}
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func main() {
	format := "tree"
	var searchPaths []string
	strict := false

	getopt.CommandLine.ListVarLong(&searchPaths, "path", 0, "comma separated list of directories to search for imports/includes")
	getopt.CommandLine.StringVarLong(&format, "format", 0, "format to display: "+formatNames())
	getopt.CommandLine.BoolVarLong(&strict, "strict-revisions", 0, "require an unambiguous revision for every import")

	getopt.Parse()
	files := getopt.Args()

	fn := formatters[format]
	if fn == nil {
		fmt.Fprintf(os.Stderr, "unknown format: %s\n", format)
		os.Exit(1)
	}

	opts := yang.Options{SearchPaths: searchPaths}
	if strict {
		opts.RevisionPolicy = yang.PolicyStrict
	}

	var units []yang.ParsedUnit
	if len(files) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		arena, root, err := yang.ParseSource(string(data), "<STDIN>", opts)
		exitIfError(yang.Errors(err))
		units = append(units, yang.ParsedUnit{Arena: arena, Root: root})
	}
	loaded, errs := yang.LoadSet(files, opts)
	exitIfError(errs)
	units = append(units, loaded...)

	tree, errs := yang.ResolveSet(units, opts)
	exitIfError(errs)

	fn.f(os.Stdout, tree)
}

func formatNames() string {
	var names []string
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
