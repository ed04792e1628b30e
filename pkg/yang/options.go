// Copyright 2017 Google Inc.
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

// Options controls how ParseFile and ResolveSet behave in the presence of
// ambiguous or exceptional input. An Options value is constructed by the
// caller and threaded explicitly through every call that needs it, rather
// than read from a package-level variable, so two unrelated compilations
// never observe each other's configuration.
type Options struct {
	// SearchPaths lists directories searched, in order, for a module or
	// submodule named by "import"/"include" when it is not found in
	// the current directory. A path ending in "/..." is searched
	// recursively.
	SearchPaths []string

	// RevisionPolicy selects how a revision-less import is resolved when
	// more than one revision of the target module is found on
	// SearchPaths. PolicyLatest (the default) picks the newest by
	// lexical sort of the revision-date suffix; PolicyStrict requires
	// exactly one candidate to exist.
	RevisionPolicy RevisionPolicy

	// IgnoreSubmoduleCircularDependencies suppresses the cyclic
	// reference error ResolveSet raises for a submodule whose belongs-to
	// names the submodule itself. Longer include cycles are not detected
	// either way.
	IgnoreSubmoduleCircularDependencies bool
}

// RevisionPolicy selects the module-search tie-break rule of spec §6.
type RevisionPolicy int

const (
	PolicyLatest RevisionPolicy = iota
	PolicyStrict
)
