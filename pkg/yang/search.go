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

// This file implements module search and revision selection (spec §6):
// locating the .yang source for an import/include by name (and optional
// revision), without relying on a package-level search-path variable.

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// readFileFn and readDirFn are indirected for testability, mirroring the
// teacher's own findFile/findInDir split.
var readFileFn = ioutil.ReadFile
var readDirFn = ioutil.ReadDir

// findFile returns the path and contents of the .yang file for name,
// searching paths in order. If name has no "/" and no ".yang" suffix, it
// is treated as a bare module name and ".yang" is appended. If no exact
// file match exists, each directory is scanned for "name@revision.yang"
// candidates and, per policy, the newest (or the sole) one is selected.
func findFile(name string, paths []string, policy RevisionPolicy) (string, string, error) {
	slash := strings.Index(name, "/")
	if slash < 0 && !strings.HasSuffix(name, ".yang") {
		name += ".yang"
		if best, err := findInDir(".", name, false, policy); err == nil && best != "" {
			name = best
		}
	}

	if data, err := readFileFn(name); err == nil {
		return name, string(data), nil
	} else if slash >= 0 {
		return "", "", fmt.Errorf("no such file: %s", name)
	}

	for _, dir := range paths {
		var n string
		if filepath.Base(dir) == "..." {
			best, err := findInDir(filepath.Dir(dir), name, true, policy)
			if err != nil {
				return "", "", err
			}
			n = best
		} else {
			best, err := findInDir(dir, name, false, policy)
			if err != nil {
				return "", "", err
			}
			n = best
		}
		if n == "" {
			continue
		}
		if data, err := readFileFn(n); err == nil {
			return n, string(data), nil
		}
	}
	return "", "", fmt.Errorf("no such file: %s", name)
}

// findInDir looks for a file named name in dir (recursing into
// subdirectories when recurse is true). If no exact match exists but
// revision-suffixed candidates do, policy decides which is returned.
func findInDir(dir, name string, recurse bool, policy RevisionPolicy) (string, error) {
	fis, err := readDirFn(dir)
	if err != nil {
		return "", nil
	}
	var candidates []string
	mname := strings.TrimSuffix(name, ".yang")

	for _, fi := range fis {
		switch {
		case !fi.IsDir():
			if fn := fi.Name(); fn == name {
				return filepath.Join(dir, name), nil
			} else if !strings.Contains(name, "@") {
				if strings.HasPrefix(fn, mname+"@") && strings.HasSuffix(fn, ".yang") {
					candidates = append(candidates, fn)
				}
			}
		case recurse:
			if n, err := findInDir(filepath.Join(dir, fi.Name()), name, recurse, policy); err != nil {
				return "", err
			} else if n != "" {
				return n, nil
			}
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}
	if policy == PolicyStrict && len(candidates) > 1 {
		return "", fmt.Errorf("ambiguous revision for %s in %s: %v", name, dir, candidates)
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[len(candidates)-1]), nil
}

// pathsWithModules walks root and returns every directory that contains
// at least one ".yang" file, for building a SearchPaths list from a
// source tree.
func pathsWithModules(root string) ([]string, error) {
	var paths []string
	seen := map[string]bool{}
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return err
		}
		if strings.HasSuffix(p, ".yang") {
			dir := filepath.Dir(p)
			if !seen[dir] {
				seen[dir] = true
				paths = append(paths, dir)
			}
		}
		return nil
	})
	return paths, err
}
