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

import (
	"os"
	"testing"
	"time"
)

// fakeFileInfo is the minimal os.FileInfo a fake readDirFn needs to hand
// back, standing in for a real directory entry.
type fakeFileInfo struct{ name string }

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() interface{}   { return nil }

// withFakeFS swaps readFileFn/readDirFn for the duration of fn, serving
// dir's listing from entries and each file's content from contents,
// mirroring the teacher's own indirection for testing findFile without
// touching a real filesystem.
func withFakeFS(t *testing.T, entries map[string][]os.FileInfo, contents map[string]string, fn func()) {
	t.Helper()
	origReadDir, origReadFile := readDirFn, readFileFn
	readDirFn = func(dir string) ([]os.FileInfo, error) { return entries[dir], nil }
	readFileFn = func(name string) ([]byte, error) {
		data, ok := contents[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(data), nil
	}
	defer func() { readDirFn, readFileFn = origReadDir, origReadFile }()
	fn()
}

// TestFindFileRevisionSelection exercises scenario S6: with two revisions
// of "m" on disk, a revision-less search binds to the newest one, and a
// search pinned to an explicit revision binds to that exact file, failing
// outright rather than silently falling back when the pinned revision
// does not exist on disk.
func TestFindFileRevisionSelection(t *testing.T) {
	entries := map[string][]os.FileInfo{
		".": {fakeFileInfo{"m@2016-05-26.yang"}, fakeFileInfo{"m@2017-03-10.yang"}},
	}
	contents := map[string]string{
		"m@2016-05-26.yang": `module m { namespace "urn:m2016"; prefix "m"; revision 2016-05-26; }`,
		"m@2017-03-10.yang": `module m { namespace "urn:m2017"; prefix "m"; revision 2017-03-10; }`,
	}

	withFakeFS(t, entries, contents, func() {
		path, _, err := findFile("m", nil, PolicyLatest)
		if err != nil {
			t.Fatalf("revision-less search: %v", err)
		}
		if path != "m@2017-03-10.yang" {
			t.Errorf("revision-less search: got %q, want the 2017 revision", path)
		}

		path, _, err = findFile(importSearchName("m", "2016-05-26"), nil, PolicyLatest)
		if err != nil {
			t.Fatalf("pinned-revision search: %v", err)
		}
		if path != "m@2016-05-26.yang" {
			t.Errorf("pinned-revision search: got %q, want the 2016 revision", path)
		}

		if _, _, err := findFile(importSearchName("m", "2099-01-01"), nil, PolicyLatest); err == nil {
			t.Errorf("pinned-revision search for a revision absent from disk: got no error, want one")
		}
	})
}

// TestLoadSetRevisionPinnedImport checks that LoadSet itself, not just
// findFile, carries an import's revision-date through to the file search:
// a module importing "m" with an explicit revision-date must end up with
// the matching revision's namespace, not whichever revision is newest.
func TestLoadSetRevisionPinnedImport(t *testing.T) {
	entries := map[string][]os.FileInfo{
		".": {fakeFileInfo{"m@2016-05-26.yang"}, fakeFileInfo{"m@2017-03-10.yang"}},
	}
	contents := map[string]string{
		"m@2016-05-26.yang": `module m { namespace "urn:m2016"; prefix "m"; revision 2016-05-26; }`,
		"m@2017-03-10.yang": `module m { namespace "urn:m2017"; prefix "m"; revision 2017-03-10; }`,
		"top.yang": `
module top {
  namespace "urn:top";
  prefix "t";

  import m {
    prefix "m";
    revision-date 2016-05-26;
  }
}`,
	}

	withFakeFS(t, entries, contents, func() {
		units, errs := LoadSet([]string{"top.yang"}, Options{})
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if len(units) != 2 {
			t.Fatalf("got %d units, want 2 (top + the pinned revision of m)", len(units))
		}
		var got string
		for _, u := range units {
			if u.Arena.Common(u.Root).Name == "m" {
				ma, _ := u.Arena.Attrs(u.Root).(ModuleAttrs)
				got = ma.Namespace
			}
		}
		if got != "urn:m2016" {
			t.Errorf("imported module %q: got namespace %q, want the 2016 revision's", "m", got)
		}
	})
}
