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
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

// TestParseTrailingBrace checks that a stray '}' after an otherwise
// complete module reports the same diagnostic an ANTLR-generated parser
// would: the statement forest is already balanced, so the extra '}' is a
// token the grammar expects EOF in place of, not an "unexpected" anything.
func TestParseTrailingBrace(t *testing.T) {
	_, errs := Parse(`
module m {
  namespace "urn:m";
  prefix "m";
}
}`, "<test>")
	if len(errs) == 0 {
		t.Fatalf("got no errors, want a syntax error for the trailing '}'")
	}
	if diff := errdiff.Substring(errs[0], "mismatched input '}' expecting <EOF>"); diff != "" {
		t.Error(diff)
	}
}
