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

// Package indent provides io.Writer wrappers and helpers that prefix each
// line of output with a fixed string.
package indent

import "io"

// String returns in with prefix inserted at the start of the string and
// after every newline except a trailing one, unless in is empty.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}

// Bytes returns in with prefix inserted at the start of in and after
// every newline except a trailing one, unless in is empty.
func Bytes(prefix, in []byte) []byte {
	if len(in) == 0 {
		return in
	}
	out := make([]byte, 0, len(in)+len(prefix))
	out = append(out, prefix...)
	for i, b := range in {
		out = append(out, b)
		if b == '\n' && i != len(in)-1 {
			out = append(out, prefix...)
		}
	}
	return out
}

// writer indents every line written to it with prefix before forwarding
// the result to w.
type writer struct {
	w      io.Writer
	prefix []byte
	atBOL  bool
}

// NewWriter returns an io.Writer that prefixes every line written through
// it with prefix before writing it on to w.
func NewWriter(w io.Writer, prefix string) io.Writer {
	return &writer{w: w, prefix: []byte(prefix), atBOL: true}
}

// Write implements io.Writer. The indented form of p is written to the
// underlying writer in a single call, then the number of underlying bytes
// actually accepted is translated back into the corresponding count of
// input bytes (prefix bytes never count), so a caller sees a short write
// only when the underlying writer itself produced one.
func (w *writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	out := make([]byte, 0, len(p)+len(w.prefix))
	consumedAt := make([]int, 0, len(p)+len(w.prefix))
	atBOL := w.atBOL
	consumed := 0
	for _, b := range p {
		if atBOL {
			out = append(out, w.prefix...)
			for range w.prefix {
				consumedAt = append(consumedAt, consumed)
			}
			atBOL = false
		}
		out = append(out, b)
		consumed++
		consumedAt = append(consumedAt, consumed)
		if b == '\n' {
			atBOL = true
		}
	}

	n, err := w.w.Write(out)
	switch {
	case n >= len(out):
		w.atBOL = atBOL
		return len(p), err
	case n <= 0:
		return 0, err
	default:
		return consumedAt[n-1], err
	}
}
