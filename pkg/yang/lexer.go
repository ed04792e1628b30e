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

// This file implements the lexical tokenization of YANG source. The lexer
// returns a series of tokens with one of the following codes:
//
//    tError       // an error was encountered
//    tEOF         // end-of-file
//    tString      // a de-quoted string (e.g., "\"bob\"" becomes "bob")
//    tUnquoted    // an un-quoted string
//    '{'
//    ';'
//    '}'

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	eof       = 0x7fffffff // end of file, also an invalid rune
	maxErrors = 8
)

// stateFn represents a state in the lexer as a function, returning the
// next state the lexer should move to.
type stateFn func(*lexer) stateFn

// A lexer holds the internal state of the lexer. Diagnostics accumulate in
// errs rather than being written to a package-level or process-global
// stream, so two lexers never contend over shared state.
type lexer struct {
	errs   []error
	errcnt int

	file  string // name of the file being processed
	input string
	start int // start of unconsumed data
	pos   int // current read position
	line  int // current line, 1-based
	col   int // current column, 0-based

	inPattern bool
	items     []*token
	tcol      int // column with tabs expanded, for multi-line strings
	scol      int // starting col of current token
	sline     int // starting line of current token
	state     stateFn
	width     int // width of the last rune read
}

// code is a token code. Single-character tokens (punctuation) are
// represented by their Unicode code point.
type code int

const (
	tEOF      = code(-1 - iota)
	tError
	tString
	tUnquoted
)

func (c code) String() string {
	switch c {
	case tEOF:
		return "EOF"
	case tError:
		return "Error"
	case tString:
		return "String"
	case tUnquoted:
		return "Unquoted"
	}
	if c < 0 || c > '~' {
		return fmt.Sprintf("%d", int(c))
	}
	return fmt.Sprintf("%q", rune(c))
}

// token is one lexical unit read from the input. Line and Col are 1-based.
type token struct {
	code code
	Text string
	File string
	Line int
	Col  int
}

func (t *token) Code() code {
	if t == nil {
		return tEOF
	}
	return t.code
}

// newLexer returns a new lexer over input, tagging every token and error
// with path as the source file name.
func newLexer(input, path string) *lexer {
	if len(input) > 0 && input[len(input)-1] != '\n' {
		input += "\n"
	}
	return &lexer{
		file:  path,
		input: input,
		line:  1,
		state: lexGround,
	}
}

// NextToken returns the next token from the input, or nil at EOF.
func (l *lexer) NextToken() *token {
	for {
		if len(l.items) > 0 {
			t := l.items[0]
			l.items = l.items[1:]
			return t
		}
		if l.state == nil {
			return nil
		}
		l.state = l.state(l)
	}
}

func (l *lexer) emit(c code) {
	l.emitText(c, l.input[l.start:l.pos])
}

func (l *lexer) emitText(c code, text string) {
	l.items = append(l.items, &token{
		code: c,
		Text: text,
		File: l.file,
		Line: l.sline,
		Col:  l.scol + 1,
	})
	l.consume()
}

func (l *lexer) consume() {
	l.start = l.pos
}

func (l *lexer) backup() {
	l.pos -= l.width
	if l.width > 0 {
		l.col--
		l.tcol--
		if l.col < 0 {
			l.line--
			l.col = 0
			l.tcol = 0
		}
	}
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	switch r {
	case '\n':
		l.line++
		l.col = 0
		l.tcol = 0
	case '\t':
		l.tcol = (l.tcol + 8) &^ 7
		l.col++
	default:
		l.tcol++
		l.col++
	}
	return r
}

func (l *lexer) acceptRun(valid string) bool {
	ret := false
	for strings.ContainsRune(valid, l.next()) {
		ret = true
	}
	l.backup()
	return ret
}

func (l *lexer) skipTo(s string) bool {
	if x := strings.Index(l.input[l.pos:], s); x >= 0 {
		l.updateCursor(x)
		return true
	}
	return false
}

func (l *lexer) updateCursor(n int) {
	s := l.input[l.pos : l.pos+n]
	l.pos += n
	l.width = n
	if c := strings.Count(s, "\n"); c > 0 {
		l.line += c
		l.col = 0
	}
	l.col += utf8.RuneCountInString(s[strings.LastIndex(s, "\n")+1:])
}

// Errorf records a SyntaxError at the lexer's current position. Once
// maxErrors have accumulated, the remaining input is discarded and lexing
// halts, matching a parser's "give up after too many errors" behavior.
func (l *lexer) Errorf(format string, v ...interface{}) {
	l.ErrorfAt(l.line, l.col+1, format, v...)
}

func (l *lexer) ErrorfAt(line, col int, format string, v ...interface{}) {
	l.emit(tError)
	l.errs = append(l.errs, &SyntaxError{
		Pos: Pos{File: l.file, Line: line, Col: col},
		Msg: fmt.Sprintf(format, v...),
	})
	l.errcnt++
	if l.errcnt >= maxErrors {
		l.pos = 0
		l.start = 0
		l.input = ""
	}
}

// Below are the lexer states.

// lexGround is the state when the lexer is not mid-token.
func lexGround(l *lexer) stateFn {
	l.acceptRun(" \t\r\n")
	l.consume()
	l.sline = l.line
	l.scol = l.col

	switch c := l.peek(); c {
	case eof:
		return nil
	case ';', '{', '}':
		l.next()
		l.emit(code(c))
		return lexGround
	case '\'':
		l.next()
		l.consume()
		if !l.skipTo("'") {
			l.ErrorfAt(l.line, l.col-1, `missing closing '`)
			return nil
		}
		l.emit(tString)
		l.next()
		return lexGround
	case '"':
		l.next()
		return lexQString
	case '/':
		l.next()
		switch l.peek() {
		case '/':
			if !l.skipTo("\n") {
				l.ErrorfAt(l.line, l.col-1, `lexer internal error: all lines should be newline-terminated`)
				return nil
			}
			return lexGround
		case '*':
			if !l.skipTo("*/") {
				l.ErrorfAt(l.line, l.col-1, `missing closing */`)
				return nil
			}
			l.next()
			l.next()
			return lexGround
		default:
			return lexUnquoted
		}
	case '+':
		l.next()
		switch l.peek() {
		case '"', '\'':
			l.emit(tUnquoted)
			return lexGround
		default:
			return lexUnquoted
		}
	default:
		return lexUnquoted
	}
}

// lexQString handles double-quoted strings, stripping indentation per
// RFC 7950 §6.1.3's rules for multi-line quoted text.
func lexQString(l *lexer) stateFn {
	indent := l.tcol
	over := true
	line, col := l.line, l.col-1

	var text []byte
	for {
		switch c := l.next(); c {
		case eof:
			l.ErrorfAt(line, col, `missing closing "`)
			return nil
		case '"':
			l.emitText(tString, string(text))
			return lexGround
		case '\n':
		trim:
			for i := len(text); i > 0; {
				i--
				switch text[i] {
				case ' ', '\t':
					text = text[:i]
				default:
					break trim
				}
			}
			text = append(text, []byte(string(c))...)
			over = false
		case ' ', '\t':
			if !over && l.tcol <= indent {
				break
			}
			over = true
			text = append(text, []byte(string(c))...)
		case '\\':
			switch c = l.next(); c {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case '"':
			case '\\':
			default:
				if !l.inPattern {
					l.ErrorfAt(l.line, l.col-2, `invalid escape sequence: \`+string(c))
				}
				text = append(text, '\\')
			}
			fallthrough
		default:
			over = true
			text = append(text, []byte(string(c))...)
		}
	}
}

// lexUnquoted reads one identifier/number/unquoted string, per RFC
// 7950 §6.1.3.
func lexUnquoted(l *lexer) stateFn {
	for {
		switch c := l.peek(); c {
		case ' ', '\r', '\n', '\t', ';', '"', '\'', '{', '}', eof:
			l.emit(tUnquoted)
			return lexGround
		default:
			l.next()
		}
	}
}
