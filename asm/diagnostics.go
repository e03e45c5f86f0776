// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

// Diagnostic is the user-facing error type produced by every stage of the
// pipeline: lexer bracket mismatches, parser hard failures, and compiler
// errors. It carries a message plus a nonempty,
// single-line span of tokens used to render a caret-annotated snippet.
type Diagnostic struct {
	Msg string
	At  []Token
}

func (d *Diagnostic) Error() string {
	return d.Msg
}

// Render formats the diagnostic against the original source text, in the
// form:
//
//	at line L, col C:
//	<line>
//	<spaces><carets>
//
//	<message>
func (d *Diagnostic) Render(src string) string {
	if len(d.At) == 0 {
		return d.Msg
	}

	first := d.At[0].Pos()
	last := d.At[len(d.At)-1].Pos()

	lineText := lineAt(src, first.LineStart)

	endCol := last.Col + 1
	if t, ok := d.At[len(d.At)-1].(TextToken); ok {
		endCol = last.Col + len(t.Text)
	}

	width := endCol - first.Col
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "at line %d, col %d:\n", first.LineNum, first.Col+1)
	b.WriteString(lineText)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", first.Col))
	b.WriteString(strings.Repeat("^", width))
	b.WriteString("\n\n")
	b.WriteString(d.Msg)
	return b.String()
}

// lineAt recovers the text of the logical line starting at byte offset
// start, stopping at the next newline or end of input.
func lineAt(src string, start int) string {
	if start >= len(src) {
		return ""
	}
	end := strings.IndexByte(src[start:], '\n')
	if end == -1 {
		return src[start:]
	}
	return src[start : start+end]
}

// newDiag builds a single-token diagnostic.
func newDiag(msg string, tok Token) *Diagnostic {
	return &Diagnostic{Msg: msg, At: []Token{tok}}
}

// ParseErrorKind distinguishes backtrackable parse failures from ones
// that must propagate as a user-facing diagnostic. Native panics are
// never used for this; every parsing production returns one of these two
// kinds explicitly.
type ParseErrorKind int

const (
	// Reset indicates the current alternative didn't match; the
	// enclosing optional() wrapper rewinds the token-stream cursor and
	// reports "no match" to its caller.
	Reset ParseErrorKind = iota
	// Stop indicates the parser has committed to an alternative and
	// the input is malformed; it propagates to parseFile unchanged.
	Stop
)

// ParseError is the error type returned by every parser production.
type ParseError struct {
	Kind ParseErrorKind
	Diag *Diagnostic
}

func (e *ParseError) Error() string {
	return e.Diag.Error()
}

func resetErr(msg string, tok Token) *ParseError {
	return &ParseError{Kind: Reset, Diag: newDiag(msg, tok)}
}

func stopErr(msg string, toks ...Token) *ParseError {
	return &ParseError{Kind: Stop, Diag: &Diagnostic{Msg: msg, At: toks}}
}

// isStop reports whether err is a *ParseError of kind Stop (which must
// propagate rather than be swallowed by optional()).
func isStop(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == Stop
}
