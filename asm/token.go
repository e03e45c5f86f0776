// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// Position locates a token within the source text: the absolute byte
// offset of its line's first character, the 1-based line number, and the
// 0-based column.
type Position struct {
	LineStart int
	LineNum   int
	Col       int
}

// A Token is one lexical unit produced by the lexer: a run of non-space
// text, a logical end-of-line marker, or the single terminating
// end-of-file marker.
type Token interface {
	Pos() Position
	fmt.Stringer
}

// TextToken carries a run of non-whitespace source text: an identifier,
// an integer literal, or an operator/punctuation lexeme.
type TextToken struct {
	Position
	Text string
}

func (t TextToken) Pos() Position { return t.Position }
func (t TextToken) String() string {
	return fmt.Sprintf("Text(%q, %d, %d, %d)", t.Text, t.LineStart, t.LineNum, t.Col)
}

// NewlineToken marks the end of a logical source line. The lexer
// suppresses it while inside an open bracket.
type NewlineToken struct {
	Position
}

func (t NewlineToken) Pos() Position { return t.Position }
func (t NewlineToken) String() string {
	return fmt.Sprintf("Newline(%d, %d, %d)", t.LineStart, t.LineNum, t.Col)
}

// EofToken terminates every token stream exactly once.
type EofToken struct {
	Position
}

func (t EofToken) Pos() Position { return t.Position }
func (t EofToken) String() string {
	return fmt.Sprintf("Eof(%d, %d, %d)", t.LineStart, t.LineNum, t.Col)
}

func tokensEqual(a, b Token) bool {
	if fmt.Sprintf("%T", a) != fmt.Sprintf("%T", b) {
		return false
	}
	if a.Pos() != b.Pos() {
		return false
	}
	at, aIsText := a.(TextToken)
	bt, bIsText := b.(TextToken)
	if aIsText != bIsText {
		return false
	}
	if aIsText {
		return at.Text == bt.Text
	}
	return true
}
