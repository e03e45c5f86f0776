// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// An fstring is a string that keeps track of its position within the
// source line from which it was read.
type fstring struct {
	lineStart int    // byte offset of the line's first character in the source
	lineNum   int    // 1-based line number
	column    int    // 0-based column of the start of this substring
	str       string // the actual substring of interest
	full      string // the full line as originally read from the source
}

func newFstring(lineStart, lineNum int, str string) fstring {
	return fstring{lineStart, lineNum, 0, str, str}
}

func (l *fstring) String() string {
	return l.str
}

func (l fstring) consume(n int) fstring {
	return fstring{l.lineStart, l.lineNum, l.column + n, l.str[n:], l.full}
}

func (l fstring) trunc(n int) fstring {
	return fstring{l.lineStart, l.lineNum, l.column, l.str[:n], l.full}
}

func (l *fstring) isEmpty() bool {
	return len(l.str) == 0
}

func (l *fstring) startsWith(fn func(c byte) bool) bool {
	return len(l.str) > 0 && fn(l.str[0])
}

func (l *fstring) startsWithChar(c byte) bool {
	return len(l.str) > 0 && l.str[0] == c
}

func (l *fstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && fn(l.str[i]); i++ {
	}
	return i
}

func (l *fstring) consumeWhile(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanWhile(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

// pos returns the Position of the start of this substring.
func (l *fstring) pos() Position {
	return Position{LineStart: l.lineStart, LineNum: l.lineNum, Col: l.column}
}

//
// character classification
//
// The lexer partitions each line into maximal runs of one of four
// classes: whitespace, "joined" operator characters (runs of these merge
// into a single lexeme, e.g. "**", "<<", ">>"), "disjoined" characters
// (each is always its own single-character lexeme, even when repeated),
// and everything else (identifiers and integer literals).
//

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func joinedChar(c byte) bool {
	return c == '*' || c == '<' || c == '>'
}

func disjoinedChar(c byte) bool {
	switch c {
	case '-', '~', '+', '/', '^', '&', '|', '%', ':', ',', '[', ']', '(', ')':
		return true
	}
	return false
}

func otherChar(c byte) bool {
	return !whitespace(c) && !joinedChar(c) && !disjoinedChar(c) && c != ';'
}

func commentChar(c byte) bool {
	return c == ';'
}
