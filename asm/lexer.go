// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// bracketFrame records an unclosed '[' or '(' for diagnostic purposes.
type bracketFrame struct {
	ch  byte
	pos Position
}

// Tokenize splits source text into a token stream terminated by exactly
// one EofToken. It is the sole entry point to the lexer: the whole
// source is scanned eagerly, since diagnostics need to recover line text
// by byte offset from the same in-memory string throughout a compile.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	var brackets []bracketFrame

	pos := 0
	lineNum := 0

	for pos < len(src) {
		nl := strings.IndexByte(src[pos:], '\n')
		var line string
		if nl == -1 {
			line = src[pos:]
		} else {
			line = src[pos : pos+nl+1]
		}
		lineNum++
		lineStart := pos
		pos += len(line)

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}

		lineToks, err := tokenizeLine(newFstring(lineStart, lineNum, line), &brackets)
		if err != nil {
			return nil, err
		}
		toks = append(toks, lineToks...)
	}

	if len(brackets) > 0 {
		open := brackets[0]
		return nil, &Diagnostic{
			Msg: unmatchedOpenerMessage(open.ch),
			At:  []Token{TextToken{Position: open.pos, Text: string(open.ch)}},
		}
	}

	toks = append(toks, EofToken{Position{LineStart: pos, LineNum: lineNum + 1, Col: 0}})
	return toks, nil
}

func unmatchedOpenerMessage(ch byte) string {
	if ch == '[' {
		return "unmatched '[' at end of input"
	}
	return "unmatched '(' at end of input"
}

// tokenizeLine scans one physical source line (including its trailing
// newline, if any) into Text tokens, updating the bracket stack, and
// appends a Newline token unless brackets are still open.
func tokenizeLine(rest fstring, brackets *[]bracketFrame) ([]Token, error) {
	var toks []Token

	for !rest.isEmpty() {
		c := rest.str[0]

		switch {
		case c == '\n':
			rest = rest.consume(1)

		case whitespace(c):
			_, r := rest.consumeWhile(whitespace)
			rest = r

		case commentChar(c):
			rest = rest.consume(len(rest.str))

		case disjoinedChar(c):
			tokPos := rest.pos()
			tok := TextToken{Position: tokPos, Text: rest.str[:1]}

			switch c {
			case '[', '(':
				*brackets = append(*brackets, bracketFrame{ch: c, pos: tokPos})
			case ']', ')':
				want := byte('[')
				if c == ')' {
					want = '('
				}
				if len(*brackets) == 0 || (*brackets)[len(*brackets)-1].ch != want {
					return nil, &Diagnostic{
						Msg: "mismatched closing '" + string(c) + "'",
						At:  []Token{tok},
					}
				}
				*brackets = (*brackets)[:len(*brackets)-1]
			}

			toks = append(toks, tok)
			rest = rest.consume(1)

		case joinedChar(c):
			consumed, r := rest.consumeWhile(joinedChar)
			toks = append(toks, TextToken{Position: consumed.pos(), Text: consumed.str})
			rest = r

		default:
			consumed, r := rest.consumeWhile(otherChar)
			toks = append(toks, TextToken{Position: consumed.pos(), Text: consumed.str})
			rest = r
		}
	}

	if len(*brackets) == 0 {
		full := rest.full
		col := len(full)
		if len(full) > 0 && full[len(full)-1] == '\n' {
			col = len(full) - 1
		}
		toks = append(toks, NewlineToken{Position{LineStart: rest.lineStart, LineNum: rest.lineNum, Col: col}})
	}

	return toks, nil
}
