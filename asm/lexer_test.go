// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func textTokens(toks []Token) []string {
	var out []string
	for _, t := range toks {
		if tt, ok := t.(TextToken); ok {
			out = append(out, tt.Text)
		}
	}
	return out
}

func checkTexts(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeJoinedOperators(t *testing.T) {
	toks, err := Tokenize("a << b >> c\n")
	if err != nil {
		t.Fatal(err)
	}
	checkTexts(t, textTokens(toks), []string{"a", "<<", "b", ">>", "c"})
}

func TestTokenizeDisjoinedRunNeverMerges(t *testing.T) {
	toks, err := Tokenize("a++b\n")
	if err != nil {
		t.Fatal(err)
	}
	checkTexts(t, textTokens(toks), []string{"a", "+", "+", "b"})
}

func TestTokenizeSuppressesNewlineInsideBrackets(t *testing.T) {
	toks, err := Tokenize("lda [1\n+ 2]\n")
	if err != nil {
		t.Fatal(err)
	}
	newlines := 0
	for _, tok := range toks {
		if _, ok := tok.(NewlineToken); ok {
			newlines++
		}
	}
	if newlines != 1 {
		t.Fatalf("expected exactly one Newline token once the bracket closes, got %d", newlines)
	}
}

func TestTokenizeUnmatchedOpenBracket(t *testing.T) {
	_, err := Tokenize("lda [1\n")
	if err == nil {
		t.Fatal("expected a diagnostic for an unmatched '['")
	}
	d, ok := err.(*Diagnostic)
	if !ok {
		t.Fatalf("expected *Diagnostic, got %T", err)
	}
	if d.Msg != "unmatched '[' at end of input" {
		t.Errorf("unexpected message: %q", d.Msg)
	}
}

func TestTokenizeMismatchedCloser(t *testing.T) {
	_, err := Tokenize("lda [1)\n")
	if err == nil {
		t.Fatal("expected a diagnostic for a mismatched ')'")
	}
}

func TestTokenizeCommentLineIgnored(t *testing.T) {
	toks, err := Tokenize("; a full-line comment\nlda 1\n")
	if err != nil {
		t.Fatal(err)
	}
	checkTexts(t, textTokens(toks), []string{"lda", "1"})
}

func TestTokenizeEofAlwaysTerminates(t *testing.T) {
	toks, err := Tokenize("nop\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := toks[len(toks)-1].(EofToken); !ok {
		t.Fatalf("expected last token to be Eof, got %T", toks[len(toks)-1])
	}
}
