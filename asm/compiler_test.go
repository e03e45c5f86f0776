// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestCompilerRedefinitionOfLabel(t *testing.T) {
	checkASMError(t, assembleSAP, "foo:\nfoo:\n", "redefinition of label 'foo'")
}

func TestCompilerRedefinitionOfConstant(t *testing.T) {
	checkASMError(t, assembleSAP, "foo = 1\nfoo = 2\n", "redefinition of constant 'foo'")
}

func TestCompilerLabelReservedName(t *testing.T) {
	checkASMError(t, assembleSAP, "lda:\n", "reserved name")
}

func TestCompilerConstantReservedName(t *testing.T) {
	checkASMError(t, assembleSAP, "lda = 1\n", "reserved name")
}

func TestCompilerLabelConstCollision(t *testing.T) {
	checkASMError(t, assembleSAP, "foo = 1\nfoo:\n", "collides with constant name")
}

func TestCompilerOffsetPaddingNotDivisor(t *testing.T) {
	// "word" emits 2 bytes per instance; padding to a location that isn't
	// an even number of bytes further along can't be filled exactly.
	src := `
start:
word start
5:
`
	checkASMError(t, assembleW65C02S, src, "is not a divisor of padding length")
}

func TestCompilerOffsetBeforeCurrentLocation(t *testing.T) {
	src := `
nop
nop
0:
`
	checkASMError(t, assembleSAP, src, "before current position")
}

func TestCompilerOffsetTooLarge(t *testing.T) {
	checkASMError(t, assembleSAP, "20:\n", "oversized location")
}

func TestCompilerProgramTooLarge(t *testing.T) {
	src := ""
	for i := 0; i < 20; i++ {
		src += "nop\n"
	}
	checkASMError(t, assembleSAP, src, "too large")
}

func TestCompilerConstantsVisibleInLaterConstants(t *testing.T) {
	code, err := assembleSAP("a = 2\nb = a + 3\nlda b\n")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "15")
}

func TestCompilerLabelsAreForwardVisible(t *testing.T) {
	src := `
jmp target
nop
target:
hlt
`
	code, err := assembleSAP(src)
	if err != nil {
		t.Fatal(err)
	}
	// jmp's operand (loc of 'target') must resolve even though the label
	// is defined after the reference.
	checkHex(t, code, "6200F0")
}

func TestCompilerWordCannotReferenceConstant(t *testing.T) {
	checkASMError(t, assembleW65C02S, "size = 4\nword size\n", "not bound")
}

func TestCompilerUnrecognizedMnemonic(t *testing.T) {
	checkASMError(t, assembleSAP, "frobnicate 1\n", "unrecognized instruction")
}
