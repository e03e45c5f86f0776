// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"
	"testing"
)

func assembleSAP(src string) ([]byte, error) {
	return CompileSource(NewSAPTarget(), src)
}

func assembleW65C02S(src string) ([]byte, error) {
	return CompileSource(NewW65C02STarget(), src)
}

func checkHex(t *testing.T, code []byte, expected string) {
	t.Helper()
	b := make([]byte, len(code)*2)
	for i, j := 0, 0; i < len(code); i, j = i+1, j+2 {
		v := code[i]
		b[j+0] = hex[v>>4]
		b[j+1] = hex[v&0x0f]
	}
	if string(b) != expected {
		t.Errorf("code doesn't match expected\ngot: %s\nexp: %s", string(b), expected)
	}
}

func checkASMError(t *testing.T, assemble func(string) ([]byte, error), src string, want string) {
	t.Helper()
	_, err := assemble(src)
	if err == nil {
		t.Fatalf("expected error containing %q, got none", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("expected error containing %q, got %q", want, err.Error())
	}
}

func TestSapLdaImmediate(t *testing.T) {
	code, err := assembleSAP("lda 1")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "11")
}

func TestSapValueTooLarge(t *testing.T) {
	checkASMError(t, assembleSAP, "256", "is too large")
}

func TestSapUnboundName(t *testing.T) {
	checkASMError(t, assembleSAP, "lda foo", "not bound")
}

func TestSapBackOffsetPadding(t *testing.T) {
	src := `
nop
-2:
`
	code, err := assembleSAP(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 14 {
		t.Fatalf("expected 14 bytes of padding up to the back offset, got %d", len(code))
	}
	for i, b := range code {
		if b != 0 {
			t.Errorf("byte %d: expected nop padding (0x00), got 0x%02x", i, b)
		}
	}
}

// TestSapCountProgram assembles the classic count-up-then-down SAP
// demonstration program and checks it against the target's bit-exact
// opcode encoding.
func TestSapCountProgram(t *testing.T) {
	src := `
start:
    lda count
show:
    out
loop:
    add one
    jc down
    jmp show
down:
    out
loop2:
    sub one
    jz stop
    jmp down
stop:
    hlt
count:
    42
one:
    1
`
	code, err := assembleSAP(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{26, 224, 43, 117, 97, 224, 59, 137, 101, 240, 42, 1}
	if len(code) != len(want) {
		t.Fatalf("length mismatch: got %d bytes, want %d", len(code), len(want))
	}
	for i := range want {
		if code[i] != want[i] {
			t.Errorf("byte %d: got %d, want %d", i, code[i], want[i])
		}
	}
}

func TestWdcIndirectIndexedY(t *testing.T) {
	code, err := assembleW65C02S("lda [[0xff] + y]")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "B1FF")
}

func TestWdcImmediateOverflow(t *testing.T) {
	checkASMError(t, assembleW65C02S, "lda 0x100", "addressing mode 'immediate'")
}

func TestWdcDirectPage(t *testing.T) {
	code, err := assembleW65C02S("lda [0x20]")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "A520")
}

func TestWdcAbsolute(t *testing.T) {
	code, err := assembleW65C02S("lda [0x2000]")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "AD0020")
}

func TestWdcIndexedX(t *testing.T) {
	code, err := assembleW65C02S("lda [0x20 + x]")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "B520")
}

func TestWdcIndexedIndirect(t *testing.T) {
	code, err := assembleW65C02S("lda [[0x20 + x]]")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "A120")
}

func TestWdcIndirect(t *testing.T) {
	code, err := assembleW65C02S("lda [[0x20]]")
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "B220")
}

func TestWdcWordPseudoInstruction(t *testing.T) {
	src := `
start:
word start
`
	code, err := assembleW65C02S(src)
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "0000")
}

// bcc's operand is evaluated directly as the one-byte displacement, with
// no implicit PC-relative arithmetic performed by the compiler.
func TestWdcBranch(t *testing.T) {
	src := `
loop:
bcc loop
`
	code, err := assembleW65C02S(src)
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "9000")
}

func TestWdcUnrecognizedMnemonicSuggestion(t *testing.T) {
	checkASMError(t, assembleW65C02S, "ld 1", "did you mean 'lda'")
}

func TestWdcConstantExpression(t *testing.T) {
	code, err := assembleW65C02S(`
size = 4
lda [size * 2]
`)
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, code, "A508")
}
