// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// SapUnary is the SAP-8 target's one-operand encoding: a 4-bit opcode in
// the high nibble and the evaluated operand in the low nibble.
type SapUnary struct {
	Unary
	compiler *Compiler
	mnemonic string
	code     byte
}

func newSapUnary(mnemonic string, code byte) InstructionConstructor {
	return func(c *Compiler, op *Op) (Instruction, error) {
		inst := &SapUnary{Unary: Unary{Op: op}, compiler: c, mnemonic: mnemonic, code: code}
		if err := inst.Validate(); err != nil {
			return nil, err
		}
		return inst, nil
	}
}

func (i *SapUnary) Validate() error { return i.Unary.Validate(i.mnemonic) }
func (i *SapUnary) Size() int       { return 1 }

func (i *SapUnary) Encode() ([]byte, error) {
	arg := i.Op.Args[0]
	evaled, err := arg.Eval(i.compiler.scope)
	if err != nil {
		return nil, err
	}
	if evaled > i.compiler.Target.MaxAddr {
		return nil, stopErr(fmt.Sprintf("evaluated result '%d' is too large", evaled), arg.Toks()...)
	}
	return []byte{(i.code << 4) | byte(evaled)}, nil
}

// NewSAPTarget returns the configuration for the 8-bit SAP educational
// target: a 16-byte address space and an opcode space wide enough for
// one 4-bit operand.
func NewSAPTarget() TargetConfig {
	table := NewMnemonicTable()
	table.Register("nop", newConstantInst("nop", 0b0000_0000))
	table.Register("lda", newSapUnary("lda", 0b0001))
	table.Register("add", newSapUnary("add", 0b0010))
	table.Register("sub", newSapUnary("sub", 0b0011))
	table.Register("sta", newSapUnary("sta", 0b0100))
	table.Register("ldi", newSapUnary("ldi", 0b0101))
	table.Register("jmp", newSapUnary("jmp", 0b0110))
	table.Register("jc", newSapUnary("jc", 0b0111))
	table.Register("jz", newSapUnary("jz", 0b1000))
	table.Register("out", newConstantInst("out", 0b1110_0000))
	table.Register("hlt", newConstantInst("hlt", 0b1111_0000))
	table.Register("word", newWordInst)

	return TargetConfig{
		Name:      "sap",
		MaxAddr:   15,
		MaxVal:    255,
		Mnemonics: table,
	}
}
