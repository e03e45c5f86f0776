// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// Instruction is the capability set every encodable statement implements:
// Validate checks it against the target (called at construction time;
// the compiler constructs each instruction anew in both its scan pass and
// its encode pass), Size reports its byte length, and
// Encode produces its bytes.
type Instruction interface {
	Validate() error
	Encode() ([]byte, error)
	Size() int
}

// ValueInst emits a bare integer literal statement as a single byte.
type ValueInst struct {
	compiler *Compiler
	val      *Val
}

func newValueInst(c *Compiler, v *Val) (Instruction, error) {
	inst := &ValueInst{compiler: c, val: v}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (i *ValueInst) Validate() error {
	if i.val.Value > i.compiler.Target.MaxVal {
		return stopErr(fmt.Sprintf("evaluated result '%d' is too large", i.val.Value), i.val.toks...)
	}
	return nil
}

func (i *ValueInst) Encode() ([]byte, error) {
	return []byte{byte(i.val.Value)}, nil
}

func (i *ValueInst) Size() int { return 1 }

// Nullary is the base behavior for instructions that take no operand.
type Nullary struct {
	Op *Op
}

func (n Nullary) Validate(mnemonic string) error {
	if len(n.Op.Args) > 0 {
		return stopErr(fmt.Sprintf("'%s' instruction takes no argument", mnemonic), n.Op.toks...)
	}
	return nil
}

// Unary is the base behavior for instructions that take exactly one
// operand.
type Unary struct {
	Op *Op
}

func (u Unary) Validate(mnemonic string) error {
	if len(u.Op.Args) != 1 {
		return stopErr(fmt.Sprintf("'%s' instruction takes one argument", mnemonic), u.Op.toks...)
	}
	return nil
}

// ConstantInst is a nullary instruction with a single, fixed-opcode output
// byte (e.g. SAP's nop/out/hlt).
type ConstantInst struct {
	Nullary
	Mnemonic string
	Output   byte
}

func newConstantInst(mnemonic string, output byte) InstructionConstructor {
	return func(c *Compiler, op *Op) (Instruction, error) {
		inst := &ConstantInst{Nullary: Nullary{Op: op}, Mnemonic: mnemonic, Output: output}
		if err := inst.Validate(); err != nil {
			return nil, err
		}
		return inst, nil
	}
}

func (i *ConstantInst) Validate() error         { return i.Nullary.Validate(i.Mnemonic) }
func (i *ConstantInst) Encode() ([]byte, error) { return []byte{i.Output}, nil }
func (i *ConstantInst) Size() int               { return byteLength(int(i.Output)) }

const maxWord = 1<<16 - 1

// WordInst emits a label or expression as a little-endian two-byte
// value, regardless of the target's normal max_val ceiling.
type WordInst struct {
	Unary
	compiler *Compiler
}

func newWordInst(c *Compiler, op *Op) (Instruction, error) {
	inst := &WordInst{Unary: Unary{Op: op}, compiler: c}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (i *WordInst) Validate() error { return i.Unary.Validate("word") }

func (i *WordInst) Encode() ([]byte, error) {
	arg := i.Op.Args[0]
	evaled, err := arg.Eval(i.compiler.labelScope())
	if err != nil {
		return nil, err
	}
	if evaled > maxWord || evaled < 0 {
		return nil, stopErr(fmt.Sprintf("evaluated result '%d' does not fit in two bytes", evaled), arg.Toks()...)
	}
	return []byte{byte(evaled), byte(evaled >> 8)}, nil
}

func (i *WordInst) Size() int { return 2 }

// byteLength returns the number of whole bytes needed to hold the
// magnitude of v (its bit length divided by 8, rounded up, so 255 needs
// one byte and 256 needs two), with a floor of one byte so that zero
// still occupies one byte.
func byteLength(v int) int {
	if v < 0 {
		v = -v
	}
	n := 0
	for v > 0 {
		v >>= 8
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
