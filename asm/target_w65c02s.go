// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// AddrMode identifies one of the 6502-family addressing-mode shapes an
// operand expression can take.
type AddrMode int

const (
	IdxInd AddrMode = iota // [[T + x]]  indexed-indirect
	Ind                    // [[T]]      indirect
	IndY                   // [[T] + y]  indirect-indexed with Y
	IdxX                   // [T + x]    indexed with X
	IdxY                   // [T + y]    indexed with Y
	Dir                    // [T]        zero-page/absolute direct
	Imm                    // T          immediate
)

func (m AddrMode) String() string {
	switch m {
	case IdxInd:
		return "indexed-indirect"
	case Ind:
		return "indirect"
	case IndY:
		return "indirect-indexed"
	case IdxX:
		return "indexed-x"
	case IdxY:
		return "indexed-y"
	case Dir:
		return "direct"
	case Imm:
		return "immediate"
	default:
		return "unknown"
	}
}

// modeTemplate is one entry in the addressing-mode matcher: a mode tag
// plus the pattern it's recognized by. Templates are tried in
// declaration order; the first successful unification wins.
type modeTemplate struct {
	mode    AddrMode
	pattern Pattern
}

// addrModeTemplates returns a fresh set of addressing-mode templates.
// Each unifies its operand position against the variable T, which this
// matcher requires to be bound on a successful match.
func addrModeTemplates() []modeTemplate {
	t := func() *Var { return &Var{Name: "T"} }
	name := func(s string) Pattern { return &Term{Tag: "Name", Params: []Pattern{&Leaf{s}}} }
	deref := func(p Pattern) Pattern { return &Term{Tag: "Deref", Params: []Pattern{p}} }
	plus := func(x, y Pattern) Pattern { return &Term{Tag: "BinExpr", Params: []Pattern{x, &Leaf{"+"}, y}} }

	return []modeTemplate{
		{IdxInd, deref(deref(plus(t(), name("x"))))},
		{Ind, deref(deref(t()))},
		{IndY, deref(plus(deref(t()), name("y")))},
		{IdxX, deref(plus(t(), name("x")))},
		{IdxY, deref(plus(t(), name("y")))},
		{Dir, deref(t())},
		{Imm, t()},
	}
}

// matchAddrMode unifies arg against every template in order, returning
// the first mode that matches along with the Expr bound to T.
func matchAddrMode(arg Expr) (AddrMode, Expr, error) {
	argPattern := arg.pattern()
	for _, tmpl := range addrModeTemplates() {
		subst, err := Unify(argPattern, tmpl.pattern)
		if err != nil {
			continue
		}
		bound, ok := subst["T"]
		if !ok {
			continue
		}
		operand, ok := termSrc(bound)
		if !ok {
			continue
		}
		return tmpl.mode, operand, nil
	}
	return 0, nil, stopErr("operand does not match any known addressing mode", arg.Toks()...)
}

// WdcUnary is the 6502-family addressing-mode-aware one-operand
// encoding: the operand's shape selects a mode, its evaluated byte
// length selects a (mode, length) opcode.
type WdcUnary struct {
	Unary
	compiler *Compiler
	mnemonic string
	opcodes  map[wdcKey]byte

	mode    AddrMode
	operand Expr
	evaled  int
	opLen   int
	opcode  byte
}

type wdcKey struct {
	mode AddrMode
	len  int
}

func newWdcUnary(mnemonic string, opcodes map[wdcKey]byte) InstructionConstructor {
	return func(c *Compiler, op *Op) (Instruction, error) {
		inst := &WdcUnary{Unary: Unary{Op: op}, compiler: c, mnemonic: mnemonic, opcodes: opcodes}
		if err := inst.Validate(); err != nil {
			return nil, err
		}
		return inst, nil
	}
}

func (i *WdcUnary) Validate() error {
	if err := i.Unary.Validate(i.mnemonic); err != nil {
		return err
	}

	mode, operand, err := matchAddrMode(i.Op.Args[0])
	if err != nil {
		return err
	}

	evaled, err := operand.Eval(i.compiler.scope)
	if err != nil {
		return err
	}
	if evaled < 0 {
		return stopErr(fmt.Sprintf("evaluated result '%d' cannot be negative", evaled), operand.Toks()...)
	}

	opLen := byteLength(evaled)
	if opLen > 2 {
		return stopErr(fmt.Sprintf("evaluated result '%d' does not fit in two bytes", evaled), operand.Toks()...)
	}

	opcode, ok := i.opcodes[wdcKey{mode, opLen}]
	if !ok {
		return stopErr(fmt.Sprintf(
			"'%s' does not support addressing mode '%s' with %d byte operands",
			i.mnemonic, mode, opLen,
		), i.Op.toks...)
	}

	i.mode, i.operand, i.evaled, i.opLen, i.opcode = mode, operand, evaled, opLen, opcode
	return nil
}

func (i *WdcUnary) Size() int { return 1 + i.opLen }

func (i *WdcUnary) Encode() ([]byte, error) {
	out := []byte{i.opcode}
	switch i.opLen {
	case 1:
		out = append(out, byte(i.evaled))
	case 2:
		out = append(out, byte(i.evaled), byte(i.evaled>>8))
	}
	return out, nil
}

// RelativeUnary is the 6502-family branch encoding: a fixed opcode
// followed by a one-byte displacement (no addressing-mode matching — the
// operand is simply evaluated as a direct value).
type RelativeUnary struct {
	Unary
	compiler *Compiler
	mnemonic string
	opcode   byte
}

func newRelativeUnary(mnemonic string, opcode byte) InstructionConstructor {
	return func(c *Compiler, op *Op) (Instruction, error) {
		inst := &RelativeUnary{Unary: Unary{Op: op}, compiler: c, mnemonic: mnemonic, opcode: opcode}
		if err := inst.Validate(); err != nil {
			return nil, err
		}
		return inst, nil
	}
}

func (i *RelativeUnary) Validate() error { return i.Unary.Validate(i.mnemonic) }
func (i *RelativeUnary) Size() int       { return 2 }

func (i *RelativeUnary) Encode() ([]byte, error) {
	arg := i.Op.Args[0]
	evaled, err := arg.Eval(i.compiler.scope)
	if err != nil {
		return nil, err
	}
	if evaled > 255 || evaled < 0 {
		return nil, stopErr(fmt.Sprintf("evaluated result '%d' does not fit in one byte", evaled), arg.Toks()...)
	}
	return []byte{i.opcode, byte(evaled)}, nil
}

// NewW65C02STarget returns the configuration for the 6502/W65C02S
// target: a 64 KiB address space and the addressing-mode-aware
// instruction set.
func NewW65C02STarget() TargetConfig {
	table := NewMnemonicTable()
	table.Register("nop", newConstantInst("nop", 0xEA))
	table.Register("word", newWordInst)

	table.Register("lda", newWdcUnary("lda", map[wdcKey]byte{
		{Dir, 2}:    0xAD,
		{IdxX, 2}:   0xBD,
		{IdxY, 2}:   0xB9,
		{Imm, 1}:    0xA9,
		{Dir, 1}:    0xA5,
		{IdxInd, 1}: 0xA1,
		{IdxX, 1}:   0xB5,
		{Ind, 1}:    0xB2,
		{IndY, 1}:   0xB1,
	}))

	table.Register("bcc", newRelativeUnary("bcc", 0x90))
	table.Register("bcs", newRelativeUnary("bcs", 0xB0))
	table.Register("beq", newRelativeUnary("beq", 0xF0))

	for n := 0; n < 8; n++ {
		table.Register(fmt.Sprintf("bbr%d", n), newRelativeUnary(fmt.Sprintf("bbr%d", n), byte(n<<4)|0x0F))
		table.Register(fmt.Sprintf("bbs%d", n), newRelativeUnary(fmt.Sprintf("bbs%d", n), byte(n<<4)|0x8F))
	}

	return TargetConfig{
		Name:      "w65c02s",
		MaxAddr:   65535,
		MaxVal:    255,
		Mnemonics: table,
	}
}
