// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// TargetConfig is an immutable description of one target architecture:
// its address-space/operand-width ceilings and its mnemonic registry.
// It is built once per target and passed into the compiler constructor;
// there is no process-wide target selection.
type TargetConfig struct {
	Name      string
	MaxAddr   int
	MaxVal    int
	Mnemonics *MnemonicTable
}

// Compiler drives the two-pass assembly of a parsed File against one
// TargetConfig. A Compiler instance is owned by a single caller for the
// lifetime of one assemble operation; nothing about it is shared across
// concurrent compiles.
type Compiler struct {
	Target TargetConfig
	file   *File
	Labels map[string]int
	Consts map[string]int
	scope  map[string]int
}

// NewCompiler builds a Compiler for an already-parsed file.
func NewCompiler(target TargetConfig, file *File) *Compiler {
	return &Compiler{
		Target: target,
		file:   file,
		Labels: make(map[string]int),
		Consts: make(map[string]int),
		scope:  make(map[string]int),
	}
}

// CompileSource lexes, parses, and compiles src in one step, returning
// the finished byte stream. Lexer, parser, and compiler failures are all
// returned as a *Diagnostic.
func CompileSource(target TargetConfig, src string) ([]byte, error) {
	file, err := ParseFile(src)
	if err != nil {
		return nil, err
	}
	code, err := NewCompiler(target, file).Encode()
	if pe, ok := err.(*ParseError); ok {
		return nil, pe.Diag
	}
	return code, err
}

// labelScope returns the label-only namespace used to resolve `word`
// operands, which — unlike ordinary unary operands — are not permitted
// to reference compile-time constants, only addresses.
func (c *Compiler) labelScope() map[string]int {
	return c.Labels
}

// getInstruction builds the Instruction for one rewritten statement: a
// *Val becomes a ValueInst, an *Op dispatches through the target's
// mnemonic table.
func (c *Compiler) getInstruction(stmt Stmt) (Instruction, error) {
	switch s := stmt.(type) {
	case *Op:
		ctor, ok := c.Target.Mnemonics.Lookup(s.Mnemonic)
		if !ok {
			msg := fmt.Sprintf("unrecognized instruction '%s'", s.Mnemonic)
			if hint := c.Target.Mnemonics.Suggest(s.Mnemonic); hint != "" {
				msg += fmt.Sprintf("; did you mean '%s'?", hint)
			}
			return nil, stopErr(msg, s.toks[0])
		}
		return ctor(c, s)
	case *Val:
		return newValueInst(c, s)
	default:
		return nil, fmt.Errorf("internal error: getInstruction called with unexpected statement type %T", stmt)
	}
}

// Scan performs pass 1: it resolves constants, labels, and offsets, and
// validates every instruction, computing its size without emitting any
// bytes.
func (c *Compiler) Scan() error {
	if err := c.resolveConsts(); err != nil {
		return err
	}

	var lastInst Instruction
	var lastMnemonic string
	loc := 0

	for _, stmt := range c.file.Stmts {
		switch s := stmt.(type) {
		case *Const:
			// already resolved above

		case *Label:
			if c.Target.Mnemonics.Has(s.Name) {
				return stopErr(fmt.Sprintf("label '%s' uses reserved name", s.Name), s.toks...)
			}
			if _, ok := c.Labels[s.Name]; ok {
				return stopErr(fmt.Sprintf("redefinition of label '%s'", s.Name), s.toks...)
			}
			if _, ok := c.Consts[s.Name]; ok {
				return stopErr(fmt.Sprintf("label name '%s' collides with constant name", s.Name), s.toks...)
			}
			c.Labels[s.Name] = loc
			c.scope[s.Name] = loc

		case *Offset:
			offsetLoc, err := c.resolveOffset(loc, s)
			if err != nil {
				return err
			}
			if lastInst == nil {
				return stopErr("offset must follow generated code usable as padding", s.toks...)
			}
			paddingLen := offsetLoc - loc
			if paddingLen%lastInst.Size() != 0 {
				return stopErr(fmt.Sprintf("size of padding instruction '%s' is not a divisor of padding length", lastMnemonic), s.toks...)
			}
			loc = offsetLoc

		default:
			rewritten, err := c.rewriteStmt(stmt)
			if err != nil {
				return err
			}
			if loc > c.Target.MaxAddr {
				return stopErr("statement makes program too large", rewritten.Toks()[:1]...)
			}
			inst, err := c.getInstruction(rewritten)
			if err != nil {
				return err
			}
			lastInst = inst
			if op, ok := rewritten.(*Op); ok {
				lastMnemonic = op.Mnemonic
			} else {
				lastMnemonic = ""
			}
			loc += inst.Size()
		}
	}

	return nil
}

// rewriteStmt applies the scan-time rewrite rule to a bare Expr or Op
// top-level statement: a bare Name equal to a constant becomes a Val; a
// bare Name otherwise becomes a nullary Op; any other expression is
// evaluated and becomes a Val. An Op keeps its args unevaluated — those
// are resolved lazily by its instruction's own Validate/Encode.
func (c *Compiler) rewriteStmt(stmt Stmt) (Stmt, error) {
	switch s := stmt.(type) {
	case *Op:
		return s, nil
	case *Name:
		if v, ok := c.Consts[s.Ident]; ok {
			return &Val{Value: v, toks: s.toks}, nil
		}
		return &Op{Mnemonic: s.Ident, Args: nil, toks: s.toks}, nil
	case Expr:
		v, err := s.Eval(c.scope)
		if err != nil {
			return nil, err
		}
		return &Val{Value: v, toks: s.Toks()}, nil
	default:
		return nil, fmt.Errorf("internal error: unexpected statement type %T", stmt)
	}
}

func (c *Compiler) resolveConsts() error {
	type constStmt struct {
		name string
		val  Expr
		toks []Token
	}
	var consts []constStmt
	seen := make(map[string]bool)

	for _, stmt := range c.file.Stmts {
		cs, ok := stmt.(*Const)
		if !ok {
			continue
		}
		if c.Target.Mnemonics.Has(cs.Name) {
			return stopErr(fmt.Sprintf("constant '%s' uses reserved name", cs.Name), cs.toks...)
		}
		if seen[cs.Name] {
			return stopErr(fmt.Sprintf("redefinition of constant '%s'", cs.Name), cs.toks...)
		}
		seen[cs.Name] = true
		consts = append(consts, constStmt{cs.Name, cs.Val, cs.toks})
	}

	for _, cs := range consts {
		v, err := cs.val.Eval(c.Consts)
		if err != nil {
			return err
		}
		c.Consts[cs.name] = v
	}

	for k, v := range c.Consts {
		c.scope[k] = v
	}
	return nil
}

// resolveOffset computes the absolute target location of an Offset
// statement and validates it against the current location and the
// target's address ceiling.
func (c *Compiler) resolveOffset(loc int, off *Offset) (int, error) {
	var offsetLoc int
	switch off.Relative {
	case "+":
		offsetLoc = loc + off.Value
	case "-":
		offsetLoc = c.Target.MaxAddr - off.Value + 1
	default:
		offsetLoc = off.Value
	}

	if offsetLoc > c.Target.MaxAddr {
		return 0, stopErr(fmt.Sprintf("offset resolves to oversized location '%d'", offsetLoc), off.toks...)
	}
	if offsetLoc < loc {
		return 0, stopErr(fmt.Sprintf("offset resolves to location '%d' before current position", offsetLoc), off.toks...)
	}
	return offsetLoc, nil
}

// Encode runs Scan and then pass 2, returning the fully assembled byte
// stream in source order.
func (c *Compiler) Encode() ([]byte, error) {
	if err := c.Scan(); err != nil {
		return nil, err
	}

	var out []byte
	var lastInst Instruction
	loc := 0

	for _, stmt := range c.file.Stmts {
		switch s := stmt.(type) {
		case *Offset:
			offsetLoc, err := c.resolveOffset(loc, s)
			if err != nil {
				return nil, err
			}
			paddingLen := offsetLoc - loc
			for n := 0; n < paddingLen/lastInst.Size(); n++ {
				b, err := lastInst.Encode()
				if err != nil {
					return nil, err
				}
				out = append(out, b...)
			}
			loc = offsetLoc

		case *Label, *Const:
			// no code generation

		default:
			rewritten, err := c.rewriteStmt(stmt)
			if err != nil {
				return nil, err
			}
			inst, err := c.getInstruction(rewritten)
			if err != nil {
				return nil, err
			}
			b, err := inst.Encode()
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
			lastInst = inst
			loc += inst.Size()
		}
	}

	return out, nil
}
