// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"sort"

	"github.com/beevik/prefixtree/v2"
)

// InstructionConstructor builds and validates the Instruction for one
// parsed Op statement.
type InstructionConstructor func(c *Compiler, op *Op) (Instruction, error)

// MnemonicTable is a target's registry of mnemonic -> instruction
// constructor. Exact dispatch never uses prefix matching — a mnemonic
// must be spelled out in full — but the registry keeps a prefix tree of
// every registered name so that an unrecognized-mnemonic diagnostic can
// suggest the nearest real one.
type MnemonicTable struct {
	exact map[string]InstructionConstructor
	tree  *prefixtree.Tree[string]
	names []string
}

// NewMnemonicTable returns an empty mnemonic registry.
func NewMnemonicTable() *MnemonicTable {
	return &MnemonicTable{
		exact: make(map[string]InstructionConstructor),
		tree:  prefixtree.New[string](),
	}
}

// Register adds a mnemonic and its constructor to the table.
func (m *MnemonicTable) Register(name string, ctor InstructionConstructor) {
	m.exact[name] = ctor
	m.tree.Add(name, name)
	m.names = append(m.names, name)
}

// Lookup returns the constructor registered for an exact mnemonic match.
func (m *MnemonicTable) Lookup(name string) (InstructionConstructor, bool) {
	ctor, ok := m.exact[name]
	return ctor, ok
}

// Has reports whether name is a mnemonic reserved by this table, used by
// the compiler to reject labels/constants that collide with an
// instruction name.
func (m *MnemonicTable) Has(name string) bool {
	_, ok := m.exact[name]
	return ok
}

// Suggest returns a "did you mean" hint for an unrecognized-mnemonic
// diagnostic: the single mnemonic that name is an unambiguous prefix of,
// if there is one, and otherwise the alphabetically first mnemonic
// sharing the longest common prefix with name. It returns "" when no
// registered mnemonic shares even a first character with name.
func (m *MnemonicTable) Suggest(name string) string {
	if name == "" {
		return ""
	}
	if full, err := m.tree.FindValue(name); err == nil {
		return full
	}
	// Fall back to the closest mnemonic sharing the longest common
	// prefix with name, for typos that aren't themselves a prefix of
	// any registered mnemonic (e.g. "ld" vs "lda" is covered above;
	// "lsa" vs "lda" is not, but still deserves a hint).
	best := ""
	bestLen := 0
	for _, n := range m.sortedNames() {
		l := commonPrefixLen(name, n)
		if l > bestLen {
			best, bestLen = n, l
		}
	}
	if bestLen == 0 {
		return ""
	}
	return best
}

func (m *MnemonicTable) sortedNames() []string {
	names := append([]string(nil), m.names...)
	sort.Strings(names)
	return names
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
