// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestUnifyBindsVariable(t *testing.T) {
	v := &Var{Name: "T"}
	leaf := &Leaf{Value: "42"}
	subst, err := Unify(leaf, v)
	if err != nil {
		t.Fatal(err)
	}
	bound, ok := subst["T"]
	if !ok {
		t.Fatal("expected T to be bound")
	}
	if bound.(*Leaf).Value != "42" {
		t.Errorf("got %v, want 42", bound)
	}
}

func TestUnifyDecomposesMatchingTerms(t *testing.T) {
	a := &Term{Tag: "BinExpr", Params: []Pattern{&Leaf{"1"}, &Leaf{"+"}, &Var{Name: "Y"}}}
	b := &Term{Tag: "BinExpr", Params: []Pattern{&Leaf{"1"}, &Leaf{"+"}, &Leaf{"2"}}}
	subst, err := Unify(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if subst["Y"].(*Leaf).Value != "2" {
		t.Errorf("got %v, want 2", subst["Y"])
	}
}

func TestUnifyConflictOnTagMismatch(t *testing.T) {
	a := &Term{Tag: "Deref", Params: []Pattern{&Leaf{"1"}}}
	b := &Term{Tag: "Name", Params: []Pattern{&Leaf{"x"}}}
	if _, err := Unify(a, b); err == nil {
		t.Fatal("expected a conflict error")
	}
}

func TestUnifyConflictOnLeafMismatch(t *testing.T) {
	if _, err := Unify(&Leaf{"+"}, &Leaf{"-"}); err == nil {
		t.Fatal("expected a conflict error")
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	v := &Var{Name: "T"}
	cyclic := &Term{Tag: "BinExpr", Params: []Pattern{v, &Leaf{"+"}, &Leaf{"1"}}}
	if _, err := Unify(v, cyclic); err == nil {
		t.Fatal("expected an occurs-check failure")
	}
}

func TestUnifyPredicateRejection(t *testing.T) {
	v := &Var{Name: "T", Predicate: func(p Pattern) bool {
		l, ok := p.(*Leaf)
		return ok && l.Value == "ok"
	}}
	if _, err := Unify(&Leaf{"no"}, v); err == nil {
		t.Fatal("expected the predicate to reject the binding")
	}
	subst, err := Unify(&Leaf{"ok"}, v)
	if err != nil {
		t.Fatal(err)
	}
	if subst["T"].(*Leaf).Value != "ok" {
		t.Errorf("got %v, want ok", subst["T"])
	}
}

func TestMatchAddrModeDirect(t *testing.T) {
	inner := &Val{Value: 0x20, toks: nil}
	arg := &Deref{X: inner}
	mode, operand, err := matchAddrMode(arg)
	if err != nil {
		t.Fatal(err)
	}
	if mode != Dir {
		t.Errorf("got mode %v, want Dir", mode)
	}
	if operand != Expr(inner) {
		t.Error("expected the bound operand to be the original Val node")
	}
}

func TestMatchAddrModeImmediateFallback(t *testing.T) {
	arg := &Val{Value: 5}
	mode, operand, err := matchAddrMode(arg)
	if err != nil {
		t.Fatal(err)
	}
	if mode != Imm {
		t.Errorf("got mode %v, want Imm", mode)
	}
	if operand != Expr(arg) {
		t.Error("expected the bound operand to be the original Val node")
	}
}
