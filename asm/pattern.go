// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// Pattern is a term in the unification engine: either a Var (a named
// placeholder), a Term (a tagged compound with ordered sub-patterns), or
// a Leaf (an opaque concrete value, e.g. an operator string). AST
// expression nodes and addressing-mode templates both render themselves
// as Patterns via their pattern() method so the same engine unifies
// both.
type Pattern interface {
	fmt.Stringer
}

// Var is a unification variable. A non-nil Predicate further constrains
// what it may bind to.
type Var struct {
	Name      string
	Predicate func(Pattern) bool
}

func (v *Var) String() string { return "?" + v.Name }

// Term is a tagged compound pattern, e.g. BinExpr(x, "+", y). Src, when
// non-nil, identifies the Expr this term was rendered from; addressing-
// mode templates leave it nil, while every term built from a parsed
// operand sets it, so that once a template variable unifies with an
// operand sub-term, the matcher can recover the original Expr (and its
// source tokens) straight from the bound pattern.
type Term struct {
	Tag    string
	Params []Pattern
	Src    Expr
}

func (t *Term) String() string {
	s := t.Tag + "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

// Leaf is an opaque concrete value with no internal structure.
type Leaf struct {
	Value string
}

func (l *Leaf) String() string { return l.Value }

// Subst maps a variable name to the pattern it was bound to by a
// successful unification.
type Subst map[string]Pattern

// PatternError reports a unification failure: a structural conflict, an
// occurs-check violation, or a predicate rejection.
type PatternError struct {
	Msg string
}

func (e *PatternError) Error() string { return e.Msg }

// equation is one (lhs, rhs) pair awaiting resolution in the unification
// queue.
type equation struct {
	lhs, rhs Pattern
}

// Unify performs first-order structural unification (Martelli–Montanari)
// between lhs and rhs, returning the substitution that makes them equal.
//
// The algorithm maintains a queue of equations and repeatedly applies
// exactly one rule to the equation at the front: delete (both sides
// already equal), decompose (same term tag/arity, unify pairwise),
// conflict (both sides concrete and unequal — fail), swap (only the
// right side is a variable), or eliminate (the left side is a variable:
// occurs-check, predicate-check, then either substitute the binding
// through the rest of the queue or, if the variable doesn't occur
// elsewhere yet, defer it and count a miss). The loop terminates once a
// full rotation of the queue produces no progress; the equations left
// standing — each a variable bound to its final term — are the output
// substitution.
func Unify(lhs, rhs Pattern) (Subst, error) {
	queue := []equation{{lhs, rhs}}
	misses := 0

	for len(queue) > 0 && misses < len(queue) {
		cur := queue[0]
		queue = queue[1:]
		l, r := cur.lhs, cur.rhs

		lVar, lIsVar := l.(*Var)
		_, rIsVar := r.(*Var)
		lTerm, lIsTerm := l.(*Term)
		rTerm, rIsTerm := r.(*Term)

		switch {
		case patternEqual(l, r):
			misses = 0

		case lIsTerm && rIsTerm && lTerm.Tag == rTerm.Tag && len(lTerm.Params) == len(rTerm.Params):
			for i := range lTerm.Params {
				queue = append(queue, equation{lTerm.Params[i], rTerm.Params[i]})
			}
			misses = 0

		case !lIsVar && !rIsVar:
			return nil, &PatternError{Msg: fmt.Sprintf("cannot unify %s with %s", l, r)}

		case !lIsVar && rIsVar:
			queue = append(queue, equation{r, l})
			misses = 0

		default: // lIsVar
			if occursIn(lVar.Name, r) {
				return nil, &PatternError{Msg: fmt.Sprintf("recursive self reference for variable %q", lVar.Name)}
			}
			if lVar.Predicate != nil && !lVar.Predicate(r) {
				return nil, &PatternError{Msg: fmt.Sprintf("variable %q rejected binding %s", lVar.Name, r)}
			}

			if occursInQueue(lVar.Name, queue) {
				for i, q := range queue {
					queue[i] = equation{
						lhs: substitute(q.lhs, lVar.Name, r),
						rhs: substitute(q.rhs, lVar.Name, r),
					}
				}
				queue = append(queue, equation{l, r})
				misses = 0
			} else {
				queue = append(queue, equation{l, r})
				misses++
			}
		}
	}

	subst := make(Subst, len(queue))
	for _, q := range queue {
		if v, ok := q.lhs.(*Var); ok {
			subst[v.Name] = q.rhs
		}
	}
	return subst, nil
}

func patternEqual(a, b Pattern) bool {
	switch av := a.(type) {
	case *Var:
		bv, ok := b.(*Var)
		return ok && av.Name == bv.Name
	case *Term:
		bv, ok := b.(*Term)
		if !ok || av.Tag != bv.Tag || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !patternEqual(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	case *Leaf:
		bv, ok := b.(*Leaf)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

func occursIn(name string, p Pattern) bool {
	switch t := p.(type) {
	case *Var:
		return t.Name == name
	case *Term:
		for _, prm := range t.Params {
			if occursIn(name, prm) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func occursInQueue(name string, queue []equation) bool {
	for _, q := range queue {
		if occursIn(name, q.lhs) || occursIn(name, q.rhs) {
			return true
		}
	}
	return false
}

func substitute(p Pattern, name string, val Pattern) Pattern {
	switch t := p.(type) {
	case *Var:
		if t.Name == name {
			return val
		}
		return t
	case *Term:
		params := make([]Pattern, len(t.Params))
		changed := false
		for i, prm := range t.Params {
			np := substitute(prm, name, val)
			if np != prm {
				changed = true
			}
			params[i] = np
		}
		if !changed {
			return t
		}
		return &Term{Tag: t.Tag, Params: params, Src: t.Src}
	default:
		return p
	}
}

// termSrc reports the Expr a bound pattern was rendered from, if any.
func termSrc(p Pattern) (Expr, bool) {
	if t, ok := p.(*Term); ok && t.Src != nil {
		return t.Src, true
	}
	return nil, false
}
