// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ast is the term model for the Magic Set rewriter: predicates,
// facts, rules, adorned predicates and the program container they live in.
package ast

import (
	"fmt"
	"strings"
)

// IsVariable reports whether an argument term is a variable, using the
// single syntactic rule that classifies every argument term in this
// package: a term is a variable iff its first significant character is an
// uppercase letter. Every site that needs to classify a term calls this
// function, so the rule never drifts.
func IsVariable(arg string) bool {
	for _, r := range arg {
		return r >= 'A' && r <= 'Z'
	}
	return false
}

// Predicate is a name applied to an ordered sequence of argument terms.
// Arity is len(Args). Equality is structural.
type Predicate struct {
	Name string
	Args []string
}

// NewPredicate is a convenience constructor for Predicate.
func NewPredicate(name string, args ...string) Predicate {
	return Predicate{Name: name, Args: args}
}

// Arity returns the number of arguments.
func (p Predicate) Arity() int {
	return len(p.Args)
}

// Equals reports structural equality of two predicates.
func (p Predicate) Equals(o Predicate) bool {
	if p.Name != o.Name || len(p.Args) != len(o.Args) {
		return false
	}
	for i, a := range p.Args {
		if a != o.Args[i] {
			return false
		}
	}
	return true
}

// Sig is a predicate signature: name and arity, used to identify an
// extensional predicate independent of any particular occurrence's
// argument names.
type Sig struct {
	Name  string
	Arity int
}

// String returns "name(arg1, arg2)".
func (p Predicate) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteByte('(')
	for i, a := range p.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a)
	}
	sb.WriteByte(')')
	return sb.String()
}

// AdornedPredicate is a Predicate extended with a binding pattern: a
// string of the same length as Args, each character in {'b', 'f'}
// (bound/free). Behaviorally it is a subtype of Predicate: anywhere an
// atom is expected, both forms are accepted, and consumers discriminate
// by checking whether a binding pattern is present (see Atom below)
// rather than through inheritance.
type AdornedPredicate struct {
	Predicate
	Pattern string
}

// NewAdornedPredicate validates invariant 1 (len(Pattern) == arity, every
// character in {b,f}) and constructs an AdornedPredicate. A violation
// indicates a bug in the caller, not malformed user input (spec.md §7),
// so it is reported as an error rather than silently tolerated.
func NewAdornedPredicate(p Predicate, pattern string) (AdornedPredicate, error) {
	if len(pattern) != len(p.Args) {
		return AdornedPredicate{}, fmt.Errorf("ast: binding pattern %q has length %d, want arity %d of %v", pattern, len(pattern), len(p.Args), p)
	}
	for _, c := range pattern {
		if c != 'b' && c != 'f' {
			return AdornedPredicate{}, fmt.Errorf("ast: binding pattern %q has invalid character %q, want 'b' or 'f'", pattern, c)
		}
	}
	return AdornedPredicate{Predicate: p, Pattern: pattern}, nil
}

// AdornedName is the identity used by the adornment worklist's seen-set:
// "<name>_<binding_pattern>".
func (a AdornedPredicate) AdornedName() string {
	return a.Name + "_" + a.Pattern
}

// String returns "name_pattern(arg1, arg2)".
func (a AdornedPredicate) String() string {
	var sb strings.Builder
	sb.WriteString(a.AdornedName())
	sb.WriteByte('(')
	for i, arg := range a.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg)
	}
	sb.WriteByte(')')
	return sb.String()
}

// BoundArgs returns the arguments at positions where the binding pattern
// is 'b', in order.
func (a AdornedPredicate) BoundArgs() []string {
	var bound []string
	for i, c := range a.Pattern {
		if c == 'b' {
			bound = append(bound, a.Args[i])
		}
	}
	return bound
}

// Fact wraps a Predicate whose arguments are all constants.
type Fact struct {
	Predicate Predicate
}

// NewFact is a convenience constructor for Fact.
func NewFact(p Predicate) Fact {
	return Fact{Predicate: p}
}

// String returns "predicate."
func (f Fact) String() string {
	return f.Predicate.String() + "."
}

// Atom is a rule-body occurrence of a predicate: either a plain
// Predicate (an EDB occurrence) or an AdornedPredicate (an IDB
// occurrence produced by the Adorner). This is the tagged variant from
// spec.md §9's design note (Atom = Plain(Predicate) | Adorned
// (AdornedPredicate)); consumers switch on the concrete type rather than
// relying on inheritance.
type Atom interface {
	isAtom()
	String() string
}

// PlainAtom is an EDB occurrence in a rule body.
type PlainAtom struct {
	Predicate Predicate
}

func (PlainAtom) isAtom() {}

// String returns the wrapped predicate's string form.
func (p PlainAtom) String() string { return p.Predicate.String() }

// AdornedAtom is an IDB occurrence in a rule body, adorned by the
// Adorner.
type AdornedAtom struct {
	Predicate AdornedPredicate
}

func (AdornedAtom) isAtom() {}

// String returns the wrapped adorned predicate's string form.
func (a AdornedAtom) String() string { return a.Predicate.String() }

// Rule is a head atom and an ordered, non-empty body of atoms. Body order
// is significant for adornment propagation. The head is an Atom, not a
// bare Predicate, because the Adorner, the magic generator and the
// modifier all produce rules whose head carries a binding pattern
// (AdornedAtom); an unadorned rule (as read from the parser, or a
// generated query rule) has a PlainAtom head.
type Rule struct {
	Head Atom
	Body []Atom
}

// NewRule is a convenience constructor for Rule with a plain (unadorned)
// head and body built from Predicates.
func NewRule(head Predicate, body ...Predicate) Rule {
	atoms := make([]Atom, len(body))
	for i, p := range body {
		atoms[i] = PlainAtom{Predicate: p}
	}
	return Rule{Head: PlainAtom{Predicate: head}, Body: atoms}
}

// HeadPredicate returns the underlying Predicate of the rule's head,
// whether the head is plain or adorned.
func (r Rule) HeadPredicate() Predicate {
	return AtomPredicate(r.Head)
}

// AtomPredicate returns the underlying Predicate of an atom, whether it
// is a PlainAtom or an AdornedAtom.
func AtomPredicate(a Atom) Predicate {
	switch t := a.(type) {
	case PlainAtom:
		return t.Predicate
	case AdornedAtom:
		return t.Predicate.Predicate
	default:
		panic(fmt.Sprintf("ast: unknown Atom implementation %T", a))
	}
}

// AsAdorned reports whether an atom is an AdornedAtom, returning its
// AdornedPredicate if so.
func AsAdorned(a Atom) (AdornedPredicate, bool) {
	ad, ok := a.(AdornedAtom)
	if !ok {
		return AdornedPredicate{}, false
	}
	return ad.Predicate, true
}

// String returns "head(args) :- b1, b2, ..., bn."
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Head.String())
	sb.WriteString(" :- ")
	for i, b := range r.Body {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.String())
	}
	sb.WriteByte('.')
	return sb.String()
}
