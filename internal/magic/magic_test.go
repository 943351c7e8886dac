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

package magic

import (
	"strings"
	"testing"

	"github.com/google/magicset/ast"
)

func adornedPred(name, pattern string, args ...string) ast.AdornedPredicate {
	return ast.AdornedPredicate{Predicate: ast.Predicate{Name: name, Args: args}, Pattern: pattern}
}

// TestPredicateArityLaw is the "magic-arity law" of spec.md §8: the
// magic predicate's arity equals the count of 'b' in the pattern.
func TestPredicateArityLaw(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		args    []string
	}{
		{"ancestor", "bb", []string{"X", "Y"}},
		{"ancestor", "fb", []string{"X", "'Carol'"}},
		{"path", "ff", []string{"X", "Y"}},
	}
	for _, test := range tests {
		p := adornedPred(test.name, test.pattern, test.args...)
		m := Predicate(p)
		wantArity := strings.Count(test.pattern, "b")
		if got := m.Arity(); got != wantArity {
			t.Errorf("Predicate(%v).Arity() = %d, want %d", p, got, wantArity)
		}
		if got, want := m.Name, "magic_"+test.name; got != want {
			t.Errorf("Predicate(%v).Name = %q, want %q", p, got, want)
		}
		if got, want := m.Pattern, strings.Repeat("b", wantArity); got != want {
			t.Errorf("Predicate(%v).Pattern = %q, want %q", p, got, want)
		}
	}
}

func TestPredicateZeroArity(t *testing.T) {
	p := adornedPred("ancestor", "ff", "X", "Y")
	m := Predicate(p)
	if m.Arity() != 0 {
		t.Errorf("Predicate(%v).Arity() = %d, want 0", p, m.Arity())
	}
	if got, want := m.String(), "magic_ancestor_()"; got != want {
		t.Errorf("Predicate(%v).String() = %q, want %q", p, got, want)
	}
}

func TestRulesFromScenario1(t *testing.T) {
	// ancestor_bb(X,Y) :- parent(X,Y).
	rule1 := ast.Rule{
		Head: ast.AdornedAtom{Predicate: adornedPred("ancestor", "bb", "X", "Y")},
		Body: []ast.Atom{ast.PlainAtom{Predicate: ast.NewPredicate("parent", "X", "Y")}},
	}
	// ancestor_bb(X,Y) :- ancestor_bf(X,Z), parent(Z,Y).
	rule2 := ast.Rule{
		Head: ast.AdornedAtom{Predicate: adornedPred("ancestor", "bb", "X", "Y")},
		Body: []ast.Atom{
			ast.AdornedAtom{Predicate: adornedPred("ancestor", "bf", "X", "Z")},
			ast.PlainAtom{Predicate: ast.NewPredicate("parent", "Z", "Y")},
		},
	}

	rules := Rules([]ast.Rule{rule1, rule2})
	if len(rules) != 1 {
		t.Fatalf("len(Rules) = %d, want 1 (rule1 has no IDB body occurrence)", len(rules))
	}
	if got, want := rules[0].String(), "magic_ancestor_b(X) :- magic_ancestor_bb(X, Y)."; got != want {
		t.Errorf("magic rule = %q, want %q", got, want)
	}
}

func TestRulesPrefixIncludesPrecedingAtoms(t *testing.T) {
	// path_bb(X,Y) :- edge(X,Z), path_bb(Z,Y).
	rule := ast.Rule{
		Head: ast.AdornedAtom{Predicate: adornedPred("path", "bb", "X", "Y")},
		Body: []ast.Atom{
			ast.PlainAtom{Predicate: ast.NewPredicate("edge", "X", "Z")},
			ast.AdornedAtom{Predicate: adornedPred("path", "bb", "Z", "Y")},
		},
	}
	rules := Rules([]ast.Rule{rule})
	if len(rules) != 1 {
		t.Fatalf("len(Rules) = %d, want 1", len(rules))
	}
	if got, want := rules[0].String(), "magic_path_bb(Z, Y) :- magic_path_bb(X, Y), edge(X, Z)."; got != want {
		t.Errorf("magic rule = %q, want %q", got, want)
	}
}
