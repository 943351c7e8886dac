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

package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsVariable(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"X", true},
		{"Y2", true},
		{"'Bob'", false},
		{"bob", false},
		{"1", false},
		{"", false},
	}
	for _, test := range tests {
		if got := IsVariable(test.arg); got != test.want {
			t.Errorf("IsVariable(%q) = %v, want %v", test.arg, got, test.want)
		}
	}
}

func TestNewAdornedPredicate(t *testing.T) {
	p := NewPredicate("ancestor", "X", "Y")
	if _, err := NewAdornedPredicate(p, "bb"); err != nil {
		t.Fatalf("NewAdornedPredicate(%v, bb) failed: %v", p, err)
	}
	if _, err := NewAdornedPredicate(p, "b"); err == nil {
		t.Errorf("NewAdornedPredicate(%v, b) succeeded, want length mismatch error", p)
	}
	if _, err := NewAdornedPredicate(p, "bx"); err == nil {
		t.Errorf("NewAdornedPredicate(%v, bx) succeeded, want invalid character error", p)
	}
}

func TestAdornedNameAndBoundArgs(t *testing.T) {
	p := NewPredicate("ancestor", "X", "'Carol'")
	a, err := NewAdornedPredicate(p, "fb")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := a.AdornedName(), "ancestor_fb"; got != want {
		t.Errorf("AdornedName() = %q, want %q", got, want)
	}
	if got, want := a.BoundArgs(), []string{"'Carol'"}; !cmp.Equal(got, want) {
		t.Errorf("BoundArgs() = %v, want %v", got, want)
	}
}

func TestProgramIntensionalClassification(t *testing.T) {
	p := NewProgram()
	p.AddFact(NewFact(NewPredicate("parent", "'Bob'", "'Alice'")))
	p.AddRule(NewRule(NewPredicate("ancestor", "X", "Y"), NewPredicate("parent", "X", "Y")))

	if !p.IsIntensional("ancestor") {
		t.Errorf("IsIntensional(ancestor) = false, want true")
	}
	if p.IsIntensional("parent") {
		t.Errorf("IsIntensional(parent) = true, want false")
	}
}

func TestExtensionalSymbols(t *testing.T) {
	p := NewProgram()
	p.AddFact(NewFact(NewPredicate("parent", "'Bob'", "'Alice'")))
	p.AddFact(NewFact(NewPredicate("parent", "'Alice'", "'Carol'")))
	p.AddFact(NewFact(NewPredicate("age", "'Bob'", "42")))

	got := p.ExtensionalSymbols()
	want := []Sig{{"parent", 2}, {"age", 2}}
	if !cmp.Equal(got, want) {
		t.Errorf("ExtensionalSymbols() = %v, want %v", got, want)
	}
}

func TestProgramString(t *testing.T) {
	p := NewProgram()
	p.AddFact(NewFact(NewPredicate("parent", "'Bob'", "'Alice'")))
	p.AddRule(NewRule(NewPredicate("ancestor", "X", "Y"), NewPredicate("parent", "X", "Y")))
	p.SetQuery(NewRule(NewPredicate(QueryPredicateName), NewPredicate("ancestor", "'Bob'", "'Alice'")))

	want := "parent('Bob', 'Alice').\n\n" +
		"ancestor(X, Y) :- parent(X, Y).\n\n" +
		"goal__reachable() :- ancestor('Bob', 'Alice')."
	if got := p.String(); got != want {
		t.Errorf("Program.String() =\n%s\nwant\n%s", got, want)
	}
}
