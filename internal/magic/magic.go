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

// Package magic generates magic predicates and magic rules from adorned
// rules (spec.md §4.C).
package magic

import (
	"strings"

	"github.com/google/magicset/ast"
)

// Predicate turns an adorned predicate into its magic counterpart:
// name "magic_<p>", arguments restricted to the bound positions of p,
// all-'b' pattern of that (possibly zero) length.
func Predicate(p ast.AdornedPredicate) ast.AdornedPredicate {
	bound := p.BoundArgs()
	return ast.AdornedPredicate{
		Predicate: ast.Predicate{Name: "magic_" + p.Name, Args: bound},
		Pattern:   strings.Repeat("b", len(bound)),
	}
}

// Rules generates one magic rule per adorned IDB occurrence in each
// adorned rule's body:
//
//	magic(Qj^gammaj) :- magic(H^beta), B1, ..., Bj-1.
//
// in the production order of adornedRules, and within a rule, in the
// order its IDB body occurrences appear.
func Rules(adornedRules []ast.Rule) []ast.Rule {
	var rules []ast.Rule
	for _, rule := range adornedRules {
		rules = append(rules, rulesForOne(rule)...)
	}
	return rules
}

func rulesForOne(rule ast.Rule) []ast.Rule {
	headAdorned, ok := ast.AsAdorned(rule.Head)
	if !ok {
		return nil
	}
	magicHead := ast.AdornedAtom{Predicate: Predicate(headAdorned)}

	var rules []ast.Rule
	for j, atom := range rule.Body {
		bodyAdorned, ok := ast.AsAdorned(atom)
		if !ok {
			continue
		}
		body := make([]ast.Atom, 0, j+1)
		body = append(body, magicHead)
		body = append(body, rule.Body[:j]...)
		rules = append(rules, ast.Rule{
			Head: ast.AdornedAtom{Predicate: Predicate(bodyAdorned)},
			Body: body,
		})
	}
	return rules
}
