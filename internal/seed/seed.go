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

// Package seed synthesizes magic seed facts and query rules from a
// query's adorned atoms (spec.md §4.E).
package seed

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/google/magicset/ast"
	"github.com/google/magicset/internal/magic"
)

// Result is the output of Generate: magic seed facts, in the order of
// the adorned query atoms, and query rules, one per distinct (name,
// pattern) pair appearing in the query, in first-occurrence order.
type Result struct {
	Facts []ast.Fact
	Rules []ast.Rule
}

// Generate builds the magic seeds and query rules for the adorned atoms
// of a query, per spec.md §4.E. The same list of adorned atoms doubles
// as both the source of magic-fact seeds and the source of (name,
// pattern) pairs for query rules (spec.md §9's design note on the
// pair/triple ambiguity in the source implementation).
func Generate(queryAtoms []ast.AdornedPredicate) Result {
	var res Result
	seen := stringset.New()
	for _, q := range queryAtoms {
		res.Facts = append(res.Facts, ast.NewFact(magic.Predicate(q).Predicate))

		if seen.Contains(q.AdornedName()) {
			continue
		}
		seen.Add(q.AdornedName())

		vars := make([]string, len(q.Args))
		for i := range vars {
			vars[i] = fmt.Sprintf("Var_%d", i+1)
		}
		head := ast.Predicate{Name: q.Name, Args: vars}
		body := ast.AdornedPredicate{Predicate: ast.Predicate{Name: q.Name, Args: vars}, Pattern: q.Pattern}
		res.Rules = append(res.Rules, ast.Rule{
			Head: ast.PlainAtom{Predicate: head},
			Body: []ast.Atom{ast.AdornedAtom{Predicate: body}},
		})
	}
	return res
}
