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

// Package modify prepends the head-derived magic guard atom to each
// adorned rule (spec.md §4.D).
package modify

import (
	"github.com/google/magicset/ast"
	"github.com/google/magicset/internal/magic"
)

// Rules modifies every adorned rule H^beta :- body. into
// H^beta :- magic(H^beta), body. restricting the rule to fire only on
// tuples the top-down search has demanded. The magic atom always comes
// first, followed by the original (possibly reordered) body in its
// existing order.
func Rules(adornedRules []ast.Rule) []ast.Rule {
	modified := make([]ast.Rule, 0, len(adornedRules))
	for _, rule := range adornedRules {
		headAdorned, ok := ast.AsAdorned(rule.Head)
		if !ok {
			modified = append(modified, rule)
			continue
		}
		guard := ast.AdornedAtom{Predicate: magic.Predicate(headAdorned)}
		body := make([]ast.Atom, 0, len(rule.Body)+1)
		body = append(body, guard)
		body = append(body, rule.Body...)
		modified = append(modified, ast.Rule{Head: rule.Head, Body: body})
	}
	return modified
}
