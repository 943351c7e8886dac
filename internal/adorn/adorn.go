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

// Package adorn computes the sideways-information-passing adornment of a
// Datalog program's rules, starting from its query, as a fixed point over
// a worklist of binding patterns.
package adorn

import (
	"sort"

	"bitbucket.org/creachadair/stringset"
	log "github.com/golang/glog"

	"github.com/google/magicset/ast"
)

// Result is the output of Adorn: the adorned rules, in production order,
// and the query's adorned atoms. Per spec.md §9's design note, the
// query's adorned atoms serve double duty downstream: they are both the
// seeds for magic facts and the (name, pattern) pairs for query rules.
type Result struct {
	Rules      []ast.Rule
	QueryAtoms []ast.AdornedPredicate
}

// Adorn adorns every rule reachable from program's query. If reorder is
// true, each rule's body is sorted by the greedy binding-order heuristic
// before propagation (spec.md §4.B); this never changes program
// semantics, only the shape of the adorned rules and the adornments that
// result.
func Adorn(program *ast.Program, reorder bool) Result {
	queryAtoms := adornQuery(program)

	queue := append([]ast.AdornedPredicate(nil), queryAtoms...)
	seen := stringset.New()
	for _, q := range queryAtoms {
		seen.Add(q.AdornedName())
	}

	var rules []ast.Rule
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var matching []ast.Rule
		for _, rule := range program.Rules {
			if rule.HeadPredicate().Name == current.Name {
				matching = append(matching, rule)
			}
		}
		log.V(1).Infof("adorn: processing %s, %d matching rule(s)", current.AdornedName(), len(matching))

		for _, rule := range matching {
			newRule := adornRule(program, rule, current.Pattern, reorder)
			rules = append(rules, newRule)

			for _, atom := range newRule.Body {
				adorned, ok := ast.AsAdorned(atom)
				if !ok {
					continue
				}
				if seen.Contains(adorned.AdornedName()) {
					continue
				}
				seen.Add(adorned.AdornedName())
				queue = append(queue, adorned)
			}
		}
	}
	return Result{Rules: rules, QueryAtoms: queryAtoms}
}

// adornQuery builds the initial worklist seeds: for each IDB atom in the
// query's body, a binding pattern derived argument-wise from the query
// atom's own arguments (bound iff the argument is not a variable). EDB
// query atoms are not adorned and do not seed the worklist.
func adornQuery(program *ast.Program) []ast.AdornedPredicate {
	var seeds []ast.AdornedPredicate
	for _, atom := range program.Query.Body {
		pred := ast.AtomPredicate(atom)
		if !program.IsIntensional(pred.Name) {
			continue
		}
		pattern := make([]byte, len(pred.Args))
		for i, arg := range pred.Args {
			if ast.IsVariable(arg) {
				pattern[i] = 'f'
			} else {
				pattern[i] = 'b'
			}
		}
		seeds = append(seeds, ast.AdornedPredicate{Predicate: pred, Pattern: string(pattern)})
	}
	return seeds
}

// adornRule adorns a single rule under head binding pattern beta,
// following spec.md §4.B's rule-adornment procedure.
func adornRule(program *ast.Program, rule ast.Rule, beta string, reorder bool) ast.Rule {
	head := rule.HeadPredicate()
	headAdorned := ast.AdornedPredicate{Predicate: head, Pattern: beta}

	bound := stringset.New()
	n := len(beta)
	if len(head.Args) < n {
		n = len(head.Args)
	}
	for i := 0; i < n; i++ {
		if beta[i] == 'b' {
			bound.Add(head.Args[i])
		}
	}

	body := rule.Body
	if reorder {
		body = greedyBindingOrder(program, body)
	}

	newBody := make([]ast.Atom, 0, len(body))
	for _, atom := range body {
		pred := ast.AtomPredicate(atom)
		if program.IsIntensional(pred.Name) {
			pattern := make([]byte, len(pred.Args))
			for i, arg := range pred.Args {
				if bound.Contains(arg) || !ast.IsVariable(arg) {
					pattern[i] = 'b'
				} else {
					pattern[i] = 'f'
				}
			}
			newBody = append(newBody, ast.AdornedAtom{
				Predicate: ast.AdornedPredicate{Predicate: pred, Pattern: string(pattern)},
			})
		} else {
			newBody = append(newBody, atom)
		}
		// Sideways information passing: every argument of the atom just
		// processed becomes bound for subsequent atoms, not only the ones
		// the adornment marked 'b'. Deviating from this changes which
		// binding patterns later atoms receive.
		for _, arg := range pred.Args {
			bound.Add(arg)
		}
	}

	return ast.Rule{
		Head: ast.AdornedAtom{Predicate: headAdorned},
		Body: newBody,
	}
}

// greedyBindingOrder sorts body atoms by (priority, -arity): EDB atoms
// (priority 0) before IDB atoms (priority 1), ties broken by decreasing
// arity, stable. Evaluating EDB atoms first maximizes the bound-variable
// set available to subsequent IDB atoms, shrinking their 'f' positions.
func greedyBindingOrder(program *ast.Program, body []ast.Atom) []ast.Atom {
	sorted := append([]ast.Atom(nil), body...)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := ast.AtomPredicate(sorted[i]), ast.AtomPredicate(sorted[j])
		priI, priJ := priority(program, pi), priority(program, pj)
		if priI != priJ {
			return priI < priJ
		}
		return len(pi.Args) > len(pj.Args)
	})
	return sorted
}

func priority(program *ast.Program, pred ast.Predicate) int {
	if program.IsIntensional(pred.Name) {
		return 1
	}
	return 0
}
