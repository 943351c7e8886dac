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

// Package rewrite assembles the Magic Set rewriting of a Datalog
// program: it drives the adorner, feeds its output to the magic
// generator, modifier and seeder, and concatenates everything with the
// untouched fact set and the original query into the rewritten program
// (spec.md §2, §4.F).
package rewrite

import (
	"github.com/google/magicset/ast"
	"github.com/google/magicset/internal/adorn"
	"github.com/google/magicset/internal/magic"
	"github.com/google/magicset/internal/modify"
	"github.com/google/magicset/internal/seed"
)

// Options configures the rewrite. GreedyBindingOrder enables the
// optional body-reordering heuristic of spec.md §4.B: it never changes
// the semantics of the rewritten program, only its shape.
type Options struct {
	GreedyBindingOrder bool
}

// Transform applies the Magic Set transformation to program, producing a
// new Program whose naive bottom-up evaluation computes exactly the
// answers reachable for program's query. Transform is the Assembler of
// spec.md §4.F: it drives the Adorner, and concatenates, in order,
// program's original facts, the magic seed facts, the magic rules, the
// modified rules, the query rules, and program's original query.
func Transform(program *ast.Program, opts Options) *ast.Program {
	adorned := adorn.Adorn(program, opts.GreedyBindingOrder)
	magicRules := magic.Rules(adorned.Rules)
	modifiedRules := modify.Rules(adorned.Rules)
	seeded := seed.Generate(adorned.QueryAtoms)

	out := ast.NewProgram()
	for _, f := range program.Facts {
		out.AddFact(f)
	}
	for _, f := range seeded.Facts {
		out.AddFact(f)
	}
	for _, r := range magicRules {
		out.AddRule(r)
	}
	for _, r := range modifiedRules {
		out.AddRule(r)
	}
	for _, r := range seeded.Rules {
		out.AddRule(r)
	}
	out.SetQuery(program.Query)
	return out
}
