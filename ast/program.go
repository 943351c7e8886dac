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
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// QueryPredicateName is the sentinel head name the parser must use to tag
// the query rule (spec.md §6): "the reference implementation uses
// goal__reachable".
const QueryPredicateName = "goal__reachable"

// Program is a Datalog program: a fact set, a rule set, a query, and the
// IDB/EDB classification derived from the rule set's head names.
//
// idbNames changes only through AddRule; once the Adorner has run over a
// Program it is treated as immutable (invariant 2).
type Program struct {
	Facts []Fact
	Rules []Rule
	Query Rule

	idbNames stringset.Set
}

// NewProgram returns an empty Program ready for AddFact/AddRule/SetQuery.
func NewProgram() *Program {
	return &Program{idbNames: stringset.New()}
}

// AddFact appends a fact, preserving input order (spec.md §5 ordering
// guarantee: "original facts retain their input order").
func (p *Program) AddFact(f Fact) {
	p.Facts = append(p.Facts, f)
}

// AddRule appends a rule and extends idbNames with its head's name.
func (p *Program) AddRule(r Rule) {
	p.Rules = append(p.Rules, r)
	p.idbNames.Add(r.HeadPredicate().Name)
}

// SetQuery installs the program's query rule.
func (p *Program) SetQuery(q Rule) {
	p.Query = q
}

// IsIntensional reports whether a predicate is IDB: its name appears as
// some rule's head name. This is the sole criterion the Adorner uses to
// decide whether to adorn a body atom (spec.md §3).
func (p *Program) IsIntensional(predName string) bool {
	return p.idbNames.Contains(predName)
}

// ExtensionalSymbols returns the (name, arity) signatures of the EDB
// predicates that actually have facts in this program, in first-seen
// order. Grounded on original_source/models.py's
// DatalogProgram.get_extensional_predicates: reporting only predicates
// with observed facts is strictly more informative for a CLI/debug
// summary than merely "not in idbNames", since it reflects the data the
// program actually carries.
func (p *Program) ExtensionalSymbols() []Sig {
	seen := stringset.New()
	var sigs []Sig
	for _, f := range p.Facts {
		sig := Sig{Name: f.Predicate.Name, Arity: f.Predicate.Arity()}
		key := sig.Name + "/" + strconv.Itoa(sig.Arity)
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		sigs = append(sigs, sig)
	}
	return sigs
}

// String renders the program the way the CLI prints it (spec.md §6):
// facts, then rules, then the original query, each group separated by a
// blank line.
func (p *Program) String() string {
	var groups []string
	if len(p.Facts) > 0 {
		var sb strings.Builder
		for i, f := range p.Facts {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(f.String())
		}
		groups = append(groups, sb.String())
	}
	if len(p.Rules) > 0 {
		var sb strings.Builder
		for i, r := range p.Rules {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(r.String())
		}
		groups = append(groups, sb.String())
	}
	if len(p.Query.Body) > 0 {
		groups = append(groups, p.Query.String())
	}
	return strings.Join(groups, "\n\n")
}
