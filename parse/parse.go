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

// Package parse reads the line-oriented Datalog program surface syntax
// this rewriter's core consumes (spec.md §6): one fact, rule, or query
// per non-blank, non-comment line. This is a parser for the core's
// external collaborator, not part of the core transform itself (spec.md
// §1); the grammar is grounded on original_source/datalog_parser.py.
package parse

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/google/magicset/ast"
)

// Program parses src into an ast.Program. It tolerates and reports every
// malformed line rather than stopping at the first one, so a caller sees
// every syntax error in a file in a single pass.
func Program(src []byte) (*ast.Program, error) {
	program := ast.NewProgram()
	var errs error

	lineNo := 0
	for _, raw := range strings.Split(string(src), "\n") {
		lineNo++
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		rule, isFact, err := parseLine(line)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		if isFact {
			if !allConstants(rule.Head) {
				errs = multierr.Append(errs, fmt.Errorf("line %d: fact %v has a variable argument", lineNo, rule.Head))
				continue
			}
			program.AddFact(ast.NewFact(rule.Head))
			continue
		}
		if len(rule.Body) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("line %d: rule %v has an empty body", lineNo, rule.Head))
			continue
		}
		if rule.Head.Name == ast.QueryPredicateName {
			program.SetQuery(ast.NewRule(rule.Head, rule.Body...))
			continue
		}
		program.AddRule(ast.NewRule(rule.Head, rule.Body...))
	}
	return program, errs
}

type parsedRule struct {
	Head ast.Predicate
	Body []ast.Predicate
}

// parseLine parses one line into a fact (isFact true, Body empty) or a
// rule. A line with no ":-" is a fact.
func parseLine(line string) (parsedRule, bool, error) {
	if !strings.HasSuffix(line, ".") {
		return parsedRule{}, false, fmt.Errorf("parse: line %q does not end in '.'", line)
	}
	line = strings.TrimSuffix(line, ".")

	if !strings.Contains(line, ":-") {
		head, err := parsePredicate(line)
		if err != nil {
			return parsedRule{}, false, err
		}
		return parsedRule{Head: head}, true, nil
	}

	parts := strings.SplitN(line, ":-", 2)
	head, err := parsePredicate(strings.TrimSpace(parts[0]))
	if err != nil {
		return parsedRule{}, false, fmt.Errorf("parsing head: %w", err)
	}
	body, err := splitBodyAtoms(strings.TrimSpace(parts[1]))
	if err != nil {
		return parsedRule{}, false, fmt.Errorf("parsing body: %w", err)
	}
	preds := make([]ast.Predicate, 0, len(body))
	for _, atomStr := range body {
		p, err := parsePredicate(atomStr)
		if err != nil {
			return parsedRule{}, false, err
		}
		preds = append(preds, p)
	}
	return parsedRule{Head: head, Body: preds}, false, nil
}

// parsePredicate parses "name(arg1, arg2)" or the zero-arity "name" (no
// parentheses at all) into an ast.Predicate.
func parsePredicate(s string) (ast.Predicate, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		if s == "" {
			return ast.Predicate{}, fmt.Errorf("parse: empty predicate")
		}
		return ast.Predicate{Name: s}, nil
	}
	if !strings.HasSuffix(s, ")") {
		return ast.Predicate{}, fmt.Errorf("parse: predicate %q missing closing ')'", s)
	}
	name := strings.TrimSpace(s[:open])
	if name == "" {
		return ast.Predicate{}, fmt.Errorf("parse: predicate %q has no name", s)
	}
	argsStr := s[open+1 : len(s)-1]
	args, err := splitTopLevel(argsStr, ',')
	if err != nil {
		return ast.Predicate{}, err
	}
	trimmed := make([]string, 0, len(args))
	for _, a := range args {
		if t := strings.TrimSpace(a); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return ast.Predicate{Name: name, Args: trimmed}, nil
}

// splitBodyAtoms splits a rule body "pred1(a,b), pred2(c)" into its
// individual atom strings, respecting parenthesis and quote nesting so a
// comma inside an atom's own argument list does not end the atom early.
func splitBodyAtoms(s string) ([]string, error) {
	atoms, err := splitTopLevel(s, ',')
	if err != nil {
		return nil, err
	}
	var trimmed []string
	for _, a := range atoms {
		if t := strings.TrimSpace(a); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return trimmed, nil
}

// splitTopLevel splits s on sep, except inside '(...)' nesting or
// single-quoted string literals.
func splitTopLevel(s string, sep byte) ([]string, error) {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' && (i == 0 || s[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
			// inside a quoted literal, nothing else is significant
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("parse: unbalanced ')' in %q", s)
			}
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if inQuote {
		return nil, fmt.Errorf("parse: unterminated quote in %q", s)
	}
	if depth != 0 {
		return nil, fmt.Errorf("parse: unbalanced '(' in %q", s)
	}
	parts = append(parts, s[start:])
	return parts, nil
}

func allConstants(p ast.Predicate) bool {
	for _, a := range p.Args {
		if ast.IsVariable(a) {
			return false
		}
	}
	return true
}
