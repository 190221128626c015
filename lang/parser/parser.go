// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
//
// Additional permission under GNU GPL version 3 section 7
//
// If you modify this program, or any covered work, by linking or combining it
// with embedded mcl code and modules (and that the embedded mcl code and
// modules which link with this program, contain a copy of their source code in
// the authoritative form) containing parts covered by the terms of any other
// license, the licensors of this program grant you additional permission to
// convey the resulting work. Furthermore, the licensors of this program grant
// the original author, James Shubin, additional permission to update this
// additional permission if he deems it necessary to achieve the goals of this
// additional permission.

// Package parser reads definitions of the combinator language from YAML. A
// scalar is a literal or a variable, and a map with a single key is a node
// whose kind is the key, eg: {add: [x, 1]} or {if: {cond: c, then: a, else: b}}.
// Keys may be written in camel case, they are normalized to snake case.
package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/purpleidea/partialfix/lang/ast"
	"github.com/purpleidea/partialfix/util/errwrap"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v2"
)

// Definition is the file format of a definition.
type Definition struct {
	// Name is the name of the function, which is also how the body calls
	// it.
	Name string `yaml:"name"`

	// Param is the name of the argument.
	Param string `yaml:"param"`

	// Body is the expression that defines the function.
	Body interface{} `yaml:"body"`

	// Motive is an optional property to prove by fixpoint induction.
	Motive interface{} `yaml:"motive"`

	// Domain is the list of sample arguments.
	Domain []int64 `yaml:"domain"`

	// MaxIterations overrides the number of iterates used for induction.
	MaxIterations int `yaml:"max_iterations"`

	// MaxDepth overrides the limit of nested calls when evaluating.
	MaxDepth int `yaml:"max_depth"`
}

// Parse reads a definition from some input.
func Parse(reader io.Reader) (*ast.Definition, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read definition")
	}
	raw := &Definition{}
	if err := yaml.UnmarshalStrict(b, raw); err != nil {
		return nil, errwrap.Wrapf(err, "can't parse definition")
	}
	return raw.AST()
}

// AST converts the file format into the syntax tree.
func (obj *Definition) AST() (*ast.Definition, error) {
	if obj.Name == "" {
		return nil, fmt.Errorf("the name field is missing")
	}
	if obj.Param == "" {
		return nil, fmt.Errorf("the param field is missing")
	}
	if obj.Body == nil {
		return nil, fmt.Errorf("the body field is missing")
	}
	if obj.MaxIterations < 0 {
		return nil, fmt.Errorf("the max_iterations field must not be negative")
	}
	if obj.MaxDepth < 0 {
		return nil, fmt.Errorf("the max_depth field must not be negative")
	}

	p := &parser{name: obj.Name}
	body, err := p.expr(obj.Body)
	if err != nil {
		return nil, errwrap.Wrapf(err, "invalid body")
	}
	var motive ast.Motive
	if obj.Motive != nil {
		if motive, err = p.motive(obj.Motive); err != nil {
			return nil, errwrap.Wrapf(err, "invalid motive")
		}
	}

	return &ast.Definition{
		Name:          obj.Name,
		Param:         obj.Param,
		Body:          body,
		Motive:        motive,
		Domain:        obj.Domain,
		MaxIterations: obj.MaxIterations,
		MaxDepth:      obj.MaxDepth,
	}, nil
}

type parser struct {
	name string // of the definition, for the recursive calls
}

// node splits a single key map into its normalized kind and its value.
func node(raw interface{}) (string, interface{}, error) {
	m, ok := raw.(map[interface{}]interface{})
	if !ok {
		return "", nil, fmt.Errorf("expected a map, got: %T", raw)
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("expected a single key, got %d", len(m))
	}
	for k, v := range m {
		s, ok := k.(string)
		if !ok {
			return "", nil, fmt.Errorf("expected a string key, got: %v", k)
		}
		return strcase.ToSnake(s), v, nil
	}
	panic("unreachable")
}

// fields reads a map with exactly the named keys.
func fields(raw interface{}, keys ...string) (map[string]interface{}, error) {
	m, ok := raw.(map[interface{}]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a map, got: %T", raw)
	}
	out := make(map[string]interface{})
	for k, v := range m {
		s, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key, got: %v", k)
		}
		out[strcase.ToSnake(s)] = v
	}
	for k := range out {
		found := false
		for _, x := range keys {
			if k == x {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unexpected key: %s", k)
		}
	}
	missing := []string{}
	for _, x := range keys {
		if _, exists := out[x]; !exists {
			missing = append(missing, x)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing keys: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// list reads a list of exactly n elements.
func list(raw interface{}, n int) ([]interface{}, error) {
	l, ok := raw.([]interface{})
	if !ok {
		if n == 1 {
			return []interface{}{raw}, nil // a single arg needs no list
		}
		return nil, fmt.Errorf("expected a list, got: %T", raw)
	}
	if len(l) != n {
		return nil, fmt.Errorf("expected %d elements, got %d", n, len(l))
	}
	return l, nil
}

func name(raw interface{}) (string, error) {
	s, ok := raw.(string)
	if !ok || s == "" || s == "none" {
		return "", fmt.Errorf("invalid variable name: %v", raw)
	}
	return s, nil
}

func (obj *parser) exprs(raw []interface{}) ([]ast.Expr, error) {
	out := []ast.Expr{}
	for i, x := range raw {
		e, err := obj.expr(x)
		if err != nil {
			return nil, errwrap.Wrapf(err, "argument %d", i)
		}
		out = append(out, e)
	}
	return out, nil
}

func (obj *parser) expr(raw interface{}) (ast.Expr, error) {
	switch x := raw.(type) {
	case int:
		return &ast.ExprInt{V: int64(x)}, nil
	case int64:
		return &ast.ExprInt{V: x}, nil
	case bool:
		return &ast.ExprBool{V: x}, nil
	case string:
		if x == "none" {
			return &ast.ExprNone{}, nil
		}
		n, err := name(x)
		if err != nil {
			return nil, err
		}
		return &ast.ExprVar{Name: n}, nil
	case map[interface{}]interface{}:
		// pass
	default:
		return nil, fmt.Errorf("unexpected value: %v (%T)", raw, raw)
	}

	kind, v, err := node(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "some", "fst", "snd", "call":
		e, err := obj.expr(v)
		if err != nil {
			return nil, errwrap.Wrapf(err, "in %s", kind)
		}
		switch kind {
		case "some":
			return &ast.ExprSome{Expr: e}, nil
		case "fst":
			return &ast.ExprFst{Expr: e}, nil
		case "snd":
			return &ast.ExprSnd{Expr: e}, nil
		}
		return &ast.ExprCall{Name: obj.name, Arg: e}, nil

	case "pair":
		l, err := list(v, 2)
		if err != nil {
			return nil, errwrap.Wrapf(err, "in pair")
		}
		args, err := obj.exprs(l)
		if err != nil {
			return nil, errwrap.Wrapf(err, "in pair")
		}
		return &ast.ExprPair{Fst: args[0], Snd: args[1]}, nil

	case "if":
		m, err := fields(v, "cond", "then", "else")
		if err != nil {
			return nil, errwrap.Wrapf(err, "in if")
		}
		args, err := obj.exprs([]interface{}{m["cond"], m["then"], m["else"]})
		if err != nil {
			return nil, errwrap.Wrapf(err, "in if")
		}
		return &ast.ExprIf{Condition: args[0], ThenBranch: args[1], ElseBranch: args[2]}, nil

	case "dite":
		m, err := fields(v, "cond", "var", "then", "else")
		if err != nil {
			return nil, errwrap.Wrapf(err, "in dite")
		}
		n, err := name(m["var"])
		if err != nil {
			return nil, errwrap.Wrapf(err, "in dite")
		}
		args, err := obj.exprs([]interface{}{m["cond"], m["then"], m["else"]})
		if err != nil {
			return nil, errwrap.Wrapf(err, "in dite")
		}
		return &ast.ExprDite{Condition: args[0], Name: n, ThenBranch: args[1], ElseBranch: args[2]}, nil

	case "bind":
		m, err := fields(v, "action", "var", "body")
		if err != nil {
			return nil, errwrap.Wrapf(err, "in bind")
		}
		n, err := name(m["var"])
		if err != nil {
			return nil, errwrap.Wrapf(err, "in bind")
		}
		args, err := obj.exprs([]interface{}{m["action"], m["body"]})
		if err != nil {
			return nil, errwrap.Wrapf(err, "in bind")
		}
		return &ast.ExprBind{Action: args[0], Name: n, Body: args[1]}, nil
	}

	arity, exists := ast.Arity[kind]
	if !exists {
		return nil, fmt.Errorf("unknown kind: %s", kind)
	}
	l, err := list(v, arity)
	if err != nil {
		return nil, errwrap.Wrapf(err, "in %s", kind)
	}
	args, err := obj.exprs(l)
	if err != nil {
		return nil, errwrap.Wrapf(err, "in %s", kind)
	}
	return &ast.ExprOp{Op: kind, Args: args}, nil
}

func (obj *parser) motive(raw interface{}) (ast.Motive, error) {
	switch x := raw.(type) {
	case bool:
		if !x {
			return nil, fmt.Errorf("a false motive can't be proven")
		}
		return &ast.MotiveTrue{}, nil
	case string:
		if x != "true" {
			return nil, fmt.Errorf("unknown motive: %s", x)
		}
		return &ast.MotiveTrue{}, nil
	}

	kind, v, err := node(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "and", "or":
		l, err := list(v, 2)
		if err != nil {
			return nil, errwrap.Wrapf(err, "in %s", kind)
		}
		a, err := obj.motive(l[0])
		if err != nil {
			return nil, errwrap.Wrapf(err, "in %s", kind)
		}
		b, err := obj.motive(l[1])
		if err != nil {
			return nil, errwrap.Wrapf(err, "in %s", kind)
		}
		if kind == "and" {
			return &ast.MotiveAnd{A: a, B: b}, nil
		}
		return &ast.MotiveOr{A: a, B: b}, nil

	case "forall":
		m, err := fields(v, "var", "body")
		if err != nil {
			return nil, errwrap.Wrapf(err, "in forall")
		}
		n, err := name(m["var"])
		if err != nil {
			return nil, errwrap.Wrapf(err, "in forall")
		}
		body, err := obj.motive(m["body"])
		if err != nil {
			return nil, errwrap.Wrapf(err, "in forall")
		}
		return &ast.MotiveForall{Name: n, Body: body}, nil

	case "eq_some":
		m, err := fields(v, "at", "var", "then")
		if err != nil {
			return nil, errwrap.Wrapf(err, "in eq_some")
		}
		n, err := name(m["var"])
		if err != nil {
			return nil, errwrap.Wrapf(err, "in eq_some")
		}
		args, err := obj.exprs([]interface{}{m["at"], m["then"]})
		if err != nil {
			return nil, errwrap.Wrapf(err, "in eq_some")
		}
		return &ast.MotiveEqSome{At: args[0], Name: n, Then: args[1]}, nil
	}

	return nil, fmt.Errorf("unknown motive: %s", kind)
}
