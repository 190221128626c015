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

// Package ast contains the structs implementing the abstract syntax tree of
// the combinator language, and of the motives that are proven about it.
package ast

import (
	"fmt"
	"strings"
)

// Node represents either an Expr or a Motive.
type Node interface {
	fmt.Stringer

	// Apply is a general purpose iterator method that operates on any AST
	// node. It runs fn on every child first, and then on the node itself.
	Apply(fn func(Node) error) error
}

// Expr represents an expression in the body of a definition.
type Expr interface {
	Node
	expr()
}

// ExprInt is a representation of an integer literal.
type ExprInt struct {
	V int64
}

func (obj *ExprInt) expr() {}

// String returns a short representation of this expression.
func (obj *ExprInt) String() string { return fmt.Sprintf("int(%d)", obj.V) }

// Apply runs fn on this node.
func (obj *ExprInt) Apply(fn func(Node) error) error { return fn(obj) }

// ExprBool is a representation of a boolean literal.
type ExprBool struct {
	V bool
}

func (obj *ExprBool) expr() {}

// String returns a short representation of this expression.
func (obj *ExprBool) String() string { return fmt.Sprintf("bool(%t)", obj.V) }

// Apply runs fn on this node.
func (obj *ExprBool) Apply(fn func(Node) error) error { return fn(obj) }

// ExprVar is a representation of a variable lookup. The name of the definition
// is also a variable, but it may only appear as the function of an ExprCall.
type ExprVar struct {
	Name string
}

func (obj *ExprVar) expr() {}

// String returns a short representation of this expression.
func (obj *ExprVar) String() string { return fmt.Sprintf("var(%s)", obj.Name) }

// Apply runs fn on this node.
func (obj *ExprVar) Apply(fn func(Node) error) error { return fn(obj) }

// ExprNone is the absent option.
type ExprNone struct{}

func (obj *ExprNone) expr() {}

// String returns a short representation of this expression.
func (obj *ExprNone) String() string { return "none" }

// Apply runs fn on this node.
func (obj *ExprNone) Apply(fn func(Node) error) error { return fn(obj) }

// ExprSome wraps a value in a present option.
type ExprSome struct {
	Expr Expr
}

func (obj *ExprSome) expr() {}

// String returns a short representation of this expression.
func (obj *ExprSome) String() string { return fmt.Sprintf("some(%s)", obj.Expr) }

// Apply runs fn on every child, and then on this node.
func (obj *ExprSome) Apply(fn func(Node) error) error {
	if err := obj.Expr.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprPair builds a pair.
type ExprPair struct {
	Fst Expr
	Snd Expr
}

func (obj *ExprPair) expr() {}

// String returns a short representation of this expression.
func (obj *ExprPair) String() string { return fmt.Sprintf("pair(%s, %s)", obj.Fst, obj.Snd) }

// Apply runs fn on every child, and then on this node.
func (obj *ExprPair) Apply(fn func(Node) error) error {
	if err := obj.Fst.Apply(fn); err != nil {
		return err
	}
	if err := obj.Snd.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprFst projects the first component of a pair.
type ExprFst struct {
	Expr Expr
}

func (obj *ExprFst) expr() {}

// String returns a short representation of this expression.
func (obj *ExprFst) String() string { return fmt.Sprintf("fst(%s)", obj.Expr) }

// Apply runs fn on every child, and then on this node.
func (obj *ExprFst) Apply(fn func(Node) error) error {
	if err := obj.Expr.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprSnd projects the second component of a pair.
type ExprSnd struct {
	Expr Expr
}

func (obj *ExprSnd) expr() {}

// String returns a short representation of this expression.
func (obj *ExprSnd) String() string { return fmt.Sprintf("snd(%s)", obj.Expr) }

// Apply runs fn on every child, and then on this node.
func (obj *ExprSnd) Apply(fn func(Node) error) error {
	if err := obj.Expr.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprIf represents an if expression which *must* have both branches.
type ExprIf struct {
	Condition  Expr
	ThenBranch Expr
	ElseBranch Expr
}

func (obj *ExprIf) expr() {}

// String returns a short representation of this expression.
func (obj *ExprIf) String() string {
	return fmt.Sprintf("if( %s ) { %s } else { %s }", obj.Condition, obj.ThenBranch, obj.ElseBranch)
}

// Apply runs fn on every child, and then on this node.
func (obj *ExprIf) Apply(fn func(Node) error) error {
	if err := obj.Condition.Apply(fn); err != nil {
		return err
	}
	if err := obj.ThenBranch.Apply(fn); err != nil {
		return err
	}
	if err := obj.ElseBranch.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprDite is the dependent if expression. The condition is an option, and the
// then branch sees its contents bound to Name. The else branch runs on none.
type ExprDite struct {
	Condition  Expr
	Name       string
	ThenBranch Expr
	ElseBranch Expr
}

func (obj *ExprDite) expr() {}

// String returns a short representation of this expression.
func (obj *ExprDite) String() string {
	return fmt.Sprintf("dite( %s = %s ) { %s } else { %s }", obj.Name, obj.Condition, obj.ThenBranch, obj.ElseBranch)
}

// Apply runs fn on every child, and then on this node.
func (obj *ExprDite) Apply(fn func(Node) error) error {
	if err := obj.Condition.Apply(fn); err != nil {
		return err
	}
	if err := obj.ThenBranch.Apply(fn); err != nil {
		return err
	}
	if err := obj.ElseBranch.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprBind sequences an option valued action with a body that sees the present
// value bound to Name.
type ExprBind struct {
	Action Expr
	Name   string
	Body   Expr
}

func (obj *ExprBind) expr() {}

// String returns a short representation of this expression.
func (obj *ExprBind) String() string {
	return fmt.Sprintf("bind( %s <- %s ) { %s }", obj.Name, obj.Action, obj.Body)
}

// Apply runs fn on every child, and then on this node.
func (obj *ExprBind) Apply(fn func(Node) error) error {
	if err := obj.Action.Apply(fn); err != nil {
		return err
	}
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprCall is the recursive call of the definition named Name.
type ExprCall struct {
	Name string
	Arg  Expr
}

func (obj *ExprCall) expr() {}

// String returns a short representation of this expression.
func (obj *ExprCall) String() string { return fmt.Sprintf("call:%s(%s)", obj.Name, obj.Arg) }

// Apply runs fn on every child, and then on this node.
func (obj *ExprCall) Apply(fn func(Node) error) error {
	if err := obj.Arg.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprOp is a primitive operator applied to its arguments.
type ExprOp struct {
	Op   string
	Args []Expr
}

func (obj *ExprOp) expr() {}

// String returns a short representation of this expression.
func (obj *ExprOp) String() string {
	args := []string{}
	for _, x := range obj.Args {
		args = append(args, x.String())
	}
	return fmt.Sprintf("%s(%s)", obj.Op, strings.Join(args, ", "))
}

// Apply runs fn on every child, and then on this node.
func (obj *ExprOp) Apply(fn func(Node) error) error {
	for _, x := range obj.Args {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Arity is the number of arguments each primitive operator takes.
var Arity = map[string]int{
	"add": 2,
	"sub": 2,
	"mul": 2,
	"div": 2,
	"mod": 2,
	"eq":  2,
	"lt":  2,
	"le":  2,
	"not": 1,
	"and": 2,
	"or":  2,
}
