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

// Package derive decides, by looking at the shape of a definition, whether its
// body is monotone in the recursive call and whether its motive is admissible.
// It mirrors what a proof assistant's tactic would do: it dispatches on each
// node of the syntax tree to the matching closure rule, and it rejects any
// construction that no rule covers, naming the offending combinator.
package derive

import (
	"fmt"

	"github.com/purpleidea/partialfix/lang/ast"
	"github.com/purpleidea/partialfix/proof"
	"github.com/purpleidea/partialfix/util"
	"github.com/purpleidea/partialfix/util/errwrap"
)

const (
	// ErrUnsupported is the cause of every rejected construction.
	ErrUnsupported = util.Error("unsupported construction")
)

// RejectError is returned when a definition uses a construction that has no
// closure rule.
type RejectError struct {
	// Combinator is the kind of node that was rejected, eg: if or add.
	Combinator string

	// Reason says what is wrong with it.
	Reason string

	// Node is the offending part of the definition.
	Node ast.Node
}

// Error fulfills the error interface of this type.
func (obj *RejectError) Error() string {
	return fmt.Sprintf("%s: %s: %s in: %s", ErrUnsupported, obj.Combinator, obj.Reason, obj.Node)
}

// Cause returns ErrUnsupported so that errwrap.Cause finds it.
func (obj *RejectError) Cause() error {
	return ErrUnsupported
}

// Unwrap returns ErrUnsupported so that errors.Is finds it.
func (obj *RejectError) Unwrap() error {
	return ErrUnsupported
}

func reject(node ast.Node, reason string) error {
	return &RejectError{
		Combinator: Kind(node),
		Reason:     reason,
		Node:       node,
	}
}

// Kind returns the name of the combinator a node represents.
func Kind(node ast.Node) string {
	switch x := node.(type) {
	case *ast.ExprInt:
		return "int"
	case *ast.ExprBool:
		return "bool"
	case *ast.ExprVar:
		return "var"
	case *ast.ExprNone:
		return "none"
	case *ast.ExprSome:
		return "some"
	case *ast.ExprPair:
		return "pair"
	case *ast.ExprFst:
		return "fst"
	case *ast.ExprSnd:
		return "snd"
	case *ast.ExprIf:
		return "if"
	case *ast.ExprDite:
		return "dite"
	case *ast.ExprBind:
		return "bind"
	case *ast.ExprCall:
		return "call"
	case *ast.ExprOp:
		return x.Op
	case *ast.MotiveTrue:
		return "true"
	case *ast.MotiveAnd:
		return "and"
	case *ast.MotiveOr:
		return "or"
	case *ast.MotiveForall:
		return "forall"
	case *ast.MotiveEqSome:
		return "eq_some"
	}
	return fmt.Sprintf("%T", node)
}

// Deriver derives the certificates of a single definition.
type Deriver struct {
	Definition *ast.Definition

	Debug bool
	Logf  func(format string, v ...interface{})
}

// Validate returns an error if the struct is not populated correctly.
func (obj *Deriver) Validate() error {
	if obj.Definition == nil {
		return fmt.Errorf("the Definition is nil")
	}
	if obj.Definition.Name == "" {
		return fmt.Errorf("the definition has no name")
	}
	if obj.Definition.Param == "" {
		return fmt.Errorf("the definition has no parameter")
	}
	if obj.Definition.Param == obj.Definition.Name {
		return fmt.Errorf("the parameter shadows the definition name: %s", obj.Definition.Name)
	}
	if obj.Definition.Body == nil {
		return fmt.Errorf("the definition has no body")
	}
	if obj.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}
	return nil
}

// Derive returns the derivation of the monotonicity of the body in the
// recursive call, or an error saying why there is none.
func (obj *Deriver) Derive() (*proof.Tree, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}
	scope := map[string]struct{}{
		obj.Definition.Param: {},
	}
	tree, err := obj.derive(obj.Definition.Body, scope)
	if err != nil {
		return nil, errwrap.Wrapf(err, "body of %s is not monotone", obj.Definition.Name)
	}
	if obj.Debug {
		obj.Logf("derived %s with %d rules", obj.Definition.Name, tree.Size())
	}
	return proof.New("monotone_of_monotone_apply", tree).Annotate("%s", obj.Definition.Param), nil
}

func (obj *Deriver) derive(expr ast.Expr, scope map[string]struct{}) (*proof.Tree, error) {
	if !obj.recursive(expr) {
		if err := bound(expr, scope); err != nil {
			return nil, err
		}
		return proof.New("monotone_const"), nil
	}

	switch x := expr.(type) {
	case *ast.ExprVar: // the only var that is recursive is the name itself
		return nil, reject(x, "the recursive function may only be called")

	case *ast.ExprIf:
		if obj.recursive(x.Condition) {
			return nil, reject(x, "the condition depends on the recursive call")
		}
		if err := bound(x.Condition, scope); err != nil {
			return nil, err
		}
		t1, err := obj.derive(x.ThenBranch, scope)
		if err != nil {
			return nil, err
		}
		t2, err := obj.derive(x.ElseBranch, scope)
		if err != nil {
			return nil, err
		}
		return proof.New("monotone_ite", t1, t2), nil

	case *ast.ExprDite:
		if obj.recursive(x.Condition) {
			return nil, reject(x, "the condition depends on the recursive call")
		}
		if err := bound(x.Condition, scope); err != nil {
			return nil, err
		}
		t1, err := obj.derive(x.ThenBranch, extend(scope, x.Name))
		if err != nil {
			return nil, err
		}
		t2, err := obj.derive(x.ElseBranch, scope)
		if err != nil {
			return nil, err
		}
		return proof.New("monotone_dite", t1, t2).Annotate("%s", x.Name), nil

	case *ast.ExprPair:
		t1, err := obj.derive(x.Fst, scope)
		if err != nil {
			return nil, err
		}
		t2, err := obj.derive(x.Snd, scope)
		if err != nil {
			return nil, err
		}
		return proof.New("monotone_prod", t1, t2), nil

	case *ast.ExprFst:
		t, err := obj.derive(x.Expr, scope)
		if err != nil {
			return nil, err
		}
		return proof.New("monotone_fst", t), nil

	case *ast.ExprSnd:
		t, err := obj.derive(x.Expr, scope)
		if err != nil {
			return nil, err
		}
		return proof.New("monotone_snd", t), nil

	case *ast.ExprBind:
		t1, err := obj.derive(x.Action, scope)
		if err != nil {
			return nil, err
		}
		t2, err := obj.derive(x.Body, extend(scope, x.Name))
		if err != nil {
			return nil, err
		}
		t2 = proof.New("monotone_of_monotone_apply", t2).Annotate("%s", x.Name)
		return proof.New("monotone_bind", t1, t2), nil

	case *ast.ExprCall:
		if x.Name != obj.Definition.Name {
			return nil, reject(x, fmt.Sprintf("unknown function: %s", x.Name))
		}
		if obj.recursive(x.Arg) {
			return nil, reject(x, "nested recursive call")
		}
		if err := bound(x.Arg, scope); err != nil {
			return nil, err
		}
		return proof.New("monotone_apply").Annotate("%s", x.Arg), nil

	case *ast.ExprSome, *ast.ExprOp:
		return nil, reject(x, "applied to the result of a recursive call")
	}

	return nil, reject(expr, "unknown expression")
}

// recursive returns true if the expression mentions the function being
// defined.
func (obj *Deriver) recursive(expr ast.Expr) bool {
	found := false
	expr.Apply(func(node ast.Node) error {
		switch x := node.(type) {
		case *ast.ExprCall:
			found = true
		case *ast.ExprVar:
			if x.Name == obj.Definition.Name {
				found = true
			}
		}
		return nil
	})
	return found
}

// DeriveMotive returns the derivation of the admissibility of the motive. A
// definition without a motive has the trivial one.
func (obj *Deriver) DeriveMotive() (*proof.Tree, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}
	if obj.Definition.Motive == nil {
		return proof.New("admissible_const_true"), nil
	}
	tree, err := obj.deriveMotive(obj.Definition.Motive, map[string]struct{}{})
	if err != nil {
		return nil, errwrap.Wrapf(err, "motive of %s is not admissible", obj.Definition.Name)
	}
	return tree, nil
}

func (obj *Deriver) deriveMotive(motive ast.Motive, scope map[string]struct{}) (*proof.Tree, error) {
	switch x := motive.(type) {
	case *ast.MotiveTrue:
		return proof.New("admissible_const_true"), nil

	case *ast.MotiveAnd:
		t1, err := obj.deriveMotive(x.A, scope)
		if err != nil {
			return nil, err
		}
		t2, err := obj.deriveMotive(x.B, scope)
		if err != nil {
			return nil, err
		}
		return proof.New("admissible_and", t1, t2), nil

	case *ast.MotiveOr:
		t1, err := obj.deriveMotive(x.A, scope)
		if err != nil {
			return nil, err
		}
		t2, err := obj.deriveMotive(x.B, scope)
		if err != nil {
			return nil, err
		}
		return proof.New("admissible_or", t1, t2), nil

	case *ast.MotiveForall:
		if len(obj.Definition.Domain) == 0 {
			return nil, reject(x, "the definition has an empty domain")
		}
		t, err := obj.deriveMotive(x.Body, extend(scope, x.Name))
		if err != nil {
			return nil, err
		}
		return proof.New("admissible_pi", t).Annotate("%s", x.Name), nil

	case *ast.MotiveEqSome:
		if obj.recursive(x.At) || obj.recursive(x.Then) {
			return nil, reject(x, "a motive may only observe the function through eq_some")
		}
		if err := bound(x.At, scope); err != nil {
			return nil, err
		}
		if err := bound(x.Then, extend(scope, x.Name)); err != nil {
			return nil, err
		}
		t := proof.New("admissible_flatOrder", proof.New("Option.admissible_eq_some").Annotate("%s", x.Name))
		return proof.New("admissible_apply", t).Annotate("%s", x.At), nil
	}

	return nil, reject(motive, "unknown motive")
}

// bound returns an error if the expression uses a variable that is not in
// scope.
func bound(expr ast.Expr, scope map[string]struct{}) error {
	switch x := expr.(type) {
	case *ast.ExprInt, *ast.ExprBool, *ast.ExprNone:
		return nil

	case *ast.ExprVar:
		if _, exists := scope[x.Name]; !exists {
			return reject(x, fmt.Sprintf("unbound variable: %s", x.Name))
		}
		return nil

	case *ast.ExprSome:
		return bound(x.Expr, scope)

	case *ast.ExprFst:
		return bound(x.Expr, scope)

	case *ast.ExprSnd:
		return bound(x.Expr, scope)

	case *ast.ExprPair:
		if err := bound(x.Fst, scope); err != nil {
			return err
		}
		return bound(x.Snd, scope)

	case *ast.ExprIf:
		for _, e := range []ast.Expr{x.Condition, x.ThenBranch, x.ElseBranch} {
			if err := bound(e, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.ExprDite:
		if err := bound(x.Condition, scope); err != nil {
			return err
		}
		if err := bound(x.ThenBranch, extend(scope, x.Name)); err != nil {
			return err
		}
		return bound(x.ElseBranch, scope)

	case *ast.ExprBind:
		if err := bound(x.Action, scope); err != nil {
			return err
		}
		return bound(x.Body, extend(scope, x.Name))

	case *ast.ExprCall:
		return bound(x.Arg, scope)

	case *ast.ExprOp:
		n, exists := ast.Arity[x.Op]
		if !exists {
			return reject(x, "unknown operator")
		}
		if len(x.Args) != n {
			return reject(x, fmt.Sprintf("expected %d arguments, got %d", n, len(x.Args)))
		}
		for _, e := range x.Args {
			if err := bound(e, scope); err != nil {
				return err
			}
		}
		return nil
	}

	return reject(expr, "unknown expression")
}

// extend returns a copy of the scope with name added.
func extend(scope map[string]struct{}, name string) map[string]struct{} {
	m := make(map[string]struct{}, len(scope)+1)
	for k := range scope {
		m[k] = struct{}{}
	}
	m[name] = struct{}{}
	return m
}
