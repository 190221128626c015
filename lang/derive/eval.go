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

package derive

import (
	"github.com/purpleidea/partialfix/lang/ast"
	"github.com/purpleidea/partialfix/lang/types"
)

// eval computes an expression that does not mention the recursive call.
// Errors are raised with types.Raise.
func eval(expr ast.Expr, en env) types.Value {
	switch x := expr.(type) {
	case *ast.ExprInt:
		return types.NewInt(x.V)

	case *ast.ExprBool:
		return types.NewBool(x.V)

	case *ast.ExprVar:
		v, exists := en[x.Name]
		if !exists {
			types.Raise("unbound variable: %s", x.Name)
		}
		return v

	case *ast.ExprNone:
		return types.None()

	case *ast.ExprSome:
		return types.Some(eval(x.Expr, en))

	case *ast.ExprPair:
		return types.NewPair(eval(x.Fst, en), eval(x.Snd, en))

	case *ast.ExprFst:
		return evalPair(x.Expr, en).Fst

	case *ast.ExprSnd:
		return evalPair(x.Expr, en).Snd

	case *ast.ExprIf:
		if evalBool(x.Condition, en) {
			return eval(x.ThenBranch, en)
		}
		return eval(x.ElseBranch, en)

	case *ast.ExprDite:
		v := evalOption(x.Condition, en)
		if v.IsNone() {
			return eval(x.ElseBranch, en)
		}
		return eval(x.ThenBranch, en.with(x.Name, v.V))

	case *ast.ExprBind:
		return types.OptionBind{}.Bind(eval(x.Action, en), func(a types.Value) types.Value {
			return eval(x.Body, en.with(x.Name, a))
		})

	case *ast.ExprOp:
		args := []types.Value{}
		for _, e := range x.Args {
			args = append(args, eval(e, en))
		}
		return op(x.Op, args)
	}

	types.Raise("cannot evaluate %s", expr)
	return nil
}

func evalBool(expr ast.Expr, en env) bool {
	v := eval(expr, en)
	b, ok := v.(*types.BoolValue)
	if !ok {
		types.Raise("expected a bool, got %s: %s", v.Kind(), v)
	}
	return b.V
}

func evalOption(expr ast.Expr, en env) *types.OptionValue {
	v := eval(expr, en)
	o, ok := v.(*types.OptionValue)
	if !ok {
		types.Raise("expected an option, got %s: %s", v.Kind(), v)
	}
	return o
}

func evalPair(expr ast.Expr, en env) *types.PairValue {
	v := eval(expr, en)
	p, ok := v.(*types.PairValue)
	if !ok {
		types.Raise("expected a pair, got %s: %s", v.Kind(), v)
	}
	return p
}

func ints(name string, args []types.Value) (int64, int64) {
	a, ok1 := args[0].(*types.IntValue)
	b, ok2 := args[1].(*types.IntValue)
	if !ok1 || !ok2 {
		types.Raise("%s expects two ints, got %s and %s", name, args[0].Kind(), args[1].Kind())
	}
	return a.V, b.V
}

func bools(name string, args []types.Value) []bool {
	out := []bool{}
	for _, x := range args {
		b, ok := x.(*types.BoolValue)
		if !ok {
			types.Raise("%s expects bools, got %s", name, x.Kind())
		}
		out = append(out, b.V)
	}
	return out
}

// op applies a primitive operator. The arity was checked by Derive.
func op(name string, args []types.Value) types.Value {
	if n := ast.Arity[name]; len(args) != n {
		types.Raise("%s expects %d arguments, got %d", name, n, len(args))
	}
	switch name {
	case "add":
		a, b := ints(name, args)
		return types.NewInt(a + b)
	case "sub":
		a, b := ints(name, args)
		return types.NewInt(a - b)
	case "mul":
		a, b := ints(name, args)
		return types.NewInt(a * b)
	case "div", "mod":
		a, b := ints(name, args)
		if b == 0 {
			types.Raise("%s by zero", name)
		}
		if name == "div" {
			return types.NewInt(a / b)
		}
		return types.NewInt(a % b)
	case "lt":
		a, b := ints(name, args)
		return types.NewBool(a < b)
	case "le":
		a, b := ints(name, args)
		return types.NewBool(a <= b)
	case "eq":
		return types.NewBool(types.Equal(args[0], args[1]))
	case "not":
		return types.NewBool(!bools(name, args)[0])
	case "and":
		b := bools(name, args)
		return types.NewBool(b[0] && b[1])
	case "or":
		b := bools(name, args)
		return types.NewBool(b[0] || b[1])
	}
	types.Raise("unknown operator: %s", name)
	return nil
}
