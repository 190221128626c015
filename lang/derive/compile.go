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
	"github.com/purpleidea/partialfix/admissible"
	"github.com/purpleidea/partialfix/lang/ast"
	"github.com/purpleidea/partialfix/lang/types"
	"github.com/purpleidea/partialfix/mono"
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/util/errwrap"
)

// R is the type of the function being defined. It is ordered pointwise by
// types.Order.
type R = func(types.Value) types.Value

// env holds the values of the variables in scope.
type env map[string]types.Value

// with returns a copy of the env with name bound to v.
func (obj env) with(name string, v types.Value) env {
	m := make(env, len(obj)+1)
	for k, x := range obj {
		m[k] = x
	}
	m[name] = v
	return m
}

// Func returns the certified monotone functional whose least fixpoint is the
// definition. It errors if Derive does.
func (obj *Deriver) Func() (*mono.Func[R, R], error) {
	if _, err := obj.Derive(); err != nil {
		return nil, err
	}
	f := mono.Pi[R, types.Value, types.Value](func(x types.Value) *mono.Func[R, types.Value] {
		return obj.compile(obj.Definition.Body, env{obj.Definition.Param: x})
	})
	return f, nil
}

// compile builds the certificate of the body at one argument. Conditions are
// decided here, so only the branches that are taken get built. Derive has
// already checked every branch.
func (obj *Deriver) compile(expr ast.Expr, en env) *mono.Func[R, types.Value] {
	if !obj.recursive(expr) {
		return mono.Const[R](eval(expr, en))
	}

	switch x := expr.(type) {
	case *ast.ExprIf:
		return mono.Dite(evalBool(x.Condition, en), func() *mono.Func[R, types.Value] {
			return obj.compile(x.ThenBranch, en)
		}, func() *mono.Func[R, types.Value] {
			return obj.compile(x.ElseBranch, en)
		})

	case *ast.ExprDite:
		v := evalOption(x.Condition, en)
		return mono.Dite(!v.IsNone(), func() *mono.Func[R, types.Value] {
			return obj.compile(x.ThenBranch, en.with(x.Name, v.V))
		}, func() *mono.Func[R, types.Value] {
			return obj.compile(x.ElseBranch, en)
		})

	case *ast.ExprPair:
		f := mono.Pair(obj.compile(x.Fst, en), obj.compile(x.Snd, en))
		return mono.Comp(pack, f)

	case *ast.ExprFst:
		return mono.Fst(mono.Comp(unpack, obj.compile(x.Expr, en)))

	case *ast.ExprSnd:
		return mono.Snd(mono.Comp(unpack, obj.compile(x.Expr, en)))

	case *ast.ExprBind:
		k := mono.Pi[R, types.Value, types.Value](func(a types.Value) *mono.Func[R, types.Value] {
			return obj.compile(x.Body, en.with(x.Name, a))
		})
		return mono.Bind[R, types.Value, types.Value, types.Value](types.OptionBind{}, obj.compile(x.Action, en), k)

	case *ast.ExprCall:
		return mono.Apply[types.Value, types.Value](eval(x.Arg, en))
	}

	types.Raise("cannot compile %s", expr) // Derive rejects everything else
	return nil
}

// pack embeds the product order into types.Order, which orders pairs
// componentwise.
var pack = mono.Assume(func(p order.Pair[types.Value, types.Value]) types.Value {
	return types.NewPair(p.Fst, p.Snd)
}, "pair values are ordered componentwise")

// unpack is the inverse of pack. None is the bottom of types.Order, so it is
// sent to the bottom pair.
var unpack = mono.Assume(func(v types.Value) order.Pair[types.Value, types.Value] {
	if p, ok := v.(*types.PairValue); ok {
		return order.MakePair(p.Fst, p.Snd)
	}
	if o, ok := v.(*types.OptionValue); ok && o.IsNone() {
		return order.MakePair[types.Value, types.Value](types.None(), types.None())
	}
	types.Raise("cannot project a value of kind %s", v.Kind())
	return order.Pair[types.Value, types.Value]{}
}, "pair values are ordered componentwise")

// Motive returns the admissible predicate that the motive of the definition
// denotes. A definition without a motive gets the trivial predicate.
func (obj *Deriver) Motive() (pred *admissible.Pred[R], reterr error) {
	if _, err := obj.DeriveMotive(); err != nil {
		return nil, err
	}
	if obj.Definition.Motive == nil {
		return admissible.True[R](), nil
	}
	defer types.Catch(&reterr)
	return obj.motive(obj.Definition.Motive, env{})
}

func (obj *Deriver) motive(motive ast.Motive, en env) (*admissible.Pred[R], error) {
	switch x := motive.(type) {
	case *ast.MotiveTrue:
		return admissible.True[R](), nil

	case *ast.MotiveAnd:
		p, err := obj.motive(x.A, en)
		if err != nil {
			return nil, err
		}
		q, err := obj.motive(x.B, en)
		if err != nil {
			return nil, err
		}
		return admissible.And(p, q), nil

	case *ast.MotiveOr:
		p, err := obj.motive(x.A, en)
		if err != nil {
			return nil, err
		}
		q, err := obj.motive(x.B, en)
		if err != nil {
			return nil, err
		}
		return admissible.Or(p, q), nil

	case *ast.MotiveForall:
		preds := []*admissible.Pred[R]{}
		indexes := []int{}
		for i, n := range obj.Definition.Domain {
			p, err := obj.motive(x.Body, en.with(x.Name, types.NewInt(n)))
			if err != nil {
				return nil, err
			}
			preds = append(preds, p)
			indexes = append(indexes, i)
		}
		return admissible.Forall(indexes, func(i int) *admissible.Pred[R] {
			return preds[i]
		}), nil

	case *ast.MotiveEqSome:
		at := eval(x.At, en)
		p, err := admissible.Flat[types.Value](types.OptionOrder, func(v types.Value) bool {
			o, ok := v.(*types.OptionValue)
			if !ok || o.IsNone() {
				return true
			}
			return evalBool(x.Then, en.with(x.Name, o.V))
		})
		if err != nil {
			return nil, errwrap.Wrapf(err, "motive %s", x)
		}
		return admissible.Apply[types.Value, types.Value](at, p), nil
	}

	return nil, reject(motive, "unknown motive")
}
