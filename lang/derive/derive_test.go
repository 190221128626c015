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

//go:build !root

package derive

import (
	"errors"
	"fmt"
	"testing"

	"github.com/purpleidea/partialfix/fix"
	"github.com/purpleidea/partialfix/lang/ast"
	"github.com/purpleidea/partialfix/lang/types"
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/util"
	"github.com/purpleidea/partialfix/util/errwrap"

	"github.com/kylelemons/godebug/pretty"
)

func v(name string) ast.Expr { return &ast.ExprVar{Name: name} }

func i(n int64) ast.Expr { return &ast.ExprInt{V: n} }

func o(op string, args ...ast.Expr) ast.Expr { return &ast.ExprOp{Op: op, Args: args} }

func domain(n int64) []int64 {
	out := []int64{}
	for k := int64(0); k < n; k++ {
		out = append(out, k)
	}
	return out
}

// find returns the first number from x up to 10 which is equal to 5.
func find() *ast.Definition {
	return &ast.Definition{
		Name:  "find",
		Param: "x",
		Body: &ast.ExprIf{
			Condition: o("lt", v("x"), i(10)),
			ThenBranch: &ast.ExprIf{
				Condition:  o("eq", v("x"), i(5)),
				ThenBranch: &ast.ExprSome{Expr: v("x")},
				ElseBranch: &ast.ExprCall{Name: "find", Arg: o("add", v("x"), i(1))},
			},
			ElseBranch: &ast.ExprNone{},
		},
		Motive: &ast.MotiveForall{
			Name: "n",
			Body: &ast.MotiveEqSome{
				At:   v("n"),
				Name: "y",
				Then: o("eq", v("y"), i(5)),
			},
		},
		Domain: domain(12),
	}
}

func fixpoint(t *testing.T, def *ast.Definition) *fix.Fixpoint[R] {
	d := &Deriver{
		Definition: def,
		Logf:       t.Logf,
	}
	f, err := d.Func()
	if err != nil {
		t.Errorf("derive failed: %s", errwrap.String(err))
		return nil
	}
	values := []types.Value{}
	for _, n := range def.Domain {
		values = append(values, types.NewInt(n))
	}
	return &fix.Fixpoint[R]{
		Order: &order.Pi[types.Value, types.Value]{
			Cod:    types.Order{},
			Domain: values,
		},
		Func:          f,
		MaxIterations: 32,
		Logf:          t.Logf,
	}
}

func TestDerive0(t *testing.T) {
	d := &Deriver{
		Definition: find(),
		Logf:       t.Logf,
	}
	tree, err := d.Derive()
	if err != nil {
		t.Errorf("derive failed: %s", errwrap.String(err))
		return
	}
	expected := []string{
		"monotone_of_monotone_apply",
		"monotone_ite",
		"monotone_ite",
		"monotone_const",
		"monotone_apply",
		"monotone_const",
	}
	if diff := pretty.Compare(tree.Rules(), expected); diff != "" {
		t.Errorf("unexpected rules: (-got +want)\n%s", diff)
	}

	tree, err = d.DeriveMotive()
	if err != nil {
		t.Errorf("derive motive failed: %s", errwrap.String(err))
		return
	}
	expected = []string{
		"admissible_pi",
		"admissible_apply",
		"admissible_flatOrder",
		"Option.admissible_eq_some",
	}
	if diff := pretty.Compare(tree.Rules(), expected); diff != "" {
		t.Errorf("unexpected motive rules: (-got +want)\n%s", diff)
	}
}

func TestFind0(t *testing.T) {
	fp := fixpoint(t, find())
	if fp == nil {
		return
	}
	if err := fp.Validate(); err != nil {
		t.Errorf("invalid fixpoint: %+v", err)
		return
	}
	f := fp.Fix()
	testCases := map[int64]types.Value{
		0:  types.Some(types.NewInt(5)),
		5:  types.Some(types.NewInt(5)),
		6:  types.None(),
		7:  types.None(),
		11: types.None(),
	}
	for n, exp := range testCases {
		if r := f(types.NewInt(n)); !types.Equal(r, exp) {
			t.Errorf("find(%d) = %s, expected %s", n, r, exp)
		}
	}
	if err := fp.Eq(); err != nil {
		t.Errorf("not a fixpoint: %+v", err)
	}

	d := &Deriver{
		Definition: find(),
		Logf:       t.Logf,
	}
	motive, err := d.Motive()
	if err != nil {
		t.Errorf("motive failed: %s", errwrap.String(err))
		return
	}
	if err := fp.Induct(motive, nil); err != nil {
		t.Errorf("induction failed: %+v", err)
	}
}

func TestFindFalseMotive0(t *testing.T) {
	def := find()
	def.Motive = &ast.MotiveEqSome{
		At:   i(0),
		Name: "y",
		Then: o("eq", v("y"), i(4)),
	}
	fp := fixpoint(t, def)
	if fp == nil {
		return
	}
	d := &Deriver{
		Definition: def,
		Logf:       t.Logf,
	}
	motive, err := d.Motive()
	if err != nil {
		t.Errorf("motive failed: %s", errwrap.String(err))
		return
	}
	err = fp.Induct(motive, nil)
	if err == nil {
		t.Errorf("expected the induction to fail")
		return
	}
	if errwrap.Cause(err) != fix.ErrInductionFailed {
		t.Errorf("unexpected error: %+v", err)
	}
}

// The recursion goes through pair and fst, and the base case through bind.
func TestPairBind0(t *testing.T) {
	def := &ast.Definition{
		Name:  "f",
		Param: "x",
		Body: &ast.ExprIf{
			Condition: o("lt", v("x"), i(3)),
			ThenBranch: &ast.ExprPair{
				Fst: &ast.ExprSome{Expr: v("x")},
				Snd: &ast.ExprFst{Expr: &ast.ExprCall{Name: "f", Arg: o("add", v("x"), i(1))}},
			},
			ElseBranch: &ast.ExprBind{
				Action: &ast.ExprSome{Expr: v("x")},
				Name:   "y",
				Body:   &ast.ExprPair{Fst: &ast.ExprSome{Expr: v("y")}, Snd: &ast.ExprNone{}},
			},
		},
		Domain: domain(5),
	}
	fp := fixpoint(t, def)
	if fp == nil {
		return
	}
	f := fp.Fix()
	exp := types.NewPair(types.Some(types.NewInt(1)), types.Some(types.NewInt(2)))
	if r := f(types.NewInt(1)); !types.Equal(r, exp) {
		t.Errorf("f(1) = %s, expected %s", r, exp)
	}
	if err := fp.Eq(); err != nil {
		t.Errorf("not a fixpoint: %+v", err)
	}
}

func TestBindRecursive0(t *testing.T) {
	// sum(x) = if x == 0 then some 0 else bind(y <- sum(x-1)) some(x+y)
	def := &ast.Definition{
		Name:  "sum",
		Param: "x",
		Body: &ast.ExprIf{
			Condition:  o("eq", v("x"), i(0)),
			ThenBranch: &ast.ExprSome{Expr: i(0)},
			ElseBranch: &ast.ExprBind{
				Action: &ast.ExprCall{Name: "sum", Arg: o("sub", v("x"), i(1))},
				Name:   "y",
				Body:   &ast.ExprSome{Expr: o("add", v("x"), v("y"))},
			},
		},
		Domain: domain(6),
	}
	fp := fixpoint(t, def)
	if fp == nil {
		return
	}
	f := fp.Fix()
	if r := f(types.NewInt(4)); !types.Equal(r, types.Some(types.NewInt(10))) {
		t.Errorf("sum(4) = %s", r)
	}
	// negative numbers never terminate, so they stay at bottom
	if r := f(types.NewInt(-1)); !types.Equal(r, types.None()) {
		t.Errorf("sum(-1) = %s", r)
	}
}

func TestReject0(t *testing.T) {
	type test struct { // an individual test
		name string
		body ast.Expr
		kind string
	}
	testCases := []test{}

	call := &ast.ExprCall{Name: "f", Arg: v("x")}

	testCases = append(testCases, test{
		name: "recursive call in condition",
		body: &ast.ExprIf{
			Condition:  o("eq", call, &ast.ExprNone{}),
			ThenBranch: i(1),
			ElseBranch: i(2),
		},
		kind: "if",
	})
	testCases = append(testCases, test{
		name: "recursive call in dite condition",
		body: &ast.ExprDite{
			Condition:  call,
			Name:       "y",
			ThenBranch: v("y"),
			ElseBranch: &ast.ExprNone{},
		},
		kind: "dite",
	})
	testCases = append(testCases, test{
		name: "nested call",
		body: &ast.ExprCall{Name: "f", Arg: call},
		kind: "call",
	})
	testCases = append(testCases, test{
		name: "bare recursion variable",
		body: &ast.ExprPair{Fst: v("f"), Snd: i(0)},
		kind: "var",
	})
	testCases = append(testCases, test{
		name: "some of a call",
		body: &ast.ExprSome{Expr: call},
		kind: "some",
	})
	testCases = append(testCases, test{
		name: "op of a call",
		body: o("add", call, i(1)),
		kind: "add",
	})
	testCases = append(testCases, test{
		name: "unknown function",
		body: &ast.ExprCall{Name: "g", Arg: v("x")},
		kind: "call",
	})
	testCases = append(testCases, test{
		name: "unbound variable",
		body: &ast.ExprSome{Expr: v("z")},
		kind: "var",
	})
	testCases = append(testCases, test{
		name: "unknown operator",
		body: o("pow", v("x"), i(2)),
		kind: "pow",
	})
	testCases = append(testCases, test{
		name: "wrong arity",
		body: o("not", v("x"), v("x")),
		kind: "not",
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if tc.name == "" {
			t.Errorf("test #%d: not named", index)
			continue
		}
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		testName := fmt.Sprintf("test #%d (%s)", index, tc.name)
		t.Run(testName, func(t *testing.T) {
			d := &Deriver{
				Definition: &ast.Definition{
					Name:  "f",
					Param: "x",
					Body:  tc.body,
				},
				Logf: t.Logf,
			}
			_, err := d.Derive()
			if err == nil {
				t.Errorf("test #%d: expected a rejection", index)
				return
			}
			if errwrap.Cause(err) != ErrUnsupported {
				t.Errorf("test #%d: unexpected error: %+v", index, err)
				return
			}
			var rej *RejectError
			if !errors.As(err, &rej) {
				t.Errorf("test #%d: not a reject error: %+v", index, err)
				return
			}
			if rej.Combinator != tc.kind {
				t.Errorf("test #%d: rejected %s, expected %s", index, rej.Combinator, tc.kind)
			}
			if _, err := d.Func(); err == nil {
				t.Errorf("test #%d: expected Func to reject too", index)
			}
		})
	}
}

func TestRejectMotive0(t *testing.T) {
	def := find()
	def.Motive = &ast.MotiveEqSome{
		At:   &ast.ExprCall{Name: "find", Arg: i(0)},
		Name: "y",
		Then: &ast.ExprBool{V: true},
	}
	d := &Deriver{
		Definition: def,
		Logf:       t.Logf,
	}
	if _, err := d.Motive(); errwrap.Cause(err) != ErrUnsupported {
		t.Errorf("expected a rejection, got: %v", err)
	}

	def.Motive = &ast.MotiveEqSome{
		At:   v("n"), // not bound by a forall
		Name: "y",
		Then: &ast.ExprBool{V: true},
	}
	if _, err := d.DeriveMotive(); errwrap.Cause(err) != ErrUnsupported {
		t.Errorf("expected a rejection, got: %v", err)
	}
}

func TestEvalError0(t *testing.T) {
	def := find()
	def.Body = &ast.ExprIf{
		Condition:  v("x"), // not a bool
		ThenBranch: &ast.ExprCall{Name: "find", Arg: v("x")},
		ElseBranch: &ast.ExprNone{},
	}
	fp := fixpoint(t, def)
	if fp == nil {
		return
	}
	var err error
	func() {
		defer types.Catch(&err)
		fp.Fix()(types.NewInt(0))
	}()
	if err == nil {
		t.Errorf("expected an evaluation error")
	}
}

func TestValidate0(t *testing.T) {
	d := &Deriver{
		Definition: &ast.Definition{Name: "f", Param: "f", Body: i(0)},
		Logf:       t.Logf,
	}
	if _, err := d.Derive(); err == nil {
		t.Errorf("expected the shadowing parameter to fail validation")
	}
	d = &Deriver{
		Definition: &ast.Definition{Name: "f", Param: "x", Body: i(0)},
	}
	if _, err := d.Derive(); err == nil {
		t.Errorf("expected a missing Logf to fail validation")
	}
}
