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

// Package lang is the front end of the combinator language. It loads a
// definition, derives its certificates, and evaluates and proves things about
// its least fixpoint.
package lang

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/purpleidea/partialfix/fix"
	"github.com/purpleidea/partialfix/lang/ast"
	"github.com/purpleidea/partialfix/lang/derive"
	"github.com/purpleidea/partialfix/lang/parser"
	"github.com/purpleidea/partialfix/lang/types"
	"github.com/purpleidea/partialfix/mono"
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/proof"
	"github.com/purpleidea/partialfix/util"
	"github.com/purpleidea/partialfix/util/errwrap"

	"github.com/sanity-io/litter"
	"github.com/spf13/afero"
)

const (
	// MonotoneSamples is the number of iterates that Check compares the
	// functional on.
	MonotoneSamples = 8
)

// Lang is the main language object.
type Lang struct {
	Fs afero.Fs // where the input file exists

	// Input is the path of a definition file on Fs. If no such file
	// exists, then it is parsed as the definition itself.
	Input string

	// MaxIterations overrides the value in the definition when it is
	// positive.
	MaxIterations int

	// MaxDepth overrides the value in the definition when it is positive.
	MaxDepth int

	Debug bool
	Logf  func(format string, v ...interface{})

	def      *ast.Definition
	deriver  *derive.Deriver
	tree     *proof.Tree
	fixpoint *fix.Fixpoint[derive.R]
	demand   *fix.Demand[types.Value, types.Value]
}

// Init loads the definition and derives its certificates. It errors if the
// definition can't be parsed or if it is rejected.
func (obj *Lang) Init() error {
	if obj.Fs == nil {
		return fmt.Errorf("the Fs is missing")
	}
	if obj.Input == "" {
		return fmt.Errorf("the Input is empty")
	}
	if obj.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}

	if obj.Debug {
		obj.Logf("input: %s", obj.Input)
	}
	b, err := obj.read()
	if err != nil {
		return err
	}

	obj.Logf("parsing...")
	def, err := parser.Parse(bytes.NewReader(b))
	if err != nil {
		return errwrap.Wrapf(err, "could not generate AST")
	}
	if obj.Debug {
		lo := &litter.Options{
			StripPackageNames: true,
			HidePrivateFields: true,
			HideZeroValues:    true,
		}
		obj.Logf("behold, the AST: %s", lo.Sdump(def))
	}
	obj.def = def

	obj.Logf("deriving...")
	obj.deriver = &derive.Deriver{
		Definition: def,
		Debug:      obj.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf("derive: "+format, v...)
		},
	}
	tree, err := obj.deriver.Derive()
	if err != nil {
		return err
	}
	obj.tree = tree
	if obj.Debug {
		obj.Logf("derivation:\n%s", tree)
	}
	f, err := obj.deriver.Func()
	if err != nil {
		return err
	}

	max := def.MaxIterations
	if obj.MaxIterations > 0 {
		max = obj.MaxIterations
	}
	obj.fixpoint = &fix.Fixpoint[derive.R]{
		Order: &order.Pi[types.Value, types.Value]{
			Cod:    types.Order{},
			Domain: obj.domain(),
		},
		Func:          f,
		MaxIterations: max,
		Debug:         obj.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf("fix: "+format, v...)
		},
	}
	if err := obj.fixpoint.Validate(); err != nil {
		return err
	}

	depth := def.MaxDepth
	if obj.MaxDepth > 0 {
		depth = obj.MaxDepth
	}
	obj.demand = &fix.Demand[types.Value, types.Value]{
		Cod:           types.Order{},
		Func:          f,
		Key:           func(v types.Value) string { return v.String() },
		MaxDepth:      depth,
		MaxIterations: max,
		Debug:         obj.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf("demand: "+format, v...)
		},
	}
	return obj.demand.Validate()
}

// read returns the contents of the input file, or the input itself.
func (obj *Lang) read() ([]byte, error) {
	fi, err := obj.Fs.Stat(obj.Input)
	if os.IsNotExist(err) {
		if obj.Debug {
			obj.Logf("no such file, parsing the input as code")
		}
		return []byte(obj.Input), nil
	}
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't stat input")
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("input is a directory: %s", obj.Input)
	}
	if obj.Debug {
		tree, err := util.FsTree(obj.Fs, path.Dir(obj.Input))
		if err != nil {
			return nil, err
		}
		obj.Logf("input tree:\n%s", tree)
	}
	b, err := afero.ReadFile(obj.Fs, obj.Input)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read input")
	}
	return b, nil
}

// Definition returns the parsed definition.
func (obj *Lang) Definition() *ast.Definition {
	return obj.def
}

// Derivation returns the monotonicity derivation of the body.
func (obj *Lang) Derivation() *proof.Tree {
	return obj.tree
}

// Call evaluates the least fixpoint at an argument. A result of none means
// that the function has no value there. If the search ran past the nesting
// limit, then the error wraps fix.ErrExhausted, and the result is only a lower
// approximation.
func (obj *Lang) Call(arg int64) (result types.Value, reterr error) {
	defer types.Catch(&reterr)
	result, err := obj.demand.At(types.NewInt(arg))
	if err != nil {
		return result, errwrap.Wrapf(err, "%s(%d)", obj.def.Name, arg)
	}
	if obj.Debug {
		obj.Logf("%s(%d) = %s", obj.def.Name, arg, result)
	}
	return result, nil
}

// Check verifies the unfolding equation of the fixpoint at every point of the
// domain, and samples the monotonicity of the functional on the first
// iterates, which form a chain.
func (obj *Lang) Check() (reterr error) {
	defer types.Catch(&reterr)

	if err := obj.demand.Eq(obj.domain()); err != nil {
		return errwrap.Wrapf(err, "unfolding %s failed", obj.def.Name)
	}

	samples := []derive.R{}
	for _, it := range obj.fixpoint.Iterates() {
		if len(samples) == MonotoneSamples {
			break
		}
		samples = append(samples, it.Value)
	}
	o := obj.fixpoint.Order
	if err := mono.Check[derive.R, derive.R](o, o, obj.fixpoint.Func.Fn(), samples); err != nil {
		return errwrap.Wrapf(err, "functional of %s is not monotone", obj.def.Name)
	}
	return nil
}

// Induct proves the motive of the definition by fixpoint induction.
func (obj *Lang) Induct() (reterr error) {
	defer types.Catch(&reterr)

	tree, err := obj.deriver.DeriveMotive()
	if err != nil {
		return err
	}
	if obj.Debug {
		obj.Logf("motive derivation:\n%s", tree)
	}
	motive, err := obj.deriver.Motive()
	if err != nil {
		return err
	}
	if err := obj.fixpoint.Induct(motive, nil); err != nil {
		return errwrap.Wrapf(err, "could not prove the motive of %s", obj.def.Name)
	}
	// the iterates may stop short of the fixpoint, so look at it directly
	if !motive.Holds(obj.demand.Fn()) {
		return errwrap.Wrapf(fix.ErrInductionFailed, "motive of %s fails at the fixpoint", obj.def.Name)
	}
	obj.Logf("proved the motive of %s", obj.def.Name)
	return nil
}

// domain returns the sample arguments as values.
func (obj *Lang) domain() []types.Value {
	domain := []types.Value{}
	for _, n := range obj.def.Domain {
		domain = append(domain, types.NewInt(n))
	}
	return domain
}
