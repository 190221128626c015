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

package lang

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"testing"

	"github.com/purpleidea/partialfix/fix"
	"github.com/purpleidea/partialfix/lang/derive"
	"github.com/purpleidea/partialfix/lang/types"
	"github.com/purpleidea/partialfix/util"
	"github.com/purpleidea/partialfix/util/errwrap"

	"github.com/spf13/afero"
)

const findCode = `
	name: find
	param: x
	domain: [0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11]
	body:
	  if:
	    cond: {lt: [x, 10]}
	    then:
	      if:
	        cond: {eq: [x, 5]}
	        then: {some: x}
	        else: {call: {add: [x, 1]}}
	    else: none
	motive:
	  forall:
	    var: k
	    body:
	      eqSome:
	        at: k
	        var: r
	        then: {eq: [r, 5]}
`

func runLang(t *testing.T, code string) (*Lang, error) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/main.yaml", []byte(util.Code(code)), 0644); err != nil {
		return nil, err
	}
	obj := &Lang{
		Fs:    fs,
		Input: "/main.yaml",
		Debug: testing.Verbose(),
		Logf: func(format string, v ...interface{}) {
			t.Logf("lang: "+format, v...)
		},
	}
	if err := obj.Init(); err != nil {
		return nil, errwrap.Wrapf(err, "init failed")
	}
	return obj, nil
}

func TestFind0(t *testing.T) {
	obj, err := runLang(t, findCode)
	if err != nil {
		t.Errorf("runLang failed: %+v", err)
		return
	}
	if s := obj.Derivation().Rules()[0]; s != "monotone_of_monotone_apply" {
		t.Errorf("unexpected derivation root: %s", s)
	}

	r, err := obj.Call(0)
	if err != nil {
		t.Errorf("call failed: %+v", err)
		return
	}
	if !types.Equal(r, types.Some(types.NewInt(5))) {
		t.Errorf("find(0) = %s, expected some(5)", r)
	}
	r, err = obj.Call(7)
	if err != nil {
		t.Errorf("call failed: %+v", err)
		return
	}
	if !types.Equal(r, types.None()) {
		t.Errorf("find(7) = %s, expected none", r)
	}

	if err := obj.Check(); err != nil {
		t.Errorf("check failed: %+v", err)
	}
	if err := obj.Induct(); err != nil {
		t.Errorf("induct failed: %+v", err)
	}
}

func TestInput0(t *testing.T) {
	// the input is not a file, so it is parsed as code
	obj := &Lang{
		Fs:    afero.NewMemMapFs(),
		Input: util.Code(findCode),
		Logf:  t.Logf,
	}
	if err := obj.Init(); err != nil {
		t.Errorf("init failed: %+v", err)
		return
	}
	if s := obj.Definition().Name; s != "find" {
		t.Errorf("unexpected name: %s", s)
	}

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/dir", 0755); err != nil {
		t.Errorf("mkdir failed: %+v", err)
		return
	}
	obj = &Lang{
		Fs:    fs,
		Input: "/dir",
		Logf:  t.Logf,
	}
	if err := obj.Init(); err == nil {
		t.Errorf("expected a directory input to fail")
	}
}

func TestMaxDepth0(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/main.yaml", []byte(util.Code(findCode)), 0644); err != nil {
		t.Errorf("write failed: %+v", err)
		return
	}
	obj := &Lang{
		Fs:       fs,
		Input:    "/main.yaml",
		MaxDepth: 3, // find(0) needs five nested calls
		Logf:     t.Logf,
	}
	if err := obj.Init(); err != nil {
		t.Errorf("init failed: %+v", err)
		return
	}
	r, err := obj.Call(0)
	if err == nil || errwrap.Cause(err) != fix.ErrExhausted {
		t.Errorf("find(0): expected to run out of depth, got: %+v", err)
	}
	if !types.Equal(r, types.None()) {
		t.Errorf("find(0) = %s, expected the approximation none", r)
	}
	// a cut off search must not leave anything behind for the next one
	if r, err := obj.Call(4); err != nil || !types.Equal(r, types.Some(types.NewInt(5))) {
		t.Errorf("find(4) = %s, expected some(5), err: %+v", r, err)
	}
	if r, err := obj.Call(2); err != nil || !types.Equal(r, types.Some(types.NewInt(5))) {
		t.Errorf("find(2) = %s, expected some(5), err: %+v", r, err)
	}
}

const sumCode = `
	name: sum
	param: x
	domain: [0, 1, 5, 9, 10, 11, 12, 40]
	max_iterations: 10
	body:
	  if:
	    cond: {le: [x, 0]}
	    then: {some: 0}
	    else:
	      bind:
	        action: {call: {sub: [x, 1]}}
	        var: r
	        body: {some: {add: [x, r]}}
`

// Evaluation is not limited by the number of iterates, so a definition which
// recurses deeper than that still gets its value, and still unfolds.
func TestDeep0(t *testing.T) {
	obj, err := runLang(t, sumCode)
	if err != nil {
		t.Errorf("runLang failed: %+v", err)
		return
	}
	for arg, exp := range map[int64]int64{
		9:   45,
		10:  55,
		11:  66,
		300: 45150,
	} {
		r, err := obj.Call(arg)
		if err != nil {
			t.Errorf("sum(%d) failed: %+v", arg, err)
			continue
		}
		if !types.Equal(r, types.Some(types.NewInt(exp))) {
			t.Errorf("sum(%d) = %s, expected some(%d)", arg, r, exp)
		}
	}
	if err := obj.Check(); err != nil {
		t.Errorf("check failed: %+v", err)
	}
	if err := obj.Induct(); err != nil {
		t.Errorf("induct failed: %+v", err)
	}
}

// An unbounded search has no value past its target. That is the least
// fixpoint, but it can only be observed as a search which doesn't end.
func TestSearch0(t *testing.T) {
	code := strings.Replace(findCode, `
	  if:
	    cond: {lt: [x, 10]}
	    then:
	      if:
	        cond: {eq: [x, 5]}
	        then: {some: x}
	        else: {call: {add: [x, 1]}}
	    else: none
`, `
	  if:
	    cond: {eq: [x, 5]}
	    then: {some: x}
	    else: {call: {add: [x, 1]}}
`, 1)
	code = strings.Replace(code, "param: x\n", "param: x\n\tmax_depth: 64\n", 1)
	obj, err := runLang(t, code)
	if err != nil {
		t.Errorf("runLang failed: %+v", err)
		return
	}
	if obj.Definition().MaxDepth != 64 {
		t.Errorf("the code was not rewritten")
		return
	}

	if r, err := obj.Call(0); err != nil || !types.Equal(r, types.Some(types.NewInt(5))) {
		t.Errorf("find(0) = %s, expected some(5), err: %+v", r, err)
	}
	r, err := obj.Call(7)
	if !types.Equal(r, types.None()) {
		t.Errorf("find(7) = %s, expected none", r)
	}
	if err == nil || errwrap.Cause(err) != fix.ErrExhausted {
		t.Errorf("find(7): expected to run out of depth, got: %+v", err)
	}

	if err := obj.Check(); err != nil {
		t.Errorf("check failed: %+v", err)
	}
	if err := obj.Induct(); err != nil {
		t.Errorf("induct failed: %+v", err)
	}
}

func TestInductFail0(t *testing.T) {
	code := strings.Replace(findCode, "{eq: [r, 5]}", "{eq: [r, 4]}", 1)
	obj, err := runLang(t, code)
	if err != nil {
		t.Errorf("runLang failed: %+v", err)
		return
	}
	err = obj.Induct()
	if err == nil {
		t.Errorf("expected the induction to fail")
		return
	}
	if errwrap.Cause(err) != fix.ErrInductionFailed {
		t.Errorf("unexpected error: %+v", err)
	}
}

func TestEvalError0(t *testing.T) {
	code := `
	name: f
	param: x
	domain: [0, 1]
	body:
	  if:
	    cond: {eq: [x, 0]}
	    then: {fst: x}
	    else: {call: {sub: [x, 1]}}
	`
	obj, err := runLang(t, code)
	if err != nil {
		t.Errorf("runLang failed: %+v", err)
		return
	}
	if _, err := obj.Call(1); err == nil {
		t.Errorf("expected an evaluation error")
	}
	if err := obj.Check(); err == nil {
		t.Errorf("expected an evaluation error")
	}
}

func TestReject0(t *testing.T) {
	type test struct { // an individual test
		name string
		code string
	}
	testCases := []test{}

	testCases = append(testCases, test{
		name: "recursive condition",
		code: `
		name: f
		param: x
		body:
		  if:
		    cond: {eq: [{call: x}, none]}
		    then: none
		    else: {some: 1}
		`,
	})
	testCases = append(testCases, test{
		name: "nested call",
		code: `
		name: f
		param: x
		body: {call: {call: x}}
		`,
	})
	testCases = append(testCases, test{
		name: "bare recursion variable",
		code: `
		name: f
		param: x
		body: {pair: [f, {call: x}]}
		`,
	})
	testCases = append(testCases, test{
		name: "arithmetic on a call",
		code: `
		name: f
		param: x
		body: {add: [{call: x}, 1]}
		`,
	})
	testCases = append(testCases, test{
		name: "recursive motive",
		code: `
		name: f
		param: x
		body: none
		motive:
		  eqSome:
		    at: {call: 0}
		    var: r
		    then: true
		`,
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
			obj, err := runLang(t, tc.code)
			if err == nil {
				err = obj.Induct() // the motive is only derived here
			}
			if err == nil {
				t.Errorf("test #%d: expected a rejection", index)
				return
			}
			if errwrap.Cause(err) != derive.ErrUnsupported {
				t.Errorf("test #%d: unexpected error: %+v", index, err)
			}
		})
	}
}

func TestExamples0(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewOsFs())
	dir := "../examples/lang/"
	files, err := afero.ReadDir(fs, dir)
	if err != nil {
		t.Errorf("could not read examples: %+v", err)
		return
	}
	if len(files) == 0 {
		t.Errorf("no examples found")
		return
	}
	for _, fi := range files {
		name := path.Join(dir, fi.Name())
		t.Run(fi.Name(), func(t *testing.T) {
			obj := &Lang{
				Fs:    fs,
				Input: name,
				Logf:  t.Logf,
			}
			if err := obj.Init(); err != nil {
				t.Errorf("init failed: %+v", err)
				return
			}
			if err := obj.Check(); err != nil {
				t.Errorf("check failed: %+v", err)
			}
			if err := obj.Induct(); err != nil {
				t.Errorf("induct failed: %+v", err)
			}
		})
	}
}

func TestExamplesValues0(t *testing.T) {
	testCases := map[string]map[int64]types.Value{
		"sum.yaml": {
			4:  types.Some(types.NewInt(10)),
			-1: types.None(),
		},
		"search.yaml": {
			2: types.Some(types.NewInt(5)),
			6: types.None(),
		},
		"fib.yaml": {
			10: types.Some(types.NewInt(55)),
		},
		"collatz.yaml": {
			1: types.Some(types.NewInt(0)),
			6: types.Some(types.NewInt(8)),
			9: types.Some(types.NewInt(19)),
		},
	}
	// these have no value, so the search for one runs out of depth
	diverges := map[string][]int64{
		"sum.yaml":    {-1},
		"search.yaml": {6},
	}
	fs := afero.NewReadOnlyFs(afero.NewOsFs())
	for file, values := range testCases {
		obj := &Lang{
			Fs:    fs,
			Input: path.Join("../examples/lang/", file),
			Logf:  t.Logf,
		}
		if err := obj.Init(); err != nil {
			t.Errorf("%s: init failed: %+v", file, err)
			continue
		}
		for arg, exp := range values {
			r, err := obj.Call(arg)
			if err != nil && errwrap.Cause(err) == fix.ErrExhausted && slices.Contains(diverges[file], arg) {
				err = nil
			}
			if err != nil {
				t.Errorf("%s: call failed: %+v", file, err)
				continue
			}
			if !types.Equal(r, exp) {
				t.Errorf("%s: f(%d) = %s, expected %s", file, arg, r, exp)
			}
		}
	}
}
