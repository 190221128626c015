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

package fix

import (
	"fmt"
	"math"
	"sort"

	"github.com/purpleidea/partialfix/mono"
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/util"
	"github.com/purpleidea/partialfix/util/errwrap"
)

const (
	// DefaultMaxDepth is the number of nested unfoldings that Demand allows
	// when no limit is specified.
	DefaultMaxDepth = 4096

	// ErrExhausted is returned when a point could not be evaluated within
	// the nesting limit. The value returned alongside it is a lower
	// approximation: either the function has no value there, or it needs a
	// deeper search.
	ErrExhausted = util.Error("no value within the nesting limit")
)

// Demand is the least fixpoint of a monotone function on a pointwise order,
// evaluated one point at a time. The value at k is found by unfolding once,
// fix(k) = f(fix)(k), and looking up whichever other points that needs. Every
// point that gets a value gets its exact value, no matter how deep the
// recursion goes, which the iterates can't promise.
//
// A point that depends on itself, possibly through other points, is iterated
// from bottom until it stops growing, so cycles get their least solution and
// not a hang. A point that recurses forever through new points can't be told
// apart from one which is merely deep, so that search is cut off at MaxDepth
// and reported with ErrExhausted.
type Demand[K, V any] struct {
	// Cod is the order of the codomain.
	Cod order.CCPO[V]

	// Func is the monotone function on func(K) V.
	Func *mono.Func[func(K) V, func(K) V]

	// Key identifies a point for the memo table. If it is nil, then the
	// fmt %v representation is used, which must be unique per point.
	Key func(K) string

	// MaxDepth is the largest number of nested unfoldings. If it is zero,
	// then DefaultMaxDepth is used.
	MaxDepth int

	// MaxIterations bounds the iteration of a single cyclic point. If it is
	// zero, then DefaultMaxIterations is used.
	MaxIterations int

	Debug bool
	Logf  func(format string, v ...interface{})

	memo   map[string]V          // exact values
	cut    map[string]V          // approximations from the current search
	active map[string]*frame[V] // points being evaluated
}

// frame is a point that is currently being evaluated.
type frame[V any] struct {
	approx    V    // the value assumed for the point while it's evaluated
	depth     int  // how deeply nested this evaluation is
	reentered bool // did the evaluation look itself up?
}

// Validate returns an error if the struct was not populated correctly.
func (obj *Demand[K, V]) Validate() error {
	if obj.Cod == nil {
		return fmt.Errorf("the Cod is missing")
	}
	if obj.Func == nil {
		return fmt.Errorf("the Func is missing")
	}
	if obj.MaxDepth < 0 {
		return fmt.Errorf("the MaxDepth must not be negative")
	}
	if obj.MaxIterations < 0 {
		return fmt.Errorf("the MaxIterations must not be negative")
	}
	if obj.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}
	return nil
}

// At returns the value of the least fixpoint at k. If the search was cut off,
// it returns the lower approximation it found along with an ErrExhausted.
func (obj *Demand[K, V]) At(k K) (V, error) {
	obj.start()
	v, _, exhausted := obj.eval(k, 0)
	if exhausted {
		return v, errwrap.Wrapf(ErrExhausted, "gave up at %d nested calls", obj.maxDepth())
	}
	return v, nil
}

// Fn returns the least fixpoint as a function. Points that run out of depth
// return their lower approximation, use At to tell them apart.
func (obj *Demand[K, V]) Fn() func(K) V {
	return func(k K) V {
		v, _ := obj.At(k)
		return v
	}
}

// Eq checks the unfolding equation fix(k) = f(fix)(k) at every k in the
// domain. Points that run out of depth are checked at their approximation and
// logged.
func (obj *Demand[K, V]) Eq(domain []K) error {
	var reterr error
	exhausted := []string{}
	for _, k := range domain {
		x, err := obj.At(k)
		if err != nil && errwrap.Cause(err) == ErrExhausted {
			exhausted = append(exhausted, obj.key(k))
		} else if err != nil {
			return err
		}
		fx := obj.Func.Apply(obj.Fn())(k)
		if !obj.Cod.Le(x, fx) {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(ErrNotFixpoint, "fix(%v) is not below f(fix)(%v)", k, k))
		}
		if !obj.Cod.Le(fx, x) {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(ErrNotFixpoint, "f(fix)(%v) is not below fix(%v)", k, k))
		}
	}
	if len(exhausted) > 0 {
		sort.Strings(exhausted)
		obj.Logf("no value within %d nested calls at: %v", obj.maxDepth(), exhausted)
	}
	return reterr
}

func (obj *Demand[K, V]) start() {
	if obj.memo == nil {
		obj.memo = make(map[string]V)
	}
	obj.cut = make(map[string]V) // a new search may go deeper
	obj.active = make(map[string]*frame[V])
}

func (obj *Demand[K, V]) key(k K) string {
	if obj.Key != nil {
		return obj.Key(k)
	}
	return fmt.Sprintf("%v", k)
}

func (obj *Demand[K, V]) maxDepth() int {
	if obj.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return obj.MaxDepth
}

// eval returns the value at k, the depth of the shallowest active point that
// it was computed from, and whether the search was cut off on the way. A value
// that depends on an active point is only provisional, so it isn't memoized.
func (obj *Demand[K, V]) eval(k K, depth int) (V, int, bool) {
	key := obj.key(k)
	if v, exists := obj.memo[key]; exists {
		return v, math.MaxInt, false
	}
	if v, exists := obj.cut[key]; exists {
		return v, math.MaxInt, true
	}
	if fr, exists := obj.active[key]; exists {
		fr.reentered = true
		return fr.approx, fr.depth, false
	}
	bottom := order.Bot[V](obj.Cod)
	if depth > obj.maxDepth() {
		obj.cut[key] = bottom
		return bottom, math.MaxInt, true
	}

	fr := &frame[V]{
		approx: bottom,
		depth:  depth,
	}
	obj.active[key] = fr
	defer delete(obj.active, key) // also when evaluation panics

	max := obj.MaxIterations
	if max == 0 {
		max = DefaultMaxIterations
	}
	var v V
	low := math.MaxInt
	exhausted := false
	lookup := func(j K) V {
		x, l, e := obj.eval(j, depth+1)
		low = min(low, l)
		exhausted = exhausted || e
		return x
	}
	for i := 0; ; i++ {
		fr.reentered = false
		low = math.MaxInt
		exhausted = false
		v = obj.Func.Apply(lookup)(k)
		if !fr.reentered || obj.Cod.Le(v, fr.approx) {
			break // it didn't depend on itself, or it's stable
		}
		if i == max {
			obj.Logf("%s: not stable after %d iterations", key, max)
			exhausted = true
			break
		}
		if obj.Debug {
			obj.Logf("%s: cyclic, iterating again (%d)", key, i+1)
		}
		fr.approx = v
	}

	if low < depth { // depends on a point that is still being evaluated
		return v, low, exhausted
	}
	if exhausted {
		obj.cut[key] = v
	} else {
		obj.memo[key] = v
	}
	return v, math.MaxInt, exhausted
}
