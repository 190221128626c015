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

package fix

import (
	"testing"

	"github.com/purpleidea/partialfix/monad"
	"github.com/purpleidea/partialfix/mono"
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/util/errwrap"
)

// sumF is the body of: sum(n) = if n ≤ 0 then some 0 else sum(n - 1) >>= λr. some(n + r)
func sumF() *mono.Func[fn, fn] {
	return mono.Pi(func(n int) *mono.Func[fn, order.Option[int]] {
		if n <= 0 {
			return mono.Const[fn](order.Some(0))
		}
		k := mono.Pi(func(r int) *mono.Func[fn, order.Option[int]] {
			return mono.Const[fn](order.Some(n + r))
		})
		return mono.Bind[fn, order.Option[int], int, order.Option[int]](monad.OptionBind[int, int]{}, mono.Apply[int, order.Option[int]](n-1), k)
	})
}

func demand(t *testing.T, f *mono.Func[fn, fn], depth int) *Demand[int, order.Option[int]] {
	obj := &Demand[int, order.Option[int]]{
		Cod:      order.NewOptionOrder[int](),
		Func:     f,
		MaxDepth: depth,
		Logf: func(format string, v ...interface{}) {
			t.Logf("demand: "+format, v...)
		},
	}
	if err := obj.Validate(); err != nil {
		t.Errorf("could not validate: %+v", err)
	}
	return obj
}

func TestDemandFind0(t *testing.T) {
	// there's no upper bound, so from six onwards the search never ends
	obj := demand(t, findF(func(n int) bool { return n == 5 }), 50)

	for _, n := range []int{0, 3, 5} {
		if out, err := obj.At(n); err != nil || out != order.Some(5) {
			t.Errorf("find(%d): expected some(5), got %s, err: %+v", n, out, err)
		}
	}
	out, err := obj.At(7)
	if out != order.None[int]() {
		t.Errorf("find(7): expected none, got %s", out)
	}
	if err == nil || errwrap.Cause(err) != ErrExhausted {
		t.Errorf("find(7): expected to run out of depth, got: %+v", err)
	}
	if err := obj.Eq(domain(12)); err != nil {
		t.Errorf("unfolding equation: %+v", err)
	}
}

func TestDemandDeep0(t *testing.T) {
	obj := demand(t, sumF(), 0)
	n := DefaultMaxIterations * 4
	out, err := obj.At(n)
	if err != nil {
		t.Errorf("sum(%d) failed: %+v", n, err)
		return
	}
	if exp := order.Some(n * (n + 1) / 2); out != exp {
		t.Errorf("sum(%d): expected %s, got %s", n, exp, out)
	}
	if err := obj.Eq([]int{-1, 0, 10, n, n + 1}); err != nil {
		t.Errorf("unfolding equation: %+v", err)
	}

	// the iterates don't reach that far
	iterated := Fix[fn](&order.Pi[int, order.Option[int]]{Cod: order.NewOptionOrder[int](), Domain: domain(3)}, sumF())
	if iterated(n).IsSome() {
		t.Errorf("expected the iterates to be a lower approximation")
	}

	obj = demand(t, sumF(), 10)
	if _, err := obj.At(n); err == nil || errwrap.Cause(err) != ErrExhausted {
		t.Errorf("expected to run out of depth, got: %+v", err)
	}
	if out, err := obj.At(10); err != nil || out != order.Some(55) {
		t.Errorf("sum(10): expected some(55), got %s, err: %+v", out, err)
	}
}

func TestDemandCycle0(t *testing.T) {
	// loop(n) = loop(n), and ping(0) = ping(1), ping(1) = ping(0)
	loop := mono.Pi(func(n int) *mono.Func[fn, order.Option[int]] {
		return mono.Apply[int, order.Option[int]](n)
	})
	ping := mono.Pi(func(n int) *mono.Func[fn, order.Option[int]] {
		return mono.Apply[int, order.Option[int]](1 - n)
	})
	for name, f := range map[string]*mono.Func[fn, fn]{"loop": loop, "ping": ping} {
		obj := demand(t, f, 0)
		for _, n := range []int{0, 1} {
			out, err := obj.At(n)
			if err != nil {
				t.Errorf("%s(%d): a cycle has a least solution: %+v", name, n, err)
			}
			if out.IsSome() {
				t.Errorf("%s(%d): expected none, got %s", name, n, out)
			}
		}
		if err := obj.Eq([]int{0, 1}); err != nil {
			t.Errorf("%s: unfolding equation: %+v", name, err)
		}
	}
}

func TestDemandCycle1(t *testing.T) {
	type pair = order.Pair[order.Option[int], order.Option[int]]
	type pfn = func(int) pair
	opt := order.NewOptionOrder[int]()
	// f(n) = (some 1, fst(f(n))), whose least solution needs two rounds
	f := mono.Pi(func(n int) *mono.Func[pfn, pair] {
		return mono.Pair(mono.Const[pfn](order.Some(1)), mono.Fst(mono.Apply[int, pair](n)))
	})
	obj := &Demand[int, pair]{
		Cod:  &order.PProd[order.Option[int], order.Option[int]]{Fst: opt, Snd: opt},
		Func: f,
		Logf: t.Logf,
	}
	out, err := obj.At(0)
	if err != nil {
		t.Errorf("f(0) failed: %+v", err)
	}
	if exp := order.MakePair(order.Some(1), order.Some(1)); out != exp {
		t.Errorf("f(0): expected %s, got %s", exp, out)
	}
	if err := obj.Eq([]int{0, 1}); err != nil {
		t.Errorf("unfolding equation: %+v", err)
	}
}

func TestDemandValidate0(t *testing.T) {
	obj := &Demand[int, order.Option[int]]{}
	if err := obj.Validate(); err == nil {
		t.Errorf("expected validation to fail")
	}
	obj.Cod = order.NewOptionOrder[int]()
	obj.Func = sumF()
	obj.Logf = t.Logf
	obj.MaxDepth = -1
	if err := obj.Validate(); err == nil {
		t.Errorf("expected a negative depth to fail")
	}
	obj.MaxDepth = 0
	if err := obj.Validate(); err != nil {
		t.Errorf("unexpected error: %+v", err)
	}
}
