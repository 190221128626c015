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

package monad

import (
	"testing"

	"github.com/purpleidea/partialfix/order"
)

func TestOptionBind0(t *testing.T) {
	m := OptionBind[int, int]{}
	o := order.NewOptionOrder[int]()
	actions := []order.Option[int]{order.None[int](), order.Some(1), order.Some(2)}
	conts := []func(int) order.Option[int]{
		func(int) order.Option[int] { return order.None[int]() },
		func(x int) order.Option[int] { return order.Some(x) },
		func(x int) order.Option[int] {
			if x == 1 {
				return order.Some(x * 10)
			}
			return order.None[int]()
		},
		func(x int) order.Option[int] { return order.Some(x * 10) },
	}
	if err := CheckMonoBind[order.Option[int], int, order.Option[int]](m, o, o, actions, conts, []int{1, 2}); err != nil {
		t.Errorf("option bind laws: %+v", err)
	}

	if out := m.Bind(order.Some(4), func(x int) order.Option[int] { return order.Some(x + 1) }); out != order.Some(5) {
		t.Errorf("unexpected bind result: %s", out)
	}
	called := false
	out := m.Bind(order.None[int](), func(x int) order.Option[int] {
		called = true
		return order.Some(x)
	})
	if called || out.IsSome() {
		t.Errorf("binding none must short circuit")
	}
}

// A bind that inspects whether its action is defined is not monotone, and the
// checker has to notice.
func TestOptionBind1(t *testing.T) {
	m := badBind{}
	o := order.NewOptionOrder[int]()
	actions := []order.Option[int]{order.None[int](), order.Some(1)}
	conts := []func(int) order.Option[int]{
		func(x int) order.Option[int] { return order.Some(x) },
	}
	if err := CheckMonoBind[order.Option[int], int, order.Option[int]](m, o, o, actions, conts, []int{1}); err == nil {
		t.Errorf("expected the broken bind to fail")
	}
}

type badBind struct{}

func (badBind) Bind(ma order.Option[int], k func(int) order.Option[int]) order.Option[int] {
	if ma.IsNone() {
		return order.Some(0) // defined output from an undefined input
	}
	v, _ := ma.Get()
	return k(v)
}

func TestExceptT0(t *testing.T) {
	m := NewExceptOption[string, int, int]()
	o := order.NewOptionOrder[Except[string, int]]()

	actions := []order.Option[Except[string, int]]{
		order.None[Except[string, int]](),
		order.Some(Ok[string](1)),
		order.Some(Ok[string](2)),
		order.Some(Throw[string, int]("boom")),
	}
	conts := []func(int) order.Option[Except[string, int]]{
		func(int) order.Option[Except[string, int]] { return order.None[Except[string, int]]() },
		func(x int) order.Option[Except[string, int]] { return order.Some(Ok[string](x + 1)) },
		func(x int) order.Option[Except[string, int]] {
			if x > 1 {
				return order.Some(Throw[string, int]("too big"))
			}
			return order.Some(Ok[string](x))
		},
	}
	if err := CheckMonoBind[order.Option[Except[string, int]], int, order.Option[Except[string, int]]](m, o, o, actions, conts, []int{1, 2}); err != nil {
		t.Errorf("except bind laws: %+v", err)
	}

	called := false
	out := m.Bind(order.Some(Throw[string, int]("boom")), func(x int) order.Option[Except[string, int]] {
		called = true
		return order.Some(Ok[string](x))
	})
	if called {
		t.Errorf("an error must short circuit the continuation")
	}
	v, ok := out.Get()
	if !ok {
		t.Errorf("an error is a defined result")
		return
	}
	if err, failed := v.Err(); !failed || err != "boom" {
		t.Errorf("unexpected result: %s", v)
	}

	out = m.Bind(order.Some(Ok[string](3)), conts[1])
	if out != order.Some(Ok[string](4)) {
		t.Errorf("unexpected result: %s", out)
	}
	if s := Ok[string](4).String(); s != "ok(4)" {
		t.Errorf("unexpected string: %s", s)
	}
}
