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

package types

import (
	"github.com/purpleidea/partialfix/order"
)

// Order is the order that results of the combinator language are compared by.
// The none option is below everything, which makes it the bottom of every
// chain. Other options are only below themselves, pairs are ordered
// componentwise, and all other values are only related to themselves. This is
// the flat and product orders rolled into one, since the values here carry no
// static type to pick between them.
type Order struct{}

// Le returns true if x ⊑ y.
func (obj Order) Le(x, y Value) bool {
	if isNone(x) {
		return true
	}
	if v, ok := x.(*PairValue); ok {
		p, ok := y.(*PairValue)
		if !ok {
			return false
		}
		return obj.Le(v.Fst, p.Fst) && obj.Le(v.Snd, p.Snd)
	}
	return Equal(x, y)
}

// Csup returns the least upper bound of a chain. The empty chain gives none.
func (obj Order) Csup(c order.Chain[Value]) Value {
	rest := order.Chain[Value]{}
	for _, x := range c {
		if !isNone(x) {
			rest = append(rest, x)
		}
	}
	if len(rest) == 0 {
		return None()
	}
	if _, ok := rest[0].(*PairValue); !ok {
		return rest[0] // all the others are equal to it
	}
	fsts := order.Chain[Value]{}
	snds := order.Chain[Value]{}
	for _, x := range rest {
		p := x.(*PairValue) // a chain with a pair above none only has pairs
		fsts = append(fsts, p.Fst)
		snds = append(snds, p.Snd)
	}
	return NewPair(obj.Csup(fsts), obj.Csup(snds))
}

func isNone(x Value) bool {
	v, ok := x.(*OptionValue)
	return ok && v.IsNone()
}

// OptionOrder is the flat order on option values with none as bottom. It is
// the restriction of Order to options.
var OptionOrder = &order.Flat[Value]{
	Bottom: None(),
	Equal:  Equal,
}

// OptionBind is the bind of the option monad over values. Binding anything
// that isn't an option is an evaluation error.
type OptionBind struct{}

// Bind returns none if the action is none, and the continuation applied to the
// present value otherwise.
func (OptionBind) Bind(ma Value, k func(Value) Value) Value {
	v, ok := ma.(*OptionValue)
	if !ok {
		Raise("cannot bind a value of kind %s", ma.Kind())
	}
	if v.IsNone() {
		return None()
	}
	return k(v.V)
}
