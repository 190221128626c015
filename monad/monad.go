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

// Package monad contains the MonoBind capability, which lets recursive
// definitions sequence their recursive calls with a monadic bind. A monad is
// MonoBind when its bind is monotone in both of its arguments, with respect to
// whatever order its values already carry:
//
//	a1 ⊑ a2 implies a1 >>= k ⊑ a2 >>= k
//	k1(x) ⊑ k2(x) for all x implies a >>= k1 ⊑ a >>= k2
//
// Go has no higher kinded types, so an instance is given per pair of result
// types: MA is the type of the action, A the type it produces, and MB the type
// of the whole bound computation.
package monad

import (
	"fmt"

	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/util/errwrap"
)

// MonoBind is a monadic bind which is monotone in both arguments.
type MonoBind[MA, A, MB any] interface {
	// Bind runs the action and passes its result to the continuation.
	Bind(ma MA, k func(A) MB) MB
}

// OptionBind is the bind of the option monad. Binding none short circuits to
// none, which is the bottom of the flat order, so both laws hold.
type OptionBind[A, B any] struct{}

// Bind returns none if the action is none, and the continuation applied to the
// present value otherwise.
func (OptionBind[A, B]) Bind(ma order.Option[A], k func(A) order.Option[B]) order.Option[B] {
	v, ok := ma.Get()
	if !ok {
		return order.None[B]()
	}
	return k(v)
}

// OptionPure wraps a value in the option monad.
func OptionPure[A any](a A) order.Option[A] {
	return order.Some(a)
}

// CheckMonoBind verifies both monotonicity laws by brute force. Every pair of
// related actions is tried against every continuation, and every pair of
// pointwise related continuations (compared at points) is tried against every
// action. All the violations are returned.
func CheckMonoBind[MA, A, MB any](m MonoBind[MA, A, MB], oa order.PartialOrder[MA], ob order.PartialOrder[MB], actions []MA, conts []func(A) MB, points []A) error {
	var reterr error
	for i, a1 := range actions {
		for j, a2 := range actions {
			if !oa.Le(a1, a2) {
				continue
			}
			for n, k := range conts {
				if !ob.Le(m.Bind(a1, k), m.Bind(a2, k)) {
					reterr = errwrap.Append(reterr, fmt.Errorf("not monotone in the action: #%d ⊑ #%d with continuation #%d", i, j, n))
				}
			}
		}
	}
	for i, k1 := range conts {
		for j, k2 := range conts {
			if !pointwise(ob, k1, k2, points) {
				continue
			}
			for n, a := range actions {
				if !ob.Le(m.Bind(a, k1), m.Bind(a, k2)) {
					reterr = errwrap.Append(reterr, fmt.Errorf("not monotone in the continuation: #%d ⊑ #%d with action #%d", i, j, n))
				}
			}
		}
	}
	return reterr
}

func pointwise[A, MB any](ob order.PartialOrder[MB], k1, k2 func(A) MB, points []A) bool {
	for _, x := range points {
		if !ob.Le(k1(x), k2(x)) {
			return false
		}
	}
	return true
}
