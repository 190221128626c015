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

	"github.com/purpleidea/partialfix/order"
)

// Lfp returns the least fixpoint of f over a complete lattice, as the infimum
// of all of its prefixed points, those x with f(x) ⊑ x. This is the Tarski
// construction. It does not need f to be monotone to be defined, only to be a
// fixpoint. It is used for inductive predicates, where the lattice is bool
// under implication, or functions into it.
func Lfp[A any](l order.FiniteLattice[A], f func(A) A) A {
	return order.Inf[A](l, func(x A) bool {
		return l.Le(f(x), x)
	})
}

// Gfp returns the greatest fixpoint of f, as the supremum of all of its post
// fixed points, those x with x ⊑ f(x). A coinductive predicate can be defined
// either as this under implication, or as Lfp under reverse implication.
func Gfp[A any](l order.FiniteLattice[A], f func(A) A) A {
	return l.Sup(func(x A) bool {
		return l.Le(x, f(x))
	})
}

// Park checks Park induction: if x is a prefixed point of f, then the least
// fixpoint is below it. It errors if x is not prefixed, or if the conclusion
// fails, which can only happen when f is not monotone.
func Park[A any](l order.FiniteLattice[A], f func(A) A, x A) error {
	if !l.Le(f(x), x) {
		return fmt.Errorf("not a prefixed point: f(%v) ⋢ %v", x, x)
	}
	if lfp := Lfp(l, f); !l.Le(lfp, x) {
		return fmt.Errorf("least fixpoint %v is not below %v", lfp, x)
	}
	return nil
}
