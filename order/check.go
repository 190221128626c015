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

package order

import (
	"fmt"

	"github.com/purpleidea/partialfix/util/errwrap"
)

// CheckPartialOrder verifies reflexivity, transitivity and antisymmetry over a
// sample of the carrier. The eq function is the real equality of the carrier,
// which antisymmetry is checked against. Every violation is returned.
func CheckPartialOrder[A any](o PartialOrder[A], samples []A, eq func(x, y A) bool) error {
	var reterr error
	for i, x := range samples {
		if !o.Le(x, x) {
			reterr = errwrap.Append(reterr, fmt.Errorf("not reflexive at #%d: %v", i, x))
		}
	}
	for i, x := range samples {
		for j, y := range samples {
			if o.Le(x, y) && o.Le(y, x) && !eq(x, y) {
				reterr = errwrap.Append(reterr, fmt.Errorf("not antisymmetric at #%d and #%d: %v, %v", i, j, x, y))
			}
			if !o.Le(x, y) {
				continue
			}
			for k, z := range samples {
				if o.Le(y, z) && !o.Le(x, z) {
					reterr = errwrap.Append(reterr, fmt.Errorf("not transitive at #%d, #%d, #%d: %v, %v, %v", i, j, k, x, y, z))
				}
			}
		}
	}
	return reterr
}

// CheckCsup verifies the universal property of the chain supremum against a
// list of candidate bounds: Csup(c) ⊑ x if and only if every y in c is ⊑ x.
// It also checks that the supremum is itself an upper bound. It errors if c is
// not a chain, since nothing is promised in that case.
func CheckCsup[A any](o CCPO[A], c Chain[A], bounds []A) error {
	if !IsChain[A](o, c) {
		return fmt.Errorf("input is not a chain")
	}
	sup := o.Csup(c)
	var reterr error
	if !UpperBound[A](o, c, sup) {
		reterr = errwrap.Append(reterr, fmt.Errorf("csup %v is not an upper bound", sup))
	}
	for i, x := range bounds {
		if a, b := o.Le(sup, x), UpperBound[A](o, c, x); a != b {
			reterr = errwrap.Append(reterr, fmt.Errorf("csup %v and bound #%d (%v) disagree: %t != %t", sup, i, x, a, b))
		}
	}
	return reterr
}

// CheckSup verifies the universal property of the lattice supremum of a set
// against a list of candidate bounds.
func CheckSup[A any](l FiniteLattice[A], s Set[A], bounds []A) error {
	sup := l.Sup(s)
	members := Members[A](l, s)
	var reterr error
	if !UpperBound[A](l, members, sup) {
		reterr = errwrap.Append(reterr, fmt.Errorf("sup %v is not an upper bound", sup))
	}
	for i, x := range bounds {
		if a, b := l.Le(sup, x), UpperBound[A](l, members, x); a != b {
			reterr = errwrap.Append(reterr, fmt.Errorf("sup %v and bound #%d (%v) disagree: %t != %t", sup, i, x, a, b))
		}
	}
	return reterr
}

// CheckBottom verifies that the supremum of the empty chain is below every
// sample.
func CheckBottom[A any](o CCPO[A], samples []A) error {
	bot := Bot(o)
	var reterr error
	for i, x := range samples {
		if !o.Le(bot, x) {
			reterr = errwrap.Append(reterr, fmt.Errorf("bottom %v is not below #%d: %v", bot, i, x))
		}
	}
	return reterr
}

// Chains returns every non-empty subset of the samples that is a chain, in a
// deterministic order. This is exponential in the number of samples, so it is
// only suitable for small finite models.
func Chains[A any](o PartialOrder[A], samples []A) []Chain[A] {
	if len(samples) > 16 {
		panic("too many samples to enumerate chains") // programming error
	}
	out := []Chain[A]{}
	for mask := 1; mask < 1<<len(samples); mask++ {
		c := Chain[A]{}
		for i, x := range samples {
			if mask&(1<<i) != 0 {
				c = append(c, x)
			}
		}
		if IsChain[A](o, c) {
			out = append(out, c)
		}
	}
	return out
}
