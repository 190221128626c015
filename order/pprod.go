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
)

// Pair is a value of a product carrier.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// MakePair builds a pair.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{Fst: a, Snd: b}
}

// String returns a representation for display purposes.
func (obj Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", obj.Fst, obj.Snd)
}

// PProd is the componentwise order on pairs. It is used for mutually recursive
// definitions, which are tupled together into a single fixpoint.
type PProd[A, B any] struct {
	Fst CCPO[A]
	Snd CCPO[B]
}

// Le returns true if both components are related.
func (obj *PProd[A, B]) Le(x, y Pair[A, B]) bool {
	return obj.Fst.Le(x.Fst, y.Fst) && obj.Snd.Le(x.Snd, y.Snd)
}

// Csup takes the supremum of each projection of the chain independently.
func (obj *PProd[A, B]) Csup(c Chain[Pair[A, B]]) Pair[A, B] {
	return Pair[A, B]{
		Fst: obj.Fst.Csup(ChainFst(c)),
		Snd: obj.Snd.Csup(ChainSnd(c)),
	}
}

// Exact returns true if both components are exact.
func (obj *PProd[A, B]) Exact() bool {
	return IsExact(obj.Fst) && IsExact(obj.Snd)
}

// ChainFst projects a chain of pairs onto the first components. The result is
// a chain if the input is.
func ChainFst[A, B any](c Chain[Pair[A, B]]) Chain[A] {
	out := make(Chain[A], 0, len(c))
	for _, x := range c {
		out = append(out, x.Fst)
	}
	return out
}

// ChainSnd projects a chain of pairs onto the second components.
func ChainSnd[A, B any](c Chain[Pair[A, B]]) Chain[B] {
	out := make(Chain[B], 0, len(c))
	for _, x := range c {
		out = append(out, x.Snd)
	}
	return out
}

// PProdLattice is the componentwise order on pairs of finite lattices.
type PProdLattice[A, B any] struct {
	Fst FiniteLattice[A]
	Snd FiniteLattice[B]
}

// Le returns true if both components are related.
func (obj *PProdLattice[A, B]) Le(x, y Pair[A, B]) bool {
	return obj.Fst.Le(x.Fst, y.Fst) && obj.Snd.Le(x.Snd, y.Snd)
}

// Sup takes the supremum of the image of the set under each projection.
func (obj *PProdLattice[A, B]) Sup(s Set[Pair[A, B]]) Pair[A, B] {
	members := Members[Pair[A, B]](obj, s)
	fst := obj.Fst.Sup(func(a A) bool {
		for _, x := range members {
			if Eq[A](obj.Fst, x.Fst, a) {
				return true
			}
		}
		return false
	})
	snd := obj.Snd.Sup(func(b B) bool {
		for _, x := range members {
			if Eq[B](obj.Snd, x.Snd, b) {
				return true
			}
		}
		return false
	})
	return Pair[A, B]{Fst: fst, Snd: snd}
}

// Elements enumerates the product of both carriers.
func (obj *PProdLattice[A, B]) Elements() []Pair[A, B] {
	out := []Pair[A, B]{}
	for _, a := range obj.Fst.Elements() {
		for _, b := range obj.Snd.Elements() {
			out = append(out, Pair[A, B]{Fst: a, Snd: b})
		}
	}
	return out
}
