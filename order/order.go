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

// Package order implements the partial orders that least fixpoints are taken
// over. A carrier type gets a PartialOrder, and optionally a CCPO (every chain
// has a least upper bound) or a CompleteLattice (every subset does). These are
// ordinary values rather than type classes, so the same carrier can be ordered
// in more than one way, which is exactly what the implication and reverse
// implication orders on bool need.
//
// None of the laws are checked by the type system. Every instance in this
// package is built to satisfy them, and the Check* functions can be used to
// verify a new instance against a finite sample of its carrier.
package order

// PartialOrder is a reflexive, transitive and antisymmetric relation over a
// carrier type A. We write x ⊑ y for Le(x, y).
type PartialOrder[A any] interface {
	// Le returns true if x ⊑ y.
	Le(x, y A) bool
}

// Chain is a finite collection of elements that are pairwise comparable. The
// type does not enforce this, use IsChain to check it.
type Chain[A any] []A

// CCPO is a chain complete partial order. Csup must return the least upper
// bound of any chain: Csup(c) ⊑ x if and only if y ⊑ x for every y in c. What
// it returns for something which is not a chain is unspecified.
type CCPO[A any] interface {
	PartialOrder[A]

	// Csup returns the least upper bound of the chain.
	Csup(c Chain[A]) A
}

// Set is a subset of a carrier, represented by its membership predicate.
type Set[A any] func(A) bool

// CompleteLattice is a partial order where every subset, not only every chain,
// has a least upper bound.
type CompleteLattice[A any] interface {
	PartialOrder[A]

	// Sup returns the least upper bound of the set.
	Sup(s Set[A]) A
}

// Finite is implemented by orders whose carrier can be enumerated.
type Finite[A any] interface {
	// Elements returns every element of the carrier, without duplicates.
	Elements() []A
}

// FiniteLattice is a complete lattice over an enumerable carrier. Infima and
// the lattice based fixpoints need the enumeration to quantify over the set.
type FiniteLattice[A any] interface {
	CompleteLattice[A]
	Finite[A]
}

// Exact is implemented by orders that can't always decide Le over their whole
// carrier. Pointwise orders over an infinite index type only compare a sample
// of points, and report false here. Orders which don't implement this are
// assumed to be exact.
type Exact interface {
	// Exact returns true if Le is decided over the whole carrier.
	Exact() bool
}

// IsExact returns true if the order decides Le everywhere. See Exact.
func IsExact(o interface{}) bool {
	if e, ok := o.(Exact); ok {
		return e.Exact()
	}
	return true
}

// Eq returns true if x ⊑ y and y ⊑ x, which by antisymmetry means x = y.
func Eq[A any](o PartialOrder[A], x, y A) bool {
	return o.Le(x, y) && o.Le(y, x)
}

// Comparable returns true if x ⊑ y or y ⊑ x.
func Comparable[A any](o PartialOrder[A], x, y A) bool {
	return o.Le(x, y) || o.Le(y, x)
}

// IsChain returns true if every two elements of c are comparable.
func IsChain[A any](o PartialOrder[A], c Chain[A]) bool {
	for i := range c {
		for j := i + 1; j < len(c); j++ {
			if !Comparable(o, c[i], c[j]) {
				return false
			}
		}
	}
	return true
}

// Bot returns the least element of a CCPO, which is the supremum of the empty
// chain.
func Bot[A any](o CCPO[A]) A {
	return o.Csup(nil)
}

// LatticeBot returns the least element of a complete lattice, which is the
// supremum of the empty set.
func LatticeBot[A any](l CompleteLattice[A]) A {
	return l.Sup(func(A) bool { return false })
}

// Top returns the greatest element of a complete lattice, which is the
// supremum of the whole carrier.
func Top[A any](l CompleteLattice[A]) A {
	return l.Sup(func(A) bool { return true })
}

// UpperBound returns true if every element of the chain is below x.
func UpperBound[A any](o PartialOrder[A], c Chain[A], x A) bool {
	for _, y := range c {
		if !o.Le(y, x) {
			return false
		}
	}
	return true
}

// Members returns the elements of a finite carrier that are in the set.
func Members[A any](f Finite[A], s Set[A]) []A {
	members := []A{}
	for _, x := range f.Elements() {
		if s(x) {
			members = append(members, x)
		}
	}
	return members
}

// Inf returns the greatest lower bound of a set. It is the supremum of all the
// lower bounds of the set, so x ⊑ Inf(s) if and only if x ⊑ y for every y in
// s. The inf of the empty set is the top element.
func Inf[A any](l FiniteLattice[A], s Set[A]) A {
	members := Members[A](l, s) // enumerate once, the lower bounds test reuses it
	return l.Sup(func(x A) bool {
		return LowerBound[A](l, members, x)
	})
}

// LowerBound returns true if x is below every element in the list.
func LowerBound[A any](o PartialOrder[A], ys []A, x A) bool {
	for _, y := range ys {
		if !o.Le(x, y) {
			return false
		}
	}
	return true
}
