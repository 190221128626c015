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

// Implication orders bool by implication: false ⊑ true. It is the carrier of
// inductive predicates, whose least fixpoint holds only where it is forced to.
// Chains and sets are joined by disjunction.
type Implication struct{}

// Le returns true if x implies y.
func (Implication) Le(x, y bool) bool {
	return !x || y
}

// Csup returns true if some element of the chain is true.
func (Implication) Csup(c Chain[bool]) bool {
	for _, x := range c {
		if x {
			return true
		}
	}
	return false
}

// Sup returns true if the set contains true.
func (Implication) Sup(s Set[bool]) bool {
	return s(true)
}

// Elements returns both booleans.
func (Implication) Elements() []bool {
	return []bool{false, true}
}

// Rev is a bool that is ordered by reverse implication. Keeping it apart from
// bool means a predicate which is monotone under one order can't be used where
// the other is expected without going through a negation.
type Rev bool

// ReverseImplication orders Rev by reverse implication: true ⊑ false. It is
// the carrier of coinductive predicates, since a least fixpoint here is a
// greatest fixpoint under implication. Chains and sets are joined by
// conjunction.
type ReverseImplication struct{}

// Le returns true if y implies x.
func (ReverseImplication) Le(x, y Rev) bool {
	return bool(!y || x)
}

// Csup returns true if every element of the chain is true.
func (ReverseImplication) Csup(c Chain[Rev]) Rev {
	for _, x := range c {
		if !x {
			return false
		}
	}
	return true
}

// Sup returns true if the set does not contain false.
func (ReverseImplication) Sup(s Set[Rev]) Rev {
	return Rev(!s(false))
}

// Elements returns both values.
func (ReverseImplication) Elements() []Rev {
	return []Rev{true, false}
}
