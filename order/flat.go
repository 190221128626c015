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

// Flat is the flat order over A with a distinguished Bottom element. Bottom is
// below everything, and otherwise every element is only related to itself. It
// is used to turn partial result types such as Option into a CCPO.
type Flat[A any] struct {
	// Bottom is the least element.
	Bottom A

	// Equal decides equality of two elements of the carrier.
	Equal func(x, y A) bool
}

// NewFlat returns the flat order over a comparable carrier.
func NewFlat[A comparable](bottom A) *Flat[A] {
	return &Flat[A]{
		Bottom: bottom,
		Equal:  func(x, y A) bool { return x == y },
	}
}

// IsBottom returns true if x is the distinguished bottom element.
func (obj *Flat[A]) IsBottom(x A) bool {
	return obj.Equal(x, obj.Bottom)
}

// Le returns true if x is bottom or x is equal to y.
func (obj *Flat[A]) Le(x, y A) bool {
	return obj.IsBottom(x) || obj.Equal(x, y)
}

// Csup returns the supremum of a chain. A chain in a flat order can hold at
// most one element other than bottom, otherwise those two wouldn't be
// comparable. We search for it linearly, and return bottom if there is none.
func (obj *Flat[A]) Csup(c Chain[A]) A {
	if x, ok := obj.Witness(c); ok {
		return x
	}
	return obj.Bottom
}

// Witness returns the first element of the chain which is not bottom. For a
// genuine chain it is unique up to equality.
func (obj *Flat[A]) Witness(c Chain[A]) (A, bool) {
	for _, x := range c {
		if !obj.IsBottom(x) {
			return x, true
		}
	}
	var zero A
	return zero, false
}
