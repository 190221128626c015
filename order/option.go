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

// Option is a value which might be absent. As a carrier it is ordered flatly
// with None as the bottom element, see NewOptionOrder.
type Option[T any] struct {
	val T
	ok  bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{val: v, ok: true}
}

// None returns the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it was present.
func (obj Option[T]) Get() (T, bool) {
	return obj.val, obj.ok
}

// IsSome returns true if a value is present.
func (obj Option[T]) IsSome() bool {
	return obj.ok
}

// IsNone returns true if no value is present.
func (obj Option[T]) IsNone() bool {
	return !obj.ok
}

// String returns a representation for display purposes.
func (obj Option[T]) String() string {
	if !obj.ok {
		return "none"
	}
	return fmt.Sprintf("some(%v)", obj.val)
}

// NewOptionOrder returns the flat order on options of a comparable type.
func NewOptionOrder[T comparable]() *Flat[Option[T]] {
	return NewFlat(None[T]())
}

// NewOptionOrderFunc returns the flat order on options, comparing the present
// values with eq.
func NewOptionOrderFunc[T any](eq func(x, y T) bool) *Flat[Option[T]] {
	return &Flat[Option[T]]{
		Bottom: None[T](),
		Equal: func(x, y Option[T]) bool {
			if x.ok != y.ok {
				return false
			}
			if !x.ok {
				return true
			}
			return eq(x.val, y.val)
		},
	}
}
