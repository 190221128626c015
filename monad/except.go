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

package monad

import (
	"fmt"

	"github.com/purpleidea/partialfix/order"
)

// Except is either a successful value or an error of type E. It is the payload
// that an ExceptT layer stores inside the inner monad.
type Except[E, A any] struct {
	err    E
	val    A
	failed bool
}

// Ok returns a successful result.
func Ok[E, A any](v A) Except[E, A] {
	return Except[E, A]{val: v}
}

// Throw returns a failed result.
func Throw[E, A any](err E) Except[E, A] {
	return Except[E, A]{err: err, failed: true}
}

// Get returns the value and true, or the zero value and false on failure.
func (obj Except[E, A]) Get() (A, bool) {
	return obj.val, !obj.failed
}

// Err returns the error and true, or the zero value and false on success.
func (obj Except[E, A]) Err() (E, bool) {
	return obj.err, obj.failed
}

// String returns a representation for display purposes.
func (obj Except[E, A]) String() string {
	if obj.failed {
		return fmt.Sprintf("error(%v)", obj.err)
	}
	return fmt.Sprintf("ok(%v)", obj.val)
}

// ExceptT lifts a MonoBind instance through an error layer. The inner monad
// produces Except values, an error short circuits the rest of the computation
// by returning it through Pure, and success continues with the continuation.
// Since the short circuit does not look at the continuation at all, and the
// success case hands everything to the inner bind, both laws are inherited
// from the inner instance.
type ExceptT[E, A, MA, B, MB any] struct {
	// Inner is the bind of the wrapped monad.
	Inner MonoBind[MA, Except[E, A], MB]

	// Pure injects a finished result into the wrapped monad.
	Pure func(Except[E, B]) MB
}

// Bind sequences the action with the continuation, propagating errors.
func (obj *ExceptT[E, A, MA, B, MB]) Bind(ma MA, k func(A) MB) MB {
	return obj.Inner.Bind(ma, func(x Except[E, A]) MB {
		if err, failed := x.Err(); failed {
			return obj.Pure(Throw[E, B](err))
		}
		v, _ := x.Get()
		return k(v)
	})
}

// NewExceptOption returns the ExceptT layer over the option monad. Its values
// are ordered by the flat order on options, so a computation that hasn't been
// defined yet is none, and a failure is a defined some(error(...)).
func NewExceptOption[E, A, B any]() *ExceptT[E, A, order.Option[Except[E, A]], B, order.Option[Except[E, B]]] {
	return &ExceptT[E, A, order.Option[Except[E, A]], B, order.Option[Except[E, B]]]{
		Inner: OptionBind[Except[E, A], Except[E, B]]{},
		Pure:  OptionPure[Except[E, B]],
	}
}
