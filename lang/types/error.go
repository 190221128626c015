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
	"fmt"
)

// EvalError is an error that happened while evaluating a definition. The
// recursive function being iterated has no way to return an error, so this is
// raised as a panic and turned back into an error by Catch at the edge of the
// evaluation.
type EvalError struct {
	Msg string
}

// Error fulfills the error interface of this type.
func (obj *EvalError) Error() string {
	return obj.Msg
}

// Raise panics with an EvalError.
func Raise(format string, v ...interface{}) {
	panic(&EvalError{Msg: fmt.Sprintf(format, v...)})
}

// Catch recovers an EvalError raised by Raise and stores it in err. Any other
// panic is passed through. It must be deferred directly.
func Catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(*EvalError)
	if !ok {
		panic(r) // not ours
	}
	*err = e
}
