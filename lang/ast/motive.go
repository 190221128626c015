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

package ast

import (
	"fmt"
)

// Motive represents a property of the function being defined, which is proven
// by fixpoint induction.
type Motive interface {
	Node
	motive()
}

// MotiveTrue always holds.
type MotiveTrue struct{}

func (obj *MotiveTrue) motive() {}

// String returns a short representation of this motive.
func (obj *MotiveTrue) String() string { return "true" }

// Apply runs fn on this node.
func (obj *MotiveTrue) Apply(fn func(Node) error) error { return fn(obj) }

// MotiveAnd holds when both sides do.
type MotiveAnd struct {
	A Motive
	B Motive
}

func (obj *MotiveAnd) motive() {}

// String returns a short representation of this motive.
func (obj *MotiveAnd) String() string { return fmt.Sprintf("(%s && %s)", obj.A, obj.B) }

// Apply runs fn on every child, and then on this node.
func (obj *MotiveAnd) Apply(fn func(Node) error) error {
	if err := obj.A.Apply(fn); err != nil {
		return err
	}
	if err := obj.B.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// MotiveOr holds when either side does.
type MotiveOr struct {
	A Motive
	B Motive
}

func (obj *MotiveOr) motive() {}

// String returns a short representation of this motive.
func (obj *MotiveOr) String() string { return fmt.Sprintf("(%s || %s)", obj.A, obj.B) }

// Apply runs fn on every child, and then on this node.
func (obj *MotiveOr) Apply(fn func(Node) error) error {
	if err := obj.A.Apply(fn); err != nil {
		return err
	}
	if err := obj.B.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// MotiveForall holds when Body does for every element of the domain of the
// definition bound to Name.
type MotiveForall struct {
	Name string
	Body Motive
}

func (obj *MotiveForall) motive() {}

// String returns a short representation of this motive.
func (obj *MotiveForall) String() string { return fmt.Sprintf("forall %s. %s", obj.Name, obj.Body) }

// Apply runs fn on every child, and then on this node.
func (obj *MotiveForall) Apply(fn func(Node) error) error {
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// MotiveEqSome holds when the function applied to At either has no result, or
// has a result which makes Then true once it is bound to Name.
type MotiveEqSome struct {
	At   Expr
	Name string
	Then Expr
}

func (obj *MotiveEqSome) motive() {}

// String returns a short representation of this motive.
func (obj *MotiveEqSome) String() string {
	return fmt.Sprintf("f(%s) = some(%s) => %s", obj.At, obj.Name, obj.Then)
}

// Apply runs fn on every child, and then on this node.
func (obj *MotiveEqSome) Apply(fn func(Node) error) error {
	if err := obj.At.Apply(fn); err != nil {
		return err
	}
	if err := obj.Then.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}
