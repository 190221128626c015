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

// Package types contains the values that definitions written in the
// combinator language compute with, and the order they are compared by.
package types

import (
	"fmt"
	"strconv"

	"github.com/purpleidea/partialfix/util/errwrap"
)

// Kind is the name of the shape of a value.
type Kind string

const (
	// KindInt is the kind of IntValue.
	KindInt Kind = "int"

	// KindBool is the kind of BoolValue.
	KindBool Kind = "bool"

	// KindPair is the kind of PairValue.
	KindPair Kind = "pair"

	// KindOption is the kind of OptionValue.
	KindOption Kind = "option"
)

// Value represents an interface to get values out of each kind.
type Value interface {
	fmt.Stringer // String() string (for display purposes)
	Kind() Kind
	Cmp(Value) error // error if the two values aren't the same
}

// IntValue represents an integer value.
type IntValue struct {
	V int64
}

// NewInt creates a new int value.
func NewInt(v int64) *IntValue { return &IntValue{V: v} }

// String returns a visual representation of this value.
func (obj *IntValue) String() string {
	return strconv.FormatInt(obj.V, 10)
}

// Kind returns the kind of this value.
func (obj *IntValue) Kind() Kind { return KindInt }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *IntValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	x, ok := val.(*IntValue)
	if !ok {
		return fmt.Errorf("cannot cmp %s to %s", obj.Kind(), val.Kind())
	}
	if obj.V != x.V {
		return fmt.Errorf("values are different")
	}
	return nil
}

// BoolValue represents a boolean value.
type BoolValue struct {
	V bool
}

// NewBool creates a new boolean value.
func NewBool(v bool) *BoolValue { return &BoolValue{V: v} }

// String returns a visual representation of this value.
func (obj *BoolValue) String() string {
	return strconv.FormatBool(obj.V)
}

// Kind returns the kind of this value.
func (obj *BoolValue) Kind() Kind { return KindBool }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *BoolValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	x, ok := val.(*BoolValue)
	if !ok {
		return fmt.Errorf("cannot cmp %s to %s", obj.Kind(), val.Kind())
	}
	if obj.V != x.V {
		return fmt.Errorf("values are different")
	}
	return nil
}

// PairValue represents a pair of values.
type PairValue struct {
	Fst Value
	Snd Value
}

// NewPair creates a new pair value.
func NewPair(fst, snd Value) *PairValue { return &PairValue{Fst: fst, Snd: snd} }

// String returns a visual representation of this value.
func (obj *PairValue) String() string {
	return fmt.Sprintf("(%s, %s)", obj.Fst, obj.Snd)
}

// Kind returns the kind of this value.
func (obj *PairValue) Kind() Kind { return KindPair }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *PairValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	x, ok := val.(*PairValue)
	if !ok {
		return fmt.Errorf("cannot cmp %s to %s", obj.Kind(), val.Kind())
	}
	if err := obj.Fst.Cmp(x.Fst); err != nil {
		return errwrap.Wrapf(err, "first components differ")
	}
	if err := obj.Snd.Cmp(x.Snd); err != nil {
		return errwrap.Wrapf(err, "second components differ")
	}
	return nil
}

// OptionValue represents a value that might be absent. A nil V is none.
type OptionValue struct {
	V Value
}

// None returns the absent option value.
func None() *OptionValue { return &OptionValue{} }

// Some wraps a present value.
func Some(v Value) *OptionValue { return &OptionValue{V: v} }

// IsNone returns true if no value is present.
func (obj *OptionValue) IsNone() bool { return obj.V == nil }

// String returns a visual representation of this value.
func (obj *OptionValue) String() string {
	if obj.V == nil {
		return "none"
	}
	return fmt.Sprintf("some(%s)", obj.V)
}

// Kind returns the kind of this value.
func (obj *OptionValue) Kind() Kind { return KindOption }

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *OptionValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	x, ok := val.(*OptionValue)
	if !ok {
		return fmt.Errorf("cannot cmp %s to %s", obj.Kind(), val.Kind())
	}
	if obj.V == nil || x.V == nil {
		if obj.V == nil && x.V == nil {
			return nil
		}
		return fmt.Errorf("values are different")
	}
	return obj.V.Cmp(x.V)
}

// Equal returns true if both values are the same.
func Equal(x, y Value) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	return x.Cmp(y) == nil
}
