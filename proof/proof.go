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

// Package proof contains the derivation trees that record which closure rule
// produced a monotonicity or admissibility certificate. They carry no logical
// weight at runtime, but they are what gets printed when a user asks why a
// definition was accepted, and they make rejected constructions easy to debug.
package proof

import (
	"fmt"
	"strings"

	"github.com/purpleidea/partialfix/util"
)

// Tree is a single node in a derivation. The Rule is the name of the lemma
// that was applied, and the Premises are the derivations of its hypotheses.
type Tree struct {
	// Rule is the name of the closure lemma, eg: monotone_bind.
	Rule string

	// Note is an optional annotation, such as the variable a pointwise rule
	// ranges over, or the reason given for an assumption.
	Note string

	// Premises are the sub derivations this rule consumed.
	Premises []*Tree
}

// New builds a derivation node. Nil premises are skipped so that callers can
// pass optional sub derivations directly.
func New(rule string, premises ...*Tree) *Tree {
	obj := &Tree{
		Rule: rule,
	}
	for _, x := range premises {
		if x == nil {
			continue
		}
		obj.Premises = append(obj.Premises, x)
	}
	return obj
}

// Annotate sets the note on this node and returns it for chaining.
func (obj *Tree) Annotate(format string, v ...interface{}) *Tree {
	obj.Note = fmt.Sprintf(format, v...)
	return obj
}

// String returns an indented rendering of the whole derivation.
func (obj *Tree) String() string {
	if obj == nil {
		return "<nil>"
	}
	s := obj.Rule
	if obj.Note != "" {
		s += fmt.Sprintf(" (%s)", obj.Note)
	}
	lines := []string{s}
	for _, x := range obj.Premises {
		lines = append(lines, util.Indent(x.String()))
	}
	return strings.Join(lines, "\n")
}

// Rules returns the rule names used in this derivation in pre-order.
func (obj *Tree) Rules() []string {
	if obj == nil {
		return nil
	}
	rules := []string{obj.Rule}
	for _, x := range obj.Premises {
		rules = append(rules, x.Rules()...)
	}
	return rules
}

// Size returns the number of nodes in the derivation.
func (obj *Tree) Size() int {
	return len(obj.Rules())
}

// Uses returns true if the named rule appears anywhere in the derivation.
func (obj *Tree) Uses(rule string) bool {
	return util.StrInList(rule, obj.Rules())
}
