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

package mono

import (
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/proof"
)

// The rules in this file build recursive predicates. The codomain is bool,
// ordered by implication for an inductive definition, or order.Rev, ordered by
// reverse implication for a coinductive one. And, Or, Exists, Forall and Imp
// are monotone in both orders, so they are generic over either carrier. Not is
// the only rule that crosses between them.

// Bool is either of the two predicate carriers.
type Bool interface {
	~bool
}

// And is the conjunction of two monotone predicates.
func And[A any, P Bool](f, g *Func[A, P]) *Func[A, P] {
	return &Func[A, P]{
		fn:   func(x A) P { return f.fn(x) && g.fn(x) },
		tree: proof.New("monotone_and", f.tree, g.tree),
	}
}

// Or is the disjunction of two monotone predicates.
func Or[A any, P Bool](f, g *Func[A, P]) *Func[A, P] {
	return &Func[A, P]{
		fn:   func(x A) P { return f.fn(x) || g.fn(x) },
		tree: proof.New("monotone_or", f.tree, g.tree),
	}
}

// Imp is an implication whose antecedent does not depend on the argument.
func Imp[A any, P Bool](p bool, f *Func[A, P]) *Func[A, P] {
	return &Func[A, P]{
		fn:   func(x A) P { return P(!p || bool(f.fn(x))) },
		tree: proof.New("monotone_imp", f.tree).Annotate("%t", p),
	}
}

// Exists quantifies over a domain. Each member of the family must be monotone.
func Exists[A, K any, P Bool](domain []K, g func(K) *Func[A, P]) *Func[A, P] {
	return &Func[A, P]{
		fn: func(x A) P {
			for _, k := range domain {
				if g(k).fn(x) {
					return true
				}
			}
			return false
		},
		tree: proof.New("monotone_exists", representative(domain, g)).Annotate("%d points, first shown", len(domain)),
	}
}

// Forall quantifies over a domain. Each member of the family must be monotone.
func Forall[A, K any, P Bool](domain []K, g func(K) *Func[A, P]) *Func[A, P] {
	return &Func[A, P]{
		fn: func(x A) P {
			for _, k := range domain {
				if !g(k).fn(x) {
					return false
				}
			}
			return true
		},
		tree: proof.New("monotone_forall", representative(domain, g)).Annotate("%d points, first shown", len(domain)),
	}
}

// representative returns the derivation of the family member at the first
// point of the domain, which stands in for all of them.
func representative[A, K any, P Bool](domain []K, g func(K) *Func[A, P]) *proof.Tree {
	if len(domain) == 0 {
		return nil
	}
	return g(domain[0]).tree
}

// Not negates a coinductive predicate into an inductive one. Negation reverses
// the order, so a function that is monotone into reverse implication becomes
// monotone into implication. This is how a coinductive predicate can be used
// negatively inside an inductive one.
func Not[A any](f *Func[A, order.Rev]) *Func[A, bool] {
	return &Func[A, bool]{
		fn:   func(x A) bool { return !bool(f.fn(x)) },
		tree: proof.New("monotone_not", f.tree),
	}
}

// NotRev negates an inductive predicate into a coinductive one.
func NotRev[A any](f *Func[A, bool]) *Func[A, order.Rev] {
	return &Func[A, order.Rev]{
		fn:   func(x A) order.Rev { return order.Rev(!f.fn(x)) },
		tree: proof.New("monotone_not", f.tree),
	}
}
