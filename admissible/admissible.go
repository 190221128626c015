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

// Package admissible contains admissible predicate certificates and the
// library of closure rules that builds them. A predicate P over a CCPO is
// admissible if, for every chain whose elements all satisfy P, the supremum of
// the chain satisfies P too. Taking the empty chain shows that an admissible
// predicate holds at bottom. Admissibility is what lets fixpoint induction get
// past the limit stages of the iteration.
package admissible

import (
	"fmt"

	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/proof"
	"github.com/purpleidea/partialfix/util/errwrap"
)

// Pred is a predicate together with the evidence that it is admissible.
type Pred[A any] struct {
	fn   func(A) bool
	tree *proof.Tree
}

// Holds evaluates the predicate.
func (obj *Pred[A]) Holds(x A) bool {
	return obj.fn(x)
}

// Fn returns the underlying predicate.
func (obj *Pred[A]) Fn() func(A) bool {
	return obj.fn
}

// Derivation returns the rule tree that built this certificate.
func (obj *Pred[A]) Derivation() *proof.Tree {
	return obj.tree
}

// String returns the derivation for display purposes.
func (obj *Pred[A]) String() string {
	return obj.tree.String()
}

// Assume admits a predicate that the caller asserts to be admissible.
func Assume[A any](fn func(A) bool, reason string) *Pred[A] {
	return &Pred[A]{
		fn:   fn,
		tree: proof.New("admissible_assume").Annotate("%s", reason),
	}
}

// True is the predicate that always holds.
func True[A any]() *Pred[A] {
	return &Pred[A]{
		fn:   func(A) bool { return true },
		tree: proof.New("admissible_const_true"),
	}
}

// And is the conjunction of two admissible predicates.
func And[A any](p, q *Pred[A]) *Pred[A] {
	return &Pred[A]{
		fn:   func(x A) bool { return p.fn(x) && q.fn(x) },
		tree: proof.New("admissible_and", p.tree, q.tree),
	}
}

// Or is the disjunction of two admissible predicates. This one is not obvious:
// given a chain where every element satisfies P or Q, at least one of the two
// must hold on a cofinal part of the chain, since otherwise there would be an
// element above every P element and another above every Q element, and the
// larger of those two would satisfy neither. That cofinal part is a chain with
// the same supremum, so the admissibility of that disjunct applies.
func Or[A any](p, q *Pred[A]) *Pred[A] {
	return &Pred[A]{
		fn:   func(x A) bool { return p.fn(x) || q.fn(x) },
		tree: proof.New("admissible_or", p.tree, q.tree),
	}
}

// Forall quantifies over a domain. Each member of the family must be
// admissible.
func Forall[A, K any](domain []K, p func(K) *Pred[A]) *Pred[A] {
	return &Pred[A]{
		fn: func(x A) bool {
			for _, k := range domain {
				if !p(k).fn(x) {
					return false
				}
			}
			return true
		},
		tree: proof.New("admissible_pi", representative(domain, p)).Annotate("%d points, first shown", len(domain)),
	}
}

// representative returns the derivation of the family member at the first
// point of the domain, which stands in for all of them.
func representative[K, A any](domain []K, p func(K) *Pred[A]) *proof.Tree {
	if len(domain) == 0 {
		return nil
	}
	return p(domain[0]).tree
}

// Apply lifts an admissible predicate on the codomain to functions, by looking
// at a single point. It is admissible because the pointwise supremum at k is
// the supremum of the chain projected through k.
func Apply[K, V any](k K, p *Pred[V]) *Pred[func(K) V] {
	return &Pred[func(K) V]{
		fn:   func(f func(K) V) bool { return p.fn(f(k)) },
		tree: proof.New("admissible_apply", p.tree).Annotate("%v", k),
	}
}

// PiApply is the predicate that p(k) holds at f(k) for every k in the domain.
func PiApply[K, V any](domain []K, p func(K) *Pred[V]) *Pred[func(K) V] {
	return &Pred[func(K) V]{
		fn: func(f func(K) V) bool {
			for _, k := range domain {
				if !p(k).fn(f(k)) {
					return false
				}
			}
			return true
		},
		tree: proof.New("admissible_pi_apply", representative(domain, p)).Annotate("%d points, first shown", len(domain)),
	}
}

// Fst lifts an admissible predicate to pairs through the first projection.
func Fst[A, B any](p *Pred[A]) *Pred[order.Pair[A, B]] {
	return &Pred[order.Pair[A, B]]{
		fn:   func(x order.Pair[A, B]) bool { return p.fn(x.Fst) },
		tree: proof.New("admissible_pprod_fst", p.tree),
	}
}

// Snd lifts an admissible predicate to pairs through the second projection.
func Snd[A, B any](p *Pred[B]) *Pred[order.Pair[A, B]] {
	return &Pred[order.Pair[A, B]]{
		fn:   func(x order.Pair[A, B]) bool { return p.fn(x.Snd) },
		tree: proof.New("admissible_pprod_snd", p.tree),
	}
}

// Flat admits any predicate over a flat order that holds at bottom. A chain in
// a flat order has its supremum either at bottom or at one of its own elements,
// so nothing beyond the bottom case needs checking. It errors if the predicate
// does not hold at bottom, in which case it is not admissible at all.
func Flat[A any](o *order.Flat[A], p func(A) bool) (*Pred[A], error) {
	if !p(o.Bottom) {
		return nil, fmt.Errorf("predicate does not hold at bottom: %v", o.Bottom)
	}
	return &Pred[A]{
		fn:   p,
		tree: proof.New("admissible_flatOrder"),
	}, nil
}

// OptionEqSome is the predicate "if the option is some y, then q(y)". It holds
// at none, so it is admissible in the flat order on options.
func OptionEqSome[T any](q func(T) bool) *Pred[order.Option[T]] {
	return &Pred[order.Option[T]]{
		fn: func(x order.Option[T]) bool {
			v, ok := x.Get()
			return !ok || q(v)
		},
		tree: proof.New("Option.admissible_eq_some"),
	}
}

// Check verifies admissibility by brute force over a list of chains: whenever
// every element of a chain satisfies the predicate, so must its supremum. It
// errors if one of the inputs is not a chain.
func Check[A any](o order.CCPO[A], p func(A) bool, chains []order.Chain[A]) error {
	var reterr error
	for i, c := range chains {
		if !order.IsChain[A](o, c) {
			reterr = errwrap.Append(reterr, fmt.Errorf("input #%d is not a chain", i))
			continue
		}
		if !All(c, p) {
			continue
		}
		if sup := o.Csup(c); !p(sup) {
			reterr = errwrap.Append(reterr, fmt.Errorf("chain #%d: predicate fails at the supremum %v", i, sup))
		}
	}
	return reterr
}

// All returns true if every element of the chain satisfies the predicate.
func All[A any](c order.Chain[A], p func(A) bool) bool {
	for _, x := range c {
		if !p(x) {
			return false
		}
	}
	return true
}

// Cofinal returns true if the elements of the chain which satisfy p are
// cofinal in it: every element of the chain is below one that satisfies p.
// This decides, for a finite chain, the case split in the proof of Or.
func Cofinal[A any](o order.PartialOrder[A], c order.Chain[A], p func(A) bool) bool {
	for _, x := range c {
		found := false
		for _, y := range c {
			if p(y) && o.Le(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Restrict returns the elements of the chain which satisfy p. If they are
// cofinal, then the result is a chain with the same supremum.
func Restrict[A any](c order.Chain[A], p func(A) bool) order.Chain[A] {
	out := order.Chain[A]{}
	for _, x := range c {
		if p(x) {
			out = append(out, x)
		}
	}
	return out
}
