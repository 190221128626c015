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

// Package mono contains monotone function certificates and the library of
// closure rules that builds them. A *Func can only be obtained from the
// combinators in this package, so holding one means that the function was
// assembled from parts that are each monotone, by rules that preserve it. The
// fixpoint engine only accepts functions that come with such a certificate.
//
// A certificate is relative to the orders of its domain and codomain, which
// are not stored. The combinators are typed so that the obvious order of each
// carrier is the intended one: the pointwise order on functions, the
// componentwise order on pairs, the implication order on bool, and the reverse
// implication order on order.Rev.
//
// Every combinator records its rule name in a derivation tree, see Derivation.
package mono

import (
	"fmt"

	"github.com/purpleidea/partialfix/monad"
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/proof"
	"github.com/purpleidea/partialfix/util/errwrap"
)

// Func is a function from A to B together with the evidence that it is
// monotone.
type Func[A, B any] struct {
	fn   func(A) B
	tree *proof.Tree
}

// Apply runs the function.
func (obj *Func[A, B]) Apply(x A) B {
	return obj.fn(x)
}

// Fn returns the underlying function.
func (obj *Func[A, B]) Fn() func(A) B {
	return obj.fn
}

// Derivation returns the rule tree that built this certificate.
func (obj *Func[A, B]) Derivation() *proof.Tree {
	return obj.tree
}

// String returns the derivation for display purposes.
func (obj *Func[A, B]) String() string {
	return obj.tree.String()
}

// Assume admits a function that the caller asserts to be monotone. Nothing is
// checked here. Use Check to verify the claim on a sample.
func Assume[A, B any](fn func(A) B, reason string) *Func[A, B] {
	return &Func[A, B]{
		fn:   fn,
		tree: proof.New("monotone_assume").Annotate("%s", reason),
	}
}

// Const is the constant function.
func Const[A, B any](b B) *Func[A, B] {
	return &Func[A, B]{
		fn:   func(A) B { return b },
		tree: proof.New("monotone_const"),
	}
}

// Id is the identity function.
func Id[A any]() *Func[A, A] {
	return &Func[A, A]{
		fn:   func(x A) A { return x },
		tree: proof.New("monotone_id"),
	}
}

// Comp is the composition g ∘ f.
func Comp[A, B, C any](g *Func[B, C], f *Func[A, B]) *Func[A, C] {
	return &Func[A, C]{
		fn:   func(x A) C { return g.fn(f.fn(x)) },
		tree: proof.New("monotone_comp", g.tree, f.tree),
	}
}

// Ite is the if-then-else whose condition does not depend on the argument.
func Ite[A, B any](cond bool, k1, k2 *Func[A, B]) *Func[A, B] {
	k := k2
	if cond {
		k = k1
	}
	return &Func[A, B]{
		fn:   k.fn,
		tree: proof.New("monotone_ite", k1.tree, k2.tree).Annotate("%t", cond),
	}
}

// Dite is the dependent if-then-else. Each branch is only built once its side
// of the condition is known to hold, so a branch may rely on the condition,
// for example to extract a value that is only present when it is true.
func Dite[A, B any](cond bool, k1, k2 func() *Func[A, B]) *Func[A, B] {
	k := k2
	if cond {
		k = k1
	}
	f := k()
	return &Func[A, B]{
		fn:   f.fn,
		tree: proof.New("monotone_dite", f.tree).Annotate("%t", cond),
	}
}

// Apply evaluates the argument, which is a function, at a fixed point. This is
// how a recursive call appears in a definition body: the recursion variable
// applied to something that does not depend on it.
func Apply[K, V any](k K) *Func[func(K) V, V] {
	return &Func[func(K) V, V]{
		fn:   func(f func(K) V) V { return f(k) },
		tree: proof.New("monotone_apply").Annotate("%v", k),
	}
}

// Pi builds a function valued result from a family of monotone functions, one
// per index. It is monotone in the pointwise order because each index is. The
// index type may be infinite, so the family is not built here, and the
// derivation of each member is only available from the member itself. Use
// PiOn when the interesting indexes are known.
func Pi[A, K, V any](g func(K) *Func[A, V]) *Func[A, func(K) V] {
	return &Func[A, func(K) V]{
		fn: func(x A) func(K) V {
			return func(k K) V { return g(k).fn(x) }
		},
		tree: proof.New("monotone_of_monotone_apply").Annotate("one derivation per index"),
	}
}

// PiOn is Pi with a sample of indexes. The derivation of the member at the
// first one is recorded as a representative premise.
func PiOn[A, K, V any](domain []K, g func(K) *Func[A, V]) *Func[A, func(K) V] {
	f := Pi(g)
	if len(domain) > 0 {
		f.tree = proof.New("monotone_of_monotone_apply", g(domain[0]).tree).Annotate("%d points, first shown", len(domain))
	}
	return f
}

// Pair builds a pair from two monotone components.
func Pair[A, B, C any](f *Func[A, B], g *Func[A, C]) *Func[A, order.Pair[B, C]] {
	return &Func[A, order.Pair[B, C]]{
		fn:   func(x A) order.Pair[B, C] { return order.MakePair(f.fn(x), g.fn(x)) },
		tree: proof.New("monotone_prod", f.tree, g.tree),
	}
}

// Fst projects the first component of a monotone pair valued function.
func Fst[A, B, C any](f *Func[A, order.Pair[B, C]]) *Func[A, B] {
	return &Func[A, B]{
		fn:   func(x A) B { return f.fn(x).Fst },
		tree: proof.New("monotone_fst", f.tree),
	}
}

// Snd projects the second component of a monotone pair valued function.
func Snd[A, B, C any](f *Func[A, order.Pair[B, C]]) *Func[A, C] {
	return &Func[A, C]{
		fn:   func(x A) C { return f.fn(x).Snd },
		tree: proof.New("monotone_snd", f.tree),
	}
}

// Bind sequences a monotone action with a monotone continuation. The
// continuation is function valued, and must be monotone in the pointwise
// order, which is what Pi produces. The monad has to be MonoBind.
func Bind[X, MA, A, MB any](m monad.MonoBind[MA, A, MB], f *Func[X, MA], g *Func[X, func(A) MB]) *Func[X, MB] {
	return &Func[X, MB]{
		fn:   func(x X) MB { return m.Bind(f.fn(x), g.fn(x)) },
		tree: proof.New("monotone_bind", f.tree, g.tree),
	}
}

// Check verifies by brute force that f is monotone over the samples: for every
// pair of samples with x ⊑ y, it checks f(x) ⊑ f(y). It returns every pair
// that fails.
func Check[A, B any](dom order.PartialOrder[A], cod order.PartialOrder[B], f func(A) B, samples []A) error {
	var reterr error
	for i, x := range samples {
		for j, y := range samples {
			if !dom.Le(x, y) {
				continue
			}
			if !cod.Le(f(x), f(y)) {
				reterr = errwrap.Append(reterr, fmt.Errorf("not monotone: #%d ⊑ #%d but f(%v) ⋢ f(%v)", i, j, x, y))
			}
		}
	}
	return reterr
}
