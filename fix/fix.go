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

// Package fix builds least fixpoints of monotone functions on chain complete
// partial orders, and proves things about them by fixpoint induction.
//
// The least fixpoint of f is the supremum of its iterates. The iterates are
// generated by two rules: if x is an iterate then so is f(x), and if every
// element of a chain is an iterate then so is its supremum. For a monotone f
// they form a chain, every iterate x satisfies x ⊑ f(x), and the supremum of
// all of them is a fixpoint which is below every other one.
//
// We can't run the transfinite construction, so Fixpoint runs it up to a
// finite stage. It starts at the supremum of the empty chain, applies f until
// it observes that the result stopped growing or runs out of iterations, and
// then closes the whole sequence with one last supremum. Over an order of
// finite height this is the exact least fixpoint. Over pointwise orders of
// functions, the result is exact at every point whose evaluation needs fewer
// unfoldings than the iteration limit, and bottom at the others, which is a
// lower approximation of the real thing. Use Demand to evaluate those exactly,
// one point at a time.
package fix

import (
	"fmt"

	"github.com/purpleidea/partialfix/admissible"
	"github.com/purpleidea/partialfix/mono"
	"github.com/purpleidea/partialfix/order"
	"github.com/purpleidea/partialfix/util"
	"github.com/purpleidea/partialfix/util/errwrap"
)

const (
	// DefaultMaxIterations is the number of times the function is applied
	// when no limit is specified.
	DefaultMaxIterations = 256

	// ErrNotFixpoint is returned when the unfolding equation does not hold
	// on the observed points.
	ErrNotFixpoint = util.Error("result is not a fixpoint")

	// ErrInductionFailed is returned when fixpoint induction could not be
	// carried through an iterate.
	ErrInductionFailed = util.Error("fixpoint induction failed")
)

// Rule is the rule that generated an iterate.
type Rule int

const (
	// RuleSup means the iterate is the supremum of earlier iterates.
	RuleSup Rule = iota

	// RuleStep means the iterate is f applied to an earlier iterate.
	RuleStep
)

// String returns the name of the rule.
func (obj Rule) String() string {
	switch obj {
	case RuleSup:
		return "sup"
	case RuleStep:
		return "step"
	}
	return fmt.Sprintf("Rule(%d)", int(obj))
}

// Iterate is one element of the generated chain, along with how it was made.
type Iterate[A any] struct {
	// Value is the element of the carrier.
	Value A

	// Rule is the generating rule.
	Rule Rule

	// From lists the indexes of the iterates this one was generated from.
	// A step has exactly one, a sup has as many as its chain had.
	From []int
}

// Fixpoint is the least fixpoint of a monotone function.
type Fixpoint[A any] struct {
	// Order is the chain complete order of the carrier.
	Order order.CCPO[A]

	// Func is the monotone function.
	Func *mono.Func[A, A]

	// MaxIterations is the largest number of steps to take. If it is zero,
	// then DefaultMaxIterations is used.
	MaxIterations int

	Debug bool
	Logf  func(format string, v ...interface{})

	iterates []*Iterate[A]
	stable   bool
}

// Validate returns an error if the struct was not populated correctly.
func (obj *Fixpoint[A]) Validate() error {
	if obj.Order == nil {
		return fmt.Errorf("the Order is missing")
	}
	if obj.Func == nil {
		return fmt.Errorf("the Func is missing")
	}
	if obj.MaxIterations < 0 {
		return fmt.Errorf("the MaxIterations must not be negative")
	}
	if obj.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}
	return nil
}

// Iterates returns the generated chain. The first element is bottom, as the
// supremum of nothing. Every element after it is a step from its predecessor,
// except the last, which is the supremum of all of the others. The result is
// computed once and cached, so the fixpoint is stable across calls.
func (obj *Fixpoint[A]) Iterates() []*Iterate[A] {
	if obj.iterates != nil {
		return obj.iterates
	}
	max := obj.MaxIterations
	if max == 0 {
		max = DefaultMaxIterations
	}
	exact := order.IsExact(obj.Order)

	iterates := []*Iterate[A]{
		{
			Value: obj.Order.Csup(nil),
			Rule:  RuleSup,
			From:  []int{},
		},
	}
	for i := 0; i < max; i++ {
		prev := len(iterates) - 1
		cur := iterates[prev].Value
		next := obj.Func.Apply(cur)
		iterates = append(iterates, &Iterate[A]{
			Value: next,
			Rule:  RuleStep,
			From:  []int{prev},
		})
		if obj.Debug {
			obj.Logf("iterate %d: step from %d", len(iterates)-1, prev)
		}
		// iterates grow, so cur ⊑ next, and this means they are equal
		if exact && obj.Order.Le(next, cur) {
			obj.stable = true
			if obj.Debug {
				obj.Logf("stable after %d steps", i+1)
			}
			break
		}
	}
	if exact && !obj.stable {
		obj.Logf("not stable after %d steps, using a lower approximation", max)
	}
	if !exact {
		obj.Logf("took %d steps, the order can't observe stability, so this is a lower approximation", max)
	}

	chain := order.Chain[A]{}
	from := []int{}
	for i, x := range iterates {
		chain = append(chain, x.Value)
		from = append(from, i)
	}
	iterates = append(iterates, &Iterate[A]{
		Value: obj.Order.Csup(chain),
		Rule:  RuleSup,
		From:  from,
	})
	obj.iterates = iterates
	return iterates
}

// Stable returns true if the iteration was observed to reach a fixpoint. It is
// always false for orders that are not exact, since they can't observe it.
func (obj *Fixpoint[A]) Stable() bool {
	obj.Iterates()
	return obj.stable
}

// Fix returns the least fixpoint.
func (obj *Fixpoint[A]) Fix() A {
	iterates := obj.Iterates()
	return iterates[len(iterates)-1].Value
}

// Eq checks the unfolding equation fix = f(fix), in both directions of the
// order. For orders that are not exact, this only checks it on the points the
// order compares.
func (obj *Fixpoint[A]) Eq() error {
	x := obj.Fix()
	fx := obj.Func.Apply(x)
	if !obj.Order.Le(x, fx) {
		return errwrap.Wrapf(ErrNotFixpoint, "fix is not below f(fix)")
	}
	if !obj.Order.Le(fx, x) {
		return errwrap.Wrapf(ErrNotFixpoint, "f(fix) is not below fix")
	}
	return nil
}

// Induct proves that the motive holds at the fixpoint. The motive must be
// admissible, which carries it through every sup iterate, and the step
// function must show that the motive is preserved by f: it gets an x which
// satisfies the motive and f(x), and errors if it can't establish it for f(x).
// The step may be nil, in which case the motive is only evaluated.
//
// Both hypotheses are claims that can't be verified in general, so every
// iterate is checked along the way, and the first one where the motive fails
// is reported.
func (obj *Fixpoint[A]) Induct(motive *admissible.Pred[A], step func(x, fx A) error) error {
	if motive == nil {
		return fmt.Errorf("the motive is missing")
	}
	iterates := obj.Iterates()
	for i, it := range iterates {
		switch it.Rule {
		case RuleSup:
			if !motive.Holds(it.Value) {
				return errwrap.Wrapf(ErrInductionFailed, "motive fails at the supremum iterate %d, is it admissible", i)
			}

		case RuleStep:
			x := iterates[it.From[0]].Value
			if step != nil {
				if err := step(x, it.Value); err != nil {
					return errwrap.Wrapf(ErrInductionFailed, "step failed at iterate %d: %v", i, err)
				}
			}
			if !motive.Holds(it.Value) {
				return errwrap.Wrapf(ErrInductionFailed, "motive is not preserved by the step to iterate %d", i)
			}

		default:
			panic(fmt.Sprintf("unknown rule: %s", it.Rule)) // programming error
		}
		if obj.Debug {
			obj.Logf("motive holds at iterate %d (%s)", i, it.Rule)
		}
	}
	return nil
}

// Fix returns the least fixpoint of a monotone function with the default
// settings. It panics if the arguments are missing.
func Fix[A any](o order.CCPO[A], f *mono.Func[A, A]) A {
	obj := &Fixpoint[A]{
		Order: o,
		Func:  f,
		Logf:  func(format string, v ...interface{}) {}, // silent
	}
	if err := obj.Validate(); err != nil {
		panic(err) // programming error
	}
	return obj.Fix()
}
