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

// Pi is the pointwise order on functions from K into a CCPO over V. This is
// the carrier of a recursive function: f ⊑ g when f(k) ⊑ g(k) at every k.
//
// Functions over an infinite index type can't be compared everywhere, so Le
// only looks at the points in Domain. If Domain enumerates every K, then set
// Total so that the order reports itself as exact. The supremum is computed
// pointwise and lazily, so it is correct at every point, sampled or not.
type Pi[K, V any] struct {
	// Cod is the order of the codomain.
	Cod CCPO[V]

	// Domain is the list of points that Le compares at.
	Domain []K

	// Total specifies that Domain contains every possible K.
	Total bool
}

// Le returns true if f(k) ⊑ g(k) for every k in the domain.
func (obj *Pi[K, V]) Le(f, g func(K) V) bool {
	for _, k := range obj.Domain {
		if !obj.Cod.Le(f(k), g(k)) {
			return false
		}
	}
	return true
}

// Csup returns the pointwise supremum. At each point the chain is projected
// through that point, which is again a chain, and its supremum is taken.
func (obj *Pi[K, V]) Csup(c Chain[func(K) V]) func(K) V {
	fs := make(Chain[func(K) V], len(c)) // copy so the caller can reuse c
	copy(fs, c)
	return func(k K) V {
		return obj.Cod.Csup(ChainApply(fs, k))
	}
}

// Exact returns true if the domain is total and the codomain is exact.
func (obj *Pi[K, V]) Exact() bool {
	return obj.Total && IsExact(obj.Cod)
}

// ChainApply projects a chain of functions through a point. If the input is a
// chain in the pointwise order, then the output is a chain in the codomain.
func ChainApply[K, V any](c Chain[func(K) V], k K) Chain[V] {
	out := make(Chain[V], 0, len(c))
	for _, f := range c {
		out = append(out, f(k))
	}
	return out
}

// PiLattice is the pointwise order on functions from a finite domain into a
// finite complete lattice. Functions are only ever observed at the points in
// Domain. At any other point, the supremum returns the bottom of the codomain.
type PiLattice[K comparable, V any] struct {
	// Cod is the lattice of the codomain.
	Cod FiniteLattice[V]

	// Domain is every point of the index type that we care about.
	Domain []K
}

// Le returns true if f(k) ⊑ g(k) for every k in the domain.
func (obj *PiLattice[K, V]) Le(f, g func(K) V) bool {
	for _, k := range obj.Domain {
		if !obj.Cod.Le(f(k), g(k)) {
			return false
		}
	}
	return true
}

// Sup returns the pointwise supremum of an arbitrary set of functions.
func (obj *PiLattice[K, V]) Sup(s Set[func(K) V]) func(K) V {
	members := Members[func(K) V](obj, s)
	m := make(map[K]V)
	for _, k := range obj.Domain {
		image := []V{}
		for _, f := range members {
			image = append(image, f(k))
		}
		m[k] = obj.Cod.Sup(func(v V) bool {
			for _, x := range image {
				if Eq[V](obj.Cod, x, v) {
					return true
				}
			}
			return false
		})
	}
	return obj.table(m)
}

// Elements enumerates every function from the domain into the codomain.
func (obj *PiLattice[K, V]) Elements() []func(K) V {
	values := obj.Cod.Elements()
	tables := []map[K]V{{}}
	for _, k := range obj.Domain {
		next := []map[K]V{}
		for _, t := range tables {
			for _, v := range values {
				m := make(map[K]V, len(t)+1)
				for key, val := range t {
					m[key] = val
				}
				m[k] = v
				next = append(next, m)
			}
		}
		tables = next
	}
	out := []func(K) V{}
	for _, m := range tables {
		out = append(out, obj.table(m))
	}
	return out
}

// Table builds an element of this lattice from a lookup table. Missing points
// map to the bottom of the codomain.
func (obj *PiLattice[K, V]) Table(m map[K]V) func(K) V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return obj.table(c)
}

func (obj *PiLattice[K, V]) table(m map[K]V) func(K) V {
	bot := LatticeBot[V](obj.Cod)
	return func(k K) V {
		if v, exists := m[k]; exists {
			return v
		}
		return bot
	}
}
