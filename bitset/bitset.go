// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package bitset implements a packed, word-oriented bitmask over row
// positions. It is the selection-mask representation used throughout the
// search engine: one bit per row, AND'd across grouping columns and OR'd
// across the categories chosen within a column.
package bitset

import (
	"math/bits"

	"github.com/ledgerzero/zerosum/ints"
)

const wordBits = 64

// Set is a fixed-size, word-packed bitmask over row positions [0, n).
type Set struct {
	words []uint64
	n     int
}

// New returns an all-zero Set over n row positions.
func New(n int) Set {
	return Set{words: make([]uint64, ints.ChunkCount(uint(n), uint(wordBits))), n: n}
}

// Full returns a Set with all n row positions set.
func Full(n int) Set {
	s := New(n)
	if n > 0 {
		ints.SetBits(s.words, 0, uint(n))
	}
	return s
}

// Len returns the number of row positions the set ranges over.
func (s Set) Len() int { return s.n }

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	w := make([]uint64, len(s.words))
	copy(w, s.words)
	return Set{words: w, n: s.n}
}

// Test reports whether row i is set.
func (s Set) Test(i int) bool {
	return ints.TestBit(s.words, i)
}

// Set sets row i.
func (s Set) Set(i int) {
	ints.SetBit(s.words, i)
}

// And returns the intersection of s and t. s and t must have equal Len.
func (s Set) And(t Set) Set {
	out := New(s.n)
	for i := range out.words {
		out.words[i] = s.words[i] & t.words[i]
	}
	return out
}

// AndInto intersects t into s in place.
func (s Set) AndInto(t Set) {
	for i := range s.words {
		s.words[i] &= t.words[i]
	}
}

// Or returns the union of sets, which must all have equal Len. With no
// arguments it returns the zero Set.
func Or(sets ...Set) Set {
	if len(sets) == 0 {
		return Set{}
	}
	out := New(sets[0].n)
	for _, s := range sets {
		for i := range out.words {
			out.words[i] |= s.words[i]
		}
	}
	return out
}

// PopCount returns the number of set rows.
func (s Set) PopCount() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no row is set.
func (s Set) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Iter calls fn for every set row position, in ascending order. Iteration
// stops early if fn returns false.
func (s Set) Iter(fn func(row int) bool) {
	for wi, w := range s.words {
		base := wi * wordBits
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			if !fn(base + bit) {
				return
			}
			w &= w - 1
		}
	}
}

// Indices returns the ordered tuple of set row positions. This is the
// row-set fingerprint used to deduplicate solutions.
func (s Set) Indices() []int {
	out := make([]int, 0, s.PopCount())
	s.Iter(func(row int) bool {
		out = append(out, row)
		return true
	})
	return out
}

// Sum reduces amounts over the rows set in s.
func (s Set) Sum(amounts []float64) float64 {
	var total float64
	s.Iter(func(row int) bool {
		total += amounts[row]
		return true
	})
	return total
}

// SumWhere reduces amounts over rows that are set in s AND satisfy pred.
func (s Set) SumWhere(amounts []float64, pred func(v float64) bool) float64 {
	var total float64
	s.Iter(func(row int) bool {
		if v := amounts[row]; pred(v) {
			total += v
		}
		return true
	})
	return total
}
