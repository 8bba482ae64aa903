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

// Package rule defines the category-value rule that a branch-and-bound
// search state is built from: a conjunction of per-column category-set
// membership tests.
package rule

import "sort"

// Term is one column's contribution to a Rule: the set of category ids
// (for that column) a matching row must belong to.
type Term struct {
	Column int
	Cats   map[int]struct{}
}

// Rule is a partial mapping from column index to a chosen, non-empty
// subset of that column's category ids. The order of Terms reflects the
// order columns were branched on, which is what makes "the last-added
// column" well defined for Mirror.
type Rule struct {
	Terms []Term
}

// Empty returns a Rule with no constrained columns (the BFS root rule).
func Empty() Rule { return Rule{} }

// Has reports whether column col is already constrained by r.
func (r Rule) Has(col int) bool {
	for _, t := range r.Terms {
		if t.Column == col {
			return true
		}
	}
	return false
}

// Cats returns the category set for col, and whether col is constrained.
func (r Rule) Cats(col int) (map[int]struct{}, bool) {
	for _, t := range r.Terms {
		if t.Column == col {
			return t.Cats, true
		}
	}
	return nil, false
}

// With returns a new Rule extending r with col -> cats. col must not
// already be constrained in r.
func (r Rule) With(col int, cats map[int]struct{}) Rule {
	out := Rule{Terms: make([]Term, len(r.Terms)+1)}
	copy(out.Terms, r.Terms)
	out.Terms[len(r.Terms)] = Term{Column: col, Cats: cats}
	return out
}

// Columns returns the set of column indices constrained by r.
func (r Rule) Columns() []int {
	out := make([]int, len(r.Terms))
	for i, t := range r.Terms {
		out[i] = t.Column
	}
	return out
}

// Mirror returns the rule obtained by complementing the category set of
// the last-added column within that column's available category ids,
// leaving every other column's term untouched. Mirror of an empty rule is
// itself empty.
func (r Rule) Mirror(available func(col int) map[int]struct{}) Rule {
	if len(r.Terms) == 0 {
		return r
	}
	last := len(r.Terms) - 1
	out := Rule{Terms: make([]Term, len(r.Terms))}
	copy(out.Terms, r.Terms)
	lastCol := out.Terms[last].Column
	out.Terms[last] = Term{Column: lastCol, Cats: complement(available(lastCol), out.Terms[last].Cats)}
	return out
}

func complement(universe, chosen map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(universe))
	for c := range universe {
		if _, ok := chosen[c]; !ok {
			out[c] = struct{}{}
		}
	}
	return out
}

// Key is the canonical representation of a Rule: columns in the order
// they were added to the rule (its Terms order), each paired with its
// category ids sorted ascending. Columns are not re-sorted, so two rules
// constraining the same columns in a different order get different Keys.
// Two rules with the same Key select the same set of rows.
type Key struct {
	cols []int
	cats [][]int
}

// KeyOf computes the canonical Key of r.
func KeyOf(r Rule) Key {
	k := Key{cols: make([]int, len(r.Terms)), cats: make([][]int, len(r.Terms))}
	for i, t := range r.Terms {
		k.cols[i] = t.Column
		ids := make([]int, 0, len(t.Cats))
		for c := range t.Cats {
			ids = append(ids, c)
		}
		sort.Ints(ids)
		k.cats[i] = ids
	}
	return k
}

// Equal reports whether two Keys describe the same rule.
func (k Key) Equal(o Key) bool {
	if len(k.cols) != len(o.cols) {
		return false
	}
	for i := range k.cols {
		if k.cols[i] != o.cols[i] {
			return false
		}
		if len(k.cats[i]) != len(o.cats[i]) {
			return false
		}
		for j := range k.cats[i] {
			if k.cats[i][j] != o.cats[i][j] {
				return false
			}
		}
	}
	return true
}

// Less gives Keys a total, deterministic order (compare by column list,
// then by category lists), used to sort BFS children before the next
// level so expansion order is reproducible across runs.
func Less(a, b Key) bool {
	n := len(a.cols)
	if len(b.cols) < n {
		n = len(b.cols)
	}
	for i := 0; i < n; i++ {
		if a.cols[i] != b.cols[i] {
			return a.cols[i] < b.cols[i]
		}
		m := len(a.cats[i])
		if len(b.cats[i]) < m {
			m = len(b.cats[i])
		}
		for j := 0; j < m; j++ {
			if a.cats[i][j] != b.cats[i][j] {
				return a.cats[i][j] < b.cats[i][j]
			}
		}
		if len(a.cats[i]) != len(b.cats[i]) {
			return len(a.cats[i]) < len(b.cats[i])
		}
	}
	return len(a.cols) < len(b.cols)
}

// Bytes serializes k deterministically, for use as a hash input.
func (k Key) Bytes() []byte {
	// rough capacity estimate; exact sizing isn't required for correctness
	buf := make([]byte, 0, 8*(len(k.cols)+1))
	for i, col := range k.cols {
		buf = appendInt(buf, col)
		for _, c := range k.cats[i] {
			buf = appendInt(buf, c)
		}
		buf = append(buf, '|')
	}
	return buf
}

func appendInt(buf []byte, v int) []byte {
	var tmp [20]byte
	n := len(tmp)
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		n--
		tmp[n] = '0'
	}
	for v > 0 {
		n--
		tmp[n] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		n--
		tmp[n] = '-'
	}
	buf = append(buf, tmp[n:]...)
	return append(buf, ',')
}

// Completed is a Rule that has been completed (every column has a
// category set, including ones that were never branched on) and annotated
// with the solution id it was registered under.
type Completed struct {
	Rule       Rule
	SolutionID int
}
