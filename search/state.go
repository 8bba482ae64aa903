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

package search

import (
	"sync/atomic"

	"github.com/ledgerzero/zerosum/bitset"
	"github.com/ledgerzero/zerosum/internal/atomicext"
	"github.com/ledgerzero/zerosum/rule"
)

// pendingState is one node of the BFS frontier: the rule that selects
// mask, and mask's precomputed sum.
type pendingState struct {
	rule rule.Rule
	mask bitset.Set
	sum  float64
}

// availableCats returns the sorted category ids of col that still have at
// least one row set in mask.
func availableCats(col *searchColumn, mask bitset.Set) []int {
	out := make([]int, 0, len(col.cats))
	for id := 0; id < len(col.cats); id++ {
		if !col.masks[id].And(mask).Empty() {
			out = append(out, id)
		}
	}
	return out
}

// nextColumn picks the next not-yet-constrained column to branch on, per
// s.cfg.Ordering. Columns with fewer than two categories available under
// mask are never picked. It returns -1 if no column qualifies.
func (s *Searcher) nextColumn(r rule.Rule, mask bitset.Set) int {
	switch s.cfg.Ordering {
	case MinDomainOrder:
		best := -1
		bestN := -1
		for ci, col := range s.columns {
			if r.Has(ci) {
				continue
			}
			n := len(availableCats(col, mask))
			if n < 2 {
				continue
			}
			if bestN == -1 || n < bestN {
				best, bestN = ci, n
			}
		}
		return best
	default: // StaticOrder
		for ci, col := range s.columns {
			if !r.Has(ci) && len(availableCats(col, mask)) >= 2 {
				return ci
			}
		}
		return -1
	}
}

// expand generates every child state reachable from st by branching its
// next column, registering any that match the target along the way. It
// returns the children that remain viable and worth carrying to the next
// BFS level.
func (s *Searcher) expand(st pendingState) []pendingState {
	atomic.AddInt64(&s.diag.StatesExplored, 1)

	col := s.nextColumn(st.rule, st.mask)
	if col == -1 {
		return nil
	}

	avail := availableCats(s.columns[col], st.mask)
	if len(avail) == 0 {
		return nil
	}

	var children []pendingState

	// consider evaluates one candidate child state: checks the bound,
	// registers it if it matches the target, and keeps it for the next
	// BFS level if it remains viable.
	consider := func(r rule.Rule, mask bitset.Set) {
		if mask.Empty() {
			return
		}
		sum := mask.Sum(s.amounts)
		if !s.viable(mask, sum) {
			atomic.AddInt64(&s.diag.StatesPruned, 1)
			return
		}
		if s.matches(sum) {
			s.reg.register(r, mask, sum)
		} else {
			diff := sum - s.target
			if diff < 0 {
				diff = -diff
			}
			atomicext.MinFloat64(&s.diag.ClosestMiss, diff)
		}
		children = append(children, pendingState{rule: r, mask: mask, sum: sum})
	}

	availSet := toSet(avail)
	yieldSubsets(avail, s.cfg.Mode, s.Cancelled, func(subset []int) bool {
		if s.Cancelled() {
			return false
		}
		subsetSet := toSet(subset)
		complementSet := complementOf(availSet, subsetSet)

		childRule := st.rule.With(col, subsetSet)
		mirrorRule := st.rule.With(col, complementSet)
		key := rule.KeyOf(childRule)
		mirrorKey := rule.KeyOf(mirrorRule)
		if s.memo.insertIfAbsent(key, mirrorKey) {
			atomic.AddInt64(&s.diag.Duplicates, 1)
			return true
		}

		childMask := st.mask.And(bitset.Or(masksFor(s.columns[col], subset)...))
		mirrorMask := st.mask.And(bitset.Or(masksFor(s.columns[col], keysOf(complementSet))...))
		consider(childRule, childMask)
		consider(mirrorRule, mirrorMask)
		return true
	})

	return children
}

func complementOf(universe, chosen map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(universe)-len(chosen))
	for c := range universe {
		if _, ok := chosen[c]; !ok {
			out[c] = struct{}{}
		}
	}
	return out
}

func keysOf(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func masksFor(col *searchColumn, ids []int) []bitset.Set {
	out := make([]bitset.Set, len(ids))
	for i, id := range ids {
		out[i] = col.masks[id]
	}
	return out
}
