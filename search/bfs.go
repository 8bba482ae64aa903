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
	"fmt"
	"sort"
	"sync"

	"github.com/ledgerzero/zerosum/bitset"
	"github.com/ledgerzero/zerosum/rule"
)

// Run drives the level-synchronous BFS to completion (or to cancellation)
// and returns the solutions found, in discovery order. Each level's
// states are expanded in parallel on the Searcher's worker pool; the
// resulting child states are sorted into a deterministic order (by
// canonical rule key) before becoming the next level, so expansion order
// - and hence which duplicate of a mirror pair wins the memo race - is
// reproducible across runs with the same thread count... reproducible up
// to goroutine scheduling within a level, which never changes which
// states are explored, only the order solutions are assigned ids in.
func (s *Searcher) Run() []Solution {
	root := s.root()
	level := []pendingState{root}
	s.reg.log(fmt.Sprintf("starting search: target=%.4f tolerance=%.4f rows=%d", s.target, s.tolerance, s.enc.N))

	if s.matches(root.sum) {
		s.reg.register(root.rule, root.mask, root.sum)
	}

	for depth := 0; len(level) > 0 && !s.Cancelled(); depth++ {
		var mu sync.Mutex
		var next []pendingState

		tasks := make([]func(), len(level))
		for i, st := range level {
			st := st
			tasks[i] = func() {
				children := s.expand(st)
				if len(children) == 0 {
					return
				}
				mu.Lock()
				next = append(next, children...)
				mu.Unlock()
			}
		}
		s.pool.RunAll(tasks)

		sort.Slice(next, func(i, j int) bool {
			return rule.Less(rule.KeyOf(next[i].rule), rule.KeyOf(next[j].rule))
		})
		s.reg.log(fmt.Sprintf("level %d: %d states expanded into %d", depth, len(level), len(next)))
		level = next
	}

	return s.reg.Results()
}

func (s *Searcher) root() pendingState {
	full := bitset.Full(s.enc.N)
	return pendingState{rule: rule.Empty(), mask: full, sum: full.Sum(s.amounts)}
}
