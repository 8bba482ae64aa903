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
	"sync"

	"github.com/dchest/siphash"
	"github.com/ledgerzero/zerosum/rule"
)

// memoSet is the shared set of rule keys already seen by the BFS. It is an
// exclusive-lock hash set: critical sections are a hash computation, a
// bucket lookup, and a short slice append, so a single mutex outperforms
// anything fancier. Keys are hashed with siphash (the same fast keyed hash
// the solution registry uses for row-set fingerprints) to keep bucket
// lookups independent of how large a rule's category sets are.
type memoSet struct {
	k0, k1 uint64

	mu      sync.Mutex
	buckets map[uint64][]rule.Key
}

func newMemoSet() *memoSet {
	return &memoSet{k0: 0x5ea1e5c0ffee, k1: 0xba5eba11, buckets: make(map[uint64][]rule.Key)}
}

func (m *memoSet) hash(k rule.Key) uint64 {
	return siphash.Hash(m.k0, m.k1, k.Bytes())
}

// insertIfAbsent inserts k (and its sibling key, typically k's mirror) if
// neither is already present, reporting whether either one was a
// duplicate. It is implemented as a single critical section so a rule and
// its mirror are checked and inserted atomically with respect to other
// callers.
func (m *memoSet) insertIfAbsent(k, mirror rule.Key) (duplicate bool) {
	hk := m.hash(k)
	hm := m.hash(mirror)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.contains(hk, k) || m.contains(hm, mirror) {
		return true
	}
	m.buckets[hk] = append(m.buckets[hk], k)
	m.buckets[hm] = append(m.buckets[hm], mirror)
	return false
}

func (m *memoSet) contains(h uint64, k rule.Key) bool {
	for _, existing := range m.buckets[h] {
		if existing.Equal(k) {
			return true
		}
	}
	return false
}
