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
	"math"
	"sync"
	"time"

	"github.com/dchest/siphash"
	"github.com/ledgerzero/zerosum/bitset"
	"github.com/ledgerzero/zerosum/heap"
	"github.com/ledgerzero/zerosum/ints"
	"github.com/ledgerzero/zerosum/rule"
)

// Solution is one registered rule: the row-set fingerprint it selects,
// its sum, and the monotonic id it was assigned. Rule holds only the
// columns the search branched on; columns it never constrained are absent
// (the rule is not completed with their observed categories).
type Solution struct {
	Rule        rule.Rule
	Fingerprint []int
	Sum         float64
	ID          int
}

type registryEntry struct {
	fingerprint []int
	id          int
}

// registry deduplicates solutions by row-set fingerprint and assigns
// monotonically increasing ids in the order solutions reach it. It also
// serializes progress-message emission so concurrent workers never
// interleave output.
type registry struct {
	k0, k1 uint64

	mu       sync.Mutex
	buckets  map[uint64][]registryEntry
	counter  int
	results  []Solution
	start    time.Time
	tol      float64
	progress func(string)
}

func newRegistry(tol float64, progress func(string)) *registry {
	return &registry{
		k0:       0xc0ffee123,
		k1:       0xfee1dead,
		buckets:  make(map[uint64][]registryEntry),
		start:    time.Now(),
		tol:      tol,
		progress: progress,
	}
}

func (r *registry) log(msg string) {
	if r.progress != nil {
		r.progress(msg)
	}
}

// decimalPlaces returns max(2, -floor(log10(tol))); 2 when tol is 0.
func decimalPlaces(tol float64) int {
	if tol <= 0 {
		return 2
	}
	dp := -int(math.Floor(math.Log10(tol)))
	return ints.Max(2, dp)
}

// register records rule rl (as branched, not completed) selecting mask, if its row-set
// fingerprint hasn't been seen before. Returns the assigned solution (with
// its id) and whether it was newly registered.
func (r *registry) register(rl rule.Rule, mask bitset.Set, sum float64) (Solution, bool) {
	fp := mask.Indices()
	h := r.fingerprintHash(fp)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.find(h, fp); ok {
		return r.results[indexByID(r.results, existing.id)], false
	}

	r.counter++
	sol := Solution{Rule: rl, Fingerprint: fp, Sum: sum, ID: r.counter}
	r.buckets[h] = append(r.buckets[h], registryEntry{fingerprint: fp, id: sol.ID})
	r.results = append(r.results, sol)

	elapsed := time.Since(r.start).Seconds()
	dp := decimalPlaces(r.tol)
	r.log(fmt.Sprintf("[%.2fs] Solution %d found: Sum Amount: %.*f", elapsed, sol.ID, dp, sum))
	return sol, true
}

func (r *registry) fingerprintHash(fp []int) uint64 {
	buf := make([]byte, 0, 8*len(fp))
	for _, v := range fp {
		buf = appendVarint(buf, v)
	}
	return siphash.Hash(r.k0, r.k1, buf)
}

func appendVarint(buf []byte, v int) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func (r *registry) find(h uint64, fp []int) (registryEntry, bool) {
	for _, e := range r.buckets[h] {
		if sameFingerprint(e.fingerprint, fp) {
			return e, true
		}
	}
	return registryEntry{}, false
}

func sameFingerprint(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indexByID(sols []Solution, id int) int {
	for i, s := range sols {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Results returns every registered solution, in emission order. Solution
// ids are not guaranteed reproducible across runs (workers race to
// register); the underlying set of row-sets is.
func (r *registry) Results() []Solution {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Solution, len(r.results))
	copy(out, r.results)
	return out
}

// Sorted returns every registered solution ordered by row-set fingerprint,
// which is reproducible across runs even though emission order (and hence
// id assignment) is not.
func (r *registry) Sorted() []Solution {
	out := r.Results()
	heap.OrderSlice(out, func(a, b Solution) bool { return lessFingerprint(a.Fingerprint, b.Fingerprint) })
	sorted := make([]Solution, 0, len(out))
	for len(out) > 0 {
		sorted = append(sorted, heap.PopSlice(&out, func(a, b Solution) bool { return lessFingerprint(a.Fingerprint, b.Fingerprint) }))
	}
	return sorted
}

func lessFingerprint(a, b []int) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
