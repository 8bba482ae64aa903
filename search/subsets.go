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

// yieldSubsets calls yield once for every category subset that a
// branched column should be tried with, smallest first, stopping early
// if yield returns false or cancelled reports true.
//
// OriginalMode enumerates every non-empty, proper subset of available
// (the full set contributes nothing: selecting every available category
// is equivalent to not constraining the column at all, which is already
// covered by continuing to branch elsewhere). NewMode only goes up to
// half of len(available): a subset larger than that is the mirror of one
// already generated, and the memo set's mirror-key insertion rejects it
// without the cost of materializing and hashing it twice.
func yieldSubsets(available []int, mode Mode, cancelled func() bool, yield func(subset []int) bool) {
	n := len(available)
	if n == 0 {
		return
	}
	maxSize := n - 1
	if mode == NewMode {
		maxSize = n / 2
		if maxSize == 0 {
			maxSize = 1
		}
	}

	chosen := make([]int, 0, maxSize)
	var combinations func(start, size int) bool
	combinations = func(start, size int) bool {
		if cancelled() {
			return false
		}
		if len(chosen) == size {
			subset := make([]int, len(chosen))
			copy(subset, chosen)
			return yield(subset)
		}
		for i := start; i < n; i++ {
			chosen = append(chosen, available[i])
			if !combinations(i+1, size) {
				chosen = chosen[:len(chosen)-1]
				return false
			}
			chosen = chosen[:len(chosen)-1]
		}
		return true
	}

	for size := 1; size <= maxSize; size++ {
		if !combinations(0, size) {
			return
		}
	}
}

func toSet(ids []int) map[int]struct{} {
	out := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
