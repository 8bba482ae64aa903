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

import "github.com/ledgerzero/zerosum/bitset"

// viable reports whether the target is still reachable from mask by
// further removing rows: if the current sum already undershoots the
// target, only the positive rows still selected can push it back up; if
// it overshoots, only the negative rows still selected can pull it back
// down. A mask whose sum matches the target is trivially viable.
func (s *Searcher) viable(mask bitset.Set, sum float64) bool {
	if sum < s.target {
		ub := mask.SumWhere(s.amounts, func(v float64) bool { return v >= 0 })
		return ub >= s.target-s.tolerance
	}
	if sum > s.target {
		lb := mask.SumWhere(s.amounts, func(v float64) bool { return v <= 0 })
		return lb <= s.target+s.tolerance
	}
	return true
}

// matches reports whether sum is within tolerance of the target.
func (s *Searcher) matches(sum float64) bool {
	diff := sum - s.target
	if diff < 0 {
		diff = -diff
	}
	return diff <= s.tolerance
}
