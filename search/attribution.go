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
	"sort"
	"strconv"
	"strings"

	"github.com/ledgerzero/zerosum/column"
)

// RowLabels returns one label per row of the original (pre-encoding)
// table: the underscore-joined, ascending list of solution ids a row
// participates in, or "" if it belongs to none. Rows dropped during
// encoding (zero amount) always get "".
func RowLabels(enc *column.Encoded, results []Solution, totalRows int) []string {
	labels := make([][]int, totalRows)
	for _, sol := range results {
		for _, filteredRow := range sol.Fingerprint {
			orig := enc.KeptIndices[filteredRow]
			labels[orig] = append(labels[orig], sol.ID)
		}
	}

	out := make([]string, totalRows)
	for i, ids := range labels {
		if len(ids) == 0 {
			continue
		}
		sort.Ints(ids)
		parts := make([]string, len(ids))
		for j, id := range ids {
			parts[j] = strconv.Itoa(id)
		}
		out[i] = strings.Join(parts, "_")
	}
	return out
}
