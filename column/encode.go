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

package column

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ledgerzero/zerosum/bitset"
)

// defaultNullSentinel is substituted for empty/null categorical values so
// they participate in search as an ordinary category rather than being
// silently dropped.
const defaultNullSentinel = "_Blank_"

// Spec describes how to encode a RawTable for the search engine: which
// column holds the numeric amount, which columns are grouping
// (categorical) dimensions, and (optionally) a non-default null sentinel.
type Spec struct {
	AmountColumn    string
	GroupingColumns []string
	NullSentinel    string
}

func (s Spec) sentinel() string {
	if s.NullSentinel != "" {
		return s.NullSentinel
	}
	return defaultNullSentinel
}

// Column is one encoded grouping dimension.
type Column struct {
	Name  string
	Cats  []string         // category id -> original string value, sorted
	Code  []int            // per-row category id (length == Encoded.N)
	Masks map[int]bitset.Set // category id -> row mask
}

// CatID returns the id assigned to value in this column, and whether it
// was observed at all.
func (c *Column) CatID(value string) (int, bool) {
	// linear scan is fine: columns rarely have more than a few thousand
	// distinct categories, and this is only used for diagnostics/tests.
	for i, v := range c.Cats {
		if v == value {
			return i, true
		}
	}
	return 0, false
}

// Encoded is the result of encoding a RawTable: per-column category
// encodings, the filtered amount vector, and the mapping back to original
// row positions.
type Encoded struct {
	Columns      []*Column
	ColumnOrder  []string // grouping column names in declaration order (same order as Columns)
	Amounts      []float64
	N            int   // number of rows after zero-amount filtering
	KeptIndices  []int // post-filter row index -> original row index
	ZeroExcluded int
}

// ColumnByName finds an encoded column by name.
func (e *Encoded) ColumnByName(name string) *Column {
	for _, c := range e.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Encode builds the per-column category encodings for t, dropping rows
// whose amount is exactly zero (they cannot change any subset sum).
// Configuration errors (missing column, non-numeric amount) are returned
// here, before any search work is attempted.
func Encode(t *RawTable, spec Spec) (*Encoded, error) {
	if len(spec.GroupingColumns) == 0 {
		return nil, fmt.Errorf("zerosum: at least one grouping column is required")
	}
	rawAmounts, err := t.Column(spec.AmountColumn)
	if err != nil {
		return nil, fmt.Errorf("zerosum: amount column: %w", err)
	}
	amounts := make([]float64, len(rawAmounts))
	for i, s := range rawAmounts {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("zerosum: amount column %q row %d: %q is not numeric: %w",
				spec.AmountColumn, i, s, err)
		}
		amounts[i] = v
	}

	rawGroups := make([][]string, len(spec.GroupingColumns))
	for i, name := range spec.GroupingColumns {
		vals, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("zerosum: grouping column: %w", err)
		}
		rawGroups[i] = vals
	}

	kept := make([]int, 0, len(amounts))
	for i, v := range amounts {
		if v != 0 {
			kept = append(kept, i)
		}
	}
	zeroExcluded := len(amounts) - len(kept)

	n := len(kept)
	filteredAmounts := make([]float64, n)
	for i, orig := range kept {
		filteredAmounts[i] = amounts[orig]
	}

	sentinel := spec.sentinel()
	columns := make([]*Column, len(spec.GroupingColumns))
	for ci, name := range spec.GroupingColumns {
		col := &Column{Name: name}
		seen := make(map[string]struct{})
		values := make([]string, n)
		for i, orig := range kept {
			v := rawGroups[ci][orig]
			if v == "" {
				v = sentinel
			}
			values[i] = v
			seen[v] = struct{}{}
		}
		cats := make([]string, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		col.Cats = cats

		idOf := make(map[string]int, len(cats))
		for id, v := range cats {
			idOf[v] = id
		}
		col.Code = make([]int, n)
		rowsByCat := make(map[int][]int, len(cats))
		for i, v := range values {
			id := idOf[v]
			col.Code[i] = id
			rowsByCat[id] = append(rowsByCat[id], i)
		}
		col.Masks = make(map[int]bitset.Set, len(cats))
		for id, rows := range rowsByCat {
			m := bitset.New(n)
			for _, r := range rows {
				m.Set(r)
			}
			col.Masks[id] = m
		}
		columns[ci] = col
	}

	return &Encoded{
		Columns:      columns,
		ColumnOrder:  append([]string{}, spec.GroupingColumns...),
		Amounts:      filteredAmounts,
		N:            n,
		KeptIndices:  kept,
		ZeroExcluded: zeroExcluded,
	}, nil
}
