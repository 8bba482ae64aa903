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

// Package column encodes a row table's grouping columns as small integer
// category ids and precomputes per-category row bitmasks. It also defines
// RawTable, the in-memory row table the loaders produce, which can be
// extended with output columns via WithColumn.
package column

import "fmt"

// RawTable is an in-memory row table addressed by column name. It is the
// common interchange format between loaders (xsv, a recon pairs file) and
// the engine.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of name in t.Headers, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column, one per row.
func (t *RawTable) Column(name string) ([]string, error) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out, nil
}

// WithColumn returns a copy of t with an additional trailing column.
func (t *RawTable) WithColumn(name string, values []string) *RawTable {
	out := &RawTable{
		Headers: append(append([]string{}, t.Headers...), name),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		out.Rows[i] = append(append([]string{}, row...), v)
	}
	return out
}
