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

// Package xsv implements parsing CSV (RFC 4180) and TSV (tab separated
// values) files into a column.RawTable, the search engine's in-memory
// row table.
package xsv

import (
	"errors"
	"fmt"
	"io"

	"github.com/ledgerzero/zerosum/column"
)

// Delim is a single-character (rune) field separator, used to let CsvChopper accept
// a custom separator (e.g. ';' or '|') while staying a plain value type
// callers can set as a struct literal field.
type Delim rune

var ErrNoFields = errors.New("xsv: no fields found in input")

// RowChopper reads records row-by-row and splits each record into
// individual fields until the reader is exhausted.
type RowChopper interface {
	// GetNext returns the next record, split into columns.
	GetNext(r io.Reader) ([]string, error)
}

// ReadTable reads every record from r via ch and assembles a
// column.RawTable. If hint.HasHeader, the first record the chopper
// returns (after any records skipped by the chopper's own SkipRecords) is
// used as the header row; otherwise synthetic headers "col0", "col1", ...
// are generated from the width of the first data record. Only
// hint.HasHeader is read; hint.SkipRecords and hint.Separator are not
// applied.
func ReadTable(r io.Reader, ch RowChopper, hint *Hint) (*column.RawTable, error) {
	if hint == nil {
		hint = &Hint{}
	}

	var headers []string
	var rows [][]string
	first := true

	for {
		fields, err := ch.GetNext(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("xsv: %w", err)
		}

		if first {
			first = false
			if hint.HasHeader {
				headers = append([]string{}, fields...)
				continue
			}
			headers = syntheticHeaders(len(fields))
		}

		row := make([]string, len(fields))
		copy(row, fields)
		rows = append(rows, row)
	}

	if headers == nil {
		return nil, ErrNoFields
	}
	return &column.RawTable{Headers: headers, Rows: rows}, nil
}

func syntheticHeaders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("col%d", i)
	}
	return out
}
