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

package xsv

import "encoding/json"

// Hint specifies the options for parsing CSV/TSV files into a
// column.RawTable. ReadTable consults only HasHeader; it does not apply
// SkipRecords or Separator, so skipping leading records and choosing a
// CSV separator are done through the chopper's own SkipRecords and
// Separator fields. Unlike the hints a columnar-store ingest path
// would need, no per-field type coercion lives here: every value stays a
// string until the search engine's column package encodes it, so a
// single hint works for every input shape.
type Hint struct {
	// SkipRecords allows skipping the first N records (useful when a
	// file has banner lines before the header row).
	SkipRecords int `json:"skipRecords"`
	// Separator allows specifying a custom separator (only applicable
	// for CSV; TSV is always tab-separated).
	Separator rune `json:"separator"`
	// HasHeader indicates the first remaining record (after
	// SkipRecords) holds column names rather than data.
	HasHeader bool `json:"hasHeader"`
}

// ParseHint parses a JSON byte array into a Hint.
func ParseHint(hint []byte) (*Hint, error) {
	var h Hint
	if err := json.Unmarshal(hint, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
