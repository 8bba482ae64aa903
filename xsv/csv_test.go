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

import (
	"strings"
	"testing"
)

func TestReadTableCSVWithHeader(t *testing.T) {
	r := strings.NewReader("amount,grp\n1,a\n2,b\n")
	ch := &CsvChopper{}
	tbl, err := ReadTable(r, ch, &Hint{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Headers) != 2 || tbl.Headers[0] != "amount" || tbl.Headers[1] != "grp" {
		t.Fatalf("Headers = %v", tbl.Headers)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "1" || tbl.Rows[1][1] != "b" {
		t.Fatalf("Rows = %v", tbl.Rows)
	}
}

func TestReadTableCSVSyntheticHeaders(t *testing.T) {
	r := strings.NewReader("1,a\n2,b\n")
	ch := &CsvChopper{}
	tbl, err := ReadTable(r, ch, &Hint{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"col0", "col1"}
	for i, h := range want {
		if tbl.Headers[i] != h {
			t.Fatalf("Headers = %v, want %v", tbl.Headers, want)
		}
	}
}

func TestReadTableCSVCustomSeparator(t *testing.T) {
	r := strings.NewReader("1;a\n2;b\n")
	ch := &CsvChopper{Separator: ';'}
	tbl, err := ReadTable(r, ch, &Hint{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[0][0] != "1" {
		t.Fatalf("Rows = %v", tbl.Rows)
	}
}

func TestReadTableCSVSkipsBannerLines(t *testing.T) {
	r := strings.NewReader("ignore this\namount,grp\n1,a\n")
	ch := &CsvChopper{SkipRecords: 1}
	tbl, err := ReadTable(r, ch, &Hint{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Headers[0] != "amount" {
		t.Fatalf("Headers = %v", tbl.Headers)
	}
}

func TestReadTableEmptyInputIsAnError(t *testing.T) {
	r := strings.NewReader("")
	ch := &CsvChopper{}
	if _, err := ReadTable(r, ch, &Hint{}); err == nil {
		t.Fatal("expected an error for empty input")
	}
}
