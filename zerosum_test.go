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

package zerosum

import (
	"testing"

	"github.com/ledgerzero/zerosum/cluster"
	"github.com/ledgerzero/zerosum/column"
)

func tableS1() *column.RawTable {
	return &column.RawTable{
		Headers: []string{"amount", "grp"},
		Rows: [][]string{
			{"1", "a"},
			{"2", "a"},
			{"3", "b"},
			{"-6", "b"},
			{"10", "c"},
		},
	}
}

func TestStandaloneWorkerFindsSolutionAndLabels(t *testing.T) {
	w := NewStandaloneWorker(tableS1(), Options{
		AmountColumn:    "amount",
		GroupingColumns: []string{"grp"},
		Target:          0,
		Tolerance:       0,
	})
	report, err := w.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(report.Solutions))
	}
	for _, i := range []int{0, 1, 2, 3} {
		if report.RowLabels[i] == "" {
			t.Fatalf("row %d: expected a label", i)
		}
	}
	if report.RowLabels[4] != "" {
		t.Fatalf("row 4: expected no label, got %q", report.RowLabels[4])
	}
}

func TestStandaloneWorkerPreCancelYieldsNoSolutions(t *testing.T) {
	w := NewStandaloneWorker(tableS1(), Options{
		AmountColumn:    "amount",
		GroupingColumns: []string{"grp"},
		Target:          0,
		Tolerance:       0,
	})
	w.Cancel()
	report, err := w.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Solutions) != 0 {
		t.Fatalf("len(Solutions) = %d, want 0 after pre-cancel", len(report.Solutions))
	}
}

func TestStandaloneWorkerConfigErrorIsReturned(t *testing.T) {
	w := NewStandaloneWorker(tableS1(), Options{
		AmountColumn:    "nope",
		GroupingColumns: []string{"grp"},
	})
	if _, err := w.Run(); err == nil {
		t.Fatal("expected an error for a missing amount column")
	}
}

func TestReconGroupsByClusterAndFindsZeroSum(t *testing.T) {
	tbl := &column.RawTable{
		Headers: []string{"id", "amount", "grp"},
		Rows: [][]string{
			{"r1", "1", "a"},
			{"r2", "2", "a"},
			{"r3", "3", "b"},
			{"r4", "-6", "b"},
			{"r5", "5", "x"},
			{"r6", "-5", "x"},
		},
	}
	pairs := []cluster.Pair{
		{Left: "r1", Right: "r2"},
		{Left: "r2", Right: "r3"},
		{Left: "r3", Right: "r4"},
		{Left: "r5", Right: "r6"},
	}
	result, err := Recon(tbl, pairs, ReconOptions{
		IDColumn:        "id",
		AmountColumn:    "amount",
		GroupingColumns: []string{"grp"},
		Tolerance:       0,
	})
	if err != nil {
		t.Fatal(err)
	}
	reports := result.Reports()
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}
	totalSolutions := 0
	for _, r := range reports {
		totalSolutions += len(r.Solutions)
	}
	if totalSolutions != 2 {
		t.Fatalf("totalSolutions = %d, want 2 (one per cluster)", totalSolutions)
	}

	out := result.Table()
	wantCols := len(tbl.Headers) + 2
	for i, row := range out.Rows {
		if len(row) != wantCols {
			t.Fatalf("row %d: len = %d, want %d", i, len(row), wantCols)
		}
	}
	if len(out.Rows) != 6 {
		t.Fatalf("len(out.Rows) = %d, want 6 (all rows belong to a size>=2 cluster)", len(out.Rows))
	}
}

func TestReconSkipsSingletonClusters(t *testing.T) {
	tbl := &column.RawTable{
		Headers: []string{"id", "amount", "grp"},
		Rows: [][]string{
			{"r1", "1", "a"},
			{"r2", "-1", "a"},
			{"r3", "9", "z"},
		},
	}
	// r3 is paired with an id from another dataset that isn't a row in
	// this table, so its cluster ends up with only one resolvable row
	// and must be skipped.
	pairs := []cluster.Pair{
		{Left: "r1", Right: "r2"},
		{Left: "r3", Right: "external-1"},
	}

	result, err := Recon(tbl, pairs, ReconOptions{
		IDColumn:        "id",
		AmountColumn:    "amount",
		GroupingColumns: []string{"grp"},
		Tolerance:       0,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Reports()) != 1 {
		t.Fatalf("len(Reports()) = %d, want 1", len(result.Reports()))
	}
	out := result.Table()
	if len(out.Rows) != 2 {
		t.Fatalf("len(out.Rows) = %d, want 2 (r3's one-row cluster is skipped)", len(out.Rows))
	}
}
