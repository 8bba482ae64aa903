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

// Command zerosum finds subsets of a table's rows whose amounts sum to a
// target value within tolerance, either directly (search) or after
// grouping rows into clusters from a record-linkage pairs file (recon).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	gzip "github.com/klauspost/compress/gzip"

	zerosum "github.com/ledgerzero/zerosum"
	"github.com/ledgerzero/zerosum/cluster"
	"github.com/ledgerzero/zerosum/column"
	"github.com/ledgerzero/zerosum/config"
	"github.com/ledgerzero/zerosum/fsutil"
	"github.com/ledgerzero/zerosum/xsv"
)

// runID identifies one CLI invocation in progress lines, so concurrent
// runs writing to the same terminal/log can be told apart.
var runID = uuid.New().String()

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n  zerosum search <run.yaml>\n  zerosum recon <recon.yaml>\n")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 3 {
		usage()
	}
	switch os.Args[1] {
	case "search":
		runSearch(os.Args[2])
	case "recon":
		runRecon(os.Args[2])
	default:
		usage()
	}
}

// openTable reads one input spec, which may be a plain path, a path to a
// gzip-compressed file (.gz), or a glob pattern matching several files
// sharing the same header layout (e.g. "data/2026-*.csv").
func openTable(pathOrGlob string) (*column.RawTable, error) {
	dir := filepath.Dir(pathOrGlob)
	pattern := filepath.Base(pathOrGlob)
	if !strings.ContainsAny(pattern, "*?[") {
		f, err := os.Open(pathOrGlob)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readOne(f, pathOrGlob)
	}

	files, err := fsutil.OpenGlob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files matched %q", pathOrGlob)
	}

	var merged *column.RawTable
	for _, f := range files {
		tbl, err := readOne(f, f.Path())
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path(), err)
		}
		if merged == nil {
			merged = tbl
			continue
		}
		merged.Rows = append(merged.Rows, tbl.Rows...)
	}
	return merged, nil
}

func readOne(f io.Reader, name string) (*column.RawTable, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		f = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	hint := &xsv.Hint{HasHeader: true}
	if strings.HasSuffix(name, ".tsv") {
		return xsv.ReadTable(f, &xsv.TsvChopper{}, hint)
	}
	return xsv.ReadTable(f, &xsv.CsvChopper{}, hint)
}

func runSearch(configPath string) {
	cfg, err := config.LoadRun(configPath)
	if err != nil {
		exitf("%s\n", err)
	}

	tbl, err := openTable(cfg.InputPath)
	if err != nil {
		exitf("reading %s: %s\n", cfg.InputPath, err)
	}

	opts := zerosum.Options{
		AmountColumn:    cfg.AmountColumn,
		GroupingColumns: cfg.GroupingColumns,
		NullSentinel:    cfg.NullSentinel,
		Target:          cfg.Target,
		Tolerance:       cfg.Tolerance,
		Ordering:        parseOrdering(cfg.Ordering),
		Mode:            parseMode(cfg.Mode),
		Threads:         cfg.Threads,
		ProgressSink:    func(msg string) { fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, msg) },
	}

	w := zerosum.NewStandaloneWorker(tbl, opts)
	report, err := w.Run()
	if err != nil {
		exitf("%s\n", err)
	}

	fmt.Printf("solutions found: %d\n", len(report.Solutions))
	fmt.Printf("elapsed: %s\n", report.Elapsed)

	if cfg.OutputPath != "" {
		out := tbl.WithColumn("solution_set", report.RowLabels)
		if err := writeCSV(cfg.OutputPath, out); err != nil {
			exitf("writing %s: %s\n", cfg.OutputPath, err)
		}
	}
}

func runRecon(configPath string) {
	cfg, err := config.LoadRecon(configPath)
	if err != nil {
		exitf("%s\n", err)
	}

	tbl, err := openTable(cfg.InputPath)
	if err != nil {
		exitf("reading %s: %s\n", cfg.InputPath, err)
	}
	pairsTbl, err := openTable(cfg.PairsPath)
	if err != nil {
		exitf("reading %s: %s\n", cfg.PairsPath, err)
	}
	pairs, err := readPairs(pairsTbl)
	if err != nil {
		exitf("%s\n", err)
	}

	result, err := zerosum.Recon(tbl, pairs, zerosum.ReconOptions{
		IDColumn:        cfg.IDColumn,
		AmountColumn:    cfg.AmountColumn,
		GroupingColumns: cfg.GroupingCols,
		Tolerance:       cfg.Tolerance,
		Threads:         cfg.Threads,
		ProgressSink:    func(msg string) { fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, msg) },
	})
	if err != nil {
		exitf("%s\n", err)
	}

	reports := result.Reports()
	for _, r := range reports {
		fmt.Printf("cluster %d: %d solution(s)\n", r.ClusterID, len(r.Solutions))
	}
	out := result.Table()

	if cfg.OutputPath != "" {
		if err := writeCSV(cfg.OutputPath, out); err != nil {
			exitf("writing %s: %s\n", cfg.OutputPath, err)
		}
	}
}

// readPairs expects a two-column table: unique_id_l, unique_id_r (or
// simply the first two columns, whatever they're named).
func readPairs(t *column.RawTable) ([]cluster.Pair, error) {
	li, ri := 0, 1
	if i := t.ColumnIndex("unique_id_l"); i >= 0 {
		li = i
	}
	if i := t.ColumnIndex("unique_id_r"); i >= 0 {
		ri = i
	}
	pairs := make([]cluster.Pair, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row) <= ri {
			continue
		}
		pairs = append(pairs, cluster.Pair{Left: row[li], Right: row[ri]})
	}
	return pairs, nil
}

func parseOrdering(s string) zerosum.Ordering {
	if s == "min-domain" {
		return zerosum.MinDomainOrder
	}
	return zerosum.StaticOrder
}

func parseMode(s string) zerosum.Mode {
	if s == "new" {
		return zerosum.NewMode
	}
	return zerosum.OriginalMode
}

func writeCSV(path string, t *column.RawTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(t.Headers, ",") + "\n"); err != nil {
		return err
	}
	for _, row := range t.Rows {
		quoted := make([]string, len(row))
		for i, v := range row {
			quoted[i] = csvQuote(v)
		}
		if _, err := f.WriteString(strings.Join(quoted, ",") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func csvQuote(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return strconv.Quote(s)
}
