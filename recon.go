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
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/ledgerzero/zerosum/cluster"
	"github.com/ledgerzero/zerosum/column"
	"github.com/ledgerzero/zerosum/search"
)

// ReconOptions configures a recon run: group rows into clusters via
// record-linkage pairs, then search each cluster independently for
// subsets summing to zero.
type ReconOptions struct {
	IDColumn        string
	AmountColumn    string
	GroupingColumns []string
	Tolerance       float64
	Threads         int
	ProgressSink    func(string)
}

// ClusterReport is one cluster's search outcome.
type ClusterReport struct {
	ClusterID int
	Solutions []search.Solution
	RowLabels []string // indexed by position within this cluster's rows
}

// ReconResult is the outcome of a full recon run: one ClusterReport per
// surviving cluster, plus enough bookkeeping to stitch the per-cluster
// row labels back onto a combined output table.
type ReconResult struct {
	headers []string
	reports []ClusterReport
	rows    [][][]string // rows[i] are the original rows backing reports[i], in RowLabels order
}

// Reports returns one report per surviving cluster (size >= 2, all row
// ids resolved), ordered by cluster id.
func (r *ReconResult) Reports() []ClusterReport {
	return r.reports
}

// Table returns the combined input dataframe restricted to clustered
// rows, with trailing cluster_id and recon_group columns appended, per
// the recon output schema.
func (r *ReconResult) Table() *column.RawTable {
	out := &column.RawTable{
		Headers: append(append([]string{}, r.headers...), "cluster_id", "recon_group"),
	}
	for ci, rep := range r.reports {
		for ri, row := range r.rows[ci] {
			label := ""
			if ri < len(rep.RowLabels) {
				label = rep.RowLabels[ri]
			}
			newRow := append(append([]string{}, row...), strconv.Itoa(rep.ClusterID), label)
			out.Rows = append(out.Rows, newRow)
		}
	}
	return out
}

// Recon clusters t's rows using pairs, then runs an independent
// target-0 search within each cluster. Rows whose id never appears in
// pairs are not assigned to any cluster and are skipped; clusters with
// fewer than two rows are skipped as well, since no subset of a single
// row (other than the row itself, which is never a useful "group") can
// be a zero-sum group.
func Recon(t *column.RawTable, pairs []cluster.Pair, opts ReconOptions) (*ReconResult, error) {
	idCol, err := t.Column(opts.IDColumn)
	if err != nil {
		return nil, fmt.Errorf("zerosum: recon: %w", err)
	}

	clusterOf := cluster.ClustersFromPairs(pairs)

	rowsByCluster := make(map[int][]int)
	for row, id := range idCol {
		if cid, ok := clusterOf[id]; ok {
			rowsByCluster[cid] = append(rowsByCluster[cid], row)
		}
	}

	clusterIDs := make([]int, 0, len(rowsByCluster))
	for cid, rows := range rowsByCluster {
		if len(rows) < 2 {
			continue
		}
		clusterIDs = append(clusterIDs, cid)
	}
	sort.Ints(clusterIDs)

	result := &ReconResult{headers: append([]string{}, t.Headers...)}
	var cancelled int32

	for _, cid := range clusterIDs {
		if atomic.LoadInt32(&cancelled) != 0 {
			break
		}
		rows := rowsByCluster[cid]
		sub := subTable(t, rows)

		engine, err := Prepare(sub, Options{
			AmountColumn:    opts.AmountColumn,
			GroupingColumns: opts.GroupingColumns,
			Target:          0,
			Tolerance:       opts.Tolerance,
			Threads:         opts.Threads,
			ProgressSink:    opts.ProgressSink,
		})
		if err != nil {
			if opts.ProgressSink != nil {
				opts.ProgressSink(fmt.Sprintf("⚠ Cluster %d: %s", cid, err))
			}
			continue
		}

		solutions := engine.Search()
		labels := engine.RowLabels(solutions, len(sub.Rows))
		engine.Close()

		if opts.ProgressSink != nil {
			opts.ProgressSink(fmt.Sprintf("Cluster %d: %d zero-sum group(s) found.", cid, len(solutions)))
		}

		result.reports = append(result.reports, ClusterReport{ClusterID: cid, Solutions: solutions, RowLabels: labels})
		result.rows = append(result.rows, sub.Rows)
	}

	if opts.ProgressSink != nil {
		totalSolutions := 0
		totalRows := 0
		for i, rep := range result.reports {
			totalSolutions += len(rep.Solutions)
			totalRows += len(result.rows[i])
		}
		opts.ProgressSink(fmt.Sprintf("AutoRecon complete — %d groups, %d rows.", totalSolutions, totalRows))
	}

	return result, nil
}

func subTable(t *column.RawTable, rows []int) *column.RawTable {
	out := &column.RawTable{Headers: t.Headers, Rows: make([][]string, len(rows))}
	for i, r := range rows {
		out.Rows[i] = t.Rows[r]
	}
	return out
}
