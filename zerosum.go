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

// Package zerosum finds every subset of a table's rows, described as
// a conjunction of column category-set rules, whose amounts sum to a
// target value within tolerance.
package zerosum

import (
	"fmt"

	"github.com/ledgerzero/zerosum/column"
	"github.com/ledgerzero/zerosum/search"
)

// Engine is a single prepared search: an encoded table plus the
// branch-and-bound configuration it will be searched with.
type Engine struct {
	enc *column.Encoded
	s   *search.Searcher
}

// Ordering mirrors search.Ordering, re-exported so callers don't need to
// import the search package directly for simple use.
type Ordering = search.Ordering

// Mode mirrors search.Mode.
type Mode = search.Mode

const (
	StaticOrder    = search.StaticOrder
	MinDomainOrder = search.MinDomainOrder
	OriginalMode   = search.OriginalMode
	NewMode        = search.NewMode
)

// Options configures a standalone search run.
type Options struct {
	AmountColumn    string
	GroupingColumns []string
	NullSentinel    string

	Target    float64
	Tolerance float64
	Ordering  Ordering
	Mode      Mode
	Threads   int

	ProgressSink func(string)
}

// Prepare encodes t and readies an Engine to search it. Encoding errors
// (missing columns, non-numeric amounts) are returned here, before any
// search work begins.
func Prepare(t *column.RawTable, opts Options) (*Engine, error) {
	enc, err := column.Encode(t, column.Spec{
		AmountColumn:    opts.AmountColumn,
		GroupingColumns: opts.GroupingColumns,
		NullSentinel:    opts.NullSentinel,
	})
	if err != nil {
		return nil, err
	}
	if opts.ProgressSink != nil {
		opts.ProgressSink(fmt.Sprintf("Loaded %d rows", len(t.Rows)))
	}
	if opts.ProgressSink != nil && enc.ZeroExcluded > 0 {
		opts.ProgressSink(fmt.Sprintf("note: %d zero-amount row(s) excluded (they cannot affect sums)", enc.ZeroExcluded))
	}

	s := search.NewSearcher(enc, search.Config{
		Target:       opts.Target,
		Tolerance:    opts.Tolerance,
		Ordering:     opts.Ordering,
		Mode:         opts.Mode,
		Threads:      opts.Threads,
		ProgressSink: opts.ProgressSink,
	})
	return &Engine{enc: enc, s: s}, nil
}

// Search runs the branch-and-bound BFS to completion (or until Cancel is
// called) and returns every solution found.
func (e *Engine) Search() []search.Solution {
	return e.s.Run()
}

// Cancel requests that a running (or not-yet-started) Search stop at the
// next checkpoint.
func (e *Engine) Cancel() {
	e.s.Cancel()
}

// Close releases the Engine's worker pool. The Engine must not be used
// again afterward.
func (e *Engine) Close() {
	e.s.Close()
}

// Results returns every solution found so far, in discovery order.
func (e *Engine) Results() []search.Solution {
	return e.s.Results()
}

// Sorted returns every solution found so far, ordered by row-set
// fingerprint (reproducible across runs, unlike discovery order).
func (e *Engine) Sorted() []search.Solution {
	return e.s.Sorted()
}

// Diagnostics returns a snapshot of the search's running counters.
func (e *Engine) Diagnostics() search.Diagnostics {
	return e.s.Diagnostics()
}

// RowLabels returns one label per row of the original table: the
// underscore-joined list of solution ids that row participates in.
func (e *Engine) RowLabels(results []search.Solution, totalRows int) []string {
	return search.RowLabels(e.enc, results, totalRows)
}

// KeptIndices maps a post-encoding row position back to its row position
// in the original table (rows with a zero amount are dropped during
// encoding and never appear here).
func (e *Engine) KeptIndices() []int {
	return e.enc.KeptIndices
}
