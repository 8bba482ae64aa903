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

// Package search implements the parallel branch-and-bound engine that
// finds every subset of rows whose amounts sum to a target within
// tolerance, described as a conjunction of column category-set rules.
package search

import (
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/ledgerzero/zerosum/bitset"
	"github.com/ledgerzero/zerosum/column"
	"github.com/ledgerzero/zerosum/internal/atomicext"
	"github.com/ledgerzero/zerosum/internal/workerpool"
)

// Ordering selects how the next column to branch on is chosen.
type Ordering int

const (
	// StaticOrder branches columns in declaration order.
	StaticOrder Ordering = iota
	// MinDomainOrder branches the not-yet-constrained column with the
	// fewest categories still present in the current state's row mask,
	// which tends to keep the branching factor small early.
	MinDomainOrder
)

// Mode selects how category subsets are generated for a branched column.
type Mode int

const (
	// OriginalMode enumerates every non-empty, proper subset of a
	// column's available categories, smallest first.
	OriginalMode Mode = iota
	// NewMode enumerates only subsets up to half the available
	// categories; the complementary half is covered by mirror-rule
	// deduplication instead of being generated and then memo-rejected.
	NewMode
)

// Config configures one Searcher run.
type Config struct {
	Target    float64
	Tolerance float64
	Ordering  Ordering
	Mode      Mode
	// Threads is the number of worker goroutines used to expand a BFS
	// level in parallel. 0 selects runtime.GOMAXPROCS(0).
	Threads int
	// ProgressSink, if non-nil, receives one human-readable line per
	// event worth reporting (solutions found, level summaries).
	ProgressSink func(string)
}

func (c Config) threads() int {
	if c.Threads > 0 {
		return c.Threads
	}
	return runtime.GOMAXPROCS(0)
}

// Diagnostics holds lock-free running counters updated during a search,
// safe to read while the search is still in progress.
type Diagnostics struct {
	StatesExplored int64
	StatesPruned   int64
	Duplicates     int64
	// ClosestMiss is the smallest |sum-target| seen among states that
	// did not match, updated via CAS loops so readers never block a
	// worker mid-search.
	ClosestMiss float64
}

// searchColumn is the engine-internal view of an encoded grouping column:
// its category values (the search uses only their count) and per-category
// row masks.
type searchColumn struct {
	cats  []string
	masks map[int]bitset.Set
}

// Searcher runs one branch-and-bound search over an encoded table.
type Searcher struct {
	enc       *column.Encoded
	amounts   []float64
	target    float64
	tolerance float64
	cfg       Config
	columns   []*searchColumn

	memo *memoSet
	reg  *registry
	pool *workerpool.Pool

	cancelled int32
	diag      Diagnostics
}

// NewSearcher prepares a Searcher over enc with the given configuration.
func NewSearcher(enc *column.Encoded, cfg Config) *Searcher {
	columns := make([]*searchColumn, len(enc.Columns))
	for i, c := range enc.Columns {
		columns[i] = &searchColumn{cats: c.Cats, masks: c.Masks}
	}
	reg := newRegistry(cfg.Tolerance, cfg.ProgressSink)
	s := &Searcher{
		enc:       enc,
		amounts:   enc.Amounts,
		target:    cfg.Target,
		tolerance: cfg.Tolerance,
		cfg:       cfg,
		columns:   columns,
		memo:      newMemoSet(),
		reg:       reg,
		pool: workerpool.New(cfg.threads(), func(r any) {
			reg.log(fmt.Sprintf("state expansion failed: %v", r))
		}),
	}
	s.diag.ClosestMiss = math.Inf(1)
	return s
}

// Cancel requests that the search stop at the next checkpoint. Safe to
// call concurrently with Run, and more than once.
func (s *Searcher) Cancel() {
	atomic.StoreInt32(&s.cancelled, 1)
}

// Cancelled reports whether Cancel has been called.
func (s *Searcher) Cancelled() bool {
	return atomic.LoadInt32(&s.cancelled) != 0
}

// Close releases the Searcher's worker pool. The Searcher must not be
// used again afterward.
func (s *Searcher) Close() {
	s.pool.Close()
}

// Results returns every solution found so far, in discovery order.
func (s *Searcher) Results() []Solution {
	return s.reg.Results()
}

// Sorted returns every solution found so far, ordered by row-set
// fingerprint (reproducible across runs, unlike discovery order).
func (s *Searcher) Sorted() []Solution {
	return s.reg.Sorted()
}

// Diagnostics returns a snapshot of the search's running counters.
func (s *Searcher) Diagnostics() Diagnostics {
	return Diagnostics{
		StatesExplored: atomic.LoadInt64(&s.diag.StatesExplored),
		StatesPruned:   atomic.LoadInt64(&s.diag.StatesPruned),
		Duplicates:     atomic.LoadInt64(&s.diag.Duplicates),
		ClosestMiss:    atomicext.LoadFloat64(&s.diag.ClosestMiss),
	}
}
