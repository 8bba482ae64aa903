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
	"sync"
	"time"

	"github.com/ledgerzero/zerosum/column"
	"github.com/ledgerzero/zerosum/search"
)

// StandaloneReport is the outcome of one direct (non-recon) search run:
// every solution found, how long the search took, and a row label for
// every row of the original table.
type StandaloneReport struct {
	Solutions []search.Solution
	Elapsed   time.Duration
	RowLabels []string
}

// StandaloneWorker runs one Engine and makes it cancellable from another
// goroutine, mirroring the two-stage cancellation of a UI-driven search:
// Cancel marks the worker cancelled immediately, and also reaches into
// the Engine if Prepare has already completed, so a cancel requested
// before the search engine exists is never lost.
type StandaloneWorker struct {
	table *column.RawTable
	opts  Options

	mu        sync.Mutex
	cancelled bool
	engine    *Engine
}

// NewStandaloneWorker constructs a worker for t, to be run with Run.
func NewStandaloneWorker(t *column.RawTable, opts Options) *StandaloneWorker {
	return &StandaloneWorker{table: t, opts: opts}
}

// Cancel requests that the search stop, whether or not it has started.
func (w *StandaloneWorker) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelled = true
	if w.engine != nil {
		w.engine.Cancel()
	}
}

// Run encodes the table, searches it, and returns a report. It is safe to
// call Cancel concurrently from another goroutine.
func (w *StandaloneWorker) Run() (*StandaloneReport, error) {
	start := time.Now()

	engine, err := Prepare(w.table, w.opts)
	if err != nil {
		return nil, fmt.Errorf("zerosum: %w", err)
	}
	defer engine.Close()

	w.mu.Lock()
	w.engine = engine
	preCancelled := w.cancelled
	w.mu.Unlock()
	if preCancelled {
		engine.Cancel()
	}

	solutions := engine.Search()
	elapsed := time.Since(start)

	labels := engine.RowLabels(solutions, len(w.table.Rows))
	return &StandaloneReport{Solutions: solutions, Elapsed: elapsed, RowLabels: labels}, nil
}
