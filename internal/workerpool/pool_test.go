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

package workerpool

import (
	"sync/atomic"
	"testing"
)

func TestRunAllRunsEveryTask(t *testing.T) {
	p := New(4, nil)
	defer p.Close()

	var n int64
	fns := make([]func(), 0, 100)
	for i := 0; i < 100; i++ {
		fns = append(fns, func() { atomic.AddInt64(&n, 1) })
	}
	p.RunAll(fns)
	if n != 100 {
		t.Fatalf("n = %d, want 100", n)
	}
}

func TestRunAllRecoversPanics(t *testing.T) {
	var panics int64
	p := New(2, func(any) { atomic.AddInt64(&panics, 1) })
	defer p.Close()

	var ran int64
	p.RunAll([]func(){
		func() { panic("boom") },
		func() { atomic.AddInt64(&ran, 1) },
	})
	if panics != 1 {
		t.Fatalf("panics = %d, want 1", panics)
	}
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
}

func TestMultipleLevelsReuseWorkers(t *testing.T) {
	p := New(3, nil)
	defer p.Close()

	for level := 0; level < 5; level++ {
		var n int64
		fns := make([]func(), 10)
		for i := range fns {
			fns[i] = func() { atomic.AddInt64(&n, 1) }
		}
		p.RunAll(fns)
		if n != 10 {
			t.Fatalf("level %d: n = %d, want 10", level, n)
		}
	}
}
