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

package bitset

import (
	"reflect"
	"testing"
)

func TestFullAndIndices(t *testing.T) {
	s := Full(70)
	if s.PopCount() != 70 {
		t.Fatalf("PopCount() = %d, want 70", s.PopCount())
	}
	idx := s.Indices()
	if len(idx) != 70 || idx[0] != 0 || idx[69] != 69 {
		t.Fatalf("unexpected indices: %v", idx)
	}
}

func TestAndOr(t *testing.T) {
	a := New(8)
	a.Set(0)
	a.Set(2)
	a.Set(4)
	b := New(8)
	b.Set(2)
	b.Set(4)
	b.Set(6)

	and := a.And(b)
	if got := and.Indices(); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("And() = %v, want [2 4]", got)
	}

	or := Or(a, b)
	if got := or.Indices(); !reflect.DeepEqual(got, []int{0, 2, 4, 6}) {
		t.Fatalf("Or() = %v, want [0 2 4 6]", got)
	}
}

func TestSum(t *testing.T) {
	amounts := []float64{1, 2, 3, -6, 10}
	s := New(5)
	s.Set(0)
	s.Set(1)
	s.Set(2)
	s.Set(3)
	if got := s.Sum(amounts); got != 0 {
		t.Fatalf("Sum() = %v, want 0", got)
	}
}

func TestEmpty(t *testing.T) {
	s := New(10)
	if !s.Empty() {
		t.Fatal("New set should be empty")
	}
	s.Set(5)
	if s.Empty() {
		t.Fatal("set with a bit should not be empty")
	}
}
