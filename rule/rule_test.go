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

package rule

import "testing"

func set(ids ...int) map[int]struct{} {
	out := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func TestKeyEqualIgnoresInsertionOrderWithinColumn(t *testing.T) {
	a := Empty().With(0, set(1, 0, 2))
	b := Empty().With(0, set(2, 1, 0))
	if !KeyOf(a).Equal(KeyOf(b)) {
		t.Fatal("keys should be equal regardless of set iteration order")
	}
}

func TestKeyDiffersOnDifferentCats(t *testing.T) {
	a := Empty().With(0, set(0, 1))
	b := Empty().With(0, set(0))
	if KeyOf(a).Equal(KeyOf(b)) {
		t.Fatal("keys should differ")
	}
}

func TestMirrorComplementsLastColumnOnly(t *testing.T) {
	r := Empty().With(0, set(0, 1)).With(1, set(0))
	available := func(col int) map[int]struct{} {
		switch col {
		case 0:
			return set(0, 1, 2)
		case 1:
			return set(0, 1)
		}
		return nil
	}
	m := r.Mirror(available)
	if len(m.Terms) != 2 {
		t.Fatalf("mirror should keep same column count, got %d", len(m.Terms))
	}
	// column 0 untouched
	c0, _ := m.Cats(0)
	if _, ok := c0[0]; !ok {
		t.Fatal("column 0 of mirror should be unchanged")
	}
	// column 1 (last added) complemented within {0,1} -> {1}
	c1, _ := m.Cats(1)
	if _, ok := c1[1]; !ok {
		t.Fatalf("column 1 of mirror should be complemented, got %v", c1)
	}
	if _, ok := c1[0]; ok {
		t.Fatalf("column 1 of mirror should not contain original category, got %v", c1)
	}
}

func TestLessTotalOrder(t *testing.T) {
	a := KeyOf(Empty().With(0, set(0)))
	b := KeyOf(Empty().With(0, set(1)))
	if !Less(a, b) || Less(b, a) {
		t.Fatal("expected a < b")
	}
}
