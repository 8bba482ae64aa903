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

package cluster

import "testing"

func TestClustersFromPairsGroupsTransitively(t *testing.T) {
	pairs := []Pair{
		{Left: "a1", Right: "b1"},
		{Left: "b1", Right: "c1"},
		{Left: "x1", Right: "y1"},
	}
	clusters := ClustersFromPairs(pairs)

	if clusters["a1"] != clusters["b1"] || clusters["b1"] != clusters["c1"] {
		t.Fatalf("a1/b1/c1 should share a cluster: %v", clusters)
	}
	if clusters["x1"] != clusters["y1"] {
		t.Fatalf("x1/y1 should share a cluster: %v", clusters)
	}
	if clusters["a1"] == clusters["x1"] {
		t.Fatalf("unrelated clusters collided: %v", clusters)
	}
}

func TestClustersFromPairsOmitsUnmentionedIDs(t *testing.T) {
	clusters := ClustersFromPairs([]Pair{{Left: "a1", Right: "b1"}})
	if _, ok := clusters["never-mentioned"]; ok {
		t.Fatal("expected an id never appearing in a pair to be absent")
	}
}

func TestClustersFromPairsIsDeterministic(t *testing.T) {
	pairs := []Pair{
		{Left: "a1", Right: "b1"},
		{Left: "c1", Right: "d1"},
		{Left: "e1", Right: "f1"},
	}
	first := ClustersFromPairs(pairs)
	second := ClustersFromPairs(pairs)
	for k, v := range first {
		if second[k] != v {
			t.Fatalf("non-deterministic cluster id for %q: %d vs %d", k, v, second[k])
		}
	}
}
