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

// Package cluster groups row identifiers that a record-linkage pass has
// paired together into disjoint clusters, using a path-halving
// union-find. Each resulting cluster is searched for zero-sum subsets
// independently, with target 0.
package cluster

// unionFind is a union-find over string ids, using union-by-arbitrary-root
// (every union always re-parents the left root onto the right) and
// path-halving on find, which is simple and fast enough for the
// thousands-of-rows scale this engine targets.
type unionFind struct {
	parent map[string]string
	order  []string // insertion order, so cluster numbering is reproducible
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(x string) string {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
		u.order = append(u.order, x)
	}
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// Pair is one linked pair of row identifiers, as produced by a record
// linkage pass (e.g. two ids a probabilistic matcher scored as the same
// entity).
type Pair struct {
	Left, Right string
}

// ClustersFromPairs assigns every id mentioned in pairs to a cluster,
// numbered from 1 in first-seen order of cluster roots. Ids that never
// appear in pairs are not included in the result.
func ClustersFromPairs(pairs []Pair) map[string]int {
	uf := newUnionFind()
	for _, p := range pairs {
		uf.find(p.Left)
		uf.find(p.Right)
	}
	for _, p := range pairs {
		uf.union(p.Left, p.Right)
	}

	rootToID := make(map[string]int)
	result := make(map[string]int, len(uf.parent))
	counter := 0
	for _, id := range uf.order {
		root := uf.find(id)
		cid, ok := rootToID[root]
		if !ok {
			counter++
			cid = counter
			rootToID[root] = cid
		}
		result[id] = cid
	}
	return result
}
