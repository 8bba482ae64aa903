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

// Package atomicext provides extensions complementing the built-in atomic package
package atomicext

import (
	"math"
	"sync/atomic"
	"unsafe"
)

func LoadFloat64(ptr *float64) float64 {
	return math.Float64frombits(atomic.LoadUint64((*uint64)(unsafe.Pointer(ptr))))
}

func MinFloat64(ptr *float64, value float64) {
	for {
		before := math.Float64frombits(atomic.LoadUint64((*uint64)(unsafe.Pointer(ptr))))

		if before <= value {
			return
		}

		if atomic.CompareAndSwapUint64((*uint64)(unsafe.Pointer(ptr)), math.Float64bits(before), math.Float64bits(value)) {
			return
		}
	}
}

