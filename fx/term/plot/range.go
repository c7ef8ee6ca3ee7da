/*
Copyright 2023 The fxplot Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package plot

import (
	"math"
)

const (
	// rangeEstimateCap bounds the cost of range estimation independently of
	// the display sample count.
	rangeEstimateCap = 400

	rangePadFraction = 0.1
	rangePadEpsilon  = 1e-9
)

// EstimateRange samples fn over [xmin, xmax] and derives a padded vertical
// display range from the finite outputs.  Non-finite samples are skipped,
// not zeroed.  With no finite sample at all the range degenerates to [-1, 1];
// a zero-width range (constant function) widens by ±1.
//
// The result is only valid for the exact (fn, xmin, xmax) it was computed
// from; recompute after any change.
func EstimateRange(fn func(float64) float64, xmin, xmax float64, sampleCap int) (ymin, ymax float64) {
	n := sampleCap
	if n > rangeEstimateCap {
		n = rangeEstimateCap
	}
	if n < 2 {
		n = 2
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	step := (xmax - xmin) / float64(n-1)
	for i := 0; i < n; i++ {
		y := fn(xmin + step*float64(i))
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}

	if lo > hi {
		// nothing finite anywhere in the domain
		return -1, 1
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	pad := rangePadFraction*(hi-lo) + rangePadEpsilon
	return lo - pad, hi + pad
}
