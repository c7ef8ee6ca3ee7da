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

// Sample count bounds for the display grid.
const (
	MinSamples = 100
	MaxSamples = 4000
)

// Jump and corner detection is a calibrated heuristic, not a formal
// discontinuity test: a sample interval breaks the curve only when the value
// step is large both absolutely and relative to the local magnitude.  The
// dual test avoids false positives from small-scale noise (absolute guard)
// and from legitimately steep but continuous regions (relative guard).
// These constants are deliberately named and package-level so they can be
// tuned and swept in tests.
type Thresholds struct {
	Abs float64
	Rel float64
}

var (
	// PrimaryJump breaks the f curve.
	PrimaryJump = Thresholds{Abs: 0.75, Rel: 0.4}
	// DerivativeJump breaks the f' curve; slightly looser since numeric
	// derivatives wobble more than the function itself.
	DerivativeJump = Thresholds{Abs: 0.6, Rel: 0.35}
	// Corner flags disagreement between one-sided slopes of f.
	Corner = Thresholds{Abs: 0.5, Rel: 0.3}
	// MarkerJump places discontinuity dots on the f panel; looser than
	// PrimaryJump so the dots appear even for borderline jumps.
	MarkerJump = Thresholds{Abs: 0.3, Rel: 0.3}
)

// relGuard floors the denominator of the relative test.
const relGuard = 1e-9

// exceeded applies the dual absolute/relative test to two adjacent values.
func (t Thresholds) exceeded(prev, curr float64) bool {
	absJump := math.Abs(curr - prev)
	relJump := absJump / math.Max(relGuard, math.Max(math.Abs(curr), math.Abs(prev)))
	return absJump > t.Abs && relJump > t.Rel
}

// Point is a world-space sample.
type Point struct {
	X, Y float64
}

// Segment is a maximal run of connectable samples.  Segments are transient:
// they live for one render pass only.
type Segment []Point

// HoleMarker flags a one-sided limit at a corner, drawn as an open circle.
// Corners always produce a pair, one marker per side, at the same x.
type HoleMarker struct {
	X, Y float64
}

// ClampSamples clamps a configured sample count into [MinSamples, MaxSamples].
func ClampSamples(n int) int {
	if n < MinSamples {
		return MinSamples
	}
	if n > MaxSamples {
		return MaxSamples
	}
	return n
}

// SampleGrid returns n evenly spaced x values spanning [xmin, xmax]
// inclusive, n clamped to the display bounds.
func SampleGrid(xmin, xmax float64, n int) []float64 {
	n = ClampSamples(n)
	xs := make([]float64, n)
	step := (xmax - xmin) / float64(n-1)
	for i := range xs {
		xs[i] = xmin + step*float64(i)
	}
	xs[n-1] = xmax
	return xs
}

// BuildSegments samples fn over the grid and splits the samples into
// disjoint polyline segments.  Two things end a segment: a non-finite sample
// (undefined point, no point emitted), and a jump exceeding thr (the new
// sample starts the next segment, never connected to the previous one).
func BuildSegments(fn func(float64) float64, xs []float64, thr Thresholds) []Segment {
	var segments []Segment
	var active Segment

	flush := func() {
		if len(active) > 0 {
			segments = append(segments, active)
			active = nil
		}
	}

	for _, x := range xs {
		y := fn(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			flush()
			continue
		}
		if len(active) > 0 && thr.exceeded(active[len(active)-1].Y, y) {
			flush()
		}
		active = append(active, Point{X: x, Y: y})
	}
	flush()
	return segments
}

// JumpPositions reruns the jump test at marker sensitivity and reports the
// segment-break edges: for each detected jump, the last point before it and
// the first point after it.  The f panel draws dots there.
func JumpPositions(fn func(float64) float64, xs []float64, thr Thresholds) []Point {
	var marks []Point
	prevOk := false
	var prev Point
	for _, x := range xs {
		y := fn(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			prevOk = false
			continue
		}
		curr := Point{X: x, Y: y}
		if prevOk && thr.exceeded(prev.Y, y) {
			marks = append(marks, prev, curr)
		}
		prev = curr
		prevOk = true
	}
	return marks
}

// BuildDerivativeSegments samples the derivative df over the grid, splitting
// on non-finite samples and on jumps like BuildSegments, and additionally
// breaking at corners of the underlying function f: interior grid points
// where the one-sided finite differences of f disagree beyond the Corner
// thresholds.  Each corner terminates the active segment, contributes no
// sample of its own, and emits a pair of hole markers at the two one-sided
// slopes.
func BuildDerivativeSegments(f, df func(float64) float64, xs []float64) ([]Segment, []HoleMarker) {
	var segments []Segment
	var holes []HoleMarker
	var active Segment

	flush := func() {
		if len(active) > 0 {
			segments = append(segments, active)
			active = nil
		}
	}

	var h float64
	if len(xs) >= 2 {
		h = (xs[1] - xs[0]) / 2
	}

	for i, x := range xs {
		if h > 0 && i > 0 && i < len(xs)-1 {
			if left, right, isCorner := cornerAt(f, x, h); isCorner {
				flush()
				holes = append(holes,
					HoleMarker{X: x, Y: left},
					HoleMarker{X: x, Y: right},
				)
				continue
			}
		}

		y := df(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			flush()
			continue
		}
		if len(active) > 0 && DerivativeJump.exceeded(active[len(active)-1].Y, y) {
			flush()
		}
		active = append(active, Point{X: x, Y: y})
	}
	flush()
	return segments, holes
}

// cornerAt compares the left and right difference quotients of f around x
// with half-step h.  Both slopes must be finite to call it a corner --
// undefined neighborhoods are the NaN path's business, not ours.
func cornerAt(f func(float64) float64, x, h float64) (left, right float64, isCorner bool) {
	fx := f(x)
	left = (fx - f(x-h)) / h
	right = (f(x+h) - fx) / h
	if math.IsNaN(left) || math.IsInf(left, 0) || math.IsNaN(right) || math.IsInf(right, 0) {
		return left, right, false
	}
	return left, right, Corner.exceeded(left, right)
}

// Tangent describes the tangent line of f at an anchor point.
type Tangent struct {
	X     float64 // anchor, clamped into the domain
	Y     float64 // f(anchor)
	Slope float64 // f'(anchor)
}

// At evaluates the tangent line at the given x.
func (t Tangent) At(x float64) float64 {
	return t.Y + t.Slope*(x-t.X)
}

// ComputeTangent clamps the anchor into [xmin, xmax] and evaluates f and df
// there.  It reports false -- draw nothing -- when either value is
// non-finite (undefined points, fallback-derivative blowups) or when the
// anchor sits on a corner: a centered difference happily averages the two
// one-sided slopes of abs(x) to zero at the kink, and drawing that "tangent"
// would be a lie.
func ComputeTangent(f, df func(float64) float64, anchor, xmin, xmax float64) (Tangent, bool) {
	x := math.Min(math.Max(anchor, xmin), xmax)
	y := f(x)
	slope := df(x)
	if math.IsNaN(y) || math.IsInf(y, 0) || math.IsNaN(slope) || math.IsInf(slope, 0) {
		return Tangent{}, false
	}
	h := 1e-5 * math.Max(1, math.Abs(x))
	if _, _, isCorner := cornerAt(f, x, h); isCorner {
		return Tangent{}, false
	}
	return Tangent{X: x, Y: y, Slope: slope}, true
}
