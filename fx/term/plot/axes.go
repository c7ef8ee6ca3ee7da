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

// NiceTicks chooses axis tick values inside [min, max]: roughly targetCount
// steps, snapped to the nice-number set {1, 2, 5} x 10^k, every multiple of
// the chosen step within the interval.  Deterministic for a given input; a
// reversed interval is normalized, and a zero span is treated as 1 to avoid
// dividing by zero.
func NiceTicks(min, max float64, targetCount int) []float64 {
	if min > max {
		min, max = max, min
	}
	if targetCount <= 0 {
		targetCount = 8
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	raw := span / float64(targetCount)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch norm := raw / mag; {
	case norm < 1.5:
		step = 1
	case norm < 3.5:
		step = 2
	case norm < 7.5:
		step = 5
	default:
		step = 10
	}
	step *= mag

	var ticks []float64
	first := math.Ceil(min/step - 1e-9)
	last := math.Floor(max/step + 1e-9)
	for i := first; i <= last; i++ {
		v := i * step
		// keep accumulated float error out of the labels
		v = math.Round(v/step) * step
		if v < min {
			v = min
		}
		if v > max {
			v = max
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// Labeler formats a tick value for display.
type Labeler func(float64) string

type Labeling struct {
	DomainLabeler Labeler
	RangeLabeler  Labeler
	// LineSize is the thickness of the axis line itself, in cells.
	LineSize int
}

type DomainTick struct {
	Col   Column
	Value float64
	Label string
}

type RangeTick struct {
	Row   Row
	Value float64
	Label string
}

// ScreenTicks carries tick positions in terminal-cell space, plus the inner
// graph region left after reserving label margins.
type ScreenTicks struct {
	DomainTicks []DomainTick
	RangeTicks  []RangeTick

	InnerGraphSize ScreenSize
	MarginRows     Row
	MarginCols     Column
	LineSize       int
}

type TickTargets struct {
	Domain int
	Range  int
}

// PlaceTicks lays nice ticks for both axes of the given world rectangle onto
// an outer cell grid, reserving a left margin wide enough for the range
// labels and a bottom margin for one row of domain labels.
func PlaceTicks(xmin, xmax, ymin, ymax float64, outerSize ScreenSize, targets TickTargets, labels Labeling) *ScreenTicks {
	domVals := NiceTicks(xmin, xmax, targets.Domain)
	rngVals := NiceTicks(ymin, ymax, targets.Range)

	domLbls := make([]string, len(domVals))
	for i, v := range domVals {
		domLbls[i] = labels.DomainLabeler(v)
	}
	rngLbls := make([]string, len(rngVals))
	marginCols := Column(0)
	for i, v := range rngVals {
		rngLbls[i] = labels.RangeLabeler(v)
		if len(rngLbls[i]) > int(marginCols) {
			marginCols = Column(len(rngLbls[i]))
		}
	}
	marginRows := Row(1 + labels.LineSize)
	marginCols += Column(labels.LineSize)

	innerSize := outerSize
	innerSize.Rows -= marginRows
	innerSize.Cols -= marginCols
	// fix to zero so that callers can bail
	if innerSize.Rows < 0 || innerSize.Cols < 0 {
		innerSize.Rows = 0
		innerSize.Cols = 0
	}

	ticks := &ScreenTicks{
		InnerGraphSize: innerSize,
		MarginRows:     marginRows,
		MarginCols:     marginCols,
		LineSize:       labels.LineSize,
	}
	if innerSize.Rows == 0 || innerSize.Cols == 0 {
		return ticks
	}

	colFor := func(v float64) Column {
		return Column(math.Round((v - xmin) / (xmax - xmin) * float64(innerSize.Cols-1)))
	}
	rowFor := func(v float64) Row {
		return innerSize.Rows - 1 - Row(math.Round((v-ymin)/(ymax-ymin)*float64(innerSize.Rows-1)))
	}

	var lastDom *DomainTick
	for i, v := range domVals {
		col := colFor(v)
		// discard duplicate ticks
		if lastDom != nil && lastDom.Col == col {
			continue
		}
		ticks.DomainTicks = append(ticks.DomainTicks, DomainTick{Col: col, Value: v, Label: domLbls[i]})
		lastDom = &ticks.DomainTicks[len(ticks.DomainTicks)-1]
	}
	var lastRng *RangeTick
	for i, v := range rngVals {
		row := rowFor(v)
		if lastRng != nil && lastRng.Row == row {
			continue
		}
		ticks.RangeTicks = append(ticks.RangeTicks, RangeTick{Row: row, Value: v, Label: rngLbls[i]})
		lastRng = &ticks.RangeTicks[len(ticks.RangeTicks)-1]
	}

	return ticks
}

type AxisCellKind int

const (
	DomainTickKind AxisCellKind = iota
	RangeTickKind
	YAxisKind
	XAxisKind
	AxisCornerKind
	LabelKind
)

// DrawAxes emits axis lines, tick marks, and labels through the output
// callback, in cell coordinates relative to the outer graph region.  Domain
// labels sit on the single margin row under the axis, left-aligned at their
// tick; range labels are right-justified against the axis line.
func DrawAxes(ticks *ScreenTicks, output func(row Row, col Column, cell rune, kind AxisCellKind)) {
	// axis lines first
	{
		col := ticks.MarginCols - 1
		for row := Row(0); row < ticks.InnerGraphSize.Rows; row++ {
			output(row, col, ' ', YAxisKind)
		}
	}
	{
		row := ticks.InnerGraphSize.Rows
		for graphCol := Column(0); graphCol < ticks.InnerGraphSize.Cols; graphCol++ {
			output(row, graphCol+ticks.MarginCols, ' ', XAxisKind)
		}
	}

	// then ticks & labels
	{
		col := ticks.MarginCols - 1
		for _, tick := range ticks.RangeTicks {
			output(tick.Row, col, ' ', RangeTickKind)

			// label, right-justified against the axis
			lblPos := col - Column(len(tick.Label))
			for _, rn := range tick.Label {
				output(tick.Row, lblPos, rn, LabelKind)
				lblPos++
			}
		}
	}
	{
		row := ticks.InnerGraphSize.Rows
		lblRow := row + Row(ticks.LineSize)
		nextFree := Column(0)
		for _, tick := range ticks.DomainTicks {
			col := tick.Col + ticks.MarginCols
			output(row, col, ' ', DomainTickKind)

			// skip labels that would overlap the previous one
			if col < nextFree {
				continue
			}
			lblPos := col
			for _, rn := range tick.Label {
				output(lblRow, lblPos, rn, LabelKind)
				lblPos++
			}
			nextFree = lblPos + 1
		}
	}

	// finally the corner, last so it wins over any tick overwrite
	output(ticks.InnerGraphSize.Rows, ticks.MarginCols-1, ' ', AxisCornerKind)
}
