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

package term

import (
	"github.com/gdamore/tcell"

	"github.com/fxplot/fxplot/fx/term/plot"
)

// Series identifiers for the different things a graph panel draws.  The
// braille rasterizer keeps one series per cell, so later draws win ties
// within a cell -- curves are drawn first, overlays last.
const (
	CurveSeries plot.SeriesId = iota + 1
	TangentSeries
	GuideSeries
	MarkerSeries
)

// FuncGraphView renders one function panel: axes with labeled ticks, the
// segmented curve in braille dots, plus optional overlays (tangent line,
// vertical hover guide, discontinuity markers, limit holes) and a one-line
// readout across the top.
//
// The curve data (segments, holes, markers, tangent) is precomputed by the
// caller -- it depends on the sampling grid, not the screen -- while the
// viewport mapping is rebuilt on every flush from the current box size.
type FuncGraphView struct {
	pos PositionBox

	// world-space bounds of the panel
	XMin, XMax float64
	YMin, YMax float64

	Segments []plot.Segment
	Holes    []plot.HoleMarker
	Markers  []plot.Point
	Tangent  *plot.Tangent
	// GuideX, if set, draws a vertical guide line at that domain position.
	GuideX *float64

	// Readout occupies the top row of the box (e.g. the hover coordinates).
	Readout string

	CurveColor tcell.Color

	DomainLabeler plot.Labeler
	RangeLabeler  plot.Labeler

	// geometry of the last flush, for pointer hit-testing
	inner    PositionBox
	dotView  plot.Viewport
	haveGeom bool
}

func (g *FuncGraphView) SetBox(box PositionBox) {
	g.pos = box
	g.haveGeom = false
}

// WorldX maps a screen cell position back to a domain value, reporting false
// when the position is outside the inner graph region or nothing has been
// flushed yet.
func (g *FuncGraphView) WorldX(col, row int) (float64, bool) {
	if !g.haveGeom || !g.inner.contains(col, row) {
		return 0, false
	}
	// use the cell's horizontal center, in dot coordinates
	dotCol := float64((col-g.inner.StartCol)*2) + 1
	x, _ := g.dotView.ScreenToWorld(dotCol, 0)
	return x, true
}

func (g *FuncGraphView) seriesStyle(id plot.SeriesId) tcell.Style {
	switch id {
	case CurveSeries:
		return tcell.StyleDefault.Foreground(g.CurveColor)
	case TangentSeries:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case GuideSeries:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case MarkerSeries:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	default:
		return tcell.StyleDefault
	}
}

func (g *FuncGraphView) FlushTo(screen tcell.Screen) {
	graphStartRow := g.pos.StartRow
	graphRows := g.pos.Rows
	if g.Readout != "" {
		// the readout takes the top row for itself
		col := g.pos.StartCol
		for _, rn := range g.Readout {
			if col >= g.pos.StartCol+g.pos.Cols {
				break
			}
			screen.SetContent(col, graphStartRow, rn, nil, tcell.StyleDefault)
			col++
		}
		graphStartRow++
		graphRows--
	}
	if graphRows <= 1 || g.pos.Cols <= 1 {
		return
	}

	outerSize := plot.ScreenSize{Rows: plot.Row(graphRows), Cols: plot.Column(g.pos.Cols)}
	ticks := plot.PlaceTicks(g.XMin, g.XMax, g.YMin, g.YMax, outerSize, plot.TickTargets{
		Domain: 8,
		Range:  6,
	}, plot.Labeling{
		DomainLabeler: g.DomainLabeler,
		RangeLabeler:  g.RangeLabeler,
		LineSize:      1,
	})

	if ticks.InnerGraphSize.Cols == 0 || ticks.InnerGraphSize.Rows == 0 {
		// too small to render, just bail
		return
	}

	plot.DrawAxes(ticks, func(row plot.Row, col plot.Column, contents rune, kind plot.AxisCellKind) {
		var rn rune
		switch kind {
		case plot.DomainTickKind:
			rn = '┯'
		case plot.RangeTickKind:
			rn = '┨'
		case plot.YAxisKind:
			rn = '┃'
		case plot.XAxisKind:
			rn = '━'
		case plot.AxisCornerKind:
			rn = '┗'
		case plot.LabelKind:
			rn = contents
		default:
			return
		}
		screen.SetContent(int(col)+g.pos.StartCol, int(row)+graphStartRow, rn, nil, tcell.StyleDefault)
	})

	dotSize := plot.BrailleCellScreenSize(ticks.InnerGraphSize)
	view := plot.Viewport{
		Size: dotSize,
		XMin: g.XMin, XMax: g.XMax,
		YMin: g.YMin, YMax: g.YMax,
	}
	if !view.Valid() {
		return
	}

	canvas := plot.NewRenderedGraph(dotSize, plot.BrailleCellMapper)
	for _, seg := range g.Segments {
		canvas.DrawSegment(view, seg, CurveSeries)
	}
	if g.GuideX != nil {
		canvas.DrawWorldLine(view, *g.GuideX, g.YMin, *g.GuideX, g.YMax, GuideSeries)
	}
	if g.Tangent != nil {
		t := *g.Tangent
		canvas.DrawWorldLine(view, g.XMin, t.At(g.XMin), g.XMax, t.At(g.XMax), TangentSeries)
	}
	for _, m := range g.Markers {
		canvas.DrawMarker(view, m.X, m.Y, MarkerSeries)
	}

	innerStartCol := g.pos.StartCol + int(ticks.MarginCols)
	plot.DrawBraille(canvas, func(row plot.Row, col plot.Column, contents rune, id plot.SeriesId) {
		screen.SetContent(int(col)+innerStartCol, int(row)+graphStartRow, contents, nil, g.seriesStyle(id))
	})

	// holes overwrite whole cells: an open circle reads much better than a
	// braille dot for "limit exists, value doesn't"
	for _, hole := range g.Holes {
		sx, sy := view.WorldToScreen(hole.X, hole.Y)
		cellCol := int(sx) / 2
		cellRow := int(sy) / 4
		if cellCol < 0 || cellCol >= int(ticks.InnerGraphSize.Cols) || cellRow < 0 || cellRow >= int(ticks.InnerGraphSize.Rows) {
			continue
		}
		screen.SetContent(cellCol+innerStartCol, cellRow+graphStartRow, 'o', nil, g.seriesStyle(MarkerSeries))
	}

	g.inner = PositionBox{
		StartCol: innerStartCol,
		StartRow: graphStartRow,
		Cols:     int(ticks.InnerGraphSize.Cols),
		Rows:     int(ticks.InnerGraphSize.Rows),
	}
	g.dotView = view
	g.haveGeom = true
}
