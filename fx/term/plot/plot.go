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

// Package plot turns compiled functions into drawable cells: world-to-screen
// mapping, vertical range estimation, discontinuity-aware segmentation, axis
// tick placement, and braille rasterization.
package plot

import (
	"math"
)

const (
	brailleCellWidth     = 2
	brailleCellHeight    = 4
	brailleCellPositions = brailleCellWidth * brailleCellHeight
)

// SeriesId identifies a plotted series (curve, tangent, markers).  The zero
// value is reserved for unset.
type SeriesId uint16

const NoSeries = SeriesId(0)

type Row int
type Column int

type ScreenSize struct {
	Rows Row
	Cols Column
}

// Viewport is the affine bridge between world coordinates (the function's
// domain and range) and a pixel grid of Cols x Rows dots, with the vertical
// axis inverted: world y grows upward, screen rows grow downward.
type Viewport struct {
	Size ScreenSize

	XMin, XMax float64
	YMin, YMax float64
}

// Valid reports whether the viewport can map without producing non-finite
// screen coordinates.
func (v Viewport) Valid() bool {
	if v.Size.Cols <= 0 || v.Size.Rows <= 0 {
		return false
	}
	spans := []float64{v.XMin, v.XMax, v.YMin, v.YMax}
	for _, b := range spans {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return false
		}
	}
	return v.XMax > v.XMin && v.YMax > v.YMin
}

// WorldToScreen maps a world point to continuous screen coordinates.
// The result may lie outside [0, Cols) x [0, Rows) -- rasterization clips.
func (v Viewport) WorldToScreen(x, y float64) (sx, sy float64) {
	w := float64(v.Size.Cols)
	h := float64(v.Size.Rows)
	sx = (x - v.XMin) / (v.XMax - v.XMin) * w
	sy = h - (y-v.YMin)/(v.YMax-v.YMin)*h
	return sx, sy
}

// ScreenToWorld is the exact algebraic inverse of WorldToScreen.
func (v Viewport) ScreenToWorld(sx, sy float64) (x, y float64) {
	w := float64(v.Size.Cols)
	h := float64(v.Size.Rows)
	x = sx/w*(v.XMax-v.XMin) + v.XMin
	y = (h-sy)/h*(v.YMax-v.YMin) + v.YMin
	return x, y
}

// PixelPoint is a rasterized dot position.
type PixelPoint struct {
	Row Row
	Col Column
}

// pixel clips-and-rounds a continuous screen position onto the dot grid,
// reporting whether it landed inside.
func (v Viewport) pixel(sx, sy float64) (PixelPoint, bool) {
	col := Column(math.Round(sx))
	row := Row(math.Round(sy))
	// the far edges map to exactly Cols/Rows; snap them onto the grid
	if col == v.Size.Cols && sx <= float64(v.Size.Cols) {
		col--
	}
	if row == v.Size.Rows && sy <= float64(v.Size.Rows) {
		row--
	}
	if col < 0 || col >= v.Size.Cols || row < 0 || row >= v.Size.Rows {
		return PixelPoint{}, false
	}
	return PixelPoint{Row: row, Col: col}, true
}

type Cell struct {
	// common path doesn't need to allocate a slice
	IsPoint bool
	Series  SeriesId

	MoreSeries []SeriesId
}

// RenderedGraph is a dot-resolution canvas that curves, tangents, and
// markers draw onto before being collapsed into braille runes.  It is
// transient: each render pass builds a fresh one.
type RenderedGraph struct {
	Cells []Cell
	ScreenSize
	SubCellMapper SubCellMapper
}

func NewRenderedGraph(size ScreenSize, subCellMapper SubCellMapper) *RenderedGraph {
	return &RenderedGraph{
		ScreenSize:    size,
		Cells:         make([]Cell, int(size.Rows)*int(size.Cols)),
		SubCellMapper: subCellMapper,
	}
}

func (g *RenderedGraph) setCell(row Row, col Column, isPoint bool, series SeriesId) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	ind := g.SubCellMapper(row, col, g.ScreenSize)

	cell := &g.Cells[ind]
	if cell.Series == NoSeries {
		cell.Series = series
		cell.IsPoint = isPoint
		return
	}
	cell.MoreSeries = append(cell.MoreSeries, series)
}

// DrawSegment rasterizes one world-space polyline onto the canvas,
// connecting consecutive samples with interpolated lines.  Separate segments
// are deliberately drawn by separate calls so that no line crosses a
// detected jump.
func (g *RenderedGraph) DrawSegment(view Viewport, seg Segment, id SeriesId) {
	var havePrev bool
	var prev PixelPoint
	for _, pt := range seg {
		px, inside := view.pixel(view.WorldToScreen(pt.X, pt.Y))
		if !inside {
			havePrev = false
			continue
		}
		if havePrev {
			g.drawLine(prev, px, id)
		} else {
			g.setCell(px.Row, px.Col, true, id)
		}
		prev = px
		havePrev = true
	}
}

// DrawWorldLine draws the straight line between two world points (used for
// the tangent and its vertical guide), clipping to the viewport.
func (g *RenderedGraph) DrawWorldLine(view Viewport, x0, y0, x1, y1 float64, id SeriesId) {
	// walk in screen space at dot resolution so clipping stays trivial
	sx0, sy0 := view.WorldToScreen(x0, y0)
	sx1, sy1 := view.WorldToScreen(x1, y1)
	steps := int(math.Max(math.Abs(sx1-sx0), math.Abs(sy1-sy0)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px, inside := view.pixel(sx0+(sx1-sx0)*t, sy0+(sy1-sy0)*t)
		if !inside {
			continue
		}
		g.setCell(px.Row, px.Col, false, id)
	}
}

// DrawMarker puts a single dot at a world position, clipped.
func (g *RenderedGraph) DrawMarker(view Viewport, x, y float64, id SeriesId) {
	px, inside := view.pixel(view.WorldToScreen(x, y))
	if !inside {
		return
	}
	g.setCell(px.Row, px.Col, true, id)
}

// drawLine interpolates between two on-canvas pixels.
func (g *RenderedGraph) drawLine(from, to PixelPoint, id SeriesId) {
	rise := int(to.Row - from.Row)
	run := int(to.Col - from.Col)
	steps := rise
	if steps < 0 {
		steps = -steps
	}
	if run > steps {
		steps = run
	} else if -run > steps {
		steps = -run
	}
	if steps == 0 {
		g.setCell(to.Row, to.Col, true, id)
		return
	}
	for i := 0; i <= steps; i++ {
		row := from.Row + Row(math.Round(float64(rise)*float64(i)/float64(steps)))
		col := from.Col + Column(math.Round(float64(run)*float64(i)/float64(steps)))
		g.setCell(row, col, i == 0 || i == steps, id)
	}
}

// conviniently, according to the braille patterns docs (e.g.
// https://en.wikipedia.org/wiki/Braille_Patterns), each position in the
// braille cell is mapped to a bit in the byte, like so:
// 0 3
// 1 4
// 2 5
// 6 7
//
// our data is conviniently laid out to facilitate this.

const (
	brailleBlockStart = '⠀'
)

// brailleMap maps a column-wise layout to the above braille block layout.
var brailleMap = [8]rune{1 << 0, 1 << 1, 1 << 2, 1 << 6, 1 << 3, 1 << 4, 1 << 5, 1 << 7}

func DrawBraille(graph *RenderedGraph, output func(row Row, col Column, cell rune, id SeriesId)) {
	currRow := Row(-1)
	currCol := Column(0)
	screenCols := int(graph.Cols) / brailleCellWidth
	for chunkStart := 0; chunkStart < len(graph.Cells); chunkStart += brailleCellPositions {
		if (chunkStart/brailleCellPositions)%screenCols == 0 {
			currRow++
			currCol = 0
		} else {
			currCol++
		}
		targetBits := rune(0)
		var targetId SeriesId
		for cellInd := 0; cellInd < brailleCellPositions; cellInd++ {
			cell := graph.Cells[chunkStart+cellInd]
			if cell.Series == NoSeries {
				continue
			}
			targetBits |= brailleMap[cellInd]

			// we can only have one color, just choose the last one set since
			// it's convinient
			targetId = cell.Series
		}

		if targetBits == 0 {
			output(currRow, currCol, ' ', NoSeries)
			continue
		}

		targetRune := targetBits + brailleBlockStart
		output(currRow, currCol, targetRune, targetId)
	}
}

// A SubCellMapper translates dot-resolution coordinates into an index in
// the flat cell array, encoding how sub-cell dots group into terminal cells.
type SubCellMapper func(row Row, col Column, size ScreenSize) int

func BrailleCellMapper(row Row, col Column, size ScreenSize) int {
	// since a screen character is 4 high by 2 wide (ratio/via braille
	// characters), cells are layed out in 2x4 chunks.  Chunks are arraged
	// row-wise (one whole row, then the next) in order to facilitate printing
	// characters, but cells in a chunk are arraged column-wise to match with
	// how the braille patterns unicode characters do it.

	// find the chunk (row-wise)
	chunkRow := int(row / brailleCellHeight)
	chunkCol := int(col / brailleCellWidth)
	chunkStart := (chunkRow*(int(size.Cols)/brailleCellWidth) + chunkCol) * brailleCellPositions

	// find the position in the chunk (column-wise)
	intraChunkRow := int(row % brailleCellHeight)
	intraChunkCol := int(col % brailleCellWidth)
	intraChunkPos := intraChunkCol*brailleCellHeight + intraChunkRow

	// compute the index
	return chunkStart + intraChunkPos
}

// BrailleCellScreenSize converts a size in terminal cells to the dot
// resolution braille provides (the terminal's version of a device pixel
// ratio: 2x4 dots per cell).
func BrailleCellScreenSize(termSize ScreenSize) ScreenSize {
	termSize.Rows *= brailleCellHeight
	termSize.Cols *= brailleCellWidth

	return termSize
}
