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

package plot_test

import (
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fxplot/fxplot/fx/term/plot"
)

var _ = Describe("The viewport mapping", func() {
	view := plot.Viewport{
		Size: plot.ScreenSize{Cols: 160, Rows: 96},
		XMin: -10, XMax: 10,
		YMin: -3, YMax: 21,
	}

	It("should round-trip world through screen coordinates", func() {
		pts := [][2]float64{
			{0, 0}, {-10, -3}, {10, 21}, {1.234, -2.718}, {9.99, 20.99},
			{-42, 100}, // off-viewport points still map linearly
		}
		for _, pt := range pts {
			sx, sy := view.WorldToScreen(pt[0], pt[1])
			x, y := view.ScreenToWorld(sx, sy)
			Expect(x).To(BeNumerically("~", pt[0], 1e-9))
			Expect(y).To(BeNumerically("~", pt[1], 1e-9))
		}
	})

	It("should invert the vertical axis", func() {
		_, syBottom := view.WorldToScreen(0, view.YMin)
		_, syTop := view.WorldToScreen(0, view.YMax)
		Expect(syBottom).To(BeNumerically("==", 96))
		Expect(syTop).To(BeNumerically("==", 0))
	})

	It("should reject degenerate and non-finite viewports", func() {
		Expect(view.Valid()).To(BeTrue())
		bad := view
		bad.XMin, bad.XMax = 5, 5
		Expect(bad.Valid()).To(BeFalse())
		bad = view
		bad.YMax = math.Inf(1)
		Expect(bad.Valid()).To(BeFalse())
		bad = view
		bad.Size.Cols = 0
		Expect(bad.Valid()).To(BeFalse())
	})
})

var _ = Describe("The rendered graph canvas", func() {
	size := plot.ScreenSize{Cols: 8, Rows: 8}
	view := plot.Viewport{Size: size, XMin: 0, XMax: 1, YMin: 0, YMax: 1}

	countLit := func(g *plot.RenderedGraph) int {
		n := 0
		for _, cell := range g.Cells {
			if cell.Series != plot.NoSeries {
				n++
			}
		}
		return n
	}

	It("should clip drawing outside the viewport instead of corrupting cells", func() {
		g := plot.NewRenderedGraph(size, plot.BrailleCellMapper)
		g.DrawWorldLine(view, -5, -5, 5, 5, plot.SeriesId(1))
		Expect(countLit(g)).To(BeNumerically(">", 0))

		far := plot.NewRenderedGraph(size, plot.BrailleCellMapper)
		far.DrawMarker(view, 100, 100, plot.SeriesId(1))
		Expect(countLit(far)).To(BeZero())
	})

	It("should connect samples within one segment", func() {
		g := plot.NewRenderedGraph(size, plot.BrailleCellMapper)
		seg := plot.Segment{{X: 0, Y: 0}, {X: 1, Y: 1}}
		g.DrawSegment(view, seg, plot.SeriesId(1))
		// a diagonal across an 8x8 grid needs at least 8 lit dots
		Expect(countLit(g)).To(BeNumerically(">=", 8))
	})
})

var _ = Describe("Braille rasterization", func() {
	It("should emit one rune per 2x4 dot chunk", func() {
		size := plot.ScreenSize{Cols: 4, Rows: 8} // 2x2 terminal cells
		g := plot.NewRenderedGraph(size, plot.BrailleCellMapper)
		viewAll := plot.Viewport{Size: size, XMin: 0, XMax: 1, YMin: 0, YMax: 1}
		g.DrawMarker(viewAll, 0, 1, plot.SeriesId(3)) // top-left dot

		type outCell struct {
			row  plot.Row
			col  plot.Column
			rn   rune
			id   plot.SeriesId
		}
		var cells []outCell
		plot.DrawBraille(g, func(row plot.Row, col plot.Column, rn rune, id plot.SeriesId) {
			cells = append(cells, outCell{row, col, rn, id})
		})
		Expect(cells).To(HaveLen(4))

		lit := 0
		for _, c := range cells {
			if c.id != plot.NoSeries {
				lit++
				Expect(c.row).To(Equal(plot.Row(0)))
				Expect(c.col).To(Equal(plot.Column(0)))
				Expect(c.rn).To(Equal('⠁')) // dot position 0
			}
		}
		Expect(lit).To(Equal(1))
	})

	It("should scale terminal cells to dot resolution", func() {
		dots := plot.BrailleCellScreenSize(plot.ScreenSize{Cols: 10, Rows: 5})
		Expect(dots.Cols).To(Equal(plot.Column(20)))
		Expect(dots.Rows).To(Equal(plot.Row(20)))
	})
})
