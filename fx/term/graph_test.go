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

package term_test

import (
	"fmt"

	"github.com/gdamore/tcell"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fxplot/fxplot/fx/term"
	"github.com/fxplot/fxplot/fx/term/plot"
)

func testLabeler(v float64) string {
	return fmt.Sprintf("%.3g", v)
}

// lineSegment samples y=x across [-1, 1].
func lineSegment() plot.Segment {
	var seg plot.Segment
	for i := 0; i <= 100; i++ {
		x := -1 + float64(i)/50
		seg = append(seg, plot.Point{X: x, Y: x})
	}
	return seg
}

func newGraphView() *term.FuncGraphView {
	return &term.FuncGraphView{
		XMin: -1, XMax: 1,
		YMin: -1, YMax: 1,
		Segments:      []plot.Segment{lineSegment()},
		CurveColor:    tcell.ColorGreen,
		DomainLabeler: testLabeler,
		RangeLabeler:  testLabeler,
	}
}

// flushGraph renders the view on a fresh fake screen of the given size.
func flushGraph(view *term.FuncGraphView, cols, rows int) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("")
	screen.Init()
	screen.SetSize(cols, rows)
	view.SetBox(term.PositionBox{Cols: cols, Rows: rows})
	view.FlushTo(screen)
	screen.Show()
	return screen
}

// runesOn collects every non-blank rune on the screen along with its
// position.
func runesOn(screen tcell.SimulationScreen) map[rune][]term.PositionBox {
	cells, cols, _ := screen.GetContents()
	found := make(map[rune][]term.PositionBox)
	for i, cell := range cells {
		if len(cell.Runes) == 0 || cell.Runes[0] == ' ' {
			continue
		}
		rn := cell.Runes[0]
		found[rn] = append(found[rn], term.PositionBox{StartCol: i % cols, StartRow: i / cols})
	}
	return found
}

var _ = Describe("The FuncGraphView widget", func() {
	It("should draw the axis frame with tick marks", func() {
		screen := flushGraph(newGraphView(), 40, 12)
		found := runesOn(screen)

		Expect(found).To(HaveKey('┗'), "expected the axis corner")
		Expect(found).To(HaveKey('┃'), "expected the y axis line")
		Expect(found).To(HaveKey('━'), "expected the x axis line")
		Expect(found).To(HaveKey('┯'), "expected domain tick marks")
		Expect(found).To(HaveKey('┨'), "expected range tick marks")
	})

	It("should rasterize the curve as braille dots", func() {
		screen := flushGraph(newGraphView(), 40, 12)

		brailleCells := 0
		for rn, positions := range runesOn(screen) {
			if rn > '⠀' && rn <= '⣿' {
				brailleCells += len(positions)
			}
		}
		// a diagonal across the panel touches many cells
		Expect(brailleCells).To(BeNumerically(">", 5))
	})

	It("should print the readout on its top row", func() {
		view := newGraphView()
		view.Readout = "x=0.5"
		screen := flushGraph(view, 40, 12)

		var topRow []rune
		cells, cols, _ := screen.GetContents()
		for col := 0; col < cols; col++ {
			if len(cells[col].Runes) != 0 {
				topRow = append(topRow, cells[col].Runes[0])
			}
		}
		Expect(string(topRow[:5])).To(Equal("x=0.5"))
	})

	It("should draw limit holes as open circles", func() {
		view := newGraphView()
		view.Holes = []plot.HoleMarker{{X: 0, Y: 0}}
		screen := flushGraph(view, 40, 12)

		Expect(runesOn(screen)).To(HaveKey('o'))
	})

	Describe("pointer hit-testing", func() {
		It("should refuse positions before the first flush", func() {
			view := newGraphView()
			_, ok := view.WorldX(10, 5)
			Expect(ok).To(BeFalse())
		})

		It("should map an inner position back into the domain", func() {
			view := newGraphView()
			flushGraph(view, 40, 12)

			x, ok := view.WorldX(20, 5)
			Expect(ok).To(BeTrue())
			Expect(x).To(BeNumerically(">=", view.XMin))
			Expect(x).To(BeNumerically("<=", view.XMax))
		})

		It("should refuse positions in the label margin", func() {
			view := newGraphView()
			flushGraph(view, 40, 12)

			_, ok := view.WorldX(0, 5)
			Expect(ok).To(BeFalse())
		})

		It("should map further-right cells to larger domain values", func() {
			view := newGraphView()
			flushGraph(view, 40, 12)

			left, okLeft := view.WorldX(15, 5)
			right, okRight := view.WorldX(30, 5)
			Expect(okLeft).To(BeTrue())
			Expect(okRight).To(BeTrue())
			Expect(right).To(BeNumerically(">", left))
		})
	})
})
