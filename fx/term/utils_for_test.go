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
	"reflect"

	"github.com/gdamore/tcell"
	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"

	"github.com/fxplot/fxplot/fx/term"
)

// cellsMatcher compares expected screen contents against an actual
// tcell.Screen, either cell-for-cell or contents-only (ignoring style).
type cellsMatcher struct {
	expected     tcell.SimulationScreen
	contentsOnly bool
}

// onScreen renders a flushable to a fake screen sized like the expected one.
func (m *cellsMatcher) onScreen(contents term.Flushable) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("")
	screen.Init()
	screen.SetSize(m.expected.Size())
	contents.FlushTo(screen)
	screen.Show()

	return screen
}

func (m *cellsMatcher) matchCells(actualCells []tcell.SimCell) (bool, error) {
	expectedCells, _, _ := m.expected.GetContents()

	if !m.contentsOnly {
		return reflect.DeepEqual(expectedCells, actualCells), nil
	}

	expectedRunes := make([]rune, 0, len(expectedCells))
	for _, cell := range expectedCells {
		expectedRunes = append(expectedRunes, cell.Runes...)
	}
	actualRunes := make([]rune, 0, len(actualCells))
	for _, cell := range actualCells {
		actualRunes = append(actualRunes, cell.Runes...)
	}

	return reflect.DeepEqual(expectedRunes, actualRunes), nil
}

func (m *cellsMatcher) Match(actual interface{}) (bool, error) {
	if m.expected == nil || actual == nil {
		return false, fmt.Errorf("refusing to compare against <nil>")
	}

	switch actual := actual.(type) {
	case term.Flushable:
		actualCells, _, _ := m.onScreen(actual).GetContents()
		return m.matchCells(actualCells)
	case tcell.SimulationScreen:
		actualCells, _, _ := actual.GetContents()
		return m.matchCells(actualCells)
	default:
		expectedCells, _, _ := m.expected.GetContents()
		return reflect.DeepEqual(expectedCells, actual), nil
	}
}

func (m *cellsMatcher) FailureMessage(actual interface{}) string {
	return m.message(actual, "to equal")
}

func (m *cellsMatcher) NegatedFailureMessage(actual interface{}) string {
	return m.message(actual, "not to equal")
}

func (m *cellsMatcher) message(actual interface{}, verb string) string {
	var actualScreen tcell.SimulationScreen
	switch actual := actual.(type) {
	case term.Flushable:
		actualScreen = m.onScreen(actual)
	case tcell.SimulationScreen:
		actualScreen = actual
	default:
		return format.Message(actual, verb, displayCells(m.expected))
	}

	if m.contentsOnly {
		verb += " (ignoring style)"
	} else {
		verb += " (including style, not shown)"
	}
	return format.Message("\n"+displayCells(actualScreen), verb, "\n"+displayCells(m.expected))
}

// displayCells renders the screen contents as plain text, wrapped to the
// screen width.  Doesn't account for full-width glyphs.
func displayCells(screen tcell.SimulationScreen) string {
	cells, _, _ := screen.GetContents()
	screenCols, _ := screen.Size()

	var res []rune
	for i, cell := range cells {
		if i%screenCols == 0 && i != 0 {
			res = append(res, '\n')
		}
		if len(cell.Runes) != 0 {
			res = append(res, cell.Runes[0])
		}
	}

	return string(res)
}

// DisplayLike matches the given text against the actual screen contents,
// ignoring styling.  The actual can be a Flushable (rendered to a fake
// screen first) or a tcell.SimulationScreen.
func DisplayLike(width, height int, text string) types.GomegaMatcher {
	expected := tcell.NewSimulationScreen("")
	expected.Init()
	expected.SetSize(width, height)

	row := -1
	col := -1
	for _, rn := range text {
		col++
		if col%width == 0 {
			row++
			col = 0
		}
		expected.SetContent(col, row, rn, nil, tcell.StyleDefault)
	}

	expected.Show()

	return &cellsMatcher{expected: expected, contentsOnly: true}
}

// DisplayWithStyle is DisplayLike with styling taken into account: each
// (text, style) pair writes that text in that style.
func DisplayWithStyle(width, height int, pairs ...interface{}) types.GomegaMatcher {
	if len(pairs)%2 != 0 {
		panic("DisplayWithStyle expects pairs of (text, style)")
	}

	expected := tcell.NewSimulationScreen("")
	expected.Init()
	expected.SetSize(width, height)

	row := -1
	col := -1
	for i := 0; i < len(pairs); i += 2 {
		txt, ok := pairs[i].(string)
		if !ok {
			panic("DisplayWithStyle expects pairs of (text, style)")
		}
		sty, ok := pairs[i+1].(tcell.Style)
		if !ok {
			panic("DisplayWithStyle expects pairs of (text, style)")
		}
		for _, rn := range txt {
			col++
			if col%width == 0 {
				row++
				col = 0
			}
			expected.SetContent(col, row, rn, nil, sty)
		}
	}

	expected.Show()

	return &cellsMatcher{expected: expected}
}
