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
	"unicode"

	"github.com/gdamore/tcell"
	"github.com/mattn/go-runewidth"
)

// textGrid is a fixed-size character grid with terminal-style cursor
// semantics: wrapping writes, scrolling, and the various erase operations.
// It backs both the static TextBox widget and the prompt's console writer.
//
// The cursor is zero-indexed.
type textGrid struct {
	rows, cols int
	buf        tcell.CellBuffer

	cursorRow, cursorCol int
}

func (t *textGrid) Resize(cols, rows int) {
	t.cols = cols
	t.rows = rows
	t.buf.Resize(cols, rows)
}

// Reset clears the grid and homes the cursor.
func (t *textGrid) Reset() {
	t.buf.Fill(' ', tcell.StyleDefault)
	t.cursorRow = 0
	t.cursorCol = 0
}

// clearSpan blanks the cells [fromCol, toCol) on the given row.
func (t *textGrid) clearSpan(row, fromCol, toCol int) {
	for c := fromCol; c < toCol; c++ {
		t.buf.SetContent(c, row, ' ', nil, tcell.StyleDefault)
	}
}

// Newline clears the rest of the current line and does a carriage return plus
// line feed, scrolling if the cursor would run off the bottom.
func (t *textGrid) Newline() {
	t.clearSpan(t.cursorRow, t.cursorCol, t.cols)
	t.cursorRow++
	t.cursorCol = 0
	if t.cursorRow >= t.rows {
		t.cursorRow = t.rows - 1
		t.ScrollDown()
	}
}

// WriteString writes text at the cursor in the given style, wrapping as
// needed.  Combining characters are folded into the preceding cell; control
// characters other than newline are dropped.
func (t *textGrid) WriteString(str string, sty tcell.Style) {
	// pending holds a base rune plus any combining runes that follow it;
	// we can only place it once we know the next rune doesn't combine
	var pending []rune
	pendingWidth := 0
	flush := func() {
		if len(pending) == 0 {
			return
		}
		t.placeCell(pendingWidth, pending, sty)
		pending = pending[:0]
		pendingWidth = 0
	}
	for _, rn := range str {
		if rn == '\n' {
			flush()
			t.Newline()
			continue
		}
		if unicode.IsControl(rn) {
			continue
		}
		if width := runewidth.RuneWidth(rn); width > 0 {
			flush()
			pending = append(pending, rn)
			pendingWidth = width
		} else {
			// combining rune with no base yet: attach it to a space
			if len(pending) == 0 {
				pending = append(pending, ' ')
				pendingWidth = 1
			}
			pending = append(pending, rn)
		}
	}
	flush()
}

// placeCell writes one base rune plus its combining runes into the cursor
// cell, wrapping first if the glyph's width wouldn't fit (full-width glyphs
// take two columns).
func (t *textGrid) placeCell(width int, runes []rune, sty tcell.Style) {
	if t.cols-t.cursorCol < width {
		t.Newline()
	}
	t.buf.SetContent(t.cursorCol, t.cursorRow, runes[0], runes[1:], sty)
	t.cursorCol += width
}

// paintTo copies the dirty cells of the grid onto the screen at the given
// origin.
func (t *textGrid) paintTo(screen tcell.Screen, startCol, startRow int) {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			if !t.buf.Dirty(col, row) {
				continue
			}
			mainRune, combRunes, style, _ := t.buf.GetContent(col, row)
			screen.SetContent(startCol+col, startRow+row, mainRune, combRunes, style)
		}
	}
}

// ScrollDown is a line feed without carriage return: the cursor moves down a
// row, or, at the bottom, the contents shift up by one and the last line
// clears.
func (t *textGrid) ScrollDown() {
	if t.cursorRow < t.rows-1 {
		t.CursorDown(1)
		return
	}
	for r := 1; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			mainRune, combRunes, style, _ := t.buf.GetContent(c, r)
			t.buf.SetContent(c, r-1, mainRune, combRunes, style)
		}
	}
	t.clearSpan(t.rows-1, 0, t.cols)
}

// ScrollUp is the reverse of ScrollDown: the cursor moves up a row, or, at
// the top, the contents shift down by one and the first line clears.
func (t *textGrid) ScrollUp() {
	if t.cursorRow > 0 {
		t.CursorUp(1)
		return
	}
	for r := t.rows - 2; r >= 0; r-- {
		for c := 0; c < t.cols; c++ {
			mainRune, combRunes, style, _ := t.buf.GetContent(c, r)
			t.buf.SetContent(c, r+1, mainRune, combRunes, style)
		}
	}
	t.clearSpan(0, 0, t.cols)
}

// Erase clears the whole grid without moving the cursor.
func (t *textGrid) Erase() {
	for r := 0; r < t.rows; r++ {
		t.clearSpan(r, 0, t.cols)
	}
}

// EraseUp clears from the cursor to the top of the grid, inclusive of the
// part of the current line before the cursor.
func (t *textGrid) EraseUp() {
	t.clearSpan(t.cursorRow, 0, t.cursorCol+1)
	for r := t.cursorRow - 1; r >= 0; r-- {
		t.clearSpan(r, 0, t.cols)
	}
}

// EraseDown clears from the cursor to the bottom of the grid, inclusive of
// the part of the current line after the cursor.
func (t *textGrid) EraseDown() {
	t.clearSpan(t.cursorRow, t.cursorCol, t.cols)
	for r := t.cursorRow + 1; r < t.rows; r++ {
		t.clearSpan(r, 0, t.cols)
	}
}

// EraseStartOfLine clears from the cursor back to the start of the line.
func (t *textGrid) EraseStartOfLine() {
	t.clearSpan(t.cursorRow, 0, t.cursorCol+1)
}

// EraseEndOfLine clears from the cursor to the end of the line.
func (t *textGrid) EraseEndOfLine() {
	t.clearSpan(t.cursorRow, t.cursorCol, t.cols)
}

// EraseLine clears the whole current line.
func (t *textGrid) EraseLine() {
	t.clearSpan(t.cursorRow, 0, t.cols)
}

// CursorForward moves the cursor right n columns, stopping at the last
// column.
func (t *textGrid) CursorForward(n int) {
	t.cursorCol += n
	if t.cursorCol >= t.cols {
		t.cursorCol = t.cols - 1
	}
}

// CursorBackward moves the cursor left n columns, stopping at the first
// column.
func (t *textGrid) CursorBackward(n int) {
	t.cursorCol -= n
	if t.cursorCol < 0 {
		t.cursorCol = 0
	}
}

// CursorDown moves the cursor down n rows, stopping at the bottom.
func (t *textGrid) CursorDown(n int) {
	t.cursorRow += n
	if t.cursorRow >= t.rows {
		t.cursorRow = t.rows - 1
	}
}

// CursorUp moves the cursor up n rows, stopping at the top.
func (t *textGrid) CursorUp(n int) {
	t.cursorRow -= n
	if t.cursorRow < 0 {
		t.cursorRow = 0
	}
}

// CursorPosition reports the column and row of the cursor.
func (t *textGrid) CursorPosition() (col, row int) {
	return t.cursorCol, t.cursorRow
}

// CursorGoTo moves the cursor to the given row and column.
func (t *textGrid) CursorGoTo(row, col int) {
	t.cursorRow = row
	t.cursorCol = col
}

// styledSpan is a run of text in a single style.
type styledSpan struct {
	val string
	sty tcell.Style
}

// TextBox is a display-only text widget: styled writes accumulate and get
// re-wrapped to whatever size the box currently has.  Text that doesn't fit
// scrolls out the top.
type TextBox struct {
	grid     textGrid
	contents []styledSpan

	pos PositionBox
}

func (t *TextBox) SetBox(box PositionBox) {
	t.pos = box
	t.grid.Resize(box.Cols, box.Rows)
}

// WriteString appends styled text to the box.
func (t *TextBox) WriteString(str string, sty tcell.Style) {
	t.contents = append(t.contents, styledSpan{val: str, sty: sty})
}

func (t *TextBox) FlushTo(screen tcell.Screen) {
	if t.pos.Rows == 0 || t.pos.Cols == 0 {
		return
	}
	t.grid.CursorGoTo(0, 0)
	for _, chunk := range t.contents {
		t.grid.WriteString(chunk.val, chunk.sty)
	}
	t.grid.EraseDown()
	t.grid.paintTo(screen, t.pos.StartCol, t.pos.StartRow)
}
