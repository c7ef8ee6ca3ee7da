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
	"fmt"
	"sync"
	"syscall"
	"unicode/utf8"

	"github.com/c-bata/go-prompt"
	"github.com/gdamore/tcell"
)

// screenIsh is the slice of Runner the prompt machinery needs: cursor
// control and repaint requests.
type screenIsh interface {
	ShowCursor(int, int)
	HideCursor()
	RequestRepaint()
}

// cellWriter adapts a textGrid into go-prompt's ConsoleWriter, so that the
// prompt renders into our widget instead of onto a raw terminal.  Most of
// the interface maps straight onto grid operations; the handful of methods
// go-prompt never calls in this configuration panic to make a behavior
// change loud.
type cellWriter struct {
	screen             screenIsh
	startRow, startCol int

	textGrid

	currentStyle tcell.Style
}

func (w *cellWriter) SetBox(box PositionBox) {
	w.startCol = box.StartCol
	w.startRow = box.StartRow
	w.Resize(box.Cols, box.Rows)
}

func (w *cellWriter) WriteRaw(data []byte) {
	// go-prompt only raw-writes a bare newline in this setup
	if len(data) == 1 && data[0] == '\n' {
		w.Newline()
		return
	}
	panic(fmt.Sprintf("non-newline raw write not implemented: %v", data))
}
func (w *cellWriter) Write(data []byte) {
	panic("not used")
}
func (w *cellWriter) WriteRawStr(data string) {
	panic("not used")
}
func (w *cellWriter) WriteStr(data string) {
	w.WriteString(data, w.currentStyle)
}
func (w *cellWriter) Flush() error {
	w.screen.RequestRepaint()
	return nil
}
func (w *cellWriter) EraseScreen() {
	w.Erase()
}
func (w *cellWriter) ShowCursor() {
	cursorCol, cursorRow := w.CursorPosition()
	w.screen.ShowCursor(w.startCol+cursorCol, w.startRow+cursorRow)
}
func (w *cellWriter) HideCursor() {
	w.screen.HideCursor()
}
func (w *cellWriter) AskForCPR() {
	panic("not used")
}
func (w *cellWriter) SaveCursor() {
	panic("not used")
}
func (w *cellWriter) UnSaveCursor() {
	panic("not used")
}
func (w *cellWriter) SetTitle(title string) {}
func (w *cellWriter) ClearTitle()           {}

func (w *cellWriter) SetColor(fg, bg prompt.Color, bold bool) {
	// prompt colors cast almost directly to tcell colors: "default" is iota
	// in prompt, black is iota in tcell, so everything is off by one
	w.currentStyle = tcell.StyleDefault.Bold(bold)
	if fg != prompt.DefaultColor {
		w.currentStyle = w.currentStyle.Foreground(tcell.Color(fg - 1))
	}
	if bg != prompt.DefaultColor {
		w.currentStyle = w.currentStyle.Background(tcell.Color(bg - 1))
	}
}

// screenParser feeds tcell key events into go-prompt's ConsoleParser
// interface, which expects non-blocking reads of raw terminal bytes.
//
// go-prompt assumes shortcut keys and things like enter arrive in their own
// read, so special keys are handed over individually while runs of plain
// runes collapse into one read.
type screenParser struct {
	size      *prompt.WinSize
	evts      chan *tcell.EventKey
	leftOvers []byte
	mu        sync.Mutex
}

func (*screenParser) Setup() error    { return nil }
func (*screenParser) TearDown() error { return nil }

func (p *screenParser) GetWinSize() *prompt.WinSize {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.size
}

func (p *screenParser) Resize(size *prompt.WinSize) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.size = size
}

func (p *screenParser) Read() ([]byte, error) {
	// a special key may have ended the previous read with runes still queued
	if p.leftOvers != nil {
		res := p.leftOvers
		p.leftOvers = nil
		return res, nil
	}

	var res []byte
collapse:
	for {
		// go-prompt reads with NOBLOCK set, emulate that
		select {
		case evt := <-p.evts:
			if evt.Key() != tcell.KeyRune {
				if bytes := keyToBytes(evt); bytes != nil {
					p.leftOvers = bytes
				}
				break collapse
			}
			rn := evt.Rune()
			if rn < utf8.RuneSelf {
				res = append(res, byte(rn))
				continue
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], rn)
			res = append(res, buf[:n]...)
		default:
			break collapse
		}
	}
	// a lone special key is itself the result
	if len(res) == 0 && len(p.leftOvers) > 0 {
		res = p.leftOvers
		p.leftOvers = nil
	}

	if len(res) > 0 {
		return res, nil
	}
	return nil, syscall.EWOULDBLOCK
}

func (p *screenParser) AddKey(evt *tcell.EventKey) {
	p.evts <- evt
}

func (p *screenParser) AddString(str string) {
	for _, rn := range str {
		p.evts <- tcell.NewEventKey(tcell.KeyRune, rn, 0)
	}
}
