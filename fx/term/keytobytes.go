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
	"unicode/utf8"

	"github.com/c-bata/go-prompt"
	"github.com/gdamore/tcell"
)

// keyToBytes translates a tcell key event back into the raw byte sequence
// go-prompt's parser expects to read off a terminal.  Plain runes encode as
// UTF-8; special keys map through go-prompt's own escape-sequence table.
// Returns nil for keys go-prompt has no sequence for.
func keyToBytes(evt *tcell.EventKey) []byte {
	if evt.Key() == tcell.KeyRune {
		rn := evt.Rune()
		if rn < utf8.RuneSelf {
			return []byte{byte(rn)}
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], rn)
		return buf[:n]
	}

	key := prompt.NotDefined
	rawKey := evt.Key()

	// contiguous ranges first
	switch {
	case rawKey >= tcell.KeyCtrlA && rawKey <= tcell.KeyCtrlZ:
		// prompt.Escape is 0, ControlA starts at 1
		key = prompt.Key(rawKey-tcell.KeyCtrlA) + prompt.ControlA
	case rawKey >= tcell.KeyF1 && rawKey <= tcell.KeyF24:
		key = prompt.Key(rawKey-tcell.KeyF1) + prompt.F1
	}

	// individual keys after the ranges: some tcell aliases (tab, escape)
	// share values with the control range but go-prompt treats them apart
	switch rawKey {
	case tcell.KeyTab:
		key = prompt.Tab
	case tcell.KeyBacktab:
		key = prompt.BackTab
	case tcell.KeyESC:
		key = prompt.Escape
	case tcell.KeyCtrlSpace:
		key = prompt.ControlSpace
	case tcell.KeyCtrlBackslash:
		key = prompt.ControlBackslash
	case tcell.KeyCtrlRightSq:
		key = prompt.ControlSquareClose
	case tcell.KeyCtrlCarat:
		key = prompt.ControlCircumflex
	case tcell.KeyCtrlUnderscore:
		key = prompt.ControlUnderscore
	case tcell.KeyHome:
		key = prompt.Home
	case tcell.KeyEnd:
		key = prompt.End
	case tcell.KeyPgUp:
		key = prompt.PageUp
	case tcell.KeyPgDn:
		key = prompt.PageDown
	case tcell.KeyInsert:
		key = prompt.Insert
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		key = prompt.Backspace
	}

	mods := evt.Modifiers()
	isCtrl := mods&tcell.ModCtrl != 0
	isShift := mods&tcell.ModShift != 0

	// arrows and delete vary with modifiers
	switch rawKey {
	case tcell.KeyLeft:
		key = prompt.Left
		switch {
		case isCtrl:
			key = prompt.ControlLeft
		case isShift:
			key = prompt.ShiftLeft
		}
	case tcell.KeyRight:
		key = prompt.Right
		switch {
		case isCtrl:
			key = prompt.ControlRight
		case isShift:
			key = prompt.ShiftRight
		}
	case tcell.KeyUp:
		key = prompt.Up
		switch {
		case isCtrl:
			key = prompt.ControlUp
		case isShift:
			key = prompt.ShiftUp
		}
	case tcell.KeyDown:
		key = prompt.Down
		switch {
		case isCtrl:
			key = prompt.ControlDown
		case isShift:
			key = prompt.ShiftDown
		}
	case tcell.KeyDelete:
		key = prompt.Delete
		switch {
		case isCtrl:
			key = prompt.ControlDelete
		case isShift:
			key = prompt.ShiftDelete
		}
	}

	// go-prompt only exposes the key->bytes mapping in this direction
	for _, seq := range prompt.ASCIISequences {
		if seq.Key == key {
			return seq.ASCIICode
		}
	}
	return nil
}
