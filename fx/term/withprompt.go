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
	"context"
	"errors"

	"github.com/c-bata/go-prompt"
	"github.com/gdamore/tcell"
)

// PromptView hosts an interactive go-prompt line editor inside a widget box.
// Key events get forwarded in via HandleKey; each submitted line goes to
// HandleInput, whose optional output text is echoed back into the prompt
// area.
type PromptView struct {
	writer *cellWriter
	reader *screenParser

	Screen screenIsh
	start  chan struct{}

	pos PositionBox

	// SetupPrompt builds the prompt; it must pass requiredOpts through to
	// prompt.New (they bind the prompt to this view's reader and writer).
	SetupPrompt func(requiredOpts ...prompt.Option) *prompt.Prompt
	// HandleInput processes one submitted line.  A non-nil text is written
	// back to the prompt area; stop ends the whole session.
	HandleInput func(input string) (text *string, stop bool)
	OnSetup     func()
}

func (v *PromptView) SetBox(box PositionBox) {
	v.pos = box
	if v.reader != nil && v.writer != nil {
		v.writer.SetBox(box)
		v.reader.Resize(&prompt.WinSize{Row: uint16(box.Rows), Col: uint16(box.Cols)})
	}

	// the first SetBox unblocks the input loop: until then the prompt
	// would render into a zero-sized grid
	if v.start != nil {
		close(v.start)
		v.start = nil
	}
}

func (v *PromptView) FlushTo(screen tcell.Screen) {
	v.writer.paintTo(screen, v.pos.StartCol, v.pos.StartRow)
}

func (v *PromptView) HandleKey(evt *tcell.EventKey) {
	v.reader.AddKey(evt)
}

// Run sets up the prompt plumbing and processes input until the context is
// closed or HandleInput asks to stop (in which case shutdownScreen is called
// to end the surrounding event loop).  An optional initialInput is submitted
// as if typed.
func (v *PromptView) Run(ctx context.Context, initialInput *string, shutdownScreen func()) error {
	v.writer = &cellWriter{
		screen: v.Screen,
	}
	v.reader = &screenParser{
		evts: make(chan *tcell.EventKey, 30),
	}
	viewPrompt := v.SetupPrompt(prompt.OptionParser(v.reader), prompt.OptionWriter(v.writer))
	start := make(chan struct{})
	v.start = start

	// we may have been sized before Run was called
	if v.pos != (PositionBox{}) {
		v.SetBox(v.pos)
	}

	if v.OnSetup != nil {
		v.OnSetup()
	}

	go func() {
		<-start
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			input := viewPrompt.Input()
			output, stop := v.HandleInput(input)
			if output != nil {
				v.writer.WriteStr(*output)
				v.writer.Flush()
			}
			if stop {
				shutdownScreen()
				return
			}
		}
	}()

	// queue the initial input only after the loop is running so we don't
	// block on channel capacity
	if initialInput != nil {
		v.reader.AddString(*initialInput + "\r")
	}

	<-ctx.Done()

	if err := ctx.Err(); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
