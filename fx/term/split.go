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
)

// Flushable contains content that can be flushed to a screen.
type Flushable interface {
	// FlushTo flushes content to the screen.  It should only write to the
	// areas of the screen that it has been assigned to (generally via being
	// Resizable).
	FlushTo(screen tcell.Screen)
}

// Resizable widgets know how to receive a section of the screen that they're
// supposed to write to, and resize their content to fit that section.
type Resizable interface {
	// SetBox sets the size that this widget should fill.  This is *not* an
	// indication that the content should be drawn to the screen (that's what
	// Flushable is for).
	SetBox(PositionBox)
}

// PositionBox describes a region of the screen.
type PositionBox struct {
	// StartCol and StartRow indicate the starting row and column
	// (zero-indexed) of this region.
	StartCol, StartRow int
	// Cols and Rows indicate the count of columns in this region,
	// and will be non-zero positive numbers.
	Cols, Rows int
}

// contains reports whether an absolute screen cell falls in this region.
func (b PositionBox) contains(col, row int) bool {
	return col >= b.StartCol && col < b.StartCol+b.Cols &&
		row >= b.StartRow && row < b.StartRow+b.Rows
}

// DockPos indicates which side of a split the fixed-size pane is anchored to.
type DockPos int

const (
	// PosBelow anchors to the bottom
	PosBelow DockPos = iota
	// PosAbove anchors to the top
	PosAbove
)

// SplitView divides its region between a fixed-size "docked" pane and a
// flexed pane taking the rest.  It's used to keep the input prompt at the
// bottom of the screen below the graph panels.
type SplitView struct {
	// Dock indicates the position of the fixed-size pane.
	Dock DockPos

	// DockSize is the desired row count of the fixed-size pane; it gets
	// capped so the flexed pane keeps at least one row.
	DockSize int

	// Docked contains the content for the docked pane.  If also Flushable,
	// it will receive calls to FlushTo as well.
	Docked Resizable
	// Flexed contains the content for the non-docked pane.  If also
	// Flushable, it will receive calls to FlushTo as well.
	Flexed Resizable
}

func (v *SplitView) dockRows(screenRows int) int {
	rows := v.DockSize
	if rows >= screenRows {
		rows = screenRows - 1
	}
	if rows < 0 {
		rows = 0
	}
	return rows
}

func (v *SplitView) SetBox(box PositionBox) {
	dockRows := v.dockRows(box.Rows)

	docked := PositionBox{StartCol: box.StartCol, Cols: box.Cols, Rows: dockRows}
	flexed := PositionBox{StartCol: box.StartCol, Cols: box.Cols, Rows: box.Rows - dockRows}
	switch v.Dock {
	case PosBelow:
		docked.StartRow = box.StartRow + box.Rows - dockRows
		flexed.StartRow = box.StartRow
	case PosAbove:
		docked.StartRow = box.StartRow
		flexed.StartRow = box.StartRow + dockRows
	default:
		panic("invalid dock position")
	}

	v.Docked.SetBox(docked)
	v.Flexed.SetBox(flexed)
}

func (v *SplitView) FlushTo(screen tcell.Screen) {
	if flushable, canFlush := v.Docked.(Flushable); canFlush {
		flushable.FlushTo(screen)
	}
	if flushable, canFlush := v.Flexed.(Flushable); canFlush {
		flushable.FlushTo(screen)
	}
}

// EvenVSplit stacks two panes of equal height with a fixed gap of blank rows
// between them -- the f panel above, the f' panel below.  When the region
// has an odd number of usable rows, the top pane gets the extra row.
type EvenVSplit struct {
	Top, Bottom Resizable
	Gap         int
}

func (v *EvenVSplit) SetBox(box PositionBox) {
	gap := v.Gap
	if gap >= box.Rows {
		gap = 0
	}
	usable := box.Rows - gap
	bottomRows := usable / 2
	topRows := usable - bottomRows

	v.Top.SetBox(PositionBox{
		StartCol: box.StartCol, StartRow: box.StartRow,
		Cols: box.Cols, Rows: topRows,
	})
	v.Bottom.SetBox(PositionBox{
		StartCol: box.StartCol, StartRow: box.StartRow + topRows + gap,
		Cols: box.Cols, Rows: bottomRows,
	})
}

func (v *EvenVSplit) FlushTo(screen tcell.Screen) {
	if flushable, canFlush := v.Top.(Flushable); canFlush {
		flushable.FlushTo(screen)
	}
	if flushable, canFlush := v.Bottom.(Flushable); canFlush {
		flushable.FlushTo(screen)
	}
}

// StaticResizable just records the size it was given, without doing anything
// else.
type StaticResizable struct {
	PositionBox
}

func (r *StaticResizable) SetBox(box PositionBox) {
	r.PositionBox = box
}
