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

package graph

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/c-bata/go-prompt"
	"github.com/gdamore/tcell"

	"github.com/fxplot/fxplot/cmd/cli"
	"github.com/fxplot/fxplot/debug"
	"github.com/fxplot/fxplot/fx/expr"
	"github.com/fxplot/fxplot/fx/term"
	"github.com/fxplot/fxplot/fx/term/plot"
)

// Flags carries the command-line configuration into the graph command.
type Flags struct {
	Expr    string
	XMin    float64
	XMax    float64
	Samples int
	Anchor  string
	Dump    bool
	Output  string
}

type GraphCommand struct {
	cli.FxCommand
}

const promptRows = 7

func labelRange(v float64) string {
	return fmt.Sprintf("%5.4g", v)
}

func labelDomain(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func (c *GraphCommand) Run(flags Flags) error {
	defer debug.Teardown()

	text := expr.Normalize(flags.Expr)
	f, err := expr.Compile(text)
	if err != nil {
		return err
	}
	df, err := expr.Differentiate(text)
	if err != nil {
		return err
	}

	if flags.Dump {
		return c.dump(flags, f, df)
	}
	return c.runInteractive(context.Background(), flags, text)
}

// dump prints the sampled curve instead of drawing it, for piping into other
// tools.
func (c *GraphCommand) dump(flags Flags, f, df expr.Func) error {
	xs := plot.SampleGrid(flags.XMin, flags.XMax, flags.Samples)
	samples := DumpSamples(f, df, xs)
	o, err := ToPrettyFormat(samples, flags.Output, true)
	if err != nil {
		return err
	}
	c.Fprintf("%s\n", *o)
	return nil
}

// session is the state behind the interactive screen.  The prompt goroutine
// and the terminal event loop both mutate it, hence the lock.
type session struct {
	mu sync.Mutex

	exprText string
	f, df    expr.Func

	xmin, xmax float64
	samples    int

	showDeriv   bool
	showTangent bool

	// lockedAnchor pins the tangent anchor; when nil the anchor follows
	// hoverX (the pointer), when that is set
	lockedAnchor *float64
	hoverX       *float64

	// the panels from the last built view, for pointer hit-testing
	lastF *term.FuncGraphView
	lastD *term.FuncGraphView

	runner     *term.Runner
	promptView term.View
}

func (c *GraphCommand) runInteractive(ctx context.Context, flags Flags, text string) error {
	s := &session{
		xmin:        flags.XMin,
		xmax:        flags.XMax,
		samples:     plot.ClampSamples(flags.Samples),
		showDeriv:   true,
		showTangent: true,
	}
	if flags.Anchor != "" {
		if v, ok := expr.EvalConst(flags.Anchor); ok {
			s.lockedAnchor = &v
		} else {
			return fmt.Errorf("bad anchor %q: not a constant expression", flags.Anchor)
		}
	}

	comp := NewCompleter()
	promptView := &term.PromptView{
		SetupPrompt: func(requiredOpts ...prompt.Option) *prompt.Prompt {
			opts := []prompt.Option{
				prompt.OptionPrefix("f(x) = "),
				prompt.OptionCompletionWordSeparator(ExprTokenSeparators),
				prompt.OptionPrefixTextColor(prompt.Cyan),
				prompt.OptionInputTextColor(prompt.Yellow),
			}
			opts = append(opts, requiredOpts...)

			return prompt.New(nil, comp.Complete, opts...)
		},
		HandleInput: s.handleInput,
	}

	termRunner := &term.Runner{
		KeyHandler:   promptView.HandleKey,
		MouseHandler: s.handleMouse,
	}
	promptView.Screen = termRunner
	s.runner = termRunner
	s.promptView = promptView

	ctx, stopScreen := context.WithCancel(ctx)
	initialInput := text
	go promptView.Run(ctx, &initialInput, stopScreen)

	if err := termRunner.Run(ctx, s.buildView()); err != nil {
		return err
	}
	c.Fprintf("%s\n", cli.Farewell())
	return nil
}

// buildView recomputes everything derived from the current state: sampling,
// range estimation, segmentation, overlays, and the widget tree.
func (s *session) buildView() term.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	var graphArea term.View
	if s.f == nil {
		// nothing compiled yet (first paint races the initial input)
		s.lastF = nil
		s.lastD = nil
		graphArea = &term.TextBox{}
	} else {
		graphArea = s.buildPanelsLocked()
	}

	return &term.SplitView{
		Dock:     term.PosBelow,
		DockSize: promptRows,
		Docked:   s.promptView,
		Flexed:   graphArea,
	}
}

func (s *session) buildPanelsLocked() term.View {
	xs := plot.SampleGrid(s.xmin, s.xmax, s.samples)
	ymin, ymax := plot.EstimateRange(s.f, s.xmin, s.xmax, s.samples)

	fView := &term.FuncGraphView{
		XMin: s.xmin, XMax: s.xmax,
		YMin: ymin, YMax: ymax,
		Segments:      plot.BuildSegments(s.f, xs, plot.PrimaryJump),
		Markers:       plot.JumpPositions(s.f, xs, plot.MarkerJump),
		CurveColor:    tcell.ColorGreen,
		DomainLabeler: labelDomain,
		RangeLabeler:  labelRange,
		Readout:       "f(x) = " + s.exprText,
	}

	anchor := s.lockedAnchor
	if anchor == nil {
		anchor = s.hoverX
	}
	if anchor != nil {
		fView.GuideX = anchor
		readout := fmt.Sprintf("f(x) = %s   x=%.3f", s.exprText, *anchor)
		if tangent, ok := plot.ComputeTangent(s.f, s.df, *anchor, s.xmin, s.xmax); ok {
			readout += fmt.Sprintf("  f=%.3f  f'=%.3f", tangent.Y, tangent.Slope)
			if s.showTangent {
				fView.Tangent = &tangent
			}
		} else {
			readout += "  (no tangent here)"
		}
		fView.Readout = readout
	}

	s.lastF = fView
	if !s.showDeriv {
		s.lastD = nil
		return fView
	}

	dsegs, holes := plot.BuildDerivativeSegments(s.f, s.df, xs)
	dymin, dymax := plot.EstimateRange(s.df, s.xmin, s.xmax, s.samples)
	dView := &term.FuncGraphView{
		XMin: s.xmin, XMax: s.xmax,
		YMin: dymin, YMax: dymax,
		Segments:      dsegs,
		Holes:         holes,
		GuideX:        anchor,
		CurveColor:    tcell.ColorTeal,
		DomainLabeler: labelDomain,
		RangeLabeler:  labelRange,
		Readout:       "f'(x)",
	}
	s.lastD = dView

	return &term.EvenVSplit{Top: fView, Bottom: dView, Gap: 1}
}

// requestRedraw rebuilds the widget tree and hands it to the event loop.
func (s *session) requestRedraw() {
	s.runner.RequestUpdate(s.buildView())
}

func (s *session) handleMouse(evt *tcell.EventMouse) {
	col, row := evt.Position()

	s.mu.Lock()
	var x float64
	var hit bool
	// only the f panel is hoverable; the derivative panel just follows
	if s.lastF != nil {
		x, hit = s.lastF.WorldX(col, row)
	}

	changed := false
	if hit {
		if s.hoverX == nil || *s.hoverX != x {
			s.hoverX = &x
			changed = true
		}
		// click pins the anchor where hover happens to be
		if evt.Buttons()&tcell.Button1 != 0 {
			s.lockedAnchor = &x
			changed = true
		}
	} else if s.hoverX != nil {
		s.hoverX = nil
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.requestRedraw()
	}
}

func (s *session) handleInput(input string) (*string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, false
	}
	if cli.IsExit(input) {
		return nil, true
	}
	if input[0] == ':' {
		return s.handleCommand(input)
	}

	text := expr.Normalize(input)
	f, err := expr.Compile(text)
	if err != nil {
		msg := fmt.Sprintf("%v\n", err)
		return &msg, false
	}
	df, err := expr.Differentiate(text)
	if err != nil {
		msg := fmt.Sprintf("%v\n", err)
		return &msg, false
	}

	s.mu.Lock()
	s.exprText = text
	s.f = f
	s.df = df
	s.mu.Unlock()
	s.requestRedraw()

	msg := fmt.Sprintf("plotting %q\n", text)
	return &msg, false
}

func (s *session) handleCommand(input string) (*string, bool) {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	fail := func(format string, fmtArgs ...interface{}) (*string, bool) {
		msg := fmt.Sprintf(format, fmtArgs...)
		return &msg, false
	}

	switch cmd {
	case ":quit", ":q":
		return nil, true

	case ":deriv":
		s.mu.Lock()
		s.showDeriv = !s.showDeriv
		on := s.showDeriv
		s.mu.Unlock()
		s.requestRedraw()
		return fail("derivative panel: %v\n", on)

	case ":tangent":
		s.mu.Lock()
		s.showTangent = !s.showTangent
		on := s.showTangent
		s.mu.Unlock()
		s.requestRedraw()
		return fail("tangent overlay: %v\n", on)

	case ":lock":
		if len(args) != 1 {
			return fail("usage: :lock <x0>\n")
		}
		v, ok := expr.EvalConst(args[0])
		if !ok {
			return fail("bad anchor %q: not a constant expression\n", args[0])
		}
		s.mu.Lock()
		s.lockedAnchor = &v
		s.mu.Unlock()
		s.requestRedraw()
		return fail("anchor locked at x=%.4g\n", v)

	case ":unlock":
		s.mu.Lock()
		s.lockedAnchor = nil
		s.mu.Unlock()
		s.requestRedraw()
		return fail("anchor follows the pointer\n")

	case ":domain":
		if len(args) != 2 {
			return fail("usage: :domain <a> <b>\n")
		}
		a, okA := expr.EvalConst(args[0])
		b, okB := expr.EvalConst(args[1])
		if !okA || !okB {
			return fail("bad domain: both bounds must be constant expressions\n")
		}
		if a >= b {
			return fail("bad domain: need %v < %v\n", args[0], args[1])
		}
		s.mu.Lock()
		s.xmin = a
		s.xmax = b
		s.mu.Unlock()
		s.requestRedraw()
		return fail("domain is now [%.4g, %.4g]\n", a, b)

	case ":samples":
		if len(args) != 1 {
			return fail("usage: :samples <n>\n")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fail("bad sample count %q\n", args[0])
		}
		clamped := plot.ClampSamples(n)
		s.mu.Lock()
		s.samples = clamped
		s.mu.Unlock()
		s.requestRedraw()
		if clamped != n {
			return fail("samples clamped to %d\n", clamped)
		}
		return fail("sampling %d points\n", clamped)

	default:
		return fail("no known command %q (hint: try %q)\n", cmd, ":quit")
	}
}
