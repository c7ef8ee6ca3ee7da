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

package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fxplot/fxplot/cmd/cli"
	"github.com/fxplot/fxplot/cmd/graph"
)

// FxOptions provides the information required to plot a function
type FxOptions struct {
	args  []string
	flags graph.Flags
	cli.Streams
}

// NewFxOptions provides an instance of FxOptions with default values
func NewFxOptions(streams cli.Streams) *FxOptions {
	return &FxOptions{
		flags: graph.Flags{
			Expr:    "sin(x)",
			XMin:    -5,
			XMax:    5,
			Samples: 800,
			Output:  "json",
		},
		Streams: streams,
	}
}

type RootFxCmd struct {
	*cobra.Command
	options *FxOptions
}

func addFlags(flags *pflag.FlagSet, options *FxOptions) {
	flags.Float64Var(&options.flags.XMin, "xmin", options.flags.XMin, "left edge of the plotted domain")
	flags.Float64Var(&options.flags.XMax, "xmax", options.flags.XMax, "right edge of the plotted domain")
	flags.IntVarP(&options.flags.Samples, "samples", "n", options.flags.Samples, "number of sample points across the domain")
	flags.StringVar(&options.flags.Anchor, "x0", "", "if specified, locks the tangent anchor at this x (may be a constant expression, e.g. pi/4)")
	flags.BoolVarP(&options.flags.Dump, "dump", "d", options.flags.Dump, "if true, prints the sampled curve instead of drawing it")
	flags.StringVarP(&options.flags.Output, "output", "o", options.flags.Output, "Output format for dumped samples, defaults to json")
}

// NewCmdFx provides a cobra command wrapping FxOptions
func NewCmdFx(streams cli.Streams) *RootFxCmd {
	o := NewFxOptions(streams)
	cmd := &cobra.Command{
		Use: "fx [expression] [options]",
		Example: `
fx                                  # for interactive mode, starting with sin(x)
fx "x^2 - 2*x"                      # to plot a specific expression
fx "tan(x)" --xmin -3.2 --xmax 3.2  # to plot over a custom domain
fx "1/x" -d -oyaml                  # to dump the sampled curve in yaml
`,
		SilenceUsage: true,

		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Complete(c, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			graphCmd := graph.GraphCommand{
				FxCommand: cli.FxCommand{Streams: o.Streams},
			}
			if err := graphCmd.Run(o.flags); err != nil {
				return err
			}
			return nil
		},
	}
	fx := &RootFxCmd{Command: cmd, options: o}

	addFlags(cmd.Flags(), o)

	return fx
}

// Complete takes the expression from the positional arguments
func (o *FxOptions) Complete(cmd *cobra.Command, args []string) error {
	o.args = args

	if len(args) > 1 {
		return fmt.Errorf("at most one expression, got %d arguments", len(args))
	}
	if len(args) == 1 {
		o.flags.Expr = args[0]
	}
	return nil
}

// Validate ensures that all required arguments and flag values are sane
func (o *FxOptions) Validate() error {
	if math.IsNaN(o.flags.XMin) || math.IsInf(o.flags.XMin, 0) ||
		math.IsNaN(o.flags.XMax) || math.IsInf(o.flags.XMax, 0) {
		return fmt.Errorf("domain bounds must be finite")
	}
	if o.flags.XMin >= o.flags.XMax {
		return fmt.Errorf("empty domain: need xmin (%v) < xmax (%v)", o.flags.XMin, o.flags.XMax)
	}
	if o.flags.Samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", o.flags.Samples)
	}
	switch o.flags.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported formatting option (%s)", o.flags.Output)
	}
	return nil
}
