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
	"encoding/json"
	"fmt"
	"math"

	"github.com/fatih/color"
	prettyjson "github.com/hokaccha/go-prettyjson"
	yaml "gopkg.in/yaml.v2"

	"github.com/fxplot/fxplot/fx/expr"
	"github.com/fxplot/fxplot/fx/term/plot"
)

// SamplePoint is one row of a non-interactive dump: the sample position, the
// function and derivative values (nil where undefined, since JSON has no
// NaN), and the index of the curve segment the sample belongs to (-1 for
// samples that render as gaps).
type SamplePoint struct {
	X       float64  `json:"x" yaml:"x"`
	Y       *float64 `json:"y" yaml:"y"`
	Dy      *float64 `json:"dy" yaml:"dy"`
	Segment int      `json:"segment" yaml:"segment"`
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// DumpSamples evaluates f and f' over the grid and tags each sample with its
// segment, using the same segmentation the renderer draws with.
func DumpSamples(f, df expr.Func, xs []float64) []SamplePoint {
	segments := plot.BuildSegments(f, xs, plot.PrimaryJump)
	segmentOf := make(map[float64]int, len(xs))
	for i, seg := range segments {
		for _, pt := range seg {
			segmentOf[pt.X] = i
		}
	}

	samples := make([]SamplePoint, len(xs))
	for i, x := range xs {
		seg, inSegment := segmentOf[x]
		if !inSegment {
			seg = -1
		}
		samples[i] = SamplePoint{
			X:       x,
			Y:       finitePtr(f(x)),
			Dy:      finitePtr(df(x)),
			Segment: seg,
		}
	}
	return samples
}

func toPrettyJson(samples []SamplePoint) (*string, error) {
	s, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return nil, err
	}
	out := string(s)
	return &out, nil
}

func toPrettyColoredJson(samples []SamplePoint) (*string, error) {
	f := prettyjson.NewFormatter()
	f.Indent = 4
	f.KeyColor = color.New(color.FgGreen)
	f.NullColor = color.New(color.Underline)
	f.NumberColor = color.New(color.FgYellow)
	f.StringColor = color.New(color.FgHiCyan)
	f.BoolColor = nil

	s, err := f.Marshal(samples)
	if err != nil {
		return nil, err
	}
	out := string(s)
	return &out, nil
}

func toYaml(samples []SamplePoint) (*string, error) {
	o, err := yaml.Marshal(samples)
	if err != nil {
		return nil, err
	}
	out := string(o)
	return &out, nil
}

// ToPrettyFormat renders the dump in the requested output format.
func ToPrettyFormat(samples []SamplePoint, outputType string, colorized bool) (*string, error) {
	switch outputType {
	case "json":
		if colorized {
			return toPrettyColoredJson(samples)
		}
		return toPrettyJson(samples)
	case "yaml":
		return toYaml(samples)
	}
	return nil, fmt.Errorf("unsupported formatting option (%s)", outputType)
}
