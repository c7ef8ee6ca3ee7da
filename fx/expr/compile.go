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

// Package expr compiles textual one-variable math expressions into plain Go
// functions, and differentiates them -- symbolically where rules exist,
// numerically otherwise.
//
// The grammar covers real literals, the variable x, the constant π (or pi),
// the operators + - * / ^, comparisons, the ternary conditional for
// piecewise functions, and the calls sin, cos, tan, exp, log, abs, sqrt.
package expr

import (
	"math"
	"strings"
)

// Func is a compiled real-valued function of one real variable.  It is pure
// and safe for concurrent use.  It returns NaN -- never panics -- for any
// out-of-domain, undefined, or non-finite evaluation.
type Func func(x float64) float64

// Normalize prepares raw user input for parsing: trims surrounding
// whitespace, and rewrites a single outermost |inner| bar pair into
// abs(inner) when the input does not already use the call form.  The rewrite
// is intentionally shallow: outermost pair only, applied once, never nested.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	if len(s) >= 2 && s[0] == '|' && s[len(s)-1] == '|' &&
		strings.Count(s, "|") == 2 && !strings.Contains(s, "abs(") {
		s = "abs(" + s[1:len(s)-1] + ")"
	}
	return s
}

// Compile parses the expression and returns a callable Func.  A nil Func and
// an error come back for unparseable input; the error is a diagnostic for
// the user, and nothing downstream should render until it is fixed.
func Compile(input string) (Func, error) {
	node, err := Parse(Normalize(input))
	if err != nil {
		return nil, err
	}
	return compileNode(node), nil
}

// compileNode wraps a tree in the Func contract: non-finite results
// (infinities from division by zero, NaNs from domain errors) are squashed
// to NaN instead of leaking out.
func compileNode(node Node) Func {
	return func(x float64) float64 {
		y := node.Eval(x)
		if math.IsInf(y, 0) {
			return math.NaN()
		}
		return y
	}
}

// EvalConst evaluates an expression with no dependence on the hover state,
// binding x to zero.  It backs numeric input fields that accept expressions
// (a tangent anchor of "pi/2", say).  The boolean reports whether the input
// both parsed and produced a finite value.
func EvalConst(input string) (float64, bool) {
	fn, err := Compile(input)
	if err != nil {
		return 0, false
	}
	v := fn(0)
	return v, !math.IsNaN(v)
}
