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

package expr

import (
	"fmt"
	"math"
)

// Node is a parsed expression tree node.  Eval evaluates the subtree with the
// variable x bound to the given value.  Eval never panics -- undefined
// operations follow IEEE float semantics (log of a negative is NaN, division
// by zero is an infinity) and get squashed to NaN at the Func boundary.
type Node interface {
	Eval(x float64) float64
	String() string
}

// Literal is a real constant.
type Literal struct {
	Val float64
}

func (l Literal) Eval(_ float64) float64 { return l.Val }
func (l Literal) String() string         { return fmt.Sprintf("%g", l.Val) }

// Variable is the sole free variable, x.
type Variable struct{}

func (Variable) Eval(x float64) float64 { return x }
func (Variable) String() string         { return "x" }

// Neg is unary minus.
type Neg struct {
	Operand Node
}

func (n Neg) Eval(x float64) float64 { return -n.Operand.Eval(x) }
func (n Neg) String() string         { return "-(" + n.Operand.String() + ")" }

// Binary is an infix operation: arithmetic (+ - * / ^) or a comparison
// (< <= > >= == !=).  Comparisons evaluate to 1 or 0 so they can feed the
// conditional operator.
type Binary struct {
	Op          string
	Left, Right Node
}

func (b Binary) Eval(x float64) float64 {
	l := b.Left.Eval(x)
	r := b.Right.Eval(x)
	switch b.Op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	case "^":
		return math.Pow(l, r)
	case "<":
		return boolToFloat(l < r)
	case "<=":
		return boolToFloat(l <= r)
	case ">":
		return boolToFloat(l > r)
	case ">=":
		return boolToFloat(l >= r)
	case "==":
		return boolToFloat(l == r)
	case "!=":
		return boolToFloat(l != r)
	}
	return math.NaN()
}

func (b Binary) String() string {
	return "(" + b.Left.String() + b.Op + b.Right.String() + ")"
}

// Call applies one of the named functions to its argument.
type Call struct {
	Name string
	Arg  Node
}

func (c Call) Eval(x float64) float64 {
	v := c.Arg.Eval(x)
	switch c.Name {
	case "sin":
		return math.Sin(v)
	case "cos":
		return math.Cos(v)
	case "tan":
		return math.Tan(v)
	case "exp":
		return math.Exp(v)
	case "log":
		return math.Log(v)
	case "abs":
		return math.Abs(v)
	case "sqrt":
		return math.Sqrt(v)
	}
	return math.NaN()
}

func (c Call) String() string {
	return c.Name + "(" + c.Arg.String() + ")"
}

// Conditional is the ternary cond ? a : b, used for piecewise definitions.
// The condition is truthy when it evaluates non-zero; a NaN condition makes
// the whole node NaN rather than silently picking a branch.
type Conditional struct {
	Cond, Then, Else Node
}

func (c Conditional) Eval(x float64) float64 {
	cond := c.Cond.Eval(x)
	if math.IsNaN(cond) {
		return cond
	}
	if cond != 0 {
		return c.Then.Eval(x)
	}
	return c.Else.Eval(x)
}

func (c Conditional) String() string {
	return "(" + c.Cond.String() + "?" + c.Then.String() + ":" + c.Else.String() + ")"
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// knownFuncs is the callable function set of the grammar.
var knownFuncs = map[string]bool{
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"exp":  true,
	"log":  true,
	"abs":  true,
	"sqrt": true,
}

// KnownFunctions lists the callable function names, for completion.
func KnownFunctions() []string {
	return []string{"abs", "cos", "exp", "log", "sin", "sqrt", "tan"}
}
