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

// errNoRule marks constructs without a symbolic differentiation rule
// (conditionals, comparisons, abs).  It never reaches callers of
// Differentiate -- it only routes them to the numeric fallback.
type errNoRule struct {
	construct string
}

func (e errNoRule) Error() string {
	return fmt.Sprintf("no symbolic rule for %s", e.construct)
}

// Differentiate returns a Func approximating the derivative of the given
// expression.  It first tries to build an exact symbolic derivative tree; if
// any node lacks a rule it falls back to a scaled central difference over
// the compiled original.  An error comes back only when the expression
// itself does not compile.
func Differentiate(input string) (Func, error) {
	node, err := Parse(Normalize(input))
	if err != nil {
		return nil, err
	}
	if dnode, derr := diff(node); derr == nil {
		return compileNode(dnode), nil
	}
	// piecewise/ternary and abs land here: estimate numerically from the
	// original function instead, at the cost of accuracy near kinks
	return centralDifference(compileNode(node)), nil
}

// centralDifference approximates f' with (f(x+h)-f(x-h))/2h, the step scaled
// by |x| to keep relative rounding error in check.
func centralDifference(f Func) Func {
	return func(x float64) float64 {
		h := 1e-5 * math.Max(1, math.Abs(x))
		d := (f(x+h) - f(x-h)) / (2 * h)
		if math.IsInf(d, 0) {
			return math.NaN()
		}
		return d
	}
}

// diff structurally differentiates the tree with respect to x.  No
// simplification happens beyond what the construction itself implies; the
// result is evaluated, not displayed.
func diff(node Node) (Node, error) {
	switch n := node.(type) {
	case Literal:
		return Literal{Val: 0}, nil
	case Variable:
		return Literal{Val: 1}, nil
	case Neg:
		d, err := diff(n.Operand)
		if err != nil {
			return nil, err
		}
		return Neg{Operand: d}, nil
	case Binary:
		return diffBinary(n)
	case Call:
		return diffCall(n)
	case Conditional:
		return nil, errNoRule{construct: "conditional"}
	}
	return nil, errNoRule{construct: "unknown node"}
}

func diffBinary(n Binary) (Node, error) {
	switch n.Op {
	case "+", "-":
		dl, err := diff(n.Left)
		if err != nil {
			return nil, err
		}
		dr, err := diff(n.Right)
		if err != nil {
			return nil, err
		}
		return Binary{Op: n.Op, Left: dl, Right: dr}, nil
	case "*":
		dl, err := diff(n.Left)
		if err != nil {
			return nil, err
		}
		dr, err := diff(n.Right)
		if err != nil {
			return nil, err
		}
		// u'v + uv'
		return Binary{Op: "+",
			Left:  Binary{Op: "*", Left: dl, Right: n.Right},
			Right: Binary{Op: "*", Left: n.Left, Right: dr},
		}, nil
	case "/":
		dl, err := diff(n.Left)
		if err != nil {
			return nil, err
		}
		dr, err := diff(n.Right)
		if err != nil {
			return nil, err
		}
		// (u'v - uv') / v^2
		return Binary{Op: "/",
			Left: Binary{Op: "-",
				Left:  Binary{Op: "*", Left: dl, Right: n.Right},
				Right: Binary{Op: "*", Left: n.Left, Right: dr},
			},
			Right: Binary{Op: "^", Left: n.Right, Right: Literal{Val: 2}},
		}, nil
	case "^":
		return diffPower(n)
	}
	// comparisons are step functions; send them to the numeric fallback
	return nil, errNoRule{construct: "comparison " + n.Op}
}

func diffPower(n Binary) (Node, error) {
	if c, ok := n.Right.(Literal); ok {
		// u^c -> c * u^(c-1) * u'
		du, err := diff(n.Left)
		if err != nil {
			return nil, err
		}
		return Binary{Op: "*",
			Left: Binary{Op: "*",
				Left:  Literal{Val: c.Val},
				Right: Binary{Op: "^", Left: n.Left, Right: Literal{Val: c.Val - 1}},
			},
			Right: du,
		}, nil
	}
	if a, ok := n.Left.(Literal); ok {
		// a^v -> a^v * ln(a) * v'
		dv, err := diff(n.Right)
		if err != nil {
			return nil, err
		}
		return Binary{Op: "*",
			Left: Binary{Op: "*",
				Left:  Binary{Op: "^", Left: a, Right: n.Right},
				Right: Literal{Val: math.Log(a.Val)},
			},
			Right: dv,
		}, nil
	}
	// general u^v -> u^v * (v' ln u + v u'/u)
	du, err := diff(n.Left)
	if err != nil {
		return nil, err
	}
	dv, err := diff(n.Right)
	if err != nil {
		return nil, err
	}
	return Binary{Op: "*",
		Left: n,
		Right: Binary{Op: "+",
			Left:  Binary{Op: "*", Left: dv, Right: Call{Name: "log", Arg: n.Left}},
			Right: Binary{Op: "/", Left: Binary{Op: "*", Left: n.Right, Right: du}, Right: n.Left},
		},
	}, nil
}

func diffCall(n Call) (Node, error) {
	du, err := diff(n.Arg)
	if err != nil {
		return nil, err
	}
	var outer Node
	switch n.Name {
	case "sin":
		outer = Call{Name: "cos", Arg: n.Arg}
	case "cos":
		outer = Neg{Operand: Call{Name: "sin", Arg: n.Arg}}
	case "tan":
		// 1 + tan^2
		outer = Binary{Op: "+",
			Left:  Literal{Val: 1},
			Right: Binary{Op: "^", Left: Call{Name: "tan", Arg: n.Arg}, Right: Literal{Val: 2}},
		}
	case "exp":
		outer = Call{Name: "exp", Arg: n.Arg}
	case "log":
		outer = Binary{Op: "/", Left: Literal{Val: 1}, Right: n.Arg}
	case "sqrt":
		outer = Binary{Op: "/",
			Left:  Literal{Val: 1},
			Right: Binary{Op: "*", Left: Literal{Val: 2}, Right: Call{Name: "sqrt", Arg: n.Arg}},
		}
	default:
		// abs has no derivative at its kink; the numeric fallback renders
		// the corner honestly instead
		return nil, errNoRule{construct: n.Name}
	}
	return Binary{Op: "*", Left: outer, Right: du}, nil
}
