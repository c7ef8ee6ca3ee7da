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
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/fxplot/fxplot/debug"
	"github.com/fxplot/fxplot/fx/expr"
)

const (
	// spaces can't individually demarcate lexical units in an expression
	ExprTokenSeparators = " +-*/^(),<>=?|"
)

var funcDescriptions = map[string]string{
	"sin":  "sine",
	"cos":  "cosine",
	"tan":  "tangent",
	"exp":  "e^x",
	"log":  "natural logarithm",
	"abs":  "absolute value",
	"sqrt": "square root",
}

var commandSuggestions = []prompt.Suggest{
	{Text: ":deriv", Description: "toggle the derivative panel"},
	{Text: ":tangent", Description: "toggle the tangent overlay"},
	{Text: ":lock", Description: ":lock <x0> pins the tangent anchor"},
	{Text: ":unlock", Description: "return the tangent anchor to the pointer"},
	{Text: ":domain", Description: ":domain <a> <b> sets the x range"},
	{Text: ":samples", Description: ":samples <n> sets the grid density"},
	{Text: ":quit", Description: "leave"},
}

// Completer suggests function names while typing expressions, and command
// names when the line starts with a colon.
type Completer struct {
	funcSuggestions []prompt.Suggest
}

func NewCompleter() *Completer {
	names := expr.KnownFunctions()
	sort.Strings(names)

	suggestions := make([]prompt.Suggest, 0, len(names)+1)
	for _, name := range names {
		suggestions = append(suggestions, prompt.Suggest{
			Text:        name + "(",
			Description: funcDescriptions[name],
		})
	}
	suggestions = append(suggestions, prompt.Suggest{Text: "pi", Description: "3.14159..."})

	return &Completer{funcSuggestions: suggestions}
}

func (c *Completer) Complete(d prompt.Document) []prompt.Suggest {
	if strings.HasPrefix(d.TextBeforeCursor(), ":") {
		return prompt.FilterHasPrefix(commandSuggestions, d.TextBeforeCursor(), true)
	}
	word := d.GetWordBeforeCursor()
	debug.Debugf("autocomplete prefix: '%v'\n", word)
	if word == "" {
		return nil
	}
	return prompt.FilterHasPrefix(c.funcSuggestions, word, true)
}
