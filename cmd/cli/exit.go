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

package cli

import (
	"math/rand"
	"strings"
	"time"
)

var (
	exitStrings = map[string]bool{
		"q":    true,
		"quit": true,
		"exit": true,
	}

	exitQuotes = []string{
		"\nParallel lines have so much in common.  It's a shame they'll never meet.",
		"\nWithout geometry, life is pointless.",
		"\nAn asymptote walks up to a curve... and keeps walking.",
		"\nI'll do algebra, I'll even do calculus, but graphing is where I draw the line.",
		"\nThe derivative dumped the constant.  It felt it added nothing to the relationship.",
		"\nNever argue with a 90 degree angle.  It's always right.",
		"\ne^x and a constant see a differential operator coming.  The constant runs.",
	}
)

// IsExit reports whether the input is one of the bare words that ask to
// leave the session.
func IsExit(qs string) bool {
	return exitStrings[strings.TrimSpace(qs)]
}

// Farewell returns a parting line for the end of a session.
func Farewell() string {
	r := rand.New(rand.NewSource(time.Now().Unix()))
	return exitQuotes[r.Intn(len(exitQuotes))]
}
