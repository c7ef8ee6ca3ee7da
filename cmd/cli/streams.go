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
	"fmt"
	"io"
	"os"
)

// Streams bundles the input and output destinations of a command, so that
// tests can substitute buffers for the real standard streams.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

// FxCommand is the shared base of fx subcommands.
type FxCommand struct {
	Streams Streams
}

func (c FxCommand) Fprintf(format string, args ...interface{}) {
	fmt.Fprintf(c.Streams.Out, format, args...)
}

func (c FxCommand) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.Streams.ErrOut, format, args...)
}
