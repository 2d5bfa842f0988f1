/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package entrolog is a small verbosity-leveled logger for the CLI and
// benchmark harness. Core codec packages never log; logging is strictly
// an outer-surface concern.
package entrolog

import (
	"fmt"
	"io"
	"time"
)

// Level selects how much a Logger prints.
type Level uint

const (
	// Silent prints nothing.
	Silent Level = iota
	// Info prints one line per significant operation (file processed,
	// algorithm selected).
	Info
	// Verbose additionally prints timing and size detail per operation.
	Verbose
)

// Logger writes level-gated lines to an underlying writer.
type Logger struct {
	w     io.Writer
	level Level
}

// New returns a Logger gated at level, writing through w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{w: w, level: level}
}

// Infof prints a line if the logger's level is at least Info.
func (l *Logger) Infof(format string, args ...any) {
	if l.level < Info {
		return
	}

	fmt.Fprintf(l.w, format+"\n", args...)
}

// Verbosef prints a line if the logger's level is at least Verbose.
func (l *Logger) Verbosef(format string, args ...any) {
	if l.level < Verbose {
		return
	}

	fmt.Fprintf(l.w, format+"\n", args...)
}

// Result summarizes one dump or load operation for the Verbose log line.
type Result struct {
	Algorithm   string
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// LogResult prints a one-line summary of a completed operation at
// Verbose level, including the compression ratio when it's meaningful.
func (l *Logger) LogResult(op string, r Result) {
	if l.level < Verbose {
		return
	}

	ratio := "N/A"

	if op == "dump" && r.InputBytes > 0 {
		ratio = fmt.Sprintf("%.3f", float64(r.OutputBytes)/float64(r.InputBytes))
	}

	fmt.Fprintf(l.w, "%s [%s]: %d -> %d bytes (ratio %s) in %s\n", op, r.Algorithm, r.InputBytes, r.OutputBytes, ratio, r.Elapsed)
}
