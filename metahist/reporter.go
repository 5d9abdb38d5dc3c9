// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/crypto/ssh/terminal"
)

// A Reporter writes output interleaved with a status line.
type Reporter interface {
	io.Writer
	Status(format string, a ...interface{})
	// Close finishes the status line.
	Close()
}

// NewStdoutReporter returns a Reporter that keeps the status on the
// last line of stdout if stdout is a capable terminal, and otherwise
// prints each status as its own line.
func NewStdoutReporter() Reporter {
	if os.Getenv("TERM") == "" || os.Getenv("TERM") == "dumb" || !terminal.IsTerminal(int(os.Stdout.Fd())) {
		return &ReporterDumb{w: os.Stdout}
	}
	return &ReporterVT100{w: os.Stdout}
}

type ReporterDumb struct {
	w io.Writer
}

func (r *ReporterDumb) Close() {}
func (r *ReporterDumb) Status(format string, a ...interface{}) {
	fmt.Fprintf(r.w, format, a...)
	r.w.Write([]byte{'\n'})
}
func (r *ReporterDumb) Write(data []byte) (int, error) {
	return r.w.Write(data)
}

type ReporterVT100 struct {
	w      io.Writer
	mu     sync.Mutex
	status string
}

// VT100 control sequences
const (
	resetLine = "\r\x1b[2K"
	wrapOff   = "\x1b[?7l"
	wrapOn    = "\x1b[?7h"
)

func (r *ReporterVT100) Status(format string, a ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = fmt.Sprintf(format, a...)
	r.draw()
}

// draw replaces the current line with the status line. r.mu must be
// held.
func (r *ReporterVT100) draw() {
	fmt.Fprintf(r.w, "%s%s%s%s", resetLine, wrapOff, r.status, wrapOn)
}

func (r *ReporterVT100) Write(data []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Clear the status line, write, and put it back below.
	io.WriteString(r.w, resetLine)
	n, err := r.w.Write(data)
	if err == nil && r.status != "" {
		r.draw()
	}
	return n, err
}

func (r *ReporterVT100) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Keep the last status line.
	if r.status != "" {
		io.WriteString(r.w, "\n")
	}
}
