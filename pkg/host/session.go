// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host wires declared commands into a line-oriented host
// process: a registry mapping command names to dispatch entry points, a
// session carrying the live I/O context, and a console that reads raw
// lines and routes them.
package host

import (
	"io"

	"github.com/google/uuid"
)

// Session is the live context handed to every dispatch. It satisfies the
// engine's session interface and is passed through to handlers
// unmodified.
type Session struct {
	id  string
	in  io.Reader
	out io.Writer
	ew  io.Writer
}

// NewSession creates a session over the given streams.
func NewSession(in io.Reader, out, errw io.Writer) *Session {
	return &Session{
		id:  uuid.NewString(),
		in:  in,
		out: out,
		ew:  errw,
	}
}

// ID returns the session's unique identifier, used to tag log lines.
func (s *Session) ID() string { return s.id }

// Stdin returns the session's input stream.
func (s *Session) Stdin() io.Reader { return s.in }

// Stdout returns the session's output stream.
func (s *Session) Stdout() io.Writer { return s.out }

// Stderr returns the session's diagnostic stream.
func (s *Session) Stderr() io.Writer { return s.ew }
