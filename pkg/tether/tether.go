// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tether turns declarative command descriptions into parser trees
// and dispatches raw command lines against them.
//
// A host process that only hands over unparsed text (a debugger console, a
// remote shell bridge) registers one entry point per top-level command. At
// registration time a Declaration is compiled into an immutable Node tree;
// at invocation time Dispatch tokenizes the line, walks the subcommand
// tokens, parses the leaf's arguments and calls its handler. Parse
// failures and help requests never escape Dispatch: they are printed on
// the session and the call returns normally. Only handler errors
// propagate.
package tether

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Session is the live host context a dispatch borrows for one call. The
// concrete type is owned by the host and passed through to handlers
// unmodified.
type Session interface {
	Stdout() io.Writer
	Stderr() io.Writer
}

// Invocation carries everything a handler receives for one dispatched
// line. It is built fresh per call and discarded afterwards.
type Invocation struct {
	// Session is the host context the dispatch was invoked with.
	Session Session
	// Raw is the unparsed argument text the host handed over.
	Raw string
	// Args holds the parsed argument values for the resolved leaf.
	Args Values
}

// Handler runs a resolved leaf command.
type Handler func(ctx context.Context, inv *Invocation) error

// Values maps argument names to parsed values. Handlers read the names
// they know and ignore the rest; a lookup for an argument that was neither
// supplied nor defaulted returns the zero value.
type Values map[string]any

// Has reports whether name was supplied on the command line or carries a
// declared default.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the string value of name, or "".
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the int value of name, or 0.
func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

// Bool returns the bool value of name, or false.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Float returns the float64 value of name, or 0.
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Duration returns the time.Duration value of name, or 0.
func (v Values) Duration(name string) time.Duration {
	d, _ := v[name].(time.Duration)
	return d
}

// Strings returns the string-slice value of name, or nil.
func (v Values) Strings(name string) []string {
	ss, _ := v[name].([]string)
	return ss
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// WriterSession adapts a pair of writers into a Session. Useful for tests
// and for hosts that have no richer context to offer.
type WriterSession struct {
	Out io.Writer
	Err io.Writer
}

func (s WriterSession) Stdout() io.Writer { return s.Out }
func (s WriterSession) Stderr() io.Writer { return s.Err }

// Must panics if err is non-nil. It is intended for registration-time
// declaration errors, which indicate a bug in the caller and should fail
// loudly during development.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("tether: %v", err))
	}
	return v
}
