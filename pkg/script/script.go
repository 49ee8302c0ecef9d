// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script formats the textual registration commands accepted by
// scriptable-debugger hosts, with proper shell quoting. Hosts that take
// registration as command lines (rather than an API call) can build the
// lines here and feed them through their own command interpreter.
package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// LineHandler consumes one command line. It is the analog of a
// debugger's HandleCommand hook.
type LineHandler interface {
	HandleCommand(line string) error
}

// Liner is any builder that renders a single command line.
type Liner interface {
	Line() (string, error)
}

// Handle renders b and feeds the line to h.
func Handle(h LineHandler, b Liner) error {
	line, err := b.Line()
	if err != nil {
		return err
	}
	return h.HandleCommand(line)
}

// Synchronicity selects how the host runs a scripted command relative to
// the debugged process.
type Synchronicity string

const (
	Synchronous  Synchronicity = "synchronous"
	Asynchronous Synchronicity = "asynchronous"
	Current      Synchronicity = "current"
)

// CommandScriptAdd builds a `command script add` line registering a
// scripted command under a name.
type CommandScriptAdd struct {
	// Name is the command name users will type.
	Name string
	// Callable is the fully qualified class or function implementing
	// the command on the host side.
	Callable string
	// IsFunction selects --function over --class.
	IsFunction bool

	Help          string
	Synchronicity Synchronicity
}

func (c CommandScriptAdd) Line() (string, error) {
	if c.Name == "" {
		return "", fmt.Errorf("command script add: empty command name")
	}
	if c.Callable == "" {
		return "", fmt.Errorf("command script add: empty callable for %q", c.Name)
	}
	parts := []string{"command script add"}
	if c.IsFunction {
		parts = append(parts, "--function", c.Callable)
	} else {
		parts = append(parts, "--class", c.Callable)
	}
	if c.Help != "" {
		parts = append(parts, "--help", shellquote.Join(c.Help))
	}
	if c.Synchronicity != "" {
		parts = append(parts, "--synchronicity", string(c.Synchronicity))
	}
	parts = append(parts, c.Name)
	return strings.Join(parts, " "), nil
}

// TypeSummaryAdd builds a `type summary add` line.
type TypeSummaryAdd struct {
	// TypeNames are the types the summary applies to; at least one is
	// required.
	TypeNames []string

	InlineChildren bool
	OmitNames      bool
	Expand         bool
	HideEmpty      bool
	SkipPointers   bool
	SkipReferences bool
	NoValue        bool
	Regex          bool

	SummaryString  string
	Cascade        *bool
	PythonFunction string
	PythonScript   string
	Category       string
	Name           string
}

func (t TypeSummaryAdd) Line() (string, error) {
	if len(t.TypeNames) == 0 {
		return "", fmt.Errorf("type summary add: no type names")
	}
	parts := []string{"type summary add"}
	if t.InlineChildren {
		parts = append(parts, "--inline-children")
	}
	if t.OmitNames {
		parts = append(parts, "--omit-names")
	}
	if t.Expand {
		parts = append(parts, "--expand")
	}
	if t.HideEmpty {
		parts = append(parts, "--hide-empty")
	}
	if t.SkipPointers {
		parts = append(parts, "--skip-pointers")
	}
	if t.SkipReferences {
		parts = append(parts, "--skip-references")
	}
	if t.NoValue {
		parts = append(parts, "--no-value")
	}
	if t.Regex {
		parts = append(parts, "--regex")
	}
	if t.SummaryString != "" {
		parts = append(parts, "--summary-string", shellquote.Join(t.SummaryString))
	}
	if t.Cascade != nil {
		parts = append(parts, "--cascade", strconv.FormatBool(*t.Cascade))
	}
	if t.PythonFunction != "" {
		parts = append(parts, "--python-function", t.PythonFunction)
	}
	if t.PythonScript != "" {
		parts = append(parts, "--python-script", shellquote.Join(t.PythonScript))
	}
	if t.Category != "" {
		parts = append(parts, "--category", shellquote.Join(t.Category))
	}
	if t.Name != "" {
		parts = append(parts, "--name", shellquote.Join(t.Name))
	}
	for _, tn := range t.TypeNames {
		parts = append(parts, shellquote.Join(tn))
	}
	return strings.Join(parts, " "), nil
}

// TypeSyntheticAdd builds a `type synthetic add` line.
type TypeSyntheticAdd struct {
	// TypeNames are the types the synthetic provider applies to; at
	// least one is required.
	TypeNames []string

	SkipPointers   bool
	SkipReferences bool
	Regex          bool

	Cascade     *bool
	Category    string
	PythonClass string
}

func (t TypeSyntheticAdd) Line() (string, error) {
	if len(t.TypeNames) == 0 {
		return "", fmt.Errorf("type synthetic add: no type names")
	}
	parts := []string{"type synthetic add"}
	if t.SkipPointers {
		parts = append(parts, "--skip-pointers")
	}
	if t.SkipReferences {
		parts = append(parts, "--skip-references")
	}
	if t.Regex {
		parts = append(parts, "--regex")
	}
	if t.Cascade != nil {
		parts = append(parts, "--cascade", strconv.FormatBool(*t.Cascade))
	}
	if t.Category != "" {
		parts = append(parts, "--category", shellquote.Join(t.Category))
	}
	if t.PythonClass != "" {
		parts = append(parts, "--python-class", t.PythonClass)
	}
	for _, tn := range t.TypeNames {
		parts = append(parts, shellquote.Join(tn))
	}
	return strings.Join(parts, " "), nil
}
