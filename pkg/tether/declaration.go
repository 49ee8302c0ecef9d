// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tether

import "fmt"

// DeclarationError reports a structurally invalid command declaration. It
// surfaces at build/registration time, never at dispatch time, and is a
// programmer error: callers should treat it as fatal.
type DeclarationError struct {
	Command string
	Reason  string
}

func (e *DeclarationError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("invalid command declaration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid declaration of command %q: %s", e.Command, e.Reason)
}

func declErrf(command, format string, args ...any) *DeclarationError {
	return &DeclarationError{Command: command, Reason: fmt.Sprintf(format, args...)}
}

// Declaration is the plain data a command author writes. A declaration is
// either a leaf (Args and a Handler) or an interior node (Subcommands); it
// must never be both, and a leaf must have a handler by build time.
type Declaration struct {
	// Name is the token users type to select this command. For a
	// top-level declaration it is the name registered with the host.
	Name string
	// Help is the one-line summary shown in listings and help text.
	Help string

	// Args are the leaf's argument specs, in declaration order.
	Args []ArgSpec
	// Handler runs the leaf.
	Handler Handler

	// Subcommands makes this an interior node. Order is preserved in
	// help output and "subcommand required" diagnostics.
	Subcommands []Declaration
}

// NewDeclaration starts an empty declaration for incremental assembly via
// AddArgument, AddSubcommands and SetHandler.
func NewDeclaration(name, help string) *Declaration {
	return &Declaration{Name: name, Help: help}
}

// AddArgument appends spec to the declaration's ordered argument list. It
// fails if the declaration already has subcommands: a command owns either
// arguments or children, never both.
func (d *Declaration) AddArgument(spec ArgSpec) error {
	if len(d.Subcommands) > 0 {
		return declErrf(d.Name, "cannot add argument %q after subcommands", spec.Name)
	}
	if err := spec.validate(); err != nil {
		return declErrf(d.Name, "%v", err)
	}
	d.Args = append(d.Args, spec)
	return nil
}

// AddSubcommands installs children on the declaration. It fails if the
// declaration already has argument specs or a handler, or if two supplied
// declarations share a name.
func (d *Declaration) AddSubcommands(subs ...Declaration) error {
	if len(d.Args) > 0 {
		return declErrf(d.Name, "cannot add subcommands to a command with arguments")
	}
	if d.Handler != nil {
		return declErrf(d.Name, "cannot add subcommands to a command with a handler")
	}
	seen := make(map[string]bool, len(d.Subcommands)+len(subs))
	for _, s := range d.Subcommands {
		seen[s.Name] = true
	}
	for _, s := range subs {
		if seen[s.Name] {
			return declErrf(d.Name, "duplicate subcommand %q", s.Name)
		}
		seen[s.Name] = true
	}
	d.Subcommands = append(d.Subcommands, subs...)
	return nil
}

// SetHandler binds the leaf handler. It fails if the declaration has
// subcommands, or if a handler is already bound.
func (d *Declaration) SetHandler(fn Handler) error {
	if len(d.Subcommands) > 0 {
		return declErrf(d.Name, "cannot set a handler on a command with subcommands")
	}
	if d.Handler != nil {
		return declErrf(d.Name, "handler already set")
	}
	d.Handler = fn
	return nil
}
