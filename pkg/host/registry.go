// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/tetherun/tether/pkg/tether"
)

// Entry is a dispatch entry point. The host calls it with the live
// session and the raw remainder of the line after the command name; the
// entry never sees the name token itself.
type Entry func(ctx context.Context, s *Session, raw string) error

// Registrar is the host's command-registration surface. Register is
// called once per top-level command during an explicit initialization
// phase.
type Registrar interface {
	Register(name, short string, entry Entry) error
}

// Listing describes one registered command for the host's own help
// facility.
type Listing struct {
	Name  string
	Short string
}

type registered struct {
	short string
	entry Entry
}

// Registry is an in-process Registrar with ordered listings and duplicate
// rejection.
type Registry struct {
	names  []string
	byName map[string]registered
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]registered)}
}

// Register installs entry under name. Names must be non-empty, free of
// whitespace and unique.
func (r *Registry) Register(name, short string, entry Entry) error {
	if name == "" {
		return fmt.Errorf("register: empty command name")
	}
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("register: command name %q contains whitespace", name)
	}
	if entry == nil {
		return fmt.Errorf("register: nil entry for command %q", name)
	}
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("register: command %q already registered", name)
	}
	r.names = append(r.names, name)
	r.byName[name] = registered{short: short, entry: entry}
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	reg, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return reg.entry, true
}

// Commands lists registered commands in registration order.
func (r *Registry) Commands() []Listing {
	out := make([]Listing, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, Listing{Name: name, Short: r.byName[name].short})
	}
	return out
}

// Attach builds decl's parser tree and registers its dispatch entry point
// with reg. Building is eager: a structurally invalid declaration fails
// here, at registration time, and nothing is registered.
func Attach(reg Registrar, decl tether.Declaration) error {
	return AttachWith(reg, decl, nil)
}

// AttachWith is Attach with explicit dispatch options (for hosts that
// substitute their own tokenizer).
func AttachWith(reg Registrar, decl tether.Declaration, opts *tether.Options) error {
	node, err := tether.Build(decl)
	if err != nil {
		return err
	}
	return reg.Register(decl.Name, decl.Help, func(ctx context.Context, s *Session, raw string) error {
		return tether.DispatchWith(ctx, node, s, raw, opts)
	})
}

// AttachAll attaches each declaration in order, stopping at the first
// failure.
func AttachAll(reg Registrar, decls ...tether.Declaration) error {
	for _, decl := range decls {
		if err := Attach(reg, decl); err != nil {
			return err
		}
	}
	return nil
}
