// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tether

import "strings"

// Node is the runtime form of a Declaration: one parser per command or
// subcommand level. Nodes are built eagerly at registration time and are
// immutable afterwards, so one tree can serve repeated and concurrent
// dispatches.
type Node struct {
	name string
	help string
	path string // full command path, e.g. "bp add"

	specs    []ArgSpec
	defaults Values // precomputed from spec defaults
	handler  Handler

	children []*Node
	byName   map[string]*Node
}

// Name returns the token that selects this node.
func (n *Node) Name() string { return n.name }

// Help returns the node's one-line summary.
func (n *Node) Help() string { return n.help }

// Leaf reports whether the node owns a handler rather than children.
func (n *Node) Leaf() bool { return len(n.children) == 0 }

// Build compiles a declaration into its parser tree. All structural
// problems — a node that mixes arguments and subcommands, duplicate
// sibling names, a leaf without a handler — are reported here as
// *DeclarationError, so a dispatch never observes a half-built tree.
func Build(decl Declaration) (*Node, error) {
	return build(decl, "")
}

func build(decl Declaration, prefix string) (*Node, error) {
	name := strings.TrimSpace(decl.Name)
	if name == "" {
		return nil, declErrf(prefix, "empty command name")
	}
	if strings.ContainsAny(name, " \t") {
		return nil, declErrf(name, "command name must not contain whitespace")
	}
	path := name
	if prefix != "" {
		path = prefix + " " + name
	}

	n := &Node{name: name, help: decl.Help, path: path}

	if len(decl.Subcommands) > 0 {
		if len(decl.Args) > 0 {
			return nil, declErrf(path, "declares both arguments and subcommands")
		}
		if decl.Handler != nil {
			return nil, declErrf(path, "declares both a handler and subcommands")
		}
		n.byName = make(map[string]*Node, len(decl.Subcommands))
		for _, sub := range decl.Subcommands {
			child, err := build(sub, path)
			if err != nil {
				return nil, err
			}
			if _, dup := n.byName[child.name]; dup {
				return nil, declErrf(path, "duplicate subcommand %q", child.name)
			}
			n.children = append(n.children, child)
			n.byName[child.name] = child
		}
		return n, nil
	}

	if decl.Handler == nil {
		return nil, declErrf(path, "has neither a handler nor subcommands")
	}
	n.handler = decl.Handler

	sawOptionalPositional := false
	positionalNames := make(map[string]bool)
	flagNames := make(map[string]bool)
	n.defaults = make(Values)
	for i, spec := range decl.Args {
		if err := spec.validate(); err != nil {
			return nil, declErrf(path, "%v", err)
		}
		if spec.Flag {
			if spec.Name == "help" || spec.Short == "h" {
				return nil, declErrf(path, "flag %q collides with the built-in help flag", spec.Name)
			}
			if flagNames[spec.Name] {
				return nil, declErrf(path, "duplicate flag %q", spec.Name)
			}
			flagNames[spec.Name] = true
		} else {
			if positionalNames[spec.Name] {
				return nil, declErrf(path, "duplicate positional %q", spec.Name)
			}
			positionalNames[spec.Name] = true
			if spec.Variadic && i != len(decl.Args)-1 {
				// A later flag spec is fine; a later positional is not.
				for _, rest := range decl.Args[i+1:] {
					if !rest.Flag {
						return nil, declErrf(path, "variadic positional %q must come last", spec.Name)
					}
				}
			}
			if spec.required() && sawOptionalPositional {
				return nil, declErrf(path, "required positional %q follows an optional one", spec.Name)
			}
			if !spec.required() && !spec.Variadic {
				sawOptionalPositional = true
			}
		}
		if spec.Default != "" {
			v, err := convertValue(spec.Type, spec.Default)
			if err != nil {
				return nil, declErrf(path, "argument %q: bad default: %v", spec.Name, err)
			}
			n.defaults[spec.Name] = v
		}
	}
	n.specs = decl.Args
	return n, nil
}

func (n *Node) positionals() []ArgSpec {
	out := make([]ArgSpec, 0, len(n.specs))
	for _, s := range n.specs {
		if !s.Flag {
			out = append(out, s)
		}
	}
	return out
}

func (n *Node) flags() []ArgSpec {
	out := make([]ArgSpec, 0, len(n.specs))
	for _, s := range n.specs {
		if s.Flag {
			out = append(out, s)
		}
	}
	return out
}

func (n *Node) child(name string) (*Node, bool) {
	c, ok := n.byName[name]
	return c, ok
}

func (n *Node) childNames() []string {
	names := make([]string, len(n.children))
	for i, c := range n.children {
		names[i] = c.name
	}
	return names
}
