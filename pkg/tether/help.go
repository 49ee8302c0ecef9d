// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tether

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// usageLine renders the one-line usage summary for a node.
func usageLine(n *Node) string {
	var b strings.Builder
	b.WriteString(n.path)
	if !n.Leaf() {
		b.WriteString(" <subcommand> ...")
		return b.String()
	}
	for _, spec := range n.positionals() {
		switch {
		case spec.Variadic:
			fmt.Fprintf(&b, " [<%s> ...]", spec.Name)
		case spec.required():
			fmt.Fprintf(&b, " <%s>", spec.Name)
		default:
			fmt.Fprintf(&b, " [<%s>]", spec.Name)
		}
	}
	if len(n.flags()) > 0 {
		b.WriteString(" [flags]")
	}
	return b.String()
}

// renderHelp produces the full help text for a node: a usage summary, the
// one-line purpose, the positional and flag tables for a leaf, or the
// subcommand table for an interior node. The host displays this text
// verbatim.
func renderHelp(n *Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s\n", usageLine(n))
	if n.help != "" {
		fmt.Fprintf(&b, "\n%s\n", n.help)
	}

	if !n.Leaf() {
		fmt.Fprintf(&b, "\nSubcommands:\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, c := range n.children {
			fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.help)
		}
		tw.Flush()
		fmt.Fprintf(&b, "\nFor help on a subcommand, type '%s <subcommand> --help'.\n", n.path)
		return b.String()
	}

	if pos := n.positionals(); len(pos) > 0 {
		fmt.Fprintf(&b, "\nPositional arguments:\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, spec := range pos {
			name := spec.Name
			if !spec.required() {
				name = "[" + name + "]"
			}
			fmt.Fprintf(tw, "  %s\t%s%s\n", name, spec.Help, defaultSuffix(spec))
		}
		tw.Flush()
	}
	if flags := n.flags(); len(flags) > 0 {
		fmt.Fprintf(&b, "\nFlags:\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, spec := range flags {
			name := "--" + spec.Name
			if spec.Short != "" {
				name = "-" + spec.Short + ", " + name
			}
			fmt.Fprintf(tw, "  %s\t%s%s\n", name, spec.Help, defaultSuffix(spec))
		}
		fmt.Fprintf(tw, "  -h, --help\tShow this help message.\n")
		tw.Flush()
	} else {
		fmt.Fprintf(&b, "\nFlags:\n  -h, --help  Show this help message.\n")
	}
	return b.String()
}

func defaultSuffix(spec ArgSpec) string {
	if spec.Default == "" {
		return ""
	}
	return fmt.Sprintf(" (default %s)", spec.Default)
}

// Help returns the rendered help text for the tree rooted at n, exactly
// as a '--help' request would print it.
func Help(n *Node) string {
	return renderHelp(n)
}
