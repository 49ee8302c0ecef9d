// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tether

import (
	"strings"
	"testing"
)

func TestUsageLine(t *testing.T) {
	tests := []struct {
		name string
		decl Declaration
		want string
	}{
		{
			name: "interior",
			decl: Declaration{
				Name: "bp",
				Subcommands: []Declaration{
					{Name: "add", Handler: nopHandler},
				},
			},
			want: "bp <subcommand> ...",
		},
		{
			name: "required positional",
			decl: Declaration{
				Name:    "magic",
				Args:    []ArgSpec{{Name: "magic_number", Type: IntType}},
				Handler: nopHandler,
			},
			want: "magic <magic_number>",
		},
		{
			name: "optional and variadic",
			decl: Declaration{
				Name: "echo",
				Args: []ArgSpec{
					{Name: "count", Type: IntType, Default: "1"},
					{Name: "words", Type: StringsType, Variadic: true},
					{Name: "sep", Type: StringType, Flag: true},
				},
				Handler: nopHandler,
			},
			want: "echo [<count>] [<words> ...] [flags]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Build(tt.decl)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if got := usageLine(node); got != tt.want {
				t.Errorf("usageLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHelpInterior(t *testing.T) {
	node, err := Build(Declaration{
		Name: "bp",
		Help: "Manage breakpoints.",
		Subcommands: []Declaration{
			{Name: "add", Help: "Install a breakpoint.", Handler: nopHandler},
			{Name: "remove", Help: "Remove a breakpoint.", Handler: nopHandler},
		},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := Help(node)
	for _, want := range []string{
		"Usage: bp <subcommand> ...",
		"Manage breakpoints.",
		"Subcommands:",
		"add",
		"Install a breakpoint.",
		"remove",
		"For help on a subcommand, type 'bp <subcommand> --help'.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("help missing %q:\n%s", want, got)
		}
	}
}

func TestHelpLeaf(t *testing.T) {
	node, err := Build(Declaration{
		Name: "read",
		Help: "Read memory.",
		Args: []ArgSpec{
			{Name: "addr", Type: StringType, Help: "Address to read."},
			{Name: "count", Type: IntType, Default: "64", Help: "Byte count."},
			{Name: "format", Type: StringType, Flag: true, Short: "f", Default: "hex", Help: "Output format."},
		},
		Handler: nopHandler,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := Help(node)
	for _, want := range []string{
		"Usage: read <addr> [<count>] [flags]",
		"Read memory.",
		"Positional arguments:",
		"addr",
		"Address to read.",
		"[count]",
		"Byte count. (default 64)",
		"Flags:",
		"-f, --format",
		"Output format. (default hex)",
		"-h, --help",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("help missing %q:\n%s", want, got)
		}
	}
}

func TestHelpLeafNoFlags(t *testing.T) {
	node, err := Build(Declaration{
		Name:    "magic",
		Help:    "Print the answer.",
		Args:    []ArgSpec{{Name: "magic_number", Type: IntType, Help: "The number."}},
		Handler: nopHandler,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := Help(node)
	if !strings.Contains(got, "-h, --help") {
		t.Errorf("help missing built-in help flag:\n%s", got)
	}
	if strings.Contains(got, "[flags]") {
		t.Errorf("usage advertises flags with none declared:\n%s", got)
	}
}
