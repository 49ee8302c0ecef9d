// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"fmt"
	"testing"
)

type lineCollector struct {
	lines []string
	err   error
}

func (c *lineCollector) HandleCommand(line string) error {
	if c.err != nil {
		return c.err
	}
	c.lines = append(c.lines, line)
	return nil
}

func TestCommandScriptAddLine(t *testing.T) {
	tests := []struct {
		name string
		in   CommandScriptAdd
		want string
	}{
		{
			name: "class",
			in:   CommandScriptAdd{Name: "magic", Callable: "commands.Magic"},
			want: "command script add --class commands.Magic magic",
		},
		{
			name: "function",
			in:   CommandScriptAdd{Name: "magic", Callable: "commands.magic", IsFunction: true},
			want: "command script add --function commands.magic magic",
		},
		{
			name: "help quoted",
			in:   CommandScriptAdd{Name: "magic", Callable: "commands.Magic", Help: "Print the answer."},
			want: "command script add --class commands.Magic --help 'Print the answer.' magic",
		},
		{
			name: "synchronicity",
			in:   CommandScriptAdd{Name: "magic", Callable: "commands.Magic", Synchronicity: Synchronous},
			want: "command script add --class commands.Magic --synchronicity synchronous magic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Line()
			if err != nil {
				t.Fatalf("Line failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandScriptAddErrors(t *testing.T) {
	if _, err := (CommandScriptAdd{Callable: "c.C"}).Line(); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := (CommandScriptAdd{Name: "x"}).Line(); err == nil {
		t.Error("empty callable accepted")
	}
}

func TestTypeSummaryAddLine(t *testing.T) {
	cascade := false
	tests := []struct {
		name string
		in   TypeSummaryAdd
		want string
	}{
		{
			name: "summary string",
			in: TypeSummaryAdd{
				TypeNames:     []string{"Point"},
				SummaryString: "(${var.x}, ${var.y})",
			},
			want: `type summary add --summary-string '(${var.x}, ${var.y})' Point`,
		},
		{
			name: "flags and cascade",
			in: TypeSummaryAdd{
				TypeNames:      []string{"Rect"},
				InlineChildren: true,
				OmitNames:      true,
				Cascade:        &cascade,
			},
			want: "type summary add --inline-children --omit-names --cascade false Rect",
		},
		{
			name: "python function with category",
			in: TypeSummaryAdd{
				TypeNames:      []string{"std::vector<int>"},
				Regex:          true,
				PythonFunction: "formatters.vector_summary",
				Category:       "stl",
			},
			want: "type summary add --regex --python-function formatters.vector_summary --category stl 'std::vector<int>'",
		},
		{
			name: "multiple type names",
			in: TypeSummaryAdd{
				TypeNames: []string{"Foo", "Bar Baz"},
				NoValue:   true,
			},
			want: "type summary add --no-value Foo 'Bar Baz'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Line()
			if err != nil {
				t.Fatalf("Line failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := (TypeSummaryAdd{}).Line(); err == nil {
		t.Error("empty type names accepted")
	}
}

func TestTypeSyntheticAddLine(t *testing.T) {
	cascade := true
	in := TypeSyntheticAdd{
		TypeNames:    []string{"std::map<K, V>"},
		Regex:        true,
		Cascade:      &cascade,
		PythonClass:  "providers.MapChildren",
		SkipPointers: true,
	}
	got, err := in.Line()
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	want := "type synthetic add --skip-pointers --regex --cascade true --python-class providers.MapChildren 'std::map<K, V>'"
	if got != want {
		t.Errorf("line = %q, want %q", got, want)
	}

	if _, err := (TypeSyntheticAdd{}).Line(); err == nil {
		t.Error("empty type names accepted")
	}
}

func TestHandle(t *testing.T) {
	var c lineCollector
	err := Handle(&c, CommandScriptAdd{Name: "magic", Callable: "commands.Magic"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if len(c.lines) != 1 || c.lines[0] != "command script add --class commands.Magic magic" {
		t.Errorf("handled lines = %v", c.lines)
	}

	// A builder error never reaches the handler.
	c = lineCollector{}
	if err := Handle(&c, CommandScriptAdd{}); err == nil {
		t.Error("Handle passed through a builder error")
	}
	if len(c.lines) != 0 {
		t.Errorf("handler saw %v for an invalid builder", c.lines)
	}

	c = lineCollector{err: fmt.Errorf("host rejected")}
	if err := Handle(&c, CommandScriptAdd{Name: "x", Callable: "c.C"}); err == nil {
		t.Error("handler error not propagated")
	}
}
