// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tetherun/tether/pkg/host"
)

type fixture struct {
	reg  *host.Registry
	s    *host.Session
	out  bytes.Buffer
	errw bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{reg: host.NewRegistry()}
	if err := registerCommands(f.reg); err != nil {
		t.Fatalf("registerCommands failed: %v", err)
	}
	f.s = host.NewSession(strings.NewReader(""), &f.out, &f.errw)
	return f
}

func (f *fixture) dispatch(t *testing.T, name, raw string) error {
	t.Helper()
	entry, ok := f.reg.Lookup(name)
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	return entry(context.Background(), f.s, raw)
}

func TestRegisterCommands(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"bp", "read", "echo", "magic"} {
		if _, ok := f.reg.Lookup(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestBreakpointLifecycle(t *testing.T) {
	f := newFixture(t)

	if err := f.dispatch(t, "bp", `add main.c:12 --condition "x > 0"`); err != nil {
		t.Fatalf("bp add failed: %v", err)
	}
	if !strings.Contains(f.out.String(), "breakpoint 1 set at main.c:12") {
		t.Errorf("stdout = %q, want set confirmation", f.out.String())
	}
	if err := f.dispatch(t, "bp", "add parse_line --disabled"); err != nil {
		t.Fatalf("bp add failed: %v", err)
	}

	f.out.Reset()
	if err := f.dispatch(t, "bp", "list"); err != nil {
		t.Fatalf("bp list failed: %v", err)
	}
	got := f.out.String()
	for _, want := range []string{"main.c:12", "if x > 0", "parse_line", "disabled"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}

	if err := f.dispatch(t, "bp", "enable 2"); err != nil {
		t.Fatalf("bp enable failed: %v", err)
	}
	f.out.Reset()
	if err := f.dispatch(t, "bp", "list"); err != nil {
		t.Fatalf("bp list failed: %v", err)
	}
	if strings.Contains(f.out.String(), "disabled") {
		t.Errorf("list output still shows a disabled breakpoint:\n%s", f.out.String())
	}

	f.out.Reset()
	if err := f.dispatch(t, "bp", "remove 1"); err != nil {
		t.Fatalf("bp remove failed: %v", err)
	}
	if err := f.dispatch(t, "bp", "remove 1"); err == nil {
		t.Error("removing a removed breakpoint succeeded")
	}

	f.out.Reset()
	if err := f.dispatch(t, "bp", "list"); err != nil {
		t.Fatalf("bp list failed: %v", err)
	}
	if strings.Contains(f.out.String(), "main.c:12") {
		t.Errorf("removed breakpoint still listed:\n%s", f.out.String())
	}
}

func TestBreakpointUsageErrors(t *testing.T) {
	f := newFixture(t)

	// Bad sublines are contained: diagnostics on stderr, nil return.
	if err := f.dispatch(t, "bp", ""); err != nil {
		t.Fatalf("bp with no subcommand returned error: %v", err)
	}
	if !strings.Contains(f.errw.String(), "a subcommand is required") {
		t.Errorf("stderr = %q, want subcommand required", f.errw.String())
	}

	f.errw.Reset()
	if err := f.dispatch(t, "bp", "frobnicate"); err != nil {
		t.Fatalf("bp frobnicate returned error: %v", err)
	}
	if !strings.Contains(f.errw.String(), "add, remove, list, enable, disable") {
		t.Errorf("stderr = %q, want choices in declaration order", f.errw.String())
	}

	f.errw.Reset()
	if err := f.dispatch(t, "bp", "remove first"); err != nil {
		t.Fatalf("bp remove first returned error: %v", err)
	}
	if !strings.Contains(f.errw.String(), "expected an integer") {
		t.Errorf("stderr = %q, want type diagnostic", f.errw.String())
	}
}

func TestEcho(t *testing.T) {
	f := newFixture(t)

	if err := f.dispatch(t, "echo", "hello world"); err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if got, want := f.out.String(), "hello world\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	f.out.Reset()
	if err := f.dispatch(t, "echo", "a b c --sep , -n 2"); err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if got, want := f.out.String(), "a,b,c\na,b,c\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRead(t *testing.T) {
	f := newFixture(t)

	if err := f.dispatch(t, "read", "0x10 4"); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got, want := f.out.String(), "0x00000010: 10 11 12 13\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	f.out.Reset()
	if err := f.dispatch(t, "read", "0x10 3 -f dec"); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got, want := f.out.String(), "0x00000010:  16  17  18\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	if err := f.dispatch(t, "read", "nonsense"); err == nil {
		t.Error("bad address accepted")
	}
}

func TestMagic(t *testing.T) {
	f := newFixture(t)

	if err := f.dispatch(t, "magic", "42"); err != nil {
		t.Fatalf("magic failed: %v", err)
	}
	if got, want := f.out.String(), "The answer is 42\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	flags, remaining, err := parseGlobalFlags([]string{"--config", "/tmp/t.toml", "--no-color"})
	if err != nil {
		t.Fatalf("parseGlobalFlags failed: %v", err)
	}
	if flags.Config != "/tmp/t.toml" || !flags.NoColor {
		t.Errorf("flags = %+v", flags)
	}
	if len(remaining) != 0 {
		t.Errorf("remaining = %v, want none", remaining)
	}

	_, remaining, err = parseGlobalFlags([]string{"stray"})
	if err != nil {
		t.Fatalf("parseGlobalFlags failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0] != "stray" {
		t.Errorf("remaining = %v, want [stray]", remaining)
	}
}
