// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// Console is a minimal line-oriented host process: it reads raw lines
// from the session, splits off the leading command name and hands the
// unparsed tail to the registered entry point. Nothing a command does to
// a line can take the console down; entry errors are reported and the
// loop continues.
type Console struct {
	Registry *Registry
	Session  *Session

	// Prompt is printed before each read when Interactive is set.
	Prompt string
	// Interactive enables the prompt and greeting.
	Interactive bool
	// Color enables colored error diagnostics.
	Color bool
	// Greeting is printed once at startup when Interactive is set.
	Greeting string
}

// Run reads and dispatches lines until EOF, ctx cancellation, or an
// exit command.
func (c *Console) Run(ctx context.Context) error {
	if c.Interactive && c.Greeting != "" {
		fmt.Fprintln(c.Session.Stdout(), c.Greeting)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(c.Session.Stdin())
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
		close(lines)
	}()

	for {
		c.prompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if quit := c.handleLine(ctx, line); quit {
				return nil
			}
		}
	}
}

func (c *Console) prompt() {
	if c.Interactive && c.Prompt != "" {
		fmt.Fprint(c.Session.Stdout(), c.Prompt)
	}
}

// handleLine routes one raw line. It reports true when the user asked to
// leave the console.
func (c *Console) handleLine(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	name, raw := cutCommand(line)
	switch name {
	case "exit", "quit":
		return true
	case "help":
		c.help(ctx, raw)
		return false
	}
	entry, ok := c.Registry.Lookup(name)
	if !ok {
		c.errorf("unknown command %q; type 'help' for the list of commands", name)
		return false
	}
	if err := entry(ctx, c.Session, raw); err != nil {
		log.Printf("session %s: command %q failed: %v", c.Session.ID(), name, err)
		c.errorf("%v", err)
	}
	return false
}

// help with no argument lists registered commands; with a command name it
// delegates to that command's own help by dispatching '--help'.
func (c *Console) help(ctx context.Context, raw string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		tw := tabwriter.NewWriter(c.Session.Stdout(), 0, 0, 2, ' ', 0)
		for _, l := range c.Registry.Commands() {
			fmt.Fprintf(tw, "  %s\t%s\n", l.Name, l.Short)
		}
		tw.Flush()
		fmt.Fprintln(c.Session.Stdout(), "\nType 'help <command>' for details, 'exit' to leave.")
		return
	}
	entry, ok := c.Registry.Lookup(fields[0])
	if !ok {
		c.errorf("unknown command %q", fields[0])
		return
	}
	tail := strings.Join(append(fields[1:], "--help"), " ")
	if err := entry(ctx, c.Session, tail); err != nil {
		c.errorf("%v", err)
	}
}

func (c *Console) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.Color {
		msg = color.RedString("Error: ") + msg
	} else {
		msg = "Error: " + msg
	}
	fmt.Fprintln(c.Session.Stderr(), msg)
}

// cutCommand splits the leading command name off a line. Only the first
// whitespace-delimited token is consumed; the tail stays raw for the
// command's own tokenizer.
func cutCommand(line string) (name, raw string) {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}
