// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tetherun/tether/pkg/host"
	"github.com/tetherun/tether/pkg/tether"
)

func registerCommands(reg host.Registrar) error {
	bps := &breakpointTable{byID: make(map[int]*breakpoint)}
	return host.AttachAll(reg,
		breakpointDecl(bps),
		readDecl(),
		echoDecl(),
		magicDecl(),
	)
}

// breakpointTable is the console's in-memory stand-in for a debugger's
// breakpoint list. The console dispatches one line at a time, so no
// locking is needed.
type breakpointTable struct {
	seq  int
	ids  []int
	byID map[int]*breakpoint
}

type breakpoint struct {
	id        int
	location  string
	condition string
	enabled   bool
}

func (t *breakpointTable) add(location, condition string, enabled bool) *breakpoint {
	t.seq++
	bp := &breakpoint{id: t.seq, location: location, condition: condition, enabled: enabled}
	t.ids = append(t.ids, bp.id)
	t.byID[bp.id] = bp
	return bp
}

func (t *breakpointTable) remove(id int) bool {
	if _, ok := t.byID[id]; !ok {
		return false
	}
	delete(t.byID, id)
	for i, v := range t.ids {
		if v == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return true
}

type bpAddArgs struct {
	Location  string `pos:"0" help:"Address or symbol to break on."`
	Condition string `flag:"condition" short:"c" help:"Only stop when this expression is true."`
	Disabled  bool   `flag:"disabled" help:"Install the breakpoint disabled."`
}

type bpIDArgs struct {
	ID int `pos:"0" help:"Breakpoint id."`
}

func breakpointDecl(t *breakpointTable) tether.Declaration {
	return tether.Declaration{
		Name: "bp",
		Help: "Manage breakpoints.",
		Subcommands: []tether.Declaration{
			{
				Name:    "add",
				Help:    "Install a breakpoint at an address or symbol.",
				Args:    tether.Must(tether.Specs(bpAddArgs{})),
				Handler: t.handleAdd,
			},
			{
				Name:    "remove",
				Help:    "Remove a breakpoint by id.",
				Args:    tether.Must(tether.Specs(bpIDArgs{})),
				Handler: t.handleRemove,
			},
			{
				Name:    "list",
				Help:    "List installed breakpoints.",
				Handler: t.handleList,
			},
			{
				Name:    "enable",
				Help:    "Enable a breakpoint by id.",
				Args:    tether.Must(tether.Specs(bpIDArgs{})),
				Handler: t.setEnabled(true),
			},
			{
				Name:    "disable",
				Help:    "Disable a breakpoint by id.",
				Args:    tether.Must(tether.Specs(bpIDArgs{})),
				Handler: t.setEnabled(false),
			},
		},
	}
}

func (t *breakpointTable) handleAdd(ctx context.Context, inv *tether.Invocation) error {
	var args bpAddArgs
	if err := inv.Args.Decode(&args); err != nil {
		return err
	}
	bp := t.add(args.Location, args.Condition, !args.Disabled)
	fmt.Fprintf(inv.Session.Stdout(), "breakpoint %d set at %s\n", bp.id, bp.location)
	return nil
}

func (t *breakpointTable) handleRemove(ctx context.Context, inv *tether.Invocation) error {
	id := inv.Args.Int("id")
	if !t.remove(id) {
		return fmt.Errorf("no breakpoint with id %d", id)
	}
	fmt.Fprintf(inv.Session.Stdout(), "breakpoint %d removed\n", id)
	return nil
}

func (t *breakpointTable) handleList(ctx context.Context, inv *tether.Invocation) error {
	if len(t.ids) == 0 {
		fmt.Fprintln(inv.Session.Stdout(), "no breakpoints set")
		return nil
	}
	tw := tabwriter.NewWriter(inv.Session.Stdout(), 0, 0, 2, ' ', 0)
	for _, id := range t.ids {
		bp := t.byID[id]
		state := "enabled"
		if !bp.enabled {
			state = "disabled"
		}
		cond := ""
		if bp.condition != "" {
			cond = "if " + bp.condition
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", bp.id, bp.location, state, cond)
	}
	return tw.Flush()
}

func (t *breakpointTable) setEnabled(enabled bool) tether.Handler {
	return func(ctx context.Context, inv *tether.Invocation) error {
		id := inv.Args.Int("id")
		bp, ok := t.byID[id]
		if !ok {
			return fmt.Errorf("no breakpoint with id %d", id)
		}
		bp.enabled = enabled
		return nil
	}
}

type readArgs struct {
	Addr   string `pos:"0" help:"Hex address to read from."`
	Count  int    `pos:"1" help:"Number of bytes." default:"16"`
	Format string `flag:"format" short:"f" help:"Output base: hex or dec." default:"hex"`
}

func readDecl() tether.Declaration {
	return tether.Declaration{
		Name:    "read",
		Help:    "Read simulated memory.",
		Args:    tether.Must(tether.Specs(readArgs{})),
		Handler: handleRead,
	}
}

func handleRead(ctx context.Context, inv *tether.Invocation) error {
	var args readArgs
	if err := inv.Args.Decode(&args); err != nil {
		return err
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args.Addr, "0x"), 16, 64)
	if err != nil {
		return fmt.Errorf("bad address %q", args.Addr)
	}
	if args.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", args.Count)
	}
	w := inv.Session.Stdout()
	for i := 0; i < args.Count; i++ {
		if i%8 == 0 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "0x%08x:", addr+uint64(i))
		}
		// Simulated contents: each cell holds the low byte of its address.
		b := byte(addr + uint64(i))
		switch args.Format {
		case "hex":
			fmt.Fprintf(w, " %02x", b)
		case "dec":
			fmt.Fprintf(w, " %3d", b)
		default:
			return fmt.Errorf("unknown format %q, want hex or dec", args.Format)
		}
	}
	fmt.Fprintln(w)
	return nil
}

type echoArgs struct {
	Words []string `pos:"0" variadic:"true" help:"Words to print."`
	Sep   string   `flag:"sep" help:"Separator between words." default:" "`
	Times int      `flag:"times" short:"n" help:"Repeat the line." default:"1"`
}

func echoDecl() tether.Declaration {
	return tether.Declaration{
		Name:    "echo",
		Help:    "Print the arguments back.",
		Args:    tether.Must(tether.Specs(echoArgs{})),
		Handler: handleEcho,
	}
}

func handleEcho(ctx context.Context, inv *tether.Invocation) error {
	var args echoArgs
	if err := inv.Args.Decode(&args); err != nil {
		return err
	}
	line := strings.Join(args.Words, args.Sep)
	for i := 0; i < args.Times; i++ {
		fmt.Fprintln(inv.Session.Stdout(), line)
	}
	return nil
}

func magicDecl() tether.Declaration {
	return tether.Declaration{
		Name: "magic",
		Help: "Print the answer.",
		Args: []tether.ArgSpec{
			{Name: "magic_number", Type: tether.IntType, Help: "The number to answer with."},
		},
		Handler: func(ctx context.Context, inv *tether.Invocation) error {
			fmt.Fprintf(inv.Session.Stdout(), "The answer is %d\n", inv.Args.Int("magic_number"))
			return nil
		},
	}
}
