// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tether is an interactive console that hosts commands declared with
// pkg/tether. It reads raw lines, hands the unparsed tail of each line
// to the named command's dispatch entry point, and keeps running no
// matter how badly a line fails to parse.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shayne/yargs"
	"github.com/tetherun/tether/pkg/host"
	"golang.org/x/term"
)

type globalFlagsParsed struct {
	Config  string `flag:"config" help:"Path to the console config file"`
	NoColor bool   `flag:"no-color" help:"Disable colored diagnostics"`
	Script  string `flag:"script" help:"Read commands from a file instead of stdin"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func main() {
	flags, remaining, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(remaining) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", remaining)
		os.Exit(2)
	}

	cfgPath := flags.Config
	if cfgPath == "" {
		if cfgPath, err = host.DefaultConfigPath(); err != nil {
			log.Fatalf("config path: %v", err)
		}
	}
	cfg, err := host.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config %s: %v", cfgPath, err)
	}

	in := os.Stdin
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if flags.Script != "" {
		f, err := os.Open(flags.Script)
		if err != nil {
			log.Fatalf("open script: %v", err)
		}
		defer f.Close()
		in = f
		interactive = false
	}

	reg := host.NewRegistry()
	// Declaration errors are bugs in the command set; fail loudly here,
	// before the first line is read.
	if err := registerCommands(reg); err != nil {
		log.Fatalf("register commands: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := &host.Console{
		Registry:    reg,
		Session:     host.NewSession(in, os.Stdout, os.Stderr),
		Prompt:      cfg.PromptOrDefault(),
		Interactive: interactive,
		Color:       cfg.ColorEnabled() && !flags.NoColor,
		Greeting:    greeting(cfg),
	}
	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("console: %v", err)
	}
}

func greeting(cfg *host.Config) string {
	if cfg.Greeting != "" {
		return cfg.Greeting
	}
	return "tether console; type 'help' for commands, 'exit' to leave."
}
