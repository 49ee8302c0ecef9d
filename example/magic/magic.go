// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Minimal library walkthrough: declare a command with one positional
// integer, attach it to a registry, and dispatch a few raw lines. Note
// that the bad lines print diagnostics and return normally.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tetherun/tether/pkg/host"
	"github.com/tetherun/tether/pkg/tether"
)

func main() {
	decl := tether.Declaration{
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

	reg := host.NewRegistry()
	if err := host.Attach(reg, decl); err != nil {
		log.Fatalf("attach: %v", err)
	}

	entry, _ := reg.Lookup("magic")
	session := host.NewSession(os.Stdin, os.Stdout, os.Stderr)
	for _, raw := range []string{"42", "", "abc", "--help"} {
		if err := entry(context.Background(), session, raw); err != nil {
			log.Fatalf("dispatch %q: %v", raw, err)
		}
	}
}
