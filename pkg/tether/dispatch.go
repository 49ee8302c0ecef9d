// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tether

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/juju/gnuflag"
	"github.com/kballard/go-shellquote"
)

// Tokenizer splits a raw command line into tokens. The default applies
// conventional shell word splitting (whitespace separation, quotes,
// backslash escapes); hosts with their own quoting dialect can substitute
// one via Options.
type Tokenizer func(raw string) ([]string, error)

// Options tune a dispatch. The zero value (or nil) selects the defaults.
type Options struct {
	// Tokenizer overrides the shell-word-splitting default.
	Tokenizer Tokenizer
}

func (o *Options) tokenize(raw string) ([]string, error) {
	if o != nil && o.Tokenizer != nil {
		return o.Tokenizer(raw)
	}
	return shellquote.Split(raw)
}

// NoSuchSubcommandError reports a first token that matches no declared
// child. It is a user error: dispatch prints it and returns normally.
type NoSuchSubcommandError struct {
	Path    string
	Name    string
	Choices []string // declaration order
}

func (e *NoSuchSubcommandError) Error() string {
	return fmt.Sprintf("%s: unrecognized subcommand %q, expected one of: %s",
		e.Path, e.Name, strings.Join(e.Choices, ", "))
}

// SubcommandRequiredError reports an interior node invoked with no tokens
// left to select a child.
type SubcommandRequiredError struct {
	Path    string
	Choices []string // declaration order
}

func (e *SubcommandRequiredError) Error() string {
	return fmt.Sprintf("%s: a subcommand is required, expected one of: %s",
		e.Path, strings.Join(e.Choices, ", "))
}

// ArgumentParseError reports malformed, missing or unrecognized arguments
// at a leaf.
type ArgumentParseError struct {
	Path   string
	Reason string
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func parseErrf(path, format string, args ...any) *ArgumentParseError {
	return &ArgumentParseError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// OutcomeKind tags the result of resolving a raw line against a tree.
type OutcomeKind int

const (
	// OutcomeRun means a leaf was resolved and its arguments parsed.
	OutcomeRun OutcomeKind = iota
	// OutcomeHelp means descent stopped on a help request.
	OutcomeHelp
	// OutcomeUsageError means the line could not be resolved or parsed.
	OutcomeUsageError
)

// Outcome is the tagged result of Resolve. Parsing either succeeds with
// values, stops on a help request with rendered help text, or fails with
// a diagnostic — it never terminates the process.
type Outcome struct {
	Kind OutcomeKind
	// Node is the node descent stopped at.
	Node *Node
	// Values holds the parsed arguments when Kind is OutcomeRun.
	Values Values
	// Message is the rendered help text (OutcomeHelp) or diagnostic
	// (OutcomeUsageError).
	Message string
	// Err is the underlying usage error when Kind is OutcomeUsageError.
	Err error
}

// Resolve tokenizes raw and walks the tree, returning a tagged outcome.
// It never mutates the tree and allocates all per-call state locally.
func Resolve(root *Node, raw string, opts *Options) Outcome {
	tokens, err := opts.tokenize(raw)
	if err != nil {
		perr := parseErrf(root.path, "cannot tokenize input: %v", err)
		return usageOutcome(root, perr)
	}

	n := root
	for !n.Leaf() {
		if len(tokens) == 0 {
			serr := &SubcommandRequiredError{Path: n.path, Choices: n.childNames()}
			return usageOutcome(n, serr)
		}
		if tokens[0] == "--help" || tokens[0] == "-h" {
			return Outcome{Kind: OutcomeHelp, Node: n, Message: renderHelp(n)}
		}
		child, ok := n.child(tokens[0])
		if !ok {
			nerr := &NoSuchSubcommandError{Path: n.path, Name: tokens[0], Choices: n.childNames()}
			return usageOutcome(n, nerr)
		}
		n = child
		tokens = tokens[1:]
	}

	values, help, perr := n.parseArgs(tokens)
	if help {
		return Outcome{Kind: OutcomeHelp, Node: n, Message: renderHelp(n)}
	}
	if perr != nil {
		return usageOutcome(n, perr)
	}
	return Outcome{Kind: OutcomeRun, Node: n, Values: values}
}

func usageOutcome(n *Node, err error) Outcome {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %v\n", err)
	fmt.Fprintf(&b, "Usage: %s\n", usageLine(n))
	return Outcome{Kind: OutcomeUsageError, Node: n, Message: b.String(), Err: err}
}

// Dispatch resolves raw against root and either runs the leaf handler or
// prints the help/usage diagnostic on the session. Parse failures and
// help requests are contained here: they are emitted and Dispatch returns
// nil. Errors returned by the handler itself propagate unchanged.
func Dispatch(ctx context.Context, root *Node, s Session, raw string) error {
	return DispatchWith(ctx, root, s, raw, nil)
}

// DispatchWith is Dispatch with explicit options.
func DispatchWith(ctx context.Context, root *Node, s Session, raw string, opts *Options) error {
	out := Resolve(root, raw, opts)
	switch out.Kind {
	case OutcomeHelp:
		io.WriteString(s.Stdout(), out.Message)
		return nil
	case OutcomeUsageError:
		io.WriteString(s.Stderr(), out.Message)
		return nil
	}
	inv := &Invocation{Session: s, Raw: raw, Args: out.Values}
	return out.Node.handler(ctx, inv)
}

// parseArgs applies tokens against the leaf's argument specs: flagged
// options through a gnuflag set built fresh per call, positionals in
// declaration order against what remains.
func (n *Node) parseArgs(tokens []string) (Values, bool, *ArgumentParseError) {
	f := gnuflag.NewFlagSetWithFlagKnownAs(n.path, gnuflag.ContinueOnError, "flag")
	f.SetOutput(io.Discard)

	var showHelp bool
	f.BoolVar(&showHelp, "help", false, "Show this help message.")
	f.BoolVar(&showHelp, "h", false, "")

	holders := n.bindFlags(f)

	if err := f.Parse(true, tokens); err != nil {
		return nil, false, parseErrf(n.path, "%v", err)
	}
	if showHelp {
		return nil, true, nil
	}

	set := make(map[string]bool)
	f.Visit(func(fl *gnuflag.Flag) { set[fl.Name] = true })

	values := n.defaults.clone()
	for _, h := range holders {
		if set[h.spec.Name] || (h.spec.Short != "" && set[h.spec.Short]) {
			values[h.spec.Name] = h.value()
		} else if h.spec.Required {
			return nil, false, parseErrf(n.path, "missing required flag --%s", h.spec.Name)
		}
	}

	rest := f.Args()
	for _, spec := range n.positionals() {
		if spec.Variadic {
			if len(rest) == 0 && spec.required() {
				return nil, false, parseErrf(n.path, "missing required argument %q", spec.Name)
			}
			if len(rest) > 0 {
				values[spec.Name] = append([]string(nil), rest...)
				rest = nil
			}
			continue
		}
		if len(rest) == 0 {
			if spec.required() {
				return nil, false, parseErrf(n.path, "missing required argument %q", spec.Name)
			}
			continue // declared default, if any, already applied
		}
		v, err := convertValue(spec.Type, rest[0])
		if err != nil {
			return nil, false, parseErrf(n.path, "invalid value for argument %q: %v", spec.Name, err)
		}
		values[spec.Name] = v
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return nil, false, parseErrf(n.path, "unrecognized arguments: %s", strings.Join(rest, " "))
	}
	return values, false, nil
}

// flagHolder pairs a spec with the typed destination gnuflag parses into.
type flagHolder struct {
	spec  ArgSpec
	value func() any
}

func (n *Node) bindFlags(f *gnuflag.FlagSet) []flagHolder {
	holders := make([]flagHolder, 0, len(n.specs))
	for _, spec := range n.flags() {
		names := []string{spec.Name}
		if spec.Short != "" {
			names = append(names, spec.Short)
		}
		var get func() any
		switch spec.Type {
		case StringType:
			p := new(string)
			if spec.Default != "" {
				*p = spec.Default
			}
			for _, name := range names {
				f.StringVar(p, name, *p, spec.Help)
			}
			get = func() any { return *p }
		case IntType:
			p := new(int)
			if spec.Default != "" {
				v, _ := convertValue(IntType, spec.Default)
				*p = v.(int)
			}
			for _, name := range names {
				f.IntVar(p, name, *p, spec.Help)
			}
			get = func() any { return *p }
		case BoolType:
			p := new(bool)
			if spec.Default != "" {
				v, _ := convertValue(BoolType, spec.Default)
				*p = v.(bool)
			}
			for _, name := range names {
				f.BoolVar(p, name, *p, spec.Help)
			}
			get = func() any { return *p }
		case FloatType:
			p := new(float64)
			if spec.Default != "" {
				v, _ := convertValue(FloatType, spec.Default)
				*p = v.(float64)
			}
			for _, name := range names {
				f.Float64Var(p, name, *p, spec.Help)
			}
			get = func() any { return *p }
		case DurationType:
			p := new(time.Duration)
			if spec.Default != "" {
				v, _ := convertValue(DurationType, spec.Default)
				*p = v.(time.Duration)
			}
			for _, name := range names {
				f.DurationVar(p, name, *p, spec.Help)
			}
			get = func() any { return *p }
		case StringsType:
			p := new([]string)
			sv := &stringsValue{vals: p}
			for _, name := range names {
				f.Var(sv, name, spec.Help)
			}
			get = func() any { return append([]string(nil), *p...) }
		}
		holders = append(holders, flagHolder{spec: spec, value: get})
	}
	return holders
}

// stringsValue accumulates repeated flag occurrences.
type stringsValue struct {
	vals *[]string
}

func (s *stringsValue) Set(v string) error {
	*s.vals = append(*s.vals, v)
	return nil
}

func (s *stringsValue) String() string {
	if s.vals == nil {
		return ""
	}
	return strings.Join(*s.vals, ",")
}
