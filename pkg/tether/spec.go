// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tether

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueType selects how an argument token is converted before it is
// handed to the handler.
type ValueType int

const (
	StringType ValueType = iota
	IntType
	BoolType
	FloatType
	DurationType
	// StringsType collects repeated flag occurrences, or the line
	// remainder for a variadic positional.
	StringsType
)

func (t ValueType) String() string {
	switch t {
	case StringType:
		return "string"
	case IntType:
		return "int"
	case BoolType:
		return "bool"
	case FloatType:
		return "float"
	case DurationType:
		return "duration"
	case StringsType:
		return "strings"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// ArgSpec describes one argument of a leaf command. Positional specs are
// matched by declaration order; flagged specs by their --name token.
type ArgSpec struct {
	Name string
	Type ValueType
	Help string

	// Flag makes this an option (--name [value]) instead of a
	// positional.
	Flag bool
	// Short is an optional one-letter alias for a flagged spec.
	Short string

	// Required rejects lines that omit this argument. Positionals
	// without a default are required implicitly.
	Required bool
	// Default is the textual default value, converted per Type at build
	// time. Empty means no default.
	Default string

	// Variadic lets the last positional swallow the remaining tokens as
	// a string slice. Only valid on the final positional spec.
	Variadic bool
}

func (s ArgSpec) required() bool {
	if s.Flag {
		return s.Required
	}
	return s.Required || (s.Default == "" && !s.Variadic)
}

func (s ArgSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("argument with empty name")
	}
	if strings.HasPrefix(s.Name, "-") {
		return fmt.Errorf("argument %q: name must not start with a dash", s.Name)
	}
	if strings.ContainsAny(s.Name, " \t") {
		return fmt.Errorf("argument %q: name must not contain whitespace", s.Name)
	}
	if s.Short != "" {
		if !s.Flag {
			return fmt.Errorf("argument %q: short alias on a positional", s.Name)
		}
		if len(s.Short) != 1 {
			return fmt.Errorf("argument %q: short alias %q must be one letter", s.Name, s.Short)
		}
	}
	if s.Variadic {
		if s.Flag {
			return fmt.Errorf("argument %q: a flag cannot be variadic", s.Name)
		}
		if s.Type != StringsType {
			return fmt.Errorf("argument %q: variadic requires the strings type", s.Name)
		}
	}
	if s.Type == StringsType && !s.Flag && !s.Variadic {
		return fmt.Errorf("argument %q: strings positional must be variadic", s.Name)
	}
	if s.Default != "" {
		if _, err := convertValue(s.Type, s.Default); err != nil {
			return fmt.Errorf("argument %q: bad default: %v", s.Name, err)
		}
	}
	return nil
}

// convertValue converts one token according to t.
func convertValue(t ValueType, tok string) (any, error) {
	switch t {
	case StringType:
		return tok, nil
	case IntType:
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", tok)
		}
		return n, nil
	case BoolType:
		b, err := strconv.ParseBool(tok)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean, got %q", tok)
		}
		return b, nil
	case FloatType:
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", tok)
		}
		return f, nil
	case DurationType:
		d, err := time.ParseDuration(tok)
		if err != nil {
			return nil, fmt.Errorf("expected a duration, got %q", tok)
		}
		return d, nil
	case StringsType:
		return []string{tok}, nil
	}
	return nil, fmt.Errorf("unsupported value type %v", t)
}
