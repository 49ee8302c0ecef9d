// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tether

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Specs derives an ordered ArgSpec list from a tagged struct, so a leaf's
// argument record can be declared as a plain type:
//
//	type readArgs struct {
//		Addr  string `pos:"0" help:"Address to read"`
//		Count int    `pos:"1" help:"Byte count" default:"64"`
//		Hex   bool   `flag:"hex" short:"x" help:"Hex output"`
//	}
//
// Fields tagged `pos:"N"` become positionals ordered by N; other exported
// fields become flags named by their `flag` tag or lowercased field name.
func Specs(v any) ([]ArgSpec, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema must be a struct, got %T", v)
	}

	type positional struct {
		index int
		spec  ArgSpec
	}
	var positionals []positional
	var flags []ArgSpec
	seen := make(map[int]bool)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		vt, err := valueTypeFor(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %v", field.Name, err)
		}
		spec := ArgSpec{
			Type:    vt,
			Help:    field.Tag.Get("help"),
			Default: field.Tag.Get("default"),
		}
		if req := field.Tag.Get("required"); req != "" {
			b, err := strconv.ParseBool(req)
			if err != nil {
				return nil, fmt.Errorf("field %s: bad required tag %q", field.Name, req)
			}
			spec.Required = b
		}
		if pos, ok := field.Tag.Lookup("pos"); ok {
			idx, err := strconv.Atoi(pos)
			if err != nil {
				return nil, fmt.Errorf("field %s: bad pos tag %q", field.Name, pos)
			}
			if seen[idx] {
				return nil, fmt.Errorf("field %s: duplicate pos %d", field.Name, idx)
			}
			seen[idx] = true
			spec.Name = fieldArgName(field)
			if vrd := field.Tag.Get("variadic"); vrd != "" {
				b, err := strconv.ParseBool(vrd)
				if err != nil {
					return nil, fmt.Errorf("field %s: bad variadic tag %q", field.Name, vrd)
				}
				spec.Variadic = b
			}
			positionals = append(positionals, positional{index: idx, spec: spec})
			continue
		}
		spec.Flag = true
		spec.Name = field.Tag.Get("flag")
		if spec.Name == "" {
			spec.Name = strings.ToLower(field.Name)
		}
		spec.Short = field.Tag.Get("short")
		flags = append(flags, spec)
	}

	sort.Slice(positionals, func(i, j int) bool { return positionals[i].index < positionals[j].index })
	specs := make([]ArgSpec, 0, len(positionals)+len(flags))
	for _, p := range positionals {
		specs = append(specs, p.spec)
	}
	specs = append(specs, flags...)
	return specs, nil
}

// fieldArgName picks the argument name for a positional field: an
// explicit `name` tag wins, otherwise the lowercased field name.
func fieldArgName(field reflect.StructField) string {
	if name := field.Tag.Get("name"); name != "" {
		return name
	}
	return strings.ToLower(field.Name)
}

func valueTypeFor(t reflect.Type) (ValueType, error) {
	if t == reflect.TypeOf(time.Duration(0)) {
		return DurationType, nil
	}
	switch t.Kind() {
	case reflect.String:
		return StringType, nil
	case reflect.Int:
		return IntType, nil
	case reflect.Bool:
		return BoolType, nil
	case reflect.Float64:
		return FloatType, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return StringsType, nil
		}
	}
	return 0, fmt.Errorf("unsupported schema type %s", t)
}

// Decode fills a tagged struct from parsed values, giving handlers a
// statically-known argument record. Names absent from the values leave
// the destination field untouched.
func (v Values) Decode(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode destination must be a non-nil struct pointer, got %T", dst)
	}
	elem := rv.Elem()
	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		var name string
		if _, ok := field.Tag.Lookup("pos"); ok {
			name = fieldArgName(field)
		} else if name = field.Tag.Get("flag"); name == "" {
			name = strings.ToLower(field.Name)
		}
		val, ok := v[name]
		if !ok {
			continue
		}
		fv := elem.Field(i)
		want := reflect.TypeOf(val)
		if want == nil || !want.AssignableTo(fv.Type()) {
			return fmt.Errorf("argument %q: cannot assign %T to field %s (%s)", name, val, field.Name, fv.Type())
		}
		fv.Set(reflect.ValueOf(val))
	}
	return nil
}
