// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a flag set bound to the tagged fields of
// params, a pointer to a struct. It panics if params cannot be bound:
// that is a bug in the command definition, not bad user input.
//
//	var params extractParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("extract", &params) },
//	    Run: func(args []string) error {
//	        // params holds the parsed flag values here.
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for every field of *params that
// carries a flag tag:
//
//	Trust bool   `flag:"trust"     desc:"trust length prefixes"`
//	To    string `flag:"to"        desc:"output format" default:"json"`
//	Limit int    `flag:"limit,n"   desc:"stop after n documents"`
//
// The flag tag holds the long name and an optional one-letter
// shorthand. The default tag is parsed per the field type; without it
// the zero value is the default. Fields of embedded structs are bound
// as if declared directly, so commands share flags by embedding.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	pointer := reflect.ValueOf(params)
	if pointer.Kind() != reflect.Pointer || pointer.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(pointer.Elem(), flagSet)
}

// flagSpec is the parsed tag set of one field.
type flagSpec struct {
	name, shorthand, usage, fallback string
}

// binders register a flag for a field of the keyed type. target is a
// pointer to the field.
var binders = map[reflect.Type]func(flagSet *pflag.FlagSet, target any, spec flagSpec) error{
	reflect.TypeFor[string](): func(flagSet *pflag.FlagSet, target any, spec flagSpec) error {
		flagSet.StringVarP(target.(*string), spec.name, spec.shorthand, spec.fallback, spec.usage)
		return nil
	},
	reflect.TypeFor[bool](): func(flagSet *pflag.FlagSet, target any, spec flagSpec) error {
		value, err := parseDefault(spec.fallback, strconv.ParseBool)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", spec.name, err)
		}
		flagSet.BoolVarP(target.(*bool), spec.name, spec.shorthand, value, spec.usage)
		return nil
	},
	reflect.TypeFor[int](): func(flagSet *pflag.FlagSet, target any, spec flagSpec) error {
		value, err := parseDefault(spec.fallback, strconv.Atoi)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", spec.name, err)
		}
		flagSet.IntVarP(target.(*int), spec.name, spec.shorthand, value, spec.usage)
		return nil
	},
}

func parseDefault[T any](text string, parse func(string) (T, error)) (T, error) {
	if text == "" {
		var zero T
		return zero, nil
	}
	return parse(text)
}

func bindStruct(value reflect.Value, flagSet *pflag.FlagSet) error {
	for i := range value.NumField() {
		field := value.Type().Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(value.Field(i), flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag, tagged := field.Tag.Lookup("flag")
		if !tagged {
			continue
		}
		spec := flagSpec{usage: field.Tag.Get("desc"), fallback: field.Tag.Get("default")}
		spec.name, spec.shorthand, _ = strings.Cut(tag, ",")

		bind, ok := binders[field.Type]
		if !ok {
			return fmt.Errorf("field %s: unsupported type %s for flag --%s", field.Name, field.Type, spec.name)
		}
		if err := bind(flagSet, value.Field(i).Addr().Interface(), spec); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}
