// Copyright 2023 The move-native Authors
// This file is part of move-native.
//
// move-native is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// move-native is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with move-native. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"github.com/solana-labs/move/rtype"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// universeConfig is the TOML shape of a type-universe file: an ordered list
// of struct declarations whose fields name earlier declarations or built-in
// type strings.
type universeConfig struct {
	Struct []structConfig
}

type structConfig struct {
	Name  string
	Field []fieldConfig
}

type fieldConfig struct {
	Name string
	Type string
}

func loadUniverseConfig(file string, cfg *universeConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// buildUniverse resolves a universe file into a validated registry. Structs
// are defined in file order with platform-computed offsets, so a field may
// only name structs declared before it.
func buildUniverse(file string) (*rtype.Registry, []*rtype.Type, error) {
	var cfg universeConfig
	if err := loadUniverseConfig(file, &cfg); err != nil {
		return nil, nil, err
	}
	reg := rtype.NewRegistry()
	structs := make([]*rtype.Type, 0, len(cfg.Struct))
	for _, sc := range cfg.Struct {
		names := make([]string, len(sc.Field))
		types := make([]*rtype.Type, len(sc.Field))
		for i, fc := range sc.Field {
			ft, err := parseType(reg, fc.Type)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "struct %q field %q", sc.Name, fc.Name)
			}
			names[i] = fc.Name
			types[i] = ft
		}
		typ, err := reg.DefineStructOf(sc.Name, names, types)
		if err != nil {
			return nil, nil, err
		}
		structs = append(structs, typ)
	}
	return reg, structs, nil
}

// parseType resolves a type string: a scalar kind name, "vector<T>", "&T" or
// the name of a previously declared struct.
func parseType(reg *rtype.Registry, s string) (*rtype.Type, error) {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return nil, errors.New("empty type string")
	}
	if strings.HasPrefix(s, "&") {
		inner, err := parseType(reg, s[1:])
		if err != nil {
			return nil, err
		}
		return reg.ReferenceTo(inner), nil
	}
	if strings.HasPrefix(s, "vector<") {
		if !strings.HasSuffix(s, ">") {
			return nil, errors.Errorf("unterminated vector type %q", s)
		}
		elem, err := parseType(reg, s[len("vector<"):len(s)-1])
		if err != nil {
			return nil, err
		}
		return reg.VectorOf(elem), nil
	}
	if t, ok := reg.Lookup(s); ok {
		return t, nil
	}
	return nil, errors.Errorf("unknown type %q", s)
}
