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
	"os"
	"path/filepath"
	"testing"

	"github.com/solana-labs/move/rtype"
)

func writeUniverse(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "universe.toml")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestParseType(t *testing.T) {
	reg := rtype.NewRegistry()
	tests := []struct {
		in       string
		wantName string
		wantErr  bool
	}{
		{in: "u64", wantName: "u64"},
		{in: " bool ", wantName: "bool"},
		{in: "vector<u8>", wantName: "vector<u8>"},
		{in: "vector<vector<address>>", wantName: "vector<vector<address>>"},
		{in: "&u64", wantName: "&u64"},
		{in: "&vector<signer>", wantName: "&vector<signer>"},
		{in: "", wantErr: true},
		{in: "vector<u8", wantErr: true},
		{in: "Unknown", wantErr: true},
	}
	for _, tt := range tests {
		typ, err := parseType(reg, tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseType(%q): expected error, got %s", tt.in, typ)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseType(%q): %v", tt.in, err)
			continue
		}
		if typ.Name() != tt.wantName {
			t.Errorf("parseType(%q) = %s, want %s", tt.in, typ.Name(), tt.wantName)
		}
	}
}

func TestBuildUniverse(t *testing.T) {
	file := writeUniverse(t, `
[[Struct]]
Name = "Point"
  [[Struct.Field]]
  Name = "x"
  Type = "u64"
  [[Struct.Field]]
  Name = "y"
  Type = "u64"

[[Struct]]
Name = "Path"
  [[Struct.Field]]
  Name = "points"
  Type = "vector<Point>"
  [[Struct.Field]]
  Name = "owner"
  Type = "address"
`)
	reg, structs, err := buildUniverse(file)
	if err != nil {
		t.Fatalf("buildUniverse failed: %v", err)
	}
	if len(structs) != 2 {
		t.Fatalf("built %d structs, want 2", len(structs))
	}

	pt := reg.MustLookup("Point")
	if got := pt.Size(); got != 16 {
		t.Errorf("Point size %d, want 16", got)
	}
	if f, ok := pt.FieldByName("y"); !ok || f.Offset != 8 {
		t.Errorf("Point.y = %+v, %v, want offset 8", f, ok)
	}

	path := reg.MustLookup("Path")
	if f, ok := path.FieldByName("points"); !ok || f.Type.Kind() != rtype.Vector || f.Type.Elem() != pt {
		t.Errorf("Path.points does not reference the Point descriptor")
	}
}

func TestBuildUniverseForwardReference(t *testing.T) {
	file := writeUniverse(t, `
[[Struct]]
Name = "Path"
  [[Struct.Field]]
  Name = "points"
  Type = "vector<Point>"

[[Struct]]
Name = "Point"
  [[Struct.Field]]
  Name = "x"
  Type = "u64"
`)
	if _, _, err := buildUniverse(file); err == nil {
		t.Error("forward struct reference accepted")
	}
}

func TestBuildUniverseRejectsUnknownKey(t *testing.T) {
	file := writeUniverse(t, `
[[Struct]]
Name = "Point"
Bogus = 1
`)
	if _, _, err := buildUniverse(file); err == nil {
		t.Error("unknown TOML key accepted")
	}
}
