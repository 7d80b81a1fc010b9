// Copyright 2023 The move-native Authors
// This file is part of the move-native library.
//
// The move-native library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The move-native library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the move-native library. If not, see <http://www.gnu.org/licenses/>.

package rtype

import "testing"

func TestScalarSizes(t *testing.T) {
	tests := []struct {
		typ       *Type
		wantSize  uint64
		wantAlign uint64
	}{
		{BoolType, 1, 1},
		{U8Type, 1, 1},
		{U16Type, 2, 2},
		{U32Type, 4, 4},
		{U64Type, 8, 8},
		{U128Type, 16, 8},
		{U256Type, 32, 8},
		{AddressType, 32, 1},
		{SignerType, 32, 1},
	}
	for _, tt := range tests {
		if got := tt.typ.Size(); got != tt.wantSize {
			t.Errorf("%s: size %d, want %d", tt.typ, got, tt.wantSize)
		}
		if got := tt.typ.Align(); got != tt.wantAlign {
			t.Errorf("%s: align %d, want %d", tt.typ, got, tt.wantAlign)
		}
	}
}

func TestDerivedNames(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{VectorOf(U8Type), "vector<u8>"},
		{VectorOf(VectorOf(U64Type)), "vector<vector<u64>>"},
		{ReferenceTo(U64Type), "&u64"},
		{ReferenceTo(VectorOf(AddressType)), "&vector<address>"},
	}
	for _, tt := range tests {
		if got := tt.typ.Name(); got != tt.want {
			t.Errorf("name %q, want %q", got, tt.want)
		}
	}
}

func TestVectorLayout(t *testing.T) {
	v := VectorOf(U64Type)
	if got := v.Size(); got != 24 {
		t.Errorf("vector header size %d, want 24", got)
	}
	if got := v.Elem(); got != U64Type {
		t.Errorf("vector elem %v, want %v", got, U64Type)
	}
}

func TestKindMismatchPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"Elem of scalar", func() { U64Type.Elem() }},
		{"NumField of scalar", func() { BoolType.NumField() }},
		{"Field of vector", func() { VectorOf(U8Type).Field(0) }},
		{"FieldByName of reference", func() { ReferenceTo(U8Type).FieldByName("x") }},
		{"KindSize of struct", func() { KindSize(Struct) }},
		{"KindSize of invalid", func() { KindSize(Invalid) }},
	}
	for _, tt := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", tt.name)
				}
			}()
			tt.fn()
		}()
	}
}

func TestStructAccessors(t *testing.T) {
	fields := []StructField{
		{Type: U64Type, Offset: 0, Name: "x"},
		{Type: U64Type, Offset: 8, Name: "y"},
	}
	typ := NewStruct("Point", fields, 16, 8)
	if got := typ.NumField(); got != 2 {
		t.Fatalf("NumField %d, want 2", got)
	}
	for i, want := range fields {
		got := typ.Field(i)
		if got.Name != want.Name || got.Offset != want.Offset || got.Type != want.Type {
			t.Errorf("field %d: got %+v, want %+v", i, got, want)
		}
	}
	if f, ok := typ.FieldByName("y"); !ok || f.Offset != 8 {
		t.Errorf("FieldByName(y) = %+v, %v, want offset 8", f, ok)
	}
	if _, ok := typ.FieldByName("z"); ok {
		t.Error("FieldByName(z) found a field that was never declared")
	}
}
