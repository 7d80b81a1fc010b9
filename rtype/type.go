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

// Package rtype implements the runtime type descriptor model: immutable
// metadata describing the kind, size, alignment and, for structs, the field
// layout of values whose concrete type is known only at run time. Descriptors
// are built once per type, treated as process-lifetime data and shared
// read-only across arbitrarily many concurrent traversals.
package rtype

import (
	"fmt"
	"unsafe"

	"github.com/holiman/uint256"
	"github.com/solana-labs/move/common"
	"lukechampine.com/uint128"
)

// StructField describes a single declared field of a struct type: the field's
// own descriptor, its byte offset relative to the struct's base address and a
// static display name. The name must outlive all uses of the descriptor.
type StructField struct {
	Type   *Type
	Offset uint64
	Name   string
}

// Type is an immutable runtime type descriptor. A descriptor paired with a
// raw value pointer carries enough information to compute the addressable
// size of the value and to interpret its bytes. Descriptors never own value
// memory; they only describe how to locate and read it.
type Type struct {
	kind   Kind
	name   string
	elem   *Type // Vector element or Reference target
	fields []StructField
	size   uint64
	align  uint64
}

// Canonical in-memory representations of each scalar kind. Sizes and
// alignments derive from these via unsafe so the descriptor table can never
// drift from what the conversion layer actually dereferences.
var (
	kindSizes = [...]uint64{
		Bool:      uint64(unsafe.Sizeof(false)),
		U8:        uint64(unsafe.Sizeof(uint8(0))),
		U16:       uint64(unsafe.Sizeof(uint16(0))),
		U32:       uint64(unsafe.Sizeof(uint32(0))),
		U64:       uint64(unsafe.Sizeof(uint64(0))),
		U128:      uint64(unsafe.Sizeof(uint128.Uint128{})),
		U256:      uint64(unsafe.Sizeof(uint256.Int{})),
		Address:   uint64(unsafe.Sizeof(common.Address{})),
		Signer:    uint64(unsafe.Sizeof(common.Signer{})),
		Vector:    uint64(unsafe.Sizeof(VectorHeader{})),
		Reference: uint64(unsafe.Sizeof(uintptr(0))),
	}
	kindAligns = [...]uint64{
		Bool:      uint64(unsafe.Alignof(false)),
		U8:        uint64(unsafe.Alignof(uint8(0))),
		U16:       uint64(unsafe.Alignof(uint16(0))),
		U32:       uint64(unsafe.Alignof(uint32(0))),
		U64:       uint64(unsafe.Alignof(uint64(0))),
		U128:      uint64(unsafe.Alignof(uint128.Uint128{})),
		U256:      uint64(unsafe.Alignof(uint256.Int{})),
		Address:   uint64(unsafe.Alignof(common.Address{})),
		Signer:    uint64(unsafe.Alignof(common.Signer{})),
		Vector:    uint64(unsafe.Alignof(VectorHeader{})),
		Reference: uint64(unsafe.Alignof(uintptr(0))),
	}
)

// Singleton descriptors for the scalar kinds. Scalars carry no per-type
// state, so one shared descriptor per kind serves the whole process.
var (
	BoolType    = newScalar(Bool)
	U8Type      = newScalar(U8)
	U16Type     = newScalar(U16)
	U32Type     = newScalar(U32)
	U64Type     = newScalar(U64)
	U128Type    = newScalar(U128)
	U256Type    = newScalar(U256)
	AddressType = newScalar(Address)
	SignerType  = newScalar(Signer)
)

func newScalar(k Kind) *Type {
	return &Type{kind: k, name: k.String(), size: kindSizes[k], align: kindAligns[k]}
}

// VectorOf returns a descriptor for a vector with the given element type.
// The returned descriptor borrows elem; it is not interned, callers wanting
// interning go through a Registry.
func VectorOf(elem *Type) *Type {
	return &Type{
		kind:  Vector,
		name:  "vector<" + elem.name + ">",
		elem:  elem,
		size:  kindSizes[Vector],
		align: kindAligns[Vector],
	}
}

// ReferenceTo returns a descriptor for a reference to the given target type.
func ReferenceTo(inner *Type) *Type {
	return &Type{
		kind:  Reference,
		name:  "&" + inner.name,
		elem:  inner,
		size:  kindSizes[Reference],
		align: kindAligns[Reference],
	}
}

// NewStruct builds a struct descriptor from an explicit field layout, total
// size and alignment. The descriptor is NOT validated: the caller asserts the
// offsets agree with the host platform's layout of the actual value storage.
// Validated construction lives in Registry.DefineStruct.
func NewStruct(name string, fields []StructField, size, align uint64) *Type {
	fs := make([]StructField, len(fields))
	copy(fs, fields)
	return &Type{kind: Struct, name: name, fields: fs, size: size, align: align}
}

// Kind returns the type's kind.
func (t *Type) Kind() Kind { return t.kind }

// Name returns the type's display name. Scalar names are the kind names,
// vectors are "vector<elem>", references "&inner" and structs carry the name
// they were defined with.
func (t *Type) Name() string { return t.name }

// Size returns the number of bytes a value of this type occupies.
func (t *Type) Size() uint64 { return t.size }

// Align returns the required alignment of a value of this type.
func (t *Type) Align() uint64 { return t.align }

// Elem returns the element type of a vector or the target type of a
// reference. It panics for any other kind.
func (t *Type) Elem() *Type {
	if t.kind != Vector && t.kind != Reference {
		panic(fmt.Sprintf("rtype: Elem of %s type %s", t.kind, t.name))
	}
	return t.elem
}

// NumField returns the number of declared fields of a struct type.
// It panics for any other kind.
func (t *Type) NumField() int {
	if t.kind != Struct {
		panic(fmt.Sprintf("rtype: NumField of %s type %s", t.kind, t.name))
	}
	return len(t.fields)
}

// Field returns the i'th declared field of a struct type, in declaration
// order. It panics for non-struct kinds and for out-of-range i.
func (t *Type) Field(i int) StructField {
	if t.kind != Struct {
		panic(fmt.Sprintf("rtype: Field of %s type %s", t.kind, t.name))
	}
	return t.fields[i]
}

// FieldByName returns the declared field with the given name.
func (t *Type) FieldByName(name string) (StructField, bool) {
	if t.kind != Struct {
		panic(fmt.Sprintf("rtype: FieldByName of %s type %s", t.kind, t.name))
	}
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

func (t *Type) String() string { return t.name }

// KindSize returns the fixed byte size of a non-struct kind.
func KindSize(k Kind) uint64 {
	if k == Invalid || k == Struct || int(k) >= len(kindSizes) {
		panic(fmt.Sprintf("rtype: KindSize of %s", k))
	}
	return kindSizes[k]
}

// KindAlign returns the fixed alignment of a non-struct kind.
func KindAlign(k Kind) uint64 {
	if k == Invalid || k == Struct || int(k) >= len(kindAligns) {
		panic(fmt.Sprintf("rtype: KindAlign of %s", k))
	}
	return kindAligns[k]
}
