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

// Package rtval implements the type-erased traversal primitives over raw
// value memory: conversion of a (descriptor, pointer) pair into a tagged
// view, the per-field walk over struct values, the borrowed vector handle
// and recursive structural equality.
//
// Everything in this package operates on borrows of memory owned elsewhere.
// The caller guarantees that each value pointer genuinely addresses live
// storage laid out as its descriptor declares; the package verifies nothing
// about that pairing and a mismatch is undefined behavior. Detected contract
// breaches (out-of-bounds indexes, offset overflow, impossible kind
// combinations) panic with *InvariantError rather than degrade.
package rtval

import (
	"unsafe"

	"github.com/holiman/uint256"
	"github.com/solana-labs/move/common"
	"github.com/solana-labs/move/rtype"
	"lukechampine.com/uint128"
)

/*
View system:

<View>
	|- Bool     -> bool
	|- U8       -> uint8
	|- U16      -> uint16
	|- U32      -> uint32
	|- U64      -> uint64
	|- U128     -> uint128.Uint128
	|- U256     -> uint256.Int
	|- Address  -> common.Address
	|- Signer   -> common.Signer
	|- Vec      (borrowed vector handle)
	|- Struct   (layout + base pointer, fields not materialized)
	|- Ref      (target descriptor + target pointer)

Scalar views copy the bits out of value storage at conversion time. Vec,
Struct and Ref carry pointers into the original storage and stay valid only
as long as that storage does.
*/

// View is the tagged, kind-dispatchable representation of one value. The set
// of implementations is closed; a type switch over a View is exhaustive.
type View interface {
	view()
}

type (
	Bool    bool
	U8      uint8
	U16     uint16
	U32     uint32
	U64     uint64
	U128    uint128.Uint128
	U256    uint256.Int
	Address common.Address
	Signer  common.Signer
)

// Struct is the view of a struct value: the layout descriptor plus the
// original base pointer. Field access is deferred to the field walker.
type Struct struct {
	Type *rtype.Type
	Ref  *rtype.AnyValue
}

// Ref is the view of a reference value: the target's descriptor and the
// pointer stored in the reference.
type Ref struct {
	Elem   *rtype.Type
	Target *rtype.AnyValue
}

func (Bool) view()    {}
func (U8) view()      {}
func (U16) view()     {}
func (U32) view()     {}
func (U64) view()     {}
func (U128) view()    {}
func (U256) view()    {}
func (Address) view() {}
func (Signer) view()  {}
func (Vec) view()     {}
func (Struct) view()  {}
func (Ref) view()     {}

// ViewOf classifies the value at ref according to t and returns the unique
// view variant implied by t's kind. It never fails for a well-formed pair;
// an Invalid or unknown kind means the descriptor was corrupted or never
// built by the registry, which is fatal.
func ViewOf(t *rtype.Type, ref *rtype.AnyValue) View {
	p := unsafe.Pointer(ref)
	switch t.Kind() {
	case rtype.Bool:
		return Bool(*(*bool)(p))
	case rtype.U8:
		return U8(*(*uint8)(p))
	case rtype.U16:
		return U16(*(*uint16)(p))
	case rtype.U32:
		return U32(*(*uint32)(p))
	case rtype.U64:
		return U64(*(*uint64)(p))
	case rtype.U128:
		return U128(*(*uint128.Uint128)(p))
	case rtype.U256:
		return U256(*(*uint256.Int)(p))
	case rtype.Address:
		return Address(*(*common.Address)(p))
	case rtype.Signer:
		return Signer(*(*common.Signer)(p))
	case rtype.Vector:
		return BorrowVector(t.Elem(), (*rtype.VectorHeader)(p))
	case rtype.Struct:
		return Struct{Type: t, Ref: ref}
	case rtype.Reference:
		return Ref{Elem: t.Elem(), Target: *(**rtype.AnyValue)(p)}
	default:
		fatalf("ViewOf", "descriptor with %s kind", t.Kind())
		return nil
	}
}
