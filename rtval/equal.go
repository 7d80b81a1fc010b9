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

package rtval

import (
	"github.com/holiman/uint256"
	"github.com/solana-labs/move/common"
	"github.com/solana-labs/move/rtype"
	"lukechampine.com/uint128"
)

// Equal reports recursive structural equality of the two values at a and b,
// both of which the caller asserts to share type t. Scalars compare by native
// value, vectors element-wise, structs field-wise in declaration order with a
// short-circuit on the first unequal field.
//
// Equality over a Reference descriptor has no valid call site: references are
// dereferenced before comparison by the surrounding runtime, so reaching one
// here is an internal-invariant violation and panics. So does any mismatch of
// view variants between the two sides, since the shared descriptor makes one
// impossible without metadata corruption.
func Equal(t *rtype.Type, a, b *rtype.AnyValue) bool {
	return viewEqual(ViewOf(t, a), ViewOf(t, b))
}

func viewEqual(va, vb View) bool {
	switch x := va.(type) {
	case Bool:
		if y, ok := vb.(Bool); ok {
			return x == y
		}
	case U8:
		if y, ok := vb.(U8); ok {
			return x == y
		}
	case U16:
		if y, ok := vb.(U16); ok {
			return x == y
		}
	case U32:
		if y, ok := vb.(U32); ok {
			return x == y
		}
	case U64:
		if y, ok := vb.(U64); ok {
			return x == y
		}
	case U128:
		if y, ok := vb.(U128); ok {
			return uint128.Uint128(x).Equals(uint128.Uint128(y))
		}
	case U256:
		if y, ok := vb.(U256); ok {
			xi, yi := uint256.Int(x), uint256.Int(y)
			return xi.Eq(&yi)
		}
	case Address:
		if y, ok := vb.(Address); ok {
			return common.Address(x) == common.Address(y)
		}
	case Signer:
		if y, ok := vb.(Signer); ok {
			return common.Signer(x) == common.Signer(y)
		}
	case Vec:
		if y, ok := vb.(Vec); ok {
			return x.EqualTo(y)
		}
	case Struct:
		if y, ok := vb.(Struct); ok {
			return structEqual(x.Type, x.Ref, y.Ref)
		}
	case Ref:
		fatalf("Equal", "reference value in structural comparison")
	}
	fatalf("Equal", "view variants %T and %T for values declared alike", va, vb)
	return false
}

// structEqual walks both structs in lockstep with the shared layout and
// recursively compares each field pair.
func structEqual(t *rtype.Type, a, b *rtype.AnyValue) bool {
	wa := WalkFields(t, a)
	wb := WalkFields(t, b)
	for wa.Next() && wb.Next() {
		fa, fb := wa.Field(), wb.Field()
		if fa.Type.Kind() == rtype.Reference {
			fatalf("Equal", "reference in struct field impossible")
		}
		if !viewEqual(ViewOf(fa.Type, fa.Ref), ViewOf(fb.Type, fb.Ref)) {
			return false
		}
	}
	return true
}
