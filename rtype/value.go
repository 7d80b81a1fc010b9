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

import "unsafe"

// AnyValue is a zero-size opaque marker used exclusively as a pointee: a
// *AnyValue is a raw address into value storage owned by the VM. The pointer
// carries no size or layout information of its own; it is meaningful only
// together with the *Type it was produced for, and the pair must never be
// separated. Pairing a value pointer with a mismatched descriptor is undefined
// behavior, not a recoverable error.
type AnyValue struct{}

// Ref converts a raw pointer into an opaque value reference.
func Ref(p unsafe.Pointer) *AnyValue {
	return (*AnyValue)(p)
}

// Raw recovers the raw pointer behind a value reference.
func Raw(v *AnyValue) unsafe.Pointer {
	return unsafe.Pointer(v)
}

// VectorHeader is the in-memory representation of a vector value: a pointer
// to the first element plus capacity and length in elements. The field order
// matches the untyped vector triple of the VM runtime and must not change.
type VectorHeader struct {
	Data *AnyValue
	Cap  uint64
	Len  uint64
}
