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

import "fmt"

// Kind identifies the runtime representation class of a value. The set is
// closed: every value a program can hold at run time is exactly one of these.
type Kind uint8

const (
	// Invalid is the zero Kind and guards uninitialized descriptors.
	Invalid Kind = iota
	Bool
	U8
	U16
	U32
	U64
	U128
	U256
	Address
	Signer
	Vector
	Struct
	Reference
)

var kindNames = [...]string{
	Invalid:   "invalid",
	Bool:      "bool",
	U8:        "u8",
	U16:       "u16",
	U32:       "u32",
	U64:       "u64",
	U128:      "u128",
	U256:      "u256",
	Address:   "address",
	Signer:    "signer",
	Vector:    "vector",
	Struct:    "struct",
	Reference: "reference",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsScalar reports whether values of this kind are copied into a view by
// value rather than borrowed.
func (k Kind) IsScalar() bool {
	return k >= Bool && k <= Signer
}
