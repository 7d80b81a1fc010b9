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

// Package debuginfo reads struct layouts and type descriptors and renders
// them as symbolic debug metadata for external tooling. It is a pure reader
// of the descriptor model: it never dereferences value pointers and never
// invokes the equality engine.
package debuginfo

import (
	"encoding/json"

	"github.com/solana-labs/move/common"
	"github.com/solana-labs/move/crypto"
	"github.com/solana-labs/move/rtype"
)

// Scalar encoding classes reported to debuggers.
const (
	EncodingBoolean  = "boolean"
	EncodingUnsigned = "unsigned"
	EncodingAddress  = "address"
)

// TypeDescription is the symbolic form of one type descriptor, recursively
// covering vector elements and struct fields.
type TypeDescription struct {
	Kind     string             `json:"kind"`
	Name     string             `json:"name"`
	Size     uint64             `json:"size"`
	Align    uint64             `json:"align"`
	Encoding string             `json:"encoding,omitempty"`
	Element  *TypeDescription   `json:"element,omitempty"`
	Fields   []FieldDescription `json:"fields,omitempty"`
}

// FieldDescription is the symbolic form of one declared struct field.
type FieldDescription struct {
	Name   string           `json:"name"`
	Offset uint64           `json:"offset"`
	Type   *TypeDescription `json:"type"`
}

// Describe renders t as a symbolic type description.
func Describe(t *rtype.Type) *TypeDescription {
	d := &TypeDescription{
		Kind:  t.Kind().String(),
		Name:  t.Name(),
		Size:  t.Size(),
		Align: t.Align(),
	}
	switch t.Kind() {
	case rtype.Bool:
		d.Encoding = EncodingBoolean
	case rtype.U8, rtype.U16, rtype.U32, rtype.U64, rtype.U128, rtype.U256:
		d.Encoding = EncodingUnsigned
	case rtype.Address, rtype.Signer:
		d.Encoding = EncodingAddress
	case rtype.Vector, rtype.Reference:
		d.Element = Describe(t.Elem())
	case rtype.Struct:
		d.Fields = make([]FieldDescription, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			d.Fields[i] = FieldDescription{
				Name:   f.Name,
				Offset: f.Offset,
				Type:   Describe(f.Type),
			}
		}
	}
	return d
}

// JSON renders the description as indented JSON.
func (d *TypeDescription) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Digest returns a stable identifier of the description, the keccak hash of
// its canonical JSON form. Identical layouts digest identically across
// processes.
func (d *TypeDescription) Digest() common.Hash {
	enc, err := json.Marshal(d)
	if err != nil {
		// Marshaling a tree of plain structs and strings cannot fail.
		panic("debuginfo: marshal description: " + err.Error())
	}
	return crypto.Keccak256Hash(enc)
}
