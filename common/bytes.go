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

// Package common contains the account value primitives of the runtime and
// shared helper functions.
package common

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x".
func FromHex(s string) []byte {
	if hasHexPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return Hex2Bytes(s)
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return
}

func hasHexPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	for _, c := range []byte(str) {
		if !isHexCharacter(c) {
			return false
		}
	}
	return true
}

// Bytes2Hex returns the hexadecimal encoding of d.
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

// Hex2Bytes returns the bytes represented by the hexadecimal string str.
func Hex2Bytes(str string) []byte {
	h, _ := hex.DecodeString(str)
	return h
}

// unmarshalFixedText decodes input as a 0x-prefixed hex string exactly filling
// out. The typname is only used for error reporting.
func unmarshalFixedText(typname string, input, out []byte) error {
	s := string(input)
	if !hasHexPrefix(s) {
		return errors.Errorf("hex string must have 0x prefix for %s", typname)
	}
	s = s[2:]
	if len(s) != 2*len(out) {
		return errors.Errorf("hex string has length %d, want %d for %s", len(s), 2*len(out), typname)
	}
	_, err := hex.Decode(out, []byte(s))
	return errors.Wrapf(err, "invalid hex string for %s", typname)
}

// unmarshalFixedJSON decodes a JSON quoted hex string exactly filling out.
func unmarshalFixedJSON(typname string, input, out []byte) error {
	if len(input) < 2 || input[0] != '"' || input[len(input)-1] != '"' {
		return errors.Errorf("non-string JSON value for %s", typname)
	}
	return unmarshalFixedText(typname, input[1:len(input)-1], out)
}
