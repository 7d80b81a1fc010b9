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

package common

import "testing"

func TestBytesToAddressCropsLeft(t *testing.T) {
	long := make([]byte, AddressLength+4)
	for i := range long {
		long[i] = byte(i)
	}
	a := BytesToAddress(long)
	if a[0] != long[4] || a[AddressLength-1] != long[len(long)-1] {
		t.Errorf("long input not cropped from the left: %x", a)
	}

	short := BytesToAddress([]byte{1, 2})
	if short[AddressLength-2] != 1 || short[AddressLength-1] != 2 {
		t.Errorf("short input not right aligned: %x", short)
	}
}

func TestAddressHexRoundTrip(t *testing.T) {
	a := BytesToAddress([]byte{0xde, 0xad, 0xbe, 0xef})
	var b Address
	if err := b.UnmarshalText([]byte(a.Hex())); err != nil {
		t.Fatalf("UnmarshalText(%s) failed: %v", a.Hex(), err)
	}
	if a != b {
		t.Errorf("round trip changed address: %s != %s", a, b)
	}
}

func TestAddressUnmarshalRejects(t *testing.T) {
	tests := []string{
		"deadbeef", // no prefix
		"0x1234",   // wrong length
		"0x" + "zz" + "00000000000000000000000000000000000000000000000000000000000000"[:60],
	}
	for _, in := range tests {
		var a Address
		if err := a.UnmarshalText([]byte(in)); err == nil {
			t.Errorf("UnmarshalText(%q) accepted invalid input", in)
		}
	}
}

func TestIsHexAddress(t *testing.T) {
	valid := "0x" + "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"
	if !IsHexAddress(valid) {
		t.Errorf("IsHexAddress(%q) = false", valid)
	}
	if IsHexAddress("0x1234") {
		t.Error("IsHexAddress accepted a short string")
	}
}

func TestSignerWrapsAddress(t *testing.T) {
	s := BytesToSigner([]byte{7})
	if got := s.Address(); got != BytesToAddress([]byte{7}) {
		t.Errorf("signer address %s, want wrapped address", got)
	}
}

func TestFromHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"0x0102", []byte{1, 2}},
		{"0102", []byte{1, 2}},
		{"0x1", []byte{1}}, // odd length gets zero padded
	}
	for _, tt := range tests {
		got := FromHex(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("FromHex(%q) = %x, want %x", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("FromHex(%q) = %x, want %x", tt.in, got, tt.want)
				break
			}
		}
	}
}
