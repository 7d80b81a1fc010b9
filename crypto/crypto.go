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

// Package crypto implements account key handling for the value runtime:
// ed25519 keys, the pubkey to account-address mapping and keccak hashing
// helpers.
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/solana-labs/move/common"
	"golang.org/x/crypto/sha3"
)

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// PubkeyToAddress derives the account address of an ed25519 public key. The
// address is the raw 32 byte key.
func PubkeyToAddress(pub ed25519.PublicKey) common.Address {
	return common.BytesToAddress(pub)
}

// GenerateKey creates a fresh ed25519 account key.
func GenerateKey() (ed25519.PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	return key, err
}

// HexToKey parses an ed25519 seed in hex syntax into a private key.
func HexToKey(hexkey string) (ed25519.PrivateKey, error) {
	b, err := hex.DecodeString(hexkey)
	if err != nil {
		return nil, errors.New("invalid hex string")
	}
	if len(b) != ed25519.SeedSize {
		return nil, errors.Errorf("seed is %d bytes, want %d", len(b), ed25519.SeedSize)
	}
	return ed25519.NewKeyFromSeed(b), nil
}

// LoadKey loads an ed25519 account key from the given file. The file holds
// the hex-encoded 32 byte seed.
func LoadKey(file string) (ed25519.PrivateKey, error) {
	buf := make([]byte, 2*ed25519.SeedSize)
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	if _, err := io.ReadFull(fd, buf); err != nil {
		return nil, err
	}
	return HexToKey(string(buf))
}

// SaveKey saves an ed25519 account key to the given file with restrictive
// permissions. The key seed is saved hex-encoded.
func SaveKey(file string, key ed25519.PrivateKey) error {
	k := hex.EncodeToString(key.Seed())
	return os.WriteFile(file, []byte(k), 0600)
}
