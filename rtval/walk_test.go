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
	"math"
	"testing"
	"unsafe"

	"github.com/solana-labs/move/rtype"
)

func TestWalkFieldsCompleteness(t *testing.T) {
	typ := pointType()
	p := point{x: 3, y: 4}
	base := unsafe.Pointer(&p)

	w := WalkFields(typ, refOf(base))
	var got []Field
	for w.Next() {
		got = append(got, w.Field())
	}
	want := []struct {
		name   string
		offset uintptr
	}{
		{"x", 0},
		{"y", 8},
	}
	if len(got) != len(want) {
		t.Fatalf("walk yielded %d fields, want %d", len(got), len(want))
	}
	for i, f := range got {
		if f.Name != want[i].name {
			t.Errorf("field %d: name %q, want %q", i, f.Name, want[i].name)
		}
		if f.Type != rtype.U64Type {
			t.Errorf("field %d: type %s, want u64", i, f.Type)
		}
		if wantPtr := unsafe.Add(base, want[i].offset); unsafe.Pointer(f.Ref) != wantPtr {
			t.Errorf("field %d: pointer %p, want base+%d", i, f.Ref, want[i].offset)
		}
	}
}

func TestWalkFieldsRestartable(t *testing.T) {
	typ := pointType()
	p := point{x: 1, y: 2}
	ref := refOf(unsafe.Pointer(&p))

	for pass := 0; pass < 2; pass++ {
		w := WalkFields(typ, ref)
		n := 0
		for w.Next() {
			n++
		}
		if n != 2 {
			t.Fatalf("pass %d: walk yielded %d fields, want 2", pass, n)
		}
	}
}

func TestWalkFieldsEmptyStruct(t *testing.T) {
	typ := rtype.NewStruct("Unit", nil, 0, 1)
	var b byte
	w := WalkFields(typ, refOf(unsafe.Pointer(&b)))
	if w.Next() {
		t.Error("walk over empty struct yielded a field")
	}
}

func TestWalkFieldsMutMatchesImmutable(t *testing.T) {
	typ := pointType()
	p := point{x: 7, y: 9}
	ref := refOf(unsafe.Pointer(&p))

	ro := WalkFields(typ, ref)
	mut := AcquireMut(ref)
	defer mut.Release()
	rw := WalkFieldsMut(typ, mut)

	for ro.Next() {
		if !rw.Next() {
			t.Fatal("mutable walk ended before immutable walk")
		}
		fr, fw := ro.Field(), rw.Field()
		if fr.Name != fw.Name || fr.Type != fw.Type || fr.Ref != fw.Ref {
			t.Errorf("walk mismatch: immutable %+v, mutable %+v", fr, fw)
		}
	}
	if rw.Next() {
		t.Error("mutable walk outlived immutable walk")
	}
}

func TestWalkFieldsMutStoresThrough(t *testing.T) {
	typ := pointType()
	p := point{x: 1, y: 2}
	ref := refOf(unsafe.Pointer(&p))

	mut := AcquireMut(ref)
	w := WalkFieldsMut(typ, mut)
	for w.Next() {
		f := w.Field()
		if f.Name == "y" {
			*(*uint64)(unsafe.Pointer(f.Ref)) = 42
		}
	}
	mut.Release()

	if p.y != 42 {
		t.Errorf("y = %d after mutable walk, want 42", p.y)
	}
	if p.x != 1 {
		t.Errorf("x = %d after mutable walk, want 1 untouched", p.x)
	}
}

func TestAcquireMutExclusive(t *testing.T) {
	p := point{}
	ref := refOf(unsafe.Pointer(&p))

	mut := AcquireMut(ref)
	assertFatal(t, func() { AcquireMut(ref) })
	mut.Release()

	// Released values can be re-acquired.
	mut = AcquireMut(ref)
	mut.Release()
}

func TestReleaseTwiceFatal(t *testing.T) {
	p := point{}
	mut := AcquireMut(refOf(unsafe.Pointer(&p)))
	mut.Release()
	assertFatal(t, func() { mut.Release() })
}

func TestWalkAfterReleaseFatal(t *testing.T) {
	typ := pointType()
	p := point{}
	mut := AcquireMut(refOf(unsafe.Pointer(&p)))
	w := WalkFieldsMut(typ, mut)
	mut.Release()
	assertFatal(t, func() { w.Next() })
}

func TestWalkOffsetOverflowFatal(t *testing.T) {
	// NewStruct performs no validation, so a corrupted offset can be staged.
	typ := rtype.NewStruct("Broken", []rtype.StructField{
		{Type: rtype.U8Type, Offset: math.MaxUint64, Name: "f"},
	}, 1, 1)
	var b byte
	w := WalkFields(typ, refOf(unsafe.Pointer(&b)))
	assertFatal(t, func() { w.Next() })
}
