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
	"sync"
	"unsafe"

	"github.com/solana-labs/move/rtype"
)

// Field is one step of a struct walk: the field's descriptor, a pointer to
// the field's storage inside the walked value and the field's display name.
type Field struct {
	Type *rtype.Type
	Ref  *rtype.AnyValue
	Name string
}

// FieldWalker yields the declared fields of one struct value in declaration
// order. A walker is single-pass; a fresh walk over the same value is started
// by calling WalkFields again. The zero value is not usable.
//
// Caller contract: base genuinely addresses storage of the layout's declared
// total size and the layout was computed for that same struct type. The
// walker verifies neither.
type FieldWalker struct {
	typ  *rtype.Type
	base unsafe.Pointer
	next int
	cur  Field
}

// WalkFields starts a read-only walk over the fields of the struct value at
// ref. The returned field pointers alias ref's storage and must not be
// written through; use AcquireMut and WalkFieldsMut for mutation.
func WalkFields(t *rtype.Type, ref *rtype.AnyValue) FieldWalker {
	return FieldWalker{typ: t, base: unsafe.Pointer(ref)}
}

// Next advances to the following field, reporting whether one exists.
func (w *FieldWalker) Next() bool {
	if w.next >= w.typ.NumField() {
		return false
	}
	f := w.typ.Field(w.next)
	w.cur = Field{Type: f.Type, Ref: fieldRef(w.base, f.Offset), Name: f.Name}
	w.next++
	return true
}

// Field returns the triple Next advanced to.
func (w *FieldWalker) Field() Field { return w.cur }

// fieldRef advances base by a declared field offset. Offsets are stored as
// uint64 in descriptors; anything that does not fit signed pointer arithmetic
// is a corrupted layout and traps rather than wraps.
func fieldRef(base unsafe.Pointer, offset uint64) *rtype.AnyValue {
	if offset > math.MaxInt {
		fatalf("WalkFields", "field offset %d overflows pointer arithmetic", offset)
	}
	return (*rtype.AnyValue)(unsafe.Add(base, int(offset)))
}

//------ exclusive-access walk ---------------------------------------------------------------------

// mutHeld tracks the base pointers currently under an exclusive-access
// token. Acquiring a second token for the same base is a caller aliasing bug.
var (
	mutMu   sync.Mutex
	mutHeld = make(map[unsafe.Pointer]bool)
)

// MutRef is the exclusive-access token for one struct value. Holding it
// asserts that no other read or write traversal of the same memory is active
// until Release. The runtime enforces mutual exclusion between tokens for
// the same base pointer; keeping read walks away from a held value remains
// the caller's discipline.
type MutRef struct {
	ref      *rtype.AnyValue
	released bool
}

// AcquireMut takes the exclusive-access token for the value at ref. It
// panics if a token for the same base pointer is already held.
func AcquireMut(ref *rtype.AnyValue) *MutRef {
	p := unsafe.Pointer(ref)
	mutMu.Lock()
	defer mutMu.Unlock()
	if mutHeld[p] {
		fatalf("AcquireMut", "value %p already held for mutation", p)
	}
	mutHeld[p] = true
	return &MutRef{ref: ref}
}

// Release returns the token. Every acquisition must be released on all exit
// paths before any other walk over the same memory may begin; releasing
// twice panics.
func (m *MutRef) Release() {
	mutMu.Lock()
	defer mutMu.Unlock()
	if m.released {
		fatalf("Release", "exclusive token released twice")
	}
	m.released = true
	delete(mutHeld, unsafe.Pointer(m.ref))
}

// MutFieldWalker is the exclusive-access counterpart of FieldWalker: same
// triples, same order, but the field pointers may be stored through.
type MutFieldWalker struct {
	typ  *rtype.Type
	mut  *MutRef
	next int
	cur  Field
}

// WalkFieldsMut starts a mutable walk over the value the token was acquired
// for. Walking after Release panics.
func WalkFieldsMut(t *rtype.Type, m *MutRef) MutFieldWalker {
	return MutFieldWalker{typ: t, mut: m}
}

// Next advances to the following field, reporting whether one exists.
func (w *MutFieldWalker) Next() bool {
	if w.mut.released {
		fatalf("WalkFieldsMut", "walk over released exclusive token")
	}
	if w.next >= w.typ.NumField() {
		return false
	}
	f := w.typ.Field(w.next)
	w.cur = Field{Type: f.Type, Ref: fieldRef(unsafe.Pointer(w.mut.ref), f.Offset), Name: f.Name}
	w.next++
	return true
}

// Field returns the triple Next advanced to.
func (w *MutFieldWalker) Field() Field { return w.cur }
