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
	"unsafe"

	"github.com/solana-labs/move/rtype"
)

// Vec is a borrowed, runtime-typed view over a contiguous vector value. It
// owns nothing: the element descriptor and the backing buffer both belong to
// the caller, and traversal is purely read-only.
type Vec struct {
	elem *rtype.Type
	hdr  *rtype.VectorHeader
}

// BorrowVector wraps a vector header with its element descriptor. The caller
// asserts the descriptor matches the actual element layout of the storage
// behind hdr.
func BorrowVector(elem *rtype.Type, hdr *rtype.VectorHeader) Vec {
	return Vec{elem: elem, hdr: hdr}
}

// Len returns the element count.
func (v Vec) Len() uint64 { return v.hdr.Len }

// Elem returns the element descriptor.
func (v Vec) Elem() *rtype.Type { return v.elem }

// Index returns the descriptor/pointer pair for element i, suitable for
// ViewOf. Indexing past the declared length is a contract violation and
// panics rather than reading out of bounds.
func (v Vec) Index(i uint64) (*rtype.Type, *rtype.AnyValue) {
	if i >= v.hdr.Len {
		fatalf("Vec.Index", "index %d out of range for vector of length %d", i, v.hdr.Len)
	}
	stride := v.elem.Size()
	if stride != 0 && i > math.MaxInt/stride {
		fatalf("Vec.Index", "element offset %d*%d overflows pointer arithmetic", i, stride)
	}
	p := unsafe.Add(unsafe.Pointer(v.hdr.Data), int(i*stride))
	return v.elem, (*rtype.AnyValue)(p)
}

// Iter starts a forward iteration over the element pointers. The sequence is
// finite and restartable: calling Iter again yields a fresh pass.
func (v Vec) Iter() VecIter {
	return VecIter{vec: v}
}

// EqualTo reports element-wise structural equality against another handle of
// the same element type: lengths match and every corresponding element pair
// is equal under Equal. Comparing handles whose element descriptors disagree
// in kind is an internal-invariant violation.
func (v Vec) EqualTo(o Vec) bool {
	if v.elem.Kind() != o.elem.Kind() {
		fatalf("Vec.EqualTo", "element kinds %s and %s for vectors declared alike", v.elem.Kind(), o.elem.Kind())
	}
	if v.hdr.Len != o.hdr.Len {
		return false
	}
	for i := uint64(0); i < v.hdr.Len; i++ {
		_, a := v.Index(i)
		_, b := o.Index(i)
		if !Equal(v.elem, a, b) {
			return false
		}
	}
	return true
}

// VecIter is a forward iterator over a Vec. The zero value is not usable.
type VecIter struct {
	vec  Vec
	next uint64
	cur  *rtype.AnyValue
}

// Next advances to the following element, reporting whether one exists.
func (it *VecIter) Next() bool {
	if it.next >= it.vec.Len() {
		return false
	}
	_, it.cur = it.vec.Index(it.next)
	it.next++
	return true
}

// Ref returns the element pointer Next advanced to.
func (it *VecIter) Ref() *rtype.AnyValue { return it.cur }
