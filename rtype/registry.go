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

import (
	"sort"

	log "github.com/inconshreveable/log15"
	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"
)

// Registry is the type-universe builder: it validates struct layouts before
// they become descriptors and interns every descriptor it hands out, so that
// repeated requests for the same type return the same pointer. A registry is
// safe for concurrent use; the descriptors it produces are immutable and may
// be shared freely without further synchronization.
//
// The traversal core itself never validates descriptors. The registry is the
// boundary where malformed layouts are still ordinary, recoverable errors;
// once a descriptor leaves the registry the caller contract of the rtval
// package applies.
type Registry struct {
	types cmap.ConcurrentMap // type name -> *Type
	log   log.Logger
}

// NewRegistry creates an empty type universe with the scalar singletons
// pre-registered under their kind names.
func NewRegistry() *Registry {
	r := &Registry{
		types: cmap.New(),
		log:   log.New("module", "rtype"),
	}
	for _, t := range []*Type{
		BoolType, U8Type, U16Type, U32Type, U64Type,
		U128Type, U256Type, AddressType, SignerType,
	} {
		r.types.Set(t.name, t)
	}
	return r
}

// Lookup returns the registered descriptor with the given name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	v, ok := r.types.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Type), true
}

// MustLookup is like Lookup but panics if the name is not registered.
func (r *Registry) MustLookup(name string) *Type {
	t, ok := r.Lookup(name)
	if !ok {
		panic("rtype: unknown type " + name)
	}
	return t
}

// Types returns every registered descriptor, sorted by name.
func (r *Registry) Types() []*Type {
	items := r.types.Items()
	types := make([]*Type, 0, len(items))
	for _, v := range items {
		types = append(types, v.(*Type))
	}
	sort.Slice(types, func(i, j int) bool { return types[i].name < types[j].name })
	return types
}

// VectorOf returns the interned vector descriptor for the given element type.
func (r *Registry) VectorOf(elem *Type) *Type {
	return r.intern(VectorOf(elem))
}

// ReferenceTo returns the interned reference descriptor for the given target.
func (r *Registry) ReferenceTo(inner *Type) *Type {
	return r.intern(ReferenceTo(inner))
}

func (r *Registry) intern(t *Type) *Type {
	if r.types.SetIfAbsent(t.name, t) {
		derivedInternMeter.Mark(1)
		return t
	}
	v, _ := r.types.Get(t.name)
	return v.(*Type)
}

// DefineStruct validates an explicit struct layout and registers it. It is
// the producer side of the contract the traversal core assumes: any layout
// that passes here can be walked without further checks.
func (r *Registry) DefineStruct(name string, fields []StructField, size, align uint64) (*Type, error) {
	if err := validateLayout(name, fields, size, align); err != nil {
		defineErrorMeter.Mark(1)
		r.log.Warn("Rejected struct layout", "type", name, "err", err)
		return nil, err
	}
	t := NewStruct(name, fields, size, align)
	if !r.types.SetIfAbsent(name, t) {
		defineErrorMeter.Mark(1)
		return nil, errors.Errorf("type %q already defined", name)
	}
	structDefineMeter.Mark(1)
	r.log.Debug("Defined struct type", "type", name, "fields", len(fields), "size", size, "align", align)
	return t, nil
}

// DefineStructOf computes a layout for the named fields using the host
// platform's rules (each field aligned up to its own alignment, total size
// rounded up to the struct alignment) and registers the result.
func (r *Registry) DefineStructOf(name string, names []string, types []*Type) (*Type, error) {
	if len(names) != len(types) {
		return nil, errors.Errorf("type %q: %d field names for %d field types", name, len(names), len(types))
	}
	var (
		fields = make([]StructField, len(types))
		offset uint64
		align  uint64 = 1
	)
	for i, ft := range types {
		if ft == nil || ft.kind == Invalid {
			defineErrorMeter.Mark(1)
			return nil, errors.Errorf("type %q: field %q has invalid type", name, names[i])
		}
		offset = alignUp(offset, ft.align)
		fields[i] = StructField{Type: ft, Offset: offset, Name: names[i]}
		offset += ft.size
		if ft.align > align {
			align = ft.align
		}
	}
	return r.DefineStruct(name, fields, alignUp(offset, align), align)
}

func alignUp(n, align uint64) uint64 {
	if align == 0 {
		return n
	}
	return (n + align - 1) / align * align
}

// validateLayout checks every invariant the traversal core relies on:
// well-formed field types, no Reference-typed fields, distinct field names,
// aligned non-overlapping offsets and all fields contained within the
// declared total size.
func validateLayout(name string, fields []StructField, size, align uint64) error {
	if name == "" {
		return errors.New("struct type must have a name")
	}
	if align == 0 || align&(align-1) != 0 {
		return errors.Errorf("type %q: alignment %d is not a power of two", name, align)
	}
	if size%align != 0 {
		return errors.Errorf("type %q: size %d is not a multiple of alignment %d", name, size, align)
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return errors.Errorf("type %q: unnamed field", name)
		}
		if seen[f.Name] {
			return errors.Errorf("type %q: duplicate field %q", name, f.Name)
		}
		seen[f.Name] = true
		if f.Type == nil || f.Type.kind == Invalid {
			return errors.Errorf("type %q: field %q has invalid type", name, f.Name)
		}
		// References are top-level-only values in this model. A reference
		// stored inside a struct has no valid traversal semantics, so the
		// universe builder rejects it outright.
		if f.Type.kind == Reference {
			return errors.Errorf("type %q: field %q has reference type %s", name, f.Name, f.Type.name)
		}
		if f.Type.align != 0 && f.Offset%f.Type.align != 0 {
			return errors.Errorf("type %q: field %q offset %d violates alignment %d",
				name, f.Name, f.Offset, f.Type.align)
		}
		if f.Offset+f.Type.size < f.Offset || f.Offset+f.Type.size > size {
			return errors.Errorf("type %q: field %q at offset %d size %d exceeds struct size %d",
				name, f.Name, f.Offset, f.Type.size, size)
		}
	}
	// Overlap check over the offset-sorted field list.
	sorted := make([]StructField, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		if prev.Offset+prev.Type.size > sorted[i].Offset {
			return errors.Errorf("type %q: fields %q and %q overlap", name, prev.Name, sorted[i].Name)
		}
	}
	return nil
}
