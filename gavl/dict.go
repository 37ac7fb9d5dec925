/*
NAME
  dict.go

DESCRIPTION
  Dictionary is an ordered key->Value map: an appendable sequence of
  (name, Value) entries that preserves insertion order on iteration.
  Lookups are linear, which is deliberate: dictionaries in
  this domain are small and order is part of the contract, so a hash map
  would have to carry a parallel order slice anyway.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import (
	"strings"
)

type dictEntry struct {
	name string
	val  Value
}

// Dictionary is an ordered sequence of (name, Value) entries. Names are
// arbitrary UTF-8 strings, case-sensitive by default.
type Dictionary struct {
	entries []dictEntry
}

// NewDictionary returns a new, empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{}
}

// NumEntries returns the number of entries in d.
func (d *Dictionary) NumEntries() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Dictionary) indexOf(name string) int {
	for i := range d.entries {
		if d.entries[i].name == name {
			return i
		}
	}
	return -1
}

func (d *Dictionary) indexOfI(name string) int {
	for i := range d.entries {
		if strings.EqualFold(d.entries[i].name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value stored under name, case-sensitively.
func (d *Dictionary) Get(name string) (*Value, bool) {
	if i := d.indexOf(name); i >= 0 {
		return &d.entries[i].val, true
	}
	return nil, false
}

// GetI returns the value stored under name, matched case-insensitively.
// Preserved as a distinct accessor per the source's transitional use of
// case-insensitive lookups on keys that are otherwise set exactly.
func (d *Dictionary) GetI(name string) (*Value, bool) {
	if i := d.indexOfI(name); i >= 0 {
		return &d.entries[i].val, true
	}
	return nil, false
}

// GetNC returns a mutable pointer to the value stored under name.
func (d *Dictionary) GetNC(name string) (*Value, bool) {
	return d.Get(name)
}

// Names returns the entry names in insertion order.
func (d *Dictionary) Names() []string {
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.name
	}
	return names
}

// Set replaces the entry named name if present, otherwise appends a new
// entry. Setting the same name repeatedly never creates duplicates.
func (d *Dictionary) Set(name string, v Value) {
	if i := d.indexOf(name); i >= 0 {
		d.entries[i].val = v
		return
	}
	d.entries = append(d.entries, dictEntry{name: name, val: v})
}

// SetNocopy is equivalent to Set but documents that v's composite
// contents (if any) are moved in, not copied, at the call site's
// discretion; Value composites in Go are reference types internally so
// this is identical to Set but kept as a distinct name for parity with
// the source API.
func (d *Dictionary) SetNocopy(name string, v Value) {
	d.Set(name, v)
}

// Append implements the multi-value convention: if name is absent, it
// behaves like Set; if present, the existing value is promoted to an
// array (if not already one) and v is pushed onto it.
func (d *Dictionary) Append(name string, v Value) {
	if i := d.indexOf(name); i >= 0 {
		d.entries[i].val.Append(v)
		return
	}
	d.Set(name, v)
}

// Delete removes the entry named name, if present.
func (d *Dictionary) Delete(name string) {
	if i := d.indexOf(name); i >= 0 {
		d.entries = append(d.entries[:i], d.entries[i+1:]...)
	}
}

// DeleteFields removes each entry in names, if present.
func (d *Dictionary) DeleteFields(names []string) {
	for _, n := range names {
		d.Delete(n)
	}
}

// IsLast reports whether the named entry is the final one in insertion
// order. Used by streaming visitors that need to know when to stop
// looking for a delimiter after the last field.
func (d *Dictionary) IsLast(name string) bool {
	if len(d.entries) == 0 {
		return false
	}
	return d.entries[len(d.entries)-1].name == name
}

// GetItem accesses element idx of the (possibly scalar-or-array) value
// stored under name.
func (d *Dictionary) GetItem(name string, idx int) (*Value, bool) {
	v, ok := d.Get(name)
	if !ok {
		return nil, false
	}
	return v.Item(idx)
}

// --- Typed convenience accessors ---

func (d *Dictionary) GetString(name string) (string, bool) {
	v, ok := d.Get(name)
	if !ok {
		return "", false
	}
	return v.GetString()
}

// GetStringI is the case-insensitive counterpart of GetString.
func (d *Dictionary) GetStringI(name string) (string, bool) {
	v, ok := d.GetI(name)
	if !ok {
		return "", false
	}
	return v.GetString()
}

func (d *Dictionary) GetInt(name string) (int32, bool) {
	v, ok := d.Get(name)
	if !ok {
		return 0, false
	}
	return v.GetInt()
}

func (d *Dictionary) GetLong(name string) (int64, bool) {
	v, ok := d.Get(name)
	if !ok {
		return 0, false
	}
	return v.GetLong()
}

func (d *Dictionary) GetFloat(name string) (float64, bool) {
	v, ok := d.Get(name)
	if !ok {
		return 0, false
	}
	return v.GetFloat()
}

func (d *Dictionary) GetDictionary(name string) (*Dictionary, bool) {
	v, ok := d.Get(name)
	if !ok {
		return nil, false
	}
	return v.GetDictionary()
}

// GetDictionaryCreate returns the dictionary stored under name, inserting
// a new empty one if absent (or if present but not a dictionary).
func (d *Dictionary) GetDictionaryCreate(name string) *Dictionary {
	if sub, ok := d.GetDictionary(name); ok {
		return sub
	}
	sub := NewDictionary()
	var v Value
	v.SetDictionary(sub)
	d.Set(name, v)
	return sub
}

func (d *Dictionary) GetArray(name string) (*Array, bool) {
	v, ok := d.Get(name)
	if !ok {
		return nil, false
	}
	return v.GetArray()
}

// GetArrayCreate returns the array stored under name, inserting a new
// empty one if absent.
func (d *Dictionary) GetArrayCreate(name string) *Array {
	if a, ok := d.GetArray(name); ok {
		return a
	}
	a := NewArray()
	var v Value
	v.SetArray(a)
	d.Set(name, v)
	return a
}

func (d *Dictionary) GetBinary(name string) ([]byte, bool) {
	v, ok := d.Get(name)
	if !ok {
		return nil, false
	}
	return v.GetBinary()
}

func (d *Dictionary) GetAudioFormat(name string) (*AudioFormat, bool) {
	v, ok := d.Get(name)
	if !ok {
		return nil, false
	}
	return v.GetAudioFormat()
}

func (d *Dictionary) GetVideoFormat(name string) (*VideoFormat, bool) {
	v, ok := d.Get(name)
	if !ok {
		return nil, false
	}
	return v.GetVideoFormat()
}

// SetString, SetInt, SetLong, SetFloat, SetDictionary, SetArray and
// SetBinary are convenience one-liners over Set + the Value setter.

func (d *Dictionary) SetString(name, s string) {
	var v Value
	v.SetString(s)
	d.Set(name, v)
}

func (d *Dictionary) SetInt(name string, i int32) {
	var v Value
	v.SetInt(i)
	d.Set(name, v)
}

func (d *Dictionary) SetLong(name string, l int64) {
	var v Value
	v.SetLong(l)
	d.Set(name, v)
}

func (d *Dictionary) SetFloat(name string, f float64) {
	var v Value
	v.SetFloat(f)
	d.Set(name, v)
}

func (d *Dictionary) SetDictionaryField(name string, sub *Dictionary) {
	var v Value
	v.SetDictionary(sub)
	d.Set(name, v)
}

func (d *Dictionary) SetArrayField(name string, a *Array) {
	var v Value
	v.SetArray(a)
	d.Set(name, v)
}

func (d *Dictionary) SetBinary(name string, b []byte) {
	var v Value
	v.SetBinary(b)
	d.Set(name, v)
}

// --- Merge / Update / Foreach / Compare ---

// Merge writes into dst the union of src1 and src2, with src1's fields
// taking priority; fields only present in src2 are added.
func Merge(dst, src1, src2 *Dictionary) {
	for _, e := range src2.entries {
		dst.Set(e.name, e.val.Copy())
	}
	for _, e := range src1.entries {
		dst.Set(e.name, e.val.Copy())
	}
}

// Merge2 merges src into dst with dst's existing fields taking priority;
// equivalent to Merge(dst, dst, src).
func Merge2(dst, src *Dictionary) {
	for _, e := range src.entries {
		if _, exists := dst.Get(e.name); !exists {
			dst.Set(e.name, e.val.Copy())
		}
	}
}

// UpdateFields overwrites dst's fields with src's, field by field; src
// wins on conflicts.
func UpdateFields(dst, src *Dictionary) {
	for _, e := range src.entries {
		dst.Set(e.name, e.val.Copy())
	}
}

// Foreach calls fn for every entry in insertion order.
func (d *Dictionary) Foreach(fn func(name string, v *Value)) {
	for i := range d.entries {
		fn(d.entries[i].name, &d.entries[i].val)
	}
}

// Copy returns a deep copy of d.
func (d *Dictionary) Copy() *Dictionary {
	if d == nil {
		return nil
	}
	nd := &Dictionary{entries: make([]dictEntry, len(d.entries))}
	for i, e := range d.entries {
		nd.entries[i] = dictEntry{name: e.name, val: e.val.Copy()}
	}
	return nd
}

// Compare performs a recursive structural comparison. Entry order is
// part of the contract: dictionaries with the same fields in a
// different order compare unequal.
func (d *Dictionary) Compare(other *Dictionary) int {
	if d == nil && other == nil {
		return 0
	}
	if d == nil || other == nil {
		return 1
	}
	if len(d.entries) != len(other.entries) {
		return 1
	}
	for i := range d.entries {
		if d.entries[i].name != other.entries[i].name {
			return 1
		}
		if r := d.entries[i].val.Compare(&other.entries[i].val); r != 0 {
			return r
		}
	}
	return 0
}

// Dump renders d as an indented, human-readable tree.
func (d *Dictionary) Dump(indent int) string {
	var b strings.Builder
	pad := strings.Repeat("  ", indent)
	b.WriteString(pad)
	b.WriteString("{\n")
	for _, e := range d.entries {
		b.WriteString(strings.Repeat("  ", indent+1))
		b.WriteString(e.name)
		b.WriteString(": ")
		b.WriteString(strings.TrimLeft(e.val.Dump(indent+1), " "))
		b.WriteString("\n")
	}
	b.WriteString(pad)
	b.WriteString("}")
	return b.String()
}
