/*
NAME
  array.go

DESCRIPTION
  Array is an ordered sequence of Values with O(1) random access and
  amortized O(1) append, underpinned by Go's slice growth. SpliceVal is the
  general mutation primitive; Unshift is built on it, while Push, Pop and
  Shift operate on the slice directly.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "strings"

// Array is an ordered sequence of Values.
type Array struct {
	vals []Value
}

// NewArray returns a new, empty Array.
func NewArray() *Array {
	return &Array{}
}

// Len returns the number of elements in a.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.vals)
}

// Get returns a pointer to the element at idx.
func (a *Array) Get(idx int) (*Value, bool) {
	if idx < 0 || idx >= len(a.vals) {
		return nil, false
	}
	return &a.vals[idx], true
}

// GetNC is an alias for Get, kept for parity with the source API's
// mutable-accessor naming.
func (a *Array) GetNC(idx int) (*Value, bool) { return a.Get(idx) }

// clampSpliceIndex implements the splice index convention: negative or
// oversized idx appends (clamps to len).
func clampSpliceIndex(idx, length int) int {
	if idx < 0 || idx > length {
		return length
	}
	return idx
}

// SpliceVal removes del elements starting at idx (del<0 means "to end")
// and inserts add at that position. Negative or oversized idx appends.
func (a *Array) SpliceVal(idx, del int, add ...Value) {
	n := len(a.vals)
	i := clampSpliceIndex(idx, n)
	if del < 0 || i+del > n {
		del = n - i
	}
	tail := append([]Value(nil), a.vals[i+del:]...)
	a.vals = append(a.vals[:i], add...)
	a.vals = append(a.vals, tail...)
}

// SpliceArray is SpliceVal with the insertion taken from another Array.
func (a *Array) SpliceArray(idx, del int, add *Array) {
	if add == nil {
		a.SpliceVal(idx, del)
		return
	}
	a.SpliceVal(idx, del, add.vals...)
}

// Push appends v to the end of a.
func (a *Array) Push(v Value) {
	a.vals = append(a.vals, v)
}

// PushNocopy is an alias for Push; Go values are not implicitly shared so
// there is no copy to avoid, but the name is kept for source parity.
func (a *Array) PushNocopy(v Value) { a.Push(v) }

// Pop removes and returns the last element of a.
func (a *Array) Pop() (Value, bool) {
	if len(a.vals) == 0 {
		return Value{}, false
	}
	v := a.vals[len(a.vals)-1]
	a.vals = a.vals[:len(a.vals)-1]
	return v, true
}

// Unshift inserts v at the start of a.
func (a *Array) Unshift(v Value) {
	a.SpliceVal(0, 0, v)
}

// Shift removes and returns the first element of a.
func (a *Array) Shift() (Value, bool) {
	if len(a.vals) == 0 {
		return Value{}, false
	}
	v := a.vals[0]
	a.vals = a.vals[1:]
	return v, true
}

// Copy returns a deep copy of a.
func (a *Array) Copy() *Array {
	if a == nil {
		return nil
	}
	return a.CopySub(0, len(a.vals))
}

// CopySub returns a deep copy of num elements of a starting at start.
func (a *Array) CopySub(start, num int) *Array {
	if a == nil {
		return nil
	}
	if start < 0 {
		start = 0
	}
	end := start + num
	if end > len(a.vals) {
		end = len(a.vals)
	}
	if start > end {
		start = end
	}
	na := &Array{vals: make([]Value, end-start)}
	for i := start; i < end; i++ {
		na.vals[i-start] = a.vals[i].Copy()
	}
	return na
}

// MoveEntry relocates the element at src to position dst, shifting the
// elements in between.
func (a *Array) MoveEntry(src, dst int) {
	if src < 0 || src >= len(a.vals) || dst < 0 || dst >= len(a.vals) || src == dst {
		return
	}
	v := a.vals[src]
	a.vals = append(a.vals[:src], a.vals[src+1:]...)
	a.vals = append(a.vals[:dst], append([]Value{v}, a.vals[dst:]...)...)
}

// Sort sorts a in place using cmp, which compares two Values the same way
// Value.Compare does (negative, zero, positive).
func (a *Array) Sort(cmp func(x, y *Value) int) {
	// Insertion sort: arrays in this domain (stream lists, EDL segments)
	// are small, and a stable, allocation-free sort keeps this a direct
	// translation of the source's splice-based primitive.
	for i := 1; i < len(a.vals); i++ {
		for j := i; j > 0 && cmp(&a.vals[j-1], &a.vals[j]) > 0; j-- {
			a.vals[j-1], a.vals[j] = a.vals[j], a.vals[j-1]
		}
	}
}

// Foreach calls fn for every element in order.
func (a *Array) Foreach(fn func(idx int, v *Value)) {
	for i := range a.vals {
		fn(i, &a.vals[i])
	}
}

// Compare performs a recursive, order-sensitive structural comparison.
func (a *Array) Compare(other *Array) int {
	if a == nil && other == nil {
		return 0
	}
	if a == nil || other == nil {
		return 1
	}
	if len(a.vals) != len(other.vals) {
		return 1
	}
	for i := range a.vals {
		if r := a.vals[i].Compare(&other.vals[i]); r != 0 {
			return r
		}
	}
	return 0
}

// Dump renders a as an indented, human-readable tree.
func (a *Array) Dump(indent int) string {
	var b strings.Builder
	pad := strings.Repeat("  ", indent)
	b.WriteString(pad)
	b.WriteString("[\n")
	for _, v := range a.vals {
		b.WriteString(v.Dump(indent + 1))
		b.WriteString("\n")
	}
	b.WriteString(pad)
	b.WriteString("]")
	return b.String()
}
