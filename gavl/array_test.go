/*
NAME
  array_test.go

DESCRIPTION
  array_test.go provides testing to validate utilities found in array.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import (
	"testing"

	"github.com/matryer/is"
)

func intVal(n int32) Value {
	var v Value
	v.SetInt(n)
	return v
}

func intArray(vs ...int32) *Array {
	a := NewArray()
	for _, n := range vs {
		a.Push(intVal(n))
	}
	return a
}

func arrayInts(a *Array) []int32 {
	out := make([]int32, a.Len())
	for i := range out {
		v, _ := a.Get(i)
		out[i], _ = v.GetInt()
	}
	return out
}

func TestArraySpliceMiddle(t *testing.T) {
	is := is.New(t)
	a := intArray(1, 2, 3, 4) // A B C D
	a.SpliceVal(1, 2, intVal(99))
	is.Equal(arrayInts(a), []int32{1, 99, 4})
}

func TestArraySpliceAppendOnNegativeIdx(t *testing.T) {
	is := is.New(t)
	a := intArray(1, 2, 3)
	a.SpliceVal(-1, 0, intVal(99))
	is.Equal(arrayInts(a), []int32{1, 2, 3, 99})
}

func TestArrayPushPopShiftUnshift(t *testing.T) {
	is := is.New(t)
	a := intArray(1, 2, 3)

	a.Push(intVal(4))
	is.Equal(arrayInts(a), []int32{1, 2, 3, 4})

	v, ok := a.Pop()
	is.True(ok)
	n, _ := v.GetInt()
	is.Equal(n, int32(4))
	is.Equal(arrayInts(a), []int32{1, 2, 3})

	a.Unshift(intVal(0))
	is.Equal(arrayInts(a), []int32{0, 1, 2, 3})

	v, ok = a.Shift()
	is.True(ok)
	n, _ = v.GetInt()
	is.Equal(n, int32(0))
	is.Equal(arrayInts(a), []int32{1, 2, 3})
}

func TestArrayCopyIsDeep(t *testing.T) {
	is := is.New(t)
	a := intArray(1, 2, 3)
	cp := a.Copy()
	cp.Push(intVal(4))
	is.Equal(a.Len(), 3)
	is.Equal(cp.Len(), 4)
}

func TestArraySort(t *testing.T) {
	is := is.New(t)
	a := intArray(3, 1, 2)
	a.Sort(func(x, y *Value) int { return x.Compare(y) })
	is.Equal(arrayInts(a), []int32{1, 2, 3})
}

func TestArrayCompareOrderSensitive(t *testing.T) {
	is := is.New(t)
	a := intArray(1, 2)
	b := intArray(2, 1)
	is.True(a.Compare(b) != 0)
	is.Equal(a.Compare(a.Copy()), 0)
}
