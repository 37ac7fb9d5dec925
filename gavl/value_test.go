/*
NAME
  value_test.go

DESCRIPTION
  value_test.go provides testing to validate utilities found in value.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "testing"

func TestValueCopyRoundTrip(t *testing.T) {
	tests := []Value{
		func() (v Value) { v.SetInt(42); return }(),
		func() (v Value) { v.SetLong(1 << 40); return }(),
		func() (v Value) { v.SetFloat(3.25); return }(),
		func() (v Value) { v.SetString("hello"); return }(),
		func() (v Value) { v.SetColorRGB(0.1, 0.2, 0.3); return }(),
		func() (v Value) { v.SetBinary([]byte{1, 2, 3}); return }(),
	}
	for _, v := range tests {
		cp := v.Copy()
		if cp.Compare(&v) != 0 {
			t.Errorf("copy of %v did not compare equal: %v", v.Dump(0), cp.Dump(0))
		}
	}
}

func TestValueAppendPromotesToArray(t *testing.T) {
	var v Value
	v.SetInt(1)
	var two Value
	two.SetInt(2)
	v.Append(two)

	if v.Type() != TypeArray {
		t.Fatalf("Type() = %v, want array", v.Type())
	}
	if v.NumItems() != 2 {
		t.Fatalf("NumItems() = %d, want 2", v.NumItems())
	}
	item0, _ := v.Item(0)
	n, _ := item0.GetInt()
	if n != 1 {
		t.Errorf("item 0 = %d, want 1", n)
	}
}

func TestValueGetItemScalar(t *testing.T) {
	var v Value
	v.SetString("solo")
	if n := v.NumItems(); n != 1 {
		t.Fatalf("NumItems() = %d, want 1", n)
	}
	item, ok := v.Item(0)
	if !ok {
		t.Fatal("Item(0) not ok")
	}
	s, _ := item.GetString()
	if s != "solo" {
		t.Errorf("Item(0) = %q, want %q", s, "solo")
	}
	if _, ok := v.Item(1); ok {
		t.Error("Item(1) on scalar should not be ok")
	}
}

func TestValueUndefinedNumItems(t *testing.T) {
	var v Value
	if n := v.NumItems(); n != 0 {
		t.Errorf("NumItems() on undefined = %d, want 0", n)
	}
}

func TestValueMoveResetsSource(t *testing.T) {
	var src, dst Value
	src.SetString("payload")
	Move(&dst, &src)
	if !src.IsUndefined() {
		t.Error("src not reset to undefined after Move")
	}
	s, _ := dst.GetString()
	if s != "payload" {
		t.Errorf("dst = %q, want %q", s, "payload")
	}
}

func TestValueNumericCrossConversion(t *testing.T) {
	var v Value
	v.SetString("123")
	n, ok := v.GetInt()
	if !ok || n != 123 {
		t.Errorf("GetInt() on numeric string = %d, %v, want 123, true", n, ok)
	}

	var f Value
	f.SetInt(7)
	fl, ok := f.GetFloat()
	if !ok || fl != 7 {
		t.Errorf("GetFloat() on int = %v, %v, want 7, true", fl, ok)
	}

	var bad Value
	bad.SetString("not a number")
	if _, ok := bad.GetInt(); ok {
		t.Error("GetInt() on non-numeric string should fail")
	}
}

func TestValueDeepCopyIndependence(t *testing.T) {
	d := NewDictionary()
	d.SetInt("x", 1)
	var v Value
	v.SetDictionary(d)

	cp := v.Copy()
	cpd, _ := cp.GetDictionary()
	cpd.SetInt("x", 2)

	orig, _ := d.GetInt("x")
	if orig != 1 {
		t.Errorf("original dictionary mutated via copy: x = %d", orig)
	}
}
