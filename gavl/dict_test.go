/*
NAME
  dict_test.go

DESCRIPTION
  dict_test.go provides testing to validate utilities found in dict.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "testing"

func TestDictionaryOrderPreservedOnReplace(t *testing.T) {
	d := NewDictionary()
	d.SetInt("a", 1)
	d.SetInt("b", 2)
	d.SetInt("a", 3)

	names := d.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}
	a, _ := d.GetInt("a")
	b, _ := d.GetInt("b")
	if a != 3 || b != 2 {
		t.Errorf("a=%d b=%d, want a=3 b=2", a, b)
	}
}

func TestDictionaryAppendPromotesToArray(t *testing.T) {
	d := NewDictionary()
	var one, two, three Value
	one.SetInt(1)
	two.SetInt(2)
	three.SetInt(3)

	d.Append("x", one)
	v, _ := d.Get("x")
	if v.Type() != TypeInt32 {
		t.Fatalf("after one append, Type() = %v, want int32", v.Type())
	}

	d.Append("x", two)
	v, _ = d.Get("x")
	if v.Type() != TypeArray || v.NumItems() != 2 {
		t.Fatalf("after two appends, Type()=%v NumItems()=%d, want array of 2", v.Type(), v.NumItems())
	}

	d.Append("x", three)
	v, _ = d.Get("x")
	if v.NumItems() != 3 {
		t.Fatalf("after three appends, NumItems() = %d, want 3", v.NumItems())
	}
	for i, want := range []int32{1, 2, 3} {
		item, _ := v.Item(i)
		got, _ := item.GetInt()
		if got != want {
			t.Errorf("item %d = %d, want %d", i, got, want)
		}
	}
}

func TestDictionaryCaseInsensitiveAccessor(t *testing.T) {
	d := NewDictionary()
	d.SetString("Label", "hello")
	if _, ok := d.Get("label"); ok {
		t.Error("case-sensitive Get matched different case")
	}
	s, ok := d.GetStringI("label")
	if !ok || s != "hello" {
		t.Errorf("GetStringI(\"label\") = %q, %v, want %q, true", s, ok, "hello")
	}
}

func TestDictionaryMergePriority(t *testing.T) {
	src1 := NewDictionary()
	src1.SetInt("a", 1)
	src2 := NewDictionary()
	src2.SetInt("a", 2)
	src2.SetInt("b", 3)

	dst := NewDictionary()
	Merge(dst, src1, src2)

	a, _ := dst.GetInt("a")
	b, _ := dst.GetInt("b")
	if a != 1 {
		t.Errorf("a = %d, want 1 (src1 priority)", a)
	}
	if b != 3 {
		t.Errorf("b = %d, want 3 (only in src2)", b)
	}
}

func TestDictionaryCompareOrderSensitive(t *testing.T) {
	d1 := NewDictionary()
	d1.SetInt("a", 1)
	d1.SetInt("b", 2)

	d2 := NewDictionary()
	d2.SetInt("b", 2)
	d2.SetInt("a", 1)

	if d1.Compare(d2) == 0 {
		t.Error("dictionaries with same fields in different order compared equal")
	}

	d3 := d1.Copy()
	if d1.Compare(d3) != 0 {
		t.Error("dictionary did not compare equal to its own deep copy")
	}
}

func TestDictionaryIsLast(t *testing.T) {
	d := NewDictionary()
	d.SetInt("a", 1)
	d.SetInt("b", 2)
	if d.IsLast("a") {
		t.Error("IsLast(a) true, want false")
	}
	if !d.IsLast("b") {
		t.Error("IsLast(b) false, want true")
	}
}

func TestDictionaryDeleteFields(t *testing.T) {
	d := NewDictionary()
	d.SetInt("a", 1)
	d.SetInt("b", 2)
	d.SetInt("c", 3)
	d.DeleteFields([]string{"a", "c"})
	if len(d.Names()) != 1 || d.Names()[0] != "b" {
		t.Errorf("Names() after delete = %v, want [b]", d.Names())
	}
}
