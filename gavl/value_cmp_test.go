/*
NAME
  value_cmp_test.go

DESCRIPTION
  value_cmp_test.go validates Value and Dictionary deep-copy independence
  using go-cmp, with a Comparer delegating to Value/Dictionary's own
  Compare methods since both types carry unexported fields.

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

	"github.com/google/go-cmp/cmp"
)

var valueCmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Value) bool { return a.Compare(&b) == 0 }),
	cmp.Comparer(func(a, b Dictionary) bool { return a.Compare(&b) == 0 }),
}

func TestValueCopyEqualsOriginalByCmp(t *testing.T) {
	var v Value
	v.SetString("hello")

	cpy := v.Copy()
	if diff := cmp.Diff(v, cpy, valueCmpOpts); diff != "" {
		t.Errorf("copy differs from original (-want +got):\n%s", diff)
	}
}

func TestDictionaryCopyEqualsOriginalByCmp(t *testing.T) {
	d := NewDictionary()
	d.SetInt("width", 1920)
	d.SetInt("height", 1080)

	nested := NewDictionary()
	nested.SetString("codec", "h264")
	var nv Value
	nv.SetDictionary(nested)
	d.Set("video", nv)

	cpy := d.Copy()
	if diff := cmp.Diff(*d, *cpy, valueCmpOpts); diff != "" {
		t.Errorf("copy differs from original (-want +got):\n%s", diff)
	}

	// Mutating the copy's nested dictionary must not affect the original.
	nv2, ok := cpy.Get("video")
	if !ok {
		t.Fatal("video key missing from copy")
	}
	nestedCpy, ok := nv2.GetDictionary()
	if !ok {
		t.Fatal("video value is not a dictionary")
	}
	nestedCpy.SetString("codec", "h265")

	origNV, ok := d.Get("video")
	if !ok {
		t.Fatal("video key missing from original")
	}
	origNested, ok := origNV.GetDictionary()
	if !ok {
		t.Fatal("original video value is not a dictionary")
	}
	if diff := cmp.Diff(*d, *cpy, valueCmpOpts); diff == "" {
		t.Fatal("expected copy to diverge from original after mutating nested dictionary")
	}
	if codec, _ := origNested.GetString("codec"); codec != "h264" {
		t.Errorf("original nested codec = %q, want h264 (mutation leaked)", codec)
	}
}
