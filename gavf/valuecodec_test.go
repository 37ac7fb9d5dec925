/*
NAME
  valuecodec_test.go

DESCRIPTION
  valuecodec_test.go provides testing to validate utilities found in
  valuecodec.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	"bytes"
	"testing"

	"github.com/ausocean/gavf/gavl"
)

func TestValueRoundTrip(t *testing.T) {
	var sub gavl.Value
	sub.SetString("nested")

	d := gavl.NewDictionary()
	d.SetInt("i", 7)
	d.SetString("s", "hello")
	d.Set("n", sub)

	var v gavl.Value
	v.SetDictionary(d)

	var buf bytes.Buffer
	if err := EncodeValue(&buf, &v); err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	got, err := DecodeValue(&buf)
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if v.Compare(&got) != 0 {
		t.Errorf("round trip mismatch:\nwant %s\ngot  %s", v.Dump(0), got.Dump(0))
	}
}

func TestDictionaryRoundTripPreservesOrder(t *testing.T) {
	d := gavl.NewDictionary()
	d.SetInt("a", 1)
	d.SetInt("b", 2)
	d.SetInt("c", 3)

	var buf bytes.Buffer
	if err := EncodeDictionary(&buf, d); err != nil {
		t.Fatalf("EncodeDictionary: %v", err)
	}
	got, err := DecodeDictionary(&buf)
	if err != nil {
		t.Fatalf("DecodeDictionary: %v", err)
	}
	if names := got.Names(); len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("Names() = %v, want [a b c]", names)
	}
	if d.Compare(got) != 0 {
		t.Error("decoded dictionary does not compare equal to original")
	}
}

func TestArrayValueRoundTrip(t *testing.T) {
	arr := gavl.NewArray()
	var v1, v2 gavl.Value
	v1.SetInt(1)
	v2.SetString("two")
	arr.Push(v1)
	arr.Push(v2)

	var v gavl.Value
	v.SetArray(arr)

	var buf bytes.Buffer
	if err := EncodeValue(&buf, &v); err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	got, err := DecodeValue(&buf)
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if v.Compare(&got) != 0 {
		t.Errorf("array round trip mismatch: want %s got %s", v.Dump(0), got.Dump(0))
	}
}
