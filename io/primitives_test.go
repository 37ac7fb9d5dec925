/*
NAME
  primitives_test.go

DESCRIPTION
  primitives_test.go validates the fixed-width and variable-length
  integer codecs at the boundary values where their encodings change
  shape: the unsigned varint's 7-bit continuation groups and the
  signed varint's zigzag mapping.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package io

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUvarintRoundTrip(t *testing.T) {
	cases := []uint64{
		0, 1,
		1<<7 - 1, 1 << 7, // one continuation byte boundary
		1<<14 - 1, 1 << 14, // two continuation bytes boundary
		1<<21 - 1, 1 << 21,
		1<<35 - 1, 1 << 35,
		1<<63 - 1, 1 << 63,
		^uint64(0), // max uint64
	}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := WriteUvarint(&buf, v); err != nil {
			t.Fatalf("WriteUvarint(%d): %v", v, err)
		}
		got, err := ReadUvarint(&buf)
		if err != nil {
			t.Fatalf("ReadUvarint after WriteUvarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("Uvarint round trip: got %d, want %d", got, v)
		}
		if buf.Len() != 0 {
			t.Errorf("Uvarint(%d): %d trailing bytes after read", v, buf.Len())
		}
	}
}

func TestReadUvarintOverflow(t *testing.T) {
	// 10 continuation bytes with the high bit always set never terminates.
	var buf bytes.Buffer
	for i := 0; i < 10; i++ {
		buf.WriteByte(0xff)
	}
	if _, err := ReadUvarint(&buf); err != ErrVarintOverflow {
		t.Errorf("ReadUvarint on unterminated input: err = %v, want ErrVarintOverflow", err)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	cases := []int64{
		0, 1, -1,
		1<<6 - 1, 1 << 6, -(1 << 6), -(1<<6 + 1),
		1<<62 - 1, -(1 << 62),
		9223372036854775807,  // math.MaxInt64
		-9223372036854775808, // math.MinInt64
	}
	for _, v := range cases {
		var buf bytes.Buffer
		if err := WriteVarint(&buf, v); err != nil {
			t.Fatalf("WriteVarint(%d): %v", v, err)
		}
		got, err := ReadVarint(&buf)
		if err != nil {
			t.Fatalf("ReadVarint after WriteVarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("Varint round trip: got %d, want %d", got, v)
		}
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteUint16LE(&buf, 0xbeef); err != nil {
		t.Fatal(err)
	}
	if err := WriteUint32BE(&buf, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	if err := WriteUint64LE(&buf, 0x0102030405060708); err != nil {
		t.Fatal(err)
	}

	u16, err := ReadUint16LE(&buf)
	if err != nil || u16 != 0xbeef {
		t.Errorf("ReadUint16LE = %x, %v, want beef, nil", u16, err)
	}
	u32, err := ReadUint32BE(&buf)
	if err != nil || u32 != 0xdeadbeef {
		t.Errorf("ReadUint32BE = %x, %v, want deadbeef, nil", u32, err)
	}
	u64, err := ReadUint64LE(&buf)
	if err != nil || u64 != 0x0102030405060708 {
		t.Errorf("ReadUint64LE = %x, %v, want 0102030405060708, nil", u64, err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want32 := float32(3.14159)
	want64 := -2.71828182845904523536

	if err := WriteFloat32(&buf, want32); err != nil {
		t.Fatal(err)
	}
	if err := WriteFloat64(&buf, want64); err != nil {
		t.Fatal(err)
	}
	got32, err := ReadFloat32(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got64, err := ReadFloat64(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want32, got32); diff != "" {
		t.Errorf("float32 round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want64, got64); diff != "" {
		t.Errorf("float64 round trip (-want +got):\n%s", diff)
	}
}

func TestStringBufferRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, "hello, gavf"); err != nil {
		t.Fatal(err)
	}
	if err := WriteBuffer(&buf, []byte{0, 1, 2, 3, 255}); err != nil {
		t.Fatal(err)
	}
	s, err := ReadString(&buf)
	if err != nil || s != "hello, gavf" {
		t.Errorf("ReadString = %q, %v, want %q, nil", s, err, "hello, gavf")
	}
	b, err := ReadBuffer(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0, 1, 2, 3, 255}, b); diff != "" {
		t.Errorf("ReadBuffer (-want +got):\n%s", diff)
	}
}

func TestAlignWriteRead(t *testing.T) {
	for n := int64(0); n < 16; n++ {
		var buf bytes.Buffer
		if err := AlignWrite(&buf, n); err != nil {
			t.Fatalf("AlignWrite(%d): %v", n, err)
		}
		if (n+int64(buf.Len()))%8 != 0 {
			t.Errorf("AlignWrite(%d): %d bytes padded, not 8-aligned", n, buf.Len())
		}
		if err := AlignRead(bytes.NewReader(buf.Bytes()), n); err != nil {
			t.Errorf("AlignRead(%d): %v", n, err)
		}
	}
}
