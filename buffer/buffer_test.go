/*
NAME
  buffer_test.go

DESCRIPTION
  buffer_test.go provides testing to validate utilities found in buffer.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package buffer

import (
	"bytes"
	"testing"
)

func TestAppendAndBytes(t *testing.T) {
	b := New()
	b.Append([]byte("hello"))
	b.Append([]byte(" world"))
	if got, want := string(b.Bytes()), "hello world"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendPadReservesZeroedTail(t *testing.T) {
	b := New()
	b.AppendPad([]byte{1, 2, 3}, 4)
	if got, want := b.Len(), 3; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if got, want := b.Cap(), 7; got < want {
		t.Errorf("Cap() = %d, want at least %d", got, want)
	}
	// Padding must be zeroed and readable past Len() via the backing array.
	tail := b.buf[b.len : b.len+4]
	if !bytes.Equal(tail, make([]byte, 4)) {
		t.Errorf("padding not zeroed: %v", tail)
	}
}

func TestResetRetainsCapacity(t *testing.T) {
	b := New()
	b.Append(bytes.Repeat([]byte{0xAB}, 64))
	cap0 := b.Cap()
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", b.Len())
	}
	if b.Cap() != cap0 {
		t.Errorf("Cap() after Reset = %d, want %d (capacity retained)", b.Cap(), cap0)
	}
}

func TestCopyIsDeep(t *testing.T) {
	b := New()
	b.Append([]byte("original"))
	c := b.Copy()
	c.Append([]byte("-mutated"))
	if got, want := string(b.Bytes()), "original"; got != want {
		t.Errorf("source mutated: got %q, want %q", got, want)
	}
	if got, want := string(c.Bytes()), "original-mutated"; got != want {
		t.Errorf("copy = %q, want %q", got, want)
	}
}

func TestReadWrite(t *testing.T) {
	b := New()
	n, err := b.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	p := make([]byte, 3)
	n, err = b.Read(p)
	if err != nil || n != 3 || string(p) != "abc" {
		t.Fatalf("Read() = %d, %q, %v", n, p, err)
	}
	n, err = b.Read(p)
	if err != nil || n != 3 || string(p) != "def" {
		t.Fatalf("Read() = %d, %q, %v", n, p, err)
	}
	if _, err := b.Read(p); err == nil {
		t.Fatalf("Read() at EOF returned nil error")
	}
}
