/*
NAME
  subio_test.go

DESCRIPTION
  subio_test.go validates SubRead's window clamp against a MemReader
  parent, and SubWrite's byte counting against a MemWriter parent.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package io

import (
	stdio "io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubReadClampsToWindow(t *testing.T) {
	data := []byte("0123456789abcdefghij")
	parent := NewMemReader(data)

	sub, err := NewSubRead(parent, 5, 8) // window "56789abc" (5..13)
	if err != nil {
		t.Fatal(err)
	}
	if sub.TotalBytes() != 8 {
		t.Fatalf("TotalBytes() = %d, want 8", sub.TotalBytes())
	}

	got, err := stdio.ReadAll(sub)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if diff := cmp.Diff([]byte("56789abc"), got); diff != "" {
		t.Errorf("SubRead contents (-want +got):\n%s", diff)
	}
	if !sub.EOF() {
		t.Error("SubRead: EOF() false after consuming the whole window")
	}

	// The parent must not have been read past the window.
	rest, err := stdio.ReadAll(parent)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte("defghij"), rest); diff != "" {
		t.Errorf("parent remainder after SubRead (-want +got):\n%s", diff)
	}
}

func TestSubReadShortWindowIsError(t *testing.T) {
	parent := NewMemReader([]byte("short"))
	sub, err := NewSubRead(parent, 0, 100) // window longer than the data
	if err != nil {
		t.Fatal(err)
	}
	if _, err := stdio.ReadAll(sub); err == nil {
		t.Error("ReadAll over a window exceeding the parent's data: want error, got nil")
	}
}

func TestSubReadZeroLengthWindow(t *testing.T) {
	parent := NewMemReader([]byte("anything"))
	sub, err := NewSubRead(parent, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	n, err := sub.Read(make([]byte, 4))
	if n != 0 || err != stdio.EOF {
		t.Errorf("Read on zero-length window = %d, %v, want 0, EOF", n, err)
	}
}

func TestSubReadRequiresSeekableParent(t *testing.T) {
	parent := NewMemWriter() // CanWrite only, not a Seeker
	if _, err := NewSubRead(parent, 0, 1); err == nil {
		t.Error("NewSubRead over a non-seekable parent: want error, got nil")
	}
}

func TestSubWriteCountsBytes(t *testing.T) {
	parent := NewMemWriter()
	sw := NewSubWrite(parent)

	n, err := sw.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v, want 5, nil", n, err)
	}
	n, err = sw.Write([]byte(", world"))
	if err != nil || n != 7 {
		t.Fatalf("Write = %d, %v, want 7, nil", n, err)
	}
	if sw.TotalBytes() != 12 {
		t.Errorf("TotalBytes() = %d, want 12", sw.TotalBytes())
	}
	if diff := cmp.Diff([]byte("hello, world"), parent.MemGetBuf()); diff != "" {
		t.Errorf("parent contents (-want +got):\n%s", diff)
	}
}
