/*
NAME
  chunk_test.go

DESCRIPTION
  chunk_test.go provides testing to validate utilities found in chunk.go,
  including the "chunk length unknown" case: writing to a non-seekable
  io leaves the on-disk length field 0, and the reader still parses the
  payload correctly when told to read to EOF.

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
	stdio "io"
	"path/filepath"
	"testing"

	gio "github.com/ausocean/gavf/io"
)

func TestChunkKnownLengthRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.bin")
	f, err := gio.FromFilename(path, true)
	if err != nil {
		t.Fatalf("FromFilename: %v", err)
	}

	cw, err := StartChunk(f, TagPHDR)
	if err != nil {
		t.Fatalf("StartChunk: %v", err)
	}
	payload := []byte("hello chunk")
	if _, err := cw.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := cw.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	f.Close()

	rf, err := gio.FromFilename(path, false)
	if err != nil {
		t.Fatalf("re-opening: %v", err)
	}
	defer rf.Close()

	tag, length, err := readChunkHeader(rf)
	if err != nil {
		t.Fatalf("readChunkHeader: %v", err)
	}
	if tag != TagPHDR {
		t.Errorf("tag = %q, want %q", tag, TagPHDR)
	}
	if length != int64(len(payload)) {
		t.Errorf("length = %d, want %d (patched by seekable Finish)", length, len(payload))
	}
}

func TestChunkUnknownLengthOnNonSeekable(t *testing.T) {
	var buf bytes.Buffer

	cw, err := StartChunk(&buf, TagPKTS)
	if err != nil {
		t.Fatalf("StartChunk: %v", err)
	}
	payload := []byte("streamed to eof")
	if _, err := cw.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := cw.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	tag, length, err := readChunkHeader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("readChunkHeader: %v", err)
	}
	if tag != TagPKTS {
		t.Errorf("tag = %q, want %q", tag, TagPKTS)
	}
	if length != 0 {
		t.Errorf("length = %d, want 0 (unknown/to-EOF)", length)
	}

	_, rest, known, err := OpenChunk(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenChunk: %v", err)
	}
	if known {
		t.Error("OpenChunk reported known length for an unknown-length chunk")
	}
	got, err := stdio.ReadAll(rest)
	if err != nil {
		t.Fatalf("reading unknown-length payload: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}
