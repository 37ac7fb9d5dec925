/*
NAME
  chunk.go

DESCRIPTION
  The GAVF chunk: [8-byte ASCII tag][8-byte little-endian signed length]
  [payload]. Length 0 means "unknown, extends to EOF" (written when the
  underlying IO cannot seek back to patch it). ChunkWriter/ChunkReader
  implement the "start chunk, write, finish chunk which patches length"
  idiom as a scoped builder.

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

	gio "github.com/ausocean/gavf/io"
)

// rawPatcher lets a byte-counting writer expose an in-place patch path
// that bypasses its running count. ChunkWriter.Finish uses it to patch
// an already-counted length field without the seek-away-and-back
// throwing the writer's byte count out of sync with the real file
// offset.
type rawPatcher interface {
	PatchAt(off int64, p []byte) error
}

const tagLen = 8

// Top-level chunk tags.
const (
	TagPHDR = "GAVFPHDR"
	TagPEND = "GAVFPEND"
	TagPKTS = "GAVFPKTS"
	TagPIDX = "GAVFPIDX"
	TagFOOT = "GAVFFOOT"
	TagTAIL = "GAVFTAIL"
)

func encodeTag(tag string) [tagLen]byte {
	var b [tagLen]byte
	copy(b[:], tag)
	return b
}

// writeChunkHeader writes the 8-byte tag and the 8-byte length field.
func writeChunkHeader(w stdio.Writer, tag string, length int64) error {
	t := encodeTag(tag)
	if _, err := w.Write(t[:]); err != nil {
		return err
	}
	return gio.WriteInt64LE(w, length)
}

// readChunkHeader reads a tag and length; length 0 means unknown/to-EOF.
func readChunkHeader(r stdio.Reader) (tag string, length int64, err error) {
	var t [tagLen]byte
	if _, err = stdio.ReadFull(r, t[:]); err != nil {
		return "", 0, err
	}
	length, err = gio.ReadInt64LE(r)
	if err != nil {
		return "", 0, err
	}
	return string(bytes.TrimRight(t[:], "\x00")), length, nil
}

// ChunkWriter scopes a single top-level chunk write. Start reserves an
// 8-byte length placeholder (patched by Finish when w is seekable) and
// tracks the payload byte count so a non-seekable w can still be told how
// much it wrote, even though it cannot patch the on-disk length.
type ChunkWriter struct {
	w        stdio.Writer
	seekable gio.Seeker
	lenPos   int64
	written  int64
}

// StartChunk begins writing a new top-level chunk tagged tag to w.
func StartChunk(w stdio.Writer, tag string) (*ChunkWriter, error) {
	cw := &ChunkWriter{w: w}
	if s, ok := w.(gio.Seeker); ok {
		pos, err := s.Seek(0, stdio.SeekCurrent)
		if err != nil {
			return nil, err
		}
		cw.seekable = s
		cw.lenPos = pos + tagLen
	}
	if err := writeChunkHeader(w, tag, 0); err != nil {
		return nil, err
	}
	return cw, nil
}

// Write appends payload bytes to the open chunk.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.written += int64(n)
	return n, err
}

// BytesWritten returns the payload length written so far.
func (cw *ChunkWriter) BytesWritten() int64 { return cw.written }

// Finish patches the chunk's length field if w is seekable; otherwise the
// on-disk length stays 0, meaning the chunk extends to EOF.
func (cw *ChunkWriter) Finish() error {
	if cw.seekable == nil {
		return nil
	}
	if patcher, ok := cw.w.(rawPatcher); ok {
		var buf bytes.Buffer
		if err := gio.WriteInt64LE(&buf, cw.written); err != nil {
			return err
		}
		return patcher.PatchAt(cw.lenPos, buf.Bytes())
	}
	end, err := cw.seekable.Seek(0, stdio.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := cw.seekable.Seek(cw.lenPos, stdio.SeekStart); err != nil {
		return err
	}
	if err := gio.WriteInt64LE(cw.w, cw.written); err != nil {
		return err
	}
	_, err = cw.seekable.Seek(end, stdio.SeekStart)
	return err
}

// OpenChunk reads a chunk header and returns a reader clamped to its
// payload when the length is known (knownLength true), or the raw reader
// (to be read until EOF by the caller, who must stop at the next chunk
// boundary some other way, e.g. GAVFPKTS run to EOF) when unknown.
func OpenChunk(r stdio.Reader) (tag string, payload stdio.Reader, knownLength bool, err error) {
	tag, length, err := readChunkHeader(r)
	if err != nil {
		return "", nil, false, err
	}
	if length == 0 {
		return tag, r, false, nil
	}
	return tag, stdio.LimitReader(r, length), true, nil
}
