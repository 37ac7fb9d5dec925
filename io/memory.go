/*
NAME
  memory.go

DESCRIPTION
  Memory-backed IO: a read-only view over a caller-supplied byte slice, and
  a write-only variant that grows an internal buffer retrievable via
  MemGetBuf once writing is done.

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
	stdio "io"
)

// MemReader is a read-only IO over a caller's byte slice.
type MemReader struct {
	state
	data []byte
	pos  int
}

// NewMemReader returns an IO that reads data without copying it.
func NewMemReader(data []byte) *MemReader {
	return &MemReader{state: state{flags: CanRead | CanSeek | IsRegular}, data: data}
}

func (m *MemReader) Read(p []byte) (int, error) {
	if err := m.latched(); err != nil {
		return 0, err
	}
	if m.pos >= len(m.data) {
		m.setEOF()
		return 0, stdio.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func (m *MemReader) Write(p []byte) (int, error) { return 0, stdio.ErrClosedPipe }

func (m *MemReader) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case stdio.SeekStart:
		base = 0
	case stdio.SeekCurrent:
		base = int64(m.pos)
	case stdio.SeekEnd:
		base = int64(len(m.data))
	}
	m.pos = int(base + offset)
	m.eof = false
	return int64(m.pos), nil
}

// MemWriter is a write-only IO that grows an internal buffer.
type MemWriter struct {
	state
	buf bytes.Buffer
}

// NewMemWriter returns an IO that accumulates writes in memory.
func NewMemWriter() *MemWriter {
	return &MemWriter{state: state{flags: CanWrite}}
}

func (m *MemWriter) Read(p []byte) (int, error) { return 0, stdio.ErrClosedPipe }

func (m *MemWriter) Write(p []byte) (int, error) {
	if err := m.latched(); err != nil {
		return 0, err
	}
	return m.buf.Write(p)
}

// MemGetBuf returns the bytes written so far.
func (m *MemWriter) MemGetBuf() []byte { return m.buf.Bytes() }
