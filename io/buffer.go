/*
NAME
  buffer.go

DESCRIPTION
  IO backends bound to a package buffer.Buffer rather than a plain slice,
  for callers that already hold a Buffer (e.g. a Packet's payload) and
  want to read or write through the common IO interface.

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

	"github.com/ausocean/gavf/buffer"
)

// BufferIO wraps a *buffer.Buffer as an IO; reads consume from the
// buffer's current position, writes append.
type BufferIO struct {
	state
	buf *buffer.Buffer
}

// NewBufferReader returns a read-only IO over buf.
func NewBufferReader(buf *buffer.Buffer) *BufferIO {
	return &BufferIO{state: state{flags: CanRead}, buf: buf}
}

// NewBufferWriter returns a write-only IO over buf.
func NewBufferWriter(buf *buffer.Buffer) *BufferIO {
	return &BufferIO{state: state{flags: CanWrite}, buf: buf}
}

func (b *BufferIO) Read(p []byte) (int, error) {
	if err := b.latched(); err != nil {
		return 0, err
	}
	n, err := b.buf.Read(p)
	if err == stdio.EOF {
		b.setEOF()
	}
	return n, err
}

func (b *BufferIO) Write(p []byte) (int, error) {
	if err := b.latched(); err != nil {
		return 0, err
	}
	return b.buf.Write(p)
}
