/*
NAME
  buffer.go

DESCRIPTION
  Package buffer provides a growable byte buffer with a distinct logical
  length, read position and allocated capacity, plus padded appends for
  callers (SIMD-style decoders, GAVF packets) that need to read a few bytes
  past the logical end without going out of bounds.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package buffer provides a growable byte buffer used by binary values and
// packets, distinguishing logical length from allocated capacity so that
// padded trailing bytes can be reserved without being considered part of
// the data.
package buffer

import (
	"io"

	"github.com/pkg/errors"
)

// ErrAlloc is returned when a requested growth could not be satisfied.
var ErrAlloc = errors.New("buffer: allocation refused")

// Buffer is a growable byte buffer. The zero value is a valid, empty Buffer.
type Buffer struct {
	buf []byte // buf has len == alloc capacity; data lives in buf[:length].
	pos int    // current read position.
	len int    // logical length of valid data.
}

// New returns a new, empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewWith returns a new Buffer initialised with a copy of data.
func NewWith(data []byte) *Buffer {
	b := New()
	b.Append(data)
	return b
}

// Init resets b to the empty state, releasing its backing array.
func (b *Buffer) Init() {
	b.buf = nil
	b.pos = 0
	b.len = 0
}

// Len returns the logical length of the buffer.
func (b *Buffer) Len() int { return b.len }

// Cap returns the allocated capacity of the buffer.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Pos returns the current read position.
func (b *Buffer) Pos() int { return b.pos }

// SetPos sets the read position. Out-of-range positions are clamped.
func (b *Buffer) SetPos(pos int) {
	switch {
	case pos < 0:
		pos = 0
	case pos > b.len:
		pos = b.len
	}
	b.pos = pos
}

// Bytes returns the valid (logical-length) portion of the buffer. The
// returned slice aliases the Buffer's storage and must not be retained
// past the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.len]
}

// Alloc grows the buffer's capacity to at least minCapacity if it is not
// already that large. Existing data and position are preserved. Returns
// ErrAlloc if the requested capacity could not be allocated (only possible
// in principle; Go's allocator panics on OOM, so this always succeeds in
// practice but the error is kept per the component contract).
func (b *Buffer) Alloc(minCapacity int) error {
	if minCapacity <= cap(b.buf) {
		return nil
	}
	nbuf := make([]byte, b.len, minCapacity)
	copy(nbuf, b.buf[:b.len])
	b.buf = nbuf
	return nil
}

// Append appends src to the buffer, growing capacity as needed.
func (b *Buffer) Append(src []byte) {
	b.AppendPad(src, 0)
}

// AppendPad appends src to the buffer and reserves padBytes of trailing
// zeroed capacity beyond the new logical length. The padding is not part
// of Len() but is guaranteed to be allocated and zeroed, so a reader may
// safely read up to padBytes past Bytes() without reallocating.
func (b *Buffer) AppendPad(src []byte, padBytes int) {
	need := b.len + len(src) + padBytes
	if err := b.Alloc(need); err != nil {
		// Alloc never fails under Go's allocator; kept for contract parity.
		panic(err)
	}
	b.buf = b.buf[:need]
	copy(b.buf[b.len:b.len+len(src)], src)
	for i := b.len + len(src); i < need; i++ {
		b.buf[i] = 0
	}
	b.len += len(src)
}

// Reset sets the logical length and read position back to zero, retaining
// the allocated capacity for reuse.
func (b *Buffer) Reset() {
	b.len = 0
	b.pos = 0
}

// Free releases the buffer's backing storage.
func (b *Buffer) Free() {
	b.Init()
}

// Copy returns a deep copy of b.
func (b *Buffer) Copy() *Buffer {
	nb := &Buffer{pos: b.pos, len: b.len}
	nb.buf = make([]byte, b.len)
	copy(nb.buf, b.buf[:b.len])
	return nb
}

// Read implements io.Reader over the unread portion of the buffer's
// logical data, advancing Pos as bytes are consumed.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= b.len {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.pos:b.len])
	b.pos += n
	return n, nil
}

// Write implements io.Writer, appending to the buffer's logical data.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}
