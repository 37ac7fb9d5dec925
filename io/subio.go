/*
NAME
  subio.go

DESCRIPTION
  Sub-stream views over another IO: SubRead clamps reads to a
  [offset, offset+len) window of a seekable parent (used by GAVF chunks
  with a known length), and SubWrite tracks the number of bytes appended
  to an underlying IO without otherwise constraining it (used by GAVF
  chunks whose length is patched on close).

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

	"github.com/pkg/errors"
)

// SubRead clamps reads on parent to the window [offset, offset+length).
// On construction it seeks parent to offset. TotalBytes reports the
// window length; EOF is reported once that many bytes have been read,
// regardless of the parent's own EOF.
type SubRead struct {
	state
	parent IO
	length int64
	read   int64
}

// NewSubRead seeks parent (which must support Seek) to offset and
// returns an IO clamped to [offset, offset+length).
func NewSubRead(parent IO, offset, length int64) (*SubRead, error) {
	seeker, ok := parent.(Seeker)
	if !ok {
		return nil, errors.New("io: SubRead requires a seekable parent")
	}
	if _, err := seeker.Seek(offset, stdio.SeekStart); err != nil {
		return nil, err
	}
	return &SubRead{state: state{flags: CanRead}, parent: parent, length: length}, nil
}

// TotalBytes returns the window length.
func (s *SubRead) TotalBytes() int64 { return s.length }

func (s *SubRead) Read(p []byte) (int, error) {
	if err := s.latched(); err != nil {
		return 0, err
	}
	remaining := s.length - s.read
	if remaining <= 0 {
		s.setEOF()
		return 0, stdio.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := s.parent.Read(p)
	s.read += int64(n)
	if err == stdio.EOF && s.read < s.length {
		// Parent exhausted before the declared window: surface as an
		// error rather than a silent short window (unknown-length
		// chunks never construct a SubRead; see gavf.OpenChunk).
		s.setErr(errors.New("io: SubRead: parent exhausted before window end"))
		return n, s.err
	}
	return n, nil
}

func (s *SubRead) Write(p []byte) (int, error) { return 0, stdio.ErrClosedPipe }

// SubWrite appends to an underlying IO, counting the bytes written.
type SubWrite struct {
	state
	parent  IO
	written int64
}

// NewSubWrite returns an IO that writes through to parent, tracking
// TotalBytes.
func NewSubWrite(parent IO) *SubWrite {
	return &SubWrite{state: state{flags: CanWrite}, parent: parent}
}

// TotalBytes returns the number of bytes written so far.
func (s *SubWrite) TotalBytes() int64 { return s.written }

func (s *SubWrite) Read(p []byte) (int, error) { return 0, stdio.ErrClosedPipe }

func (s *SubWrite) Write(p []byte) (int, error) {
	if err := s.latched(); err != nil {
		return 0, err
	}
	n, err := s.parent.Write(p)
	s.written += int64(n)
	if err != nil {
		s.setErr(err)
	}
	return n, err
}
