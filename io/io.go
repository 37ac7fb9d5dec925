/*
NAME
  io.go

DESCRIPTION
  Package io provides the polymorphic byte-stream abstraction that the GAVF
  transport (see package gavf) runs over: file, memory, buffer, socket, TLS,
  cipher, sub-stream and chunk-scoped backends, all satisfying a single IO
  interface plus optional capability interfaces (Seeker, Closer, Flusher,
  Poller, NonblockReader, NonblockWriter). Callers type-assert for the
  optional interfaces rather than relying on inheritance.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package io provides the polymorphic stream abstraction GAVF is written
// on top of: a single IO interface with optional capability interfaces for
// seek, close, flush and poll, backed by file, memory, buffer, socket,
// TLS, cipher, sub-stream and chunk-scoped implementations.
package io

import (
	stdio "io"
)

// Flag describes a capability or state bit of an IO.
type Flag uint32

const (
	CanRead Flag = 1 << iota
	CanWrite
	CanSeek
	Duplex     // messages can flow both directions (used by GAVF interactive mode)
	IsRegular
	IsSocket
	IsUnixSocket
	IsLocal
	IsPipe
	IsTTY
	eofFlag
	errFlag
)

// IO is the minimal stream every backend implements.
type IO interface {
	stdio.Reader
	stdio.Writer
	Flags() Flag
	EOF() bool
	Err() error
}

// Seeker is implemented by IOs with CanSeek set.
type Seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

// Closer is implemented by IOs that own a resource needing explicit release.
type Closer interface {
	Close() error
}

// Flusher is implemented by buffered write backends.
type Flusher interface {
	Flush() error
}

// Poller reports read/write readiness without consuming data. A negative
// timeoutMs waits forever, zero tries once without waiting.
type Poller interface {
	Poll(timeoutMs int) (readable, writable bool, err error)
}

// NonblockReader and NonblockWriter back the optional nonblocking variants.
type NonblockReader interface {
	ReadNonblock(p []byte) (int, error)
}

type NonblockWriter interface {
	WriteNonblock(p []byte) (int, error)
}

// ErrAgain is returned by nonblocking operations that would otherwise block.
var ErrAgain = stdio.ErrNoProgress

// state is embedded by every backend; it latches EOF and error flags so
// that poll reports readiness without clearing them, and once an IO is
// in the error state further calls short-circuit to the same error
// without side effects.
type state struct {
	flags Flag
	eof   bool
	err   error
}

func (s *state) Flags() Flag { return s.flags }
func (s *state) EOF() bool   { return s.eof }
func (s *state) Err() error  { return s.err }

func (s *state) setEOF()        { s.eof = true }
func (s *state) setErr(e error) { if e != nil { s.err = e } }

// latched returns a non-nil error if s is already in a terminal state,
// short-circuiting the caller.
func (s *state) latched() error {
	if s.err != nil {
		return s.err
	}
	if s.eof {
		return stdio.EOF
	}
	return nil
}
