/*
NAME
  socket.go

DESCRIPTION
  Socket-backed IO over a net.Conn, plus listener constructors for
  gavf-tcpserv:// and gavf-unixserv:// URIs that prefer a systemd
  socket-activation fd (LISTEN_FDS) over calling net.Listen directly, the
  way a long-running service managed by systemd expects to receive its
  listening socket already bound. Falls back to net.Listen when no
  activation fd is present.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package io

import (
	"bufio"
	stdio "io"
	"net"

	"github.com/coreos/go-systemd/v22/activation"
	"github.com/pkg/errors"
)

// SocketIO wraps a net.Conn. Duplex is always set: GAVF interactive mode
// requires messages to flow both ways over the same connection.
type SocketIO struct {
	state
	conn         net.Conn
	r            *bufio.Reader
	closeOnFree  bool
}

// NewSocketIO wraps conn. If buffered is true, reads go through a
// bufio.Reader (needed by ReadLine-style framing); closeOnFree controls
// whether Close() closes the underlying conn.
func NewSocketIO(conn net.Conn, buffered, closeOnFree bool) *SocketIO {
	fl := CanRead | CanWrite | Duplex | IsSocket
	if _, ok := conn.(*net.UnixConn); ok {
		fl |= IsUnixSocket | IsLocal
	}
	s := &SocketIO{state: state{flags: fl}, conn: conn, closeOnFree: closeOnFree}
	if buffered {
		s.r = bufio.NewReader(conn)
	}
	return s
}

// Reader exposes the buffered reader (if any) for ReadLine-style framing.
func (s *SocketIO) Reader() *bufio.Reader {
	if s.r == nil {
		s.r = bufio.NewReader(s.conn)
	}
	return s.r
}

func (s *SocketIO) Read(p []byte) (int, error) {
	if err := s.latched(); err != nil {
		return 0, err
	}
	var n int
	var err error
	if s.r != nil {
		n, err = s.r.Read(p)
	} else {
		n, err = s.conn.Read(p)
	}
	if err == stdio.EOF {
		s.setEOF()
	} else if err != nil {
		s.setErr(err)
	}
	return n, err
}

func (s *SocketIO) Write(p []byte) (int, error) {
	if err := s.latched(); err != nil {
		return 0, err
	}
	n, err := s.conn.Write(p)
	if err != nil {
		s.setErr(err)
	}
	return n, err
}

func (s *SocketIO) Close() error {
	if s.closeOnFree {
		return s.conn.Close()
	}
	return nil
}

func (s *SocketIO) Poll(timeoutMs int) (readable, writable bool, err error) {
	// net.Conn has no generic poll; approximate with a read deadline probe
	// is intrusive, so report optimistically for the common case (blocking
	// callers dominate this core; true poll matters mainly for the async
	// TLS/address-resolve paths, which drive their own readiness).
	return true, true, nil
}

// ListenTCP returns a net.Listener for host:port, using a systemd
// activation fd when LISTEN_FDS names a matching listener, else binding
// with net.Listen.
func ListenTCP(addr string) (net.Listener, error) {
	if l := activationListener("tcp"); l != nil {
		return l, nil
	}
	return net.Listen("tcp", addr)
}

// ListenUnix returns a net.Listener for a unix socket path, preferring a
// systemd activation fd.
func ListenUnix(path string) (net.Listener, error) {
	if l := activationListener("unix"); l != nil {
		return l, nil
	}
	return net.Listen("unix", path)
}

func activationListener(network string) net.Listener {
	listeners, err := activation.Listeners()
	if err != nil || len(listeners) == 0 {
		return nil
	}
	for _, l := range listeners {
		if l == nil {
			continue
		}
		if l.Addr().Network() == network {
			return l
		}
	}
	return nil
}

// ErrUnknownScheme is the error value for an unrecognised gavf URI
// scheme; no function in this package returns it.
var ErrUnknownScheme = errors.New("io: unknown gavf URI scheme")
