/*
NAME
  tls.go

DESCRIPTION
  TLS client IO over an existing socket connection, with peer-name
  verification, plus an async handshake driver returning the tri-state
  pending(0)/done(1)/error(-1) contract used for cancellable blocking
  operations.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package io

import (
	"context"
	"crypto/tls"
	stdio "io"
	"net"
	"time"

	"github.com/pkg/errors"
)

// ErrAuth is returned when TLS peer verification fails.
var ErrAuth = errors.New("io: TLS peer verification failed")

// TLSIO wraps a *tls.Conn as an IO.
type TLSIO struct {
	state
	conn *tls.Conn
}

// TLSClient performs a synchronous TLS handshake over conn, verifying
// serverName, and returns the resulting IO.
func TLSClient(conn net.Conn, serverName string, cfg *tls.Config) (*TLSIO, error) {
	if cfg == nil {
		cfg = &tls.Config{}
	}
	c := cfg.Clone()
	c.ServerName = serverName
	tc := tls.Client(conn, c)
	if err := tc.Handshake(); err != nil {
		return nil, errors.Wrap(ErrAuth, err.Error())
	}
	return &TLSIO{state: state{flags: CanRead | CanWrite | Duplex | IsSocket}, conn: tc}, nil
}

func (t *TLSIO) Read(p []byte) (int, error) {
	if err := t.latched(); err != nil {
		return 0, err
	}
	n, err := t.conn.Read(p)
	if err == stdio.EOF {
		t.setEOF()
	} else if err != nil {
		t.setErr(err)
	}
	return n, err
}

func (t *TLSIO) Write(p []byte) (int, error) {
	if err := t.latched(); err != nil {
		return 0, err
	}
	n, err := t.conn.Write(p)
	if err != nil {
		t.setErr(err)
	}
	return n, err
}

func (t *TLSIO) Close() error { return t.conn.Close() }

// AsyncTLSHandshake drives a TLS handshake without blocking past timeout.
// It returns 1 (done), 0 (pending, call Step again), or -1 (error).
// A negative timeoutMs waits forever on this Step call; zero tries once.
type AsyncTLSHandshake struct {
	conn   *tls.Conn
	cancel context.CancelFunc
	done   chan error
	err    error
	result *TLSIO
}

// NewAsyncTLSHandshake starts the handshake in the background.
func NewAsyncTLSHandshake(conn net.Conn, serverName string, cfg *tls.Config) *AsyncTLSHandshake {
	if cfg == nil {
		cfg = &tls.Config{}
	}
	c := cfg.Clone()
	c.ServerName = serverName
	tc := tls.Client(conn, c)
	ctx, cancel := context.WithCancel(context.Background())
	h := &AsyncTLSHandshake{conn: tc, cancel: cancel, done: make(chan error, 1)}
	go func() {
		h.done <- tc.HandshakeContext(ctx)
	}()
	return h
}

// Step waits up to timeoutMs milliseconds (negative = forever, zero = try
// once) for the handshake to finish.
func (h *AsyncTLSHandshake) Step(timeoutMs int) int {
	if h.err != nil {
		return -1
	}
	if h.result != nil {
		return 1
	}
	var timeout <-chan time.Time
	switch {
	case timeoutMs == 0:
		timeout = closedTimer
	case timeoutMs > 0:
		timeout = time.After(time.Duration(timeoutMs) * time.Millisecond)
	}
	select {
	case err := <-h.done:
		if err != nil {
			h.err = errors.Wrap(ErrAuth, err.Error())
			return -1
		}
		h.result = &TLSIO{state: state{flags: CanRead | CanWrite | Duplex | IsSocket}, conn: h.conn}
		return 1
	case <-timeout:
		return 0
	}
}

// Cancel detaches the pending handshake; the goroutine sees ctx done and
// exits without the caller waiting for it.
func (h *AsyncTLSHandshake) Cancel() {
	h.cancel()
}

// Result returns the completed IO once Step has returned 1.
func (h *AsyncTLSHandshake) Result() *TLSIO { return h.result }

// closedTimer fires immediately, implementing timeoutMs==0's "try once".
var closedTimer = func() <-chan time.Time { c := make(chan time.Time, 1); c <- time.Now(); return c }()
