/*
NAME
  websocket.go

DESCRIPTION
  WebsocketIO wraps a *websocket.Conn (github.com/gorilla/websocket) as a
  duplex IO: one GAVF write (a chunk, or a packet frame) becomes one
  websocket binary message, and reads reassemble from an internal
  leftover buffer when a caller's read is smaller than a message. This is
  the transport a browser-facing interactive GAVF client uses, grounded
  on other_examples/nvr's websocket-framed live-view connection.

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

	"github.com/gorilla/websocket"
)

// WebsocketIO wraps a *websocket.Conn as a duplex IO.
type WebsocketIO struct {
	state
	conn      *websocket.Conn
	leftover  []byte
}

// NewWebsocketIO wraps conn for GAVF interactive use.
func NewWebsocketIO(conn *websocket.Conn) *WebsocketIO {
	return &WebsocketIO{state: state{flags: CanRead | CanWrite | Duplex | IsSocket}, conn: conn}
}

func (w *WebsocketIO) Read(p []byte) (int, error) {
	if err := w.latched(); err != nil {
		return 0, err
	}
	if len(w.leftover) == 0 {
		typ, data, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.setEOF()
				return 0, stdio.EOF
			}
			w.setErr(err)
			return 0, err
		}
		if typ != websocket.BinaryMessage {
			// Control/text frames are not part of the GAVF byte stream;
			// skip and try again.
			return w.Read(p)
		}
		w.leftover = data
	}
	n := copy(p, w.leftover)
	w.leftover = w.leftover[n:]
	return n, nil
}

func (w *WebsocketIO) Write(p []byte) (int, error) {
	if err := w.latched(); err != nil {
		return 0, err
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		w.setErr(err)
		return 0, err
	}
	return len(p), nil
}

func (w *WebsocketIO) Close() error {
	return w.conn.Close()
}

func (w *WebsocketIO) Poll(timeoutMs int) (readable, writable bool, err error) {
	return len(w.leftover) > 0, true, nil
}
