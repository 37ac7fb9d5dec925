/*
NAME
  server.go

DESCRIPTION
  The gavfsrv connection handler: each accepted connection is wrapped as
  a duplex io and driven by the interactive control/response protocol
  (QUIT, PING, SRC_START, SRC_PAUSE, SRC_RESUME, SRC_SEEK,
  SRC_SELECT_TRACK, SRC_SET_STREAM_ACTION, SRC_SET_FRAME_STORAGE),
  answering with the matching response messages. A real media source
  would drive SRC_STARTED/SRC_BUFFERING/etc from its own pipeline;
  gavfsrv stands in a Track read from an on-disk .gavf file as the
  served program, keyed by the client-supplied ContextID.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	stdio "io"
	"net"
	"os"

	"github.com/ausocean/gavf/gavf"
	"github.com/ausocean/gavf/gavf/indexcache"
	"github.com/ausocean/gavf/gavl/msg"
	gio "github.com/ausocean/gavf/io"
	"github.com/ausocean/utils/logging"
)

// server drives one gavfsrv listener, accepting connections and handling
// each with the control/response protocol.
type server struct {
	cfg   Config
	log   logging.Logger
	cache *indexcache.Cache
}

// serve accepts connections from ln until it returns an error (e.g. on
// Close).
func (s *server) serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

func (s *server) handle(conn net.Conn) {
	defer conn.Close()
	clientAddr := conn.RemoteAddr().String()
	s.log.Info("gavfsrv: accepted connection", "remote", clientAddr)

	sock := gio.NewSocketIO(conn, true, false)
	for {
		m, err := gavf.ReadMessage(sock)
		if err != nil {
			if err != stdio.EOF {
				s.log.Warning("gavfsrv: reading control message failed", "remote", clientAddr, "err", err)
			}
			return
		}
		resp := s.dispatch(m)
		if m.Match(msg.NsGavf, msg.CmdQuit) {
			return
		}
		if resp == nil {
			continue
		}
		if err := gavf.WriteMessage(sock, resp); err != nil {
			s.log.Warning("gavfsrv: writing response failed", "remote", clientAddr, "err", err)
			return
		}
	}
}

// dispatch answers one control message. It returns nil, and nothing is
// sent back, for QUIT, for the playback-control commands it acknowledges
// implicitly (pause, resume, select-track, stream-action, frame-storage),
// and for any namespace/id combination it does not recognise.
func (s *server) dispatch(m *msg.Message) *msg.Message {
	switch {
	case m.Match(msg.NsGavf, msg.CmdQuit):
		return nil

	case m.Match(msg.NsGavf, msg.CmdPing):
		resp := msg.NewControl(msg.RespPong)
		msg.SetRespForReq(resp, m)
		return resp

	case m.Match(msg.NsGavf, msg.CmdSrcStart):
		return s.handleStart(m)

	case m.Match(msg.NsGavf, msg.CmdSrcSeek):
		resp := msg.NewControl(msg.RespSrcResync)
		msg.SetRespForReq(resp, m)
		pts, _ := m.GetArgLong(msg.ArgSeekTime)
		resp.SetArgLong(msg.ArgResyncPTS, pts)
		scale, _ := m.GetArgLong(msg.ArgSeekScale)
		resp.SetArgLong(msg.ArgResyncScale, scale)
		return resp

	case m.Match(msg.NsGavf, msg.CmdSrcPause), m.Match(msg.NsGavf, msg.CmdSrcResume),
		m.Match(msg.NsGavf, msg.CmdSrcSelectTrack), m.Match(msg.NsGavf, msg.CmdSrcSetStreamAction),
		m.Match(msg.NsGavf, msg.CmdSrcSetFrameStorage):
		// Acknowledged implicitly: these adjust local playback state that
		// gavfsrv's stand-in source doesn't otherwise report on.
		return nil

	default:
		return nil
	}
}

// handleStart opens the .gavf file named by the request's ContextID
// (interpreted as a filename relative to nothing — callers pass an
// absolute path) and responds with SRC_STARTED carrying its track
// dictionary serialized as an argument. When the server has an index
// cache it is consulted; nothing is written back to it here.
func (s *server) handleStart(m *msg.Message) *msg.Message {
	resp := msg.NewControl(msg.RespSrcStarted)
	msg.SetRespForReq(resp, m)

	path, ok := m.ContextID()
	if !ok || path == "" {
		return resp
	}

	f, err := os.Open(path)
	if err != nil {
		s.log.Warning("gavfsrv: SRC_START could not open file", "path", path, "err", err)
		return resp
	}
	defer f.Close()

	rd := gavf.NewReader(f, s.log)
	track, err := rd.Open()
	if err != nil {
		s.log.Warning("gavfsrv: SRC_START could not read program header", "path", path, "err", err)
		return resp
	}

	if s.cache != nil {
		rd.LoadIndexCache(s.cache, path)
	}

	resp.SetArgDictionary(0, track.D)
	return resp
}
