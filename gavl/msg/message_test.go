/*
NAME
  message_test.go

DESCRIPTION
  message_test.go provides testing to validate utilities found in
  message.go and catalogue.go, including the message header correlation
  property: SetRespForReq copies ClientID, ContextID and FunctionTag from
  a request onto a response, leaving other header fields (NS, ID,
  NotLast) at the response's own defaults.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package msg

import (
	"testing"

	"github.com/ausocean/gavf/gavl"
)

func TestMessageHeaderCorrelation(t *testing.T) {
	req := NewControl(CmdSrcSeek)
	req.SetClientID("client-1")
	req.SetContextID("stream-7")
	req.Header.SetString(HeaderFunctionTag, "seek-call-42")

	resp := NewControl(RespSrcResync)
	SetRespForReq(resp, req)

	if id, ok := resp.ClientID(); !ok || id != "client-1" {
		t.Errorf("resp.ClientID() = (%q, %v), want (client-1, true)", id, ok)
	}
	if id, ok := resp.ContextID(); !ok || id != "stream-7" {
		t.Errorf("resp.ContextID() = (%q, %v), want (stream-7, true)", id, ok)
	}
	if tag, ok := resp.Header.GetString(HeaderFunctionTag); !ok || tag != "seek-call-42" {
		t.Errorf("resp FunctionTag = (%q, %v), want (seek-call-42, true)", tag, ok)
	}

	// NS/ID belong to resp, not req: correlation must not clobber routing.
	id, ns := resp.GetID()
	if ns != NsGavf || id != RespSrcResync {
		t.Errorf("resp.GetID() = (%d, %d), want (%d, %d)", id, ns, RespSrcResync, NsGavf)
	}
	if !resp.GetLast() {
		t.Error("resp.GetLast() = false, want true (default)")
	}
}

func TestMessageArgTypes(t *testing.T) {
	m := New()
	m.SetArgInt(0, 42)
	m.SetArgLong(1, 1<<40)
	m.SetArgFloat(2, 3.5)
	m.SetArgString(3, "hi")
	m.SetArgPosition(4, 1.0, 2.0)
	m.SetArgColorRGBA(5, 0.1, 0.2, 0.3, 1.0)

	if v, ok := m.GetArgInt(0); !ok || v != 42 {
		t.Errorf("GetArgInt(0) = (%d, %v), want (42, true)", v, ok)
	}
	if v, ok := m.GetArgLong(1); !ok || v != 1<<40 {
		t.Errorf("GetArgLong(1) = (%d, %v), want (%d, true)", v, ok, int64(1)<<40)
	}
	if v, ok := m.GetArgFloat(2); !ok || v != 3.5 {
		t.Errorf("GetArgFloat(2) = (%v, %v), want (3.5, true)", v, ok)
	}
	if v, ok := m.GetArgString(3); !ok || v != "hi" {
		t.Errorf("GetArgString(3) = (%q, %v), want (hi, true)", v, ok)
	}
	if x, y, ok := m.GetArgPosition(4); !ok || x != 1.0 || y != 2.0 {
		t.Errorf("GetArgPosition(4) = (%v, %v, %v), want (1, 2, true)", x, y, ok)
	}
	if r, g, b, a, ok := m.GetArgColorRGBA(5); !ok || r != 0.1 || g != 0.2 || b != 0.3 || a != 1.0 {
		t.Errorf("GetArgColorRGBA(5) = (%v,%v,%v,%v,%v)", r, g, b, a, ok)
	}
	if m.NumArgs() != 6 {
		t.Errorf("NumArgs() = %d, want 6", m.NumArgs())
	}

	if _, ok := m.GetArg(6); ok {
		t.Error("GetArg(6) ok = true, want false (unset)")
	}
}

func TestMessageCopyIsDeep(t *testing.T) {
	m := New()
	m.SetArgString(0, "original")
	d := gavl.NewDictionary()
	d.SetInt("x", 1)
	m.SetArgDictionary(1, d)

	cp := m.Copy()
	cp.SetArgString(0, "mutated")
	if s, _ := m.GetArgString(0); s != "original" {
		t.Errorf("original mutated via copy: GetArgString(0) = %q, want original", s)
	}

	gotD, ok := cp.GetArgDictionary(1)
	if !ok {
		t.Fatal("cp.GetArgDictionary(1) not ok")
	}
	gotD.SetInt("x", 99)
	srcD, _ := m.GetArgDictionary(1)
	if v, _ := srcD.GetInt("x"); v != 1 {
		t.Errorf("original dictionary mutated via copy: x = %d, want 1", v)
	}
}

func TestMessageSetLast(t *testing.T) {
	m := New()
	if !m.GetLast() {
		t.Error("new message GetLast() = false, want true (default)")
	}
	m.SetLast(false)
	if m.GetLast() {
		t.Error("after SetLast(false), GetLast() = true, want false")
	}
	m.SetLast(true)
	if !m.GetLast() {
		t.Error("after SetLast(true), GetLast() = false, want true")
	}
}

func TestControlCatalogueIDsApplyToHeader(t *testing.T) {
	m := NewControl(CmdSrcPause)
	ns, ok := m.Header.GetInt(HeaderNS)
	if !ok || ns != NsGavf {
		t.Errorf("header NS = (%d, %v), want (%d, true)", ns, ok, NsGavf)
	}
	id, ok := m.Header.GetInt(HeaderID)
	if !ok || id != CmdSrcPause {
		t.Errorf("header ID = (%d, %v), want (%d, true)", id, ok, CmdSrcPause)
	}
	if !m.Match(NsGavf, CmdSrcPause) {
		t.Error("Match(NsGavf, CmdSrcPause) = false, want true")
	}
}
