/*
NAME
  msgcodec.go

DESCRIPTION
  msgcodec.go serializes control/response messages for GAVF's
  interactive streaming mode the same way everything else in GAVF is
  serialized: as a
  Dictionary. A message's header dictionary (namespace, id, client-id,
  context-id, timestamp, not-last, function-tag) is extended with an
  "ARGS" array field holding its typed arguments in order, then written
  with the ordinary Dictionary codec. On the wire these travel as packet
  payloads on the reserved MsgStreamID within GAVFPKTS.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	stdio "io"

	"github.com/pkg/errors"

	"github.com/ausocean/gavf/gavl"
	"github.com/ausocean/gavf/gavl/msg"
)

// MsgStreamID is the reserved packet stream id (GAVL_META_STREAM_ID_MSG_GAVF)
// carrying GAVF control messages as packets within GAVFPKTS, in the
// downstream direction.
const MsgStreamID int32 = -1

// msgArgsKey names the header-dictionary field EncodeMessage adds to
// carry a message's argument array; it is stripped back out on decode.
const msgArgsKey = "ARGS"

// EncodeMessage serializes m as a single Dictionary.
func EncodeMessage(w stdio.Writer, m *msg.Message) error {
	m.ApplyHeader()
	d := m.Header.Copy()

	args := gavl.NewArray()
	for i := 0; i < m.NumArgs(); i++ {
		v, _ := m.GetArg(i)
		args.Push(v)
	}
	d.SetArrayField(msgArgsKey, args)

	if err := EncodeDictionary(w, d); err != nil {
		return errors.Wrap(err, "encoding message dictionary")
	}
	return nil
}

// DecodeMessage reads a Message previously written by EncodeMessage.
func DecodeMessage(r stdio.Reader) (*msg.Message, error) {
	d, err := DecodeDictionary(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding message dictionary")
	}

	args, _ := d.GetArray(msgArgsKey)
	d.Delete(msgArgsKey)

	m := msg.New()
	m.Header = d
	if args != nil {
		for i := 0; i < args.Len(); i++ {
			if v, ok := args.Get(i); ok {
				m.SetArgNocopy(i, *v)
			}
		}
	}
	ns, _ := d.GetInt(msg.HeaderNS)
	id, _ := d.GetInt(msg.HeaderID)
	m.SetID(ns, id)
	return m, nil
}

// WriteMessage encodes m and writes it as a single packet on MsgStreamID.
func WriteMessage(w stdio.Writer, m *msg.Message) error {
	var buf bytesBuf
	if err := EncodeMessage(&buf, m); err != nil {
		return err
	}
	p := gavl.NewPacket()
	defer p.Free()
	p.StreamID = MsgStreamID
	p.SetData(buf.Bytes())
	return WritePacket(w, p, 0)
}

// ReadMessage reads one packet from r and decodes it as a Message. It is
// the caller's responsibility to have checked the packet's StreamID ==
// MsgStreamID before calling (or to call this only when already
// demultiplexing control traffic).
func ReadMessage(r stdio.Reader) (*msg.Message, error) {
	p := gavl.NewPacket()
	defer p.Free()
	if _, err := ReadPacket(r, p); err != nil {
		return nil, errors.Wrap(err, "reading message packet")
	}
	return DecodeMessage(&bytesReader{data: p.Data()})
}
