/*
NAME
  packetcodec.go

DESCRIPTION
  Packet framing within GAVFPKTS: each packet begins with 'P', then
  stream id (signed varint), pts (signed varint), flags (unsigned
  varint, high bit reserved as the "extensions follow" marker distinct
  from the packet's own semantic Flags bits), an optional extension
  list, a varint payload length, and the raw payload. The BUF_IDX
  extension, naming a pre-registered frame-storage buffer, is carried
  the same way as the others: written only when set.

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

	"github.com/ausocean/gavf/gavl"
	gio "github.com/ausocean/gavf/io"
)

const packetMarker = 'P'

// extWireBit, ORed into the wire flags varint, signals that an extension
// list follows. It occupies a bit outside gavl's own Packet flag bits
// (which are small, low-numbered) so it never collides with real flags.
const extWireBit = 1 << 30

// Extension keys.
const (
	extDuration = iota + 1
	extHeaderSize
	extSeqEndPos
	extTimecode
	extSrcRect
	extDstCoords
	extField2Offset
	extInterlaceMode
	extFDCount
	extBufIdx
)

// WritePacket writes one packet frame to w. fdCount, when > 0, announces
// that fdCount file descriptors accompany this packet out-of-band over a
// Unix socket transport; the caller is responsible for actually
// sending them via SCM_RIGHTS in the same order.
func WritePacket(w stdio.Writer, p *gavl.Packet, fdCount int) error {
	if _, err := w.Write([]byte{packetMarker}); err != nil {
		return err
	}
	if err := gio.WriteVarint(w, int64(p.StreamID)); err != nil {
		return err
	}
	if err := gio.WriteVarint(w, p.PTS); err != nil {
		return err
	}

	exts := collectExtensions(p, fdCount)
	flags := uint64(p.Flags)
	if len(exts) > 0 {
		flags |= extWireBit
	}
	if err := gio.WriteUvarint(w, flags); err != nil {
		return err
	}
	if len(exts) > 0 {
		if err := gio.WriteUvarint(w, uint64(len(exts))); err != nil {
			return err
		}
		for _, e := range exts {
			if err := gio.WriteUvarint(w, uint64(e.key)); err != nil {
				return err
			}
			if err := gio.WriteUvarint(w, uint64(len(e.data))); err != nil {
				return err
			}
			if _, err := w.Write(e.data); err != nil {
				return err
			}
		}
	}

	data := p.Data()
	if err := gio.WriteUvarint(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

type extension struct {
	key  int
	data []byte
}

func collectExtensions(p *gavl.Packet, fdCount int) []extension {
	var exts []extension
	if p.Duration != 0 {
		exts = append(exts, varintExt(extDuration, p.Duration))
	}
	if p.HeaderSize != 0 {
		exts = append(exts, varintExt(extHeaderSize, int64(p.HeaderSize)))
	}
	if p.SequenceEndPos != 0 {
		exts = append(exts, varintExt(extSeqEndPos, int64(p.SequenceEndPos)))
	}
	if p.Timecode != gavl.TimecodeUndefined {
		buf := make([]byte, 8)
		for i := 0; i < 8; i++ {
			buf[i] = byte(p.Timecode >> (8 * (7 - i)))
		}
		exts = append(exts, extension{extTimecode, buf})
	}
	if p.SrcRect != (gavl.Rect{}) {
		var b bytesBuf
		gio.WriteVarint(&b, int64(p.SrcRect.X))
		gio.WriteVarint(&b, int64(p.SrcRect.Y))
		gio.WriteVarint(&b, int64(p.SrcRect.W))
		gio.WriteVarint(&b, int64(p.SrcRect.H))
		exts = append(exts, extension{extSrcRect, b.Bytes()})
	}
	if p.DstX != 0 || p.DstY != 0 {
		var b bytesBuf
		gio.WriteVarint(&b, int64(p.DstX))
		gio.WriteVarint(&b, int64(p.DstY))
		exts = append(exts, extension{extDstCoords, b.Bytes()})
	}
	if p.Field2Offset != 0 {
		exts = append(exts, varintExt(extField2Offset, int64(p.Field2Offset)))
	}
	if p.InterlaceMode != gavl.InterlaceUnknown {
		exts = append(exts, varintExt(extInterlaceMode, int64(p.InterlaceMode)))
	}
	if fdCount > 0 {
		exts = append(exts, varintExt(extFDCount, int64(fdCount)))
	}
	if p.BufIdx >= 0 {
		exts = append(exts, varintExt(extBufIdx, int64(p.BufIdx)))
	}
	return exts
}

func varintExt(key int, v int64) extension {
	var b bytesBuf
	gio.WriteVarint(&b, v)
	return extension{key, b.Bytes()}
}

// bytesBuf is a tiny growable-byte-slice Writer, avoiding a bytes.Buffer
// import just for building small extension payloads.
type bytesBuf struct{ b []byte }

func (b *bytesBuf) Write(p []byte) (int, error) {
	b.b = append(b.b, p...)
	return len(p), nil
}
func (b *bytesBuf) Bytes() []byte { return b.b }

// ReadPacket reads one packet frame from r into p (which should be freshly
// Init'd). It returns the announced fd count (0 if none) so the caller can
// pull that many fds off the Unix socket's ancillary data channel.
func ReadPacket(r stdio.Reader, p *gavl.Packet) (fdCount int, err error) {
	var marker [1]byte
	if _, err := stdio.ReadFull(r, marker[:]); err != nil {
		return 0, err
	}
	if marker[0] != packetMarker {
		return 0, parseErrorf("expected packet marker 'P', got %q", marker[0])
	}
	sid, err := gio.ReadVarint(r)
	if err != nil {
		return 0, err
	}
	pts, err := gio.ReadVarint(r)
	if err != nil {
		return 0, err
	}
	flags, err := gio.ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	p.Init()
	p.StreamID = int32(sid)
	p.PTS = pts
	p.Flags = int(flags &^ extWireBit)

	if flags&extWireBit != 0 {
		count, err := gio.ReadUvarint(r)
		if err != nil {
			return 0, err
		}
		for i := uint64(0); i < count; i++ {
			key, err := gio.ReadUvarint(r)
			if err != nil {
				return 0, err
			}
			data, err := gio.ReadBuffer(r)
			if err != nil {
				return 0, err
			}
			if err := applyExtension(p, int(key), data, &fdCount); err != nil {
				return 0, err
			}
		}
	}

	n, err := gio.ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	p.Alloc(int(n))
	buf := make([]byte, n)
	if _, err := stdio.ReadFull(r, buf); err != nil {
		return 0, err
	}
	p.SetData(buf)
	return fdCount, nil
}

func applyExtension(p *gavl.Packet, key int, data []byte, fdCount *int) error {
	rd := &bytesReader{data: data}
	switch key {
	case extDuration:
		v, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.Duration = v
	case extHeaderSize:
		v, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.HeaderSize = uint32(v)
	case extSeqEndPos:
		v, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.SequenceEndPos = uint32(v)
	case extTimecode:
		if len(data) != 8 {
			return parseErrorf("timecode extension: want 8 bytes, got %d", len(data))
		}
		var tc uint64
		for _, b := range data {
			tc = tc<<8 | uint64(b)
		}
		p.Timecode = tc
	case extSrcRect:
		x, _ := gio.ReadVarint(rd)
		y, _ := gio.ReadVarint(rd)
		w, _ := gio.ReadVarint(rd)
		h, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.SrcRect = gavl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}
	case extDstCoords:
		x, _ := gio.ReadVarint(rd)
		y, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.DstX, p.DstY = int32(x), int32(y)
	case extField2Offset:
		v, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.Field2Offset = uint32(v)
	case extInterlaceMode:
		v, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.InterlaceMode = gavl.InterlaceMode(v)
	case extFDCount:
		v, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		*fdCount = int(v)
	case extBufIdx:
		v, err := gio.ReadVarint(rd)
		if err != nil {
			return err
		}
		p.BufIdx = int32(v)
	default:
		// Unrecognised extension keys are skipped: forward compatibility
		// within a session, never promised across versions.
	}
	return nil
}

type bytesReader struct {
	data []byte
	pos  int
}

func (r *bytesReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, stdio.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
