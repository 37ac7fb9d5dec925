/*
NAME
  packet.go

DESCRIPTION
  Packet is one unit of compressed data, self-delimited, with its own
  timing. Packets are padded with PacketPadding zero bytes past their
  logical length so that callers which read slightly past the declared end
  (as SIMD bitstream readers do) never read out of bounds.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "github.com/ausocean/gavf/buffer"

// PacketPadding is the number of zero bytes reserved past a packet's
// logical payload length.
const PacketPadding = 32

// Packet flag bits. FrameType occupies the two low bits.
const (
	FrameTypeMask = 0x3
	FrameI        = 0
	FrameP        = 1
	FrameB        = 2

	PacketKeyframe = 1 << (iota + 1)
	PacketLast
	PacketRef
	PacketNoOutput
	PacketFieldPic
	PacketSkip
)

// TimecodeUndefined marks a packet with no timecode.
const TimecodeUndefined uint64 = ^uint64(0)

// InterlaceMode reuses the video format's InterlaceMode enum; packets
// carry InterlaceNone when the field is not applicable.

// Rect is an integer source rectangle.
type Rect struct {
	X, Y, W, H int32
}

// ExtradataType distinguishes the two kinds of per-packet extradata.
type ExtradataType int

const (
	ExtradataNone ExtradataType = iota
	ExtradataPalette
	ExtradataFDs
)

// Packet carries one unit of compressed data plus its timing and framing
// metadata.
type Packet struct {
	buf buffer.Buffer

	Flags    int
	StreamID int32

	PTS    int64
	DTS    int64
	PESPTS int64 // optional, GAVL_TIME_UNDEFINED-alike sentinel when unused

	Duration int64

	FilePosition int64

	Field2Offset    uint32 // byte offset of the second field's payload, for interlaced paired fields
	HeaderSize      uint32 // size of an in-band repeated codec header at the start of the payload
	SequenceEndPos  uint32

	InterlaceMode InterlaceMode
	Timecode      uint64

	SrcRect   Rect
	DstX, DstY int32

	// BufIdx selects a pre-registered frame-storage buffer the payload
	// should land in; -1 means unset.
	BufIdx int32

	extradataType ExtradataType
	palette       []byte
	fds           []int

	// duplicated from encoder/demuxer bookkeeping, not serialized:
	// the codec header byte count already accounted for within Data.
}

// NewPacket returns a new, empty Packet with BufIdx unset and
// PESPTS/Timecode undefined.
func NewPacket() *Packet {
	p := &Packet{}
	p.Init()
	return p
}

// Init resets p to its zero, empty state.
func (p *Packet) Init() {
	*p = Packet{}
	p.BufIdx = -1
	p.Timecode = TimecodeUndefined
}

// Alloc ensures p's data buffer has room for at least length bytes of
// payload plus PacketPadding trailing zero bytes.
func (p *Packet) Alloc(length int) {
	p.buf.AppendPad(make([]byte, length), PacketPadding)
}

// SetData replaces p's payload with a copy of data.
func (p *Packet) SetData(data []byte) {
	p.buf.Reset()
	p.buf.AppendPad(data, PacketPadding)
}

// Data returns p's logical payload (not including padding).
func (p *Packet) Data() []byte {
	return p.buf.Bytes()
}

// Free releases p's payload buffer and resets metadata.
func (p *Packet) Free() {
	p.buf.Free()
	p.Init()
}

// Reset clears p's fields but keeps the payload buffer's allocated
// capacity for reuse.
func (p *Packet) Reset() {
	buf := p.buf
	buf.Reset()
	*p = Packet{buf: buf}
	p.BufIdx = -1
	p.Timecode = TimecodeUndefined
}

// FrameType returns the packet's frame type (FrameI/FrameP/FrameB).
func (p *Packet) FrameType() int { return p.Flags & FrameTypeMask }

// SetFrameType sets the packet's frame type, preserving other flags.
func (p *Packet) SetFrameType(t int) {
	p.Flags = (p.Flags &^ FrameTypeMask) | (t & FrameTypeMask)
}

// IsKeyframe, IsLast etc. are readability wrappers over Flags.
func (p *Packet) IsKeyframe() bool { return p.Flags&PacketKeyframe != 0 }
func (p *Packet) IsLast() bool     { return p.Flags&PacketLast != 0 }
func (p *Packet) IsRef() bool      { return p.Flags&PacketRef != 0 }
func (p *Packet) NoOutput() bool   { return p.Flags&PacketNoOutput != 0 }
func (p *Packet) IsFieldPic() bool { return p.Flags&PacketFieldPic != 0 }
func (p *Packet) IsSkip() bool     { return p.Flags&PacketSkip != 0 }

// CopyMetadata copies everything from src to p except the payload buffer.
func (p *Packet) CopyMetadata(src *Packet) {
	buf := p.buf
	*p = *src
	p.buf = buf
	p.palette = append([]byte(nil), src.palette...)
	p.fds = append([]int(nil), src.fds...)
}

// Copy returns a deep copy of p, including its payload.
func (p *Packet) Copy() *Packet {
	np := &Packet{}
	np.CopyMetadata(p)
	np.buf = *p.buf.Copy()
	return np
}

// MergeField2 concatenates field2's payload onto p's, records the byte
// offset of the second field in Field2Offset, and clears the FieldPic
// flag (the merged packet is no longer a lone field).
func (p *Packet) MergeField2(field2 *Packet) {
	p.Field2Offset = uint32(len(p.Data()))
	combined := append(append([]byte(nil), p.Data()...), field2.Data()...)
	p.SetData(combined)
	p.Flags &^= PacketFieldPic
}

// AddExtradataPalette and AddExtradataFDs install extradata of their
// type, clearing any previous extradata slot (only one is active at a
// time).
func (p *Packet) AddExtradataPalette(palette []byte) {
	p.extradataType = ExtradataPalette
	p.palette = append([]byte(nil), palette...)
	p.fds = nil
}

func (p *Packet) AddExtradataFDs(fds []int) {
	p.extradataType = ExtradataFDs
	p.fds = append([]int(nil), fds...)
	p.palette = nil
}

// GetExtradata returns the active extradata slot's type and contents.
func (p *Packet) GetExtradata() (t ExtradataType, palette []byte, fds []int) {
	return p.extradataType, p.palette, p.fds
}
