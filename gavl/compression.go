/*
NAME
  compression.go

DESCRIPTION
  CompressionInfo carries per-stream codec identification, global header
  bytes and encoding flags. Packets carrying compressed data reference a
  stream's CompressionInfo by the stream's codec id; no codec is
  implemented here — compressed packets are passed opaquely.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "encoding/binary"

// CodecID identifies a compression format by short name. New codecs can be
// added without changing the wire format, since the id travels as a
// string in the serialized CompressionInfo dictionary.
type CodecID string

// Sentinel bitrate values.
const (
	BitrateVBR      = -1
	BitrateLossless = -2
)

// Compression flags.
const (
	CompPFrames      = 1 << iota // stream contains P frames
	CompBFrames                  // stream contains B frames
	CompFieldPics                // codec can produce field pictures
	CompSBRDouble                // SBR doubles the reported samplerate
	CompBigEndian                // global header / samples are big-endian
)

// CompressionInfo describes how a stream's packets are compressed.
type CompressionInfo struct {
	ID           CodecID
	Flags        int
	GlobalHeader []byte
	Bitrate      int // bits/sec, or BitrateVBR / BitrateLossless
	PaletteSize  int
	PreSkip      int // samples to discard at decode start (audio)
	VBVBufferSize int
	Fourcc       uint32
	BlockAlign   int
}

// knownExtensions maps a codec id to its file extension, a
// separate-stream hint and a MIME type. This is a small fixed table, not the large mechanical codec
// tables excluded from scope; it only covers the codecs exercised by this
// module's tests and the track schema's descriptive needs.
var knownExtensions = map[CodecID]struct {
	ext       string
	separate  bool
	mimetype  string
}{
	"h264":      {"h264", false, "video/h264"},
	"h265":      {"h265", false, "video/h265"},
	"mjpeg":     {"mjpeg", true, "video/x-motion-jpeg"},
	"jpeg":      {"jpg", true, "image/jpeg"},
	"aac":       {"aac", false, "audio/aac"},
	"pcm_s16le": {"raw", false, "audio/x-raw"},
	"adpcm":     {"adpcm", false, "audio/x-adpcm"},
}

// GetExtension returns the file extension conventionally used for codec
// id, and whether that codec's packets are normally stored as separate
// files rather than a single stream.
func GetExtension(id CodecID) (ext string, separate bool, ok bool) {
	e, found := knownExtensions[id]
	if !found {
		return "", false, false
	}
	return e.ext, e.separate, true
}

// GetMimetype returns the MIME type for a CompressionInfo's codec.
func GetMimetype(info *CompressionInfo) (string, bool) {
	e, ok := knownExtensions[info.ID]
	if !ok {
		return "", false
	}
	return e.mimetype, true
}

// knownSampleSizes gives the constant per-sample size in bits for codecs
// with a fixed sample size (0 = variable / not applicable).
var knownSampleSizes = map[CodecID]int{
	"pcm_s16le": 16,
	"pcm_s8":    8,
}

// GetSampleSize returns the constant sample size in bits for id, or
// (0, false) if id has no constant sample size.
func GetSampleSize(id CodecID) (int, bool) {
	n, ok := knownSampleSizes[id]
	return n, ok && n != 0
}

// needPixelformat lists video codecs whose packets require an accompanying
// pixel format (raw/near-raw codecs) as opposed to fully self-described
// compressed bitstreams.
var needPixelformatSet = map[CodecID]bool{
	"mjpeg": false,
	"h264":  false,
	"h265":  false,
	"raw":   true,
}

// NeedPixelformat reports whether packets of codec id must be paired with
// a pixel format to be interpreted.
func NeedPixelformat(id CodecID) bool {
	return needPixelformatSet[id]
}

// constantFrameSamples gives the fixed number of samples per frame for
// codecs with that property (0 = variable).
var constantFrameSamplesSet = map[CodecID]int{
	"aac": 1024,
}

// ConstantFrameSamples returns the fixed samples-per-frame for id, or
// (0, false) if it is variable.
func ConstantFrameSamples(id CodecID) (int, bool) {
	n, ok := constantFrameSamplesSet[id]
	return n, ok && n != 0
}

// ShortNameToCodecID and CodecIDToShortName translate between the codec
// id and its short display name; for this implementation they are
// identical since CodecID is already the short name.
func ShortNameToCodecID(name string) CodecID { return CodecID(name) }
func CodecIDToShortName(id CodecID) string   { return string(id) }

// Init resets ci to its zero value.
func (ci *CompressionInfo) Init() { *ci = CompressionInfo{} }

// Free is an alias for Init, kept for source parity.
func (ci *CompressionInfo) Free() { ci.Init() }

// Copy returns a deep copy of ci.
func (ci *CompressionInfo) Copy() *CompressionInfo {
	if ci == nil {
		return nil
	}
	cp := *ci
	cp.GlobalHeader = append([]byte(nil), ci.GlobalHeader...)
	return &cp
}

// SetGlobalHeader replaces ci's global header with a copy of hdr.
func (ci *CompressionInfo) SetGlobalHeader(hdr []byte) {
	ci.GlobalHeader = append([]byte(nil), hdr...)
}

// AppendGlobalHeader appends hdr to ci's existing global header.
func (ci *CompressionInfo) AppendGlobalHeader(hdr []byte) {
	ci.GlobalHeader = append(ci.GlobalHeader, hdr...)
}

// AppendXiphHeader appends a length-prefixed sub-header to codecHeader,
// implementing the Xiph-style multi-header packing used by codecs (e.g.
// Vorbis/Theora) whose global header is a sequence of sub-headers:
// [len:u32be][hdr bytes].
func AppendXiphHeader(codecHeader []byte, hdr []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(hdr)))
	codecHeader = append(codecHeader, lenBuf[:]...)
	codecHeader = append(codecHeader, hdr...)
	return codecHeader
}

// ExtractXiphHeader walks codecHeader's length-prefixed sub-header list
// and returns the idx'th sub-header.
func ExtractXiphHeader(codecHeader []byte, idx int) ([]byte, bool) {
	off := 0
	for i := 0; off+4 <= len(codecHeader); i++ {
		n := int(binary.BigEndian.Uint32(codecHeader[off : off+4]))
		off += 4
		if off+n > len(codecHeader) {
			return nil, false
		}
		if i == idx {
			return codecHeader[off : off+n], true
		}
		off += n
	}
	return nil, false
}
