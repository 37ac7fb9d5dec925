/*
NAME
  format.go

DESCRIPTION
  Audio and video format descriptors are fixed-layout records (not
  dictionaries); they serialize to/from Dictionary via a stable set of
  short-string enum encodings. The pixel-format conversion tables, scaling
  kernels and colorspace code that would normally back a richer PixelFormat
  type are out of scope here; pixel formats are carried as opaque
  short-code strings, sufficient for description and round-trip but
  not for decoding.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

// MaxChannels bounds the fixed channel_locations array so AudioFormat
// remains a comparable, fixed-layout record.
const MaxChannels = 64

// SampleFormat enumerates audio sample encodings.
type SampleFormat int

const (
	SampleUnknown SampleFormat = iota
	SampleU8
	SampleS8
	SampleU16
	SampleS16
	SampleS32
	SampleFloat
	SampleDouble
)

var sampleFormatNames = map[SampleFormat]string{
	SampleUnknown: "unknown",
	SampleU8:      "u8",
	SampleS8:      "s8",
	SampleU16:     "u16",
	SampleS16:     "s16",
	SampleS32:     "s32",
	SampleFloat:   "float",
	SampleDouble:  "double",
}

func (s SampleFormat) String() string { return lookupOr(sampleFormatNames, s, "unknown") }

// InterleaveMode enumerates how audio channels are interleaved in a frame.
type InterleaveMode int

const (
	InterleaveNone InterleaveMode = iota
	InterleavePairs
	InterleaveAll
)

var interleaveModeNames = map[InterleaveMode]string{
	InterleaveNone:  "none",
	InterleavePairs: "pairs",
	InterleaveAll:   "all",
}

func (m InterleaveMode) String() string { return lookupOr(interleaveModeNames, m, "none") }

// ChannelLocation enumerates the role of a single audio channel.
type ChannelLocation int

const (
	ChanUnknown ChannelLocation = iota
	ChanFC
	ChanFL
	ChanFR
	ChanFCL
	ChanFCR
	ChanRC
	ChanRL
	ChanRR
	ChanSL
	ChanSR
	ChanLFE
	ChanAux
)

var channelLocationNames = map[ChannelLocation]string{
	ChanUnknown: "unknown",
	ChanFC:      "fc",
	ChanFL:      "fl",
	ChanFR:      "fr",
	ChanFCL:     "fcl",
	ChanFCR:     "fcr",
	ChanRC:      "rc",
	ChanRL:      "rl",
	ChanRR:      "rr",
	ChanSL:      "sl",
	ChanSR:      "sr",
	ChanLFE:     "lfe",
	ChanAux:     "aux",
}

func (c ChannelLocation) String() string { return lookupOr(channelLocationNames, c, "unknown") }

// AudioFormat is a fixed-layout audio format record.
type AudioFormat struct {
	SamplesPerFrame int32
	Samplerate      int32
	NumChannels     int32
	SampleFormat    SampleFormat
	InterleaveMode  InterleaveMode
	CenterLevel     float64
	RearLevel       float64

	// ChannelLocations holds NumChannels entries; the remainder is unused.
	ChannelLocations [MaxChannels]ChannelLocation
}

// Equal reports whether af and other describe the same format. Format
// records are comparable with == in Go (all fields are fixed-size), but
// Equal is kept so call sites read the same as the source's
// gavl_audio_format_equal.
func (af *AudioFormat) Equal(other *AudioFormat) bool {
	return *af == *other
}

// SampleSize returns the size in bytes of a single sample in this format.
func (af *AudioFormat) SampleSize() int {
	switch af.SampleFormat {
	case SampleU8, SampleS8:
		return 1
	case SampleU16, SampleS16:
		return 2
	case SampleS32, SampleFloat:
		return 4
	case SampleDouble:
		return 8
	default:
		return 0
	}
}

// BufferSize returns the size in bytes of one frame's worth of audio in
// this format (samples_per_frame * num_channels * sample_size).
func (af *AudioFormat) BufferSize() int {
	return int(af.SamplesPerFrame) * int(af.NumChannels) * af.SampleSize()
}

// ChannelRoleCount returns the number of channels whose role is loc.
func (af *AudioFormat) ChannelRoleCount(loc ChannelLocation) int {
	n := 0
	for i := 0; i < int(af.NumChannels) && i < MaxChannels; i++ {
		if af.ChannelLocations[i] == loc {
			n++
		}
	}
	return n
}

// NearestSupportedSamplerate returns the entry of supported nearest to
// af.Samplerate. If supported is empty, af.Samplerate is returned
// unchanged.
func (af *AudioFormat) NearestSupportedSamplerate(supported []int32) int32 {
	if len(supported) == 0 {
		return af.Samplerate
	}
	best := supported[0]
	bestDiff := abs32(af.Samplerate - best)
	for _, s := range supported[1:] {
		if d := abs32(af.Samplerate - s); d < bestDiff {
			best, bestDiff = s, d
		}
	}
	return best
}

func abs32(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}

// ToDictionary serializes af into a Dictionary using the well-known audio
// format keys.
func (af *AudioFormat) ToDictionary() *Dictionary {
	d := NewDictionary()
	d.SetInt(KeySamplesPerFrame, af.SamplesPerFrame)
	d.SetInt(KeySamplerate, af.Samplerate)
	d.SetInt(KeyNumChannels, af.NumChannels)
	d.SetString(KeySampleFormat, af.SampleFormat.String())
	d.SetString(KeyInterleaveMode, af.InterleaveMode.String())
	d.SetFloat(KeyCenterLevel, af.CenterLevel)
	d.SetFloat(KeyRearLevel, af.RearLevel)

	locs := NewArray()
	for i := 0; i < int(af.NumChannels) && i < MaxChannels; i++ {
		var v Value
		v.SetString(af.ChannelLocations[i].String())
		locs.Push(v)
	}
	d.SetArrayField(KeyChannelLocations, locs)
	return d
}

// AudioFormatFromDictionary deserializes an AudioFormat from d.
func AudioFormatFromDictionary(d *Dictionary) *AudioFormat {
	af := &AudioFormat{}
	if n, ok := d.GetInt(KeySamplesPerFrame); ok {
		af.SamplesPerFrame = n
	}
	if n, ok := d.GetInt(KeySamplerate); ok {
		af.Samplerate = n
	}
	if n, ok := d.GetInt(KeyNumChannels); ok {
		af.NumChannels = n
	}
	if s, ok := d.GetString(KeySampleFormat); ok {
		af.SampleFormat = sampleFormatFromString(s)
	}
	if s, ok := d.GetString(KeyInterleaveMode); ok {
		af.InterleaveMode = interleaveModeFromString(s)
	}
	// NOTE: the original assigns the parsed float into an integer-typed
	// field for center_level, a long-standing upstream bug; this
	// implementation reads it correctly as a float.
	if f, ok := d.GetFloat(KeyCenterLevel); ok {
		af.CenterLevel = f
	}
	if f, ok := d.GetFloat(KeyRearLevel); ok {
		af.RearLevel = f
	}
	if locs, ok := d.GetArray(KeyChannelLocations); ok {
		for i := 0; i < locs.Len() && i < MaxChannels; i++ {
			v, _ := locs.Get(i)
			s, _ := v.GetString()
			af.ChannelLocations[i] = channelLocationFromString(s)
		}
	}
	return af
}

func sampleFormatFromString(s string) SampleFormat {
	for k, v := range sampleFormatNames {
		if v == s {
			return k
		}
	}
	return SampleUnknown
}

func interleaveModeFromString(s string) InterleaveMode {
	for k, v := range interleaveModeNames {
		if v == s {
			return k
		}
	}
	return InterleaveNone
}

func channelLocationFromString(s string) ChannelLocation {
	for k, v := range channelLocationNames {
		if v == s {
			return k
		}
	}
	return ChanUnknown
}

// --- Video format ---

// InterlaceMode enumerates field order / progressiveness.
type InterlaceMode int

const (
	InterlaceUnknown InterlaceMode = iota
	InterlaceNone                  // progressive ("p")
	InterlaceTopFirst
	InterlaceBottomFirst
	InterlaceMixed
	InterlaceTopFirstPlusP
	InterlaceBottomFirstPlusP
)

var interlaceModeNames = map[InterlaceMode]string{
	InterlaceUnknown:          "unknown",
	InterlaceNone:             "p",
	InterlaceTopFirst:         "t",
	InterlaceBottomFirst:      "b",
	InterlaceMixed:            "mixed",
	InterlaceTopFirstPlusP:    "t+p",
	InterlaceBottomFirstPlusP: "b+p",
}

func (m InterlaceMode) String() string { return lookupOr(interlaceModeNames, m, "unknown") }

// FramerateMode enumerates how frame_duration should be interpreted.
type FramerateMode int

const (
	FramerateUnknown FramerateMode = iota
	FramerateConstant
	FramerateVFR
	FramerateStill
)

var framerateModeNames = map[FramerateMode]string{
	FramerateUnknown:  "unknown",
	FramerateConstant: "constant",
	FramerateVFR:      "vfr",
	FramerateStill:    "still",
}

func (m FramerateMode) String() string { return lookupOr(framerateModeNames, m, "unknown") }

// ChromaPlacement enumerates chroma siting conventions.
type ChromaPlacement int

const (
	ChromaMPEG1 ChromaPlacement = iota
	ChromaMPEG2
	ChromaDVPAL
)

var chromaPlacementNames = map[ChromaPlacement]string{
	ChromaMPEG1: "mpeg1",
	ChromaMPEG2: "mpeg2",
	ChromaDVPAL: "dvpal",
}

func (c ChromaPlacement) String() string { return lookupOr(chromaPlacementNames, c, "mpeg2") }

// VideoFormat is a fixed-layout video format record.
type VideoFormat struct {
	ImageWidth, ImageHeight int32
	FrameWidth, FrameHeight int32
	PixelWidth, PixelHeight int32
	FrameDuration           int64
	Timescale               int32
	PixelFormat             string // opaque short code, e.g. "yuv-420-p"
	InterlaceMode           InterlaceMode
	FramerateMode           FramerateMode
	ChromaPlacement         ChromaPlacement

	// Timecode, when TimecodeFramerate is non-zero.
	TimecodeFramerate int32
	TimecodeFlags     int32
}

// Equal reports whether vf and other describe the same format.
func (vf *VideoFormat) Equal(other *VideoFormat) bool {
	return *vf == *other
}

// ImageSize returns the frame's pixel dimensions as (width, height).
func (vf *VideoFormat) ImageSize() (w, h int32) {
	return vf.ImageWidth, vf.ImageHeight
}

// ChromaSubsampling returns the (horizontal, vertical) chroma
// subsampling factors implied by the short pixel format code, defaulting
// to 4:4:4 (1,1) for unrecognised codes since the actual conversion
// tables are out of scope.
func (vf *VideoFormat) ChromaSubsampling() (hsub, vsub int) {
	switch vf.PixelFormat {
	case "yuv-420-p", "yuv-420-p10", "yuvj-420-p":
		return 2, 2
	case "yuv-422-p", "yuvj-422-p":
		return 2, 1
	case "yuv-411-p":
		return 4, 1
	default:
		return 1, 1
	}
}

// ChromaPlacementOffset returns the chroma sample's sub-pixel offset from
// the co-sited luma sample, in units of 1/8 luma pixel, for the
// configured ChromaPlacement.
func (vf *VideoFormat) ChromaPlacementOffset() (xOff, yOff int) {
	switch vf.ChromaPlacement {
	case ChromaMPEG1:
		return 4, 4
	case ChromaMPEG2:
		return 0, 4
	case ChromaDVPAL:
		return 0, 8
	default:
		return 0, 4
	}
}

// FieldFormat reports whether vf describes field pictures and, if so,
// whether the top field is first.
func (vf *VideoFormat) FieldFormat() (interlaced, topFirst bool) {
	switch vf.InterlaceMode {
	case InterlaceTopFirst, InterlaceTopFirstPlusP:
		return true, true
	case InterlaceBottomFirst, InterlaceBottomFirstPlusP:
		return true, false
	case InterlaceMixed:
		return true, true
	default:
		return false, false
	}
}

// ToDictionary serializes vf into a Dictionary using the well-known video
// format keys.
func (vf *VideoFormat) ToDictionary() *Dictionary {
	d := NewDictionary()
	d.SetInt(KeyImageWidth, vf.ImageWidth)
	d.SetInt(KeyImageHeight, vf.ImageHeight)
	d.SetInt(KeyFrameWidth, vf.FrameWidth)
	d.SetInt(KeyFrameHeight, vf.FrameHeight)
	d.SetInt(KeyPixelWidth, vf.PixelWidth)
	d.SetInt(KeyPixelHeight, vf.PixelHeight)
	d.SetLong(KeyFrameDuration, vf.FrameDuration)
	d.SetInt(KeyTimescale, vf.Timescale)
	d.SetString(KeyPixelformat, vf.PixelFormat)
	d.SetString(KeyInterlaceMode, vf.InterlaceMode.String())
	d.SetString(KeyFramerateMode, vf.FramerateMode.String())
	d.SetString(KeyChromaPlacement, vf.ChromaPlacement.String())
	if vf.TimecodeFramerate != 0 {
		tc := d.GetDictionaryCreate(KeyTimecodeFormat)
		tc.SetInt(KeyTimecodeIntFramerate, vf.TimecodeFramerate)
		tc.SetInt(KeyTimecodeFlags, vf.TimecodeFlags)
	}
	return d
}

// VideoFormatFromDictionary deserializes a VideoFormat from d.
func VideoFormatFromDictionary(d *Dictionary) *VideoFormat {
	vf := &VideoFormat{}
	if n, ok := d.GetInt(KeyImageWidth); ok {
		vf.ImageWidth = n
	}
	if n, ok := d.GetInt(KeyImageHeight); ok {
		vf.ImageHeight = n
	}
	if n, ok := d.GetInt(KeyFrameWidth); ok {
		vf.FrameWidth = n
	}
	if n, ok := d.GetInt(KeyFrameHeight); ok {
		vf.FrameHeight = n
	}
	if n, ok := d.GetInt(KeyPixelWidth); ok {
		vf.PixelWidth = n
	}
	if n, ok := d.GetInt(KeyPixelHeight); ok {
		vf.PixelHeight = n
	}
	if n, ok := d.GetLong(KeyFrameDuration); ok {
		vf.FrameDuration = n
	}
	if n, ok := d.GetInt(KeyTimescale); ok {
		vf.Timescale = n
	}
	if s, ok := d.GetString(KeyPixelformat); ok {
		vf.PixelFormat = s
	}
	if s, ok := d.GetString(KeyInterlaceMode); ok {
		vf.InterlaceMode = interlaceModeFromString(s)
	}
	if s, ok := d.GetString(KeyFramerateMode); ok {
		vf.FramerateMode = framerateModeFromString(s)
	}
	if s, ok := d.GetString(KeyChromaPlacement); ok {
		vf.ChromaPlacement = chromaPlacementFromString(s)
	}
	if tc, ok := d.GetDictionary(KeyTimecodeFormat); ok {
		if n, ok := tc.GetInt(KeyTimecodeIntFramerate); ok {
			vf.TimecodeFramerate = n
		}
		if n, ok := tc.GetInt(KeyTimecodeFlags); ok {
			vf.TimecodeFlags = n
		}
	}
	return vf
}

func interlaceModeFromString(s string) InterlaceMode {
	for k, v := range interlaceModeNames {
		if v == s {
			return k
		}
	}
	return InterlaceUnknown
}

func framerateModeFromString(s string) FramerateMode {
	for k, v := range framerateModeNames {
		if v == s {
			return k
		}
	}
	return FramerateUnknown
}

func chromaPlacementFromString(s string) ChromaPlacement {
	for k, v := range chromaPlacementNames {
		if v == s {
			return k
		}
	}
	return ChromaMPEG2
}

func lookupOr[K comparable](m map[K]string, k K, fallback string) string {
	if s, ok := m[k]; ok {
		return s
	}
	return fallback
}
