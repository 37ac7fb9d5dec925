/*
NAME
  stats.go

DESCRIPTION
  StreamStats accumulates per-packet statistics (min/max size, min/max
  duration, first/last PTS, packet and byte counts) and finalizes them
  onto stream metadata: approximate duration, average bitrate, and for
  variable-framerate video whose observed per-packet duration turns out
  to be constant, a promotion to constant framerate. No average framerate
  is derived or written.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "gonum.org/v1/gonum/stat"

// StatsUndefined marks a min/max field as not yet observed.
const StatsUndefined = int64(-1)

// StreamStats accumulates statistics for one stream across the packets
// written (or read) for it.
type StreamStats struct {
	MinSize int64
	MaxSize int64
	MinDur  int64
	MaxDur  int64
	PTSStart int64
	PTSEnd   int64
	Packets  int64
	Bytes    int64

	seenAny bool
}

// NewStreamStats returns a zeroed StreamStats with all min/max fields
// undefined.
func NewStreamStats() *StreamStats {
	s := &StreamStats{}
	s.Init()
	return s
}

// Init resets s to the "no packets observed yet" state.
func (s *StreamStats) Init() {
	*s = StreamStats{MinSize: StatsUndefined, MaxSize: StatsUndefined, MinDur: StatsUndefined, MaxDur: StatsUndefined}
}

// Update folds one packet's statistics into s. Packets flagged NoOutput
// do not count toward duration (they represent decode-only data with no
// presentation time of their own, e.g. priming samples).
func (s *StreamStats) Update(p *Packet) {
	size := int64(len(p.Data()))
	if !s.seenAny {
		s.PTSStart = p.PTS
		s.MinSize, s.MaxSize = size, size
	} else {
		if size < s.MinSize {
			s.MinSize = size
		}
		if size > s.MaxSize {
			s.MaxSize = size
		}
	}
	s.PTSEnd = p.PTS
	s.Packets++
	s.Bytes += size
	s.seenAny = true

	if p.NoOutput() {
		return
	}
	if s.MinDur == StatsUndefined || p.Duration < s.MinDur {
		s.MinDur = p.Duration
	}
	if s.MaxDur == StatsUndefined || p.Duration > s.MaxDur {
		s.MaxDur = p.Duration
	}
}

// Merge folds other's statistics into s, as if every packet folded into
// other had instead been folded directly into s. Used to combine stats
// across multiple EDL source segments feeding one destination stream.
func (s *StreamStats) Merge(other *StreamStats) {
	if !other.seenAny {
		return
	}
	if !s.seenAny {
		*s = *other
		return
	}
	if other.MinSize < s.MinSize {
		s.MinSize = other.MinSize
	}
	if other.MaxSize > s.MaxSize {
		s.MaxSize = other.MaxSize
	}
	if other.MinDur != StatsUndefined && (s.MinDur == StatsUndefined || other.MinDur < s.MinDur) {
		s.MinDur = other.MinDur
	}
	if other.MaxDur != StatsUndefined && (s.MaxDur == StatsUndefined || other.MaxDur > s.MaxDur) {
		s.MaxDur = other.MaxDur
	}
	if other.PTSEnd > s.PTSEnd {
		s.PTSEnd = other.PTSEnd
	}
	s.Packets += other.Packets
	s.Bytes += other.Bytes
}

// ToDictionary serializes s into a Dictionary using the well-known stats
// keys.
func (s *StreamStats) ToDictionary() *Dictionary {
	d := NewDictionary()
	d.SetLong(KeyStatsMinSize, s.MinSize)
	d.SetLong(KeyStatsMaxSize, s.MaxSize)
	d.SetLong(KeyStatsMinDur, s.MinDur)
	d.SetLong(KeyStatsMaxDur, s.MaxDur)
	d.SetLong(KeyStatsPTSStart, s.PTSStart)
	d.SetLong(KeyStatsPTSEnd, s.PTSEnd)
	d.SetLong(KeyStatsPackets, s.Packets)
	d.SetLong(KeyStatsBytes, s.Bytes)
	return d
}

// StreamStatsFromDictionary deserializes a StreamStats from d.
func StreamStatsFromDictionary(d *Dictionary) *StreamStats {
	s := &StreamStats{}
	s.MinSize, _ = d.GetLong(KeyStatsMinSize)
	s.MaxSize, _ = d.GetLong(KeyStatsMaxSize)
	s.MinDur, _ = d.GetLong(KeyStatsMinDur)
	s.MaxDur, _ = d.GetLong(KeyStatsMaxDur)
	s.PTSStart, _ = d.GetLong(KeyStatsPTSStart)
	s.PTSEnd, _ = d.GetLong(KeyStatsPTSEnd)
	s.Packets, _ = d.GetLong(KeyStatsPackets)
	s.Bytes, _ = d.GetLong(KeyStatsBytes)
	s.seenAny = s.Packets > 0
	return s
}

// ApplyGeneric writes the stats dictionary onto stream metadata without
// deriving any format-specific fields (used for text/overlay/msg
// streams).
func (s *StreamStats) ApplyGeneric(stream *Stream) {
	stream.D.SetDictionaryField(KeyStreamStats, s.ToDictionary())
}

// ApplySubtitle is an alias of ApplyGeneric: subtitle/text streams carry
// no derived bitrate or framerate.
func (s *StreamStats) ApplySubtitle(stream *Stream) {
	s.ApplyGeneric(stream)
}

// ApplyAudio finalizes s onto an audio stream: writes the stats
// dictionary and derives approximate duration and average bitrate from
// (total bytes, pts range, timescale).
func (s *StreamStats) ApplyAudio(stream *Stream, timescale int32) {
	s.ApplyGeneric(stream)
	if timescale <= 0 || !s.seenAny {
		return
	}
	durationTicks := s.PTSEnd - s.PTSStart
	if durationTicks <= 0 {
		return
	}
	durationSec := float64(durationTicks) / float64(timescale)
	stream.Metadata().SetFloat(KeyApproxDuration, durationSec)
	if durationSec > 0 {
		bitrate := int32(float64(s.Bytes*8) / durationSec)
		stream.D.GetDictionaryCreate(KeyCompressionInfo).SetInt("bitrate", bitrate)
	}
}

// MeanPacketSize returns the arithmetic mean of sizes using
// gonum.org/v1/gonum/stat, for diagnostics callers that want an average
// distinct from the min/max tracked by StreamStats. Returns 0 for an empty
// slice.
func MeanPacketSize(sizes []float64) float64 {
	if len(sizes) == 0 {
		return 0
	}
	return stat.Mean(sizes, nil)
}

// ApplyVideo finalizes s onto a video stream: writes the stats
// dictionary and derives approximate duration and average bitrate. If the
// video format's framerate_mode is vfr but every observed packet had the
// same duration (MinDur == MaxDur), the format is promoted to constant
// framerate with that observed period. No average framerate is derived.
func (s *StreamStats) ApplyVideo(stream *Stream, timescale int32) {
	s.ApplyAudio(stream, timescale) // duration + bitrate derivation is identical

	vf, ok := stream.VideoFormat()
	if !ok || !s.seenAny {
		return
	}
	if vf.FramerateMode == FramerateVFR && s.MinDur != StatsUndefined && s.MinDur == s.MaxDur && s.MinDur > 0 {
		vf.FramerateMode = FramerateConstant
		vf.FrameDuration = s.MinDur
		stream.SetVideoFormat(vf)
	}
}
