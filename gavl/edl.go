/*
NAME
  edl.go

DESCRIPTION
  An EDL (Edit Decision List) segment specifies a source (track index,
  stream index, packet timescale), a source time and a destination time
  plus duration, optionally with a speed ratio and a URI override. A
  stream with EDL owns a segments[] array; playback consults it to map
  destination times back to source reads.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "github.com/pkg/errors"

// Segment describes one EDL edit: a range of a source track/stream
// placed at a destination time on the EDL timeline.
type Segment struct {
	TrackIdx  int32
	StreamIdx int32
	Timescale int32

	SrcTime int64
	DstTime int64
	DstDur  int64

	SpeedNum int32
	SpeedDen int32

	URI string
}

// ErrInvalidSegment is returned by Finalize when a segment violates a
// structural invariant (timescale<=0, negative duration, etc).
var ErrInvalidSegment = errors.New("edl: invalid segment")

// ToValue serializes seg as a Dictionary value, for storage in a stream's
// EDL_SEGMENTS array.
func (seg *Segment) ToValue() Value {
	d := NewDictionary()
	d.SetInt(KeyEDLTrackIdx, seg.TrackIdx)
	d.SetInt(KeyEDLStreamIdx, seg.StreamIdx)
	d.SetInt(KeyEDLTimescale, seg.Timescale)
	d.SetLong(KeyEDLSrcTime, seg.SrcTime)
	d.SetLong(KeyEDLDstTime, seg.DstTime)
	d.SetLong(KeyEDLDstDur, seg.DstDur)
	if seg.SpeedNum != 0 || seg.SpeedDen != 0 {
		d.SetInt(KeyEDLSpeedNum, seg.SpeedNum)
		d.SetInt(KeyEDLSpeedDen, seg.SpeedDen)
	}
	if seg.URI != "" {
		d.SetString(KeyEDLURI, seg.URI)
	}
	var v Value
	v.SetDictionary(d)
	return v
}

// SegmentFromValue deserializes a Segment from a Dictionary value.
func SegmentFromValue(v *Value) (*Segment, bool) {
	d, ok := v.GetDictionary()
	if !ok {
		return nil, false
	}
	seg := &Segment{SpeedNum: 1, SpeedDen: 1}
	seg.TrackIdx, _ = d.GetInt(KeyEDLTrackIdx)
	seg.StreamIdx, _ = d.GetInt(KeyEDLStreamIdx)
	seg.Timescale, _ = d.GetInt(KeyEDLTimescale)
	seg.SrcTime, _ = d.GetLong(KeyEDLSrcTime)
	seg.DstTime, _ = d.GetLong(KeyEDLDstTime)
	seg.DstDur, _ = d.GetLong(KeyEDLDstDur)
	if n, ok := d.GetInt(KeyEDLSpeedNum); ok {
		seg.SpeedNum = n
	}
	if n, ok := d.GetInt(KeyEDLSpeedDen); ok {
		seg.SpeedDen = n
	}
	seg.URI, _ = d.GetString(KeyEDLURI)
	return seg, true
}

// AppendSegment appends seg to stream's EDL_SEGMENTS array.
func AppendSegment(stream *Stream, seg *Segment) {
	stream.Segments().Push(seg.ToValue())
}

// Segments returns the decoded segments of stream's EDL_SEGMENTS array,
// in order.
func Segments(stream *Stream) []*Segment {
	arr := stream.Segments()
	segs := make([]*Segment, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		v, _ := arr.Get(i)
		if seg, ok := SegmentFromValue(v); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

// AppendTrackToTimeline synthesizes one segment per stream of src that
// references the whole source track, placed at the current end time of
// the EDL track edlTrack (i.e. after any segments already appended).
// trackIdx is src's index within the media info that owns it.
func AppendTrackToTimeline(edlTrack *Track, trackIdx int32, src *Track) error {
	for i := 0; i < src.NumStreams(); i++ {
		srcStream, ok := src.StreamAt(i)
		if !ok {
			continue
		}
		var edlStream *Stream
		if i < edlTrack.NumStreams() {
			edlStream, _ = edlTrack.StreamAt(i)
		} else {
			edlStream = edlTrack.AppendStream(srcStream.Type())
		}

		timescale, dur := streamTimescaleAndDuration(srcStream)
		if timescale <= 0 {
			return errors.Wrapf(ErrInvalidSegment, "stream %d has no timescale", i)
		}

		dstTime := currentEndTime(edlStream)
		seg := &Segment{
			TrackIdx:  trackIdx,
			StreamIdx: int32(i),
			Timescale: timescale,
			SrcTime:   0,
			DstTime:   dstTime,
			DstDur:    dur,
			SpeedNum:  1,
			SpeedDen:  1,
		}
		AppendSegment(edlStream, seg)
	}

	// Track-level approximate duration grows by the source track's own
	// APPROX_DURATION metadata.
	dur, _ := src.Metadata().GetFloat(KeyApproxDuration)
	prev, _ := edlTrack.Metadata().GetFloat(KeyApproxDuration)
	edlTrack.Metadata().SetFloat(KeyApproxDuration, prev+dur)
	return nil
}

// streamTimescaleAndDuration returns a stream's packet timescale and its
// duration expressed in that timescale, derived from its format and
// approximate duration metadata.
func streamTimescaleAndDuration(s *Stream) (timescale int32, durTicks int64) {
	switch s.Type() {
	case StreamTypeAudio:
		if af, ok := s.AudioFormat(); ok {
			timescale = af.Samplerate
		}
	case StreamTypeVideo:
		if vf, ok := s.VideoFormat(); ok {
			timescale = vf.Timescale
		}
	}
	if timescale <= 0 {
		timescale = 1000
	}
	durSec, _ := s.Metadata().GetFloat(KeyApproxDuration)
	return timescale, int64(durSec * float64(timescale))
}

// currentEndTime returns the destination time immediately after stream's
// last segment (its DstTime plus DstDur), in that segment's own timescale
// units; 0 when the stream has no segments.
func currentEndTime(s *Stream) int64 {
	segs := Segments(s)
	if len(segs) == 0 {
		return 0
	}
	last := segs[len(segs)-1]
	return last.DstTime + last.DstDur
}

// FinalizeEDLStream verifies every segment's invariants (timescale>0,
// nonnegative durations, defined timestamps) and derives the stream's
// effective pts range from its first and last segments.
func FinalizeEDLStream(s *Stream) (ptsStart, ptsEnd int64, err error) {
	segs := Segments(s)
	if len(segs) == 0 {
		return 0, 0, nil
	}
	for i, seg := range segs {
		if seg.Timescale <= 0 {
			return 0, 0, errors.Wrapf(ErrInvalidSegment, "segment %d: timescale must be positive", i)
		}
		if seg.DstDur < 0 {
			return 0, 0, errors.Wrapf(ErrInvalidSegment, "segment %d: negative duration", i)
		}
		if seg.SrcTime < 0 || seg.DstTime < 0 {
			return 0, 0, errors.Wrapf(ErrInvalidSegment, "segment %d: undefined timestamp", i)
		}
	}
	first, last := segs[0], segs[len(segs)-1]
	return first.DstTime, last.DstTime + last.DstDur, nil
}
