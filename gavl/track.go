/*
NAME
  track.go

DESCRIPTION
  Conventions layered on top of Dictionary that give it media semantics:
  media_info.children[] -> tracks[], track.streams[] -> streams, in the
  fixed ordinal order audio, video, text, overlay, msg. These helpers are
  the only sanctioned way to mutate a track's stream list, because the
  ordinal ordering invariant has to be maintained by the append API rather
  than by convention at each call site.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

// streamTypeOrder fixes the ordinal position of each stream type within
// track.streams[]: audio, then video, then text, then overlay, then msg.
var streamTypeOrder = map[string]int{
	StreamTypeAudio:   0,
	StreamTypeVideo:   1,
	StreamTypeText:    2,
	StreamTypeOverlay: 3,
	StreamTypeMsg:     4,
}

// MediaInfo is a Dictionary with a CHILDREN array of tracks and optional
// top-level METADATA.
type MediaInfo struct {
	D *Dictionary
}

// NewMediaInfo returns a new, empty MediaInfo.
func NewMediaInfo() *MediaInfo {
	mi := &MediaInfo{D: NewDictionary()}
	mi.D.SetArrayField(KeyChildren, NewArray())
	return mi
}

// Tracks returns the CHILDREN array.
func (mi *MediaInfo) Tracks() *Array {
	return mi.D.GetArrayCreate(KeyChildren)
}

// AppendTrack appends a new empty Track and returns it.
func (mi *MediaInfo) AppendTrack() *Track {
	d := NewDictionary()
	var v Value
	v.SetDictionary(d)
	mi.Tracks().Push(v)
	return &Track{D: d}
}

// Track returns the track at index idx.
func (mi *MediaInfo) Track(idx int) (*Track, bool) {
	v, ok := mi.Tracks().Get(idx)
	if !ok {
		return nil, false
	}
	d, ok := v.GetDictionary()
	if !ok {
		return nil, false
	}
	return &Track{D: d}, true
}

// Track is a Dictionary with METADATA, a STREAMS array and optional
// EXTERNAL_STREAMS.
type Track struct {
	D *Dictionary
}

// NewTrack returns a new, empty Track.
func NewTrack() *Track {
	t := &Track{D: NewDictionary()}
	t.D.SetArrayField(KeyStreams, NewArray())
	return t
}

// Metadata returns the track's METADATA sub-dictionary, creating it if
// absent.
func (t *Track) Metadata() *Dictionary {
	return t.D.GetDictionaryCreate(KeyMetadata)
}

// Streams returns the STREAMS array.
func (t *Track) Streams() *Array {
	return t.D.GetArrayCreate(KeyStreams)
}

// NumStreams returns the number of streams in the track.
func (t *Track) NumStreams() int {
	return t.Streams().Len()
}

// StreamAt returns the stream at absolute position idx.
func (t *Track) StreamAt(idx int) (*Stream, bool) {
	v, ok := t.Streams().Get(idx)
	if !ok {
		return nil, false
	}
	d, ok := v.GetDictionary()
	if !ok {
		return nil, false
	}
	return &Stream{D: d}, true
}

// AppendStream creates a new stream of the given type and inserts it into
// the STREAMS array at the correct ordinal position (audio, video, text,
// overlay, msg), returning the new Stream.
func (t *Track) AppendStream(streamType string) *Stream {
	d := NewDictionary()
	d.SetString(KeyStreamType, streamType)
	d.SetInt(KeyStreamID, t.nextStreamID())
	streams := t.Streams()

	insertAt := streams.Len()
	order := streamTypeOrder[streamType]
	for i := 0; i < streams.Len(); i++ {
		v, _ := streams.Get(i)
		sd, _ := v.GetDictionary()
		sType, _ := sd.GetString(KeyStreamType)
		if streamTypeOrder[sType] > order {
			insertAt = i
			break
		}
	}
	var v Value
	v.SetDictionary(d)
	streams.SpliceVal(insertAt, 0, v)
	return &Stream{D: d}
}

// nextStreamID returns a stream id one higher than the current maximum,
// so ids remain stable across reconfiguration even as ordinal positions
// shift.
func (t *Track) nextStreamID() int32 {
	max := int32(-1)
	streams := t.Streams()
	for i := 0; i < streams.Len(); i++ {
		v, _ := streams.Get(i)
		sd, _ := v.GetDictionary()
		if id, ok := sd.GetInt(KeyStreamID); ok && id > max {
			max = id
		}
	}
	return max + 1
}

// DeleteStreamByType removes the idx'th stream (relative to its type) of
// the given type.
func (t *Track) DeleteStreamByType(streamType string, relIdx int) bool {
	streams := t.Streams()
	count := 0
	for i := 0; i < streams.Len(); i++ {
		v, _ := streams.Get(i)
		sd, _ := v.GetDictionary()
		sType, _ := sd.GetString(KeyStreamType)
		if sType != streamType {
			continue
		}
		if count == relIdx {
			streams.SpliceVal(i, 1)
			return true
		}
		count++
	}
	return false
}

// StreamIdxAbsToRel converts an absolute stream index to a (type, relative
// index within that type) pair.
func (t *Track) StreamIdxAbsToRel(abs int) (streamType string, rel int, ok bool) {
	streams := t.Streams()
	counts := map[string]int{}
	for i := 0; i < streams.Len(); i++ {
		v, _ := streams.Get(i)
		sd, _ := v.GetDictionary()
		sType, _ := sd.GetString(KeyStreamType)
		if i == abs {
			return sType, counts[sType], true
		}
		counts[sType]++
	}
	return "", 0, false
}

// StreamIdxRelToAbs converts a (type, relative index) pair to an absolute
// stream index.
func (t *Track) StreamIdxRelToAbs(streamType string, rel int) (abs int, ok bool) {
	streams := t.Streams()
	count := 0
	for i := 0; i < streams.Len(); i++ {
		v, _ := streams.Get(i)
		sd, _ := v.GetDictionary()
		sType, _ := sd.GetString(KeyStreamType)
		if sType != streamType {
			continue
		}
		if count == rel {
			return i, true
		}
		count++
	}
	return 0, false
}

// ApplyFooter merges the serialized stats dictionary back into the
// track's streams, stream-for-stream by ordinal.
func (t *Track) ApplyFooter(footer *Track) {
	for i := 0; i < t.NumStreams(); i++ {
		s, ok := t.StreamAt(i)
		if !ok {
			continue
		}
		fs, ok := footer.StreamAt(i)
		if !ok {
			continue
		}
		if stats, ok := fs.D.GetDictionary(KeyStreamStats); ok {
			s.D.SetDictionaryField(KeyStreamStats, stats.Copy())
		}
	}
}

// Stream is a Dictionary describing one track of media within a Track.
type Stream struct {
	D *Dictionary
}

// Type returns the stream's type (audio|video|text|overlay|msg).
func (s *Stream) Type() string {
	t, _ := s.D.GetString(KeyStreamType)
	return t
}

// ID returns the stream's stable numeric id.
func (s *Stream) ID() int32 {
	id, _ := s.D.GetInt(KeyStreamID)
	return id
}

// Metadata returns the stream's METADATA sub-dictionary, creating it if
// absent.
func (s *Stream) Metadata() *Dictionary {
	return s.D.GetDictionaryCreate(KeyMetadata)
}

// SetAudioFormat / AudioFormat manage the stream's audio_format child.
func (s *Stream) SetAudioFormat(af *AudioFormat) {
	s.D.SetDictionaryField(KeyAudioFormat, af.ToDictionary())
}

func (s *Stream) AudioFormat() (*AudioFormat, bool) {
	d, ok := s.D.GetDictionary(KeyAudioFormat)
	if !ok {
		return nil, false
	}
	return AudioFormatFromDictionary(d), true
}

// SetVideoFormat / VideoFormat manage the stream's video_format child.
func (s *Stream) SetVideoFormat(vf *VideoFormat) {
	s.D.SetDictionaryField(KeyVideoFormat, vf.ToDictionary())
}

func (s *Stream) VideoFormat() (*VideoFormat, bool) {
	d, ok := s.D.GetDictionary(KeyVideoFormat)
	if !ok {
		return nil, false
	}
	return VideoFormatFromDictionary(d), true
}

// Stats returns the stream's STREAM_STATS sub-dictionary, creating it if
// absent.
func (s *Stream) Stats() *Dictionary {
	return s.D.GetDictionaryCreate(KeyStreamStats)
}

// Segments returns the stream's EDL segments array, creating it if absent
// (only meaningful for EDL streams).
func (s *Stream) Segments() *Array {
	return s.D.GetArrayCreate(KeyEDLSegments)
}
