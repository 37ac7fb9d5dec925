/*
NAME
  footer.go

DESCRIPTION
  The GAVFFOOT chunk: a dictionary whose tracks mirror the program
  header's track structure, with each stream carrying a STREAM_STATS
  child plus what StreamStats.Apply* derive from it (approximate duration
  and bitrate; for video, a copy of the video_format). BuildFooter assembles one from the per-stream StreamStats
  a Writer accumulated; a Reader merges it back onto the in-memory track
  via gavl.Track.ApplyFooter.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	"github.com/ausocean/gavf/gavl"
)

// BuildFooter assembles a footer track mirroring track's stream order,
// each carrying stats[streamID]'s accumulated statistics (if any),
// finalized the way gavl.StreamStats.Apply* derive duration/bitrate and
// the video VFR->CFR promotion onto real stream metadata.
func BuildFooter(track *gavl.Track, stats map[int32]*gavl.StreamStats) *gavl.Track {
	footer := gavl.NewTrack()
	for i := 0; i < track.NumStreams(); i++ {
		s, ok := track.StreamAt(i)
		if !ok {
			continue
		}
		fs := footer.AppendStream(s.Type())
		st, ok := stats[s.ID()]
		if !ok {
			st = gavl.NewStreamStats()
		}
		timescale := streamTimescale(s)
		switch s.Type() {
		case gavl.StreamTypeAudio:
			st.ApplyAudio(fs, timescale)
		case gavl.StreamTypeVideo:
			// ApplyVideo mutates the footer stream's own video_format to
			// promote VFR->CFR; copy the source format across first so it
			// has something to promote.
			if vf, ok := s.VideoFormat(); ok {
				fs.SetVideoFormat(vf)
			}
			st.ApplyVideo(fs, timescale)
		default:
			st.ApplyGeneric(fs)
		}
	}
	return footer
}

// streamTimescale returns the packet timescale to use for stats
// finalization: the audio samplerate, the video timescale, an explicit
// STREAM_PACKET_TIMESCALE override, or 1 if none apply.
func streamTimescale(s *gavl.Stream) int32 {
	if af, ok := s.AudioFormat(); ok && af.Samplerate > 0 {
		return af.Samplerate
	}
	if vf, ok := s.VideoFormat(); ok && vf.Timescale > 0 {
		return vf.Timescale
	}
	if ts, ok := s.Metadata().GetInt(gavl.KeyStreamPacketTimescale); ok && ts > 0 {
		return ts
	}
	return 1
}
