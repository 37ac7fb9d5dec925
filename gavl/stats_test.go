/*
NAME
  stats_test.go

DESCRIPTION
  stats_test.go provides testing to validate utilities found in stats.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import (
	"bytes"
	"testing"
)

func TestStreamStatsVFRtoCFRPromotion(t *testing.T) {
	track := NewTrack()
	stream := track.AppendStream(StreamTypeVideo)
	stream.SetVideoFormat(&VideoFormat{Timescale: 25, FramerateMode: FramerateVFR})

	stats := NewStreamStats()
	for i := int64(0); i < 10; i++ {
		p := NewPacket()
		p.PTS = i
		p.Duration = 1
		p.SetData(make([]byte, 100))
		stats.Update(p)
	}
	stats.ApplyVideo(stream, 25)

	vf, ok := stream.VideoFormat()
	if !ok {
		t.Fatal("video format missing after ApplyVideo")
	}
	if vf.FramerateMode != FramerateConstant {
		t.Errorf("FramerateMode = %v, want constant", vf.FramerateMode)
	}
	if vf.FrameDuration != 1 {
		t.Errorf("FrameDuration = %d, want 1", vf.FrameDuration)
	}
}

func TestStreamStatsRemainsVFRWhenDurationsVary(t *testing.T) {
	track := NewTrack()
	stream := track.AppendStream(StreamTypeVideo)
	stream.SetVideoFormat(&VideoFormat{Timescale: 25, FramerateMode: FramerateVFR})

	stats := NewStreamStats()
	for i, dur := range []int64{1, 2, 1, 3} {
		p := NewPacket()
		p.PTS = int64(i)
		p.Duration = dur
		p.SetData(make([]byte, 100))
		stats.Update(p)
	}
	stats.ApplyVideo(stream, 25)
	vf, _ := stream.VideoFormat()
	if vf.FramerateMode != FramerateVFR {
		t.Errorf("FramerateMode = %v, want still vfr", vf.FramerateMode)
	}
}

func TestStreamStatsNoOutputExcludedFromDuration(t *testing.T) {
	stats := NewStreamStats()
	p1 := NewPacket()
	p1.Duration = 5
	p1.SetData(make([]byte, 10))
	stats.Update(p1)

	p2 := NewPacket()
	p2.Duration = 999
	p2.Flags |= PacketNoOutput
	p2.SetData(make([]byte, 10))
	stats.Update(p2)

	if stats.MaxDur != 5 {
		t.Errorf("MaxDur = %d, want 5 (NoOutput packet's duration excluded)", stats.MaxDur)
	}
	if stats.Packets != 2 {
		t.Errorf("Packets = %d, want 2 (NoOutput still counted in total packets)", stats.Packets)
	}
}

func TestStreamStatsMerge(t *testing.T) {
	a := NewStreamStats()
	p1 := NewPacket()
	p1.PTS, p1.Duration = 0, 1
	p1.SetData(make([]byte, 10))
	a.Update(p1)

	b := NewStreamStats()
	p2 := NewPacket()
	p2.PTS, p2.Duration = 10, 1
	p2.SetData(make([]byte, 20))
	b.Update(p2)

	a.Merge(b)
	if a.Packets != 2 || a.Bytes != 30 {
		t.Errorf("merged stats = %+v, want Packets=2 Bytes=30", a)
	}
	if a.PTSEnd != 10 {
		t.Errorf("PTSEnd = %d, want 10", a.PTSEnd)
	}
}

func TestMeanPacketSize(t *testing.T) {
	mean := MeanPacketSize([]float64{100, 200, 300})
	if mean != 200 {
		t.Errorf("MeanPacketSize = %v, want 200", mean)
	}
	if got := MeanPacketSize(nil); got != 0 {
		t.Errorf("MeanPacketSize(nil) = %v, want 0", got)
	}
}

func TestRenderBitratePlot(t *testing.T) {
	png, err := RenderBitratePlot("test stream", []float64{100, 150, 120, 200})
	if err != nil {
		t.Fatalf("RenderBitratePlot: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output does not look like a PNG")
	}
}

func TestStreamStatsDictionaryRoundTrip(t *testing.T) {
	s := NewStreamStats()
	for i := int64(0); i < 3; i++ {
		p := NewPacket()
		p.PTS = i
		p.Duration = 2
		p.SetData(make([]byte, 50))
		s.Update(p)
	}
	d := s.ToDictionary()
	got := StreamStatsFromDictionary(d)
	if *got != *s {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", s, got)
	}
}
