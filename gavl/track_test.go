/*
NAME
  track_test.go

DESCRIPTION
  track_test.go provides testing to validate utilities found in track.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "testing"

func TestTrackAppendStreamOrdinalOrder(t *testing.T) {
	track := NewTrack()
	track.AppendStream(StreamTypeMsg)
	track.AppendStream(StreamTypeAudio)
	track.AppendStream(StreamTypeVideo)
	track.AppendStream(StreamTypeText)

	want := []string{StreamTypeAudio, StreamTypeVideo, StreamTypeText, StreamTypeMsg}
	for i, w := range want {
		s, ok := track.StreamAt(i)
		if !ok {
			t.Fatalf("StreamAt(%d) not ok", i)
		}
		if s.Type() != w {
			t.Errorf("StreamAt(%d).Type() = %q, want %q", i, s.Type(), w)
		}
	}
}

func TestTrackStreamIDsStableAcrossDeletion(t *testing.T) {
	track := NewTrack()
	a := track.AppendStream(StreamTypeAudio)
	v := track.AppendStream(StreamTypeVideo)

	idA, idV := a.ID(), v.ID()
	track.DeleteStreamByType(StreamTypeAudio, 0)

	remaining, ok := track.StreamAt(0)
	if !ok {
		t.Fatal("no stream remaining after delete")
	}
	if remaining.ID() != idV {
		t.Errorf("remaining stream id = %d, want %d (stable across delete)", remaining.ID(), idV)
	}
	_ = idA
}

func TestTrackStreamIdxAbsRelConversion(t *testing.T) {
	track := NewTrack()
	track.AppendStream(StreamTypeAudio)
	track.AppendStream(StreamTypeAudio)
	track.AppendStream(StreamTypeVideo)

	typ, rel, ok := track.StreamIdxAbsToRel(2)
	if !ok || typ != StreamTypeVideo || rel != 0 {
		t.Errorf("StreamIdxAbsToRel(2) = %q, %d, %v, want video, 0, true", typ, rel, ok)
	}

	abs, ok := track.StreamIdxRelToAbs(StreamTypeAudio, 1)
	if !ok || abs != 1 {
		t.Errorf("StreamIdxRelToAbs(audio, 1) = %d, %v, want 1, true", abs, ok)
	}
}

func TestTrackApplyFooterMergesStats(t *testing.T) {
	track := NewTrack()
	track.AppendStream(StreamTypeAudio)

	footer := NewTrack()
	fs := footer.AppendStream(StreamTypeAudio)
	stats := NewStreamStats()
	p := NewPacket()
	p.SetData(make([]byte, 10))
	stats.Update(p)
	fs.D.SetDictionaryField(KeyStreamStats, stats.ToDictionary())

	track.ApplyFooter(footer)

	s, _ := track.StreamAt(0)
	got, ok := s.D.GetDictionary(KeyStreamStats)
	if !ok {
		t.Fatal("stats not merged from footer")
	}
	n, _ := got.GetLong(KeyStatsPackets)
	if n != 1 {
		t.Errorf("merged stats packets = %d, want 1", n)
	}
}

func TestMediaInfoAppendAndFetchTrack(t *testing.T) {
	mi := NewMediaInfo()
	tr := mi.AppendTrack()
	tr.Metadata().SetString(KeyLabel, "camera-1")

	got, ok := mi.Track(0)
	if !ok {
		t.Fatal("Track(0) not ok")
	}
	label, _ := got.Metadata().GetString(KeyLabel)
	if label != "camera-1" {
		t.Errorf("label = %q, want %q", label, "camera-1")
	}
}
