/*
NAME
  format_test.go

DESCRIPTION
  format_test.go provides testing to validate utilities found in format.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import "testing"

func TestAudioFormatDictionaryRoundTrip(t *testing.T) {
	af := &AudioFormat{
		SamplesPerFrame: 1024,
		Samplerate:      48000,
		NumChannels:     2,
		SampleFormat:    SampleS16,
		InterleaveMode:  InterleaveAll,
		CenterLevel:     0.707,
		RearLevel:       0.5,
	}
	af.ChannelLocations[0] = ChanFL
	af.ChannelLocations[1] = ChanFR

	d := af.ToDictionary()
	got := AudioFormatFromDictionary(d)

	if !af.Equal(got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", af, got)
	}
}

func TestVideoFormatDictionaryRoundTrip(t *testing.T) {
	vf := &VideoFormat{
		ImageWidth: 320, ImageHeight: 240,
		FrameWidth: 320, FrameHeight: 240,
		PixelWidth: 1, PixelHeight: 1,
		FrameDuration: 1, Timescale: 25,
		PixelFormat:     "yuv-420-p",
		InterlaceMode:   InterlaceNone,
		FramerateMode:   FramerateConstant,
		ChromaPlacement: ChromaMPEG2,
	}
	d := vf.ToDictionary()
	got := VideoFormatFromDictionary(d)
	if !vf.Equal(got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", vf, got)
	}
}

func TestVideoFormatTimecodeRoundTrip(t *testing.T) {
	vf := &VideoFormat{Timescale: 25, TimecodeFramerate: 25, TimecodeFlags: 1}
	d := vf.ToDictionary()
	got := VideoFormatFromDictionary(d)
	if got.TimecodeFramerate != 25 || got.TimecodeFlags != 1 {
		t.Errorf("timecode round trip = %+v", got)
	}
}

func TestAudioFormatBufferSize(t *testing.T) {
	af := &AudioFormat{SamplesPerFrame: 1024, NumChannels: 2, SampleFormat: SampleS16}
	if got, want := af.BufferSize(), 1024*2*2; got != want {
		t.Errorf("BufferSize() = %d, want %d", got, want)
	}
}

func TestChromaSubsampling420(t *testing.T) {
	vf := &VideoFormat{PixelFormat: "yuv-420-p"}
	h, v := vf.ChromaSubsampling()
	if h != 2 || v != 2 {
		t.Errorf("ChromaSubsampling() = %d,%d, want 2,2", h, v)
	}
}
