/*
NAME
  keys.go

DESCRIPTION
  Well-known dictionary key names used by the track/stream schema.
  Unknown keys are preserved verbatim through copy, serialize and merge;
  these constants exist purely so call sites don't repeat string
  literals.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

// Audio format keys.
const (
	KeySamplesPerFrame  = "samples_per_frame"
	KeySamplerate       = "samplerate"
	KeyNumChannels      = "num_channels"
	KeySampleFormat     = "sample_format"
	KeyInterleaveMode   = "interleave_mode"
	KeyCenterLevel      = "center_level"
	KeyRearLevel        = "rear_level"
	KeyChannelLocations = "channel_locations"
)

// Video format keys.
const (
	KeyImageWidth           = "image_width"
	KeyImageHeight          = "image_height"
	KeyFrameWidth           = "frame_width"
	KeyFrameHeight          = "frame_height"
	KeyPixelWidth           = "pixel_width"
	KeyPixelHeight          = "pixel_height"
	KeyFrameDuration        = "frame_duration"
	KeyTimescale            = "timescale"
	KeyPixelformat          = "pixelformat"
	KeyInterlaceMode        = "interlace_mode"
	KeyFramerateMode        = "framerate_mode"
	KeyChromaPlacement      = "chroma_placement"
	KeyTimecodeFormat       = "timecode_format"
	KeyTimecodeIntFramerate = "int_framerate"
	KeyTimecodeFlags        = "flags"
)

// Track/stream schema keys.
const (
	KeyURI                    = "URI"
	KeyMimetype                = "MIMETYPE"
	KeySrc                     = "SRC"
	KeyChildren                = "CHILDREN"
	KeyStreams                 = "STREAMS"
	KeyStreamsExt              = "STREAMS_EXT"
	KeyMetadata                = "METADATA"
	KeyLabel                   = "LABEL"
	KeyMediaClass              = "MEDIA_CLASS"
	KeyApproxDuration          = "APPROX_DURATION"
	KeyStreamPacketTimescale   = "STREAM_PACKET_TIMESCALE"
	KeyStreamSampleTimescale   = "STREAM_SAMPLE_TIMESCALE"
	KeyStreamStats             = "STREAM_STATS"
	KeyStreamType              = "type"
	KeyStreamID                = "id"
	KeyAudioFormat             = "audio_format"
	KeyVideoFormat             = "video_format"
	KeyCompressionInfo         = "compression_info"
	KeyExternalStreams         = "external_streams"
	KeyGavf                    = "gavf"
)

// Stream stats keys.
const (
	KeyStatsMinSize  = "min_size"
	KeyStatsMaxSize  = "max_size"
	KeyStatsMinDur   = "min_duration"
	KeyStatsMaxDur   = "max_duration"
	KeyStatsPTSStart = "pts_start"
	KeyStatsPTSEnd   = "pts_end"
	KeyStatsPackets  = "total_packets"
	KeyStatsBytes    = "total_bytes"
)

// EDL keys.
const (
	KeyEDLSegments  = "EDL_SEGMENTS"
	KeyEDLTrackIdx  = "EDL_TRACK_IDX"
	KeyEDLStreamIdx = "EDL_STREAM_IDX"
	KeyEDLTimescale = "EDL_TIMESCALE"
	KeyEDLSrcTime   = "EDL_SRC_TIME"
	KeyEDLDstTime   = "EDL_DST_TIME"
	KeyEDLDstDur    = "EDL_DST_DUR"
	KeyEDLSpeedNum  = "EDL_SPEED_NUM"
	KeyEDLSpeedDen  = "EDL_SPEED_DEN"
	KeyEDLURI       = "EDL_URI"
)

// Stream type enum values, used as the value of KeyStreamType.
const (
	StreamTypeAudio   = "audio"
	StreamTypeVideo   = "video"
	StreamTypeText    = "text"
	StreamTypeOverlay = "overlay"
	StreamTypeMsg     = "msg"
)
