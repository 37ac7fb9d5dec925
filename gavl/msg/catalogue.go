/*
NAME
  catalogue.go

DESCRIPTION
  catalogue.go fixes the namespace/id pairs for the conventional
  notification messages, the control/response commands an interactive
  mode multiplexes over a duplex io, and two supplemented additions in the
  NsState namespace (MsgStateChanged, CmdSetVolume) that have no
  counterpart in the original's msg.c.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package msg

// Namespaces group related message ids so the same numeric id can be
// reused meaningfully across namespaces (e.g. id 1 is MsgProgress in NsSrc
// and MsgGUIButton in NsGUI).
const (
	NsSrc int32 = iota + 1
	NsGUI
	NsGavf
	NsState
)

// NsSrc messages: notifications a source emits about its own state.
const (
	MsgProgress int32 = iota + 1
	MsgSrcMetadataChanged
	MsgSrcAspectChanged
	MsgSrcBuffering
	MsgSrcAuthenticate
)

// NsGUI messages: interactive input events forwarded from a client.
const (
	MsgGUIButton int32 = iota + 1
	MsgGUIKey
	MsgGUIMotion
	MsgGUISwipe
)

// MsgSpliceChildren carries a batch of child-array edits (insertions,
// deletions, replacements) delivered to subscribers of a CHILDREN array,
// e.g. a playlist. Namespace NsSrc.
const MsgSpliceChildren int32 = 100

// NsState messages: a generic state-changed broadcast and a volume
// command, for state that doesn't warrant its own message id. Neither
// exists in the original's msg.c.
const (
	MsgStateChanged int32 = iota + 1
	CmdSetVolume
)

// NsGavf control commands, sent upstream (client to source) over a duplex
// io in GAVF interactive mode.
const (
	CmdQuit int32 = iota + 1
	CmdPing
	CmdSrcStart
	CmdSrcPause
	CmdSrcResume
	CmdSrcSeek
	CmdSrcSelectTrack
	CmdSrcSetStreamAction
	CmdSrcSetFrameStorage
)

// NsGavf responses, sent downstream (source to client).
const (
	RespPong int32 = iota + 100
	RespSrcStarted
	RespSrcBuffering
	RespSrcAspectChanged
	RespSrcMetadataChanged
	RespSrcResync
	RespSrcRestartVars
)

// Arg indices for CmdSrcSeek(time, scale, unit).
const (
	ArgSeekTime = iota
	ArgSeekScale
	ArgSeekUnit
)

// Arg indices for CmdSrcSelectTrack(idx).
const ArgTrackIdx = 0

// Arg indices for CmdSrcSetStreamAction(type, idx, enable).
const (
	ArgStreamActionType = iota
	ArgStreamActionIdx
	ArgStreamActionEnable
)

// Arg indices for CmdSrcSetFrameStorage(audio, video).
const (
	ArgFrameStorageAudio = iota
	ArgFrameStorageVideo
)

// Arg indices for RespSrcResync(pts, scale, discard?, discont?).
const (
	ArgResyncPTS = iota
	ArgResyncScale
	ArgResyncDiscard
	ArgResyncDiscont
)

// NewControl returns a new message addressed to (NsGavf, id), with its
// header already applied so it is ready to serialize.
func NewControl(id int32) *Message {
	m := New()
	m.SetID(NsGavf, id)
	m.ApplyHeader()
	return m
}
