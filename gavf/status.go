/*
NAME
  status.go

DESCRIPTION
  SourceStatus and SinkStatus are the well-defined return values for
  source-like and sink-like calls, so read/write errors, partial reads
  and end-of-stream are distinguishable without inspecting an underlying
  io error directly.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

// SourceStatus is returned by any source-like (reading) call.
type SourceStatus int

const (
	SourceOk SourceStatus = iota
	SourceAgain
	SourceEof
)

func (s SourceStatus) String() string {
	switch s {
	case SourceOk:
		return "ok"
	case SourceAgain:
		return "again"
	case SourceEof:
		return "eof"
	default:
		return "unknown"
	}
}

// SinkStatus is returned by any sink-like (writing) call.
type SinkStatus int

const (
	SinkOk SinkStatus = iota
	SinkError
	SinkStopped
)

func (s SinkStatus) String() string {
	switch s {
	case SinkOk:
		return "ok"
	case SinkError:
		return "error"
	case SinkStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
