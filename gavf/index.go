/*
NAME
  index.go

DESCRIPTION
  PacketIndex is the optional GAVFPIDX chunk: flags, entry count, then
  per-entry (stream id, flags, size, file position, pts, duration),
  enabling O(log N) seek-by-pts within a stream. RemoveBeginning, which
  has no counterpart in packetindex.c, drops leading entries for
  live-streamed files whose oldest segment has been pruned.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	"sort"
	stdio "io"

	"github.com/ausocean/gavf/gavl"
	gio "github.com/ausocean/gavf/io"
)

// IndexEntry is one packet's position/timing record within the index.
type IndexEntry struct {
	StreamID int32
	Flags    uint32
	Size     uint32
	FilePos  uint64
	PTS      int64
	Duration int64
}

// PacketIndex is an ordered (by insertion / file position) sequence of
// IndexEntry.
type PacketIndex struct {
	Flags   uint32
	Entries []IndexEntry
}

// NewPacketIndex returns an empty index.
func NewPacketIndex() *PacketIndex { return &PacketIndex{} }

// Append records one packet's index entry, called by the Writer once per
// WritePacket when index-keeping is enabled.
func (idx *PacketIndex) Append(e IndexEntry) {
	idx.Entries = append(idx.Entries, e)
}

// RemoveBeginning drops the first n entries, used when a live-streamed
// file's oldest segment is pruned while a writer is mid-stream.
func (idx *PacketIndex) RemoveBeginning(n int) {
	if n <= 0 {
		return
	}
	if n >= len(idx.Entries) {
		idx.Entries = nil
		return
	}
	idx.Entries = append([]IndexEntry(nil), idx.Entries[n:]...)
}

// Encode writes idx's GAVFPIDX payload.
func (idx *PacketIndex) Encode(w stdio.Writer) error {
	if err := gio.WriteUvarint(w, uint64(idx.Flags)); err != nil {
		return err
	}
	if err := gio.WriteUvarint(w, uint64(len(idx.Entries))); err != nil {
		return err
	}
	for _, e := range idx.Entries {
		if err := gio.WriteVarint(w, int64(e.StreamID)); err != nil {
			return err
		}
		if err := gio.WriteUvarint(w, uint64(e.Flags)); err != nil {
			return err
		}
		if err := gio.WriteUvarint(w, uint64(e.Size)); err != nil {
			return err
		}
		if err := gio.WriteUvarint(w, e.FilePos); err != nil {
			return err
		}
		if err := gio.WriteVarint(w, e.PTS); err != nil {
			return err
		}
		if err := gio.WriteVarint(w, e.Duration); err != nil {
			return err
		}
	}
	return nil
}

// DecodeIndex reads a GAVFPIDX payload.
func DecodeIndex(r stdio.Reader) (*PacketIndex, error) {
	flags, err := gio.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	n, err := gio.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	idx := &PacketIndex{Flags: uint32(flags), Entries: make([]IndexEntry, 0, n)}
	for i := uint64(0); i < n; i++ {
		sid, err := gio.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		flags, err := gio.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		size, err := gio.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		pos, err := gio.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		pts, err := gio.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		dur, err := gio.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		idx.Entries = append(idx.Entries, IndexEntry{
			StreamID: int32(sid), Flags: uint32(flags), Size: uint32(size),
			FilePos: pos, PTS: pts, Duration: dur,
		})
	}
	return idx, nil
}

// SeekPTS finds, within streamID's entries, the last one with PTS <=
// target, then walks backward to the nearest preceding keyframe, and
// returns that entry's file position and the sync PTS it represents.
// ok is false if streamID has no entries at or before target.
func (idx *PacketIndex) SeekPTS(streamID int32, target int64) (filePos uint64, syncPTS int64, ok bool) {
	var stream []IndexEntry
	var origIdx []int
	for i, e := range idx.Entries {
		if e.StreamID == streamID {
			stream = append(stream, e)
			origIdx = append(origIdx, i)
		}
	}
	if len(stream) == 0 {
		return 0, 0, false
	}
	// stream is in file-position (insertion) order, not necessarily
	// PTS-sorted (discontinuous packets are allowed), so sort a copy by
	// PTS for the binary search and keep the original index to walk
	// backward for a keyframe in file order.
	type withOrig struct {
		e   IndexEntry
		pos int
	}
	sorted := make([]withOrig, len(stream))
	for i, e := range stream {
		sorted[i] = withOrig{e, i}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].e.PTS < sorted[j].e.PTS })

	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].e.PTS > target })
	if i == 0 {
		return 0, 0, false
	}
	best := sorted[i-1]

	for j := best.pos; j >= 0; j-- {
		if stream[j].Flags&uint32(gavl.PacketKeyframe) != 0 {
			return stream[j].FilePos, stream[j].PTS, true
		}
	}
	// No keyframe found before best: fall back to best itself (e.g. an
	// all-intra or audio-only stream where every packet is a sync point).
	return best.e.FilePos, best.e.PTS, true
}
