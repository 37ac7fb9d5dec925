/*
NAME
  writer.go

DESCRIPTION
  Writer drives the GAVF write-side state machine:
  Init -> PhdrWritten -> PktsOpen -> (per-packet)* -> PktsClosed ->
  FootWritten -> (PidxWritten?) -> TailWritten -> Done. Start accepts a
  track dictionary and writes GAVFPHDR, opening GAVFPKTS; WritePacket
  validates the stream id, folds stats and optionally records an index
  entry; Close finishes GAVFPKTS and writes FOOT, PIDX and TAIL.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	stdio "io"

	"github.com/pkg/errors"

	"github.com/ausocean/gavf/gavl"
	gio "github.com/ausocean/gavf/io"
	"github.com/ausocean/utils/logging"
)

// WriterState names a point in the write-side state machine.
type WriterState int

const (
	WriterInit WriterState = iota
	WriterPhdrWritten
	WriterPktsOpen
	WriterPktsClosed
	WriterFootWritten
	WriterPidxWritten
	WriterTailWritten
	WriterDone
)

// Writer writes a GAVF stream to an underlying io.
type Writer struct {
	w   stdio.Writer // underlying destination
	cw  stdio.Writer // wr.w wrapped to keep written current, Seek-preserving
	log logging.Logger
	state WriterState

	track   *gavl.Track
	pkts    *ChunkWriter
	tailOff int64 // byte offset GAVFPHDR starts at, recorded for GAVFTAIL
	written int64 // running count of bytes written, for AlignWrite/index

	keepIndex bool
	index     *PacketIndex

	stats map[int32]*gavl.StreamStats
}

// NewWriter returns a Writer over w. If keepIndex is true, Close also
// writes a GAVFPIDX chunk built from every packet written. log may be nil,
// in which case a discarding logger is used.
func NewWriter(w stdio.Writer, log logging.Logger, keepIndex bool) *Writer {
	if log == nil {
		log = logging.New(logging.Debug, stdio.Discard, true)
	}
	wr := &Writer{w: w, log: log, keepIndex: keepIndex, stats: map[int32]*gavl.StreamStats{}}
	wr.cw = wrapCounting(w, &wr.written)
	return wr
}

// Start writes the GAVFPHDR chunk from track and opens GAVFPKTS. track is
// retained (not copied) for stats bookkeeping and footer construction.
func (wr *Writer) Start(track *gavl.Track) error {
	if wr.state != WriterInit {
		return errors.New("gavf: Writer.Start called out of order")
	}
	wr.track = track
	wr.tailOff = wr.written

	cw, err := StartChunk(wr.cw, TagPHDR)
	if err != nil {
		return errors.Wrap(err, "writing GAVFPHDR chunk header")
	}
	if err := EncodeDictionary(cw, track.D); err != nil {
		return errors.Wrap(err, "encoding program header dictionary")
	}
	if err := cw.Finish(); err != nil {
		return errors.Wrap(err, "finishing GAVFPHDR chunk")
	}
	if err := gio.AlignWrite(wr.cw, wr.written); err != nil {
		return err
	}
	wr.state = WriterPhdrWritten

	pkts, err := StartChunk(wr.cw, TagPKTS)
	if err != nil {
		return errors.Wrap(err, "opening GAVFPKTS chunk")
	}
	wr.pkts = pkts
	wr.state = WriterPktsOpen
	wr.log.Debug("gavf: wrote program header, opened packet stream", "num_streams", track.NumStreams())
	return nil
}

// WritePacket validates p.StreamID against the program header, folds its
// stats, optionally indexes it, and emits it into GAVFPKTS.
func (wr *Writer) WritePacket(p *gavl.Packet) SinkStatus {
	if wr.state != WriterPktsOpen {
		wr.log.Error("gavf: WritePacket called out of order", "state", wr.state)
		return SinkError
	}
	if !wr.validStream(p.StreamID) {
		wr.log.Error("gavf: WritePacket: unknown stream id", "stream_id", p.StreamID)
		return SinkError
	}

	st, ok := wr.stats[p.StreamID]
	if !ok {
		st = gavl.NewStreamStats()
		wr.stats[p.StreamID] = st
	}
	st.Update(p)

	filePos := wr.written
	if err := WritePacket(wr.pkts, p, 0); err != nil {
		wr.log.Error("gavf: WritePacket failed", "err", err)
		return SinkError
	}
	if wr.keepIndex {
		if wr.index == nil {
			wr.index = NewPacketIndex()
		}
		wr.index.Append(IndexEntry{
			StreamID: p.StreamID,
			Flags:    uint32(p.Flags),
			Size:     uint32(len(p.Data())),
			FilePos:  uint64(filePos),
			PTS:      p.PTS,
			Duration: p.Duration,
		})
	}
	return SinkOk
}

func (wr *Writer) validStream(id int32) bool {
	for i := 0; i < wr.track.NumStreams(); i++ {
		s, _ := wr.track.StreamAt(i)
		if s.ID() == id {
			return true
		}
	}
	return false
}

// Close finishes GAVFPKTS, writes GAVFFOOT from accumulated stats, writes
// GAVFPIDX if index-keeping was requested, writes GAVFTAIL, and flushes.
func (wr *Writer) Close() error {
	if wr.state != WriterPktsOpen {
		return errors.New("gavf: Writer.Close called out of order")
	}
	if err := wr.pkts.Finish(); err != nil {
		return errors.Wrap(err, "finishing GAVFPKTS chunk")
	}
	if err := gio.AlignWrite(wr.cw, wr.written); err != nil {
		return err
	}
	wr.state = WriterPktsClosed

	footStart := wr.written
	footer := BuildFooter(wr.track, wr.stats)
	cw, err := StartChunk(wr.cw, TagFOOT)
	if err != nil {
		return errors.Wrap(err, "opening GAVFFOOT chunk")
	}
	if err := EncodeDictionary(cw, footer.D); err != nil {
		return errors.Wrap(err, "encoding footer dictionary")
	}
	if err := cw.Finish(); err != nil {
		return errors.Wrap(err, "finishing GAVFFOOT chunk")
	}
	if err := gio.AlignWrite(wr.cw, wr.written); err != nil {
		return err
	}
	wr.state = WriterFootWritten
	wr.log.Debug("gavf: wrote footer", "offset", footStart)

	if wr.keepIndex && wr.index != nil {
		pidx, err := StartChunk(wr.cw, TagPIDX)
		if err != nil {
			return errors.Wrap(err, "opening GAVFPIDX chunk")
		}
		if err := wr.index.Encode(pidx); err != nil {
			return errors.Wrap(err, "encoding packet index")
		}
		if err := pidx.Finish(); err != nil {
			return errors.Wrap(err, "finishing GAVFPIDX chunk")
		}
		if err := gio.AlignWrite(wr.cw, wr.written); err != nil {
			return err
		}
		wr.state = WriterPidxWritten
	}

	cw2, err := StartChunk(wr.cw, TagTAIL)
	if err != nil {
		return errors.Wrap(err, "opening GAVFTAIL chunk")
	}
	// GAVFTAIL's payload is the byte offset of the start of GAVFPHDR,
	// enabling reverse seek from EOF.
	if err := gio.WriteInt64LE(cw2, wr.tailOff); err != nil {
		return err
	}
	if err := cw2.Finish(); err != nil {
		return errors.Wrap(err, "finishing GAVFTAIL chunk")
	}
	wr.state = WriterTailWritten

	if flusher, ok := wr.w.(gio.Flusher); ok {
		if err := flusher.Flush(); err != nil {
			return err
		}
	}
	wr.state = WriterDone
	return nil
}

// countingWriter wraps a stdio.Writer, incrementing *n by every byte
// written, so Writer can track its position for alignment and indexing
// without requiring the underlying io to be seekable.
type countingWriter struct {
	w stdio.Writer
	n *int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	*c.n += int64(n)
	return n, err
}

// countingSeekWriter is a countingWriter whose wrapped writer is also
// seekable, so it continues to satisfy gio.Seeker for ChunkWriter's
// length-patching path.
type countingSeekWriter struct {
	*countingWriter
	s gio.Seeker
}

func (c countingSeekWriter) Seek(offset int64, whence int) (int64, error) {
	return c.s.Seek(offset, whence)
}

// PatchAt writes p directly to the wrapped writer at offset off and
// restores the current position afterward, without tallying p's bytes
// into *n: the length field it patches was already counted once when
// its placeholder was first written, so counting it again here would
// leave *n permanently ahead of the real underlying offset.
func (c countingSeekWriter) PatchAt(off int64, p []byte) error {
	cur, err := c.s.Seek(0, stdio.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := c.s.Seek(off, stdio.SeekStart); err != nil {
		return err
	}
	if _, err := c.countingWriter.w.Write(p); err != nil {
		return err
	}
	_, err = c.s.Seek(cur, stdio.SeekStart)
	return err
}

// wrapCounting wraps w to tally bytes written into *n, preserving w's
// Seek capability if it has one so ChunkWriter can still patch chunk
// lengths in place rather than falling back to unknown-length framing.
func wrapCounting(w stdio.Writer, n *int64) stdio.Writer {
	cw := &countingWriter{w: w, n: n}
	if s, ok := w.(gio.Seeker); ok {
		return countingSeekWriter{cw, s}
	}
	return cw
}
