/*
NAME
  reader.go

DESCRIPTION
  Reader drives the GAVF read-side state machine, the mirror of
  Writer: Open reads GAVFPHDR and opens GAVFPKTS; ReadPacket demuxes one
  packet at a time, and on exhausting GAVFPKTS walks any trailing
  GAVFPIDX/GAVFFOOT/GAVFTAIL chunks, merging the footer back onto the
  in-memory track via gavl.Track.ApplyFooter. Seek uses a GAVFPIDX index
  (if present) to jump the underlying io directly to a packet boundary.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	"bytes"
	stdio "io"

	"github.com/pkg/errors"

	"github.com/ausocean/gavf/gavl"
	"github.com/ausocean/gavf/gavf/indexcache"
	gio "github.com/ausocean/gavf/io"
	"github.com/ausocean/utils/logging"
)

// ReaderState names a point in the read-side state machine.
type ReaderState int

const (
	ReaderInit ReaderState = iota
	ReaderPhdrRead
	ReaderPktsOpen
	ReaderDone
)

// Reader reads a GAVF stream from an underlying io.
type Reader struct {
	r    stdio.Reader // raw underlying source
	cr   *countingReader
	seek gio.Seeker // non-nil when the raw source also implements gio.Seeker
	log  logging.Logger
	state ReaderState

	track *gavl.Track
	pkts  stdio.Reader // current GAVFPKTS payload, possibly bounded
	read  int64        // running count of bytes read, for AlignRead

	pktsKnown bool

	index      *PacketIndex
	tailOffset int64
	haveTail   bool
}

// NewReader returns a Reader over r. log may be nil, in which case a
// discarding logger is used.
func NewReader(r stdio.Reader, log logging.Logger) *Reader {
	if log == nil {
		log = logging.New(logging.Debug, stdio.Discard, true)
	}
	rd := &Reader{r: r, log: log}
	rd.cr = &countingReader{r: r, n: &rd.read}
	if s, ok := r.(gio.Seeker); ok {
		rd.seek = s
	}
	return rd
}

// Open reads GAVFPHDR and opens GAVFPKTS, returning the program's track.
func (rd *Reader) Open() (*gavl.Track, error) {
	if rd.state != ReaderInit {
		return nil, errors.New("gavf: Reader.Open called out of order")
	}
	tag, payload, _, err := OpenChunk(rd.cr)
	if err != nil {
		return nil, errors.Wrap(err, "reading GAVFPHDR chunk header")
	}
	if tag != TagPHDR {
		return nil, parseErrorf("gavf: expected GAVFPHDR, got %q", tag)
	}
	d, err := DecodeDictionary(payload)
	if err != nil {
		return nil, errors.Wrap(err, "decoding program header dictionary")
	}
	rd.track = &gavl.Track{D: d}
	if err := gio.AlignRead(rd.cr, rd.read); err != nil {
		return nil, err
	}
	rd.state = ReaderPhdrRead

	tag, pkts, known, err := OpenChunk(rd.cr)
	if err != nil {
		return nil, errors.Wrap(err, "opening GAVFPKTS chunk")
	}
	if tag != TagPKTS {
		return nil, parseErrorf("gavf: expected GAVFPKTS, got %q", tag)
	}
	rd.pkts = pkts
	rd.pktsKnown = known
	rd.state = ReaderPktsOpen
	rd.log.Debug("gavf: read program header, opened packet stream", "num_streams", rd.track.NumStreams())
	return rd.track, nil
}

// Track returns the track read by Open, merged with any footer statistics
// once ReadPacket has returned SourceEof.
func (rd *Reader) Track() *gavl.Track { return rd.track }

// Index returns the packet index read from a trailing GAVFPIDX chunk, or
// nil if the stream carried none (or hasn't been fully consumed yet).
func (rd *Reader) Index() *PacketIndex { return rd.index }

// ReadPacket decodes the next packet into p (freshly Init'd by the
// caller). Once GAVFPKTS is exhausted it walks any trailing GAVFPIDX,
// GAVFFOOT and GAVFTAIL chunks, merges the footer into Track(), and
// returns SourceEof.
func (rd *Reader) ReadPacket(p *gavl.Packet) SourceStatus {
	if rd.state != ReaderPktsOpen {
		return SourceEof
	}
	_, err := ReadPacket(rd.pkts, p)
	if err == nil {
		return SourceOk
	}
	if err != stdio.EOF && errors.Cause(err) != stdio.EOF {
		rd.log.Error("gavf: ReadPacket failed", "err", err)
		return SourceAgain
	}
	if err := rd.finishAfterPkts(); err != nil {
		rd.log.Error("gavf: error reading trailing chunks", "err", err)
	}
	rd.state = ReaderDone
	return SourceEof
}

// finishAfterPkts walks whatever top-level chunks follow GAVFPKTS,
// applying each one it recognises.
func (rd *Reader) finishAfterPkts() error {
	if err := gio.AlignRead(rd.cr, rd.read); err != nil {
		return err
	}
	for {
		tag, payload, _, err := OpenChunk(rd.cr)
		if err != nil {
			if err == stdio.EOF {
				return nil
			}
			return err
		}
		switch tag {
		case TagFOOT:
			d, err := DecodeDictionary(payload)
			if err != nil {
				return errors.Wrap(err, "decoding footer dictionary")
			}
			rd.track.ApplyFooter(&gavl.Track{D: d})
		case TagPIDX:
			idx, err := DecodeIndex(payload)
			if err != nil {
				return errors.Wrap(err, "decoding packet index")
			}
			rd.index = idx
		case TagTAIL:
			off, err := gio.ReadInt64LE(payload)
			if err != nil {
				return errors.Wrap(err, "decoding tail offset")
			}
			rd.tailOffset = off
			rd.haveTail = true
			return nil
		default:
			if _, err := stdio.Copy(stdio.Discard, payload); err != nil {
				return err
			}
		}
		if err := gio.AlignRead(rd.cr, rd.read); err != nil {
			return err
		}
	}
}

// LoadIndexCache consults cache for a previously-saved PacketIndex for
// the file at path, reusing it as rd's index if found. It is purely an
// optimization for Seek: a miss leaves rd.index untouched (nil, unless
// already populated by a prior full read pass).
func (rd *Reader) LoadIndexCache(cache *indexcache.Cache, path string) bool {
	data, ok := cache.Get(path)
	if !ok {
		return false
	}
	idx, err := DecodeIndex(bytes.NewReader(data))
	if err != nil {
		rd.log.Warning("gavf: discarding corrupt cached index", "path", path, "err", err)
		return false
	}
	rd.index = idx
	return true
}

// SaveIndexCache serializes rd's current index (populated after a full
// ReadPacket pass through a trailing GAVFPIDX chunk) into cache, keyed by
// path. A nil index is a no-op.
func (rd *Reader) SaveIndexCache(cache *indexcache.Cache, path string) error {
	if rd.index == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := rd.index.Encode(&buf); err != nil {
		return errors.Wrap(err, "encoding index for cache")
	}
	return cache.Put(path, buf.Bytes())
}

// TailOffset returns the byte offset GAVFPHDR started at, as recorded by
// the trailing GAVFTAIL chunk, and whether one was found.
func (rd *Reader) TailOffset() (int64, bool) { return rd.tailOffset, rd.haveTail }

// Seek jumps directly to the packet nearest target pts on streamID, using
// a previously-read GAVFPIDX index. It requires the underlying io to be
// seekable and the index to already be populated (i.e. Seek is normally
// called after one full ReadPacket pass, or against a sidecar index
// loaded independently). After Seek, ReadPacket resumes from the new
// position; once GAVFPKTS' original known length has been exceeded the
// raw byte stream from a seek position no longer carries chunk-boundary
// information, so Seek is only reliable on an unknown-length (to-EOF)
// GAVFPKTS or when the caller stops consuming before the next chunk.
func (rd *Reader) Seek(streamID int32, target int64) (syncPTS int64, err error) {
	if rd.seek == nil {
		return 0, errors.New("gavf: Seek requires a seekable io")
	}
	if rd.index == nil {
		return 0, errors.New("gavf: Seek requires a packet index")
	}
	filePos, syncPTS, ok := rd.index.SeekPTS(streamID, target)
	if !ok {
		return 0, errors.New("gavf: no index entry at or before target pts")
	}
	if _, err := rd.seek.Seek(int64(filePos), stdio.SeekStart); err != nil {
		return 0, err
	}
	rd.read = int64(filePos)
	rd.pkts = rd.cr
	rd.state = ReaderPktsOpen
	return syncPTS, nil
}

// countingReader wraps a stdio.Reader, incrementing *n by every byte
// read, so Reader can track its position for 8-byte alignment bookkeeping
// between chunks.
type countingReader struct {
	r stdio.Reader
	n *int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	*c.n += int64(n)
	return n, err
}
